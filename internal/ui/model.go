package ui

import (
	"errors"
	"log"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"catidle/internal/pet"
)

var menuChoices = []string{"Feed", "Water", "Pet", "Shop", "Restart", "Quit"}

// Model represents the game screen. The engine is driven entirely from
// Update, so every engine call runs on the bubbletea goroutine.
type Model struct {
	engine *pet.Engine
	inbox  *inbox
	snap   pet.Snapshot
	epoch  uint64

	Choice           int
	InShop           bool
	ShopChoice       int
	Quitting         bool
	Message          string
	MessageExpires   time.Time
	Monologue        string
	MonologueExpires time.Time
	Animation        Animation

	cooldownRunning map[pet.Action]bool
}

// inbox collects engine events raised during an Update
type inbox struct {
	events []pet.Event
}

func (b *inbox) Notify(ev pet.Event) { b.events = append(b.events, ev) }

func (b *inbox) drain() []pet.Event {
	out := b.events
	b.events = nil
	return out
}

// Timer messages carry the engine epoch they were scheduled in; ticks from
// an older epoch are dropped.
type (
	decayTickMsg     struct{ epoch uint64 }
	coinTickMsg      struct{ epoch uint64 }
	autosaveTickMsg  struct{ epoch uint64 }
	monologueTickMsg struct{ epoch uint64 }
	cooldownTickMsg  struct {
		epoch  uint64
		action pet.Action
	}
	animTickMsg struct {
		started time.Time
	}
)

// NewModel starts (or resumes) a game on e
func NewModel(e *pet.Engine) Model {
	b := &inbox{}
	e.Subscribe(b)
	if e.Start() {
		log.Printf("Resumed saved game")
	}
	m := Model{
		engine:          e,
		inbox:           b,
		epoch:           e.Epoch(),
		cooldownRunning: map[pet.Action]bool{},
	}
	b.drain()
	m.snap = e.Snapshot()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.snap.GameOver {
		return nil
	}
	return tea.Batch(m.periodic(m.epoch)...)
}

func (m Model) periodic(epoch uint64) []tea.Cmd {
	cfg := m.engine.Config()
	return []tea.Cmd{
		tea.Tick(cfg.DecayPeriod(), func(time.Time) tea.Msg { return decayTickMsg{epoch} }),
		tea.Tick(pet.CoinInterval, func(time.Time) tea.Msg { return coinTickMsg{epoch} }),
		tea.Tick(cfg.AutosavePeriod(), func(time.Time) tea.Msg { return autosaveTickMsg{epoch} }),
		tea.Tick(m.engine.MonologueDelay(), func(time.Time) tea.Msg { return monologueTickMsg{epoch} }),
	}
}

func cooldownTick(epoch uint64, a pet.Action) tea.Cmd {
	return tea.Tick(pet.CooldownStep, func(time.Time) tea.Msg {
		return cooldownTickMsg{epoch: epoch, action: a}
	})
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg.String())
		if m.Quitting {
			return m, tea.Quit
		}
		syncCmd := m.sync()
		return m, tea.Batch(cmd, syncCmd)

	case decayTickMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.engine.DecayTick()
		cmd := m.sync()
		return m, tea.Batch(cmd, m.repeat(msg))

	case coinTickMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.engine.CoinTick()
		cmd := m.sync()
		return m, tea.Batch(cmd, m.repeat(msg))

	case autosaveTickMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.engine.Autosave()
		cmd := m.sync()
		return m, tea.Batch(cmd, m.repeat(msg))

	case monologueTickMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.engine.Monologue()
		cmd := m.sync()
		return m, tea.Batch(cmd, m.repeat(msg))

	case cooldownTickMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		running := m.engine.CooldownTick(msg.action)
		m.cooldownRunning[msg.action] = running
		cmd := m.sync()
		if running {
			cmd = tea.Batch(cmd, cooldownTick(m.epoch, msg.action))
		}
		return m, cmd

	case animTickMsg:
		// Drop ticks that belong to an older animation
		if m.Animation.Type == AnimNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}
		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}
		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

// repeat re-arms a periodic timer unless its epoch has ended
func (m Model) repeat(msg tea.Msg) tea.Cmd {
	if m.snap.GameOver {
		return nil
	}
	cfg := m.engine.Config()
	switch msg := msg.(type) {
	case decayTickMsg:
		if msg.epoch == m.epoch {
			return tea.Tick(cfg.DecayPeriod(), func(time.Time) tea.Msg { return msg })
		}
	case coinTickMsg:
		if msg.epoch == m.epoch {
			return tea.Tick(pet.CoinInterval, func(time.Time) tea.Msg { return msg })
		}
	case autosaveTickMsg:
		if msg.epoch == m.epoch {
			return tea.Tick(cfg.AutosavePeriod(), func(time.Time) tea.Msg { return msg })
		}
	case monologueTickMsg:
		if msg.epoch == m.epoch {
			return tea.Tick(m.engine.MonologueDelay(), func(time.Time) tea.Msg { return msg })
		}
	}
	return nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	if key == "ctrl+c" || key == "q" {
		m.quit()
		return nil
	}

	if m.InShop {
		return m.handleShopKey(key)
	}

	if m.snap.GameOver {
		if key == "r" {
			m.engine.Restart()
		}
		return nil
	}

	switch key {
	case "f":
		return m.act(m.engine.Feed, AnimFeed)
	case "w":
		return m.act(m.engine.Water, AnimWater)
	case "p":
		return m.act(func() error { return m.engine.Interact(pet.TargetPet, pet.Point{}) }, AnimPet)
	case "b":
		return m.act(func() error { return m.engine.Interact(pet.TargetBackground, pet.Point{}) }, AnimNone)
	case "s":
		m.InShop = true
		m.ShopChoice = 0
	case "r":
		m.engine.Restart()
	case "up", "k":
		if m.Choice > 0 {
			m.Choice--
		}
	case "down", "j":
		if m.Choice < len(menuChoices)-1 {
			m.Choice++
		}
	case "enter", " ":
		return m.selectMenu()
	default:
		if slot, ok := slotKey(key, m.snap.Capacity); ok {
			if err := m.engine.UseItem(slot); errors.Is(err, pet.ErrEmptySlot) {
				m.setMessage("Nothing in that slot")
			}
		}
	}
	return nil
}

func (m *Model) selectMenu() tea.Cmd {
	switch m.Choice {
	case 0:
		return m.act(m.engine.Feed, AnimFeed)
	case 1:
		return m.act(m.engine.Water, AnimWater)
	case 2:
		return m.act(func() error { return m.engine.Interact(pet.TargetPet, pet.Point{}) }, AnimPet)
	case 3:
		m.InShop = true
		m.ShopChoice = 0
	case 4:
		m.engine.Restart()
	case 5:
		m.quit()
	}
	return nil
}

func (m *Model) handleShopKey(key string) tea.Cmd {
	offers := m.engine.Listing()
	switch key {
	case "esc", "s":
		m.InShop = false
	case "up", "k":
		if m.ShopChoice > 0 {
			m.ShopChoice--
		}
	case "down", "j":
		if m.ShopChoice < len(offers)-1 {
			m.ShopChoice++
		}
	case "enter", " ":
		if m.ShopChoice < len(offers) {
			offer := offers[m.ShopChoice]
			if !offer.Enabled() && (offer.Owned || offer.Placed) {
				m.setMessage("Already owned!")
				return nil
			}
			if err := m.engine.Purchase(offer.Item.ID); err != nil {
				log.Printf("Purchase of %s rejected: %v", offer.Item.ID, err)
			}
		}
	}
	return nil
}

// act runs an engine action and starts its animation on success
func (m *Model) act(fn func() error, anim AnimationType) tea.Cmd {
	if err := fn(); err != nil {
		if errors.Is(err, pet.ErrOnCooldown) {
			m.setMessage("Not yet!")
		}
		return nil
	}
	if anim == AnimNone {
		return nil
	}
	m.startAnimation(anim)
	return animTick(m.Animation.StartTime)
}

func (m *Model) quit() {
	if !m.engine.GameOver() {
		m.engine.Quit()
	}
	m.Quitting = true
}

// sync refreshes the snapshot and reacts to the events raised since the
// last call: it re-arms timers on a new epoch and starts cooldown tickers.
func (m *Model) sync() tea.Cmd {
	var cmds []tea.Cmd
	m.snap = m.engine.Snapshot()

	if ep := m.engine.Epoch(); ep != m.epoch {
		m.epoch = ep
		m.cooldownRunning = map[pet.Action]bool{}
		m.Animation = Animation{}
		if !m.snap.GameOver {
			cmds = append(cmds, m.periodic(ep)...)
		}
	}

	for _, ev := range m.inbox.drain() {
		switch e := ev.(type) {
		case pet.Message:
			m.setMessage(e.Text)
		case pet.MonologueSpoken:
			m.Monologue = e.Text
			m.MonologueExpires = pet.TimeNow().Add(time.Duration(e.DurationMS) * time.Millisecond)
		case pet.CooldownTicked:
			if e.SecondsLeft > 0 && !m.cooldownRunning[e.Action] && !m.snap.GameOver {
				m.cooldownRunning[e.Action] = true
				cmds = append(cmds, cooldownTick(m.epoch, e.Action))
			}
		case pet.CoinsAwarded:
			if e.Source == pet.SourceBonus && m.Animation.Type == AnimNone {
				m.startAnimation(AnimBonus)
				cmds = append(cmds, animTick(m.Animation.StartTime))
			}
		case pet.GameOver:
			m.InShop = false
			log.Printf("Game over screen (final coins %d)", e.FinalCoins)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = pet.TimeNow().Add(pet.MessageLifetime)
}

func (m *Model) startAnimation(animType AnimationType) {
	m.Animation = Animation{
		Type:      animType,
		Frame:     0,
		StartTime: pet.TimeNow(),
	}
}

// slotKey maps "1".."N" to an inventory index
func slotKey(key string, capacity int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	if n < 1 || n > capacity {
		return 0, false
	}
	return n - 1, true
}
