package pet

import (
	"errors"
	"log"
	"slices"
)

// Reasons an engine request was a no-op
var (
	ErrGameOver          = errors.New("game is over")
	ErrOnCooldown        = errors.New("action is on cooldown")
	ErrUnknownItem       = errors.New("unknown item")
	ErrInventoryFull     = errors.New("inventory is full")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEmptySlot         = errors.New("inventory slot is empty")
	ErrIgnoredTarget     = errors.New("click target ignored")
)

// Engine owns the pet state and every rule that mutates it. It is not safe
// for concurrent use: drivers call it from a single goroutine so each
// operation runs to completion before the next.
type Engine struct {
	cfg  Config
	slot Slot

	state     State
	upgrades  UpgradeSet
	amounts   map[Action]int
	cooldowns map[Action]*Cooldown

	coinTick   int
	bonusGiven bool
	visual     Visual
	epoch      uint64

	notifiers []Notifier
}

// Option configures an Engine
type Option func(*Engine)

// WithNotifier subscribes n to engine events
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifiers = append(e.notifiers, n)
	}
}

// NewEngine creates an engine holding a fresh default state. Call Start to
// restore a saved game and begin a playthrough.
func NewEngine(cfg Config, slot Slot, opts ...Option) *Engine {
	cfg = cfg.WithDefaults()
	e := &Engine{
		cfg:       cfg,
		slot:      slot,
		state:     newState(cfg),
		amounts:   map[Action]int{},
		cooldowns: map[Action]*Cooldown{},
	}
	for _, a := range Actions {
		e.cooldowns[a] = &Cooldown{}
	}
	e.recomputeAmounts()
	e.visual = DeriveVisual(e.state, cfg.Thresholds)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe adds a notifier after construction
func (e *Engine) Subscribe(n Notifier) {
	e.notifiers = append(e.notifiers, n)
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Epoch changes whenever the running timers must be discarded: on start,
// restart, quit and game over.
func (e *Engine) Epoch() uint64 {
	return e.epoch
}

// GameOver reports whether the playthrough has ended
func (e *Engine) GameOver() bool {
	return e.state.GameOver
}

// Amount returns the current (possibly upgraded) amount an action adds
func (e *Engine) Amount(a Action) int {
	return e.amounts[a]
}

// Start restores the saved game if there is one, otherwise starts a fresh
// game and saves it. It reports whether a save was loaded.
func (e *Engine) Start() bool {
	loaded := false
	if e.slot != nil {
		if err := e.Load(); err != nil {
			if !errors.Is(err, ErrNoSave) {
				log.Printf("Failed to load save: %v. Starting a new game.", err)
			}
		} else {
			loaded = true
			log.Printf("Game loaded from save (coins: %d)", e.state.Coins)
		}
	}
	if !loaded {
		e.resetState()
		e.persist()
	}
	e.begin()
	return loaded
}

// Restart discards the current playthrough and begins a fresh default game
func (e *Engine) Restart() {
	e.resetState()
	e.persist()
	e.begin()
	log.Printf("Game restarted")
}

// Quit saves the game, then ends the playthrough
func (e *Engine) Quit() {
	if e.state.GameOver {
		return
	}
	e.persist()
	e.state.GameOver = true
	e.clearCooldowns()
	e.epoch++
	log.Printf("Game quit with %d coins", e.state.Coins)
	e.emit(GameOver{FinalCoins: e.state.Coins, Quit: true})
}

func (e *Engine) resetState() {
	e.state = newState(e.cfg)
	e.upgrades.Clear()
	e.recomputeAmounts()
}

// begin starts a playthrough over the current state
func (e *Engine) begin() {
	e.state.GameOver = false
	e.coinTick = 0
	e.bonusGiven = false
	e.clearCooldowns()
	e.epoch++
	e.visual = DeriveVisual(e.state, e.cfg.Thresholds)

	e.emit(e.statsEvent())
	e.emit(CoinsChanged{Coins: e.state.Coins})
	e.emit(InventoryChanged{Items: e.state.InventoryIDs()})
	e.emit(FurnitureChanged{Placed: slices.Clone(e.state.PlacedItems)})
	e.emit(ShopChanged{})
	e.emit(VisualChanged{Visual: e.visual})
	for _, a := range Actions {
		e.emit(CooldownTicked{Action: a, Ready: true})
	}
}

func (e *Engine) clearCooldowns() {
	for _, a := range Actions {
		*e.cooldowns[a] = Cooldown{}
	}
}

func (e *Engine) emit(ev Event) {
	for _, n := range e.notifiers {
		n.Notify(ev)
	}
}

func (e *Engine) statsEvent() StatsChanged {
	return StatsChanged{Hunger: e.state.Hunger, Thirst: e.state.Thirst, Fun: e.state.Fun}
}

// refreshVisual re-derives the pet visual, notifying only on change
func (e *Engine) refreshVisual() {
	v := DeriveVisual(e.state, e.cfg.Thresholds)
	if v != e.visual {
		e.visual = v
		e.emit(VisualChanged{Visual: v})
	}
}

// recomputeAmounts derives feed/water amounts from the owned upgrades: the
// highest-value matching upgrade wins, otherwise the configured base.
func (e *Engine) recomputeAmounts() {
	for _, a := range Actions {
		amount := e.cfg.baseAmount(a)
		best, found := 0, false
		for _, id := range e.upgrades.ids {
			item, ok := e.cfg.Item(id)
			if !ok {
				continue
			}
			up, ok := item.Effect().(UpgradeEffect)
			if !ok || up.AppliesTo != a {
				continue
			}
			if !found || up.Amount > best {
				best, found = up.Amount, true
			}
		}
		if found {
			amount = best
		}
		e.amounts[a] = amount
	}
}

// Snapshot is a read-only copy of the engine state
type Snapshot struct {
	Hunger      int                 `json:"hunger"`
	Thirst      int                 `json:"thirst"`
	Fun         int                 `json:"fun"`
	Coins       int                 `json:"coins"`
	Inventory   []ShopItem          `json:"inventory"`
	PlacedItems []string            `json:"placedItems"`
	Upgrades    []string            `json:"upgrades"`
	Amounts     map[Action]int      `json:"amounts"`
	Cooldowns   map[Action]Cooldown `json:"cooldowns"`
	Visual      Visual              `json:"visual"`
	GameOver    bool                `json:"gameOver"`
	CoinTick    int                 `json:"coinTick"`
	Capacity    int                 `json:"capacity"`
}

// Snapshot returns a copy of the current state safe to hand to other
// goroutines.
func (e *Engine) Snapshot() Snapshot {
	st := e.state.clone()
	snap := Snapshot{
		Hunger:      st.Hunger,
		Thirst:      st.Thirst,
		Fun:         st.Fun,
		Coins:       st.Coins,
		Inventory:   st.Inventory,
		PlacedItems: st.PlacedItems,
		Upgrades:    e.upgrades.IDs(),
		Amounts:     make(map[Action]int, len(e.amounts)),
		Cooldowns:   make(map[Action]Cooldown, len(e.cooldowns)),
		Visual:      e.visual,
		GameOver:    st.GameOver,
		CoinTick:    e.coinTick,
		Capacity:    e.cfg.Settings.InventorySize,
	}
	for a, v := range e.amounts {
		snap.Amounts[a] = v
	}
	for a, cd := range e.cooldowns {
		snap.Cooldowns[a] = *cd
	}
	return snap
}
