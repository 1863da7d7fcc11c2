package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"catidle/internal/pet"
	"catidle/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	e := pet.NewEngine(pet.DefaultConfig(), storage.NewMemorySlot())
	return NewModel(e)
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func decay(m Model, n int) Model {
	for i := 0; i < n; i++ {
		m = send(m, decayTickMsg{epoch: m.epoch})
	}
	return m
}

func TestNewModelStartsGame(t *testing.T) {
	m := newTestModel(t)
	if m.snap.Hunger != pet.DefaultHunger {
		t.Errorf("Expected hunger %d, got %d", pet.DefaultHunger, m.snap.Hunger)
	}
	if m.Init() == nil {
		t.Error("Expected Init to schedule timers")
	}
	if m.epoch == 0 {
		t.Error("Expected a started epoch")
	}
}

func TestDecayTickAndStaleTicks(t *testing.T) {
	m := newTestModel(t)
	m = decay(m, 30)
	if m.snap.Hunger != 70 {
		t.Errorf("Expected hunger 70 after 30 ticks, got %d", m.snap.Hunger)
	}

	m = send(m, decayTickMsg{epoch: m.epoch + 7})
	if m.snap.Hunger != 70 {
		t.Errorf("Stale tick should be dropped, hunger is %d", m.snap.Hunger)
	}
}

func TestFeedKeyStartsCooldown(t *testing.T) {
	m := newTestModel(t)
	m = decay(m, 30)

	m, cmd := press(m, "f")
	if cmd == nil {
		t.Error("Expected feed to schedule animation and cooldown ticks")
	}
	if m.snap.Hunger != 90 {
		t.Errorf("Expected hunger 90, got %d", m.snap.Hunger)
	}
	if m.Animation.Type != AnimFeed {
		t.Errorf("Expected feed animation, got %v", m.Animation.Type)
	}
	if !m.cooldownRunning[pet.ActionFeed] {
		t.Error("Expected feed cooldown ticker to be running")
	}

	m, _ = press(m, "f")
	if m.snap.Hunger != 90 {
		t.Errorf("Feed during cooldown should be ignored, hunger %d", m.snap.Hunger)
	}
	if m.Message != "Not yet!" {
		t.Errorf("Expected cooldown feedback, got %q", m.Message)
	}

	for i := 0; i < pet.DefaultFeedCooldown; i++ {
		m = send(m, cooldownTickMsg{epoch: m.epoch, action: pet.ActionFeed})
	}
	if m.snap.Cooldowns[pet.ActionFeed].Active {
		t.Error("Expected feed cooldown to finish")
	}
	if m.cooldownRunning[pet.ActionFeed] {
		t.Error("Expected cooldown ticker to stop")
	}
}

func TestRestartDropsOldTimers(t *testing.T) {
	m := newTestModel(t)
	m = decay(m, 10)
	old := m.epoch

	m, cmd := press(m, "r")
	if m.epoch == old {
		t.Fatal("Expected restart to start a new epoch")
	}
	if cmd == nil {
		t.Error("Expected restart to schedule fresh timers")
	}
	if m.snap.Hunger != pet.DefaultHunger {
		t.Errorf("Expected fresh hunger, got %d", m.snap.Hunger)
	}

	m = send(m, decayTickMsg{epoch: old})
	if m.snap.Hunger != pet.DefaultHunger {
		t.Error("Tick from the previous playthrough should be dropped")
	}
}

func TestShopPurchaseFeedback(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, "s")
	if !m.InShop {
		t.Fatal("Expected shop to open")
	}
	if !strings.Contains(m.View(), "Shop") {
		t.Error("Expected shop view")
	}

	m, _ = press(m, "enter")
	if m.Message != "Not enough coins!" {
		t.Errorf("Expected funds feedback, got %q", m.Message)
	}

	m, _ = press(m, "esc")
	if m.InShop {
		t.Error("Expected shop to close")
	}
}

func TestUseEmptySlot(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, "2")
	if m.Message != "Nothing in that slot" {
		t.Errorf("Expected empty slot feedback, got %q", m.Message)
	}
}

func TestQuitEndsGame(t *testing.T) {
	m := newTestModel(t)
	m, cmd := press(m, "q")
	if !m.Quitting {
		t.Error("Expected model to be quitting")
	}
	if cmd == nil {
		t.Error("Expected tea.Quit command")
	}
	if !m.engine.GameOver() {
		t.Error("Expected quit to end the game")
	}
	if !strings.Contains(m.View(), "Thanks for playing") {
		t.Error("Expected goodbye view")
	}
}

func TestGameOverView(t *testing.T) {
	m := newTestModel(t)
	m = decay(m, pet.MaxStat)
	if !m.snap.GameOver {
		t.Fatal("Expected game over after stats reach zero")
	}
	if !strings.Contains(m.View(), "Game Over") {
		t.Error("Expected game over view")
	}

	m, _ = press(m, "f")
	if m.snap.Hunger != 0 {
		t.Error("Actions should be ignored after game over")
	}

	m, _ = press(m, "r")
	if m.snap.GameOver {
		t.Error("Expected restart from the game over screen")
	}
}

func TestMainView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{"Hunger", "Thirst", "Fun", "coins", "Inventory", "Feed +20", "Water +25"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestSlotKey(t *testing.T) {
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{"3", 2, true},
		{"4", 0, false},
		{"0", 0, false},
		{"x", 0, false},
		{"12", 0, false},
	}
	for _, tt := range tests {
		got, ok := slotKey(tt.key, 3)
		if ok != tt.ok || got != tt.want {
			t.Errorf("slotKey(%q): Expected (%d, %v), got (%d, %v)", tt.key, tt.want, tt.ok, got, ok)
		}
	}
}
