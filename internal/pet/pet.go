package pet

import (
	"math/rand"
	"slices"
	"time"
)

// Testable time and random functions
var (
	TimeNow     = func() time.Time { return time.Now().UTC() }
	RandFloat64 = rand.Float64
)

// Action identifies a cooldown-gated player action
type Action string

const (
	ActionFeed  Action = "feed"
	ActionWater Action = "water"
)

// Actions lists every cooldown-gated action in display order
var Actions = []Action{ActionFeed, ActionWater}

// Target is what a click landed on
type Target int

const (
	TargetBackground Target = iota
	TargetPet
	TargetButton
)

var targetNames = map[Target]string{
	TargetBackground: "background",
	TargetPet:        "pet",
	TargetButton:     "button",
}

func (t Target) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTarget maps a target name to a Target
func ParseTarget(name string) (Target, bool) {
	for t, n := range targetNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Point is a screen position supplied by the presentation layer
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// State is the single mutable record of the pet and its economy
type State struct {
	Hunger      int        `json:"hunger"`
	Thirst      int        `json:"thirst"`
	Fun         int        `json:"fun"`
	Coins       int        `json:"coins"`
	Inventory   []ShopItem `json:"inventory"`
	PlacedItems []string   `json:"placedItems"`
	GameOver    bool       `json:"gameOver"`
}

// newState creates a fresh state from configured defaults
func newState(cfg Config) State {
	return State{
		Hunger:      clampStat(cfg.Defaults.Hunger),
		Thirst:      clampStat(cfg.Defaults.Thirst),
		Fun:         clampStat(cfg.Defaults.Fun),
		Coins:       max(cfg.Defaults.Coins, 0),
		Inventory:   []ShopItem{},
		PlacedItems: []string{},
	}
}

// MinStat returns the lowest of hunger, thirst and fun
func (s State) MinStat() int {
	return min(s.Hunger, s.Thirst, s.Fun)
}

// AllMax reports whether every stat is full
func (s State) AllMax() bool {
	return s.Hunger == MaxStat && s.Thirst == MaxStat && s.Fun == MaxStat
}

// AllEmpty reports whether every stat is exhausted
func (s State) AllEmpty() bool {
	return s.Hunger == MinStat && s.Thirst == MinStat && s.Fun == MinStat
}

// HasPlaced reports whether a furniture id is placed
func (s State) HasPlaced(id string) bool {
	return slices.Contains(s.PlacedItems, id)
}

// InventoryIDs returns the ids of the held items in slot order
func (s State) InventoryIDs() []string {
	ids := make([]string, len(s.Inventory))
	for i, item := range s.Inventory {
		ids[i] = item.ID
	}
	return ids
}

func (s State) clone() State {
	s.Inventory = slices.Clone(s.Inventory)
	s.PlacedItems = slices.Clone(s.PlacedItems)
	return s
}

// Cooldown is the countdown state of one action
type Cooldown struct {
	Active    bool `json:"active"`
	Remaining int  `json:"remaining"`
}

// UpgradeSet holds permanently activated upgrade ids in activation order
type UpgradeSet struct {
	ids []string
}

func (u *UpgradeSet) Add(id string) {
	if !u.Has(id) {
		u.ids = append(u.ids, id)
	}
}

func (u UpgradeSet) Has(id string) bool {
	return slices.Contains(u.ids, id)
}

func (u UpgradeSet) IDs() []string {
	return slices.Clone(u.ids)
}

func (u *UpgradeSet) Clear() {
	u.ids = nil
}

func clampStat(v int) int {
	return max(MinStat, min(v, MaxStat))
}

// addStat adds delta to a stat and clamps it to [MinStat, MaxStat]
func addStat(stat *int, delta int) {
	*stat = clampStat(*stat + delta)
}
