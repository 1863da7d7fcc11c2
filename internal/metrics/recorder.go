// Package metrics counts engine events in memory for the status endpoint.
package metrics

import (
	"sync"

	"catidle/internal/pet"
)

type Snapshot struct {
	CoinsEarned    uint64            `json:"coins_earned"`
	BonusesAwarded uint64            `json:"bonuses_awarded"`
	CoinsSpent     uint64            `json:"coins_spent"`
	Purchases      map[string]uint64 `json:"purchases"`
	ItemsUsed      map[string]uint64 `json:"items_used"`
	Saves          uint64            `json:"saves"`
	GamesOver      uint64            `json:"games_over"`
	Quits          uint64            `json:"quits"`
	ByEvent        map[string]uint64 `json:"by_event"`
}

// Recorder is a pet.Notifier that tallies events. It is safe for
// concurrent use.
type Recorder struct {
	mu        sync.Mutex
	earned    uint64
	bonuses   uint64
	spent     uint64
	purchases map[string]uint64
	used      map[string]uint64
	saves     uint64
	over      uint64
	quits     uint64
	byEvent   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		purchases: map[string]uint64{},
		used:      map[string]uint64{},
		byEvent:   map[string]uint64{},
	}
}

func (r *Recorder) Notify(ev pet.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byEvent[ev.EventName()]++
	switch e := ev.(type) {
	case pet.CoinsAwarded:
		r.earned += uint64(e.Amount)
		if e.Source == pet.SourceBonus {
			r.bonuses++
		}
	case pet.ItemPurchased:
		r.spent += uint64(e.Cost)
		r.purchases[e.ID]++
	case pet.ItemUsed:
		r.used[e.ID]++
	case pet.Saved:
		r.saves++
	case pet.GameOver:
		if e.Quit {
			r.quits++
		} else {
			r.over++
		}
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		CoinsEarned:    r.earned,
		BonusesAwarded: r.bonuses,
		CoinsSpent:     r.spent,
		Purchases:      copyCounts(r.purchases),
		ItemsUsed:      copyCounts(r.used),
		Saves:          r.saves,
		GamesOver:      r.over,
		Quits:          r.quits,
		ByEvent:        copyCounts(r.byEvent),
	}
}

func copyCounts(m map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
