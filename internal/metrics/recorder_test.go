package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catidle/internal/pet"
	"catidle/internal/storage"
)

func TestRecorder_Counts(t *testing.T) {
	r := NewRecorder()
	r.Notify(pet.CoinsAwarded{Amount: 2, Source: pet.SourceTier})
	r.Notify(pet.CoinsAwarded{Amount: 10, Source: pet.SourceBonus})
	r.Notify(pet.ItemPurchased{ID: "treat", Cost: 15})
	r.Notify(pet.ItemUsed{ID: "treat", Type: pet.ItemConsumable})
	r.Notify(pet.GameOver{FinalCoins: 3})
	r.Notify(pet.GameOver{FinalCoins: 3, Quit: true})

	s := r.Snapshot()
	assert.Equal(t, uint64(12), s.CoinsEarned)
	assert.Equal(t, uint64(1), s.BonusesAwarded)
	assert.Equal(t, uint64(15), s.CoinsSpent)
	assert.Equal(t, uint64(1), s.Purchases["treat"])
	assert.Equal(t, uint64(1), s.ItemsUsed["treat"])
	assert.Equal(t, uint64(1), s.GamesOver)
	assert.Equal(t, uint64(1), s.Quits)
	assert.Equal(t, uint64(2), s.ByEvent["coins_awarded"])
}

func TestRecorder_SnapshotIsCopy(t *testing.T) {
	r := NewRecorder()
	r.Notify(pet.ItemPurchased{ID: "treat", Cost: 15})

	s := r.Snapshot()
	s.Purchases["treat"] = 99
	assert.Equal(t, uint64(1), r.Snapshot().Purchases["treat"])
}

func TestRecorder_AsEngineNotifier(t *testing.T) {
	r := NewRecorder()
	e := pet.NewEngine(pet.DefaultConfig(), storage.NewMemorySlot(), pet.WithNotifier(r))
	e.Start()

	for i := 0; i < 3; i++ {
		e.CoinTick()
	}
	require.NoError(t, e.Purchase("treat"))

	s := r.Snapshot()
	assert.Equal(t, uint64(10+6), s.CoinsEarned)
	assert.Equal(t, uint64(1), s.BonusesAwarded)
	assert.Equal(t, uint64(15), s.CoinsSpent)
	assert.Equal(t, uint64(2), s.Saves)
}
