package pet

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
)

// Save slot errors
var (
	ErrNoSave      = errors.New("no save found")
	ErrCorruptSave = errors.New("corrupt save")
)

// Slot is a durable key-value slot holding one encoded save record. Read
// returns ErrNoSave when nothing has been written yet.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// SaveRecord is the persisted shape of a game
type SaveRecord struct {
	State     SavedState `json:"state"`
	Upgrades  []string   `json:"upgrades"`
	Timestamp int64      `json:"timestamp"` // epoch milliseconds
}

// SavedState mirrors State. A missing inventory or placedItems key decodes
// as nil and is treated as empty.
type SavedState struct {
	Hunger      int        `json:"hunger"`
	Thirst      int        `json:"thirst"`
	Fun         int        `json:"fun"`
	Coins       int        `json:"coins"`
	Inventory   []ShopItem `json:"inventory"`
	PlacedItems []string   `json:"placedItems"`
	GameOver    bool       `json:"gameOver"`
}

// Record builds the save record for the current state
func (e *Engine) Record() SaveRecord {
	st := e.state.clone()
	return SaveRecord{
		State: SavedState{
			Hunger:      st.Hunger,
			Thirst:      st.Thirst,
			Fun:         st.Fun,
			Coins:       st.Coins,
			Inventory:   st.Inventory,
			PlacedItems: st.PlacedItems,
			GameOver:    st.GameOver,
		},
		Upgrades:  e.upgrades.IDs(),
		Timestamp: TimeNow().UnixMilli(),
	}
}

// EncodeRecord serialises a save record
func EncodeRecord(r SaveRecord) ([]byte, error) {
	if r.Upgrades == nil {
		r.Upgrades = []string{}
	}
	if r.State.Inventory == nil {
		r.State.Inventory = []ShopItem{}
	}
	if r.State.PlacedItems == nil {
		r.State.PlacedItems = []string{}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a save record. Malformed data yields ErrCorruptSave.
func DecodeRecord(data []byte) (SaveRecord, error) {
	var r SaveRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return SaveRecord{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return r, nil
}

// Save writes the current state to the slot
func (e *Engine) Save() error {
	if e.slot == nil {
		return nil
	}
	rec := e.Record()
	data, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	if err := e.slot.Write(data); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	e.emit(Saved{Timestamp: rec.Timestamp})
	return nil
}

// Autosave is the periodic save. It does nothing once the game is over so a
// stale tick cannot overwrite the final save.
func (e *Engine) Autosave() {
	if e.state.GameOver {
		return
	}
	e.persist()
}

// persist saves and logs failures; saving never interrupts play
func (e *Engine) persist() {
	if err := e.Save(); err != nil {
		log.Printf("Error saving state: %v", err)
	}
}

// Load restores state and upgrades from the slot. Inventory items are
// re-derived from the live catalog by id and feed/water amounts are
// recomputed from the owned upgrades. On any error the engine is unchanged.
func (e *Engine) Load() error {
	if e.slot == nil {
		return ErrNoSave
	}
	data, err := e.slot.Read()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrNoSave
	}
	rec, err := DecodeRecord(data)
	if err != nil {
		return err
	}
	e.restore(rec)
	return nil
}

func (e *Engine) restore(rec SaveRecord) {
	st := State{
		Hunger:      clampStat(rec.State.Hunger),
		Thirst:      clampStat(rec.State.Thirst),
		Fun:         clampStat(rec.State.Fun),
		Coins:       max(rec.State.Coins, 0),
		Inventory:   []ShopItem{},
		PlacedItems: []string{},
	}

	for _, saved := range rec.State.Inventory {
		if item, ok := e.cfg.Item(saved.ID); ok {
			st.Inventory = append(st.Inventory, item)
		} else {
			st.Inventory = append(st.Inventory, saved)
		}
	}
	if len(st.Inventory) > e.cfg.Settings.InventorySize {
		log.Printf("Save holds %d items but inventory size is %d; dropping %v",
			len(st.Inventory), e.cfg.Settings.InventorySize, State{Inventory: st.Inventory[e.cfg.Settings.InventorySize:]}.InventoryIDs())
		st.Inventory = st.Inventory[:e.cfg.Settings.InventorySize]
	}

	for _, id := range rec.State.PlacedItems {
		if !slices.Contains(st.PlacedItems, id) {
			st.PlacedItems = append(st.PlacedItems, id)
		}
	}

	e.state = st
	e.upgrades.Clear()
	for _, id := range rec.Upgrades {
		e.upgrades.Add(id)
	}
	e.recomputeAmounts()
	e.visual = DeriveVisual(e.state, e.cfg.Thresholds)
}
