package pet

import (
	"fmt"
	"log"
	"slices"
)

// Offer is a catalog entry with its current buy affordance
type Offer struct {
	Item       ShopItem `json:"item"`
	Affordable bool     `json:"affordable"`
	Owned      bool     `json:"owned"`
	Placed     bool     `json:"placed"`
}

// Enabled reports whether the buy affordance is usable
func (o Offer) Enabled() bool {
	return o.Affordable && !o.Owned && !o.Placed
}

// Listing returns the shop catalog with availability. Buying is disabled
// when funds are short, an upgrade is already owned or furniture is placed.
func (e *Engine) Listing() []Offer {
	offers := make([]Offer, 0, len(e.cfg.ShopItems))
	for _, item := range e.cfg.ShopItems {
		offers = append(offers, Offer{
			Item:       item,
			Affordable: e.state.Coins >= item.Cost,
			Owned:      item.Type == ItemUpgrade && e.upgrades.Has(item.ID),
			Placed:     item.Type == ItemFurniture && e.state.HasPlaced(item.ID),
		})
	}
	return offers
}

// Purchase buys a catalog item into the inventory
func (e *Engine) Purchase(id string) error {
	if e.state.GameOver {
		return ErrGameOver
	}
	item, ok := e.cfg.Item(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	if len(e.state.Inventory) >= e.cfg.Settings.InventorySize {
		e.emit(Message{Text: "Inventory full!", Centered: true})
		return ErrInventoryFull
	}
	if e.state.Coins < item.Cost {
		e.emit(Message{Text: "Not enough coins!", Centered: true})
		return ErrInsufficientFunds
	}

	e.state.Coins -= item.Cost
	e.state.Inventory = append(e.state.Inventory, item)
	log.Printf("Purchased %s for %d coins (%d left)", item.ID, item.Cost, e.state.Coins)

	e.emit(ItemPurchased{ID: item.ID, Cost: item.Cost})
	e.emit(CoinsChanged{Coins: e.state.Coins})
	e.emit(InventoryChanged{Items: e.state.InventoryIDs()})
	e.emit(ShopChanged{})
	e.emit(Message{Text: fmt.Sprintf("Bought %s!", item.Name), Centered: true})
	e.persist()
	return nil
}

// UseItem consumes the item in an inventory slot. Only that slot is removed.
func (e *Engine) UseItem(index int) error {
	if e.state.GameOver {
		return ErrGameOver
	}
	if index < 0 || index >= len(e.state.Inventory) {
		return ErrEmptySlot
	}

	held := e.state.Inventory[index]
	item, ok := e.cfg.Item(held.ID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, held.ID)
	}
	effect := item.Effect()
	if effect == nil {
		return fmt.Errorf("%w: %q has type %q", ErrUnknownItem, item.ID, item.Type)
	}

	if item.Type == ItemUpgrade {
		e.upgrades.Add(item.ID)
	}
	e.apply(effect)

	e.state.Inventory = slices.Delete(e.state.Inventory, index, index+1)
	e.emit(ItemUsed{ID: item.ID, Type: item.Type})
	e.emit(InventoryChanged{Items: e.state.InventoryIDs()})
	e.emit(ShopChanged{})
	e.persist()
	return nil
}

// apply is the single interpreter of item effects
func (e *Engine) apply(effect Effect) {
	switch ef := effect.(type) {
	case ConsumableEffect:
		addStat(&e.state.Fun, ef.Delta)
		e.emit(e.statsEvent())
		e.emit(Message{Text: fmt.Sprintf("+%d fun", ef.Delta), Centered: true})

	case UpgradeEffect:
		e.recomputeAmounts()
		log.Printf("Upgrade %s active: %s now adds %d", ef.ID, ef.AppliesTo, e.amounts[ef.AppliesTo])
		e.emit(Message{Text: "Upgrade complete!", Centered: true})
		for _, a := range Actions {
			if !e.cooldowns[a].Active {
				e.emit(CooldownTicked{Action: a, Ready: true})
			}
		}

	case FurnitureEffect:
		if e.state.HasPlaced(ef.ID) {
			e.emit(Message{Text: "Already placed!", Centered: true})
			return
		}
		e.state.PlacedItems = append(e.state.PlacedItems, ef.ID)
		log.Printf("Placed furniture %s", ef.ID)
		e.emit(FurnitureChanged{Placed: slices.Clone(e.state.PlacedItems)})
		e.emit(Message{Text: fmt.Sprintf("%s placed!", ef.Name), Centered: true})
	}
}
