package pet

import "strings"

// ItemType classifies a catalog entry
type ItemType string

const (
	ItemConsumable ItemType = "consumable"
	ItemUpgrade    ItemType = "upgrade"
	ItemFurniture  ItemType = "furniture"
)

// ShopItem is an immutable catalog entry. Its behaviour is derived from the
// data by Effect, never stored.
type ShopItem struct {
	ID        string   `json:"id" yaml:"id" toml:"id"`
	Name      string   `json:"name" yaml:"name" toml:"name"`
	Desc      string   `json:"desc" yaml:"desc" toml:"desc"`
	Cost      int      `json:"cost" yaml:"cost" toml:"cost"`
	Type      ItemType `json:"type" yaml:"type" toml:"type"`
	Value     int      `json:"value" yaml:"value" toml:"value"`
	Image     string   `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	AppliesTo Action   `json:"appliesTo,omitempty" yaml:"appliesTo,omitempty" toml:"appliesTo,omitempty"`
}

// normalized fills AppliesTo for upgrades configured without it
func (it ShopItem) normalized() ShopItem {
	if it.Type == ItemUpgrade && it.AppliesTo == "" {
		it.AppliesTo = upgradeTarget(it.ID)
	}
	if it.Name == "" {
		it.Name = it.ID
	}
	return it
}

func upgradeTarget(id string) Action {
	switch {
	case id == UpgradePremiumFood:
		return ActionFeed
	case id == UpgradePremiumWater:
		return ActionWater
	case strings.Contains(id, "water"):
		return ActionWater
	case strings.Contains(id, "food"), strings.Contains(id, "feed"):
		return ActionFeed
	default:
		return ""
	}
}

// Effect is the tagged behaviour of an item when used
type Effect interface {
	Kind() ItemType
}

// ConsumableEffect adds Delta to fun
type ConsumableEffect struct {
	Delta int
}

// UpgradeEffect raises the amount an action adds
type UpgradeEffect struct {
	ID        string
	AppliesTo Action
	Amount    int
}

// FurnitureEffect places a piece of furniture
type FurnitureEffect struct {
	ID   string
	Name string
}

func (ConsumableEffect) Kind() ItemType { return ItemConsumable }
func (UpgradeEffect) Kind() ItemType    { return ItemUpgrade }
func (FurnitureEffect) Kind() ItemType  { return ItemFurniture }

// Effect derives the item's behaviour from its catalog data. Unknown types
// yield nil.
func (it ShopItem) Effect() Effect {
	switch it.Type {
	case ItemConsumable:
		return ConsumableEffect{Delta: it.Value}
	case ItemUpgrade:
		target := it.AppliesTo
		if target == "" {
			target = upgradeTarget(it.ID)
		}
		return UpgradeEffect{ID: it.ID, AppliesTo: target, Amount: it.Value}
	case ItemFurniture:
		return FurnitureEffect{ID: it.ID, Name: it.Name}
	default:
		return nil
	}
}
