package pet

import "time"

// Config is the fully parsed set of game tunables. Every field falls back to
// a hardcoded default when absent, see WithDefaults.
type Config struct {
	Defaults   StatDefaults    `json:"defaults" yaml:"defaults" toml:"defaults"`
	Actions    ActionAmounts   `json:"actions" yaml:"actions" toml:"actions"`
	Cooldowns  CooldownConfig  `json:"cooldowns" yaml:"cooldowns" toml:"cooldowns"`
	Settings   Settings        `json:"settings" yaml:"settings" toml:"settings"`
	Thresholds Thresholds      `json:"thresholds" yaml:"thresholds" toml:"thresholds"`
	Bonus      Bonus           `json:"bonus" yaml:"bonus" toml:"bonus"`
	ShopItems  []ShopItem      `json:"shopItems" yaml:"shopItems" toml:"shopItems"`
	Monologues MonologueConfig `json:"monologues" yaml:"monologues" toml:"monologues"`
}

type StatDefaults struct {
	Hunger int `json:"hunger" yaml:"hunger" toml:"hunger"`
	Thirst int `json:"thirst" yaml:"thirst" toml:"thirst"`
	Fun    int `json:"fun" yaml:"fun" toml:"fun"`
	Coins  int `json:"coins" yaml:"coins" toml:"coins"`
}

type ActionAmounts struct {
	FeedAmount            int `json:"feedAmount" yaml:"feedAmount" toml:"feedAmount"`
	WaterAmount           int `json:"waterAmount" yaml:"waterAmount" toml:"waterAmount"`
	PetAmount             int `json:"petAmount" yaml:"petAmount" toml:"petAmount"`
	BackgroundClickAmount int `json:"backgroundClickAmount" yaml:"backgroundClickAmount" toml:"backgroundClickAmount"`
}

// CooldownConfig holds per-action cooldowns in whole seconds
type CooldownConfig struct {
	Feed  int `json:"feed" yaml:"feed" toml:"feed"`
	Water int `json:"water" yaml:"water" toml:"water"`
}

type Settings struct {
	DecayRate     int `json:"decayRate" yaml:"decayRate" toml:"decayRate"`
	DecayInterval int `json:"decayInterval" yaml:"decayInterval" toml:"decayInterval"` // milliseconds
	InventorySize int `json:"inventorySize" yaml:"inventorySize" toml:"inventorySize"`
	// AutosaveInterval is in milliseconds
	AutosaveInterval int `json:"autosaveInterval" yaml:"autosaveInterval" toml:"autosaveInterval"`
}

type Thresholds struct {
	CatHappy    int `json:"catHappy" yaml:"catHappy" toml:"catHappy"`
	CatNeutral  int `json:"catNeutral" yaml:"catNeutral" toml:"catNeutral"`
	CatSleep    int `json:"catSleep" yaml:"catSleep" toml:"catSleep"`
	BarDanger   int `json:"barDanger" yaml:"barDanger" toml:"barDanger"`
	BarWarning  int `json:"barWarning" yaml:"barWarning" toml:"barWarning"`
	CoinGenMax  int `json:"coinGenMax" yaml:"coinGenMax" toml:"coinGenMax"`
	CoinGenHigh int `json:"coinGenHigh" yaml:"coinGenHigh" toml:"coinGenHigh"`
	CoinGenMid  int `json:"coinGenMid" yaml:"coinGenMid" toml:"coinGenMid"`
	CoinGenLow  int `json:"coinGenLow" yaml:"coinGenLow" toml:"coinGenLow"`
}

type Bonus struct {
	AllMax int `json:"allMax" yaml:"allMax" toml:"allMax"`
}

type MonologueConfig struct {
	Interval MonologueInterval `json:"interval" yaml:"interval" toml:"interval"`
	Duration int               `json:"duration" yaml:"duration" toml:"duration"` // milliseconds
	Ranges   []MonologueRange  `json:"ranges" yaml:"ranges" toml:"ranges"`
}

type MonologueInterval struct {
	Min int `json:"min" yaml:"min" toml:"min"`
	Max int `json:"max" yaml:"max" toml:"max"`
}

// MonologueRange maps an inclusive band of the lowest stat to flavor lines
type MonologueRange struct {
	Min      int      `json:"min" yaml:"min" toml:"min"`
	Max      int      `json:"max" yaml:"max" toml:"max"`
	Messages []string `json:"messages" yaml:"messages" toml:"messages"`
}

// DefaultConfig returns the hardcoded fallback configuration
func DefaultConfig() Config {
	return Config{
		Defaults: StatDefaults{
			Hunger: DefaultHunger,
			Thirst: DefaultThirst,
			Fun:    DefaultFun,
			Coins:  DefaultCoins,
		},
		Actions: ActionAmounts{
			FeedAmount:            DefaultFeedAmount,
			WaterAmount:           DefaultWaterAmount,
			PetAmount:             DefaultPetAmount,
			BackgroundClickAmount: DefaultBackgroundClickAmount,
		},
		Cooldowns: CooldownConfig{
			Feed:  DefaultFeedCooldown,
			Water: DefaultWaterCooldown,
		},
		Settings: Settings{
			DecayRate:        DefaultDecayRate,
			DecayInterval:    DefaultDecayInterval,
			InventorySize:    DefaultInventorySize,
			AutosaveInterval: int(DefaultAutosave / time.Millisecond),
		},
		Thresholds: Thresholds{
			CatHappy:    DefaultCatHappy,
			CatNeutral:  DefaultCatNeutral,
			CatSleep:    DefaultCatSleep,
			BarDanger:   DefaultBarDanger,
			BarWarning:  DefaultBarWarning,
			CoinGenMax:  DefaultCoinGenMax,
			CoinGenHigh: DefaultCoinGenHigh,
			CoinGenMid:  DefaultCoinGenMid,
			CoinGenLow:  DefaultCoinGenLow,
		},
		Bonus:      Bonus{AllMax: DefaultAllMaxBonus},
		ShopItems:  DefaultCatalog(),
		Monologues: defaultMonologues(),
	}
}

// DefaultCatalog is the shop used when configuration provides none
func DefaultCatalog() []ShopItem {
	return []ShopItem{
		{ID: "treat", Name: "Treat", Desc: "+20 fun", Cost: 15, Type: ItemConsumable, Value: 20},
		{ID: UpgradePremiumFood, Name: "Premium Food", Desc: "Feed gives +40", Cost: 80, Type: ItemUpgrade, Value: 40, AppliesTo: ActionFeed},
		{ID: UpgradePremiumWater, Name: "Premium Water", Desc: "Water gives +45", Cost: 80, Type: ItemUpgrade, Value: 45, AppliesTo: ActionWater},
		{ID: FurnitureCatTower, Name: "Cat Tower", Desc: "+1 fun every 2s", Cost: 150, Type: ItemFurniture},
		{ID: FurnitureAutoFeeder, Name: "Auto Feeder", Desc: "+1 hunger every 2s", Cost: 200, Type: ItemFurniture},
		{ID: FurnitureAutoWater, Name: "Water Fountain", Desc: "+1 thirst every 1s", Cost: 250, Type: ItemFurniture},
	}
}

func defaultMonologues() MonologueConfig {
	return MonologueConfig{
		Interval: MonologueInterval{Min: DefaultMonologueMin, Max: DefaultMonologueMax},
		Duration: DefaultMonologueDuration,
		Ranges: []MonologueRange{
			{Min: 80, Max: 100, Messages: []string{"Purr...", "Life is good.", "Nap time soon."}},
			{Min: 40, Max: 79, Messages: []string{"Is it dinner yet?", "Play with me!", "Meow?"}},
			{Min: 10, Max: 39, Messages: []string{"I'm so hungry...", "Water, please...", "Nobody loves me."}},
			{Min: 0, Max: 9, Messages: []string{"...", "Goodbye, cruel world..."}},
		},
	}
}

// WithDefaults returns a copy of c where every absent (zero) field is filled
// from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()

	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}

	fill(&c.Defaults.Hunger, d.Defaults.Hunger)
	fill(&c.Defaults.Thirst, d.Defaults.Thirst)
	fill(&c.Defaults.Fun, d.Defaults.Fun)
	if c.Defaults.Coins < 0 {
		c.Defaults.Coins = d.Defaults.Coins
	}
	c.Defaults.Hunger = clampStat(c.Defaults.Hunger)
	c.Defaults.Thirst = clampStat(c.Defaults.Thirst)
	c.Defaults.Fun = clampStat(c.Defaults.Fun)

	fill(&c.Actions.FeedAmount, d.Actions.FeedAmount)
	fill(&c.Actions.WaterAmount, d.Actions.WaterAmount)
	fill(&c.Actions.PetAmount, d.Actions.PetAmount)
	fill(&c.Actions.BackgroundClickAmount, d.Actions.BackgroundClickAmount)

	fill(&c.Cooldowns.Feed, d.Cooldowns.Feed)
	fill(&c.Cooldowns.Water, d.Cooldowns.Water)

	fill(&c.Settings.DecayRate, d.Settings.DecayRate)
	fill(&c.Settings.DecayInterval, d.Settings.DecayInterval)
	fill(&c.Settings.InventorySize, d.Settings.InventorySize)
	fill(&c.Settings.AutosaveInterval, d.Settings.AutosaveInterval)

	fill(&c.Thresholds.CatHappy, d.Thresholds.CatHappy)
	fill(&c.Thresholds.CatNeutral, d.Thresholds.CatNeutral)
	fill(&c.Thresholds.CatSleep, d.Thresholds.CatSleep)
	fill(&c.Thresholds.BarDanger, d.Thresholds.BarDanger)
	fill(&c.Thresholds.BarWarning, d.Thresholds.BarWarning)
	fill(&c.Thresholds.CoinGenMax, d.Thresholds.CoinGenMax)
	fill(&c.Thresholds.CoinGenHigh, d.Thresholds.CoinGenHigh)
	fill(&c.Thresholds.CoinGenMid, d.Thresholds.CoinGenMid)
	fill(&c.Thresholds.CoinGenLow, d.Thresholds.CoinGenLow)

	fill(&c.Bonus.AllMax, d.Bonus.AllMax)

	if len(c.ShopItems) == 0 {
		c.ShopItems = d.ShopItems
	} else {
		items := make([]ShopItem, len(c.ShopItems))
		for i, item := range c.ShopItems {
			items[i] = item.normalized()
		}
		c.ShopItems = items
	}

	fill(&c.Monologues.Interval.Min, d.Monologues.Interval.Min)
	fill(&c.Monologues.Interval.Max, d.Monologues.Interval.Max)
	if c.Monologues.Interval.Max < c.Monologues.Interval.Min {
		c.Monologues.Interval.Max = c.Monologues.Interval.Min
	}
	fill(&c.Monologues.Duration, d.Monologues.Duration)
	if len(c.Monologues.Ranges) == 0 {
		c.Monologues.Ranges = d.Monologues.Ranges
	}

	return c
}

// DecayPeriod is the decay tick period
func (c Config) DecayPeriod() time.Duration {
	return time.Duration(c.Settings.DecayInterval) * time.Millisecond
}

// AutosavePeriod is the autosave tick period
func (c Config) AutosavePeriod() time.Duration {
	return time.Duration(c.Settings.AutosaveInterval) * time.Millisecond
}

// CooldownSeconds returns the configured cooldown for an action
func (c Config) CooldownSeconds(a Action) int {
	switch a {
	case ActionFeed:
		return c.Cooldowns.Feed
	case ActionWater:
		return c.Cooldowns.Water
	default:
		return 0
	}
}

// baseAmount returns the un-upgraded amount an action adds
func (c Config) baseAmount(a Action) int {
	switch a {
	case ActionFeed:
		return c.Actions.FeedAmount
	case ActionWater:
		return c.Actions.WaterAmount
	default:
		return 0
	}
}

// Item finds a catalog entry by id
func (c Config) Item(id string) (ShopItem, bool) {
	for _, item := range c.ShopItems {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}
