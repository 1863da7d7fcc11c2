package pet

import "time"

// Game constants
const (
	MaxStat = 100
	MinStat = 0

	SaveKey = "catGameSave" // Fixed storage key for the save record

	// Fallback defaults used when configuration is absent
	DefaultHunger = 100
	DefaultThirst = 100
	DefaultFun    = 100
	DefaultCoins  = 0

	DefaultFeedAmount            = 20
	DefaultWaterAmount           = 25
	DefaultPetAmount             = 3
	DefaultBackgroundClickAmount = 1

	DefaultFeedCooldown  = 10 // seconds
	DefaultWaterCooldown = 5  // seconds

	DefaultDecayRate     = 1
	DefaultDecayInterval = 1000 // milliseconds
	DefaultInventorySize = 3

	DefaultAllMaxBonus = 10

	// Pet visual thresholds (hunger and thirst must both reach them)
	DefaultCatHappy   = 90
	DefaultCatNeutral = 60
	DefaultCatSleep   = 30

	// Stat bar colouring
	DefaultBarDanger  = 30
	DefaultBarWarning = 60

	// Coin generation tiers, keyed on the lowest stat
	DefaultCoinGenMax  = 90
	DefaultCoinGenHigh = 60
	DefaultCoinGenMid  = 30
	DefaultCoinGenLow  = 10

	DefaultMonologueMin      = 3000 // milliseconds
	DefaultMonologueMax      = 6000 // milliseconds
	DefaultMonologueDuration = 1000 // milliseconds
)

// Fixed periods that are not configurable
const (
	CoinInterval    = time.Second
	CooldownStep    = time.Second
	DefaultAutosave = 5 * time.Second
	MessageLifetime = time.Second
)

// Furniture with passive per-tick effects
const (
	FurnitureCatTower   = "cat_tower"
	FurnitureAutoFeeder = "auto_feeder"
	FurnitureAutoWater  = "auto_water"
)

// Upgrades known by id when appliesTo is not configured
const (
	UpgradePremiumFood  = "premium_food"
	UpgradePremiumWater = "premium_water"
)
