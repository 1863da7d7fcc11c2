package pet

// Event is a structured notification emitted by the engine for the
// presentation layer. Implementations are plain value types.
type Event interface {
	EventName() string
}

// Notifier receives engine events. Notify runs synchronously inside the
// engine operation that produced the event and must not call back into it.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Coin award sources
const (
	SourceTier  = "tier"
	SourceBonus = "bonus"
)

type (
	// StatsChanged asks for the stat bars to be re-rendered
	StatsChanged struct {
		Hunger int `json:"hunger"`
		Thirst int `json:"thirst"`
		Fun    int `json:"fun"`
	}

	// CoinsChanged asks for the coin count to be re-rendered
	CoinsChanged struct {
		Coins int `json:"coins"`
	}

	// CoinsAwarded is emitted for every coin grant
	CoinsAwarded struct {
		Amount int    `json:"amount"`
		Source string `json:"source"`
	}

	// InventoryChanged asks for the inventory slots to be re-rendered
	InventoryChanged struct {
		Items []string `json:"items"`
	}

	// ShopChanged asks for the shop catalog to be re-rendered
	ShopChanged struct{}

	// FurnitureChanged asks for placed furniture to be re-rendered
	FurnitureChanged struct {
		Placed []string `json:"placed"`
	}

	// ItemPurchased is emitted after a successful purchase
	ItemPurchased struct {
		ID   string `json:"id"`
		Cost int    `json:"cost"`
	}

	// ItemUsed is emitted after an inventory item is consumed
	ItemUsed struct {
		ID   string   `json:"id"`
		Type ItemType `json:"type"`
	}

	// Message is a transient floating text. Centered messages ignore At.
	Message struct {
		Text     string `json:"text"`
		At       Point  `json:"at"`
		Centered bool   `json:"centered"`
	}

	// VisualChanged carries the new qualitative pet state
	VisualChanged struct {
		Visual Visual `json:"visual"`
	}

	// GameOver ends the playthrough. Quit is set when the player quit.
	GameOver struct {
		FinalCoins int  `json:"finalCoins"`
		Quit       bool `json:"quit"`
	}

	// CooldownTicked reports one cooldown step. Ready means the action is
	// usable again.
	CooldownTicked struct {
		Action      Action `json:"action"`
		SecondsLeft int    `json:"secondsLeft"`
		Ready       bool   `json:"ready"`
	}

	// Saved is emitted after a successful write to the save slot
	Saved struct {
		Timestamp int64 `json:"timestamp"`
	}

	// MonologueSpoken is a flavor line shown for DurationMS
	MonologueSpoken struct {
		Text       string `json:"text"`
		DurationMS int    `json:"durationMs"`
	}
)

func (StatsChanged) EventName() string     { return "stats_changed" }
func (CoinsChanged) EventName() string     { return "coins_changed" }
func (CoinsAwarded) EventName() string     { return "coins_awarded" }
func (InventoryChanged) EventName() string { return "inventory_changed" }
func (ShopChanged) EventName() string      { return "shop_changed" }
func (FurnitureChanged) EventName() string { return "furniture_changed" }
func (ItemPurchased) EventName() string    { return "item_purchased" }
func (ItemUsed) EventName() string         { return "item_used" }
func (Message) EventName() string          { return "message" }
func (VisualChanged) EventName() string    { return "visual_changed" }
func (GameOver) EventName() string         { return "game_over" }
func (CooldownTicked) EventName() string   { return "cooldown_ticked" }
func (Saved) EventName() string            { return "saved" }
func (MonologueSpoken) EventName() string  { return "monologue" }
