package pet

// Visual is the qualitative pet state shown by the presentation layer
type Visual string

const (
	VisualHappy   Visual = "happy"
	VisualNeutral Visual = "neutral"
	VisualSleep   Visual = "sleep"
)

// Level is the colour band of a stat bar
type Level int

const (
	LevelOK Level = iota
	LevelWarning
	LevelDanger
)

// DeriveVisual picks the pet visual from hunger and thirst. Stats below every
// threshold still show as sleep; there is no separate critical visual.
func DeriveVisual(s State, t Thresholds) Visual {
	switch {
	case s.Hunger >= t.CatHappy && s.Thirst >= t.CatHappy:
		return VisualHappy
	case s.Hunger >= t.CatNeutral && s.Thirst >= t.CatNeutral:
		return VisualNeutral
	case s.Hunger >= t.CatSleep && s.Thirst >= t.CatSleep:
		return VisualSleep
	default:
		return VisualSleep
	}
}

// BarLevel returns the colour band for a stat value
func BarLevel(value int, t Thresholds) Level {
	switch {
	case value < t.BarDanger:
		return LevelDanger
	case value < t.BarWarning:
		return LevelWarning
	default:
		return LevelOK
	}
}

// VisualEmoji returns the terminal glyph for a visual
func VisualEmoji(v Visual) string {
	switch v {
	case VisualHappy:
		return "😸"
	case VisualNeutral:
		return "🐱"
	default:
		return "😴"
	}
}
