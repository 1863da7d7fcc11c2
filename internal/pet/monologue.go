package pet

import "time"

// MonologueDelay returns a random wait in [interval.min, interval.max] before
// the next flavor line.
func (e *Engine) MonologueDelay() time.Duration {
	iv := e.cfg.Monologues.Interval
	span := iv.Max - iv.Min + 1
	ms := iv.Min + int(RandFloat64()*float64(span))
	if ms > iv.Max {
		ms = iv.Max
	}
	return time.Duration(ms) * time.Millisecond
}

// Monologue picks a flavor line from the first range containing the lowest
// stat and emits it. It reports false when the game is over or no range
// matches.
func (e *Engine) Monologue() (string, bool) {
	if e.state.GameOver {
		return "", false
	}

	lowest := e.state.MinStat()
	var messages []string
	for _, r := range e.cfg.Monologues.Ranges {
		if lowest >= r.Min && lowest <= r.Max {
			messages = r.Messages
			break
		}
	}
	if len(messages) == 0 {
		return "", false
	}

	idx := int(RandFloat64() * float64(len(messages)))
	if idx >= len(messages) {
		idx = len(messages) - 1
	}
	text := messages[idx]
	e.emit(MonologueSpoken{Text: text, DurationMS: e.cfg.Monologues.Duration})
	return text, true
}
