package pet

import "fmt"

// CoinTick runs one coin generation period. The all-max bonus is granted
// once per continuous all-100 streak; the tier is chosen from the lowest stat
// and paced by the shared tick counter. No-op after game over.
func (e *Engine) CoinTick() {
	if e.state.GameOver {
		return
	}

	if e.state.AllMax() {
		if !e.bonusGiven {
			e.award(e.cfg.Bonus.AllMax, SourceBonus)
			e.emit(Message{Text: bonusText(e.cfg.Bonus.AllMax), Centered: true})
			e.bonusGiven = true
		}
	} else {
		e.bonusGiven = false
	}

	e.coinTick++

	if amount := e.tierAward(e.state.MinStat(), e.coinTick); amount > 0 {
		e.award(amount, SourceTier)
	}

	e.emit(CoinsChanged{Coins: e.state.Coins})
}

// tierAward returns the coins the tier for minStat pays on the given tick.
// Tiers are exclusive and evaluated highest first.
func (e *Engine) tierAward(minStat, tick int) int {
	t := e.cfg.Thresholds
	switch {
	case minStat >= t.CoinGenMax:
		return 2
	case minStat >= t.CoinGenHigh:
		return 1
	case minStat >= t.CoinGenMid:
		if tick%2 == 0 {
			return 1
		}
	case minStat >= t.CoinGenLow:
		if tick%3 == 0 {
			return 1
		}
	}
	return 0
}

func (e *Engine) award(amount int, source string) {
	e.state.Coins += amount
	e.emit(CoinsAwarded{Amount: amount, Source: source})
}

func bonusText(amount int) string {
	return fmt.Sprintf("Bonus +%d coins!", amount)
}
