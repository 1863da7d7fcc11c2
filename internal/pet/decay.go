package pet

import "log"

// DecayTick runs one decay period: stats decay, placed furniture regenerates,
// game over is evaluated and the visual re-derived. No-op after game over.
func (e *Engine) DecayTick() {
	if e.state.GameOver {
		return
	}

	rate := e.cfg.Settings.DecayRate
	addStat(&e.state.Hunger, -rate)
	addStat(&e.state.Thirst, -rate)
	addStat(&e.state.Fun, -rate)

	e.applyFurniture()

	if e.checkGameOver() {
		return
	}

	e.refreshVisual()
	e.emit(e.statsEvent())
}

// applyFurniture applies passive furniture effects. Tower and feeder are
// paced by the coin tick parity so both periodic systems stay phase-locked.
func (e *Engine) applyFurniture() {
	even := e.coinTick%2 == 0
	if e.state.HasPlaced(FurnitureCatTower) && even {
		addStat(&e.state.Fun, 1)
	}
	if e.state.HasPlaced(FurnitureAutoFeeder) && even {
		addStat(&e.state.Hunger, 1)
	}
	if e.state.HasPlaced(FurnitureAutoWater) {
		addStat(&e.state.Thirst, 1)
	}
}

// checkGameOver ends the playthrough once every stat reaches zero
func (e *Engine) checkGameOver() bool {
	if !e.state.AllEmpty() {
		return false
	}
	e.state.GameOver = true
	e.clearCooldowns()
	e.epoch++
	log.Printf("Game over: all needs exhausted, final coins %d", e.state.Coins)

	e.refreshVisual()
	e.emit(e.statsEvent())
	e.emit(GameOver{FinalCoins: e.state.Coins})
	return true
}
