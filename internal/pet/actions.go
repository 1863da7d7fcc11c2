package pet

import (
	"fmt"
	"log"
)

// Feed adds the feed amount to hunger and starts the feed cooldown
func (e *Engine) Feed() error {
	return e.replenish(ActionFeed, &e.state.Hunger)
}

// Water adds the water amount to thirst and starts the water cooldown
func (e *Engine) Water() error {
	return e.replenish(ActionWater, &e.state.Thirst)
}

func (e *Engine) replenish(a Action, stat *int) error {
	if e.state.GameOver {
		return ErrGameOver
	}
	cd := e.cooldowns[a]
	if cd.Active {
		return ErrOnCooldown
	}

	addStat(stat, e.amounts[a])
	e.emit(e.statsEvent())
	e.refreshVisual()

	*cd = Cooldown{Active: true, Remaining: e.cfg.CooldownSeconds(a)}
	e.emit(CooldownTicked{Action: a, SecondsLeft: cd.Remaining})

	e.persist()
	log.Printf("%s: +%d (hunger %d, thirst %d)", a, e.amounts[a], e.state.Hunger, e.state.Thirst)
	return nil
}

// CooldownTick advances an action's cooldown by one second and reports
// whether it is still running. A cooldown of N seconds takes exactly N ticks.
func (e *Engine) CooldownTick(a Action) bool {
	cd, ok := e.cooldowns[a]
	if !ok || !cd.Active {
		return false
	}
	cd.Remaining--
	if cd.Remaining <= 0 {
		*cd = Cooldown{}
		e.emit(CooldownTicked{Action: a, Ready: true})
		return false
	}
	e.emit(CooldownTicked{Action: a, SecondsLeft: cd.Remaining})
	return true
}

// Cooldown returns the cooldown state of an action
func (e *Engine) Cooldown(a Action) Cooldown {
	if cd, ok := e.cooldowns[a]; ok {
		return *cd
	}
	return Cooldown{}
}

// Interact handles a click. Petting the cat adds the pet amount to fun, a
// click on the background adds the background amount; clicks on buttons
// are ignored.
func (e *Engine) Interact(target Target, at Point) error {
	if e.state.GameOver {
		return ErrGameOver
	}

	var amount int
	switch target {
	case TargetPet:
		amount = e.cfg.Actions.PetAmount
	case TargetBackground:
		amount = e.cfg.Actions.BackgroundClickAmount
	default:
		return ErrIgnoredTarget
	}

	addStat(&e.state.Fun, amount)
	e.emit(Message{Text: fmt.Sprintf("+%d fun", amount), At: at})
	e.emit(e.statsEvent())
	return nil
}
