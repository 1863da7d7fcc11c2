// Package loop drives a pet.Engine in real time from a single goroutine.
// Every engine call, whether from a timer or from Do, runs on that goroutine.
package loop

import (
	"context"
	"errors"
	"log"
	"time"

	"catidle/internal/pet"
)

// ErrStopped is returned by Do once Run has returned
var ErrStopped = errors.New("runner stopped")

// Periods are the real-time cadences of the periodic systems
type Periods struct {
	Decay        time.Duration
	Coin         time.Duration
	Autosave     time.Duration
	CooldownStep time.Duration
}

// DefaultPeriods derives the periods from the engine configuration
func DefaultPeriods(cfg pet.Config) Periods {
	return Periods{
		Decay:        cfg.DecayPeriod(),
		Coin:         pet.CoinInterval,
		Autosave:     cfg.AutosavePeriod(),
		CooldownStep: pet.CooldownStep,
	}
}

type timerKind int

const (
	kindDecay timerKind = iota
	kindCoin
	kindAutosave
	kindMonologue
	kindCooldown
)

// fire is a timer expiry tagged with the epoch it was scheduled in
type fire struct {
	kind   timerKind
	action pet.Action
	epoch  uint64
}

type request struct {
	fn   func(*pet.Engine)
	done chan struct{}
}

// Runner owns an engine and its timers
type Runner struct {
	engine  *pet.Engine
	periods Periods

	reqs    chan request
	fires   chan fire
	stopped chan struct{}

	epoch   uint64
	timers  map[string]chan struct{}
	pending []pet.Action
}

// Option configures a Runner
type Option func(*Runner)

// WithPeriods overrides the timer cadences
func WithPeriods(p Periods) Option {
	return func(r *Runner) {
		r.periods = p
	}
}

// NewRunner creates a runner for e. Run must be called to start it.
func NewRunner(e *pet.Engine, opts ...Option) *Runner {
	r := &Runner{
		engine:  e,
		periods: DefaultPeriods(e.Config()),
		reqs:    make(chan request),
		fires:   make(chan fire, 8),
		stopped: make(chan struct{}),
		timers:  map[string]chan struct{}{},
	}
	for _, opt := range opts {
		opt(r)
	}
	e.Subscribe(pet.NotifierFunc(r.observe))
	return r
}

// Run starts the engine and serves timers and requests until ctx is done.
// The game is saved on shutdown unless it is already over.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.stopped)

	if r.engine.Start() {
		log.Printf("Resumed saved game")
	}
	r.sync(ctx)

	for {
		select {
		case <-ctx.Done():
			r.stopAll()
			if !r.engine.GameOver() {
				if err := r.engine.Save(); err != nil {
					log.Printf("Error saving on shutdown: %v", err)
				}
			}
			return nil
		case req := <-r.reqs:
			req.fn(r.engine)
			close(req.done)
			r.sync(ctx)
		case f := <-r.fires:
			r.handle(ctx, f)
			r.sync(ctx)
		}
	}
}

// Do runs fn on the engine goroutine and waits for it to finish
func (r *Runner) Do(ctx context.Context, fn func(*pet.Engine)) error {
	req := request{fn: fn, done: make(chan struct{})}
	select {
	case r.reqs <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.stopped:
		return ErrStopped
	}
	<-req.done
	return nil
}

// observe runs inside engine calls; it only records work for sync
func (r *Runner) observe(ev pet.Event) {
	if c, ok := ev.(pet.CooldownTicked); ok && c.SecondsLeft > 0 {
		if _, running := r.timers[cooldownKey(c.Action)]; !running {
			r.pending = append(r.pending, c.Action)
		}
	}
}

// sync reconciles timers with the engine after each call. A new epoch means
// the playthrough started, restarted or ended, so every timer is replaced.
func (r *Runner) sync(ctx context.Context) {
	if ep := r.engine.Epoch(); ep != r.epoch {
		r.epoch = ep
		r.stopAll()
		if !r.engine.GameOver() {
			r.startPeriodic(ctx)
		}
	}
	for _, a := range r.pending {
		if _, running := r.timers[cooldownKey(a)]; running {
			continue
		}
		if !r.engine.GameOver() && r.engine.Cooldown(a).Active {
			r.every(ctx, cooldownKey(a), r.periods.CooldownStep, fire{kind: kindCooldown, action: a})
		}
	}
	r.pending = r.pending[:0]
}

func (r *Runner) handle(ctx context.Context, f fire) {
	if f.epoch != r.epoch {
		return
	}
	switch f.kind {
	case kindDecay:
		r.engine.DecayTick()
	case kindCoin:
		r.engine.CoinTick()
	case kindAutosave:
		r.engine.Autosave()
	case kindMonologue:
		delete(r.timers, "monologue")
		r.engine.Monologue()
		if !r.engine.GameOver() {
			r.after(ctx, "monologue", r.engine.MonologueDelay(), fire{kind: kindMonologue})
		}
	case kindCooldown:
		if !r.engine.CooldownTick(f.action) {
			r.stop(cooldownKey(f.action))
		}
	}
}

func (r *Runner) startPeriodic(ctx context.Context) {
	r.every(ctx, "decay", r.periods.Decay, fire{kind: kindDecay})
	r.every(ctx, "coin", r.periods.Coin, fire{kind: kindCoin})
	r.every(ctx, "autosave", r.periods.Autosave, fire{kind: kindAutosave})
	r.after(ctx, "monologue", r.engine.MonologueDelay(), fire{kind: kindMonologue})
	for _, a := range pet.Actions {
		if r.engine.Cooldown(a).Active {
			r.every(ctx, cooldownKey(a), r.periods.CooldownStep, fire{kind: kindCooldown, action: a})
		}
	}
}

// every delivers f on each tick of period until the timer is stopped
func (r *Runner) every(ctx context.Context, key string, period time.Duration, f fire) {
	f.epoch = r.epoch
	stop := make(chan struct{})
	r.timers[key] = stop

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				if !r.deliver(ctx, stop, f) {
					return
				}
			}
		}
	}()
}

// after delivers f once after d
func (r *Runner) after(ctx context.Context, key string, d time.Duration, f fire) {
	f.epoch = r.epoch
	stop := make(chan struct{})
	r.timers[key] = stop

	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-stop:
		case <-timer.C:
			r.deliver(ctx, stop, f)
		}
	}()
}

func (r *Runner) deliver(ctx context.Context, stop <-chan struct{}, f fire) bool {
	select {
	case r.fires <- f:
		return true
	case <-ctx.Done():
		return false
	case <-stop:
		return false
	}
}

func (r *Runner) stop(key string) {
	if ch, ok := r.timers[key]; ok {
		close(ch)
		delete(r.timers, key)
	}
}

func (r *Runner) stopAll() {
	for key := range r.timers {
		r.stop(key)
	}
}

func cooldownKey(a pet.Action) string {
	return "cooldown:" + string(a)
}
