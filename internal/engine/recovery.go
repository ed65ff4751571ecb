package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/MRamiBalles/vitals/internal/domain/health"
	"github.com/MRamiBalles/vitals/internal/platform/logger"
	"github.com/MRamiBalles/vitals/internal/platform/metrics"
)

// Outcome is the terminal state of a recovery run.
type Outcome int32

const (
	OutcomePending Outcome = iota
	OutcomeSucceeded
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "SUCCEEDED"
	case OutcomeCancelled:
		return "CANCELLED"
	default:
		return "PENDING"
	}
}

// Recoverer starts recovery runs. It holds only collaborators, so one
// Recoverer can serve any number of independent runs.
type Recoverer struct {
	logger  *logger.Logger
	delay   Delay
	metrics *metrics.Collector
}

// RecovererOption configures a Recoverer.
type RecovererOption func(*Recoverer)

// WithDelay replaces TimerDelay as the suspension point.
func WithDelay(d Delay) RecovererOption {
	return func(r *Recoverer) {
		r.delay = d
	}
}

// WithMetrics records every run into c.
func WithMetrics(c *metrics.Collector) RecovererOption {
	return func(r *Recoverer) {
		r.metrics = c
	}
}

// NewRecoverer creates a Recoverer. A nil logger discards output.
func NewRecoverer(log *logger.Logger, opts ...RecovererOption) *Recoverer {
	if log == nil {
		log = logger.Nop()
	}
	r := &Recoverer{
		logger: log,
		delay:  TimerDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recovery is the handle of one run.
type Recovery struct {
	id            string
	hp            *health.Points
	amountPerTick int
	interval      time.Duration

	logger  *logger.Logger
	delay   Delay
	metrics *metrics.Collector
	started time.Time

	ticks   atomic.Int64
	outcome atomic.Int32
	done    chan struct{}
}

// Start heals hp by amountPerTick every interval until hp is full or ctx is
// done. The condition is checked before every wait, so a tick that fills hp
// ends the run without another wait.
//
// An hp that is already full, or a ctx that is already done, yields a handle
// that has finished by the time Start returns. Otherwise the run continues on
// its own goroutine.
func (r *Recoverer) Start(ctx context.Context, hp *health.Points, amountPerTick int, interval time.Duration) (*Recovery, error) {
	if hp == nil {
		return nil, eris.Wrap(health.ErrInvalidArgument, "recovery target must not be nil")
	}
	if amountPerTick < 0 {
		return nil, eris.Wrapf(health.ErrInvalidArgument, "amount per tick must be non-negative, got %d", amountPerTick)
	}
	if interval < 0 {
		return nil, eris.Wrapf(health.ErrInvalidArgument, "interval must be non-negative, got %s", interval)
	}

	rec := &Recovery{
		id:            uuid.NewString(),
		hp:            hp,
		amountPerTick: amountPerTick,
		interval:      interval,
		logger:        r.logger,
		delay:         r.delay,
		metrics:       r.metrics,
		started:       time.Now(),
		done:          make(chan struct{}),
	}

	if rec.metrics != nil {
		rec.metrics.RecordRunStarted()
	}
	rec.logger.Event("RECOVERY_START", rec.id,
		fmt.Sprintf("HP %s, +%d every %s", hp, amountPerTick, interval))

	if hp.Current() >= hp.Max() {
		rec.finish(OutcomeSucceeded)
		return rec, nil
	}
	// The first wait would fail straight away; settle it here so the
	// caller sees the outcome synchronously.
	if ctx.Err() != nil {
		rec.finish(OutcomeCancelled)
		return rec, nil
	}

	go rec.run(ctx)
	return rec, nil
}

// Run is Start followed by Wait.
func (r *Recoverer) Run(ctx context.Context, hp *health.Points, amountPerTick int, interval time.Duration) (Outcome, error) {
	rec, err := r.Start(ctx, hp, amountPerTick, interval)
	if err != nil {
		return OutcomePending, err
	}
	return rec.Wait(), nil
}

// Recover runs a recovery to completion with a silent default Recoverer.
func Recover(ctx context.Context, hp *health.Points, amountPerTick int, interval time.Duration) (Outcome, error) {
	return NewRecoverer(nil).Run(ctx, hp, amountPerTick, interval)
}

func (rec *Recovery) run(ctx context.Context) {
	for rec.hp.Current() < rec.hp.Max() {
		if err := rec.delay(ctx, rec.interval); err != nil {
			rec.finish(OutcomeCancelled)
			return
		}

		before := rec.hp.Current()
		if err := rec.hp.Heal(rec.amountPerTick); err != nil {
			rec.logger.Zerolog().Error().Err(err).Str("run_id", rec.id).Msg("recovery heal rejected")
		}
		after := rec.hp.Current()
		tick := rec.ticks.Add(1)

		if rec.metrics != nil {
			rec.metrics.RecordTick(max(0, after-before))
		}
		rec.logger.Zerolog().Debug().
			Str("run_id", rec.id).
			Int64("tick", tick).
			Int("hp", after).
			Int("max", rec.hp.Max()).
			Msg("recovery tick")
	}
	rec.finish(OutcomeSucceeded)
}

func (rec *Recovery) finish(o Outcome) {
	rec.outcome.Store(int32(o))

	if rec.metrics != nil {
		rec.metrics.RecordRunFinished(o == OutcomeCancelled, time.Since(rec.started))
	}
	rec.logger.Event("RECOVERY_"+o.String(), rec.id,
		fmt.Sprintf("HP %s after %d ticks", rec.hp, rec.ticks.Load()))

	close(rec.done)
}

// ID returns the run's unique identifier.
func (rec *Recovery) ID() string {
	return rec.id
}

// Done is closed once the run reaches a terminal outcome.
func (rec *Recovery) Done() <-chan struct{} {
	return rec.done
}

// Outcome returns the current state; OutcomePending until Done is closed.
func (rec *Recovery) Outcome() Outcome {
	return Outcome(rec.outcome.Load())
}

// Wait blocks until the run finishes and returns its outcome.
func (rec *Recovery) Wait() Outcome {
	<-rec.done
	return rec.Outcome()
}

// Ticks returns the number of heals applied so far.
func (rec *Recovery) Ticks() int {
	return int(rec.ticks.Load())
}
