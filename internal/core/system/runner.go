package system

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/zeusync/crowdsim/internal/core/avoidance"
	"github.com/zeusync/crowdsim/internal/core/crowd"
	"github.com/zeusync/crowdsim/internal/core/events/bus"
	"github.com/zeusync/crowdsim/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid simulation configuration")

// Config controls the fixed-step loop.
type Config struct {
	// DT is the simulated seconds per tick.
	DT float64 `yaml:"dt"`
	// Ticks bounds Run; zero runs until the context is cancelled.
	Ticks uint64 `yaml:"ticks"`
	// Interval paces ticks in wall-clock time; zero runs them back to back.
	Interval time.Duration `yaml:"interval"`
	// StopWhenArrived ends Run once every agent reports arrival.
	StopWhenArrived bool `yaml:"stop_when_arrived"`
}

func DefaultConfig() Config {
	return Config{
		DT:              0.1,
		Ticks:           600,
		StopWhenArrived: true,
	}
}

func (c Config) Validate() error {
	if !(c.DT > 0) || math.IsInf(c.DT, 1) {
		return errors.Wrapf(ErrInvalidConfig, "dt %v", c.DT)
	}
	if c.Interval < 0 {
		return errors.Wrapf(ErrInvalidConfig, "interval %v", c.Interval)
	}
	return nil
}

// Runner drives the store through the engine one tick at a time:
// snapshot, solve, write back, publish. Ticks never overlap.
type Runner struct {
	cfg    Config
	store  *crowd.Store
	engine *avoidance.Engine
	bus    bus.EventBus
	logger log.Log

	mu   sync.Mutex
	tick atomic.Uint64
}

func NewRunner(cfg Config, store *crowd.Store, engine *avoidance.Engine, eventBus bus.EventBus, logger log.Log) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Runner{
		cfg:    cfg,
		store:  store,
		engine: engine,
		bus:    eventBus,
		logger: logger.With(log.String("component", "runner")),
	}, nil
}

// Ticks returns the number of committed ticks.
func (r *Runner) Ticks() uint64 { return r.tick.Load() }

// Tick advances the simulation by one step. When ctx is cancelled during the
// solve the store is left untouched and the tick counter does not move.
func (r *Runner) Tick(ctx context.Context) (*Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.tick.Load() + 1
	ctx = log.ContextWithTick(ctx, n)

	snap, err := r.store.Snapshot()
	if err != nil {
		return nil, errors.WithMessage(err, "snapshot")
	}
	res, err := r.engine.Step(ctx, snap)
	if err != nil {
		return nil, err
	}
	committed, err := r.store.Apply(res, r.cfg.DT)
	if err != nil {
		return nil, errors.WithMessage(err, "apply")
	}
	r.tick.Store(n)

	frame := NewFrame(n, res, committed)
	if r.bus != nil {
		if err = r.bus.Publish(bus.NewEvent(EventTickCompleted, "runner", frame)); err != nil {
			r.logger.WithContext(ctx).Warn("tick subscribers failed", log.Error(err))
		}
	}
	return frame, nil
}

// Run executes up to ticks steps; zero falls back to the configured count,
// and a zero configured count runs until ctx is done. Cancellation is a
// normal stop and returns nil.
func (r *Runner) Run(ctx context.Context, ticks uint64) error {
	if ticks == 0 {
		ticks = r.cfg.Ticks
	}
	r.logger.Info("simulation started",
		log.Int("agents", r.store.Len()),
		log.Uint64("ticks", ticks),
		log.Float64("dt", r.cfg.DT),
		log.String("strategy", string(r.engine.Params().Strategy)))

	var pace <-chan time.Time
	if r.cfg.Interval > 0 {
		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()
		pace = ticker.C
	}

	start := time.Now()
	reason := "completed"
	for done := uint64(0); ticks == 0 || done < ticks; done++ {
		if pace != nil {
			select {
			case <-ctx.Done():
			case <-pace:
			}
		}
		if ctx.Err() != nil {
			reason = "cancelled"
			break
		}

		frame, err := r.Tick(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				reason = "cancelled"
				break
			}
			r.stopped("failed")
			return err
		}
		if r.cfg.StopWhenArrived && len(frame.Agents) > 0 && frame.Arrived == len(frame.Agents) {
			reason = "arrived"
			break
		}
	}

	r.logger.Info("simulation stopped",
		log.String("reason", reason),
		log.Uint64("ticks", r.Ticks()),
		log.Duration("elapsed", time.Since(start)))
	r.stopped(reason)
	return nil
}

func (r *Runner) stopped(reason string) {
	if r.bus == nil {
		return
	}
	summary := RunSummary{Ticks: r.Ticks(), Reason: reason}
	if err := r.bus.Publish(bus.NewEvent(EventRunStopped, "runner", summary)); err != nil {
		r.logger.Warn("stop subscribers failed", log.Error(err))
	}
}
