package system

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/crowdsim/internal/core/avoidance"
	"github.com/zeusync/crowdsim/internal/core/crowd"
	"github.com/zeusync/crowdsim/internal/core/events/bus"
	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

func newTestRunner(t *testing.T, cfg Config, params avoidance.Params) (*Runner, *crowd.Store, bus.EventBus) {
	t.Helper()
	store := crowd.NewStore()
	for _, a := range []crowd.Agent{
		{Group: "east", Position: physics.Planar(-5, 0), Goal: physics.Planar(5, 0)},
		{Group: "west", Position: physics.Planar(5, 0), Goal: physics.Planar(-5, 0)},
	} {
		a.MaxSpeed, a.Radius, a.NeighborDistance, a.Weight = 2, 0.5, 10, 1
		_, err := store.Add(a)
		require.NoError(t, err)
	}
	engine, err := avoidance.NewEngine(params, nil)
	require.NoError(t, err)
	eventBus := bus.New()
	r, err := NewRunner(cfg, store, engine, eventBus, nil)
	require.NoError(t, err)
	return r, store, eventBus
}

func TestRunnerTickPublishesFrame(t *testing.T) {
	r, store, eventBus := newTestRunner(t, DefaultConfig(), avoidance.DefaultParams())

	var frames []*Frame
	_, err := eventBus.Subscribe(EventTickCompleted, func(e bus.Event) error {
		frames = append(frames, e.Data().(*Frame))
		return nil
	})
	require.NoError(t, err)

	frame, err := r.Tick(context.Background())
	require.NoError(t, err)

	require.Len(t, frames, 1)
	assert.Same(t, frame, frames[0])
	assert.Equal(t, uint64(1), frame.Tick)
	assert.Equal(t, uint64(1), r.Ticks())
	assert.Equal(t, "sampled", frame.Strategy)
	require.Len(t, frame.Agents, 2)
	assert.Equal(t, "east", frame.Agents[0].Group)

	agents := store.Agents()
	assert.Equal(t, agents[0].Position[0], frame.Agents[0].X)
	assert.Equal(t, agents[0].Velocity[2], frame.Agents[0].VZ)
	// the first step moves each agent by at most speed*dt
	assert.InDelta(t, -5+2*0.1, agents[0].Position[0], 1e-9)
}

func TestRunnerCancelledTickLeavesStore(t *testing.T) {
	r, store, _ := newTestRunner(t, DefaultConfig(), avoidance.DefaultParams())
	before := store.Agents()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Tick(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, store.Agents())
	assert.Zero(t, r.Ticks())
}

func TestRunnerRunBoundedTicks(t *testing.T) {
	r, _, eventBus := newTestRunner(t, DefaultConfig(), avoidance.DefaultParams())

	var summary RunSummary
	_, _ = eventBus.Subscribe(EventRunStopped, func(e bus.Event) error {
		summary = e.Data().(RunSummary)
		return nil
	})

	require.NoError(t, r.Run(context.Background(), 5))
	assert.Equal(t, uint64(5), r.Ticks())
	assert.Equal(t, RunSummary{Ticks: 5, Reason: "completed"}, summary)
}

func TestRunnerStopsWhenEveryoneArrived(t *testing.T) {
	params := avoidance.DefaultParams()
	params.ArrivalRadius = 0.5
	cfg := DefaultConfig()
	cfg.DT = 0.5
	r, store, _ := newTestRunner(t, cfg, params)

	require.NoError(t, r.Run(context.Background(), 200))

	assert.Less(t, r.Ticks(), uint64(200))
	for _, a := range store.Agents() {
		assert.Less(t, physics.Distance(a.Position, a.Goal), 0.5)
	}
}

func TestRunnerRunCancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Interval = time.Millisecond
	r, _, _ := newTestRunner(t, cfg, avoidance.DefaultParams())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx, 0))
	assert.Less(t, r.Ticks(), uint64(600))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.DT = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.Interval = -time.Second
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
