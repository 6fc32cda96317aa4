package injector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/crowdsim/internal/config"
	"github.com/zeusync/crowdsim/internal/scenario"
)

func TestInitializeAppRunsScenario(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.Scenario.Kind = scenario.KindSwap
	cfg.Simulation.Ticks = 10

	app, err := InitializeApp(&cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, app.Store.Len())

	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, uint64(10), app.Runner.Ticks())
}

func TestInitializeAppWithServer(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.Scenario.Count = 5
	cfg.Simulation.Ticks = 3
	cfg.Server.Enabled = true
	cfg.Server.Addr = "127.0.0.1:0"

	app, err := InitializeApp(&cfg)
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))
	assert.Equal(t, uint64(3), app.Runner.Ticks())
	assert.Zero(t, app.Hub.Clients())
}

func TestInitializeAppRejectsBadScenario(t *testing.T) {
	cfg := config.Default()
	cfg.Scenario.Radius = -1

	_, err := InitializeApp(&cfg)
	assert.Error(t, err)
}
