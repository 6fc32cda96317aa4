package injector

import (
	"context"

	"github.com/zeusync/crowdsim/internal/config"
	"github.com/zeusync/crowdsim/internal/core/avoidance"
	"github.com/zeusync/crowdsim/internal/core/crowd"
	"github.com/zeusync/crowdsim/internal/core/events/bus"
	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/internal/core/system"
	"github.com/zeusync/crowdsim/internal/server"
)

// App is the assembled simulator.
type App struct {
	Config *config.Config
	Logger *log.Logger
	Store  *crowd.Store
	Engine *avoidance.Engine
	Runner *system.Runner
	Bus    bus.EventBus
	Hub    *server.Hub
	Server *server.Server
}

func NewApp(
	cfg *config.Config,
	logger *log.Logger,
	store *crowd.Store,
	engine *avoidance.Engine,
	runner *system.Runner,
	eventBus bus.EventBus,
	hub *server.Hub,
	srv *server.Server,
) *App {
	return &App{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Engine: engine,
		Runner: runner,
		Bus:    eventBus,
		Hub:    hub,
		Server: srv,
	}
}

// Run serves viewers when enabled and drives the simulation until it
// completes or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.Logger.Sync() }()

	if a.Config.Server.Enabled {
		sub, err := a.Hub.Attach(a.Bus)
		if err != nil {
			return err
		}
		defer func() { _ = a.Bus.Unsubscribe(sub) }()

		if err = a.Server.Start(ctx); err != nil {
			return err
		}
		defer func() {
			if err := a.Server.Stop(context.WithoutCancel(ctx)); err != nil {
				a.Logger.Warn("server stop failed", log.Error(err))
			}
		}()
	}

	return a.Runner.Run(ctx, a.Config.Simulation.Ticks)
}
