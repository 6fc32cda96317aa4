package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/crowdsim/internal/config"
	"github.com/zeusync/crowdsim/internal/core/avoidance"
	"github.com/zeusync/crowdsim/internal/core/crowd"
	"github.com/zeusync/crowdsim/internal/core/events/bus"
	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/internal/core/system"
	"github.com/zeusync/crowdsim/internal/scenario"
	"github.com/zeusync/crowdsim/internal/server"
)

// ProviderSet builds every long-lived component from a loaded configuration.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideBus,
	ProvideStore,
	ProvideEngine,
	ProvideRunner,
	ProvideHub,
	ProvideServer,
	NewApp,
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.New(cfg.Log)
}

func ProvideBus(logger log.Log) bus.EventBus {
	b := bus.New()
	b.AddObserver(bus.NewLogObserver(logger))
	return b
}

// ProvideStore returns a store populated with the configured scenario.
func ProvideStore(cfg *config.Config) (*crowd.Store, error) {
	store := crowd.NewStore()
	if _, err := scenario.Populate(store, cfg.Scenario); err != nil {
		return nil, err
	}
	return store, nil
}

func ProvideEngine(cfg *config.Config, logger log.Log) (*avoidance.Engine, error) {
	return avoidance.NewEngine(cfg.Engine, logger)
}

func ProvideRunner(cfg *config.Config, store *crowd.Store, engine *avoidance.Engine, eventBus bus.EventBus, logger log.Log) (*system.Runner, error) {
	return system.NewRunner(cfg.Simulation, store, engine, eventBus, logger)
}

func ProvideHub(cfg *config.Config, logger log.Log) *server.Hub {
	return server.NewHub(cfg.Server, logger)
}

func ProvideServer(cfg *config.Config, hub *server.Hub, logger log.Log) *server.Server {
	return server.NewServer(cfg.Server, hub, logger)
}
