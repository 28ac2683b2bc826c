package lifecycle

import (
	"context"

	"github.com/genricoloni/nowplaying/internal/engine"
	"github.com/genricoloni/nowplaying/internal/monitor"
	"github.com/genricoloni/nowplaying/internal/state"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires the poller into an fx application publishing into st.
// The application expects a *zap.Logger to be provided.
func Module(st *state.Published) fx.Option {
	return fx.Options(
		fx.Supply(st),
		fx.Provide(
			clockwork.NewRealClock,
			monitor.NewSessionManagerFactory,
			engine.NewPoller,
		),
		fx.Invoke(registerHooks),
	)
}

// registerHooks runs the poller for the lifetime of the application
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, poller *engine.Poller) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// The start context ends with OnStart, the poller must outlive it
			go poller.Run(context.Background())
			logger.Info("Poller spawned")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping poller")
			poller.Stop()
			select {
			case <-poller.Done():
				logger.Info("Poller exited")
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
