package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genricoloni/nowplaying/internal/config"
	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/genricoloni/nowplaying/internal/lifecycle"
	"github.com/genricoloni/nowplaying/internal/logging"
	"github.com/genricoloni/nowplaying/internal/state"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const reportInterval = time.Second

// AppOptions is the console runner's dependency graph: the same engine the
// plugin runs, plus a reporter printing what the host would see.
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		config.NewAppConfig,
		func(cfg *config.AppConfig) domain.Config { return cfg },
		newLogger,
	),

	lifecycle.Module(state.New()),

	// Lifecycle hooks
	fx.Invoke(logConfig, registerReporter),
)

func main() {
	app := fx.New(AppOptions)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates the runner's logger, writing to stderr unless a log
// file is configured
func newLogger(cfg domain.Config) (*zap.Logger, error) {
	return logging.New(cfg, "stderr")
}

// logConfig records the loaded configuration once the logger exists
func logConfig(cfg *config.AppConfig, logger *zap.Logger) {
	cfg.Log(logger)
}

// registerReporter logs the published values once per second
func registerReporter(lc fx.Lifecycle, logger *zap.Logger, st *state.Published) {
	done := make(chan struct{})
	stopped := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Now playing reporter started")
			go func() {
				defer close(stopped)
				ticker := time.NewTicker(reportInterval)
				defer ticker.Stop()
				for {
					select {
					case <-done:
						return
					case <-ticker.C:
						report(logger, st.Snapshot())
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			close(done)
			select {
			case <-stopped:
			case <-ctx.Done():
				return ctx.Err()
			}
			_ = logger.Sync()
			return nil
		},
	})
}

func report(logger *zap.Logger, snap state.Snapshot) {
	logger.Info("Now playing",
		zap.String("artist", snap.Artist),
		zap.String("title", snap.Title),
		zap.String("position", snap.PositionDisplay),
		zap.String("length", snap.LengthDisplay),
		zap.Int64("positionSeconds", snap.PositionSeconds),
		zap.Int64("lengthSeconds", snap.LengthSeconds),
		zap.String("status", snap.Status))
}
