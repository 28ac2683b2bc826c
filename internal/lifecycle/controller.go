// Package lifecycle starts the poller on first demand and stops it once at
// teardown.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/genricoloni/nowplaying/internal/state"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Controller owns the poller's on/off state
type Controller struct {
	logger *zap.Logger
	st     *state.Published
	extra  []fx.Option

	// running is set once a poller has been started and never cleared, it
	// is the lock-free fast path of EnsureStarted
	running atomic.Bool

	mu   sync.Mutex
	app  *fx.App
	done bool
}

// NewController creates a controller for a poller publishing into st.
// Extra options are appended to the engine's fx graph; tests use them to
// replace the session source.
func NewController(logger *zap.Logger, st *state.Published, extra ...fx.Option) *Controller {
	return &Controller{
		logger: logger,
		st:     st,
		extra:  extra,
	}
}

// EnsureStarted starts the poller unless it is running or has been shut
// down. It is safe to call from many goroutines; only one poller is ever
// spawned.
func (c *Controller) EnsureStarted() {
	if c.running.Load() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.app != nil || c.done {
		return
	}

	opts := []fx.Option{
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Supply(c.logger),
		Module(c.st),
	}
	opts = append(opts, c.extra...)

	app := fx.New(opts...)
	if err := app.Err(); err != nil {
		c.logger.Error("Invalid engine graph", zap.Error(err))
		c.done = true
		return
	}

	if err := app.Start(context.Background()); err != nil {
		c.logger.Error("Failed to start engine", zap.Error(err))
		c.done = true
		return
	}

	c.app = app
	c.running.Store(true)
}

// Shutdown stops the poller and waits for it to exit. Afterwards the
// controller stays stopped: EnsureStarted no longer spawns a poller.
func (c *Controller) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.done = true
	if c.app == nil {
		return nil
	}

	app := c.app
	c.app = nil

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("failed to stop engine: %w", err)
	}
	c.logger.Info("Engine shut down")
	return nil
}

// Running reports whether a poller is currently running
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.app != nil
}
