//go:build linux
// +build linux

package monitor

import (
	"context"
	"fmt"

	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// NewSessionManagerFactory returns the platform session source (MPRIS on Linux)
func NewSessionManagerFactory(logger *zap.Logger, clock clockwork.Clock) domain.SessionManagerFactory {
	return func(ctx context.Context) (domain.SessionManager, error) {
		conn, err := NewStdDBusClient()
		if err != nil {
			return nil, fmt.Errorf("session bus connection failed: %w", err)
		}
		logger.Info("Connected to session bus, reading MPRIS players")
		return NewMprisManager(logger, clock, conn), nil
	}
}
