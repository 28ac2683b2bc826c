//go:build windows
// +build windows

package monitor

import (
	"context"

	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// NewSessionManagerFactory returns the platform session source (the system
// media transport controls on Windows)
func NewSessionManagerFactory(logger *zap.Logger, clock clockwork.Clock) domain.SessionManagerFactory {
	return func(ctx context.Context) (domain.SessionManager, error) {
		return NewSMTCManager(ctx, logger)
	}
}
