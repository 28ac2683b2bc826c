//go:build !linux && !windows
// +build !linux,!windows

package monitor

import (
	"context"
	"errors"

	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var errUnsupported = errors.New("media sessions are only supported on Linux and Windows")

// NewSessionManagerFactory returns a factory that always fails on this platform
func NewSessionManagerFactory(logger *zap.Logger, clock clockwork.Clock) domain.SessionManagerFactory {
	return func(ctx context.Context) (domain.SessionManager, error) {
		logger.Warn("No media session source for this platform")
		return nil, errUnsupported
	}
}
