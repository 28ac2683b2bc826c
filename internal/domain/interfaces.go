package domain

import (
	"context"
	"errors"
)

// ErrNoSession is returned by SessionManager.CurrentSession when no media
// session is active.
var ErrNoSession = errors.New("no active media session")

// SessionManager is a handle to the operating system's media session service.
//
//go:generate mockgen -destination=mocks/source_mock.go -package=mocks github.com/genricoloni/nowplaying/internal/domain SessionManager,Session
type SessionManager interface {
	// CurrentSession returns the foreground media session.
	// It returns ErrNoSession when nothing is playing.
	CurrentSession(ctx context.Context) (Session, error)

	// Close releases the handle
	Close() error
}

// Session is one media-playing application as seen by the session service.
// Every query is independent and may fail on its own.
type Session interface {
	// PlaybackInfo queries the playback status
	PlaybackInfo(ctx context.Context) (PlaybackInfo, error)

	// TimelineProperties queries position, length and last update time
	TimelineProperties(ctx context.Context) (TimelineProperties, error)

	// MediaProperties queries title and artist. It may fail when a session
	// exists but has no media loaded.
	MediaProperties(ctx context.Context) (MediaProperties, error)

	// Release frees the session handle
	Release()
}

// SessionManagerFactory acquires a SessionManager. The poller calls it once
// per run, retrying until it succeeds.
type SessionManagerFactory func(ctx context.Context) (SessionManager, error)

// Config defines the interface for application configuration
type Config interface {
	// GetLogLevel returns the minimum enabled log level
	GetLogLevel() string

	// GetLogFile returns the log destination, empty when logging is disabled
	GetLogFile() string
}
