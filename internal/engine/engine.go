package engine

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/genricoloni/nowplaying/internal/state"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	// PollInterval is the pause between two poll cycles
	PollInterval = 100 * time.Millisecond

	initialAcquireBackoff = 250 * time.Millisecond
	maxAcquireBackoff     = 5 * time.Second

	// SourcePlaybackInfo tags errors recorded from playback info queries
	SourcePlaybackInfo = "PI"
)

// Poller queries the media session source on a fixed interval and publishes
// the results. A Poller runs once: after Run returns it cannot be restarted.
type Poller struct {
	logger    *zap.Logger
	clock     clockwork.Clock
	factory   domain.SessionManagerFactory
	published *state.Published
	interval  time.Duration

	started  atomic.Bool
	stopped  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}

	errMu      sync.Mutex
	lastErr    error
	lastErrSrc string
}

// NewPoller creates a poller publishing into st
func NewPoller(
	logger *zap.Logger,
	clock clockwork.Clock,
	factory domain.SessionManagerFactory,
	st *state.Published,
) *Poller {
	return &Poller{
		logger:    logger,
		clock:     clock,
		factory:   factory,
		published: st,
		interval:  PollInterval,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run acquires a session manager and polls until Stop is called or ctx is
// done. It blocks, and pins the calling goroutine to its OS thread while it
// runs.
func (p *Poller) Run(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		p.logger.Warn("Poller already started")
		return
	}
	defer close(p.done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	manager, ok := p.acquire(ctx)
	if !ok {
		p.logger.Info("Poller stopped before a session manager was acquired")
		return
	}
	defer func() {
		if err := manager.Close(); err != nil {
			p.logger.Warn("Failed to close session manager", zap.Error(err))
		}
	}()

	p.logger.Info("Poller started", zap.Duration("interval", p.interval))

	for {
		if p.stopped.Load() {
			p.logger.Info("Poller loop stopped")
			return
		}

		select {
		case <-p.stopCh:
			continue
		case <-ctx.Done():
			p.logger.Info("Poller context done", zap.Error(ctx.Err()))
			return
		case <-p.clock.After(p.interval):
		}

		p.pollOnce(ctx, manager)
	}
}

// Stop asks the loop to exit. It does not wait; use Done for that.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		close(p.stopCh)
	})
}

// Done is closed once Run has returned
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// LastError returns the most recent recorded query error and the tag of the
// query that produced it.
func (p *Poller) LastError() (string, error) {
	p.errMu.Lock()
	defer p.errMu.Unlock()
	return p.lastErrSrc, p.lastErr
}

func (p *Poller) recordError(src string, err error) {
	p.errMu.Lock()
	p.lastErr = err
	p.lastErrSrc = src
	p.errMu.Unlock()
}

// acquire obtains a session manager, retrying with capped exponential
// backoff. It reports false if the poller was stopped first.
func (p *Poller) acquire(ctx context.Context) (domain.SessionManager, bool) {
	backoff := initialAcquireBackoff
	for attempt := 1; ; attempt++ {
		if p.stopped.Load() {
			return nil, false
		}

		manager, err := p.factory(ctx)
		if err == nil {
			if attempt > 1 {
				p.logger.Info("Session manager acquired", zap.Int("attempts", attempt))
			}
			return manager, true
		}

		p.logger.Warn("Failed to acquire session manager, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		select {
		case <-p.stopCh:
			return nil, false
		case <-ctx.Done():
			return nil, false
		case <-p.clock.After(backoff):
		}

		backoff *= 2
		if backoff > maxAcquireBackoff {
			backoff = maxAcquireBackoff
		}
	}
}

// pollOnce runs a single poll cycle against manager
func (p *Poller) pollOnce(ctx context.Context, manager domain.SessionManager) {
	st := p.published

	session, err := manager.CurrentSession(ctx)
	if err != nil || session == nil {
		// Seconds and status are deliberately left as they were
		st.Title.Clear()
		st.Artist.Clear()
		st.PositionDisplay.Clear()
		st.LengthDisplay.Clear()
		return
	}
	defer session.Release()

	info, err := session.PlaybackInfo(ctx)
	if err != nil {
		p.logger.Debug("Playback info query failed", zap.Error(err))
		p.recordError(SourcePlaybackInfo, err)
		return
	}

	status := domain.StatusStopped
	if info.StatusErr == nil {
		status = info.Status
	}
	st.Status.Store(status.String())

	if timeline, err := session.TimelineProperties(ctx); err == nil {
		pos := reconcilePosition(timeline, status, p.clock.Now())
		length := timeline.EndTime.Duration()

		st.PositionDisplay.Store(FormatClock(pos))
		st.PositionSeconds.Store(wholeSeconds(pos))
		st.LengthDisplay.Store(FormatClock(length))
		st.LengthSeconds.Store(wholeSeconds(length))
	} else {
		p.logger.Debug("Timeline query failed", zap.Error(err))
		st.PositionDisplay.Clear()
		st.PositionSeconds.Clear()
		st.LengthDisplay.Clear()
		st.LengthSeconds.Clear()
	}

	// TODO: distinguish "session without media" from a failed query once the
	// sources report it separately; both clear the metadata for now.
	if media, err := session.MediaProperties(ctx); err == nil {
		st.Title.Store(media.Title)
		st.Artist.Store(media.Artist)
	} else {
		p.logger.Debug("Media properties query failed", zap.Error(err))
		st.Title.Clear()
		st.Artist.Clear()
	}
}
