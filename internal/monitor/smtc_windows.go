//go:build windows
// +build windows

package monitor

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"github.com/genricoloni/nowplaying/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const smtcManagerClass = "Windows.Media.Control.GlobalSystemMediaTransportControlsSessionManager"

// Method slots of the media control interfaces, counted after the six
// IUnknown/IInspectable methods.
const (
	// IGlobalSystemMediaTransportControlsSessionManagerStatics
	vtblStaticsRequestAsync = 6

	// IGlobalSystemMediaTransportControlsSessionManager
	vtblManagerGetCurrentSession = 6

	// IGlobalSystemMediaTransportControlsSession
	vtblSessionTryGetMediaPropertiesAsync = 7
	vtblSessionGetTimelineProperties      = 8
	vtblSessionGetPlaybackInfo            = 9

	// IGlobalSystemMediaTransportControlsSessionTimelineProperties
	vtblTimelineEndTime         = 7
	vtblTimelinePosition        = 10
	vtblTimelineLastUpdatedTime = 11

	// IGlobalSystemMediaTransportControlsSessionPlaybackInfo
	vtblPlaybackInfoPlaybackStatus = 7

	// IGlobalSystemMediaTransportControlsSessionMediaProperties
	vtblMediaTitle  = 6
	vtblMediaArtist = 9
)

// smtcAsyncTimeout bounds every awaited operation so a wedged media service
// cannot hold up shutdown.
const smtcAsyncTimeout = 2 * time.Second

var iidSessionManagerStatics = windows.GUID{
	Data1: 0x2050c4ee,
	Data2: 0x11a0,
	Data3: 0x57de,
	Data4: [8]byte{0xae, 0xd7, 0xc9, 0x7c, 0x70, 0x33, 0x82, 0x45},
}

// SMTCManager reads the current session from the system media transport
// controls. It must be created, used and closed on one locked OS thread.
type SMTCManager struct {
	logger      *zap.Logger
	manager     *comObject
	uninitOwned bool
}

// NewSMTCManager initializes WinRT on the calling thread and requests the
// session manager
func NewSMTCManager(ctx context.Context, logger *zap.Logger) (*SMTCManager, error) {
	owned, err := roInitialize()
	if err != nil {
		return nil, fmt.Errorf("winrt initialization failed: %w", err)
	}

	manager, err := requestSessionManager(ctx)
	if err != nil {
		if owned {
			roUninitialize()
		}
		return nil, err
	}

	logger.Info("Media transport controls session manager acquired")
	return &SMTCManager{
		logger:      logger,
		manager:     manager,
		uninitOwned: owned,
	}, nil
}

func requestSessionManager(ctx context.Context) (*comObject, error) {
	statics, err := activationFactory(smtcManagerClass, &iidSessionManagerStatics)
	if err != nil {
		return nil, err
	}
	defer statics.release()

	op, err := statics.callObject(vtblStaticsRequestAsync)
	if err != nil {
		return nil, fmt.Errorf("failed to request session manager: %w", err)
	}
	defer op.release()

	manager, err := await(ctx, op, smtcAsyncTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to get session manager: %w", err)
	}
	return manager, nil
}

// CurrentSession returns the session the system considers current
func (m *SMTCManager) CurrentSession(ctx context.Context) (domain.Session, error) {
	session, err := m.manager.callObject(vtblManagerGetCurrentSession)
	if err == errNullResult {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}
	return &smtcSession{obj: session}, nil
}

// Close releases the session manager and leaves the apartment
func (m *SMTCManager) Close() error {
	m.manager.release()
	m.manager = nil
	if m.uninitOwned {
		roUninitialize()
	}
	return nil
}

type smtcSession struct {
	obj *comObject
}

func (s *smtcSession) PlaybackInfo(ctx context.Context) (domain.PlaybackInfo, error) {
	info, err := s.obj.callObject(vtblSessionGetPlaybackInfo)
	if err != nil {
		return domain.PlaybackInfo{}, fmt.Errorf("failed to get playback info: %w", err)
	}
	defer info.release()

	var status int32
	if err := info.call(vtblPlaybackInfoPlaybackStatus, uintptr(unsafe.Pointer(&status))); err != nil {
		return domain.PlaybackInfo{StatusErr: err}, nil
	}
	return domain.PlaybackInfo{Status: domain.PlaybackStatus(status)}, nil
}

func (s *smtcSession) TimelineProperties(ctx context.Context) (domain.TimelineProperties, error) {
	tl, err := s.obj.callObject(vtblSessionGetTimelineProperties)
	if err != nil {
		return domain.TimelineProperties{}, fmt.Errorf("failed to get timeline properties: %w", err)
	}
	defer tl.release()

	// Unreadable fields fall back to zero: no position, no length, and an
	// unset update time which disables the playing offset.
	position, _ := tl.callInt64(vtblTimelinePosition)
	end, _ := tl.callInt64(vtblTimelineEndTime)
	updated, _ := tl.callInt64(vtblTimelineLastUpdatedTime)

	return domain.TimelineProperties{
		Position:    domain.Ticks(position),
		EndTime:     domain.Ticks(end),
		LastUpdated: domain.FileTime(updated),
	}, nil
}

func (s *smtcSession) MediaProperties(ctx context.Context) (domain.MediaProperties, error) {
	op, err := s.obj.callObject(vtblSessionTryGetMediaPropertiesAsync)
	if err != nil {
		return domain.MediaProperties{}, fmt.Errorf("failed to request media properties: %w", err)
	}
	defer op.release()

	props, err := await(ctx, op, smtcAsyncTimeout)
	if err != nil {
		return domain.MediaProperties{}, fmt.Errorf("failed to get media properties: %w", err)
	}
	defer props.release()

	title, _ := props.callString(vtblMediaTitle)
	artist, _ := props.callString(vtblMediaArtist)
	return domain.MediaProperties{Title: title, Artist: artist}, nil
}

func (s *smtcSession) Release() {
	s.obj.release()
}
