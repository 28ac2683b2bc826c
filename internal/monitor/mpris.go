package monitor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/godbus/dbus/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	mprisNamePrefix  = "org.mpris.MediaPlayer2."
	mprisObjectPath  = "/org/mpris/MediaPlayer2"
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"

	// MPRIS reports times in microseconds
	ticksPerMicrosecond = 10
)

var (
	errNoMetadata          = errors.New("player has no media loaded")
	errInvalidStatusFormat = errors.New("invalid playback status format")
)

// MprisManager reads media sessions from MPRIS players on the session bus.
// The current session is the first player reporting Playing, or the first
// player by name when none is.
type MprisManager struct {
	logger *zap.Logger
	clock  clockwork.Clock
	conn   DBusClient
}

// NewMprisManager creates a session manager on top of conn
func NewMprisManager(logger *zap.Logger, clock clockwork.Clock, conn DBusClient) *MprisManager {
	return &MprisManager{
		logger: logger,
		clock:  clock,
		conn:   conn,
	}
}

// CurrentSession picks the player to report on
func (m *MprisManager) CurrentSession(ctx context.Context) (domain.Session, error) {
	names, err := m.conn.ListNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}

	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, mprisNamePrefix) {
			players = append(players, name)
		}
	}
	if len(players) == 0 {
		return nil, domain.ErrNoSession
	}
	sort.Strings(players)

	chosen := players[0]
	if len(players) > 1 {
		for _, name := range players {
			variant, err := m.conn.GetProperty(name, mprisObjectPath, mprisPlayerIface+".PlaybackStatus")
			if err != nil {
				continue
			}
			if status, ok := variant.Value().(string); ok && status == "Playing" {
				chosen = name
				break
			}
		}
	}

	return &mprisSession{manager: m, player: chosen}, nil
}

// Close closes the underlying bus connection
func (m *MprisManager) Close() error {
	return m.conn.Close()
}

// mprisSession is one MPRIS player
type mprisSession struct {
	manager *MprisManager
	player  string
}

func (s *mprisSession) property(name string) (dbus.Variant, error) {
	return s.manager.conn.GetProperty(s.player, mprisObjectPath, mprisPlayerIface+"."+name)
}

// PlaybackInfo reads PlaybackStatus
func (s *mprisSession) PlaybackInfo(ctx context.Context) (domain.PlaybackInfo, error) {
	variant, err := s.property("PlaybackStatus")
	if err != nil {
		return domain.PlaybackInfo{}, fmt.Errorf("failed to get playback status: %w", err)
	}

	status, ok := variant.Value().(string)
	if !ok {
		return domain.PlaybackInfo{StatusErr: errInvalidStatusFormat}, nil
	}
	return domain.PlaybackInfo{Status: parsePlaybackStatus(status)}, nil
}

// TimelineProperties reads Position and the track length from Metadata.
// MPRIS computes Position on request, so it is stamped with the current time.
func (s *mprisSession) TimelineProperties(ctx context.Context) (domain.TimelineProperties, error) {
	variant, err := s.property("Position")
	if err != nil {
		return domain.TimelineProperties{}, fmt.Errorf("failed to get position: %w", err)
	}
	position, ok := toInt64(variant.Value())
	if !ok {
		return domain.TimelineProperties{}, fmt.Errorf("invalid position format: %T", variant.Value())
	}

	tl := domain.TimelineProperties{
		Position:    domain.Ticks(position * ticksPerMicrosecond),
		LastUpdated: domain.FileTimeFromTime(s.manager.clock.Now()),
	}

	// A missing length is not fatal, the position is still worth showing
	if metadata, err := s.metadata(); err == nil {
		if lengthVar, ok := metadata["mpris:length"]; ok {
			if length, ok := toInt64(lengthVar.Value()); ok {
				tl.EndTime = domain.Ticks(length * ticksPerMicrosecond)
			}
		}
	}

	return tl, nil
}

// MediaProperties reads title and artist from Metadata
func (s *mprisSession) MediaProperties(ctx context.Context) (domain.MediaProperties, error) {
	metadata, err := s.metadata()
	if err != nil {
		return domain.MediaProperties{}, err
	}

	var media domain.MediaProperties

	if titleVar, ok := metadata["xesam:title"]; ok {
		if title, ok := titleVar.Value().(string); ok {
			media.Title = title
		}
	}

	// Extract artist (can be an array)
	if artistVar, ok := metadata["xesam:artist"]; ok {
		switch artists := artistVar.Value().(type) {
		case []string:
			media.Artist = strings.Join(artists, ", ")
		case string:
			media.Artist = artists
		default:
			// Some non-compliant players may use unexpected types
			s.manager.logger.Debug("Unexpected artist type in metadata",
				zap.String("player", s.player),
				zap.String("type", fmt.Sprintf("%T", artistVar.Value())))
		}
	}

	return media, nil
}

// Release is a no-op, MPRIS sessions hold no resources
func (s *mprisSession) Release() {}

func (s *mprisSession) metadata() (map[string]dbus.Variant, error) {
	variant, err := s.property("Metadata")
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}

	// Some players return nil or an empty map when nothing is loaded
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok || len(metadata) == 0 {
		return nil, errNoMetadata
	}
	return metadata, nil
}

// parsePlaybackStatus maps MPRIS status strings onto the session status table
func parsePlaybackStatus(status string) domain.PlaybackStatus {
	switch status {
	case "Playing":
		return domain.StatusPlaying
	case "Paused":
		return domain.StatusPaused
	case "Stopped":
		return domain.StatusStopped
	default:
		return domain.PlaybackStatus(-1)
	}
}

// toInt64 accepts the integer types players actually send for times
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
