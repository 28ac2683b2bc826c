package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/genricoloni/nowplaying/internal/domain"
	"github.com/genricoloni/nowplaying/internal/monitor/mocks"
	"github.com/godbus/dbus/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const (
	statusProp   = "org.mpris.MediaPlayer2.Player.PlaybackStatus"
	metadataProp = "org.mpris.MediaPlayer2.Player.Metadata"
	positionProp = "org.mpris.MediaPlayer2.Player.Position"
	objPath      = "/org/mpris/MediaPlayer2"
	spotify      = "org.mpris.MediaPlayer2.spotify"
	vlc          = "org.mpris.MediaPlayer2.vlc"
)

func newTestManager(conn DBusClient, clock clockwork.Clock) *MprisManager {
	return NewMprisManager(zap.NewNop(), clock, conn)
}

// TestCurrentSession verifies player discovery and selection
func TestCurrentSession(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockDBusClient)
		expectedPlayer string
		expectedErr    error
		expectError    bool
	}{
		{
			name: "Single player",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{
					"org.freedesktop.DBus",
					spotify,
				}, nil)
			},
			expectedPlayer: spotify,
		},
		{
			name: "Prefers the playing player",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{vlc, "com.example.OtherApp", spotify}, nil)
				m.EXPECT().GetProperty(spotify, objPath, statusProp).Return(dbus.MakeVariant("Paused"), nil)
				m.EXPECT().GetProperty(vlc, objPath, statusProp).Return(dbus.MakeVariant("Playing"), nil)
			},
			expectedPlayer: vlc,
		},
		{
			name: "Falls back to first by name when nothing plays",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{vlc, spotify}, nil)
				m.EXPECT().GetProperty(spotify, objPath, statusProp).Return(dbus.MakeVariant("Stopped"), nil)
				m.EXPECT().GetProperty(vlc, objPath, statusProp).Return(dbus.Variant{}, fmt.Errorf("timeout"))
			},
			expectedPlayer: spotify,
		},
		{
			name: "No players",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return([]string{"org.freedesktop.DBus"}, nil)
			},
			expectedErr: domain.ErrNoSession,
			expectError: true,
		},
		{
			name: "ListNames fails",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames().Return(nil, fmt.Errorf("bus error"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(mockClient)

			mgr := newTestManager(mockClient, clockwork.NewFakeClock())
			session, err := mgr.CurrentSession(context.Background())

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
					t.Errorf("Expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			got := session.(*mprisSession).player
			if got != tt.expectedPlayer {
				t.Errorf("Player: expected %s, got %s", tt.expectedPlayer, got)
			}
		})
	}
}

func TestPlaybackInfo(t *testing.T) {
	tests := []struct {
		name           string
		variant        dbus.Variant
		queryErr       error
		expectError    bool
		expectStatErr  bool
		expectedStatus string
	}{
		{name: "Playing", variant: dbus.MakeVariant("Playing"), expectedStatus: "Playing"},
		{name: "Paused", variant: dbus.MakeVariant("Paused"), expectedStatus: "Paused"},
		{name: "Stopped", variant: dbus.MakeVariant("Stopped"), expectedStatus: "Stopped"},
		{name: "Unrecognized string", variant: dbus.MakeVariant("Buffering"), expectedStatus: "Unknown"},
		{name: "Wrong type", variant: dbus.MakeVariant(42), expectStatErr: true},
		{name: "Query fails", queryErr: fmt.Errorf("connection timeout"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockDBusClient(ctrl)
			mockClient.EXPECT().GetProperty(spotify, objPath, statusProp).Return(tt.variant, tt.queryErr)

			session := &mprisSession{manager: newTestManager(mockClient, clockwork.NewFakeClock()), player: spotify}
			info, err := session.PlaybackInfo(context.Background())

			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.expectStatErr {
				if !errors.Is(info.StatusErr, errInvalidStatusFormat) {
					t.Errorf("Expected StatusErr %v, got %v", errInvalidStatusFormat, info.StatusErr)
				}
				return
			}
			if got := info.Status.String(); got != tt.expectedStatus {
				t.Errorf("Status: expected %s, got %s", tt.expectedStatus, got)
			}
		})
	}
}

func TestTimelineProperties(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		setupMock   func(*mocks.MockDBusClient)
		expectError bool
		expected    domain.TimelineProperties
	}{
		{
			name: "Position and length",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(spotify, objPath, positionProp).Return(dbus.MakeVariant(int64(6_500_000)), nil)
				m.EXPECT().GetProperty(spotify, objPath, metadataProp).Return(dbus.MakeVariant(map[string]dbus.Variant{
					"mpris:length": dbus.MakeVariant(uint64(125_000_000)),
				}), nil)
			},
			expected: domain.TimelineProperties{
				Position:    65_000_000,
				EndTime:     125 * domain.TicksPerSecond,
				LastUpdated: domain.FileTimeFromTime(now),
			},
		},
		{
			name: "Missing length keeps position",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(spotify, objPath, positionProp).Return(dbus.MakeVariant(int64(1_000_000)), nil)
				m.EXPECT().GetProperty(spotify, objPath, metadataProp).Return(dbus.Variant{}, fmt.Errorf("noop"))
			},
			expected: domain.TimelineProperties{
				Position:    domain.TicksPerSecond,
				LastUpdated: domain.FileTimeFromTime(now),
			},
		},
		{
			name: "Position unsupported",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(spotify, objPath, positionProp).Return(dbus.Variant{}, fmt.Errorf("not supported"))
			},
			expectError: true,
		},
		{
			name: "Position wrong type",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(spotify, objPath, positionProp).Return(dbus.MakeVariant("soon"), nil)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(mockClient)

			session := &mprisSession{manager: newTestManager(mockClient, clockwork.NewFakeClockAt(now)), player: spotify}
			tl, err := session.TimelineProperties(context.Background())

			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tl != tt.expected {
				t.Errorf("Timeline mismatch: want %+v, got %+v", tt.expected, tl)
			}
		})
	}
}

func TestMediaProperties(t *testing.T) {
	tests := []struct {
		name        string
		variant     dbus.Variant
		queryErr    error
		expectError bool
		expected    domain.MediaProperties
	}{
		{
			name: "Artist as array",
			variant: dbus.MakeVariant(map[string]dbus.Variant{
				"xesam:title":  dbus.MakeVariant("Stairway to Heaven"),
				"xesam:artist": dbus.MakeVariant([]string{"Led Zeppelin"}),
			}),
			expected: domain.MediaProperties{Title: "Stairway to Heaven", Artist: "Led Zeppelin"},
		},
		{
			name: "Multiple artists are joined",
			variant: dbus.MakeVariant(map[string]dbus.Variant{
				"xesam:title":  dbus.MakeVariant("Under Pressure"),
				"xesam:artist": dbus.MakeVariant([]string{"Queen", "David Bowie"}),
			}),
			expected: domain.MediaProperties{Title: "Under Pressure", Artist: "Queen, David Bowie"},
		},
		{
			name: "Artist as String (Non-compliant)",
			variant: dbus.MakeVariant(map[string]dbus.Variant{
				"xesam:artist": dbus.MakeVariant("Single Artist"),
			}),
			expected: domain.MediaProperties{Artist: "Single Artist"},
		},
		{
			name: "Unexpected artist type is ignored",
			variant: dbus.MakeVariant(map[string]dbus.Variant{
				"xesam:title":  dbus.MakeVariant("Song"),
				"xesam:artist": dbus.MakeVariant(7),
			}),
			expected: domain.MediaProperties{Title: "Song"},
		},
		{
			name:        "Invalid Metadata Type (Int instead of Map)",
			variant:     dbus.MakeVariant(12345),
			expectError: true,
		},
		{
			name:        "Empty metadata means no media",
			variant:     dbus.MakeVariant(map[string]dbus.Variant{}),
			expectError: true,
		},
		{
			name:        "DBus Error - Connection Fail",
			queryErr:    fmt.Errorf("connection timeout"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mocks.NewMockDBusClient(ctrl)
			mockClient.EXPECT().GetProperty(spotify, objPath, metadataProp).Return(tt.variant, tt.queryErr)

			session := &mprisSession{manager: newTestManager(mockClient, clockwork.NewFakeClock()), player: spotify}
			media, err := session.MediaProperties(context.Background())

			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if media != tt.expected {
				t.Errorf("Media mismatch: want %+v, got %+v", tt.expected, media)
			}
		})
	}
}

func TestMprisManager_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockDBusClient(ctrl)
	mockClient.EXPECT().Close().Return(nil)

	if err := newTestManager(mockClient, clockwork.NewFakeClock()).Close(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestToInt64 covers the integer encodings players use for times
func TestToInt64(t *testing.T) {
	tests := []struct {
		input    interface{}
		expected int64
		ok       bool
	}{
		{int64(5), 5, true},
		{uint64(6), 6, true},
		{int32(7), 7, true},
		{uint32(8), 8, true},
		{float64(9.9), 9, true},
		{"10", 0, false},
	}

	for _, tt := range tests {
		got, ok := toInt64(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("toInt64(%v): expected (%d, %v), got (%d, %v)", tt.input, tt.expected, tt.ok, got, ok)
		}
	}
}
