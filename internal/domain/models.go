package domain

import (
	"math"
	"time"
)

// PlaybackStatus is the playback state reported by the media session source.
// Values match the numbering used by the Windows media transport controls.
type PlaybackStatus int32

const (
	// StatusClosed indicates the media session has been closed
	StatusClosed PlaybackStatus = 0
	// StatusOpened indicates media is loaded but playback has not started
	StatusOpened PlaybackStatus = 1
	// StatusChanging indicates the player is switching media
	StatusChanging PlaybackStatus = 2
	// StatusStopped indicates the media is stopped
	StatusStopped PlaybackStatus = 3
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlaybackStatus = 4
	// StatusPaused indicates the media is paused
	StatusPaused PlaybackStatus = 5
)

// StatusUnknown is the published name for any value outside the table above.
const StatusUnknown = "Unknown"

// String returns the published name of the status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusChanging:
		return "Changing"
	case StatusClosed:
		return "Closed"
	case StatusOpened:
		return "Opened"
	case StatusPaused:
		return "Paused"
	case StatusPlaying:
		return "Playing"
	case StatusStopped:
		return "Stopped"
	default:
		return StatusUnknown
	}
}

// Ticks is a span of time in 100-nanosecond units.
type Ticks int64

// TicksPerSecond is the number of ticks in one second.
const TicksPerSecond Ticks = 10_000_000

// Duration converts ticks to a time.Duration. Negative spans clamp to zero.
func (t Ticks) Duration() time.Duration {
	if t <= 0 {
		return 0
	}
	if t > Ticks(math.MaxInt64/100) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(t) * 100
}

// FileTime is an instant in 100-nanosecond ticks since 1601-01-01 UTC.
type FileTime int64

// fileTimeEpochOffset is the number of ticks between 1601-01-01 and 1970-01-01.
const fileTimeEpochOffset = 11_644_473_600 * int64(TicksPerSecond)

// Time converts the instant to a time.Time. The boolean is false when the
// value is unset or cannot be represented.
func (f FileTime) Time() (time.Time, bool) {
	if f <= 0 {
		return time.Time{}, false
	}
	unixTicks := int64(f) - fileTimeEpochOffset
	if unixTicks > math.MaxInt64/100 || unixTicks < math.MinInt64/100 {
		return time.Time{}, false
	}
	return time.Unix(0, unixTicks*100).UTC(), true
}

// FileTimeFromTime converts t to a FileTime.
func FileTimeFromTime(t time.Time) FileTime {
	return FileTime(t.UnixNano()/100 + fileTimeEpochOffset)
}

// PlaybackInfo is the result of a playback info query
type PlaybackInfo struct {
	// Status is the playback status, valid only when StatusErr is nil
	Status PlaybackStatus
	// StatusErr is set when the session answered but the status itself
	// could not be read
	StatusErr error
}

// TimelineProperties describes the position of the session's current media.
// The source refreshes it far less often than it is polled.
type TimelineProperties struct {
	// Position is the playback position as of LastUpdated
	Position Ticks
	// EndTime is the length of the media
	EndTime Ticks
	// LastUpdated is when Position was sampled
	LastUpdated FileTime
}

// MediaProperties contains the metadata of the session's current media
type MediaProperties struct {
	// Title of the currently playing track
	Title string
	// Artist name
	Artist string
}
