package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/genricoloni/nowplaying/internal/domain"
)

// reconcilePosition estimates the current playback position.
//
// Sources refresh the timeline far less often than we poll, so the raw
// position would appear to stall between updates. While playing, the time
// elapsed since the last update is added on top.
func reconcilePosition(tl domain.TimelineProperties, status domain.PlaybackStatus, now time.Time) time.Duration {
	var offset time.Duration
	if status == domain.StatusPlaying {
		if updated, ok := tl.LastUpdated.Time(); ok {
			offset = now.Sub(updated)
		}
		if offset < 0 {
			offset = 0
		}
	}
	base := tl.Position.Duration()
	if offset > math.MaxInt64-base {
		return time.Duration(math.MaxInt64)
	}
	return base + offset
}

// FormatClock formats d as minutes and zero-padded seconds, e.g. "2:05".
// Minutes are not wrapped into hours.
func FormatClock(d time.Duration) string {
	secs := wholeSeconds(d)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func wholeSeconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
