package player

import (
	"time"

	"tunedeck/entities"
)

type EventType int

const (
	EventStateChanged EventType = iota
	EventTrackChanged
	EventPositionChanged
	EventLoadingProgress
	EventLyricIndexChanged
	EventPlaybackNotice
)

func (e EventType) String() string {
	switch e {
	case EventStateChanged:
		return "state_changed"
	case EventTrackChanged:
		return "track_changed"
	case EventPositionChanged:
		return "position_changed"
	case EventLoadingProgress:
		return "loading_progress"
	case EventLyricIndexChanged:
		return "lyric_index_changed"
	case EventPlaybackNotice:
		return "playback_notice"
	default:
		return "unknown"
	}
}

// Event is the engine's observer fan-out unit. Subscribers get current
// values on demand through the engine getters; events only mark changes.
type Event struct {
	Type       EventType
	State      entities.PlaybackState
	Track      *entities.Track
	Position   time.Duration
	Progress   float64
	LyricIndex int

	// Notice is a transient, user-visible message for non-fatal playback
	// failures.
	Notice string
}
