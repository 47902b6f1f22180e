package entities

// PlaybackState follows the underlying media player's rate and readiness.
// Callers only flip it through explicit play/pause commands.
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePaused
	StatePlaying
	StateInterrupted
)

func (s PlaybackState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	case StateInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

func (s PlaybackState) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
