package entities

// LoopMode governs how the orchestrator picks the next track once the
// play-next queue is empty. It never affects play-next precedence.
type LoopMode int

const (
	LoopModeOnce LoopMode = iota
	LoopModeSequence
	LoopModeShuffle
)

func (m LoopMode) String() string {
	switch m {
	case LoopModeOnce:
		return "once"
	case LoopModeSequence:
		return "sequence"
	case LoopModeShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

func ParseLoopMode(s string) LoopMode {
	switch s {
	case "once":
		return LoopModeOnce
	case "shuffle":
		return LoopModeShuffle
	default:
		return LoopModeSequence
	}
}
