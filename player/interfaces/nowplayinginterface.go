package playerinterface

import "time"

//go:generate mockgen -package mocks -destination ../mocks/nowplaying_mock.go tunedeck/player/interfaces NowPlayingService

// NowPlayingInfo is the record pushed to the OS media surface on every track
// change and on every rate or integer-second position change.
type NowPlayingInfo struct {
	Title      string
	Artist     string
	AlbumID    string
	ArtworkURL string
	Position   time.Duration
	Duration   time.Duration
	Rate       float64
	QueueIndex int
	QueueCount int
}

type RemoteCommandType int

const (
	RemotePlay RemoteCommandType = iota
	RemotePause
	RemoteToggle
	RemoteNext
	RemotePrevious
	RemoteSeekTo
	RemoteSkipForward
	RemoteSkipBack
)

type RemoteCommandEvent struct {
	Type RemoteCommandType

	// Position is set for RemoteSeekTo, Interval for the skip commands.
	Position time.Duration
	Interval time.Duration
}

type NowPlayingService interface {
	PushNowPlaying(info NowPlayingInfo)
	PushPlayback(position time.Duration, rate float64)
	SetRemoteCommandHandler(handler func(RemoteCommandEvent))
}
