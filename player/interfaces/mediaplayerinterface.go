package playerinterface

import "time"

//go:generate mockgen -package mocks -destination ../mocks/mediaplayer_mock.go tunedeck/player/interfaces MediaPlayer,MediaPlayerFactory

// MediaPlayer is the opaque decode/output primitive the engine drives. It is
// given a local file URL and exposes transport controls plus playback time.
type MediaPlayer interface {
	Play()
	Pause()
	Paused() bool
	Rate() float64

	// SeekTo with zero tolerances must land on the exact position.
	SeekTo(position time.Duration, toleranceBefore time.Duration, toleranceAfter time.Duration) error

	Position() time.Duration
	Duration() time.Duration

	// Done delivers nil when the track plays to the end, or the decode error
	// that stopped it. It fires at most once.
	Done() <-chan error

	Close() error
}

type MediaPlayerFactory interface {
	Open(url string, ext string) (MediaPlayer, error)
	SetVolume(volume float64)
}
