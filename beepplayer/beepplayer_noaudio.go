//go:build !((linux && cgo) || windows || darwin)

package beepplayer

import (
	"errors"

	playerinterface "tunedeck/player/interfaces"
)

// AudioAvailable indicates whether audio output is supported in this build.
const AudioAvailable = false

var ErrorAudioUnavailable = errors.New("audio output is not available in this build")

// Factory is the no-audio stand-in used when the platform backend cannot be
// compiled. Open always fails so the engine surfaces a playback notice.
type Factory struct{}

var _ playerinterface.MediaPlayerFactory = (*Factory)(nil)

func NewFactory() *Factory {
	return &Factory{}
}

func (factory *Factory) Open(url string, ext string) (playerinterface.MediaPlayer, error) {
	return nil, ErrorAudioUnavailable
}

func (factory *Factory) SetVolume(volume float64) {
}
