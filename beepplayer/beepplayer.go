//go:build (linux && cgo) || windows || darwin

package beepplayer

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	playerinterface "tunedeck/player/interfaces"
)

// AudioAvailable indicates whether audio output is supported in this build.
const AudioAvailable = true

const defaultSampleRate = beep.SampleRate(44100)

// Factory opens beep-backed media players. The speaker is initialized once,
// at the first Open, and every stream is resampled to its rate.
type Factory struct {
	mutex sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64
	active      *Player
}

var _ playerinterface.MediaPlayerFactory = (*Factory)(nil)

func NewFactory() *Factory {
	return &Factory{
		sampleRate: defaultSampleRate,
		volume:     1.0,
	}
}

func (factory *Factory) Open(url string, ext string) (playerinterface.MediaPlayer, error) {
	file, err := os.Open(url)

	if err != nil {
		return nil, err
	}

	streamer, format, err := decode(file, ext)

	if err != nil {
		_ = file.Close()
		return nil, err
	}

	factory.mutex.Lock()
	defer factory.mutex.Unlock()

	if !factory.initialized {
		if err := speaker.Init(factory.sampleRate, factory.sampleRate.N(time.Second/10)); err != nil {
			_ = streamer.Close()
			_ = file.Close()
			return nil, err
		}

		factory.initialized = true
	}

	resampled := beep.Resample(4, format.SampleRate, factory.sampleRate, streamer)
	ctrl := &beep.Ctrl{Streamer: resampled, Paused: true}

	volumeFx := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   volumeGain(factory.volume),
		Silent:   factory.volume == 0,
	}

	player := &Player{
		file:     file,
		streamer: streamer,
		format:   format,
		ctrl:     ctrl,
		volume:   volumeFx,
		done:     make(chan error, 1),
	}

	// The callback runs on the speaker goroutine once the stream drains,
	// either at the natural end or after a decode error.
	speaker.Play(beep.Seq(volumeFx, beep.Callback(player.drained)))

	factory.active = player

	return player, nil
}

func (factory *Factory) SetVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}

	if volume > 1 {
		volume = 1
	}

	factory.mutex.Lock()
	defer factory.mutex.Unlock()

	factory.volume = volume

	if factory.active == nil || !factory.initialized {
		return
	}

	speaker.Lock()
	factory.active.volume.Volume = volumeGain(volume)
	factory.active.volume.Silent = volume == 0
	speaker.Unlock()
}

// volumeGain maps a linear 0..1 volume onto the exponential scale
// effects.Volume expects. Zero is handled with the Silent flag instead.
func volumeGain(volume float64) float64 {
	if volume <= 0 {
		return 0
	}

	return math.Log2(volume)
}

func decode(file *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case "wav":
		return wav.Decode(file)
	case "flac":
		return flac.Decode(file)
	case "ogg", "oga", "opus":
		return vorbis.Decode(file)
	case "", "mp3":
		return mp3.Decode(file)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", ext)
	}
}

// Player is a single decoded stream on the shared speaker.
type Player struct {
	mutex sync.Mutex

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	done      chan error
	delivered bool
	closed    bool
}

var _ playerinterface.MediaPlayer = (*Player)(nil)

func (player *Player) Play() {
	speaker.Lock()
	player.ctrl.Paused = false
	speaker.Unlock()
}

func (player *Player) Pause() {
	speaker.Lock()
	player.ctrl.Paused = true
	speaker.Unlock()
}

func (player *Player) Paused() bool {
	speaker.Lock()
	paused := player.ctrl.Paused
	speaker.Unlock()
	return paused
}

func (player *Player) Rate() float64 {
	if player.Paused() {
		return 0.0
	}

	return 1.0
}

func (player *Player) SeekTo(position time.Duration, toleranceBefore time.Duration, toleranceAfter time.Duration) error {
	speaker.Lock()
	defer speaker.Unlock()

	samples := player.format.SampleRate.N(position)

	if samples < 0 {
		samples = 0
	}

	if max := player.streamer.Len(); samples > max {
		samples = max
	}

	return player.streamer.Seek(samples)
}

func (player *Player) Position() time.Duration {
	speaker.Lock()
	position := player.streamer.Position()
	speaker.Unlock()

	return player.format.SampleRate.D(position)
}

func (player *Player) Duration() time.Duration {
	speaker.Lock()
	length := player.streamer.Len()
	speaker.Unlock()

	return player.format.SampleRate.D(length)
}

func (player *Player) Done() <-chan error {
	return player.done
}

func (player *Player) Close() error {
	player.mutex.Lock()

	if player.closed {
		player.mutex.Unlock()
		return nil
	}

	player.closed = true
	delivered := player.delivered
	player.mutex.Unlock()

	// Clearing the speaker detaches the streamer so the drain callback
	// never fires for a closed player.
	speaker.Clear()

	if !delivered {
		close(player.done)
	}

	err := player.streamer.Close()
	_ = player.file.Close()

	return err
}

func (player *Player) drained() {
	player.mutex.Lock()

	if player.closed || player.delivered {
		player.mutex.Unlock()
		return
	}

	player.delivered = true
	player.mutex.Unlock()

	player.done <- player.streamer.Err()
	close(player.done)
}
