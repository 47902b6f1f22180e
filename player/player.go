package player

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"tunedeck/cache"
	"tunedeck/control"
	"tunedeck/entities"
	"tunedeck/lyrics"
	playerinterface "tunedeck/player/interfaces"
)

const (
	DefaultPositionReportInterval = 250 * time.Millisecond
	DefaultScrobbleMinPlayed      = 30 * time.Second
	DefaultLoadReadyTimeout       = 30 * time.Second
)

// Engine owns the single live media player and the transport state machine
// around it. All mutation happens on the Run goroutine, which drains the
// command bus; other goroutines only read through the locked getters.
type Engine struct {
	mutex sync.RWMutex

	factory    playerinterface.MediaPlayerFactory
	resolver   playerinterface.StreamResolver
	nowPlaying playerinterface.NowPlayingService
	storage    *cache.Storage
	downloader *cache.Downloader
	bus        *control.Bus
	lyricSync  *lyrics.Synchronizer
	logger     *log.Logger

	positionReportInterval time.Duration
	scrobbleMinPlayed      time.Duration
	scrobbleRequireReady   bool
	loadReadyTimeout       time.Duration

	mediaPlayer  playerinterface.MediaPlayer
	currentTrack *entities.Track
	state        entities.PlaybackState
	position     time.Duration
	lastReported time.Duration

	readyToPlay     bool
	loadingProgress float64
	switching       bool
	seeking         bool
	volume          float64

	playedTime time.Duration
	scrobbled  bool

	loadGeneration uint64
	trackDone      chan trackDoneEvent
	activeDownload *cache.Download

	queueInfo func() (index int, count int)

	subscriberMutex sync.Mutex
	subscribers     []chan Event
}

type trackDoneEvent struct {
	generation uint64
	err        error
}

type EngineDeps struct {
	Factory    playerinterface.MediaPlayerFactory
	Resolver   playerinterface.StreamResolver
	NowPlaying playerinterface.NowPlayingService
	Storage    *cache.Storage
	Downloader *cache.Downloader
	Bus        *control.Bus
	LyricSync  *lyrics.Synchronizer
	Logger     *log.Logger
}

type EngineOptions struct {
	PositionReportInterval time.Duration
	ScrobbleMinPlayed      time.Duration
	ScrobbleRequireReady   bool
	LoadReadyTimeout       time.Duration
	Volume                 float64
}

func NewEngine(deps EngineDeps) *Engine {
	return NewEngineEx(deps, &EngineOptions{ScrobbleRequireReady: true, Volume: 1.0})
}

func NewEngineEx(deps EngineDeps, options *EngineOptions) *Engine {
	engine := &Engine{
		factory:                deps.Factory,
		resolver:               deps.Resolver,
		nowPlaying:             deps.NowPlaying,
		storage:                deps.Storage,
		downloader:             deps.Downloader,
		bus:                    deps.Bus,
		lyricSync:              deps.LyricSync,
		logger:                 deps.Logger.With("component", "player"),
		positionReportInterval: options.PositionReportInterval,
		scrobbleMinPlayed:      options.ScrobbleMinPlayed,
		scrobbleRequireReady:   options.ScrobbleRequireReady,
		loadReadyTimeout:       options.LoadReadyTimeout,
		state:                  entities.StateStopped,
		volume:                 options.Volume,
		trackDone:              make(chan trackDoneEvent, 4),
	}

	if engine.positionReportInterval <= 0 {
		engine.positionReportInterval = DefaultPositionReportInterval
	}

	if engine.scrobbleMinPlayed <= 0 {
		engine.scrobbleMinPlayed = DefaultScrobbleMinPlayed
	}

	if engine.loadReadyTimeout <= 0 {
		engine.loadReadyTimeout = DefaultLoadReadyTimeout
	}

	if engine.factory != nil {
		engine.factory.SetVolume(engine.volume)
	}

	if engine.lyricSync != nil {
		engine.lyricSync.SetOnChange(func(index int) {
			engine.emit(Event{Type: EventLyricIndexChanged, LyricIndex: index})
		})
	}

	return engine
}

// SetQueueInfoProvider supplies playlist position data for now-playing
// pushes without a compile-time dependency on the orchestrator.
func (engine *Engine) SetQueueInfoProvider(queueInfo func() (index int, count int)) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	engine.queueInfo = queueInfo
}

// Subscribe returns a channel of change events. Slow subscribers miss
// events rather than blocking the engine.
func (engine *Engine) Subscribe() <-chan Event {
	engine.subscriberMutex.Lock()
	defer engine.subscriberMutex.Unlock()

	subscriber := make(chan Event, 32)
	engine.subscribers = append(engine.subscribers, subscriber)

	return subscriber
}

func (engine *Engine) State() entities.PlaybackState {
	engine.mutex.RLock()
	defer engine.mutex.RUnlock()
	return engine.state
}

func (engine *Engine) CurrentTrack() *entities.Track {
	engine.mutex.RLock()
	defer engine.mutex.RUnlock()

	if engine.currentTrack == nil {
		return nil
	}

	track := *engine.currentTrack

	return &track
}

func (engine *Engine) Position() time.Duration {
	engine.mutex.RLock()
	defer engine.mutex.RUnlock()
	return engine.position
}

func (engine *Engine) ReadyToPlay() bool {
	engine.mutex.RLock()
	defer engine.mutex.RUnlock()
	return engine.readyToPlay
}

// LoadingProgress reports remote download progress in [0,1]. Local sources
// never report progress.
func (engine *Engine) LoadingProgress() float64 {
	engine.mutex.RLock()
	defer engine.mutex.RUnlock()
	return engine.loadingProgress
}

func (engine *Engine) Volume() float64 {
	engine.mutex.RLock()
	defer engine.mutex.RUnlock()
	return engine.volume
}

func (engine *Engine) PlayedTime() time.Duration {
	engine.mutex.RLock()
	defer engine.mutex.RUnlock()
	return engine.playedTime
}

func (engine *Engine) emit(event Event) {
	engine.subscriberMutex.Lock()
	defer engine.subscriberMutex.Unlock()

	for _, subscriber := range engine.subscribers {
		select {
		case subscriber <- event:
		default:
		}
	}
}

// setState transitions the playback state, emitting exactly once per real
// transition. Redundant calls never double-fire.
func (engine *Engine) setState(state entities.PlaybackState) {
	engine.mutex.Lock()

	if engine.state == state {
		engine.mutex.Unlock()
		return
	}

	engine.state = state
	engine.mutex.Unlock()

	engine.emit(Event{Type: EventStateChanged, State: state})
}

func (engine *Engine) isSwitching() bool {
	engine.mutex.RLock()
	defer engine.mutex.RUnlock()
	return engine.switching
}

func (engine *Engine) setSwitching(switching bool) {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()
	engine.switching = switching
}
