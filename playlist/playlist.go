package playlist

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"tunedeck/control"
	"tunedeck/entities"
)

const DefaultPlayNextMaxSize = 100

// Orchestrator owns the ordered playlist, the play-next queue, the loop mode
// and the current index. It decides what plays next and issues switch-track
// commands to the engine over the bus; it never touches the engine directly.
type Orchestrator struct {
	mutex sync.RWMutex

	tracks       []entities.Track
	playNext     []entities.Track
	currentIndex int
	loopMode     entities.LoopMode

	// pendingResume holds the restored playback position until the first
	// advance after startup replays the restored track instead of stepping
	// past it. Tied to a track id so playlist edits in between invalidate it.
	pendingResume   *time.Duration
	pendingResumeID string

	playNextMaxSize int
	rng             *rand.Rand
	bus             *control.Bus
	logger          *log.Logger
	onMutate        func()
}

type OrchestratorOptions struct {
	PlayNextMaxSize int
	Rand            *rand.Rand
}

func NewOrchestrator(bus *control.Bus, logger *log.Logger) *Orchestrator {
	return NewOrchestratorEx(bus, logger, &OrchestratorOptions{})
}

func NewOrchestratorEx(bus *control.Bus, logger *log.Logger, options *OrchestratorOptions) *Orchestrator {
	maxSize := options.PlayNextMaxSize

	if maxSize <= 0 {
		maxSize = DefaultPlayNextMaxSize
	}

	rng := options.Rand

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Orchestrator{
		tracks:          make([]entities.Track, 0),
		playNext:        make([]entities.Track, 0),
		currentIndex:    -1,
		loopMode:        entities.LoopModeSequence,
		playNextMaxSize: maxSize,
		rng:             rng,
		bus:             bus,
		logger:          logger.With("component", "playlist"),
	}
}

// SetOnMutate registers the persistence hook invoked after every structural
// mutation.
func (orch *Orchestrator) SetOnMutate(onMutate func()) {
	orch.mutex.Lock()
	defer orch.mutex.Unlock()
	orch.onMutate = onMutate
}

func (orch *Orchestrator) Tracks() []entities.Track {
	orch.mutex.RLock()
	defer orch.mutex.RUnlock()

	tracks := make([]entities.Track, len(orch.tracks))
	copy(tracks, orch.tracks)

	return tracks
}

func (orch *Orchestrator) PlayNextQueue() []entities.Track {
	orch.mutex.RLock()
	defer orch.mutex.RUnlock()

	queue := make([]entities.Track, len(orch.playNext))
	copy(queue, orch.playNext)

	return queue
}

// CurrentIndex returns the playing slot, or false when stopped/empty.
func (orch *Orchestrator) CurrentIndex() (int, bool) {
	orch.mutex.RLock()
	defer orch.mutex.RUnlock()

	if orch.currentIndex < 0 {
		return 0, false
	}

	return orch.currentIndex, true
}

func (orch *Orchestrator) CurrentTrack() *entities.Track {
	orch.mutex.RLock()
	defer orch.mutex.RUnlock()

	if orch.currentIndex < 0 || orch.currentIndex >= len(orch.tracks) {
		return nil
	}

	track := orch.tracks[orch.currentIndex]

	return &track
}

func (orch *Orchestrator) LoopMode() entities.LoopMode {
	orch.mutex.RLock()
	defer orch.mutex.RUnlock()
	return orch.loopMode
}

func (orch *Orchestrator) SetLoopMode(mode entities.LoopMode) {
	orch.mutex.Lock()
	orch.loopMode = mode
	notify := orch.onMutate
	orch.mutex.Unlock()

	if notify != nil {
		notify()
	}
}

// Append adds tracks to the end of the playlist, skipping ids already
// present. The current index is never disturbed. Returns how many were
// actually added.
func (orch *Orchestrator) Append(tracks ...entities.Track) int {
	orch.mutex.Lock()

	added := 0

	for _, track := range tracks {
		if orch.containsLocked(track.ID) {
			continue
		}

		orch.tracks = append(orch.tracks, track)
		added += 1
	}

	notify := orch.onMutate
	orch.mutex.Unlock()

	if added > 0 && notify != nil {
		notify()
	}

	return added
}

// Replace swaps the whole playlist, clears the play-next queue and resets
// the current index to the first track, optionally starting playback.
func (orch *Orchestrator) Replace(tracks []entities.Track, startPlayback bool) {
	orch.mutex.Lock()

	orch.tracks = make([]entities.Track, 0, len(tracks))

	for _, track := range tracks {
		if orch.containsLocked(track.ID) {
			continue
		}

		orch.tracks = append(orch.tracks, track)
	}

	orch.playNext = orch.playNext[:0]

	var startTrack *entities.Track

	if len(orch.tracks) > 0 {
		orch.currentIndex = 0

		if startPlayback {
			track := orch.tracks[0]
			startTrack = &track
		}
	} else {
		orch.currentIndex = -1
	}

	notify := orch.onMutate
	orch.mutex.Unlock()

	if startTrack != nil {
		orch.switchTo(*startTrack)
	}

	if notify != nil {
		notify()
	}
}

// RemoveByID deletes a track from the playlist, repairing the current index
// so "now playing" keeps pointing at the same logical item. Deleting the
// playing track switches to whichever track shifted into its slot, or stops
// when the playlist became empty.
func (orch *Orchestrator) RemoveByID(id string) error {
	orch.mutex.Lock()

	_, removedIndex, found := lo.FindIndexOf(orch.tracks, func(track entities.Track) bool {
		return track.ID == id
	})

	if !found {
		orch.mutex.Unlock()
		return entities.ErrorTrackNotFound
	}

	orch.tracks = append(orch.tracks[:removedIndex], orch.tracks[removedIndex+1:]...)

	var switchTrack *entities.Track
	stop := false

	switch {
	case orch.currentIndex < 0:
		// Nothing playing, nothing to repair.
	case removedIndex < orch.currentIndex:
		orch.currentIndex -= 1
	case removedIndex == orch.currentIndex:
		if len(orch.tracks) == 0 {
			orch.currentIndex = -1
			stop = true
		} else {
			orch.currentIndex = orch.currentIndex % len(orch.tracks)
			track := orch.tracks[orch.currentIndex]
			switchTrack = &track
		}
	}

	notify := orch.onMutate
	orch.mutex.Unlock()

	if stop {
		orch.stopPlayback()
	}

	if switchTrack != nil {
		orch.switchTo(*switchTrack)
	}

	if notify != nil {
		notify()
	}

	return nil
}

// Move reorders the playlist, keeping the current index attached to the
// same logical track.
func (orch *Orchestrator) Move(fromIndex int, toIndex int) bool {
	orch.mutex.Lock()

	if fromIndex < 0 || fromIndex >= len(orch.tracks) || toIndex < 0 || toIndex >= len(orch.tracks) {
		orch.mutex.Unlock()
		return false
	}

	if fromIndex == toIndex {
		orch.mutex.Unlock()
		return true
	}

	track := orch.tracks[fromIndex]
	orch.tracks = append(orch.tracks[:fromIndex], orch.tracks[fromIndex+1:]...)
	orch.tracks = append(orch.tracks[:toIndex], append([]entities.Track{track}, orch.tracks[toIndex:]...)...)

	switch {
	case orch.currentIndex == fromIndex:
		orch.currentIndex = toIndex
	case fromIndex < orch.currentIndex && toIndex >= orch.currentIndex:
		orch.currentIndex -= 1
	case fromIndex > orch.currentIndex && toIndex <= orch.currentIndex:
		orch.currentIndex += 1
	}

	notify := orch.onMutate
	orch.mutex.Unlock()

	if notify != nil {
		notify()
	}

	return true
}

// QueueNext enqueues a track to play before normal playlist order resumes.
// FIFO; loop mode never affects this queue.
func (orch *Orchestrator) QueueNext(track entities.Track) error {
	orch.mutex.Lock()

	if len(orch.playNext) >= orch.playNextMaxSize {
		orch.mutex.Unlock()
		return entities.ErrorQueueFull
	}

	orch.playNext = append(orch.playNext, track)
	notify := orch.onMutate
	orch.mutex.Unlock()

	if notify != nil {
		notify()
	}

	return nil
}

// UpdateResolution writes a lazily resolved stream url/ext back onto the
// playlist's copy of the track so snapshots and later loads reuse it. Items
// keep every other field untouched.
func (orch *Orchestrator) UpdateResolution(id string, url string, ext string, expiresAt *time.Time) {
	orch.mutex.Lock()

	updated := false

	for i := range orch.tracks {
		if orch.tracks[i].ID == id {
			orch.tracks[i].URL = url
			orch.tracks[i].Ext = ext
			orch.tracks[i].URLExpiresAt = expiresAt
			updated = true
		}
	}

	for i := range orch.playNext {
		if orch.playNext[i].ID == id {
			orch.playNext[i].URL = url
			orch.playNext[i].Ext = ext
			orch.playNext[i].URLExpiresAt = expiresAt
			updated = true
		}
	}

	notify := orch.onMutate
	orch.mutex.Unlock()

	if updated && notify != nil {
		notify()
	}
}

func (orch *Orchestrator) containsLocked(id string) bool {
	return lo.ContainsBy(orch.tracks, func(track entities.Track) bool {
		return track.ID == id
	})
}

func (orch *Orchestrator) switchTo(track entities.Track) {
	orch.switchToAt(track, 0)
}

func (orch *Orchestrator) switchToAt(track entities.Track, resumeAt time.Duration) {
	if err := orch.bus.SwitchTrack(track, resumeAt); err != nil {
		orch.logger.Warn("dropping switch-track command", "track", track.ID, "err", err)
	}
}

func (orch *Orchestrator) stopPlayback() {
	if err := orch.bus.Stop(); err != nil {
		orch.logger.Warn("dropping stop command", "err", err)
	}
}
