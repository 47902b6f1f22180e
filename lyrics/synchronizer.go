package lyrics

import (
	"sync"
	"time"
)

const (
	// minRearmDelay stops a transition landing "now" from re-arming in a
	// tight loop.
	minRearmDelay = 10 * time.Millisecond

	// scheduleHorizon bounds how far ahead a one-shot wake-up is armed.
	// Transitions beyond it get a coarse recheck instead.
	scheduleHorizon = 10 * time.Second
	coarseRecheck   = 5 * time.Second

	// idleRecheck applies once the timeline is exhausted.
	idleRecheck = time.Second
)

// Synchronizer keeps the active lyric line index in step with playback. It
// wakes up exactly at line transitions instead of polling: each firing
// recomputes the index and arms a one-shot timer for the next transition.
//
// The caller owns the gating: Start when the lyric view becomes visible,
// Stop when it goes away, Resync after every seek or track switch.
type Synchronizer struct {
	mutex    sync.Mutex
	timeline Timeline
	now      func() time.Duration
	onChange func(index int)

	index      int
	timer      *time.Timer
	running    bool
	generation uint64
}

func NewSynchronizer(now func() time.Duration) *Synchronizer {
	return &Synchronizer{
		now:   now,
		index: -1,
	}
}

// SetOnChange registers the observer notified on real index changes only.
func (ls *Synchronizer) SetOnChange(onChange func(index int)) {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()
	ls.onChange = onChange
}

// SetTimeline replaces the timeline, as happens on a track switch. Any
// pending wake-up is cancelled; if running, scheduling restarts from the
// current position.
func (ls *Synchronizer) SetTimeline(timeline Timeline) {
	ls.resync(timeline)
}

// Resync recomputes the index from the current position and reschedules.
// Required after seeking: a wake-up armed for the old position would fire on
// stale timing.
func (ls *Synchronizer) Resync() {
	ls.mutex.Lock()
	timeline := ls.timeline
	ls.mutex.Unlock()

	ls.resync(timeline)
}

// Start begins synchronization. No-op when already running.
func (ls *Synchronizer) Start() {
	ls.mutex.Lock()

	if ls.running {
		ls.mutex.Unlock()
		return
	}

	ls.running = true
	notify := ls.updateIndexLocked()
	ls.armLocked()
	ls.mutex.Unlock()

	if notify != nil {
		notify()
	}
}

// Stop cancels the pending wake-up. The index keeps its last value.
func (ls *Synchronizer) Stop() {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()

	ls.running = false
	ls.cancelTimerLocked()
}

func (ls *Synchronizer) Running() bool {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()
	return ls.running
}

// Index returns the current lyric line index, -1 for none.
func (ls *Synchronizer) Index() int {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()
	return ls.index
}

func (ls *Synchronizer) resync(timeline Timeline) {
	ls.mutex.Lock()

	ls.timeline = timeline
	ls.cancelTimerLocked()

	notify := ls.updateIndexLocked()

	if ls.running {
		ls.armLocked()
	}

	ls.mutex.Unlock()

	if notify != nil {
		notify()
	}
}

// updateIndexLocked recomputes the index and returns the pending observer
// call, or nil when the index did not move. The observer runs outside the
// lock.
func (ls *Synchronizer) updateIndexLocked() func() {
	newIndex := ls.timeline.IndexAt(ls.now())

	if newIndex == ls.index {
		return nil
	}

	ls.index = newIndex
	onChange := ls.onChange

	if onChange == nil {
		return nil
	}

	return func() { onChange(newIndex) }
}

func (ls *Synchronizer) armLocked() {
	position := ls.now()
	delay := idleRecheck

	if transition, ok := ls.timeline.NextTransition(ls.index); ok {
		until := transition - position

		if until > scheduleHorizon {
			delay = coarseRecheck
		} else if until < minRearmDelay {
			delay = minRearmDelay
		} else {
			delay = until
		}
	}

	ls.generation++
	generation := ls.generation

	ls.timer = time.AfterFunc(delay, func() {
		ls.fire(generation)
	})
}

func (ls *Synchronizer) fire(generation uint64) {
	ls.mutex.Lock()

	// A stale timer from before a Stop/Resync must not act.
	if !ls.running || generation != ls.generation {
		ls.mutex.Unlock()
		return
	}

	notify := ls.updateIndexLocked()
	ls.armLocked()
	ls.mutex.Unlock()

	if notify != nil {
		notify()
	}
}

func (ls *Synchronizer) cancelTimerLocked() {
	ls.generation++

	if ls.timer != nil {
		ls.timer.Stop()
		ls.timer = nil
	}
}
