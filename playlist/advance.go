package playlist

import (
	"github.com/samber/lo"

	"tunedeck/entities"
)

// NextTrack advances playback. Selection priority: play-next queue head,
// then loop-mode policy over the playlist order.
func (orch *Orchestrator) NextTrack() {
	orch.advance()
}

// PreviousTrack steps back by the mirror of the loop-mode policy. The
// play-next queue is never consulted.
func (orch *Orchestrator) PreviousTrack() {
	orch.step(-1)
}

func (orch *Orchestrator) advance() {
	orch.mutex.Lock()

	if orch.pendingResume != nil {
		resumeAt := *orch.pendingResume
		resumeID := orch.pendingResumeID
		orch.pendingResume = nil
		orch.pendingResumeID = ""

		if orch.currentIndex >= 0 && orch.currentIndex < len(orch.tracks) {
			track := orch.tracks[orch.currentIndex]

			if track.ID == resumeID {
				orch.mutex.Unlock()
				orch.switchToAt(track, resumeAt)
				return
			}
		}
	}

	if len(orch.playNext) > 0 {
		var track entities.Track

		// Queue is resized when consuming media
		track, orch.playNext = orch.playNext[0], orch.playNext[1:]

		index := orch.insertAtPlayPointLocked(track)
		orch.currentIndex = index

		notify := orch.onMutate
		orch.mutex.Unlock()

		orch.switchTo(track)

		if notify != nil {
			notify()
		}

		return
	}

	orch.mutex.Unlock()
	orch.step(+1)
}

// step implements loop-mode selection with direction +1 (next) or -1
// (previous).
func (orch *Orchestrator) step(direction int) {
	orch.mutex.Lock()

	count := len(orch.tracks)

	if count == 0 {
		// Advancing an empty playlist is an expected no-op.
		orch.mutex.Unlock()
		return
	}

	if orch.currentIndex < 0 {
		track := orch.tracks[0]
		orch.currentIndex = 0
		notify := orch.onMutate
		orch.mutex.Unlock()

		orch.switchTo(track)

		if notify != nil {
			notify()
		}

		return
	}

	atBoundary := (direction > 0 && orch.currentIndex == count-1) ||
		(direction < 0 && orch.currentIndex == 0)

	if orch.loopMode == entities.LoopModeOnce && atBoundary {
		orch.currentIndex = -1
		notify := orch.onMutate
		orch.mutex.Unlock()

		orch.stopPlayback()

		if notify != nil {
			notify()
		}

		return
	}

	var nextIndex int

	if orch.loopMode == entities.LoopModeShuffle {
		nextIndex = orch.shuffleIndexLocked()
	} else {
		nextIndex = ((orch.currentIndex+direction)%count + count) % count
	}

	track := orch.tracks[nextIndex]
	orch.currentIndex = nextIndex
	notify := orch.onMutate
	orch.mutex.Unlock()

	orch.switchTo(track)

	if notify != nil {
		notify()
	}
}

// shuffleIndexLocked picks a uniformly random index different from the
// current one. A single-track playlist reuses the same index. Deliberately
// no shuffle history.
func (orch *Orchestrator) shuffleIndexLocked() int {
	count := len(orch.tracks)

	if count == 1 {
		return orch.currentIndex
	}

	index := orch.rng.Intn(count - 1)

	if index >= orch.currentIndex {
		index += 1
	}

	return index
}

// insertAtPlayPointLocked places a play-next track immediately after the
// current slot, de-duplicated: a track already in the playlist keeps its
// slot and that slot is returned.
func (orch *Orchestrator) insertAtPlayPointLocked(track entities.Track) int {
	_, existing, found := lo.FindIndexOf(orch.tracks, func(t entities.Track) bool {
		return t.ID == track.ID
	})

	if found {
		return existing
	}

	insertAt := orch.currentIndex + 1

	if insertAt < 0 || insertAt > len(orch.tracks) {
		insertAt = len(orch.tracks)
	}

	orch.tracks = append(orch.tracks[:insertAt], append([]entities.Track{track}, orch.tracks[insertAt:]...)...)

	return insertAt
}
