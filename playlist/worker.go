package playlist

import (
	"context"
	"time"

	"tunedeck/control"
	"tunedeck/entities"
	"tunedeck/snapshot"
)

// Run drains playlist commands from the bus until the context ends. All
// selection decisions happen here; the engine only ever receives resolved
// switch-track commands back over the bus.
func (orch *Orchestrator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-orch.bus.PlaylistCommands():
			orch.handle(cmd)
		}
	}
}

func (orch *Orchestrator) handle(cmd control.PlaylistCommand) {
	switch cmd.Type {
	case control.PlaylistNext, control.PlaylistAdvance:
		orch.NextTrack()
	case control.PlaylistPrevious:
		orch.PreviousTrack()
	}
}

// RestoreState rebuilds playlist state from a snapshot, without starting
// playback.
func (orch *Orchestrator) RestoreState(snap snapshot.Snapshot) {
	orch.mutex.Lock()
	defer orch.mutex.Unlock()

	orch.tracks = snapshot.ToTracks(snap.Playlist)
	orch.playNext = snapshot.ToTracks(snap.PlayNext)
	orch.loopMode = entities.ParseLoopMode(snap.LoopMode)
	orch.currentIndex = -1
	orch.pendingResume = nil
	orch.pendingResumeID = ""

	if snap.CurrentIndex != nil {
		index := *snap.CurrentIndex

		if index >= 0 && index < len(orch.tracks) {
			orch.currentIndex = index

			// The first advance replays the restored track, even from the
			// very beginning; stepping past it would drop a song on every
			// restart at position zero.
			resumeAt := time.Duration(snap.PositionSeconds * float64(time.Second))

			if resumeAt < 0 {
				resumeAt = 0
			}

			orch.pendingResume = &resumeAt
			orch.pendingResumeID = orch.tracks[index].ID
		}
	}
}

// SnapshotState captures the orchestrator's part of the persisted snapshot.
func (orch *Orchestrator) SnapshotState() snapshot.Snapshot {
	orch.mutex.RLock()
	defer orch.mutex.RUnlock()

	snap := snapshot.Default()
	snap.Playlist = snapshot.FromTracks(orch.tracks)
	snap.PlayNext = snapshot.FromTracks(orch.playNext)
	snap.LoopMode = orch.loopMode.String()

	if orch.currentIndex >= 0 {
		index := orch.currentIndex
		snap.CurrentIndex = &index
	}

	return snap
}
