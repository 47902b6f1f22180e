package playlist_test

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tunedeck/control"
	"tunedeck/entities"
	"tunedeck/playlist"
)

func makeTracks(ids ...string) []entities.Track {
	tracks := make([]entities.Track, 0, len(ids))

	for _, id := range ids {
		tracks = append(tracks, entities.Track{
			ID:    id,
			Title: "Track " + id,
		})
	}

	return tracks
}

func newOrchestrator(bus *control.Bus) *playlist.Orchestrator {
	return playlist.NewOrchestrator(bus, log.New(io.Discard))
}

func receiveSwitch(bus *control.Bus) control.PlayerCommand {
	var cmd control.PlayerCommand

	Eventually(bus.PlayerCommands()).WithTimeout(time.Second).Should(Receive(&cmd))
	Expect(cmd.Type).To(Equal(control.PlayerSwitchTrack))

	return cmd
}

func receiveStop(bus *control.Bus) {
	var cmd control.PlayerCommand

	Eventually(bus.PlayerCommands()).WithTimeout(time.Second).Should(Receive(&cmd))
	Expect(cmd.Type).To(Equal(control.PlayerStop))
}

var _ = Describe("Playlist orchestrator", func() {
	When("advancing in Sequence mode", func() {
		It("Steps through playlist order and wraps at the end", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2", "s3"), true)
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s1"))

			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s2"))

			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s3"))

			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s1"))

			index, ok := orch.CurrentIndex()
			Expect(ok).To(BeTrue())
			Expect(index).To(Equal(0))
		})

		It("Steps backwards and wraps at the start", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2", "s3"), true)
			receiveSwitch(bus)

			orch.PreviousTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s3"))
		})
	})

	When("advancing in Once mode", func() {
		It("Stops at the end of the playlist and clears the index", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)
			orch.SetLoopMode(entities.LoopModeOnce)

			orch.Replace(makeTracks("s1", "s2"), true)
			receiveSwitch(bus)

			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s2"))

			orch.NextTrack()
			receiveStop(bus)

			_, ok := orch.CurrentIndex()
			Expect(ok).To(BeFalse())
		})
	})

	When("advancing in Shuffle mode", func() {
		It("Never picks the current index when more than one track exists", func() {
			bus := control.NewBus()
			orch := playlist.NewOrchestratorEx(bus, log.New(io.Discard), &playlist.OrchestratorOptions{
				Rand: rand.New(rand.NewSource(42)),
			})
			orch.SetLoopMode(entities.LoopModeShuffle)

			orch.Replace(makeTracks("s1", "s2", "s3", "s4"), true)
			receiveSwitch(bus)

			for i := 0; i < 50; i++ {
				before, ok := orch.CurrentIndex()
				Expect(ok).To(BeTrue())

				orch.NextTrack()
				receiveSwitch(bus)

				after, ok := orch.CurrentIndex()
				Expect(ok).To(BeTrue())
				Expect(after).NotTo(Equal(before))
			}
		})

		It("Reuses the only index on a single-track playlist", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)
			orch.SetLoopMode(entities.LoopModeShuffle)

			orch.Replace(makeTracks("s1"), true)
			receiveSwitch(bus)

			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s1"))
		})
	})

	When("tracks are queued to play next", func() {
		It("Consumes the queue in FIFO order before playlist order", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2"), true)
			receiveSwitch(bus)

			Expect(orch.QueueNext(makeTracks("q1")[0])).To(Succeed())
			Expect(orch.QueueNext(makeTracks("q2")[0])).To(Succeed())

			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("q1"))

			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("q2"))

			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s2"))
		})

		It("Inserts a queued track just after the play point", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2"), true)
			receiveSwitch(bus)

			Expect(orch.QueueNext(makeTracks("q1")[0])).To(Succeed())
			orch.NextTrack()
			receiveSwitch(bus)

			tracks := orch.Tracks()
			Expect(tracks).To(HaveLen(3))
			Expect(tracks[1].ID).To(Equal("q1"))
		})

		It("Keeps the existing slot when the queued track is already in the playlist", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			tracks := makeTracks("s1", "s2", "s3")
			orch.Replace(tracks, true)
			receiveSwitch(bus)

			Expect(orch.QueueNext(tracks[2])).To(Succeed())
			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s3"))

			Expect(orch.Tracks()).To(HaveLen(3))

			index, _ := orch.CurrentIndex()
			Expect(index).To(Equal(2))
		})

		It("Rejects queueing beyond the maximum size", func() {
			bus := control.NewBus()
			orch := playlist.NewOrchestratorEx(bus, log.New(io.Discard), &playlist.OrchestratorOptions{
				PlayNextMaxSize: 2,
			})

			Expect(orch.QueueNext(makeTracks("q1")[0])).To(Succeed())
			Expect(orch.QueueNext(makeTracks("q2")[0])).To(Succeed())
			Expect(orch.QueueNext(makeTracks("q3")[0])).To(MatchError(entities.ErrorQueueFull))
		})
	})

	When("the playlist is mutated", func() {
		It("Deduplicates appended tracks and keeps the current index", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2"), true)
			receiveSwitch(bus)

			added := orch.Append(makeTracks("s2", "s3")...)
			Expect(added).To(Equal(1))
			Expect(orch.Tracks()).To(HaveLen(3))

			index, _ := orch.CurrentIndex()
			Expect(index).To(Equal(0))
		})

		It("Decrements the index when a track before the current one is removed", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2", "s3"), true)
			receiveSwitch(bus)

			orch.NextTrack()
			receiveSwitch(bus)

			Expect(orch.RemoveByID("s1")).To(Succeed())

			index, _ := orch.CurrentIndex()
			Expect(index).To(Equal(0))
			Expect(orch.CurrentTrack().ID).To(Equal("s2"))
		})

		It("Switches to the shifted-in track when the playing track is removed", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2", "s3"), true)
			receiveSwitch(bus)

			Expect(orch.RemoveByID("s1")).To(Succeed())
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s2"))

			index, _ := orch.CurrentIndex()
			Expect(index).To(Equal(0))
		})

		It("Wraps the index when the playing last track is removed", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2", "s3"), true)
			receiveSwitch(bus)

			orch.NextTrack()
			receiveSwitch(bus)
			orch.NextTrack()
			receiveSwitch(bus)

			Expect(orch.RemoveByID("s3")).To(Succeed())
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s1"))

			index, _ := orch.CurrentIndex()
			Expect(index).To(Equal(0))
		})

		It("Stops playback when the last remaining track is removed", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1"), true)
			receiveSwitch(bus)

			Expect(orch.RemoveByID("s1")).To(Succeed())
			receiveStop(bus)

			_, ok := orch.CurrentIndex()
			Expect(ok).To(BeFalse())
		})

		It("Returns an error when removing an unknown track", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1"), false)

			Expect(orch.RemoveByID("nope")).To(MatchError(entities.ErrorTrackNotFound))
		})

		It("Keeps the index attached to the same track across a move", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2", "s3"), true)
			receiveSwitch(bus)

			orch.NextTrack()
			receiveSwitch(bus)

			Expect(orch.Move(1, 0)).To(BeTrue())

			index, _ := orch.CurrentIndex()
			Expect(index).To(Equal(0))
			Expect(orch.CurrentTrack().ID).To(Equal("s2"))
		})

		It("Rejects moves with out-of-range indices", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2"), false)

			Expect(orch.Move(-1, 0)).To(BeFalse())
			Expect(orch.Move(0, 5)).To(BeFalse())
		})

		It("Invokes the mutation hook on structural changes", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			mutations := 0
			orch.SetOnMutate(func() {
				mutations += 1
			})

			orch.Append(makeTracks("s1")...)
			Expect(mutations).To(Equal(1))

			orch.SetLoopMode(entities.LoopModeShuffle)
			Expect(mutations).To(Equal(2))
		})
	})

	When("advancing an empty playlist", func() {
		It("Does nothing", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.NextTrack()
			orch.PreviousTrack()

			Consistently(bus.PlayerCommands()).WithTimeout(50 * time.Millisecond).ShouldNot(Receive())
		})
	})

	When("state is restored from a snapshot", func() {
		It("Resumes the restored track at the saved position on first advance", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2", "s3"), false)
			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s2"))

			snap := orch.SnapshotState()
			snap.PositionSeconds = 42

			restored := newOrchestrator(bus)
			restored.RestoreState(snap)

			index, ok := restored.CurrentIndex()
			Expect(ok).To(BeTrue())
			Expect(index).To(Equal(1))

			restored.NextTrack()
			cmd := receiveSwitch(bus)
			Expect(cmd.Track.ID).To(Equal("s2"))
			Expect(cmd.ResumeAt).To(Equal(42 * time.Second))

			// The resume is one-shot; the next advance steps normally.
			restored.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s3"))
		})

		It("Replays the restored track even when it was saved at position zero", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2", "s3"), false)
			orch.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s2"))

			snap := orch.SnapshotState()
			snap.PositionSeconds = 0

			restored := newOrchestrator(bus)
			restored.RestoreState(snap)

			restored.NextTrack()
			cmd := receiveSwitch(bus)
			Expect(cmd.Track.ID).To(Equal("s2"))
			Expect(cmd.ResumeAt).To(Equal(time.Duration(0)))

			restored.NextTrack()
			Expect(receiveSwitch(bus).Track.ID).To(Equal("s3"))
		})

		It("Round-trips playlist order, queue order, loop mode and index", func() {
			bus := control.NewBus()
			orch := newOrchestrator(bus)

			orch.Replace(makeTracks("s1", "s2", "s3"), true)
			receiveSwitch(bus)
			orch.SetLoopMode(entities.LoopModeShuffle)
			Expect(orch.QueueNext(makeTracks("q1")[0])).To(Succeed())
			Expect(orch.QueueNext(makeTracks("q2")[0])).To(Succeed())

			snap := orch.SnapshotState()

			restored := newOrchestrator(control.NewBus())
			restored.RestoreState(snap)

			Expect(restored.Tracks()).To(Equal(orch.Tracks()))
			Expect(restored.PlayNextQueue()).To(Equal(orch.PlayNextQueue()))
			Expect(restored.LoopMode()).To(Equal(entities.LoopModeShuffle))

			index, ok := restored.CurrentIndex()
			Expect(ok).To(BeTrue())
			Expect(index).To(Equal(0))
		})
	})
})
