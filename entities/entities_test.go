package entities_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tunedeck/entities"
)

var _ = Describe("Track", func() {
	It("Builds a local track from a file path", func() {
		track := entities.NewLocalTrack("/music/Artist - Song.mp3")

		Expect(track.ID).NotTo(BeEmpty())
		Expect(track.Title).To(Equal("Artist - Song"))
		Expect(track.Ext).To(Equal("mp3"))
		Expect(track.FilePath).To(Equal("/music/Artist - Song.mp3"))
		Expect(track.IsLocal()).To(BeTrue())
	})

	It("Assigns unique ids to local tracks", func() {
		first := entities.NewLocalTrack("/music/a.mp3")
		second := entities.NewLocalTrack("/music/a.mp3")

		Expect(first.ID).NotTo(Equal(second.ID))
	})

	It("Compares tracks by id only", func() {
		a := entities.Track{ID: "x", Title: "One"}
		b := entities.Track{ID: "x", Title: "Another"}

		Expect(a.Equal(b)).To(BeTrue())
	})

	It("Formats artist and title for display", func() {
		Expect(entities.Track{Title: "Song"}.String()).To(Equal("Song"))
		Expect(entities.Track{Title: "Song", Artist: "Artist"}.String()).To(Equal("Artist - Song"))
	})
})

var _ = Describe("LoopMode", func() {
	It("Round-trips through its string form", func() {
		for _, mode := range []entities.LoopMode{entities.LoopModeOnce, entities.LoopModeSequence, entities.LoopModeShuffle} {
			Expect(entities.ParseLoopMode(mode.String())).To(Equal(mode))
		}
	})

	It("Defaults unknown tags to sequence", func() {
		Expect(entities.ParseLoopMode("bogus")).To(Equal(entities.LoopModeSequence))
	})
})

var _ = Describe("PlaybackState", func() {
	It("Reports playing and paused as active", func() {
		Expect(entities.StatePlaying.IsActive()).To(BeTrue())
		Expect(entities.StatePaused.IsActive()).To(BeTrue())
		Expect(entities.StateStopped.IsActive()).To(BeFalse())
		Expect(entities.StateInterrupted.IsActive()).To(BeFalse())
	})
})
