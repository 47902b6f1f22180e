package lyrics

import (
	"sort"
	"time"
)

// Timeline is the ordered list of lyric line start timestamps, in tenths of
// a second. Timestamps are monotonically non-decreasing.
type Timeline []int

// IndexAt returns the index of the last line whose timestamp is at or before
// the given playback position, or -1 when the position precedes the first
// line. Lookup is a binary search; timelines run to hundreds of lines.
func (timeline Timeline) IndexAt(position time.Duration) int {
	if len(timeline) == 0 {
		return -1
	}

	tenths := int(position / (time.Second / 10))

	if position < 0 {
		return -1
	}

	firstAfter := sort.Search(len(timeline), func(i int) bool {
		return timeline[i] > tenths
	})

	return firstAfter - 1
}

// NextTransition returns the playback position of the first line change
// after the given index, and false when the timeline is exhausted.
func (timeline Timeline) NextTransition(afterIndex int) (time.Duration, bool) {
	next := afterIndex + 1

	if next < 0 || next >= len(timeline) {
		return 0, false
	}

	return time.Duration(timeline[next]) * time.Second / 10, true
}
