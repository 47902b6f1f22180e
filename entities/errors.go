package entities

import "errors"

var (
	// ErrorNoPlayableSource means neither a cache entry, a local file nor a
	// catalog stream resolved for a track.
	ErrorNoPlayableSource = errors.New("no playable source found")

	ErrorDownloadFailed = errors.New("download failed")
	ErrorDecodeFailed   = errors.New("media decode failed")

	// ErrorInvalidState marks operations attempted without a loaded track.
	// These are expected during startup/teardown and absorbed as no-ops.
	ErrorInvalidState = errors.New("operation not valid in current state")

	ErrorTrackNotFound = errors.New("track not found")
	ErrorQueueFull     = errors.New("queue full")
	ErrorPlaylistEmpty = errors.New("playlist is empty")
)
