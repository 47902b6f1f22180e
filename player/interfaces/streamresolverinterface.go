package playerinterface

import "time"

//go:generate mockgen -package mocks -destination ../mocks/streamresolver_mock.go tunedeck/player/interfaces StreamResolver

type StreamSource struct {
	URL          string
	Ext          string
	ExpectedSize int64
	ExpiresAt    *time.Time
}

// StreamResolver is the remote catalog collaborator. Both operations are
// best-effort from the engine's point of view: resolution failures make the
// engine advance, scrobble failures are swallowed.
type StreamResolver interface {
	ResolveStreamURL(id string) (*StreamSource, error)
	ReportScrobble(id string, playedSeconds int)
}
