package control

import (
	"github.com/charmbracelet/log"

	playerinterface "tunedeck/player/interfaces"
)

// RemoteCommandAdapter routes OS media-key events onto the bus so that the
// lock-screen surface, UI buttons and any other caller share one control
// path into the single engine/orchestrator pair.
type RemoteCommandAdapter struct {
	bus    *Bus
	logger *log.Logger
}

func NewRemoteCommandAdapter(bus *Bus, logger *log.Logger) *RemoteCommandAdapter {
	return &RemoteCommandAdapter{
		bus:    bus,
		logger: logger.With("component", "remote"),
	}
}

// Attach registers the adapter as the service's command handler.
func (adapter *RemoteCommandAdapter) Attach(service playerinterface.NowPlayingService) {
	service.SetRemoteCommandHandler(adapter.handle)
}

func (adapter *RemoteCommandAdapter) handle(event playerinterface.RemoteCommandEvent) {
	var err error

	switch event.Type {
	case playerinterface.RemotePlay:
		err = adapter.bus.Play()
	case playerinterface.RemotePause:
		err = adapter.bus.Pause()
	case playerinterface.RemoteToggle:
		err = adapter.bus.Toggle()
	case playerinterface.RemoteNext:
		err = adapter.bus.Next()
	case playerinterface.RemotePrevious:
		err = adapter.bus.Previous()
	case playerinterface.RemoteSeekTo:
		err = adapter.bus.SeekTo(event.Position)
	case playerinterface.RemoteSkipForward:
		err = adapter.bus.SkipBy(event.Interval)
	case playerinterface.RemoteSkipBack:
		err = adapter.bus.SkipBy(-event.Interval)
	}

	if err != nil {
		adapter.logger.Warn("dropping remote command", "type", event.Type, "err", err)
	}
}
