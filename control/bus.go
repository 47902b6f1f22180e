package control

import (
	"errors"
	"time"

	"tunedeck/entities"
)

var ErrorBusFull = errors.New("command bus full")

type PlayerCommandType int

const (
	PlayerPlay PlayerCommandType = iota
	PlayerPause
	PlayerToggle
	PlayerStop
	PlayerSeekTo
	PlayerSkipBy
	PlayerSwitchTrack
	PlayerSetVolume
)

// PlayerCommand is a transport instruction for the playback engine.
type PlayerCommand struct {
	Type     PlayerCommandType
	Track    *entities.Track
	ResumeAt time.Duration
	SeekTo   time.Duration
	SkipBy   time.Duration
	Volume   float64
}

type PlaylistCommandType int

const (
	PlaylistNext PlaylistCommandType = iota
	PlaylistPrevious
	PlaylistAdvance
)

// PlaylistCommand asks the orchestrator to pick a track. Auto marks advances
// requested by the engine itself (track ended, load failed) rather than a
// user pressing next.
type PlaylistCommand struct {
	Type PlaylistCommandType
	Auto bool
}

// Bus decouples command senders (UI, OS media keys, the engine requesting an
// advance) from the engine and the orchestrator. It is the only path between
// the two, which keeps them free of a compile-time cycle.
type Bus struct {
	playerCommands   chan PlayerCommand
	playlistCommands chan PlaylistCommand
}

func NewBus() *Bus {
	return &Bus{
		playerCommands:   make(chan PlayerCommand, 16),
		playlistCommands: make(chan PlaylistCommand, 16),
	}
}

func (bus *Bus) PlayerCommands() <-chan PlayerCommand {
	return bus.playerCommands
}

func (bus *Bus) PlaylistCommands() <-chan PlaylistCommand {
	return bus.playlistCommands
}

func (bus *Bus) SwitchTrack(track entities.Track, resumeAt time.Duration) error {
	return bus.sendPlayerCommand(PlayerCommand{Type: PlayerSwitchTrack, Track: &track, ResumeAt: resumeAt})
}

func (bus *Bus) Play() error {
	return bus.sendPlayerCommand(PlayerCommand{Type: PlayerPlay})
}

func (bus *Bus) Pause() error {
	return bus.sendPlayerCommand(PlayerCommand{Type: PlayerPause})
}

func (bus *Bus) Toggle() error {
	return bus.sendPlayerCommand(PlayerCommand{Type: PlayerToggle})
}

func (bus *Bus) Stop() error {
	return bus.sendPlayerCommand(PlayerCommand{Type: PlayerStop})
}

func (bus *Bus) SeekTo(position time.Duration) error {
	return bus.sendPlayerCommand(PlayerCommand{Type: PlayerSeekTo, SeekTo: position})
}

func (bus *Bus) SkipBy(delta time.Duration) error {
	return bus.sendPlayerCommand(PlayerCommand{Type: PlayerSkipBy, SkipBy: delta})
}

func (bus *Bus) SetVolume(volume float64) error {
	return bus.sendPlayerCommand(PlayerCommand{Type: PlayerSetVolume, Volume: volume})
}

func (bus *Bus) Next() error {
	return bus.sendPlaylistCommand(PlaylistCommand{Type: PlaylistNext})
}

func (bus *Bus) Previous() error {
	return bus.sendPlaylistCommand(PlaylistCommand{Type: PlaylistPrevious})
}

func (bus *Bus) Advance(auto bool) error {
	return bus.sendPlaylistCommand(PlaylistCommand{Type: PlaylistAdvance, Auto: auto})
}

func (bus *Bus) sendPlayerCommand(command PlayerCommand) error {
	select {
	case bus.playerCommands <- command:
		return nil
	default:
		return ErrorBusFull
	}
}

func (bus *Bus) sendPlaylistCommand(command PlaylistCommand) error {
	select {
	case bus.playlistCommands <- command:
		return nil
	default:
		return ErrorBusFull
	}
}
