package player

import (
	"context"
	"fmt"
	"time"

	"tunedeck/control"
	"tunedeck/entities"
	playerinterface "tunedeck/player/interfaces"
	"tunedeck/utils"
)

// urlExpiryMargin mirrors how early a resolved stream URL is considered
// stale: re-resolve rather than hand the player a link about to die.
const urlExpiryMargin = 10 * time.Second

// Run is the engine's single mutation goroutine. Commands, track-completion
// events and the periodic position ticker all land here, which is what makes
// the boolean switching/seeking guards safe.
func (engine *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(engine.positionReportInterval)
	defer ticker.Stop()
	defer engine.clearTrack()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-engine.bus.PlayerCommands():
			engine.handleCommand(cmd)
		case done := <-engine.trackDone:
			engine.handleTrackDone(done)
		case <-ticker.C:
			engine.reportPosition()
		}
	}
}

func (engine *Engine) handleCommand(cmd control.PlayerCommand) {
	switch cmd.Type {
	case control.PlayerSwitchTrack:
		engine.loadTrack(*cmd.Track, cmd.ResumeAt, false)
	case control.PlayerPlay:
		engine.play()
	case control.PlayerPause:
		engine.pause()
	case control.PlayerToggle:
		engine.toggle()
	case control.PlayerStop:
		engine.clearTrack()
	case control.PlayerSeekTo:
		engine.seek(cmd.SeekTo)
	case control.PlayerSkipBy:
		engine.seek(engine.Position() + cmd.SkipBy)
	case control.PlayerSetVolume:
		engine.setVolume(cmd.Volume)
	}
}

// loadTrack resolves a playable source and swaps the live media player over
// to it. A load arriving while another is in flight is ignored; the
// switching flag is the re-entrancy guard that keeps two players from ever
// existing at once.
func (engine *Engine) loadTrack(track entities.Track, resumeAt time.Duration, startPaused bool) {
	if engine.isSwitching() {
		engine.logger.Debug("ignoring load while another is in flight", "track", track.ID)
		return
	}

	engine.setSwitching(true)
	defer engine.setSwitching(false)

	engine.mutex.Lock()
	engine.loadGeneration += 1
	generation := engine.loadGeneration
	engine.readyToPlay = false
	engine.loadingProgress = 0

	download := engine.activeDownload
	sameTrack := engine.currentTrack != nil && engine.currentTrack.ID == track.ID

	if !sameTrack {
		engine.activeDownload = nil
	}
	engine.mutex.Unlock()

	// A download for a different track stops writing now; its partial file
	// is discarded, never promoted.
	if download != nil && !sameTrack && !download.Completed() {
		download.Cancel()
	}

	sourcePath, err := engine.resolveSource(&track, generation)

	if err != nil {
		engine.failTrack(track, err)
		return
	}

	if sourcePath == "" {
		// Superseded by a newer load; drop this result silently.
		return
	}

	if err := engine.installPlayer(track, sourcePath, resumeAt, generation, startPaused); err != nil {
		engine.failTrack(track, err)
		return
	}
}

// resolveSource finds a playable path for the track: complete cache entry,
// then local file, then catalog stream through the caching downloader.
// Returns "" when the load was superseded mid-resolution.
func (engine *Engine) resolveSource(track *entities.Track, generation uint64) (string, error) {
	if track.Ext != "" {
		if path, ok := engine.storage.Lookup(track.ID, track.Ext); ok {
			return path, nil
		}
	}

	if track.IsLocal() {
		return track.FilePath, nil
	}

	if track.CatalogID == "" && track.URL == "" {
		return "", entities.ErrorNoPlayableSource
	}

	return engine.resolveRemote(track, generation)
}

func (engine *Engine) resolveRemote(track *entities.Track, generation uint64) (string, error) {
	streamURL := track.URL
	expectedSize := int64(0)

	urlStale := track.URLExpiresAt != nil && time.Until(*track.URLExpiresAt) < urlExpiryMargin

	if streamURL == "" || urlStale {
		catalogID := track.CatalogID

		if catalogID == "" {
			catalogID = track.ID
		}

		source, err := engine.resolver.ResolveStreamURL(catalogID)

		if err != nil {
			return "", fmt.Errorf("%w: %s", entities.ErrorNoPlayableSource, err.Error())
		}

		if engine.superseded(generation) {
			return "", nil
		}

		// First resolution fills url/ext on the item.
		track.URL = source.URL
		track.Ext = source.Ext
		track.URLExpiresAt = source.ExpiresAt
		streamURL = source.URL
		expectedSize = source.ExpectedSize
	}

	if track.Ext == "" {
		track.Ext = "mp3"
	}

	download := engine.downloader.Start(streamURL, track.ID, track.Ext, expectedSize, engine.downloadProgress)

	engine.mutex.Lock()
	engine.activeDownload = download
	engine.mutex.Unlock()

	select {
	case <-download.Ready():
	case err := <-download.Failed():
		return "", err
	case <-time.After(engine.loadReadyTimeout):
		download.Cancel()
		return "", fmt.Errorf("%w: timed out waiting for stream data", entities.ErrorDownloadFailed)
	}

	if engine.superseded(generation) {
		return "", nil
	}

	if download.Completed() {
		return download.FinalPath(), nil
	}

	return download.PartPath(), nil
}

// installPlayer replaces the live media player. Teardown is deterministic:
// position reporting is already gated off by the switching flag, the old
// done-watcher detaches via the generation bump, the old player closes, the
// new one opens, then observation is re-installed.
func (engine *Engine) installPlayer(track entities.Track, sourcePath string, resumeAt time.Duration, generation uint64, startPaused bool) error {
	engine.mutex.Lock()
	old := engine.mediaPlayer
	engine.mediaPlayer = nil
	engine.mutex.Unlock()

	if old != nil {
		_ = old.Close()
	}

	mediaPlayer, err := engine.factory.Open(sourcePath, track.Ext)

	if err != nil {
		return fmt.Errorf("%w: %s", entities.ErrorDecodeFailed, err.Error())
	}

	// Resume seeks happen before readiness is reported so observers never
	// see the pre-seek position.
	if resumeAt > 0 {
		if err := mediaPlayer.SeekTo(resumeAt, 0, 0); err != nil {
			_ = mediaPlayer.Close()
			return fmt.Errorf("%w: %s", entities.ErrorDecodeFailed, err.Error())
		}
	}

	engine.mutex.Lock()
	engine.mediaPlayer = mediaPlayer
	trackCopy := track
	engine.currentTrack = &trackCopy
	engine.position = resumeAt
	engine.lastReported = resumeAt - time.Second
	engine.readyToPlay = true
	engine.playedTime = 0
	engine.scrobbled = false
	engine.mutex.Unlock()

	go engine.watchPlayer(mediaPlayer, generation)

	if startPaused {
		// A seek-triggered reload of a paused track must not unpause it.
		engine.setState(entities.StatePaused)
	} else {
		mediaPlayer.Play()
		engine.setState(entities.StatePlaying)
	}

	engine.emit(Event{Type: EventTrackChanged, Track: &trackCopy})
	engine.pushNowPlaying()

	if engine.lyricSync != nil {
		engine.lyricSync.Resync()
	}

	engine.logger.Info("playing", "track", track.String(), "duration", utils.FormatDuration(mediaPlayer.Duration()), "source", sourcePath)

	return nil
}

// watchPlayer forwards the player's completion into the worker loop, tagged
// with its load generation so a late event from a replaced player is
// discarded instead of advancing the wrong track.
func (engine *Engine) watchPlayer(mediaPlayer playerinterface.MediaPlayer, generation uint64) {
	err, ok := <-mediaPlayer.Done()

	if !ok {
		return
	}

	select {
	case engine.trackDone <- trackDoneEvent{generation: generation, err: err}:
	default:
	}
}

func (engine *Engine) handleTrackDone(done trackDoneEvent) {
	if engine.superseded(done.generation) {
		return
	}

	if done.err != nil {
		engine.logger.Warn("playback failed", "err", done.err)
		engine.setState(entities.StateInterrupted)
		engine.emit(Event{Type: EventPlaybackNotice, Notice: "Playback failed, skipping to next track"})
	}

	// Never stall: the orchestrator decides whether something else plays.
	if err := engine.bus.Advance(true); err != nil {
		engine.logger.Warn("dropping advance request", "err", err)
	}
}

func (engine *Engine) failTrack(track entities.Track, err error) {
	engine.logger.Warn("track failed to load", "track", track.ID, "err", err)
	engine.emit(Event{Type: EventPlaybackNotice, Notice: fmt.Sprintf("Cannot play %s", utils.TruncateString(track.Title, 60, "..."))})

	if busErr := engine.bus.Advance(true); busErr != nil {
		engine.logger.Warn("dropping advance request", "err", busErr)
	}
}

func (engine *Engine) play() {
	engine.mutex.RLock()
	mediaPlayer := engine.mediaPlayer
	engine.mutex.RUnlock()

	if mediaPlayer == nil {
		// Play with nothing loaded means "start something": ask the
		// orchestrator for a track instead of failing.
		if err := engine.bus.Advance(false); err != nil {
			engine.logger.Warn("dropping advance request", "err", err)
		}

		return
	}

	mediaPlayer.Play()
	engine.setState(entities.StatePlaying)
	engine.pushPlayback()
}

func (engine *Engine) pause() {
	engine.mutex.RLock()
	mediaPlayer := engine.mediaPlayer
	engine.mutex.RUnlock()

	if mediaPlayer == nil {
		return
	}

	mediaPlayer.Pause()
	engine.setState(entities.StatePaused)
	engine.pushPlayback()
}

func (engine *Engine) toggle() {
	if engine.State() == entities.StatePlaying {
		engine.pause()
	} else {
		engine.play()
	}
}

// seek cancels any in-flight seek by bumping the generation, publishes the
// target position immediately so observers reflect intent, then performs
// the underlying seek. A still-downloading source cannot be assumed to
// support random access, so seeking there reloads the track with a resume
// offset instead.
func (engine *Engine) seek(target time.Duration) {
	engine.mutex.Lock()

	if engine.currentTrack == nil || engine.mediaPlayer == nil {
		// Seeking with no loaded track is an expected transient no-op.
		engine.mutex.Unlock()
		return
	}

	if target < 0 {
		target = 0
	}

	track := *engine.currentTrack
	download := engine.activeDownload
	mediaPlayer := engine.mediaPlayer
	paused := engine.state == entities.StatePaused
	engine.seeking = true
	engine.position = target
	engine.mutex.Unlock()

	engine.emit(Event{Type: EventPositionChanged, Position: target})

	if download != nil && !download.Completed() {
		engine.mutex.Lock()
		engine.seeking = false
		engine.mutex.Unlock()

		engine.loadTrack(track, target, paused)
		return
	}

	if err := mediaPlayer.SeekTo(target, 0, 0); err != nil {
		engine.logger.Warn("seek failed", "target", target, "err", err)
	}

	engine.mutex.Lock()
	engine.seeking = false
	engine.lastReported = target
	engine.mutex.Unlock()

	// Any pending lyric wake-up is based on pre-seek timing.
	if engine.lyricSync != nil {
		engine.lyricSync.Resync()
	}

	engine.pushPlayback()
}

func (engine *Engine) setVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}

	if volume > 1 {
		volume = 1
	}

	engine.mutex.Lock()
	engine.volume = volume
	engine.mutex.Unlock()

	engine.factory.SetVolume(volume)
}

// clearTrack is the explicit transition to Stopped from any state.
func (engine *Engine) clearTrack() {
	engine.mutex.Lock()
	engine.loadGeneration += 1
	mediaPlayer := engine.mediaPlayer
	download := engine.activeDownload
	engine.mediaPlayer = nil
	engine.currentTrack = nil
	engine.activeDownload = nil
	engine.position = 0
	engine.lastReported = 0
	engine.readyToPlay = false
	engine.loadingProgress = 0
	engine.playedTime = 0
	engine.scrobbled = false
	engine.mutex.Unlock()

	if mediaPlayer != nil {
		_ = mediaPlayer.Close()
	}

	if download != nil && !download.Completed() {
		download.Cancel()
	}

	engine.setState(entities.StateStopped)
	engine.emit(Event{Type: EventPositionChanged, Position: 0})
}

func (engine *Engine) superseded(generation uint64) bool {
	engine.mutex.RLock()
	defer engine.mutex.RUnlock()
	return generation != engine.loadGeneration
}

func (engine *Engine) downloadProgress(downloaded int64, expected int64) {
	if expected <= 0 {
		return
	}

	fraction := float64(downloaded) / float64(expected)

	if fraction > 1 {
		fraction = 1
	}

	engine.mutex.Lock()

	if engine.activeDownload == nil {
		engine.mutex.Unlock()
		return
	}

	engine.loadingProgress = fraction
	engine.mutex.Unlock()

	engine.emit(Event{Type: EventLoadingProgress, Progress: fraction})
}

// reportPosition runs every tick while not switching or seeking. Position
// updates coarsen to integer seconds so observers are not flooded with
// sub-second changes nothing can display.
func (engine *Engine) reportPosition() {
	engine.mutex.Lock()

	if engine.switching || engine.seeking || engine.mediaPlayer == nil {
		engine.mutex.Unlock()
		return
	}

	mediaPlayer := engine.mediaPlayer
	state := engine.state

	if state == entities.StatePlaying {
		engine.playedTime += engine.positionReportInterval
	}

	playedTime := engine.playedTime
	scrobbled := engine.scrobbled
	ready := engine.readyToPlay
	track := engine.currentTrack
	engine.mutex.Unlock()

	position := mediaPlayer.Position()

	engine.mutex.Lock()
	engine.position = position
	changed := int(position.Seconds()) != int(engine.lastReported.Seconds())

	if changed {
		engine.lastReported = position
	}
	engine.mutex.Unlock()

	if changed {
		engine.emit(Event{Type: EventPositionChanged, Position: position})
		engine.pushPlayback()
	}

	scrobbleReady := ready || !engine.scrobbleRequireReady

	if !scrobbled && track != nil && state == entities.StatePlaying && playedTime >= engine.scrobbleMinPlayed && scrobbleReady {
		engine.mutex.Lock()
		engine.scrobbled = true
		engine.mutex.Unlock()

		// Fire-and-forget; the catalog never blocks playback.
		go engine.resolver.ReportScrobble(track.ID, int(playedTime.Seconds()))
	}
}

func (engine *Engine) playbackRate() float64 {
	if engine.State() == entities.StatePlaying {
		return 1.0
	}

	return 0.0
}

func (engine *Engine) pushPlayback() {
	if engine.nowPlaying == nil {
		return
	}

	engine.nowPlaying.PushPlayback(engine.Position(), engine.playbackRate())
}

func (engine *Engine) pushNowPlaying() {
	if engine.nowPlaying == nil {
		return
	}

	engine.mutex.RLock()
	track := engine.currentTrack
	position := engine.position
	mediaPlayer := engine.mediaPlayer
	queueInfo := engine.queueInfo
	engine.mutex.RUnlock()

	if track == nil {
		return
	}

	duration := track.Duration

	if duration == 0 && mediaPlayer != nil {
		duration = mediaPlayer.Duration()
	}

	info := playerNowPlayingInfo(track, position, duration, engine.playbackRate())

	if queueInfo != nil {
		info.QueueIndex, info.QueueCount = queueInfo()
	}

	engine.nowPlaying.PushNowPlaying(info)
}

func playerNowPlayingInfo(track *entities.Track, position time.Duration, duration time.Duration, rate float64) playerinterface.NowPlayingInfo {
	return playerinterface.NowPlayingInfo{
		Title:    track.Title,
		Artist:   track.Artist,
		AlbumID:  track.AlbumID,
		Position: position,
		Duration: duration,
		Rate:     rate,
	}
}
