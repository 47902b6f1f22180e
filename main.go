package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"tunedeck/beepplayer"
	"tunedeck/cache"
	"tunedeck/catalog"
	"tunedeck/config"
	"tunedeck/control"
	"tunedeck/entities"
	"tunedeck/lyrics"
	"tunedeck/player"
	"tunedeck/playlist"
	"tunedeck/snapshot"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	app := &cli.Command{
		Name:      "tunedeck",
		Usage:     "Play local and catalog audio with a persistent playlist",
		Version:   "1.0.0",
		ArgsUsage: "[audio files...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "init-config",
				Usage: "Write an example configuration file and exit",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("verbose") {
				logger.SetLevel(log.DebugLevel)
			}

			if cmd.Bool("init-config") {
				return config.CreateConfigFile(cmd.String("config"))
			}

			return run(ctx, cmd, logger)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("application error", "err", err)
	}
}

func run(ctx context.Context, cmd *cli.Command, logger *log.Logger) error {
	conf, err := loadConfig(cmd.String("config"), logger)

	if err != nil {
		return err
	}

	storage, err := cache.NewStorage(conf.Paths.CacheDir, logger)

	if err != nil {
		return err
	}

	if err := storage.Sweep(); err != nil {
		logger.Warn("cache sweep failed", "err", err)
	}

	downloader := cache.NewDownloader(storage, logger)

	resolver := catalog.NewClient(conf.Catalog.Tool, conf.ResolveTimeout(), logger)
	resolver.SetScrobbleEndpoint(conf.Catalog.ScrobbleURL)

	bus := control.NewBus()
	factory := beepplayer.NewFactory()

	store := snapshot.NewStore(conf.Paths.SnapshotPath, logger)
	snap, err := store.Load()

	if err != nil {
		logger.Warn("starting from an empty snapshot", "err", err)
	}

	// A first run has no persisted volume yet; the configured one applies.
	if len(snap.Playlist) == 0 {
		snap.Volume = conf.Player.Volume
	}

	orchestrator := playlist.NewOrchestrator(bus, logger)
	orchestrator.RestoreState(snap)

	var engine *player.Engine

	lyricSync := lyrics.NewSynchronizer(func() time.Duration {
		return engine.Position()
	})

	engine = player.NewEngineEx(player.EngineDeps{
		Factory:    factory,
		Resolver:   resolver,
		Storage:    storage,
		Downloader: downloader,
		Bus:        bus,
		LyricSync:  lyricSync,
		Logger:     logger,
	}, &player.EngineOptions{
		PositionReportInterval: conf.PositionReportInterval(),
		ScrobbleMinPlayed:      time.Duration(conf.Scrobble.MinPlayedSeconds) * time.Second,
		ScrobbleRequireReady:   conf.Scrobble.RequireReady,
		Volume:                 snap.Volume,
	})

	engine.SetQueueInfoProvider(func() (int, int) {
		index, ok := orchestrator.CurrentIndex()

		if !ok {
			index = 0
		}

		return index, len(orchestrator.Tracks())
	})

	persist := func() {
		state := orchestrator.SnapshotState()
		state.PositionSeconds = engine.Position().Seconds()
		state.Volume = engine.Volume()

		if err := store.Save(state); err != nil {
			logger.Warn("failed to persist snapshot", "err", err)
		}
	}

	orchestrator.SetOnMutate(persist)

	for _, path := range cmd.Args().Slice() {
		track := entities.NewLocalTrack(path)
		orchestrator.Append(track)
		logger.Info("added to playlist", "track", track.String())
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go orchestrator.Run(runCtx)
	go engine.Run(runCtx)
	go watchEngineEvents(runCtx, engine, orchestrator, logger)

	logger.Info("running", "playlist", len(orchestrator.Tracks()))

	if len(orchestrator.Tracks()) > 0 {
		if err := bus.Play(); err != nil {
			logger.Warn("dropping play command", "err", err)
		}
	}

	waitShutdown(runCtx)

	logger.Info("shutting down")
	persist()

	return nil
}

// watchEngineEvents mirrors engine-side facts back into the orchestrator:
// lazily resolved stream URLs are written to the playlist copy so the next
// snapshot and the next load reuse them.
func watchEngineEvents(ctx context.Context, engine *player.Engine, orchestrator *playlist.Orchestrator, logger *log.Logger) {
	events := engine.Subscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			switch event.Type {
			case player.EventTrackChanged:
				if event.Track != nil && event.Track.URL != "" && !event.Track.IsLocal() {
					orchestrator.UpdateResolution(event.Track.ID, event.Track.URL, event.Track.Ext, event.Track.URLExpiresAt)
				}
			case player.EventLyricIndexChanged:
				logger.Debug("lyric line", "index", event.LyricIndex)
			case player.EventPlaybackNotice:
				logger.Warn(event.Notice)
			}
		}
	}
}

func loadConfig(path string, logger *log.Logger) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	conf, err := config.Load(path)

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("config file not found, using defaults", "path", path)
			return config.Default(), nil
		}

		return nil, err
	}

	return conf, nil
}

func waitShutdown(ctx context.Context) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case <-c:
	case <-ctx.Done():
	}
}
