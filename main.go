package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/milk9111/townfolk/assets"
	"github.com/milk9111/townfolk/journal"
	"github.com/milk9111/townfolk/observer"
	"github.com/milk9111/townfolk/prefabs"
	"github.com/milk9111/townfolk/replay"
	"github.com/milk9111/townfolk/scenes"
	"github.com/milk9111/townfolk/telemetry"
)

func main() {
	sceneName := flag.String("scene", "", "scene to start in (defaults to game.yaml default_scene)")
	debug := flag.Bool("debug", false, "enable debug logging")
	observe := flag.String("observe", "", "serve snapshots on this loopback address, e.g. 127.0.0.1:7777")
	journalPath := flag.String("journal", filepath.Join(".townfolk", "journal.db"), "sqlite journal of conversations (empty to disable)")
	record := flag.String("record", "", "record input to this .jsonl.zst file")
	watch := flag.Bool("watch", false, "reload specs, hook scripts and scenes when they change on disk")
	assetDir := flag.String("assets", "assets", "directory searched for PNG overrides")
	flag.Parse()

	_ = godotenv.Load()
	logger := log.New(os.Stderr, "townfolk: ", log.LstdFlags)

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		logger.Fatal(err)
	}
	if *debug {
		spec.Debug = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	traced := false
	if telemetry.ConfigureHoneycombEnv() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Printf("warn: telemetry disabled: %v", err)
		} else {
			traced = true
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(sctx)
			}()
		}
	}

	var store *journal.Store
	if *journalPath != "" {
		store, err = journal.Open(*journalPath)
		if err != nil {
			logger.Printf("warn: journal disabled: %v", err)
		} else {
			defer store.Close()
		}
	}

	loader := assets.NewLoader(*assetDir, logger)
	loader.Start()

	var hub *observer.Hub
	if *observe != "" {
		hub = observer.NewHub(logger)
		defer hub.Close()
		go func() {
			if err := hub.Serve(ctx, *observe); err != nil {
				logger.Printf("warn: observer: %v", err)
			}
		}()
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"), scenes.Dir)
		if err != nil {
			logger.Printf("warn: hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	start := *sceneName
	if start == "" {
		start = spec.DefaultScene
	}
	var recorder *replay.Recorder
	if *record != "" {
		recorder, err = replay.NewRecorder(*record, replay.Header{Scene: start, RevealInterval: spec.RevealInterval}, logger)
		if err != nil {
			logger.Fatal(err)
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				logger.Printf("warn: recording: %v", err)
			}
		}()
	}

	game, err := NewGame(GameConfig{
		Spec:     spec,
		Scene:    start,
		Debug:    spec.Debug,
		Traced:   traced,
		Assets:   loader,
		Journal:  store,
		Recorder: recorder,
		Hub:      hub,
		Watcher:  watcher,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal(err)
	}

	ebiten.SetWindowSize(spec.Window.Width*spec.Window.Scale, spec.Window.Height*spec.Window.Scale)
	ebiten.SetWindowTitle(spec.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.Print(err)
	}
}
