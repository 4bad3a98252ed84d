// Command termwalk plays the game in a terminal.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/milk9111/townfolk/assets"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/entity"
	"github.com/milk9111/townfolk/ecs/system"
	"github.com/milk9111/townfolk/journal"
	"github.com/milk9111/townfolk/prefabs"
	"github.com/milk9111/townfolk/scenes"
	"github.com/milk9111/townfolk/termui"
)

const tickRate = 30

func main() {
	sceneName := flag.String("scene", "", "scene to start in")
	journalPath := flag.String("journal", filepath.Join(".townfolk", "journal.db"), "sqlite journal of conversations (empty to disable)")
	logPath := flag.String("log", "", "write logs to this file (the terminal is taken by the game)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	_ = godotenv.Load()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, "termwalk: ", log.LstdFlags)

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	var store *journal.Store
	if *journalPath != "" {
		if store, err = journal.Open(*journalPath); err != nil {
			logger.Printf("warn: journal disabled: %v", err)
		} else {
			defer store.Close()
		}
	}

	loader := assets.NewLoader("", logger)
	loader.Start()

	source := termui.NewSource()
	go source.Poll(screen)

	cols, rows := screen.Size()
	dcfg := system.DialogueSystemConfig{
		RevealInterval: spec.RevealInterval,
		Portraits:      loader.Portraits(),
		Logger:         logger,
		Debug:          *debug,
	}
	if store != nil {
		dcfg.Recorder = store
	}

	w := ecs.NewWorld()
	m := system.NewPipeline(system.PipelineConfig{
		Source: source,
		Ready:  loader.Ready,
		Loader: &entity.SceneLoader{
			ViewportW: float64(cols * scenes.DefaultTileSize),
			ViewportH: float64(rows * scenes.DefaultTileSize),
			Logger:    logger,
		},
		Dialogue: dcfg,
		Hooks:    prefabs.LoadScript,
		Logger:   logger,
		Debug:    *debug,
	})
	start := *sceneName
	if start == "" {
		start = spec.DefaultScene
	}
	m.ChangeScene(w, start)

	renderer := termui.NewRenderer(screen)
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()
	for range ticker.C {
		if source.Quit() {
			return
		}
		w.Tick(1.0 / tickRate)
		m.Update(w)
		renderer.Render(w, system.TakeSnapshot(w, m))
	}
}
