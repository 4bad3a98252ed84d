// Command replay runs a recorded session headlessly and prints the final
// snapshot as JSON.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/entity"
	"github.com/milk9111/townfolk/ecs/system"
	"github.com/milk9111/townfolk/prefabs"
	"github.com/milk9111/townfolk/replay"
)

func main() {
	in := flag.String("in", "", "recording to play (.jsonl.zst)")
	verbose := flag.Bool("v", false, "log scene and dialogue events to stderr")
	flag.Parse()

	if *in == "" {
		log.Fatal("missing -in")
	}
	p, err := replay.Open(*in)
	if err != nil {
		log.Fatal(err)
	}

	var out io.Writer = io.Discard
	if *verbose {
		out = os.Stderr
	}
	logger := log.New(out, "replay: ", 0)

	w := ecs.NewWorld()
	m := system.NewPipeline(system.PipelineConfig{
		Source:   p,
		Loader:   &entity.SceneLoader{ViewportW: 960, ViewportH: 720, Logger: logger},
		Dialogue: system.DialogueSystemConfig{RevealInterval: p.Header().RevealInterval},
		Hooks:    prefabs.LoadScript,
		Logger:   logger,
		Debug:    *verbose,
	})
	if err := p.Drive(w, m); err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(system.TakeSnapshot(w, m)); err != nil {
		log.Fatal(err)
	}
}
