package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/townfolk/assets"
	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/entity"
	"github.com/milk9111/townfolk/ecs/render"
	"github.com/milk9111/townfolk/ecs/system"
	"github.com/milk9111/townfolk/journal"
	"github.com/milk9111/townfolk/observer"
	"github.com/milk9111/townfolk/prefabs"
	"github.com/milk9111/townfolk/replay"
	"github.com/milk9111/townfolk/telemetry"
)

type GameConfig struct {
	Spec     prefabs.GameSpec
	Scene    string
	Debug    bool
	Traced   bool
	Assets   *assets.Loader
	Journal  *journal.Store
	Recorder *replay.Recorder
	Hub      *observer.Hub
	Watcher  *prefabs.Watcher
	Logger   *log.Logger
}

type Game struct {
	width, height int

	world    *ecs.World
	machine  *system.SceneMachine
	render   *render.RenderSystem
	dialogue *DialogueUI
	reload   *reloader
	hub      *observer.Hub
	watcher  *prefabs.Watcher
	logger   *log.Logger

	snap system.Snapshot
}

func NewGame(cfg GameConfig) (*Game, error) {
	if cfg.Assets == nil {
		return nil, errors.New("game: no asset loader")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	spec := cfg.Spec
	w, h := spec.Window.Width, spec.Window.Height

	tracer := telemetry.NoopTracer()
	if cfg.Traced {
		tracer = telemetry.Tracer("dialogue")
	}
	dcfg := system.DialogueSystemConfig{
		RevealInterval: spec.RevealInterval,
		Tracer:         tracer,
		LinesRead:      telemetry.LinesRead(),
		Portraits:      cfg.Assets.Portraits(),
		Logger:         cfg.Logger,
		Debug:          cfg.Debug,
	}
	if cfg.Journal != nil {
		dcfg.Recorder = cfg.Journal
	}
	var after []ecs.System
	if cfg.Recorder != nil {
		after = append(after, cfg.Recorder)
	}

	world := ecs.NewWorld()
	machine := system.NewPipeline(system.PipelineConfig{
		Source:     render.NewKeyboardSource(),
		Ready:      cfg.Assets.Ready,
		Loader:     &entity.SceneLoader{ViewportW: float64(w), ViewportH: float64(h), Logger: cfg.Logger},
		Dialogue:   dcfg,
		Hooks:      prefabs.LoadScript,
		AfterInput: after,
		Logger:     cfg.Logger,
		Debug:      cfg.Debug,
	})

	images := render.NewRegistry(cfg.Assets)
	rs, err := render.NewRenderSystem(images)
	if err != nil {
		return nil, err
	}
	rs.ShowPrompts = spec.ShowPrompts

	g := &Game{
		width:    w,
		height:   h,
		world:    world,
		machine:  machine,
		render:   rs,
		dialogue: NewDialogueUI(images, w),
		hub:      cfg.Hub,
		watcher:  cfg.Watcher,
		logger:   cfg.Logger,
	}
	g.reload = &reloader{
		world:   world,
		machine: machine,
		logger:  cfg.Logger,
		onSpec: func(s prefabs.GameSpec) {
			machine.Dialogue().SetRevealInterval(s.RevealInterval)
			rs.ShowPrompts = s.ShowPrompts
		},
	}

	scene := cfg.Scene
	if scene == "" {
		scene = spec.DefaultScene
	}
	g.reload.lastScene = scene
	machine.ChangeScene(world, scene)
	return g, nil
}

func (g *Game) Update() error {
	g.reload.drain(g.watcher)

	g.world.Tick(1 / float64(ebiten.TPS()))
	g.machine.Update(g.world)

	g.snap = system.TakeSnapshot(g.world, g.machine)
	g.dialogue.Sync(g.snap)
	if g.hub != nil {
		if err := g.hub.Publish(g.snap); err != nil {
			g.logger.Printf("warn: observer: %v", err)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(screen, g.world, g.snap)
	g.dialogue.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
