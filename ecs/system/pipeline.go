package system

import (
	"log"

	"github.com/milk9111/townfolk/ecs"
)

type PipelineConfig struct {
	Source   ActionSource
	Ready    func() bool
	Loader   SceneLoader
	Dialogue DialogueSystemConfig
	Hooks    ScriptLoader
	// AfterInput systems run right after input in both playable phases,
	// e.g. an input recorder.
	AfterInput []ecs.System
	Logger     *log.Logger
	Debug      bool
}

// NewPipeline builds a scene machine with the exploring and conversing
// schedulers in their fixed order:
//
//	exploring:  input, movement, exits, camera, proximity, interaction, animation
//	conversing: input, freeze, dialogue, dialogue hooks
func NewPipeline(cfg PipelineConfig) *SceneMachine {
	if cfg.Dialogue.Logger == nil {
		cfg.Dialogue.Logger = cfg.Logger
		cfg.Dialogue.Debug = cfg.Debug
	}
	dlg := NewDialogueSystem(cfg.Dialogue)
	m := NewSceneMachine(SceneMachineConfig{
		Ready:    cfg.Ready,
		Loader:   cfg.Loader,
		Dialogue: dlg,
		Logger:   cfg.Logger,
		Debug:    cfg.Debug,
	})

	input := NewInputSystem(cfg.Source)

	exploring := ecs.NewScheduler(input)
	for _, s := range cfg.AfterInput {
		exploring.Add(s)
	}
	exploring.Add(NewMovementSystem())
	exploring.Add(NewExitSystem(cfg.Logger, cfg.Debug))
	exploring.Add(NewCameraSystem())
	exploring.Add(NewProximitySystem())
	exploring.Add(NewInteractionSystem(cfg.Logger, cfg.Debug))
	exploring.Add(NewAnimationSystem())

	conversing := ecs.NewScheduler(input)
	for _, s := range cfg.AfterInput {
		conversing.Add(s)
	}
	conversing.Add(NewFreezeSystem())
	conversing.Add(dlg)
	m.hooks = NewDialogueHookSystem(cfg.Hooks, cfg.Logger, cfg.Debug)
	conversing.Add(m.hooks)

	m.SetScheduler(PhaseExploring, exploring)
	m.SetScheduler(PhaseConversing, conversing)
	return m
}
