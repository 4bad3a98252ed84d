package system

import (
	"log"

	"github.com/milk9111/townfolk/ecs"
	"github.com/milk9111/townfolk/ecs/component"
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseExploring
	PhaseConversing
)

func (p Phase) String() string {
	switch p {
	case PhaseExploring:
		return "exploring"
	case PhaseConversing:
		return "conversing"
	default:
		return "loading"
	}
}

// SceneLoader populates the world with a named scene.
type SceneLoader interface {
	LoadScene(w *ecs.World, name string) error
}

type SceneLoaderFunc func(w *ecs.World, name string) error

func (f SceneLoaderFunc) LoadScene(w *ecs.World, name string) error { return f(w, name) }

type SceneMachineConfig struct {
	Ready    func() bool
	Loader   SceneLoader
	Dialogue *DialogueSystem
	Logger   *log.Logger
	Debug    bool
}

// SceneMachine owns the phase and runs only the active phase's scheduler.
// Entering Conversing is the only thing that stops movement.
type SceneMachine struct {
	phase   Phase
	scene   string
	pending string

	ready      func() bool
	loader     SceneLoader
	dialogue   *DialogueSystem
	hooks      *DialogueHookSystem
	schedulers map[Phase]*ecs.Scheduler
	logger     *log.Logger
	debug      bool
}

func NewSceneMachine(cfg SceneMachineConfig) *SceneMachine {
	ready := cfg.Ready
	if ready == nil {
		ready = func() bool { return true }
	}
	return &SceneMachine{
		phase:      PhaseLoading,
		ready:      ready,
		loader:     cfg.Loader,
		dialogue:   cfg.Dialogue,
		schedulers: map[Phase]*ecs.Scheduler{},
		logger:     cfg.Logger,
		debug:      cfg.Debug,
	}
}

func (m *SceneMachine) SetScheduler(p Phase, s *ecs.Scheduler) {
	m.schedulers[p] = s
}

func (m *SceneMachine) Phase() Phase { return m.phase }

// Scene is the active scene name; empty while loading.
func (m *SceneMachine) Scene() string {
	if m.phase == PhaseLoading {
		return ""
	}
	return m.scene
}

func (m *SceneMachine) Pending() string { return m.pending }

func (m *SceneMachine) Dialogue() *DialogueSystem { return m.dialogue }

// Hooks is the hook system wired by NewPipeline, or nil.
func (m *SceneMachine) Hooks() *DialogueHookSystem { return m.hooks }

// ChangeScene returns to Loading; the named scene loads once assets are
// ready. A live conversation is cancelled first.
func (m *SceneMachine) ChangeScene(w *ecs.World, name string) {
	if m.phase == PhaseConversing && m.dialogue != nil {
		m.dialogue.Cancel(w)
		m.consumeEnded(w)
	}
	logDebug(m.logger, m.debug, "scene: change %q -> %q", m.scene, name)
	m.pending = name
	m.phase = PhaseLoading
}

// Update runs one frame.
func (m *SceneMachine) Update(w *ecs.World) {
	if w == nil {
		return
	}

	switch m.phase {
	case PhaseLoading:
		m.schedulers[PhaseLoading].Update(w)
		m.updateLoading(w)
	case PhaseExploring:
		m.schedulers[PhaseExploring].Update(w)
		m.consumeSceneChanges(w)
		m.consumeRequests(w)
	case PhaseConversing:
		m.schedulers[PhaseConversing].Update(w)
		m.dropRequests(w, "already conversing")
		if m.dialogue == nil || !m.dialogue.Active() {
			m.consumeEnded(w)
			m.phase = PhaseExploring
			logDebug(m.logger, m.debug, "scene: conversation over, exploring %q", m.scene)
		}
	}
}

// updateLoading stages the pending scene in a scratch world first, so a scene
// that fails to load leaves the current one in place and playable.
func (m *SceneMachine) updateLoading(w *ecs.World) {
	if m.pending == "" || !m.ready() {
		return
	}
	name := m.pending
	m.pending = ""

	if m.loader != nil {
		if err := m.loader.LoadScene(ecs.NewWorld(), name); err != nil {
			m.loadFailed(name, err)
			return
		}
	}

	unloadScene(w)
	if m.loader != nil {
		if err := m.loader.LoadScene(w, name); err != nil {
			unloadScene(w)
			m.scene = ""
			m.loadFailed(name, err)
			return
		}
	}
	m.scene = name
	m.phase = PhaseExploring
	logDebug(m.logger, m.debug, "scene: %q loaded, exploring", name)
}

func (m *SceneMachine) loadFailed(name string, err error) {
	if m.scene == "" {
		logWarn(m.logger, "scene: load %q: %v", name, err)
		return
	}
	logWarn(m.logger, "scene: load %q: %v; staying in %q", name, err, m.scene)
	m.phase = PhaseExploring
}

// RequestDialogue asks to enter Conversing with npc. It is ignored outside
// Exploring.
func (m *SceneMachine) RequestDialogue(w *ecs.World, npc ecs.Entity) bool {
	if m.phase != PhaseExploring {
		logDebug(m.logger, m.debug, "scene: dialogue request for %v ignored in %s", npc, m.phase)
		return false
	}
	if m.dialogue == nil {
		return false
	}
	if err := m.dialogue.Begin(w, npc); err != nil {
		logDebug(m.logger, m.debug, "scene: dialogue with %v refused: %v", npc, err)
		return false
	}
	freezePlayer(w)
	m.phase = PhaseConversing
	return true
}

func (m *SceneMachine) consumeRequests(w *ecs.World) {
	reqs := w.Query(component.DialogueRequestComponent.Kind())
	if len(reqs) == 0 {
		return
	}
	accepted := false
	for _, e := range reqs {
		req, ok := ecs.Get(w, e, component.DialogueRequestComponent.Kind())
		if ok && !accepted {
			accepted = m.RequestDialogue(w, ecs.Entity(req.NPC))
		} else if ok {
			logDebug(m.logger, m.debug, "scene: extra dialogue request for %v ignored", ecs.Entity(req.NPC))
		}
		w.DestroyEntity(e)
	}
}

func (m *SceneMachine) consumeSceneChanges(w *ecs.World) {
	for _, e := range w.Query(component.SceneChangeRequestComponent.Kind()) {
		req, ok := ecs.Get(w, e, component.SceneChangeRequestComponent.Kind())
		if ok && m.phase == PhaseExploring && req.Scene != "" {
			m.ChangeScene(w, req.Scene)
		}
		w.DestroyEntity(e)
	}
}

func (m *SceneMachine) dropRequests(w *ecs.World, reason string) {
	for _, e := range w.Query(component.DialogueRequestComponent.Kind()) {
		logDebug(m.logger, m.debug, "scene: dialogue request ignored, %s", reason)
		w.DestroyEntity(e)
	}
}

// consumeEnded clears end markers the hook system did not get to.
func (m *SceneMachine) consumeEnded(w *ecs.World) {
	for _, e := range w.Query(component.DialogueEndedComponent.Kind()) {
		w.DestroyEntity(e)
	}
}

func unloadScene(w *ecs.World) {
	for _, e := range w.Query(component.SceneMemberComponent.Kind()) {
		w.DestroyEntity(e)
	}
	for _, e := range w.Query(component.DialogueRequestComponent.Kind()) {
		w.DestroyEntity(e)
	}
	for _, e := range w.Query(component.SceneChangeRequestComponent.Kind()) {
		w.DestroyEntity(e)
	}
	if camEnt, ok := w.First(component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, camEnt, component.CameraComponent.Kind()); ok {
			cam.Bounds = nil
		}
	}
}
