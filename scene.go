package howitzer

import (
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// EventSink is the interface for optional game-event forwarding.
// When set on a Scene, hits, misses and score changes are emitted to it.
type EventSink interface {
	EmitEvent(event GameEvent)
}

// GameEventType identifies a kind of game event.
type GameEventType uint8

const (
	EventFired      GameEventType = iota // a projectile left the cannon
	EventHit                             // a projectile landed on the target
	EventMiss                            // a projectile left the playing area
	EventNewBest                         // the best score was beaten
	EventScoreReset                      // score and streak were cleared
	EventBestReset                       // best score was cleared
)

// GameEvent carries the score state after the event.
type GameEvent struct {
	Type     GameEventType
	Points   int
	Score    int
	Best     int
	Streak   int
	Radius   float64
	Position mgl64.Vec3
}

const defaultCommandCap = 256

// Ground plane size and color.
const groundHalfExtent = 20.0

var groundColor = Color{0.55, 0.6, 0.5, 1}
var projectileColor = Color{0.1, 0.1, 0.1, 1}
var targetColors = [...]Color{
	PhaseShrinking: {0.85, 0.2, 0.15, 1},
	PhaseGrowing:   {0.95, 0.7, 0.1, 1},
}

// Scene is the top-level object that owns the tank graph, camera,
// projectiles, target and score. All state lives here; there is no
// package-level mutable state.
type Scene struct {
	graph  *Graph
	camera *Camera

	projectiles []Projectile
	target      *Target
	score       ScoreState

	store KeyValueStore
	sink  EventSink
	rng   *rand.Rand
	log   zerolog.Logger
	debug bool

	// ClearColor fills the screen before each frame when drawn through Run.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// Render state
	commands []RenderCommand

	// Deferred input and scripted runs
	bindings        []KeyBinding
	commandQueue    []Command
	testRunner      *TestRunner
	screenshotQueue []string
	frame           uint64
	onUpdate        func()
}

// NewScene creates a scene around g. A nil graph uses the bundled tank.
func NewScene(g *Graph) *Scene {
	if g == nil {
		g = DefaultTank()
	}
	return &Scene{
		graph:         g,
		camera:        NewCamera(),
		rng:           rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		log:           zerolog.Nop(),
		ClearColor:    Color{0.78, 0.85, 0.92, 1},
		ScreenshotDir: "screenshots",
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		bindings:      DefaultBindings,
	}
}

// Graph returns the scene's node graph.
func (s *Scene) Graph() *Graph {
	return s.graph
}

// Camera returns the scene's camera state.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Score returns a copy of the current score state.
func (s *Scene) Score() ScoreState {
	return s.score
}

// Projectiles returns the live projectiles. The returned slice MUST NOT be
// retained across Update calls.
func (s *Scene) Projectiles() []Projectile {
	return s.projectiles
}

// Target returns the target, or nil before it is first placed.
func (s *Scene) Target() *Target {
	return s.target
}

// SetStore attaches durable storage and loads the best score from it.
func (s *Scene) SetStore(store KeyValueStore) {
	s.store = store
	s.score.Best = s.scorer().loadBest()
	s.log.Debug().Int("best", s.score.Best).Msg("loaded best score")
}

// SetEventSink sets the optional game-event sink.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetLogger replaces the scene logger. The default discards everything.
func (s *Scene) SetLogger(log zerolog.Logger) {
	s.log = log
}

// SetSeed makes target placement deterministic.
func (s *Scene) SetSeed(seed uint64) {
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SetDebugMode enables per-frame timing stats at debug log level. Switching
// it on also checks the graph shape once.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		s.debugCheckGraph()
	}
}

// SetUpdateFunc sets a callback run at the end of every Update, after
// physics. Pass nil to remove it.
func (s *Scene) SetUpdateFunc(fn func()) {
	s.onUpdate = fn
}

// EnsureTarget places the target if it does not exist yet.
func (s *Scene) EnsureTarget() *Target {
	if s.target == nil {
		s.target = newTarget(s.rng)
		s.log.Debug().Floats64("position", s.target.Position[:]).Msg("target placed")
	}
	return s.target
}

// PlaceTarget puts a full-size shrinking target at (x, z), replacing any
// existing target.
func (s *Scene) PlaceTarget(x, z float64) *Target {
	s.target = &Target{Position: mgl64.Vec3{x, 0, z}, Radius: TargetRadius, Phase: PhaseShrinking}
	return s.target
}

// Update runs one fixed simulation tick: queued commands, the scripted test
// runner, the camera transition, projectile physics and collisions, then the
// update callback.
func (s *Scene) Update() {
	s.frame++
	s.processQueue()
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.camera.Update(TickSeconds)
	res := s.stepProjectiles(TickSeconds)
	if res.hits > 0 || res.misses > 0 {
		s.log.Debug().Uint64("frame", s.frame).Int("hits", res.hits).Int("misses", res.misses).Msg("tick")
	}
	if s.onUpdate != nil {
		s.onUpdate()
	}
}

// Draw builds the frame's render commands (ground, tank, projectiles,
// target in that order) and replays them into d for every view.
func (s *Scene) Draw(d Drawer, width, height float64) {
	if d == nil {
		panic("howitzer: Draw with nil Drawer")
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.EnsureTarget()
	s.commands = s.buildFrame(s.commands[:0])

	if s.debug {
		stats.buildTime = time.Since(t0)
		t0 = time.Now()
	}

	views := s.camera.Views(width, height)
	for _, v := range views {
		submitCommands(d, v, s.commands)
	}

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		stats.outlineCount = countOutlines(s.commands)
		stats.viewCount = len(views)
		stats.projectileCount = len(s.projectiles)
		s.debugLog(stats)
	}
}

// buildFrame appends the frame's commands in draw order.
func (s *Scene) buildFrame(cmds []RenderCommand) []RenderCommand {
	wf := s.camera.Wireframe

	ground := mgl64.Translate3D(0, -0.05, 0).Mul4(mgl64.Scale3D(groundHalfExtent*2, 0.1, groundHalfExtent*2))
	cmds = emitPrimitive(cmds, PrimitiveCube, ground, groundColor, LayerGround, NoParent, wf)

	cmds = traverseGraph(s.graph, cmds, wf)

	for i := range s.projectiles {
		cmds = emitPrimitive(cmds, PrimitiveSphere, s.projectiles[i].model(), projectileColor, LayerProjectile, NoParent, wf)
	}

	if s.target != nil {
		cmds = emitPrimitive(cmds, PrimitiveCylinder, s.target.model(), targetColors[s.target.Phase], LayerTarget, NoParent, wf)
	}
	return cmds
}

// Commands returns the render commands built by the last Draw. The returned
// slice MUST NOT be mutated.
func (s *Scene) Commands() []RenderCommand {
	return s.commands
}

func (s *Scene) scorer() scorer {
	return scorer{state: &s.score, store: s.store, log: &s.log}
}

// resolveHit scores p against the target at its current radius, then
// resizes and relocates the target.
func (s *Scene) resolveHit(p *Projectile) {
	radius := s.target.Radius
	points, newBest := s.scorer().recordHit(radius)
	s.target.advance()
	s.target.relocate(s.rng)

	s.log.Debug().
		Int("points", points).
		Int("score", s.score.Score).
		Int("streak", s.score.Streak).
		Float64("radius", radius).
		Str("phase", s.target.Phase.String()).
		Msg("target hit")

	s.emit(GameEvent{Type: EventHit, Points: points, Radius: radius, Position: p.Position})
	if newBest {
		s.emit(GameEvent{Type: EventNewBest})
	}
}

// resolveMiss ends the streak. Score and best are untouched.
func (s *Scene) resolveMiss(p *Projectile) {
	s.scorer().recordMiss()
	s.log.Debug().Floats64("position", p.Position[:]).Msg("projectile out of bounds")
	s.emit(GameEvent{Type: EventMiss, Position: p.Position})
}

func (s *Scene) emit(e GameEvent) {
	if s.sink == nil {
		return
	}
	e.Score = s.score.Score
	e.Best = s.score.Best
	e.Streak = s.score.Streak
	s.sink.EmitEvent(e)
}
