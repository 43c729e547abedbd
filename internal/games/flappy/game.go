// Package flappy implements a Flappy Bird-style game.
// The player taps to flap a bird through an endless stream of pipe pairs.
// A table-driven state machine sequences each round:
// pre-action, action, dying, result, and back to pre-action.
package flappy

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/physics"
)

// Game implements the flappy game logic.
type Game struct {
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	logger  *log.Logger
	kv      KeyValueStore

	world   *physics.World
	bird    *Bird
	pipes   *Pipes           // the single live pair, nil outside a round
	overlap *physics.Overlap // bird vs the live pair
	score   *ScoreStore
	speed   config.SpeedCurve
	rng     *rand.Rand

	screen *screenCues
	extra  []Cues
	cues   cueSet

	state State
	entry map[State]func()

	bgOffset  float64
	paused    bool
	roundOver bool
	tickCount int
}

// Option configures a Game.
type Option func(*Game)

// WithConfig replaces the default game configuration.
func WithConfig(cfg config.FlappyConfig) Option {
	return func(g *Game) { g.cfg = cfg }
}

// WithStore sets where the best score is persisted.
func WithStore(kv KeyValueStore) Option {
	return func(g *Game) { g.kv = kv }
}

// WithLogger sets the logger for transitions and persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithCues adds a receiver that observes every visual cue.
func WithCues(c Cues) Option {
	return func(g *Game) { g.extra = append(g.extra, c) }
}

// New creates a new flappy game instance. Call Reset before stepping it.
func New(opts ...Option) *Game {
	g := &Game{
		cfg:    config.DefaultFlappyConfig(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.entry = map[State]func(){
		StatePreAction: g.enterPreAction,
		StateAction:    g.enterAction,
		StateDying:     g.enterDying,
		StateResult:    g.enterResult,
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset builds a fresh world and puts the game into PreAction.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc

	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	g.screen = newScreenCues()
	g.cues = append(cueSet{g.screen}, g.extra...)

	g.world = physics.NewWorld(g.cfg.World.Width, g.cfg.World.Height, g.cfg.World.Gravity)
	g.bird = newBird(g.world, g.cfg.Bird, g.cues)
	g.pipes = nil
	g.overlap = nil
	g.speed = config.NewSpeedCurve(g.cfg.Speed)

	g.score = NewScoreStore(g.kv, g.cfg.Storage.BestKey)
	if err := g.score.Load(); err != nil {
		g.logger.Warn("could not load best score", "err", err)
	}

	g.bgOffset = 0
	g.paused = false
	g.roundOver = false
	g.tickCount = 0
	g.state = StateUndefined

	g.Dispatch(EventInit)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.state != StateResult {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	if in.Has(core.ActionJump) {
		g.Activate()
	}

	switch g.state {
	case StateAction:
		g.actionUpdate()
	case StateDying:
		g.dyingUpdate()
	}

	dt := g.runtime.TickSeconds()
	g.world.Step(dt)
	g.screen.advance(dt)

	res := core.StepResult{State: g.State(), RoundOver: g.roundOver}
	g.roundOver = false
	return res
}

// Activate handles a player tap.
func (g *Game) Activate() {
	switch g.state {
	case StateAction:
		g.bird.Jump()
	case StatePreAction:
		g.Dispatch(EventActivate)
	case StateResult:
		g.cues.HideResult()
		g.Dispatch(EventActivate)
	}
}

// Dispatch feeds an event to the state machine and reports whether it caused
// a transition. Events with no entry in the table are ignored.
func (g *Game) Dispatch(e Event) bool {
	to, ok := nextState(g.state, e)
	if !ok {
		return false
	}
	g.setState(to)
	return true
}

func (g *Game) setState(to State) {
	if to == g.state {
		return
	}
	g.logger.Debug("state transition", "from", g.state, "to", to, "score", g.score.Current())
	g.state = to
	if fn := g.entry[to]; fn != nil {
		fn()
	}
}

func (g *Game) enterPreAction() {
	g.destroyPipes()
	g.score.Reset()
	g.bird.ResetPosition()
	g.cues.ScoreChanged(g.score.Current(), g.score.Best())
	g.cues.ShowMessage()
}

func (g *Game) enterAction() {
	g.spawnPipes()
	g.cues.HideMessage()
	g.bird.EnablePhysics()
	g.bird.Jump()
}

func (g *Game) enterDying() {
	g.bird.Die()
}

func (g *Game) enterResult() {
	if err := g.score.Finalize(); err != nil {
		g.logger.Warn("could not save best score", "err", err)
	}
	g.cues.ScoreChanged(g.score.Current(), g.score.Best())
	g.cues.ShowResult(g.score.Current(), g.score.Best())
	g.roundOver = true
}

func (g *Game) actionUpdate() {
	if g.bird.Y() > g.cfg.Floor() {
		g.Dispatch(EventFellOut)
		return
	}

	g.bird.Update()

	speed := g.Speed()
	g.bgOffset += speed
	if g.pipes != nil && g.pipes.Move(speed) {
		g.recyclePipes()
	}
}

func (g *Game) dyingUpdate() {
	if g.bird.Y() <= g.cfg.Floor() {
		return
	}
	g.bird.RestAt(g.cfg.Floor() - g.cfg.World.FloorMargin)
	g.bird.DisablePhysics()
	g.Dispatch(EventFellOut)
}

func (g *Game) recyclePipes() {
	g.destroyPipes()
	g.score.Increment()
	g.cues.ScoreChanged(g.score.Current(), g.score.Best())
	g.spawnPipes()
}

func (g *Game) spawnPipes() {
	g.pipes = NewPipes(g.world, g.cfg.Pipes, g.cfg.Pipes.OriginX, g.rng)
	g.overlap = g.world.AddOverlap(g.bird.Body(), g.pipes.Bodies(), g.onCollision)
}

func (g *Game) destroyPipes() {
	if g.overlap != nil {
		g.overlap.Destroy()
		g.overlap = nil
	}
	if g.pipes != nil {
		g.pipes.Destroy()
		g.pipes = nil
	}
}

func (g *Game) onCollision(_, _ *physics.Body) {
	g.Dispatch(EventCollision)
}

// Speed returns the current scroll speed in world units per tick.
func (g *Game) Speed() float64 {
	return g.speed.At(g.score.Current())
}

// Phase returns the current state machine state.
func (g *Game) Phase() State {
	return g.state
}

// Bird returns the player entity.
func (g *Game) Bird() *Bird {
	return g.bird
}

// Pipes returns the live obstacle pair, or nil.
func (g *Game) Pipes() *Pipes {
	return g.pipes
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:    g.state.String(),
		Score:    g.score.Current(),
		Best:     g.score.Best(),
		GameOver: g.state == StateResult,
		Paused:   g.paused,
	}
}

// IsOver returns true while the round result is on screen.
func (g *Game) IsOver() bool {
	return g.state == StateResult
}
