package flappy

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

type recordingCues struct {
	calls      map[string]int
	lastResult [2]int
}

func newRecordingCues() *recordingCues {
	return &recordingCues{calls: make(map[string]int)}
}

func (c *recordingCues) ShowMessage() { c.calls["ShowMessage"]++ }
func (c *recordingCues) HideMessage() { c.calls["HideMessage"]++ }
func (c *recordingCues) BirdDied()    { c.calls["BirdDied"]++ }
func (c *recordingCues) HideResult()  { c.calls["HideResult"]++ }

func (c *recordingCues) ShowResult(score, best int) {
	c.calls["ShowResult"]++
	c.lastResult = [2]int{score, best}
}

func (c *recordingCues) ScoreChanged(score, best int) {
	c.calls["ScoreChanged"]++
}

func (c *recordingCues) total() int {
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	base := []Option{WithStore(storage.NewMemoryStore()), WithLogger(log.New(io.Discard))}
	g := New(append(base, opts...)...)
	g.Reset(testRuntime())
	return g
}

func tap() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func startRound(t *testing.T, g *Game) {
	t.Helper()
	g.Step(tap())
	if g.Phase() != StateAction {
		t.Fatalf("phase after first tap = %v, expected action", g.Phase())
	}
}

// passPipes pushes the live pair to the edge so the next tick recycles it.
func passPipes(t *testing.T, g *Game) {
	t.Helper()
	p := g.Pipes()
	if p == nil {
		t.Fatal("no live pipes")
	}
	edge := -p.Bottom().Width()/2 + 1
	p.Top().SetX(edge)
	p.Bottom().SetX(edge)
	g.Step(idle())
	if g.Pipes() == p {
		t.Fatal("pipes were not recycled")
	}
}

// dropBird sends the bird below the floor with no upward velocity left and
// steps until the round is over.
func dropBird(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	g.Bird().Body().SetY(g.cfg.Floor() + 1)
	g.Bird().Body().VY = 0
	for i := 0; i < 10; i++ {
		res := g.Step(idle())
		if res.RoundOver {
			return res
		}
	}
	t.Fatalf("round did not end, phase %v", g.Phase())
	return core.StepResult{}
}

func TestGameResetEntersPreAction(t *testing.T) {
	cues := newRecordingCues()
	g := newTestGame(t, WithCues(cues))

	if g.Phase() != StatePreAction {
		t.Errorf("phase after Reset = %v, expected pre_action", g.Phase())
	}
	if cues.calls["ShowMessage"] != 1 {
		t.Errorf("ShowMessage calls = %d, expected 1", cues.calls["ShowMessage"])
	}
	if g.Pipes() != nil || g.world.BodyCount() != 1 {
		t.Error("no pipes should exist before the first tap")
	}
	if g.Bird().PhysicsEnabled() {
		t.Error("bird physics should be disabled in pre-action")
	}
}

func TestGamePreActionIdle(t *testing.T) {
	g := newTestGame(t)
	y := g.Bird().Y()

	for i := 0; i < 120; i++ {
		g.Step(idle())
	}

	if g.Phase() != StatePreAction {
		t.Errorf("phase = %v, expected pre_action", g.Phase())
	}
	if g.Bird().Y() != y {
		t.Error("bird should hover until the first tap")
	}
}

func TestGameSetStateIdempotent(t *testing.T) {
	cues := newRecordingCues()
	g := newTestGame(t, WithCues(cues))

	g.setState(StateAction)
	g.setState(StateAction)

	if g.world.BodyCount() != 3 {
		t.Errorf("BodyCount = %d, expected 3 (bird + one pair)", g.world.BodyCount())
	}
	if g.world.ActiveOverlaps() != 1 {
		t.Errorf("ActiveOverlaps = %d, expected 1", g.world.ActiveOverlaps())
	}
	if cues.calls["HideMessage"] != 1 {
		t.Errorf("HideMessage calls = %d, expected 1", cues.calls["HideMessage"])
	}

	g.setState(StatePreAction)
	g.setState(StatePreAction)

	if cues.calls["ShowMessage"] != 2 {
		t.Errorf("ShowMessage calls = %d, expected 2", cues.calls["ShowMessage"])
	}
	if g.world.BodyCount() != 1 || g.world.ActiveOverlaps() != 0 {
		t.Errorf("pre-action should leave only the bird, got %d bodies, %d overlaps",
			g.world.BodyCount(), g.world.ActiveOverlaps())
	}
}

func TestGameActivate(t *testing.T) {
	g := newTestGame(t)

	g.Activate()
	if g.Phase() != StateAction {
		t.Fatalf("phase = %v, expected action", g.Phase())
	}
	if g.Bird().Velocity() != -300 {
		t.Errorf("round start should flap, vy = %v", g.Bird().Velocity())
	}

	g.Bird().Body().VY = 100
	g.Activate()
	if g.Phase() != StateAction || g.Bird().Velocity() != -300 {
		t.Errorf("tap in action should only flap, phase %v vy %v", g.Phase(), g.Bird().Velocity())
	}

	for _, s := range []State{StateUndefined, StateDying} {
		g.state = s
		g.Bird().Body().VY = 50
		g.Activate()
		if g.Phase() != s || g.Bird().Velocity() != 50 {
			t.Errorf("tap in %v should do nothing", s)
		}
	}
}

func TestGameSpeed(t *testing.T) {
	// Scenario A
	g := newTestGame(t)
	startRound(t, g)

	if g.Speed() != 2.0 {
		t.Errorf("speed at score 0 = %v, expected 2", g.Speed())
	}

	for i := 0; i < 3; i++ {
		passPipes(t, g)
	}

	if g.State().Score != 3 {
		t.Fatalf("score = %d, expected 3", g.State().Score)
	}
	if math.Abs(g.Speed()-2.3) > 1e-9 {
		t.Errorf("speed after 3 passes = %v, expected 2.3", g.Speed())
	}
}

func TestGameBestScorePersisted(t *testing.T) {
	// Scenario B
	kv := storage.NewMemoryStore()
	g := newTestGame(t, WithStore(kv))

	if g.State().Best != 0 {
		t.Fatalf("best from empty store = %d, expected 0", g.State().Best)
	}

	startRound(t, g)
	for i := 0; i < 5; i++ {
		passPipes(t, g)
	}
	res := dropBird(t, g)

	if res.State.Phase != "result" || !res.State.GameOver {
		t.Errorf("round over state = %+v", res.State)
	}
	if res.State.Best != 5 {
		t.Errorf("best = %d, expected 5", res.State.Best)
	}
	v, ok, _ := kv.Get(DefaultBestKey)
	if !ok || v != "5" {
		t.Errorf("persisted best = %q (present %v), expected \"5\"", v, ok)
	}

	// A worse round keeps the best.
	g.Step(tap())
	startRound(t, g)
	passPipes(t, g)
	dropBird(t, g)

	v, _, _ = kv.Get(DefaultBestKey)
	if v != "5" || g.State().Best != 5 {
		t.Errorf("best after worse round = %q / %d, expected 5", v, g.State().Best)
	}
}

func TestGameSharedStoreKeepsHigherBest(t *testing.T) {
	kv := storage.NewMemoryStore()
	a := newTestGame(t, WithStore(kv))
	b := newTestGame(t, WithStore(kv))

	startRound(t, a)
	for i := 0; i < 10; i++ {
		passPipes(t, a)
	}
	dropBird(t, a)

	if v, _, _ := kv.Get(DefaultBestKey); v != "10" {
		t.Fatalf("stored best after first game = %q, expected \"10\"", v)
	}

	// b loaded its best before a finished.
	startRound(t, b)
	for i := 0; i < 3; i++ {
		passPipes(t, b)
	}
	dropBird(t, b)

	if v, _, _ := kv.Get(DefaultBestKey); v != "10" {
		t.Errorf("stored best after second game = %q, expected \"10\"", v)
	}
	if b.State().Best != 10 {
		t.Errorf("second game best = %d, expected 10", b.State().Best)
	}
}

func TestGameSinglePipePair(t *testing.T) {
	// Scenario C
	g := newTestGame(t)
	startRound(t, g)

	first := g.Pipes()
	firstOverlap := g.overlap
	if g.world.BodyCount() != 3 || g.world.ActiveOverlaps() != 1 {
		t.Fatalf("after round start: %d bodies, %d overlaps; expected 3 and 1",
			g.world.BodyCount(), g.world.ActiveOverlaps())
	}

	for i := 0; i < 4; i++ {
		passPipes(t, g)
		if g.world.BodyCount() != 3 || g.world.ActiveOverlaps() != 1 {
			t.Errorf("after pass %d: %d bodies, %d overlaps; expected 3 and 1",
				i+1, g.world.BodyCount(), g.world.ActiveOverlaps())
		}
		if g.Pipes().X() != g.cfg.Pipes.OriginX {
			t.Errorf("replacement spawned at %v, expected %v", g.Pipes().X(), g.cfg.Pipes.OriginX)
		}
	}

	if !first.Destroyed() || firstOverlap.Active() {
		t.Error("recycled pair and its overlap should be destroyed")
	}
}

func TestGameFellOutFiresOnce(t *testing.T) {
	// Scenario D
	cues := newRecordingCues()
	g := newTestGame(t, WithCues(cues))
	startRound(t, g)

	g.Bird().Body().SetY(g.cfg.Floor() + 0.5)
	g.Bird().Body().VY = 0
	g.Step(idle())
	if g.Phase() != StateDying {
		t.Fatalf("phase = %v, expected die", g.Phase())
	}

	for i := 0; i < 10; i++ {
		g.Step(idle())
	}

	if cues.calls["BirdDied"] != 1 {
		t.Errorf("BirdDied calls = %d, expected 1", cues.calls["BirdDied"])
	}
	if g.Phase() != StateResult {
		t.Errorf("phase = %v, expected result", g.Phase())
	}
	if g.Bird().Y() != g.cfg.Floor()-g.cfg.World.FloorMargin {
		t.Errorf("bird rests at %v, expected %v", g.Bird().Y(), g.cfg.Floor()-g.cfg.World.FloorMargin)
	}
	if g.Bird().PhysicsEnabled() {
		t.Error("bird physics should be disabled on the result screen")
	}
}

func TestGameCollisionIgnoredOutsideAction(t *testing.T) {
	// Scenario E
	for _, s := range []State{StatePreAction, StateDying, StateResult} {
		cues := newRecordingCues()
		g := newTestGame(t, WithCues(cues))
		g.state = s

		g.onCollision(g.Bird().Body(), nil)

		if g.Phase() != s {
			t.Errorf("collision in %v moved to %v", s, g.Phase())
		}
		if cues.calls["BirdDied"] != 0 {
			t.Errorf("collision in %v emitted a death cue", s)
		}
	}
}

func TestGameCollisionKillsBird(t *testing.T) {
	cues := newRecordingCues()
	g := newTestGame(t, WithCues(cues))
	startRound(t, g)

	g.Pipes().Bottom().SetPosition(g.Bird().X(), g.Bird().Y())
	g.Step(idle())

	if g.Phase() != StateDying {
		t.Fatalf("phase after hitting a pipe = %v, expected die", g.Phase())
	}
	if !g.Bird().PhysicsEnabled() {
		t.Error("a dying bird keeps falling")
	}

	// The round only ends once the bird has fallen past the floor.
	ticks := 0
	for g.Phase() == StateDying && ticks < 600 {
		g.Step(idle())
		ticks++
	}
	if g.Phase() != StateResult {
		t.Fatalf("bird never reached the floor, phase %v", g.Phase())
	}
	if ticks < 10 {
		t.Errorf("result after only %d ticks, the bird should fall first", ticks)
	}
	if cues.calls["BirdDied"] != 1 {
		t.Errorf("BirdDied calls = %d, expected 1", cues.calls["BirdDied"])
	}
	if g.Pipes() == nil {
		t.Error("pipes stay on screen until the next round")
	}
}

func TestGameResultRestart(t *testing.T) {
	cues := newRecordingCues()
	g := newTestGame(t, WithCues(cues))
	startRound(t, g)
	passPipes(t, g)
	passPipes(t, g)
	res := dropBird(t, g)

	if !res.RoundOver || cues.calls["ShowResult"] != 1 {
		t.Fatal("round end should show the result once")
	}
	if cues.lastResult != [2]int{2, 2} {
		t.Errorf("result popup got %v, expected [2 2]", cues.lastResult)
	}

	if next := g.Step(idle()); next.RoundOver {
		t.Error("RoundOver should be reported on a single tick")
	}

	g.Step(tap())

	if g.Phase() != StatePreAction {
		t.Fatalf("phase after tap on result = %v, expected pre_action", g.Phase())
	}
	if cues.calls["HideResult"] != 1 {
		t.Errorf("HideResult calls = %d, expected 1", cues.calls["HideResult"])
	}
	st := g.State()
	if st.Score != 0 || st.Best != 2 {
		t.Errorf("after restart score=%d best=%d, expected 0 and 2", st.Score, st.Best)
	}
	if g.Pipes() != nil || g.world.BodyCount() != 1 {
		t.Error("restart should clear the old pipes")
	}
	if g.Bird().X() != 100 || g.Bird().Y() != 250 {
		t.Errorf("bird at (%v, %v), expected spawn (100, 250)", g.Bird().X(), g.Bird().Y())
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 600)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%18 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	run := func() (core.GameState, float64, int) {
		g := newTestGame(t)
		var st core.GameState
		for _, in := range inputs {
			st = g.Step(in).State
		}
		return st, g.Bird().Y(), g.tickCount
	}

	st1, y1, n1 := run()
	st2, y2, n2 := run()

	if st1 != st2 {
		t.Errorf("states differ: %+v vs %+v", st1, st2)
	}
	if y1 != y2 || n1 != n2 {
		t.Errorf("bird Y %v vs %v, ticks %d vs %d", y1, y2, n1, n2)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t)
	startRound(t, g)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}

	y := g.Bird().Y()
	ticks := g.tickCount
	for i := 0; i < 30; i++ {
		g.Step(tap())
	}
	if g.Bird().Y() != y || g.tickCount != ticks {
		t.Error("paused game should not advance")
	}

	res = g.Step(pause)
	if res.State.Paused {
		t.Error("second pause should resume")
	}
}

func TestGameLoadFailureIsLogged(t *testing.T) {
	kv := storage.NewMemoryStore()
	_ = kv.Set(DefaultBestKey, "not-a-number")

	g := newTestGame(t, WithStore(kv))

	if g.Phase() != StatePreAction || g.State().Best != 0 {
		t.Errorf("bad stored best should fall back to 0, got %+v", g.State())
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Score - 0, Best - 0") {
		t.Error("HUD missing from render")
	}
	if !strings.Contains(out, "GET READY") {
		t.Error("start prompt missing from render")
	}
	if !strings.ContainsRune(out, BirdLevelChar) {
		t.Error("bird missing from render")
	}
	if !strings.ContainsRune(screen.Row(23), GroundChar) {
		t.Error("ground missing from the last row")
	}

	startRound(t, g)
	g.Pipes().Top().SetX(200)
	g.Pipes().Bottom().SetX(200)
	g.Render(screen)
	out = screen.String()
	if strings.Contains(out, "GET READY") {
		t.Error("prompt should hide once the round starts")
	}
	if !strings.ContainsRune(out, PipeChar) {
		t.Error("pipes missing from render")
	}

	dropBird(t, g)
	for i := 0; i < 60; i++ {
		g.Step(idle())
	}
	g.Render(screen)
	out = screen.String()
	if !strings.Contains(out, "GAME OVER") {
		t.Error("result popup missing from render")
	}
}

func TestGameRenderTinyScreen(t *testing.T) {
	g := newTestGame(t)
	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 2}} {
		screen := core.NewScreen(size[0], size[1])
		g.Render(screen)
	}
}
