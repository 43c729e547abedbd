package flappy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/physics"
)

func TestNewPipesGeometry(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	world := physics.NewWorld(cfg.World.Width, cfg.World.Height, cfg.World.Gravity)

	for seed := int64(1); seed <= 20; seed++ {
		p := NewPipes(world, cfg.Pipes, cfg.Pipes.OriginX, rand.New(rand.NewSource(seed)))

		if p.Gap() < cfg.Pipes.GapMin || p.Gap() >= cfg.Pipes.GapMin+cfg.Pipes.GapBand {
			t.Errorf("seed %d: gap %v outside [%v, %v)", seed, p.Gap(), cfg.Pipes.GapMin, cfg.Pipes.GapMin+cfg.Pipes.GapBand)
		}
		if p.Bottom().Y() != cfg.Pipes.AnchorY {
			t.Errorf("seed %d: lower center Y = %v, expected %v", seed, p.Bottom().Y(), cfg.Pipes.AnchorY)
		}
		expectedTop := cfg.Pipes.AnchorY - cfg.Pipes.Height - p.Gap()
		if math.Abs(p.Top().Y()-expectedTop) > 1e-9 {
			t.Errorf("seed %d: upper center Y = %v, expected %v", seed, p.Top().Y(), expectedTop)
		}
		if p.Top().X() != cfg.Pipes.OriginX || p.Bottom().X() != cfg.Pipes.OriginX {
			t.Errorf("seed %d: pipes not centered at origin", seed)
		}
		for _, b := range p.Bodies() {
			if !b.Immovable || b.AllowGravity {
				t.Errorf("seed %d: pipe body should be immovable and gravity-exempt", seed)
			}
		}
		p.Destroy()
	}
}

func TestPipesIgnoreGravity(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	world := physics.NewWorld(cfg.World.Width, cfg.World.Height, cfg.World.Gravity)
	p := NewPipes(world, cfg.Pipes, 300, rand.New(rand.NewSource(1)))
	topY, bottomY := p.Top().Y(), p.Bottom().Y()

	for i := 0; i < 60; i++ {
		world.Step(1.0 / 60)
	}

	if p.Top().Y() != topY || p.Bottom().Y() != bottomY {
		t.Error("pipes moved under gravity")
	}
}

func TestPipesExitSignalFiresOnce(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	world := physics.NewWorld(cfg.World.Width, cfg.World.Height, cfg.World.Gravity)
	p := NewPipes(world, cfg.Pipes, 400, rand.New(rand.NewSource(7)))

	// Center goes from 400 to -26 (-width/2) in steps of 2.
	const expectedTick = 213

	fired := 0
	firstTick := 0
	for tick := 1; tick <= 400; tick++ {
		if p.Move(2) {
			fired++
			if firstTick == 0 {
				firstTick = tick
			}
		}
	}

	if fired != 1 {
		t.Errorf("exit signal fired %d times, expected 1", fired)
	}
	if firstTick != expectedTick {
		t.Errorf("exit signal fired on tick %d, expected %d", firstTick, expectedTick)
	}
}

func TestPipesMoveUsesSpeed(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	world := physics.NewWorld(cfg.World.Width, cfg.World.Height, cfg.World.Gravity)
	p := NewPipes(world, cfg.Pipes, 400, rand.New(rand.NewSource(1)))

	p.Move(3.5)

	if p.X() != 396.5 || p.Top().X() != 396.5 {
		t.Errorf("X after Move(3.5) = %v/%v, expected 396.5", p.X(), p.Top().X())
	}
}

func TestPipesDestroy(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	world := physics.NewWorld(cfg.World.Width, cfg.World.Height, cfg.World.Gravity)
	p := NewPipes(world, cfg.Pipes, 400, rand.New(rand.NewSource(1)))

	if world.BodyCount() != 2 {
		t.Fatalf("BodyCount = %d, expected 2", world.BodyCount())
	}

	p.Destroy()
	p.Destroy()

	if world.BodyCount() != 0 {
		t.Errorf("BodyCount after Destroy = %d, expected 0", world.BodyCount())
	}
	if !p.Destroyed() || p.Bodies() != nil {
		t.Error("destroyed pipes should report no bodies")
	}

	x := p.X()
	for i := 0; i < 300; i++ {
		if p.Move(2) {
			t.Fatal("destroyed pipes signalled exit")
		}
	}
	if p.X() != x {
		t.Error("destroyed pipes moved")
	}
}
