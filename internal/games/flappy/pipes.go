package flappy

import (
	"math/rand"

	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/physics"
)

// Pipes is one obstacle pair: a lower and an upper pipe separated by a
// vertical gap chosen at spawn time. Both bodies scroll together.
type Pipes struct {
	world  *physics.World
	top    *physics.Body
	bottom *physics.Body
	gap    float64

	exited    bool
	destroyed bool
}

// NewPipes spawns a pair centered horizontally at x. The lower pipe's center
// sits at cfg.AnchorY and the upper pipe hangs gap units above it.
func NewPipes(world *physics.World, cfg config.PipesConfig, x float64, rng *rand.Rand) *Pipes {
	gap := cfg.GapMin + rng.Float64()*cfg.GapBand

	bottom := world.NewBody(x, cfg.AnchorY, cfg.Width, cfg.Height, "pipe")
	top := world.NewBody(x, bottom.Y()-bottom.Height()-gap, cfg.Width, cfg.Height, "pipe")
	for _, b := range []*physics.Body{bottom, top} {
		b.Immovable = true
		b.AllowGravity = false
	}

	return &Pipes{world: world, top: top, bottom: bottom, gap: gap}
}

// Move scrolls the pair left by speed units. It returns true exactly once:
// on the first call after the pair has fully left the field.
func (p *Pipes) Move(speed float64) bool {
	if p.destroyed {
		return false
	}

	p.bottom.SetX(p.bottom.X() - speed)
	p.top.SetX(p.top.X() - speed)

	if !p.exited && p.bottom.X() <= -p.bottom.Width()/2 {
		p.exited = true
		return true
	}
	return false
}

// Bodies returns the live bodies, or nil once destroyed.
func (p *Pipes) Bodies() []*physics.Body {
	if p.destroyed {
		return nil
	}
	return []*physics.Body{p.top, p.bottom}
}

// Destroy removes both bodies from the world. Repeated calls do nothing.
func (p *Pipes) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.world.Remove(p.top)
	p.world.Remove(p.bottom)
}

// X returns the shared horizontal center.
func (p *Pipes) X() float64 { return p.bottom.X() }

// Gap returns the vertical distance between the two pipes.
func (p *Pipes) Gap() float64 { return p.gap }

// Top returns the upper pipe body.
func (p *Pipes) Top() *physics.Body { return p.top }

// Bottom returns the lower pipe body.
func (p *Pipes) Bottom() *physics.Body { return p.bottom }

// Destroyed reports whether the pair has been removed from the world.
func (p *Pipes) Destroyed() bool { return p.destroyed }
