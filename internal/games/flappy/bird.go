package flappy

import (
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/physics"
)

// Bird is the player-controlled body. It starts with physics disabled and is
// only integrated by the world while a round is in Action or Dying.
type Bird struct {
	body *physics.Body
	cfg  config.BirdConfig
	cues Cues
	tilt float64 // -1 nose up .. 1 nose down
	dead bool
}

func newBird(world *physics.World, cfg config.BirdConfig, cues Cues) *Bird {
	body := world.NewBody(cfg.X, cfg.Y, cfg.Width, cfg.Height, "bird")
	body.Enabled = false
	return &Bird{body: body, cfg: cfg, cues: cues}
}

// Jump sets the upward velocity. Ignored while physics is disabled.
func (b *Bird) Jump() {
	if !b.body.Enabled {
		return
	}
	b.body.VY = -b.cfg.JumpImpulse
}

// EnablePhysics lets the world integrate the bird.
func (b *Bird) EnablePhysics() {
	b.body.Enabled = true
}

// DisablePhysics freezes the bird in place.
func (b *Bird) DisablePhysics() {
	b.body.Enabled = false
	b.body.Stop()
}

// ResetPosition moves the bird back to its spawn point.
func (b *Bird) ResetPosition() {
	b.body.SetPosition(b.cfg.X, b.cfg.Y)
	b.body.Stop()
	b.tilt = 0
	b.dead = false
}

// Die plays the death cue. Physics is left untouched so the bird keeps falling.
func (b *Bird) Die() {
	b.dead = true
	b.cues.BirdDied()
}

// Update clamps the bird to the top of the field and refreshes its tilt.
func (b *Bird) Update() {
	if b.body.Y() <= 0 {
		b.body.SetY(0)
		b.body.VY = 0
	}
	if b.cfg.JumpImpulse > 0 {
		b.tilt = core.ClampF(b.body.VY/b.cfg.JumpImpulse, -1, 1)
	}
}

// RestAt places the bird at y without touching its velocity.
func (b *Bird) RestAt(y float64) {
	b.body.SetY(y)
}

// X returns the bird's horizontal center.
func (b *Bird) X() float64 { return b.body.X() }

// Y returns the bird's vertical center.
func (b *Bird) Y() float64 { return b.body.Y() }

// Velocity returns the vertical velocity; negative is upward.
func (b *Bird) Velocity() float64 { return b.body.VY }

// Tilt returns the visual pitch, -1 nose up to 1 nose down.
func (b *Bird) Tilt() float64 { return b.tilt }

// Dead reports whether the death cue has played this round.
func (b *Bird) Dead() bool { return b.dead }

// PhysicsEnabled reports whether the world integrates the bird.
func (b *Bird) PhysicsEnabled() bool { return b.body.Enabled }

// Body returns the underlying physics body.
func (b *Bird) Body() *physics.Body { return b.body }
