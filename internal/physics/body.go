// Package physics provides the arcade-style bodies, gravity integration and
// overlap notifications the games run on. Broadphase queries go through a
// resolv.Space; the narrowphase is an AABB test on body bounds.
package physics

import "github.com/solarlune/resolv"

// Body is a rectangular physics body positioned by its center.
// Velocities are in world units per second.
type Body struct {
	obj   *resolv.Object
	world *World

	VX, VY float64

	// Immovable bodies are never integrated by the world; only explicit
	// SetPosition calls move them.
	Immovable bool
	// AllowGravity controls whether world gravity accelerates the body.
	AllowGravity bool
	// Enabled toggles integration entirely. A disabled body keeps its position.
	Enabled bool

	removed bool
}

// X returns the horizontal center.
func (b *Body) X() float64 {
	return b.obj.X + b.obj.W/2
}

// Y returns the vertical center.
func (b *Body) Y() float64 {
	return b.obj.Y + b.obj.H/2
}

// Width returns the body width.
func (b *Body) Width() float64 {
	return b.obj.W
}

// Height returns the body height.
func (b *Body) Height() float64 {
	return b.obj.H
}

// Left returns the x-coordinate of the left edge.
func (b *Body) Left() float64 { return b.obj.X }

// Top returns the y-coordinate of the top edge.
func (b *Body) Top() float64 { return b.obj.Y }

// SetPosition moves the body center to (x, y) and refreshes its broadphase cells.
func (b *Body) SetPosition(x, y float64) {
	if b.removed {
		return
	}
	b.obj.X = x - b.obj.W/2
	b.obj.Y = y - b.obj.H/2
	b.obj.Update()
}

// SetX moves the body horizontally, keeping its vertical center.
func (b *Body) SetX(x float64) {
	b.SetPosition(x, b.Y())
}

// SetY moves the body vertically, keeping its horizontal center.
func (b *Body) SetY(y float64) {
	b.SetPosition(b.X(), y)
}

// Stop zeroes both velocity components.
func (b *Body) Stop() {
	b.VX, b.VY = 0, 0
}

// Removed reports whether the body has been taken out of its world.
func (b *Body) Removed() bool {
	return b.removed
}

// Overlaps reports whether the two bodies' bounds intersect.
// Touching edges do not count as an overlap.
func (b *Body) Overlaps(o *Body) bool {
	if b.removed || o.removed {
		return false
	}
	if b.obj.X >= o.obj.X+o.obj.W || o.obj.X >= b.obj.X+b.obj.W {
		return false
	}
	if b.obj.Y >= o.obj.Y+o.obj.H || o.obj.Y >= b.obj.Y+b.obj.H {
		return false
	}
	return true
}
