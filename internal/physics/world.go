package physics

import (
	"slices"

	"github.com/solarlune/resolv"
)

// cellSize is the resolv broadphase cell edge in world units.
const cellSize = 16

// World owns a set of bodies, integrates them under gravity and reports
// overlaps. It is not safe for concurrent use; the game loop drives it from a
// single goroutine.
type World struct {
	space    *resolv.Space
	gravity  float64
	bodies   map[*resolv.Object]*Body
	overlaps []*Overlap
}

// NewWorld creates a world covering width x height units with the given
// downward gravity in units per second squared.
func NewWorld(width, height int, gravity float64) *World {
	return &World{
		space:   resolv.NewSpace(width, height, cellSize, cellSize),
		gravity: gravity,
		bodies:  make(map[*resolv.Object]*Body),
	}
}

// Gravity returns the world's downward acceleration.
func (w *World) Gravity() float64 {
	return w.gravity
}

// NewBody adds an enabled, gravity-affected body centered at (x, y).
func (w *World) NewBody(x, y, width, height float64, tags ...string) *Body {
	obj := resolv.NewObject(x-width/2, y-height/2, width, height, tags...)
	b := &Body{
		obj:          obj,
		world:        w,
		AllowGravity: true,
		Enabled:      true,
	}
	w.bodies[obj] = b
	w.space.Add(obj)
	return b
}

// Remove takes a body out of the world. Removing twice is a no-op.
func (w *World) Remove(b *Body) {
	if b == nil || b.removed || b.world != w {
		return
	}
	w.space.Remove(b.obj)
	delete(w.bodies, b.obj)
	b.removed = true
	b.Stop()
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Step advances every enabled, movable body by dt seconds and then fires the
// callbacks of all active overlaps whose bodies intersect.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		w.integrate(b, dt)
	}
	w.checkOverlaps()
}

func (w *World) integrate(b *Body, dt float64) {
	if !b.Enabled || b.Immovable {
		return
	}
	if b.AllowGravity {
		b.VY += w.gravity * dt
	}
	if b.VX == 0 && b.VY == 0 {
		return
	}
	b.SetPosition(b.X()+b.VX*dt, b.Y()+b.VY*dt)
}

// AddOverlap registers an overlap test between a and each of others.
// fn runs synchronously from Step with the first intersecting pair found.
func (w *World) AddOverlap(a *Body, others []*Body, fn func(a, b *Body)) *Overlap {
	o := &Overlap{
		world:  w,
		a:      a,
		others: slices.Clone(others),
		fn:     fn,
		active: true,
	}
	w.overlaps = append(w.overlaps, o)
	return o
}

// ActiveOverlaps returns the number of registered overlap tests.
func (w *World) ActiveOverlaps() int {
	return len(w.overlaps)
}

func (w *World) checkOverlaps() {
	// Callbacks may destroy or add overlaps, so walk a snapshot.
	for _, o := range slices.Clone(w.overlaps) {
		if !o.active || o.a.removed {
			continue
		}
		if hit := o.firstHit(); hit != nil {
			o.fn(o.a, hit)
		}
	}
}

func (w *World) dropOverlap(o *Overlap) {
	w.overlaps = slices.DeleteFunc(w.overlaps, func(x *Overlap) bool { return x == o })
}

// Overlap is a registered intersection test between one body and a group.
type Overlap struct {
	world  *World
	a      *Body
	others []*Body
	fn     func(a, b *Body)
	active bool
}

// firstHit returns the first body in the group intersecting a, using the
// resolv cell grid to skip bodies that are nowhere near.
func (o *Overlap) firstHit() *Body {
	check := o.a.obj.Check(0, 0)
	if check == nil {
		return nil
	}
	for _, obj := range check.Objects {
		candidate, ok := o.world.bodies[obj]
		if !ok || !slices.Contains(o.others, candidate) {
			continue
		}
		if o.a.Overlaps(candidate) {
			return candidate
		}
	}
	return nil
}

// Active reports whether the overlap is still registered.
func (o *Overlap) Active() bool {
	return o.active
}

// Destroy unregisters the overlap. Destroying twice is a no-op.
func (o *Overlap) Destroy() {
	if !o.active {
		return
	}
	o.active = false
	o.world.dropOverlap(o)
}
