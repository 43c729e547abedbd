package flappy

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	popupSlideSeconds = 0.6
	blinkPeriod       = 0.8 // seconds per on/off cycle of the start prompt
	deathFlashSeconds = 0.4
)

// screenCues is the terminal rendition of the game's visual cues. The game
// feeds it every cue and reads it back when rendering.
type screenCues struct {
	message bool
	blink   float64

	hud string

	flash float64 // seconds of death flash left

	result *resultPopup
}

type resultPopup struct {
	score, best int
	slide       *gween.Tween
	pos         float32 // 0 above the screen, 1 resting
}

func newScreenCues() *screenCues {
	return &screenCues{hud: hudText(0, 0)}
}

func hudText(score, best int) string {
	return fmt.Sprintf("Score - %d, Best - %d", score, best)
}

func (c *screenCues) ShowMessage() {
	c.message = true
	c.blink = 0
}

func (c *screenCues) HideMessage() {
	c.message = false
}

func (c *screenCues) BirdDied() {
	c.flash = deathFlashSeconds
}

func (c *screenCues) ShowResult(score, best int) {
	c.result = &resultPopup{
		score: score,
		best:  best,
		slide: gween.New(0, 1, popupSlideSeconds, ease.OutQuad),
	}
}

func (c *screenCues) HideResult() {
	c.result = nil
}

func (c *screenCues) ScoreChanged(score, best int) {
	c.hud = hudText(score, best)
}

// advance runs the cue animations forward by dt seconds.
func (c *screenCues) advance(dt float64) {
	c.blink += dt
	if c.flash > 0 {
		c.flash = max(0, c.flash-dt)
	}
	if r := c.result; r != nil && r.slide != nil {
		pos, done := r.slide.Update(float32(dt))
		r.pos = pos
		if done {
			r.pos = 1
			r.slide = nil
		}
	}
}

// promptVisible reports whether the blinking start prompt is in its on phase.
func (c *screenCues) promptVisible() bool {
	if !c.message {
		return false
	}
	return math.Mod(c.blink, blinkPeriod) < blinkPeriod*0.6
}

func (c *screenCues) flashing() bool {
	return c.flash > 0
}
