package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/physics"
)

// Visual characters for rendering
const (
	BirdBodyChar  = '●'
	BirdLevelChar = '▶'
	BirdUpChar    = '▲'
	BirdDownChar  = '▼'
	BirdDeadChar  = '✖'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	GroundMark    = '╧'
	SkyChar       = '·'
)

const groundMarkSpacing = 48.0 // world units between ground marks

// Render draws the current frame. World units are scaled onto the screen,
// with the last row reserved for the ground.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w <= 0 || h <= 1 {
		return
	}
	fieldH := h - 1

	g.drawBackground(dst, fieldH)

	if g.pipes != nil {
		g.drawPipe(dst, g.pipes.Top(), fieldH, false)
		g.drawPipe(dst, g.pipes.Bottom(), fieldH, true)
	}

	g.drawBird(dst, fieldH)

	dst.DrawTextColored(2, 0, " "+g.screen.hud+" ", core.ColorBrightWhite)

	if g.screen.promptVisible() {
		g.drawCenteredMessage(dst, "GET READY", "Space / click to flap", (h-5)/2)
	}

	if r := g.screen.result; r != nil {
		restY := (h - 7) / 2
		top := int(math.Round(float64(-7) + float64(r.pos)*float64(restY+7)))
		g.drawResult(dst, r, top)
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", (h-5)/2)
	}
}

func (g *Game) sx(x float64, dst *core.Screen) int {
	return core.Scale(x, float64(g.cfg.World.Width), dst.Width())
}

func (g *Game) sy(y float64, fieldH int) int {
	return core.Scale(y, float64(g.cfg.World.Height), fieldH)
}

// drawBackground draws the scrolling ground and a sparse sky pattern.
func (g *Game) drawBackground(dst *core.Screen, fieldH int) {
	worldW := float64(g.cfg.World.Width)
	for col := 0; col < dst.Width(); col++ {
		wx := float64(col)*worldW/float64(dst.Width()) + g.bgOffset
		ch := GroundChar
		if math.Mod(wx, groundMarkSpacing) < worldW/float64(dst.Width()) {
			ch = GroundMark
		}
		dst.SetColored(col, fieldH, ch, core.ColorOrange)

		if math.Mod(wx*0.5, groundMarkSpacing*3) < worldW/float64(dst.Width()) {
			dst.SetColored(col, fieldH/3, SkyChar, core.ColorGray)
		}
	}
}

// drawPipe renders one pipe body. The cap faces the gap.
func (g *Game) drawPipe(dst *core.Screen, b *physics.Body, fieldH int, lower bool) {
	x0 := g.sx(b.Left(), dst)
	x1 := g.sx(b.Left()+b.Width(), dst)
	y0 := max(g.sy(b.Top(), fieldH), 0)
	y1 := min(g.sy(b.Top()+b.Height(), fieldH), fieldH)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		return
	}

	dst.DrawRect(core.NewRect(x0, y0, x1-x0, y1-y0), PipeChar, core.ColorGreen)

	capY, capCh := y1-1, PipeCapTop
	if lower {
		capY, capCh = y0, PipeCapBottom
	}
	dst.DrawHLine(x0, capY, x1-x0, capCh, core.ColorBrightGreen)
}

func (g *Game) drawBird(dst *core.Screen, fieldH int) {
	x := g.sx(g.bird.X(), dst)
	y := core.Clamp(g.sy(g.bird.Y(), fieldH), 0, fieldH-1)

	color := core.ColorYellow
	head := BirdLevelChar
	switch {
	case g.bird.Dead():
		head = BirdDeadChar
		if g.screen.flashing() {
			color = core.ColorRed
		}
	case g.bird.Tilt() < -0.3:
		head = BirdUpChar
	case g.bird.Tilt() > 0.3:
		head = BirdDownChar
	}

	dst.SetColored(x-1, y, BirdBodyChar, color)
	dst.SetColored(x, y, head, color)
}

func (g *Game) drawResult(dst *core.Screen, r *resultPopup, top int) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score: %d", r.score),
		fmt.Sprintf("Best:  %d", r.best),
		"Space / click to continue",
	}
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2

	rect := core.NewRect(boxX, top, boxW, boxH)
	dst.DrawRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, core.ColorCyan)
	for i, l := range lines {
		c := core.ColorBrightWhite
		if i == 0 {
			c = core.ColorRed
		}
		dst.DrawTextColored(boxX+(boxW-len([]rune(l)))/2, top+1+i, l, c)
	}
}

// drawCenteredMessage draws a message box centered horizontally at row top.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string, top int) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2

	rect := core.NewRect(boxX, top, boxW, boxH)
	dst.DrawRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, core.ColorCyan)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, top+1, title, core.ColorYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, top+3, subtitle)
}
