// Package render draws world snapshots onto a tcell screen
package render

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dart-pop/asset"
	"github.com/lixenwraith/dart-pop/components"
	"github.com/lixenwraith/dart-pop/engine"
	"github.com/lixenwraith/dart-pop/systems"
	"github.com/lixenwraith/dart-pop/vmath"
)

// statusRows is the height reserved below the play area
const statusRows = 1

// Dart glyphs by heading octant, counter-clockwise from +x
var (
	dartGlyphs = [8]rune{'>', '/', '^', '\\', '<', '/', 'v', '\\'}
	dartStep   = [8][2]int{{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

// TerminalRenderer handles all terminal rendering
// Present runs on the tick goroutine, PresentIdle on the event loop; mu serializes them
type TerminalRenderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	mode   ColorMode

	head    [][]rune
	headW   int
	str     [][]rune
	strW    int
	bgStyle tcell.Style
}

// NewTerminalRenderer creates a renderer for the loaded balloon art
func NewTerminalRenderer(screen tcell.Screen, shapes *asset.Assets, mode ColorMode) *TerminalRenderer {
	return &TerminalRenderer{
		screen:  screen,
		mode:    mode,
		head:    shapes.Balloon.Head.Cells(),
		headW:   shapes.Balloon.Head.Cols,
		str:     shapes.Balloon.String.Cells(),
		strW:    shapes.Balloon.String.Cols,
		bgStyle: tcell.StyleDefault.Background(mode.toTcell(rgbBackground)),
	}
}

// PlayArea is the drawable left for the world on a screen of cols × rows
func PlayArea(cols, rows int) engine.Drawable {
	return engine.Drawable{Cols: cols, Rows: rows - statusRows}
}

// CellOf maps a world point onto the play area grid, y grows downward on screen
// ok is false for degenerate bounds
func CellOf(p vmath.Vec2, b systems.Bounds, d engine.Drawable) (col, row int, ok bool) {
	if b.HalfWidth <= 0 || b.HalfHeight <= 0 {
		return 0, 0, false
	}
	fx := (p.X + b.HalfWidth) / (2 * b.HalfWidth) * float64(d.Cols)
	fy := (b.HalfHeight - p.Y) / (2 * b.HalfHeight) * float64(d.Rows)
	if !vmath.V2Finite(vmath.Vec2{X: fx, Y: fy}) {
		return 0, 0, false
	}
	return int(math.Floor(fx)), int(math.Floor(fy)), true
}

// DartGlyph picks the arrow for a rotation, rotation π/2 faces +x
func DartGlyph(rotation float64) (rune, [2]int) {
	heading := rotation - math.Pi/2
	oct := int(math.Round(heading/(math.Pi/4))) % 8
	if oct < 0 {
		oct += 8
	}
	return dartGlyphs[oct], dartStep[oct]
}

// Present draws one frame
func (r *TerminalRenderer) Present(s engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.SetStyle(r.bgStyle)
	r.screen.Clear()

	area := s.Drawable
	for _, t := range s.Targets {
		r.drawTarget(t, s.Bounds, area)
	}
	r.drawDart(s.Projectile, s.Bounds, area)
	r.drawStatus(s)

	r.screen.Show()
}

// PresentIdle shows msg over an empty field while the scheduler is stopped
func (r *TerminalRenderer) PresentIdle(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.SetStyle(r.bgStyle)
	r.screen.Clear()
	w, h := r.screen.Size()
	x := max(0, (w-len([]rune(msg)))/2)
	r.drawText(x, h/2, msg, r.bgStyle.Foreground(r.mode.toTcell(rgbWarn)))
	r.screen.Show()
}

func (r *TerminalRenderer) drawTarget(t engine.TargetView, b systems.Bounds, area engine.Drawable) {
	col, row, ok := CellOf(t.Pos, b, area)
	if !ok {
		return
	}

	if t.State == components.StatePopped {
		fade := max(0, min(t.Scale.X, t.Scale.Y))
		style := r.bgStyle.Foreground(r.mode.toTcell(rgbBackground.Blend(t.Color, fade)))
		cells := scaleArt(r.head, r.headW, t.Scale)
		r.drawArt(cells, col-artWidth(cells)/2, row-len(cells)/2, style, area)
		return
	}

	headStyle := r.bgStyle.Foreground(r.mode.toTcell(t.Color))
	top := row - len(r.head)/2
	r.drawArt(r.head, col-r.headW/2, top, headStyle, area)

	strStyle := r.bgStyle.Foreground(r.mode.toTcell(rgbString))
	r.drawArt(r.str, col-r.strW/2, top+len(r.head), strStyle, area)
}

func (r *TerminalRenderer) drawDart(p engine.ProjectileView, b systems.Bounds, area engine.Drawable) {
	col, row, ok := CellOf(p.Pos, b, area)
	if !ok {
		return
	}
	glyph, step := DartGlyph(p.Rotation)
	style := r.bgStyle.Foreground(r.mode.toTcell(rgbDart)).Bold(true)

	r.setCell(col-step[0], row-step[1], '.', style, area)
	r.setCell(col, row, glyph, style, area)
}

func (r *TerminalRenderer) drawStatus(s engine.Snapshot) {
	_, h := r.screen.Size()
	y := h - statusRows
	style := r.bgStyle.Foreground(r.mode.toTcell(rgbStatus))

	line := fmt.Sprintf(" score %d  pops %d  live %d  tilt %+.2f %+.2f",
		s.Score, s.Pops, len(s.Targets), s.Tilt.X, s.Tilt.Y)
	x := r.drawText(0, y, line, style)
	if s.Paused {
		r.drawText(x, y, "  [input paused]", r.bgStyle.Foreground(r.mode.toTcell(rgbWarn)))
	}

	help := "q quit  p input  s stop "
	w, _ := r.screen.Size()
	if hx := w - len(help); hx > x+18 {
		r.drawText(hx, y, help, style.Dim(true))
	}
}

// drawArt paints non-space runes with the top-left at (x, y), clipped to the play area
func (r *TerminalRenderer) drawArt(cells [][]rune, x, y int, style tcell.Style, area engine.Drawable) {
	for dy, line := range cells {
		for dx, ch := range line {
			if ch == ' ' {
				continue
			}
			r.setCell(x+dx, y+dy, ch, style, area)
		}
	}
}

func (r *TerminalRenderer) setCell(x, y int, ch rune, style tcell.Style, area engine.Drawable) {
	if x < 0 || y < 0 || x >= area.Cols || y >= area.Rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

// drawText writes text unclipped and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// scaleArt resamples art to scale with nearest neighbour, empty when either axis rounds to zero
func scaleArt(cells [][]rune, width int, scale vmath.Vec2) [][]rune {
	rows := int(math.Ceil(float64(len(cells)) * scale.Y))
	cols := int(math.Ceil(float64(width) * scale.X))
	if rows <= 0 || cols <= 0 || scale.X <= 0 || scale.Y <= 0 {
		return nil
	}

	out := make([][]rune, rows)
	for y := range out {
		src := cells[min(len(cells)-1, int(float64(y)/scale.Y))]
		line := make([]rune, cols)
		for x := range line {
			sx := int(float64(x) / scale.X)
			if sx < len(src) {
				line[x] = src[sx]
			} else {
				line[x] = ' '
			}
		}
		out[y] = line
	}
	return out
}

func artWidth(cells [][]rune) int {
	w := 0
	for _, line := range cells {
		w = max(w, len(line))
	}
	return w
}
