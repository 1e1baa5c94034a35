// Package gridview displays a board in a resizable window, the
// nonogram counterpart of the teacher's console.Bus: an ebiten.Game
// that does no work of its own beyond painting the current state
// every frame.
package gridview

import (
	stdcolor "image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tsionyx/nonogrid/internal/board"
	"github.com/tsionyx/nonogrid/internal/color"
)

var (
	colorUnsolved = stdcolor.RGBA{R: 170, G: 170, B: 170, A: 255}
	colorBlank    = stdcolor.White
	colorFilled   = stdcolor.Black
)

const defaultCellSize = 24

// View renders a *board.Board as an ebiten.Game.
type View struct {
	b        *board.Board
	cellSize int
}

// New builds a View over b using the default cell size.
func New(b *board.Board) *View {
	return &View{b: b, cellSize: defaultCellSize}
}

// Run opens a window titled "nonogrid" and displays b until the
// window is closed, mirroring the driving call in the CLI's command
// entry point.
func Run(b *board.Board) error {
	v := New(b)
	w, h := v.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("nonogrid")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}

// Layout returns the window's logical resolution, fixed to the
// board's dimensions times the cell size so ebiten scales the window
// rather than the content.
func (v *View) Layout(int, int) (int, int) {
	return v.b.Width() * v.cellSize, v.b.Height() * v.cellSize
}

// Update is a no-op: the board is mutated by the solver, not by the
// view, so there is nothing to advance every tick.
func (v *View) Update() error {
	return nil
}

// Draw paints every cell of the board as a filled square.
func (v *View) Draw(screen *ebiten.Image) {
	for _, p := range v.b.Points() {
		c := cellColor(v.b.At(p))
		ox, oy := p.X*v.cellSize, p.Y*v.cellSize
		for dx := 0; dx < v.cellSize; dx++ {
			for dy := 0; dy < v.cellSize; dy++ {
				screen.Set(ox+dx, oy+dy, c)
			}
		}
	}
}

func cellColor(c color.Cell) stdcolor.Color {
	if !c.IsSolved() {
		return colorUnsolved
	}
	if c.CanBeBlank() {
		return colorBlank
	}
	return colorFilled
}
