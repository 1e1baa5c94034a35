// Package gridtext renders a board, or a single solution snapshot,
// as plain text glyphs. It is the nonogram counterpart of the
// teacher's BIOS debug dumps: a quick, dependency-free way to eyeball
// solver state from a terminal.
package gridtext

import (
	"fmt"
	"io"

	"github.com/tsionyx/nonogrid/internal/board"
	"github.com/tsionyx/nonogrid/internal/color"
)

// Render writes every cell of b, one row per line, space-separated.
func Render(w io.Writer, b *board.Board) {
	for y := 0; y < b.Height(); y++ {
		row := b.Row(y)
		writeLine(w, row)
	}
}

// RenderSnapshot writes a solution snapshot of the given width, one
// row per line.
func RenderSnapshot(w io.Writer, snap board.Snapshot, width int) {
	for start := 0; start < len(snap); start += width {
		end := start + width
		if end > len(snap) {
			end = len(snap)
		}
		writeLine(w, snap[start:end])
	}
}

func writeLine(w io.Writer, row []color.Cell) {
	for i, c := range row {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprint(w, c.String())
	}
	fmt.Fprintln(w)
}
