package propagate

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tsionyx/nonogrid/internal/board"
	"github.com/tsionyx/nonogrid/internal/clue"
	"github.com/tsionyx/nonogrid/internal/color"
)

func uLetterBoard() *board.Board {
	rows := []clue.Description{
		clue.NewBinary([]int{1, 1}),
		clue.NewBinary([]int{1, 1}),
		clue.NewBinary([]int{3}),
	}
	cols := []clue.Description{
		clue.NewBinary([]int{3}),
		clue.NewBinary([]int{1}),
		clue.NewBinary([]int{3}),
	}
	return board.New(rows, cols, color.BinaryDomain{})
}

func TestRunFullSolvesULetter(t *testing.T) {
	b := uLetterBoard()
	e := New(b, zerolog.Nop())

	if _, err := e.RunFull(); err != nil {
		t.Fatalf("RunFull: %v", err)
	}

	if !b.IsSolvedFull() {
		t.Fatalf("expected the U puzzle to be fully solved by propagation alone")
	}

	want := [][]color.Binary{
		{color.Filled, color.Blank, color.Filled},
		{color.Filled, color.Blank, color.Filled},
		{color.Filled, color.Filled, color.Filled},
	}
	for y, row := range want {
		got := b.Row(y)
		for x, c := range row {
			if got[x] != c {
				t.Errorf("cell (%d,%d) = %v, want %v", x, y, got[x], c)
			}
		}
	}
}

func TestRunPointPropagatesCrossingLines(t *testing.T) {
	b := uLetterBoard()
	e := New(b, zerolog.Nop())

	changed, err := e.RunPoint(board.Point{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("RunPoint: %v", err)
	}
	if len(changed) == 0 {
		t.Fatalf("expected RunPoint to report at least one changed cell")
	}
}

func TestRunFullDetectsBadLine(t *testing.T) {
	rows := []clue.Description{clue.NewBinary([]int{4})}
	cols := []clue.Description{clue.NewBinary([]int{1}), clue.NewBinary([]int{1}), clue.NewBinary([]int{1})}
	b := board.New(rows, cols, color.BinaryDomain{})
	b.SetColor(board.Point{X: 0, Y: 0}, color.Blank)

	e := New(b, zerolog.Nop())
	if _, err := e.RunFull(); err == nil {
		t.Fatal("expected RunFull to fail on an unsatisfiable line")
	}
}
