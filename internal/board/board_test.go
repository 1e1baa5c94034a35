package board

import (
	"testing"

	"github.com/tsionyx/nonogrid/internal/clue"
	"github.com/tsionyx/nonogrid/internal/color"
)

func newTestBoard() *Board {
	rows := []clue.Description{clue.NewBinary([]int{1, 1}), clue.NewBinary([]int{1, 1}), clue.NewBinary([]int{3})}
	cols := []clue.Description{clue.NewBinary([]int{3}), clue.NewBinary([]int{1}), clue.NewBinary([]int{3})}
	return New(rows, cols, color.BinaryDomain{})
}

func TestNewAllUndefined(t *testing.T) {
	b := newTestBoard()
	for _, p := range b.Points() {
		if b.At(p).IsSolved() {
			t.Fatalf("fresh board cell %v should not be solved", p)
		}
	}
}

func TestSetAndReadRowColumn(t *testing.T) {
	b := newTestBoard()
	b.SetColor(Point{X: 0, Y: 0}, color.Filled)

	row := b.Row(0)
	if row[0] != color.Filled {
		t.Fatalf("Row(0)[0] = %v, want Filled", row[0])
	}

	col := b.Column(0)
	if col[0] != color.Filled {
		t.Fatalf("Column(0)[0] = %v, want Filled", col[0])
	}
}

func TestSnapshotRestore(t *testing.T) {
	b := newTestBoard()
	snap := b.Snapshot()

	b.SetColor(Point{X: 1, Y: 1}, color.Filled)
	if b.At(Point{X: 1, Y: 1}) != color.Filled {
		t.Fatal("expected cell to be set")
	}

	b.Restore(snap)
	if b.At(Point{X: 1, Y: 1}).IsSolved() {
		t.Fatal("expected Restore to undo the mutation")
	}
}

func TestCacheDedup(t *testing.T) {
	b := newTestBoard()
	// rows 0 and 1 share an identical clue ([1,1]) and should dedupe
	// to the same cache index.
	if b.RowCacheIndex(0) != b.RowCacheIndex(1) {
		t.Fatalf("expected rows 0 and 1 to share a cache index, got %d and %d", b.RowCacheIndex(0), b.RowCacheIndex(1))
	}
	if b.RowCacheIndex(0) == b.RowCacheIndex(2) {
		t.Fatal("expected row 2 (different clue) to have a distinct cache index")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	b := newTestBoard()
	line := b.Row(0)

	if _, ok := b.Cached(Row, 0, line); ok {
		t.Fatal("expected cache miss on fresh board")
	}

	entry := CacheEntry{Line: Snapshot{color.Filled, color.Blank, color.Filled}}
	b.SetCached(Row, 0, line, entry)

	got, ok := b.Cached(Row, 0, line)
	if !ok {
		t.Fatal("expected cache hit after SetCached")
	}
	if len(got.Line) != 3 || got.Line[0] != color.Filled {
		t.Fatalf("cached entry mismatch: %v", got.Line)
	}
}

func TestCacheNeverExceedsCapacity(t *testing.T) {
	rows := make([]clue.Description, 5)
	cols := make([]clue.Description, 5)
	for i := range rows {
		rows[i] = clue.NewBinary([]int{i + 1})
		cols[i] = clue.NewBinary([]int{i + 1})
	}
	b := NewWithCapacity(rows, cols, color.BinaryDomain{}, 2)

	for i := 0; i < 10; i++ {
		line := []color.Cell{color.Binary(i % 4), color.Blank, color.Filled, color.Undefined, color.Blank}
		b.SetCached(Row, 0, line, CacheEntry{})
	}

	if got := b.CacheLen(Row); got > 2 {
		t.Fatalf("CacheLen(Row) = %d, want <= 2", got)
	}
}

func TestUnsetColorErrors(t *testing.T) {
	b := newTestBoard()
	p := Point{X: 0, Y: 0}
	b.SetColor(p, color.Filled)

	if err := b.UnsetColor(p, color.Filled); err != color.ErrAlreadySolved {
		t.Fatalf("err = %v, want ErrAlreadySolved", err)
	}
}

func TestNeighbors(t *testing.T) {
	b := newTestBoard()
	corner := b.Neighbors(Point{X: 0, Y: 0})
	if len(corner) != 2 {
		t.Fatalf("corner neighbors = %d, want 2", len(corner))
	}

	center := b.Neighbors(Point{X: 1, Y: 1})
	if len(center) != 4 {
		t.Fatalf("center neighbors = %d, want 4", len(center))
	}
}

func TestIsSolvedFull(t *testing.T) {
	b := newTestBoard()
	if b.IsSolvedFull() {
		t.Fatal("fresh board should not be solved")
	}
	for _, p := range b.Points() {
		b.SetColor(p, color.Filled)
	}
	if !b.IsSolvedFull() {
		t.Fatal("fully colored board should be solved")
	}
}
