// Package board implements the nonogram grid: cell storage, row and
// column clues, per-line result caches, and the snapshot/restore
// discipline every solver uses instead of shared mutable state.
package board

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tsionyx/nonogrid/internal/clue"
	"github.com/tsionyx/nonogrid/internal/color"
)

// Axis selects a row or a column.
type Axis int

const (
	Row Axis = iota
	Column
)

// Other returns the axis perpendicular to a.
func (a Axis) Other() Axis {
	if a == Row {
		return Column
	}
	return Row
}

func (a Axis) String() string {
	if a == Row {
		return "row"
	}
	return "column"
}

// Point is a cell coordinate: X is the column index, Y is the row
// index.
type Point struct {
	X, Y int
}

// Snapshot is a point-in-time copy of every cell on the board,
// restorable with Board.Restore.
type Snapshot []color.Cell

// defaultCacheCapacity mirrors the heuristic used by the project this
// solver is descended from: roughly 2000 cache slots per line, the
// floor and ceiling keep tiny and huge puzzles from under- or
// over-allocating.
func defaultCacheCapacity(lineCount int) int {
	c := 2000 * lineCount
	if c < 64 {
		c = 64
	}
	if c > 200000 {
		c = 200000
	}
	return c
}

// CacheEntry is what the line-solver caches per (clue, line) key: the
// solved line, or the fact that solving it failed.
type CacheEntry struct {
	Line Snapshot
	Err  error
}

type cacheKey struct {
	idx      int
	snapshot string
}

// Board is the grid: W*H cells in row-major order, the row and
// column clues, and one LRU cache per axis memoizing line-solver
// results.
type Board struct {
	width, height int
	cells         []color.Cell
	domain        color.Domain

	rowClues, colClues   []clue.Description
	rowCacheIdx          []int
	colCacheIdx          []int
	rowCache, colCache   *lru.Cache[cacheKey, CacheEntry]
}

// New builds a board of the given row and column clues, with cells
// initialized from domain.Undefined(). Cache capacity uses the
// package default; use NewWithCapacity to override it.
func New(rowClues, colClues []clue.Description, domain color.Domain) *Board {
	return NewWithCapacity(rowClues, colClues, domain, 0)
}

// NewWithCapacity is New with an explicit per-axis cache capacity. A
// capacity of 0 selects the package default; a negative capacity gives
// a cache of a single entry per axis. Caching cannot be switched off.
func NewWithCapacity(rowClues, colClues []clue.Description, domain color.Domain, capacity int) *Board {
	h, w := len(rowClues), len(colClues)

	cells := make([]color.Cell, w*h)
	for i := range cells {
		cells[i] = domain.Undefined()
	}

	rowCap, colCap := capacity, capacity
	if capacity == 0 {
		rowCap = defaultCacheCapacity(h)
		colCap = defaultCacheCapacity(w)
	}

	b := &Board{
		width:       w,
		height:      h,
		cells:       cells,
		domain:      domain,
		rowClues:    rowClues,
		colClues:    colClues,
		rowCacheIdx: dedupeIndices(rowClues),
		colCacheIdx: dedupeIndices(colClues),
	}
	b.rowCache = mustCache(rowCap)
	b.colCache = mustCache(colCap)
	return b
}

func mustCache(capacity int) *lru.Cache[cacheKey, CacheEntry] {
	if capacity < 1 {
		capacity = 1
	}
	c, err := lru.New[cacheKey, CacheEntry](capacity)
	if err != nil {
		// Only size <= 0 makes golang-lru return an error here,
		// and that's guarded above.
		panic(err)
	}
	return c
}

func dedupeIndices(descs []clue.Description) []int {
	idx := make([]int, len(descs))
	seen := make(map[string]int, len(descs))
	next := 0
	for i, d := range descs {
		key := d.Key()
		id, ok := seen[key]
		if !ok {
			id = next
			seen[key] = id
			next++
		}
		idx[i] = id
	}
	return idx
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) Domain() color.Domain { return b.domain }

func (b *Board) index(p Point) int { return p.Y*b.width + p.X }

// At returns the cell at p.
func (b *Board) At(p Point) color.Cell { return b.cells[b.index(p)] }

// SetColor overwrites the cell at p unconditionally.
func (b *Board) SetColor(p Point, c color.Cell) { b.cells[b.index(p)] = c }

// UnsetColor narrows the cell at p by removing every color bad still
// allows. It fails with the same errors color.Cell.Subtract can
// produce.
func (b *Board) UnsetColor(p Point, bad color.Cell) error {
	cur := b.At(p)
	next, err := cur.Subtract(bad)
	if err != nil {
		return err
	}
	b.SetColor(p, next)
	return nil
}

// RowClue and ColClue return the clue for a given line index.
func (b *Board) RowClue(i int) clue.Description { return b.rowClues[i] }
func (b *Board) ColClue(j int) clue.Description { return b.colClues[j] }

// Clue returns the clue for a line on the given axis.
func (b *Board) Clue(axis Axis, i int) clue.Description {
	if axis == Row {
		return b.RowClue(i)
	}
	return b.ColClue(i)
}

// LineCount returns how many lines exist on the given axis (the
// number of rows, or the number of columns).
func (b *Board) LineCount(axis Axis) int {
	if axis == Row {
		return b.height
	}
	return b.width
}

// LineLength returns the length of a single line on the given axis
// (a row's length is the board width, a column's is the height).
func (b *Board) LineLength(axis Axis) int {
	if axis == Row {
		return b.width
	}
	return b.height
}

// Row returns a copy of row i.
func (b *Board) Row(i int) []color.Cell {
	out := make([]color.Cell, b.width)
	copy(out, b.cells[i*b.width:(i+1)*b.width])
	return out
}

// Column returns a copy of column j.
func (b *Board) Column(j int) []color.Cell {
	out := make([]color.Cell, b.height)
	for i := 0; i < b.height; i++ {
		out[i] = b.cells[i*b.width+j]
	}
	return out
}

// Line returns a copy of the line identified by (axis, index).
func (b *Board) Line(axis Axis, index int) []color.Cell {
	if axis == Row {
		return b.Row(index)
	}
	return b.Column(index)
}

// SetRow overwrites row i in place.
func (b *Board) SetRow(i int, line []color.Cell) {
	copy(b.cells[i*b.width:(i+1)*b.width], line)
}

// SetColumn overwrites column j in place.
func (b *Board) SetColumn(j int, line []color.Cell) {
	for i := 0; i < b.height; i++ {
		b.cells[i*b.width+j] = line[i]
	}
}

// SetLine overwrites the line identified by (axis, index).
func (b *Board) SetLine(axis Axis, index int, line []color.Cell) {
	if axis == Row {
		b.SetRow(index, line)
		return
	}
	b.SetColumn(index, line)
}

// RowCacheIndex and ColCacheIndex return the stable dedup id shared
// by every line whose clue is identical to line i's.
func (b *Board) RowCacheIndex(i int) int { return b.rowCacheIdx[i] }
func (b *Board) ColCacheIndex(j int) int { return b.colCacheIdx[j] }

// CacheIndex returns the dedup id for a line on the given axis.
func (b *Board) CacheIndex(axis Axis, i int) int {
	if axis == Row {
		return b.RowCacheIndex(i)
	}
	return b.ColCacheIndex(i)
}

func (b *Board) cacheFor(axis Axis) *lru.Cache[cacheKey, CacheEntry] {
	if axis == Row {
		return b.rowCache
	}
	return b.colCache
}

func snapshotKey(line []color.Cell) string {
	var sb strings.Builder
	for _, c := range line {
		sb.WriteString(c.Key())
		sb.WriteByte(',')
	}
	return sb.String()
}

// Cached looks up a memoized line-solver result for the line
// currently occupying (axis, index)'s cache slot.
func (b *Board) Cached(axis Axis, index int, line []color.Cell) (CacheEntry, bool) {
	key := cacheKey{idx: b.CacheIndex(axis, index), snapshot: snapshotKey(line)}
	return b.cacheFor(axis).Get(key)
}

// SetCached stores a line-solver result (success or failure) for
// later reuse.
func (b *Board) SetCached(axis Axis, index int, line []color.Cell, entry CacheEntry) {
	key := cacheKey{idx: b.CacheIndex(axis, index), snapshot: snapshotKey(line)}
	b.cacheFor(axis).Add(key, entry)
}

// CacheLen reports how many entries are currently cached on an axis,
// for tests asserting the LRU bound is respected.
func (b *Board) CacheLen(axis Axis) int { return b.cacheFor(axis).Len() }

// Snapshot captures the full cell array.
func (b *Board) Snapshot() Snapshot {
	s := make(Snapshot, len(b.cells))
	copy(s, b.cells)
	return s
}

// Restore replaces the full cell array with a previously captured
// snapshot.
func (b *Board) Restore(s Snapshot) {
	copy(b.cells, s)
}

// IsSolvedFull reports whether every cell on the board is solved.
func (b *Board) IsSolvedFull() bool {
	for _, c := range b.cells {
		if !c.IsSolved() {
			return false
		}
	}
	return true
}

// LineSolutionRate averages SolutionRate across every cell of a line.
func (b *Board) LineSolutionRate(axis Axis, index int) float64 {
	line := b.Line(axis, index)
	if len(line) == 0 {
		return 1
	}
	total := 0.0
	n := b.domain.NumColors()
	for _, c := range line {
		total += c.SolutionRate(n)
	}
	return total / float64(len(line))
}

// Neighbors returns the up to 4 orthogonally adjacent points, in
// bounds, for p.
func (b *Board) Neighbors(p Point) []Point {
	candidates := []Point{
		{p.X - 1, p.Y},
		{p.X + 1, p.Y},
		{p.X, p.Y - 1},
		{p.X, p.Y + 1},
	}
	out := make([]Point, 0, 4)
	for _, c := range candidates {
		if c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height {
			out = append(out, c)
		}
	}
	return out
}

// UnsolvedNeighbors is Neighbors filtered to cells that are not yet
// solved.
func (b *Board) UnsolvedNeighbors(p Point) []Point {
	all := b.Neighbors(p)
	out := all[:0]
	for _, n := range all {
		if !b.At(n).IsSolved() {
			out = append(out, n)
		}
	}
	return out
}

// Points iterates over every point on the board in row-major order.
func (b *Board) Points() []Point {
	out := make([]Point, 0, b.width*b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}

// UnsolvedPoints returns every point whose cell is not yet solved.
func (b *Board) UnsolvedPoints() []Point {
	var out []Point
	for _, p := range b.Points() {
		if !b.At(p).IsSolved() {
			out = append(out, p)
		}
	}
	return out
}
