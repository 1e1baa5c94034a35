// Package linesolve implements the dynamic-programming decision that
// tells whether one line (row or column) can still satisfy its clue
// given its current, possibly partial, state — and, if so, the
// strongest deduction obtainable by superposing every placement that
// does satisfy it.
package linesolve

import (
	"errors"

	"github.com/tsionyx/nonogrid/internal/clue"
	"github.com/tsionyx/nonogrid/internal/color"
)

// ErrBadLine is returned when no placement of the clue's blocks is
// consistent with the line's current possibilities.
var ErrBadLine = errors.New("linesolve: no placement satisfies the clue")

// Line is a row or column viewed as a flat sequence of cells.
type Line []color.Cell

// Solve returns the strongest deduction possible for line under
// desc: every concrete cell of line is preserved, and every cell
// forced by the union of all clue-satisfying placements is set to
// that forced color. It fails with ErrBadLine if no placement is
// consistent with line.
func Solve(desc clue.Description, line Line) (Line, error) {
	n := len(line)
	if n == 0 {
		if desc.Len() == 0 {
			return Line{}, nil
		}
		return nil, ErrBadLine
	}
	if desc.MinLength() > n {
		return nil, ErrBadLine
	}

	s := newSolver(desc, line)
	if !s.getSol(n-1, desc.Len()) {
		return nil, ErrBadLine
	}

	collapseEither(s.solved)
	return s.solved, nil
}

// collapseEither reverts the binary "both colors reachable, still
// undetermined" sentinel back to Undefined so it never leaks out of
// the line solver as if it were a concrete, if unusual, color.
func collapseEither(line Line) {
	for i, c := range line {
		if b, ok := c.(color.Binary); ok && b == color.Either {
			line[i] = color.Undefined
		}
	}
}

type solver struct {
	desc   clue.Description
	line   Line
	solved Line

	// blockSums[k] is the minimum position (0-based) at which
	// block k can finish being placed, derived from the clue's
	// partial sums. blockSums[0] is always 0.
	blockSums []int

	// memo[pos][block] caches getSol(pos, block) for pos >= 0.
	// -1 means unknown, 0 means false, 1 means true.
	memo [][]int8
}

func newSolver(desc clue.Description, line Line) *solver {
	n := len(line)
	blocks := desc.Len()

	blockSums := make([]int, blocks+1)
	sums := desc.PartialSums()
	for k := 1; k <= blocks; k++ {
		blockSums[k] = sums[k-1] - 1
	}

	memo := make([][]int8, n)
	for i := range memo {
		row := make([]int8, blocks+1)
		for j := range row {
			row[j] = -1
		}
		memo[i] = row
	}

	solved := make(Line, n)
	copy(solved, line)

	return &solver{desc: desc, line: line, solved: solved, blockSums: blockSums, memo: memo}
}

// getSol reports whether the first `block` blocks of the clue can be
// completely placed ending on or before `pos`, consistent with the
// line. pos may be -1, meaning "nothing placed yet".
func (s *solver) getSol(pos, block int) bool {
	if pos < 0 {
		return block == 0
	}

	if cached := s.memo[pos][block]; cached != -1 {
		return cached == 1
	}

	result := s.fillMatrix(pos, block)
	if result {
		s.memo[pos][block] = 1
	} else {
		s.memo[pos][block] = 0
	}
	return result
}

func (s *solver) fillMatrix(pos, block int) bool {
	if pos < s.blockSums[block] {
		return false
	}

	hasBlank := false
	if s.line[pos].CanBeBlank() {
		hasBlank = s.getSol(pos-1, block)
		if hasBlank {
			s.updateSolved(pos, color.BlankID)
		}
	}

	hasColor := false
	if block > 0 {
		b := s.desc.Blocks[block-1]
		blockSize := b.Size
		trailing := s.desc.RequiresTrailingBlank(block - 1)
		if trailing {
			blockSize++
		}

		start := pos - blockSize + 1
		if s.canPlaceColor(start, pos, b.Color, trailing) {
			hasColor = s.getSol(start-1, block-1)
			if hasColor {
				s.setColorBlock(start, pos, b.Color, trailing)
			}
		}
	}

	return hasBlank || hasColor
}

func (s *solver) canPlaceColor(start, pos int, id color.ID, trailing bool) bool {
	if start < 0 {
		return false
	}

	if trailing {
		if !s.line[pos].CanBeBlank() {
			return false
		}
		for i := start; i < pos; i++ {
			if !s.line[i].CanBe(id) {
				return false
			}
		}
		return true
	}

	for i := start; i <= pos; i++ {
		if !s.line[i].CanBe(id) {
			return false
		}
	}
	return true
}

func (s *solver) setColorBlock(start, pos int, id color.ID, trailing bool) {
	if trailing {
		s.updateSolved(pos, color.BlankID)
		for i := start; i < pos; i++ {
			s.updateSolved(i, id)
		}
		return
	}
	for i := start; i <= pos; i++ {
		s.updateSolved(i, id)
	}
}

func (s *solver) updateSolved(pos int, id color.ID) {
	s.solved[pos] = s.solved[pos].AddColor(id)
}
