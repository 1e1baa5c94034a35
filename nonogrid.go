// Package nonogrid wires the color, board, line-solver, propagation,
// probing and backtracking packages behind one entry point: Solve
// takes a puzzle's row and column clues and returns either the
// unique solution or every distinct solution up to a bound.
package nonogrid

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsionyx/nonogrid/internal/backtrack"
	"github.com/tsionyx/nonogrid/internal/board"
	"github.com/tsionyx/nonogrid/internal/clue"
	"github.com/tsionyx/nonogrid/internal/color"
	"github.com/tsionyx/nonogrid/internal/probe"
	"github.com/tsionyx/nonogrid/internal/propagate"
)

// Reexport the color/clue/board types callers need to build a puzzle
// and read back its solutions, so that package is the only import
// most callers need.
type (
	Block       = clue.Block
	Description = clue.Description
	Cell        = color.Cell
	ColorID     = color.ID
	Point       = board.Point
	Snapshot    = board.Snapshot
)

const (
	BlankID  = color.BlankID
	FilledID = color.FilledID
)

// ImpactStrategy selects how backtracking scores candidate points;
// see the backtrack package for the full description of each value.
type ImpactStrategy = backtrack.ImpactStrategy

const (
	Min        = backtrack.Min
	Sum        = backtrack.Sum
	Max        = backtrack.Max
	Product    = backtrack.Product
	SqrtBased  = backtrack.SqrtBased
	LogBased   = backtrack.LogBased
)

// ErrUnsatisfiable is returned when a puzzle's clues admit no valid
// coloring at all.
var ErrUnsatisfiable = probe.ErrUnsatisfiable

// ErrLimitReached is returned, alongside whatever solutions were
// already found, when MaxSolutions, MaxDepth or Timeout stopped the
// search early.
var ErrLimitReached = backtrack.ErrLimitReached

// Options configures a solve. The zero value runs unbounded with the
// default impact strategy and no logging.
type Options struct {
	// MaxSolutions caps how many distinct solutions backtracking
	// will collect. 0 means unbounded.
	MaxSolutions int
	// MaxDepth caps how many trial assignments deep backtracking
	// will descend. 0 means unbounded.
	MaxDepth int
	// Timeout bounds backtracking's wall-clock budget. 0 means
	// unbounded.
	Timeout time.Duration
	// Strategy selects how backtracking scores candidate points.
	Strategy backtrack.ImpactStrategy
	// CacheCapacity overrides the per-axis line-solver cache size.
	// 0 selects the board package's default.
	CacheCapacity int
	// Logger receives structured events from propagation. The zero
	// value discards them.
	Logger zerolog.Logger
}

// Puzzle is one nonogram instance: its board plus the solver
// components wired against it.
type Puzzle struct {
	board *board.Board
	eng   *propagate.Engine
	probe *probe.Solver
	opts  Options
}

// New builds a Puzzle from row and column clues over the given color
// domain (color.BinaryDomain{} for classic puzzles, a *color.MultiDomain
// for palette puzzles).
func New(rowClues, colClues []clue.Description, domain color.Domain, opts Options) *Puzzle {
	b := board.NewWithCapacity(rowClues, colClues, domain, opts.CacheCapacity)
	eng := propagate.New(b, opts.Logger)
	return &Puzzle{
		board: b,
		eng:   eng,
		probe: probe.New(b, eng),
		opts:  opts,
	}
}

// NewBinary is a convenience constructor for classic two-color
// puzzles, taking clues as plain block-size slices.
func NewBinary(rowSizes, colSizes [][]int, opts Options) *Puzzle {
	rows := make([]clue.Description, len(rowSizes))
	for i, sizes := range rowSizes {
		rows[i] = clue.NewBinary(sizes)
	}
	cols := make([]clue.Description, len(colSizes))
	for i, sizes := range colSizes {
		cols[i] = clue.NewBinary(sizes)
	}
	return New(rows, cols, color.BinaryDomain{}, opts)
}

// Board exposes the underlying grid, mainly for rendering.
func (p *Puzzle) Board() *board.Board { return p.board }

// Solve runs propagation, then probing and backtracking if needed,
// mirroring the original project's top-level run(): try the cheap
// deterministic pass first, and only pay for search once it's
// exhausted.
func (p *Puzzle) Solve(ctx context.Context) ([]board.Snapshot, error) {
	if _, err := p.eng.RunFull(); err != nil {
		return nil, err
	}

	if p.board.IsSolvedFull() {
		return []board.Snapshot{p.board.Snapshot()}, nil
	}

	bt := backtrack.New(p.board, p.eng, p.probe, backtrack.Options{
		MaxSolutions: p.opts.MaxSolutions,
		MaxDepth:     p.opts.MaxDepth,
		Timeout:      p.opts.Timeout,
		Strategy:     p.opts.Strategy,
	})

	solutions, err := bt.Run(ctx)
	if err != nil && !errors.Is(err, ErrLimitReached) {
		return nil, err
	}
	return solutions, err
}
