// Package backtrack implements the depth-first search that takes
// over once probing alone can no longer make progress: it descends
// through impact-ordered (point, color) choices, snapshotting and
// restoring the board around each trial, and collects distinct
// solutions up to a caller-supplied bound.
package backtrack

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tsionyx/nonogrid/internal/board"
	"github.com/tsionyx/nonogrid/internal/probe"
	"github.com/tsionyx/nonogrid/internal/propagate"
)

// ErrLimitReached is returned (alongside whatever solutions were
// already collected) when MaxSolutions, MaxDepth or Timeout cuts the
// search short before it could exhaust every branch.
var ErrLimitReached = errors.New("backtrack: search limit reached")

// ImpactStrategy selects how a point's per-color impact counts are
// folded into the single score used to order the search.
type ImpactStrategy int

const (
	// Min uses the smallest per-color impact: the conservative
	// lower bound on how much a choice at this point is worth. The
	// default.
	Min ImpactStrategy = iota
	Sum
	Max
	// Product scores by the product of (count+1) across colors.
	Product
	// SqrtBased scores sqrt(max/(min+1)) + min.
	SqrtBased
	// LogBased scores min + product(log(1+count)) across colors, or for
	// exactly two colors, min + |log(1+c0) - log(1+c1)|.
	LogBased
)

func score(strategy ImpactStrategy, counts []int) float64 {
	if len(counts) == 0 {
		return 0
	}

	minV, maxV, sum, product := counts[0], counts[0], 0, 1.0
	for _, c := range counts {
		if c < minV {
			minV = c
		}
		if c > maxV {
			maxV = c
		}
		sum += c
		product *= float64(c + 1)
	}

	switch strategy {
	case Sum:
		return float64(sum)
	case Max:
		return float64(maxV)
	case Product:
		return product
	case SqrtBased:
		return math.Sqrt(float64(maxV)/float64(minV+1)) + float64(minV)
	case LogBased:
		if len(counts) == 2 {
			return float64(minV) + math.Abs(math.Log1p(float64(counts[0]))-math.Log1p(float64(counts[1])))
		}
		total := 1.0
		for _, c := range counts {
			total *= math.Log1p(float64(c))
		}
		return float64(minV) + total
	default: // Min
		return float64(minV)
	}
}

// Options bounds a search.
type Options struct {
	MaxSolutions int // 0 means unbounded
	MaxDepth     int // 0 means unbounded
	Timeout      time.Duration
	Strategy     ImpactStrategy
}

// Solver runs backtracking search over one board, using a probing
// Solver to evaluate and propagate each trial.
type Solver struct {
	b     *board.Board
	eng   *propagate.Engine
	probe *probe.Solver
	opts  Options

	solutions []board.Snapshot
	path      []probe.Choice
	deadline  time.Time
}

// New builds a Solver. probeSolver and eng must already be wired to
// b.
func New(b *board.Board, eng *propagate.Engine, probeSolver *probe.Solver, opts Options) *Solver {
	return &Solver{b: b, eng: eng, probe: probeSolver, opts: opts}
}

// Run probes the board, then backtracks if probing alone leaves it
// incomplete, returning every distinct solution found (up to
// MaxSolutions). If a limit cuts the search short, it returns
// whatever solutions were collected alongside ErrLimitReached. If no
// solution exists at all, it returns probe.ErrUnsatisfiable.
func (s *Solver) Run(ctx context.Context) ([]board.Snapshot, error) {
	if s.opts.Timeout > 0 {
		s.deadline = time.Now().Add(s.opts.Timeout)
	}

	impact, err := s.probe.RunUnsolved()
	if err != nil {
		return nil, err
	}
	if s.b.IsSolvedFull() {
		s.recordSolution()
		return s.solutions, nil
	}

	searchErr := s.search(ctx, impact)
	if errors.Is(searchErr, ErrLimitReached) {
		return s.solutions, searchErr
	}
	if searchErr != nil {
		return nil, searchErr
	}
	if len(s.solutions) == 0 {
		return nil, probe.ErrUnsatisfiable
	}
	return s.solutions, nil
}

func (s *Solver) limitReached() bool {
	if s.opts.MaxDepth > 0 && len(s.path) >= s.opts.MaxDepth {
		return true
	}
	if s.opts.MaxSolutions > 0 && len(s.solutions) >= s.opts.MaxSolutions {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return true
	}
	return false
}

func (s *Solver) search(ctx context.Context, impact probe.ImpactMap) error {
	directions := s.orderDirections(impact)

	for len(directions) > 0 {
		if ctx.Err() != nil || s.limitReached() {
			return ErrLimitReached
		}

		d := directions[len(directions)-1]
		directions = directions[:len(directions)-1]

		if s.inPath(d) {
			continue
		}
		cell := s.b.At(d.Point)
		if !cell.CanBe(d.Color) || cell.IsSolved() {
			continue
		}

		snap := s.b.Snapshot()
		s.path = append(s.path, d)
		s.b.SetColor(d.Point, s.b.Domain().Singleton(d.Color))

		var branchErr error
		var newImpact probe.ImpactMap
		_, err := s.eng.RunPoint(d.Point)
		if err == nil {
			newImpact, err = s.probe.RunUnsolved()
		}
		switch {
		case err != nil:
			branchErr = err
		case s.b.IsSolvedFull():
			s.recordSolution()
		default:
			branchErr = s.search(ctx, newImpact)
		}

		s.b.Restore(snap)
		s.path = s.path[:len(s.path)-1]

		if branchErr == nil {
			continue
		}
		if errors.Is(branchErr, ErrLimitReached) {
			return branchErr
		}

		// The branch contradicted itself: eliminate this color at
		// the point and let the remaining directions be tried. If
		// nothing remains for the point, it simply won't be picked
		// again (CanBe will report false).
		_ = s.b.UnsetColor(d.Point, s.b.Domain().Singleton(d.Color))
	}

	return nil
}

func (s *Solver) inPath(d probe.Choice) bool {
	for _, p := range s.path {
		if p == d {
			return true
		}
	}
	return false
}

func (s *Solver) recordSolution() {
	snap := s.b.Snapshot()
	key := snapshotKey(snap)
	for _, existing := range s.solutions {
		if snapshotKey(existing) == key {
			return
		}
	}
	s.solutions = append(s.solutions, snap)
}

func snapshotKey(snap board.Snapshot) string {
	var sb strings.Builder
	for _, c := range snap {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// orderDirections aggregates the impact map per point, scores each
// point with the configured strategy, and flattens the result into a
// LIFO trial order: the best point is explored first, and within a
// point its most informative color is tried first.
func (s *Solver) orderDirections(impact probe.ImpactMap) []probe.Choice {
	type perPoint struct {
		point  board.Point
		colors []probe.Choice
		counts []int
	}

	byPoint := make(map[board.Point]*perPoint)
	var order []board.Point
	for choice, imp := range impact {
		pp, ok := byPoint[choice.Point]
		if !ok {
			pp = &perPoint{point: choice.Point}
			byPoint[choice.Point] = pp
			order = append(order, choice.Point)
		}
		pp.colors = append(pp.colors, choice)
		pp.counts = append(pp.counts, imp.Solved)
	}

	points := make([]*perPoint, 0, len(order))
	for _, p := range order {
		points = append(points, byPoint[p])
	}

	sort.Slice(points, func(i, j int) bool {
		si, sj := score(s.opts.Strategy, points[i].counts), score(s.opts.Strategy, points[j].counts)
		if si != sj {
			return si > sj
		}
		if points[i].point.Y != points[j].point.Y {
			return points[i].point.Y < points[j].point.Y
		}
		return points[i].point.X < points[j].point.X
	})

	var directions []probe.Choice
	for i := len(points) - 1; i >= 0; i-- {
		pp := points[i]
		solvedOf := make(map[probe.Choice]int, len(pp.colors))
		for k, c := range pp.colors {
			solvedOf[c] = pp.counts[k]
		}
		sort.Slice(pp.colors, func(a, b int) bool {
			return solvedOf[pp.colors[a]] < solvedOf[pp.colors[b]]
		})
		directions = append(directions, pp.colors...)
	}

	return directions
}
