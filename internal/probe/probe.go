// Package probe implements trial-and-propagate probing: for each
// unsolved cell, every remaining color is tried in turn; a color that
// makes the board unsatisfiable is eliminated, and a color that
// leaves the board satisfiable contributes to the impact map used by
// the backtracking search to choose where to branch next.
package probe

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/tsionyx/nonogrid/internal/board"
	"github.com/tsionyx/nonogrid/internal/color"
	"github.com/tsionyx/nonogrid/internal/propagate"
)

// ErrUnsatisfiable is returned when every remaining color at some
// cell leads to contradiction: the board cannot be completed from
// its current state.
var ErrUnsatisfiable = errors.New("probe: no color is consistent with the board")

// Priority tags describe why a point was pushed onto the probe heap.
type Priority int

const (
	// PriorityNeighborOfSolved marks a point queued by RunUnsolved's
	// initial seeding or by ProbePoint.
	PriorityNeighborOfSolved Priority = iota
	// PriorityNeighborOfContradiction marks a point queued again after
	// a contradiction was eliminated: the probed point itself and
	// every cell that the following propagation changed.
	PriorityNeighborOfContradiction
)

// Choice is one (point, color) pair a cell could still take.
type Choice struct {
	Point board.Point
	Color color.ID
}

// Impact records how many cells a trial assignment solved via
// propagation. Priority is PriorityNeighborOfSolved for every entry;
// the tag the point was queued with is not carried over.
type Impact struct {
	Solved   int
	Priority Priority
}

// ImpactMap collects every trial's outcome, keyed by the (point,
// color) that was tried.
type ImpactMap map[Choice]Impact

// Solver runs the probing algorithm against one board.
type Solver struct {
	b   *board.Board
	eng *propagate.Engine
	pq  priorityQueue
}

// New builds a probing Solver over b, using eng to run the
// propagation triggered by each trial.
func New(b *board.Board, eng *propagate.Engine) *Solver {
	return &Solver{b: b, eng: eng}
}

// RunUnsolved probes every currently unsolved cell, forcing colors
// via contradiction where possible, and returns the impact map built
// along the way. It fails with ErrUnsatisfiable if some cell has no
// remaining consistent color.
func (s *Solver) RunUnsolved() (ImpactMap, error) {
	s.seedAll()
	return s.drain()
}

// ProbePoint probes a single point without reseeding the whole
// board, for callers that already know which point to look at. A
// point that is already solved is skipped, so nothing is probed or
// propagated for it.
func (s *Solver) ProbePoint(p board.Point) (ImpactMap, error) {
	s.push(p, PriorityNeighborOfSolved)
	return s.drain()
}

func (s *Solver) seedAll() {
	for _, p := range s.b.UnsolvedPoints() {
		s.push(p, PriorityNeighborOfSolved)
	}
}

func (s *Solver) push(p board.Point, pr Priority) {
	heap.Push(&s.pq, &heapItem{point: p, priority: priorityScore(s.b, p), tag: pr})
}

func (s *Solver) drain() (ImpactMap, error) {
	impact := make(ImpactMap)

	for s.pq.Len() > 0 {
		item := heap.Pop(&s.pq).(*heapItem)
		p := item.point

		if s.b.At(p).IsSolved() {
			continue
		}

		toPush, err := s.probeOnce(p, impact)
		if err != nil {
			return nil, err
		}
		for _, np := range toPush {
			s.push(np, PriorityNeighborOfContradiction)
		}
	}

	return impact, nil
}

type trial struct {
	id            color.ID
	solved        int
	contradiction bool
}

// probeOnce trial-sets every remaining color at p, records the
// impact of each, and, if some (but not all) colors contradict,
// eliminates them and propagates the consequence. It returns the
// points that should be probed next as a result.
func (s *Solver) probeOnce(p board.Point, impact ImpactMap) ([]board.Point, error) {
	cell := s.b.At(p)
	domain := s.b.Domain()
	variants := cell.Variants()

	trials := make([]trial, 0, len(variants))
	for _, id := range variants {
		snap := s.b.Snapshot()
		s.b.SetColor(p, domain.Singleton(id))

		changed, err := s.eng.RunPoint(p)
		t := trial{id: id}
		if err != nil {
			t.contradiction = true
		} else {
			t.solved = len(changed)
		}
		trials = append(trials, t)
		s.b.Restore(snap)
	}

	var bad, good []color.ID
	for _, t := range trials {
		if t.contradiction {
			bad = append(bad, t.id)
		} else {
			good = append(good, t.id)
			impact[Choice{Point: p, Color: t.id}] = Impact{Solved: t.solved, Priority: PriorityNeighborOfSolved}
		}
	}

	if len(good) == 0 {
		return nil, fmt.Errorf("%w: point %v", ErrUnsatisfiable, p)
	}
	if len(bad) == 0 {
		return nil, nil
	}

	if err := s.b.UnsetColor(p, domain.FromIDs(bad)); err != nil {
		return nil, fmt.Errorf("probe: eliminating contradictions at %v: %w", p, err)
	}

	changed, err := s.eng.RunPoint(p)
	if err != nil {
		return nil, err
	}

	next := make([]board.Point, 0, len(changed)+1)
	next = append(next, p)
	next = append(next, changed...)
	return next, nil
}

func priorityScore(b *board.Board, p board.Point) int {
	unsolved := len(b.UnsolvedNeighbors(p))
	rowRate := b.LineSolutionRate(board.Row, p.Y)
	colRate := b.LineSolutionRate(board.Column, p.X)
	score := float64(4-unsolved) + rowRate + colRate
	return int(score * 1000)
}

type heapItem struct {
	point    board.Point
	priority int
	tag      Priority
}

// priorityQueue is a max-heap over heapItem.priority.
type priorityQueue []*heapItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].priority > pq[j].priority }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*heapItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
