// Package propagate implements the constraint-propagation loop: a
// queue of (axis, index) jobs, each resolved by re-running the line
// solver and, on any change, pushing the crossing lines back onto the
// queue.
package propagate

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tsionyx/nonogrid/internal/board"
	"github.com/tsionyx/nonogrid/internal/color"
	"github.com/tsionyx/nonogrid/internal/linesolve"
)

// Job identifies one line to (re-)solve.
type Job struct {
	Axis  board.Axis
	Index int
}

// Engine runs propagation jobs against one board, memoizing line
// solves through the board's own caches.
type Engine struct {
	b   *board.Board
	log zerolog.Logger
}

// New builds an Engine over b. A zero Logger is fine; it discards
// events silently, matching zerolog's documented zero-value behavior.
func New(b *board.Board, log zerolog.Logger) *Engine {
	return &Engine{b: b, log: log}
}

// RunPoint seeds propagation from a single changed point: the row
// and column crossing it. It returns every point whose color changed
// as a result.
func (e *Engine) RunPoint(seed board.Point) ([]board.Point, error) {
	q := newPointQueue(Job{Axis: board.Row, Index: seed.Y}, Job{Axis: board.Column, Index: seed.X})
	return e.run(q)
}

// RunFull seeds propagation from every row and column and runs until
// the queue drains.
func (e *Engine) RunFull() ([]board.Point, error) {
	q := newFullQueue(e.b.LineCount(board.Row), e.b.LineCount(board.Column))
	return e.run(q)
}

func (e *Engine) run(q *jobQueue) ([]board.Point, error) {
	start := time.Now()
	linesSolved := 0
	var changedPoints []board.Point

	for {
		job, ok := q.pop()
		if !ok {
			break
		}

		changedOffsets, err := e.solveLine(job.Axis, job.Index)
		if err != nil {
			e.log.Warn().
				Str("axis", job.Axis.String()).
				Int("index", job.Index).
				Err(err).
				Msg("propagation: bad line")
			return nil, err
		}
		linesSolved++

		for i := len(changedOffsets) - 1; i >= 0; i-- {
			offset := changedOffsets[i]
			changedPoints = append(changedPoints, pointFor(job.Axis, job.Index, offset))
			q.requeue(Job{Axis: job.Axis.Other(), Index: offset})
		}
	}

	e.log.Debug().
		Int("lines_solved", linesSolved).
		Int("cells_changed", len(changedPoints)).
		Dur("elapsed", time.Since(start)).
		Msg("propagation round complete")

	return changedPoints, nil
}

func pointFor(axis board.Axis, index, offset int) board.Point {
	if axis == board.Row {
		return board.Point{X: offset, Y: index}
	}
	return board.Point{X: index, Y: offset}
}

// solveLine re-solves one line, consulting and updating the board's
// cache, and reports the offsets within the line whose color changed.
func (e *Engine) solveLine(axis board.Axis, index int) ([]int, error) {
	line := e.b.Line(axis, index)

	entry, hit := e.b.Cached(axis, index, line)
	var newLine []color.Cell
	if hit {
		if entry.Err != nil {
			return nil, entry.Err
		}
		newLine = []color.Cell(entry.Line)
	} else {
		lsLine := make(linesolve.Line, len(line))
		copy(lsLine, line)

		solved, err := linesolve.Solve(e.b.Clue(axis, index), lsLine)
		if err != nil {
			e.b.SetCached(axis, index, line, board.CacheEntry{Err: err})
			return nil, err
		}
		e.b.SetCached(axis, index, line, board.CacheEntry{Line: board.Snapshot(solved)})
		newLine = []color.Cell(solved)
	}

	changed := diff(line, newLine)
	if len(changed) > 0 {
		e.b.SetLine(axis, index, newLine)
	}
	return changed, nil
}

func diff(old, updated []color.Cell) []int {
	var changed []int
	for i := range old {
		if old[i].Key() != updated[i].Key() {
			changed = append(changed, i)
		}
	}
	return changed
}

// jobQueue is a LIFO job queue with two dedup disciplines: a
// point-seeded queue dedupes pending entries (idempotent pushes while
// a job is already waiting), a full queue dedupes against a visited
// set so a job is reconsidered only after an explicit requeue.
type jobQueue struct {
	stack      []Job
	pending    map[Job]bool
	visited    map[Job]bool
	useVisited bool
}

func newPointQueue(jobs ...Job) *jobQueue {
	q := &jobQueue{pending: make(map[Job]bool)}
	for _, j := range jobs {
		q.push(j)
	}
	return q
}

func newFullQueue(rowCount, colCount int) *jobQueue {
	q := &jobQueue{pending: make(map[Job]bool), visited: make(map[Job]bool), useVisited: true}
	for j := colCount - 1; j >= 0; j-- {
		q.push(Job{Axis: board.Column, Index: j})
	}
	for i := rowCount - 1; i >= 0; i-- {
		q.push(Job{Axis: board.Row, Index: i})
	}
	return q
}

func (q *jobQueue) push(job Job) {
	if q.useVisited {
		if q.visited[job] {
			return
		}
		q.visited[job] = true
	} else {
		if q.pending[job] {
			return
		}
		q.pending[job] = true
	}
	q.stack = append(q.stack, job)
}

// requeue forces job back onto the queue even if a visited-mode queue
// already processed it once.
func (q *jobQueue) requeue(job Job) {
	if q.useVisited {
		delete(q.visited, job)
	}
	q.push(job)
}

func (q *jobQueue) pop() (Job, bool) {
	if len(q.stack) == 0 {
		return Job{}, false
	}
	last := q.stack[len(q.stack)-1]
	q.stack = q.stack[:len(q.stack)-1]
	if !q.useVisited {
		delete(q.pending, last)
	}
	return last, true
}
