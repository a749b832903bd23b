// Package parallel implements the work-stealing, atomically-relaxed
// parallel shortest-path engine: the central subsystem of this module.
//
// Each of T workers owns a priority queue keyed by (tentative distance,
// vertex). Workers relax vertices taken from their own queue, stealing from
// a random victim when their own queue runs dry. A worker that finds no work
// returns once the whole pool is quiescent and otherwise parks on a
// condition variable until a push or termination wakes it. Termination is
// detected via the conjunction tasks == 0 && active == 0, re-checked after
// every park to guard against a push racing the check (see runLoop).
package parallel

import (
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/iu7-aa/sssp-lab/internal/graph"
	"github.com/iu7-aa/sssp-lab/internal/sssp"
)

// engine holds the shared state for one Run invocation.
type engine struct {
	g       *graph.Graph
	threads int

	dist   []atomic.Uint64
	parent []atomic.Int64

	queues []workQueue

	tasks  atomic.Int64
	active atomic.Int64
	done   atomic.Bool

	cvMu sync.Mutex
	cv   *sync.Cond
}

// Run computes (dist, parent) from start using threads workers. threads <= 0
// substitutes the logical CPU count (floored at 1), and threads is clamped
// to sssp.MaxThreads (see sssp.ResolveThreadCount).
func Run(g *graph.Graph, start int, threads int) *sssp.Result {
	threads = sssp.ResolveThreadCount(threads, runtime.NumCPU())
	n := g.Size()

	e := &engine{
		g:       g,
		threads: threads,
		dist:    make([]atomic.Uint64, n),
		parent:  make([]atomic.Int64, n),
		queues:  make([]workQueue, threads),
	}
	e.cv = sync.NewCond(&e.cvMu)

	for i := 0; i < n; i++ {
		e.dist[i].Store(sssp.INF)
		e.parent[i].Store(sssp.NoParent)
	}

	e.dist[start].Store(0)
	e.pushTo(start%threads, node{dist: 0, v: start})

	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		go func(idx int) {
			defer wg.Done()
			e.runLoop(idx)
		}(w)
	}
	wg.Wait()

	res := &sssp.Result{
		Dist:   make([]uint64, n),
		Parent: make([]int, n),
	}
	for i := 0; i < n; i++ {
		res.Dist[i] = e.dist[i].Load()
		res.Parent[i] = int(e.parent[i].Load())
	}
	return res
}

// pushTo enqueues nd onto queue owner, bumps the task count, and wakes one
// parked worker. owner is clamped into range defensively.
func (e *engine) pushTo(owner int, nd node) {
	if owner < 0 || owner >= e.threads {
		owner = 0
	}

	e.queues[owner].push(nd)
	e.tasks.Add(1)

	e.cvMu.Lock()
	e.cv.Signal()
	e.cvMu.Unlock()
}

// randomVictim returns a uniformly random offset in [0, threads) drawn from
// math/rand/v2's top-level generator, which is safe for concurrent use;
// workers do not keep a random source of their own.
func randomVictim(threads int) int {
	return rand.N(threads)
}

// tryPop attempts the owning worker's local pop first, then a steal pass
// over every other queue starting from a random offset.
func (e *engine) tryPop(idx int) (node, bool) {
	if out, ok := e.queues[idx].popLocal(); ok {
		return out, true
	}
	return e.steal(idx)
}

// steal scans all queues in rotation from a random start, skipping idx,
// using non-blocking try-lock so a stealer never waits on a busy owner.
func (e *engine) steal(idx int) (node, bool) {
	if e.threads <= 1 {
		return node{}, false
	}

	start := randomVictim(e.threads)
	for attempt := 0; attempt < e.threads; attempt++ {
		target := (start + attempt) % e.threads
		if target == idx {
			continue
		}
		if out, ok := e.queues[target].tryStealFrom(); ok {
			return out, true
		}
	}
	return node{}, false
}

// quiescent reports the global termination predicate: no task pending and
// no worker mid-relaxation.
func (e *engine) quiescent() bool {
	return e.tasks.Load() == 0 && e.active.Load() == 0
}

// markDoneIfQuiescent sets done and wakes every parked worker if the pool
// currently looks quiescent. Safe to call redundantly; done is sticky.
func (e *engine) markDoneIfQuiescent() {
	if e.quiescent() {
		e.done.Store(true)
		e.cvMu.Lock()
		e.cv.Broadcast()
		e.cvMu.Unlock()
	}
}

// runLoop is a single worker's main loop.
func (e *engine) runLoop(idx int) {
	for {
		cur, ok := e.tryPop(idx)
		if !ok {
			if e.quiescent() {
				e.done.Store(true)
				e.cvMu.Lock()
				e.cv.Broadcast()
				e.cvMu.Unlock()
				return
			}

			e.cvMu.Lock()
			for e.tasks.Load() == 0 && !e.done.Load() {
				e.cv.Wait()
			}
			e.cvMu.Unlock()

			// Re-check immediately after waking: the predicate that woke us
			// (tasks>0 or done) does not itself guarantee the pool is not
			// quiescent (a sibling may have already drained the task we
			// were notified about).
			if e.quiescent() {
				return
			}
			continue
		}

		// Deliberately NOT decrementing tasks here. The source this engine
		// is modeled on decrements tasks immediately after the pop, before
		// the stale check — leaving a window where a popped-but-not-yet-
		// active task is invisible to both tasks and active, letting
		// quiescent() fire prematurely. Decrementing only after the stale
		// check and the active increment closes that window.

		curDist := e.dist[cur.v].Load()
		if cur.dist != curDist {
			// Stale entry: a better distance was already committed after
			// this one was enqueued. Account for it and move on.
			e.tasks.Add(-1)
			e.markDoneIfQuiescent()
			continue
		}

		e.active.Add(1)
		e.tasks.Add(-1)

		for _, edge := range e.g.Neighbors(cur.v) {
			nd := curDist + uint64(edge.Weight)
			old := e.dist[edge.To].Load()
			for nd < old {
				if e.dist[edge.To].CompareAndSwap(old, nd) {
					e.parent[edge.To].Store(int64(cur.v))
					e.pushTo(edge.To%e.threads, node{dist: nd, v: edge.To})
					break
				}
				old = e.dist[edge.To].Load()
			}
		}

		e.active.Add(-1)
		e.markDoneIfQuiescent()
	}
}
