package parallel

import (
	"container/heap"
	"sync"
	"sync/atomic"
)

// node is a tentative relaxation entry: vertex v became reachable at
// distance dist. Queues order nodes by dist, ties broken by vertex index so
// that steal/pop order is deterministic for a given set of entries.
type node struct {
	dist uint64
	v    int
}

// nodeHeap is a container/heap min-heap of node, ordered by dist.
type nodeHeap []node

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].v < h[j].v
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)   { *h = append(*h, x.(node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// workQueue is one worker's owned priority queue: a heap guarded by a mutex,
// plus an approximate size counter readable lock-free for cheap emptiness
// checks by popLocal fast paths and by stealers scanning for victims.
type workQueue struct {
	mu         sync.Mutex
	heap       nodeHeap
	approxSize atomic.Int64
}

// push inserts nd into the queue under lock and bumps the approximate size.
func (q *workQueue) push(nd node) {
	q.mu.Lock()
	heap.Push(&q.heap, nd)
	q.mu.Unlock()
	q.approxSize.Add(1)
}

// popLocal is the owning worker's fast pop: skip the lock entirely when the
// approximate size says the queue looks empty.
func (q *workQueue) popLocal() (node, bool) {
	if q.approxSize.Load() == 0 {
		return node{}, false
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.heap) == 0 {
		q.approxSize.Store(0)
		return node{}, false
	}

	out := heap.Pop(&q.heap).(node)
	q.approxSize.Add(-1)
	return out, true
}

// tryStealFrom attempts a non-blocking steal from this queue: it never
// blocks on a busy owner, returning false immediately on lock contention.
func (q *workQueue) tryStealFrom() (node, bool) {
	if q.approxSize.Load() == 0 {
		return node{}, false
	}

	if !q.mu.TryLock() {
		return node{}, false
	}
	defer q.mu.Unlock()

	if len(q.heap) == 0 {
		q.approxSize.Store(0)
		return node{}, false
	}

	out := heap.Pop(&q.heap).(node)
	q.approxSize.Add(-1)
	return out, true
}
