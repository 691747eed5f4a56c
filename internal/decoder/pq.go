package decoder

import "container/heap"

// candQueue is a max-priority queue of Candidates ordered by Score, used by
// the cube-pruning search (spec.md §4.4) to pop the best not-yet-expanded
// merge on each iteration. No third-party priority-queue implementation
// appears anywhere in the retrieved pack; container/heap is the standard
// idiom for this and needs no justification beyond that.
type candQueue struct {
	items []*Candidate
}

func (q *candQueue) Len() int { return len(q.items) }
func (q *candQueue) Less(i, j int) bool {
	return q.items[i].Score > q.items[j].Score // max-heap
}
func (q *candQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *candQueue) Push(x any)    { q.items = append(q.items, x.(*Candidate)) }
func (q *candQueue) Pop() any {
	n := len(q.items)
	it := q.items[n-1]
	q.items = q.items[:n-1]
	return it
}

// CandPQ wraps candQueue behind container/heap's push/pop protocol.
type CandPQ struct {
	q candQueue
}

// NewCandPQ returns an empty priority queue.
func NewCandPQ() *CandPQ {
	pq := &CandPQ{}
	heap.Init(&pq.q)
	return pq
}

// Push inserts a candidate.
func (pq *CandPQ) Push(c *Candidate) { heap.Push(&pq.q, c) }

// Pop removes and returns the highest-scoring candidate.
func (pq *CandPQ) Pop() *Candidate { return heap.Pop(&pq.q).(*Candidate) }

// Empty reports whether the queue has no candidates left.
func (pq *CandPQ) Empty() bool { return pq.q.Len() == 0 }
