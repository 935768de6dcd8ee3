// Package ranking implements a scored max-heap with non-destructive top-K.
package ranking

// Scored pairs an item with its score.
type Scored[T any] struct {
	Item  T
	Score float64
}

type entry[T any] struct {
	item  T
	score float64
	seq   uint64
}

// Ranker is an array-backed binary max-heap ordered by score.
// Equal scores come out in insertion order. Ranker is not safe for
// concurrent use.
type Ranker[T any] struct {
	heap []entry[T]
	next uint64
}

// New creates an empty ranker with room for capacity entries.
func New[T any](capacity int) *Ranker[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Ranker[T]{heap: make([]entry[T], 0, capacity)}
}

// Add inserts item with score in O(log n).
func (r *Ranker[T]) Add(item T, score float64) {
	r.heap = append(r.heap, entry[T]{item: item, score: score, seq: r.next})
	r.next++
	up(r.heap, len(r.heap)-1)
}

// PopMax removes and returns the highest-scored item.
func (r *Ranker[T]) PopMax() (T, float64, bool) {
	var zero T
	if len(r.heap) == 0 {
		return zero, 0, false
	}
	top := r.heap[0]
	r.heap = pop(r.heap)
	return top.item, top.score, true
}

// PeekMax returns the highest-scored item without removing it.
func (r *Ranker[T]) PeekMax() (T, bool) {
	if len(r.heap) == 0 {
		var zero T
		return zero, false
	}
	return r.heap[0].item, true
}

// PeekMaxScore returns the highest score, or 0 when empty.
func (r *Ranker[T]) PeekMaxScore() float64 {
	if len(r.heap) == 0 {
		return 0
	}
	return r.heap[0].score
}

// Len returns the number of entries.
func (r *Ranker[T]) Len() int { return len(r.heap) }

// IsEmpty reports whether the ranker holds no entries.
func (r *Ranker[T]) IsEmpty() bool { return len(r.heap) == 0 }

// Clear drops every entry.
func (r *Ranker[T]) Clear() {
	clear(r.heap)
	r.heap = r.heap[:0]
	r.next = 0
}

// TopK returns up to k entries in descending score order. It works on a copy
// of the heap, so the ranker itself is left untouched. O(n + k log n).
func (r *Ranker[T]) TopK(k int) []Scored[T] {
	if k <= 0 || len(r.heap) == 0 {
		return nil
	}
	if k > len(r.heap) {
		k = len(r.heap)
	}

	work := make([]entry[T], len(r.heap))
	copy(work, r.heap)

	out := make([]Scored[T], 0, k)
	for len(out) < k {
		top := work[0]
		out = append(out, Scored[T]{Item: top.item, Score: top.score})
		work = pop(work)
	}
	return out
}

// higher reports whether a ranks above b.
func higher[T any](a, b entry[T]) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.seq < b.seq
}

func up[T any](h []entry[T], i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !higher(h[i], h[parent]) {
			return
		}
		h[i], h[parent] = h[parent], h[i]
		i = parent
	}
}

func down[T any](h []entry[T], i int) {
	n := len(h)
	for {
		best := i
		left, right := 2*i+1, 2*i+2
		if left < n && higher(h[left], h[best]) {
			best = left
		}
		if right < n && higher(h[right], h[best]) {
			best = right
		}
		if best == i {
			return
		}
		h[i], h[best] = h[best], h[i]
		i = best
	}
}

// pop moves the last entry to the root, shrinks the slice and restores order.
func pop[T any](h []entry[T]) []entry[T] {
	last := len(h) - 1
	h[0] = h[last]
	var zero entry[T]
	h[last] = zero
	h = h[:last]
	if len(h) > 0 {
		down(h, 0)
	}
	return h
}
