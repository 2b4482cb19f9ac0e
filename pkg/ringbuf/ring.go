package ringbuf

// Ring is a capacity-bounded FIFO. PushBack appends at the back and evicts
// from the front once capacity is reached, so the ring always holds the most
// recent Len() values in insertion order.
type Ring[T any] struct {
	data []T
	head int
	n    int
}

func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{
		data: make([]T, capacity),
	}
}

func (r *Ring[T]) PushBack(v T) *Ring[T] {
	if r.n < len(r.data) {
		r.data[(r.head+r.n)%len(r.data)] = v
		r.n++
		return r
	}

	// full: overwrite the oldest slot and advance the head
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	return r
}

// Snapshot returns a copy of the current contents, oldest first.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.data[(r.head+i)%len(r.data)]
	}
	return out
}

func (r *Ring[T]) Latest() (T, bool) {
	var zero T
	if r.n == 0 {
		return zero, false
	}
	return r.data[(r.head+r.n-1)%len(r.data)], true
}

func (r *Ring[T]) Len() int {
	return r.n
}

func (r *Ring[T]) Cap() int {
	return len(r.data)
}

func (r *Ring[T]) Clear() {
	r.head = 0
	r.n = 0
}
