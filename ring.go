package ember

// ring is a fixed-capacity ordered buffer. Pushing at capacity evicts the
// oldest element, so the buffer can never grow past its cap regardless of
// how many ticks feed it. Trail histories and glyph queues are rings.
type ring[T any] struct {
	buf   []T
	head  int // index of the oldest element
	count int
}

// newRing creates a ring with the given capacity. A non-positive capacity
// yields a ring that silently drops every push.
func newRing[T any](capacity int) ring[T] {
	if capacity < 0 {
		capacity = 0
	}
	return ring[T]{buf: make([]T, capacity)}
}

// Cap returns the fixed capacity.
func (r *ring[T]) Cap() int { return len(r.buf) }

// Len returns the number of live elements.
func (r *ring[T]) Len() int { return r.count }

// Push appends v, evicting the oldest element if the ring is full.
func (r *ring[T]) Push(v T) {
	if len(r.buf) == 0 {
		return
	}
	tail := (r.head + r.count) % len(r.buf)
	r.buf[tail] = v
	if r.count < len(r.buf) {
		r.count++
	} else {
		r.head = (r.head + 1) % len(r.buf)
	}
}

// At returns the i-th element, oldest first. i must be in [0, Len).
func (r *ring[T]) At(i int) T {
	return r.buf[(r.head+i)%len(r.buf)]
}

// PopOldest removes and returns the oldest element. ok is false when empty.
func (r *ring[T]) PopOldest() (v T, ok bool) {
	if r.count == 0 {
		return v, false
	}
	v = r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return v, true
}

// Clear drops every element. Capacity is retained.
func (r *ring[T]) Clear() {
	r.head = 0
	r.count = 0
}

// TrimTo drops oldest elements until Len <= n. Normal eviction already
// enforces the cap; the lifecycle calls this as a backstop.
func (r *ring[T]) TrimTo(n int) {
	if n < 0 {
		n = 0
	}
	for r.count > n {
		r.head = (r.head + 1) % len(r.buf)
		r.count--
	}
}
