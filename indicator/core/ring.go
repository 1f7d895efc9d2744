package core

// Ring is a fixed-capacity float64 history. Every Push overwrites exactly one
// slot; At reads a sample by its distance from the newest one.
//
// Reads that reach further back than the number of pushed samples return the
// newest sample instead, so filters produce finite output from the first bar.
type Ring struct {
	buf   []float64
	head  int // next write position
	count int
}

// NewRing creates a ring holding the capacity most recent samples.
// Capacity below 1 is raised to 1.
func NewRing(capacity int) Ring {
	if capacity < 1 {
		capacity = 1
	}
	return Ring{buf: make([]float64, capacity)}
}

// Push stores v as the newest sample.
func (r *Ring) Push(v float64) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// At returns the sample offset steps before the newest one (offset 0 is the
// newest). Offsets without history fall back to the newest sample. At on an
// empty ring returns 0.
func (r *Ring) At(offset int) float64 {
	if r.count == 0 {
		return 0
	}
	if offset < 0 || offset >= r.count {
		offset = 0
	}
	n := len(r.buf)
	latest := (r.head + n - 1) % n
	return r.buf[(latest+n-offset)%n]
}

// Sum adds the n most recent samples, using the At fallback for history that
// does not exist yet. n is capped at the ring capacity.
func (r *Ring) Sum(n int) float64 {
	if n > len(r.buf) {
		n = len(r.buf)
	}
	sum := 0.0
	for k := 0; k < n; k++ {
		sum += r.At(k)
	}
	return sum
}

// Len returns the number of samples currently held.
func (r *Ring) Len() int { return r.count }

// Cap returns the ring capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Reset forgets all samples without releasing the backing array.
func (r *Ring) Reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.head = 0
	r.count = 0
}
