package audio

import "sync"

// ring is a fixed-size sample buffer shared between an audio callback
// goroutine and the tick loop. Writes overwrite the oldest samples.
type ring struct {
	mu   sync.Mutex
	buf  []float64
	next int
}

func newRing(size int) *ring {
	return &ring{buf: make([]float64, size)}
}

func (r *ring) push(samples []float64) {
	r.mu.Lock()
	for _, v := range samples {
		r.buf[r.next] = v
		r.next++
		if r.next >= len(r.buf) {
			r.next = 0
		}
	}
	r.mu.Unlock()
}

// snapshot returns the most recent n samples in chronological order.
func (r *ring) snapshot(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n > len(r.buf) {
		n = len(r.buf)
	}
	out := make([]float64, n)
	idx := r.next - n
	if idx < 0 {
		idx += len(r.buf)
	}
	for i := 0; i < n; i++ {
		out[i] = r.buf[idx]
		idx++
		if idx >= len(r.buf) {
			idx = 0
		}
	}
	return out
}
