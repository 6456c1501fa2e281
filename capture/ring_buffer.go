package capture

import (
	"fmt"
	"sync"
)

// SampleBuffer is a bounded, mutex-guarded ring buffer of audio
// samples shared between a capture goroutine and the analysis loop.
// Writes overwrite the oldest samples when full. Readers take a
// point-in-time copy via Snapshot so the lock is released before any
// FFT work starts.
type SampleBuffer struct {
	mu   sync.Mutex
	buf  []float64
	size int
	w    int // write position
	n    int // current fill level
}

// NewSampleBuffer creates a ring buffer holding up to size samples
func NewSampleBuffer(size int) (*SampleBuffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("buffer size must be positive, got %d", size)
	}
	return &SampleBuffer{
		buf:  make([]float64, size),
		size: size,
	}, nil
}

// Append adds samples to the buffer, overwriting the oldest when full
func (b *SampleBuffer) Append(samples []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range samples {
		b.buf[b.w] = s
		b.w = (b.w + 1) % b.size
	}
	b.n += len(samples)
	if b.n > b.size {
		b.n = b.size
	}
}

// Snapshot returns a copy of the most recent n samples, or nil when
// fewer than n have been captured. A nil result means the caller
// should skip this frame and retry on the next one.
func (b *SampleBuffer) Snapshot(n int) []float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n <= 0 || n > b.n {
		return nil
	}

	out := make([]float64, n)
	start := (b.w - n + b.size) % b.size
	for i := range out {
		out[i] = b.buf[(start+i)%b.size]
	}
	return out
}

// Len returns the number of samples currently held
func (b *SampleBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.n
}

// Clear empties the buffer
func (b *SampleBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.w = 0
	b.n = 0
}
