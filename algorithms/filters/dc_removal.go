package filters

import (
	"math"
)

// DCRemoval is a one-pole DC blocking filter:
//
//	y[n] = x[n] - x[n-1] + R*y[n-1]
//
// Run over sample blocks before the FFT it keeps a constant amplitude
// offset from leaking a large 0 Hz bin into the low bars.
type DCRemoval struct {
	poleLocation float64
	x1           float64
	y1           float64
}

// NewDCRemoval creates a DC blocking filter with the standard audio
// pole location of 0.995 (cutoff around 8 Hz at 44.1 kHz)
func NewDCRemoval() *DCRemoval {
	return &DCRemoval{poleLocation: 0.995}
}

// NewDCRemovalWithCutoff creates a DC blocking filter with the pole
// placed for the given -3dB cutoff frequency
func NewDCRemovalWithCutoff(sampleRate int, cutoffFreq float64) *DCRemoval {
	pole := 1.0 - 2.0*math.Pi*cutoffFreq/float64(sampleRate)
	if pole < 0 {
		pole = 0
	}
	return &DCRemoval{poleLocation: pole}
}

// ProcessInPlace filters the block in place, carrying filter state
// across calls so consecutive blocks form one continuous signal
func (dc *DCRemoval) ProcessInPlace(block []float64) {
	for i, x := range block {
		y := x - dc.x1 + dc.poleLocation*dc.y1
		dc.x1 = x
		dc.y1 = y
		block[i] = y
	}
}

// Reset clears the filter state
func (dc *DCRemoval) Reset() {
	dc.x1 = 0
	dc.y1 = 0
}
