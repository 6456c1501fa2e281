package spectral

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
)

// Transform converts fixed-length real sample blocks into power spectra.
// The block size and window coefficients are fixed at construction; the
// only per-call state is a scratch buffer for the windowed block, so a
// Transform must not be shared between goroutines.
type Transform struct {
	size    int
	window  []float64
	scratch []float64
}

// NewTransform creates a power-spectrum transform for blocks of the
// given size. The window must hold exactly size precomputed
// coefficients (see the windowing package).
func NewTransform(size int, window []float64) (*Transform, error) {
	if size <= 0 {
		return nil, fmt.Errorf("transform size must be positive, got %d", size)
	}
	if len(window) != size {
		return nil, fmt.Errorf("window length (%d) doesn't match transform size (%d)", len(window), size)
	}

	coeffs := make([]float64, size)
	copy(coeffs, window)

	return &Transform{
		size:    size,
		window:  coeffs,
		scratch: make([]float64, size),
	}, nil
}

// Process windows the block, runs a real FFT and returns the squared
// magnitudes of the first size/2 bins. Bin i corresponds to frequency
// i * sampleRate / size.
func (t *Transform) Process(block []float64) ([]float64, error) {
	if len(block) != t.size {
		return nil, fmt.Errorf("block length (%d) doesn't match transform size (%d)", len(block), t.size)
	}

	for i, sample := range block {
		t.scratch[i] = sample * t.window[i]
	}

	bins := fft.FFTReal(t.scratch)

	spectrum := make([]float64, t.size/2)
	for i := range spectrum {
		re := real(bins[i])
		im := imag(bins[i])
		spectrum[i] = re*re + im*im
	}

	return spectrum, nil
}

// Size returns the fixed block size
func (t *Transform) Size() int {
	return t.size
}

// SpectrumLength returns the length of the spectra Process produces
func (t *Transform) SpectrumLength() int {
	return t.size / 2
}
