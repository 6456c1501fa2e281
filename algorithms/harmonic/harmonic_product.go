package harmonic

import (
	"fmt"

	"github.com/willbowden/audio-visualiser/algorithms/common"
)

// minDominantHz is the floor below which HPS peaks are ignored when
// extracting a dominant frequency. DC and room rumble otherwise win
// the argmax on most real recordings.
const minDominantHz = 80.0

// HarmonicProduct computes the Harmonic Product Spectrum of a
// uniform-frequency spectrum. Bins that are strong at several harmonic
// multiples at once are reinforced, which sharpens the dominant
// fundamental.
//
// The contract for downsamples D > 1 is:
//
//	out[i] = spectrum[1*i] * spectrum[2*i] * ... * spectrum[D*i]
//
// with out[0] = spectrum[0]^D, since every harmonic multiple of bin 0
// is bin 0 itself. The output has len(spectrum)/D entries. D <= 1 is a
// pass-through copy.
type HarmonicProduct struct {
	sampleRate  int
	downsamples int
}

// NewHarmonicProduct creates an HPS analyzer. downsamples is the
// number of harmonic multiples folded into each product.
func NewHarmonicProduct(sampleRate, downsamples int) (*HarmonicProduct, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	return &HarmonicProduct{
		sampleRate:  sampleRate,
		downsamples: downsamples,
	}, nil
}

// Compute returns the harmonic product spectrum
func (hp *HarmonicProduct) Compute(spectrum []float64) []float64 {
	if len(spectrum) == 0 {
		return []float64{}
	}

	if hp.downsamples <= 1 {
		out := make([]float64, len(spectrum))
		copy(out, spectrum)
		return out
	}

	out := make([]float64, len(spectrum)/hp.downsamples)
	for i := range out {
		product := 1.0
		for k := 1; k <= hp.downsamples; k++ {
			product *= spectrum[k*i]
		}
		out[i] = product
	}

	return out
}

// DominantFrequency runs the HPS and returns the frequency in Hz of
// its strongest bin, ignoring everything below ~80 Hz. Returns 0 when
// no candidate bin exists.
func (hp *HarmonicProduct) DominantFrequency(spectrum []float64) float64 {
	hps := hp.Compute(spectrum)
	if len(hps) == 0 {
		return 0.0
	}

	// The spectrum covers 0 Hz to Nyquist in uniform steps.
	freqPerBin := (float64(hp.sampleRate) / 2.0) / float64(len(spectrum))

	minBin := int(minDominantHz / freqPerBin)
	if minBin < 1 {
		minBin = 1
	}
	if minBin >= len(hps) {
		return 0.0
	}

	idx := common.ArgMax(hps[minBin:])
	if idx < 0 {
		return 0.0
	}

	return freqPerBin * float64(minBin+idx)
}
