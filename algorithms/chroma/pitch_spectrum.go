package chroma

import (
	"fmt"
	"math"
)

// NumPitches is the size of a pitch spectrum, one entry per MIDI pitch
const NumPitches = 128

// Default analysis window: E2 (~82 Hz) up to C6 (~1 kHz). Content
// outside it is sub-bass rumble or percussive noise rather than melody.
const (
	DefaultMinPitch = 32
	DefaultMaxPitch = 84
)

// PitchMapper folds a uniform-frequency spectrum into a 128-entry
// log-frequency pitch spectrum indexed by MIDI pitch number. Spectrum
// bins are consumed monotonically and disjointly, so every bin
// contributes to exactly one pitch.
type PitchMapper struct {
	sampleRate int
	minPitch   int
	maxPitch   int
}

// NewPitchMapper creates a pitch mapper with the default melodic pitch
// window
func NewPitchMapper(sampleRate int) (*PitchMapper, error) {
	return NewPitchMapperRange(sampleRate, DefaultMinPitch, DefaultMaxPitch)
}

// NewPitchMapperRange creates a pitch mapper that zeroes all pitches
// outside [minPitch, maxPitch]
func NewPitchMapperRange(sampleRate, minPitch, maxPitch int) (*PitchMapper, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if minPitch < 0 || maxPitch >= NumPitches || minPitch > maxPitch {
		return nil, fmt.Errorf("invalid pitch window [%d, %d]", minPitch, maxPitch)
	}
	return &PitchMapper{
		sampleRate: sampleRate,
		minPitch:   minPitch,
		maxPitch:   maxPitch,
	}, nil
}

// PitchFrequency returns the equal-tempered center frequency of a MIDI
// pitch number (A4 = pitch 69 = 440 Hz)
func PitchFrequency(pitch int) float64 {
	return 440.0 * math.Pow(2, (float64(pitch)-69.0)/12.0)
}

// Map folds the spectrum into a pitch spectrum. The spectrum is
// assumed to cover 0 Hz to Nyquist in uniform steps. Each pitch p
// collects the bins between its own center frequency boundary and the
// previous pitch's, advancing at least one bin per step so low pitches
// never map to an empty band.
func (pm *PitchMapper) Map(spectrum []float64) [NumPitches]float64 {
	var pitches [NumPitches]float64
	if len(spectrum) == 0 {
		return pitches
	}

	freqPerBin := (float64(pm.sampleRate) / 2.0) / float64(len(spectrum))
	prevIndex := 0

	for p := 0; p < NumPitches; p++ {
		nextIndex := int(math.Floor(PitchFrequency(p) / freqPerBin))
		if nextIndex < prevIndex+1 {
			nextIndex = prevIndex + 1
		}
		if nextIndex > len(spectrum) {
			nextIndex = len(spectrum)
		}

		if p >= pm.minPitch && p <= pm.maxPitch && nextIndex > prevIndex {
			sum := 0.0
			for _, v := range spectrum[prevIndex:nextIndex] {
				sum += v
			}
			pitches[p] = sum
		}

		prevIndex = nextIndex
	}

	return pitches
}

// MinPitch returns the lower edge of the pitch window
func (pm *PitchMapper) MinPitch() int { return pm.minPitch }

// MaxPitch returns the upper edge of the pitch window
func (pm *PitchMapper) MaxPitch() int { return pm.maxPitch }
