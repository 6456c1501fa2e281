package chroma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchFrequency(t *testing.T) {
	assert.InDelta(t, 440.0, PitchFrequency(69), 1e-9, "A4 is the tuning reference")
	assert.InDelta(t, 261.63, PitchFrequency(60), 0.01, "middle C")
	assert.InDelta(t, 880.0, PitchFrequency(81), 1e-9, "A5 is one octave up")
}

func TestMapZeroesOutsidePitchWindow(t *testing.T) {
	pm, err := NewPitchMapper(44100)
	require.NoError(t, err)

	spectrum := make([]float64, 1024)
	for i := range spectrum {
		spectrum[i] = 1.0
	}

	pitches := pm.Map(spectrum)

	for p := 0; p < DefaultMinPitch; p++ {
		assert.Zero(t, pitches[p], "pitch %d is below the window", p)
	}
	for p := DefaultMaxPitch + 1; p < NumPitches; p++ {
		assert.Zero(t, pitches[p], "pitch %d is above the window", p)
	}
}

func TestMapConsumesBinsDisjointly(t *testing.T) {
	// With a flat spectrum of ones every pitch's energy equals the
	// number of bins it consumed, so the in-window total can never
	// exceed the spectrum length if no bin is double-counted.
	pm, err := NewPitchMapperRange(44100, 0, NumPitches-1)
	require.NoError(t, err)

	spectrum := make([]float64, 1024)
	for i := range spectrum {
		spectrum[i] = 1.0
	}

	pitches := pm.Map(spectrum)

	total := 0.0
	for _, v := range pitches {
		total += v
	}
	assert.LessOrEqual(t, total, float64(len(spectrum)))
}

func TestMapAdvancesAtLeastOneBinPerPitch(t *testing.T) {
	// At low pitch numbers the bin spacing is coarser than a
	// semitone; the mapper must still give every in-window pitch at
	// least one bin instead of an empty band.
	pm, err := NewPitchMapper(44100)
	require.NoError(t, err)

	spectrum := make([]float64, 1024)
	for i := range spectrum {
		spectrum[i] = 1.0
	}

	pitches := pm.Map(spectrum)

	for p := DefaultMinPitch; p <= DefaultMaxPitch; p++ {
		assert.GreaterOrEqual(t, pitches[p], 1.0, "pitch %d mapped to an empty band", p)
	}
}

func TestMapEmptySpectrum(t *testing.T) {
	pm, err := NewPitchMapper(44100)
	require.NoError(t, err)

	pitches := pm.Map(nil)
	assert.Equal(t, [NumPitches]float64{}, pitches)
}

func TestPitchMapperValidation(t *testing.T) {
	_, err := NewPitchMapperRange(0, 32, 84)
	assert.Error(t, err)

	_, err = NewPitchMapperRange(44100, -1, 84)
	assert.Error(t, err)

	_, err = NewPitchMapperRange(44100, 84, 32)
	assert.Error(t, err)

	_, err = NewPitchMapperRange(44100, 32, NumPitches)
	assert.Error(t, err)
}
