package windowing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHannSymmetric(t *testing.T) {
	h := NewHann(9, true)
	coeffs := h.Coefficients()

	require.Len(t, coeffs, 9)
	assert.InDelta(t, 0.0, coeffs[0], 1e-12)
	assert.InDelta(t, 0.0, coeffs[8], 1e-12)
	assert.InDelta(t, 1.0, coeffs[4], 1e-12, "a symmetric odd-length window peaks in the middle")
}

func TestHannPeriodicEndpoint(t *testing.T) {
	h := NewHann(8, false)
	coeffs := h.Coefficients()

	assert.InDelta(t, 0.0, coeffs[0], 1e-12)
	assert.Greater(t, coeffs[7], 0.0, "a periodic window doesn't return to zero at the end")
}

func TestHammingEndpoints(t *testing.T) {
	h := NewHamming(9, true)
	coeffs := h.Coefficients()

	assert.InDelta(t, 0.08, coeffs[0], 1e-12, "Hamming keeps a pedestal at the edges")
	assert.InDelta(t, 0.08, coeffs[8], 1e-12)
	assert.InDelta(t, 1.0, coeffs[4], 1e-12)
}

func TestApply(t *testing.T) {
	h := NewHann(4, true)

	signal := []float64{1, 1, 1, 1}
	windowed, err := h.Apply(signal)
	require.NoError(t, err)

	assert.Equal(t, h.Coefficients(), windowed)
	assert.Equal(t, []float64{1, 1, 1, 1}, signal, "Apply must not modify its input")
}

func TestApplyLengthMismatch(t *testing.T) {
	h := NewHamming(8, true)

	_, err := h.Apply(make([]float64, 4))
	assert.Error(t, err)
}

func TestCoefficientsAreACopy(t *testing.T) {
	h := NewHann(8, true)

	coeffs := h.Coefficients()
	coeffs[0] = 42

	assert.NotEqual(t, 42.0, h.Coefficients()[0])
}

func TestTypeAndSize(t *testing.T) {
	assert.Equal(t, "hann", NewHann(8, true).Type())
	assert.Equal(t, "hamming", NewHamming(8, true).Type())
	assert.Equal(t, 8, NewHann(8, true).Size())
}
