package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMusicRangeInvariants(t *testing.T) {
	cases := []struct {
		name       string
		barCount   int
		sampleRate int
		fftSize    int
	}{
		{"24 bars 44.1k", 24, 44100, 2048},
		{"48 bars 44.1k", 48, 44100, 4096},
		{"12 bars 48k", 12, 48000, 2048},
		{"6 bars 48k", 6, 48000, 1024},
		{"64 bars 44.1k", 64, 44100, 8192},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ranges, err := LogMusicRange(tc.barCount).Ranges(tc.sampleRate, tc.fftSize)
			require.NoError(t, err)

			assert.Len(t, ranges, tc.barCount, "one range per requested bar")

			prevEnd := 0
			prevStart := -1
			for i, r := range ranges {
				assert.GreaterOrEqual(t, r.Width(), 1, "range %d must span at least one bin", i)
				assert.GreaterOrEqual(t, r.Start, prevEnd, "range %d overlaps its predecessor", i)
				assert.GreaterOrEqual(t, r.Start, prevStart, "range starts must be non-decreasing")
				prevEnd = r.End
				prevStart = r.Start
			}

			require.NoError(t, ranges.Validate(tc.fftSize/2))
		})
	}
}

func TestGammaCorrectedRanges(t *testing.T) {
	ranges, err := GammaCorrected(32, 2.0).Ranges(44100, 2048)
	require.NoError(t, err)
	require.NotEmpty(t, ranges)

	// Every spectrum bin belongs to exactly one range.
	assert.Equal(t, 0, ranges[0].Start)
	assert.Equal(t, 1024, ranges[len(ranges)-1].End)

	prevEnd := 0
	for i, r := range ranges {
		assert.Equal(t, prevEnd, r.Start, "range %d must be contiguous with its predecessor", i)
		assert.GreaterOrEqual(t, r.Width(), 1)
		prevEnd = r.End
	}

	assert.LessOrEqual(t, len(ranges), 32+1)
	require.NoError(t, ranges.Validate(1024))
}

func TestGammaWarpsLowFrequencies(t *testing.T) {
	// gamma > 1 should spend more bars on low frequencies: early
	// ranges narrow, later ranges wide.
	ranges, err := GammaCorrected(32, 2.0).Ranges(44100, 2048)
	require.NoError(t, err)
	require.Greater(t, len(ranges), 4)

	first := ranges[1].Width()
	last := ranges[len(ranges)-1].Width()
	assert.Less(t, first, last, "high-frequency ranges should be wider than low ones")
}

func TestNoGrouping(t *testing.T) {
	s := NoGrouping()
	require.NoError(t, s.Validate())
	assert.False(t, s.IsGrouped())
	assert.Equal(t, 1024, s.BarCount(2048))

	ranges, err := s.Ranges(44100, 2048)
	require.NoError(t, err)
	assert.Nil(t, ranges)
}

func TestStrategyValidation(t *testing.T) {
	assert.Error(t, LogMusicRange(0).Validate())
	assert.Error(t, LogMusicRange(-3).Validate())
	assert.Error(t, GammaCorrected(16, 0).Validate())
	assert.Error(t, GammaCorrected(16, -1.5).Validate())
	assert.Error(t, GammaCorrected(0, 2.0).Validate())
	assert.NoError(t, GammaCorrected(16, 2.0).Validate())
	assert.NoError(t, LogMusicRange(24).Validate())

	_, err := LogMusicRange(0).Ranges(44100, 2048)
	assert.Error(t, err, "Ranges must refuse an invalid strategy")
}

func TestDefaultReductionPairing(t *testing.T) {
	assert.Equal(t, Max, NoGrouping().DefaultReduction())
	assert.Equal(t, Max, LogMusicRange(24).DefaultReduction())
	assert.Equal(t, Mean, GammaCorrected(32, 2.0).DefaultReduction())
}

func TestRangeSetValidate(t *testing.T) {
	good := RangeSet{{0, 2}, {2, 5}, {7, 9}}
	require.NoError(t, good.Validate(9))

	assert.ErrorIs(t, good.Validate(8), ErrSpectrumMismatch,
		"ranges past the spectrum end must report a mismatch")

	empty := RangeSet{{3, 3}}
	assert.Error(t, empty.Validate(10))

	overlapping := RangeSet{{0, 4}, {2, 6}}
	assert.Error(t, overlapping.Validate(10))
}
