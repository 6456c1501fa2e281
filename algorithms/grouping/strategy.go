package grouping

import (
	"errors"
	"fmt"
	"math"
)

// ErrSpectrumMismatch reports a spectrum whose length no longer matches
// the RangeSet built for it, e.g. after an FFT size change without
// rebuilding ranges. Callers should skip the frame rather than index.
var ErrSpectrumMismatch = errors.New("spectrum length does not match built ranges")

// BarRange is a half-open [Start, End) slice of spectrum bin indices
// feeding a single bar. End > Start always holds for built ranges.
type BarRange struct {
	Start int
	End   int
}

// Width returns the number of bins in the range
func (r BarRange) Width() int {
	return r.End - r.Start
}

// RangeSet is an ordered, non-overlapping set of bar ranges. It is
// built once per (barCount, sampleRate, fftSize) configuration and
// reused across frames.
type RangeSet []BarRange

// Validate checks the structural invariants and that the set fits a
// spectrum of the given length
func (rs RangeSet) Validate(spectrumLen int) error {
	prevEnd := 0
	for i, r := range rs {
		if r.End <= r.Start {
			return fmt.Errorf("range %d is empty: [%d, %d)", i, r.Start, r.End)
		}
		if r.Start < prevEnd {
			return fmt.Errorf("range %d overlaps previous (start %d < end %d)", i, r.Start, prevEnd)
		}
		prevEnd = r.End
	}
	if prevEnd > spectrumLen {
		return fmt.Errorf("%w: ranges end at %d, spectrum has %d bins", ErrSpectrumMismatch, prevEnd, spectrumLen)
	}
	return nil
}

type strategyKind int

const (
	kindNoGrouping strategyKind = iota
	kindLogMusicRange
	kindGammaCorrected
)

// Strategy selects how a spectrum is partitioned into bar ranges. The
// variant set is closed; construct values with NoGrouping,
// LogMusicRange or GammaCorrected.
type Strategy struct {
	kind     strategyKind
	barCount int
	gamma    float64
}

// NoGrouping passes the spectrum through unchanged, one bar per bin
func NoGrouping() Strategy {
	return Strategy{kind: kindNoGrouping}
}

// LogMusicRange splits the audible range into six weighted perceptual
// bands with logarithmic bar spacing inside each band, producing
// exactly barCount ranges
func LogMusicRange(barCount int) Strategy {
	return Strategy{kind: kindLogMusicRange, barCount: barCount}
}

// GammaCorrected warps bin frequencies by (f/nyquist)^(1/gamma) and
// groups bins that land on the same warped bar index. The number of
// ranges produced is at most barCount.
func GammaCorrected(barCount int, gamma float64) Strategy {
	return Strategy{kind: kindGammaCorrected, barCount: barCount, gamma: gamma}
}

// Validate reports configuration errors. Invalid strategies must be
// rejected at construction, before any frame is processed.
func (s Strategy) Validate() error {
	switch s.kind {
	case kindNoGrouping:
		return nil
	case kindLogMusicRange:
		if s.barCount <= 0 {
			return fmt.Errorf("bar count must be positive, got %d", s.barCount)
		}
		return nil
	case kindGammaCorrected:
		if s.barCount <= 0 {
			return fmt.Errorf("bar count must be positive, got %d", s.barCount)
		}
		if s.gamma <= 0 {
			return fmt.Errorf("gamma must be positive, got %g", s.gamma)
		}
		return nil
	default:
		return fmt.Errorf("unknown grouping strategy %d", s.kind)
	}
}

// IsGrouped reports whether the strategy builds ranges at all
func (s Strategy) IsGrouped() bool {
	return s.kind != kindNoGrouping
}

// DefaultReduction returns the reduction the strategy pairs with when
// the caller doesn't choose one. Gamma correction averages its wide
// upper ranges; the other strategies track peaks.
func (s Strategy) DefaultReduction() Reduction {
	if s.kind == kindGammaCorrected {
		return Mean
	}
	return Max
}

// BarCount returns the number of bars the strategy will emit for a
// spectrum of fftSize/2 bins
func (s Strategy) BarCount(fftSize int) int {
	if s.kind == kindNoGrouping {
		return fftSize / 2
	}
	return s.barCount
}

// Ranges builds the RangeSet for the given signal configuration. For
// NoGrouping it returns nil: no ranges are needed.
func (s Strategy) Ranges(sampleRate, fftSize int) (RangeSet, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.kind {
	case kindNoGrouping:
		return nil, nil
	case kindLogMusicRange:
		return logMusicRanges(s.barCount, sampleRate, fftSize)
	case kindGammaCorrected:
		return gammaCorrectedRanges(s.barCount, sampleRate, fftSize, s.gamma), nil
	default:
		return nil, fmt.Errorf("unknown grouping strategy %d", s.kind)
	}
}

// musicBand is one perceptual frequency band with its share of the
// total bar count
type musicBand struct {
	name   string
	lowHz  float64
	highHz float64
	weight float64
}

var musicBands = []musicBand{
	{"sub-bass", 0, 60, 0.08},
	{"bass", 60, 250, 0.16},
	{"low-mids", 250, 500, 0.16},
	{"mids", 500, 2000, 0.26},
	{"upper-mids", 2000, 6000, 0.22},
	{"highs", 6000, 20000, 0.12},
}

// logMusicRanges distributes barCount bars over the six music bands by
// weight, then spaces each band's bars logarithmically between its
// frequency edges
func logMusicRanges(barCount, sampleRate, fftSize int) (RangeSet, error) {
	weightSum := 0.0
	for _, band := range musicBands {
		weightSum += band.weight
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		return nil, fmt.Errorf("band weights sum to %g, expected 1.0", weightSum)
	}

	freqPerBin := float64(sampleRate) / float64(fftSize)

	barsPerBand := make([]int, len(musicBands))
	total := 0
	for i, band := range musicBands {
		barsPerBand[i] = int(math.Floor(float64(barCount) * band.weight))
		total += barsPerBand[i]
	}

	// Flooring can leave a shortfall of up to len(musicBands)-1 bars;
	// hand them to the earliest bands one at a time.
	for i := 0; total < barCount; i++ {
		barsPerBand[i%len(musicBands)]++
		total++
	}

	ranges := make(RangeSet, 0, barCount)
	lastEnd := 0

	for i, band := range musicBands {
		bars := barsPerBand[i]
		if bars == 0 {
			continue
		}

		// The sub-bass band starts at 0 Hz; floor it at 1 Hz so the
		// log10 interpolation stays finite.
		lowHz := band.lowHz
		if lowHz < 1.0 {
			lowHz = 1.0
		}

		logLow := math.Log10(lowHz)
		logHigh := math.Log10(band.highHz)
		step := (logHigh - logLow) / float64(bars)

		for j := 0; j < bars; j++ {
			fLow := math.Pow(10, logLow+float64(j)*step)
			fHigh := math.Pow(10, logLow+float64(j+1)*step)

			computedStart := int(math.Round(fLow/freqPerBin - 1.0))
			computedEnd := int(math.Round(fHigh/freqPerBin - 1.0))

			start := computedStart
			if start < lastEnd {
				start = lastEnd
			}
			end := computedEnd
			if end < start+1 {
				end = start + 1
			}

			ranges = append(ranges, BarRange{Start: start, End: end})
			lastEnd = end
		}
	}

	return ranges, nil
}

// gammaCorrectedRanges assigns each bin a bar index from its
// gamma-warped normalized frequency and emits a range boundary at
// every bar index change
func gammaCorrectedRanges(barCount, sampleRate, fftSize int, gamma float64) RangeSet {
	nyquist := float64(sampleRate) / 2.0
	freqPerBin := float64(sampleRate) / float64(fftSize)
	spectrumLen := fftSize / 2

	var ranges RangeSet
	start := 0
	prevBar := 0

	for i := 0; i < spectrumLen; i++ {
		freq := float64(i) * freqPerBin
		normFreq := freq / nyquist

		bar := int(math.Pow(normFreq, 1.0/gamma) * float64(barCount))

		if bar != prevBar && i > start {
			ranges = append(ranges, BarRange{Start: start, End: i})
			start = i
			prevBar = bar
		}
	}

	// Tail bins past the last boundary still belong to a bar.
	if start < spectrumLen {
		ranges = append(ranges, BarRange{Start: start, End: spectrumLen})
	}

	return ranges
}
