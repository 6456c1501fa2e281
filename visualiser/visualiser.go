// Package visualiser wires the analysis pipeline together: grouping a
// power spectrum into bars, smoothing them over time, normalizing for
// display and deriving a display colour.
package visualiser

import (
	"fmt"

	"github.com/willbowden/audio-visualiser/algorithms/chroma"
	"github.com/willbowden/audio-visualiser/algorithms/common"
	"github.com/willbowden/audio-visualiser/algorithms/grouping"
	"github.com/willbowden/audio-visualiser/algorithms/harmonic"
	"github.com/willbowden/audio-visualiser/algorithms/temporal"
	"github.com/willbowden/audio-visualiser/colour"
	"github.com/willbowden/audio-visualiser/logging"
)

// normEpsilon floors the per-frame maximum during normalization so
// silence divides by a small constant instead of zero
const normEpsilon = 1e-6

// defaultHPSDownsamples is the number of harmonic multiples folded
// into the dominant-frequency estimate
const defaultHPSDownsamples = 3

// Builder assembles a Visualiser from its strategy variants. The zero
// configuration is 24 log-spaced music-range bars with
// fast-attack/slow-release smoothing and a static white colour; unless
// WithReduction is called, the reduction follows the grouping
// strategy's default pairing.
type Builder struct {
	grouping     grouping.Strategy
	reduction    grouping.Reduction
	reductionSet bool
	smoothing    temporal.Smoothing
	colour       colour.Config
	downsamples  int
}

// NewBuilder creates a builder with the default configuration
func NewBuilder() *Builder {
	return &Builder{
		grouping:    grouping.LogMusicRange(24),
		smoothing:   temporal.RiseFall(0.5, 0.9),
		colour:      colour.StaticColour(colour.White),
		downsamples: defaultHPSDownsamples,
	}
}

// WithGrouping sets the bar grouping strategy
func (b *Builder) WithGrouping(g grouping.Strategy) *Builder {
	b.grouping = g
	return b
}

// WithReduction sets how each bar range collapses to one value,
// overriding the grouping strategy's default pairing
func (b *Builder) WithReduction(r grouping.Reduction) *Builder {
	b.reduction = r
	b.reductionSet = true
	return b
}

// WithSmoothing sets the temporal smoothing applied to the bars
func (b *Builder) WithSmoothing(s temporal.Smoothing) *Builder {
	b.smoothing = s
	return b
}

// WithColour sets the colour mapping variant
func (b *Builder) WithColour(c colour.Config) *Builder {
	b.colour = c
	return b
}

// WithHPSDownsamples sets the harmonic count used by the
// dominant-frequency estimate
func (b *Builder) WithHPSDownsamples(d int) *Builder {
	b.downsamples = d
	return b
}

// Build validates the configuration, precomputes the bar ranges and
// returns a ready Visualiser. Misconfiguration fails here, never
// during frame processing.
func (b *Builder) Build(sampleRate, fftSize int) (*Visualiser, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if fftSize <= 0 || fftSize%2 != 0 {
		return nil, fmt.Errorf("fft size must be positive and even, got %d", fftSize)
	}
	reduction := b.reduction
	if !b.reductionSet {
		reduction = b.grouping.DefaultReduction()
	}
	if err := reduction.Validate(); err != nil {
		return nil, err
	}

	ranges, err := b.grouping.Ranges(sampleRate, fftSize)
	if err != nil {
		return nil, err
	}
	// A Nyquist below the grouping's top band must fail here, not on
	// every subsequent frame.
	if err := ranges.Validate(fftSize / 2); err != nil {
		return nil, err
	}

	barCount := fftSize / 2
	if b.grouping.IsGrouped() {
		barCount = len(ranges)
	}

	smoother, err := temporal.NewSmoother(b.smoothing, barCount)
	if err != nil {
		return nil, err
	}

	mapper, err := colour.NewMapper(b.colour, sampleRate)
	if err != nil {
		return nil, err
	}

	pitch, err := chroma.NewPitchMapper(sampleRate)
	if err != nil {
		return nil, err
	}

	hps, err := harmonic.NewHarmonicProduct(sampleRate, b.downsamples)
	if err != nil {
		return nil, err
	}

	return &Visualiser{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		grouping:   b.grouping,
		reduction:  reduction,
		ranges:     ranges,
		raw:        make([]float64, barCount),
		normalized: make([]float64, barCount),
		smoother:   smoother,
		colour:     mapper,
		pitch:      pitch,
		hps:        hps,
		prevColour: colour.White,
		log:        logging.WithFields(logging.Fields{"component": "visualiser"}),
	}, nil
}

// Visualiser holds all persistent pipeline state: the precomputed bar
// ranges, the smoother's bar vector and the colour mapper's hue
// accumulator. Update must be called from a single goroutine, one call
// per display frame.
type Visualiser struct {
	sampleRate int
	fftSize    int

	grouping  grouping.Strategy
	reduction grouping.Reduction
	ranges    grouping.RangeSet

	raw        []float64
	normalized []float64
	smoother   *temporal.Smoother

	colour     *colour.Mapper
	prevColour colour.RGBA

	pitch *chroma.PitchMapper
	hps   *harmonic.HarmonicProduct

	log logging.Logger
}

// Update advances the pipeline by one frame: group the spectrum into
// raw bars, smooth them in place, normalize by the frame maximum and
// derive a colour.
//
// On a transient error (a spectrum whose length doesn't match the
// built ranges) the previous frame's bars and colour are returned
// alongside the error so the caller can reuse them or render nothing.
func (v *Visualiser) Update(spectrum []float64) ([]float64, colour.RGBA, error) {
	if v.grouping.IsGrouped() {
		if err := v.reduction.Apply(spectrum, v.ranges, v.raw); err != nil {
			v.log.Debug("skipping frame", logging.Fields{"reason": err.Error()})
			return v.normalized, v.prevColour, err
		}
	} else {
		if len(spectrum) != len(v.raw) {
			err := fmt.Errorf("%w: got %d bins, expected %d",
				grouping.ErrSpectrumMismatch, len(spectrum), len(v.raw))
			v.log.Debug("skipping frame", logging.Fields{"reason": err.Error()})
			return v.normalized, v.prevColour, err
		}
		copy(v.raw, spectrum)
	}

	smoothed, err := v.smoother.Update(v.raw)
	if err != nil {
		return v.normalized, v.prevColour, err
	}

	maxVal := common.Max(smoothed)
	if maxVal < normEpsilon {
		maxVal = normEpsilon
	}
	for i, val := range smoothed {
		v.normalized[i] = common.Clamp01(val / maxVal)
	}

	v.prevColour = v.colour.Update(spectrum)

	return v.normalized, v.prevColour, nil
}

// BarCount returns the number of bars the visualiser emits
func (v *Visualiser) BarCount() int {
	return len(v.raw)
}

// Ranges returns the precomputed bar ranges (nil for NoGrouping)
func (v *Visualiser) Ranges() grouping.RangeSet {
	return v.ranges
}

// Bars returns the most recent normalized bar vector without
// advancing the pipeline
func (v *Visualiser) Bars() []float64 {
	return v.normalized
}

// PitchSpectrum folds the spectrum into 128 MIDI pitch energies for
// the pitch display mode
func (v *Visualiser) PitchSpectrum(spectrum []float64) [chroma.NumPitches]float64 {
	return v.pitch.Map(spectrum)
}

// Chromagram folds the spectrum into the twelve pitch classes,
// normalized to sum to 1 when any energy is present
func (v *Visualiser) Chromagram(spectrum []float64) [chroma.NumClasses]float64 {
	ch := chroma.Fold(v.pitch.Map(spectrum))
	chroma.Normalize(&ch)
	return ch
}

// ChromaLabel names the n dominant pitch classes of the colour
// mapper's smoothed chromagram. Only the ChromagramHue colour variant
// accumulates one; with a static colour the label is empty.
func (v *Visualiser) ChromaLabel(n int) string {
	return v.colour.Label(n)
}

// DominantFrequency estimates the strongest fundamental in the
// spectrum via the harmonic product spectrum, in Hz
func (v *Visualiser) DominantFrequency(spectrum []float64) float64 {
	return v.hps.DominantFrequency(spectrum)
}
