package grouping

import (
	"fmt"

	"github.com/willbowden/audio-visualiser/algorithms/common"
)

// Reduction selects how the bins of one range collapse into a single
// bar value
type Reduction int

const (
	// Mean takes log2(mean(bins) + 1)
	Mean Reduction = iota
	// Max takes log2(max(bins) + 1)
	Max
)

func (r Reduction) String() string {
	switch r {
	case Mean:
		return "mean"
	case Max:
		return "max"
	default:
		return "unknown"
	}
}

// Validate reports whether the reduction is a known variant
func (r Reduction) Validate() error {
	if r != Mean && r != Max {
		return fmt.Errorf("unknown reduction %d", int(r))
	}
	return nil
}

// Apply reduces each range of the spectrum into out, which must have
// exactly one slot per range. The spectrum is bounds-checked against
// the RangeSet first so a stale configuration surfaces as
// ErrSpectrumMismatch instead of an out-of-range read.
func (r Reduction) Apply(spectrum []float64, ranges RangeSet, out []float64) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if len(out) != len(ranges) {
		return fmt.Errorf("output length (%d) doesn't match range count (%d)", len(out), len(ranges))
	}
	if err := ranges.Validate(len(spectrum)); err != nil {
		return err
	}

	for i, br := range ranges {
		slice := spectrum[br.Start:br.End]
		switch r {
		case Mean:
			out[i] = common.Log2Scale(common.Mean(slice))
		case Max:
			out[i] = common.Log2Scale(common.Max(slice))
		}
	}

	return nil
}
