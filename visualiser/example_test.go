package visualiser_test

import (
	"fmt"
	"math"

	"github.com/willbowden/audio-visualiser/algorithms/filters"
	"github.com/willbowden/audio-visualiser/algorithms/grouping"
	"github.com/willbowden/audio-visualiser/algorithms/spectral"
	"github.com/willbowden/audio-visualiser/algorithms/temporal"
	"github.com/willbowden/audio-visualiser/algorithms/windowing"
	"github.com/willbowden/audio-visualiser/capture"
	"github.com/willbowden/audio-visualiser/colour"
	"github.com/willbowden/audio-visualiser/visualiser"
)

// Example shows one full analysis frame: samples arrive from a capture
// goroutine through the shared ring buffer, the render loop takes a
// snapshot, filters and transforms it, and hands the spectrum to the
// visualiser.
func Example() {
	const sampleRate = 44100
	const fftSize = 2048

	buffer, err := capture.NewSampleBuffer(4 * fftSize)
	if err != nil {
		panic(err)
	}

	// Normally fed by the audio capture goroutine.
	samples := make([]float64, fftSize)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 440 * float64(i) / sampleRate)
	}
	buffer.Append(samples)

	dc := filters.NewDCRemoval()
	window := windowing.NewHann(fftSize, false)
	transform, err := spectral.NewTransform(fftSize, window.Coefficients())
	if err != nil {
		panic(err)
	}

	vis, err := visualiser.NewBuilder().
		WithGrouping(grouping.LogMusicRange(24)).
		WithReduction(grouping.Max).
		WithSmoothing(temporal.RiseFall(0.5, 0.9)).
		WithColour(colour.ChromagramHue(0.9)).
		Build(sampleRate, fftSize)
	if err != nil {
		panic(err)
	}

	block := buffer.Snapshot(fftSize)
	if block == nil {
		// Not enough samples captured yet; skip this frame.
		return
	}
	dc.ProcessInPlace(block)

	spectrum, err := transform.Process(block)
	if err != nil {
		panic(err)
	}

	bars, _, err := vis.Update(spectrum)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(bars))
	// Output: 24
}
