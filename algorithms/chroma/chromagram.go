package chroma

import (
	"sort"
	"strings"
)

// NumClasses is the number of Western pitch classes
const NumClasses = 12

var pitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ClassName returns the name of a pitch class (0=C ... 11=B)
func ClassName(class int) string {
	return pitchClassNames[((class%NumClasses)+NumClasses)%NumClasses]
}

// Fold collapses a pitch spectrum into the twelve pitch classes by
// summing every pitch p into class p mod 12
func Fold(pitches [NumPitches]float64) [NumClasses]float64 {
	var chroma [NumClasses]float64
	for p, v := range pitches {
		chroma[p%NumClasses] += v
	}
	return chroma
}

// Normalize scales the chromagram in place so its entries sum to 1.
// An all-zero chromagram is left untouched.
func Normalize(chroma *[NumClasses]float64) {
	total := 0.0
	for _, v := range chroma {
		total += v
	}
	if total == 0 {
		return
	}
	for i := range chroma {
		chroma[i] /= total
	}
}

// PitchClass is one detected pitch class with its share of the
// chromagram's energy
type PitchClass struct {
	Class  int
	Name   string
	Energy float64
}

// TopN returns the n strongest pitch classes in descending energy
// order, skipping classes with no energy at all
func TopN(chroma [NumClasses]float64, n int) []PitchClass {
	classes := make([]PitchClass, 0, NumClasses)
	for c, e := range chroma {
		if e > 0 {
			classes = append(classes, PitchClass{Class: c, Name: pitchClassNames[c], Energy: e})
		}
	}

	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Energy > classes[j].Energy
	})

	if n < len(classes) {
		classes = classes[:n]
	}
	return classes
}

// Label formats the top-n pitch class names as a short display string,
// e.g. "A C# E"
func Label(chroma [NumClasses]float64, n int) string {
	top := TopN(chroma, n)
	names := make([]string, len(top))
	for i, pc := range top {
		names[i] = pc.Name
	}
	return strings.Join(names, " ")
}
