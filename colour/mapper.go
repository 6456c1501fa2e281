// Package colour derives a display colour from the harmonic content of
// a spectrum. Hue is averaged circularly: chroma-weighted unit vectors
// are summed and smoothed component-wise, and only the final smoothed
// vector is converted back to an angle. Smoothing the angle itself
// would break at the 0°/360° wraparound.
package colour

import (
	"fmt"
	"math"

	"github.com/willbowden/audio-visualiser/algorithms/chroma"
)

// RGBA is a colour with components in [0, 1]
type RGBA struct {
	R, G, B, A float64
}

// White is the default bar colour
var White = RGBA{1, 1, 1, 1}

// degreesPerClass spaces the twelve pitch classes evenly around the
// colour wheel
const degreesPerClass = 360.0 / float64(chroma.NumClasses)

// zeroMagnitude is the squared vector magnitude below which the hue is
// considered undefined and falls back to 0°
const zeroMagnitude = 1e-12

// HueVector is a 2-D accumulator holding a smoothed circular mean of
// hue angles
type HueVector struct {
	X, Y float64
}

// HueDegrees returns the angle of the vector in [0, 360). A degenerate
// near-zero vector (silence, or chroma energy split between opposing
// hues) maps to 0°.
func (v HueVector) HueDegrees() float64 {
	if v.X*v.X+v.Y*v.Y < zeroMagnitude {
		return 0.0
	}
	deg := math.Atan2(v.Y, v.X) * 180.0 / math.Pi
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

type mapperKind int

const (
	kindStatic mapperKind = iota
	kindChromagramHue
)

// Config selects the colour mapping variant
type Config struct {
	kind   mapperKind
	static RGBA
	factor float64
}

// StaticColour always displays the given colour
func StaticColour(c RGBA) Config {
	return Config{kind: kindStatic, static: c}
}

// ChromagramHue derives the hue from the pitch-class content of each
// frame, smoothed over time with the given exponential factor (the
// weight kept from the previous frame, typically around 0.9)
func ChromagramHue(factor float64) Config {
	return Config{kind: kindChromagramHue, factor: factor}
}

// Validate reports configuration errors
func (c Config) Validate() error {
	if c.kind == kindChromagramHue && (c.factor < 0 || c.factor >= 1) {
		return fmt.Errorf("hue smoothing factor must be in [0, 1), got %g", c.factor)
	}
	return nil
}

// Mapper converts spectra to display colours. For the ChromagramHue
// variant it owns the persistent hue vector and smoothed chromagram,
// so a Mapper must not be shared between goroutines.
type Mapper struct {
	cfg      Config
	pitch    *chroma.PitchMapper
	hue      HueVector
	smoothed [chroma.NumClasses]float64
	primed   bool
}

// NewMapper creates a colour mapper. The sample rate is needed to fold
// spectra into pitch classes for the ChromagramHue variant.
func NewMapper(cfg Config, sampleRate int) (*Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mapper{cfg: cfg}

	if cfg.kind == kindChromagramHue {
		pm, err := chroma.NewPitchMapper(sampleRate)
		if err != nil {
			return nil, err
		}
		m.pitch = pm
	}

	return m, nil
}

// Update advances the mapper by one frame and returns the colour to
// display. The Static variant ignores the spectrum entirely.
func (m *Mapper) Update(spectrum []float64) RGBA {
	if m.cfg.kind == kindStatic {
		return m.cfg.static
	}

	pitches := m.pitch.Map(spectrum)
	ch := chroma.Fold(pitches)
	chroma.Normalize(&ch)

	var vx, vy float64
	for i, energy := range ch {
		angle := float64(i) * degreesPerClass * math.Pi / 180.0
		vx += energy * math.Cos(angle)
		vy += energy * math.Sin(angle)
	}

	if !m.primed {
		m.hue = HueVector{X: vx, Y: vy}
		m.smoothed = ch
		m.primed = true
	} else {
		f := m.cfg.factor
		m.hue.X = m.hue.X*f + vx*(1.0-f)
		m.hue.Y = m.hue.Y*f + vy*(1.0-f)
		for i := range m.smoothed {
			m.smoothed[i] = m.smoothed[i]*f + ch[i]*(1.0-f)
		}
	}

	return HSVToRGB(m.hue.HueDegrees(), 1.0, 1.0)
}

// Chroma returns the smoothed chromagram behind the current colour.
// Only meaningful for the ChromagramHue variant.
func (m *Mapper) Chroma() [chroma.NumClasses]float64 {
	return m.smoothed
}

// Label returns the names of the n strongest pitch classes in the
// smoothed chromagram, e.g. "A C# E"
func (m *Mapper) Label(n int) string {
	return chroma.Label(m.smoothed, n)
}

// HSVToRGB converts a hue in degrees with saturation and value in
// [0, 1] to an RGBA colour with alpha 1
func HSVToRGB(hueDegrees, s, v float64) RGBA {
	h := math.Mod(hueDegrees, 360.0)
	if h < 0 {
		h += 360.0
	}
	h /= 60.0

	i := int(h)
	f := h - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return RGBA{R: r, G: g, B: b, A: 1.0}
}
