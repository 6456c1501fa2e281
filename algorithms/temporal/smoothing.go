package temporal

import (
	"fmt"
)

type smoothingKind int

const (
	kindRiseFall smoothingKind = iota
	kindNone
)

// Smoothing selects the temporal filtering applied to bar values
// between frames. The variant set is closed; construct values with
// RiseFall or None.
type Smoothing struct {
	kind smoothingKind
	rise float64
	fall float64
}

// RiseFall is VU-meter style ballistics: when a bar grows the old
// value is kept with weight rise, when it shrinks with weight fall.
// rise < fall gives the usual fast attack and slow release.
func RiseFall(rise, fall float64) Smoothing {
	return Smoothing{kind: kindRiseFall, rise: rise, fall: fall}
}

// None overwrites the stored bars with the current frame every time
func None() Smoothing {
	return Smoothing{kind: kindNone}
}

// Validate reports coefficient configuration errors
func (s Smoothing) Validate() error {
	if s.kind == kindNone {
		return nil
	}
	if s.rise < 0 || s.rise > 1 {
		return fmt.Errorf("rise coefficient must be in [0, 1], got %g", s.rise)
	}
	if s.fall < 0 || s.fall > 1 {
		return fmt.Errorf("fall coefficient must be in [0, 1], got %g", s.fall)
	}
	return nil
}

// Smoother carries a persistent bar vector across frames and blends
// each new frame into it. Not safe for concurrent use.
type Smoother struct {
	cfg    Smoothing
	state  []float64
	primed bool
}

// NewSmoother creates a smoother for bar vectors of the given size
func NewSmoother(cfg Smoothing, size int) (*Smoother, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("smoother size must be positive, got %d", size)
	}
	return &Smoother{
		cfg:   cfg,
		state: make([]float64, size),
	}, nil
}

// Update blends the current frame into the stored bars in place and
// returns the stored slice. The returned slice is owned by the
// smoother and only valid until the next call.
//
// The first ever frame is copied directly instead of blended, so the
// display doesn't ramp up from zero.
func (sm *Smoother) Update(current []float64) ([]float64, error) {
	if len(current) != len(sm.state) {
		return nil, fmt.Errorf("frame length (%d) doesn't match smoother size (%d)", len(current), len(sm.state))
	}

	if !sm.primed || sm.cfg.kind == kindNone {
		copy(sm.state, current)
		sm.primed = true
		return sm.state, nil
	}

	for i, val := range current {
		if val > sm.state[i] {
			sm.state[i] = sm.state[i]*sm.cfg.rise + val*(1.0-sm.cfg.rise)
		} else {
			sm.state[i] = sm.state[i]*sm.cfg.fall + val*(1.0-sm.cfg.fall)
		}
	}

	return sm.state, nil
}

// State returns the stored bar vector without updating it
func (sm *Smoother) State() []float64 {
	return sm.state
}

// Reset clears the stored bars and re-arms the first-frame copy
func (sm *Smoother) Reset() {
	for i := range sm.state {
		sm.state[i] = 0
	}
	sm.primed = false
}
