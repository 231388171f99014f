package prng

import (
	"encoding/json"
	"fmt"
	"slices"
)

// AcornState is the exportable state of an Acorn generator.
type AcornState struct {
	Values []int64 `json:"vals"`
	M      int64   `json:"M"`
}

// Acorn is Wikramaratna's additive congruential random number generator.
// Each step rebuilds the whole vector from the previous one as running sums:
//
//	new[0] = old[0]
//	new[i] = (new[i-1] + old[i]) mod M
//
// Every call to Next emits the full new vector. The sequence ends, without
// touching the state, when the new vector equals the initial seed.
type Acorn struct {
	state   AcornState
	initial []int64
	done    bool
}

// NewAcorn creates a generator from a non-empty seed whose first element is
// below the modulus. The seed slice is copied.
func NewAcorn(seed []int64, m int64) (*Acorn, error) {
	if seed == nil {
		return nil, fmt.Errorf("%w: seed must be a list of integers", ErrTypeMismatch)
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("%w: seed must not be empty", ErrInvalidParameter)
	}
	if m == 0 {
		return nil, fmt.Errorf("%w: modulus must be non-zero", ErrInvalidParameter)
	}
	if seed[0] >= m {
		return nil, fmt.Errorf("%w: first seed element %d must be less than M=%d", ErrInvalidParameter, seed[0], m)
	}

	return &Acorn{
		state:   AcornState{Values: slices.Clone(seed), M: m},
		initial: slices.Clone(seed),
	}, nil
}

// Kind reports KindAcorn.
func (g *Acorn) Kind() Kind {
	return KindAcorn
}

func (g *Acorn) Next() (Sample, error) {
	if g.done {
		return Sample{}, ErrExhausted
	}

	old := g.state.Values
	next := make([]int64, len(old))
	if len(old) > 0 {
		next[0] = old[0]
	}
	for i := 1; i < len(old); i++ {
		next[i] = addMod(next[i-1], old[i], g.state.M)
	}

	if slices.Equal(next, g.initial) {
		g.done = true
		return Sample{}, ErrExhausted
	}

	g.state.Values = next
	return Vector(slices.Clone(next)), nil
}

// State returns an independent copy of the current vector and modulus.
func (g *Acorn) State() AcornState {
	return AcornState{Values: slices.Clone(g.state.Values), M: g.state.M}
}

// SetState replaces the vector and modulus. The vector must be non-empty
// and the modulus non-zero.
func (g *Acorn) SetState(s AcornState) error {
	if s.Values == nil {
		return fmt.Errorf("%w: missing values", ErrMalformedState)
	}
	if len(s.Values) == 0 {
		return fmt.Errorf("%w: values must not be empty", ErrMalformedState)
	}
	if s.M == 0 {
		return fmt.Errorf("%w: missing modulus", ErrMalformedState)
	}

	g.state = AcornState{Values: slices.Clone(s.Values), M: s.M}
	g.done = false
	return nil
}

// MarshalState exports the current vector and modulus as JSON.
func (g *Acorn) MarshalState() ([]byte, error) {
	return json.Marshal(g.state)
}

// UnmarshalState imports a state document. Both "vals" and "M" are required.
func (g *Acorn) UnmarshalState(data []byte) error {
	doc, err := parseState(data)
	if err != nil {
		return err
	}
	if err = doc.require("vals", "M"); err != nil {
		return err
	}

	var s AcornState
	if s.Values, _, err = doc.ints("vals"); err != nil {
		return err
	}
	if s.M, _, err = doc.int64("M"); err != nil {
		return err
	}

	return g.SetState(s)
}
