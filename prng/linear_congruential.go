package prng

import (
	"encoding/json"
	"fmt"
)

// LinearCongruentialState is the exportable state of a LinearCongruential
// generator.
type LinearCongruentialState struct {
	Value int64 `json:"val"`
	A     int64 `json:"a"`
	C     int64 `json:"c"`
	M     int64 `json:"m"`
}

// LinearCongruential computes x' = (a*x + c) mod m. The modulo is floored,
// so results carry the sign of m.
//
// Repetition is detected on the value being advanced from, before the
// recurrence runs: the value that closes the cycle is still emitted, and the
// sequence ends on the following call.
type LinearCongruential struct {
	state LinearCongruentialState
	seen  map[int64]struct{}
	done  bool
}

// NewLinearCongruential creates a generator. Apart from rejecting a zero
// modulus, the constants are taken as given.
func NewLinearCongruential(seed, a, c, m int64) (*LinearCongruential, error) {
	if m == 0 {
		return nil, fmt.Errorf("%w: modulus must be non-zero", ErrInvalidParameter)
	}

	return &LinearCongruential{
		state: LinearCongruentialState{Value: seed, A: a, C: c, M: m},
		seen:  make(map[int64]struct{}),
	}, nil
}

// Kind reports KindLinearCongruential.
func (g *LinearCongruential) Kind() Kind {
	return KindLinearCongruential
}

func (g *LinearCongruential) Next() (Sample, error) {
	if g.done {
		return Sample{}, ErrExhausted
	}

	s := &g.state
	if _, ok := g.seen[s.Value]; ok {
		g.done = true
		return Sample{}, ErrExhausted
	}
	if s.M == 0 {
		return Sample{}, fmt.Errorf("%w: modulus is zero", ErrMalformedState)
	}

	g.seen[s.Value] = struct{}{}
	s.Value = affineMod(s.A, s.Value, s.C, s.M)
	return Scalar(s.Value), nil
}

// State returns the most recently computed value together with a, c and m.
func (g *LinearCongruential) State() LinearCongruentialState {
	return g.state
}

// SetState replaces the value and constants and forgets every value seen so
// far. Unlike MiddleSquare, cycle detection starts over from the restored
// value.
func (g *LinearCongruential) SetState(s LinearCongruentialState) {
	g.state = s
	g.seen = make(map[int64]struct{})
	g.done = false
}

// MarshalState exports the current value and parameters as JSON.
func (g *LinearCongruential) MarshalState() ([]byte, error) {
	return json.Marshal(g.state)
}

// UnmarshalState imports a state document; "val", "a", "c" and "m" are all
// required.
func (g *LinearCongruential) UnmarshalState(data []byte) error {
	doc, err := parseState(data)
	if err != nil {
		return err
	}
	if err = doc.require("a", "c", "m", "val"); err != nil {
		return err
	}

	var s LinearCongruentialState
	for _, f := range []struct {
		key string
		dst *int64
	}{
		{"a", &s.A},
		{"c", &s.C},
		{"m", &s.M},
		{"val", &s.Value},
	} {
		if *f.dst, _, err = doc.int64(f.key); err != nil {
			return err
		}
	}

	g.SetState(s)
	return nil
}
