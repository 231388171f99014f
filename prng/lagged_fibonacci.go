package prng

import (
	"encoding/json"
	"fmt"
	"slices"
)

// LaggedFibonacciState is the exportable state of a LaggedFibonacci
// generator. Window holds the whole lag window, as long as the initial
// seed.
type LaggedFibonacciState struct {
	Window []int64 `json:"val"`
	J      int     `json:"j"`
	K      int     `json:"k"`
	M      int64   `json:"m"`
}

// LaggedFibonacci is an additive lagged Fibonacci generator:
//
//	x = (w[len-k] + w[len-j]) mod m
//
// x is appended to the window and the oldest entry dropped, so the window
// keeps the seed's length. The sequence ends when the window equals the
// initial seed again.
type LaggedFibonacci struct {
	state   LaggedFibonacciState
	initial []int64
	done    bool
}

// NewLaggedFibonacci creates a generator. It requires 0 < j < k <= len(seed)
// and a non-zero modulus. The seed slice is copied.
func NewLaggedFibonacci(seed []int64, j, k int, m int64) (*LaggedFibonacci, error) {
	if seed == nil {
		return nil, fmt.Errorf("%w: seed must be a list of integers", ErrTypeMismatch)
	}
	if m == 0 {
		return nil, fmt.Errorf("%w: modulus must be non-zero", ErrInvalidParameter)
	}
	if !(0 < j && j < k && k <= len(seed)) {
		return nil, fmt.Errorf("%w: need 0 < j < k <= len(seed), got j=%d k=%d len(seed)=%d",
			ErrInvalidParameter, j, k, len(seed))
	}

	return &LaggedFibonacci{
		state: LaggedFibonacciState{
			Window: slices.Clone(seed),
			J:      j,
			K:      k,
			M:      m,
		},
		initial: slices.Clone(seed),
	}, nil
}

// Kind reports KindLaggedFibonacci.
func (g *LaggedFibonacci) Kind() Kind {
	return KindLaggedFibonacci
}

func (g *LaggedFibonacci) Next() (Sample, error) {
	if g.done {
		return Sample{}, ErrExhausted
	}

	s := &g.state
	n := len(s.Window)
	if s.J <= 0 || s.K <= 0 || s.J > n || s.K > n || s.M == 0 {
		return Sample{}, fmt.Errorf("%w: j=%d k=%d m=%d cannot drive a window of %d",
			ErrMalformedState, s.J, s.K, s.M, n)
	}

	x := addMod(s.Window[n-s.K], s.Window[n-s.J], s.M)

	copy(s.Window, s.Window[1:])
	s.Window[n-1] = x

	if slices.Equal(s.Window, g.initial) {
		g.done = true
		return Sample{}, ErrExhausted
	}

	return Scalar(x), nil
}

// State returns an independent copy of the current state.
func (g *LaggedFibonacci) State() LaggedFibonacciState {
	s := g.state
	s.Window = slices.Clone(s.Window)
	return s
}

// SetState replaces the state without validating it. A state that cannot
// drive the recurrence is reported by the next call to Next. The initial
// seed used for cycle detection is not affected.
func (g *LaggedFibonacci) SetState(s LaggedFibonacciState) {
	s.Window = slices.Clone(s.Window)
	g.state = s
	g.done = false
}

// MarshalState exports the current window, lags and modulus as JSON.
func (g *LaggedFibonacci) MarshalState() ([]byte, error) {
	return json.Marshal(g.state)
}

// UnmarshalState accepts any JSON object. Keys that are absent take their
// zero value; only the types of keys that are present are checked.
func (g *LaggedFibonacci) UnmarshalState(data []byte) error {
	doc, err := parseState(data)
	if err != nil {
		return err
	}

	var s LaggedFibonacciState
	if s.Window, _, err = doc.ints("val"); err != nil {
		return err
	}
	if s.J, _, err = doc.int("j"); err != nil {
		return err
	}
	if s.K, _, err = doc.int("k"); err != nil {
		return err
	}
	if s.M, _, err = doc.int64("m"); err != nil {
		return err
	}

	g.SetState(s)
	return nil
}
