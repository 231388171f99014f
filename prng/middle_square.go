package prng

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// maxMiddleSquareDigits keeps every extracted value inside a uint64.
const maxMiddleSquareDigits = 18

// MiddleSquareState is the exportable state of a MiddleSquare generator.
type MiddleSquareState struct {
	Value  uint64 `json:"val"`
	Digits int    `json:"ndigits"`
}

// MiddleSquare is von Neumann's middle-square generator. Each step squares
// the current value, zero-pads the decimal square to twice the seed's digit
// count and keeps the middle digits.
type MiddleSquare struct {
	state MiddleSquareState
	seen  map[uint64]struct{}
	done  bool
}

// NewMiddleSquare creates a generator from a seed with an even number of
// decimal digits.
func NewMiddleSquare(seed uint64) (*MiddleSquare, error) {
	digits := len(strconv.FormatUint(seed, 10))

	if digits%2 != 0 {
		return nil, fmt.Errorf("%w: seed %d must have an even number of digits", ErrInvalidParameter, seed)
	}
	if digits > maxMiddleSquareDigits {
		return nil, fmt.Errorf("%w: seed %d has more than %d digits", ErrInvalidParameter, seed, maxMiddleSquareDigits)
	}

	return &MiddleSquare{
		state: MiddleSquareState{Value: seed, Digits: digits},
		seen:  make(map[uint64]struct{}),
	}, nil
}

// Kind reports KindMiddleSquare.
func (g *MiddleSquare) Kind() Kind {
	return KindMiddleSquare
}

// Next computes the next middle-square value. The sequence ends as soon as a
// value repeats any earlier output; the repeated value is still kept as the
// current state.
func (g *MiddleSquare) Next() (Sample, error) {
	if g.done {
		return Sample{}, ErrExhausted
	}

	digits := g.state.Digits
	x := new(big.Int).SetUint64(g.state.Value)
	sq := x.Mul(x, x).String()

	// Pad the string, not the number: the middle may start with zeros.
	if pad := 2*digits - len(sq); pad > 0 {
		sq = strings.Repeat("0", pad) + sq
	}

	lo, hi := digits/2, 3*digits/2
	if digits <= 0 || hi > len(sq) || lo >= hi {
		return Sample{}, fmt.Errorf("%w: cannot take the middle %d digits of %s", ErrMalformedState, digits, sq)
	}

	// The middle must fit a signed sample; 19 restored digits may not.
	n, err := strconv.ParseInt(sq[lo:hi], 10, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: middle digits %s: %s", ErrMalformedState, sq[lo:hi], err)
	}

	v := uint64(n)
	g.state.Value = v

	if _, ok := g.seen[v]; ok {
		g.done = true
		return Sample{}, ErrExhausted
	}

	g.seen[v] = struct{}{}
	return Scalar(n), nil
}

// State returns a copy of the current value and digit count.
func (g *MiddleSquare) State() MiddleSquareState {
	return g.state
}

// SetState replaces the current value and digit count. The digit count is
// not checked against the seed's, and the record of previously emitted
// values is kept, so a restored generator still stops on values it produced
// before the restore.
func (g *MiddleSquare) SetState(s MiddleSquareState) {
	g.state = s
	g.done = false
}

// MarshalState exports the current value and digit count as JSON.
func (g *MiddleSquare) MarshalState() ([]byte, error) {
	return json.Marshal(g.state)
}

// UnmarshalState imports a state document. Both "val" and "ndigits" must be
// present.
func (g *MiddleSquare) UnmarshalState(data []byte) error {
	doc, err := parseState(data)
	if err != nil {
		return err
	}
	if err = doc.require("val", "ndigits"); err != nil {
		return err
	}

	var s MiddleSquareState
	if s.Value, _, err = doc.uint64("val"); err != nil {
		return err
	}
	if s.Digits, _, err = doc.int("ndigits"); err != nil {
		return err
	}

	g.SetState(s)
	return nil
}
