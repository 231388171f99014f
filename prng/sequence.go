// Package prng implements four classical pseudo-random number generators
// (middle-square, linear congruential, lagged Fibonacci and Acorn) as
// finite, stateful sequences.
//
// Every generator satisfies Sequence: Next returns the next Sample until the
// generator's cycle closes, after which it returns ErrExhausted. How a cycle
// is detected differs per algorithm:
//
//   - MiddleSquare stops when a newly computed value was emitted before.
//   - LinearCongruential stops when the value it is about to advance from
//     was already seen, one step later than MiddleSquare.
//   - LaggedFibonacci stops when its window equals the initial seed.
//   - Acorn stops when the newly computed vector equals the initial seed.
//
// MiddleSquare and LinearCongruential remember every value they produce, so
// their memory grows with the period.
//
// None of the generators are safe for concurrent use, and none are suitable
// for cryptographic purposes.
package prng

import "fmt"

// Kind identifies a generator algorithm.
type Kind int

const (
	KindMiddleSquare Kind = iota
	KindLinearCongruential
	KindLaggedFibonacci
	KindAcorn
)

func (k Kind) String() string {
	switch k {
	case KindMiddleSquare:
		return "middle_square"
	case KindLinearCongruential:
		return "linear_congruential"
	case KindLaggedFibonacci:
		return "lagged_fibonacci"
	case KindAcorn:
		return "acorn"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a configuration name (or its short alias) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "middle_square", "middlesquare", "ms":
		return KindMiddleSquare, nil
	case "linear_congruential", "linearcongruential", "lcg":
		return KindLinearCongruential, nil
	case "lagged_fibonacci", "laggedfibonacci", "lfg", "lf":
		return KindLaggedFibonacci, nil
	case "acorn":
		return KindAcorn, nil
	}

	return 0, fmt.Errorf("%w: unknown generator type '%s'", ErrInvalidParameter, s)
}

// Sample is a single emission of a Sequence: either one scalar or a
// fixed-size vector.
type Sample struct {
	scalar int64
	vector []int64
	isVec  bool
}

// Scalar wraps a single value.
func Scalar(v int64) Sample {
	return Sample{scalar: v}
}

// Vector wraps a vector emission. The Sample takes ownership of vs.
func Vector(vs []int64) Sample {
	return Sample{vector: vs, isVec: true}
}

// IsVector reports whether the sample was built with Vector.
func (s Sample) IsVector() bool {
	return s.isVec
}

// Scalar returns the scalar value. It is zero for vector samples.
func (s Sample) Scalar() int64 {
	return s.scalar
}

// Len returns the number of scalar observations carried by the sample.
func (s Sample) Len() int {
	if s.isVec {
		return len(s.vector)
	}
	return 1
}

// At returns the i'th scalar observation; for scalar samples only i == 0 is valid.
func (s Sample) At(i int) int64 {
	if s.isVec {
		return s.vector[i]
	}
	return s.scalar
}

// Values returns the sample flattened to a fresh slice.
func (s Sample) Values() []int64 {
	if s.isVec {
		return append([]int64(nil), s.vector...)
	}
	return []int64{s.scalar}
}

// Sequence is a finite producer of samples. Next returns ErrExhausted once
// the generator's cycle closes and keeps returning it on later calls.
//
// Advancing a Sequence mutates it; a Sequence must not be advanced from more
// than one goroutine.
type Sequence interface {
	Kind() Kind
	Next() (Sample, error)
}

// Snapshotter exports and imports generator state as JSON, using the key
// names of the generator's state document.
type Snapshotter interface {
	MarshalState() ([]byte, error)
	UnmarshalState(data []byte) error
}

// Generator is what every algorithm in this package implements.
type Generator interface {
	Sequence
	Snapshotter
}

var (
	_ Generator = (*MiddleSquare)(nil)
	_ Generator = (*LinearCongruential)(nil)
	_ Generator = (*LaggedFibonacci)(nil)
	_ Generator = (*Acorn)(nil)
)
