package prng

import "errors"

var (
	// ErrInvalidParameter is returned by constructors when a seed or constant
	// violates the algorithm's preconditions.
	ErrInvalidParameter = errors.New("prng: invalid parameter")

	// ErrTypeMismatch is returned when a seed or parameter does not have the
	// expected numeric or list shape.
	ErrTypeMismatch = errors.New("prng: type mismatch")

	// ErrMalformedState is returned when imported state is structurally
	// incomplete, or when a generator is advanced from a state that cannot
	// drive its recurrence.
	ErrMalformedState = errors.New("prng: malformed state")

	// ErrExhausted signals the normal end of a sequence. It is not a failure.
	ErrExhausted = errors.New("prng: sequence exhausted")
)
