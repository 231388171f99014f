// Package analysis computes descriptive statistics over a prng.Sequence in a
// single streaming pass: minimum, maximum, mean, period and the per-bit
// frequency table of the emitted values.
//
// Vector samples are flattened, so every component of a vector counts as one
// observation. Period is variant-aware: for Acorn it is the number of
// distinct scalar values observed, for every other generator it is the
// number of observations.
package analysis

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"go.uber.org/zap"

	"prngstat/prng"
)

// ErrEmptySample is returned when a sequence emits a vector with no
// components; such a sequence can never reach the sample bound.
var ErrEmptySample = errors.New("analysis: sequence emitted an empty sample")

// DefaultMaxSamples bounds an analysis when the caller has no preference.
const DefaultMaxSamples = 100_000

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for progress messages.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.SugaredLogger = l
		}
	}
}

// Analyzer consumes a Sequence and reports on what it produced.
//
// The Analyzer owns its Sequence: nothing else may advance the sequence while
// Analyze runs, and Analyze must not be called concurrently.
type Analyzer struct {
	*zap.SugaredLogger
	seq prng.Sequence
}

func New(seq prng.Sequence, opts ...Option) *Analyzer {
	a := &Analyzer{
		SugaredLogger: zap.NewNop().Sugar(),
		seq:           seq,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze advances the sequence until it is exhausted or maxSamples
// observations have been taken. The bound is checked before each advance
// and a vector is always consumed whole, so the final count may pass the
// bound by less than one vector's length. A non-positive bound yields an
// empty report without advancing the sequence.
//
// Exhaustion is a normal stop. Any other error from the sequence is
// returned and the partial report discarded, as is ErrEmptySample for a
// vector with no components.
func (a *Analyzer) Analyze(maxSamples int) (*Report, error) {
	var (
		acc      = newAccumulator(a.seq.Kind())
		limit    = uint64(max(maxSamples, 0))
		finished bool
	)

	for acc.count < limit {
		s, err := a.seq.Next()
		if errors.Is(err, prng.ErrExhausted) {
			finished = true
			break
		} else if err != nil {
			return nil, fmt.Errorf("analysis: advancing %s: %w", a.seq.Kind(), err)
		}
		if s.Len() == 0 {
			return nil, fmt.Errorf("%w: %s after %d samples", ErrEmptySample, a.seq.Kind(), acc.count)
		}

		for i := 0; i < s.Len(); i++ {
			acc.add(s.At(i))
		}
	}

	r := acc.report()
	r.Exhausted = finished

	if finished {
		a.Debugf("%s exhausted after %d samples", r.Kind, r.Count)
	} else {
		a.Debugf("%s stopped at sample bound %d", r.Kind, limit)
	}

	return r, nil
}

// accumulator holds the running state of one analysis.
type accumulator struct {
	kind     prng.Kind
	count    uint64
	min, max int64
	sum      *big.Int
	freqs    []uint64
	distinct map[int64]struct{}
}

func newAccumulator(kind prng.Kind) *accumulator {
	acc := &accumulator{
		kind: kind,
		sum:  new(big.Int),
	}
	if kind == prng.KindAcorn {
		acc.distinct = make(map[int64]struct{})
	}
	return acc
}

func (acc *accumulator) add(v int64) {
	if acc.count == 0 || v < acc.min {
		acc.min = v
	}
	if acc.count == 0 || v > acc.max {
		acc.max = v
	}

	acc.sum.Add(acc.sum, big.NewInt(v))

	// The table covers the bit length of the largest value so far; values
	// never carry set bits above it unless they are negative.
	n := bitLen(acc.max)
	for len(acc.freqs) < n {
		acc.freqs = append(acc.freqs, 0)
	}
	u := uint64(v)
	for i := 0; i < n; i++ {
		if u&(1<<uint(i)) != 0 {
			acc.freqs[i]++
		}
	}

	if acc.distinct != nil {
		acc.distinct[v] = struct{}{}
	}

	acc.count++
}

func (acc *accumulator) report() *Report {
	r := &Report{
		Kind:           acc.kind,
		Count:          acc.count,
		BitFrequencies: append([]uint64{}, acc.freqs...),
	}
	if acc.count == 0 {
		return r
	}

	r.Minimum, r.Maximum = acc.min, acc.max
	r.Mean, _ = new(big.Rat).SetFrac(acc.sum, new(big.Int).SetUint64(acc.count)).Float64()

	if acc.kind == prng.KindAcorn {
		r.Period = uint64(len(acc.distinct))
	} else {
		r.Period = acc.count
	}

	return r
}

// bitLen is the number of bits needed to write |v| in binary.
func bitLen(v int64) int {
	if v < 0 {
		return bits.Len64(uint64(-(v + 1)) + 1)
	}
	return bits.Len64(uint64(v))
}
