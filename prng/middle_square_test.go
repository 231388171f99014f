package prng_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prngstat/prng"
)

// drain collects scalar outputs until the sequence ends or limit is reached.
func drain(t *testing.T, seq prng.Sequence, limit int) []int64 {
	t.Helper()
	var out []int64
	for i := 0; i < limit; i++ {
		s, err := seq.Next()
		if errors.Is(err, prng.ErrExhausted) {
			return out
		}
		require.NoError(t, err)
		out = append(out, s.Values()...)
	}
	return out
}

func TestMiddleSquare_OddDigitsRejected(t *testing.T) {
	for _, seed := range []uint64{0, 7, 123, 12345} {
		_, err := prng.NewMiddleSquare(seed)
		assert.ErrorIs(t, err, prng.ErrInvalidParameter, "seed %d", seed)
	}
}

func TestMiddleSquare_TooManyDigitsRejected(t *testing.T) {
	_, err := prng.NewMiddleSquare(12345678901234567890)
	assert.ErrorIs(t, err, prng.ErrInvalidParameter)
}

func TestMiddleSquare_FirstValues(t *testing.T) {
	g, err := prng.NewMiddleSquare(45725946)
	require.NoError(t, err)
	assert.Equal(t, prng.KindMiddleSquare, g.Kind())

	got := drain(t, g, 5)
	assert.Equal(t, []int64{86213759, 81224091, 35295877, 79893319, 94242083}, got)
}

func TestMiddleSquare_DigitCountConstant(t *testing.T) {
	g, err := prng.NewMiddleSquare(1234)
	require.NoError(t, err)

	out := drain(t, g, 1000)
	assert.Len(t, out, 56, "1234 closes its cycle after 56 values")
	for _, v := range out {
		assert.LessOrEqual(t, len(strconv.FormatInt(v, 10)), 4)
	}
	assert.Equal(t, 4, g.State().Digits)
	assert.Equal(t, []int64{576, 3317, 24, 5, 0}, out[len(out)-5:])
}

func TestMiddleSquare_RepeatKeptInState(t *testing.T) {
	g, err := prng.NewMiddleSquare(1234)
	require.NoError(t, err)
	drain(t, g, 1000)

	// 0 squares to 0, which was already emitted; the repeat stays as the value.
	assert.Equal(t, prng.MiddleSquareState{Value: 0, Digits: 4}, g.State())

	_, err = g.Next()
	assert.ErrorIs(t, err, prng.ErrExhausted, "exhaustion is sticky")
}

func TestMiddleSquare_LeadingZerosInMiddle(t *testing.T) {
	// 10^2 = 100 pads to "0100"; the middle two digits are "10".
	g, err := prng.NewMiddleSquare(10)
	require.NoError(t, err)

	s, err := g.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.Scalar())

	_, err = g.Next()
	assert.ErrorIs(t, err, prng.ErrExhausted)
}

func TestMiddleSquare_SetStateKeepsHistory(t *testing.T) {
	g, err := prng.NewMiddleSquare(45725946)
	require.NoError(t, err)

	first := drain(t, g, 3)
	saved := g.State()
	want := drain(t, g, 3)

	g.SetState(saved)
	got := drain(t, g, 3)
	assert.Empty(t, got, "values emitted before the restore still count as seen")

	fresh, err := prng.NewMiddleSquare(45725946)
	require.NoError(t, err)
	drain(t, fresh, len(first))
	fresh.SetState(saved)
	assert.Equal(t, want, drain(t, fresh, 3))
}

func TestMiddleSquare_StateJSON(t *testing.T) {
	g, err := prng.NewMiddleSquare(45725946)
	require.NoError(t, err)
	drain(t, g, 2)

	data, err := g.MarshalState()
	require.NoError(t, err)
	assert.JSONEq(t, `{"val":81224091,"ndigits":8}`, string(data))

	other, err := prng.NewMiddleSquare(1234)
	require.NoError(t, err)
	require.NoError(t, other.UnmarshalState(data))
	assert.Equal(t, g.State(), other.State())
	assert.Equal(t, drain(t, g, 3), drain(t, other, 3))
}

func TestMiddleSquare_UnmarshalStateErrors(t *testing.T) {
	g, err := prng.NewMiddleSquare(1234)
	require.NoError(t, err)

	assert.ErrorIs(t, g.UnmarshalState([]byte(`{"val":12}`)), prng.ErrMalformedState)
	assert.ErrorIs(t, g.UnmarshalState([]byte(`[1,2]`)), prng.ErrMalformedState)
	assert.ErrorIs(t, g.UnmarshalState([]byte(`{"val":"12","ndigits":2}`)), prng.ErrTypeMismatch)
	assert.ErrorIs(t, g.UnmarshalState([]byte(`{"val":1.5,"ndigits":2}`)), prng.ErrTypeMismatch)
	assert.Equal(t, prng.MiddleSquareState{Value: 1234, Digits: 4}, g.State(), "failed import leaves state alone")
}

func TestMiddleSquare_UnusableDigitCount(t *testing.T) {
	g, err := prng.NewMiddleSquare(1234)
	require.NoError(t, err)

	g.SetState(prng.MiddleSquareState{Value: 12, Digits: 0})
	_, err = g.Next()
	assert.ErrorIs(t, err, prng.ErrMalformedState)

	// A 19-digit middle above the largest int64 cannot become a sample.
	g.SetState(prng.MiddleSquareState{Value: 9899494936611665, Digits: 19})
	before := g.State()
	s, err := g.Next()
	assert.ErrorIs(t, err, prng.ErrMalformedState)
	assert.Equal(t, prng.Sample{}, s)
	assert.Equal(t, before, g.State(), "a failed step leaves the state alone")
}
