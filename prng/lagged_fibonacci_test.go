package prng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prngstat/prng"
)

var lfSeed = []int64{1, 2, 3, 4, 6, 1, 4}

func TestLaggedFibonacci_Validation(t *testing.T) {
	tests := []struct {
		name string
		seed []int64
		j, k int
		m    int64
		want error
	}{
		{"nil seed", nil, 1, 2, 5, prng.ErrTypeMismatch},
		{"zero modulus", lfSeed, 1, 6, 0, prng.ErrInvalidParameter},
		{"j zero", lfSeed, 0, 6, 365, prng.ErrInvalidParameter},
		{"j equals k", lfSeed, 3, 3, 365, prng.ErrInvalidParameter},
		{"j above k", lfSeed, 4, 3, 365, prng.ErrInvalidParameter},
		{"k beyond seed", lfSeed, 1, 8, 365, prng.ErrInvalidParameter},
		{"empty seed", []int64{}, 1, 2, 365, prng.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := prng.NewLaggedFibonacci(tt.seed, tt.j, tt.k, tt.m)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLaggedFibonacci_FirstValues(t *testing.T) {
	g, err := prng.NewLaggedFibonacci(lfSeed, 1, 6, 365)
	require.NoError(t, err)
	assert.Equal(t, prng.KindLaggedFibonacci, g.Kind())

	// (seed[-6] + seed[-1]) mod 365 = (2 + 4) mod 365
	assert.Equal(t, []int64{6, 9, 13, 19, 20, 24, 30, 39}, drain(t, g, 8))
}

func TestLaggedFibonacci_SeedNotAliased(t *testing.T) {
	seed := []int64{1, 2, 3, 4, 6, 1, 4}
	g, err := prng.NewLaggedFibonacci(seed, 1, 6, 365)
	require.NoError(t, err)
	drain(t, g, 3)

	assert.Equal(t, lfSeed, seed)
}

func TestLaggedFibonacci_StopsOnOriginalWindow(t *testing.T) {
	g, err := prng.NewLaggedFibonacci([]int64{1, 1}, 1, 2, 5)
	require.NoError(t, err)

	out := drain(t, g, 100)
	assert.Equal(t, []int64{2, 3, 0, 3, 3, 1, 4, 0, 4, 4, 3, 2, 0, 2, 2, 4, 1, 0, 1}, out)

	// The closing value has been pushed into the window but not emitted.
	assert.Equal(t, []int64{1, 1}, g.State().Window)
}

func TestLaggedFibonacci_StateIsSnapshot(t *testing.T) {
	g, err := prng.NewLaggedFibonacci(lfSeed, 1, 6, 365)
	require.NoError(t, err)

	st := g.State()
	st.Window[0] = 999
	assert.Equal(t, lfSeed, g.State().Window)
	assert.Len(t, g.State().Window, len(lfSeed))
}

func TestLaggedFibonacci_ExportImportReproduces(t *testing.T) {
	g, err := prng.NewLaggedFibonacci(lfSeed, 1, 6, 365)
	require.NoError(t, err)
	drain(t, g, 4)

	data, err := g.MarshalState()
	require.NoError(t, err)
	assert.JSONEq(t, `{"val":[6,1,4,6,9,13,19],"j":1,"k":6,"m":365}`, string(data))

	other, err := prng.NewLaggedFibonacci(lfSeed, 1, 6, 365)
	require.NoError(t, err)
	require.NoError(t, other.UnmarshalState(data))
	assert.Equal(t, drain(t, g, 10), drain(t, other, 10))
}

func TestLaggedFibonacci_UnmarshalStateIsPermissive(t *testing.T) {
	g, err := prng.NewLaggedFibonacci(lfSeed, 1, 6, 365)
	require.NoError(t, err)

	assert.ErrorIs(t, g.UnmarshalState([]byte(`[1,2,3]`)), prng.ErrMalformedState)
	assert.ErrorIs(t, g.UnmarshalState([]byte(`{"val":[1,"x"]}`)), prng.ErrTypeMismatch)

	// Any object is accepted; the problem only shows when advancing.
	require.NoError(t, g.UnmarshalState([]byte(`{}`)))
	assert.Equal(t, prng.LaggedFibonacciState{}, g.State())
	_, err = g.Next()
	assert.ErrorIs(t, err, prng.ErrMalformedState)
}

func TestLaggedFibonacci_ImportDoesNotMoveCycleOrigin(t *testing.T) {
	g, err := prng.NewLaggedFibonacci([]int64{1, 1}, 1, 2, 5)
	require.NoError(t, err)

	// Restore a window that is one step before the initial seed.
	g.SetState(prng.LaggedFibonacciState{Window: []int64{0, 1}, J: 1, K: 2, M: 5})
	_, err = g.Next()
	assert.ErrorIs(t, err, prng.ErrExhausted)
}
