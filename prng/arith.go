package prng

import "math/big"

// floorMod returns x mod m with the sign of m, like a floored division
// remainder. m must be non-zero. The result always fits in an int64 since
// |result| < |m|.
func floorMod(x *big.Int, m int64) int64 {
	bm := big.NewInt(m)
	r := new(big.Int).Rem(x, bm)
	if r.Sign() != 0 && r.Sign() != bm.Sign() {
		r.Add(r, bm)
	}
	return r.Int64()
}

// affineMod computes (a*x + c) mod m without overflow.
func affineMod(a, x, c, m int64) int64 {
	v := new(big.Int).Mul(big.NewInt(a), big.NewInt(x))
	v.Add(v, big.NewInt(c))
	return floorMod(v, m)
}

// addMod computes (x + y) mod m without overflow.
func addMod(x, y, m int64) int64 {
	v := new(big.Int).Add(big.NewInt(x), big.NewInt(y))
	return floorMod(v, m)
}
