package bignum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func decimal(n uint64, exp int64) BigFloat {
	return NewDecimalFloat(Positive, FromU64(n), exp)
}

func TestToBinZero(t *testing.T) {
	res := FloatZero().ToBin(64)
	require.True(t, res.Significand.IsZero())
	require.EqualValues(t, 0, res.Exp)
	require.False(t, res.NonZeroRemainder)

	res = decimal(0, 10).ToBin(64)
	require.True(t, res.Significand.IsZero())

	res = decimal(0, -10).ToBin(64)
	require.True(t, res.Significand.IsZero())
}

func TestToBinIntegerExpOne(t *testing.T) {
	res := decimal(1, 1).ToBin(64)
	require.Equal(t, []uint64{10 << 60}, res.Significand.Mag.Value)
	require.EqualValues(t, -60, res.Exp)
	require.False(t, res.NonZeroRemainder)
}

func TestToBinIntegerExpTwo(t *testing.T) {
	res := decimal(100, 2).ToBin(64)
	require.Equal(t, []uint64{10000 << 50}, res.Significand.Mag.Value)
	require.EqualValues(t, -50, res.Exp)
}

func TestToBinIntegerExpZero(t *testing.T) {
	res := decimal(128, 0).ToBin(9)
	require.Equal(t, []uint64{256}, res.Significand.Mag.Value)
	require.EqualValues(t, -1, res.Exp)
	require.False(t, res.NonZeroRemainder)
}

func TestToBinIntegerRounding(t *testing.T) {
	res := decimal(128, 0).ToBin(4)
	require.Equal(t, []uint64{8}, res.Significand.Mag.Value)
	require.EqualValues(t, 4, res.Exp)
	require.False(t, res.NonZeroRemainder)

	res = decimal(129, 0).ToBin(4)
	require.Equal(t, []uint64{8}, res.Significand.Mag.Value)
	require.EqualValues(t, 4, res.Exp)
	require.True(t, res.NonZeroRemainder)
}

func TestToBinFloat(t *testing.T) {
	res := decimal(100, -1).ToBin(5)
	require.Equal(t, []uint64{20}, res.Significand.Mag.Value)
	require.EqualValues(t, -1, res.Exp)
	require.False(t, res.NonZeroRemainder)

	res = decimal(100, -1).ToBin(64)
	require.Equal(t, []uint64{(1 << 63) + (1 << 61)}, res.Significand.Mag.Value)
	require.EqualValues(t, -60, res.Exp)
	require.False(t, res.NonZeroRemainder)
}

func TestToBinRounding(t *testing.T) {
	res := decimal(0b1000_0001, -1).ToBin(5)
	require.Equal(t, []uint64{0b11001}, res.Significand.Mag.Value)
	require.EqualValues(t, -1, res.Exp)
	require.True(t, res.NonZeroRemainder)
}

func TestToF64RoundTripIntegers(t *testing.T) {
	cases := []float64{0, 1, -1, 2, 100, 1234567.0, 9007199254740991, 9007199254740992}
	for _, want := range cases {
		bits := math.Float64bits(want)
		mant := bits & f64FracMask
		exp := int((bits >> 52) & 0x7ff)
		sign := Positive
		if bits>>63 == 1 {
			sign = Negative
		}
		var sig BigUint
		var e int64
		if exp == 0 {
			sig = FromU64(mant)
			e = -1074
		} else {
			sig = FromU64(mant | (uint64(1) << 52))
			e = int64(exp) - 1075
		}
		bf := BigFloat{Significand: NewBigInt(sign, sig), Exp: e}
		got := bf.ToF64()
		require.Equal(t, want, got, "round-trip for %v", want)
	}
}

func TestToF64SpecialZero(t *testing.T) {
	require.Equal(t, float64(0), FloatZero().ToF64())
}

func TestToF64LargeLiteral(t *testing.T) {
	// 340282366920938463463374607431768211456 == 2^128, as an f64.
	want := math.Pow(2, 128)
	n := PowU64(FromU64(2), 128)
	bf10 := BigFloat{Significand: NewBigInt(Positive, n), Exp: 0}
	got := bf10.ToBin(54).ToF64()
	require.Equal(t, want, got)
}
