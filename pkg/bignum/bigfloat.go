package bignum

import "math"

// BigFloat represents significand * Base^Exp, where Base is 10 (decimal
// literal as read from source) or 2 (binary, ready for f64 assembly).
// Significand carries the float's overall sign through its own BigInt
// sign; NonZeroRemainder remembers whether a right-shift rounding step
// dropped a non-zero bit, standing in for the sticky bit in IEEE-754
// round-to-nearest-even.
type BigFloat struct {
	Significand      BigInt
	Exp              int64
	NonZeroRemainder bool
}

// FloatZero is the additive identity at the given exponent convention
// (exp always renormalises to 0 for a zero significand).
func FloatZero() BigFloat {
	return BigFloat{Significand: BigInt{Sign: Positive, Mag: Zero}}
}

// NewDecimalFloat builds a base-10 BigFloat from a parsed literal's
// sign, integer-digit magnitude, and decimal exponent (positive for a
// trailing "e+N"/implicit scale-up, negative for digits after the point).
func NewDecimalFloat(sign Sign, mantissa BigUint, exp int64) BigFloat {
	return BigFloat{Significand: NewBigInt(sign, mantissa), Exp: exp}
}

// increaseSignificand left-shifts (in binary) until the significand's
// magnitude is >= 2^precision, decrementing Exp to compensate.
func (f *BigFloat) increaseSignificand(precision uint64) {
	if f.Significand.IsZero() {
		return
	}
	min := ShlU64(One(), precision)
	f.increaseSignificandTo(min)
}

func (f *BigFloat) increaseSignificandTo(min BigUint) {
	if f.Significand.IsZero() {
		return
	}
	for f.Significand.Mag.Cmp(min) < 0 {
		f.Significand.Mag = ShlU64(f.Significand.Mag, 1)
		f.Exp--
	}
}

// decreaseSignificand right-shifts until the significand's magnitude is <
// 2^precision, incrementing Exp to compensate and ORing any dropped
// non-zero low bit into NonZeroRemainder.
func (f *BigFloat) decreaseSignificand(precision uint64) {
	if f.Significand.IsZero() {
		return
	}
	maxSig := ShlU64(One(), precision)
	for f.Significand.Mag.Cmp(maxSig) >= 0 {
		if f.Significand.Mag.GetLastBit() == 1 {
			f.NonZeroRemainder = true
		}
		f.Significand.Mag = ShrU64(f.Significand.Mag, 1)
		f.Exp++
	}
}

// ToBin converts a base-10 BigFloat (as produced by reading a decimal
// literal's significand/exponent) to base-2 with the given target
// precision, following the original's three-way exp==0 / exp>0 / exp<0
// case split.
func (f BigFloat) ToBin(precision uint8) BigFloat {
	if f.Significand.IsZero() {
		return FloatZero()
	}

	if f.Exp == 0 {
		result := BigFloat{Significand: f.Significand, Exp: f.Exp, NonZeroRemainder: f.NonZeroRemainder}
		result.increaseSignificand(uint64(precision))
		result.decreaseSignificand(uint64(precision))
		return result
	}

	five := FromU64(5)
	if f.Exp > 0 {
		newSig := Mul(f.Significand.Mag, PowU64(five, uint64(f.Exp)))
		result := BigFloat{
			Significand:      BigInt{Sign: f.Significand.Sign, Mag: newSig},
			Exp:              f.Exp,
			NonZeroRemainder: f.NonZeroRemainder,
		}
		result.increaseSignificand(uint64(precision))
		result.decreaseSignificand(uint64(precision))
		return result
	}

	p := PowU64(five, uint64(-f.Exp))
	bf10 := BigFloat{Significand: f.Significand, Exp: f.Exp, NonZeroRemainder: f.NonZeroRemainder}
	minSignificand := ShlU64(One(), uint64(precision))
	bf10.increaseSignificandTo(Mul(p, minSignificand))

	q, r := DivMod(bf10.Significand.Mag, p)
	result := BigFloat{
		Significand:      BigInt{Sign: f.Significand.Sign, Mag: q},
		Exp:              bf10.Exp,
		NonZeroRemainder: f.NonZeroRemainder || !r.IsZero(),
	}
	result.decreaseSignificand(uint64(precision))
	return result
}

const (
	f64Precision = 52
	f64MaxFrac   = uint64(1) << (f64Precision + 1)
	f64FracMask  = uint64(1)<<f64Precision - 1
	f64InfBits   = uint64(2047) << 52
)

// getFracRound reads the top 53 bits of a 54-bit base-2 significand and
// applies round-to-nearest-even using the dropped round bit (the
// significand's low bit) and the carried sticky bit (NonZeroRemainder),
// with a tie broken by the evenness of the candidate fraction.
func (f BigFloat) getFracRound() uint64 {
	var word uint64
	if len(f.Significand.Mag.Value) > 0 {
		word = f.Significand.Mag.Value[0]
	}
	lastBit := word & 1
	frac := word >> 1
	if lastBit == 1 && !f.NonZeroRemainder {
		lastBit = frac & 1
	}
	if lastBit == 1 {
		frac++
	}
	return frac
}

// ToF64 converts a base-2 BigFloat to the nearest representable float64,
// rounding to nearest with ties to even, per §4.H.
func (f BigFloat) ToF64() float64 {
	return math.Float64frombits(f.getF64Bits())
}

func (f BigFloat) getF64Bits() uint64 {
	var bits uint64
	if f.Significand.Sign == Negative {
		bits |= uint64(1) << 63
	}
	if f.Significand.IsZero() {
		return bits
	}

	value := BigFloat{Significand: f.Significand, Exp: f.Exp, NonZeroRemainder: f.NonZeroRemainder}
	value.increaseSignificand(f64Precision + 1)
	value.decreaseSignificand(f64Precision + 2)

	f64Exp := value.Exp + f64Precision + 1
	switch {
	case f64Exp >= -1022 && f64Exp <= 1023:
		frac := value.getFracRound()
		if frac == f64MaxFrac {
			frac >>= 1
			f64Exp++
			// f64_exp==1024 here: exp_bits all-ones, frac_bits all-zero —
			// exactly the IEEE-754 infinity pattern, no special case needed.
		}
		expBits := uint64(f64Exp + 1023)
		bits |= expBits << 52
		bits |= frac & f64FracMask
		return bits
	case f64Exp >= -1074 && f64Exp <= -1023:
		subnormalPrecision := uint64(f64Exp + 1076)
		value.decreaseSignificand(subnormalPrecision)
		frac := value.getFracRound()
		bits |= frac
		return bits
	case f64Exp > 1023:
		bits |= f64InfBits
		return bits
	default:
		return bits
	}
}
