package bignum

// Sign distinguishes positive from negative magnitudes. Zero is always
// Positive by convention (per spec §3 "Big integer").
type Sign int8

const (
	Positive Sign = 1
	Negative Sign = -1
)

// BigInt is a signed arbitrary-precision integer: a sign plus a BigUint
// magnitude. Zero has an empty magnitude and Positive sign.
type BigInt struct {
	Sign Sign
	Mag  BigUint
}

// NewBigInt builds a signed integer from a sign and magnitude, normalising
// zero magnitudes to the canonical Positive-zero representation.
func NewBigInt(sign Sign, mag BigUint) BigInt {
	if mag.IsZero() {
		return BigInt{Sign: Positive, Mag: Zero}
	}
	return BigInt{Sign: sign, Mag: mag}
}

// BigIntFromU64 builds a signed integer from a machine word.
func BigIntFromU64(sign Sign, n uint64) BigInt {
	return NewBigInt(sign, FromU64(n))
}

// IsZero reports whether the value is zero.
func (a BigInt) IsZero() bool { return a.Mag.IsZero() }

// Negate returns -a.
func (a BigInt) Negate() BigInt {
	if a.IsZero() {
		return a
	}
	sign := Positive
	if a.Sign == Positive {
		sign = Negative
	}
	return BigInt{Sign: sign, Mag: a.Mag}
}

// AddBigInt returns lhs+rhs, handling same-sign addition and
// opposite-sign subtraction-of-magnitudes (with the result's sign taken
// from whichever magnitude is larger), mirroring js_bigint.rs's add().
func AddBigInt(lhs, rhs BigInt) BigInt {
	if lhs.Sign == rhs.Sign {
		return NewBigInt(lhs.Sign, Add(lhs.Mag, rhs.Mag))
	}
	switch lhs.Mag.Cmp(rhs.Mag) {
	case 0:
		return BigInt{Sign: Positive, Mag: Zero}
	case 1:
		return NewBigInt(lhs.Sign, Sub(lhs.Mag, rhs.Mag))
	default:
		return NewBigInt(rhs.Sign, Sub(rhs.Mag, lhs.Mag))
	}
}

// SubBigInt returns lhs-rhs.
func SubBigInt(lhs, rhs BigInt) BigInt {
	return AddBigInt(lhs, rhs.Negate())
}

// MulBigInt returns lhs*rhs.
func MulBigInt(lhs, rhs BigInt) BigInt {
	sign := Positive
	if lhs.Sign != rhs.Sign {
		sign = Negative
	}
	return NewBigInt(sign, Mul(lhs.Mag, rhs.Mag))
}

// Cmp compares two signed integers by mathematical value.
func (a BigInt) Cmp(b BigInt) int {
	if a.Sign != b.Sign {
		if a.IsZero() && b.IsZero() {
			return 0
		}
		if a.Sign == Positive {
			return 1
		}
		return -1
	}
	c := a.Mag.Cmp(b.Mag)
	if a.Sign == Negative {
		return -c
	}
	return c
}

// String renders the signed value in base 10 with a leading "-" for
// negative non-zero values, the decimal text a bigint literal's "n"
// suffix round-trips through (§6 "Numeric literals").
func (a BigInt) String() string {
	if a.Sign == Negative && !a.IsZero() {
		return "-" + a.Mag.String()
	}
	return a.Mag.String()
}

// HeaderLen reproduces the heap-object encoding from spec §3: the signed
// length stored in a bigint's flexible-array header, where the sign of the
// length carries the value's sign and the magnitude is |len|.
func (a BigInt) HeaderLen() int64 {
	n := int64(len(a.Mag.Value))
	if a.Sign == Negative {
		return -n
	}
	return n
}
