package value

import "github.com/functionalscript/nanvm-sub000/pkg/bitset"

// Kind enumerates every runtime value kind. This is the Go-safe tagged
// union §9 "Polymorphism" licenses in place of literal NaN-boxing: a
// switch over Kind replaces a dispatch on the packed word's top bits.
type Kind uint8

const (
	KindNumber Kind = iota
	KindBool
	KindNull
	KindString
	KindObject
	KindArray
	KindBigInt
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindBigInt:
		return "bigint"
	default:
		return "unknown"
	}
}

// RefKind is the 2-bit discriminator the original packs at bit position
// 48 of a reference-typed word. Go's Any does not pack a real 48-bit
// pointer into a uint64 (the GC cannot trace that), but the bit-subset
// tree below is kept as a faithfully testable artifact of §4.F's encoding
// design, and RefKind doubles as the stable wire-order for ref-kind
// dispatch.
type RefKind uint8

const (
	RefTypeString RefKind = 0b00
	RefTypeObject RefKind = 0b01
	RefTypeArray  RefKind = 0b10
	RefTypeBigint RefKind = 0b11
)

// Encoding tree constants, built with pkg/bitset exactly as §4.F
// describes: top-13-bit extension region split into simple/reference,
// simple split into bool/null, reference carrying a 2-bit ref-kind tag.
var (
	extensionTag  uint64 = 0xFFF8_0000_0000_0000
	extensionMask uint64 = 0xFFF8_0000_0000_0000

	// Extension is every value whose top 13 bits match the canonical NaN
	// anchor: the non-f64 half of the encoding tree.
	Extension = bitset.FromTagAndMask(extensionTag, extensionMask)

	// Simple and Reference are Extension split by bit 50, mirroring the
	// original's single split bit between "simple" (bool, null) and
	// "heap-reference" (string, object, array, bigint).
	Simple, Reference = Extension.Split(1 << 50)

	// Bool and Null split Simple by bit 49.
	Bool, Null = Simple.Split(1 << 49)

	// refKindMask carves out the 2-bit ref-kind tag at bit position 48
	// within the reference region.
	refKindMask uint64 = 0b11 << 48
)

// RefSubset returns the bit-subset for a given 2-bit ref-kind tag,
// constructed from Reference by additionally fixing the ref-kind bits:
// its tag and mask are built directly with FromTagAndMask.
func RefSubset(kind RefKind) bitset.Subset64 {
	tag := Reference.Tag | (uint64(kind) << 48)
	return bitset.FromTagAndMask(tag, Reference.Mask|refKindMask)
}
