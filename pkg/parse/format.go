package parse

// Format is the wire-format lattice: Json ⊂ {Djs, Cjs, Mjs}. It starts
// at Json and is upgraded monotonically as the parser recognises
// format-specific constructs; Cjs and Mjs are mutually exclusive.
type Format uint8

const (
	Json Format = iota
	Djs
	Cjs
	Mjs
)

func (f Format) String() string {
	switch f {
	case Djs:
		return "djs"
	case Cjs:
		return "cjs"
	case Mjs:
		return "mjs"
	default:
		return "json"
	}
}

// IsDjs reports whether the format has already been promoted past
// plain Json (to Djs, Cjs, or Mjs). Object keys may be bare identifiers
// only once the parse has committed to one of these (§4.J
// "parse_object_begin").
func (f Format) IsDjs() bool { return f != Json }

// IsCjsCompatible reports whether require()/module.exports are allowed:
// the format is not already committed to Mjs.
func (f Format) IsCjsCompatible() bool { return f != Mjs }

// IsMjsCompatible reports whether import/export default are allowed:
// the format is not already committed to Cjs.
func (f Format) IsMjsCompatible() bool { return f != Cjs }

func (f Format) setDjs() Format {
	if f == Json {
		return Djs
	}
	return f
}

func (f Format) setCjs() Format {
	if f == Json || f == Djs {
		return Cjs
	}
	return f
}

func (f Format) setMjs() Format {
	if f == Json || f == Djs {
		return Mjs
	}
	return f
}
