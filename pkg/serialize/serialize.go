// Package serialize renders a value.Any tree back to text, in any of
// the four wire formats the parser accepts (§6 "Wire formats"). The
// spec scopes serialization out of the core (§1: "deliberately out of
// scope... serialization back to text") as an external collaborator;
// this package supplements that gap per SPEC_FULL.md's §3, grounded on
// `original_source/nanvm-lib/src/serializer/`.
//
// Unlike the original's to_djs.rs, this does not hoist repeated
// sub-DAGs into const bindings on write-back — that is a size
// optimisation over the wire text, not part of the parser's observable
// semantics, and the distilled spec's testable properties (§8) only
// require that ToJSON round-trips structurally equal values (scenario
// #1), which a plain recursive writer already satisfies.
package serialize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/functionalscript/nanvm-sub000/pkg/parse"
	"github.com/functionalscript/nanvm-sub000/pkg/value"
)

// Style selects which wire-format wrapper (if any) surrounds the value
// tree and whether object keys are quoted.
type Style uint8

const (
	StyleJSON Style = iota
	StyleDJS
	StyleCJS
	StyleMJS
)

// ToJSON renders v as strict JSON text: quoted keys, no wrapper, object
// entries in the parser's lexicographic key order (§9 open question:
// "the spec follows that convention... because it is observable in
// serialised output").
func ToJSON(v value.Any) (string, error) { return render(v, StyleJSON) }

// ToDJS renders v with unquoted object keys wherever the key is a
// valid bare identifier, and quoted otherwise.
func ToDJS(v value.Any) (string, error) { return render(v, StyleDJS) }

// ToCJS renders v as `module.exports = <value>;`, DJS-style keys.
func ToCJS(v value.Any) (string, error) {
	body, err := render(v, StyleCJS)
	if err != nil {
		return "", err
	}
	return "module.exports = " + body + ";\n", nil
}

// ToMJS renders v as `export default <value>;`, DJS-style keys.
func ToMJS(v value.Any) (string, error) {
	body, err := render(v, StyleMJS)
	if err != nil {
		return "", err
	}
	return "export default " + body + ";\n", nil
}

// ForFormat picks the serializer matching the wire format a parse
// settled on, the way cmd/nanvm's `run` defaults `--format` (SPEC_FULL
// §3).
func ForFormat(v value.Any, f parse.Format) (string, error) {
	switch f {
	case parse.Djs:
		return ToDJS(v)
	case parse.Cjs:
		return ToCJS(v)
	case parse.Mjs:
		return ToMJS(v)
	default:
		return ToJSON(v)
	}
}

func render(v value.Any, style Style) (string, error) {
	var b strings.Builder
	if err := write(&b, v, style); err != nil {
		return "", err
	}
	return b.String(), nil
}

func write(b *strings.Builder, v value.Any, style Style) error {
	switch v.GetType() {
	case value.KindNumber:
		n, _ := v.TryNumber()
		writeNumber(b, n)
		return nil
	case value.KindBool:
		bv, _ := v.TryBool()
		if bv {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
		return nil
	case value.KindNull:
		b.WriteString("null")
		return nil
	case value.KindString:
		r, _ := v.TryString()
		writeString(b, r.Get().Units)
		return nil
	case value.KindBigInt:
		r, _ := v.TryBigInt()
		b.WriteString(r.Get().String())
		b.WriteByte('n')
		return nil
	case value.KindArray:
		r, _ := v.TryArray()
		return writeArray(b, r.Get().Items, style)
	case value.KindObject:
		r, _ := v.TryObject()
		return writeObject(b, r.Get().Entries, style)
	default:
		return fmt.Errorf("serialize: unknown value kind %d", v.GetType())
	}
}

// writeNumber writes the shortest round-tripping form from
// strconv.FormatFloat(n, 'g', -1, 64), which uses exponent notation
// for large and small magnitudes (e.g. 1e+21). NaN is written as null
// and ±Inf as ±1.7976931348623157e+308.
func writeNumber(b *strings.Builder, n float64) {
	switch {
	case n != n:
		b.WriteString("null") // NaN has no JSON literal; treated as null on write-back
	case n > 1.7976931348623157e308:
		b.WriteString("1.7976931348623157e+308")
	case n < -1.7976931348623157e308:
		b.WriteString("-1.7976931348623157e+308")
	default:
		b.WriteString(strconv.FormatFloat(n, 'g', -1, 64))
	}
}

func writeString(b *strings.Builder, units []uint16) {
	b.WriteByte('"')
	for _, r := range utf16.Decode(units) {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func writeArray(b *strings.Builder, items []value.Any, style Style) error {
	b.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := write(b, it, style); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func writeObject(b *strings.Builder, entries []value.ObjectEntry, style Style) error {
	sorted := append([]value.ObjectEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	b.WriteByte('{')
	for i, e := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		writeKey(b, e.Key, style)
		b.WriteByte(':')
		if err := write(b, e.Value, style); err != nil {
			return err
		}
	}
	b.WriteByte('}')
	return nil
}

func writeKey(b *strings.Builder, key string, style Style) {
	if style != StyleJSON && isBareIdentifier(key) {
		b.WriteString(key)
		return
	}
	writeString(b, utf16.Encode([]rune(key)))
}

func isBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '$':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
