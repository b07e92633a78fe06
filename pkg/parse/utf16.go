package parse

import "unicode/utf16"

// encodeUTF16 turns a decoded Go string into the flat UTF-16 code-unit
// storage JSString holds (§3 "Value handle"): runes outside the BMP
// become a surrogate pair, exactly as unicode/utf16.Encode already
// does — no custom surrogate-pair logic is warranted for this.
func encodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// decodeUTF16 is encodeUTF16's inverse: flat code units back to a Go
// string. pkg/serialize does its own decoding with unicode/utf16.Decode.
func decodeUTF16(units []uint16) string {
	return string(utf16.Decode(units))
}
