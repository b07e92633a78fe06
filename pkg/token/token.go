// Package token implements the streaming, character-by-character tokenizer
// state machine (§4.I): push one rune at a time, get back zero or more
// tokens, and flush whatever is pending at end of input.
package token

import (
	"github.com/functionalscript/nanvm-sub000/pkg/bignum"
)

// Kind is the discriminator of a Token.
type Kind uint8

const (
	KindTrue Kind = iota
	KindFalse
	KindNull
	KindString
	KindNumber
	KindBigInt
	KindId
	KindObjectBegin
	KindObjectEnd
	KindArrayBegin
	KindArrayEnd
	KindColon
	KindComma
	KindEquals
	KindDot
	KindSemicolon
	KindOpeningParenthesis
	KindClosingParenthesis
	KindNewLine
	KindError
)

// ErrorKind is the tokenizer-internal error taxonomy (§7); the parser layer
// surfaces any of these as UnexpectedToken.
type ErrorKind uint8

const (
	UnexpectedCharacter ErrorKind = iota
	InvalidToken
	InvalidNumber
	InvalidHex
	MissingQuotes
)

func (e ErrorKind) String() string {
	switch e {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case InvalidToken:
		return "InvalidToken"
	case InvalidNumber:
		return "InvalidNumber"
	case InvalidHex:
		return "InvalidHex"
	case MissingQuotes:
		return "MissingQuotes"
	default:
		return "Unknown"
	}
}

// Token is one lexical unit. Only the field matching Kind is meaningful:
// Str for String/Id, Num for Number, Big for BigInt, Err for Error.
type Token struct {
	Kind Kind
	Str  string
	Num  float64
	Big  bignum.BigInt
	Err  ErrorKind
}

func simple(k Kind) Token             { return Token{Kind: k} }
func str(k Kind, s string) Token      { return Token{Kind: k, Str: s} }
func number(n float64) Token          { return Token{Kind: KindNumber, Num: n} }
func bigInt(b bignum.BigInt) Token    { return Token{Kind: KindBigInt, Big: b} }
func errToken(e ErrorKind) Token      { return Token{Kind: KindError, Err: e} }
func idToToken(s string) Token {
	switch s {
	case "true":
		return simple(KindTrue)
	case "false":
		return simple(KindFalse)
	case "null":
		return simple(KindNull)
	default:
		return str(KindId, s)
	}
}

// bigFloatToF64 converts a base-10 significand/exponent pair (as read off
// a numeric literal) to the nearest f64, per §4.H.
func bigFloatToF64(bf bignum.BigFloat) float64 {
	return bf.ToBin(54).ToF64()
}

const cp0 = '0'

func digitToNumber(c rune) uint64 { return uint64(c) - cp0 }

func isSpaceOrTab(c rune) bool {
	switch c {
	case ' ', '\t', '\r':
		return true
	default:
		return false
	}
}

func toOperator(c rune) (Token, bool) {
	switch c {
	case '{':
		return simple(KindObjectBegin), true
	case '}':
		return simple(KindObjectEnd), true
	case '[':
		return simple(KindArrayBegin), true
	case ']':
		return simple(KindArrayEnd), true
	case ':':
		return simple(KindColon), true
	case ',':
		return simple(KindComma), true
	case '=':
		return simple(KindEquals), true
	case '.':
		return simple(KindDot), true
	case ';':
		return simple(KindSemicolon), true
	case '(':
		return simple(KindOpeningParenthesis), true
	case ')':
		return simple(KindClosingParenthesis), true
	default:
		return Token{}, false
	}
}

func isOperator(c rune) bool {
	_, ok := toOperator(c)
	return ok
}

func isIdStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$'
}

func isIdChar(c rune) bool {
	return (c >= '0' && c <= '9') || isIdStart(c)
}

func isTerminalForNumber(c rune) bool {
	return c == '"' || c == '\n' || isSpaceOrTab(c) || isOperator(c)
}

// state is one node of the tokenizer's state machine: push consumes one
// rune, producing zero or more tokens and the next state; end flushes
// whatever the state has pending at end of input.
type state interface {
	push(c rune) ([]Token, state)
}

type endState interface {
	end() []Token
}

func endOf(s state) []Token {
	if e, ok := s.(endState); ok {
		return e.end()
	}
	return nil
}

// Tokenizer drives the state machine across a stream of runes.
type Tokenizer struct {
	s state
}

// New returns a tokenizer ready to consume input from its start.
func New() *Tokenizer {
	return &Tokenizer{s: initialState{}}
}

// Push feeds one rune, returning any tokens it completed.
func (t *Tokenizer) Push(c rune) []Token {
	toks, next := t.s.push(c)
	t.s = next
	return toks
}

// End flushes the tokenizer's final pending state (possibly an error) and
// resets it back to Initial.
func (t *Tokenizer) End() []Token {
	toks := endOf(t.s)
	t.s = initialState{}
	return toks
}

// Tokenize runs the whole state machine over a complete string.
func Tokenize(input string) []Token {
	t := New()
	var out []Token
	for _, c := range input {
		out = append(out, t.Push(c)...)
	}
	out = append(out, t.End()...)
	return out
}

func transfer(prefix []Token, s state, c rune) ([]Token, state) {
	more, next := s.push(c)
	return append(prefix, more...), next
}

func invalidNumber(c rune) ([]Token, state) {
	return transfer([]Token{errToken(InvalidNumber)}, initialState{}, c)
}

// ---- Initial ----

type initialState struct{}

func (initialState) push(c rune) ([]Token, state) {
	if op, ok := toOperator(c); ok {
		return []Token{op}, initialState{}
	}
	switch {
	case c == '\n':
		return []Token{simple(KindNewLine)}, initialState{}
	case c >= '1' && c <= '9':
		return nil, parseIntState{integerState{sign: bignum.Positive, b: bignum.FromU64(digitToNumber(c))}}
	case c == '"':
		return nil, parseStringState{}
	case c == '0':
		return nil, parseZeroState{sign: bignum.Positive}
	case c == '-':
		return nil, parseMinusState{}
	case isIdStart(c):
		return nil, parseIDState{s: string(c)}
	case isSpaceOrTab(c):
		return nil, initialState{}
	default:
		return []Token{errToken(UnexpectedCharacter)}, initialState{}
	}
}

func (initialState) end() []Token { return nil }

// ---- Id ----

type parseIDState struct{ s string }

func (p parseIDState) push(c rune) ([]Token, state) {
	if isIdChar(c) {
		return nil, parseIDState{s: p.s + string(c)}
	}
	return transfer([]Token{idToToken(p.s)}, initialState{}, c)
}

func (p parseIDState) end() []Token { return []Token{idToToken(p.s)} }

// ---- String / escape / unicode ----

type parseStringState struct{ s string }

func (p parseStringState) push(c rune) ([]Token, state) {
	switch c {
	case '"':
		return []Token{str(KindString, p.s)}, initialState{}
	case '\\':
		return nil, parseEscapeState{s: p.s}
	default:
		return nil, parseStringState{s: p.s + string(c)}
	}
}

func (p parseStringState) end() []Token { return []Token{errToken(MissingQuotes)} }

func continueString(s string, c rune) ([]Token, state) {
	return nil, parseStringState{s: s + string(c)}
}

type parseEscapeState struct{ s string }

func (p parseEscapeState) push(c rune) ([]Token, state) {
	switch c {
	case '"', '\\', '/':
		return continueString(p.s, c)
	case 'b':
		return continueString(p.s, '\b')
	case 'f':
		return continueString(p.s, '\f')
	case 'n':
		return continueString(p.s, '\n')
	case 'r':
		return continueString(p.s, '\r')
	case 't':
		return continueString(p.s, '\t')
	case 'u':
		return nil, parseUnicodeState{s: p.s}
	default:
		return transfer([]Token{errToken(UnexpectedCharacter)}, parseStringState{s: p.s}, c)
	}
}

func (p parseEscapeState) end() []Token { return []Token{errToken(MissingQuotes)} }

type parseUnicodeState struct {
	s       string
	unicode uint32
	index   uint8
}

func (p parseUnicodeState) pushDigit(i uint32) ([]Token, state) {
	newUnicode := p.unicode | (i << ((3 - p.index) * 4))
	if p.index == 3 {
		if newUnicode > 0x10FFFF || (newUnicode >= 0xD800 && newUnicode <= 0xDFFF) {
			return []Token{errToken(InvalidHex)}, initialState{}
		}
		return continueString(p.s, rune(newUnicode))
	}
	return nil, parseUnicodeState{s: p.s, unicode: newUnicode, index: p.index + 1}
}

func (p parseUnicodeState) push(c rune) ([]Token, state) {
	switch {
	case c >= '0' && c <= '9':
		return p.pushDigit(uint32(c) - '0')
	case c >= 'a' && c <= 'f':
		return p.pushDigit(uint32(c) - 'a' + 10)
	case c >= 'A' && c <= 'F':
		return p.pushDigit(uint32(c) - 'A' + 10)
	default:
		return transfer([]Token{errToken(InvalidHex)}, parseStringState{s: p.s}, c)
	}
}

func (p parseUnicodeState) end() []Token { return []Token{errToken(MissingQuotes)} }

// ---- Numbers ----

type integerState struct {
	sign bignum.Sign
	b    bignum.BigUint
}

func (s integerState) addDigit(c rune) integerState {
	s.b = bignum.Add(bignum.Mul(s.b, bignum.FromU64(10)), bignum.FromU64(digitToNumber(c)))
	return s
}

func (s integerState) toFloatState() floatState {
	return floatState{sign: s.sign, b: s.b, fe: 0}
}

func (s integerState) toExpState() expState {
	return expState{sign: s.sign, b: s.b, fe: 0, es: bignum.Positive, e: 0}
}

func (s integerState) toToken() Token {
	bf := bignum.BigFloat{Significand: bignum.BigInt{Sign: s.sign, Mag: s.b}, Exp: 0}
	return number(bigFloatToF64(bf))
}

func (s integerState) toBigIntToken() Token {
	return bigInt(bignum.NewBigInt(s.sign, s.b))
}

type floatState struct {
	sign bignum.Sign
	b    bignum.BigUint
	fe   int64
}

func (s floatState) addDigit(c rune) floatState {
	s.b = bignum.Add(bignum.Mul(s.b, bignum.FromU64(10)), bignum.FromU64(digitToNumber(c)))
	s.fe--
	return s
}

func (s floatState) toExpState() expState {
	return expState{sign: s.sign, b: s.b, fe: s.fe, es: bignum.Positive, e: 0}
}

func (s floatState) toToken() Token {
	bf := bignum.BigFloat{Significand: bignum.BigInt{Sign: s.sign, Mag: s.b}, Exp: s.fe}
	return number(bigFloatToF64(bf))
}

type expState struct {
	sign bignum.Sign
	b    bignum.BigUint
	fe   int64
	es   bignum.Sign
	e    int64
}

func (s expState) addDigit(c rune) expState {
	s.e = s.e*10 + int64(digitToNumber(c))
	return s
}

func (s expState) toToken() Token {
	exp := s.fe
	if s.es == bignum.Positive {
		exp += s.e
	} else {
		exp -= s.e
	}
	bf := bignum.BigFloat{Significand: bignum.BigInt{Sign: s.sign, Mag: s.b}, Exp: exp}
	return number(bigFloatToF64(bf))
}

type parseMinusState struct{}

func (parseMinusState) push(c rune) ([]Token, state) {
	switch {
	case c == '0':
		return nil, parseZeroState{sign: bignum.Negative}
	case c >= '1' && c <= '9':
		return nil, parseIntState{integerState{sign: bignum.Negative, b: bignum.FromU64(digitToNumber(c))}}
	default:
		return invalidNumber(c)
	}
}

func (parseMinusState) end() []Token { return []Token{errToken(InvalidNumber)} }

type parseZeroState struct{ sign bignum.Sign }

func (p parseZeroState) push(c rune) ([]Token, state) {
	switch {
	case c >= '0' && c <= '9':
		return invalidNumber(c)
	case c == '.':
		return nil, parseFracBeginState{integerState{sign: p.sign, b: bignum.Zero}}
	case c == 'e' || c == 'E':
		return nil, parseExpBeginState{expState{sign: p.sign, b: bignum.Zero, fe: 0, es: bignum.Positive, e: 0}}
	case c == 'n':
		return nil, parseBigIntState{integerState{sign: p.sign, b: bignum.Zero}}
	case isTerminalForNumber(c):
		return transfer([]Token{number(0)}, initialState{}, c)
	default:
		return invalidNumber(c)
	}
}

func (parseZeroState) end() []Token { return []Token{number(0)} }

type parseIntState struct{ s integerState }

func (p parseIntState) push(c rune) ([]Token, state) {
	switch {
	case c >= '0' && c <= '9':
		return nil, parseIntState{p.s.addDigit(c)}
	case c == '.':
		return nil, parseFracBeginState{p.s}
	case c == 'e' || c == 'E':
		return nil, parseExpBeginState{p.s.toExpState()}
	case c == 'n':
		return nil, parseBigIntState{p.s}
	case isTerminalForNumber(c):
		return transfer([]Token{p.s.toToken()}, initialState{}, c)
	default:
		return invalidNumber(c)
	}
}

func (p parseIntState) end() []Token { return []Token{p.s.toToken()} }

type parseFracBeginState struct{ s integerState }

func (p parseFracBeginState) push(c rune) ([]Token, state) {
	if c >= '0' && c <= '9' {
		return nil, parseFracState{p.s.toFloatState().addDigit(c)}
	}
	return invalidNumber(c)
}

func (parseFracBeginState) end() []Token { return []Token{errToken(InvalidNumber)} }

type parseFracState struct{ s floatState }

func (p parseFracState) push(c rune) ([]Token, state) {
	switch {
	case c >= '0' && c <= '9':
		return nil, parseFracState{p.s.addDigit(c)}
	case c == 'e' || c == 'E':
		return nil, parseExpBeginState{p.s.toExpState()}
	case isTerminalForNumber(c):
		return transfer([]Token{p.s.toToken()}, initialState{}, c)
	default:
		return invalidNumber(c)
	}
}

func (p parseFracState) end() []Token { return []Token{p.s.toToken()} }

type parseExpBeginState struct{ s expState }

func (p parseExpBeginState) push(c rune) ([]Token, state) {
	switch {
	case c >= '0' && c <= '9':
		return nil, parseExpState{p.s.addDigit(c)}
	case c == '+':
		return nil, parseExpSignState{p.s}
	case c == '-':
		s := p.s
		s.es = bignum.Negative
		return nil, parseExpSignState{s}
	case isTerminalForNumber(c):
		return transfer([]Token{p.s.toToken()}, initialState{}, c)
	default:
		return invalidNumber(c)
	}
}

func (parseExpBeginState) end() []Token { return []Token{errToken(InvalidNumber)} }

type parseExpSignState struct{ s expState }

func (p parseExpSignState) push(c rune) ([]Token, state) { return parseExpState(p).push(c) }
func (p parseExpSignState) end() []Token                 { return []Token{errToken(InvalidNumber)} }

type parseExpState struct{ s expState }

func (p parseExpState) push(c rune) ([]Token, state) {
	switch {
	case c >= '0' && c <= '9':
		return nil, parseExpState{p.s.addDigit(c)}
	case isTerminalForNumber(c):
		return transfer([]Token{p.s.toToken()}, initialState{}, c)
	default:
		return invalidNumber(c)
	}
}

func (p parseExpState) end() []Token { return []Token{p.s.toToken()} }

type parseBigIntState struct{ s integerState }

func (p parseBigIntState) push(c rune) ([]Token, state) {
	if isTerminalForNumber(c) {
		return transfer([]Token{p.s.toBigIntToken()}, initialState{}, c)
	}
	return invalidNumber(c)
}

func (p parseBigIntState) end() []Token { return []Token{p.s.toBigIntToken()} }
