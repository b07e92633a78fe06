package parse

import (
	"github.com/functionalscript/nanvm-sub000/pkg/nanvmerr"
	"github.com/functionalscript/nanvm-sub000/pkg/token"
	"github.com/functionalscript/nanvm-sub000/pkg/value"
)

// anyState is one value under construction (§4.J AnyState): the wire
// format negotiated so far, the sub-status within that value, the
// current slot, a stack of enclosing containers, and the const table
// bare identifiers resolve against.
type anyState struct {
	format  Format
	status  Status
	current element
	stack   []stackElement
	consts  map[string]value.Any
	alloc   value.Allocator
}

func newAnyState(alloc value.Allocator) anyState {
	return anyState{status: StatusInitial, current: noneElement(), consts: map[string]value.Any{}, alloc: alloc}
}

// anyOutcome is the result of feeding one token to an anyState:
// continue with a new state, succeed with a completed value, or fail
// terminally.
type anyOutcome struct {
	kind    outcomeKind
	state   anyState
	value   value.Any
	err     *nanvmerr.Error
	// importPath is set only when status transitions into
	// StatusImportValue's "need to load a new file" branch: the caller
	// (parser.go) is responsible for resolving it against pkg/module and
	// feeding the loaded value back in as an ImportEnd's current.
	importPath string
}

type outcomeKind uint8

const (
	outcomeContinue outcomeKind = iota
	outcomeSuccess
	outcomeError
)

func contOutcome(s anyState) anyOutcome { return anyOutcome{kind: outcomeContinue, state: s} }
func contImport(s anyState, path string) anyOutcome {
	return anyOutcome{kind: outcomeContinue, state: s, importPath: path}
}
func successOutcome(s anyState, v value.Any) anyOutcome {
	return anyOutcome{kind: outcomeSuccess, state: s, value: v}
}
func errOutcome(kind nanvmerr.Kind) anyOutcome {
	return anyOutcome{kind: outcomeError, err: nanvmerr.New(kind)}
}

// push feeds one token to the state machine per its current status
// (§4.J AnyState transition table).
func (s anyState) push(t token.Token) anyOutcome {
	switch s.status {
	case StatusInitial, StatusObjectColon:
		return s.parseValue(t)
	case StatusArrayBegin:
		return s.parseArrayBegin(t)
	case StatusArrayValue:
		return s.parseArrayValue(t)
	case StatusArrayComma:
		return s.parseArrayComma(t)
	case StatusObjectBegin:
		return s.parseObjectBegin(t)
	case StatusObjectKey:
		return s.parseObjectKey(t)
	case StatusObjectValue:
		return s.parseObjectNext(t)
	case StatusObjectComma:
		return s.parseObjectComma(t)
	case StatusImportBegin:
		return s.parseImportBegin(t)
	case StatusImportValue:
		return s.parseImportValue(t)
	case StatusImportEnd:
		return s.parseImportEnd(t)
	default:
		return errOutcome(nanvmerr.UnexpectedToken)
	}
}

// tryTokenToAny converts a value-shaped token (number, string, bigint,
// true/false/null, or a const-bound identifier) directly into a value,
// mirroring JsonToken::try_to_any. Tokens with no value shape (brackets,
// punctuation) return ok=false so the caller can dispatch on them
// instead.
func (s anyState) tryTokenToAny(t token.Token) (value.Any, bool) {
	switch t.Kind {
	case token.KindNumber:
		return value.NewNumber(t.Num), true
	case token.KindBigInt:
		return value.NewBigIntIn(s.alloc, t.Big), true
	case token.KindString:
		return value.NewStringIn(s.alloc, value.JSString{Units: utf16Units(t.Str)}), true
	case token.KindTrue:
		return value.NewBool(true), true
	case token.KindFalse:
		return value.NewBool(false), true
	case token.KindNull:
		return value.NewNull(), true
	case token.KindId:
		v, ok := s.consts[t.Str]
		return v, ok
	default:
		return value.Any{}, false
	}
}

func (s anyState) parseValue(t token.Token) anyOutcome {
	switch t.Kind {
	case token.KindArrayBegin:
		return s.beginArray()
	case token.KindObjectBegin:
		return s.beginObject()
	case token.KindId:
		if t.Str == "require" && s.format.IsCjsCompatible() {
			return s.beginImport()
		}
	}
	if v, ok := s.tryTokenToAny(t); ok {
		return s.pushValue(v)
	}
	return errOutcome(nanvmerr.UnexpectedToken)
}

func (s anyState) pushValue(v value.Any) anyOutcome {
	switch s.current.kind {
	case elementNone:
		s.status = StatusInitial
		s.current = noneElement()
		return successOutcome(s, v)
	case elementStack:
		top := s.current.stack
		if top.isObject {
			top.object = top.object.set(top.object.key, v)
			s.status = StatusObjectValue
		} else {
			top.array = append(top.array, v)
			s.status = StatusArrayValue
		}
		s.current = stackElementOf(top)
		return contOutcome(s)
	default:
		return errOutcome(nanvmerr.UnexpectedToken)
	}
}

func (s anyState) pushKey(key string) anyOutcome {
	if s.current.kind != elementStack || !s.current.stack.isObject {
		return errOutcome(nanvmerr.UnexpectedToken)
	}
	top := s.current.stack
	top.object.key = key
	s.status = StatusObjectKey
	s.current = stackElementOf(top)
	return contOutcome(s)
}

func (s anyState) parseArrayComma(t token.Token) anyOutcome {
	switch t.Kind {
	case token.KindArrayBegin:
		return s.beginArray()
	case token.KindObjectBegin:
		return s.beginObject()
	case token.KindArrayEnd:
		return s.endArray()
	case token.KindId:
		if t.Str == "require" && s.format.IsCjsCompatible() {
			return s.beginImport()
		}
	}
	if v, ok := s.tryTokenToAny(t); ok {
		return s.pushValue(v)
	}
	return errOutcome(nanvmerr.UnexpectedToken)
}

func (s anyState) parseArrayBegin(t token.Token) anyOutcome {
	switch t.Kind {
	case token.KindArrayBegin:
		return s.beginArray()
	case token.KindArrayEnd:
		return s.endArray()
	case token.KindObjectBegin:
		return s.beginObject()
	case token.KindId:
		if t.Str == "require" && s.format.IsCjsCompatible() {
			return s.beginImport()
		}
	}
	if v, ok := s.tryTokenToAny(t); ok {
		return s.pushValue(v)
	}
	return errOutcome(nanvmerr.UnexpectedToken)
}

func (s anyState) parseArrayValue(t token.Token) anyOutcome {
	switch t.Kind {
	case token.KindArrayEnd:
		return s.endArray()
	case token.KindComma:
		s.status = StatusArrayComma
		return contOutcome(s)
	default:
		return errOutcome(nanvmerr.UnexpectedToken)
	}
}

func (s anyState) beginArray() anyOutcome {
	if s.current.kind == elementStack {
		s.stack = append(s.stack, s.current.stack)
	}
	s.status = StatusArrayBegin
	s.current = stackElementOf(arrayFrame())
	return contOutcome(s)
}

func (s anyState) endArray() anyOutcome {
	top := s.current.stack
	items := append([]value.Any(nil), top.array...)
	arr := value.NewArrayIn(s.alloc, value.JSArray{Items: items})
	s.current = s.popStack()
	return s.pushValue(arr)
}

func (s anyState) parseObjectBegin(t token.Token) anyOutcome {
	switch {
	case t.Kind == token.KindString:
		return s.pushKey(t.Str)
	case t.Kind == token.KindId && s.format.IsDjs():
		return s.pushKey(t.Str)
	case t.Kind == token.KindObjectEnd:
		return s.endObject()
	default:
		return errOutcome(nanvmerr.UnexpectedToken)
	}
}

func (s anyState) parseObjectNext(t token.Token) anyOutcome {
	switch t.Kind {
	case token.KindObjectEnd:
		return s.endObject()
	case token.KindComma:
		s.status = StatusObjectComma
		return contOutcome(s)
	default:
		return errOutcome(nanvmerr.UnexpectedToken)
	}
}

func (s anyState) parseObjectComma(t token.Token) anyOutcome {
	switch {
	case t.Kind == token.KindString:
		return s.pushKey(t.Str)
	case t.Kind == token.KindId && s.format.IsDjs():
		return s.pushKey(t.Str)
	case t.Kind == token.KindObjectEnd:
		return s.endObject()
	default:
		return errOutcome(nanvmerr.UnexpectedToken)
	}
}

func (s anyState) parseObjectKey(t token.Token) anyOutcome {
	if t.Kind == token.KindColon {
		s.status = StatusObjectColon
		return contOutcome(s)
	}
	return errOutcome(nanvmerr.UnexpectedToken)
}

func (s anyState) beginObject() anyOutcome {
	if s.current.kind == elementStack {
		s.stack = append(s.stack, s.current.stack)
	}
	s.status = StatusObjectBegin
	s.current = stackElementOf(objectFrame())
	return contOutcome(s)
}

func (s anyState) endObject() anyOutcome {
	top := s.current.stack
	entries := append([]value.ObjectEntry(nil), top.object.entries...)
	obj := value.NewObjectIn(s.alloc, value.JSObject{Entries: entries})
	s.current = s.popStack()
	return s.pushValue(obj)
}

func (s anyState) popStack() element {
	n := len(s.stack)
	if n == 0 {
		return noneElement()
	}
	top := s.stack[n-1]
	s.stack = s.stack[:n-1]
	return stackElementOf(top)
}

// beginImport handles the "require" identifier: push the current
// container (if any) and switch to expecting "(".
func (s anyState) beginImport() anyOutcome {
	if s.current.kind == elementStack {
		s.stack = append(s.stack, s.current.stack)
	}
	s.format = s.format.setCjs()
	s.status = StatusImportBegin
	s.current = noneElement()
	return contOutcome(s)
}

func (s anyState) parseImportBegin(t token.Token) anyOutcome {
	if t.Kind == token.KindOpeningParenthesis {
		s.status = StatusImportValue
		return contOutcome(s)
	}
	return errOutcome(nanvmerr.WrongRequireStatement)
}

// parseImportValue only recognises the string literal path; resolving
// it against the module cache (cycle detection, cache hit, or a fresh
// load) is the caller's job (parser.go), since anyState itself has no
// access to pkg/module or pkg/ioabs. It returns a contImport outcome
// carrying the path; the loader's foldAnyOutcome resolves that path and
// feeds the resulting value back through resolveImportHit.
func (s anyState) parseImportValue(t token.Token) anyOutcome {
	if t.Kind != token.KindString {
		return errOutcome(nanvmerr.WrongRequireStatement)
	}
	return contImport(s, t.Str)
}

func (s anyState) resolveImportHit(v value.Any) anyState {
	s.status = StatusImportEnd
	s.current = anyElement(v)
	return s
}

func (s anyState) parseImportEnd(t token.Token) anyOutcome {
	if t.Kind != token.KindClosingParenthesis {
		return errOutcome(nanvmerr.WrongRequireStatement)
	}
	return s.endImport()
}

func (s anyState) endImport() anyOutcome {
	if s.current.kind != elementAny {
		return errOutcome(nanvmerr.WrongRequireStatement)
	}
	v := s.current.any
	s.status = StatusInitial
	s.current = s.popStack()
	return s.pushValue(v)
}

// utf16Units encodes a Go string (already decoded from UTF-8 by the
// tokenizer's \uXXXX handling) into UTF-16 code units, per §1's scope
// note: "no support for surrogate pairs beyond UTF-16 code-unit
// storage" — runes above the BMP are encoded as a surrogate pair the
// same way utf16.Encode does, and storage itself is flat code units,
// never re-interpreted as scalar values.
func utf16Units(s string) []uint16 {
	return encodeUTF16(s)
}
