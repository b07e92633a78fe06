package parse

import "github.com/functionalscript/nanvm-sub000/pkg/value"

// Status is the sub-state of an in-progress value (§4.J AnyState).
type Status uint8

const (
	StatusInitial Status = iota
	StatusArrayBegin
	StatusArrayValue
	StatusArrayComma
	StatusObjectBegin
	StatusObjectKey
	StatusObjectColon
	StatusObjectValue
	StatusObjectComma
	StatusImportBegin
	StatusImportValue
	StatusImportEnd
)

// stackObject is an object under construction: entries collected so far
// plus the key most recently read, pending its value (§3 "Parser
// stacks").
type stackObject struct {
	entries []value.ObjectEntry
	key     string
}

func (o stackObject) set(key string, v value.Any) stackObject {
	o.entries = append(o.entries, value.ObjectEntry{Key: key, Value: v})
	o.key = ""
	return o
}

// stackElement is one open container frame: either an array under
// construction or an object under construction.
type stackElement struct {
	isObject bool
	array    []value.Any
	object   stackObject
}

func arrayFrame() stackElement  { return stackElement{isObject: false} }
func objectFrame() stackElement { return stackElement{isObject: true} }

// element is the "current" slot AnyState carries: nothing under
// construction, an open container on top of the stack, or a terminal
// value ready to be folded into its parent (§3 "Parser stacks").
type element struct {
	kind  elementKind
	stack stackElement
	any   value.Any
}

type elementKind uint8

const (
	elementNone elementKind = iota
	elementStack
	elementAny
)

func noneElement() element                  { return element{kind: elementNone} }
func stackElementOf(s stackElement) element { return element{kind: elementStack, stack: s} }
func anyElement(v value.Any) element        { return element{kind: elementAny, any: v} }
