package parse

import (
	"github.com/functionalscript/nanvm-sub000/pkg/nanvmerr"
	"github.com/functionalscript/nanvm-sub000/pkg/token"
	"github.com/functionalscript/nanvm-sub000/pkg/value"
)

// rootStatus tracks the multi-token leading keyword construct currently
// being recognised at top level (§4.J RootState).
type rootStatus uint8

const (
	rootInitial rootStatus = iota
	rootExport
	rootModule
	rootModuleDot
	rootModuleDotExports
	rootConst
	rootConstID
	rootImport
	rootImportID
	rootImportIDFrom
)

// rootState is the top-level driver state: which leading construct (if
// any) is in progress, the value state nested beneath it, and whether
// the current token is the first one on a new source line (§4.J
// "new_line must be true before any top-level keyword").
type rootState struct {
	status   rootStatus
	pending  string // ConstID / ImportID identifier collected so far
	any      anyState
	newLine  bool
}

func newRootState(alloc value.Allocator) rootState {
	return rootState{status: rootInitial, any: newAnyState(alloc), newLine: true}
}

// rootTransition is what rootState.push returns. Most arms settle
// `next` directly (keyword recognition never touches anyState). The
// two arms that do need anyState involvement instead set `delegate`:
// the driver (parser.go, which alone can resolve require()/import
// against the module cache) must push the same token through
// `delegateState.push(t)` itself and fold the result in, exactly as it
// already does for jsonModule. `hasImport` carries an unresolved
// `import ID from "path"` binding the driver must look up and insert
// into `next`'s const table.
type rootTransition struct {
	next          jsonState
	delegate      bool
	delegateState anyState
	importID      string
	importPath    string
	hasImport     bool
}

func (r rootState) push(t token.Token) rootTransition {
	switch r.status {
	case rootInitial:
		return r.pushInitial(t)
	case rootExport:
		if t.Kind == token.KindId && t.Str == "default" {
			return rootTransition{next: jsonState{kind: jsonModule, any: r.any}}
		}
		return errTransition(nanvmerr.WrongExportStatement)
	case rootModule:
		if t.Kind == token.KindDot {
			r.status = rootModuleDot
			r.newLine = false
			return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
		}
		return errTransition(nanvmerr.WrongExportStatement)
	case rootModuleDot:
		if t.Kind == token.KindId && t.Str == "exports" {
			r.status = rootModuleDotExports
			r.newLine = false
			return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
		}
		return errTransition(nanvmerr.WrongExportStatement)
	case rootModuleDotExports:
		if t.Kind == token.KindEquals {
			return rootTransition{next: jsonState{kind: jsonModule, any: r.any}}
		}
		return errTransition(nanvmerr.WrongExportStatement)
	case rootConst:
		if t.Kind == token.KindId {
			r.status = rootConstID
			r.pending = t.Str
			r.newLine = false
			return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
		}
		return errTransition(nanvmerr.WrongConstStatement)
	case rootConstID:
		if t.Kind == token.KindEquals {
			return rootTransition{next: jsonState{kind: jsonConst, constKey: r.pending, any: r.any}}
		}
		return errTransition(nanvmerr.WrongConstStatement)
	case rootImport:
		if t.Kind == token.KindId {
			r.status = rootImportID
			r.pending = t.Str
			r.newLine = false
			return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
		}
		return errTransition(nanvmerr.WrongImportStatement)
	case rootImportID:
		if t.Kind == token.KindId && t.Str == "from" {
			r.status = rootImportIDFrom
			r.newLine = false
			return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
		}
		return errTransition(nanvmerr.WrongImportStatement)
	case rootImportIDFrom:
		if t.Kind == token.KindString {
			id := r.pending
			r.status = rootInitial
			r.pending = ""
			r.newLine = false
			return rootTransition{
				next:       jsonState{kind: jsonRoot, root: r},
				importID:   id,
				importPath: t.Str,
				hasImport:  true,
			}
		}
		return errTransition(nanvmerr.WrongImportStatement)
	default:
		return errTransition(nanvmerr.UnexpectedToken)
	}
}

func (r rootState) pushInitial(t token.Token) rootTransition {
	// §9 open question: accept Semicolon as a statement terminator on
	// equal footing with NewLine (the original treats the two
	// inconsistently across paths; the spec instructs implementers not
	// to guess a stricter rule).
	if t.Kind == token.KindNewLine || t.Kind == token.KindSemicolon {
		r.newLine = true
		return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
	}
	if t.Kind == token.KindId {
		if !r.newLine {
			return errTransition(nanvmerr.NewLineExpected)
		}
		switch t.Str {
		case "const":
			r.status = rootConst
			r.newLine = false
			r.any.format = r.any.format.setDjs()
			return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
		case "export":
			if r.any.format.IsMjsCompatible() {
				r.status = rootExport
				r.newLine = false
				r.any.format = r.any.format.setMjs()
				return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
			}
		case "module":
			if r.any.format.IsCjsCompatible() {
				r.status = rootModule
				r.newLine = false
				r.any.format = r.any.format.setCjs()
				return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
			}
		case "import":
			if r.any.format.IsMjsCompatible() {
				r.status = rootImport
				r.newLine = false
				r.any.format = r.any.format.setMjs()
				return rootTransition{next: jsonState{kind: jsonRoot, root: r}}
			}
		}
		return r.delegateToAny(t)
	}
	if !r.newLine {
		return errTransition(nanvmerr.NewLineExpected)
	}
	return r.delegateToAny(t)
}

// delegateToAny marks that this token belongs to a plain top-level
// value (not a recognised keyword construct): the driver must push it
// through anyState itself, since only the driver can resolve a
// require() this token might trigger.
func (r rootState) delegateToAny(t token.Token) rootTransition {
	return rootTransition{delegate: true, delegateState: r.any}
}

func errTransition(kind nanvmerr.Kind) rootTransition {
	return rootTransition{next: jsonState{kind: jsonError, err: nanvmerr.New(kind)}}
}
