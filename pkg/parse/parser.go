// Package parse implements the parser state machine of §4.J: a token
// stream is folded into a typed value tree, with const bindings, CJS
// require() and MJS import/export recognised and resolved through
// pkg/module and pkg/ioabs.
package parse

import (
	"github.com/functionalscript/nanvm-sub000/pkg/ioabs"
	"github.com/functionalscript/nanvm-sub000/pkg/module"
	"github.com/functionalscript/nanvm-sub000/pkg/nanvmerr"
	"github.com/functionalscript/nanvm-sub000/pkg/token"
	"github.com/functionalscript/nanvm-sub000/pkg/value"
)

// jsonKind is the top-level state discriminator (§4.J "Top-level
// state").
type jsonKind uint8

const (
	jsonRoot jsonKind = iota
	jsonConst
	jsonModule
	jsonResult
	jsonError
)

// jsonState is the top-level parse state: exactly one of its payload
// fields is meaningful, selected by kind.
type jsonState struct {
	kind     jsonKind
	root     rootState
	constKey string
	any      anyState
	format   Format
	result   value.Any
	err      *nanvmerr.Error
}

// Result is a completed parse: the value tree plus the wire format the
// parse settled on (§9 "Config objects").
type Result struct {
	Value  value.Any
	Format Format
}

// loader resolves require()/import targets against the module cache,
// reading and recursively parsing new files as needed (§4.K).
type loader struct {
	io       ioabs.IO
	cache    *module.Cache
	path     string // the file currently being parsed, for relative resolution
	depth    int
	maxDepth int // 0 means unbounded
	alloc    value.Allocator
}

// resolve returns the value bound to relative (require("./x") or
// import ... from "./x"), loading and parsing it if this is the first
// time it's been seen, or failing with CircularDependency/CannotReadFile.
func (l *loader) resolve(relative string) (value.Any, error) {
	target := module.Resolve(l.path, relative)
	if v, ok := l.cache.Complete[target]; ok {
		return v, nil
	}
	if l.cache.Progress[target] {
		return value.Any{}, nanvmerr.New(nanvmerr.CircularDependency)
	}
	if l.maxDepth > 0 && l.depth >= l.maxDepth {
		return value.Any{}, nanvmerr.Newf(nanvmerr.CannotReadFile, "import depth exceeds configured maximum %d at %s", l.maxDepth, target)
	}
	l.cache.Progress[target] = true
	text, err := l.io.ReadToString(target)
	if err != nil {
		return value.Any{}, nanvmerr.Wrap(nanvmerr.CannotReadFile, err, target)
	}
	res, err := l.parseFile(target, text)
	if err != nil {
		return value.Any{}, err
	}
	delete(l.cache.Progress, target)
	l.cache.Complete[target] = res.Value
	return res.Value, nil
}

// parseFile runs the full token-then-parse pipeline over text as if it
// were loaded from path, reusing this loader's cache for any further
// nested requires/imports text contains.
func (l *loader) parseFile(path, text string) (Result, error) {
	inner := &loader{io: l.io, cache: l.cache, path: path, depth: l.depth + 1, maxDepth: l.maxDepth, alloc: l.alloc}
	return inner.run(text)
}

func (l *loader) run(text string) (Result, error) {
	state := jsonState{kind: jsonRoot, root: newRootState(l.alloc)}
	tokens := token.Tokenize(text)
	for _, t := range tokens {
		state = l.push(state, t)
		if state.kind == jsonError {
			return Result{}, state.err
		}
	}
	switch state.kind {
	case jsonResult:
		return Result{Value: state.result, Format: state.format}, nil
	case jsonError:
		return Result{}, state.err
	default:
		return Result{}, nanvmerr.New(nanvmerr.UnexpectedEnd)
	}
}

// push feeds one token through the top-level state machine, resolving
// any require()/import it surfaces before returning. A NewLine token
// is delivered only while in jsonRoot (§4.J "json_state_push"); every
// other state silently ignores it, since only root-level keyword
// recognition cares about line boundaries. Once a top-level value has
// completed (jsonResult), a trailing NewLine or Semicolon is likewise
// a no-op statement terminator rather than an error — the same "accept
// either, don't guess a stricter rule" call §9 makes for the root
// keyword chains, generalised to the value a module.exports/export
// default statement produced.
func (l *loader) push(s jsonState, t token.Token) jsonState {
	if (t.Kind == token.KindNewLine || t.Kind == token.KindSemicolon) && s.kind == jsonResult {
		return s
	}
	if t.Kind == token.KindNewLine && s.kind != jsonRoot {
		return s
	}
	switch s.kind {
	case jsonRoot:
		return l.pushRoot(s.root, t)
	case jsonConst:
		return l.pushConst(s, t)
	case jsonModule:
		return l.pushModule(s.any, t)
	case jsonResult:
		return jsonState{kind: jsonError, err: nanvmerr.New(nanvmerr.UnexpectedToken)}
	default:
		return s
	}
}

func (l *loader) pushRoot(r rootState, t token.Token) jsonState {
	tr := r.push(t)
	if tr.delegate {
		return l.foldAnyOutcome(tr.delegateState.push(t), func(bound anyState) jsonState {
			return jsonState{kind: jsonModule, any: bound}
		}, func(final anyState, v value.Any) jsonState {
			return jsonState{kind: jsonResult, format: final.format, result: v}
		})
	}
	next := tr.next
	if tr.hasImport {
		v, err := l.resolve(tr.importPath)
		if err != nil {
			return errState(err)
		}
		// next.kind is jsonRoot whenever hasImport is set (the
		// `import ID from "path"` arm never delegates).
		next.root.any.consts[tr.importID] = v
	}
	return next
}

func (l *loader) pushConst(s jsonState, t token.Token) jsonState {
	out := s.any.push(t)
	return l.foldAnyOutcome(out, func(bound anyState) jsonState {
		return jsonState{kind: jsonConst, constKey: s.constKey, any: bound}
	}, func(final anyState, v value.Any) jsonState {
		final.consts[s.constKey] = v
		r := newRootState(l.alloc)
		r.any = final
		r.newLine = false
		return jsonState{kind: jsonRoot, root: r}
	})
}

func (l *loader) pushModule(s anyState, t token.Token) jsonState {
	out := s.push(t)
	return l.foldAnyOutcome(out, func(bound anyState) jsonState {
		return jsonState{kind: jsonModule, any: bound}
	}, func(final anyState, v value.Any) jsonState {
		return jsonState{kind: jsonResult, format: final.format, result: v}
	})
}

// foldAnyOutcome applies a require() resolution (if the outcome
// surfaced one) and otherwise dispatches to onContinue/onSuccess; the
// error case is shared by every caller.
func (l *loader) foldAnyOutcome(out anyOutcome, onContinue func(anyState) jsonState, onSuccess func(anyState, value.Any) jsonState) jsonState {
	switch out.kind {
	case outcomeContinue:
		if out.importPath != "" {
			v, err := l.resolve(out.importPath)
			if err != nil {
				return errState(err)
			}
			return onContinue(out.state.resolveImportHit(v))
		}
		return onContinue(out.state)
	case outcomeSuccess:
		return onSuccess(out.state, out.value)
	default:
		return errState(out.err)
	}
}

func errState(err error) jsonState {
	e, ok := err.(*nanvmerr.Error)
	if !ok {
		e = nanvmerr.New(nanvmerr.UnexpectedToken)
	}
	return jsonState{kind: jsonError, err: e}
}

// Parse parses the file at path (read through io) as a top-level
// compile unit, returning the resolved value tree and its settled wire
// format. cache is the module cache this parse (and any transitive
// require()/import it triggers) shares; pass module.New() for a fresh
// top-level parse.
func Parse(io ioabs.IO, path string, cache *module.Cache) (Result, error) {
	return ParseWithDepth(io, path, cache, 0)
}

// ParseWithDepth is Parse with a config.Config.MaxImportDepth-style
// bound on require()/import recursion (0 means unbounded); exceeding
// it fails with CannotReadFile, the same as any other load failure.
func ParseWithDepth(io ioabs.IO, path string, cache *module.Cache, maxDepth int) (Result, error) {
	return ParseWithOptions(io, path, cache, maxDepth, value.GlobalAllocator)
}

// ParseWithOptions is Parse fully parameterized over a
// config.Config.MaxImportDepth-style recursion bound (0 means
// unbounded) and the value.Allocator every value built during this
// parse (and any nested require()/import it triggers) is allocated
// through (§9 "Config objects": arena-vs-global selection).
func ParseWithOptions(io ioabs.IO, path string, cache *module.Cache, maxDepth int, alloc value.Allocator) (Result, error) {
	cache.Progress[path] = true
	text, err := io.ReadToString(path)
	if err != nil {
		return Result{}, nanvmerr.Wrap(nanvmerr.CannotReadFile, err, path)
	}
	l := &loader{io: io, cache: cache, path: path, maxDepth: maxDepth, alloc: alloc}
	res, err := l.run(text)
	if err != nil {
		return Result{}, err
	}
	delete(cache.Progress, path)
	cache.Complete[path] = res.Value
	return res, nil
}

// ParseString parses text as a standalone compile unit with no
// filesystem backing: require()/import targets resolve relative to an
// empty path and fail with CannotReadFile unless io supplies them
// in-memory (ioabs.Virtual is the usual choice for this).
func ParseString(io ioabs.IO, text string) (Result, error) {
	l := &loader{io: io, cache: module.New(), path: "", alloc: value.GlobalAllocator}
	return l.run(text)
}
