// Package nanvmerr defines the parser-surface error taxonomy (§7) as a
// typed error, wrapped with github.com/pkg/errors so call sites can
// annotate and propagate without losing the original kind.
package nanvmerr

import "github.com/pkg/errors"

// Kind is one of the named parser/tokenizer/loader error kinds.
type Kind string

const (
	UnexpectedToken      Kind = "UnexpectedToken"
	UnexpectedEnd        Kind = "UnexpectedEnd"
	WrongExportStatement Kind = "WrongExportStatement"
	WrongConstStatement  Kind = "WrongConstStatement"
	WrongRequireStatement Kind = "WrongRequireStatement"
	WrongImportStatement Kind = "WrongImportStatement"
	CannotReadFile       Kind = "CannotReadFile"
	CircularDependency   Kind = "CircularDependency"
	NewLineExpected      Kind = "NewLineExpected"

	// Tokenizer-flavoured kinds, named after token.ErrorKind's values. The
	// tokenizer itself reports failures as token.ErrorKind on Error tokens
	// (which its tests assert on); no package here constructs these kinds.
	UnexpectedCharacter Kind = "UnexpectedCharacter"
	InvalidToken        Kind = "InvalidToken"
	InvalidNumber       Kind = "InvalidNumber"
	InvalidHex          Kind = "InvalidHex"
	MissingQuotes       Kind = "MissingQuotes"
)

// Error is the typed error value the tokenizer, parser, and module loader
// return. It is never used for contract violations — those are panics,
// per §7.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	switch {
	case e.msg == "" && e.cause == nil:
		return string(e.Kind)
	case e.cause == nil:
		return string(e.Kind) + ": " + e.msg
	case e.msg == "":
		return string(e.Kind) + ": " + e.cause.Error()
	default:
		return string(e.Kind) + ": " + e.msg + ": " + e.cause.Error()
	}
}

// Unwrap exposes the wrapped cause (if any) so errors.Is/As/Unwrap see
// through a Wrap-constructed Error to whatever produced it.
func (e *Error) Unwrap() error {
	return e.cause
}

// New builds a bare error of the given kind.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Newf builds an error of the given kind with a formatted detail message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: errors.Errorf(format, args...).Error()}
}

// Wrap annotates cause with msg, returning a *Error of kind so that Is and
// errors.As-based recovery by callers further up the stack still see kind,
// instead of being hidden behind a plain github.com/pkg/errors wrapper.
func Wrap(kind Kind, cause error, msg string) error {
	return &Error{Kind: kind, msg: msg, cause: cause}
}

// Is reports whether the first *Error found in err's chain (via
// errors.As, so err itself or any wrapped cause) has the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
