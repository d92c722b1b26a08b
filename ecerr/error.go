/*
Package ecerr defines the typed error hierarchy shared by every phase of
the transpiler core (lexer, parser, lowerer, IR validator, emitter, output
validator) and by the driver that sequences them.

Propagation policy: a phase never catches and silently converts one of
these errors into another kind. It either succeeds, or returns exactly one
typed error which the driver attaches phase/filename information to before
handing it back to the caller.
*/
package ecerr

import (
	"encoding/json"
	"fmt"
)

/*
Kind identifies which of the typed error categories an Error belongs to.
*/
type Kind string

/*
The typed error categories, one per failing phase.
*/
const (
	KindValidation       Kind = "VALIDATION"
	KindLex              Kind = "LEX"
	KindParse            Kind = "PARSE"
	KindIR               Kind = "IR"
	KindEmit             Kind = "EMIT"
	KindBalance          Kind = "BALANCE"
	KindOutputValidation Kind = "OUTPUT_VALIDATION"
	KindMemory           Kind = "MEMORY"
	KindIO               Kind = "IO"
)

/*
Diagnostic is a single per-node problem reported by the IR validator.
*/
type Diagnostic struct {
	NodeID  uint32 // Offending IR node, 0 if not node-specific
	Message string
	Fatal   bool // false == warning, true == error
}

/*
Error is the concrete type behind every error kind the core returns.
*/
type Error struct {
	Kind     Kind
	Phase    string // Set by the driver once the error reaches it (a BalanceError starts with its scanner state)
	Filename string // Set by the driver once the error reaches it
	Detail   string

	Line  int // 1-based, 0 if not applicable
	Pos   int // 1-based column, 0 if not applicable
	Index int // Byte index, used by BalanceError

	Expected string // ParseError: token that was expected
	Found    string // ParseError: token that was found instead

	Diagnostics []Diagnostic // IRError: full per-node report
}

/*
Error returns the single-line, CLI-ready representation of this error:

	LUASCRIPT_<KIND>: <detail> (Line:l Pos:p)
*/
func (e *Error) Error() string {
	msg := fmt.Sprintf("LUASCRIPT_%s: %s", e.Kind, e.Detail)

	if e.Line != 0 {
		msg = fmt.Sprintf("%s (Line:%d Pos:%d)", msg, e.Line, e.Pos)
	} else if e.Index != 0 {
		msg = fmt.Sprintf("%s (Index:%d)", msg, e.Index)
	}

	if e.Phase != "" {
		msg = fmt.Sprintf("%s [phase:%s]", msg, e.Phase)
	}
	if e.Filename != "" {
		msg = fmt.Sprintf("%s [file:%s]", msg, e.Filename)
	}

	return msg
}

/*
ToJSONObject renders this error as a plain map.
*/
func (e *Error) ToJSONObject() map[string]interface{} {
	obj := map[string]interface{}{
		"kind":   string(e.Kind),
		"detail": e.Detail,
	}
	if e.Phase != "" {
		obj["phase"] = e.Phase
	}
	if e.Filename != "" {
		obj["filename"] = e.Filename
	}
	if e.Line != 0 {
		obj["line"] = e.Line
		obj["pos"] = e.Pos
	}
	if e.Index != 0 {
		obj["index"] = e.Index
	}
	if e.Expected != "" {
		obj["expected"] = e.Expected
	}
	if e.Found != "" {
		obj["found"] = e.Found
	}
	if len(e.Diagnostics) > 0 {
		obj["diagnostics"] = e.Diagnostics
	}
	return obj
}

/*
MarshalJSON serializes this Error into a JSON string.
*/
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToJSONObject())
}

// Constructors
// ============

/*
NewValidationError creates an input-validation failure (not a string,
empty, oversized, forbidden construct, unbalanced/unterminated input).
*/
func NewValidationError(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

/*
NewLexError creates a lexer failure at the given source position.
*/
func NewLexError(line, pos int, detail string) *Error {
	return &Error{Kind: KindLex, Detail: detail, Line: line, Pos: pos}
}

/*
NewParseError creates a parser failure at the given source position.
expected/found may be empty when not applicable (e.g. depth/node-count
budget errors).
*/
func NewParseError(line, pos int, expected, found string) *Error {
	detail := found
	if expected != "" {
		detail = fmt.Sprintf("expected %s, found %s", expected, found)
	}
	return &Error{Kind: KindParse, Detail: detail, Line: line, Pos: pos, Expected: expected, Found: found}
}

/*
NewIRError creates a structural-invariant failure carrying the full list
of per-node diagnostics collected by the validator.
*/
func NewIRError(diags []Diagnostic) *Error {
	detail := "IR failed validation"
	if len(diags) > 0 {
		detail = diags[0].Message
	}
	return &Error{Kind: KindIR, Detail: detail, Diagnostics: diags}
}

/*
NewEmitError creates an emitter invariant failure (unknown IR kind after
validation should not occur; this is the fallback for that case).
*/
func NewEmitError(detail string) *Error {
	return &Error{Kind: KindEmit, Detail: detail}
}

/*
NewBalanceError creates a delimiter-balance failure in emitted output.
phase names which scanner state the mismatch was found in (code,
line_comment, block_comment, string, long_string).
*/
func NewBalanceError(index int, phase string) *Error {
	return &Error{Kind: KindBalance, Detail: fmt.Sprintf("unbalanced delimiter in %s", phase), Index: index, Phase: phase}
}

/*
NewOutputValidationError creates a forbidden-artifact / keyword-imbalance /
missing-runtime-marker failure.
*/
func NewOutputValidationError(detail string) *Error {
	return &Error{Kind: KindOutputValidation, Detail: detail}
}

/*
NewMemoryError creates an arena-exhaustion failure (node count or
recursion depth budget exceeded).
*/
func NewMemoryError(detail string) *Error {
	return &Error{Kind: KindMemory, Detail: detail}
}

/*
NewIOError creates a file read/write failure. Only ever raised by the
driver, never by the core.
*/
func NewIOError(detail string) *Error {
	return &Error{Kind: KindIO, Detail: detail}
}

/*
Wrap attaches phase and filename attribution to err. If err is not of
type *Error it is wrapped in a generic IOError so the caller still
receives a typed, CLI-formattable error.
*/
func Wrap(phase, filename string, err error) error {
	if err == nil {
		return nil
	}

	e, ok := err.(*Error)
	if !ok {
		e = &Error{Kind: KindIO, Detail: err.Error()}
	}

	cp := *e
	cp.Phase = phase
	cp.Filename = filename

	return &cp
}
