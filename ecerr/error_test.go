package ecerr

import (
	"encoding/json"
	"testing"
)

func TestErrorFormatting(t *testing.T) {

	lexErr := NewLexError(3, 7, "unterminated string")

	if lexErr.Error() != "LUASCRIPT_LEX: unterminated string (Line:3 Pos:7)" {
		t.Error("Unexpected result:", lexErr.Error())
		return
	}

	wrapped := Wrap("lex", "main.js", lexErr)

	if wrapped.Error() != "LUASCRIPT_LEX: unterminated string (Line:3 Pos:7) [phase:lex] [file:main.js]" {
		t.Error("Unexpected result:", wrapped.Error())
		return
	}

	// Original error must remain untouched by Wrap

	if lexErr.Phase != "" || lexErr.Filename != "" {
		t.Error("Wrap must not mutate the original error")
		return
	}
}

func TestParseErrorDetail(t *testing.T) {

	err := NewParseError(1, 5, "';'", "'}'")

	if err.Error() != "LUASCRIPT_PARSE: expected ';', found '}' (Line:1 Pos:5)" {
		t.Error("Unexpected result:", err.Error())
		return
	}
}

func TestIRErrorDiagnostics(t *testing.T) {

	diags := []Diagnostic{
		{NodeID: 4, Message: "missing condition", Fatal: true},
		{NodeID: 9, Message: "unknown kind", Fatal: false},
	}

	err := NewIRError(diags)

	if err.Error() != "LUASCRIPT_IR: missing condition" {
		t.Error("Unexpected result:", err.Error())
		return
	}

	b, jerr := json.Marshal(err)
	if jerr != nil {
		t.Error(jerr)
		return
	}

	var obj map[string]interface{}
	if jerr = json.Unmarshal(b, &obj); jerr != nil {
		t.Error(jerr)
		return
	}

	if obj["kind"] != "IR" {
		t.Error("Unexpected kind in JSON:", obj["kind"])
	}
}

func TestBalanceError(t *testing.T) {
	err := NewBalanceError(42, "string")

	if err.Error() != "LUASCRIPT_BALANCE: unbalanced delimiter in string (Index:42) [phase:string]" {
		t.Error("Unexpected result:", err.Error())
	}
}

func TestWrapNonCoreError(t *testing.T) {
	var plain error = errFake("disk full")

	wrapped := Wrap("io", "out.lua", plain)

	e, ok := wrapped.(*Error)
	if !ok || e.Kind != KindIO || e.Detail != "disk full" {
		t.Error("Unexpected result:", wrapped)
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
