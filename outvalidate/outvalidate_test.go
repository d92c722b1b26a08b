package outvalidate

import (
	"testing"

	"github.com/krotik/luascript/ecerr"
)

func TestCheckBalanceAccepts(t *testing.T) {
	code := `
local function f()
  if x then
    return 1
  end
end
`
	if err := CheckBalance(code); err != nil {
		t.Fatalf("expected balanced code to pass, got %v", err)
	}
}

func TestCheckBalanceRejectsUnclosedParen(t *testing.T) {
	err := CheckBalance("local x = (1 + 2\n")
	if err == nil {
		t.Fatal("expected an error for an unclosed paren")
	}
	if e, ok := err.(*ecerr.Error); !ok || e.Kind != ecerr.KindBalance {
		t.Errorf("expected a BalanceError, got %v", err)
	}
}

func TestCheckBalanceIgnoresDelimitersInStringsAndComments(t *testing.T) {
	code := "local s = \"(unbalanced\"\n-- an unmatched ( in a comment\nlocal x = 1\n"
	if err := CheckBalance(code); err != nil {
		t.Fatalf("expected string/comment contents to be ignored, got %v", err)
	}
}

func TestCheckKeywordBalanceRejectsMissingEnd(t *testing.T) {
	// "function" and "if" each open, only one "end" closes: a
	// keyword-balance imbalance, not a bracket mismatch (the parens on
	// "f()" are themselves balanced), so this is OutputValidationError
	// territory rather than BalanceError — see DESIGN.md.
	err := CheckKeywordBalance("function f() if x then end\n")
	if err == nil {
		t.Fatal("expected an error for a missing closing 'end'")
	}
}

func TestCheckKeywordBalanceAccepts(t *testing.T) {
	code := `
local function f()
  while x < 10 do
    x = x + 1
  end
end
`
	if err := CheckKeywordBalance(code); err != nil {
		t.Fatalf("expected keyword-balanced code to pass, got %v", err)
	}
}

func TestCheckKeywordBalanceRejectsForbiddenArtifact(t *testing.T) {
	err := CheckKeywordBalance("local x = a === b\n")
	if err == nil {
		t.Fatal("expected an error for a forbidden '===' artifact")
	}
}

func TestCheckKeywordBalanceRejectsUnmatchedOpening(t *testing.T) {
	err := CheckKeywordBalance("if x then\n  return 1\n")
	if err == nil {
		t.Fatal("expected an error for an unmatched opening keyword")
	}
}

func TestValidateRequiresRuntimeMarkerWhenInjected(t *testing.T) {
	err := Validate("local x = 1\n", Options{CheckBalance: true, RuntimeInjected: true})
	if err == nil {
		t.Fatal("expected a missing-marker error")
	}
}
