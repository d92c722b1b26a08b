package emit

import (
	"strings"
	"testing"

	"github.com/krotik/luascript/arena"
	"github.com/krotik/luascript/ir"
	"github.com/krotik/luascript/lexer"
	"github.com/krotik/luascript/parser"
)

func mustEmit(t *testing.T, src string) string {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	tree, program, err := parser.Parse(toks, arena.New(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	m := ir.Lower(tree, program, "test.js")
	if res := ir.Validate(m); !res.Valid {
		t.Fatalf("unexpected invalid IR: %v", res.Errors)
	}
	out, err := Emit(m, Options{})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestEmitLogicalAndEquality(t *testing.T) {
	out := mustEmit(t, "let ok = (a === b) && (c !== d);")

	for _, want := range []string{"==", "~=", "and"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "===") || strings.Contains(out, "&&") {
		t.Errorf("expected JS operator forms to be translated, got:\n%s", out)
	}
}

func TestEmitStringConcatVsAddition(t *testing.T) {
	out := mustEmit(t, `let greeting = "hi " + name; let total = 1 + 2;`)

	if !strings.Contains(out, `"hi " .. name`) {
		t.Errorf("expected string concatenation to use '..', got:\n%s", out)
	}
	if !strings.Contains(out, "1 + 2") {
		t.Errorf("expected numeric addition to stay '+', got:\n%s", out)
	}
}

func TestEmitParenthesesOverridePrecedence(t *testing.T) {
	out := mustEmit(t, "let x = a * (b + c);")

	if !strings.Contains(out, "a * (b + c)") {
		t.Errorf("expected grouping to survive translation, got:\n%s", out)
	}
}

func TestEmitParenthesesWithStringConcat(t *testing.T) {
	out := mustEmit(t, `let msg = "x=" + x + (1 + 2);`)

	if !strings.Contains(out, `"x=" .. x .. (1 + 2)`) {
		t.Errorf("expected grouped numeric addition to stay '+' inside parens, got:\n%s", out)
	}
}

func TestEmitNumericForRangeWithArrayLength(t *testing.T) {
	out := mustEmit(t, "for (let i = 0; i < arr.length; i++) { sum = sum + arr[i]; }")

	if !strings.Contains(out, "for i = 0, #arr - 1 do") {
		t.Errorf("expected exclusive numeric range over array length, got:\n%s", out)
	}
	if strings.Contains(out, "arr.length") {
		t.Errorf("expected .length to translate to '#', got:\n%s", out)
	}
}

func TestEmitArrowExpressionBody(t *testing.T) {
	out := mustEmit(t, "const inc = x => x + 1;")

	if !strings.Contains(out, "function(x) return x + 1 end") {
		t.Errorf("expected expression-bodied arrow to render inline, got:\n%s", out)
	}
	if !strings.Contains(out, "local inc") {
		t.Errorf("expected 'local inc', got:\n%s", out)
	}
}

func TestEmitSwitchLoweringElidesBreak(t *testing.T) {
	out := mustEmit(t, `switch (v) { case 1: a = 1; break; case 2: a = 2; break; default: a = 0; }`)

	if strings.Contains(out, "break") {
		t.Errorf("expected switch lowering to contain no break tokens, got:\n%s", out)
	}
	for _, want := range []string{"if false then", "elseif", "== 1 then", "== 2 then", "else"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestEmitWhileAndIfElseChain(t *testing.T) {
	out := mustEmit(t, `
		while (x < 10) {
			if (x == 0) {
				y = 1;
			} else if (x == 1) {
				y = 2;
			} else {
				y = 3;
			}
			x = x + 1;
		}
	`)

	if !strings.Contains(out, "while x < 10 do") {
		t.Errorf("expected translated while header, got:\n%s", out)
	}
	if !strings.Contains(out, "elseif x == 1 then") {
		t.Errorf("expected chained elseif rather than nested else/if, got:\n%s", out)
	}
}

func TestEmitForOfAndForIn(t *testing.T) {
	out := mustEmit(t, `
		for (const v of items) { total = total + v; }
		for (const k in obj) { keys = keys + k; }
	`)

	if !strings.Contains(out, "in ipairs(items) do") {
		t.Errorf("expected for-of to lower to ipairs, got:\n%s", out)
	}
	if !strings.Contains(out, "in pairs(obj) do") {
		t.Errorf("expected for-in to lower to pairs, got:\n%s", out)
	}
}
