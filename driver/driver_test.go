package driver

import (
	"strings"
	"testing"

	"github.com/krotik/luascript/ecerr"
)

func TestTranspileIRPipeline(t *testing.T) {
	d := New()
	res, err := d.Transpile("if (a === b && !c) { return 1; } else { return 0; }", Options{
		IncludeRuntime:     false,
		UseCanonicalIR:     true,
		ValidateLuaBalance: true,
		Indent:             "  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IR == nil {
		t.Error("expected IR pipeline to populate Result.IR")
	}
	for _, want := range []string{"if a == b and not c then", "return 1", "else", "return 0", "end"} {
		if !strings.Contains(res.Code, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, res.Code)
		}
	}
}

func TestTranspileLegacyPipelineOmitsIR(t *testing.T) {
	d := New()
	res, err := d.Transpile("let x = 1 + 2;", Options{UseCanonicalIR: false, IncludeRuntime: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IR != nil {
		t.Error("expected legacy pipeline to leave Result.IR nil")
	}
	if !strings.Contains(res.Code, "local x") {
		t.Errorf("expected 'local x', got:\n%s", res.Code)
	}
}

func TestTranspileEmptyInputIsValidationError(t *testing.T) {
	d := New()
	_, err := d.Transpile("", Options{})
	if err == nil {
		t.Fatal("expected an error for empty input")
	}
	if e, ok := err.(*ecerr.Error); !ok || e.Kind != ecerr.KindValidation {
		t.Errorf("expected a ValidationError, got %v", err)
	}
}

func TestTranspileForbiddenConstructIsValidationError(t *testing.T) {
	d := New()
	_, err := d.Transpile("eval(x);", Options{})
	if err == nil {
		t.Fatal("expected an error for a forbidden construct")
	}
}

func TestTranspileCachesRepeatedCalls(t *testing.T) {
	d := New()
	src := "let x = 1;"
	if _, err := d.Transpile(src, Options{UseCanonicalIR: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Transpile(src, Options{UseCanonicalIR: true}); err != nil {
		t.Fatal(err)
	}

	stats := d.Stats()
	if stats.CacheHits != 1 {
		t.Errorf("expected exactly 1 cache hit after a repeated call, got %d", stats.CacheHits)
	}
	if stats.TranspilationsCount != 2 {
		t.Errorf("expected 2 recorded transpilations, got %d", stats.TranspilationsCount)
	}
}

func TestTranspileParseErrorIsTyped(t *testing.T) {
	d := New()
	_, err := d.Transpile("let x = ;", Options{UseCanonicalIR: true})
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if e, ok := err.(*ecerr.Error); !ok || e.Kind != ecerr.KindParse {
		t.Errorf("expected a ParseError, got %v", err)
	}
}
