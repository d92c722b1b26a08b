package ir

import (
	"testing"

	"github.com/krotik/luascript/arena"
	"github.com/krotik/luascript/lexer"
	"github.com/krotik/luascript/parser"
)

func mustLower(t *testing.T, src string) *Module {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	tree, program, err := parser.Parse(toks, arena.New(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	return Lower(tree, program, "test.js")
}

func TestLowerVariableDeclaration(t *testing.T) {
	m := mustLower(t, "let x = 1 + 2;")

	if len(m.Body) != 1 {
		t.Fatalf("Expected 1 top-level statement, got %d", len(m.Body))
	}

	stmt := m.Get(m.Body[0])
	if stmt.Kind != KindVariableDeclaration {
		t.Fatalf("Expected VariableDeclaration, got %v", stmt.Kind)
	}

	res := Validate(m)
	if !res.Valid {
		t.Errorf("Expected valid IR, got errors: %v", res.Errors)
	}
}

func TestLowerNumericForRange(t *testing.T) {
	m := mustLower(t, "for (let i = 0; i < 10; i++) { sum += i; }")

	stmt := m.Get(m.Body[0])
	if stmt.Kind != KindForRange {
		t.Fatalf("Expected ForRange, got %v", stmt.Kind)
	}

	varName, _ := stmt.FieldString("var")
	if varName != "i" {
		t.Errorf("Unexpected range var: %v", varName)
	}
	inclusive, _ := stmt.FieldBool("inclusive")
	if inclusive {
		t.Error("Expected exclusive range for '<' test")
	}
}

func TestLowerGeneralFor(t *testing.T) {
	m := mustLower(t, "for (x = 0; x < 10; x = x * 2) { y = y + 1; }")

	stmt := m.Get(m.Body[0])
	if stmt.Kind != KindForGeneric {
		t.Fatalf("Expected ForGeneric for non-canonical header, got %v", stmt.Kind)
	}
}

func TestLowerArrowExpressionBody(t *testing.T) {
	m := mustLower(t, "const inc = x => x + 1;")

	decl := m.Get(m.Body[0])
	decls, _ := decl.FieldIDs("declarations")
	declarator := m.Get(decls[0])
	initID, _ := declarator.FieldID("init")
	arrow := m.Get(initID)

	if arrow.Kind != KindArrowFunction {
		t.Fatalf("Expected ArrowFunction, got %v", arrow.Kind)
	}

	stmts, _ := arrow.Statements()
	if len(stmts) != 1 {
		t.Fatalf("Expected a single lowered ReturnStatement, got %d", len(stmts))
	}
	ret := m.Get(stmts[0])
	if ret.Kind != KindReturnStatement {
		t.Errorf("Expected ReturnStatement, got %v", ret.Kind)
	}
}

func TestLowerSwitchElidesBreak(t *testing.T) {
	m := mustLower(t, `switch (v) { case 1: a = 1; break; default: a = 0; }`)

	stmt := m.Get(m.Body[0])
	if stmt.Kind != KindSwitchLowered {
		t.Fatalf("Expected SwitchLowered, got %v", stmt.Kind)
	}

	cases, _ := stmt.FieldIDs("cases")
	firstCase := m.Get(cases[0])
	stmts, _ := firstCase.Statements()
	if len(stmts) != 1 {
		t.Fatalf("Expected break to be elided, got %d statements", len(stmts))
	}
}

func TestLowerParenthesizedExpression(t *testing.T) {
	m := mustLower(t, "let x = a * (b + c);")

	decl := m.Get(m.Body[0])
	decls, _ := decl.FieldIDs("declarations")
	declarator := m.Get(decls[0])
	initID, _ := declarator.FieldID("init")
	mul := m.Get(initID)

	if mul.Kind != KindBinaryExpression || mul.Value != "*" {
		t.Fatalf("Expected top-level '*' BinaryExpression, got %v %q", mul.Kind, mul.Value)
	}

	rightID, _ := mul.FieldID("right")
	paren := m.Get(rightID)
	if paren.Kind != KindParenthesizedExpression {
		t.Fatalf("Expected the right operand to stay wrapped in ParenthesizedExpression, got %v", paren.Kind)
	}

	inner, _ := paren.FieldID("expression")
	add := m.Get(inner)
	if add.Kind != KindBinaryExpression || add.Value != "+" {
		t.Fatalf("Expected the grouped '+' to survive inside the parens, got %v %q", add.Kind, add.Value)
	}

	res := Validate(m)
	if !res.Valid {
		t.Errorf("Expected valid IR, got errors: %v", res.Errors)
	}
}

func TestValidateReportsMissingStatements(t *testing.T) {
	m := NewModule("test.js")
	blockID := NodeID(1)
	m.Nodes[blockID] = &Node{ID: blockID, Kind: KindBlockStatement, Fields: map[string]interface{}{}}
	m.Body = []NodeID{blockID}

	res := Validate(m)
	if res.Valid {
		t.Error("Expected invalid result for a BlockStatement missing statements")
	}
	if len(res.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(res.Errors))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	m := mustLower(t, "let x = 1 + 2;")

	obj := m.ToJSONObject()
	m2, err := ModuleFromJSONObject(obj)
	if err != nil {
		t.Fatal(err)
	}

	if len(m2.Body) != len(m.Body) {
		t.Fatalf("Unexpected body length after round trip: %d", len(m2.Body))
	}

	res := Validate(m2)
	if !res.Valid {
		t.Errorf("Expected round-tripped IR to still validate, got errors: %v", res.Errors)
	}
}

func TestLegacyFieldNameTolerance(t *testing.T) {
	m := NewModule("test.js")
	m.Nodes[1] = &Node{ID: 1, Kind: KindBlockStatement, Fields: map[string]interface{}{
		"body": []NodeID{}, // legacy name instead of "statements"
	}}
	m.Body = []NodeID{1}

	res := Validate(m)
	if !res.Valid {
		t.Errorf("Expected legacy 'body' field to satisfy BlockStatement, got errors: %v", res.Errors)
	}
}
