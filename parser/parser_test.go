package parser

import (
	"testing"

	"github.com/krotik/luascript/arena"
	"github.com/krotik/luascript/ast"
	"github.com/krotik/luascript/lexer"
)

func mustParse(t *testing.T, src string) (*ast.Tree, ast.ID) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	tree, program, err := Parse(toks, arena.New(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	return tree, program
}

func TestParseVariableDeclaration(t *testing.T) {
	tree, program := mustParse(t, "let x = 1 + 2;")

	root := tree.Get(program)
	if len(root.Children) != 1 {
		t.Fatalf("Expected 1 statement, got %d", len(root.Children))
	}

	decl := tree.Get(root.Children[0])
	if decl.Kind != ast.VariableDeclaration || decl.Value != "let" {
		t.Errorf("Unexpected declaration node: %+v", decl)
	}
}

func TestParseIfElse(t *testing.T) {
	tree, program := mustParse(t, `if (a === b && !c) { return 1; } else { return 0; }`)

	root := tree.Get(program)
	ifNode := tree.Get(root.Children[0])
	if ifNode.Kind != ast.IfStatement {
		t.Fatalf("Expected IfStatement, got %v", ifNode.Kind)
	}
	if len(ifNode.Children) != 3 {
		t.Fatalf("Expected condition+consequent+alternate, got %d children", len(ifNode.Children))
	}
}

func TestParseArrowExpressionBody(t *testing.T) {
	tree, program := mustParse(t, "const inc = x => x + 1;")

	root := tree.Get(program)
	decl := tree.Get(root.Children[0])
	declarator := tree.Get(decl.Children[0])
	arrow := tree.Get(declarator.Children[0])

	if arrow.Kind != ast.ArrowFunction {
		t.Fatalf("Expected ArrowFunction, got %v", arrow.Kind)
	}
	if len(arrow.Children) != 2 {
		t.Fatalf("Expected 1 param + 1 body expr, got %d", len(arrow.Children))
	}
}

func TestParseCStyleFor(t *testing.T) {
	tree, program := mustParse(t, "for (let i = 0; i < arr.length; i++) { sum += arr[i]; }")

	root := tree.Get(program)
	forNode := tree.Get(root.Children[0])
	if forNode.Kind != ast.ForStatement {
		t.Fatalf("Expected ForStatement, got %v", forNode.Kind)
	}
	if len(forNode.Children) != 4 {
		t.Fatalf("Expected init+cond+update+body, got %d", len(forNode.Children))
	}
}

func TestParseSwitch(t *testing.T) {
	tree, program := mustParse(t, `switch (v) { case 1: a = 1; break; default: a = 0; }`)

	root := tree.Get(program)
	sw := tree.Get(root.Children[0])
	if sw.Kind != ast.SwitchStatement {
		t.Fatalf("Expected SwitchStatement, got %v", sw.Kind)
	}
	if len(sw.Children) != 3 { // discriminant + 2 cases
		t.Fatalf("Expected discriminant + 2 cases, got %d", len(sw.Children))
	}
}

func TestParseMissingSemicolonIsParseError(t *testing.T) {
	toks, err := lexer.Tokenize("let x = 1")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Parse(toks, arena.New(0, 0)); err == nil {
		t.Error("Expected a parse error for missing ';'")
	}
}

func TestParseDepthBudgetExceeded(t *testing.T) {
	src := "let x = "
	for i := 0; i < 50; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 50; i++ {
		src += ")"
	}
	src += ";"

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Parse(toks, arena.New(0, 5)); err == nil {
		t.Error("Expected a depth-budget parse error")
	}
}
