package ir

import (
	"fmt"

	"devt.de/krotik/common/sortutil"

	"github.com/krotik/luascript/ecerr"
)

/*
Result is the outcome of Validate: valid is true only when errors is
empty (warnings alone do not invalidate a module).
*/
type Result struct {
	Valid    bool
	Errors   []ecerr.Diagnostic
	Warnings []ecerr.Diagnostic
}

/*
Validate asserts the structural invariants of m. It never panics on
malformed input; every problem is collected and returned rather than
raised, the same tolerant recursive-descent Validate() pattern a
runtime-value validator would use, generalized from runtime values to
IR nodes.
*/
func Validate(m *Module) Result {
	v := &validator{module: m}

	for _, id := range m.Body {
		v.visit(id)
	}

	return Result{
		Valid:    len(v.errors) == 0,
		Errors:   sortDiagnostics(v.errors),
		Warnings: sortDiagnostics(v.warnings),
	}
}

/*
sortDiagnostics orders diagnostics by node id for deterministic
golden-file output, using sortutil.UInt64s (an in-place uint64 sort)
over the distinct node ids, then re-expanding each id's diagnostics in
their original relative order.
*/
func sortDiagnostics(diags []ecerr.Diagnostic) []ecerr.Diagnostic {
	if len(diags) == 0 {
		return diags
	}

	byID := make(map[uint64][]ecerr.Diagnostic)
	ids := make([]uint64, 0, len(diags))
	for _, d := range diags {
		key := uint64(d.NodeID)
		if _, seen := byID[key]; !seen {
			ids = append(ids, key)
		}
		byID[key] = append(byID[key], d)
	}

	sortutil.UInt64s(ids)

	sorted := make([]ecerr.Diagnostic, 0, len(diags))
	for _, id := range ids {
		sorted = append(sorted, byID[id]...)
	}
	return sorted
}

type validator struct {
	module   *Module
	errors   []ecerr.Diagnostic
	warnings []ecerr.Diagnostic
}

func (v *validator) fail(id NodeID, msg string) {
	v.errors = append(v.errors, ecerr.Diagnostic{NodeID: uint32(id), Message: msg, Fatal: true})
}

func (v *validator) warn(id NodeID, msg string) {
	v.warnings = append(v.warnings, ecerr.Diagnostic{NodeID: uint32(id), Message: msg, Fatal: false})
}

func (v *validator) node(id NodeID) *Node {
	n := v.module.Get(id)
	if n == nil {
		v.fail(id, fmt.Sprintf("referenced node %d does not exist", id))
	}
	return n
}

/*
visit dispatches on kind via a direct switch rather than a map, since
each case both validates and recurses; a method-per-type dispatch style
fits that combination more closely than a table-driven approach would.
*/
func (v *validator) visit(id NodeID) {
	n := v.node(id)
	if n == nil {
		return
	}

	switch n.Kind {
	case KindBlockStatement, KindFunctionDeclaration, KindArrowFunction, KindWhileStatement,
		KindDoWhileStatement, KindForGeneric, KindForIn, KindForOf, KindForRange:
		v.visitStatements(n)

	case KindVariableDeclaration:
		decls, ok := n.FieldIDs("declarations")
		if !ok || len(decls) == 0 {
			v.fail(id, "VariableDeclaration has no declarations")
			return
		}
		for _, d := range decls {
			v.visitDeclarator(d)
		}

	case KindIfStatement:
		if _, ok := n.Condition(); !ok {
			v.fail(id, "IfStatement missing condition")
		}
		if cons, ok := n.FieldID("consequent"); ok {
			v.visit(cons)
		} else {
			v.fail(id, "IfStatement missing consequent")
		}
		if alt, ok := n.FieldID("alternate"); ok {
			v.visit(alt)
		}

	case KindSwitchLowered:
		if _, ok := n.FieldID("discriminant"); !ok {
			v.fail(id, "SwitchLowered missing discriminant")
		}
		cases, _ := n.FieldIDs("cases")
		for _, c := range cases {
			v.visit(c)
		}

	case KindSwitchCase:
		stmts, _ := n.Statements()
		for _, s := range stmts {
			v.visit(s)
		}

	case KindCallExpression:
		if _, ok := n.FieldID("callee"); !ok {
			v.fail(id, "CallExpression missing callee")
		}
		if _, ok := n.Args(); !ok {
			v.fail(id, "CallExpression missing args")
		}

	case KindParenthesizedExpression:
		if _, ok := n.FieldID("expression"); !ok {
			v.fail(id, "ParenthesizedExpression missing expression")
		}

	case KindReturnStatement, KindExpressionStatement, KindBreakStatement,
		KindContinueStatement, KindEmptyStatement, KindDeclarator, KindParameter,
		KindIdentifier, KindNumericLiteral, KindStringLiteral, KindBooleanLiteral,
		KindNullLiteral, KindBinaryExpression, KindLogicalExpression, KindUnaryExpression,
		KindUpdateExpression, KindAssignmentExpression, KindConditionalExpression,
		KindMemberExpression, KindArrayExpression, KindObjectExpression, KindProperty:
		// Leaf-ish or self-describing kinds: no invariant beyond existing.

	default:
		v.warn(id, fmt.Sprintf("unknown IR kind %q", n.Kind))
	}
}

func (v *validator) visitStatements(n *Node) {
	stmts, ok := n.Statements()
	if !ok {
		v.fail(n.ID, fmt.Sprintf("%s missing statements", n.Kind))
		return
	}
	for _, s := range stmts {
		v.visit(s)
	}
}

func (v *validator) visitDeclarator(id NodeID) {
	n := v.node(id)
	if n == nil {
		return
	}
	if _, ok := n.FieldString("id"); !ok {
		v.fail(id, "Declarator missing id")
	}
}
