package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/krotik/luascript/ecerr"
	"github.com/krotik/luascript/ir"
)

/*
exprStatement renders an expression used in statement position.
UpdateExpression and AssignmentExpression need special forms there
(Lua has neither ++/-- nor compound assignment operators); everything
else renders exactly as it would inside a larger expression.
*/
func (e *emitter) exprStatement(id ir.NodeID) (string, error) {
	n := e.node(id)
	if n == nil {
		return "", ecerr.NewEmitError(fmt.Sprintf("referenced node %d does not exist", id))
	}

	switch n.Kind {
	case ir.KindUpdateExpression:
		return e.updateExpression(n)
	case ir.KindAssignmentExpression:
		return e.assignmentExpression(n)
	default:
		return e.expr(id)
	}
}

/*
expr renders id as a value-producing expression, dispatching by kind.
*/
func (e *emitter) expr(id ir.NodeID) (string, error) {
	n := e.node(id)
	if n == nil {
		return "", ecerr.NewEmitError(fmt.Sprintf("referenced node %d does not exist", id))
	}

	switch n.Kind {
	case ir.KindIdentifier:
		return n.Value, nil

	case ir.KindNumericLiteral:
		return n.Value, nil

	case ir.KindStringLiteral:
		return strconv.Quote(n.Value), nil

	case ir.KindBooleanLiteral:
		return n.Value, nil

	case ir.KindNullLiteral:
		return "nil", nil

	case ir.KindArrowFunction:
		return e.arrowFunction(n)

	case ir.KindBinaryExpression:
		return e.binaryExpression(n)

	case ir.KindLogicalExpression:
		left, _ := n.FieldID("left")
		right, _ := n.FieldID("right")
		c1, err := e.expr(left)
		if err != nil {
			return "", err
		}
		c2, err := e.expr(right)
		if err != nil {
			return "", err
		}
		op, ok := binOp[n.Value]
		if !ok {
			return "", ecerr.NewEmitError(fmt.Sprintf("unknown logical operator %q", n.Value))
		}
		return render(exprTemplates["LogicalExpression_2"], map[string]string{"c1": c1, "op": op, "c2": c2}), nil

	case ir.KindUnaryExpression:
		return e.unaryExpression(n)

	case ir.KindUpdateExpression:
		return e.updateExpression(n)

	case ir.KindAssignmentExpression:
		return e.assignmentExpression(n)

	case ir.KindConditionalExpression:
		return e.conditionalExpression(n)

	case ir.KindParenthesizedExpression:
		return e.parenthesizedExpression(n)

	case ir.KindCallExpression:
		return e.callExpression(n)

	case ir.KindMemberExpression:
		return e.memberExpression(n)

	case ir.KindArrayExpression:
		return e.arrayExpression(n)

	case ir.KindObjectExpression:
		return e.objectExpression(n)

	default:
		return "", ecerr.NewEmitError(fmt.Sprintf("unknown IR kind %q", n.Kind))
	}
}

/*
arrowFunction renders an arrow used as a value (e.g. a declarator's
init): `function(params) ... end`, its body already lowered to a single
ReturnStatement when it was written as an expression body.
*/
func (e *emitter) arrowFunction(n *ir.Node) (string, error) {
	params, _ := n.Parameters()
	stmts, _ := n.Statements()

	if len(stmts) == 1 {
		ret := e.node(stmts[0])
		if ret.Kind == ir.KindReturnStatement {
			if arg, ok := ret.FieldID("argument"); ok {
				argStr, err := e.expr(arg)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("function(%s) return %s end", strings.Join(e.paramNames(params), ", "), argStr), nil
			}
		}
	}

	body, err := e.block(stmts, 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("function(%s)\n%send", strings.Join(e.paramNames(params), ", "), body), nil
}

/*
binaryExpression applies the operator table, except for "+" which needs
the string-concat heuristic: if either operand is statically known to be
a string, "+" renders as Lua's ".." rather than "+".
*/
func (e *emitter) binaryExpression(n *ir.Node) (string, error) {
	leftID, _ := n.FieldID("left")
	rightID, _ := n.FieldID("right")
	c1, err := e.expr(leftID)
	if err != nil {
		return "", err
	}
	c2, err := e.expr(rightID)
	if err != nil {
		return "", err
	}

	if n.Value == "+" && (e.isStringTyped(leftID) || e.isStringTyped(rightID)) {
		return render(exprTemplates["BinaryExpression_2"], map[string]string{"c1": c1, "op": "..", "c2": c2}), nil
	}

	op, ok := binOp[n.Value]
	if !ok {
		return "", ecerr.NewEmitError(fmt.Sprintf("unknown binary operator %q", n.Value))
	}
	return render(exprTemplates["BinaryExpression_2"], map[string]string{"c1": c1, "op": op, "c2": c2}), nil
}

/*
isStringTyped is a shallow, syntactic check used only to pick between
"+" and ".."; it recognizes a literal string and sums that already
contain one, which covers the common "prefix" + x + "suffix" pattern
without needing full type inference.
*/
func (e *emitter) isStringTyped(id ir.NodeID) bool {
	n := e.node(id)
	if n == nil {
		return false
	}
	switch n.Kind {
	case ir.KindStringLiteral:
		return true
	case ir.KindBinaryExpression:
		if n.Value != "+" {
			return false
		}
		left, _ := n.FieldID("left")
		right, _ := n.FieldID("right")
		return e.isStringTyped(left) || e.isStringTyped(right)
	case ir.KindParenthesizedExpression:
		inner, _ := n.FieldID("expression")
		return e.isStringTyped(inner)
	default:
		return false
	}
}

/*
parenthesizedExpression re-emits an explicit source grouping as Lua
parens, so a precedence override like `a * (b + c)` survives translation
instead of flattening to the operator table's default associativity.
*/
func (e *emitter) parenthesizedExpression(n *ir.Node) (string, error) {
	innerID, _ := n.FieldID("expression")
	inner, err := e.expr(innerID)
	if err != nil {
		return "", err
	}
	return "(" + inner + ")", nil
}

func (e *emitter) unaryExpression(n *ir.Node) (string, error) {
	argID, _ := n.FieldID("argument")
	argStr, err := e.expr(argID)
	if err != nil {
		return "", err
	}

	switch n.Value {
	case "!":
		return "not " + argStr, nil
	case "typeof":
		return fmt.Sprintf("type(%s)", argStr), nil
	case "-", "+":
		return n.Value + argStr, nil
	default:
		return "", ecerr.NewEmitError(fmt.Sprintf("unknown unary operator %q", n.Value))
	}
}

/*
updateExpression expands ++/-- to an assignment, since Lua has neither:
`x++` and `++x` both become `x = x + 1`. Pre/post distinction only
matters when the value is consumed, which the grammar restricts to
statement position here, so it is safe to drop.
*/
func (e *emitter) updateExpression(n *ir.Node) (string, error) {
	argID, _ := n.FieldID("argument")
	argStr, err := e.expr(argID)
	if err != nil {
		return "", err
	}

	var op string
	switch {
	case strings.HasSuffix(n.Value, "++"):
		op = "+"
	case strings.HasSuffix(n.Value, "--"):
		op = "-"
	default:
		return "", ecerr.NewEmitError(fmt.Sprintf("unknown update operator %q", n.Value))
	}
	return fmt.Sprintf("%s = %s %s 1", argStr, argStr, op), nil
}

/*
assignmentExpression expands a compound assignment (+=, -=, *=, /=) into
`lhs = lhs op rhs`, since Lua has no compound assignment operators;
plain "=" passes through unchanged.
*/
func (e *emitter) assignmentExpression(n *ir.Node) (string, error) {
	leftID, _ := n.FieldID("left")
	rightID, _ := n.FieldID("right")
	lhs, err := e.expr(leftID)
	if err != nil {
		return "", err
	}
	rhs, err := e.expr(rightID)
	if err != nil {
		return "", err
	}

	if n.Value == "=" {
		return fmt.Sprintf("%s = %s", lhs, rhs), nil
	}

	op, ok := compoundAssignOp[n.Value]
	if !ok {
		return "", ecerr.NewEmitError(fmt.Sprintf("unknown assignment operator %q", n.Value))
	}
	if op == "+" && (e.isStringTyped(leftID) || e.isStringTyped(rightID)) {
		op = ".."
	}
	return fmt.Sprintf("%s = %s %s %s", lhs, lhs, op, rhs), nil
}

func (e *emitter) conditionalExpression(n *ir.Node) (string, error) {
	testID, _ := n.FieldID("test")
	consID, _ := n.FieldID("consequent")
	altID, _ := n.FieldID("alternate")
	c1, err := e.expr(testID)
	if err != nil {
		return "", err
	}
	c2, err := e.expr(consID)
	if err != nil {
		return "", err
	}
	c3, err := e.expr(altID)
	if err != nil {
		return "", err
	}
	return render(exprTemplates["ConditionalExpression_3"], map[string]string{"c1": c1, "c2": c2, "c3": c3}), nil
}

func (e *emitter) callExpression(n *ir.Node) (string, error) {
	calleeID, _ := n.FieldID("callee")
	callee, err := e.expr(calleeID)
	if err != nil {
		return "", err
	}
	args, _ := n.Args()
	parts := make([]string, len(args))
	for i, a := range args {
		s, err := e.expr(a)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return fmt.Sprintf("%s(%s)", callee, strings.Join(parts, ", ")), nil
}

/*
memberExpression special-cases the non-computed ".length" property,
rendering it through Lua's "#" length operator instead of a field
access.
*/
func (e *emitter) memberExpression(n *ir.Node) (string, error) {
	objID, _ := n.FieldID("object")
	objStr, err := e.expr(objID)
	if err != nil {
		return "", err
	}

	computed, _ := n.FieldBool("computed")
	if computed {
		propID, _ := n.FieldID("property")
		propStr, err := e.expr(propID)
		if err != nil {
			return "", err
		}
		return render(exprTemplates["MemberExpressionComputed"], map[string]string{"c1": objStr, "c2": propStr}), nil
	}

	prop, _ := n.FieldString("property")
	if prop == "length" {
		return "#" + objStr, nil
	}
	return render(exprTemplates["MemberExpressionDot"], map[string]string{"c1": objStr, "prop": prop}), nil
}

func (e *emitter) arrayExpression(n *ir.Node) (string, error) {
	elems, _ := n.FieldIDs("elements")
	parts := make([]string, len(elems))
	for i, id := range elems {
		s, err := e.expr(id)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", ")), nil
}

func (e *emitter) objectExpression(n *ir.Node) (string, error) {
	props, _ := n.FieldIDs("properties")
	parts := make([]string, len(props))
	for i, id := range props {
		p := e.node(id)
		key, _ := p.FieldString("key")
		valID, _ := p.FieldID("value")
		valStr, err := e.expr(valID)
		if err != nil {
			return "", err
		}
		parts[i] = fmt.Sprintf("%s = %s", key, valStr)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", ")), nil
}
