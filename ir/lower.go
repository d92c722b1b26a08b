package ir

import (
	"fmt"

	"github.com/krotik/luascript/ast"
)

/*
Lower turns an AST into the canonical IR, lowering switch to a
SwitchLowered node and C-style for loops to ForRange or ForGeneric;
for-in/for-of and compound assignment keep their own IR forms and are
expanded by the emitter. It is total and deterministic: the only failure
mode is arena exhaustion, which happens earlier during parsing, so Lower
itself never errors.

Dispatch is a switch on ast.Kind in lowerStatement and lowerExpr.
*/
func Lower(tree *ast.Tree, program ast.ID, source string) *Module {
	b := newBuilder(source)
	l := &lowerer{tree: tree, b: b}

	programNode := tree.Get(program)
	for _, child := range programNode.Children {
		l.b.module.Body = append(l.b.module.Body, l.lowerStatement(child))
	}

	return l.b.module
}

type lowerer struct {
	tree *ast.Tree
	b    *builder
}

func (l *lowerer) lowerStatement(id ast.ID) NodeID {
	n := l.tree.Get(id)

	switch n.Kind {
	case ast.BlockStatement:
		return l.lowerBlock(id)
	case ast.VariableDeclaration:
		return l.lowerVariableDeclaration(n)
	case ast.FunctionDeclaration:
		return l.lowerFunctionDeclaration(n)
	case ast.IfStatement:
		return l.lowerIf(n)
	case ast.WhileStatement:
		return l.b.add(KindWhileStatement, "", map[string]interface{}{
			"condition":  l.lowerExpr(n.Children[0]),
			"statements": l.lowerBlockStatements(n.Children[1]),
		})
	case ast.DoWhileStatement:
		return l.b.add(KindDoWhileStatement, "", map[string]interface{}{
			"statements": l.lowerBlockStatements(n.Children[0]),
			"condition":  l.lowerExpr(n.Children[1]),
		})
	case ast.ForStatement:
		return l.lowerFor(n)
	case ast.ForInStatement:
		return l.b.add(KindForIn, n.Value, map[string]interface{}{
			"iterable":   l.lowerExpr(n.Children[0]),
			"statements": l.lowerBlockStatements(n.Children[1]),
		})
	case ast.ForOfStatement:
		return l.b.add(KindForOf, n.Value, map[string]interface{}{
			"iterable":   l.lowerExpr(n.Children[0]),
			"statements": l.lowerBlockStatements(n.Children[1]),
		})
	case ast.SwitchStatement:
		return l.lowerSwitch(n)
	case ast.BreakStatement:
		return l.b.add(KindBreakStatement, "", nil)
	case ast.ContinueStatement:
		return l.b.add(KindContinueStatement, "", nil)
	case ast.ReturnStatement:
		fields := map[string]interface{}{}
		if len(n.Children) > 0 {
			fields["argument"] = l.lowerExpr(n.Children[0])
		}
		return l.b.add(KindReturnStatement, "", fields)
	case ast.ExpressionStatement:
		return l.b.add(KindExpressionStatement, "", map[string]interface{}{
			"expression": l.lowerExpr(n.Children[0]),
		})
	case ast.EmptyStatement:
		return l.b.add(KindEmptyStatement, "", nil)
	default:
		panic(fmt.Sprintf("ir: lower: unhandled statement kind %v", n.Kind))
	}
}

func (l *lowerer) lowerBlock(id ast.ID) NodeID {
	return l.b.add(KindBlockStatement, "", map[string]interface{}{
		"statements": l.lowerBlockStatements(id),
	})
}

/*
lowerBlockStatements lowers a BlockStatement's children list directly
into a []NodeID, used wherever a construct embeds a body without needing
its own BlockStatement wrapper node (while/for/function bodies render
their statements inline).
*/
func (l *lowerer) lowerBlockStatements(blockID ast.ID) []NodeID {
	block := l.tree.Get(blockID)
	ids := make([]NodeID, len(block.Children))
	for i, c := range block.Children {
		ids[i] = l.lowerStatement(c)
	}
	return ids
}

func (l *lowerer) lowerVariableDeclaration(n *ast.Node) NodeID {
	decls := make([]NodeID, len(n.Children))
	for i, child := range n.Children {
		d := l.tree.Get(child)
		fields := map[string]interface{}{"id": d.Value}
		if len(d.Children) > 0 {
			fields["init"] = l.lowerExpr(d.Children[0])
		}
		decls[i] = l.b.add(KindDeclarator, d.Value, fields)
	}

	return l.b.add(KindVariableDeclaration, n.Value, map[string]interface{}{
		"declarations": decls,
	})
}

func (l *lowerer) lowerFunctionDeclaration(n *ast.Node) NodeID {
	bodyIdx := len(n.Children) - 1
	params := make([]NodeID, 0, bodyIdx)
	for _, child := range n.Children[:bodyIdx] {
		p := l.tree.Get(child)
		params = append(params, l.b.add(KindParameter, p.Value, nil))
	}

	return l.b.add(KindFunctionDeclaration, n.Value, map[string]interface{}{
		"parameters": params,
		"statements": l.lowerBlockStatements(n.Children[bodyIdx]),
	})
}

/*
lowerArrowFunction lowers an expression-bodied arrow to a function whose
body is a single ReturnStatement.
*/
func (l *lowerer) lowerArrowFunction(n *ast.Node) NodeID {
	bodyIdx := len(n.Children) - 1
	params := make([]NodeID, 0, bodyIdx)
	for _, child := range n.Children[:bodyIdx] {
		p := l.tree.Get(child)
		params = append(params, l.b.add(KindParameter, p.Value, nil))
	}

	bodyID := n.Children[bodyIdx]
	body := l.tree.Get(bodyID)

	var statements []NodeID
	if body.Kind == ast.BlockStatement {
		statements = l.lowerBlockStatements(bodyID)
	} else {
		ret := l.b.add(KindReturnStatement, "", map[string]interface{}{
			"argument": l.lowerExpr(bodyID),
		})
		statements = []NodeID{ret}
	}

	return l.b.add(KindArrowFunction, "", map[string]interface{}{
		"parameters": params,
		"statements": statements,
	})
}

func (l *lowerer) lowerIf(n *ast.Node) NodeID {
	fields := map[string]interface{}{
		"condition":  l.lowerExpr(n.Children[0]),
		"consequent": l.lowerStatement(n.Children[1]),
	}
	if len(n.Children) > 2 {
		fields["alternate"] = l.lowerStatement(n.Children[2])
	}
	return l.b.add(KindIfStatement, "", fields)
}

/*
lowerFor recognizes the canonical C-style numeric range header
`(let i = N; i </<= M; i++/i+=K)` and lowers it to ForRange; every other
shape lowers to the general ForGeneric form.
*/
func (l *lowerer) lowerFor(n *ast.Node) NodeID {
	initID, condID, updateID, bodyID := n.Children[0], n.Children[1], n.Children[2], n.Children[3]

	if rangeFields, ok := l.tryNumericRange(initID, condID, updateID); ok {
		rangeFields["statements"] = l.lowerBlockStatements(bodyID)
		return l.b.add(KindForRange, "", rangeFields)
	}

	fields := map[string]interface{}{"statements": l.lowerBlockStatements(bodyID)}
	if initID != 0 {
		fields["init"] = l.lowerForClause(initID)
	}
	if condID != 0 {
		fields["condition"] = l.lowerExpr(condID)
	}
	if updateID != 0 {
		fields["update"] = l.lowerExpr(updateID)
	}
	return l.b.add(KindForGeneric, "", fields)
}

/*
lowerForClause lowers a for-header init clause, which the parser may
have produced as either a VariableDeclaration or a bare expression.
*/
func (l *lowerer) lowerForClause(id ast.ID) NodeID {
	n := l.tree.Get(id)
	if n.Kind == ast.VariableDeclaration {
		return l.lowerVariableDeclaration(n)
	}
	return l.lowerExpr(id)
}

func (l *lowerer) tryNumericRange(initID, condID, updateID ast.ID) (map[string]interface{}, bool) {
	if initID == 0 || condID == 0 || updateID == 0 {
		return nil, false
	}

	initNode := l.tree.Get(initID)
	if initNode.Kind != ast.VariableDeclaration || len(initNode.Children) != 1 {
		return nil, false
	}
	declarator := l.tree.Get(initNode.Children[0])
	if len(declarator.Children) != 1 {
		return nil, false
	}
	varName := declarator.Value

	cond := l.tree.Get(condID)
	if cond.Kind != ast.BinaryExpression || len(cond.Children) != 2 {
		return nil, false
	}
	condLeft := l.tree.Get(cond.Children[0])
	if condLeft.Kind != ast.Identifier || condLeft.Value != varName {
		return nil, false
	}
	inclusive := false
	switch cond.Value {
	case "<":
		inclusive = false
	case "<=":
		inclusive = true
	default:
		return nil, false
	}

	update := l.tree.Get(updateID)
	var step string
	switch {
	case update.Kind == ast.UpdateExpression && (update.Value == "post:++" || update.Value == "pre:++"):
		target := l.tree.Get(update.Children[0])
		if target.Kind != ast.Identifier || target.Value != varName {
			return nil, false
		}
		step = "1"
	case update.Kind == ast.AssignmentExpression && update.Value == "+=":
		target := l.tree.Get(update.Children[0])
		if target.Kind != ast.Identifier || target.Value != varName {
			return nil, false
		}
		stepExpr := l.tree.Get(update.Children[1])
		if stepExpr.Kind != ast.NumericLiteral {
			return nil, false
		}
		step = stepExpr.Value
	default:
		return nil, false
	}

	return map[string]interface{}{
		"var":       varName,
		"start":     l.lowerExpr(declarator.Children[0]),
		"end":       l.lowerExpr(cond.Children[1]),
		"step":      step,
		"inclusive": inclusive,
	}, true
}

/*
lowerSwitch lowers a SwitchStatement to a SwitchLowered node carrying a
fresh selector name and a chained case list; the emitter renders the
`if false then elseif sel == ... end` form from this directly. The
selector name is derived from the switch's own AST id, which is unique
among the switches of the source file; while any node of the source
already carries that name, a numeric suffix is added and bumped.
*/
func (l *lowerer) lowerSwitch(n *ast.Node) NodeID {
	discriminant := l.lowerExpr(n.Children[0])

	selector := fmt.Sprintf("__switch%d", n.ID)
	for bump := 1; ; bump++ {
		taken := false
		for id := 1; id <= l.tree.Len(); id++ {
			if l.tree.Get(ast.ID(id)).Value == selector {
				taken = true
				break
			}
		}
		if !taken {
			break
		}
		selector = fmt.Sprintf("__switch%d_%d", n.ID, bump)
	}

	cases := make([]NodeID, 0, len(n.Children)-1)
	for _, caseChild := range n.Children[1:] {
		c := l.tree.Get(caseChild)

		fields := map[string]interface{}{}
		stmtStart := 0

		isDefault := c.Value == "default"
		if !isDefault {
			fields["test"] = l.lowerExpr(c.Children[0])
			stmtStart = 1
		}

		stmts := make([]NodeID, 0, len(c.Children)-stmtStart)
		for _, s := range c.Children[stmtStart:] {
			stmt := l.tree.Get(s)
			if stmt.Kind == ast.BreakStatement {
				continue // break is elided: the if/elseif chain never falls through
			}
			stmts = append(stmts, l.lowerStatement(s))
		}
		fields["statements"] = stmts
		fields["isDefault"] = isDefault

		cases = append(cases, l.b.add(KindSwitchCase, "", fields))
	}

	return l.b.add(KindSwitchLowered, selector, map[string]interface{}{
		"discriminant": discriminant,
		"cases":        cases,
	})
}

func (l *lowerer) lowerExpr(id ast.ID) NodeID {
	n := l.tree.Get(id)

	switch n.Kind {
	case ast.Identifier:
		return l.b.add(KindIdentifier, n.Value, nil)
	case ast.NumericLiteral:
		return l.b.add(KindNumericLiteral, n.Value, nil)
	case ast.StringLiteral:
		return l.b.add(KindStringLiteral, n.Value, nil)
	case ast.BooleanLiteral:
		return l.b.add(KindBooleanLiteral, n.Value, nil)
	case ast.NullLiteral:
		return l.b.add(KindNullLiteral, n.Value, nil)
	case ast.ArrowFunction:
		return l.lowerArrowFunction(n)
	case ast.BinaryExpression:
		return l.b.add(KindBinaryExpression, n.Value, map[string]interface{}{
			"left":  l.lowerExpr(n.Children[0]),
			"right": l.lowerExpr(n.Children[1]),
		})
	case ast.LogicalExpression:
		return l.b.add(KindLogicalExpression, n.Value, map[string]interface{}{
			"left":  l.lowerExpr(n.Children[0]),
			"right": l.lowerExpr(n.Children[1]),
		})
	case ast.UnaryExpression:
		return l.b.add(KindUnaryExpression, n.Value, map[string]interface{}{
			"argument": l.lowerExpr(n.Children[0]),
		})
	case ast.UpdateExpression:
		return l.b.add(KindUpdateExpression, n.Value, map[string]interface{}{
			"argument": l.lowerExpr(n.Children[0]),
		})
	case ast.AssignmentExpression:
		return l.b.add(KindAssignmentExpression, n.Value, map[string]interface{}{
			"left":  l.lowerExpr(n.Children[0]),
			"right": l.lowerExpr(n.Children[1]),
		})
	case ast.ConditionalExpression:
		return l.b.add(KindConditionalExpression, "", map[string]interface{}{
			"test":       l.lowerExpr(n.Children[0]),
			"consequent": l.lowerExpr(n.Children[1]),
			"alternate":  l.lowerExpr(n.Children[2]),
		})
	case ast.ParenthesizedExpression:
		return l.b.add(KindParenthesizedExpression, "", map[string]interface{}{
			"expression": l.lowerExpr(n.Children[0]),
		})
	case ast.CallExpression:
		args := make([]NodeID, 0, len(n.Children)-1)
		for _, a := range n.Children[1:] {
			args = append(args, l.lowerExpr(a))
		}
		return l.b.add(KindCallExpression, "", map[string]interface{}{
			"callee": l.lowerExpr(n.Children[0]),
			"args":   args,
		})
	case ast.MemberExpression:
		fields := map[string]interface{}{"object": l.lowerExpr(n.Children[0])}
		if n.Value == "[]" {
			fields["property"] = l.lowerExpr(n.Children[1])
			fields["computed"] = true
		} else {
			fields["property"] = n.Value
			fields["computed"] = false
		}
		return l.b.add(KindMemberExpression, "", fields)
	case ast.ArrayExpression:
		elems := make([]NodeID, len(n.Children))
		for i, c := range n.Children {
			elems[i] = l.lowerExpr(c)
		}
		return l.b.add(KindArrayExpression, "", map[string]interface{}{"elements": elems})
	case ast.ObjectExpression:
		props := make([]NodeID, len(n.Children))
		for i, c := range n.Children {
			p := l.tree.Get(c)
			props[i] = l.b.add(KindProperty, p.Value, map[string]interface{}{
				"key":   p.Value,
				"value": l.lowerExpr(p.Children[0]),
			})
		}
		return l.b.add(KindObjectExpression, "", map[string]interface{}{"properties": props})
	default:
		panic(fmt.Sprintf("ir: lower: unhandled expression kind %v", n.Kind))
	}
}
