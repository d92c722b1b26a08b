package emit

import (
	"fmt"
	"strings"

	"github.com/krotik/luascript/ecerr"
	"github.com/krotik/luascript/ir"
)

/*
statement renders one IR statement node at the given indent level,
including its own leading pad and trailing newline. Dispatch is a direct
switch rather than a table, mirroring ir.validator.visit: each case both
renders and recurses, which a map of closures would obscure.
*/
func (e *emitter) statement(id ir.NodeID, level int) (string, error) {
	n := e.node(id)
	if n == nil {
		return "", ecerr.NewEmitError(fmt.Sprintf("referenced node %d does not exist", id))
	}
	pad := e.pad(level)

	switch n.Kind {
	case ir.KindBlockStatement:
		stmts, _ := n.Statements()
		return e.block(stmts, level)

	case ir.KindVariableDeclaration:
		return e.variableDeclaration(n, level)

	case ir.KindFunctionDeclaration:
		return e.functionDeclaration(n, level)

	case ir.KindIfStatement:
		return e.ifStatement(n, level)

	case ir.KindWhileStatement:
		cond, _ := n.Condition()
		condStr, err := e.expr(cond)
		if err != nil {
			return "", err
		}
		stmts, _ := n.Statements()
		body, err := e.loopBody(stmts, level+1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%swhile %s do\n%s%send\n", pad, condStr, body, pad), nil

	case ir.KindDoWhileStatement:
		stmts, _ := n.Statements()
		body, err := e.loopBody(stmts, level+1)
		if err != nil {
			return "", err
		}
		cond, _ := n.Condition()
		condStr, err := e.expr(cond)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%srepeat\n%s%suntil not (%s)\n", pad, body, pad, condStr), nil

	case ir.KindForRange:
		return e.forRange(n, level)

	case ir.KindForGeneric:
		return e.forGeneric(n, level)

	case ir.KindForIn:
		iterable, _ := n.FieldID("iterable")
		iterStr, err := e.expr(iterable)
		if err != nil {
			return "", err
		}
		stmts, _ := n.Statements()
		body, err := e.loopBody(stmts, level+1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%sfor %s, _ in pairs(%s) do\n%s%send\n", pad, n.Value, iterStr, body, pad), nil

	case ir.KindForOf:
		iterable, _ := n.FieldID("iterable")
		iterStr, err := e.expr(iterable)
		if err != nil {
			return "", err
		}
		stmts, _ := n.Statements()
		body, err := e.loopBody(stmts, level+1)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%sfor _, %s in ipairs(%s) do\n%s%send\n", pad, n.Value, iterStr, body, pad), nil

	case ir.KindSwitchLowered:
		return e.switchLowered(n, level)

	case ir.KindReturnStatement:
		if arg, ok := n.FieldID("argument"); ok {
			argStr, err := e.expr(arg)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%sreturn %s\n", pad, argStr), nil
		}
		return fmt.Sprintf("%sreturn\n", pad), nil

	case ir.KindExpressionStatement:
		expr, _ := n.FieldID("expression")
		s, err := e.exprStatement(expr)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%s\n", pad, s), nil

	case ir.KindBreakStatement:
		return fmt.Sprintf("%sbreak\n", pad), nil

	case ir.KindContinueStatement:
		return fmt.Sprintf("%sgoto continue\n", pad), nil

	case ir.KindEmptyStatement:
		return "", nil

	default:
		return "", ecerr.NewEmitError(fmt.Sprintf("unknown IR kind %q", n.Kind))
	}
}

/*
block renders a statement list at level, one rendered statement per
line, with no wrapper of its own.
*/
func (e *emitter) block(stmts []ir.NodeID, level int) (string, error) {
	var buf strings.Builder
	for _, id := range stmts {
		s, err := e.statement(id, level)
		if err != nil {
			return "", err
		}
		buf.WriteString(s)
	}
	return buf.String(), nil
}

/*
loopBody renders a loop's statement list followed by a continue label,
since Lua has no continue keyword; ContinueStatement lowers to `goto
continue` and every loop supplies the matching label at the end of its
body, used or not.
*/
func (e *emitter) loopBody(stmts []ir.NodeID, level int) (string, error) {
	body, err := e.block(stmts, level)
	if err != nil {
		return "", err
	}
	return body + e.pad(level) + "::continue::\n", nil
}

func (e *emitter) variableDeclaration(n *ir.Node, level int) (string, error) {
	pad := e.pad(level)
	decls, _ := n.FieldIDs("declarations")

	names := make([]string, len(decls))
	inits := make([]string, 0, len(decls))
	allHaveInit := true
	for i, id := range decls {
		d := e.node(id)
		name, _ := d.FieldString("id")
		names[i] = name
		if initID, ok := d.FieldID("init"); ok {
			s, err := e.expr(initID)
			if err != nil {
				return "", err
			}
			inits = append(inits, s)
		} else {
			allHaveInit = false
		}
	}

	if len(inits) == 0 {
		return fmt.Sprintf("%slocal %s\n", pad, strings.Join(names, ", ")), nil
	}
	if !allHaveInit {
		// Mixed initialized/uninitialized declarators in one statement:
		// declare all names, then assign the initialized ones in order.
		var buf strings.Builder
		buf.WriteString(fmt.Sprintf("%slocal %s\n", pad, strings.Join(names, ", ")))
		for i, id := range decls {
			d := e.node(id)
			if initID, ok := d.FieldID("init"); ok {
				s, err := e.expr(initID)
				if err != nil {
					return "", err
				}
				buf.WriteString(fmt.Sprintf("%s%s = %s\n", pad, names[i], s))
			}
		}
		return buf.String(), nil
	}

	return fmt.Sprintf("%slocal %s = %s\n", pad, strings.Join(names, ", "), strings.Join(inits, ", ")), nil
}

func (e *emitter) paramNames(ids []ir.NodeID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = e.node(id).Value
	}
	return names
}

func (e *emitter) functionDeclaration(n *ir.Node, level int) (string, error) {
	pad := e.pad(level)
	params, _ := n.Parameters()
	stmts, _ := n.Statements()
	body, err := e.block(stmts, level+1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%slocal function %s(%s)\n%s%send\n", pad, n.Value,
		strings.Join(e.paramNames(params), ", "), body, pad), nil
}

/*
ifStatement chains a nested IfStatement alternate into `elseif` rather
than an `else` wrapping another `if`, matching how the parser never
distinguishes an "else if" from an independently nested if.
*/
func (e *emitter) ifStatement(n *ir.Node, level int) (string, error) {
	pad := e.pad(level)
	cond, _ := n.Condition()
	condStr, err := e.expr(cond)
	if err != nil {
		return "", err
	}
	consID, _ := n.FieldID("consequent")
	cons, err := e.statement(consID, level+1)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%sif %s then\n%s", pad, condStr, cons))

	altID, hasAlt := n.FieldID("alternate")
	for hasAlt {
		alt := e.node(altID)
		if alt.Kind == ir.KindIfStatement {
			altCond, _ := alt.Condition()
			altCondStr, err := e.expr(altCond)
			if err != nil {
				return "", err
			}
			altConsID, _ := alt.FieldID("consequent")
			altCons, err := e.statement(altConsID, level+1)
			if err != nil {
				return "", err
			}
			buf.WriteString(fmt.Sprintf("%selseif %s then\n%s", pad, altCondStr, altCons))
			altID, hasAlt = alt.FieldID("alternate")
			continue
		}
		altBody, err := e.statement(altID, level+1)
		if err != nil {
			return "", err
		}
		buf.WriteString(fmt.Sprintf("%selse\n%s", pad, altBody))
		break
	}

	buf.WriteString(fmt.Sprintf("%send\n", pad))
	return buf.String(), nil
}

/*
forRange renders the canonical numeric loop. A `.length` member access
used as the upper bound renders through MemberExpression's own `#`
translation, and an exclusive test additionally subtracts 1 from the
rendered end expression so `i < arr.length` becomes
`for i = 0, #arr - 1 do`.
*/
func (e *emitter) forRange(n *ir.Node, level int) (string, error) {
	pad := e.pad(level)
	startID, _ := n.FieldID("start")
	endID, _ := n.FieldID("end")
	startStr, err := e.expr(startID)
	if err != nil {
		return "", err
	}
	endStr, err := e.expr(endID)
	if err != nil {
		return "", err
	}
	inclusive, _ := n.FieldBool("inclusive")
	if !inclusive {
		endStr = fmt.Sprintf("%s - 1", endStr)
	}
	step, _ := n.FieldString("step")

	header := fmt.Sprintf("%s = %s, %s", varOrUnderscore(n), startStr, endStr)
	if step != "" && step != "1" {
		header = fmt.Sprintf("%s, %s", header, step)
	}

	stmts, _ := n.Statements()
	body, err := e.loopBody(stmts, level+1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%sfor %s do\n%s%send\n", pad, header, body, pad), nil
}

func varOrUnderscore(n *ir.Node) string {
	v, _ := n.FieldString("var")
	if v == "" {
		return "_"
	}
	return v
}

/*
forGeneric renders a non-canonical C-style for header as init-then-while,
since Lua's numeric for only covers the canonical range shape: the init
clause runs once before the loop, and the update clause runs at the end
of every iteration, right before the continue label.
*/
func (e *emitter) forGeneric(n *ir.Node, level int) (string, error) {
	pad := e.pad(level)
	var buf strings.Builder

	if initID, ok := n.FieldID("init"); ok {
		s, err := e.forClauseStatement(initID, level)
		if err != nil {
			return "", err
		}
		buf.WriteString(s)
	}

	condStr := "true"
	if condID, ok := n.Condition(); ok {
		s, err := e.expr(condID)
		if err != nil {
			return "", err
		}
		condStr = s
	}

	stmts, _ := n.Statements()
	body, err := e.block(stmts, level+1)
	if err != nil {
		return "", err
	}
	if updateID, ok := n.FieldID("update"); ok {
		s, err := e.forClauseStatement(updateID, level+1)
		if err != nil {
			return "", err
		}
		body += s
	}
	body += e.pad(level+1) + "::continue::\n"

	buf.WriteString(fmt.Sprintf("%swhile %s do\n%s%send\n", pad, condStr, body, pad))
	return buf.String(), nil
}

/*
forClauseStatement renders a for-header init/update clause, which may be
a VariableDeclaration (a statement already) or a bare expression (which
needs wrapping the way an ExpressionStatement would render it).
*/
func (e *emitter) forClauseStatement(id ir.NodeID, level int) (string, error) {
	n := e.node(id)
	if n.Kind == ir.KindVariableDeclaration {
		return e.variableDeclaration(n, level)
	}
	s, err := e.exprStatement(id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s\n", e.pad(level), s), nil
}

/*
switchLowered renders the `local sel = discriminant` + `if false then
elseif sel == test then ... else ... end` chain, with no break tokens:
the lowerer has already elided them.
*/
func (e *emitter) switchLowered(n *ir.Node, level int) (string, error) {
	pad := e.pad(level)
	discID, _ := n.FieldID("discriminant")
	discStr, err := e.expr(discID)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%slocal %s = %s\n", pad, n.Value, discStr))
	buf.WriteString(fmt.Sprintf("%sif false then\n", pad))

	cases, _ := n.FieldIDs("cases")
	for _, cid := range cases {
		c := e.node(cid)
		stmts, _ := c.Statements()
		body, err := e.block(stmts, level+1)
		if err != nil {
			return "", err
		}
		isDefault, _ := c.FieldBool("isDefault")
		if isDefault {
			buf.WriteString(fmt.Sprintf("%selse\n%s", pad, body))
			continue
		}
		testID, _ := c.FieldID("test")
		testStr, err := e.expr(testID)
		if err != nil {
			return "", err
		}
		buf.WriteString(fmt.Sprintf("%selseif %s == %s then\n%s", pad, n.Value, testStr, body))
	}

	buf.WriteString(fmt.Sprintf("%send\n", pad))
	return buf.String(), nil
}
