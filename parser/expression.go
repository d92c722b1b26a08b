package parser

import (
	"github.com/krotik/luascript/ast"
	"github.com/krotik/luascript/ecerr"
	"github.com/krotik/luascript/lexer"
)

func (p *parser) expression() (ast.ID, error) {
	return p.assignment()
}

/*
assignment handles plain `=` and the compound forms, and speculatively
tries an arrow function first since both start by consuming an
identifier or a parenthesized list: save the token index, try to parse a
parameter list and `=>`, and rewind on failure.
*/
func (p *parser) assignment() (ast.ID, error) {
	if arrow, ok, err := p.tryArrowFunction(); err != nil {
		return 0, err
	} else if ok {
		return arrow, nil
	}

	left, err := p.ternary()
	if err != nil {
		return 0, err
	}

	if assignOps[p.cur().Kind] {
		op := p.advance()
		right, err := p.assignment()
		if err != nil {
			return 0, err
		}

		id, err := p.alloc(ast.AssignmentExpression, op)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = op.Val
		p.tree.AddChild(id, left)
		p.tree.AddChild(id, right)
		return id, nil
	}

	return left, nil
}

/*
tryArrowFunction attempts `ident => body` or `(params) => body`. On any
mismatch it rewinds to the saved position and reports no match (not an
error) so the caller falls through to normal expression parsing.
*/
func (p *parser) tryArrowFunction() (ast.ID, bool, error) {
	save := p.pos

	var params []ast.ID

	if p.check(lexer.Identifier) && p.checkNext(lexer.Arrow) {
		nameTok := p.advance()
		prm, err := p.alloc(ast.Parameter, nameTok)
		if err != nil {
			return 0, false, err
		}
		p.tree.Get(prm).Value = nameTok.Val
		params = []ast.ID{prm}
	} else if p.check(lexer.LParen) {
		pp, ok := p.tryParameterList()
		if !ok || !p.check(lexer.Arrow) {
			p.pos = save
			return 0, false, nil
		}
		params = pp
	} else {
		return 0, false, nil
	}

	kw := p.cur()
	if !p.match(lexer.Arrow) {
		p.pos = save
		return 0, false, nil
	}

	id, err := p.alloc(ast.ArrowFunction, kw)
	if err != nil {
		return 0, false, err
	}
	for _, prm := range params {
		p.tree.AddChild(id, prm)
	}

	if p.check(lexer.LBrace) {
		body, err := p.blockStatement()
		if err != nil {
			return 0, false, err
		}
		p.tree.AddChild(id, body)
	} else {
		bodyExpr, err := p.assignment()
		if err != nil {
			return 0, false, err
		}
		p.tree.AddChild(id, bodyExpr)
	}

	return id, true, nil
}

/*
tryParameterList attempts to parse `(ident, ident, ...)` without
committing: a false return leaves the cursor unspecified and the caller
must restore it from its own saved position.
*/
func (p *parser) tryParameterList() ([]ast.ID, bool) {
	if !p.check(lexer.LParen) {
		return nil, false
	}
	p.advance()

	var params []ast.ID
	for !p.check(lexer.RParen) {
		if !p.check(lexer.Identifier) {
			return nil, false
		}
		nameTok := p.advance()
		prm, err := p.alloc(ast.Parameter, nameTok)
		if err != nil {
			return nil, false
		}
		p.tree.Get(prm).Value = nameTok.Val
		params = append(params, prm)

		if !p.match(lexer.Comma) {
			break
		}
	}

	if !p.check(lexer.RParen) {
		return nil, false
	}
	p.advance()

	return params, true
}

func (p *parser) ternary() (ast.ID, error) {
	cond, err := p.binary(precNullish)
	if err != nil {
		return 0, err
	}

	if p.match(lexer.Question) {
		kw := p.tokens[p.pos-1]
		then, err := p.assignment()
		if err != nil {
			return 0, err
		}
		if _, err := p.consume(lexer.Colon, "':'"); err != nil {
			return 0, err
		}
		els, err := p.assignment()
		if err != nil {
			return 0, err
		}

		id, err := p.alloc(ast.ConditionalExpression, kw)
		if err != nil {
			return 0, err
		}
		p.tree.AddChild(id, cond)
		p.tree.AddChild(id, then)
		p.tree.AddChild(id, els)
		return id, nil
	}

	return cond, nil
}

/*
binary implements precedence-climbing over binPrecedence, covering
logical-or through multiplicative in one chain.
*/
func (p *parser) binary(minPrec int) (ast.ID, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}

	for {
		opTok := p.cur()
		prec, ok := binPrecedence[opTok.Kind]
		if !ok || prec < minPrec {
			break
		}

		p.advance()

		right, err := p.binary(prec + 1)
		if err != nil {
			return 0, err
		}

		kind := ast.BinaryExpression
		if opTok.Kind == lexer.AndAnd || opTok.Kind == lexer.OrOr || opTok.Kind == lexer.QuestionQuestion {
			kind = ast.LogicalExpression
		}

		id, err := p.alloc(kind, opTok)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = opTok.Val
		p.tree.AddChild(id, left)
		p.tree.AddChild(id, right)
		left = id
	}

	return left, nil
}

func (p *parser) unary() (ast.ID, error) {
	switch p.cur().Kind {
	case lexer.Not, lexer.Minus, lexer.Plus, lexer.KwTypeof:
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return 0, err
		}
		id, err := p.alloc(ast.UnaryExpression, op)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = op.Val
		p.tree.AddChild(id, operand)
		return id, nil

	case lexer.Inc, lexer.Dec:
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return 0, err
		}
		id, err := p.alloc(ast.UpdateExpression, op)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = "pre:" + op.Val
		p.tree.AddChild(id, operand)
		return id, nil
	}

	return p.postfix()
}

func (p *parser) postfix() (ast.ID, error) {
	expr, err := p.call()
	if err != nil {
		return 0, err
	}

	if p.check(lexer.Inc) || p.check(lexer.Dec) {
		op := p.advance()
		id, err := p.alloc(ast.UpdateExpression, op)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = "post:" + op.Val
		p.tree.AddChild(id, expr)
		return id, nil
	}

	return expr, nil
}

/*
call parses postfix member access (`.`, `[...]`) and call expressions
(`(...)`), left-associatively chained onto a primary.
*/
func (p *parser) call() (ast.ID, error) {
	expr, err := p.primary()
	if err != nil {
		return 0, err
	}

	for {
		switch {
		case p.check(lexer.LParen):
			t := p.advance()
			var args []ast.ID
			for !p.check(lexer.RParen) {
				arg, err := p.assignment()
				if err != nil {
					return 0, err
				}
				args = append(args, arg)
				if !p.match(lexer.Comma) {
					break
				}
			}
			if _, err := p.consume(lexer.RParen, "')'"); err != nil {
				return 0, err
			}

			id, err := p.alloc(ast.CallExpression, t)
			if err != nil {
				return 0, err
			}
			p.tree.AddChild(id, expr)
			for _, a := range args {
				p.tree.AddChild(id, a)
			}
			expr = id

		case p.check(lexer.Dot):
			t := p.advance()
			prop, err := p.consume(lexer.Identifier, "identifier")
			if err != nil {
				return 0, err
			}
			id, err := p.alloc(ast.MemberExpression, t)
			if err != nil {
				return 0, err
			}
			p.tree.Get(id).Value = prop.Val
			p.tree.AddChild(id, expr)
			expr = id

		case p.check(lexer.LBracket):
			t := p.advance()
			index, err := p.expression()
			if err != nil {
				return 0, err
			}
			if _, err := p.consume(lexer.RBracket, "']'"); err != nil {
				return 0, err
			}
			id, err := p.alloc(ast.MemberExpression, t)
			if err != nil {
				return 0, err
			}
			p.tree.Get(id).Value = "[]"
			p.tree.AddChild(id, expr)
			p.tree.AddChild(id, index)
			expr = id

		default:
			return expr, nil
		}
	}
}

func (p *parser) primary() (ast.ID, error) {
	t := p.cur()

	switch t.Kind {
	case lexer.Number:
		p.advance()
		id, err := p.alloc(ast.NumericLiteral, t)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = t.Val
		return id, nil

	case lexer.String:
		p.advance()
		id, err := p.alloc(ast.StringLiteral, t)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = t.Val
		return id, nil

	case lexer.KwTrue, lexer.KwFalse:
		p.advance()
		id, err := p.alloc(ast.BooleanLiteral, t)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = t.Val
		return id, nil

	case lexer.KwNull, lexer.KwUndefined:
		p.advance()
		id, err := p.alloc(ast.NullLiteral, t)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = t.Val
		return id, nil

	case lexer.Identifier:
		p.advance()
		id, err := p.alloc(ast.Identifier, t)
		if err != nil {
			return 0, err
		}
		p.tree.Get(id).Value = t.Val
		return id, nil

	case lexer.LParen:
		if err := p.enterScope(t); err != nil {
			return 0, err
		}
		defer p.arena.ExitScope()

		p.advance()
		expr, err := p.expression()
		if err != nil {
			return 0, err
		}
		if _, err := p.consume(lexer.RParen, "')'"); err != nil {
			return 0, err
		}

		id, err := p.alloc(ast.ParenthesizedExpression, t)
		if err != nil {
			return 0, err
		}
		p.tree.AddChild(id, expr)
		return id, nil

	case lexer.LBracket:
		return p.arrayLiteral()

	case lexer.LBrace:
		return p.objectLiteral()

	default:
		return 0, ecerr.NewParseError(t.Line, t.Pos, "expression", describeToken(t))
	}
}

func (p *parser) arrayLiteral() (ast.ID, error) {
	t := p.advance()
	id, err := p.alloc(ast.ArrayExpression, t)
	if err != nil {
		return 0, err
	}

	for !p.check(lexer.RBracket) {
		elem, err := p.assignment()
		if err != nil {
			return 0, err
		}
		p.tree.AddChild(id, elem)
		if !p.match(lexer.Comma) {
			break
		}
	}

	if _, err := p.consume(lexer.RBracket, "']'"); err != nil {
		return 0, err
	}

	return id, nil
}

func (p *parser) objectLiteral() (ast.ID, error) {
	t := p.advance()
	id, err := p.alloc(ast.ObjectExpression, t)
	if err != nil {
		return 0, err
	}

	for !p.check(lexer.RBrace) {
		keyTok := p.cur()
		var key string
		switch keyTok.Kind {
		case lexer.Identifier:
			key = keyTok.Val
			p.advance()
		case lexer.String:
			key = keyTok.Val
			p.advance()
		default:
			return 0, ecerr.NewParseError(keyTok.Line, keyTok.Pos, "property key", describeToken(keyTok))
		}

		if _, err := p.consume(lexer.Colon, "':'"); err != nil {
			return 0, err
		}

		val, err := p.assignment()
		if err != nil {
			return 0, err
		}

		prop, err := p.alloc(ast.Property, keyTok)
		if err != nil {
			return 0, err
		}
		p.tree.Get(prop).Value = key
		p.tree.AddChild(prop, val)
		p.tree.AddChild(id, prop)

		if !p.match(lexer.Comma) {
			break
		}
	}

	if _, err := p.consume(lexer.RBrace, "'}'"); err != nil {
		return 0, err
	}

	return id, nil
}
