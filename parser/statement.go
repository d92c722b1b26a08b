package parser

import (
	"github.com/krotik/luascript/ast"
	"github.com/krotik/luascript/lexer"
)

func (p *parser) statement() (ast.ID, error) {
	switch p.cur().Kind {
	case lexer.LBrace:
		return p.blockStatement()
	case lexer.KwLet, lexer.KwConst, lexer.KwVar:
		return p.variableDeclaration(true)
	case lexer.KwFunction:
		return p.functionDeclaration()
	case lexer.KwIf:
		return p.ifStatement()
	case lexer.KwWhile:
		return p.whileStatement()
	case lexer.KwDo:
		return p.doWhileStatement()
	case lexer.KwFor:
		return p.forStatement()
	case lexer.KwSwitch:
		return p.switchStatement()
	case lexer.KwReturn:
		return p.returnStatement()
	case lexer.KwBreak:
		return p.simpleKeywordStatement(ast.BreakStatement)
	case lexer.KwContinue:
		return p.simpleKeywordStatement(ast.ContinueStatement)
	case lexer.Semicolon:
		t := p.advance()
		return p.alloc(ast.EmptyStatement, t)
	default:
		return p.expressionStatement()
	}
}

func (p *parser) simpleKeywordStatement(kind ast.Kind) (ast.ID, error) {
	t := p.advance()
	id, err := p.alloc(kind, t)
	if err != nil {
		return 0, err
	}
	if _, err := p.consume(lexer.Semicolon, "';'"); err != nil {
		return 0, err
	}
	return id, nil
}

func (p *parser) blockStatement() (ast.ID, error) {
	t, err := p.consume(lexer.LBrace, "'{'")
	if err != nil {
		return 0, err
	}
	if err := p.enterScope(t); err != nil {
		return 0, err
	}
	defer p.arena.ExitScope()

	id, err := p.alloc(ast.BlockStatement, t)
	if err != nil {
		return 0, err
	}

	for !p.check(lexer.RBrace) && !p.check(lexer.EOF) {
		stmt, err := p.statement()
		if err != nil {
			return 0, err
		}
		p.tree.AddChild(id, stmt)
	}

	if _, err := p.consume(lexer.RBrace, "'}'"); err != nil {
		return 0, err
	}

	return id, nil
}

/*
variableDeclaration parses `let|const|var decl (, decl)* ;`. When
requireSemi is false the trailing `;` is left for the caller (used by the
C-style for-header).
*/
func (p *parser) variableDeclaration(requireSemi bool) (ast.ID, error) {
	kw := p.advance()

	declID, err := p.alloc(ast.VariableDeclaration, kw)
	if err != nil {
		return 0, err
	}
	p.tree.Get(declID).Value = kw.Val

	for {
		nameTok, err := p.consume(lexer.Identifier, "identifier")
		if err != nil {
			return 0, err
		}

		declarator, err := p.alloc(ast.Declarator, nameTok)
		if err != nil {
			return 0, err
		}
		p.tree.Get(declarator).Value = nameTok.Val

		if p.match(lexer.Assign) {
			init, err := p.assignment()
			if err != nil {
				return 0, err
			}
			p.tree.AddChild(declarator, init)
		}

		p.tree.AddChild(declID, declarator)

		if !p.match(lexer.Comma) {
			break
		}
	}

	if requireSemi {
		if _, err := p.consume(lexer.Semicolon, "';'"); err != nil {
			return 0, err
		}
	}

	return declID, nil
}

func (p *parser) functionDeclaration() (ast.ID, error) {
	kw := p.advance()

	nameTok, err := p.consume(lexer.Identifier, "identifier")
	if err != nil {
		return 0, err
	}

	id, err := p.alloc(ast.FunctionDeclaration, kw)
	if err != nil {
		return 0, err
	}
	p.tree.Get(id).Value = nameTok.Val

	params, err := p.parameterList()
	if err != nil {
		return 0, err
	}
	for _, prm := range params {
		p.tree.AddChild(id, prm)
	}

	body, err := p.blockStatement()
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, body)

	return id, nil
}

func (p *parser) parameterList() ([]ast.ID, error) {
	if _, err := p.consume(lexer.LParen, "'('"); err != nil {
		return nil, err
	}

	var params []ast.ID
	for !p.check(lexer.RParen) {
		nameTok, err := p.consume(lexer.Identifier, "identifier")
		if err != nil {
			return nil, err
		}
		prm, err := p.alloc(ast.Parameter, nameTok)
		if err != nil {
			return nil, err
		}
		p.tree.Get(prm).Value = nameTok.Val
		params = append(params, prm)

		if !p.match(lexer.Comma) {
			break
		}
	}

	if _, err := p.consume(lexer.RParen, "')'"); err != nil {
		return nil, err
	}

	return params, nil
}

func (p *parser) ifStatement() (ast.ID, error) {
	kw := p.advance()

	if _, err := p.consume(lexer.LParen, "'('"); err != nil {
		return 0, err
	}
	cond, err := p.expression()
	if err != nil {
		return 0, err
	}
	if _, err := p.consume(lexer.RParen, "')'"); err != nil {
		return 0, err
	}

	id, err := p.alloc(ast.IfStatement, kw)
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, cond)

	consequent, err := p.statement()
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, consequent)

	if p.match(lexer.KwElse) {
		alt, err := p.statement()
		if err != nil {
			return 0, err
		}
		p.tree.AddChild(id, alt)
	}

	return id, nil
}

func (p *parser) whileStatement() (ast.ID, error) {
	kw := p.advance()

	if _, err := p.consume(lexer.LParen, "'('"); err != nil {
		return 0, err
	}
	cond, err := p.expression()
	if err != nil {
		return 0, err
	}
	if _, err := p.consume(lexer.RParen, "')'"); err != nil {
		return 0, err
	}

	id, err := p.alloc(ast.WhileStatement, kw)
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, cond)

	body, err := p.statement()
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, body)

	return id, nil
}

func (p *parser) doWhileStatement() (ast.ID, error) {
	kw := p.advance()

	id, err := p.alloc(ast.DoWhileStatement, kw)
	if err != nil {
		return 0, err
	}

	body, err := p.statement()
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, body)

	if _, err := p.consume(lexer.KwWhile, "'while'"); err != nil {
		return 0, err
	}
	if _, err := p.consume(lexer.LParen, "'('"); err != nil {
		return 0, err
	}
	cond, err := p.expression()
	if err != nil {
		return 0, err
	}
	if _, err := p.consume(lexer.RParen, "')'"); err != nil {
		return 0, err
	}
	if _, err := p.consume(lexer.Semicolon, "';'"); err != nil {
		return 0, err
	}
	p.tree.AddChild(id, cond)

	return id, nil
}

/*
forStatement handles all three surface forms: C-style, for-in, for-of.
for-in and for-of get their own node kinds here; for a C-style header the
lowerer distinguishes the canonical numeric-range shape from the general
form.
*/
func (p *parser) forStatement() (ast.ID, error) {
	kw := p.advance()

	if _, err := p.consume(lexer.LParen, "'('"); err != nil {
		return 0, err
	}

	// for (let x in|of expr) stmt
	if p.check(lexer.KwLet) || p.check(lexer.KwConst) || p.check(lexer.KwVar) {
		if p.checkNext(lexer.Identifier) && (p.peekAfterIdent(lexer.KwIn) || p.peekAfterIdent(lexer.KwOf)) {
			return p.forInOf(kw)
		}
	}

	id, err := p.alloc(ast.ForStatement, kw)
	if err != nil {
		return 0, err
	}

	// init
	var init ast.ID
	if p.check(lexer.KwLet) || p.check(lexer.KwConst) || p.check(lexer.KwVar) {
		init, err = p.variableDeclaration(false)
	} else if !p.check(lexer.Semicolon) {
		init, err = p.expression()
	}
	if err != nil {
		return 0, err
	}
	if _, err := p.consume(lexer.Semicolon, "';'"); err != nil {
		return 0, err
	}
	p.tree.AddChild(id, init)

	var cond ast.ID
	if !p.check(lexer.Semicolon) {
		cond, err = p.expression()
		if err != nil {
			return 0, err
		}
	}
	if _, err := p.consume(lexer.Semicolon, "';'"); err != nil {
		return 0, err
	}
	p.tree.AddChild(id, cond)

	var update ast.ID
	if !p.check(lexer.RParen) {
		update, err = p.expression()
		if err != nil {
			return 0, err
		}
	}
	if _, err := p.consume(lexer.RParen, "')'"); err != nil {
		return 0, err
	}
	p.tree.AddChild(id, update)

	body, err := p.statement()
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, body)

	return id, nil
}

func (p *parser) peekAfterIdent(k lexer.Kind) bool {
	if p.pos+2 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+2].Kind == k
}

func (p *parser) forInOf(kw lexer.Token) (ast.ID, error) {
	p.advance() // let/const/var

	nameTok, err := p.consume(lexer.Identifier, "identifier")
	if err != nil {
		return 0, err
	}

	kind := ast.ForInStatement
	if p.check(lexer.KwOf) {
		kind = ast.ForOfStatement
	}
	p.advance() // in/of

	id, err := p.alloc(kind, kw)
	if err != nil {
		return 0, err
	}
	p.tree.Get(id).Value = nameTok.Val

	iter, err := p.expression()
	if err != nil {
		return 0, err
	}
	if _, err := p.consume(lexer.RParen, "')'"); err != nil {
		return 0, err
	}
	p.tree.AddChild(id, iter)

	body, err := p.statement()
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, body)

	return id, nil
}

func (p *parser) switchStatement() (ast.ID, error) {
	kw := p.advance()

	if _, err := p.consume(lexer.LParen, "'('"); err != nil {
		return 0, err
	}
	disc, err := p.expression()
	if err != nil {
		return 0, err
	}
	if _, err := p.consume(lexer.RParen, "')'"); err != nil {
		return 0, err
	}

	id, err := p.alloc(ast.SwitchStatement, kw)
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, disc)

	if _, err := p.consume(lexer.LBrace, "'{'"); err != nil {
		return 0, err
	}

	for p.check(lexer.KwCase) || p.check(lexer.KwDefault) {
		caseTok := p.advance()

		caseID, err := p.alloc(ast.SwitchCase, caseTok)
		if err != nil {
			return 0, err
		}
		if caseTok.Kind == lexer.KwDefault {
			p.tree.Get(caseID).Value = "default"
		} else {
			p.tree.Get(caseID).Value = "case"
		}

		if caseTok.Kind == lexer.KwCase {
			test, err := p.expression()
			if err != nil {
				return 0, err
			}
			p.tree.AddChild(caseID, test)
		}

		if _, err := p.consume(lexer.Colon, "':'"); err != nil {
			return 0, err
		}

		for !p.check(lexer.KwCase) && !p.check(lexer.KwDefault) && !p.check(lexer.RBrace) {
			stmt, err := p.statement()
			if err != nil {
				return 0, err
			}
			p.tree.AddChild(caseID, stmt)
		}

		p.tree.AddChild(id, caseID)
	}

	if _, err := p.consume(lexer.RBrace, "'}'"); err != nil {
		return 0, err
	}

	return id, nil
}

func (p *parser) returnStatement() (ast.ID, error) {
	kw := p.advance()

	id, err := p.alloc(ast.ReturnStatement, kw)
	if err != nil {
		return 0, err
	}

	if !p.check(lexer.Semicolon) {
		arg, err := p.expression()
		if err != nil {
			return 0, err
		}
		p.tree.AddChild(id, arg)
	}

	if _, err := p.consume(lexer.Semicolon, "';'"); err != nil {
		return 0, err
	}

	return id, nil
}

func (p *parser) expressionStatement() (ast.ID, error) {
	t := p.cur()
	expr, err := p.expression()
	if err != nil {
		return 0, err
	}

	id, err := p.alloc(ast.ExpressionStatement, t)
	if err != nil {
		return 0, err
	}
	p.tree.AddChild(id, expr)

	if _, err := p.consume(lexer.Semicolon, "';'"); err != nil {
		return 0, err
	}

	return id, nil
}
