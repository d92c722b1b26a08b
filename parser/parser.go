/*
Package parser implements the recursive-descent, Pratt-style parser that
turns a token list into an arena-backed AST, using the same driving-loop
shape as a match/check/consume/peek/advance helper set with per-construct
nd* functions, retargeted at a JS-flavored surface grammar.
*/
package parser

import (
	"fmt"

	"github.com/krotik/luascript/arena"
	"github.com/krotik/luascript/ast"
	"github.com/krotik/luascript/ecerr"
	"github.com/krotik/luascript/lexer"
)

/*
Precedence levels, low to high.
*/
const (
	precNone = iota
	precAssignment
	precNullish
	precLogicalOr
	precLogicalAnd
	precEquality
	precComparison
	precAdditive
	precMultiplicative
	precUnary
	precCall
	precPrimary
)

var binPrecedence = map[lexer.Kind]int{
	lexer.OrOr:             precLogicalOr,
	lexer.AndAnd:           precLogicalAnd,
	lexer.QuestionQuestion: precNullish,
	lexer.Eq:               precEquality,
	lexer.NotEq:            precEquality,
	lexer.EqStrict:         precEquality,
	lexer.NotEqStrict:      precEquality,
	lexer.Lt:               precComparison,
	lexer.Gt:               precComparison,
	lexer.Leq:              precComparison,
	lexer.Geq:              precComparison,
	lexer.Plus:             precAdditive,
	lexer.Minus:            precAdditive,
	lexer.Star:             precMultiplicative,
	lexer.Slash:            precMultiplicative,
	lexer.Percent:          precMultiplicative,
	lexer.StarStar:         precMultiplicative,
}

var assignOps = map[lexer.Kind]bool{
	lexer.Assign: true, lexer.PlusAssign: true, lexer.MinusAssign: true,
	lexer.StarAssign: true, lexer.SlashAssign: true,
}

/*
parser holds the parsing cursor over one token list.
*/
type parser struct {
	tokens []lexer.Token
	pos    int
	tree   *ast.Tree
	arena  *arena.Arena
}

/*
Parse produces a Program from tokens. Returns a ParseError on a missing
or unexpected token or once the arena's depth budget is exceeded, and a
MemoryError once its node budget is exceeded.
*/
func Parse(tokens []lexer.Token, a *arena.Arena) (*ast.Tree, ast.ID, error) {
	p := &parser{tokens: tokens, tree: ast.NewTree(), arena: a}

	programID, err := p.alloc(ast.Program, p.cur())
	if err != nil {
		return nil, 0, err
	}

	for !p.check(lexer.EOF) {
		stmt, err := p.statement()
		if err != nil {
			return nil, 0, err
		}
		p.tree.AddChild(programID, stmt)
	}

	return p.tree, programID, nil
}

// Cursor helpers
// ==============

func (p *parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) check(k lexer.Kind) bool {
	return p.cur().Kind == k
}

func (p *parser) checkNext(k lexer.Kind) bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+1].Kind == k
}

func (p *parser) advance() lexer.Token {
	t := p.cur()
	if t.Kind != lexer.EOF {
		p.pos++
	}
	return t
}

func (p *parser) match(ks ...lexer.Kind) bool {
	for _, k := range ks {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) consume(k lexer.Kind, expected string) (lexer.Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	t := p.cur()
	return lexer.Token{}, ecerr.NewParseError(t.Line, t.Pos, expected, describeToken(t))
}

func describeToken(t lexer.Token) string {
	if t.Kind == lexer.EOF {
		return "EOF"
	}
	return fmt.Sprintf("%q", t.Val)
}

func (p *parser) alloc(kind ast.Kind, t lexer.Token) (ast.ID, error) {
	if err := p.arena.AllocNode(); err != nil {
		return 0, err
	}
	return p.tree.New(kind, t.Line, t.Pos), nil
}

func (p *parser) enterScope(t lexer.Token) error {
	if err := p.arena.EnterScope(); err != nil {
		return ecerr.NewParseError(t.Line, t.Pos, "", "too deeply nested")
	}
	return nil
}
