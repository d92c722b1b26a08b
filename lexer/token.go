/*
Package lexer turns source text into a flat token list using a
state-function scanner: a lexFunc state machine driving a next/backup
rune cursor over keyword/symbol maps, retargeted at a JS-flavored
surface grammar.
*/
package lexer

/*
Kind identifies what a Token represents.
*/
type Kind int

/*
Token kinds.
*/
const (
	EOF Kind = iota
	Error

	Identifier
	Number
	String
	Template

	// Keywords
	KwLet
	KwConst
	KwVar
	KwFunction
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwDo
	KwFor
	KwBreak
	KwContinue
	KwSwitch
	KwCase
	KwDefault
	KwTrue
	KwFalse
	KwNull
	KwUndefined
	KwIn
	KwOf
	KwNew
	KwTypeof
	KwAsync
	KwAwait

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Colon
	Dot
	Arrow // =>
	Question
	Ellipsis

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	StarStar
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	Eq
	NotEq
	EqStrict
	NotEqStrict
	Lt
	Gt
	Leq
	Geq
	AndAnd
	OrOr
	Not
	Inc
	Dec
	Amp
	Pipe
	Caret
	QuestionQuestion
)

/*
KeywordMap maps identifier text to reserved-word token kinds.
*/
var KeywordMap = map[string]Kind{
	"let": KwLet, "const": KwConst, "var": KwVar,
	"function": KwFunction, "return": KwReturn,
	"if": KwIf, "else": KwElse,
	"while": KwWhile, "do": KwDo, "for": KwFor,
	"break": KwBreak, "continue": KwContinue,
	"switch": KwSwitch, "case": KwCase, "default": KwDefault,
	"true": KwTrue, "false": KwFalse, "null": KwNull, "undefined": KwUndefined,
	"in": KwIn, "of": KwOf, "new": KwNew, "typeof": KwTypeof,
	"async": KwAsync, "await": KwAwait,
}

/*
Token is a single lexical unit: its kind, its literal text, and its
source position (1-based line/column, for error reporting and IR
provenance).
*/
type Token struct {
	Kind Kind
	Val  string
	Line int
	Pos  int
}

/*
String renders a Token for diagnostics and test failure messages.
*/
func (t Token) String() string {
	return t.Val
}
