/*
Package ast defines the surface-language abstract syntax tree produced by
the parser: a kind-tagged node carrying source position and children,
allocated from the arena rather than with bare pointers so the lowering
pass can later address nodes by id instead of by reference.

The shape is a plain name/token/children node with no Pratt-parser
binding-power fields, since parsing here is driven by statement/
expression grammar rather than per-token binding power.
*/
package ast

/*
Kind identifies the syntactic role of a Node.
*/
type Kind string

/*
Node kinds. One entry per surface-language construct named in the source
grammar.
*/
const (
	Program              Kind = "Program"
	BlockStatement       Kind = "BlockStatement"
	VariableDeclaration  Kind = "VariableDeclaration"
	Declarator           Kind = "Declarator"
	FunctionDeclaration  Kind = "FunctionDeclaration"
	ArrowFunction        Kind = "ArrowFunction"
	Parameter            Kind = "Parameter"
	IfStatement          Kind = "IfStatement"
	WhileStatement       Kind = "WhileStatement"
	DoWhileStatement     Kind = "DoWhileStatement"
	ForStatement         Kind = "ForStatement"
	ForInStatement       Kind = "ForInStatement"
	ForOfStatement       Kind = "ForOfStatement"
	SwitchStatement      Kind = "SwitchStatement"
	SwitchCase           Kind = "SwitchCase"
	BreakStatement       Kind = "BreakStatement"
	ContinueStatement    Kind = "ContinueStatement"
	ReturnStatement      Kind = "ReturnStatement"
	ExpressionStatement  Kind = "ExpressionStatement"
	EmptyStatement       Kind = "EmptyStatement"
	BinaryExpression     Kind = "BinaryExpression"
	LogicalExpression    Kind = "LogicalExpression"
	UnaryExpression      Kind = "UnaryExpression"
	UpdateExpression     Kind = "UpdateExpression"
	AssignmentExpression Kind = "AssignmentExpression"
	ConditionalExpression Kind = "ConditionalExpression"
	ParenthesizedExpression Kind = "ParenthesizedExpression"
	CallExpression       Kind = "CallExpression"
	MemberExpression     Kind = "MemberExpression"
	ArrayExpression      Kind = "ArrayExpression"
	ObjectExpression     Kind = "ObjectExpression"
	Property             Kind = "Property"
	Identifier           Kind = "Identifier"
	NumericLiteral       Kind = "NumericLiteral"
	StringLiteral        Kind = "StringLiteral"
	BooleanLiteral       Kind = "BooleanLiteral"
	NullLiteral          Kind = "NullLiteral"
)

/*
ID identifies a Node within an arena. The zero value is never assigned to
a live node.
*/
type ID uint32

/*
Node is a single AST node. Children are stored as arena IDs so the tree
can be walked and rewritten without pointer aliasing concerns.
*/
type Node struct {
	ID       ID
	Kind     Kind
	Value    string // Identifier name, literal text, or operator symbol
	Line     int
	Pos      int
	Children []ID
}

/*
Tree is the arena-backed container for every Node produced while parsing
one source file.
*/
type Tree struct {
	nodes []Node
	next  ID
}

/*
NewTree creates an empty node arena.
*/
func NewTree() *Tree {
	// ID 0 is reserved so zero value ID can mean "absent".
	return &Tree{nodes: make([]Node, 1), next: 1}
}

/*
New allocates a new Node of the given kind and returns its id.
*/
func (t *Tree) New(kind Kind, line, pos int) ID {
	id := t.next
	t.next++
	t.nodes = append(t.nodes, Node{ID: id, Kind: kind, Line: line, Pos: pos})
	return id
}

/*
Get returns the node for id. Panics if id is out of range, which only
happens on an internal bug since ids are only ever handed out by New.
*/
func (t *Tree) Get(id ID) *Node {
	return &t.nodes[id]
}

/*
AddChild appends child to parent's child list.
*/
func (t *Tree) AddChild(parent, child ID) {
	n := &t.nodes[parent]
	n.Children = append(n.Children, child)
}

/*
Len returns the number of nodes allocated so far (excluding the reserved
zero id).
*/
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}
