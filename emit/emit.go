/*
Package emit renders a validated IR module as Lua source text.

Binary, logical, conditional and member expressions are rendered
through a dispatch table of per-kind text/template instances keyed by
arity (unary operators are rendered in code), the same
NodeKind+"_2"-style keying a pretty-printer dispatch map would use;
statement-level constructs that need indentation bookkeeping are
special-cased in code, and indentation is generated with
devt.de/krotik/common/stringutil.GenerateRollingString.
*/
package emit

import (
	"bytes"
	"text/template"

	"devt.de/krotik/common/stringutil"

	"github.com/krotik/luascript/ir"
)

/*
Options configures the emitter. Indent defaults to two spaces.
*/
type Options struct {
	Indent string
}

/*
exprTemplates is the operator rendering table: each key is "<Kind>_<arity>".
*/
var exprTemplates = map[string]*template.Template{
	"BinaryExpression_2":      tmpl("{{.c1}} {{.op}} {{.c2}}"),
	"LogicalExpression_2":     tmpl("{{.c1}} {{.op}} {{.c2}}"),
	"ConditionalExpression_3": tmpl("({{.c1}}) and {{.c2}} or {{.c3}}"),
	"MemberExpressionDot":     tmpl("{{.c1}}.{{.prop}}"),
	"MemberExpressionComputed": tmpl("{{.c1}}[{{.c2}}]"),
}

func tmpl(s string) *template.Template {
	return template.Must(template.New("").Parse(s))
}

func render(t *template.Template, params map[string]string) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, params); err != nil {
		panic(err) // programmer error: template/param mismatch
	}
	return buf.String()
}

/*
binOp maps a BinaryExpression/LogicalExpression operator symbol to its
Lua rendering; compound assignment operators use compoundAssignOp.
*/
var binOp = map[string]string{
	"===": "==", "==": "==",
	"!==": "~=", "!=": "~=",
	"&&": "and", "||": "or",
	"??": "or",
	"+": "+", "-": "-", "*": "*", "/": "/", "%": "%", "**": "^",
	"<": "<", ">": ">", "<=": "<=", ">=": ">=",
}

var compoundAssignOp = map[string]string{
	"+=": "+", "-=": "-", "*=": "*", "/=": "/",
}

/*
Emit renders m as Lua source. Total on a structurally valid IR (see
ir.Validate); an unknown IR kind or operator surfaces as an EmitError.
*/
func Emit(m *ir.Module, opts Options) (string, error) {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	e := &emitter{module: m, indent: opts.Indent}

	var buf bytes.Buffer
	for _, id := range m.Body {
		s, err := e.statement(id, 0)
		if err != nil {
			return "", err
		}
		buf.WriteString(s)
	}

	return buf.String(), nil
}

type emitter struct {
	module *ir.Module
	indent string
}

/*
pad returns level copies of the indent unit. GenerateRollingString
produces a string of the given total length by cycling its unit
argument (GenerateRollingString(" ", n) yields n spaces); passing
level*len(indent) as the length yields level full copies of a possibly
multi-character indent unit.
*/
func (e *emitter) pad(level int) string {
	return stringutil.GenerateRollingString(e.indent, level*len([]rune(e.indent)))
}

func (e *emitter) node(id ir.NodeID) *ir.Node {
	return e.module.Get(id)
}
