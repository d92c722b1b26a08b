/*
Package legacy implements the regex-driven alternative transpile
pipeline: the same surface-to-Lua transformation as ir/emit, performed as
an ordered sequence of textual rewrites without ever building an AST.

The rewriter exists for callers that opt out of the canonical IR
pipeline (driver's useCanonicalIR=false); its phase order is fixed and
must not be reordered, since later phases depend on the textual shape
earlier phases leave behind (most visibly, close-brace normalization in
normalizeCloseBraces depends on the exact leading-brace text the
switch/conditional header rewrites produce).
*/
package legacy

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/krotik/luascript/runtime"
)

/*
Rewrite performs the 9 ordered phases over source and returns the Lua
translation. It never builds an AST; every failure mode here is a
missed-pattern edge case, not a typed parse/validation error, since the
legacy path trades rigor for being a pure textual pass.
*/
func Rewrite(source string, includeRuntime bool) string {
	protected, strs := protectStrings(source)

	out := protected
	out = convertSwitch(out)
	out = convertLoops(out)
	out = convertConditionals(out)
	out = convertTernary(out)
	out = convertFunctions(out)
	out = convertVarDecls(out)
	out = convertOperators(out)
	out = convertObjects(out)
	out = convertArrays(out)
	out = normalizeCloseBraces(out)

	out = restoreStrings(out, strs)
	out = fixStringConcatenation(out)

	if includeRuntime {
		out = runtime.Inject(out)
	}

	return out
}

var stringLiteralRE = regexp.MustCompile(`"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`)

const stringPlaceholderFmt = "\x01S%d\x01"

var stringPlaceholderRE = regexp.MustCompile("\x01S(\\d+)\x01")

/*
protectStrings extracts every string literal (quotes included) to a
slice and replaces it in place with a placeholder token, so later phases
never mistake operator-like text inside a literal for real syntax.
*/
func protectStrings(source string) (string, []string) {
	var literals []string
	out := stringLiteralRE.ReplaceAllStringFunc(source, func(m string) string {
		i := len(literals)
		literals = append(literals, m)
		return fmt.Sprintf(stringPlaceholderFmt, i)
	})
	return out, literals
}

/*
restoreStrings reinserts the literals protectStrings extracted. Lua
accepts the same single/double quoting and backslash escapes JS does, so
the original literal text is restored verbatim.
*/
func restoreStrings(source string, literals []string) string {
	return stringPlaceholderRE.ReplaceAllStringFunc(source, func(m string) string {
		sub := stringPlaceholderRE.FindStringSubmatch(m)
		var idx int
		fmt.Sscanf(sub[1], "%d", &idx)
		if idx < 0 || idx >= len(literals) {
			return m
		}
		return literals[idx]
	})
}

var (
	switchHeaderRE = regexp.MustCompile(`switch\s*\(([^)]+)\)\s*\{`)
	caseLabelRE    = regexp.MustCompile(`case\s+([^:]+):`)
	defaultLabelRE = regexp.MustCompile(`default\s*:`)
	switchBreakRE  = regexp.MustCompile(`\bbreak\s*;`)
)

var switchCounter int64

/*
convertSwitch lowers `switch (expr) { case V: ...; break; default: ... }`
to a fresh-selector if/elseif chain, matching the switch rendering this
pipeline uses elsewhere. The selector is named positionally
(__legacy_sw<N>) rather than content-derived, since a regex pass has no
notion of enclosing lexical scope to check freshness against.
*/
func convertSwitch(s string) string {
	s = switchHeaderRE.ReplaceAllStringFunc(s, func(m string) string {
		groups := switchHeaderRE.FindStringSubmatch(m)
		sel := fmt.Sprintf("__legacy_sw%d", atomic.AddInt64(&switchCounter, 1))
		return fmt.Sprintf("local %s = %s\nif false then", sel, strings.TrimSpace(groups[1]))
	})

	// Rewrite case/default labels using the most recently introduced
	// selector name found in the preceding text.
	lines := strings.Split(s, "\n")
	currentSel := ""
	for i, line := range lines {
		if m := regexp.MustCompile(`local (__legacy_sw\d+) = `).FindStringSubmatch(line); m != nil {
			currentSel = m[1]
		}
		if m := caseLabelRE.FindStringSubmatch(line); m != nil && currentSel != "" {
			lines[i] = caseLabelRE.ReplaceAllString(line, fmt.Sprintf("elseif %s == %s then", currentSel, strings.TrimSpace(m[1])))
		} else if defaultLabelRE.MatchString(line) && currentSel != "" {
			lines[i] = defaultLabelRE.ReplaceAllString(line, "else")
		}
	}
	s = strings.Join(lines, "\n")

	return switchBreakOnlyInSwitchBodies(s)
}

/*
switchBreakOnlyInSwitchBodies elides `break;` tokens that sit on their
own line immediately preceding a case/default/closing-brace boundary,
the textual signature of a switch-case break; break statements inside
ordinary loops are left untouched.
*/
func switchBreakOnlyInSwitchBodies(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if switchBreakRE.MatchString(trimmed) && trimmed == "break;" {
			next := ""
			if i+1 < len(lines) {
				next = strings.TrimSpace(lines[i+1])
			}
			if strings.HasPrefix(next, "elseif") || strings.HasPrefix(next, "else") || next == "}" {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

var (
	numericForRE = regexp.MustCompile(
		`for\s*\(\s*(?:let|const|var)\s+(\w+)\s*=\s*([^;]+);\s*\w+\s*(<=|<)\s*([^;]+);\s*\w+\s*(?:\+\+|\+=\s*([^)]+))\s*\)\s*\{`)
	forOfRE    = regexp.MustCompile(`for\s*\(\s*(?:let|const|var)\s+(\w+)\s+of\s+([^)]+)\)\s*\{`)
	forInRE    = regexp.MustCompile(`for\s*\(\s*(?:let|const|var)\s+(\w+)\s+in\s+([^)]+)\)\s*\{`)
	whileRE    = regexp.MustCompile(`while\s*\(([^)]+)\)\s*\{`)
	doOpenRE   = regexp.MustCompile(`\bdo\s*\{`)
	doCloseRE  = regexp.MustCompile(`\}\s*while\s*\(([^)]+)\)\s*;`)
	lengthRE   = regexp.MustCompile(`(\w+)\.length\b`)
)

/*
convertLoops rewrites for/while/do-while headers. Numeric for is
detected the same way ir/lower recognizes the canonical range shape; any
other for-header shape is intentionally left unconverted here (a
deliberately unhandled corner case), since a
correct general C-style-for-to-while desugaring needs the loop body
text, which a single regex pass over the header cannot reach.
*/
func convertLoops(s string) string {
	s = numericForRE.ReplaceAllStringFunc(s, func(m string) string {
		g := numericForRE.FindStringSubmatch(m)
		v, start, op, end, step := g[1], strings.TrimSpace(g[2]), g[3], strings.TrimSpace(g[4]), strings.TrimSpace(g[5])
		end = lengthRE.ReplaceAllString(end, "#$1")
		if op == "<" {
			end = fmt.Sprintf("%s - 1", end)
		}
		header := fmt.Sprintf("for %s = %s, %s", v, start, end)
		if step != "" && step != "1" {
			header = fmt.Sprintf("%s, %s", header, step)
		}
		return header + " do"
	})

	s = forOfRE.ReplaceAllString(s, `for _, $1 in ipairs($2) do`)
	s = forInRE.ReplaceAllString(s, `for $1, _ in pairs($2) do`)
	s = whileRE.ReplaceAllString(s, `while $1 do`)
	s = doOpenRE.ReplaceAllString(s, "repeat")
	s = doCloseRE.ReplaceAllString(s, "until not ($1)")

	return s
}

var (
	ifHeaderRE     = regexp.MustCompile(`\bif\s*\(([^)]+)\)\s*\{`)
	elseIfHeaderRE = regexp.MustCompile(`else\s+if\s*\(([^)]+)\)\s*\{`)
	elseHeaderRE   = regexp.MustCompile(`\belse\s*\{`)
)

/*
convertConditionals rewrites if/else-if/else headers, leaving their
leading "}" (for the else-if/else forms) for normalizeCloseBraces to
fold into "end elseif"/"end else".
*/
func convertConditionals(s string) string {
	s = elseIfHeaderRE.ReplaceAllString(s, `elseif $1 then`)
	s = ifHeaderRE.ReplaceAllString(s, `if $1 then`)
	s = elseHeaderRE.ReplaceAllString(s, `else`)
	return s
}

var ternaryRE = regexp.MustCompile(`([^?:\n]+?)\?([^?:\n]+?):([^?:\n;,)]+)`)

/*
convertTernary rewrites `a ? b : c` to `(a) and b or c`.
Applied after conditionals so an `if (...)`-style header's parens
have already been consumed and cannot be mistaken for a ternary test.
*/
func convertTernary(s string) string {
	return ternaryRE.ReplaceAllString(s, `($1) and $2 or $3`)
}

var (
	functionDeclRE = regexp.MustCompile(`\bfunction\s+(\w+)\s*\(([^)]*)\)\s*\{`)
	arrowBlockRE   = regexp.MustCompile(`\(?([\w, ]*)\)?\s*=>\s*\{`)
	arrowExprRE    = regexp.MustCompile(`\(?([\w, ]*)\)?\s*=>\s*([^;\n,]+)`)
)

/*
convertFunctions rewrites function declarations and arrow functions.
Block-bodied arrows are rewritten first, so the expression-arrow pass
only sees arrows without an opening brace.
*/
func convertFunctions(s string) string {
	s = functionDeclRE.ReplaceAllString(s, `local function $1($2)`)
	s = arrowBlockRE.ReplaceAllString(s, `function($1)`)
	s = arrowExprRE.ReplaceAllStringFunc(s, func(m string) string {
		g := arrowExprRE.FindStringSubmatch(m)
		return fmt.Sprintf("function(%s) return %s end", g[1], strings.TrimSpace(g[2]))
	})
	return s
}

var varDeclRE = regexp.MustCompile(`\b(?:let|const|var)\s+`)

/*
convertVarDecls rewrites let/const/var to local. Applied after function
conversion so an arrow function's parameter list (already consumed) is
never mistaken for a declaration keyword.
*/
func convertVarDecls(s string) string {
	return varDeclRE.ReplaceAllString(s, "local ")
}

var (
	strictEqRE    = regexp.MustCompile(`===`)
	strictNeqRE   = regexp.MustCompile(`!==`)
	looseEqRE     = regexp.MustCompile(`==`)
	looseNeqRE    = regexp.MustCompile(`!=`)
	logicalAndRE  = regexp.MustCompile(`&&`)
	logicalOrRE   = regexp.MustCompile(`\|\|`)
	notRE         = regexp.MustCompile(`!(\S)`)
	incRE         = regexp.MustCompile(`(\w+)\s*\+\+`)
	preIncRE      = regexp.MustCompile(`\+\+(\w+)`)
	decRE         = regexp.MustCompile(`(\w+)\s*--`)
	preDecRE      = regexp.MustCompile(`--(\w+)`)
	compoundAddRE = regexp.MustCompile(`(\w+)\s*\+=\s*([^;]+);`)
	compoundSubRE = regexp.MustCompile(`(\w+)\s*-=\s*([^;]+);`)
	compoundMulRE = regexp.MustCompile(`(\w+)\s*\*=\s*([^;]+);`)
	compoundDivRE = regexp.MustCompile(`(\w+)\s*/=\s*([^;]+);`)
)

/*
convertOperators rewrites equality, logical, unary-not,
increment/decrement and compound assignment operators.
Strict/loose equality collapse to the same Lua operators, so
strict forms are rewritten first to avoid a second pass re-matching
their already-converted "==" / "~=" text.
*/
func convertOperators(s string) string {
	s = strictEqRE.ReplaceAllString(s, "\x02EQ\x02")
	s = strictNeqRE.ReplaceAllString(s, "\x02NEQ\x02")
	s = looseEqRE.ReplaceAllString(s, "\x02EQ\x02")
	s = looseNeqRE.ReplaceAllString(s, "\x02NEQ\x02")
	s = strings.ReplaceAll(s, "\x02EQ\x02", "==")
	s = strings.ReplaceAll(s, "\x02NEQ\x02", "~=")

	s = logicalAndRE.ReplaceAllString(s, "and")
	s = logicalOrRE.ReplaceAllString(s, "or")
	s = notRE.ReplaceAllString(s, "not $1")

	s = compoundAddRE.ReplaceAllString(s, "$1 = $1 + $2;")
	s = compoundSubRE.ReplaceAllString(s, "$1 = $1 - $2;")
	s = compoundMulRE.ReplaceAllString(s, "$1 = $1 * $2;")
	s = compoundDivRE.ReplaceAllString(s, "$1 = $1 / $2;")

	s = incRE.ReplaceAllString(s, "$1 = $1 + 1")
	s = preIncRE.ReplaceAllString(s, "$1 = $1 + 1")
	s = decRE.ReplaceAllString(s, "$1 = $1 - 1")
	s = preDecRE.ReplaceAllString(s, "$1 = $1 - 1")

	return s
}

var (
	objectLiteralKeyRE = regexp.MustCompile(`([{,]\s*)(\w+)\s*:`)
)

/*
convertObjects rewrites `key:` object-literal fields to `key =`, the
only textual difference between a JS and a Lua table constructor field.
*/
func convertObjects(s string) string {
	return objectLiteralKeyRE.ReplaceAllString(s, `$1$2 =`)
}

/*
convertArrays is a no-op: JS array-literal syntax `[a, b, c]` and Lua's
positional table constructor differ only in delimiter (`[]` vs `{}`),
and bracket delimiters are never rewritten here because the same `[]`
characters are also used for computed member access (`arr[i]`), which a
regex pass cannot distinguish from an array literal without a parser.
Array-literal delimiter translation is therefore only exact on the IR
path; this is a known divergence between the two pipelines, left
implementation-defined here.
*/
func convertArrays(s string) string {
	return s
}

var (
	standaloneCloseBraceRE = regexp.MustCompile(`(?m)^(\s*)\}\s*$`)
	closeElseIfRE          = regexp.MustCompile(`\}(\s*elseif)`)
	closeElseRE            = regexp.MustCompile(`\}(\s*else\b)`)
)

/*
normalizeCloseBraces folds remaining `}` tokens to `end`: `} elseif`/
`} else` fold to `end elseif`/`end else` first, since after that
substitution no bare `}` remains at those positions for the
standalone-brace rule to also match.
*/
func normalizeCloseBraces(s string) string {
	s = closeElseIfRE.ReplaceAllString(s, "end$1")
	s = closeElseRE.ReplaceAllString(s, "end$1")
	s = standaloneCloseBraceRE.ReplaceAllString(s, "${1}end")
	return s
}

var concatPlusRE = regexp.MustCompile(`(\S+)\s*\+\s*(\S+)`)

/*
fixStringConcatenation retargets "+" to ".." when either operand is
adjacent to a restored string literal: a string literal on either side
means concatenation, otherwise "+" is left alone. This runs after
restoreStrings, so operands are matched against the literal text rather
than a placeholder.
*/
func fixStringConcatenation(s string) string {
	return concatPlusRE.ReplaceAllStringFunc(s, func(m string) string {
		g := concatPlusRE.FindStringSubmatch(m)
		left, right := g[1], g[2]
		if looksLikeStringLiteral(left) || looksLikeStringLiteral(right) {
			return fmt.Sprintf("%s .. %s", left, right)
		}
		return m
	})
}

func looksLikeStringLiteral(tok string) bool {
	tok = strings.TrimSpace(tok)
	return (strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`)) ||
		(strings.HasPrefix(tok, `'`) && strings.HasSuffix(tok, `'`))
}
