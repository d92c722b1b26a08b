package outvalidate

import (
	"regexp"
	"strings"

	"github.com/krotik/luascript/ecerr"
)

/*
stripNonCode rewrites every line-comment, block-comment, and quoted/
long-string span in code to spaces (newlines preserved), leaving behind
only the code-state text the keyword-balance check and forbidden-
artifact sweep should see. It reuses balanceScanner's state walk rather
than re-implementing the comment/string grammar a second time.
*/
func stripNonCode(code string) string {
	b := &balanceScanner{src: code}
	var out strings.Builder
	out.Grow(len(code))

	for b.pos < len(b.src) {
		start := b.pos
		startState := b.state

		switch b.state {
		case stateCode:
			_ = b.stepCode()
		case stateLineComment:
			b.stepLineComment()
		case stateBlockComment:
			_ = b.stepBracketed(stateBlockComment)
		case stateString:
			_ = b.stepString()
		case stateLongString:
			_ = b.stepBracketed(stateLongString)
		}

		chunk := b.src[start:b.pos]
		if startState == stateCode {
			out.WriteString(chunk)
		} else {
			for _, r := range chunk {
				if r == '\n' {
					out.WriteByte('\n')
				} else {
					out.WriteByte(' ')
				}
			}
		}
	}
	return out.String()
}

var (
	kwOpenRE     = regexp.MustCompile(`\b(function|if|while|for|do)\b`)
	kwCloseRE    = regexp.MustCompile(`\bend\b`)
	loopHeaderRE = regexp.MustCompile(`\b(while|for)\b.*\bdo\s*$`)
	forbidden    = []string{"++", "===", "!==", "||", "&&"}
)

/*
CheckKeywordBalance counts keyword openings (function/if/while/for/do)
against closings (end) over non-comment, non-empty lines of code. A
negative running count is an unmatched "end"; a positive final count is
an unmatched opening. It also sweeps the same stripped text for
forbidden JS-operator artifacts that should never survive translation.

A `while cond do` / `for ... do` header line carries both an opening
keyword and the "do" Lua's grammar requires after it, but the pair is
closed by a single "end": such a line counts as one opening, not two,
via loopHeaderRE; every other line counts each opening keyword
independently.
*/
func CheckKeywordBalance(code string) error {
	stripped := stripNonCode(code)

	running := 0
	for _, line := range strings.Split(stripped, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if loopHeaderRE.MatchString(line) {
			running++
		} else {
			running += len(kwOpenRE.FindAllString(line, -1))
		}
		running -= len(kwCloseRE.FindAllString(line, -1))
		if running < 0 {
			return ecerr.NewOutputValidationError("unmatched 'end'")
		}
	}
	if running > 0 {
		return ecerr.NewOutputValidationError("unmatched opening keyword")
	}

	for _, artifact := range forbidden {
		if strings.Contains(stripped, artifact) {
			return ecerr.NewOutputValidationError("forbidden artifact in output: " + artifact)
		}
	}

	return nil
}
