package driver

import (
	"strings"

	"github.com/krotik/luascript/config"
	"github.com/krotik/luascript/ecerr"
)

var forbiddenConstructs = []string{"eval(", "with (", "debugger;"}

/*
validateInput rejects empty, oversized, or forbidden-construct input
before any phase runs. Unterminated strings and mismatched brackets are
intentionally left to the lexer/parser, which already raise
LexError/ParseError for them.
*/
func validateInput(source string) error {
	if source == "" {
		return ecerr.NewValidationError("input is empty")
	}

	// MaxInputBytes is the default hard bound; callers that need the
	// extended 10 MiB bound raise it via config.Config before calling
	// Transpile.
	limit := config.Int(config.MaxInputBytes)
	if len(source) > limit {
		return ecerr.NewValidationError("input exceeds maximum size")
	}

	for _, forbidden := range forbiddenConstructs {
		if strings.Contains(source, forbidden) {
			return ecerr.NewValidationError("input contains forbidden construct: " + forbidden)
		}
	}

	return nil
}
