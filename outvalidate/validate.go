package outvalidate

import (
	"github.com/krotik/luascript/ecerr"
	"github.com/krotik/luascript/runtime"
)

/*
Options controls which checks Validate runs, mirroring the driver's
validateLuaBalance option and whether runtime injection was requested
for this call.
*/
type Options struct {
	CheckBalance    bool
	RuntimeInjected bool
}

/*
Validate runs the structural balance scan, then (if requested) the
keyword-balance/forbidden-artifact sweep, then the runtime-marker
presence check, in that order. It returns the first failure; it never
reports more than one problem per call, matching the core's policy of
propagating exactly one typed error.
*/
func Validate(code string, opts Options) error {
	if err := CheckBalance(code); err != nil {
		return err
	}

	if opts.CheckBalance {
		if err := CheckKeywordBalance(code); err != nil {
			return err
		}
	}

	if opts.RuntimeInjected && !runtime.Present(code) {
		return ecerr.NewOutputValidationError("missing runtime injection marker")
	}

	return nil
}
