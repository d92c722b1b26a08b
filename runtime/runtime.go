/*
Package runtime prepends the fixed Lua runtime prelude that binds
`console`, `JSON`, and `Math` from the `runtime.runtime` module
transpiled output expects to be present at load time.

A single boolean option gates whether this optional piece of standard
support is wired in, the same on/off shape LoadStdlibPlugins gives
optional stdlib loading.
*/
package runtime

import "strings"

/*
Prelude is the verbatim runtime-library integration header. Its exact
text is load-bearing: the output validator's marker check (Marker) looks
for the `require('runtime.runtime')` line within it.
*/
const Prelude = `-- LUASCRIPT Runtime Library Integration
local runtime = require('runtime.runtime')
local console = runtime.console
local JSON = runtime.JSON
local Math = runtime.Math
`

/*
Marker is the substring the output validator asserts is present whenever
runtime injection was requested.
*/
const Marker = `require('runtime.runtime')`

/*
Inject prepends Prelude to code, separated by a blank line.
*/
func Inject(code string) string {
	return Prelude + "\n" + code
}

/*
Present reports whether code already carries the injection marker.
*/
func Present(code string) bool {
	return strings.Contains(code, Marker)
}
