/*
Package config holds process-wide configuration for the transpiler: the
resource bounds the arena enforces per call and the default toggles the
driver falls back to when a caller omits an option.
*/
package config

import (
	"fmt"
	"strconv"

	"devt.de/krotik/common/errorutil"
)

// Global variables
// ================

/*
ProductVersion is the current version of the transpiler.
*/
const ProductVersion = "1.0.0"

/*
Known configuration options.
*/
const (
	MaxNodes              = "MaxNodes"
	MaxDepth              = "MaxDepth"
	MaxInputBytes         = "MaxInputBytes"
	MaxInputBytesExtended = "MaxInputBytesExtended"
	DefaultIndent         = "DefaultIndent"
	IncludeRuntime        = "IncludeRuntime"
	UseCanonicalIR        = "UseCanonicalIR"
	ValidateLuaBalance    = "ValidateLuaBalance"
)

/*
DefaultConfig is the default configuration.
*/
var DefaultConfig = map[string]interface{}{
	MaxNodes:              10000,
	MaxDepth:              100,
	MaxInputBytes:         1 * 1024 * 1024,
	MaxInputBytesExtended: 10 * 1024 * 1024,
	DefaultIndent:         "  ",
	IncludeRuntime:        true,
	UseCanonicalIR:        true,
	ValidateLuaBalance:    true,
}

/*
Config is the actual config which is used.
*/
var Config map[string]interface{}

/*
Initialise the config
*/
func init() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return int(ret)
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
