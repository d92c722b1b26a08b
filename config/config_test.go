package config

import (
	"testing"
)

func TestConfig(t *testing.T) {

	if res := Str(MaxNodes); res != "10000" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(MaxNodes); res != 10000 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(MaxDepth); res != 100 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(IncludeRuntime); !res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(UseCanonicalIR); !res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Str(DefaultIndent); res != "  " {
		t.Error("Unexpected result:", res)
		return
	}
}
