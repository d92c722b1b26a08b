package runtime

import "testing"

func TestInjectAddsMarker(t *testing.T) {
	out := Inject("local x = 1\n")
	if !Present(out) {
		t.Error("expected injected code to carry the runtime marker")
	}
}

func TestPresentFalseWithoutInjection(t *testing.T) {
	if Present("local x = 1\n") {
		t.Error("expected plain code to not carry the runtime marker")
	}
}
