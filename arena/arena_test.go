package arena

import "testing"

func TestNodeBudget(t *testing.T) {
	a := New(3, 10)

	for i := 0; i < 3; i++ {
		if err := a.AllocNode(); err != nil {
			t.Error("Unexpected error:", err)
			return
		}
	}

	if err := a.AllocNode(); err == nil {
		t.Error("Expected node count limit error")
		return
	}
}

func TestDepthBudget(t *testing.T) {
	a := New(100, 2)

	if err := a.EnterScope(); err != nil {
		t.Error("Unexpected error:", err)
		return
	}
	if err := a.EnterScope(); err != nil {
		t.Error("Unexpected error:", err)
		return
	}
	if err := a.EnterScope(); err == nil {
		t.Error("Expected recursion depth limit error")
		return
	}

	a.ExitScope()
	a.ExitScope()

	if a.Depth() != 0 {
		t.Error("Unexpected depth:", a.Depth())
	}
}

func TestChildSlicePooling(t *testing.T) {
	a := New(100, 100)

	s := a.ChildSlice(1)
	if cap(s) < smallCap {
		t.Error("Unexpected capacity:", cap(s))
	}
	a.Release(s)

	s2 := a.ChildSlice(5)
	if cap(s2) < mediumCap {
		t.Error("Unexpected capacity:", cap(s2))
	}
	a.Release(s2)

	s3 := a.ChildSlice(20)
	if cap(s3) < largeCap {
		t.Error("Unexpected capacity:", cap(s3))
	}
	a.Release(s3)
}

func TestDefaultBounds(t *testing.T) {
	a := New(0, 0)

	if a.maxNodes != 10000 {
		t.Error("Unexpected default maxNodes:", a.maxNodes)
	}
	if a.maxDepth != 100 {
		t.Error("Unexpected default maxDepth:", a.maxDepth)
	}
}
