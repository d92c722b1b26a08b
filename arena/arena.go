/*
Package arena implements the bounded allocation region backing a single
transpile call's AST: three size-classed node pools plus node-count and
recursion-depth counters. Exceeding either bound raises a MemoryError and
the arena is abandoned (its pools are not reused across calls — they are
returned to the runtime allocator, not to each other).
*/
package arena

import (
	"sync"

	"devt.de/krotik/common/errorutil"

	"github.com/krotik/luascript/ast"
	"github.com/krotik/luascript/config"
	"github.com/krotik/luascript/ecerr"
)

/*
sizeClass identifies which pool a node's Children slice should be drawn
from, based on its expected fan-out.
*/
type sizeClass int

const (
	small  sizeClass = iota // 0-2 children: most expressions and leaves
	medium                  // 3-8 children: statements, call arguments
	large                   // 9+ children: object/array literals, switch bodies
)

const (
	smallCap  = 2
	mediumCap = 8
	largeCap  = 32
)

/*
Arena bounds allocation for one parse. It is not safe for concurrent use;
callers run one arena per goroutine, with parallelism expressed across
independent calls rather than within one.
*/
type Arena struct {
	maxNodes int
	maxDepth int

	nodeCount int
	depth     int

	pools [3]sync.Pool
}

/*
New creates an Arena with the bounds from config, or the supplied
overrides when positive.
*/
func New(maxNodes, maxDepth int) *Arena {
	if maxNodes <= 0 {
		maxNodes = config.Int(config.MaxNodes)
	}
	if maxDepth <= 0 {
		maxDepth = config.Int(config.MaxDepth)
	}

	a := &Arena{maxNodes: maxNodes, maxDepth: maxDepth}

	a.pools[small] = sync.Pool{New: func() interface{} { return make([]ast.ID, 0, smallCap) }}
	a.pools[medium] = sync.Pool{New: func() interface{} { return make([]ast.ID, 0, mediumCap) }}
	a.pools[large] = sync.Pool{New: func() interface{} { return make([]ast.ID, 0, largeCap) }}

	return a
}

/*
AllocNode registers one more node against the node-count budget. Returns
a MemoryError once the budget is exhausted.
*/
func (a *Arena) AllocNode() error {
	a.nodeCount++
	if a.nodeCount > a.maxNodes {
		return ecerr.NewMemoryError("node count limit exceeded")
	}
	return nil
}

/*
EnterScope bumps the recursion-depth counter on entry to a nested
construct (the parser calls it for blocks and parenthesized
expressions). Returns a
MemoryError once the budget is exhausted.
*/
func (a *Arena) EnterScope() error {
	a.depth++
	if a.depth > a.maxDepth {
		return ecerr.NewMemoryError("recursion depth limit exceeded")
	}
	return nil
}

/*
ExitScope undoes a matching EnterScope.
*/
func (a *Arena) ExitScope() {
	errorutil.AssertTrue(a.depth > 0, "ExitScope called without a matching EnterScope")
	a.depth--
}

/*
ChildSlice borrows a child-id slice sized for the expected fan-out n. The
slice is not zeroed; callers always append before reading.
*/
func (a *Arena) ChildSlice(n int) []ast.ID {
	class := small
	if n > mediumCap {
		class = large
	} else if n > smallCap {
		class = medium
	}
	return a.pools[class].Get().([]ast.ID)[:0]
}

/*
Release returns a child-id slice to its size class pool for reuse by a
later ChildSlice call on the same arena. The parser and lowerer do not
call it; slices they borrow are not returned to the pools.
*/
func (a *Arena) Release(s []ast.ID) {
	class := small
	switch cap(s) {
	case mediumCap:
		class = medium
	case largeCap:
		class = large
	}
	a.pools[class].Put(s) //nolint: staticcheck // slice retained by pool intentionally
}

/*
NodeCount returns how many nodes have been allocated so far.
*/
func (a *Arena) NodeCount() int {
	return a.nodeCount
}

/*
Depth returns the current recursion depth.
*/
func (a *Arena) Depth() int {
	return a.depth
}
