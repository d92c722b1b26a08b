/*
Package driver sequences the transpiler's phases behind a single
`Transpile` entry point, selects between the canonical IR pipeline and
the legacy rewriter, and tracks per-Driver counters and an optional
per-Driver result cache.

One object composes every collaborator (lexer, parser, emitter, output
validator) behind a single construction call, and Stats' counters and
non-fatal diagnostic collection use an atomic-counter/error-list idiom.
*/
package driver

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/krotik/luascript/arena"
	"github.com/krotik/luascript/config"
	"github.com/krotik/luascript/ecerr"
	"github.com/krotik/luascript/emit"
	"github.com/krotik/luascript/ir"
	"github.com/krotik/luascript/legacy"
	"github.com/krotik/luascript/lexer"
	"github.com/krotik/luascript/logging"
	"github.com/krotik/luascript/outvalidate"
	"github.com/krotik/luascript/parser"
	"github.com/krotik/luascript/runtime"
)

/*
Options controls one Transpile call.
*/
type Options struct {
	IncludeRuntime     bool
	UseCanonicalIR     bool
	ValidateLuaBalance bool
	Indent             string
	Filename           string
}

/*
DefaultOptions reads the ambient config package for its defaults, so a
caller that only overrides one field still gets the others from
config.DefaultConfig.
*/
func DefaultOptions() Options {
	return Options{
		IncludeRuntime:     config.Bool(config.IncludeRuntime),
		UseCanonicalIR:     config.Bool(config.UseCanonicalIR),
		ValidateLuaBalance: config.Bool(config.ValidateLuaBalance),
		Indent:             config.Str(config.DefaultIndent),
	}
}

/*
Result is the `{ code, ir?, stats }` record Transpile returns; IR is nil
on the legacy path.
*/
type Result struct {
	Code     string
	IR       *ir.Module
	Warnings []ecerr.Diagnostic
	Stats    StatsSnapshot
}

/*
Stats holds one Driver's counters, each incremented with sync/atomic
so concurrent Transpile calls never race.
*/
type Stats struct {
	transpilationsCount int64
	totalTimeNanos      int64
	optimizationsApplied int64
	cacheHits           int64
}

/*
StatsSnapshot is a point-in-time, non-atomic copy of Stats for display or
serialization (the CLI's --report table).
*/
type StatsSnapshot struct {
	TranspilationsCount int64
	TotalTime           time.Duration
	OptimizationsApplied int64
	CacheHits           int64
}

func (s *Stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		TranspilationsCount:  atomic.LoadInt64(&s.transpilationsCount),
		TotalTime:            time.Duration(atomic.LoadInt64(&s.totalTimeNanos)),
		OptimizationsApplied: atomic.LoadInt64(&s.optimizationsApplied),
		CacheHits:            atomic.LoadInt64(&s.cacheHits),
	}
}

/*
Driver wires the core phases together behind Transpile. A zero Driver is
usable; Logger defaults to a NullLogger and the cache defaults to
disabled.
*/
type Driver struct {
	Logger     logging.Logger
	CacheEnabled bool

	stats Stats
	cache sync.Map // fingerprint (uint64) -> cachedResult
}

type cachedResult struct {
	code     string
	ir       *ir.Module
	warnings []ecerr.Diagnostic
}

/*
New returns a Driver with a NullLogger and caching enabled, the default
shape for library callers that don't need custom logging.
*/
func New() *Driver {
	return &Driver{Logger: logging.NewNullLogger(), CacheEnabled: true}
}

/*
Stats returns a point-in-time snapshot of this Driver's counters.
*/
func (d *Driver) Stats() StatsSnapshot {
	return d.stats.snapshot()
}

/*
Transpile runs input validation, then either the IR pipeline or the
legacy rewriter per opts.UseCanonicalIR, then (if requested) the output
validator. It returns exactly one typed error on any failure and never
partial output.
*/
func (d *Driver) Transpile(source string, opts Options) (Result, error) {
	start := time.Now()
	defer func() {
		atomic.AddInt64(&d.stats.totalTimeNanos, int64(time.Since(start)))
		atomic.AddInt64(&d.stats.transpilationsCount, 1)
	}()

	if opts.Indent == "" {
		opts.Indent = config.Str(config.DefaultIndent)
	}

	logger := d.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	if err := validateInput(source); err != nil {
		logger.LogError(err)
		return Result{}, ecerr.Wrap("validate", opts.Filename, err)
	}

	fp := fingerprint(source, opts)
	if d.CacheEnabled {
		if v, ok := d.cache.Load(fp); ok {
			atomic.AddInt64(&d.stats.cacheHits, 1)
			c := v.(cachedResult)
			return Result{Code: c.code, IR: c.ir, Warnings: c.warnings, Stats: d.stats.snapshot()}, nil
		}
	}

	var (
		code     string
		module   *ir.Module
		warnings []ecerr.Diagnostic
		phase    string
		coreErr  error
	)

	if opts.UseCanonicalIR {
		code, module, warnings, phase, coreErr = d.transpileIR(source, opts)
	} else {
		code, phase, coreErr = d.transpileLegacy(source, opts)
	}
	if coreErr != nil {
		logger.LogError(coreErr)
		return Result{}, ecerr.Wrap(phase, opts.Filename, coreErr)
	}

	if opts.ValidateLuaBalance {
		if err := outvalidate.Validate(code, outvalidate.Options{
			CheckBalance:    true,
			RuntimeInjected: opts.IncludeRuntime,
		}); err != nil {
			logger.LogError(err)
			return Result{}, ecerr.Wrap("outvalidate", opts.Filename, err)
		}
	}

	if d.CacheEnabled {
		d.cache.Store(fp, cachedResult{code: code, ir: module, warnings: warnings})
	}

	return Result{Code: code, IR: module, Warnings: warnings, Stats: d.stats.snapshot()}, nil
}

func (d *Driver) transpileIR(source string, opts Options) (string, *ir.Module, []ecerr.Diagnostic, string, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return "", nil, nil, "lex", err
	}

	a := arena.New(config.Int(config.MaxNodes), config.Int(config.MaxDepth))
	tree, program, err := parser.Parse(toks, a)
	if err != nil {
		return "", nil, nil, "parse", err
	}

	module := ir.Lower(tree, program, opts.Filename)
	res := ir.Validate(module)
	if !res.Valid {
		return "", nil, nil, "ir", ecerr.NewIRError(res.Errors)
	}

	code, err := emit.Emit(module, emit.Options{Indent: opts.Indent})
	if err != nil {
		return "", nil, nil, "emit", err
	}

	if opts.IncludeRuntime {
		code = runtime.Inject(code)
	}

	return code, module, res.Warnings, "", nil
}

func (d *Driver) transpileLegacy(source string, opts Options) (string, string, error) {
	return legacy.Rewrite(source, opts.IncludeRuntime), "", nil
}

func fingerprint(source string, opts Options) uint64 {
	h := fnv.New64a()
	h.Write([]byte(source))
	h.Write([]byte{0})
	h.Write([]byte(opts.Indent))
	h.Write([]byte{boolByte(opts.IncludeRuntime), boolByte(opts.UseCanonicalIR), boolByte(opts.ValidateLuaBalance)})
	return h.Sum64()
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
