/*
Package main is the transpile command line tool. It reads a JS-flavored
source file, runs it through the driver, and writes the resulting Lua to
stdout or a named output file.

Grounded on cli/ecal.go's flag.CommandLine setup and subcommand dispatch
(here: the bare flag set dispatches to "repl" when invoked with that
single positional argument, otherwise treats the first argument as an
input file) and cli/tool/interpret.go's fileutil.PathExists guard before
reading a file.
*/
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/common/stringutil"

	"github.com/krotik/luascript/driver"
	"github.com/krotik/luascript/logging"
)

// osArgs/osExit/osStdout are local indirections so tests can drive main
// without touching the real process, mirroring cli/tool/helper.go.
var (
	osArgs   = os.Args
	osExit   = os.Exit
	osStdout = os.Stdout
)

func main() {
	osExit(run(osArgs[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "repl" {
		return runRepl(args[1:])
	}
	return runTranspile(args)
}

func runTranspile(args []string) int {
	fs := flag.NewFlagSet("transpile", flag.ContinueOnError)

	noRuntime := fs.Bool("no-runtime", false, "omit the runtime prelude from the generated Lua")
	optimizationLevel := fs.String("optimization-level", "standard", "optimization advisory hint: basic, standard, or aggressive (no effect on output)")
	noOptimizations := fs.Bool("no-optimizations", false, "advisory flag, no effect on output")
	noParallel := fs.Bool("no-parallel", false, "advisory flag, no effect on output")
	noCaching := fs.Bool("no-caching", false, "disable the process-wide result cache for this run")
	noProfiling := fs.Bool("no-profiling", false, "advisory flag, no effect on output")
	legacy := fs.Bool("legacy", false, "use the ordered regex rewrite pipeline instead of the canonical IR pipeline")
	noBalanceCheck := fs.Bool("no-balance-check", false, "skip the structural/keyword output validation pass")
	report := fs.Bool("report", false, "print a stats report to stderr after a successful run")
	indent := fs.String("indent", "", "indentation string for the generated Lua (default from config)")
	logLevel := fs.String("log-level", "error", "logging level for driver diagnostics: debug, info, or error")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: transpile <input> [output] [flags]")
		fmt.Fprintln(fs.Output(), "       transpile repl")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	// Advisory only: these flags exist for command-line compatibility but
	// the core has no optimization passes or worker pool to gate.
	_, _, _ = noOptimizations, noParallel, noProfiling

	if *optimizationLevel != "basic" && *optimizationLevel != "standard" && *optimizationLevel != "aggressive" {
		fmt.Fprintln(os.Stderr, "Error: --optimization-level must be one of basic, standard, aggressive")
		return 1
	}

	positional := fs.Args()
	if len(positional) < 1 {
		fs.Usage()
		return 1
	}

	inputPath := positional[0]
	var outputPath string
	if len(positional) > 1 {
		outputPath = positional[1]
	}

	if ok, _ := fileutil.PathExists(inputPath); !ok {
		fmt.Fprintf(os.Stderr, "Error: input file does not exist: %s\n", inputPath)
		return 1
	}

	source, err := ioutil.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	opts := driver.DefaultOptions()
	opts.Filename = inputPath
	opts.IncludeRuntime = !*noRuntime
	opts.UseCanonicalIR = !*legacy
	opts.ValidateLuaBalance = !*noBalanceCheck
	if *indent != "" {
		opts.Indent = *indent
	}

	logger, err := logging.NewLogLevelLogger(logging.NewStdOutLogger(), *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	d := driver.New()
	d.CacheEnabled = !*noCaching
	d.Logger = logger

	res, err := d.Transpile(string(source), opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	if outputPath != "" {
		if err := ioutil.WriteFile(outputPath, []byte(res.Code), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	} else {
		fmt.Fprint(osStdout, res.Code)
	}

	if *report {
		printReport(res.Stats)
	}

	return 0
}

func printReport(stats driver.StatsSnapshot) {
	tabData := []string{"Metric", "Value"}
	tabData = append(tabData, "Transpilations", fmt.Sprint(stats.TranspilationsCount))
	tabData = append(tabData, "Total time", stats.TotalTime.String())
	tabData = append(tabData, "Optimizations applied", fmt.Sprint(stats.OptimizationsApplied))
	tabData = append(tabData, "Cache hits", fmt.Sprint(stats.CacheHits))

	fmt.Fprint(os.Stderr, stringutil.PrintGraphicStringTable(tabData, 2, 1,
		stringutil.SingleDoubleLineTable))
}
