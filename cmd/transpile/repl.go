package main

import (
	"fmt"
	"strings"

	"devt.de/krotik/common/termutil"

	"github.com/krotik/luascript/driver"
)

/*
runRepl starts an interactive console that feeds each entered line through
the driver and prints only the resulting Lua translation; it never
executes the generated code.

Grounded on cli/tool/interpret.go's CLIInterpreter.Interpret: a
termutil.ConsoleLineTerminal with the history mixin, a NextLine loop that
exits on a small set of exit words, and a "?" line for inline help.
*/
func runRepl(args []string) int {
	term, err := termutil.NewConsoleLineTerminal(osStdout)
	if err != nil {
		fmt.Fprintln(osStdout, "Error:", err)
		return 1
	}

	term, err = termutil.AddHistoryMixin(term, "", isReplExitLine)
	if err != nil {
		fmt.Fprintln(osStdout, "Error:", err)
		return 1
	}

	if err := term.StartTerm(); err != nil {
		fmt.Fprintln(osStdout, "Error:", err)
		return 1
	}
	defer term.StopTerm()

	d := driver.New()
	opts := driver.DefaultOptions()

	fmt.Fprintln(osStdout, "LUASCRIPT transpile repl - type 'quit' to exit, '?' for help")

	line, err := term.NextLine()
	for err == nil && !isReplExitLine(line) {
		handleReplLine(d, opts, line)
		line, err = term.NextLine()
	}

	return 0
}

func handleReplLine(d *driver.Driver, opts driver.Options, line string) {
	trimmed := strings.TrimSpace(line)

	if trimmed == "" {
		return
	}

	if trimmed == "?" {
		fmt.Fprintln(osStdout, "Enter a line of source; it is translated to Lua and printed back.")
		fmt.Fprintln(osStdout, "Type 'quit', 'q', 'exit', or 'bye' to leave.")
		return
	}

	res, err := d.Transpile(trimmed, opts)
	if err != nil {
		fmt.Fprintln(osStdout, err.Error())
		return
	}

	fmt.Fprint(osStdout, res.Code)
	if !strings.HasSuffix(res.Code, "\n") {
		fmt.Fprintln(osStdout)
	}
}

func isReplExitLine(s string) bool {
	switch s {
	case "exit", "q", "quit", "bye", "\x04":
		return true
	}
	return false
}
