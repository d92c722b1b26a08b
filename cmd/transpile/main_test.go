package main

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.js")
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunTranspileWritesOutputFile(t *testing.T) {
	in := writeTempSource(t, "let x = 1 + 2;")
	out := in + ".lua"

	code := run([]string{"--no-runtime", in, out})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	got, err := ioutil.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "local x") {
		t.Errorf("expected output to contain 'local x', got:\n%s", got)
	}
}

func TestRunTranspileMissingInputFile(t *testing.T) {
	code := run([]string{filepath.Join(t.TempDir(), "missing.js")})
	if code == 0 {
		t.Fatal("expected a non-zero exit code for a missing input file")
	}
}

func TestRunTranspileNoArgsPrintsUsage(t *testing.T) {
	code := run(nil)
	if code == 0 {
		t.Fatal("expected a non-zero exit code when no input file is given")
	}
}

func TestRunTranspileRejectsBadOptimizationLevel(t *testing.T) {
	in := writeTempSource(t, "let x = 1;")
	code := run([]string{"--optimization-level", "bogus", in})
	if code == 0 {
		t.Fatal("expected a non-zero exit code for an invalid optimization level")
	}
}

func TestRunTranspileRejectsBadLogLevel(t *testing.T) {
	in := writeTempSource(t, "let x = 1;")
	code := run([]string{"--log-level", "bogus", in})
	if code == 0 {
		t.Fatal("expected a non-zero exit code for an invalid log level")
	}
}

func TestRunTranspileForbiddenConstructIsNonZero(t *testing.T) {
	in := writeTempSource(t, "eval(x);")
	code := run([]string{in})
	if code == 0 {
		t.Fatal("expected a non-zero exit code for a forbidden construct")
	}
}

func TestRunTranspileLegacyFlag(t *testing.T) {
	in := writeTempSource(t, "let x = 1;")
	out := in + ".lua"

	code := run([]string{"--legacy", "--no-runtime", in, out})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	got, err := ioutil.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "local x") {
		t.Errorf("expected legacy output to contain 'local x', got:\n%s", got)
	}
}
