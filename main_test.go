package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergev/risp/runtime"
)

func TestBufferedREPL(t *testing.T) {
	ev := runtime.NewEvaluator()
	input := strings.Join([]string{
		"def {add} (\\ {a b}",
		"  {+ a b})",
		"",
		"add 1 2",
		"head {}",
		"(1 2}",
		"add 40 2",
	}, "\n")

	var stdout, stderr bytes.Buffer
	runBufferedREPL(ev, bufio.NewReader(strings.NewReader(input)), &stdout, &stderr)

	want := "()\n3\nError: head: empty list\n42\n"
	if got := stdout.String(); got != want {
		t.Fatalf("stdout = %q, want %q", got, want)
	}
	if !strings.Contains(stderr.String(), "parse error") {
		t.Fatalf("expected parse error on stderr, got %q", stderr.String())
	}
}

func TestBufferedREPLUnterminatedAtEOF(t *testing.T) {
	ev := runtime.NewEvaluator()
	var stdout, stderr bytes.Buffer
	runBufferedREPL(ev, bufio.NewReader(strings.NewReader("+ 1 (")), &stdout, &stderr)

	if stdout.Len() != 0 {
		t.Fatalf("expected no output, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "missing ')'") {
		t.Fatalf("expected incomplete input to be reported, got %q", stderr.String())
	}
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.risp")
	if err := os.WriteFile(good, []byte("(def {x} 1)\n(+ x 1)\n"), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	var stderr bytes.Buffer
	if status := runScript(runtime.NewEvaluator(), good, nil, &stderr); status != 0 {
		t.Fatalf("expected status 0, got %d (%s)", status, stderr.String())
	}

	stderr.Reset()
	status := runScript(runtime.NewEvaluator(), "-", strings.NewReader("(error \"oops\")\n(+ 1 1)"), &stderr)
	if status != 1 {
		t.Fatalf("expected status 1, got %d", status)
	}
	if !strings.Contains(stderr.String(), "Error: oops") {
		t.Fatalf("expected error on stderr, got %q", stderr.String())
	}

	stderr.Reset()
	if status := runScript(runtime.NewEvaluator(), filepath.Join(dir, "missing.risp"), nil, &stderr); status != 1 {
		t.Fatalf("expected status 1 for missing file, got %d", status)
	}
}
