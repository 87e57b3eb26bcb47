package runtime

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergev/risp/lang"
	"github.com/sergev/risp/parser"
)

func TestReadFileSkippingShebang(t *testing.T) {
	dir := t.TempDir()

	withShebang := filepath.Join(dir, "script.risp")
	if err := os.WriteFile(withShebang, []byte("#!/usr/bin/env risp\n(+ 1 2)\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err := readFileSkippingShebang(withShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if string(data) != "(+ 1 2)\n" {
		t.Fatalf("expected shebang to be stripped, got %q", data)
	}

	onlyShebang := filepath.Join(dir, "only_shebang.risp")
	if err := os.WriteFile(onlyShebang, []byte("#!/bin/true"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err = readFileSkippingShebang(onlyShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty body for shebang-only script, got %q", data)
	}

	noShebang := filepath.Join(dir, "plain.risp")
	if err := os.WriteFile(noShebang, []byte("(print \"hi\")"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err = readFileSkippingShebang(noShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if string(data) != "(print \"hi\")" {
		t.Fatalf("expected content unchanged, got %q", data)
	}
}

func TestEvaluateFileReportsEveryForm(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "prog.risp")
	src := `#!/usr/bin/env risp
; each top-level form is evaluated on its own
(fun {double x} {* x 2})
(double 21)
(head {})
(double 4)
`
	if err := os.WriteFile(script, []byte(src), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	ev := NewEvaluator()
	results, err := EvaluateFile(ev, script)
	if err != nil {
		t.Fatalf("EvaluateFile error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if got := results[1].String(); got != "42" {
		t.Fatalf("expected 42, got %s", got)
	}
	if results[2].Type != lang.TypeError || results[2].Err().Kind != lang.KindEmptyList {
		t.Fatalf("expected empty list error, got %s", results[2])
	}
	if got := results[3].String(); got != "8" {
		t.Fatalf("forms after an error should still run, got %s", got)
	}
}

func TestEvaluateFileErrors(t *testing.T) {
	dir := t.TempDir()
	ev := NewEvaluator()

	if _, err := EvaluateFile(ev, filepath.Join(dir, "missing.risp")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	broken := filepath.Join(dir, "broken.risp")
	if err := os.WriteFile(broken, []byte("(+ 1 2"), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	_, err := EvaluateFile(ev, broken)
	if err == nil || !parser.IsIncomplete(err) {
		t.Fatalf("expected incomplete parse error, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken.risp") {
		t.Fatalf("expected file name in error, got %v", err)
	}
}

func TestEvaluateStringAndReader(t *testing.T) {
	ev := NewEvaluator()
	results, err := EvaluateString(ev, "(def {x} 5) (+ x 1) 1.2.3")
	if err != nil {
		t.Fatalf("EvaluateString error: %v", err)
	}
	if len(results) != 3 || results[1].String() != "6" {
		t.Fatalf("unexpected results %v", results)
	}
	if results[2].Type != lang.TypeError || results[2].Err().Kind != lang.KindSyntax {
		t.Fatalf("expected syntax error value, got %s", results[2])
	}

	results, err = EvaluateReader(ev, strings.NewReader("(* x x)"))
	if err != nil {
		t.Fatalf("EvaluateReader error: %v", err)
	}
	if len(results) != 1 || results[0].String() != "25" {
		t.Fatalf("unexpected results %v", results)
	}

	if _, err := EvaluateString(ev, "{1 2)"); err == nil || parser.IsIncomplete(err) {
		t.Fatalf("expected mismatched bracket error, got %v", err)
	}
}

func TestEvaluateLineIncomplete(t *testing.T) {
	ev := NewEvaluator()
	if _, err := EvaluateLine(ev, "def {x} (+ 1"); !parser.IsIncomplete(err) {
		t.Fatalf("expected incomplete error, got %v", err)
	}
	val, err := EvaluateLine(ev, "")
	if err != nil {
		t.Fatalf("EvaluateLine error: %v", err)
	}
	if val.String() != "()" {
		t.Fatalf("empty line => %s, want ()", val)
	}
}

func TestSetArgvProducesQExpr(t *testing.T) {
	root := lang.NewEnv(nil)
	child := lang.NewEnv(root)
	SetArgv(child, []string{"foo", "bar"})

	if !root.Contains("argv") {
		t.Fatalf("argv should be bound in the root scope")
	}
	val := child.Get("argv")
	if val.Type != lang.TypeQExpr {
		t.Fatalf("expected Q-expression, got %s", val)
	}
	if got := val.String(); got != `{"foo" "bar"}` {
		t.Fatalf("unexpected argv contents: %s", got)
	}
}
