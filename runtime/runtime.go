package runtime

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sergev/risp/lang"
	"github.com/sergev/risp/reader"
)

// sourceReader maps prelude identifiers to the builtins table.
var sourceReader *reader.Reader

// NewEvaluator constructs an evaluator with the standard runtime installed.
func NewEvaluator() *lang.Evaluator {
	ev := lang.NewEvaluator()
	installPrimitives(ev)
	if err := installLibrary(ev); err != nil {
		panic(fmt.Errorf("runtime bootstrap failed: %w", err))
	}
	return ev
}

// SetArgv binds argv in the root scope to a Q-expression of the arguments.
func SetArgv(env *lang.Env, args []string) {
	values := make([]lang.Value, len(args))
	for i, arg := range args {
		values[i] = lang.StringValue(arg)
	}
	env.Def("argv", lang.QExpr(values...))
}

func installLibrary(ev *lang.Evaluator) error {
	for _, form := range preludeForms {
		exprs, err := sourceReader.ReadString(form)
		if err != nil {
			return err
		}
		for _, val := range ev.EvalAll(exprs, nil) {
			if val.Type == lang.TypeError {
				return fmt.Errorf("prelude %s: %w", form, val.Err())
			}
		}
	}
	return nil
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			return data[idx+1:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// EvaluateLine evaluates an interactive input line as one implicit
// S-expression, so "+ 1 2" means "(+ 1 2)".
func EvaluateLine(ev *lang.Evaluator, src string) (lang.Value, error) {
	expr, err := sourceReader.ReadLine(src)
	if err != nil {
		return lang.Value{}, err
	}
	return ev.Eval(expr, nil), nil
}

// EvaluateString evaluates every top-level form of src and returns the
// results in order. The error is reserved for input that cannot be parsed.
func EvaluateString(ev *lang.Evaluator, src string) ([]lang.Value, error) {
	exprs, err := sourceReader.ReadString(src)
	if err != nil {
		return nil, err
	}
	return ev.EvalAll(exprs, nil), nil
}

// EvaluateReader consumes all expressions from the reader and evaluates them.
func EvaluateReader(ev *lang.Evaluator, r io.Reader) ([]lang.Value, error) {
	exprs, err := sourceReader.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ev.EvalAll(exprs, nil), nil
}

// EvaluateFile loads and executes a source file, allowing a #! first line.
func EvaluateFile(ev *lang.Evaluator, path string) ([]lang.Value, error) {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return nil, err
	}
	results, err := EvaluateReader(ev, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}
