package lang

import (
	"io"
	"os"
)

// DefaultMaxDepth bounds nested S-expression reductions.
const DefaultMaxDepth = 100000

// VariadicMarker is the formal that collects the remaining arguments.
const VariadicMarker = "&"

// Evaluator reduces values to normal form.
type Evaluator struct {
	Global *Env

	// Out receives program output such as the print builtin.
	Out io.Writer

	// MaxDepth limits nested reductions; zero or less disables the check.
	MaxDepth int

	depth int
}

// NewEvaluator constructs an evaluator rooted at a new global environment.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Global:   NewEnv(nil),
		Out:      os.Stdout,
		MaxDepth: DefaultMaxDepth,
	}
}

// Eval evaluates a single expression within the provided environment.
// S-expressions are reduced in place.
func (ev *Evaluator) Eval(expr Value, env *Env) Value {
	if env == nil {
		env = ev.Global
	}
	switch expr.Type {
	case TypeSymbol:
		return env.Get(expr.Sym())
	case TypeSExpr:
		return ev.evalSExpr(expr, env)
	default:
		return expr
	}
}

// EvalAll evaluates each expression independently and returns every result.
// An error value in one form does not stop the following ones.
func (ev *Evaluator) EvalAll(exprs []Value, env *Env) []Value {
	results := make([]Value, len(exprs))
	for i, expr := range exprs {
		results[i] = ev.Eval(expr, env)
	}
	return results
}

func (ev *Evaluator) evalSExpr(expr Value, env *Env) Value {
	if ev.MaxDepth > 0 && ev.depth >= ev.MaxDepth {
		return RecursionDepthError(ev.MaxDepth)
	}
	ev.depth++
	defer func() { ev.depth-- }()

	cells := expr.Cells()
	for i := range cells {
		cells[i] = ev.Eval(cells[i], env)
	}
	for i := range cells {
		if cells[i].Type == TypeError {
			return expr.Take(i)
		}
	}

	switch expr.Len() {
	case 0:
		return expr
	case 1:
		return ev.Eval(expr.Take(0), env)
	}

	f := expr.PopFront()
	return ev.Call(f, expr, env)
}

// Call applies a builtin or lambda to an argument list.
func (ev *Evaluator) Call(f Value, args Value, env *Env) Value {
	if env == nil {
		env = ev.Global
	}
	switch f.Type {
	case TypeBuiltin:
		b := f.Builtin()
		if b == nil || b.Fn == nil {
			return NotAFunctionError(f)
		}
		return b.Fn(ev, env, args)
	case TypeLambda:
		l := f.Lambda()
		if l == nil {
			return NotAFunctionError(f)
		}
		return ev.callLambda(l, args)
	default:
		return NotAFunctionError(f)
	}
}

func (ev *Evaluator) callLambda(l *Lambda, args Value) Value {
	formals := l.Formals.Copy()
	given := args.Len()
	total := formals.Len()
	local := NewEnv(l.Env)

	for args.Len() > 0 {
		if formals.Len() == 0 {
			return WrongArgumentCountError("lambda", total, given)
		}
		sym := formals.PopFront()
		if sym.Sym() == VariadicMarker {
			if formals.Len() != 1 {
				return malformedVariadic()
			}
			rest := formals.PopFront()
			local.Put(rest.Sym(), args.AsQExpr())
			break
		}
		local.Put(sym.Sym(), args.PopFront())
	}

	if formals.Len() > 0 && formals.Cell(0).Sym() == VariadicMarker {
		if formals.Len() != 2 {
			return malformedVariadic()
		}
		formals.PopFront()
		rest := formals.PopFront()
		local.Put(rest.Sym(), QExpr())
	}

	if formals.Len() > 0 {
		return LambdaValue(formals, l.Body, local)
	}
	return ev.Eval(l.Body.Copy().AsSExpr(), local)
}

func malformedVariadic() Value {
	return newError(KindWrongType, "lambda: '%s' must be followed by exactly one symbol", VariadicMarker)
}
