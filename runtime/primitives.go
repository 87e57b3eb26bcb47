package runtime

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergev/risp/lang"
	"github.com/sergev/risp/reader"
)

// builtins is filled in init: primLoad reads through a reader that refers
// back to this table.
var builtins []*lang.Builtin

func init() {
	define := func(name string, fn lang.BuiltinFunc) {
		builtins = append(builtins, &lang.Builtin{Name: name, Fn: fn})
	}

	define("+", primAdd)
	define("-", primSub)
	define("*", primMul)
	define("/", primDiv)
	define("%", primMod)

	define("list", primList)
	define("head", primHead)
	define("tail", primTail)
	define("join", primJoin)
	define("cons", primCons)
	define("eval", primEval)

	define("def", primDef)
	define("=", primPut)
	define("\\", primLambda)

	define("==", primEq)
	define("!=", primNeq)
	define(">", primGreater)
	define("<", primLess)
	define(">=", primGreaterEq)
	define("<=", primLessEq)

	define("if", primIf)
	define("not", primNot)
	define("and", primAnd)
	define("or", primOr)

	define("error", primError)
	define("print", primPrint)
	define("load", primLoad)

	define("do", primDo)
	define("let", primLet)
	define("select", primSelect)

	sourceReader = reader.New(builtins)
}

// Builtins returns the primitive table. Prelude identifiers in source text
// resolve to these values.
func Builtins() []*lang.Builtin {
	out := make([]*lang.Builtin, len(builtins))
	copy(out, builtins)
	return out
}

func installPrimitives(ev *lang.Evaluator) {
	env := ev.Global
	for _, b := range builtins {
		env.Put(b.Name, lang.BuiltinValue(b))
	}
}

func primAdd(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return arithmetic("+", args)
}

func primSub(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return arithmetic("-", args)
}

func primMul(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return arithmetic("*", args)
}

func primDiv(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return arithmetic("/", args)
}

func primMod(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return arithmetic("%", args)
}

// arithmetic folds the numeric arguments left to right. A single argument
// to "-" is negated. "%" works on the operands truncated to integers.
func arithmetic(op string, args lang.Value) lang.Value {
	if args.Len() == 0 {
		return lang.WrongArgumentCountError(op, 1, 0)
	}
	for _, arg := range args.Cells() {
		if bad, ok := checkType(op, arg, lang.TypeNumber); !ok {
			return bad
		}
	}

	acc := args.PopFront().Num()
	if op == "-" && args.Len() == 0 {
		return lang.NumberValue(-acc)
	}
	for _, arg := range args.Cells() {
		y := arg.Num()
		switch op {
		case "+":
			acc += y
		case "-":
			acc -= y
		case "*":
			acc *= y
		case "/":
			if y == 0 {
				return lang.DivisionByZeroError()
			}
			acc /= y
		case "%":
			d := int64(y)
			if d == 0 {
				return lang.DivisionByZeroError()
			}
			acc = float64(int64(acc) % d)
		}
	}
	return lang.NumberValue(acc)
}

func primList(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return args.AsQExpr()
}

func primHead(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	q, bad, ok := singleList("head", args)
	if !ok {
		return bad
	}
	q.Split(1)
	return q
}

func primTail(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	q, bad, ok := singleList("tail", args)
	if !ok {
		return bad
	}
	q.PopFront()
	return q
}

// singleList validates the lone non-empty Q-expression argument of head and tail.
func singleList(name string, args lang.Value) (lang.Value, lang.Value, bool) {
	if bad, ok := checkCount(name, args, 1); !ok {
		return lang.Value{}, bad, false
	}
	q := args.Cell(0)
	if bad, ok := checkNonEmptyList(name, q); !ok {
		return lang.Value{}, bad, false
	}
	return q, lang.Value{}, true
}

func primJoin(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	if args.Len() == 0 {
		return lang.WrongArgumentCountError("join", 1, 0)
	}
	for _, arg := range args.Cells() {
		if bad, ok := checkNonEmptyList("join", arg); !ok {
			return bad
		}
	}
	acc := args.PopFront()
	for args.Len() > 0 {
		acc.Join(args.PopFront())
	}
	return acc
}

func primCons(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("cons", args, 2); !ok {
		return bad
	}
	x := args.PopFront()
	q := args.PopFront()
	if bad, ok := checkType("cons", q, lang.TypeQExpr); !ok {
		return bad
	}
	return q.PushFront(x)
}

func primEval(ev *lang.Evaluator, env *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("eval", args, 1); !ok {
		return bad
	}
	x := args.PopFront()
	if x.Type == lang.TypeQExpr {
		x = x.AsSExpr()
	}
	return ev.Eval(x, env)
}

func primDef(_ *lang.Evaluator, env *lang.Env, args lang.Value) lang.Value {
	return bind("def", args, env.Def)
}

func primPut(_ *lang.Evaluator, env *lang.Env, args lang.Value) lang.Value {
	return bind("=", args, env.Put)
}

// bind assigns each symbol of the leading Q-expression to the matching
// argument that follows it.
func bind(name string, args lang.Value, put func(string, lang.Value)) lang.Value {
	if args.Len() == 0 {
		return lang.WrongArgumentCountError(name, 1, 0)
	}
	syms := args.PopFront()
	if bad, ok := checkSymbols(name, syms); !ok {
		return bad
	}
	if syms.Len() != args.Len() {
		return lang.IncompatibleBindingCountsError(name, syms.Len(), args.Len())
	}
	for i, sym := range syms.Cells() {
		put(sym.Sym(), args.Cell(i))
	}
	return lang.SExpr()
}

func primLambda(_ *lang.Evaluator, env *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("\\", args, 2); !ok {
		return bad
	}
	formals := args.PopFront()
	body := args.PopFront()
	if bad, ok := checkSymbols("\\", formals); !ok {
		return bad
	}
	if bad, ok := checkType("\\", body, lang.TypeQExpr); !ok {
		return bad
	}
	return lang.LambdaValue(formals, body, env)
}

func primEq(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("==", args, 2); !ok {
		return bad
	}
	return lang.BoolValue(lang.Equal(args.Cell(0), args.Cell(1)))
}

func primNeq(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("!=", args, 2); !ok {
		return bad
	}
	return lang.BoolValue(!lang.Equal(args.Cell(0), args.Cell(1)))
}

func primGreater(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return ordering(">", args, func(c int) bool { return c > 0 })
}

func primLess(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return ordering("<", args, func(c int) bool { return c < 0 })
}

func primGreaterEq(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return ordering(">=", args, func(c int) bool { return c >= 0 })
}

func primLessEq(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return ordering("<=", args, func(c int) bool { return c <= 0 })
}

// ordering compares two numbers, two strings, or two Q-expressions by length.
func ordering(name string, args lang.Value, holds func(int) bool) lang.Value {
	if bad, ok := checkCount(name, args, 2); !ok {
		return bad
	}
	a, b := args.Cell(0), args.Cell(1)
	var c int
	switch {
	case a.Type == lang.TypeNumber && b.Type == lang.TypeNumber:
		c = cmp.Compare(a.Num(), b.Num())
	case a.Type == lang.TypeString && b.Type == lang.TypeString:
		c = strings.Compare(a.Str(), b.Str())
	case a.Type == lang.TypeQExpr && b.Type == lang.TypeQExpr:
		c = cmp.Compare(a.Len(), b.Len())
	default:
		return lang.CantCompareError(name, a.Type, b.Type)
	}
	return lang.BoolValue(holds(c))
}

func primIf(ev *lang.Evaluator, env *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("if", args, 3); !ok {
		return bad
	}
	cond := args.PopFront()
	if bad, ok := checkCondition("if", cond); !ok {
		return bad
	}
	for _, branch := range args.Cells() {
		if bad, ok := checkType("if", branch, lang.TypeQExpr); !ok {
			return bad
		}
	}
	branch := args.Cell(1)
	if lang.IsTruthy(cond) {
		branch = args.Cell(0)
	}
	return ev.Eval(branch.AsSExpr(), env)
}

func primNot(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("not", args, 1); !ok {
		return bad
	}
	if bad, ok := checkCondition("not", args.Cell(0)); !ok {
		return bad
	}
	return lang.BoolValue(!lang.IsTruthy(args.Cell(0)))
}

func primAnd(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return connective("and", args, true)
}

func primOr(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	return connective("or", args, false)
}

// connective implements and (identity true) and or (identity false).
// Arguments arrive evaluated, so there is no short-circuit.
func connective(name string, args lang.Value, identity bool) lang.Value {
	if args.Len() == 0 {
		return lang.WrongArgumentCountError(name, 1, 0)
	}
	result := identity
	for _, arg := range args.Cells() {
		if bad, ok := checkCondition(name, arg); !ok {
			return bad
		}
		if lang.IsTruthy(arg) != identity {
			result = !identity
		}
	}
	return lang.BoolValue(result)
}

func primError(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("error", args, 1); !ok {
		return bad
	}
	msg := args.Cell(0)
	if bad, ok := checkType("error", msg, lang.TypeString); !ok {
		return bad
	}
	return lang.UserError(msg.Str())
}

// primPrint writes its arguments separated by spaces. Strings are written
// without quotes.
func primPrint(ev *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	parts := make([]string, args.Len())
	for i, arg := range args.Cells() {
		if arg.Type == lang.TypeString {
			parts[i] = arg.Str()
		} else {
			parts[i] = arg.String()
		}
	}
	fmt.Fprintln(output(ev), strings.Join(parts, " "))
	return lang.SExpr()
}

// primLoad evaluates every form of a source file in the root scope. Error
// values produced by the file are printed and do not stop the load.
func primLoad(ev *lang.Evaluator, env *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("load", args, 1); !ok {
		return bad
	}
	path := args.Cell(0)
	if bad, ok := checkType("load", path, lang.TypeString); !ok {
		return bad
	}
	data, err := readFileSkippingShebang(path.Str())
	if err != nil {
		return lang.UserError(fmt.Sprintf("load: %v", err))
	}
	forms, err := sourceReader.ReadAll(bytes.NewReader(data))
	if err != nil {
		return lang.SyntaxError(fmt.Sprintf("load %s: %v", path.Str(), err))
	}
	for _, val := range ev.EvalAll(forms, env.Root()) {
		if val.Type == lang.TypeError {
			fmt.Fprintln(output(ev), val.String())
		}
	}
	return lang.SExpr()
}

func primDo(_ *lang.Evaluator, _ *lang.Env, args lang.Value) lang.Value {
	if args.Len() == 0 {
		return lang.SExpr()
	}
	return args.Take(args.Len() - 1)
}

// primLet evaluates its body in a fresh scope, so "=" inside it stays local.
func primLet(ev *lang.Evaluator, env *lang.Env, args lang.Value) lang.Value {
	if bad, ok := checkCount("let", args, 1); !ok {
		return bad
	}
	body := args.Cell(0)
	if bad, ok := checkType("let", body, lang.TypeQExpr); !ok {
		return bad
	}
	return ev.Eval(body.AsSExpr(), lang.NewEnv(env))
}

// primSelect takes clauses of the form {condition result}. Conditions are
// evaluated in order in the calling scope; the result of the first one that
// holds is evaluated and returned.
func primSelect(ev *lang.Evaluator, env *lang.Env, args lang.Value) lang.Value {
	for _, clause := range args.Cells() {
		if bad, ok := checkType("select", clause, lang.TypeQExpr); !ok {
			return bad
		}
		if clause.Len() != 2 {
			return lang.WrongArgumentCountError("select", 2, clause.Len())
		}
	}
	for args.Len() > 0 {
		clause := args.PopFront()
		cond := ev.Eval(clause.PopFront(), env)
		if cond.Type == lang.TypeError {
			return cond
		}
		if bad, ok := checkCondition("select", cond); !ok {
			return bad
		}
		if lang.IsTruthy(cond) {
			return ev.Eval(clause.PopFront(), env)
		}
	}
	return lang.UserError("select: no selection found")
}

func checkCount(name string, args lang.Value, n int) (lang.Value, bool) {
	if args.Len() != n {
		return lang.WrongArgumentCountError(name, n, args.Len()), false
	}
	return lang.Value{}, true
}

func checkType(name string, v lang.Value, t lang.ValueType) (lang.Value, bool) {
	if v.Type != t {
		return lang.WrongTypeError(name, t, v.Type), false
	}
	return lang.Value{}, true
}

func checkNonEmptyList(name string, v lang.Value) (lang.Value, bool) {
	if bad, ok := checkType(name, v, lang.TypeQExpr); !ok {
		return bad, false
	}
	if v.Len() == 0 {
		return lang.EmptyListError(name), false
	}
	return lang.Value{}, true
}

func checkSymbols(name string, v lang.Value) (lang.Value, bool) {
	if bad, ok := checkType(name, v, lang.TypeQExpr); !ok {
		return bad, false
	}
	for _, sym := range v.Cells() {
		if bad, ok := checkType(name, sym, lang.TypeSymbol); !ok {
			return bad, false
		}
	}
	return lang.Value{}, true
}

func checkCondition(name string, v lang.Value) (lang.Value, bool) {
	if v.Type != lang.TypeBool && v.Type != lang.TypeNumber {
		return lang.WrongTypeError(name, lang.TypeBool, v.Type), false
	}
	return lang.Value{}, true
}

func output(ev *lang.Evaluator) io.Writer {
	if ev.Out == nil {
		return os.Stdout
	}
	return ev.Out
}
