package lang

// BuiltinFunc implements a primitive operation. env is the scope the call
// is evaluated in; args is an S-expression of already evaluated arguments
// which the primitive owns and may consume.
type BuiltinFunc func(ev *Evaluator, env *Env, args Value) Value

// Builtin is a named primitive. Builtin values compare by identity.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}
