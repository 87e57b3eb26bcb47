package lang

import "sort"

// Env implements a lexical environment chain. Scopes are shared: several
// closures and child scopes may point at the same parent, and bindings made
// through any of them are visible to all.
type Env struct {
	parent *Env
	values map[string]Value
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Value),
	}
}

// Get retrieves a copy of a binding, searching parents if necessary. A name
// bound nowhere yields a SymbolNotBound error value.
func (e *Env) Get(name string) Value {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val.Copy()
		}
	}
	return SymbolNotBoundError(name)
}

// Put binds name in this scope only, replacing any existing binding.
func (e *Env) Put(name string, val Value) {
	e.values[name] = val.Copy()
}

// Def binds name in the root scope.
func (e *Env) Def(name string, val Value) {
	e.Root().Put(name, val)
}

// Contains reports whether name is bound in this scope, ignoring parents.
func (e *Env) Contains(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Names returns the names bound in this scope, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parent returns the parent environment.
func (e *Env) Parent() *Env {
	return e.parent
}

// Root returns the outermost scope of the chain.
func (e *Env) Root() *Env {
	env := e
	for env.parent != nil {
		env = env.parent
	}
	return env
}
