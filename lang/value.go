package lang

import (
	"math"
	"strconv"
	"strings"
)

// ValueType enumerates the different runtime value categories.
type ValueType int

const (
	TypeInvalid ValueType = iota
	TypeError
	TypeNumber
	TypeSymbol
	TypeString
	TypeBool
	TypeBuiltin
	TypeLambda
	TypeSExpr
	TypeQExpr
)

func (t ValueType) String() string {
	switch t {
	case TypeError:
		return "Error"
	case TypeNumber:
		return "Number"
	case TypeSymbol:
		return "Symbol"
	case TypeString:
		return "String"
	case TypeBool:
		return "Bool"
	case TypeBuiltin:
		return "Builtin"
	case TypeLambda:
		return "Lambda"
	case TypeSExpr:
		return "S-Expression"
	case TypeQExpr:
		return "Q-Expression"
	default:
		return "Invalid"
	}
}

// Value represents any runtime object in the interpreter.
type Value struct {
	Type    ValueType
	payload interface{}
}

// Cells holds the ordered children of an S-expression or Q-expression.
// Values of either list kind share the container, so list operations
// performed through one Value are visible through every copy of it.
type Cells struct {
	items []Value
}

// Lambda represents a user-defined function. Env is the scope that
// parameters are bound on top of when the lambda is called.
type Lambda struct {
	Formals Value
	Body    Value
	Env     *Env
}

// NumberValue constructs a number Value.
func NumberValue(f float64) Value {
	return Value{Type: TypeNumber, payload: f}
}

// SymbolValue constructs a symbol Value.
func SymbolValue(s string) Value {
	return Value{Type: TypeSymbol, payload: s}
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{Type: TypeString, payload: s}
}

// BoolValue returns the boolean Value equivalent.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, payload: b}
}

// BuiltinValue wraps a primitive operation.
func BuiltinValue(b *Builtin) Value {
	return Value{Type: TypeBuiltin, payload: b}
}

// LambdaValue wraps a user-defined function.
func LambdaValue(formals, body Value, env *Env) Value {
	return Value{
		Type:    TypeLambda,
		payload: &Lambda{Formals: formals, Body: body, Env: env},
	}
}

// ErrorValue wraps an evaluation error.
func ErrorValue(err *Error) Value {
	return Value{Type: TypeError, payload: err}
}

// SExpr constructs an S-expression from the provided values.
func SExpr(vals ...Value) Value {
	return listValue(TypeSExpr, vals)
}

// QExpr constructs a Q-expression from the provided values.
func QExpr(vals ...Value) Value {
	return listValue(TypeQExpr, vals)
}

func listValue(t ValueType, vals []Value) Value {
	items := make([]Value, len(vals))
	copy(items, vals)
	return Value{Type: t, payload: &Cells{items: items}}
}

func (v Value) Num() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

func (v Value) Sym() string {
	if v.Type != TypeSymbol {
		return ""
	}
	s, _ := v.payload.(string)
	return s
}

func (v Value) Str() string {
	if v.Type != TypeString {
		return ""
	}
	s, _ := v.payload.(string)
	return s
}

func (v Value) Bool() bool {
	if b, ok := v.payload.(bool); ok {
		return b
	}
	return false
}

func (v Value) Builtin() *Builtin {
	if b, ok := v.payload.(*Builtin); ok {
		return b
	}
	return nil
}

func (v Value) Lambda() *Lambda {
	if l, ok := v.payload.(*Lambda); ok {
		return l
	}
	return nil
}

func (v Value) Err() *Error {
	if e, ok := v.payload.(*Error); ok {
		return e
	}
	return nil
}

// IsList reports whether v is an S-expression or a Q-expression.
func (v Value) IsList() bool {
	return v.Type == TypeSExpr || v.Type == TypeQExpr
}

// Cells returns the children of a list value, or nil for other kinds.
// The slice aliases the list storage.
func (v Value) Cells() []Value {
	if c, ok := v.payload.(*Cells); ok {
		return c.items
	}
	return nil
}

// Len returns the number of children of a list value.
func (v Value) Len() int {
	return len(v.Cells())
}

// Cell returns the i-th child of a list value.
func (v Value) Cell(i int) Value {
	return v.Cells()[i]
}

func (v Value) cells() *Cells {
	c, ok := v.payload.(*Cells)
	if !ok {
		panic("lang: list operation on " + v.Type.String())
	}
	return c
}

// AsSExpr re-tags a list value as an S-expression sharing the same children.
func (v Value) AsSExpr() Value {
	return Value{Type: TypeSExpr, payload: v.cells()}
}

// AsQExpr re-tags a list value as a Q-expression sharing the same children.
func (v Value) AsQExpr() Value {
	return Value{Type: TypeQExpr, payload: v.cells()}
}

// Append adds val at the end of the list and returns the list.
func (v Value) Append(val Value) Value {
	c := v.cells()
	c.items = append(c.items, val)
	return v
}

// PushFront inserts val at the start of the list and returns the list.
func (v Value) PushFront(val Value) Value {
	c := v.cells()
	c.items = append(c.items, Value{})
	copy(c.items[1:], c.items)
	c.items[0] = val
	return v
}

// PopFront removes and returns the first child. Popping an empty list is a
// programming error: callers check Len first.
func (v Value) PopFront() Value {
	c := v.cells()
	if len(c.items) == 0 {
		panic("lang: PopFront on empty list")
	}
	first := c.items[0]
	c.items[0] = Value{}
	c.items = c.items[1:]
	return first
}

// Take removes and returns the i-th child, discarding all its siblings.
func (v Value) Take(i int) Value {
	c := v.cells()
	taken := c.items[i]
	c.items = nil
	return taken
}

// Split returns a new list of the same kind with the children from index i
// onward. The receiver keeps the prefix [0, i).
func (v Value) Split(i int) Value {
	c := v.cells()
	suffix := listValue(v.Type, c.items[i:])
	for j := i; j < len(c.items); j++ {
		c.items[j] = Value{}
	}
	c.items = c.items[:i]
	return suffix
}

// Join appends the children of other to the receiver and returns the receiver.
// other is left empty.
func (v Value) Join(other Value) Value {
	c := v.cells()
	o := other.cells()
	if c == o {
		c.items = append(c.items, c.items...)
		return v
	}
	c.items = append(c.items, o.items...)
	o.items = nil
	return v
}

// Copy returns a deep copy of list structure. Lambdas get fresh formals and
// body but keep sharing their scope; other payloads are immutable.
func (v Value) Copy() Value {
	switch v.Type {
	case TypeSExpr, TypeQExpr:
		src := v.Cells()
		items := make([]Value, len(src))
		for i, child := range src {
			items[i] = child.Copy()
		}
		return Value{Type: v.Type, payload: &Cells{items: items}}
	case TypeLambda:
		l := v.Lambda()
		if l == nil {
			return v
		}
		return LambdaValue(l.Formals.Copy(), l.Body.Copy(), l.Env)
	default:
		return v
	}
}

// Equal reports whether two values are the same. Lists and literals compare
// structurally, builtins by identity, lambdas by formals and body.
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeNumber:
		return a.Num() == b.Num()
	case TypeSymbol:
		return a.Sym() == b.Sym()
	case TypeString:
		return a.Str() == b.Str()
	case TypeBool:
		return a.Bool() == b.Bool()
	case TypeBuiltin:
		return a.Builtin() == b.Builtin()
	case TypeLambda:
		la, lb := a.Lambda(), b.Lambda()
		if la == nil || lb == nil {
			return la == lb
		}
		return Equal(la.Formals, lb.Formals) && Equal(la.Body, lb.Body)
	case TypeError:
		ea, eb := a.Err(), b.Err()
		if ea == nil || eb == nil {
			return ea == eb
		}
		return ea.Kind == eb.Kind && ea.Message == eb.Message
	case TypeSExpr, TypeQExpr:
		ca, cb := a.Cells(), b.Cells()
		if len(ca) != len(cb) {
			return false
		}
		for i := range ca {
			if !Equal(ca[i], cb[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// IsTruthy reports whether a value selects the first branch of a conditional.
func IsTruthy(v Value) bool {
	switch v.Type {
	case TypeBool:
		return v.Bool()
	case TypeNumber:
		return v.Num() != 0
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Type {
	case TypeError:
		if e := v.Err(); e != nil {
			return "Error: " + e.Message
		}
		return "Error"
	case TypeNumber:
		return FormatNumber(v.Num())
	case TypeSymbol:
		return v.Sym()
	case TypeString:
		return strconv.Quote(v.Str())
	case TypeBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case TypeBuiltin:
		// Prelude names are reserved, so the name reads back as the same builtin.
		if b := v.Builtin(); b != nil && b.Name != "" {
			return b.Name
		}
		return "<builtin>"
	case TypeLambda:
		l := v.Lambda()
		if l == nil {
			return "<lambda>"
		}
		return "(\\ " + l.Formals.String() + " " + l.Body.String() + ")"
	case TypeSExpr:
		return listToString(v, "(", ")")
	case TypeQExpr:
		return listToString(v, "{", "}")
	default:
		return "<invalid>"
	}
}

// FormatNumber renders a number the way the REPL echoes it. Integral values
// below 1e21 are written without an exponent.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func listToString(v Value, open, close string) string {
	var b strings.Builder
	b.WriteString(open)
	for i, child := range v.Cells() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(child.String())
	}
	b.WriteString(close)
	return b.String()
}
