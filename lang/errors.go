package lang

import "fmt"

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	KindSymbolNotBound ErrorKind = iota + 1
	KindDivisionByZero
	KindWrongType
	KindWrongArgumentCount
	KindEmptyList
	KindNotAFunction
	KindIncompatibleBindingCounts
	KindCantCompare
	KindUserRaised
	KindSyntax
	KindRecursionDepth
)

func (k ErrorKind) String() string {
	switch k {
	case KindSymbolNotBound:
		return "SymbolNotBound"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindWrongType:
		return "WrongType"
	case KindWrongArgumentCount:
		return "WrongArgumentCount"
	case KindEmptyList:
		return "EmptyList"
	case KindNotAFunction:
		return "NotAFunction"
	case KindIncompatibleBindingCounts:
		return "IncompatibleBindingCounts"
	case KindCantCompare:
		return "CantCompare"
	case KindUserRaised:
		return "UserRaised"
	case KindSyntax:
		return "Syntax"
	case KindRecursionDepth:
		return "RecursionDepth"
	default:
		return "Unknown"
	}
}

// Error describes a failure produced during evaluation. Errors travel as
// ordinary values; the Go error interface is for embedders that want to
// hand them to code expecting one.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...interface{}) Value {
	return ErrorValue(&Error{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// SymbolNotBoundError reports a lookup miss at the root scope.
func SymbolNotBoundError(name string) Value {
	return newError(KindSymbolNotBound, "unbound symbol '%s'", name)
}

// DivisionByZeroError reports a zero divisor.
func DivisionByZeroError() Value {
	return newError(KindDivisionByZero, "division by zero")
}

// WrongTypeError reports an operand of the wrong kind.
func WrongTypeError(caller string, expected, got ValueType) Value {
	return newError(KindWrongType, "%s: wrong type, expected %s, got %s", caller, expected, got)
}

// WrongArgumentCountError reports an arity mismatch.
func WrongArgumentCountError(caller string, expected, got int) Value {
	return newError(KindWrongArgumentCount, "%s: wrong number of arguments, expected %d, got %d", caller, expected, got)
}

// EmptyListError reports an empty Q-expression where one element was needed.
func EmptyListError(caller string) Value {
	return newError(KindEmptyList, "%s: empty list", caller)
}

// NotAFunctionError reports an attempt to apply a non-callable value.
func NotAFunctionError(v Value) Value {
	return newError(KindNotAFunction, "not a function: %s", v.Type)
}

// IncompatibleBindingCountsError reports a symbol list and value list of
// different lengths.
func IncompatibleBindingCountsError(caller string, symbols, values int) Value {
	return newError(KindIncompatibleBindingCounts, "%s: cannot bind %d symbols to %d values", caller, symbols, values)
}

// CantCompareError reports an ordering between incomparable kinds.
func CantCompareError(caller string, left, right ValueType) Value {
	return newError(KindCantCompare, "%s: cannot compare %s with %s", caller, left, right)
}

// UserError wraps a message raised by the program itself.
func UserError(msg string) Value {
	return ErrorValue(&Error{Kind: KindUserRaised, Message: msg})
}

// SyntaxError wraps a front-end diagnostic.
func SyntaxError(msg string) Value {
	return ErrorValue(&Error{Kind: KindSyntax, Message: msg})
}

// RecursionDepthError reports that evaluation nested deeper than allowed.
func RecursionDepthError(limit int) Value {
	return newError(KindRecursionDepth, "maximum recursion depth %d exceeded", limit)
}
