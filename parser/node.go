package parser

import (
	"strconv"
	"strings"
)

// Tag identifies the kind of a parse tree node.
type Tag int

const (
	TagSExpr Tag = iota + 1
	TagQExpr
	TagNumber
	TagString
	TagSymbol
	TagBool
	TagPrelude
	TagSyntaxErr
)

func (t Tag) String() string {
	switch t {
	case TagSExpr:
		return "sexpr"
	case TagQExpr:
		return "qexpr"
	case TagNumber:
		return "number"
	case TagString:
		return "string"
	case TagSymbol:
		return "symbol"
	case TagBool:
		return "bool"
	case TagPrelude:
		return "prelude"
	case TagSyntaxErr:
		return "syntax-error"
	default:
		return "unknown"
	}
}

// Position tracks a source location.
type Position struct {
	Offset int // zero-based byte offset
	Line   int // one-based line number
	Column int // one-based column number (rune count)
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Node is one element of the generic parse tree.
type Node struct {
	Tag Tag
	Pos Position

	// Text holds the symbol or prelude name, the decoded string contents,
	// the source of a number, or the message of a syntax error.
	Text string

	Number   float64
	Bool     bool
	Children []*Node
}

// String renders the node back in source form.
func (n *Node) String() string {
	switch n.Tag {
	case TagSExpr:
		return childrenString(n, "(", ")")
	case TagQExpr:
		return childrenString(n, "{", "}")
	case TagString:
		return strconv.Quote(n.Text)
	case TagBool:
		return strconv.FormatBool(n.Bool)
	case TagSyntaxErr:
		return "#<syntax-error " + strconv.Quote(n.Text) + ">"
	default:
		return n.Text
	}
}

func childrenString(n *Node, open, close string) string {
	var b strings.Builder
	b.WriteString(open)
	for i, child := range n.Children {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(child.String())
	}
	b.WriteString(close)
	return b.String()
}

// PreludeNames lists the reserved identifiers that name primitive operations.
var PreludeNames = []string{
	"+", "-", "*", "/", "%",
	"list", "head", "tail", "join", "cons", "eval",
	"def", "=", "\\",
	"==", "!=", ">", "<", ">=", "<=",
	"if", "not", "and", "or",
	"error", "print", "load",
	"do", "let", "select",
}

var preludeSet = func() map[string]bool {
	set := make(map[string]bool, len(PreludeNames))
	for _, name := range PreludeNames {
		set[name] = true
	}
	return set
}()

// IsPrelude reports whether name is a reserved primitive identifier.
func IsPrelude(name string) bool {
	return preludeSet[name]
}
