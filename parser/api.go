package parser

import (
	"io"
)

// Parse returns every top-level form of src.
func Parse(src string) ([]*Node, error) {
	lx := newLexer(src)
	var nodes []*Node
	for {
		if err := lx.skipWhitespace(); err != nil {
			return nil, err
		}
		if lx.atEOF() {
			return nodes, nil
		}
		node, err := lx.parseForm()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// ParseLine parses an interactive input line. All forms on the line become
// the children of one implicit S-expression, so "+ 1 2" reads as "(+ 1 2)".
func ParseLine(src string) (*Node, error) {
	nodes, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return &Node{
		Tag:      TagSExpr,
		Pos:      Position{Line: 1, Column: 1},
		Children: nodes,
	}, nil
}

// ParseReader consumes source from an io.Reader and returns its top-level forms.
func ParseReader(r io.Reader) ([]*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}
