package reader

import (
	"io"

	"github.com/sergev/risp/lang"
	"github.com/sergev/risp/parser"
)

// Reader converts parse trees into runtime values. Prelude identifiers are
// resolved against a fixed table of builtins.
type Reader struct {
	builtins map[string]*lang.Builtin
}

// New returns a Reader that maps prelude names to the given builtins.
func New(builtins []*lang.Builtin) *Reader {
	table := make(map[string]*lang.Builtin, len(builtins))
	for _, b := range builtins {
		if b != nil {
			table[b.Name] = b
		}
	}
	return &Reader{builtins: table}
}

// Read maps one parse tree node to a value. Syntax error nodes become error
// values so that the surrounding program can still be evaluated.
func (rd *Reader) Read(node *parser.Node) lang.Value {
	switch node.Tag {
	case parser.TagNumber:
		return lang.NumberValue(node.Number)
	case parser.TagString:
		return lang.StringValue(node.Text)
	case parser.TagBool:
		return lang.BoolValue(node.Bool)
	case parser.TagSymbol:
		return lang.SymbolValue(node.Text)
	case parser.TagPrelude:
		if b, ok := rd.builtins[node.Text]; ok {
			return lang.BuiltinValue(b)
		}
		return lang.SymbolValue(node.Text)
	case parser.TagSyntaxErr:
		return lang.SyntaxError(node.Text)
	case parser.TagSExpr:
		return lang.SExpr(rd.readChildren(node)...)
	case parser.TagQExpr:
		return lang.QExpr(rd.readChildren(node)...)
	default:
		return lang.SyntaxError(node.Pos.String() + ": unknown node " + node.Tag.String())
	}
}

func (rd *Reader) readChildren(node *parser.Node) []lang.Value {
	vals := make([]lang.Value, len(node.Children))
	for i, child := range node.Children {
		vals[i] = rd.Read(child)
	}
	return vals
}

// ReadString parses and reads all top-level forms from src.
func (rd *Reader) ReadString(src string) ([]lang.Value, error) {
	nodes, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return rd.readNodes(nodes), nil
}

// ReadAll parses and reads all top-level forms from r.
func (rd *Reader) ReadAll(r io.Reader) ([]lang.Value, error) {
	nodes, err := parser.ParseReader(r)
	if err != nil {
		return nil, err
	}
	return rd.readNodes(nodes), nil
}

// ReadLine reads an interactive line as one implicit S-expression.
func (rd *Reader) ReadLine(src string) (lang.Value, error) {
	node, err := parser.ParseLine(src)
	if err != nil {
		return lang.Value{}, err
	}
	return rd.Read(node), nil
}

func (rd *Reader) readNodes(nodes []*parser.Node) []lang.Value {
	vals := make([]lang.Value, len(nodes))
	for i, node := range nodes {
		vals[i] = rd.Read(node)
	}
	return vals
}
