package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	src    string
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{
		src:    src,
		line:   1,
		column: 1,
	}
}

type runeState struct {
	pos    int
	line   int
	column int
}

func (lx *lexer) mark() runeState {
	return runeState{
		pos:    lx.pos,
		line:   lx.line,
		column: lx.column,
	}
}

func (lx *lexer) restore(state runeState) {
	lx.pos = state.pos
	lx.line = state.line
	lx.column = state.column
}

func positionFromState(state runeState) Position {
	return Position{
		Offset: state.pos,
		Line:   state.line,
		Column: state.column,
	}
}

func (lx *lexer) atEOF() bool {
	return lx.pos >= len(lx.src)
}

func (lx *lexer) readRune() (rune, runeState, error) {
	state := lx.mark()
	if lx.pos >= len(lx.src) {
		return 0, state, io.EOF
	}
	r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	if r == utf8.RuneError && w == 1 {
		return 0, state, newError(positionFromState(state), fmt.Errorf("invalid UTF-8 encoding at byte %d", lx.pos))
	}
	lx.pos += w
	if r == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return r, state, nil
}

func (lx *lexer) skipWhitespace() error {
	for {
		r, state, err := lx.readRune()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case r == ';':
			lx.skipLine()
			continue
		default:
			lx.restore(state)
			return nil
		}
	}
}

func (lx *lexer) skipLine() {
	for {
		r, _, err := lx.readRune()
		if err != nil || r == '\n' {
			return
		}
	}
}

func (lx *lexer) parseForm() (*Node, error) {
	r, start, err := lx.readRune()
	if err != nil {
		return nil, err
	}
	pos := positionFromState(start)
	switch r {
	case '(':
		return lx.parseList(TagSExpr, ')', pos)
	case '{':
		return lx.parseList(TagQExpr, '}', pos)
	case ')', '}':
		return nil, newError(pos, fmt.Errorf("unexpected '%c'", r))
	case '"':
		return lx.parseString(pos)
	default:
		lx.restore(start)
		return lx.parseAtom(pos), nil
	}
}

func (lx *lexer) parseList(tag Tag, closer rune, pos Position) (*Node, error) {
	node := &Node{Tag: tag, Pos: pos}
	for {
		if err := lx.skipWhitespace(); err != nil {
			return nil, err
		}
		r, state, err := lx.readRune()
		if errors.Is(err, io.EOF) {
			return nil, newIncompleteError(pos, fmt.Errorf("unterminated %s, missing '%c'", tag, closer))
		}
		if err != nil {
			return nil, err
		}
		if r == closer {
			return node, nil
		}
		if r == ')' || r == '}' {
			return nil, newError(positionFromState(state), fmt.Errorf("expected '%c' but found '%c'", closer, r))
		}
		lx.restore(state)
		child, err := lx.parseForm()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
}

// parseString reads a string literal after its opening quote. Unknown escape
// sequences do not stop parsing; the literal becomes a syntax error node.
func (lx *lexer) parseString(pos Position) (*Node, error) {
	var builder strings.Builder
	var badEscape string
	for {
		r, _, err := lx.readRune()
		if errors.Is(err, io.EOF) {
			return nil, newIncompleteError(pos, fmt.Errorf("unterminated string"))
		}
		if err != nil {
			return nil, err
		}
		if r == '"' {
			break
		}
		if r != '\\' {
			builder.WriteRune(r)
			continue
		}
		esc, _, err := lx.readRune()
		if errors.Is(err, io.EOF) {
			return nil, newIncompleteError(pos, fmt.Errorf("unterminated escape sequence"))
		}
		if err != nil {
			return nil, err
		}
		switch esc {
		case 'n':
			builder.WriteRune('\n')
		case 't':
			builder.WriteRune('\t')
		case 'r':
			builder.WriteRune('\r')
		case '0':
			builder.WriteRune(0)
		case '\\':
			builder.WriteRune('\\')
		case '"':
			builder.WriteRune('"')
		default:
			if badEscape == "" {
				badEscape = string(esc)
			}
		}
	}
	if badEscape != "" {
		return syntaxErrNode(pos, "unknown escape sequence \\%s in string", badEscape), nil
	}
	return &Node{Tag: TagString, Pos: pos, Text: builder.String()}, nil
}

func (lx *lexer) parseAtom(pos Position) *Node {
	var builder strings.Builder
	for {
		r, state, err := lx.readRune()
		if err != nil {
			break
		}
		if isDelimiter(r) {
			lx.restore(state)
			break
		}
		builder.WriteRune(r)
	}
	token := builder.String()

	switch {
	case token == "true" || token == "false":
		return &Node{Tag: TagBool, Pos: pos, Text: token, Bool: token == "true"}
	case looksNumeric(token):
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return syntaxErrNode(pos, "invalid number %q", token)
		}
		return &Node{Tag: TagNumber, Pos: pos, Text: token, Number: f}
	case IsPrelude(token):
		return &Node{Tag: TagPrelude, Pos: pos, Text: token}
	case isSymbol(token):
		return &Node{Tag: TagSymbol, Pos: pos, Text: token}
	default:
		return syntaxErrNode(pos, "invalid symbol %q", token)
	}
}

func syntaxErrNode(pos Position, format string, args ...interface{}) *Node {
	return &Node{
		Tag:  TagSyntaxErr,
		Pos:  pos,
		Text: fmt.Sprintf("%s: %s", pos, fmt.Sprintf(format, args...)),
	}
}

func isDelimiter(r rune) bool {
	switch r {
	case '(', ')', '{', '}', '"', ';':
		return true
	}
	return unicode.IsSpace(r)
}

// looksNumeric reports whether token should be read as a number: a digit,
// optionally preceded by a sign or a decimal point.
func looksNumeric(token string) bool {
	s := token
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	s = strings.TrimPrefix(s, ".")
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isSymbol(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if !strings.ContainsRune("_+-*/\\=<>!&%?^.:'|$", r) {
			return false
		}
	}
	return true
}
