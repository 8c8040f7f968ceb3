package iostep

import (
	"fmt"
	"strconv"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokKeyword
	tokInstance // #12
	tokInt
	tokReal
	tokString
	tokEnum
	tokBinary
	tokNull    // $
	tokDerived // *
	tokLParen
	tokRParen
	tokComma
	tokEq
	tokSemi
)

func (k tokKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokKeyword:
		return "keyword"
	case tokInstance:
		return "instance name"
	case tokInt, tokReal:
		return "number"
	case tokString:
		return "string"
	case tokEnum:
		return "enumeration"
	case tokBinary:
		return "binary"
	case tokNull:
		return "'$'"
	case tokDerived:
		return "'*'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokEq:
		return "'='"
	case tokSemi:
		return "';'"
	default:
		return "token"
	}
}

type token struct {
	kind tokKind
	text string
	line int
}

type lexer struct {
	src  []byte
	pos  int
	line int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{Line: l.line, Msg: fmt.Sprintf(format, args...)}
}

// skip moves over white space and comments.
func (l *lexer) skip() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			start := l.line
			l.pos += 2
			for {
				if l.pos+1 >= len(l.src) {
					return &SyntaxError{Line: start, Msg: "unterminated comment"}
				}
				if l.src[l.pos] == '*' && l.src[l.pos+1] == '/' {
					l.pos += 2
					break
				}
				if l.src[l.pos] == '\n' {
					l.line++
				}
				l.pos++
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) next() (token, error) {
	if err := l.skip(); err != nil {
		return token{}, err
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line}, nil
	}

	c := l.src[l.pos]
	tok := token{line: l.line}
	switch {
	case c == '(':
		tok.kind = tokLParen
		l.pos++
	case c == ')':
		tok.kind = tokRParen
		l.pos++
	case c == ',':
		tok.kind = tokComma
		l.pos++
	case c == '=':
		tok.kind = tokEq
		l.pos++
	case c == ';':
		tok.kind = tokSemi
		l.pos++
	case c == '$':
		tok.kind = tokNull
		l.pos++
	case c == '*':
		tok.kind = tokDerived
		l.pos++
	case c == '#':
		l.pos++
		start := l.pos
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if start == l.pos {
			return tok, l.errorf("instance name without number")
		}
		tok.kind = tokInstance
		tok.text = string(l.src[start:l.pos])
	case c == '\'':
		s, err := l.readString()
		if err != nil {
			return tok, err
		}
		tok.kind = tokString
		tok.text = s
	case c == '"':
		l.pos++
		start := l.pos
		for l.pos < len(l.src) && l.src[l.pos] != '"' {
			l.pos++
		}
		if l.pos >= len(l.src) {
			return tok, l.errorf("unterminated binary")
		}
		tok.kind = tokBinary
		tok.text = string(l.src[start:l.pos])
		l.pos++
	case c == '.':
		l.pos++
		start := l.pos
		for l.pos < len(l.src) && isIdent(l.src[l.pos]) {
			l.pos++
		}
		if l.pos >= len(l.src) || l.src[l.pos] != '.' {
			return tok, l.errorf("malformed enumeration")
		}
		tok.kind = tokEnum
		tok.text = string(l.src[start:l.pos])
		l.pos++
	case c == '+' || c == '-' || isDigit(c):
		return l.readNumber()
	case isLetter(c) || c == '!':
		start := l.pos
		l.pos++
		for l.pos < len(l.src) && (isIdent(l.src[l.pos]) || l.src[l.pos] == '-') {
			l.pos++
		}
		tok.kind = tokKeyword
		tok.text = string(l.src[start:l.pos])
	default:
		return tok, l.errorf("unexpected character %q", c)
	}
	return tok, nil
}

// readString reads a quoted string. Doubled apostrophes stand for one
// apostrophe, control directives are decoded by decodeString.
func (l *lexer) readString() (string, error) {
	start := l.line
	l.pos++
	buf := make([]byte, 0, 32)
	for {
		if l.pos >= len(l.src) {
			return "", &SyntaxError{Line: start, Msg: "unterminated string"}
		}
		c := l.src[l.pos]
		if c == '\'' {
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == '\'' {
				buf = append(buf, '\'')
				l.pos += 2
				continue
			}
			l.pos++
			break
		}
		if c == '\n' {
			l.line++
		} else if c != '\r' {
			buf = append(buf, c)
		}
		l.pos++
	}
	return decodeString(buf), nil
}

func (l *lexer) readNumber() (token, error) {
	tok := token{line: l.line, kind: tokInt}
	start := l.pos
	if c := l.src[l.pos]; c == '+' || c == '-' {
		l.pos++
	}
	digits := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if digits == l.pos {
		return tok, l.errorf("malformed number")
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		tok.kind = tokReal
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'E' || l.src[l.pos] == 'e') {
		tok.kind = tokReal
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		exp := l.pos
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if exp == l.pos {
			return tok, l.errorf("malformed exponent")
		}
	}
	tok.text = string(l.src[start:l.pos])
	return tok, nil
}

func parseInt(tok token) (int64, error) {
	return strconv.ParseInt(tok.text, 10, 64)
}

func parseReal(tok token) (float64, error) {
	return strconv.ParseFloat(tok.text, 64)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdent(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
