package iostep

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	magicStart = "ISO-10303-21"
	magicEnd   = "END-ISO-10303-21"
)

// headerChunk is how much more of the input ReadHeader takes when the
// header is not complete yet.
const headerChunk = 64 << 10

type parser struct {
	lex  *lexer
	tok  token
	file *File

	// headerOnly stops parsing at the start of the DATA section.
	headerOnly bool
}

// Parse reads a complete exchange structure.
func Parse(r io.Reader) (*File, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(src)
}

// ParseBytes parses exchange structure content held in memory.
func ParseBytes(src []byte) (*File, error) {
	p := &parser{
		lex: newLexer(src),
		file: &File{
			entities: make(map[int]*Entity, len(src)/80),
		},
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.parseFile(); err != nil {
		return nil, err
	}
	return p.file, nil
}

// ReadHeader reads the input only up to the DATA section and returns a
// File with header fields and no entities. Instances are neither read
// into memory nor parsed.
func ReadHeader(r io.Reader) (*File, error) {
	var src []byte
	chunk := make([]byte, headerChunk)
	for {
		n, rerr := io.ReadFull(r, chunk)
		src = append(src, chunk[:n]...)
		eof := rerr == io.EOF || rerr == io.ErrUnexpectedEOF
		if rerr != nil && !eof {
			return nil, rerr
		}

		p := &parser{
			lex:        newLexer(src),
			file:       &File{entities: make(map[int]*Entity)},
			headerOnly: true,
		}
		err := p.advance()
		if err == nil {
			err = p.parseFile()
		}
		// a header cut by the chunk boundary fails, read more
		if err == nil || eof {
			if err != nil {
				return nil, err
			}
			return p.file, nil
		}
	}
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.tok.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(k tokKind) (token, error) {
	tok := p.tok
	if tok.kind != k {
		return tok, p.errorf("expected %s, got %s", k, tok.kind)
	}
	return tok, p.advance()
}

func (p *parser) expectKeyword(kw string) error {
	if p.tok.kind != tokKeyword || !strings.EqualFold(p.tok.text, kw) {
		return p.errorf("expected %s", kw)
	}
	return p.advance()
}

func (p *parser) parseFile() error {
	if err := p.expectKeyword(magicStart); err != nil {
		return err
	}
	if _, err := p.expect(tokSemi); err != nil {
		return err
	}

	for {
		if p.tok.kind != tokKeyword {
			return p.errorf("expected section, got %s", p.tok.kind)
		}
		kw := strings.ToUpper(p.tok.text)
		switch kw {
		case "HEADER":
			if err := p.parseHeader(); err != nil {
				return err
			}
		case "DATA":
			if p.headerOnly {
				return nil
			}
			if err := p.parseData(); err != nil {
				return err
			}
		case "ANCHOR", "REFERENCE", "SIGNATURE":
			if err := p.skipSection(); err != nil {
				return err
			}
		case magicEnd:
			if err := p.advance(); err != nil {
				return err
			}
			return nil
		default:
			return p.errorf("unknown section %s", p.tok.text)
		}
	}
}

func (p *parser) parseHeader() error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(tokSemi); err != nil {
		return err
	}
	for !p.isEndSec() {
		tok, err := p.expect(tokKeyword)
		if err != nil {
			return err
		}
		args, err := p.parseArgs()
		if err != nil {
			return err
		}
		if _, err = p.expect(tokSemi); err != nil {
			return err
		}
		p.applyHeader(strings.ToUpper(tok.text), args)
	}
	return p.endSection()
}

func (p *parser) applyHeader(name string, args []Value) {
	if len(args) == 0 {
		return
	}
	switch name {
	case "FILE_SCHEMA":
		for _, v := range args[0].List {
			if s, ok := v.Text(); ok {
				p.file.Schemas = append(p.file.Schemas, s)
			}
		}
	case "FILE_NAME":
		if s, ok := args[0].Text(); ok {
			p.file.Name = s
		}
	case "FILE_DESCRIPTION":
		for _, v := range args[0].List {
			if s, ok := v.Text(); ok {
				p.file.Description = append(p.file.Description, s)
			}
		}
	}
}

func (p *parser) parseData() error {
	if err := p.advance(); err != nil {
		return err
	}
	// DATA may carry a section name and schema: DATA('name',('IFC4'));
	if p.tok.kind == tokLParen {
		if _, err := p.parseArgs(); err != nil {
			return err
		}
	}
	if _, err := p.expect(tokSemi); err != nil {
		return err
	}
	for !p.isEndSec() {
		if err := p.parseInstance(); err != nil {
			return err
		}
	}
	return p.endSection()
}

func (p *parser) parseInstance() error {
	tok, err := p.expect(tokInstance)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(tok.text)
	if err != nil {
		return &SyntaxError{Line: tok.line, Msg: "bad instance name #" + tok.text}
	}
	if _, err = p.expect(tokEq); err != nil {
		return err
	}

	ent := &Entity{ID: id}
	switch p.tok.kind {
	case tokKeyword:
		ent.Class = strings.ToUpper(p.tok.text)
		if err = p.advance(); err != nil {
			return err
		}
		if ent.Args, err = p.parseArgs(); err != nil {
			return err
		}
	case tokLParen:
		if ent.Parts, err = p.parseComplex(); err != nil {
			return err
		}
	default:
		return p.errorf("expected entity name after #%d=", id)
	}
	if _, err = p.expect(tokSemi); err != nil {
		return err
	}

	if _, dup := p.file.entities[id]; dup {
		return &SyntaxError{Line: tok.line, Msg: fmt.Sprintf("duplicate instance #%d", id)}
	}
	p.file.entities[id] = ent
	p.file.order = append(p.file.order, id)
	return nil
}

// parseComplex reads the partial entities of an external mapping
// instance: (NAME1(...)NAME2(...)).
func (p *parser) parseComplex() ([]Entity, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var res []Entity
	for p.tok.kind == tokKeyword {
		part := Entity{Class: strings.ToUpper(p.tok.text)}
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		part.Args = args
		res = append(res, part)
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return res, nil
}

// parseArgs reads a parenthesized, comma separated parameter list.
func (p *parser) parseArgs() ([]Value, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var res []Value
	if p.tok.kind == tokRParen {
		return res, p.advance()
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		res = append(res, v)

		switch p.tok.kind {
		case tokComma:
			if err = p.advance(); err != nil {
				return nil, err
			}
		case tokRParen:
			return res, p.advance()
		default:
			return nil, p.errorf("expected ',' or ')', got %s", p.tok.kind)
		}
	}
}

func (p *parser) parseValue() (Value, error) {
	tok := p.tok
	var res Value
	switch tok.kind {
	case tokNull:
		res.Kind = KindNull
	case tokDerived:
		res.Kind = KindDerived
	case tokInt:
		i, err := parseInt(tok)
		if err != nil {
			return res, p.errorf("bad integer %s", tok.text)
		}
		res.Kind, res.Int = KindInt, i
	case tokReal:
		f, err := parseReal(tok)
		if err != nil {
			return res, p.errorf("bad real %s", tok.text)
		}
		res.Kind, res.Real = KindReal, f
	case tokString:
		res.Kind, res.Str = KindString, tok.text
	case tokEnum:
		res.Kind, res.Str = KindEnum, strings.ToUpper(tok.text)
	case tokBinary:
		res.Kind, res.Str = KindBinary, tok.text
	case tokInstance:
		id, err := strconv.Atoi(tok.text)
		if err != nil {
			return res, p.errorf("bad reference #%s", tok.text)
		}
		res.Kind, res.Ref = KindRef, id
	case tokLParen:
		items, err := p.parseArgs()
		if err != nil {
			return res, err
		}
		res.Kind, res.List = KindList, items
		return res, nil
	case tokKeyword:
		if err := p.advance(); err != nil {
			return res, err
		}
		items, err := p.parseArgs()
		if err != nil {
			return res, err
		}
		res.Kind, res.Str, res.List = KindTyped, strings.ToUpper(tok.text), items
		return res, nil
	default:
		return res, p.errorf("unexpected %s", tok.kind)
	}
	return res, p.advance()
}

func (p *parser) isEndSec() bool {
	return p.tok.kind == tokKeyword && strings.EqualFold(p.tok.text, "ENDSEC")
}

func (p *parser) endSection() error {
	if err := p.expectKeyword("ENDSEC"); err != nil {
		return err
	}
	_, err := p.expect(tokSemi)
	return err
}

func (p *parser) skipSection() error {
	for !p.isEndSec() {
		if p.tok.kind == tokEOF {
			return p.errorf("unexpected end of file")
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
	return p.endSection()
}
