package parser

import (
	"unicode/utf8"

	"rapcfg/internal/ast"
	"rapcfg/internal/scanner"
)

// next consumes the next token. Directive pragmas are collected out of band
// and never become the current token.
func (p *Parser) next() *scanner.Token {
	for {
		t := p.s.Scan()
		if t.Kind == scanner.DIRECTIVE {
			p.directives = append(p.directives, &ast.Directive{
				Pos:    p.makePos(t),
				EndPos: p.makeEndPos(t),
				Text:   t.Lexeme,
			})
			continue
		}
		p.tok = t
		return t
	}
}

// peek returns the next token without consuming it.
func (p *Parser) peek() *scanner.Token {
	t := p.s.Peek()
	p.s.ResetPeek()
	return t
}

// peek2 returns the next two tokens without consuming them.
func (p *Parser) peek2() (*scanner.Token, *scanner.Token) {
	la1 := p.s.Peek()
	la2 := p.s.Peek()
	p.s.ResetPeek()
	return la1, la2
}

func (p *Parser) check(k scanner.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) match(kinds ...scanner.Kind) bool {
	la := p.peek()
	for _, k := range kinds {
		if la.Kind == k {
			p.next()
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or records an error. On failure
// the offending token is not consumed, so callers can resynchronize.
func (p *Parser) expect(k scanner.Kind, message string) (*scanner.Token, bool) {
	la := p.peek()
	if la.Kind == k {
		return p.next(), true
	}
	p.errorAt(la, message)
	return la, false
}

// expectName consumes an identifier or variable identifier.
func (p *Parser) expectName(message string) (*scanner.Token, bool) {
	la := p.peek()
	if la.Kind == scanner.IDENT || la.Kind == scanner.VARIDENT {
		return p.next(), true
	}
	p.errorAt(la, message)
	return la, false
}

func (p *Parser) errorAt(tok *scanner.Token, message string) {
	length := utf8.RuneCountInString(tok.Lexeme)
	if length == 0 {
		length = 1
	}
	p.errors = append(p.errors, ParseError{
		Message:  message,
		Position: tok.Position,
		Length:   length,
	})
}

func (p *Parser) makePos(tok *scanner.Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok *scanner.Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + len(tok.Lexeme),
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + utf8.RuneCountInString(tok.Lexeme),
	}
}

func (p *Parser) makeIdent(tok *scanner.Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  tok.Lexeme,
	}
}

// unquote strips the delimiters from a string lexeme and resolves the two
// escapes the language knows, \" and \\. Everything else between the quotes
// is verbatim.
func unquote(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	var b []byte
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) && (raw[i+1] == '"' || raw[i+1] == '\\') {
			i++
		}
		b = append(b, raw[i])
	}
	return string(b)
}
