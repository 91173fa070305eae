package parser

import (
	"io"
	"strings"

	"rapcfg/internal/ast"
	"rapcfg/internal/scanner"
)

// ParseError is a recoverable syntax problem. The scanner itself never
// errors; unrecognized input reaches the parser as ILLEGAL tokens and is
// reported here.
type ParseError struct {
	Message  string
	Position scanner.Position
	Length   int // characters covered, at least 1
}

// Parser builds a parse tree from the scanner's token stream. It drives the
// scanner exclusively through Scan, Peek, ResetPeek and the lookahead
// helpers, and owns the scanner for its lifetime.
type Parser struct {
	filename   string
	s          *scanner.Scanner
	tok        *scanner.Token // last consumed token
	errors     []ParseError
	directives []*ast.Directive
}

// ParseFile parses the named file. It panics when the file cannot be opened,
// matching the scanner's construction contract.
func ParseFile(path string) (*ast.File, []ParseError) {
	s := scanner.NewFile(path)
	defer s.Close()
	return parse(path, s)
}

// Parse parses source read from r.
func Parse(filename string, r io.Reader) (*ast.File, []ParseError) {
	s := scanner.New(r)
	defer s.Close()
	return parse(filename, s)
}

// ParseSource parses in-memory source, typically editor buffer contents.
func ParseSource(filename string, source string) (*ast.File, []ParseError) {
	return Parse(filename, strings.NewReader(source))
}

func parse(filename string, s *scanner.Scanner) (*ast.File, []ParseError) {
	p := &Parser{filename: filename, s: s}
	file := p.parseFile()
	return file, p.errors
}

func (p *Parser) parseFile() *ast.File {
	file := &ast.File{Path: p.filename}
	for !p.check(scanner.EOF) {
		before := len(p.errors)
		d := p.parseDecl()
		if d != nil {
			file.Decls = append(file.Decls, d)
		} else if len(p.errors) > before {
			p.synchronize()
		}
	}
	// Flush directives trailing the last declaration.
	p.next()
	file.Directives = p.directives
	return file
}

// synchronize discards tokens until a plausible declaration boundary so one
// syntax error does not cascade.
func (p *Parser) synchronize() {
	p.next()
	for !p.check(scanner.EOF) {
		if p.tok.Kind == scanner.SEMICOLON || p.tok.Kind == scanner.RIGHT_BRACE {
			return
		}
		if p.s.CurrentOrNextIsAnyOf("class", "delete") {
			return
		}
		p.next()
	}
}
