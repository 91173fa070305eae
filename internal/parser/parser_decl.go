package parser

import (
	"fmt"

	"rapcfg/internal/ast"
	"rapcfg/internal/scanner"
)

func (p *Parser) parseDecl() ast.Decl {
	la := p.peek()
	switch la.Kind {
	case scanner.CLASS:
		return p.parseClass()
	case scanner.IDENT, scanner.VARIDENT:
		// "delete" is a soft keyword: "delete Foo;" removes an inherited
		// class, while "delete = 1;" is an ordinary property.
		if p.s.NextIsAnyOf("delete") {
			if _, la2 := p.peek2(); la2.Kind == scanner.IDENT || la2.Kind == scanner.VARIDENT {
				return p.parseDelete()
			}
		}
		return p.parseProperty()
	default:
		p.errorAt(la, fmt.Sprintf("expected class, delete, or property declaration, found %q", la.Lexeme))
		return nil
	}
}

func (p *Parser) parseClass() ast.Decl {
	kw, _ := p.expect(scanner.CLASS, "expected 'class'")
	nameTok, ok := p.expectName("expected class name after 'class'")
	if !ok {
		return nil
	}

	c := &ast.Class{
		Pos:  p.makePos(kw),
		Name: p.makeIdent(nameTok),
	}
	if p.match(scanner.COLON) {
		parentTok, ok := p.expectName("expected parent class name after ':'")
		if !ok {
			return nil
		}
		parent := p.makeIdent(parentTok)
		c.Parent = &parent
	}

	if p.match(scanner.LEFT_BRACE) {
		for !p.check(scanner.RIGHT_BRACE) && !p.check(scanner.EOF) {
			before := len(p.errors)
			d := p.parseDecl()
			if d != nil {
				c.Body = append(c.Body, d)
			} else if len(p.errors) > before {
				p.synchronize()
			}
		}
		p.expect(scanner.RIGHT_BRACE, "expected '}' to close class body")
	} else {
		c.External = true
	}

	end, _ := p.expect(scanner.SEMICOLON, "expected ';' after class declaration")
	c.EndPos = p.makeEndPos(end)
	return c
}

func (p *Parser) parseDelete() ast.Decl {
	kw := p.next() // the "delete" soft keyword
	nameTok, ok := p.expectName("expected class name after 'delete'")
	if !ok {
		return nil
	}
	end, _ := p.expect(scanner.SEMICOLON, "expected ';' after delete")
	return &ast.Delete{
		Pos:    p.makePos(kw),
		EndPos: p.makeEndPos(end),
		Name:   p.makeIdent(nameTok),
	}
}

func (p *Parser) parseProperty() ast.Decl {
	nameTok, ok := p.expectName("expected property name")
	if !ok {
		return nil
	}

	prop := &ast.Property{
		Pos:  p.makePos(nameTok),
		Name: p.makeIdent(nameTok),
	}

	if p.match(scanner.LEFT_BRACKET) {
		p.expect(scanner.RIGHT_BRACKET, "expected ']' after '[' in array property")
		prop.IsArray = true
	}

	if prop.IsArray {
		if p.match(scanner.PLUS_EQUAL) {
			prop.Append = true
		} else if _, ok := p.expect(scanner.EQUAL, "expected '=' or '+=' after array property name"); !ok {
			return nil
		}
		prop.Value = p.parseArray()
	} else {
		if _, ok := p.expect(scanner.EQUAL, "expected '=' after property name"); !ok {
			return nil
		}
		prop.Value = p.parseValue()
	}
	if prop.Value == nil {
		return nil
	}

	end, _ := p.expect(scanner.SEMICOLON, "expected ';' after property")
	prop.EndPos = p.makeEndPos(end)
	return prop
}

func (p *Parser) parseValue() ast.Value {
	la := p.peek()
	switch la.Kind {
	case scanner.STRING:
		tok := p.next()
		return &ast.StringLit{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Raw:    tok.Lexeme,
			Value:  unquote(tok.Lexeme),
		}
	case scanner.NUMBER, scanner.HEX_NUMBER:
		tok := p.next()
		return &ast.NumberLit{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Raw:    tok.Lexeme,
			IsHex:  tok.Kind == scanner.HEX_NUMBER,
		}
	case scanner.MINUS:
		minus := p.next()
		numTok, ok := p.expect(scanner.NUMBER, "expected number after '-'")
		if !ok {
			return nil
		}
		return &ast.NumberLit{
			Pos:    p.makePos(minus),
			EndPos: p.makeEndPos(numTok),
			Raw:    numTok.Lexeme,
			Neg:    true,
		}
	case scanner.TRUE, scanner.FALSE:
		tok := p.next()
		return &ast.BoolLit{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Value:  tok.Kind == scanner.TRUE,
		}
	case scanner.IDENT, scanner.VARIDENT:
		tok := p.next()
		return &ast.IdentValue{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Value:  tok.Lexeme,
		}
	case scanner.LEFT_BRACE:
		return p.parseArray()
	default:
		p.errorAt(la, fmt.Sprintf("expected a value, found %q", la.Lexeme))
		return nil
	}
}

func (p *Parser) parseArray() ast.Value {
	open, ok := p.expect(scanner.LEFT_BRACE, "expected '{' to open array")
	if !ok {
		return nil
	}
	arr := &ast.Array{Pos: p.makePos(open)}
	if !p.check(scanner.RIGHT_BRACE) {
		for {
			v := p.parseValue()
			if v == nil {
				break
			}
			arr.Elems = append(arr.Elems, v)
			if !p.match(scanner.COMMA) {
				break
			}
		}
	}
	end, _ := p.expect(scanner.RIGHT_BRACE, "expected '}' to close array")
	arr.EndPos = p.makeEndPos(end)
	return arr
}
