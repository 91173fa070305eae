package lsp

import (
	"strings"
	"unicode/utf8"

	"rapcfg/internal/scanner"
)

// SemanticToken is one entry of the LSP semantic token stream. Line and
// StartChar are 0-based; TokenType indexes SemanticTokenTypes.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// Semantic token type indices, matching SemanticTokenTypes.
const (
	tokKeyword = iota
	tokType
	tokVariable
	tokProperty
	tokString
	tokNumber
	tokMacro
	tokOperator
)

// CollectSemanticTokens classifies the document's token stream for syntax
// highlighting. Class names (identifiers after "class" or ":") are typed as
// types; other identifiers as properties.
func CollectSemanticTokens(source string) []SemanticToken {
	s := scanner.New(strings.NewReader(source))
	defer s.Close()

	var tokens []SemanticToken
	prevKind := scanner.ILLEGAL
	for {
		tok := s.Scan()
		if tok.Kind == scanner.EOF {
			return tokens
		}

		typ := -1
		switch tok.Kind {
		case scanner.CLASS, scanner.TRUE, scanner.FALSE:
			typ = tokKeyword
		case scanner.IDENT:
			if prevKind == scanner.CLASS || prevKind == scanner.COLON {
				typ = tokType
			} else {
				typ = tokProperty
			}
		case scanner.VARIDENT:
			typ = tokVariable
		case scanner.STRING:
			typ = tokString
		case scanner.NUMBER, scanner.HEX_NUMBER:
			typ = tokNumber
		case scanner.DIRECTIVE:
			typ = tokMacro
		case scanner.EQUAL, scanner.PLUS_EQUAL, scanner.COLON, scanner.MINUS:
			typ = tokOperator
		}
		if !tok.Kind.IsPragma() {
			prevKind = tok.Kind
		}

		// Tokens spanning lines cannot be encoded in the LSP wire format.
		if typ < 0 || strings.ContainsRune(tok.Lexeme, '\n') {
			continue
		}
		tokens = append(tokens, SemanticToken{
			Line:      uint32(tok.Position.Line - 1),
			StartChar: uint32(tok.Position.Column - 1),
			Length:    uint32(utf8.RuneCountInString(tok.Lexeme)),
			TokenType: typ,
		})
	}
}

// EncodeSemanticTokens packs tokens into the delta-encoded wire format.
func EncodeSemanticTokens(tokens []SemanticToken) []uint32 {
	var data []uint32
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))
		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}
