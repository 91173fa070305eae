package grammar

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapcfg/internal/scanner"
)

type lexed struct {
	Rule string
	Text string
}

// referenceTokens lexes with the participle rule set, dropping whitespace and
// comments.
func referenceTokens(t *testing.T, source string) []lexed {
	t.Helper()

	byType := map[lexer.TokenType]string{}
	for name, typ := range ConfigLexer.Symbols() {
		byType[typ] = name
	}

	lx, err := ConfigLexer.Lex("test.cpp", strings.NewReader(source))
	require.NoError(t, err)

	var out []lexed
	for {
		tok, err := lx.Next()
		require.NoError(t, err)
		if tok.EOF() {
			return out
		}
		rule := byType[tok.Type]
		if rule == "Whitespace" || rule == "Comment" || rule == "BlockComment" || rule == "HashComment" {
			continue
		}
		out = append(out, lexed{Rule: rule, Text: tok.Value})
	}
}

// scannerTokens lexes with the hand-built scanner, mapping kinds onto the
// rule names of the reference lexer.
func scannerTokens(t *testing.T, source string) []lexed {
	t.Helper()

	s := scanner.New(strings.NewReader(source))
	defer s.Close()

	var out []lexed
	for {
		tok := s.Scan()
		switch tok.Kind {
		case scanner.EOF:
			return out
		case scanner.IDENT, scanner.VARIDENT, scanner.CLASS, scanner.TRUE, scanner.FALSE:
			out = append(out, lexed{Rule: "Ident", Text: tok.Lexeme})
		case scanner.NUMBER, scanner.HEX_NUMBER:
			out = append(out, lexed{Rule: "Number", Text: tok.Lexeme})
		case scanner.STRING:
			out = append(out, lexed{Rule: "String", Text: tok.Lexeme})
		case scanner.DIRECTIVE:
			out = append(out, lexed{Rule: "Directive", Text: tok.Lexeme})
		case scanner.ILLEGAL:
			t.Fatalf("unexpected ILLEGAL token %q", tok.Lexeme)
		default:
			out = append(out, lexed{Rule: "Punct", Text: tok.Lexeme})
		}
	}
}

func TestScannerMatchesReferenceLexer(t *testing.T) {
	sources := []struct {
		name   string
		source string
	}{
		{
			"vehicle config",
			`#include "base.hpp"
class CfgVehicles {
	class Car : Vehicle {
		displayName = "Car";
		maxSpeed = 120.5;
		armor = 0x2F;
		wheels[] = {4};
		enabled = true;
	};
	delete OldCar;
};`,
		},
		{
			"comments and directives",
			`// leading comment
# shell comment
#define WHEELS 4
/* block
   comment */
count = 30;`,
		},
		{
			"longest match",
			"a = 123.45; b = 0.5; c = 0x1F; d[] += {1, -2};",
		},
		{
			"unicode identifiers",
			`größe = 2; _löcal = "naïve";`,
		},
	}

	for _, tc := range sources {
		t.Run(tc.name, func(t *testing.T) {
			want := referenceTokens(t, tc.source)
			got := scannerTokens(t, tc.source)
			assert.Equal(t, want, got)
		})
	}
}
