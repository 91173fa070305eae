package scanner

import (
	"io"
	"strings"
	"testing"
)

func scanAll(t *testing.T, input string) []*Token {
	t.Helper()
	s := New(strings.NewReader(input))
	defer s.Close()
	var tokens []*Token
	for {
		tok := s.Scan()
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens
		}
		if len(tokens) > 10000 {
			t.Fatal("scanner did not reach EOF")
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "class true false classy truex _local Vehicle"
	expected := []struct {
		kind   Kind
		lexeme string
	}{
		{CLASS, "class"},
		{TRUE, "true"},
		{FALSE, "false"},
		{IDENT, "classy"},
		{IDENT, "truex"},
		{VARIDENT, "_local"},
		{IDENT, "Vehicle"},
		{EOF, ""},
	}

	tokens := scanAll(t, input)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp.kind {
			t.Errorf("token %d: expected %s, got %s", i, exp.kind, tokens[i].Kind)
		}
		if tokens[i].Lexeme != exp.lexeme {
			t.Errorf("token %d: expected lexeme %q, got %q", i, exp.lexeme, tokens[i].Lexeme)
		}
	}
}

func TestNumbers(t *testing.T) {
	input := "42 0 12345 3.14 0.5 0x0 0x1F 0xABC"
	expected := []struct {
		kind   Kind
		lexeme string
	}{
		{NUMBER, "42"},
		{NUMBER, "0"},
		{NUMBER, "12345"},
		{NUMBER, "3.14"},
		{NUMBER, "0.5"},
		{HEX_NUMBER, "0x0"},
		{HEX_NUMBER, "0x1F"},
		{HEX_NUMBER, "0xABC"},
	}

	tokens := scanAll(t, input)
	for i, exp := range expected {
		if tokens[i].Kind != exp.kind || tokens[i].Lexeme != exp.lexeme {
			t.Errorf("token %d: expected %s %q, got %s %q",
				i, exp.kind, exp.lexeme, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestLongestMatchBacktracking(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []struct {
			kind   Kind
			lexeme string
		}
	}{
		{
			"fraction then identifier",
			"123.45x",
			[]struct {
				kind   Kind
				lexeme string
			}{{NUMBER, "123.45"}, {IDENT, "x"}, {EOF, ""}},
		},
		{
			"dot without fraction",
			"123.x",
			[]struct {
				kind   Kind
				lexeme string
			}{{NUMBER, "123"}, {ILLEGAL, "."}, {IDENT, "x"}, {EOF, ""}},
		},
		{
			"hex marker without digits",
			"0x",
			[]struct {
				kind   Kind
				lexeme string
			}{{NUMBER, "0"}, {IDENT, "x"}, {EOF, ""}},
		},
		{
			"hex marker into identifier",
			"0xray",
			[]struct {
				kind   Kind
				lexeme string
			}{{NUMBER, "0"}, {IDENT, "xray"}, {EOF, ""}},
		},
		{
			"plus without equal",
			"+x",
			[]struct {
				kind   Kind
				lexeme string
			}{{ILLEGAL, "+"}, {IDENT, "x"}, {EOF, ""}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens := scanAll(t, tc.input)
			if len(tokens) != len(tc.want) {
				t.Fatalf("expected %d tokens, got %d", len(tc.want), len(tokens))
			}
			for i, exp := range tc.want {
				if tokens[i].Kind != exp.kind || tokens[i].Lexeme != exp.lexeme {
					t.Errorf("token %d: expected %s %q, got %s %q",
						i, exp.kind, exp.lexeme, tokens[i].Kind, tokens[i].Lexeme)
				}
			}
		})
	}
}

func TestStrings(t *testing.T) {
	input := `name = "a\"b\"c";`
	tokens := scanAll(t, input)

	expected := []struct {
		kind   Kind
		lexeme string
	}{
		{IDENT, "name"},
		{EQUAL, "="},
		{STRING, `"a\"b\"c"`},
		{SEMICOLON, ";"},
		{EOF, ""},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp.kind || tokens[i].Lexeme != exp.lexeme {
			t.Errorf("token %d: expected %s %q, got %s %q",
				i, exp.kind, exp.lexeme, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	tokens := scanAll(t, `"abc`)
	expected := []struct {
		kind   Kind
		lexeme string
	}{
		{ILLEGAL, `"`},
		{IDENT, "abc"},
		{EOF, ""},
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp.kind || tokens[i].Lexeme != exp.lexeme {
			t.Errorf("token %d: expected %s %q, got %s %q",
				i, exp.kind, exp.lexeme, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestPunctuation(t *testing.T) {
	input := "{ } [ ] ; : , = += -"
	expected := []Kind{
		LEFT_BRACE, RIGHT_BRACE, LEFT_BRACKET, RIGHT_BRACKET,
		SEMICOLON, COLON, COMMA, EQUAL, PLUS_EQUAL, MINUS, EOF,
	}
	tokens := scanAll(t, input)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, tokens[i].Kind)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	tokens := scanAll(t, "a @ b")
	expected := []struct {
		kind   Kind
		lexeme string
	}{
		{IDENT, "a"},
		{ILLEGAL, "@"},
		{IDENT, "b"},
		{EOF, ""},
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp.kind || tokens[i].Lexeme != exp.lexeme {
			t.Errorf("token %d: expected %s %q, got %s %q",
				i, exp.kind, exp.lexeme, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestCommentSkipping(t *testing.T) {
	input := "// line comment\n" +
		"# shell style comment\n" +
		"/* block */ first\n" +
		"second // trailing\n"
	tokens := scanAll(t, input)

	if tokens[0].Kind != IDENT || tokens[0].Lexeme != "first" {
		t.Fatalf("expected IDENT %q first, got %s %q", "first", tokens[0].Kind, tokens[0].Lexeme)
	}
	if tokens[0].Position.Line != 3 {
		t.Errorf("expected line 3, got %d", tokens[0].Position.Line)
	}
	if tokens[1].Kind != IDENT || tokens[1].Position.Line != 4 {
		t.Errorf("expected IDENT on line 4, got %s on line %d", tokens[1].Kind, tokens[1].Position.Line)
	}
}

func TestBlockCommentAdvancesLines(t *testing.T) {
	input := "/* one\ntwo\nthree */ident"
	tokens := scanAll(t, input)

	if tokens[0].Kind != IDENT || tokens[0].Lexeme != "ident" {
		t.Fatalf("expected IDENT %q, got %s %q", "ident", tokens[0].Kind, tokens[0].Lexeme)
	}
	if tokens[0].Position.Line != 3 {
		t.Errorf("expected line 3 after multiline comment, got %d", tokens[0].Position.Line)
	}
	if tokens[0].Position.Column != 9 {
		t.Errorf("expected column 9, got %d", tokens[0].Position.Column)
	}
}

func TestFailedCommentAttemptLeavesNoStrayText(t *testing.T) {
	// A lone '/' makes both comment matchers rewind; the rewind must not
	// leak characters into the following token's text.
	tokens := scanAll(t, "/x 5/6")
	expected := []struct {
		kind   Kind
		lexeme string
	}{
		{ILLEGAL, "/"},
		{IDENT, "x"},
		{NUMBER, "5"},
		{ILLEGAL, "/"},
		{NUMBER, "6"},
		{EOF, ""},
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp.kind || tokens[i].Lexeme != exp.lexeme {
			t.Errorf("token %d: expected %s %q, got %s %q",
				i, exp.kind, exp.lexeme, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestDirectivesAreScannedButNotPeeked(t *testing.T) {
	input := "#define LIMIT 10\nclass Foo;"
	s := New(strings.NewReader(input))
	defer s.Close()

	// Peek filters the directive out entirely.
	if p := s.Peek(); p.Kind != CLASS {
		t.Errorf("expected Peek to skip directive and return CLASS, got %s", p.Kind)
	}
	s.ResetPeek()

	// Scan surfaces it for out-of-band handling.
	tok := s.Scan()
	if tok.Kind != DIRECTIVE || tok.Lexeme != "#define LIMIT 10" {
		t.Errorf("expected DIRECTIVE %q, got %s %q", "#define LIMIT 10", tok.Kind, tok.Lexeme)
	}
	if tok := s.Scan(); tok.Kind != CLASS {
		t.Errorf("expected CLASS after directive, got %s", tok.Kind)
	}
}

func TestHashCommentVersusDirective(t *testing.T) {
	// '#' followed by a letter is a directive; anything else is a comment.
	tokens := scanAll(t, "#! not code\nx")
	if tokens[0].Kind != IDENT || tokens[0].Lexeme != "x" {
		t.Errorf("expected comment to be skipped, got %s %q", tokens[0].Kind, tokens[0].Lexeme)
	}

	tokens = scanAll(t, "#include \"other.hpp\"\nx")
	if tokens[0].Kind != DIRECTIVE || tokens[0].Lexeme != `#include "other.hpp"` {
		t.Errorf("expected DIRECTIVE, got %s %q", tokens[0].Kind, tokens[0].Lexeme)
	}
}

func TestPeekIsSideEffectFree(t *testing.T) {
	input := "class Foo : Bar { x = 1; };"

	direct := scanAll(t, input)

	s := New(strings.NewReader(input))
	defer s.Close()
	// Walk the whole lookahead twice, then reset.
	for i := 0; i < len(direct); i++ {
		s.Peek()
	}
	s.ResetPeek()
	s.Peek()
	s.Peek()
	s.ResetPeek()

	for i := 0; ; i++ {
		tok := s.Scan()
		if tok.Kind != direct[i].Kind || tok.Lexeme != direct[i].Lexeme {
			t.Errorf("token %d: expected %s %q, got %s %q",
				i, direct[i].Kind, direct[i].Lexeme, tok.Kind, tok.Lexeme)
		}
		if tok.Kind == EOF {
			break
		}
	}
}

func TestPeekCursorAdvancesIndependently(t *testing.T) {
	s := New(strings.NewReader("a b c"))
	defer s.Close()

	if p := s.Peek(); p.Lexeme != "a" {
		t.Errorf("expected peek %q, got %q", "a", p.Lexeme)
	}
	if p := s.Peek(); p.Lexeme != "b" {
		t.Errorf("expected peek %q, got %q", "b", p.Lexeme)
	}
	if got := s.Scan(); got.Lexeme != "a" {
		t.Errorf("expected scan %q after peeking, got %q", "a", got.Lexeme)
	}
	// Scan resets the peek cursor to the consumed position.
	if p := s.Peek(); p.Lexeme != "b" {
		t.Errorf("expected peek %q after scan, got %q", "b", p.Lexeme)
	}
}

func TestEOFForever(t *testing.T) {
	s := New(strings.NewReader("x"))
	defer s.Close()
	s.Scan()
	for i := 0; i < 3; i++ {
		if tok := s.Scan(); tok.Kind != EOF {
			t.Fatalf("expected EOF on repeat scan %d, got %s", i, tok.Kind)
		}
		if p := s.Peek(); p.Kind != EOF {
			t.Fatalf("expected EOF on peek at end, got %s", p.Kind)
		}
	}
}

func TestLookaheadHelpers(t *testing.T) {
	s := New(strings.NewReader("delete Vehicle;"))
	defer s.Close()

	if !s.NextIsAnyOf("delete", "import") {
		t.Error("expected NextIsAnyOf to match the upcoming token")
	}
	if s.NextIsAnyOf("class") {
		t.Error("expected NextIsAnyOf not to match")
	}

	tok := s.Scan()
	if tok.Lexeme != "delete" {
		t.Fatalf("expected %q, got %q", "delete", tok.Lexeme)
	}
	if !s.CurrentOrNextIsAnyOf("delete") {
		t.Error("expected CurrentOrNextIsAnyOf to match the current token")
	}
	if !s.CurrentOrNextIsAnyOf("Vehicle") {
		t.Error("expected CurrentOrNextIsAnyOf to match the next token")
	}
	if s.CurrentOrNextIsAnyOf("class", ";") {
		t.Error("expected CurrentOrNextIsAnyOf not to match")
	}

	// The helpers must not disturb the token sequence.
	if tok := s.Scan(); tok.Lexeme != "Vehicle" {
		t.Errorf("expected %q, got %q", "Vehicle", tok.Lexeme)
	}
}

func TestPositionsAreByteExact(t *testing.T) {
	input := "class Weapons {\n\tcount = 0x1F;\n\tname = \"rifle\";\n};"
	tokens := scanAll(t, input)

	prev := -1
	for _, tok := range tokens {
		if tok.Kind == EOF {
			break
		}
		if tok.Position.Offset <= prev {
			t.Errorf("token %q: offset %d not strictly increasing after %d",
				tok.Lexeme, tok.Position.Offset, prev)
		}
		prev = tok.Position.Offset

		end := tok.Position.Offset + len(tok.Lexeme)
		if end > len(input) || input[tok.Position.Offset:end] != tok.Lexeme {
			t.Errorf("token %q: source at offset %d does not match lexeme",
				tok.Lexeme, tok.Position.Offset)
		}
	}
}

func TestPositionLinesAndColumns(t *testing.T) {
	input := "class Foo\n{\n  x = 1;\n};"
	tokens := scanAll(t, input)

	expected := []struct {
		lexeme string
		line   int
		column int
	}{
		{"class", 1, 1},
		{"Foo", 1, 7},
		{"{", 2, 1},
		{"x", 3, 3},
		{"=", 3, 5},
		{"1", 3, 7},
		{";", 3, 8},
		{"}", 4, 1},
		{";", 4, 2},
	}
	for i, exp := range expected {
		tok := tokens[i]
		if tok.Lexeme != exp.lexeme || tok.Position.Line != exp.line || tok.Position.Column != exp.column {
			t.Errorf("token %d: expected %q at %d:%d, got %q at %d:%d",
				i, exp.lexeme, exp.line, exp.column,
				tok.Lexeme, tok.Position.Line, tok.Position.Column)
		}
	}
}

func TestMultibyteSource(t *testing.T) {
	input := "name = \"naïve™\"; größe = 2;"
	tokens := scanAll(t, input)

	if tokens[2].Kind != STRING || tokens[2].Lexeme != "\"naïve™\"" {
		t.Errorf("expected STRING %q, got %s %q", "\"naïve™\"", tokens[2].Kind, tokens[2].Lexeme)
	}
	if tokens[4].Kind != IDENT || tokens[4].Lexeme != "größe" {
		t.Errorf("expected IDENT %q, got %s %q", "größe", tokens[4].Kind, tokens[4].Lexeme)
	}
	// Column counts codepoints, offset counts bytes.
	if tokens[4].Position.Column != 18 {
		t.Errorf("expected column 18, got %d", tokens[4].Position.Column)
	}
	if tokens[4].Position.Offset != 20 {
		t.Errorf("expected byte offset 20, got %d", tokens[4].Position.Offset)
	}
}

func TestBOMIsStripped(t *testing.T) {
	tokens := scanAll(t, "\xEF\xBB\xBFclass Foo;")
	if tokens[0].Kind != CLASS {
		t.Fatalf("expected CLASS after BOM, got %s", tokens[0].Kind)
	}
	if tokens[0].Position.Offset != 3 {
		t.Errorf("expected byte offset 3 for first token, got %d", tokens[0].Position.Offset)
	}
	if tokens[0].Position.Column != 1 {
		t.Errorf("expected column 1 for first token, got %d", tokens[0].Position.Column)
	}
}

// plainReader hides the Seeker of the wrapped reader, forcing the streaming
// buffer path.
type plainReader struct {
	io.Reader
}

func TestStreamingSourceMatchesSeekable(t *testing.T) {
	input := "class A : B { list[] += {1, 0x2, \"three\", -4.5}; };"

	seekable := scanAll(t, input)

	s := New(plainReader{strings.NewReader(input)})
	defer s.Close()
	for i := 0; ; i++ {
		tok := s.Scan()
		if tok.Kind != seekable[i].Kind || tok.Lexeme != seekable[i].Lexeme ||
			tok.Position != seekable[i].Position {
			t.Errorf("token %d: streaming %s %q at %+v, seekable %s %q at %+v",
				i, tok.Kind, tok.Lexeme, tok.Position,
				seekable[i].Kind, seekable[i].Lexeme, seekable[i].Position)
		}
		if tok.Kind == EOF {
			break
		}
	}
}
