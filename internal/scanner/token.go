package scanner

// Kind identifies the lexical category of a token.
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota // unrecognized input, surfaced as a one-character token
	EOF

	// Identifiers + literals
	IDENT
	VARIDENT
	NUMBER
	HEX_NUMBER
	STRING

	// Keywords
	CLASS
	TRUE
	FALSE

	// Punctuation
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	SEMICOLON
	COLON
	COMMA
	EQUAL
	PLUS_EQUAL
	MINUS

	// Pragmas. Kinds past maxToken are produced by Scan but never surfaced
	// through Peek; the parser consumes them out of band.
	DIRECTIVE
)

// maxToken is the highest kind visible to lookahead.
const maxToken = MINUS

// IsPragma reports whether tokens of this kind are skipped during peeking.
func (k Kind) IsPragma() bool {
	return k > maxToken
}

var kindNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	IDENT:         "IDENT",
	VARIDENT:      "VARIDENT",
	NUMBER:        "NUMBER",
	HEX_NUMBER:    "HEX_NUMBER",
	STRING:        "STRING",
	CLASS:         "CLASS",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
	SEMICOLON:     "SEMICOLON",
	COLON:         "COLON",
	COMMA:         "COMMA",
	EQUAL:         "EQUAL",
	PLUS_EQUAL:    "PLUS_EQUAL",
	MINUS:         "MINUS",
	DIRECTIVE:     "DIRECTIVE",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Position locates the first character of a token in the source.
type Position struct {
	Offset     int // 0-based byte offset
	CharOffset int // 0-based codepoint offset
	Line       int // 1-based
	Column     int // 1-based, in codepoints
}

// Token is a single lexical unit. Lexeme is the exact source substring that
// was matched; keyword reclassification changes only the kind.
type Token struct {
	Kind     Kind
	Lexeme   string
	Position Position
}
