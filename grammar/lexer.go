package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ConfigLexer is a regex-rule description of the same token language the
// hand-built scanner implements. It exists as an executable reference: the
// scanner's conformance tests lex sources both ways and compare. Rule order
// matters; earlier rules win at each position.
var ConfigLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},
		{Name: "BlockComment", Pattern: `(?s:/\*.*?\*/)`, Action: nil},

		// Preprocessor lines; "#" not followed by a letter is a comment
		{Name: "Directive", Pattern: `#[\p{L}][^\n]*`, Action: nil},
		{Name: "HashComment", Pattern: `#[^\n]*`, Action: nil},

		// String literals with escaped quotes
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`, Action: nil},

		// Numeric literals (order encodes longest-match)
		{Name: "Number", Pattern: `0[xX][0-9a-fA-F]+|[0-9]+\.[0-9]+|[0-9]+`, Action: nil},

		// Identifiers and keywords
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}0-9_]*`, Action: nil},

		// Punctuation
		{Name: "Punct", Pattern: `\+=|[{}\[\];:,=-]`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n\v\f]+`, Action: nil},
	},
})
