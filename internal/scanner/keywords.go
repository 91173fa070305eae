package scanner

// keywords is the reclassification table for identifiers. It is populated
// once and never mutated. Soft keywords like "delete" are deliberately
// absent; the parser recognizes those contextually through the lookahead
// helpers.
var keywords = map[string]Kind{
	"class": CLASS,
	"true":  TRUE,
	"false": FALSE,
}

func lookupIdent(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return IDENT
}
