package scanner

import (
	"fmt"
	"io"
	"os"
	"unicode"

	"rapcfg/internal/buffer"
)

// state enumerates the nodes of the token automaton. stNone is the universal
// fallback: reaching it means no transition applied, and the walk either
// rewinds to the last accepting checkpoint or emits a one-character ILLEGAL
// token. The tokenizer itself never errors on odd input.
type state int

const (
	stNone state = iota
	stIdent
	stVarIdent
	stZero
	stDecimal
	stFracDot
	stFrac
	stHexMark
	stHex
	stString
	stStringEsc
	stDirective
	stPlus
	stLBrace
	stRBrace
	stLBracket
	stRBracket
	stSemicolon
	stColon
	stComma
	stEqual
	stMinus
)

// checkpoint captures enough scan state to rewind the input exactly, both for
// failed comment attempts and for longest-match backtracking.
type checkpoint struct {
	pos     int
	charPos int
	line    int
	col     int
}

// Scanner turns a byte stream into tokens. It owns its buffer exclusively and
// is not safe for concurrent use.
//
// Produced tokens are retained in an append-only slice with two independent
// cursors: cur marks the last consumed token, ahead the peek position. Peek
// never disturbs the consumed sequence and ResetPeek rewinds ahead back to
// cur, never past it.
type Scanner struct {
	buf *buffer.UTF8Buffer

	ch      int // current codepoint, buffer.EOF once exhausted
	pos     int // byte offset of ch
	charPos int // codepoint offset of ch
	line    int // 1-based line of ch
	col     int // 1-based column of ch

	tval []rune // text of the token under construction

	tokens []*Token
	cur    int // index of the last consumed token, -1 initially
	ahead  int // peek cursor, always >= cur
}

// New creates a Scanner over r.
func New(r io.Reader) *Scanner {
	s := &Scanner{
		buf:     buffer.NewUTF8(buffer.New(r)),
		line:    1,
		charPos: -1,
		cur:     -1,
		ahead:   -1,
	}
	s.nextCh()
	return s
}

// NewFile creates a Scanner over the named file. It panics when the file
// cannot be opened; callers are expected to have validated the path.
func NewFile(path string) *Scanner {
	f, err := os.Open(path)
	if err != nil {
		panic(fmt.Sprintf("cannot open source file %s: %v", path, err))
	}
	return New(f)
}

// Close releases the underlying stream. Safe to call more than once.
func (s *Scanner) Close() error {
	return s.buf.Close()
}

// Scan consumes and returns the next token. Once EOF has been produced it is
// returned forever after.
func (s *Scanner) Scan() *Token {
	if s.cur >= 0 && s.tokens[s.cur].Kind == EOF {
		s.ahead = s.cur
		return s.tokens[s.cur]
	}
	if s.cur+1 >= len(s.tokens) {
		s.tokens = append(s.tokens, s.next())
	}
	s.cur++
	s.ahead = s.cur
	return s.tokens[s.cur]
}

// Peek returns the next not-yet-consumed token without consuming it. Repeated
// calls walk further ahead. Pragma tokens are skipped transparently and never
// surfaced through Peek.
func (s *Scanner) Peek() *Token {
	i := s.ahead
	for {
		if i+1 >= len(s.tokens) {
			if n := len(s.tokens); n > 0 && s.tokens[n-1].Kind == EOF {
				s.ahead = n - 1
				return s.tokens[s.ahead]
			}
			s.tokens = append(s.tokens, s.next())
		}
		i++
		if !s.tokens[i].Kind.IsPragma() {
			s.ahead = i
			return s.tokens[i]
		}
	}
}

// ResetPeek rewinds the peek cursor back to the last consumed token.
func (s *Scanner) ResetPeek() {
	s.ahead = s.cur
}

// NextIsAnyOf reports whether the token following the current one matches any
// of the given literals. The peek cursor is left untouched.
func (s *Scanner) NextIsAnyOf(literals ...string) bool {
	saved := s.ahead
	s.ahead = s.cur
	t := s.Peek()
	s.ahead = saved
	for _, lit := range literals {
		if t.Lexeme == lit {
			return true
		}
	}
	return false
}

// CurrentOrNextIsAnyOf reports whether the current token or the one following
// it matches any of the given literals.
func (s *Scanner) CurrentOrNextIsAnyOf(literals ...string) bool {
	if s.cur >= 0 {
		cur := s.tokens[s.cur]
		for _, lit := range literals {
			if cur.Lexeme == lit {
				return true
			}
		}
	}
	return s.NextIsAnyOf(literals...)
}

// nextCh advances to the next codepoint, maintaining byte, character, line
// and column bookkeeping.
func (s *Scanner) nextCh() {
	if s.ch == '\n' {
		s.line++
		s.col = 0
	}
	s.pos = s.buf.Pos()
	s.ch = s.buf.Read()
	s.charPos++
	s.col++
}

// addCh appends the current codepoint to the token text and advances.
func (s *Scanner) addCh() {
	if s.ch != buffer.EOF {
		s.tval = append(s.tval, rune(s.ch))
		s.nextCh()
	}
}

func (s *Scanner) save() checkpoint {
	return checkpoint{pos: s.pos, charPos: s.charPos, line: s.line, col: s.col}
}

func (s *Scanner) restore(cp checkpoint) {
	s.buf.SetPos(cp.pos)
	s.ch = s.buf.Read()
	s.pos = cp.pos
	s.charPos = cp.charPos
	s.line = cp.line
	s.col = cp.col
}

// lineComment matches "//" to end of line.
func (s *Scanner) lineComment() bool {
	cp := s.save()
	s.nextCh()
	if s.ch != '/' {
		s.restore(cp)
		return false
	}
	for s.ch != '\n' && s.ch != buffer.EOF {
		s.nextCh()
	}
	return true
}

// hashComment matches "#" to end of line. "#" immediately followed by a
// letter is a directive, not a comment, so the attempt rewinds.
func (s *Scanner) hashComment() bool {
	cp := s.save()
	s.nextCh()
	if isLetter(s.ch) {
		s.restore(cp)
		return false
	}
	for s.ch != '\n' && s.ch != buffer.EOF {
		s.nextCh()
	}
	return true
}

// blockComment matches "/*" to "*/". An unterminated block comment swallows
// the rest of the input; the parser reports the resulting premature EOF.
func (s *Scanner) blockComment() bool {
	cp := s.save()
	s.nextCh()
	if s.ch != '*' {
		s.restore(cp)
		return false
	}
	s.nextCh()
	for s.ch != buffer.EOF {
		if s.ch == '*' {
			s.nextCh()
			if s.ch == '/' {
				s.nextCh()
				return true
			}
			continue
		}
		s.nextCh()
	}
	return true
}

// next computes a fresh token from the input.
func (s *Scanner) next() *Token {
	for s.ch == ' ' || (s.ch >= 9 && s.ch <= 13) {
		s.nextCh()
	}
	if s.ch == '/' && (s.lineComment() || s.blockComment()) {
		return s.next()
	}
	if s.ch == '#' && s.hashComment() {
		return s.next()
	}

	t := &Token{Position: Position{
		Offset:     s.pos,
		CharOffset: s.charPos,
		Line:       s.line,
		Column:     s.col,
	}}
	if s.ch == buffer.EOF {
		t.Kind = EOF
		return t
	}

	st := startState(s.ch)
	s.tval = s.tval[:0]
	s.addCh()
	firstCp := s.save()

	var (
		recKind  Kind
		recValid bool
		recCp    checkpoint
		recLen   int
	)
	recognize := func(k Kind) {
		recKind, recValid = k, true
		recCp = s.save()
		recLen = len(s.tval)
	}

walk:
	for {
		switch st {
		case stIdent:
			if isIdentPart(s.ch) {
				s.addCh()
			} else {
				return s.finish(t, IDENT)
			}
		case stVarIdent:
			if isIdentPart(s.ch) {
				s.addCh()
			} else {
				return s.finish(t, VARIDENT)
			}
		case stZero:
			switch {
			case isDigit(s.ch):
				s.addCh()
				st = stDecimal
			case s.ch == '.':
				recognize(NUMBER)
				s.addCh()
				st = stFracDot
			case s.ch == 'x' || s.ch == 'X':
				recognize(NUMBER)
				s.addCh()
				st = stHexMark
			default:
				return s.finish(t, NUMBER)
			}
		case stDecimal:
			switch {
			case isDigit(s.ch):
				s.addCh()
			case s.ch == '.':
				recognize(NUMBER)
				s.addCh()
				st = stFracDot
			default:
				return s.finish(t, NUMBER)
			}
		case stFracDot:
			if isDigit(s.ch) {
				s.addCh()
				st = stFrac
			} else {
				break walk
			}
		case stFrac:
			if isDigit(s.ch) {
				s.addCh()
			} else {
				return s.finish(t, NUMBER)
			}
		case stHexMark:
			if isHexDigit(s.ch) {
				s.addCh()
				st = stHex
			} else {
				break walk
			}
		case stHex:
			if isHexDigit(s.ch) {
				s.addCh()
			} else {
				return s.finish(t, HEX_NUMBER)
			}
		case stString:
			switch {
			case s.ch == '"':
				s.addCh()
				return s.finish(t, STRING)
			case s.ch == '\\':
				s.addCh()
				st = stStringEsc
			case s.ch == buffer.EOF:
				break walk
			default:
				s.addCh()
			}
		case stStringEsc:
			if s.ch == buffer.EOF {
				break walk
			}
			s.addCh()
			st = stString
		case stDirective:
			if s.ch != '\n' && s.ch != '\r' && s.ch != buffer.EOF {
				s.addCh()
			} else {
				return s.finish(t, DIRECTIVE)
			}
		case stPlus:
			if s.ch == '=' {
				s.addCh()
				return s.finish(t, PLUS_EQUAL)
			}
			break walk
		case stLBrace:
			return s.finish(t, LEFT_BRACE)
		case stRBrace:
			return s.finish(t, RIGHT_BRACE)
		case stLBracket:
			return s.finish(t, LEFT_BRACKET)
		case stRBracket:
			return s.finish(t, RIGHT_BRACKET)
		case stSemicolon:
			return s.finish(t, SEMICOLON)
		case stColon:
			return s.finish(t, COLON)
		case stComma:
			return s.finish(t, COMMA)
		case stEqual:
			return s.finish(t, EQUAL)
		case stMinus:
			return s.finish(t, MINUS)
		default: // stNone
			break walk
		}
	}

	// Dead end: rewind to the last accepting checkpoint if one was reached,
	// otherwise emit the first character as an ILLEGAL token.
	if recValid {
		s.restore(recCp)
		s.tval = s.tval[:recLen]
		return s.finish(t, recKind)
	}
	s.restore(firstCp)
	s.tval = s.tval[:1]
	return s.finish(t, ILLEGAL)
}

// finish stamps kind and text onto t, reclassifying identifiers that match a
// reserved keyword.
func (s *Scanner) finish(t *Token, k Kind) *Token {
	t.Lexeme = string(s.tval)
	if k == IDENT {
		k = lookupIdent(t.Lexeme)
	}
	t.Kind = k
	return t
}

// startState is the dispatch table from the first codepoint of a token to the
// automaton state it starts in.
func startState(ch int) state {
	switch {
	case ch == '0':
		return stZero
	case ch >= '1' && ch <= '9':
		return stDecimal
	case ch == '_':
		return stVarIdent
	case isLetter(ch):
		return stIdent
	case ch == '"':
		return stString
	case ch == '#':
		return stDirective
	case ch == '{':
		return stLBrace
	case ch == '}':
		return stRBrace
	case ch == '[':
		return stLBracket
	case ch == ']':
		return stRBracket
	case ch == ';':
		return stSemicolon
	case ch == ':':
		return stColon
	case ch == ',':
		return stComma
	case ch == '=':
		return stEqual
	case ch == '+':
		return stPlus
	case ch == '-':
		return stMinus
	default:
		return stNone
	}
}

func isDigit(ch int) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch int) bool {
	return ('0' <= ch && ch <= '9') ||
		('a' <= ch && ch <= 'f') ||
		('A' <= ch && ch <= 'F')
}

func isLetter(ch int) bool {
	return ch != buffer.EOF && unicode.IsLetter(rune(ch))
}

func isIdentPart(ch int) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
