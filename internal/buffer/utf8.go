package buffer

import "strings"

// UTF8Buffer decorates a Buffer, assembling one decoded codepoint per Read
// from up to four raw bytes. ASCII bytes pass through unchanged, so position
// arithmetic stays byte-exact for plain sources.
type UTF8Buffer struct {
	*Buffer
}

// NewUTF8 wraps b and strips a leading byte-order mark. A leading 0xEF that is
// not followed by 0xBB 0xBF is a malformed BOM and panics; input with no BOM
// is left untouched.
func NewUTF8(b *Buffer) *UTF8Buffer {
	u := &UTF8Buffer{Buffer: b}
	if b.Peek() == 0xEF {
		b.Read()
		if b.Read() != 0xBB || b.Read() != 0xBF {
			panic("malformed UTF-8 byte order mark")
		}
	}
	return u
}

// Read returns the next decoded codepoint, or EOF.
func (b *UTF8Buffer) Read() int {
	ch := b.Buffer.Read()
	if ch < 0x80 || ch == EOF {
		return ch
	}
	switch {
	case ch&0xF0 == 0xF0:
		// 11110xxx 10xxxxxx 10xxxxxx 10xxxxxx
		c1 := ch & 0x07
		c2 := b.Buffer.Read() & 0x3F
		c3 := b.Buffer.Read() & 0x3F
		c4 := b.Buffer.Read() & 0x3F
		return c1<<18 | c2<<12 | c3<<6 | c4
	case ch&0xE0 == 0xE0:
		// 1110xxxx 10xxxxxx 10xxxxxx
		c1 := ch & 0x0F
		c2 := b.Buffer.Read() & 0x3F
		c3 := b.Buffer.Read() & 0x3F
		return c1<<12 | c2<<6 | c3
	case ch&0xC0 == 0xC0:
		// 110xxxxx 10xxxxxx
		c1 := ch & 0x1F
		c2 := b.Buffer.Read() & 0x3F
		return c1<<6 | c2
	}
	// Stray continuation byte; surface it raw and let the scanner reject it.
	return ch
}

// GetString reconstructs the text between two byte offsets by re-reading it
// through the decoded path, restoring the position afterwards. This is the
// slow path, used only for multi-byte token text extraction.
func (b *UTF8Buffer) GetString(beg, end int) string {
	oldPos := b.Pos()
	b.SetPos(beg)
	var sb strings.Builder
	for b.Pos() < end {
		ch := b.Read()
		if ch == EOF {
			break
		}
		sb.WriteRune(rune(ch))
	}
	b.SetPos(oldPos)
	return sb.String()
}
