package buffer

import (
	"fmt"
	"io"
)

// EOF is returned by Read and Peek once the source is exhausted. It sits above
// the Unicode codepoint range, so it can never collide with decoded input.
const EOF = 0x110000

const (
	minWindowLength = 1 << 10 // 1 KB
	maxWindowLength = 1 << 16 // 64 KB
)

// Buffer exposes single-byte reads with random-access positioning over an
// input stream. For seekable streams it keeps a bounded sliding window and
// refills it on out-of-window seeks; for everything else it accumulates the
// stream into a growing buffer, so earlier positions stay addressable.
//
// A Buffer is owned by exactly one scanner and is not safe for concurrent use.
type Buffer struct {
	buf      []byte // materialized window
	winStart int    // stream offset of buf[0]
	winLen   int    // valid bytes in buf
	winPos   int    // read index relative to winStart
	inputLen int    // total stream length; grows as non-seekable input is read

	stream io.Reader
	seeker io.Seeker // non-nil when stream supports random access
	closed bool
}

// New wraps r. When r is seekable the total length is measured up front and a
// bounded window is materialized lazily; otherwise bytes are accumulated as
// they arrive.
func New(r io.Reader) *Buffer {
	b := &Buffer{stream: r}
	if s, ok := r.(io.Seeker); ok {
		end, err := s.Seek(0, io.SeekEnd)
		if err == nil {
			b.seeker = s
			b.inputLen = int(end)
			capacity := b.inputLen
			if capacity < minWindowLength {
				capacity = minWindowLength
			}
			if capacity > maxWindowLength {
				capacity = maxWindowLength
			}
			b.buf = make([]byte, capacity)
			b.winStart = b.inputLen + 1 // force a window fill on first access
			b.SetPos(0)
			return b
		}
		// Seek failed; fall through and treat r as a plain stream.
	}
	b.buf = make([]byte, minWindowLength)
	return b
}

// Read returns the next raw byte and advances the position, or EOF when the
// source is exhausted.
func (b *Buffer) Read() int {
	if b.winPos < b.winLen {
		c := b.buf[b.winPos]
		b.winPos++
		return int(c)
	}
	if b.Pos() < b.inputLen {
		b.SetPos(b.Pos()) // triggers a window refill
		c := b.buf[b.winPos]
		b.winPos++
		return int(c)
	}
	if b.seeker == nil && b.readChunk() > 0 {
		c := b.buf[b.winPos]
		b.winPos++
		return int(c)
	}
	return EOF
}

// Peek returns the next byte without consuming it.
func (b *Buffer) Peek() int {
	cur := b.Pos()
	c := b.Read()
	b.SetPos(cur)
	return c
}

// Pos returns the current logical position in the stream.
func (b *Buffer) Pos() int {
	return b.winStart + b.winPos
}

// SetPos seeks to an absolute stream position. For a non-seekable source a
// position past the materialized length first forces sequential reads until
// it is reached or the source runs dry. An out-of-range position panics: it
// indicates a scanner bug, not an input problem.
func (b *Buffer) SetPos(value int) {
	if value >= b.inputLen && b.seeker == nil {
		for value >= b.inputLen && b.readChunk() > 0 {
		}
	}
	if value < 0 || value > b.inputLen {
		panic(fmt.Sprintf("buffer out of bounds access, position: %d", value))
	}
	if value >= b.winStart && value < b.winStart+b.winLen {
		b.winPos = value - b.winStart
		return
	}
	if b.seeker != nil {
		if _, err := b.seeker.Seek(int64(value), io.SeekStart); err != nil {
			panic(fmt.Sprintf("buffer seek failed at position %d: %v", value, err))
		}
		b.winStart = value
		b.winLen = b.fill()
		b.winPos = 0
		return
	}
	// Non-seekable and past the accumulated window: only the very end is
	// reachable here, since winStart is always zero for plain streams.
	b.winPos = b.inputLen - b.winStart
}

// Close releases the underlying stream if it owns a handle. Safe to call more
// than once.
func (b *Buffer) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if c, ok := b.stream.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// fill reads into the window until it is full or the stream ends.
func (b *Buffer) fill() int {
	n := 0
	for n < len(b.buf) {
		m, err := b.stream.Read(b.buf[n:])
		n += m
		if err != nil {
			break
		}
	}
	return n
}

// readChunk appends more stream bytes to the accumulated window, doubling its
// capacity when full. Returns the number of bytes obtained.
func (b *Buffer) readChunk() int {
	free := len(b.buf) - b.winLen
	if free == 0 {
		grown := make([]byte, 2*len(b.buf))
		copy(grown, b.buf[:b.winLen])
		b.buf = grown
		free = len(b.buf) - b.winLen
	}
	var n int
	for {
		m, err := b.stream.Read(b.buf[b.winLen : b.winLen+free])
		n = m
		if n > 0 || err != nil {
			break
		}
	}
	if n > 0 {
		b.winLen += n
		b.inputLen = b.winStart + b.winLen
	}
	return n
}
