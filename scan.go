package xmunch

import "strings"

// cursor walks a fully loaded text byte by byte. Every delimiter of the
// grammar and premunched syntaxes is ASCII, so UTF-8 words pass through
// untouched.
type cursor struct {
	src string
	pos int
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

// peek returns the next byte, or 0 at the end of input.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.pos]
}

// next consumes and returns the next byte, or 0 at the end of input.
func (c *cursor) next() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.pos]
	c.pos++
	return b
}

// skipWhite skips whitespace and '#' comments running to the end of line.
func (c *cursor) skipWhite() {
	for !c.eof() {
		switch c.src[c.pos] {
		case ' ', '\t', '\v', '\n', '\r', '\f':
			c.pos++
		case '#':
			if i := strings.IndexByte(c.src[c.pos:], '\n'); i >= 0 {
				c.pos += i + 1
			} else {
				c.pos = len(c.src)
			}
		default:
			return
		}
	}
}

// skipPast consumes everything up to and including the next b and returns
// the skipped text without b.
func (c *cursor) skipPast(b byte) string {
	start := c.pos
	if i := strings.IndexByte(c.src[c.pos:], b); i >= 0 {
		c.pos += i + 1
		return c.src[start : c.pos-1]
	}
	c.pos = len(c.src)
	return c.src[start:]
}

// token consumes bytes until stop reports true or the input ends.
func (c *cursor) token(stop func(byte) bool) string {
	start := c.pos
	for !c.eof() && !stop(c.src[c.pos]) {
		c.pos++
	}
	return c.src[start:c.pos]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\n' || b == '\r' || b == '\f'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isLetter(b byte) bool { return 'a' <= b|0x20 && b|0x20 <= 'z' }
