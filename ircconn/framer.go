package ircconn

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

var crlf = []byte(lineTerminator)

// LineFramer turns an arbitrarily chunked byte stream into CRLF-delimited lines.
//
// After Feed returns, the buffer never contains a complete line. Bytes are decoded only once
// a whole line is available, so a multi-byte character split across reads is not damaged.
// A LineFramer belongs to one goroutine; it has no lock.
type LineFramer struct {
	buf []byte
}

// Feed appends data to the buffer and returns every complete line, in order, without its
// terminator. Empty lines are dropped.
func (f *LineFramer) Feed(data []byte) []string {
	f.buf = append(f.buf, data...)

	var lines []string
	start := 0
	for {
		i := bytes.Index(f.buf[start:], crlf)
		if i < 0 {
			break
		}
		if i > 0 {
			lines = append(lines, decodeLine(f.buf[start:start+i]))
		}
		start += i + len(crlf)
	}
	if start > 0 {
		n := copy(f.buf, f.buf[start:])
		f.buf = f.buf[:n]
	}
	return lines
}

// Pending returns a copy of the bytes that do not yet form a complete line.
func (f *LineFramer) Pending() []byte {
	return append([]byte(nil), f.buf...)
}

func decodeLine(raw []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
