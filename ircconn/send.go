package ircconn

import (
	"io"

	"golang.org/x/text/encoding/unicode"
)

const lineTerminator = "\r\n"

// Send writes one command followed by CRLF and blocks until every byte has been written.
// Invalid UTF-8 in command is replaced rather than sent as-is. On failure the error is a
// *SendError and nothing is logged as sent.
func (c *Conn) Send(command string) error {
	frame, err := unicode.UTF8.NewEncoder().Bytes([]byte(command + lineTerminator))
	if err != nil {
		return c.sendFailed(command, err)
	}
	if err := writeFull(c.netConn, frame); err != nil {
		return c.sendFailed(command, err)
	}
	c.stats.commandSent(len(frame))
	c.logger.Printf("%s %s", sentMarker.Sprint(">>"), command)
	return nil
}

func (c *Conn) sendFailed(command string, err error) error {
	sendErr := &SendError{Command: command, Err: err}
	c.logger.Printf("%s %s", errorMarker.Sprint("!!"), sendErr)
	return sendErr
}

// writeFull loops until all of data is written. A write that makes no progress and reports
// no error becomes io.ErrShortWrite.
func writeFull(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		data = data[n:]
	}
	return nil
}
