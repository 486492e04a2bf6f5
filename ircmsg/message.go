// Package ircmsg builds and parses single lines of the IRC wire protocol.
//
// It has no knowledge of framing: a line given to Parse must already have had its CRLF
// terminator removed, and String never adds one.
package ircmsg

import (
	"errors"
	"strings"
)

var (
	ErrEmptyLine = errors.New("empty protocol line")
	ErrNoCommand = errors.New("protocol line has a prefix but no command")
)

// Message is one protocol line split into its parts:
//
//	[":" prefix " "] command {" " param} [" :" trailing]
type Message struct {
	Prefix      string
	Command     string
	Params      []string
	Trailing    string
	HasTrailing bool
}

// New returns a message with the given command and middle parameters.
func New(command string, params ...string) Message {
	return Message{Command: command, Params: params}
}

// WithTrailing returns a copy of the message with a trailing parameter, which may contain spaces.
func (m Message) WithTrailing(trailing string) Message {
	m.Params = append([]string(nil), m.Params...)
	m.Trailing = trailing
	m.HasTrailing = true
	return m
}

// String formats the message as it appears on the wire, without a line terminator.
func (m Message) String() string {
	var b strings.Builder
	if m.Prefix != "" {
		b.WriteByte(':')
		b.WriteString(m.Prefix)
		b.WriteByte(' ')
	}
	b.WriteString(m.Command)
	for _, p := range m.Params {
		b.WriteByte(' ')
		b.WriteString(p)
	}
	if m.HasTrailing {
		b.WriteString(" :")
		b.WriteString(m.Trailing)
	}
	return b.String()
}

// AllParams returns the middle parameters followed by the trailing parameter, if any.
func (m Message) AllParams() []string {
	ret := append([]string(nil), m.Params...)
	if m.HasTrailing {
		ret = append(ret, m.Trailing)
	}
	return ret
}

// Parse splits a protocol line into its parts. Runs of spaces between parameters are
// treated as a single separator. The command is returned as sent; no case folding is done.
func Parse(line string) (Message, error) {
	var m Message
	rest := strings.TrimLeft(line, " ")
	if rest == "" {
		return m, ErrEmptyLine
	}
	if rest[0] == ':' {
		end := strings.IndexByte(rest, ' ')
		if end < 0 {
			return m, ErrNoCommand
		}
		m.Prefix = rest[1:end]
		rest = strings.TrimLeft(rest[end:], " ")
		if rest == "" {
			return m, ErrNoCommand
		}
	}

	end := strings.IndexByte(rest, ' ')
	if end < 0 {
		m.Command = rest
		return m, nil
	}
	m.Command = rest[:end]
	rest = rest[end:]

	for {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			return m, nil
		}
		if rest[0] == ':' {
			m.Trailing = rest[1:]
			m.HasTrailing = true
			return m, nil
		}
		end = strings.IndexByte(rest, ' ')
		if end < 0 {
			m.Params = append(m.Params, rest)
			return m, nil
		}
		m.Params = append(m.Params, rest[:end])
		rest = rest[end:]
	}
}
