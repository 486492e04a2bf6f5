package ircconn

import "fmt"

// ConnectError means the server under test could not be reached. Nothing has been sent.
type ConnectError struct {
	Address string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to %s: %s", e.Address, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// SendError means a command could not be written. The connection should not be used for
// further commands.
type SendError struct {
	Command string
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("failed to send %q: %s", e.Command, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// ReceiveError means the Receiver stopped because of an I/O error other than end of stream.
type ReceiveError struct {
	Err error
}

func (e *ReceiveError) Error() string {
	return fmt.Sprintf("receive failed: %s", e.Err)
}

func (e *ReceiveError) Unwrap() error { return e.Err }
