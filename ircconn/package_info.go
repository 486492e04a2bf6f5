// Package ircconn is the harness's transport: one TCP connection to the server under test.
//
// Conn writes commands. A Receiver reads on a background goroutine, re-frames the byte stream
// into CRLF-terminated protocol lines with a LineFramer, and logs each line as it arrives.
// Every sent command is logged with a ">>" marker and every received line with "<<".
//
// Writing happens only on the caller's goroutine and reading only on the Receiver's, so the
// socket itself is never locked.
package ircconn
