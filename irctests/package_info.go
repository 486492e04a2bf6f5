// Package irctests contains the scripted scenarios the harness runs against an IRC server,
// and the runner that drives them over one connection.
//
// Scenarios only send commands and wait for answers. The server's replies are logged by the
// receiver as they arrive; nothing here checks what they say. A scenario fails only when a
// command cannot be sent, and that also ends the run.
package irctests
