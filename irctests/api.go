package irctests

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ft-irc/irc-contract-tests/framework"
)

// Transport is the write side of the connection to the server under test. *ircconn.Conn
// implements it.
type Transport interface {
	Send(command string) error
	Close() error
}

// Responses is the read side of the connection. *ircconn.Receiver implements it.
type Responses interface {
	LineCount() int64
	AwaitResponse(ctx context.Context, seen int64, timeout, quiet time.Duration) int64
	Stop()
}

type environment struct {
	ctx       context.Context
	transport Transport
	responses Responses
	opts      Options
	abortErr  error
}

// T represents one scenario in a run.
//
// It implements the Errorf and FailNow methods of testing.T, so the assert and require
// packages can be used with it. It also knows how to send a step to the server and wait for
// the answer.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to record a failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when the scenario should fail and exit immediately.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a named scenario. It is skipped without sending anything if an earlier scenario
// could not send a command, or if the run was cancelled.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		t1 := &T{context: c, env: t.env}
		if t.env.abortErr != nil {
			c.SkipWithReason(fmt.Sprintf("run aborted: %s", t.env.abortErr))
		}
		if t.env.ctx.Err() != nil {
			c.SkipWithReason("run cancelled")
		}
		action(t1)
	})
}

// Debug adds a line to the scenario's debug output.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Do sends one step and waits for the server to answer it, up to the step's wait. Not
// getting an answer is reported but is not a failure. Failing to send is fatal for the
// scenario and for every scenario after it.
func (t *T) Do(st Step) int64 {
	seen := t.env.responses.LineCount()
	if err := t.env.transport.Send(st.Command); err != nil {
		t.env.abortErr = err
		require.NoError(t, err)
	}
	t.Debug("sent %q", st.Command)

	n := t.env.responses.AwaitResponse(t.env.ctx, seen, st.Wait, t.env.opts.QuietPeriod)
	if n == 0 {
		t.env.opts.Logger.Printf("No response to %q within %s", st.Command, st.Wait)
		t.Debug("no response within %s", st.Wait)
	} else {
		t.Debug("%d line(s) in response", n)
	}
	return n
}
