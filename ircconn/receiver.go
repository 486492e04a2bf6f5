package ircconn

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/ft-irc/irc-contract-tests/ircmsg"
)

const (
	readChunkSize       = 1024
	DefaultPollInterval = 250 * time.Millisecond
)

// Receiver reads from a Conn on its own goroutine for as long as the connection lives,
// logging each complete protocol line exactly once, in arrival order.
//
// It never waits for anyone: lines are logged as soon as they are framed, and the signal
// used by AwaitResponse is dropped rather than blocking when nobody is waiting.
type Receiver struct {
	conn         *Conn
	framer       LineFramer
	pollInterval time.Duration
	cancel       context.CancelFunc
	done         chan struct{}
	notify       chan struct{}
	lineCount    atomic.Int64
	err          error
}

// StartReceiver starts reading from conn. The loop ends when the server closes the stream, a
// read fails, the connection is closed, or ctx is cancelled. Each read is bounded by
// pollInterval (DefaultPollInterval if zero) so that cancellation is noticed promptly even
// when the server is silent.
func StartReceiver(ctx context.Context, conn *Conn, pollInterval time.Duration) *Receiver {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	r := &Receiver{
		conn:         conn,
		pollInterval: pollInterval,
		cancel:       cancel,
		done:         make(chan struct{}),
		notify:       make(chan struct{}, 1),
	}
	go r.loop(ctx)
	return r
}

func (r *Receiver) loop(ctx context.Context) {
	defer close(r.done)
	defer r.cancel()

	buf := make([]byte, readChunkSize)
	for ctx.Err() == nil {
		_ = r.conn.netConn.SetReadDeadline(time.Now().Add(r.pollInterval))
		n, err := r.conn.netConn.Read(buf)
		if n > 0 {
			r.conn.stats.bytesReceived(n)
			for _, line := range r.framer.Feed(buf[:n]) {
				r.emit(line)
			}
		}
		switch {
		case err == nil:
		case errors.Is(err, os.ErrDeadlineExceeded):
		case errors.Is(err, io.EOF):
			r.conn.logger.Printf("Connection closed by %s", r.conn.address)
			return
		case ctx.Err() != nil || r.conn.isClosed():
			return
		default:
			r.err = &ReceiveError{Err: err}
			r.conn.logger.Printf("%s %s", errorMarker.Sprint("!!"), r.err)
			return
		}
	}
}

func (r *Receiver) emit(line string) {
	r.conn.stats.lineReceived()
	r.conn.logger.Printf("%s %s", receivedMarker.Sprint("<<"), annotate(line))
	r.lineCount.Add(1)
	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// annotate appends the symbolic name of a numeric reply, if it has one.
func annotate(line string) string {
	m, err := ircmsg.Parse(line)
	if err != nil {
		return line
	}
	if name, ok := ircmsg.NumericName(m.Command); ok {
		return line + " (" + name + ")"
	}
	return line
}

// Stop cancels the loop and waits for it to exit, which takes at most one poll interval.
// It does not close the connection.
func (r *Receiver) Stop() {
	r.cancel()
	<-r.done
}

// Done is closed when the loop has exited for any reason.
func (r *Receiver) Done() <-chan struct{} {
	return r.done
}

// Err returns the *ReceiveError that ended the loop. It is nil while the loop is running, and
// also after a normal end of stream, a Stop, or a Close.
func (r *Receiver) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// LineCount returns the number of lines received so far.
func (r *Receiver) LineCount() int64 {
	return r.lineCount.Load()
}

// Pending returns the buffered bytes of an incomplete line. It may only be called after the
// loop has exited.
func (r *Receiver) Pending() []byte {
	<-r.done
	return r.framer.Pending()
}

// AwaitResponse waits for a response to a command, given the LineCount observed before the
// command was sent. It returns once at least one new line has arrived and no other line has
// followed for the quiet interval; or when timeout expires, the loop exits, or ctx is done.
// The result is the number of lines received since seen.
//
// Only one goroutine may call AwaitResponse at a time.
func (r *Receiver) AwaitResponse(ctx context.Context, seen int64, timeout, quiet time.Duration) int64 {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	var quietTimer *time.Timer
	var quietC <-chan time.Time
	armQuiet := func() {
		if quietTimer == nil {
			quietTimer = time.NewTimer(quiet)
			quietC = quietTimer.C
			return
		}
		quietTimer.Reset(quiet)
	}
	defer func() {
		if quietTimer != nil {
			quietTimer.Stop()
		}
	}()

	if r.LineCount() > seen {
		armQuiet()
	}
	for {
		select {
		case <-r.notify:
			if r.LineCount() > seen {
				armQuiet()
			}
		case <-quietC:
			return r.LineCount() - seen
		case <-deadline.C:
			return r.LineCount() - seen
		case <-r.done:
			return r.LineCount() - seen
		case <-ctx.Done():
			return r.LineCount() - seen
		}
	}
}
