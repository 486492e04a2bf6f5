package ircconn

import (
	"context"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"

	"github.com/ft-irc/irc-contract-tests/framework"
)

var (
	sentMarker     = color.New(color.FgCyan)
	receivedMarker = color.New(color.FgGreen)
	errorMarker    = color.New(color.FgRed)
)

// Conn is the harness's single connection to the server under test.
//
// Only one goroutine may call Send, and only the Receiver reads, so the socket needs no lock.
// Close may be called from anywhere, any number of times.
type Conn struct {
	netConn   net.Conn
	address   string
	logger    framework.Logger
	stats     *Stats
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Dial connects to host:port. The harness imposes no timeout of its own; the attempt ends
// when the platform gives up or ctx is cancelled. On failure the error is a *ConnectError.
func Dial(ctx context.Context, host string, port int, logger framework.Logger) (*Conn, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	address := net.JoinHostPort(host, strconv.Itoa(port))

	var d net.Dialer
	netConn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		connectErr := &ConnectError{Address: address, Err: err}
		logger.Printf("%s %s", errorMarker.Sprint("!!"), connectErr)
		return nil, connectErr
	}
	logger.Printf("Connected to %s", address)
	return newConn(netConn, address, logger), nil
}

func newConn(netConn net.Conn, address string, logger framework.Logger) *Conn {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Conn{
		netConn: netConn,
		address: address,
		logger:  logger,
		stats:   newStats(address),
	}
}

func (c *Conn) Address() string {
	return c.address
}

func (c *Conn) Stats() *Stats {
	return c.stats
}

// Close releases the socket. Only the first call does anything; later calls return the same
// result. A failure to close is logged and returned, but callers treat it as non-fatal.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if err := c.netConn.Close(); err != nil {
			c.closeErr = err
			c.logger.Printf("%s error closing connection to %s: %s", errorMarker.Sprint("!!"), c.address, err)
			return
		}
		c.logger.Printf("Disconnected from %s", c.address)
	})
	return c.closeErr
}

func (c *Conn) isClosed() bool {
	return c.closed.Load()
}
