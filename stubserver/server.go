// Package stubserver is a minimal line-protocol server instrumented for tests of the harness.
//
// It listens on a loopback port, records every line the harness sends, and answers according
// to its Mode. Tests can also push raw bytes at the harness in arbitrary chunks to exercise
// framing, or break the connection.
package stubserver

import (
	"bufio"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/ft-irc/irc-contract-tests/framework"
)

const defaultAwaitTimeout = time.Second * 5

// Mode selects how the server answers each line it receives.
type Mode int

const (
	// Echo writes every received line straight back.
	Echo Mode = iota
	// IRC answers registration, PING, QUIT and malformed commands like a small IRC server.
	IRC
	// Silent never answers.
	Silent
)

type options struct {
	mode     Mode
	password string
	logger   framework.Logger
}

// Option configures a Server created by Start.
type Option func(*options)

// WithMode sets the reply mode. The default is Echo.
func WithMode(mode Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithPassword sets the connection password expected by IRC mode.
func WithPassword(password string) Option {
	return func(o *options) {
		o.password = password
	}
}

// WithLogger sets a logger for the server's own activity.
func WithLogger(logger framework.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

type Server struct {
	listener net.Listener
	opts     options
	cxnCh    chan *Connection
	received chan string
	conns    []*Connection
	lock     sync.Mutex
	wg       sync.WaitGroup
	closing  sync.Once
}

// Connection is one accepted client connection.
type Connection struct {
	conn      net.Conn
	server    *Server
	state     ircState
	writeLock sync.Mutex
	closeOnce sync.Once
}

// Start listens on an ephemeral loopback port and begins accepting connections.
func Start(opts ...Option) (*Server, error) {
	o := options{password: "test123"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = framework.NullLogger()
	}
	o.logger = framework.LoggerWithPrefix(o.logger, "[stub] ")

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener: listener,
		opts:     o,
		cxnCh:    make(chan *Connection, 10),
		received: make(chan string, 1000),
	}
	s.wg.Add(1)
	go s.acceptLoop()
	return s, nil
}

func (s *Server) Host() string {
	return s.listener.Addr().(*net.TCPAddr).IP.String()
}

func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// AwaitConnection waits until a client has connected.
func (s *Server) AwaitConnection() (*Connection, error) {
	deadline := time.NewTimer(defaultAwaitTimeout)
	defer deadline.Stop()
	select {
	case cxn := <-s.cxnCh:
		return cxn, nil
	case <-deadline.C:
		return nil, errors.New("timed out waiting for the harness to connect")
	}
}

// AwaitLine waits for the next line sent by any client, without its terminator.
func (s *Server) AwaitLine(timeout time.Duration) (string, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case line := <-s.received:
		return line, nil
	case <-deadline.C:
		return "", errors.New("timed out waiting for a line from the harness")
	}
}

// AwaitLines waits for the next n lines sent by any client.
func (s *Server) AwaitLines(n int, timeout time.Duration) ([]string, error) {
	deadline := time.Now().Add(timeout)
	var lines []string
	for len(lines) < n {
		line, err := s.AwaitLine(time.Until(deadline))
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Close stops listening, closes every open connection and waits for all server goroutines.
func (s *Server) Close() error {
	var err error
	s.closing.Do(func() {
		err = s.listener.Close()
		s.lock.Lock()
		conns := s.conns
		s.conns = nil
		s.lock.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
		s.wg.Wait()
	})
	return err
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		cxn := &Connection{conn: conn, server: s}
		s.lock.Lock()
		s.conns = append(s.conns, cxn)
		s.lock.Unlock()
		s.opts.logger.Printf("accepted connection from %s", conn.RemoteAddr())

		select { // non-blocking push
		case s.cxnCh <- cxn:
		default:
			s.opts.logger.Printf("incoming connection channel was full")
		}
		s.wg.Add(1)
		go s.serve(cxn)
	}
}

func (s *Server) serve(c *Connection) {
	defer s.wg.Done()
	defer func() { _ = c.Close() }()

	reader := bufio.NewReader(c.conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		s.opts.logger.Printf("got %q", line)
		select {
		case s.received <- line:
		default:
			s.opts.logger.Printf("received-line channel was full, dropping %q", line)
		}

		replies, hangUp := s.respond(c, line)
		for _, reply := range replies {
			if err := c.Send(reply + "\r\n"); err != nil {
				return
			}
		}
		if hangUp {
			return
		}
	}
}

func (s *Server) respond(c *Connection, line string) ([]string, bool) {
	switch s.opts.mode {
	case Echo:
		return []string{line}, false
	case IRC:
		return c.state.reply(line, s.opts.password)
	default:
		return nil, false
	}
}

// Send writes raw data to the client; no terminator is added.
func (c *Connection) Send(data string) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	_, err := c.conn.Write([]byte(data))
	return err
}

// SendInChunks breaks data into pieces of chunkSize bytes and writes each one separately,
// sleeping for delayBetween after every piece but the last.
func (c *Connection) SendInChunks(data string, chunkSize int, delayBetween time.Duration) error {
	bytes := []byte(data)
	for pos := 0; pos < len(bytes); pos += chunkSize {
		end := pos + chunkSize
		if end > len(bytes) {
			end = len(bytes)
		}
		if err := c.Send(string(bytes[pos:end])); err != nil {
			return err
		}
		if end < len(bytes) && delayBetween > 0 {
			time.Sleep(delayBetween)
		}
	}
	return nil
}

// Close breaks the connection. The client sees end of stream.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.server.opts.logger.Printf("closing connection from %s", c.conn.RemoteAddr())
		err = c.conn.Close()
	})
	return err
}
