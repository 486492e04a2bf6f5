package stubserver

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	helpers "github.com/launchdarkly/go-test-helpers/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = time.Second * 2

func dialStub(t *testing.T, s *Server) (net.Conn, *bufio.Reader) {
	conn, err := net.Dial("tcp", s.Addr())
	require.NoError(t, err)
	return conn, bufio.NewReader(conn)
}

func readLine(t *testing.T, conn net.Conn, r *bufio.Reader) string {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(testTimeout)))
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(line, "\r\n"), "line %q was not CRLF-terminated", line)
	return strings.TrimSuffix(line, "\r\n")
}

func TestEchoMode(t *testing.T) {
	s, err := Start()
	require.NoError(t, err)
	helpers.WithCloser(s, func() {
		conn, r := dialStub(t, s)
		defer conn.Close()

		_, err := conn.Write([]byte("PING :abc\r\nNICK x\r\n"))
		require.NoError(t, err)
		assert.Equal(t, "PING :abc", readLine(t, conn, r))
		assert.Equal(t, "NICK x", readLine(t, conn, r))

		lines, err := s.AwaitLines(2, testTimeout)
		require.NoError(t, err)
		assert.Equal(t, []string{"PING :abc", "NICK x"}, lines)
	})
}

func TestSendInChunksFromServerSide(t *testing.T) {
	s, err := Start(WithMode(Silent))
	require.NoError(t, err)
	helpers.WithCloser(s, func() {
		conn, r := dialStub(t, s)
		defer conn.Close()

		cxn, err := s.AwaitConnection()
		require.NoError(t, err)
		require.NoError(t, cxn.SendInChunks(":server NOTICE * :hello\r\n", 3, time.Millisecond))
		assert.Equal(t, ":server NOTICE * :hello", readLine(t, conn, r))
	})
}

func TestConnectionCloseIsSeenAsEndOfStream(t *testing.T) {
	s, err := Start(WithMode(Silent))
	require.NoError(t, err)
	helpers.WithCloser(s, func() {
		conn, _ := dialStub(t, s)
		defer conn.Close()

		cxn, err := s.AwaitConnection()
		require.NoError(t, err)
		require.NoError(t, cxn.Close())
		assert.NoError(t, cxn.Close())

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(testTimeout)))
		buf := make([]byte, 16)
		n, err := conn.Read(buf)
		assert.Equal(t, 0, n)
		assert.Error(t, err)
	})
}

func TestIRCModeRegistrationAndErrors(t *testing.T) {
	s, err := Start(WithMode(IRC), WithPassword("test123"))
	require.NoError(t, err)
	helpers.WithCloser(s, func() {
		conn, r := dialStub(t, s)
		defer conn.Close()

		send := func(line string) {
			_, err := conn.Write([]byte(line + "\r\n"))
			require.NoError(t, err)
		}

		send("PASS wrong")
		assert.Equal(t, ":server 464 * :Password incorrect", readLine(t, conn, r))

		send("NICK")
		assert.Equal(t, ":server 431 * :No nickname given", readLine(t, conn, r))

		send("USER")
		assert.Equal(t, ":server 461 * USER :Not enough parameters", readLine(t, conn, r))

		send("PASS test123")
		send("NICK TestUser")
		send("USER TestUser 0 * :Real Name")
		assert.Equal(t, ":server 001 TestUser :Welcome to the Internet Relay Network TestUser!TestUser@localhost",
			readLine(t, conn, r))
		assert.Equal(t, ":server 002 TestUser :Your host is server, running version 1.0", readLine(t, conn, r))
		assert.Equal(t, ":server 003 TestUser :This server was created today", readLine(t, conn, r))
		assert.Equal(t, ":server 004 TestUser server 1.0 o itkol", readLine(t, conn, r))

		send("PING :test123")
		assert.Equal(t, ":server PONG server :test123", readLine(t, conn, r))

		send("PASS wrongpassword")
		assert.Equal(t, ":server 462 TestUser :You may not reregister", readLine(t, conn, r))

		send("FROB")
		assert.Equal(t, ":server 421 TestUser FROB :Unknown command", readLine(t, conn, r))

		send("QUIT :bye")
		assert.Equal(t, "ERROR :Closing link (bye)", readLine(t, conn, r))
		_, err := r.ReadString('\n')
		assert.Error(t, err)
	})
}

func TestIRCModeRejectsCommandsBeforeRegistration(t *testing.T) {
	var st ircState
	replies, hangUp := st.reply("JOIN #x", "pw")
	assert.False(t, hangUp)
	assert.Equal(t, []string{":server 451 * :You have not registered"}, replies)

	replies, _ = st.reply("PING", "pw")
	assert.Equal(t, []string{":server 461 * PING :Not enough parameters"}, replies)

	replies, hangUp = st.reply("QUIT", "pw")
	assert.True(t, hangUp)
	assert.Equal(t, []string{"ERROR :Closing link (Client Quit)"}, replies)
}

func TestAwaitLineTimesOut(t *testing.T) {
	s, err := Start()
	require.NoError(t, err)
	defer s.Close()
	_, err = s.AwaitLine(time.Millisecond * 20)
	assert.Error(t, err)
}
