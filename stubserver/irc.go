package stubserver

import (
	"strings"

	"github.com/ft-irc/irc-contract-tests/ircmsg"
)

const serverName = "server"

// ircState is the registration state of one client in IRC mode.
type ircState struct {
	passwordOK bool
	nick       string
	user       string
	registered bool
}

func (st *ircState) target() string {
	if st.nick == "" {
		return "*"
	}
	return st.nick
}

func (st *ircState) numeric(code string, middle []string, text string) string {
	return ircmsg.Message{
		Prefix:      serverName,
		Command:     code,
		Params:      append([]string{st.target()}, middle...),
		Trailing:    text,
		HasTrailing: true,
	}.String()
}

// reply returns the lines to send back for one received line, and whether the server should
// then close the connection.
func (st *ircState) reply(line, password string) ([]string, bool) {
	m, err := ircmsg.Parse(line)
	if err != nil {
		return nil, false
	}
	command := strings.ToUpper(m.Command)
	params := m.AllParams()

	switch command {
	case "PASS":
		switch {
		case st.registered:
			return []string{st.numeric(ircmsg.ErrAlreadyRegistered, nil, "You may not reregister")}, false
		case len(params) == 0:
			return []string{st.numeric(ircmsg.ErrNeedMoreParams, []string{command}, "Not enough parameters")}, false
		case params[0] != password:
			st.passwordOK = false
			return []string{st.numeric(ircmsg.ErrPasswdMismatch, nil, "Password incorrect")}, false
		}
		st.passwordOK = true
		return st.welcomeIfReady(), false

	case "NICK":
		if len(params) == 0 {
			return []string{st.numeric(ircmsg.ErrNoNicknameGiven, nil, "No nickname given")}, false
		}
		st.nick = params[0]
		return st.welcomeIfReady(), false

	case "USER":
		switch {
		case st.registered:
			return []string{st.numeric(ircmsg.ErrAlreadyRegistered, nil, "You may not reregister")}, false
		case len(params) < 4:
			return []string{st.numeric(ircmsg.ErrNeedMoreParams, []string{command}, "Not enough parameters")}, false
		}
		st.user = params[0]
		return st.welcomeIfReady(), false

	case "PING":
		if len(params) == 0 {
			return []string{st.numeric(ircmsg.ErrNeedMoreParams, []string{command}, "Not enough parameters")}, false
		}
		pong := ircmsg.Message{Prefix: serverName, Command: "PONG", Params: []string{serverName}}.
			WithTrailing(params[0])
		return []string{pong.String()}, false

	case "QUIT":
		reason := "Client Quit"
		if m.HasTrailing && m.Trailing != "" {
			reason = m.Trailing
		}
		return []string{ircmsg.New("ERROR").WithTrailing("Closing link (" + reason + ")").String()}, true
	}

	if !st.registered {
		return []string{st.numeric(ircmsg.ErrNotRegistered, nil, "You have not registered")}, false
	}
	return []string{st.numeric(ircmsg.ErrUnknownCommand, []string{m.Command}, "Unknown command")}, false
}

func (st *ircState) welcomeIfReady() []string {
	if st.registered || !st.passwordOK || st.nick == "" || st.user == "" {
		return nil
	}
	st.registered = true
	mask := st.nick + "!" + st.user + "@localhost"
	return []string{
		st.numeric(ircmsg.RplWelcome, nil, "Welcome to the Internet Relay Network "+mask),
		st.numeric(ircmsg.RplYourHost, nil, "Your host is "+serverName+", running version 1.0"),
		st.numeric(ircmsg.RplCreated, nil, "This server was created today"),
		ircmsg.Message{
			Prefix:  serverName,
			Command: ircmsg.RplMyInfo,
			Params:  []string{st.target(), serverName, "1.0", "o", "itkol"},
		}.String(),
	}
}
