package irctests

import (
	"fmt"
	"strings"
	"time"

	"github.com/ft-irc/irc-contract-tests/ircmsg"
)

const (
	shortWait = time.Millisecond * 500
	longWait  = time.Second

	pingToken     = "test123"
	wrongPassword = "wrongpassword"
	quitReason    = "Test completed"
)

// Step is one command of a scenario. Wait is the longest the runner will wait for the server
// to answer before moving on.
type Step struct {
	Command string
	Wait    time.Duration
}

// Scenario is a named, fixed sequence of commands.
type Scenario struct {
	Name  string
	Steps []Step
}

// Identity is who the harness registers as.
type Identity struct {
	Password string
	Nickname string
	RealName string
}

func DefaultIdentity() Identity {
	return Identity{
		Password: "test123",
		Nickname: "TestUser",
		RealName: "Real Name",
	}
}

func step(m ircmsg.Message, wait time.Duration) Step {
	return Step{Command: m.String(), Wait: wait}
}

// Registration sends the connection password, a nickname, and user details.
func Registration(id Identity) Scenario {
	return Scenario{
		Name: "Registration",
		Steps: []Step{
			step(ircmsg.New("PASS", id.Password), shortWait),
			step(ircmsg.New("NICK", id.Nickname), shortWait),
			step(ircmsg.New("USER", id.Nickname, "0", "*").WithTrailing(id.RealName), longWait),
		},
	}
}

func PingPong() Scenario {
	return Scenario{
		Name: "Ping/Pong",
		Steps: []Step{
			step(ircmsg.New("PING").WithTrailing(pingToken), shortWait),
		},
	}
}

// ErrorCases sends commands with missing parameters and, after registration, a wrong
// password. The server's replies are logged but not checked.
func ErrorCases() Scenario {
	return Scenario{
		Name: "Error cases",
		Steps: []Step{
			step(ircmsg.New("NICK"), shortWait),
			step(ircmsg.New("PASS", wrongPassword), shortWait),
			step(ircmsg.New("USER"), shortWait),
		},
	}
}

func Disconnect() Scenario {
	return Scenario{
		Name: "Disconnect",
		Steps: []Step{
			step(ircmsg.New("QUIT").WithTrailing(quitReason), longWait),
		},
	}
}

// AllScenarios returns the full run in the order it must be executed.
func AllScenarios(id Identity) []Scenario {
	return []Scenario{
		Registration(id),
		PingPong(),
		ErrorCases(),
		Disconnect(),
	}
}

// Script renders scenarios as readable text, one command per line with its wait.
func Script(scenarios []Scenario) string {
	var b strings.Builder
	for i, s := range scenarios {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s]\n", s.Name)
		for _, st := range s.Steps {
			fmt.Fprintf(&b, "  %-40s wait %s\n", st.Command, st.Wait)
		}
	}
	return b.String()
}
