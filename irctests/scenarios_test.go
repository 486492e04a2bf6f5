package irctests

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ft-irc/irc-contract-tests/ircmsg"
)

func TestScenarioScriptGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "scenario_script", []byte(Script(AllScenarios(DefaultIdentity()))))
}

func TestRegistrationUsesIdentity(t *testing.T) {
	s := Registration(Identity{Password: "hunter2", Nickname: "alice", RealName: "Alice Liddell"})
	assert.Equal(t, []string{
		"PASS hunter2",
		"NICK alice",
		"USER alice 0 * :Alice Liddell",
	}, allCommands([]Scenario{s}))
}

func TestScenarioCommandsParse(t *testing.T) {
	for _, s := range AllScenarios(DefaultIdentity()) {
		for _, st := range s.Steps {
			m, err := ircmsg.Parse(st.Command)
			if assert.NoError(t, err, st.Command) {
				assert.Equal(t, st.Command, m.String())
			}
			assert.Greater(t, int64(st.Wait), int64(0), st.Command)
		}
	}
}

func TestErrorCasesAreMalformed(t *testing.T) {
	var params [][]string
	for _, st := range ErrorCases().Steps {
		m, _ := ircmsg.Parse(st.Command)
		params = append(params, m.AllParams())
	}
	assert.Empty(t, params[0])
	assert.Equal(t, []string{wrongPassword}, params[1])
	assert.Empty(t, params[2])
}
