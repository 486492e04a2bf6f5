package config

import (
	"os"
	"testing"
	"time"

	helpers "github.com/launchdarkly/go-test-helpers/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ft-irc/irc-contract-tests/framework"
)

func envOf(vars map[string]string) func(string) string {
	return func(name string) string { return vars[name] }
}

func withConfigFile(t *testing.T, content string, action func(path string)) {
	helpers.WithTempFile(func(path string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		action(path)
	})
}

func TestDefaults(t *testing.T) {
	c, err := load(envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 6667, c.Port)
	assert.Equal(t, "test123", c.Password)
	assert.Equal(t, "TestUser", c.Nickname)
	assert.Equal(t, "Real Name", c.RealName)
}

func TestEnvironmentOverrides(t *testing.T) {
	c, err := load(envOf(map[string]string{
		EnvHost:     "irc.example.org",
		EnvPort:     "6697",
		EnvPassword: "secret",
		EnvNickname: "bob",
		EnvRealName: "Bob Builder",
		EnvRun:      "Registration",
		EnvSkip:     "Error",
		EnvDebug:    "true",
	}))
	require.NoError(t, err)
	assert.Equal(t, "irc.example.org", c.Host)
	assert.Equal(t, 6697, c.Port)
	assert.Equal(t, "secret", c.Password)
	assert.Equal(t, "bob", c.Nickname)
	assert.Equal(t, "Bob Builder", c.RealName)
	assert.Equal(t, []string{"Registration"}, c.Run)
	assert.Equal(t, []string{"Error"}, c.Skip)
	assert.True(t, c.Debug)
	assert.False(t, c.DebugAll)
}

func TestDebugAll(t *testing.T) {
	c, err := load(envOf(map[string]string{EnvDebug: "ALL"}))
	require.NoError(t, err)
	assert.True(t, c.Debug)
	assert.True(t, c.DebugAll)

	_, err = load(envOf(map[string]string{EnvDebug: "sometimes"}))
	assert.Error(t, err)
}

func TestInvalidPort(t *testing.T) {
	_, err := load(envOf(map[string]string{EnvPort: "irc"}))
	assert.Error(t, err)

	_, err = load(envOf(map[string]string{EnvPort: "70000"}))
	assert.EqualError(t, err, "port 70000 is out of range")
}

func TestConfigFile(t *testing.T) {
	withConfigFile(t, `
host: 10.0.0.5
port: 7000
password: ""
startupWaitMs: 0
quietPeriodMs: 250
run: ["Registration", "Disconnect"]
debugAll: true
`, func(path string) {
		c, err := load(envOf(map[string]string{EnvConfigFile: path}))
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.5", c.Host)
		assert.Equal(t, 7000, c.Port)
		assert.Equal(t, "", c.Password)
		assert.Equal(t, "TestUser", c.Nickname)
		assert.Equal(t, time.Duration(0), c.StartupWait)
		assert.Equal(t, time.Millisecond*250, c.QuietPeriod)
		assert.Equal(t, time.Duration(0), c.PollInterval)
		assert.Equal(t, []string{"Registration", "Disconnect"}, c.Run)
		assert.True(t, c.DebugAll)
	})
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	withConfigFile(t, "host: from-file\nport: 7000\n", func(path string) {
		c, err := load(envOf(map[string]string{EnvConfigFile: path, EnvPort: "7001"}))
		require.NoError(t, err)
		assert.Equal(t, "from-file", c.Host)
		assert.Equal(t, 7001, c.Port)
	})
}

func TestEmptyConfigFile(t *testing.T) {
	withConfigFile(t, "", func(path string) {
		c, err := load(envOf(map[string]string{EnvConfigFile: path}))
		require.NoError(t, err)
		assert.Equal(t, path, c.File)
		c.File = ""
		assert.Equal(t, Default(), c)
	})
}

func TestConfigFileErrors(t *testing.T) {
	withConfigFile(t, "hots: typo\n", func(path string) {
		_, err := load(envOf(map[string]string{EnvConfigFile: path}))
		assert.Error(t, err)
	})
	withConfigFile(t, "pollIntervalMs: -5\n", func(path string) {
		_, err := load(envOf(map[string]string{EnvConfigFile: path}))
		assert.EqualError(t, err, "poll interval must not be negative")
	})

	_, err := load(envOf(map[string]string{EnvConfigFile: "/nonexistent/irctest.yaml"}))
	assert.Error(t, err)
}

func TestFilters(t *testing.T) {
	c := Default()
	c.Skip = []string{"Ping"}
	filters, err := c.Filters()
	require.NoError(t, err)
	assert.True(t, filters.AsFilter(framework.TestID{Path: []string{"Registration"}}))
	assert.False(t, filters.AsFilter(framework.TestID{Path: []string{"Ping/Pong"}}))

	c.Run = []string{"("}
	assert.Error(t, c.Validate())
}
