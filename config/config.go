// Package config resolves the harness settings from defaults, an optional YAML file, and
// environment variables, in that order of increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"

	"github.com/ft-irc/irc-contract-tests/framework"
)

const (
	EnvConfigFile = "IRCTEST_CONFIG"
	EnvHost       = "IRCTEST_HOST"
	EnvPort       = "IRCTEST_PORT"
	EnvPassword   = "IRCTEST_PASSWORD"
	EnvNickname   = "IRCTEST_NICK"
	EnvRealName   = "IRCTEST_REALNAME"
	EnvRun        = "IRCTEST_RUN"
	EnvSkip       = "IRCTEST_SKIP"
	EnvDebug      = "IRCTEST_DEBUG"
)

const (
	DefaultHost     = "localhost"
	DefaultPort     = 6667
	DefaultPassword = "test123"
	DefaultNickname = "TestUser"
	DefaultRealName = "Real Name"
)

type Config struct {
	// File is the YAML file the settings were read from, if any.
	File string

	Host     string
	Port     int
	Password string
	Nickname string
	RealName string

	// Zero durations mean "use the harness default".
	StartupWait  time.Duration
	QuietPeriod  time.Duration
	PollInterval time.Duration

	// Run and Skip are regular expressions matched against scenario names.
	Run  []string
	Skip []string

	// Debug prints each failed scenario's debug output; DebugAll prints it for every scenario.
	Debug    bool
	DebugAll bool
}

// fileConfig is the YAML layout. Pointers distinguish an absent key from a zero value.
type fileConfig struct {
	Host           string   `yaml:"host"`
	Port           *int     `yaml:"port"`
	Password       *string  `yaml:"password"`
	Nickname       string   `yaml:"nickname"`
	RealName       string   `yaml:"realName"`
	StartupWaitMS  *int     `yaml:"startupWaitMs"`
	QuietPeriodMS  *int     `yaml:"quietPeriodMs"`
	PollIntervalMS *int     `yaml:"pollIntervalMs"`
	Run            []string `yaml:"run"`
	Skip           []string `yaml:"skip"`
	Debug          *bool    `yaml:"debug"`
	DebugAll       *bool    `yaml:"debugAll"`
}

func Default() Config {
	return Config{
		Host:     DefaultHost,
		Port:     DefaultPort,
		Password: DefaultPassword,
		Nickname: DefaultNickname,
		RealName: DefaultRealName,
	}
}

// Load returns the configuration for this process.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	c := Default()
	if path := getenv(EnvConfigFile); path != "" {
		if err := c.applyFile(path); err != nil {
			return Config{}, err
		}
		c.File = path
	}
	if err := c.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var f fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if f.Host != "" {
		c.Host = f.Host
	}
	c.Port = ldvalue.NewOptionalIntFromPointer(f.Port).OrElse(c.Port)
	if f.Password != nil {
		c.Password = *f.Password
	}
	if f.Nickname != "" {
		c.Nickname = f.Nickname
	}
	if f.RealName != "" {
		c.RealName = f.RealName
	}
	applyMillis(&c.StartupWait, ldvalue.NewOptionalIntFromPointer(f.StartupWaitMS))
	applyMillis(&c.QuietPeriod, ldvalue.NewOptionalIntFromPointer(f.QuietPeriodMS))
	applyMillis(&c.PollInterval, ldvalue.NewOptionalIntFromPointer(f.PollIntervalMS))
	c.Run = append(c.Run, f.Run...)
	c.Skip = append(c.Skip, f.Skip...)
	if f.Debug != nil {
		c.Debug = *f.Debug
	}
	if f.DebugAll != nil {
		c.DebugAll = *f.DebugAll
	}
	return nil
}

func applyMillis(target *time.Duration, ms ldvalue.OptionalInt) {
	if ms.IsDefined() {
		*target = time.Duration(ms.IntValue()) * time.Millisecond
	}
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvHost); v != "" {
		c.Host = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Port = port
	}
	if v := getenv(EnvPassword); v != "" {
		c.Password = v
	}
	if v := getenv(EnvNickname); v != "" {
		c.Nickname = v
	}
	if v := getenv(EnvRealName); v != "" {
		c.RealName = v
	}
	if v := getenv(EnvRun); v != "" {
		c.Run = append(c.Run, v)
	}
	if v := getenv(EnvSkip); v != "" {
		c.Skip = append(c.Skip, v)
	}
	switch v := strings.ToLower(getenv(EnvDebug)); v {
	case "":
	case "all":
		c.Debug, c.DebugAll = true, true
	default:
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: expected a boolean or \"all\"", EnvDebug, v)
		}
		c.Debug = debug
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("host must not be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if c.Nickname == "" {
		return errors.New("nickname must not be empty")
	}
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"startup wait", c.StartupWait},
		{"quiet period", c.QuietPeriod},
		{"poll interval", c.PollInterval},
	}
	for _, d := range durations {
		if d.value < 0 {
			return fmt.Errorf("%s must not be negative", d.name)
		}
	}
	if _, err := c.Filters(); err != nil {
		return err
	}
	return nil
}

// Filters compiles Run and Skip into scenario filters.
func (c Config) Filters() (framework.RegexFilters, error) {
	mustMatch, err := framework.NewRegexList(c.Run...)
	if err != nil {
		return framework.RegexFilters{}, err
	}
	mustNotMatch, err := framework.NewRegexList(c.Skip...)
	if err != nil {
		return framework.RegexFilters{}, err
	}
	return framework.RegexFilters{MustMatch: mustMatch, MustNotMatch: mustNotMatch}, nil
}
