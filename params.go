package main

import (
	"strconv"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/ft-irc/irc-contract-tests/config"
)

const commandName = "irc-contract-tests"

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b *commandBuilder) setenv(name, value string) {
	*b = append(*b, name+"="+shellescape.Quote(value))
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// reproduceCommand returns a shell command line that runs the harness again with the same
// settings. Settings left at their defaults are omitted, and the password is never shown.
func reproduceCommand(cfg config.Config) string {
	var b commandBuilder
	if cfg.Host != config.DefaultHost {
		b.setenv(config.EnvHost, cfg.Host)
	}
	if cfg.Port != config.DefaultPort {
		b.setenv(config.EnvPort, strconv.Itoa(cfg.Port))
	}
	if cfg.Password != config.DefaultPassword {
		b.setenv(config.EnvPassword, "...")
	}
	if cfg.Nickname != config.DefaultNickname {
		b.setenv(config.EnvNickname, cfg.Nickname)
	}
	if cfg.RealName != config.DefaultRealName {
		b.setenv(config.EnvRealName, cfg.RealName)
	}
	if len(cfg.Run) > 0 {
		b.setenv(config.EnvRun, strings.Join(cfg.Run, "|"))
	}
	if len(cfg.Skip) > 0 {
		b.setenv(config.EnvSkip, strings.Join(cfg.Skip, "|"))
	}
	switch {
	case cfg.DebugAll:
		b.setenv(config.EnvDebug, "all")
	case cfg.Debug:
		b.setenv(config.EnvDebug, "true")
	}
	if cfg.File != "" {
		b.setenv(config.EnvConfigFile, cfg.File)
	}
	b.add(commandName)
	return b.String()
}
