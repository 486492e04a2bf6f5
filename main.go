package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/ft-irc/irc-contract-tests/config"
	"github.com/ft-irc/irc-contract-tests/framework"
	"github.com/ft-irc/irc-contract-tests/ircconn"
	"github.com/ft-irc/irc-contract-tests/irctests"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		return 1
	}
	filters, err := cfg.Filters()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.New()
	consoleLogger := log.New(os.Stdout, "", log.Ltime|log.Lmicroseconds)

	fmt.Printf("IRC contract tests, run %s\n", runID)
	fmt.Printf("To repeat this run: %s\n\n", reproduceCommand(cfg))
	framework.PrintFilterDescription(os.Stdout, filters)

	conn, err := ircconn.Dial(ctx, cfg.Host, cfg.Port, consoleLogger)
	if err != nil {
		var connectErr *ircconn.ConnectError
		if errors.As(err, &connectErr) {
			fmt.Fprintf(os.Stderr, "Is the server running on %s?\n", connectErr.Address)
		}
		return 1
	}
	receiver := ircconn.StartReceiver(ctx, conn, cfg.PollInterval)

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: cfg.Debug || cfg.DebugAll,
		DebugOutputOnSuccess: cfg.DebugAll,
	}
	identity := irctests.Identity{
		Password: cfg.Password,
		Nickname: cfg.Nickname,
		RealName: cfg.RealName,
	}
	results := irctests.RunAll(ctx, conn, receiver, irctests.AllScenarios(identity), filters.AsFilter, testLogger,
		irctests.Options{
			StartupWait: cfg.StartupWait,
			QuietPeriod: cfg.QuietPeriod,
			Logger:      consoleLogger,
		})
	if err := receiver.Err(); err != nil {
		fmt.Printf("Receiver stopped early: %s\n", err)
	}

	fmt.Println()
	fmt.Printf("Results for run %s\n", runID)
	framework.PrintResults(os.Stdout, results)
	printStats(conn.Stats().Snapshot())
	if !results.OK() {
		return 1
	}
	return 0
}

func printStats(s ircconn.StatsSnapshot) {
	fmt.Printf("Sent %d commands (%d bytes), received %d lines (%d bytes)\n",
		s.CommandsSent, s.BytesWritten, s.LinesReceived, s.BytesRead)
}
