package irctests

import (
	"context"
	"time"

	"github.com/ft-irc/irc-contract-tests/framework"
)

const (
	DefaultStartupWait = time.Millisecond * 500
	DefaultQuietPeriod = time.Millisecond * 100
)

// Options controls timing of a run. Zero values are replaced by the defaults.
type Options struct {
	// StartupWait is how long to wait for a greeting before the first scenario.
	StartupWait time.Duration

	// QuietPeriod is how long the server must stay silent after answering a step before the
	// answer is considered complete.
	QuietPeriod time.Duration

	Logger framework.Logger
}

func (o Options) withDefaults() Options {
	if o.StartupWait <= 0 {
		o.StartupWait = DefaultStartupWait
	}
	if o.QuietPeriod <= 0 {
		o.QuietPeriod = DefaultQuietPeriod
	}
	if o.Logger == nil {
		o.Logger = framework.NullLogger()
	}
	return o
}

// RunAll runs the scenarios in order over an established connection. When it returns the
// responses have been stopped and the transport closed, whatever the outcome.
func RunAll(
	ctx context.Context,
	transport Transport,
	responses Responses,
	scenarios []Scenario,
	filter framework.Filter,
	testLogger framework.TestLogger,
	opts Options,
) framework.Results {
	env := &environment{
		ctx:       ctx,
		transport: transport,
		responses: responses,
		opts:      opts.withDefaults(),
	}
	defer func() {
		responses.Stop()
		_ = transport.Close()
	}()

	if n := responses.AwaitResponse(ctx, 0, env.opts.StartupWait, env.opts.QuietPeriod); n == 0 {
		env.opts.Logger.Printf("No greeting within %s", env.opts.StartupWait)
	}

	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}
		for _, s := range scenarios {
			steps := s.Steps
			t.Run(s.Name, func(t *T) {
				for _, st := range steps {
					t.Do(st)
				}
			})
		}
	})
}
