// Package framework contains the parts of the test harness that do not know anything about
// the IRC protocol.
//
// The general model is:
//
// 1. A run is a tree of named scenarios. Each scenario gets a Context, which is similar to
// Go's *testing.T: it accumulates errors, can fail or skip immediately, and collects debug
// output. The root Context only groups scenarios and is never reported itself.
//
// 2. A Filter built from regular expressions decides which scenarios are run.
//
// 3. A TestLogger is notified as each scenario starts, fails, finishes or is skipped, and
// Results are returned at the end for the summary.
//
// Logger is the logging interface shared by every package in the harness; it is satisfied by
// *log.Logger as well as by the CapturingLogger used in tests.
package framework
