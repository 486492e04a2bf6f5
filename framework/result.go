package framework

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

const skippedByFilter = "excluded by filter parameters"

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
	Duration   time.Duration
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Find returns the result for the scenario with the given name path, if it ran.
func (r Results) Find(path ...string) (TestResult, bool) {
	name := TestID{Path: path}.String()
	for _, t := range r.Tests {
		if t.TestID.String() == name {
			return t, true
		}
	}
	return TestResult{}, false
}

type TestID struct {
	Path []string
}

// Plus returns a new TestID for a child of this one. It never shares the Path array.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

var (
	passedColor  = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed, color.Bold)
	skippedColor = color.New(color.FgYellow)
)

// PrintResults writes a one-line status for every scenario followed by a summary line.
func PrintResults(w io.Writer, results Results) {
	var passed, skipped int
	for _, t := range results.Tests {
		switch {
		case t.Skipped:
			skipped++
			fmt.Fprintf(w, "  %s %s (%s)\n", skippedColor.Sprint("SKIPPED"), t.TestID, t.SkipReason)
		case len(t.Errors) > 0:
			fmt.Fprintf(w, "  %s  %s\n", failedColor.Sprint("FAILED"), t.TestID)
			for _, err := range t.Errors {
				for _, line := range strings.Split(err.Error(), "\n") {
					fmt.Fprintf(w, "            %s\n", line)
				}
			}
		default:
			passed++
			fmt.Fprintf(w, "  %s    %s (%s)\n", passedColor.Sprint("DONE"), t.TestID, t.Duration.Round(time.Millisecond))
		}
	}
	summary := fmt.Sprintf("%d scenarios: %d completed, %d failed, %d skipped",
		len(results.Tests), passed, len(results.Failures), skipped)
	if results.OK() {
		fmt.Fprintln(w, passedColor.Sprint(summary))
	} else {
		fmt.Fprintln(w, failedColor.Sprint(summary))
	}
}
