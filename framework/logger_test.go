package framework

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggerIsSafeForConcurrentUse(t *testing.T) {
	var logger CapturingLogger
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				logger.Printf("line %d", j)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, logger.Output(), 200)
}

func TestLoggerWithPrefix(t *testing.T) {
	var logger CapturingLogger
	LoggerWithPrefix(&logger, "[stub] ").Printf("got %q", "NICK")
	assert.Equal(t, []string{`[stub] got "NICK"`}, logger.Output().Messages())

	LoggerWithPrefix(nil, "x").Printf("discarded")
}

func TestCapturedOutputWithPrefix(t *testing.T) {
	var logger CapturingLogger
	logger.Printf(">> PASS x")
	logger.Printf("<< :server 464 * :Password incorrect")
	logger.Printf(">> NICK a")
	assert.Equal(t, []string{">> PASS x", ">> NICK a"}, logger.Output().WithPrefix(">> "))
	assert.Nil(t, logger.Output().WithPrefix("!! "))
}

func TestDump(t *testing.T) {
	var logger CapturingLogger
	logger.Printf("hello")
	var buf bytes.Buffer
	logger.Output().Dump(&buf, "    DEBUG ")
	require.Contains(t, buf.String(), "    DEBUG [")
	assert.Contains(t, buf.String(), "] hello\n")
}

func TestRegexListFromPatterns(t *testing.T) {
	list, err := NewRegexList("", "^Ping", "Disconnect$")
	require.NoError(t, err)
	assert.True(t, list.IsDefined())
	assert.True(t, list.AnyMatch("Ping/Pong"))
	assert.False(t, list.AnyMatch("Registration"))
	assert.Equal(t, `"^Ping" or "Disconnect$"`, list.String())

	_, err = NewRegexList("(")
	assert.Error(t, err)
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Empty(t, buf.String())

	run, err := NewRegexList("Registration")
	require.NoError(t, err)
	PrintFilterDescription(&buf, RegexFilters{MustMatch: run})
	assert.Contains(t, buf.String(), `skip any not matching "Registration"`)
}
