package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmr-tortoise/suitedock/internal/model"
)

// TestExitCodeFor verifies the error-to-exit-code translation across
// the whole failure taxonomy, including sentinels wrapped in operation
// errors the way the facade produces them.
func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected model.ExitCode
	}{
		{
			name:     "tool not found",
			err:      model.ErrToolNotFound,
			expected: model.ExitToolNotFound,
		},
		{
			name:     "version unparseable",
			err:      model.ErrVersionUnparseable,
			expected: model.ExitVersionUnparseable,
		},
		{
			name:     "port not exposed wrapped in an op error",
			err:      &model.OpError{Op: "port", Err: model.ErrPortNotExposed},
			expected: model.ExitPortNotExposed,
		},
		{
			name:     "nothing to kill wrapped in an op error",
			err:      &model.OpError{Op: "kill", Err: model.ErrNothingToKill},
			expected: model.ExitNothingToKill,
		},
		{
			name:     "unexpected response",
			err:      model.ErrUnexpectedResponse,
			expected: model.ExitBadResponse,
		},
		{
			name:     "child process failure wrapped in an op error",
			err:      &model.OpError{Op: "up", Err: &model.ProcessError{Output: "boom", Err: errors.New("exit status 1")}},
			expected: model.ExitProcessFailed,
		},
		{
			name:     "cli error carries its own code",
			err:      model.NewCLIError(model.ExitGeneralError, "port is not reachable"),
			expected: model.ExitGeneralError,
		},
		{
			name:     "unknown error falls back to general",
			err:      errors.New("something else"),
			expected: model.ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCodeFor(tt.err))
		})
	}
}

// TestExitCodeFor_SentinelBeatsProcessError verifies the precedence
// decision: a sentinel inside a process failure is the more specific
// class and wins over the generic "child failed" code.
func TestExitCodeFor_SentinelBeatsProcessError(t *testing.T) {
	err := &model.OpError{
		Op:  "port",
		Err: &model.ProcessError{Output: "no such service", Err: model.ErrPortNotExposed},
	}

	assert.Equal(t, model.ExitPortNotExposed, exitCodeFor(err))
}

// TestParseBuildArgs verifies key=value parsing of repeated build-arg
// flags.
func TestParseBuildArgs(t *testing.T) {
	m, err := parseBuildArgs([]string{"VERSION=1.2.3", "EMPTY=", "URL=http://host:8080/x?a=b"})
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{
		"VERSION": "1.2.3",
		"EMPTY":   "",
		"URL":     "http://host:8080/x?a=b",
	}, m)

	// Only the first "=" splits, so values may contain "=".
	assert.Equal(t, "http://host:8080/x?a=b", m["URL"])
}

// TestParseBuildArgs_Invalid verifies rejection of pairs without a key
// or without a separator.
func TestParseBuildArgs_Invalid(t *testing.T) {
	_, err := parseBuildArgs([]string{"NOVALUE"})
	assert.Error(t, err)

	_, err = parseBuildArgs([]string{"=value"})
	assert.Error(t, err)
}

// TestParseBuildArgs_Empty verifies that no flags yield a nil map.
func TestParseBuildArgs_Empty(t *testing.T) {
	m, err := parseBuildArgs(nil)
	assert.NoError(t, err)
	assert.Nil(t, m)
}
