// exec.go runs built command vectors as child processes.
//
// Isolation policy, identical for every operation: the child never
// inherits the caller's standard input, it runs in the project directory,
// and its output is captured rather than streamed. There is no timeout
// at this layer; duration control exists only as --timeout flags inside
// the vectors themselves.
package compose

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/suitedock/internal/model"
)

// trailingSpace is the cutset trimmed off captured output before it is
// returned or reported. Only the right side is trimmed: leading
// whitespace in child output is preserved verbatim.
const trailingSpace = " \t\r\n"

// Executor executes command vectors with the session's fixed isolation
// settings. It holds only the working directory and is safe for
// concurrent use.
type Executor struct {
	// dir is the working directory for every child process, taken from
	// ProjectContext.ProjectDir. Empty means the caller's cwd, which is
	// only used by the version probes that run before a project context
	// exists.
	dir string
}

// NewExecutor creates an Executor that runs children in dir.
func NewExecutor(dir string) *Executor {
	return &Executor{dir: dir}
}

// command prepares an exec.Cmd for the given vector. Arg vectors are
// passed straight to the OS, never joined into a shell string, so no
// quoting or injection ambiguity exists.
func (e *Executor) command(ctx context.Context, argv []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = e.dir
	// Explicitly no stdin: the child reads from the null device, never
	// from whatever stream the calling framework happens to hold open.
	cmd.Stdin = nil
	return cmd
}

// Run executes a vector with standard error merged into standard output
// and returns the combined text, right-trimmed. This is the policy for
// "fire and forget" operations where only success/failure and an error
// excerpt matter.
//
// A non-zero exit yields a *model.ProcessError carrying the captured
// text; it is never swallowed or retried.
func (e *Executor) Run(ctx context.Context, argv []string) (string, error) {
	cmd := e.command(ctx, argv)
	out, err := cmd.CombinedOutput()
	text := strings.TrimRight(string(out), trailingSpace)
	if err != nil {
		return "", &model.ProcessError{Output: text, Err: err}
	}
	return text, nil
}

// Capture executes a vector with standard output and standard error
// captured as two independent streams, and returns the stdout text,
// right-trimmed. This is the policy for operations whose success value
// is the stdout text itself (logs, port lookup, version query).
//
// On failure the error text comes from stderr; if the child wrote its
// diagnostics to stdout instead, that text is used as a fallback.
func (e *Executor) Capture(ctx context.Context, argv []string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := e.command(ctx, argv)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		text := strings.TrimRight(stderr.String(), trailingSpace)
		if text == "" {
			text = strings.TrimRight(stdout.String(), trailingSpace)
		}
		return "", &model.ProcessError{Output: text, Err: err}
	}

	return strings.TrimRight(stdout.String(), trailingSpace), nil
}

// CaptureToFile executes a vector with standard output appended to the
// named file and standard error captured for diagnostics. The file is
// opened in append mode and closed on every exit path. Used by log
// retrieval when the caller wants log text on disk instead of returned.
func (e *Executor) CaptureToFile(ctx context.Context, argv []string, path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var stderr bytes.Buffer
	cmd := e.command(ctx, argv)
	cmd.Stdout = f
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &model.ProcessError{
			Output: strings.TrimRight(stderr.String(), trailingSpace),
			Err:    err,
		}
	}
	return nil
}
