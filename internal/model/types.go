package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ToolVariant identifies which invocation form of the compose tool is
// active. Exactly one variant is resolved per session, never both:
//
//	VariantPlugin     → "docker compose ..." (compose shipped as a docker CLI plugin)
//	VariantStandalone → "docker-compose ..." (the legacy standalone binary)
type ToolVariant string

const (
	// VariantPlugin runs compose as a subcommand of the docker binary.
	// This is the modern invocation form and is probed first.
	VariantPlugin ToolVariant = "plugin"

	// VariantStandalone runs the legacy docker-compose binary directly.
	// Probed as a fallback when the plugin form is unavailable.
	VariantStandalone ToolVariant = "standalone"
)

// String returns the string representation of ToolVariant.
func (v ToolVariant) String() string {
	return string(v)
}

// IsValid checks whether the ToolVariant value is one of the two
// supported invocation forms.
func (v ToolVariant) IsValid() bool {
	switch v {
	case VariantPlugin, VariantStandalone:
		return true
	default:
		return false
	}
}

// IdentityTokens returns the leading argv tokens for this variant.
// These tokens always come first in every built command vector.
func (v ToolVariant) IdentityTokens() []string {
	switch v {
	case VariantPlugin:
		return []string{"docker", "compose"}
	case VariantStandalone:
		return []string{"docker-compose"}
	default:
		return nil
	}
}

// ProjectContext describes the compose project a session operates on.
// It is constructed once at session start and never mutated afterwards;
// every operation reads it, none writes it, so a single context may be
// shared across concurrent operations safely.
type ProjectContext struct {
	// ProjectName is the logical project name, typically the name of the
	// test suite driving the adapter. Must not be empty. The raw name is
	// kept as given; CommandName derives the form used on the command line.
	ProjectName string

	// ComposeFile is the absolute path to the compose file. Relative
	// paths passed to NewProjectContext are resolved against ProjectDir
	// before the context is handed out.
	ComposeFile string

	// ProjectDir is the absolute working directory for every child
	// process. Defaults to the directory containing ComposeFile.
	ProjectDir string
}

// nonWordRe matches runs of characters that compose rejects in project
// names. Each run collapses to a single underscore in CommandName.
var nonWordRe = regexp.MustCompile(`[^a-z0-9]+`)

// NewProjectContext builds an immutable ProjectContext.
//
// The compose file path is resolved to absolute form: relative paths are
// interpreted against projectDir when given, otherwise against the
// current working directory. When projectDir is empty it defaults to the
// directory containing the resolved compose file, mirroring how the
// compose tool itself treats relative paths inside the file.
func NewProjectContext(projectName, composeFile, projectDir string) (*ProjectContext, error) {
	if projectName == "" {
		return nil, errors.New("project name must not be empty")
	}
	if composeFile == "" {
		return nil, errors.New("compose file path must not be empty")
	}

	// The directory is absolutized first so that a relative compose file
	// joined against it always comes out absolute too.
	if projectDir != "" && !filepath.IsAbs(projectDir) {
		abs, err := filepath.Abs(projectDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project directory %q: %w", projectDir, err)
		}
		projectDir = abs
	}

	if !filepath.IsAbs(composeFile) {
		if projectDir != "" {
			composeFile = filepath.Join(projectDir, composeFile)
		} else {
			abs, err := filepath.Abs(composeFile)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve compose file path %q: %w", composeFile, err)
			}
			composeFile = abs
		}
	}

	if projectDir == "" {
		projectDir = filepath.Dir(composeFile)
	}

	return &ProjectContext{
		ProjectName: projectName,
		ComposeFile: composeFile,
		ProjectDir:  projectDir,
	}, nil
}

// CommandName returns the project identifier used on the command line.
// Compose only accepts lowercase alphanumerics and underscores, so the
// raw name is lowercased and every run of other characters becomes a
// single underscore: "My Suite" → "my_suite".
func (p *ProjectContext) CommandName() string {
	return nonWordRe.ReplaceAllString(strings.ToLower(p.ProjectName), "_")
}

// ExposedService holds the host-reachable address of a single published
// container port. Instances are only ever derived from the output of the
// port lookup operation, never constructed by callers.
type ExposedService struct {
	// Host is the address the port is reachable at from the caller's
	// point of view. Wildcard binds are rewritten to the loopback
	// address, or to the container network gateway when the adapter
	// itself runs inside a container.
	Host string `json:"host"`

	// Port is the published host port number, kept as a string because
	// it passes through verbatim from tool output to callers.
	Port string `json:"port"`
}

// String returns the service address in host:port form.
func (e ExposedService) String() string {
	return e.Host + ":" + e.Port
}

// ExitCode defines standard CLI exit codes. These codes allow scripts
// and CI systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitToolNotFound indicates neither compose invocation form is
	// reachable on this host.
	ExitToolNotFound ExitCode = 2

	// ExitVersionUnparseable indicates the compose tool responded to the
	// version probe but no version could be extracted from its banner.
	ExitVersionUnparseable ExitCode = 3

	// ExitProcessFailed indicates a compose child process exited non-zero.
	ExitProcessFailed ExitCode = 4

	// ExitPortNotExposed indicates the requested service port is not
	// published to the host.
	ExitPortNotExposed ExitCode = 5

	// ExitBadResponse indicates tool output did not match the expected
	// shape even though the process itself succeeded.
	ExitBadResponse ExitCode = 6

	// ExitNothingToKill indicates the kill operation found no running
	// container to act on.
	ExitNothingToKill ExitCode = 7
)

// Sentinel errors for the failure classes operations can produce.
// Callers match them with errors.Is; the wrapping types below add the
// operation name and captured diagnostic text.
var (
	// ErrToolNotFound reports that neither the plugin nor the standalone
	// compose form is installed. Fatal at session construction.
	ErrToolNotFound = errors.New("compose tool not found")

	// ErrVersionUnparseable reports that the version banner contained no
	// recognizable dotted version. Fatal at session construction.
	ErrVersionUnparseable = errors.New("compose version not recognized")

	// ErrPortNotExposed reports that the queried service port is not
	// published. Both tool conventions (empty response and ":0") map here.
	ErrPortNotExposed = errors.New("port is not exposed")

	// ErrUnexpectedResponse reports structurally malformed tool output
	// from an otherwise successful process.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrNothingToKill reports that kill ran successfully but had no
	// container to act on. The caller's intent was not met, so this is a
	// failure, not a success.
	ErrNothingToKill = errors.New("no container to kill")
)

// ProcessError reports a compose child process that exited non-zero.
// Output carries the captured diagnostic text verbatim, with trailing
// whitespace trimmed.
type ProcessError struct {
	// Output is the trimmed combined output (or stderr, for operations
	// that capture streams separately) of the failed child process.
	Output string

	// Err is the underlying exec error, usually an *exec.ExitError.
	Err error
}

// Error returns the captured diagnostic text. The raw text is the
// message: callers see exactly what the tool printed.
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	return e.Err.Error()
}

// Unwrap returns the underlying exec error for errors.Is/errors.As.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// OpError wraps any failure with the name of the operation that produced
// it, so callers can distinguish "up failed" from "down failed" without
// parsing message text.
type OpError struct {
	// Op is the compose operation name (e.g. "up", "down", "port").
	Op string

	// Err is the underlying failure.
	Err error
}

// Error returns a message of the form "compose <op> failed: <cause>".
func (e *OpError) Error() string {
	return fmt.Sprintf("compose %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *OpError) Unwrap() error {
	return e.Err
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
