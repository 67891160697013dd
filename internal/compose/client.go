// client.go is the operation facade: one method per compose operation,
// composing the version resolver, capability gate, command builder,
// process executor, and result parsers.
//
// Every method is synchronous and spawns exactly one child process.
// Failures come back as *model.OpError wrapping the underlying typed
// error, so callers can tell "up failed" from "down failed" without
// parsing message text.
package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mmr-tortoise/suitedock/internal/docker"
	"github.com/mmr-tortoise/suitedock/internal/model"
)

// Client drives one compose project. Construct it once per session
// (one per logical test-suite run); the tool variant and version are
// resolved on first use and cached for the Client's lifetime.
//
// A Client is safe for concurrent use: the project context is read-only,
// vectors and outcomes are per-call, and the one-time version resolution
// is serialized so racing first calls cannot spawn duplicate probes.
type Client struct {
	project *model.ProjectContext
	exec    *Executor

	// resolveOnce guards the single version resolution per session.
	resolveOnce sync.Once
	tool        *Tool
	resolveErr  error

	// wildcardHost resolves the caller-reachable address substituted
	// for a wildcard bind in port lookups. Overridable in tests.
	wildcardHost func(ctx context.Context) (string, error)
}

// NewClient creates a Client for the given project context.
func NewClient(project *model.ProjectContext) *Client {
	return &Client{
		project:      project,
		exec:         NewExecutor(project.ProjectDir),
		wildcardHost: resolveWildcardHost,
	}
}

// resolveWildcardHost picks the address callers should use instead of
// the wildcard bind address. Outside a container that is loopback;
// inside a container the host's published ports are only reachable via
// the container network gateway.
func resolveWildcardHost(ctx context.Context) (string, error) {
	if !docker.InsideContainer() {
		return loopbackHost, nil
	}
	return docker.GatewayHost(ctx)
}

// Tool resolves (once) and returns the installed compose tool.
func (c *Client) Tool(ctx context.Context) (*Tool, error) {
	c.resolveOnce.Do(func() {
		c.tool, c.resolveErr = resolveTool(ctx, c.exec)
		if c.resolveErr == nil {
			log.Debug("resolved compose tool",
				"variant", c.tool.Variant,
				"version", c.tool.Version.String())
		}
	})
	return c.tool, c.resolveErr
}

// Project returns the session's project context.
func (c *Client) Project() *model.ProjectContext {
	return c.project
}

// builder resolves the tool and returns a Builder bound to it.
func (c *Client) builder(ctx context.Context) (*Builder, error) {
	tool, err := c.Tool(ctx)
	if err != nil {
		return nil, err
	}
	return NewBuilder(c.project, tool), nil
}

// logWarnings reports compatibility degradations at warning level.
// The operation still proceeds; these are for the caller's log only.
func logWarnings(warnings []Warning) {
	for _, w := range warnings {
		log.Warn("option not supported by installed compose version",
			"op", w.Op, "flag", w.Flag, "version", w.Version)
	}
}

// run executes a vector under the merged-output policy and wraps any
// failure in an operation-named error.
func (c *Client) run(ctx context.Context, op string, argv []string) (string, error) {
	log.Debug("running compose command", "op", op, "argv", strings.Join(argv, " "))
	out, err := c.exec.Run(ctx, argv)
	if err != nil {
		return "", &model.OpError{Op: op, Err: err}
	}
	return out, nil
}

// Version resolves the installed tool and returns its version.
func (c *Client) Version(ctx context.Context) (ToolVersion, error) {
	tool, err := c.Tool(ctx)
	if err != nil {
		return ToolVersion{}, &model.OpError{Op: "version", Err: err}
	}
	return tool.Version, nil
}

// Up builds, (re)creates, and starts the project's services in detached
// mode. Version-gated options the installed tool cannot honor are
// logged as warnings and dropped.
func (c *Client) Up(ctx context.Context, opts UpOptions) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "up", Err: err}
	}
	argv, warnings := b.Up(opts)
	logWarnings(warnings)
	_, err = c.run(ctx, "up", argv)
	return err
}

// Down stops and removes containers, networks, and (by default) volumes
// created by Up.
func (c *Client) Down(ctx context.Context, opts DownOptions) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "down", Err: err}
	}
	argv, warnings, err := b.Down(opts)
	if err != nil {
		return &model.OpError{Op: "down", Err: err}
	}
	logWarnings(warnings)
	_, err = c.run(ctx, "down", argv)
	return err
}

// Build builds images for the named services, or all services when the
// list is empty.
func (c *Client) Build(ctx context.Context, opts BuildOptions) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "build", Err: err}
	}
	_, err = c.run(ctx, "build", b.Build(opts))
	return err
}

// Pull pulls images for the named services, or all services when the
// list is empty.
func (c *Client) Pull(ctx context.Context, opts PullOptions) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "pull", Err: err}
	}
	_, err = c.run(ctx, "pull", b.Pull(opts))
	return err
}

// Start starts existing containers for the named services.
func (c *Client) Start(ctx context.Context, services ...string) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "start", Err: err}
	}
	_, err = c.run(ctx, "start", b.Start(services))
	return err
}

// Stop stops running containers without removing them.
func (c *Client) Stop(ctx context.Context, opts StopOptions) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "stop", Err: err}
	}
	_, err = c.run(ctx, "stop", b.Stop(opts))
	return err
}

// Restart restarts the project's containers.
func (c *Client) Restart(ctx context.Context, opts StopOptions) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "restart", Err: err}
	}
	_, err = c.run(ctx, "restart", b.Restart(opts))
	return err
}

// Pause pauses running containers for the named services.
func (c *Client) Pause(ctx context.Context, services ...string) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "pause", Err: err}
	}
	_, err = c.run(ctx, "pause", b.Pause(services))
	return err
}

// Unpause resumes paused containers for the named services.
func (c *Client) Unpause(ctx context.Context, services ...string) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "unpause", Err: err}
	}
	_, err = c.run(ctx, "unpause", b.Unpause(services))
	return err
}

// Kill force-stops containers. A run that exits 0 but reports nothing
// to kill is escalated to a failure (model.ErrNothingToKill): the
// caller asked to stop something and nothing was stopped.
func (c *Client) Kill(ctx context.Context, opts KillOptions) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "kill", Err: err}
	}
	out, err := c.run(ctx, "kill", b.Kill(opts))
	if err != nil {
		return err
	}
	if IsKillNoOp(out) {
		return &model.OpError{Op: "kill", Err: model.ErrNothingToKill}
	}
	return nil
}

// Logs returns the captured log text for the named services. Standard
// output and standard error are captured separately here because the
// stdout text is the operation's result.
func (c *Client) Logs(ctx context.Context, opts LogsOptions) (string, error) {
	b, err := c.builder(ctx)
	if err != nil {
		return "", &model.OpError{Op: "logs", Err: err}
	}
	argv := b.Logs(opts)
	log.Debug("running compose command", "op", "logs", "argv", strings.Join(argv, " "))
	out, err := c.exec.Capture(ctx, argv)
	if err != nil {
		return "", &model.OpError{Op: "logs", Err: err}
	}
	return out, nil
}

// LogsToFile appends the log text for the named services to the file at
// path instead of returning it. The file is opened in append mode and
// closed on every exit path.
func (c *Client) LogsToFile(ctx context.Context, opts LogsOptions, path string) error {
	b, err := c.builder(ctx)
	if err != nil {
		return &model.OpError{Op: "logs", Err: err}
	}
	if err := c.exec.CaptureToFile(ctx, b.Logs(opts), path); err != nil {
		return &model.OpError{Op: "logs", Err: err}
	}
	return nil
}

// Port looks up the host address and port for a port published by a
// service. Wildcard bind addresses are rewritten to an address the
// caller can actually reach: loopback, or the container network gateway
// when the adapter itself runs inside a container.
//
// Only the wildcard bind is rewritten. A port published on an explicit
// interface names that interface on purpose, so its address is reported
// as-is even when running inside a container.
func (c *Client) Port(ctx context.Context, service string, port int, opts PortOptions) (model.ExposedService, error) {
	if service == "" {
		return model.ExposedService{}, &model.OpError{
			Op: "port", Err: errors.New("service name must not be empty"),
		}
	}

	b, err := c.builder(ctx)
	if err != nil {
		return model.ExposedService{}, &model.OpError{Op: "port", Err: err}
	}

	argv := b.Port(service, port, opts)
	log.Debug("running compose command", "op", "port", "argv", strings.Join(argv, " "))
	out, err := c.exec.Capture(ctx, argv)
	if err != nil {
		return model.ExposedService{}, &model.OpError{Op: "port", Err: err}
	}

	svc, err := ParseExposedPort(out)
	if err != nil {
		if errors.Is(err, model.ErrPortNotExposed) {
			err = fmt.Errorf("%w: port %d of service %q", model.ErrPortNotExposed, port, service)
		}
		return model.ExposedService{}, &model.OpError{Op: "port", Err: err}
	}

	if svc.Host == wildcardHost {
		host, err := c.wildcardHost(ctx)
		if err != nil {
			return model.ExposedService{}, &model.OpError{Op: "port", Err: err}
		}
		svc.Host = host
	}

	return svc, nil
}
