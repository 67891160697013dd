// command.go assembles complete argument vectors for compose operations.
//
// Token order is fixed and deterministic, because callers (and the tests
// in command_test.go) assert on exact vectors:
//
//	[identity tokens] [--project-name <name>] [--file <path>] [operation]
//	[operation-specific fixed flags] [gated optional flags, declaration order]
//	[trailing service names]
//
// Vectors are built fresh per call and never cached.
package compose

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/mmr-tortoise/suitedock/internal/model"
)

// Builder assembles command vectors for one project against one resolved
// tool installation. It holds only immutable inputs and is safe for
// concurrent use.
type Builder struct {
	project *model.ProjectContext
	tool    *Tool
}

// NewBuilder creates a Builder for the given project and resolved tool.
func NewBuilder(project *model.ProjectContext, tool *Tool) *Builder {
	return &Builder{project: project, tool: tool}
}

// base returns the common prefix of every operation vector: the identity
// tokens for the resolved variant, the normalized project name, the
// compose file path, and the operation name.
func (b *Builder) base(op string) []string {
	argv := append([]string{}, b.tool.Variant.IdentityTokens()...)
	argv = append(argv,
		"--project-name", b.project.CommandName(),
		"--file", b.project.ComposeFile,
		op,
	)
	return argv
}

// seconds renders a duration as a whole number of seconds, truncating
// toward zero. "1.9 seconds" becomes "1", never "2".
func seconds(d time.Duration) string {
	return strconv.Itoa(int(d / time.Second))
}

// Up builds the bring-up vector. Gated flags that the installed version
// does not support are omitted; if the caller asked for one explicitly,
// a warning is returned for the facade to log.
func (b *Builder) Up(opts UpOptions) ([]string, []Warning) {
	var warnings []Warning

	timeout := 10 * time.Second
	if opts.Timeout != nil {
		timeout = *opts.Timeout
	}

	argv := b.base("up")
	argv = append(argv, "--timeout", seconds(timeout), "-d")

	if opts.NoDeps {
		argv = append(argv, "--no-deps")
	}
	if opts.ForceRecreate == nil || *opts.ForceRecreate {
		argv = append(argv, "--force-recreate")
	}

	if include, warn := gateBool("up", flagAlwaysRecreateDeps, opts.AlwaysRecreateDeps, b.tool.Version); include {
		argv = append(argv, flagAlwaysRecreateDeps.name)
	} else if warn != nil {
		warnings = append(warnings, *warn)
	}

	if opts.NoRecreate {
		argv = append(argv, "--no-recreate")
	}
	if opts.NoBuild {
		argv = append(argv, "--no-build")
	}
	if opts.NoStart {
		argv = append(argv, "--no-start")
	}
	if opts.Build {
		argv = append(argv, "--build")
	}

	if include, warn := gateBool("up", flagRenewAnonVolumes, opts.RenewAnonVolumes, b.tool.Version); include {
		argv = append(argv, flagRenewAnonVolumes.name)
	} else if warn != nil {
		warnings = append(warnings, *warn)
	}

	if opts.RemoveOrphans == nil || *opts.RemoveOrphans {
		argv = append(argv, "--remove-orphans")
	}

	if include, warn := gateBool("up", flagWait, opts.Wait, b.tool.Version); include {
		argv = append(argv, flagWait.name)
	} else if warn != nil {
		warnings = append(warnings, *warn)
	}

	argv = append(argv, opts.Services...)
	return argv, warnings
}

// Down builds the teardown vector. --volumes and --remove-orphans are
// included by default so that suite teardown leaves a clean host even
// when the caller passes no options at all.
func (b *Builder) Down(opts DownOptions) ([]string, []Warning, error) {
	switch opts.RemoveImages {
	case "", RemoveImagesAll, RemoveImagesLocal:
	default:
		return nil, nil, fmt.Errorf("invalid --rmi value %q (valid: all, local)", opts.RemoveImages)
	}

	var warnings []Warning
	argv := b.base("down")

	if d, include, warn := gateDownTimeout("down", opts.Timeout, b.tool.Version); include {
		argv = append(argv, "--timeout", seconds(d))
	} else if warn != nil {
		warnings = append(warnings, *warn)
	}

	if opts.RemoveImages != "" {
		argv = append(argv, "--rmi", opts.RemoveImages)
	}
	if opts.Volumes == nil || *opts.Volumes {
		argv = append(argv, "--volumes")
	}
	if opts.RemoveOrphans == nil || *opts.RemoveOrphans {
		argv = append(argv, "--remove-orphans")
	}

	return argv, warnings, nil
}

// Build builds the image-build vector. Build args are emitted in sorted
// key order to keep the vector deterministic for a given option set.
func (b *Builder) Build(opts BuildOptions) []string {
	argv := b.base("build")

	if opts.NoCache {
		argv = append(argv, "--no-cache")
	}
	if opts.Pull {
		argv = append(argv, "--pull")
	}

	keys := make([]string, 0, len(opts.Args))
	for k := range opts.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		argv = append(argv, "--build-arg", k+"="+opts.Args[k])
	}

	argv = append(argv, opts.Services...)
	return argv
}

// Pull builds the image-pull vector.
func (b *Builder) Pull(opts PullOptions) []string {
	argv := b.base("pull")

	if opts.IgnoreFailures {
		argv = append(argv, "--ignore-pull-failures")
	}
	if opts.IncludeDeps {
		argv = append(argv, "--include-deps")
	}
	if opts.Quiet {
		argv = append(argv, "--quiet")
	}

	argv = append(argv, opts.Services...)
	return argv
}

// Start builds the start vector for previously created containers.
func (b *Builder) Start(services []string) []string {
	return append(b.base("start"), services...)
}

// Stop builds the stop vector.
func (b *Builder) Stop(opts StopOptions) []string {
	argv := b.base("stop")
	if opts.Timeout != nil {
		argv = append(argv, "--timeout", seconds(*opts.Timeout))
	}
	return append(argv, opts.Services...)
}

// Restart builds the restart vector.
func (b *Builder) Restart(opts StopOptions) []string {
	argv := b.base("restart")
	if opts.Timeout != nil {
		argv = append(argv, "--timeout", seconds(*opts.Timeout))
	}
	return append(argv, opts.Services...)
}

// Kill builds the force-kill vector.
func (b *Builder) Kill(opts KillOptions) []string {
	argv := b.base("kill")
	if opts.Signal != "" {
		argv = append(argv, "-s", opts.Signal)
	}
	return append(argv, opts.Services...)
}

// Pause builds the pause vector.
func (b *Builder) Pause(services []string) []string {
	return append(b.base("pause"), services...)
}

// Unpause builds the unpause vector.
func (b *Builder) Unpause(services []string) []string {
	return append(b.base("unpause"), services...)
}

// Logs builds the log-retrieval vector.
func (b *Builder) Logs(opts LogsOptions) []string {
	argv := b.base("logs")

	if opts.NoColor {
		argv = append(argv, "--no-color")
	}
	if opts.Timestamps {
		argv = append(argv, "--timestamps")
	}
	if opts.Tail > 0 {
		argv = append(argv, "--tail", strconv.Itoa(opts.Tail))
	}

	return append(argv, opts.Services...)
}

// Port builds the exposed-port lookup vector. The service name and the
// container port are trailing positionals, after the optional flags.
func (b *Builder) Port(service string, port int, opts PortOptions) []string {
	argv := b.base("port")

	if opts.Protocol != "" {
		argv = append(argv, "--protocol", opts.Protocol)
	}
	if opts.Index > 0 {
		argv = append(argv, "--index", strconv.Itoa(opts.Index))
	}

	return append(argv, service, strconv.Itoa(port))
}
