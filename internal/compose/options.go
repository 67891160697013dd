// options.go defines the typed option sets accepted by the operation
// facade. Every option maps 1:1 onto a CLI flag of the corresponding
// compose operation.
//
// Boolean options whose tool default is "off" are plain bools. Options
// that default to "on" (or are version-gated with a default-on policy)
// are *bool so that "unset" is distinguishable from "explicitly false";
// the Bool helper constructs pointers for the explicit cases.
package compose

import "time"

// Bool returns a pointer to b, for filling tri-state option fields.
func Bool(b bool) *bool {
	return &b
}

// Seconds returns a pointer to a whole-second duration, a convenience
// for the *time.Duration timeout fields.
func Seconds(n int) *time.Duration {
	d := time.Duration(n) * time.Second
	return &d
}

// UpOptions configures the bring-up operation. The zero value requests
// the safe defaults: 10 second startup timeout, recreate everything,
// renew anonymous volumes, remove orphans, and wait for services to be
// running where the installed version supports it.
type UpOptions struct {
	// Timeout is the container startup timeout forwarded as --timeout.
	// Unset means 10 seconds. Fractional durations truncate to whole
	// seconds.
	Timeout *time.Duration

	// NoDeps skips starting linked services (--no-deps).
	NoDeps bool

	// ForceRecreate recreates containers even if their configuration and
	// images have not changed (--force-recreate). Unset means true.
	ForceRecreate *bool

	// AlwaysRecreateDeps recreates dependent containers
	// (--always-recreate-deps). Version-gated; unset means true.
	AlwaysRecreateDeps *bool

	// NoRecreate keeps existing containers untouched (--no-recreate).
	NoRecreate bool

	// NoBuild never builds an image, even if it is missing (--no-build).
	NoBuild bool

	// NoStart creates containers without starting them (--no-start).
	NoStart bool

	// Build builds images before starting containers (--build).
	Build bool

	// RenewAnonVolumes recreates anonymous volumes instead of reusing
	// data from previous containers (--renew-anon-volumes).
	// Version-gated; unset means true.
	RenewAnonVolumes *bool

	// RemoveOrphans removes containers for services not defined in the
	// compose file (--remove-orphans). Unset means true.
	RemoveOrphans *bool

	// Wait blocks until services are running or healthy (--wait).
	// Version-gated; unset means true.
	Wait *bool

	// Services restricts the operation to the named services.
	// Empty means all services.
	Services []string
}

// RemoveImages enumerates the accepted values of the teardown --rmi flag.
const (
	// RemoveImagesAll removes every image used by any service.
	RemoveImagesAll = "all"

	// RemoveImagesLocal removes only images without a custom tag.
	RemoveImagesLocal = "local"
)

// DownOptions configures teardown. The zero value requests the cleanup
// defaults used in suite teardown: remove volumes and orphans.
type DownOptions struct {
	// Timeout is the shutdown timeout forwarded as --timeout.
	// Version-gated; unset means 10 seconds where supported.
	Timeout *time.Duration

	// RemoveImages forwards --rmi. Valid values are "" (keep images),
	// RemoveImagesAll, and RemoveImagesLocal.
	RemoveImages string

	// Volumes removes named and anonymous volumes (--volumes).
	// Unset means true.
	Volumes *bool

	// RemoveOrphans removes containers for services not defined in the
	// compose file (--remove-orphans). Unset means true.
	RemoveOrphans *bool
}

// BuildOptions configures image building.
type BuildOptions struct {
	// NoCache disables the build cache (--no-cache).
	NoCache bool

	// Pull always attempts to pull newer base images (--pull).
	Pull bool

	// Args are build-time variables, emitted as --build-arg key=value
	// in sorted key order so the built vector is deterministic.
	Args map[string]string

	// Services restricts the build to the named services.
	Services []string
}

// PullOptions configures image pulling.
type PullOptions struct {
	// IgnoreFailures tolerates individual image pull failures
	// (--ignore-pull-failures).
	IgnoreFailures bool

	// IncludeDeps also pulls images for declared dependencies
	// (--include-deps).
	IncludeDeps bool

	// Quiet suppresses progress output (--quiet).
	Quiet bool

	// Services restricts the pull to the named services.
	Services []string
}

// StopOptions configures the stop and restart operations.
type StopOptions struct {
	// Timeout is the shutdown timeout forwarded as --timeout.
	// Omitted when unset, leaving the tool's own default in force.
	Timeout *time.Duration

	// Services restricts the operation to the named services.
	Services []string
}

// KillOptions configures the force-kill operation.
type KillOptions struct {
	// Signal is the signal to send, forwarded as -s (e.g. "SIGKILL").
	// Empty leaves the tool's default signal in force.
	Signal string

	// Services restricts the kill to the named services.
	Services []string
}

// LogsOptions configures log retrieval.
type LogsOptions struct {
	// NoColor disables ANSI color output (--no-color).
	NoColor bool

	// Timestamps prefixes each line with a timestamp (--timestamps).
	Timestamps bool

	// Tail limits output to the given number of trailing lines per
	// container, forwarded as --tail. Zero means all lines.
	Tail int

	// Services restricts log retrieval to the named services.
	Services []string
}

// PortOptions configures the exposed-port lookup.
type PortOptions struct {
	// Protocol selects which protocol's mapping to query (--protocol).
	// Empty leaves the tool's default (tcp) in force.
	Protocol string

	// Index selects the container instance when a service is scaled
	// (--index). Zero leaves the tool's default (1) in force.
	Index int
}
