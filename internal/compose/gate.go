// gate.go implements the capability gate: the pure mapping from
// (requested option, resolved tool version) to a flag inclusion decision.
//
// The compatibility matrix is a declarative table rather than scattered
// conditionals, so the full set of version-gated flags can be read (and
// tested) in one place. When the installed version does not support a
// flag the caller explicitly requested, the gate never fails the
// operation: it records a warning and omits the flag, degrading the
// command rather than refusing it.
package compose

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
)

// gatedFlag is one row of the compatibility table: a CLI flag, the
// minimum tool version that understands it, and the value assumed when
// the caller leaves the option unset.
type gatedFlag struct {
	// name is the literal CLI flag token, e.g. "--always-recreate-deps".
	name string

	// min is the first tool version that accepts the flag.
	min *semver.Version

	// defaultOn is the tri-state default: when the caller does not set
	// the option at all, the flag is included iff defaultOn is true.
	// Several safety-relevant flags deliberately default to enabled.
	defaultOn bool
}

// The compatibility table. Thresholds come from the tool's release
// history and must stay in sync with the flags the builders emit.
var (
	flagAlwaysRecreateDeps = gatedFlag{
		name:      "--always-recreate-deps",
		min:       semver.MustParse("1.19.0"),
		defaultOn: true,
	}

	flagRenewAnonVolumes = gatedFlag{
		name:      "--renew-anon-volumes",
		min:       semver.MustParse("1.19.0"),
		defaultOn: true,
	}

	flagWait = gatedFlag{
		name:      "--wait",
		min:       semver.MustParse("2.0.0"),
		defaultOn: true,
	}

	flagDownTimeout = gatedFlag{
		name: "--timeout",
		min:  semver.MustParse("1.18.0"),
		// Takes an argument; defaultOn is unused for argument flags.
	}
)

// Warning records a non-fatal compatibility degradation: the caller
// requested an option the installed tool version cannot honor, and the
// operation proceeded without the flag.
type Warning struct {
	// Op is the compose operation the flag belongs to.
	Op string

	// Flag is the unsupported CLI flag token.
	Flag string

	// Version is the resolved tool version that lacks support.
	Version string
}

// String formats the warning the way the CLI logs it.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s is not supported by compose version %s",
		w.Op, w.Flag, w.Version)
}

// gateBool decides whether a tri-state boolean option becomes a flag.
//
// requested follows the unset/true/false convention: nil means the
// caller did not set the option, in which case the table default
// applies. Outcomes:
//
//   - version supports the flag, option unset      → include iff defaultOn
//   - version supports the flag, option set        → include iff true
//   - version lacks the flag, option unset         → omit silently
//   - version lacks the flag, option explicitly set → omit, record warning
func gateBool(op string, f gatedFlag, requested *bool, v ToolVersion) (include bool, warn *Warning) {
	if v.AtLeast(f.min) {
		if requested == nil {
			return f.defaultOn, nil
		}
		return *requested, nil
	}

	if requested != nil {
		return false, &Warning{Op: op, Flag: f.name, Version: v.String()}
	}
	return false, nil
}

// gateDownTimeout decides the teardown --timeout flag, which both takes
// an argument and is version-gated. When the installed version supports
// it, an unset option falls back to the tool's documented 10 second
// default so teardown always has a bounded shutdown window. When the
// version lacks support, an explicitly requested timeout produces a
// warning and the flag is omitted.
func gateDownTimeout(op string, requested *time.Duration, v ToolVersion) (d time.Duration, include bool, warn *Warning) {
	if v.AtLeast(flagDownTimeout.min) {
		if requested == nil {
			return 10 * time.Second, true, nil
		}
		return *requested, true, nil
	}

	if requested != nil {
		return 0, false, &Warning{Op: op, Flag: flagDownTimeout.name, Version: v.String()}
	}
	return 0, false, nil
}
