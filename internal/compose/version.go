// version.go resolves which form of the compose tool is installed and
// which version it is. Resolution runs at most once per Client: the two
// invocation forms are probed in a fixed priority order (plugin first,
// standalone second) and the first banner that yields a parseable version
// wins. A reachable tool with an unreadable banner is a fatal error, not
// a reason to fall through to the next form.
package compose

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/mmr-tortoise/suitedock/internal/model"
)

// ToolVersion pairs a parsed semantic version with the original banner
// text it was extracted from. Immutable once resolved.
type ToolVersion struct {
	// Display is the trimmed version banner as the tool printed it,
	// e.g. "Docker Compose version v2.24.5".
	Display string

	// Version is the parsed semantic version used for all capability
	// comparisons.
	Version *semver.Version
}

// String returns the parsed version in dotted form.
func (t ToolVersion) String() string {
	return t.Version.String()
}

// AtLeast reports whether the resolved version is greater than or equal
// to min. This is the only comparison the capability gate needs.
func (t ToolVersion) AtLeast(min *semver.Version) bool {
	return !t.Version.LessThan(min)
}

// Tool describes a resolved compose installation: the invocation variant
// plus its version. Set exactly once per session and never re-probed.
type Tool struct {
	Variant model.ToolVariant
	Version ToolVersion
}

// versionRe matches the first dotted numeric run in a version banner:
// one or more digits followed by zero or more ".digits" groups. It
// deliberately ignores any leading "v" and trailing build metadata,
// which differ between the two tool variants.
var versionRe = regexp.MustCompile(`\d+(?:\.\d+)*`)

// ExtractVersion parses the first dotted numeric substring out of a
// version banner. It returns model.ErrVersionUnparseable (wrapped with
// detail) when no such substring exists or the extracted text is not a
// syntactically valid version.
func ExtractVersion(banner string) (*semver.Version, error) {
	match := versionRe.FindString(banner)
	if match == "" {
		return nil, fmt.Errorf("%w: no version number in %q",
			model.ErrVersionUnparseable, strings.TrimSpace(banner))
	}

	v, err := semver.NewVersion(match)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", model.ErrVersionUnparseable, match, err)
	}
	return v, nil
}

// versionProbe describes one invocation form and the exact argument
// vector that queries its version. The plugin form uses the "version"
// subcommand while the standalone binary uses the "--version" flag.
type versionProbe struct {
	variant model.ToolVariant
	argv    []string
}

// probeOrder is the fixed resolution priority: the plugin form is the
// modern installation shape and is tried first; the standalone binary is
// the fallback.
var probeOrder = []versionProbe{
	{model.VariantPlugin, []string{"docker", "compose", "version"}},
	{model.VariantStandalone, []string{"docker-compose", "--version"}},
}

// resolveTool probes the compose installations in priority order and
// returns the first one that answers the version query. The probe runs
// with no standard input attached, like every other child process.
//
// Failure modes:
//   - neither form is reachable → model.ErrToolNotFound (fatal)
//   - a form answered but its banner had no version → model.ErrVersionUnparseable (fatal)
func resolveTool(ctx context.Context, exec *Executor) (*Tool, error) {
	var lastErr error
	for _, probe := range probeOrder {
		out, err := exec.Capture(ctx, probe.argv)
		if err != nil {
			lastErr = err
			continue
		}

		v, err := ExtractVersion(out)
		if err != nil {
			// The tool responded, so falling through to the other form
			// would hide a broken installation. Surface it instead.
			return nil, err
		}

		return &Tool{
			Variant: probe.variant,
			Version: ToolVersion{Display: strings.TrimSpace(out), Version: v},
		}, nil
	}

	return nil, fmt.Errorf(`%w: tried "docker compose" and "docker-compose": %v`,
		model.ErrToolNotFound, lastErr)
}
