package compose

import (
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/suitedock/internal/model"
)

// newTestBuilder constructs a Builder around a fixed project and the
// given variant/version pair. Vector tests assert exact token sequences,
// so the project inputs are chosen to exercise name normalization too.
func newTestBuilder(t *testing.T, variant model.ToolVariant, version string) *Builder {
	t.Helper()

	project, err := model.NewProjectContext("My Suite", "/srv/app/docker-compose.yml", "/srv/app")
	require.NoError(t, err)

	return NewBuilder(project, &Tool{
		Variant: variant,
		Version: ToolVersion{Display: version, Version: semver.MustParse(version)},
	})
}

// TestBuilder_Up_DefaultsOnModernVersion verifies the exact bring-up
// vector for a zero-value option set on a plugin-generation tool: every
// default-on flag present, in declaration order, no warnings.
func TestBuilder_Up_DefaultsOnModernVersion(t *testing.T) {
	b := newTestBuilder(t, model.VariantPlugin, "2.24.5")

	argv, warnings := b.Up(UpOptions{})

	assert.Empty(t, warnings)
	assert.Equal(t, []string{
		"docker", "compose",
		"--project-name", "my_suite",
		"--file", "/srv/app/docker-compose.yml",
		"up",
		"--timeout", "10",
		"-d",
		"--force-recreate",
		"--always-recreate-deps",
		"--renew-anon-volumes",
		"--remove-orphans",
		"--wait",
	}, argv)
}

// TestBuilder_Up_OldStandaloneOmitsGatedFlags verifies that a 1.17
// standalone installation gets none of the version-gated flags and, with
// nothing explicitly requested, no warnings either.
func TestBuilder_Up_OldStandaloneOmitsGatedFlags(t *testing.T) {
	b := newTestBuilder(t, model.VariantStandalone, "1.17.1")

	argv, warnings := b.Up(UpOptions{})

	assert.Empty(t, warnings)
	assert.Equal(t, []string{
		"docker-compose",
		"--project-name", "my_suite",
		"--file", "/srv/app/docker-compose.yml",
		"up",
		"--timeout", "10",
		"-d",
		"--force-recreate",
		"--remove-orphans",
	}, argv)
}

// TestBuilder_Up_ExplicitRequestOnOldVersionWarns verifies the degrade
// path: explicitly requesting gated flags on a version that lacks them
// omits the flags and reports one warning per flag.
func TestBuilder_Up_ExplicitRequestOnOldVersionWarns(t *testing.T) {
	b := newTestBuilder(t, model.VariantStandalone, "1.17.1")

	argv, warnings := b.Up(UpOptions{
		AlwaysRecreateDeps: Bool(true),
		RenewAnonVolumes:   Bool(true),
		Wait:               Bool(true),
	})

	assert.NotContains(t, argv, "--always-recreate-deps")
	assert.NotContains(t, argv, "--renew-anon-volumes")
	assert.NotContains(t, argv, "--wait")

	require.Len(t, warnings, 3)
	assert.Equal(t, "--always-recreate-deps", warnings[0].Flag)
	assert.Equal(t, "--renew-anon-volumes", warnings[1].Flag)
	assert.Equal(t, "--wait", warnings[2].Flag)
	for _, w := range warnings {
		assert.Equal(t, "up", w.Op)
		assert.Equal(t, "1.17.1", w.Version)
	}
}

// TestBuilder_Up_FractionalTimeoutTruncates verifies that fractional
// seconds truncate toward zero rather than round.
func TestBuilder_Up_FractionalTimeoutTruncates(t *testing.T) {
	b := newTestBuilder(t, model.VariantPlugin, "2.24.5")

	d := 1900 * time.Millisecond
	argv, _ := b.Up(UpOptions{Timeout: &d})

	assert.Contains(t, argv, "--timeout")
	assert.Equal(t, "1", argv[indexOf(t, argv, "--timeout")+1])
}

// TestBuilder_Up_OptionsAndServices verifies the fixed flag positions
// and that service names trail the whole vector.
func TestBuilder_Up_OptionsAndServices(t *testing.T) {
	b := newTestBuilder(t, model.VariantPlugin, "2.24.5")

	argv, warnings := b.Up(UpOptions{
		NoDeps:        true,
		ForceRecreate: Bool(false),
		NoBuild:       true,
		Build:         true,
		RemoveOrphans: Bool(false),
		Wait:          Bool(false),
		Services:      []string{"db", "web"},
	})

	assert.Empty(t, warnings)
	assert.Equal(t, []string{
		"docker", "compose",
		"--project-name", "my_suite",
		"--file", "/srv/app/docker-compose.yml",
		"up",
		"--timeout", "10",
		"-d",
		"--no-deps",
		"--always-recreate-deps",
		"--no-build",
		"--build",
		"--renew-anon-volumes",
		"db", "web",
	}, argv)
}

// TestBuilder_Down_Defaults verifies that a zero-value teardown removes
// volumes and orphans and carries the 10 second shutdown timeout.
func TestBuilder_Down_Defaults(t *testing.T) {
	b := newTestBuilder(t, model.VariantPlugin, "2.24.5")

	argv, warnings, err := b.Down(DownOptions{})
	require.NoError(t, err)

	assert.Empty(t, warnings)
	assert.Equal(t, []string{
		"docker", "compose",
		"--project-name", "my_suite",
		"--file", "/srv/app/docker-compose.yml",
		"down",
		"--timeout", "10",
		"--volumes",
		"--remove-orphans",
	}, argv)
}

// TestBuilder_Down_OldVersionOmitsTimeout verifies that below the 1.18.0
// threshold the timeout flag disappears, silently when unset and with a
// warning when requested.
func TestBuilder_Down_OldVersionOmitsTimeout(t *testing.T) {
	b := newTestBuilder(t, model.VariantStandalone, "1.17.1")

	argv, warnings, err := b.Down(DownOptions{})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.NotContains(t, argv, "--timeout")

	argv, warnings, err = b.Down(DownOptions{Timeout: Seconds(30)})
	require.NoError(t, err)
	assert.NotContains(t, argv, "--timeout")
	require.Len(t, warnings, 1)
	assert.Equal(t, "--timeout", warnings[0].Flag)
}

// TestBuilder_Down_RemoveImages verifies the --rmi value validation and
// emission.
func TestBuilder_Down_RemoveImages(t *testing.T) {
	b := newTestBuilder(t, model.VariantPlugin, "2.24.5")

	argv, _, err := b.Down(DownOptions{RemoveImages: RemoveImagesAll})
	require.NoError(t, err)
	assert.Contains(t, argv, "--rmi")
	assert.Contains(t, argv, "all")

	_, _, err = b.Down(DownOptions{RemoveImages: "dangling"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --rmi value "dangling"`)
}

// TestBuilder_Build_SortedArgs verifies that build args come out in
// sorted key order regardless of map iteration order.
func TestBuilder_Build_SortedArgs(t *testing.T) {
	b := newTestBuilder(t, model.VariantPlugin, "2.24.5")

	argv := b.Build(BuildOptions{
		NoCache: true,
		Pull:    true,
		Args: map[string]string{
			"VERSION":  "1.2.3",
			"BASE_TAG": "bookworm",
		},
		Services: []string{"web"},
	})

	assert.Equal(t, []string{
		"docker", "compose",
		"--project-name", "my_suite",
		"--file", "/srv/app/docker-compose.yml",
		"build",
		"--no-cache",
		"--pull",
		"--build-arg", "BASE_TAG=bookworm",
		"--build-arg", "VERSION=1.2.3",
		"web",
	}, argv)
}

// TestBuilder_Pull verifies the pull flag set.
func TestBuilder_Pull(t *testing.T) {
	b := newTestBuilder(t, model.VariantPlugin, "2.24.5")

	argv := b.Pull(PullOptions{IgnoreFailures: true, IncludeDeps: true, Quiet: true, Services: []string{"db"}})

	assert.Equal(t, []string{
		"docker", "compose",
		"--project-name", "my_suite",
		"--file", "/srv/app/docker-compose.yml",
		"pull",
		"--ignore-pull-failures",
		"--include-deps",
		"--quiet",
		"db",
	}, argv)
}

// TestBuilder_LifecycleVectors spot-checks the simpler operations that
// share the base prefix and only append services or a single flag.
func TestBuilder_LifecycleVectors(t *testing.T) {
	b := newTestBuilder(t, model.VariantStandalone, "1.25.0")
	prefix := []string{
		"docker-compose",
		"--project-name", "my_suite",
		"--file", "/srv/app/docker-compose.yml",
	}

	assert.Equal(t, append(append([]string{}, prefix...), "start", "web"), b.Start([]string{"web"}))
	assert.Equal(t, append(append([]string{}, prefix...), "pause"), b.Pause(nil))
	assert.Equal(t, append(append([]string{}, prefix...), "unpause", "db"), b.Unpause([]string{"db"}))
	assert.Equal(t, append(append([]string{}, prefix...), "stop", "--timeout", "5", "web"),
		b.Stop(StopOptions{Timeout: Seconds(5), Services: []string{"web"}}))
	assert.Equal(t, append(append([]string{}, prefix...), "restart"), b.Restart(StopOptions{}))
	assert.Equal(t, append(append([]string{}, prefix...), "kill", "-s", "SIGKILL", "web"),
		b.Kill(KillOptions{Signal: "SIGKILL", Services: []string{"web"}}))
}

// TestBuilder_Logs verifies the log retrieval flags.
func TestBuilder_Logs(t *testing.T) {
	b := newTestBuilder(t, model.VariantPlugin, "2.24.5")

	argv := b.Logs(LogsOptions{NoColor: true, Timestamps: true, Tail: 100, Services: []string{"web"}})

	assert.Equal(t, []string{
		"docker", "compose",
		"--project-name", "my_suite",
		"--file", "/srv/app/docker-compose.yml",
		"logs",
		"--no-color",
		"--timestamps",
		"--tail", "100",
		"web",
	}, argv)
}

// TestBuilder_Port verifies that the service and container port trail
// the optional flags as positionals.
func TestBuilder_Port(t *testing.T) {
	b := newTestBuilder(t, model.VariantPlugin, "2.24.5")

	argv := b.Port("web", 8080, PortOptions{Protocol: "udp", Index: 2})

	assert.Equal(t, []string{
		"docker", "compose",
		"--project-name", "my_suite",
		"--file", "/srv/app/docker-compose.yml",
		"port",
		"--protocol", "udp",
		"--index", "2",
		"web", "8080",
	}, argv)
}

// indexOf returns the position of token in argv, failing the test when
// absent.
func indexOf(t *testing.T, argv []string, token string) int {
	t.Helper()
	for i, a := range argv {
		if a == token {
			return i
		}
	}
	t.Fatalf("token %q not found in %v", token, argv)
	return -1
}
