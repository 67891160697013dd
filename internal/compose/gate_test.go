package compose

import (
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toolVersion is a test helper constructing a ToolVersion from a dotted
// string.
func toolVersion(t *testing.T, s string) ToolVersion {
	t.Helper()
	return ToolVersion{Display: s, Version: semver.MustParse(s)}
}

// TestGateBool walks the full outcome table: supported vs unsupported
// version crossed with unset, explicitly-true, and explicitly-false.
func TestGateBool(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		requested   *bool
		wantInclude bool
		wantWarning bool
	}{
		{
			name:        "supported and unset includes the default-on flag",
			version:     "1.19.0",
			requested:   nil,
			wantInclude: true,
		},
		{
			name:        "supported and explicitly true includes the flag",
			version:     "2.24.5",
			requested:   Bool(true),
			wantInclude: true,
		},
		{
			name:        "supported and explicitly false omits the flag",
			version:     "2.24.5",
			requested:   Bool(false),
			wantInclude: false,
		},
		{
			name:        "unsupported and unset omits silently",
			version:     "1.17.0",
			requested:   nil,
			wantInclude: false,
		},
		{
			name:        "unsupported and explicitly true omits with a warning",
			version:     "1.17.0",
			requested:   Bool(true),
			wantInclude: false,
			wantWarning: true,
		},
		{
			name:        "unsupported and explicitly false omits with a warning",
			version:     "1.17.0",
			requested:   Bool(false),
			wantInclude: false,
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			include, warn := gateBool("up", flagAlwaysRecreateDeps, tt.requested, toolVersion(t, tt.version))

			assert.Equal(t, tt.wantInclude, include)
			if tt.wantWarning {
				require.NotNil(t, warn)
				assert.Equal(t, "up", warn.Op)
				assert.Equal(t, "--always-recreate-deps", warn.Flag)
				assert.Equal(t, tt.version, warn.Version)
			} else {
				assert.Nil(t, warn)
			}
		})
	}
}

// TestGateBool_WaitThreshold verifies the 2.0.0 boundary of the --wait
// flag, which only the plugin generation understands.
func TestGateBool_WaitThreshold(t *testing.T) {
	include, warn := gateBool("up", flagWait, nil, toolVersion(t, "1.29.2"))
	assert.False(t, include)
	assert.Nil(t, warn)

	include, warn = gateBool("up", flagWait, nil, toolVersion(t, "2.0.0"))
	assert.True(t, include)
	assert.Nil(t, warn)
}

// TestGateDownTimeout verifies the argument-carrying teardown timeout:
// the 10 second fallback when unset on a supporting version, the
// requested value passthrough, and the warning path below 1.18.0.
func TestGateDownTimeout(t *testing.T) {
	// Supported, unset: the documented 10 second default applies.
	d, include, warn := gateDownTimeout("down", nil, toolVersion(t, "1.18.0"))
	assert.True(t, include)
	assert.Nil(t, warn)
	assert.Equal(t, 10*time.Second, d)

	// Supported, explicit value passes through untouched.
	d, include, warn = gateDownTimeout("down", Seconds(25), toolVersion(t, "2.24.5"))
	assert.True(t, include)
	assert.Nil(t, warn)
	assert.Equal(t, 25*time.Second, d)

	// Unsupported, unset: omitted with no noise.
	_, include, warn = gateDownTimeout("down", nil, toolVersion(t, "1.17.1"))
	assert.False(t, include)
	assert.Nil(t, warn)

	// Unsupported, explicitly requested: omitted with a warning.
	_, include, warn = gateDownTimeout("down", Seconds(5), toolVersion(t, "1.17.1"))
	assert.False(t, include)
	require.NotNil(t, warn)
	assert.Equal(t, "down: --timeout is not supported by compose version 1.17.1", warn.String())
}
