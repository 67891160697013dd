package suite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile is a test helper creating a file with the given content in
// dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestFindDefinition verifies the probe order and the not-found case.
func TestFindDefinition(t *testing.T) {
	dir := t.TempDir()

	// Nothing there yet.
	_, found := FindDefinition(dir)
	assert.False(t, found)

	// The .json fallback alone is found.
	jsonPath := writeFile(t, dir, "suitedock.json", "{}")
	path, found := FindDefinition(dir)
	require.True(t, found)
	assert.Equal(t, jsonPath, path)

	// The .jsonc name takes precedence when both exist.
	jsoncPath := writeFile(t, dir, "suitedock.jsonc", "{}")
	path, found = FindDefinition(dir)
	require.True(t, found)
	assert.Equal(t, jsoncPath, path)
}

// TestFindDefinition_IgnoresDirectories verifies that a directory named
// like the definition file is not mistaken for one.
func TestFindDefinition_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "suitedock.jsonc"), 0o755))

	_, found := FindDefinition(dir)
	assert.False(t, found)
}

// TestLoadDefinition_WithComments verifies that JSONC comments and
// trailing commas are accepted.
func TestLoadDefinition_WithComments(t *testing.T) {
	path := writeFile(t, t.TempDir(), "suitedock.jsonc", `{
	// Shared integration suite for the payment services.
	"projectName": "Payment Suite",
	"composeFile": "compose/integration.yml",
	"up": {
		"timeoutSeconds": 30,
		"build": true,
		"services": ["db", "api"], // bring up the core pair only
	},
	"down": {
		"removeImages": "local",
		"volumes": false,
	},
}`)

	def, err := LoadDefinition(path)
	require.NoError(t, err)

	assert.Equal(t, "Payment Suite", def.ProjectName)
	assert.Equal(t, "compose/integration.yml", def.ComposeFile)

	require.NotNil(t, def.Up)
	require.NotNil(t, def.Up.TimeoutSeconds)
	assert.Equal(t, 30, *def.Up.TimeoutSeconds)
	assert.True(t, def.Up.Build)
	assert.Equal(t, []string{"db", "api"}, def.Up.Services)

	require.NotNil(t, def.Down)
	assert.Equal(t, "local", def.Down.RemoveImages)
	require.NotNil(t, def.Down.Volumes)
	assert.False(t, *def.Down.Volumes)
	assert.Nil(t, def.Down.RemoveOrphans)
}

// TestLoadDefinition_InvalidValues verifies the semantic validation that
// JSON decoding alone cannot perform.
func TestLoadDefinition_InvalidValues(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "bad-rmi.jsonc", `{"down": {"removeImages": "dangling"}}`)
	_, err := LoadDefinition(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down.removeImages")

	path = writeFile(t, dir, "bad-timeout.jsonc", `{"up": {"timeoutSeconds": -5}}`)
	_, err = LoadDefinition(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "up.timeoutSeconds")
}

// TestLoadDefinition_MissingFile verifies the read error path.
func TestLoadDefinition_MissingFile(t *testing.T) {
	_, err := LoadDefinition(filepath.Join(t.TempDir(), "nope.jsonc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read suite definition")
}

// TestListServices verifies sorted service name extraction from a
// compose file, with the rest of the document left opaque.
func TestListServices(t *testing.T) {
	path := writeFile(t, t.TempDir(), "docker-compose.yml", `
version: "3.8"
services:
  web:
    image: nginx:alpine
    ports:
      - "8080:80"
  db:
    image: postgres:16
    environment:
      POSTGRES_PASSWORD: secret
volumes:
  pgdata:
`)

	names, err := ListServices(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"db", "web"}, names)
}

// TestListServices_BadYAML verifies the parse error path.
func TestListServices_BadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "docker-compose.yml", "services: [unbalanced")

	_, err := ListServices(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse compose file")
}

// TestValidateServices verifies the membership check and its wording.
func TestValidateServices(t *testing.T) {
	declared := []string{"db", "web"}

	assert.NoError(t, ValidateServices(nil, declared))
	assert.NoError(t, ValidateServices([]string{"web"}, declared))
	assert.NoError(t, ValidateServices([]string{"db", "web"}, declared))

	err := ValidateServices([]string{"web", "cache"}, declared)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown service "cache"`)
}
