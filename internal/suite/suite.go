// Package suite handles the optional suitedock.jsonc definition file
// that test suites place next to their compose file.
//
// The definition file supports JSONC (JSON with Comments), so this
// package uses github.com/tidwall/jsonc to strip comments before parsing
// with the standard encoding/json library.
//
// Key responsibilities:
//   - Locate and parse suitedock.jsonc (with JSONC support)
//   - Carry per-suite defaults for the up and down operations
//   - List service names from the compose file so requested services can
//     be validated before shelling out
package suite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Definition represents a parsed suitedock.jsonc file. Only the fields
// relevant to the adapter are included; other fields are silently
// ignored during parsing.
type Definition struct {
	// ProjectName overrides the compose project name. Empty falls back
	// to whatever the caller derives (typically the suite name).
	ProjectName string `json:"projectName,omitempty"`

	// ComposeFile is the compose file path, relative to the definition
	// file's directory unless absolute. Empty means docker-compose.yml
	// next to the definition file.
	ComposeFile string `json:"composeFile,omitempty"`

	// ProjectDirectory is the working directory for compose child
	// processes. Empty means the compose file's directory.
	ProjectDirectory string `json:"projectDirectory,omitempty"`

	// Up carries suite-level defaults for the bring-up operation.
	Up *UpDefaults `json:"up,omitempty"`

	// Down carries suite-level defaults for teardown.
	Down *DownDefaults `json:"down,omitempty"`
}

// UpDefaults mirrors the subset of bring-up options a suite commonly
// pins in its definition file.
type UpDefaults struct {
	// TimeoutSeconds is the container startup timeout in whole seconds.
	TimeoutSeconds *int `json:"timeoutSeconds,omitempty"`

	// Build builds images before starting containers.
	Build bool `json:"build,omitempty"`

	// NoDeps skips starting linked services.
	NoDeps bool `json:"noDeps,omitempty"`

	// Services restricts bring-up to the named services.
	Services []string `json:"services,omitempty"`
}

// DownDefaults mirrors the subset of teardown options a suite commonly
// pins in its definition file.
type DownDefaults struct {
	// TimeoutSeconds is the shutdown timeout in whole seconds.
	TimeoutSeconds *int `json:"timeoutSeconds,omitempty"`

	// RemoveImages forwards --rmi; valid values are "", "all", "local".
	RemoveImages string `json:"removeImages,omitempty"`

	// Volumes removes named and anonymous volumes. Unset means true.
	Volumes *bool `json:"volumes,omitempty"`

	// RemoveOrphans removes containers for undeclared services.
	// Unset means true.
	RemoveOrphans *bool `json:"removeOrphans,omitempty"`
}

// DefinitionFileNames are the file names probed by FindDefinition, in
// preference order.
var DefinitionFileNames = []string{"suitedock.jsonc", "suitedock.json"}

// FindDefinition looks for a definition file in dir and returns its
// path. The second return value reports whether one was found; a suite
// without a definition file is perfectly valid.
func FindDefinition(dir string) (string, bool) {
	for _, name := range DefinitionFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// LoadDefinition reads and parses a definition file. JSONC comments and
// trailing commas are stripped before standard JSON parsing.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite definition %q: %w", path, err)
	}

	var def Definition
	if err := json.Unmarshal(jsonc.ToJSON(data), &def); err != nil {
		return nil, fmt.Errorf("failed to parse suite definition %q: %w", path, err)
	}

	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("invalid suite definition %q: %w", path, err)
	}
	return &def, nil
}

// validate checks field values that JSON decoding alone cannot reject.
func (d *Definition) validate() error {
	if d.Down != nil {
		switch d.Down.RemoveImages {
		case "", "all", "local":
		default:
			return fmt.Errorf("down.removeImages: invalid value %q (valid: all, local)", d.Down.RemoveImages)
		}
		if d.Down.TimeoutSeconds != nil && *d.Down.TimeoutSeconds < 0 {
			return fmt.Errorf("down.timeoutSeconds: must not be negative")
		}
	}
	if d.Up != nil && d.Up.TimeoutSeconds != nil && *d.Up.TimeoutSeconds < 0 {
		return fmt.Errorf("up.timeoutSeconds: must not be negative")
	}
	return nil
}

// composeFileDoc covers the one piece of compose file structure the
// adapter reads: the top-level services mapping. Everything else in the
// file stays opaque; the adapter never validates the compose format.
type composeFileDoc struct {
	Services map[string]yaml.Node `yaml:"services"`
}

// ListServices returns the sorted service names declared in the compose
// file at path.
func ListServices(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file %q: %w", path, err)
	}

	var doc composeFileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse compose file %q: %w", path, err)
	}

	names := make([]string, 0, len(doc.Services))
	for name := range doc.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ValidateServices checks that every requested service name is declared
// in the compose file, so typos surface as a direct error instead of a
// child-process failure. An empty request list means "all services" and
// is always valid.
func ValidateServices(requested, declared []string) error {
	if len(requested) == 0 {
		return nil
	}

	known := make(map[string]bool, len(declared))
	for _, name := range declared {
		known[name] = true
	}

	for _, name := range requested {
		if !known[name] {
			return fmt.Errorf("unknown service %q (declared services: %v)", name, declared)
		}
	}
	return nil
}
