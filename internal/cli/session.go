// session.go assembles the per-invocation session: global flags plus an
// optional suitedock.jsonc definition are merged into a ProjectContext,
// from which the compose client is built. Explicit flags always win over
// definition file values.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/compose"
	"github.com/mmr-tortoise/suitedock/internal/model"
	"github.com/mmr-tortoise/suitedock/internal/suite"
)

// session bundles everything a subcommand needs for one invocation.
type session struct {
	client *compose.Client

	// def is the loaded suite definition, or nil when none exists.
	def *suite.Definition
}

// newSession resolves the project context for the current invocation.
//
// Resolution order per field (first hit wins):
//  1. the explicit flag, when changed from its default
//  2. the suite definition file, when present
//  3. the built-in default (docker-compose.yml, compose file directory)
func newSession(cmd *cobra.Command) (*session, error) {
	searchDir := projectDir
	if searchDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		searchDir = wd
	}

	var def *suite.Definition
	if path, ok := suite.FindDefinition(searchDir); ok {
		loaded, err := suite.LoadDefinition(path)
		if err != nil {
			return nil, err
		}
		def = loaded
		log.Debug("loaded suite definition", "path", path)
	}

	file := composeFile
	if !cmd.Flags().Changed("file") && def != nil && def.ComposeFile != "" {
		file = def.ComposeFile
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(searchDir, file)
	}

	dir := projectDir
	if dir == "" && def != nil && def.ProjectDirectory != "" {
		dir = def.ProjectDirectory
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(searchDir, dir)
		}
	}

	name := projectName
	if name == "" && def != nil && def.ProjectName != "" {
		name = def.ProjectName
	}
	if name == "" {
		name = filepath.Base(filepath.Dir(file))
	}

	project, err := model.NewProjectContext(name, file, dir)
	if err != nil {
		return nil, err
	}

	return &session{
		client: compose.NewClient(project),
		def:    def,
	}, nil
}

// validateServices checks requested service names against the services
// declared in the compose file, turning typos into a direct error
// instead of an opaque child-process failure. An unreadable compose
// file is left for the compose tool itself to report.
func (s *session) validateServices(requested []string) error {
	if len(requested) == 0 {
		return nil
	}

	declared, err := suite.ListServices(s.client.Project().ComposeFile)
	if err != nil {
		log.Debug("skipping service validation", "reason", err)
		return nil
	}

	return suite.ValidateServices(requested, declared)
}
