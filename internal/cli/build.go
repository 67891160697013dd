// build.go implements the "suitedock build" command.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/compose"
)

// NewBuildCommand creates the "build" cobra command.
func NewBuildCommand() *cobra.Command {
	var (
		noCache   bool
		pull      bool
		buildArgs []string
	)

	cmd := &cobra.Command{
		Use:   "build [services...]",
		Short: "Build or rebuild service images",
		Long: `Build the images for the named services, or all services when none
are named.

Examples:
  suitedock build
  suitedock build --no-cache --build-arg VERSION=1.2.3 web`,

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices(args); err != nil {
				return err
			}

			argsMap, err := parseBuildArgs(buildArgs)
			if err != nil {
				return err
			}

			opts := compose.BuildOptions{
				NoCache:  noCache,
				Pull:     pull,
				Args:     argsMap,
				Services: args,
			}
			if err := sess.client.Build(cmd.Context(), opts); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "built", args)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Do not use the build cache")
	cmd.Flags().BoolVar(&pull, "pull", false, "Always pull newer base images")
	cmd.Flags().StringArrayVar(&buildArgs, "build-arg", nil,
		"Build-time variable as key=value (repeatable)")

	return cmd
}

// parseBuildArgs turns repeated key=value flags into the map the
// facade's build options expect.
func parseBuildArgs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --build-arg %q (expected key=value)", pair)
		}
		m[key] = value
	}
	return m, nil
}
