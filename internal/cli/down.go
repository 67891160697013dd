// down.go implements the "suitedock down" command: stop and remove
// everything the project created.
//
// Because teardown is what keeps a test host clean between suites,
// --volumes and --remove-orphans default to enabled; passing
// --volumes=false or --remove-orphans=false opts out explicitly.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/compose"
)

// NewDownCommand creates the "down" cobra command.
func NewDownCommand() *cobra.Command {
	var (
		timeout       time.Duration
		removeImages  string
		volumes       bool
		removeOrphans bool
	)

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Stop and remove containers, networks, and volumes",
		Long: `Stop and remove the containers, networks, volumes, and optionally
images created by up. Volumes and orphan containers are removed by
default to keep the test environment clean.

Examples:
  suitedock down
  suitedock down --rmi local --timeout 30s`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}

			opts := compose.DownOptions{
				RemoveImages: removeImages,
			}
			if cmd.Flags().Changed("timeout") {
				opts.Timeout = &timeout
			}
			if cmd.Flags().Changed("volumes") {
				opts.Volumes = &volumes
			}
			if cmd.Flags().Changed("remove-orphans") {
				opts.RemoveOrphans = &removeOrphans
			}

			if sess.def != nil && sess.def.Down != nil {
				d := sess.def.Down
				if opts.Timeout == nil && d.TimeoutSeconds != nil {
					opts.Timeout = compose.Seconds(*d.TimeoutSeconds)
				}
				if !cmd.Flags().Changed("rmi") && d.RemoveImages != "" {
					opts.RemoveImages = d.RemoveImages
				}
				if opts.Volumes == nil && d.Volumes != nil {
					opts.Volumes = d.Volumes
				}
				if opts.RemoveOrphans == nil && d.RemoveOrphans != nil {
					opts.RemoveOrphans = d.RemoveOrphans
				}
			}

			if err := sess.client.Down(cmd.Context(), opts); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "removed", nil)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second,
		"Shutdown timeout (truncated to whole seconds)")
	cmd.Flags().StringVar(&removeImages, "rmi", "",
		`Remove images: "all" or "local"`)
	cmd.Flags().BoolVar(&volumes, "volumes", true,
		"Remove named and anonymous volumes")
	cmd.Flags().BoolVar(&removeOrphans, "remove-orphans", true,
		"Remove containers for undeclared services")

	return cmd
}
