// pull.go implements the "suitedock pull" command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/compose"
)

// NewPullCommand creates the "pull" cobra command.
func NewPullCommand() *cobra.Command {
	var (
		ignoreFailures bool
		includeDeps    bool
		quiet          bool
	)

	cmd := &cobra.Command{
		Use:   "pull [services...]",
		Short: "Pull service images",
		Long: `Pull the images for the named services, or all services when none
are named.

Examples:
  suitedock pull
  suitedock pull --include-deps web`,

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices(args); err != nil {
				return err
			}

			opts := compose.PullOptions{
				IgnoreFailures: ignoreFailures,
				IncludeDeps:    includeDeps,
				Quiet:          quiet,
				Services:       args,
			}
			if err := sess.client.Pull(cmd.Context(), opts); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "pulled", args)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreFailures, "ignore-pull-failures", false,
		"Tolerate individual image pull failures")
	cmd.Flags().BoolVar(&includeDeps, "include-deps", false,
		"Also pull images for declared dependencies")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	return cmd
}
