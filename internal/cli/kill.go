// kill.go implements the "suitedock kill" command.
//
// Unlike the tool itself, a kill that finds nothing to kill is reported
// as a failure (exit code 7): the caller asked to forcibly stop
// something and nothing was stopped.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/compose"
)

// NewKillCommand creates the "kill" cobra command.
func NewKillCommand() *cobra.Command {
	var signal string

	cmd := &cobra.Command{
		Use:   "kill [services...]",
		Short: "Force-stop containers",
		Long: `Send a signal (SIGKILL by default) to the main process of each
service container.

Examples:
  suitedock kill
  suitedock kill -s SIGTERM web`,

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices(args); err != nil {
				return err
			}

			opts := compose.KillOptions{Signal: signal, Services: args}
			if err := sess.client.Kill(cmd.Context(), opts); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "killed", args)
			return nil
		},
	}

	cmd.Flags().StringVarP(&signal, "signal", "s", "", "Signal to send (default: SIGKILL)")

	return cmd
}
