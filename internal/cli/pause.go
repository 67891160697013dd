// pause.go implements the "pause" and "unpause" commands.
package cli

import (
	"github.com/spf13/cobra"
)

// NewPauseCommand creates the "pause" cobra command, which suspends the
// processes of running containers without stopping them.
func NewPauseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pause [services...]",
		Short: "Pause running containers",

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices(args); err != nil {
				return err
			}

			if err := sess.client.Pause(cmd.Context(), args...); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "paused", args)
			return nil
		},
	}
}

// NewUnpauseCommand creates the "unpause" cobra command.
func NewUnpauseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpause [services...]",
		Short: "Resume paused containers",

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices(args); err != nil {
				return err
			}

			if err := sess.client.Unpause(cmd.Context(), args...); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "unpaused", args)
			return nil
		},
	}
}
