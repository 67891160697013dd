// lifecycle.go implements the "start", "stop", and "restart" commands.
// They share the same shape (optional timeout, trailing service names),
// so they live together rather than one per file.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/compose"
)

// NewStartCommand creates the "start" cobra command, which starts
// previously created containers without recreating them.
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start [services...]",
		Short: "Start existing containers",

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices(args); err != nil {
				return err
			}

			if err := sess.client.Start(cmd.Context(), args...); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "started", args)
			return nil
		},
	}
}

// NewStopCommand creates the "stop" cobra command, which stops running
// containers without removing them.
func NewStopCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "stop [services...]",
		Short: "Stop running containers without removing them",

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices(args); err != nil {
				return err
			}

			opts := compose.StopOptions{Services: args}
			if cmd.Flags().Changed("timeout") {
				opts.Timeout = &timeout
			}

			if err := sess.client.Stop(cmd.Context(), opts); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "stopped", args)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second,
		"Shutdown timeout (truncated to whole seconds)")

	return cmd
}

// NewRestartCommand creates the "restart" cobra command.
func NewRestartCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "restart [services...]",
		Short: "Restart containers",

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices(args); err != nil {
				return err
			}

			opts := compose.StopOptions{Services: args}
			if cmd.Flags().Changed("timeout") {
				opts.Timeout = &timeout
			}

			if err := sess.client.Restart(cmd.Context(), opts); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "restarted", args)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second,
		"Restart timeout (truncated to whole seconds)")

	return cmd
}
