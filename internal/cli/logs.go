// logs.go implements the "suitedock logs" command.
//
// By default the captured log text is printed to stdout. With --output
// it is appended to the named file instead (append mode, so repeated
// invocations accumulate a suite-long log), and nothing is printed.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/compose"
)

// NewLogsCommand creates the "logs" cobra command.
func NewLogsCommand() *cobra.Command {
	var (
		noColor    bool
		timestamps bool
		tail       int
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "logs [services...]",
		Short: "Fetch container log output",
		Long: `Fetch the accumulated log output of the named services, or all
services when none are named.

Examples:
  suitedock logs
  suitedock logs --timestamps --tail 100 web
  suitedock logs --output suite.log`,

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices(args); err != nil {
				return err
			}

			opts := compose.LogsOptions{
				NoColor:    noColor,
				Timestamps: timestamps,
				Tail:       tail,
				Services:   args,
			}

			if outputFile != "" {
				return sess.client.LogsToFile(cmd.Context(), opts, outputFile)
			}

			text, err := sess.client.Logs(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if text != "" {
				fmt.Println(text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&timestamps, "timestamps", "t", false, "Show timestamps")
	cmd.Flags().IntVar(&tail, "tail", 0,
		"Number of trailing lines per container (0 = all)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"Append log output to this file instead of printing it")

	return cmd
}
