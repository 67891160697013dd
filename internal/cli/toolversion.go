// toolversion.go implements the "suitedock compose-version" command,
// which reports which compose installation the adapter resolved.
// (The root command's --version flag reports suitedock's own version;
// this subcommand reports the external tool's.)
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewToolVersionCommand creates the "compose-version" cobra command.
func NewToolVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compose-version",
		Short: "Show the detected compose tool variant and version",

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}

			tool, err := sess.client.Tool(cmd.Context())
			if err != nil {
				return err
			}

			if IsJSONOutput() {
				result := struct {
					Variant string `json:"variant"`
					Version string `json:"version"`
					Display string `json:"display"`
				}{
					Variant: tool.Variant.String(),
					Version: tool.Version.String(),
					Display: tool.Version.Display,
				}
				data, _ := json.MarshalIndent(result, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("%s (%s)\n", tool.Version.Display, tool.Variant)
			return nil
		},
	}
}
