// port.go implements the "suitedock port" command: look up the
// host-reachable address of a port published by a service.
//
// The reported host is rewritten so the caller can actually connect to
// it: wildcard binds become loopback, or the container network gateway
// when suitedock itself runs inside a container. With --check the
// resolved address is additionally probed for reachability.
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/compose"
	"github.com/mmr-tortoise/suitedock/internal/model"
	"github.com/mmr-tortoise/suitedock/internal/probe"
)

// NewPortCommand creates the "port" cobra command.
func NewPortCommand() *cobra.Command {
	var (
		protocol string
		index    int
		check    bool
	)

	cmd := &cobra.Command{
		Use:   "port <service> <port>",
		Short: "Look up the public address of an exposed service port",
		Long: `Print the host address and port at which a service's container port
is published, in host:port form.

Examples:
  suitedock port httpd 80
  suitedock port --protocol udp --check dns 53`,

		Args: cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			service := args[0]
			port, err := strconv.Atoi(args[1])
			if err != nil || port < 1 || port > 65535 {
				return fmt.Errorf("invalid port %q: must be a number between 1 and 65535", args[1])
			}

			sess, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := sess.validateServices([]string{service}); err != nil {
				return err
			}

			opts := compose.PortOptions{Protocol: protocol, Index: index}
			svc, err := sess.client.Port(cmd.Context(), service, port, opts)
			if err != nil {
				return err
			}

			reachable := true
			if check {
				reachable = probe.NewProber().IsReachable(svc.Host, svc.Port, protocol)
			}

			printPortResult(svc, check, reachable)
			if !reachable {
				return model.NewCLIError(model.ExitGeneralError,
					fmt.Sprintf("%s is not accepting connections", svc))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&protocol, "protocol", "", "Port protocol: tcp or udp (default: tcp)")
	cmd.Flags().IntVar(&index, "index", 0, "Container index when the service is scaled (default: 1)")
	cmd.Flags().BoolVar(&check, "check", false, "Verify the resolved address accepts connections")

	return cmd
}

// printPortResult outputs the resolved address in text or JSON form.
// The reachability fields only appear when --check was requested.
func printPortResult(svc model.ExposedService, checked, reachable bool) {
	if IsJSONOutput() {
		result := struct {
			Host      string `json:"host"`
			Port      string `json:"port"`
			Reachable *bool  `json:"reachable,omitempty"`
		}{Host: svc.Host, Port: svc.Port}
		if checked {
			result.Reachable = &reachable
		}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println(svc.String())
}
