// up.go implements the "suitedock up" command: build, (re)create, and
// start the project's services in detached mode.
//
// The version-gated flags (--always-recreate-deps, --renew-anon-volumes,
// --wait) are tri-state: leaving them untouched lets the capability
// gate's default-on policy apply, while setting them explicitly (true or
// false) pins the caller's choice, and produces a compatibility warning
// when the installed tool version cannot honor it.
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/compose"
)

// NewUpCommand creates the "up" cobra command.
func NewUpCommand() *cobra.Command {
	var (
		timeout            time.Duration
		noDeps             bool
		forceRecreate      bool
		alwaysRecreateDeps bool
		noRecreate         bool
		noBuild            bool
		noStart            bool
		build              bool
		renewAnonVolumes   bool
		removeOrphans      bool
		wait               bool
	)

	cmd := &cobra.Command{
		Use:   "up [services...]",
		Short: "Create and start services",
		Long: `Build, (re)create, and start containers for the project's services in
detached mode. With service names, only those services (and, unless
--no-deps is set, their dependencies) are started.

Examples:
  suitedock up
  suitedock up --build web db
  suitedock up --timeout 30s --wait=false`,

		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(cmd)
			if err != nil {
				return err
			}

			services := args
			if len(services) == 0 && sess.def != nil && sess.def.Up != nil {
				services = sess.def.Up.Services
			}
			if err := sess.validateServices(services); err != nil {
				return err
			}

			opts := compose.UpOptions{
				NoDeps:     noDeps,
				NoRecreate: noRecreate,
				NoBuild:    noBuild,
				NoStart:    noStart,
				Build:      build,
				Services:   services,
			}

			// Tri-state flags: forward a value only when the user set
			// the flag, so the gate's defaults stay in force otherwise.
			if cmd.Flags().Changed("timeout") {
				opts.Timeout = &timeout
			}
			if cmd.Flags().Changed("force-recreate") {
				opts.ForceRecreate = &forceRecreate
			}
			if cmd.Flags().Changed("always-recreate-deps") {
				opts.AlwaysRecreateDeps = &alwaysRecreateDeps
			}
			if cmd.Flags().Changed("renew-anon-volumes") {
				opts.RenewAnonVolumes = &renewAnonVolumes
			}
			if cmd.Flags().Changed("remove-orphans") {
				opts.RemoveOrphans = &removeOrphans
			}
			if cmd.Flags().Changed("wait") {
				opts.Wait = &wait
			}

			// Suite definition defaults fill remaining gaps.
			if sess.def != nil && sess.def.Up != nil {
				if opts.Timeout == nil && sess.def.Up.TimeoutSeconds != nil {
					opts.Timeout = compose.Seconds(*sess.def.Up.TimeoutSeconds)
				}
				if !cmd.Flags().Changed("build") && sess.def.Up.Build {
					opts.Build = true
				}
				if !cmd.Flags().Changed("no-deps") && sess.def.Up.NoDeps {
					opts.NoDeps = true
				}
			}

			if err := sess.client.Up(cmd.Context(), opts); err != nil {
				return err
			}

			printActionResult(sess.client.Project().ProjectName, "started", services)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second,
		"Container startup timeout (truncated to whole seconds)")
	cmd.Flags().BoolVar(&noDeps, "no-deps", false, "Don't start linked services")
	cmd.Flags().BoolVar(&forceRecreate, "force-recreate", true,
		"Recreate containers even if unchanged")
	cmd.Flags().BoolVar(&alwaysRecreateDeps, "always-recreate-deps", true,
		"Recreate dependent containers")
	cmd.Flags().BoolVar(&noRecreate, "no-recreate", false,
		"Don't recreate existing containers")
	cmd.Flags().BoolVar(&noBuild, "no-build", false, "Never build images")
	cmd.Flags().BoolVar(&noStart, "no-start", false, "Create containers without starting them")
	cmd.Flags().BoolVar(&build, "build", false, "Build images before starting")
	cmd.Flags().BoolVar(&renewAnonVolumes, "renew-anon-volumes", true,
		"Recreate anonymous volumes instead of reusing their data")
	cmd.Flags().BoolVar(&removeOrphans, "remove-orphans", true,
		"Remove containers for undeclared services")
	cmd.Flags().BoolVar(&wait, "wait", true, "Wait for services to be running/healthy")

	return cmd
}

// printActionResult reports a lifecycle operation's outcome in text or
// JSON form. Services is empty when the operation covered all services.
func printActionResult(project, action string, services []string) {
	if IsJSONOutput() {
		result := struct {
			Project  string   `json:"project"`
			Action   string   `json:"action"`
			Services []string `json:"services,omitempty"`
		}{Project: project, Action: action, Services: services}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	if len(services) > 0 {
		fmt.Printf("%s %v for project %q\n", action, services, project)
	} else {
		fmt.Printf("%s all services for project %q\n", action, project)
	}
}
