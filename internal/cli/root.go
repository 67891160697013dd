// Package cli implements the cobra-based CLI commands for suitedock.
//
// Each operation (up, down, build, pull, start, stop, restart, kill,
// pause, unpause, logs, port, version) is defined in its own file within
// this package. This file defines the root command, global flags, and the
// error-to-exit-code translation.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/suitedock/internal/model"
)

// Global flag variables shared across all subcommands. They are bound
// to cobra persistent flags on the root command, which makes them
// available to every subcommand automatically.
var (
	// composeFile is the compose file path (--file). Relative paths are
	// resolved against the project directory.
	composeFile string

	// projectName is the compose project name (--project-name).
	// Defaults to the name of the directory containing the compose file.
	projectName string

	// projectDir is the working directory for compose child processes
	// (--project-directory).
	projectDir string

	// jsonOutput switches command output to JSON for machine consumption.
	jsonOutput bool

	// verbose enables debug-level logging on stderr.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package for --version output.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// The root command itself performs no action; operations are provided
// by subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "suitedock",
		Short: "Drive a multi-container compose application from test suites",
		Long: `suitedock adapts high-level lifecycle operations (up, down, build, pull,
logs, port lookup, ...) onto the docker compose command line, tolerating
both the plugin ("docker compose") and standalone ("docker-compose")
installations and the flag differences between their versions.

A suitedock.jsonc file next to the compose file can pin per-suite
defaults; explicit flags always win.`,

		// We format errors ourselves (text or JSON based on --json) and
		// print usage only when asked, so both cobra behaviors are off.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&composeFile, "file", "f", "docker-compose.yml",
		"Compose file path")
	rootCmd.PersistentFlags().StringVarP(&projectName, "project-name", "p", "",
		"Compose project name (default: compose file directory name)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-directory", "",
		"Working directory for compose commands (default: compose file directory)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewUpCommand())
	rootCmd.AddCommand(NewDownCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewPullCommand())
	rootCmd.AddCommand(NewStartCommand())
	rootCmd.AddCommand(NewStopCommand())
	rootCmd.AddCommand(NewRestartCommand())
	rootCmd.AddCommand(NewKillCommand())
	rootCmd.AddCommand(NewPauseCommand())
	rootCmd.AddCommand(NewUnpauseCommand())
	rootCmd.AddCommand(NewLogsCommand())
	rootCmd.AddCommand(NewPortCommand())
	rootCmd.AddCommand(NewToolVersionCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes. It translates
// the typed failure taxonomy into stable OS exit codes so scripts and
// CI systems can branch on the failure class.
func Execute(rootCmd *cobra.Command) {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	printError(err)
	os.Exit(int(exitCodeFor(err)))
}

// exitCodeFor maps an error to its exit code via the sentinel taxonomy.
// ProcessError is checked after the sentinels because a sentinel wrapped
// in an OpError is more specific than the generic "child failed" class.
func exitCodeFor(err error) model.ExitCode {
	switch {
	case errors.Is(err, model.ErrToolNotFound):
		return model.ExitToolNotFound
	case errors.Is(err, model.ErrVersionUnparseable):
		return model.ExitVersionUnparseable
	case errors.Is(err, model.ErrPortNotExposed):
		return model.ExitPortNotExposed
	case errors.Is(err, model.ErrNothingToKill):
		return model.ExitNothingToKill
	case errors.Is(err, model.ErrUnexpectedResponse):
		return model.ExitBadResponse
	}

	var procErr *model.ProcessError
	if errors.As(err, &procErr) {
		return model.ExitProcessFailed
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}

	return model.ExitGeneralError
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag. Errors always go to
// stderr; stdout is reserved for successful command output.
func printError(err error) {
	if jsonOutput {
		errObj := map[string]any{
			"error": map[string]any{
				"message": err.Error(),
			},
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
