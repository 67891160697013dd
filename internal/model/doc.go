// Package model defines the domain types and value objects for the
// suitedock CLI.
//
// This package contains pure data structures with no external dependencies.
// ProjectContext is the one long-lived entity (one per session); everything
// else (ExposedService, the error types) is transient and owned by the
// single operation that produced it.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
