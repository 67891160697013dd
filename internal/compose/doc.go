// Package compose adapts high-level "manage a multi-container application"
// operations onto the docker compose command-line tool.
//
// The package resolves which invocation form of the tool is installed
// (the docker CLI plugin or the legacy standalone binary) and its version,
// maps typed option sets onto the correct flag sequence for that version
// (omitting flags the installed version does not support, with a warning
// instead of a hard failure), executes the resulting argument vector as an
// isolated child process, and decodes tool output into typed results.
//
// Client is the public surface: one method per compose operation. All
// methods are synchronous and block until the child process exits; the
// only timeout behavior is the --timeout value forwarded to the tool.
package compose
