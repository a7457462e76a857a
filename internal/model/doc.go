// Package model defines the domain types and value objects for the
// dockman CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (ContainerSummary, ContainerDetail, ContainerStats) are
// transient snapshots reconstructed from Docker API queries at runtime.
// Nothing here is persisted, and a snapshot becomes stale the moment a
// mutating action is dispatched against the daemon.
//
// The package also defines the action vocabulary of the interactive
// session (ActionRequest, ActionResult, ErrorKind), exit codes (ExitCode),
// and a custom error type (CLIError) that carries exit codes for proper
// OS process exit handling.
package model
