// Package model — action.go defines the action vocabulary of an
// interactive session: what the user can ask for (ActionRequest), how
// the outcome is reported (ActionResult), and the failure taxonomy
// (ErrorKind) that the daemon client maps raw API errors into.
package model

import (
	"fmt"
	"strings"
)

// ActionKind identifies a per-container action selectable from the menu.
type ActionKind string

const (
	// ActionStart starts a stopped container.
	ActionStart ActionKind = "start"

	// ActionStop gracefully stops a running container. Destructive:
	// requires confirmation before dispatch.
	ActionStop ActionKind = "stop"

	// ActionRestart stops and restarts a container in one daemon call.
	ActionRestart ActionKind = "restart"

	// ActionRemove deletes a container. Destructive: requires
	// confirmation before dispatch.
	ActionRemove ActionKind = "remove"

	// ActionViewLogs streams or tails the container's log output.
	ActionViewLogs ActionKind = "logs"

	// ActionShowStats renders a one-shot resource usage sample.
	ActionShowStats ActionKind = "stats"

	// ActionExecCommand runs a command inside the container and shows
	// its combined output.
	ActionExecCommand ActionKind = "exec"

	// ActionShowDetail renders the inspect-derived container detail view.
	ActionShowDetail ActionKind = "detail"
)

// String returns the string representation of ActionKind.
func (k ActionKind) String() string {
	return string(k)
}

// IsValid checks whether the ActionKind is one of the defined actions.
func (k ActionKind) IsValid() bool {
	switch k {
	case ActionStart, ActionStop, ActionRestart, ActionRemove,
		ActionViewLogs, ActionShowStats, ActionExecCommand, ActionShowDetail:
		return true
	default:
		return false
	}
}

// IsDestructive reports whether the action is disruptive or irreversible
// and therefore requires an explicit confirmation step before executing.
// Only Stop and Remove qualify; everything else dispatches immediately.
func (k ActionKind) IsDestructive() bool {
	return k == ActionStop || k == ActionRemove
}

// Mutates reports whether the action changes daemon-side container state.
// The dispatcher refreshes the resource cache after every mutating action,
// since the previous snapshot is stale the moment the action completes.
func (k ActionKind) Mutates() bool {
	switch k {
	case ActionStart, ActionStop, ActionRestart, ActionRemove:
		return true
	default:
		return false
	}
}

// ParseActionKind converts a string to an ActionKind.
func ParseActionKind(s string) (ActionKind, error) {
	kind := ActionKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown action: %q", s)
	}
	return kind, nil
}

// ActionRequest describes one user-selected action against one container.
// Requests are ephemeral: constructed per selection, discarded after
// dispatch. Exactly one ActionResult is produced per request.
type ActionRequest struct {
	// TargetID is the container ID the action applies to.
	TargetID string

	// Kind is the action to perform.
	Kind ActionKind

	// Command is the command line to run for ActionExecCommand.
	// Unused for all other kinds.
	Command []string

	// Follow keeps an ActionViewLogs stream open until cancelled
	// instead of stopping at the current tail.
	Follow bool
}

// Validate checks that the request is well-formed before dispatch.
func (r ActionRequest) Validate() error {
	if r.TargetID == "" {
		return fmt.Errorf("action request: target container ID must not be empty")
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("action request: invalid action kind %q", r.Kind)
	}
	if r.Kind == ActionExecCommand && len(r.Command) == 0 {
		return fmt.Errorf("action request: exec requires a command")
	}
	return nil
}

// ErrorKind classifies daemon client failures. Every failed ActionResult
// carries one, so the UI layer can decide how to react (retry hint,
// automatic refresh, silent return to menu) without string matching.
type ErrorKind string

const (
	// ErrNone is the zero value carried by successful results.
	ErrNone ErrorKind = ""

	// ErrUnreachable indicates the daemon socket or API is unavailable,
	// including timeouts. Fatal at startup, recoverable mid-session.
	ErrUnreachable ErrorKind = "unreachable"

	// ErrPermissionDenied indicates the caller lacks rights for the call.
	// Reported, non-fatal.
	ErrPermissionDenied ErrorKind = "permission-denied"

	// ErrNotFound indicates the target container no longer exists: the
	// snapshot has drifted from daemon state (race between list and
	// action). Triggers an automatic cache refresh.
	ErrNotFound ErrorKind = "not-found"

	// ErrCancelled indicates the user interrupted a log stream. Not an
	// error condition: the session returns cleanly to the menu.
	ErrCancelled ErrorKind = "cancelled"

	// ErrInternal is the fallback bucket for daemon errors outside the
	// taxonomy (e.g., removing a running container without force).
	ErrInternal ErrorKind = "internal"
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	return string(k)
}

// ActionResult reports the outcome of one dispatched ActionRequest.
// Invariant: every dispatched request yields exactly one result, and the
// result is surfaced to the user before the menu redraws.
type ActionResult struct {
	// Success is true when the action completed as requested.
	// A cancelled log stream counts as success with Kind = ErrCancelled.
	Success bool

	// Message is a one-line human-readable outcome description.
	Message string

	// Kind classifies the failure. ErrNone on success.
	Kind ErrorKind
}

// OK builds a successful ActionResult with a formatted message.
func OK(format string, args ...any) ActionResult {
	return ActionResult{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Failed builds a failed ActionResult with the given classification.
func Failed(kind ErrorKind, format string, args ...any) ActionResult {
	return ActionResult{Success: false, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
