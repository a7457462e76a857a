// Package model — types.go defines the container-facing domain types:
// status enum, list/inspect snapshots, stats, exit codes, and CLIError.
package model

import (
	"fmt"
	"strings"
	"time"
)

// ContainerStatus represents the daemon-reported lifecycle state of a
// container. The values mirror the Docker Engine API "State" field.
//
// A status is only ever observed, never driven by dockman: the daemon
// owns the state machine, and dockman re-reads it after every mutating
// action instead of guessing at transitions.
type ContainerStatus string

const (
	// StatusRunning indicates the container's main process is running.
	StatusRunning ContainerStatus = "running"

	// StatusExited indicates the container's main process has terminated.
	StatusExited ContainerStatus = "exited"

	// StatusPaused indicates the container's processes are frozen (SIGSTOP
	// or cgroup freezer), but the container still exists and holds resources.
	StatusPaused ContainerStatus = "paused"

	// StatusCreated indicates the container exists but has never been started.
	StatusCreated ContainerStatus = "created"

	// StatusRestarting indicates the daemon is in the middle of restarting
	// the container, typically due to a restart policy.
	StatusRestarting ContainerStatus = "restarting"

	// StatusDead indicates the daemon failed to fully remove the container.
	// Rare, but the API can report it, so the enum carries it.
	StatusDead ContainerStatus = "dead"
)

// String returns the string representation of ContainerStatus.
// This method satisfies the fmt.Stringer interface for display and logging.
func (s ContainerStatus) String() string {
	return string(s)
}

// IsValid checks whether the ContainerStatus value is one of the
// states the Docker Engine API reports.
func (s ContainerStatus) IsValid() bool {
	switch s {
	case StatusRunning, StatusExited, StatusPaused, StatusCreated, StatusRestarting, StatusDead:
		return true
	default:
		return false
	}
}

// IsRunning reports whether the container is in a state where stop,
// restart, stats, and exec operations make sense.
func (s ContainerStatus) IsRunning() bool {
	return s == StatusRunning
}

// ParseContainerStatus converts a daemon-reported state string to a
// ContainerStatus. Unknown strings are returned as-is alongside an error,
// so callers can choose to display them verbatim rather than dropping
// the container from view.
func ParseContainerStatus(s string) (ContainerStatus, error) {
	status := ContainerStatus(strings.ToLower(s))
	if !status.IsValid() {
		return status, fmt.Errorf("unknown container status: %q", s)
	}
	return status, nil
}

// ContainerSummary is a point-in-time view of a container as reported by
// a daemon list query. It is the unit of the resource cache's snapshot.
//
// Lifecycle: created by a list query; stale immediately after any mutating
// action; replaced wholesale by a refresh, never patched in place. This
// keeps the displayed state from drifting away from the daemon's truth.
type ContainerSummary struct {
	// ID is the unique, immutable container identifier (64-char hash).
	ID string `json:"id"`

	// Name is the human-readable container name, without the leading "/"
	// artifact the Docker API prepends.
	Name string `json:"name"`

	// Image is the image reference the container was created from.
	Image string `json:"image"`

	// Status is the daemon-reported lifecycle state.
	Status ContainerStatus `json:"status"`

	// StatusText is the daemon's descriptive status line
	// (e.g., "Up 2 hours", "Exited (0) 5 minutes ago").
	StatusText string `json:"statusText,omitempty"`

	// CreatedAt is when the container was created.
	CreatedAt time.Time `json:"createdAt"`

	// Ports lists the container's published port mappings.
	Ports []PortBinding `json:"ports,omitempty"`

	// Labels is the full label set on the container.
	Labels map[string]string `json:"labels,omitempty"`
}

// ShortID returns the 12-character abbreviated container ID that Docker
// tooling conventionally displays. IDs shorter than 12 characters
// (possible in tests) are returned unchanged.
func (c ContainerSummary) ShortID() string {
	if len(c.ID) > 12 {
		return c.ID[:12]
	}
	return c.ID
}

// PortBinding represents a single container-to-host port mapping.
type PortBinding struct {
	// ContainerPort is the port number inside the container.
	ContainerPort int `json:"containerPort"`

	// HostPort is the published port on the host. Zero when the port
	// is exposed but not published.
	HostPort int `json:"hostPort,omitempty"`

	// Protocol is the network protocol, "tcp" or "udp".
	Protocol string `json:"protocol"`
}

// String returns a docker-style rendering of the binding,
// e.g. "8080->80/tcp" or "6379/tcp" for an unpublished port.
func (p PortBinding) String() string {
	proto := p.Protocol
	if proto == "" {
		proto = "tcp"
	}
	if p.HostPort == 0 {
		return fmt.Sprintf("%d/%s", p.ContainerPort, proto)
	}
	return fmt.Sprintf("%d->%d/%s", p.HostPort, p.ContainerPort, proto)
}

// ContainerDetail is the inspect-derived view of a single container,
// shown by the "container info" action. It carries more than
// ContainerSummary but far less than the raw inspect payload: only
// the fields the interactive detail view renders.
type ContainerDetail struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Status     ContainerStatus `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	StartedAt  time.Time       `json:"startedAt,omitempty"`
	IPAddress  string          `json:"ipAddress,omitempty"`
	Ports      []PortBinding   `json:"ports,omitempty"`
	Command    string          `json:"command,omitempty"`
	RestartCnt int             `json:"restartCount"`
}

// ContainerStats is a single resource-usage sample for a running
// container, computed from one daemon stats read (no streaming).
type ContainerStats struct {
	// CPUPercent is the CPU usage over the sample interval, normalized
	// the same way `docker stats` does (can exceed 100 on multi-core).
	CPUPercent float64 `json:"cpuPercent"`

	// MemoryUsage and MemoryLimit are in bytes. MemoryPercent is
	// usage/limit; zero when the limit is unset.
	MemoryUsage   uint64  `json:"memoryUsage"`
	MemoryLimit   uint64  `json:"memoryLimit"`
	MemoryPercent float64 `json:"memoryPercent"`

	// NetworkRx and NetworkTx are cumulative bytes across all interfaces.
	NetworkRx uint64 `json:"networkRx"`
	NetworkTx uint64 `json:"networkTx"`

	// PIDs is the number of processes inside the container.
	PIDs uint64 `json:"pids"`
}

// ExitCode defines the CLI's process exit codes. The surface is
// deliberately small: an interactive tool either quits cleanly or fails.
type ExitCode int

const (
	// ExitSuccess indicates a clean quit.
	ExitSuccess ExitCode = 0

	// ExitGeneralError covers all fatal failures, including the daemon
	// being unreachable at startup.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
