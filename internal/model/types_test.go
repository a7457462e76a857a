// Package model — types_test.go contains unit tests for the container
// status enum, summary helpers, and the CLIError type.
package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseContainerStatus verifies that daemon state strings are
// recognized case-insensitively and that unknown states are preserved
// alongside an error so the UI can display them verbatim.
func TestParseContainerStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ContainerStatus
		wantErr bool
	}{
		{
			name:  "running",
			input: "running",
			want:  StatusRunning,
		},
		{
			name:  "exited",
			input: "exited",
			want:  StatusExited,
		},
		{
			name:  "paused",
			input: "paused",
			want:  StatusPaused,
		},
		{
			name:  "created",
			input: "created",
			want:  StatusCreated,
		},
		{
			name:  "restarting",
			input: "restarting",
			want:  StatusRestarting,
		},
		{
			name:  "dead",
			input: "dead",
			want:  StatusDead,
		},
		{
			name:  "uppercase is normalized",
			input: "Running",
			want:  StatusRunning,
		},
		{
			name:    "unknown state preserved with error",
			input:   "hibernating",
			want:    ContainerStatus("hibernating"),
			wantErr: true,
		},
		{
			name:    "empty state",
			input:   "",
			want:    ContainerStatus(""),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContainerStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestContainerStatusIsRunning verifies that only the running state
// is considered runnable for stop/stats/exec purposes.
func TestContainerStatusIsRunning(t *testing.T) {
	assert.True(t, StatusRunning.IsRunning())
	assert.False(t, StatusExited.IsRunning())
	assert.False(t, StatusPaused.IsRunning())
	assert.False(t, StatusCreated.IsRunning())
	assert.False(t, StatusRestarting.IsRunning())
}

// TestContainerSummaryShortID verifies the 12-character ID abbreviation,
// including IDs already shorter than 12 characters.
func TestContainerSummaryShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{
			name: "full 64-char ID is truncated",
			id:   "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1b2",
			want: "a1b2c3d4e5f6",
		},
		{
			name: "short ID unchanged",
			id:   "a1b2c3",
			want: "a1b2c3",
		},
		{
			name: "exactly 12 chars unchanged",
			id:   "a1b2c3d4e5f6",
			want: "a1b2c3d4e5f6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ContainerSummary{ID: tt.id}
			assert.Equal(t, tt.want, c.ShortID())
		})
	}
}

// TestPortBindingString verifies the docker-style port rendering for
// published and exposed-only ports.
func TestPortBindingString(t *testing.T) {
	tests := []struct {
		name    string
		binding PortBinding
		want    string
	}{
		{
			name:    "published tcp port",
			binding: PortBinding{ContainerPort: 80, HostPort: 8080, Protocol: "tcp"},
			want:    "8080->80/tcp",
		},
		{
			name:    "exposed but unpublished",
			binding: PortBinding{ContainerPort: 6379, Protocol: "tcp"},
			want:    "6379/tcp",
		},
		{
			name:    "udp port",
			binding: PortBinding{ContainerPort: 53, HostPort: 5353, Protocol: "udp"},
			want:    "5353->53/udp",
		},
		{
			name:    "missing protocol defaults to tcp",
			binding: PortBinding{ContainerPort: 80, HostPort: 80},
			want:    "80->80/tcp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.binding.String())
		})
	}
}

// TestCLIError verifies error formatting, unwrapping, and exit code
// propagation through the CLIError type.
func TestCLIError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewCLIError(ExitGeneralError, "daemon is not responding")
		assert.Equal(t, "daemon is not responding", err.Error())
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error is included and unwrappable", func(t *testing.T) {
		underlying := fmt.Errorf("dial unix /var/run/docker.sock: no such file")
		err := WrapCLIError(ExitGeneralError, "failed to connect", underlying)
		assert.Contains(t, err.Error(), "failed to connect")
		assert.Contains(t, err.Error(), "no such file")
		assert.True(t, errors.Is(err, underlying))
	})
}
