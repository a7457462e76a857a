package docker

import (
	"context"
	"fmt"
	"net"
	"os"
	"runtime"
	"time"

	"github.com/docker/docker/client"

	"github.com/shinji-kodama/dockman/internal/model"
)

// defaultPingTimeout is the maximum duration to wait for a Docker daemon
// response during a Ping operation. 5 seconds is generous enough for most
// environments, including Docker Desktop on macOS which can be slower
// than native Linux Docker.
const defaultPingTimeout = 5 * time.Second

// defaultRequestTimeout bounds every non-streaming daemon call. A call
// that exceeds it is classified as Unreachable rather than left hanging
// the interactive loop. Log following and exec are exempt: they are
// expected to block until the user cancels or the command finishes.
const defaultRequestTimeout = 10 * time.Second

// Client wraps the Docker Engine SDK client. It owns no container state:
// every method is a round-trip to the daemon, and the resource cache is
// the only place snapshots live.
//
// Usage:
//
//	c, err := docker.NewClient()
//	if err != nil { /* handle */ }
//	defer c.Close()
//	if err := c.Ping(ctx); err != nil { /* daemon not running */ }
type Client struct {
	// inner is the underlying Docker SDK client. Wrapped rather than
	// embedded to control the exposed API surface.
	inner *client.Client

	// requestTimeout bounds non-streaming calls.
	requestTimeout time.Duration

	// stopTimeout is the SIGTERM grace period in seconds passed to
	// container stop calls. Zero defers to the daemon default.
	stopTimeout int
}

// compile-time check that Client satisfies the API contract.
var _ API = (*Client)(nil)

// NewClient creates a new Docker client with automatic socket detection.
//
// The detection strategy follows this priority order:
//  1. DOCKER_HOST environment variable (if set, used as-is)
//  2. Platform-specific default socket paths:
//     - Linux: /var/run/docker.sock
//     - macOS: /var/run/docker.sock, then ~/.docker/run/docker.sock
//     - Windows: npipe:////./pipe/docker_engine (Docker Named Pipe)
//
// Returns a model.CLIError with ExitGeneralError if no Docker socket is
// found or the client cannot be created. Socket presence does not prove
// the daemon is alive; call Ping for that.
func NewClient() (*Client, error) {
	// Respect an explicit DOCKER_HOST unconditionally and let the SDK
	// handle the connection string parsing.
	if dockerHost := os.Getenv("DOCKER_HOST"); dockerHost != "" {
		return newClientWithHost(dockerHost)
	}

	host, err := detectDockerHost()
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			"Docker socket not found",
			err,
		)
	}

	return newClientWithHost(host)
}

// newClientWithHost creates a Docker client connected to the specified
// host. The host parameter should be a valid Docker connection string
// (e.g., "unix:///var/run/docker.sock" or "npipe:////./pipe/docker_engine").
func newClientWithHost(host string) (*Client, error) {
	// WithAPIVersionNegotiation ensures compatibility across daemon
	// versions without hardcoding a specific API version.
	c, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to create Docker client for host %q", host),
			err,
		)
	}

	return &Client{inner: c, requestTimeout: defaultRequestTimeout}, nil
}

// detectDockerHost determines the Docker socket path for the current
// platform. It probes known socket paths and returns the first one that
// exists. Existence checks are used rather than connection attempts
// because they are fast and don't require a running daemon; Ping handles
// connectivity verification.
func detectDockerHost() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return detectUnixSocket([]string{
			"/var/run/docker.sock",
		})

	case "darwin":
		// Docker Desktop on macOS may expose the socket either at the
		// standard path (via symlink) or under the user's home directory.
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return detectUnixSocket([]string{
				"/var/run/docker.sock",
			})
		}
		return detectUnixSocket([]string{
			"/var/run/docker.sock",
			homeDir + "/.docker/run/docker.sock",
		})

	case "windows":
		// Windows uses a fixed Named Pipe. os.Stat does not work on named
		// pipes, so probe with a brief dial instead.
		pipePath := `//./pipe/docker_engine`
		conn, err := net.DialTimeout("pipe", pipePath, 1*time.Second)
		if err == nil {
			conn.Close()
			return "npipe://" + pipePath, nil
		}
		return "", fmt.Errorf("Docker named pipe not found at %s: %w", pipePath, err)

	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// detectUnixSocket probes a list of Unix socket paths and returns the
// Docker host URI for the first socket that exists on the filesystem.
// Paths are checked in order, most-preferred first.
func detectUnixSocket(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return "unix://" + path, nil
		}
	}
	return "", fmt.Errorf(
		"Docker socket not found at any of: %v (is Docker running?)",
		paths,
	)
}

// Ping verifies that the Docker daemon is reachable and responsive.
// It sends a lightweight ping request and waits up to defaultPingTimeout.
//
// Returns a model.CLIError with ExitGeneralError if the daemon does not
// respond; the interactive session treats this as fatal at startup and
// recoverable afterwards.
func (c *Client) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	_, err := c.inner.Ping(pingCtx)
	if err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			"Docker daemon is not responding (is Docker running?)",
			err,
		)
	}
	return nil
}

// SetStopTimeout overrides the SIGTERM grace period, in seconds, used
// by Stop and Restart. Zero restores the daemon default.
func (c *Client) SetStopTimeout(seconds int) {
	c.stopTimeout = seconds
}

// Close releases all resources held by the Docker client. Safe to call
// multiple times; typically deferred immediately after NewClient().
func (c *Client) Close() error {
	if c.inner != nil {
		return c.inner.Close()
	}
	return nil
}

// opContext derives a bounded child context for a non-streaming daemon
// call. The returned cancel func must always be called.
func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.requestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
