package docker

import (
	"context"
	"io"

	"github.com/shinji-kodama/dockman/internal/model"
)

// API is the daemon client contract consumed by the resource cache, the
// command dispatcher, and the CLI. Abstracting the Docker SDK behind an
// interface lets tests substitute the Mock so no daemon is required.
//
// All methods take a context; non-streaming calls are additionally
// bounded by the client's request timeout, and a timeout is classified
// as model.ErrUnreachable by Classify.
type API interface {
	// List returns summaries of containers known to the daemon.
	// When all is false, only running containers are returned.
	List(ctx context.Context, all bool) ([]model.ContainerSummary, error)

	// Inspect returns the detail view for one container.
	// Fails with a not-found error when the ID no longer exists.
	Inspect(ctx context.Context, id string) (model.ContainerDetail, error)

	// Start starts a stopped container.
	Start(ctx context.Context, id string) error

	// Stop gracefully stops a running container, falling back to SIGKILL
	// after the daemon-side timeout.
	Stop(ctx context.Context, id string) error

	// Restart stops and starts a container in one daemon operation.
	Restart(ctx context.Context, id string) error

	// Remove deletes a container. Force removes a running container too.
	Remove(ctx context.Context, id string, force bool) error

	// Logs copies the container's log output to out. Finite when
	// opts.Follow is false; otherwise streams until ctx is cancelled.
	// The underlying connection is always released before returning.
	Logs(ctx context.Context, id string, opts LogsOptions, out io.Writer) error

	// Stats takes a single resource usage sample of a running container.
	Stats(ctx context.Context, id string) (model.ContainerStats, error)

	// Exec runs cmd inside the container, copies combined output to out,
	// and returns the command's exit code.
	Exec(ctx context.Context, id string, cmd []string, out io.Writer) (int, error)

	// Close releases the daemon connection.
	Close() error
}
