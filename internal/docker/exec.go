// exec.go implements in-container command execution for the interactive
// "execute command" action: create an exec instance, attach, drain its
// output, then inspect for the exit code.
package docker

import (
	"context"
	"io"

	"github.com/docker/docker/api/types/container"
)

// Exec runs cmd inside the container, copies its combined output to out,
// and returns the command's exit code.
//
// Like log following, the call is bounded by the caller's context rather
// than the request timeout: a long-running command blocks until it
// finishes or the user cancels, and cancellation closes the attached
// connection.
func (c *Client) Exec(ctx context.Context, id string, cmd []string, out io.Writer) (int, error) {
	created, err := c.inner.ContainerExecCreate(ctx, id, container.ExecOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return 0, err
	}

	attached, err := c.inner.ContainerExecAttach(ctx, created.ID, container.ExecAttachOptions{})
	if err != nil {
		return 0, err
	}
	defer attached.Close()

	// Exec output uses the same multiplexed framing as non-TTY logs.
	if err := copyLogStream(out, attached.Reader); err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, err
	}

	// The exit code only becomes available once the command has finished,
	// which the drained stream guarantees.
	inspect, err := c.inner.ContainerExecInspect(ctx, created.ID)
	if err != nil {
		return 0, err
	}

	return inspect.ExitCode, nil
}
