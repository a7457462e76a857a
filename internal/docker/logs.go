// logs.go implements log retrieval for the daemon client. Docker
// multiplexes stdout and stderr over one connection for non-TTY
// containers; stdcopy demuxes them back apart before display.
package docker

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
)

// LogsOptions controls a log retrieval call.
type LogsOptions struct {
	// Tail limits output to the last N lines. Zero means everything.
	Tail int

	// Follow keeps the stream open, delivering new lines as the
	// container produces them, until the context is cancelled.
	Follow bool

	// Timestamps prefixes every line with its daemon-recorded time.
	Timestamps bool
}

// Logs copies the container's log output to out. With Follow unset the
// call is finite: it drains the requested tail and returns. With Follow
// set it blocks until ctx is cancelled; cancellation closes the
// underlying connection, so nothing leaks, and the resulting
// context.Canceled classifies as model.ErrCancelled.
//
// Not bounded by the request timeout; a followed stream is supposed to
// outlive it.
func (c *Client) Logs(ctx context.Context, id string, opts LogsOptions, out io.Writer) error {
	apiOpts := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     opts.Follow,
		Timestamps: opts.Timestamps,
	}
	if opts.Tail > 0 {
		apiOpts.Tail = strconv.Itoa(opts.Tail)
	}

	reader, err := c.inner.ContainerLogs(ctx, id, apiOpts)
	if err != nil {
		return err
	}
	// Scoped acquisition/release: the connection is closed on every exit
	// path, including cancellation mid-stream.
	defer reader.Close()

	if err := copyLogStream(out, reader); err != nil {
		// A cancelled context surfaces here as a read error on the
		// closed connection; report the cancellation, not the read noise.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}

// copyLogStream copies container log output to out, demuxing the Docker
// multiplexed stream format when present.
//
// TTY containers write one raw stream; non-TTY containers write 8-byte
// frame headers whose first byte is the stream ID (0, 1, or 2) followed
// by three zero bytes. Sniffing the first header avoids an extra inspect
// round-trip just to learn the TTY flag.
func copyLogStream(out io.Writer, reader io.Reader) error {
	buffered := bufio.NewReader(reader)

	header, err := buffered.Peek(4)
	if err != nil {
		// Short or empty stream: nothing multiplexed about it.
		_, copyErr := io.Copy(out, buffered)
		return copyErr
	}

	if isMultiplexHeader(header) {
		_, err = stdcopy.StdCopy(out, out, buffered)
		return err
	}

	_, err = io.Copy(out, buffered)
	return err
}

// isMultiplexHeader reports whether the 4 bytes look like the start of a
// Docker stream frame: stream ID byte (stdin/stdout/stderr) followed by
// three padding zeros. Printable log text never matches.
func isMultiplexHeader(header []byte) bool {
	if len(header) < 4 {
		return false
	}
	return header[0] <= 2 && header[1] == 0 && header[2] == 0 && header[3] == 0
}
