package docker

import (
	"context"
	"errors"
	"net"

	cerrdefs "github.com/containerd/errdefs"

	"github.com/shinji-kodama/dockman/internal/model"
)

// Classify maps a raw daemon client error into the model.ErrorKind
// taxonomy. Every failure the daemon client can produce lands in exactly
// one bucket, so the dispatcher can build an ActionResult without string
// matching on SDK error text.
//
// Classification rules:
//   - context cancellation          → Cancelled (user interrupt, not an error)
//   - not-found API errors          → NotFound (snapshot drifted from daemon)
//   - permission/authz API errors   → PermissionDenied
//   - timeouts, connection refusals → Unreachable (daemon down or hung)
//   - everything else               → Internal
func Classify(err error) model.ErrorKind {
	if err == nil {
		return model.ErrNone
	}

	// User-initiated cancellation comes through as context.Canceled from
	// whatever SDK call was blocked at the time.
	if errors.Is(err, context.Canceled) {
		return model.ErrCancelled
	}

	// The Docker SDK surfaces API errors through the containerd errdefs
	// error interfaces, so the predicates work directly on client errors.
	switch {
	case cerrdefs.IsNotFound(err):
		return model.ErrNotFound
	case cerrdefs.IsPermissionDenied(err):
		return model.ErrPermissionDenied
	case cerrdefs.IsUnavailable(err):
		return model.ErrUnreachable
	}

	// Deadline overruns and transport-level failures both mean the daemon
	// cannot be talked to right now.
	if errors.Is(err, context.DeadlineExceeded) {
		return model.ErrUnreachable
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return model.ErrUnreachable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return model.ErrUnreachable
	}

	return model.ErrInternal
}

// FailureResult converts a daemon client error into a failed ActionResult
// for the given action description. The error's classification rides
// along so the caller can apply kind-specific policy (e.g., refresh the
// cache on NotFound).
func FailureResult(action string, err error) model.ActionResult {
	kind := Classify(err)
	if kind == model.ErrCancelled {
		// Cancellation is a clean outcome, not a failure.
		return model.ActionResult{Success: true, Kind: kind, Message: action + " cancelled"}
	}
	return model.Failed(kind, "%s failed: %v", action, err)
}
