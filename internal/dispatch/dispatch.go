// Package dispatch maps user-selected menu actions onto daemon client
// calls. It owns the three session-level policies the UI must never
// reimplement:
//
//   - confirmation: destructive actions (stop, remove) go through an
//     injected ConfirmFunc before executing; everything else dispatches
//     immediately
//   - serialization: only one action executes at a time; a second
//     request while one is executing is rejected outright
//   - refresh: the resource cache is refreshed after every mutating
//     action, and after any not-found failure, since not-found means the
//     snapshot has drifted from daemon state
//
// Each action moves through selected → confirm-if-destructive →
// executing → completed, and every dispatched request produces exactly
// one ActionResult.
package dispatch

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/shinji-kodama/dockman/internal/cache"
	"github.com/shinji-kodama/dockman/internal/docker"
	"github.com/shinji-kodama/dockman/internal/model"
)

// ConfirmFunc asks the user to confirm a destructive action against the
// given container. Returning false aborts the dispatch without touching
// the daemon. The error covers input failures (closed stdin), not
// refusals.
type ConfirmFunc func(req model.ActionRequest, target model.ContainerSummary) (bool, error)

// Dispatcher executes ActionRequests against the daemon client and
// keeps the resource cache consistent afterwards.
type Dispatcher struct {
	client  docker.API
	cache   *cache.Cache
	confirm ConfirmFunc

	// Out receives raw stream output from logs and exec actions.
	Out io.Writer

	// OnStats and OnDetail hand fetched read-only views to the UI for
	// rendering, keeping presentation out of this package.
	OnStats  func(model.ContainerSummary, model.ContainerStats)
	OnDetail func(model.ContainerDetail)

	// LogTail is the number of lines fetched by a non-following logs
	// action. Zero fetches everything.
	LogTail int

	// executing guards the one-in-flight-action invariant.
	executing atomic.Bool
}

// New creates a Dispatcher. confirm must not be nil; destructive actions
// are refused rather than silently executed if it is.
func New(client docker.API, c *cache.Cache, confirm ConfirmFunc, out io.Writer) *Dispatcher {
	return &Dispatcher{
		client:  client,
		cache:   c,
		confirm: confirm,
		Out:     out,
	}
}

// Dispatch executes one ActionRequest and returns its ActionResult.
// Exactly one result is produced per request; no daemon error escapes
// as a Go error; everything is folded into the result for the UI to
// surface before the menu redraws.
func (d *Dispatcher) Dispatch(ctx context.Context, req model.ActionRequest) model.ActionResult {
	if err := req.Validate(); err != nil {
		return model.Failed(model.ErrInternal, "%v", err)
	}

	// One action at a time. The menu loop is single-threaded, so this
	// trips only if a caller misuses the dispatcher, but the invariant
	// is cheap to enforce and the tests pin it.
	if !d.executing.CompareAndSwap(false, true) {
		return model.Failed(model.ErrInternal, "another action is still executing")
	}
	defer d.executing.Store(false)

	target, _ := d.cache.Get(req.TargetID)
	if target.ID == "" {
		// Not in the snapshot (e.g. direct ID entry); carry the ID so
		// confirmation prompts and messages still name the target.
		target = model.ContainerSummary{ID: req.TargetID, Name: req.TargetID}
	}

	if req.Kind.IsDestructive() {
		if aborted, result := d.confirmOrAbort(req, target); aborted {
			return result
		}
	}

	slog.Debug("dispatching action", "kind", req.Kind, "target", target.ShortID())
	result := d.execute(ctx, req, target)

	// Refresh policy: mutating actions invalidate the snapshot, and a
	// not-found failure means it was already invalid.
	if result.Kind == model.ErrNotFound || (result.Success && req.Kind.Mutates()) {
		if err := d.cache.Refresh(ctx); err != nil {
			slog.Debug("post-action refresh failed", "error", err)
		}
	}

	return result
}

// confirmOrAbort runs the confirmation step for a destructive action.
// The first return value is true when dispatch must stop here.
func (d *Dispatcher) confirmOrAbort(req model.ActionRequest, target model.ContainerSummary) (bool, model.ActionResult) {
	if d.confirm == nil {
		return true, model.Failed(model.ErrInternal,
			"refusing %s without a confirmation prompt", req.Kind)
	}

	confirmed, err := d.confirm(req, target)
	if err != nil {
		return true, model.Failed(model.ErrInternal, "failed to read confirmation: %v", err)
	}
	if !confirmed {
		// A refusal is not an error, just a no-op outcome.
		return true, model.ActionResult{
			Success: false,
			Message: req.Kind.String() + " of " + target.Name + " not confirmed",
		}
	}
	return false, model.ActionResult{}
}

// execute performs the daemon call for the request. All failures come
// back classified through docker.FailureResult.
func (d *Dispatcher) execute(ctx context.Context, req model.ActionRequest, target model.ContainerSummary) model.ActionResult {
	switch req.Kind {
	case model.ActionStart:
		if err := d.client.Start(ctx, req.TargetID); err != nil {
			return docker.FailureResult("start", err)
		}
		return model.OK("started %s", target.Name)

	case model.ActionStop:
		if err := d.client.Stop(ctx, req.TargetID); err != nil {
			return docker.FailureResult("stop", err)
		}
		return model.OK("stopped %s", target.Name)

	case model.ActionRestart:
		if err := d.client.Restart(ctx, req.TargetID); err != nil {
			return docker.FailureResult("restart", err)
		}
		return model.OK("restarted %s", target.Name)

	case model.ActionRemove:
		if err := d.client.Remove(ctx, req.TargetID, false); err != nil {
			return docker.FailureResult("remove", err)
		}
		return model.OK("removed %s", target.Name)

	case model.ActionViewLogs:
		opts := docker.LogsOptions{Tail: d.LogTail, Follow: req.Follow}
		if err := d.client.Logs(ctx, req.TargetID, opts, d.Out); err != nil {
			return docker.FailureResult("view logs", err)
		}
		return model.OK("end of logs for %s", target.Name)

	case model.ActionShowStats:
		stats, err := d.client.Stats(ctx, req.TargetID)
		if err != nil {
			return docker.FailureResult("fetch stats", err)
		}
		if d.OnStats != nil {
			d.OnStats(target, stats)
		}
		return model.OK("stats for %s", target.Name)

	case model.ActionExecCommand:
		exitCode, err := d.client.Exec(ctx, req.TargetID, req.Command, d.Out)
		if err != nil {
			return docker.FailureResult("exec", err)
		}
		if exitCode != 0 {
			return model.OK("command exited with code %d", exitCode)
		}
		return model.OK("command %q completed", strings.Join(req.Command, " "))

	case model.ActionShowDetail:
		detail, err := d.client.Inspect(ctx, req.TargetID)
		if err != nil {
			return docker.FailureResult("inspect", err)
		}
		if d.OnDetail != nil {
			d.OnDetail(detail)
		}
		return model.OK("details for %s", target.Name)

	default:
		return model.Failed(model.ErrInternal, "unhandled action kind %q", req.Kind)
	}
}
