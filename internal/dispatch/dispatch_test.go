// Package dispatch — dispatch_test.go pins the dispatcher's three
// policies against a scripted daemon mock: confirmation for destructive
// actions only, one action in flight at a time, and refresh after
// mutations and not-found drift.
package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/dockman/internal/cache"
	"github.com/shinji-kodama/dockman/internal/docker"
	"github.com/shinji-kodama/dockman/internal/model"
)

// fixture wires a dispatcher to a mock daemon and a pre-refreshed cache
// holding the given containers. confirmAnswer scripts the ConfirmFunc;
// confirmCalls counts how often it ran.
type fixture struct {
	mock         *docker.Mock
	cache        *cache.Cache
	dispatcher   *Dispatcher
	out          *bytes.Buffer
	confirmCalls int
}

func newFixture(t *testing.T, confirmAnswer bool, containers ...model.ContainerSummary) *fixture {
	t.Helper()

	f := &fixture{out: &bytes.Buffer{}}
	f.mock = &docker.Mock{
		ListFunc: func(ctx context.Context, all bool) ([]model.ContainerSummary, error) {
			return containers, nil
		},
	}
	f.cache = cache.New(f.mock, false)
	require.NoError(t, f.cache.Refresh(context.Background()))

	confirm := func(req model.ActionRequest, target model.ContainerSummary) (bool, error) {
		f.confirmCalls++
		return confirmAnswer, nil
	}
	f.dispatcher = New(f.mock, f.cache, confirm, f.out)
	return f
}

// running returns a running container summary for fixtures.
func running(id, name string) model.ContainerSummary {
	return model.ContainerSummary{ID: id, Name: name, Status: model.StatusRunning}
}

// TestDestructiveActionsRequireConfirmation verifies that Stop and
// Remove always confirm and that Start, Restart, and ViewLogs never do,
// regardless of container state.
func TestDestructiveActionsRequireConfirmation(t *testing.T) {
	tests := []struct {
		kind        model.ActionKind
		wantConfirm bool
	}{
		{model.ActionStart, false},
		{model.ActionStop, true},
		{model.ActionRestart, false},
		{model.ActionRemove, true},
		{model.ActionViewLogs, false},
		{model.ActionShowStats, false},
		{model.ActionShowDetail, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			f := newFixture(t, true, running("a1", "web"))

			result := f.dispatcher.Dispatch(context.Background(),
				model.ActionRequest{TargetID: "a1", Kind: tt.kind})

			require.True(t, result.Success, "unexpected failure: %s", result.Message)
			if tt.wantConfirm {
				assert.Equal(t, 1, f.confirmCalls, "%s must confirm", tt.kind)
			} else {
				assert.Zero(t, f.confirmCalls, "%s must not confirm", tt.kind)
			}
		})
	}
}

// TestDeclinedConfirmationAbortsWithoutDaemonCall verifies that refusing
// the prompt leaves the daemon untouched and produces a no-op result.
func TestDeclinedConfirmationAbortsWithoutDaemonCall(t *testing.T) {
	f := newFixture(t, false, running("a1", "web"))

	result := f.dispatcher.Dispatch(context.Background(),
		model.ActionRequest{TargetID: "a1", Kind: model.ActionRemove})

	assert.False(t, result.Success)
	assert.Equal(t, model.ErrNone, result.Kind, "a refusal is not an error")
	assert.Contains(t, result.Message, "not confirmed")
	assert.NotContains(t, f.mock.Calls, "remove a1")
}

// TestStopThenRefreshReflectsExited covers the full stop flow: stop "a1",
// confirm, daemon succeeds, and the refreshed cache reports Exited.
func TestStopThenRefreshReflectsExited(t *testing.T) {
	stopped := false
	mock := &docker.Mock{
		StopFunc: func(ctx context.Context, id string) error {
			stopped = true
			return nil
		},
		ListFunc: func(ctx context.Context, all bool) ([]model.ContainerSummary, error) {
			status := model.StatusRunning
			if stopped {
				status = model.StatusExited
			}
			return []model.ContainerSummary{{ID: "a1", Name: "web", Status: status}}, nil
		},
	}
	c := cache.New(mock, false)
	require.NoError(t, c.Refresh(context.Background()))

	d := New(mock, c, func(model.ActionRequest, model.ContainerSummary) (bool, error) {
		return true, nil
	}, io.Discard)

	result := d.Dispatch(context.Background(),
		model.ActionRequest{TargetID: "a1", Kind: model.ActionStop})

	require.True(t, result.Success, result.Message)
	ctr, ok := c.Get("a1")
	require.True(t, ok)
	assert.Equal(t, model.StatusExited, ctr.Status,
		"cache after dispatch must reflect the daemon-reported status")
}

// TestNotFoundTriggersRefresh replays the drift scenario: logs of a
// removed container fail NotFound, and the automatic refresh drops the
// stale ID from the snapshot.
func TestNotFoundTriggersRefresh(t *testing.T) {
	mock := &docker.Mock{
		LogsFunc: func(ctx context.Context, id string, opts docker.LogsOptions, out io.Writer) error {
			return fmt.Errorf("no such container %q: %w", id, cerrdefs.ErrNotFound)
		},
	}
	listings := 0
	mock.ListFunc = func(ctx context.Context, all bool) ([]model.ContainerSummary, error) {
		listings++
		if listings == 1 {
			return []model.ContainerSummary{running("gone", "ghost")}, nil
		}
		return nil, nil
	}

	c := cache.New(mock, false)
	require.NoError(t, c.Refresh(context.Background()))

	d := New(mock, c, nil, io.Discard)
	result := d.Dispatch(context.Background(),
		model.ActionRequest{TargetID: "gone", Kind: model.ActionViewLogs})

	assert.False(t, result.Success)
	assert.Equal(t, model.ErrNotFound, result.Kind)
	_, ok := c.Get("gone")
	assert.False(t, ok, "not-found must refresh the snapshot and drop the stale ID")
}

// TestReadOnlyActionsSkipRefresh verifies that viewing logs does not
// re-list containers: the snapshot was not invalidated.
func TestReadOnlyActionsSkipRefresh(t *testing.T) {
	f := newFixture(t, true, running("a1", "web"))
	listsBefore := countCalls(f.mock.Calls, "list")

	result := f.dispatcher.Dispatch(context.Background(),
		model.ActionRequest{TargetID: "a1", Kind: model.ActionViewLogs})

	require.True(t, result.Success)
	assert.Equal(t, listsBefore, countCalls(f.mock.Calls, "list"),
		"read-only actions must not refresh the cache")
}

// TestDispatchIsSerialized verifies the one-in-flight invariant: a
// second request issued while the first is executing is rejected.
func TestDispatchIsSerialized(t *testing.T) {
	executing := make(chan struct{})
	release := make(chan struct{})

	mock := &docker.Mock{
		StartFunc: func(ctx context.Context, id string) error {
			close(executing)
			<-release
			return nil
		},
		ListFunc: func(ctx context.Context, all bool) ([]model.ContainerSummary, error) {
			return []model.ContainerSummary{running("a1", "web")}, nil
		},
	}
	c := cache.New(mock, false)
	require.NoError(t, c.Refresh(context.Background()))
	d := New(mock, c, nil, io.Discard)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstResult model.ActionResult
	go func() {
		defer wg.Done()
		firstResult = d.Dispatch(context.Background(),
			model.ActionRequest{TargetID: "a1", Kind: model.ActionStart})
	}()

	<-executing
	secondResult := d.Dispatch(context.Background(),
		model.ActionRequest{TargetID: "a1", Kind: model.ActionStart})
	close(release)
	wg.Wait()

	assert.True(t, firstResult.Success, firstResult.Message)
	assert.False(t, secondResult.Success)
	assert.Contains(t, secondResult.Message, "another action")
}

// TestExecOutputAndExitCode verifies exec streams output to the
// dispatcher writer and reports nonzero exit codes in the result.
func TestExecOutputAndExitCode(t *testing.T) {
	f := newFixture(t, true, running("a1", "web"))
	f.mock.ExecFunc = func(ctx context.Context, id string, cmd []string, out io.Writer) (int, error) {
		fmt.Fprintln(out, "total 0")
		return 2, nil
	}

	result := f.dispatcher.Dispatch(context.Background(),
		model.ActionRequest{TargetID: "a1", Kind: model.ActionExecCommand, Command: []string{"ls", "/missing"}})

	require.True(t, result.Success)
	assert.Contains(t, result.Message, "exited with code 2")
	assert.Contains(t, f.out.String(), "total 0")
}

// TestStatsHandedToCallback verifies the read-only stats view reaches
// the UI callback rather than being rendered by the dispatcher.
func TestStatsHandedToCallback(t *testing.T) {
	f := newFixture(t, true, running("a1", "web"))
	f.mock.StatsFunc = func(ctx context.Context, id string) (model.ContainerStats, error) {
		return model.ContainerStats{CPUPercent: 12.5, PIDs: 3}, nil
	}

	var got model.ContainerStats
	f.dispatcher.OnStats = func(target model.ContainerSummary, stats model.ContainerStats) {
		got = stats
	}

	result := f.dispatcher.Dispatch(context.Background(),
		model.ActionRequest{TargetID: "a1", Kind: model.ActionShowStats})

	require.True(t, result.Success)
	assert.InDelta(t, 12.5, got.CPUPercent, 0.001)
	assert.Equal(t, uint64(3), got.PIDs)
}

// TestInvalidRequestRejected verifies malformed requests never reach the
// daemon.
func TestInvalidRequestRejected(t *testing.T) {
	f := newFixture(t, true)

	result := f.dispatcher.Dispatch(context.Background(),
		model.ActionRequest{Kind: model.ActionStart})

	assert.False(t, result.Success)
	assert.Equal(t, model.ErrInternal, result.Kind)
}

// countCalls counts mock calls with the given prefix.
func countCalls(calls []string, prefix string) int {
	n := 0
	for _, call := range calls {
		if call == prefix {
			n++
		}
	}
	return n
}
