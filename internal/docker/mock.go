package docker

import (
	"context"
	"io"

	"github.com/shinji-kodama/dockman/internal/model"
)

// Mock is a test double for the API interface. Tests populate the
// function fields they care about; unset fields behave as succeeding
// no-ops so simple tests stay short. It should be used by tests so the
// actual Docker API is never called.
type Mock struct {
	ListFunc    func(ctx context.Context, all bool) ([]model.ContainerSummary, error)
	InspectFunc func(ctx context.Context, id string) (model.ContainerDetail, error)
	StartFunc   func(ctx context.Context, id string) error
	StopFunc    func(ctx context.Context, id string) error
	RestartFunc func(ctx context.Context, id string) error
	RemoveFunc  func(ctx context.Context, id string, force bool) error
	LogsFunc    func(ctx context.Context, id string, opts LogsOptions, out io.Writer) error
	StatsFunc   func(ctx context.Context, id string) (model.ContainerStats, error)
	ExecFunc    func(ctx context.Context, id string, cmd []string, out io.Writer) (int, error)
	CloseFunc   func() error

	// Calls records every method invocation in order, for tests that
	// assert on the sequence of daemon interactions.
	Calls []string
}

var _ API = (*Mock)(nil)

func (m *Mock) record(call string) {
	m.Calls = append(m.Calls, call)
}

// List implements API.
func (m *Mock) List(ctx context.Context, all bool) ([]model.ContainerSummary, error) {
	m.record("list")
	if m.ListFunc != nil {
		return m.ListFunc(ctx, all)
	}
	return nil, nil
}

// Inspect implements API.
func (m *Mock) Inspect(ctx context.Context, id string) (model.ContainerDetail, error) {
	m.record("inspect " + id)
	if m.InspectFunc != nil {
		return m.InspectFunc(ctx, id)
	}
	return model.ContainerDetail{ID: id}, nil
}

// Start implements API.
func (m *Mock) Start(ctx context.Context, id string) error {
	m.record("start " + id)
	if m.StartFunc != nil {
		return m.StartFunc(ctx, id)
	}
	return nil
}

// Stop implements API.
func (m *Mock) Stop(ctx context.Context, id string) error {
	m.record("stop " + id)
	if m.StopFunc != nil {
		return m.StopFunc(ctx, id)
	}
	return nil
}

// Restart implements API.
func (m *Mock) Restart(ctx context.Context, id string) error {
	m.record("restart " + id)
	if m.RestartFunc != nil {
		return m.RestartFunc(ctx, id)
	}
	return nil
}

// Remove implements API.
func (m *Mock) Remove(ctx context.Context, id string, force bool) error {
	m.record("remove " + id)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id, force)
	}
	return nil
}

// Logs implements API.
func (m *Mock) Logs(ctx context.Context, id string, opts LogsOptions, out io.Writer) error {
	m.record("logs " + id)
	if m.LogsFunc != nil {
		return m.LogsFunc(ctx, id, opts, out)
	}
	return nil
}

// Stats implements API.
func (m *Mock) Stats(ctx context.Context, id string) (model.ContainerStats, error) {
	m.record("stats " + id)
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, id)
	}
	return model.ContainerStats{}, nil
}

// Exec implements API.
func (m *Mock) Exec(ctx context.Context, id string, cmd []string, out io.Writer) (int, error) {
	m.record("exec " + id)
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, id, cmd, out)
	}
	return 0, nil
}

// Close implements API.
func (m *Mock) Close() error {
	m.record("close")
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
