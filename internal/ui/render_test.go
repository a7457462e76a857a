package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/dockman/internal/model"
)

func TestMain(m *testing.M) {
	// Colors off so assertions see plain text.
	color.NoColor = true
	m.Run()
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		want string
	}{
		{name: "zero", n: 0, want: "0B"},
		{name: "bytes", n: 512, want: "512B"},
		{name: "kibibytes", n: 2048, want: "2.0KiB"},
		{name: "mebibytes", n: 5 * 1024 * 1024, want: "5.0MiB"},
		{name: "gibibytes", n: 3 * 1024 * 1024 * 1024, want: "3.0GiB"},
		{name: "fractional", n: 1536, want: "1.5KiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.n))
		})
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "zero time", t: time.Time{}, want: "-"},
		{name: "seconds", t: now.Add(-30 * time.Second), want: "30s ago"},
		{name: "minutes", t: now.Add(-5 * time.Minute), want: "5m ago"},
		{name: "hours", t: now.Add(-3 * time.Hour), want: "3h ago"},
		{name: "days", t: now.Add(-49 * time.Hour), want: "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAge(tt.t, now))
		})
	}
}

func TestFormatPorts(t *testing.T) {
	assert.Equal(t, "-", FormatPorts(nil))

	ports := []model.PortBinding{
		{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
		{ContainerPort: 9000, Protocol: "udp"},
	}
	got := FormatPorts(ports)
	assert.Contains(t, got, "8080->80/tcp")
	assert.Contains(t, got, ", ")
}

func TestRenderContainerTable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	containers := []model.ContainerSummary{
		{
			ID:        "abcdef1234567890",
			Name:      "web",
			Image:     "nginx:1.27",
			Status:    model.StatusRunning,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:     "fedcba0987654321",
			Name:   "db",
			Image:  "postgres:16",
			Status: model.StatusExited,
		},
	}

	var buf bytes.Buffer
	RenderContainerTable(&buf, containers, now)
	out := buf.String()

	require.Contains(t, out, "NAME")
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "web")
	assert.Contains(t, out, "nginx:1.27")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "abcdef123456")
	assert.Contains(t, out, "db")
	assert.Contains(t, out, "exited")
}

func TestRenderContainerTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderContainerTable(&buf, nil, time.Now())
	assert.Contains(t, buf.String(), "No containers found")
}

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name   string
		result model.ActionResult
		want   string
	}{
		{
			name:   "success",
			result: model.OK("stopped web"),
			want:   "✔ stopped web",
		},
		{
			name:   "failure",
			result: model.Failed(model.ErrNotFound, "no such container"),
			want:   "✗ no such container",
		},
		{
			name: "cancelled stream",
			result: model.ActionResult{
				Success: true,
				Kind:    model.ErrCancelled,
				Message: "view logs cancelled",
			},
			want: "⚠ view logs cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderResult(&buf, tt.result)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	RenderStats(&buf, model.ContainerSummary{Name: "web"}, model.ContainerStats{
		CPUPercent:    12.5,
		MemoryUsage:   256 * 1024 * 1024,
		MemoryLimit:   1024 * 1024 * 1024,
		MemoryPercent: 25.0,
		PIDs:          7,
	})
	out := buf.String()

	assert.Contains(t, out, "Stats: web")
	assert.Contains(t, out, "12.5%")
	assert.Contains(t, out, "256.0MiB / 1.0GiB")
	assert.Contains(t, out, "7")
}

func TestRenderDetail(t *testing.T) {
	var buf bytes.Buffer
	RenderDetail(&buf, model.ContainerDetail{
		ID:        "abcdef1234567890",
		Name:      "web",
		Image:     "nginx:1.27",
		Status:    model.StatusRunning,
		IPAddress: "172.17.0.2",
		Ports: []model.PortBinding{
			{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
		},
		Command: "nginx -g daemon off;",
	})
	out := buf.String()

	assert.Contains(t, out, "Container: web")
	assert.Contains(t, out, "172.17.0.2")
	assert.Contains(t, out, "8080->80/tcp")
	assert.Contains(t, out, "nginx -g daemon off;")
}
