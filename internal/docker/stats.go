// stats.go implements one-shot resource usage sampling. The daemon's
// stats endpoint is stream-oriented; dockman reads a single sample per
// request, which is enough for an on-demand interactive view and avoids
// holding a connection open between menu visits.
package docker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/docker/docker/api/types/container"

	"github.com/shinji-kodama/dockman/internal/model"
)

// Stats takes a single resource usage sample of a running container and
// reduces it to the domain stats view.
func (c *Client) Stats(ctx context.Context, id string) (model.ContainerStats, error) {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	// stream=false asks the daemon for exactly one sample, pre-populated
	// with the precpu values needed for the usage delta.
	resp, err := c.inner.ContainerStats(opCtx, id, false)
	if err != nil {
		return model.ContainerStats{}, err
	}
	defer resp.Body.Close()

	var raw container.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return model.ContainerStats{}, fmt.Errorf("failed to decode stats for container %q: %w", id, err)
	}

	return reduceStats(raw), nil
}

// reduceStats converts a raw daemon stats sample into the domain view.
// Pure function, kept separate from the transport so the arithmetic is
// testable with fixture data.
func reduceStats(raw container.StatsResponse) model.ContainerStats {
	stats := model.ContainerStats{
		CPUPercent:  cpuPercent(raw),
		MemoryUsage: raw.MemoryStats.Usage,
		MemoryLimit: raw.MemoryStats.Limit,
		PIDs:        raw.PidsStats.Current,
	}

	if stats.MemoryLimit > 0 {
		stats.MemoryPercent = float64(stats.MemoryUsage) / float64(stats.MemoryLimit) * 100.0
	}

	// Sum across all interfaces; singling out eth0 misses containers on
	// user-defined networks.
	for _, network := range raw.Networks {
		stats.NetworkRx += network.RxBytes
		stats.NetworkTx += network.TxBytes
	}

	return stats
}

// cpuPercent computes CPU usage over the sample interval the same way
// `docker stats` does: the container's share of the host CPU delta,
// scaled by the number of online CPUs. Can exceed 100 on multi-core
// hosts, by the same convention.
func cpuPercent(raw container.StatsResponse) float64 {
	cpuDelta := float64(raw.CPUStats.CPUUsage.TotalUsage) - float64(raw.PreCPUStats.CPUUsage.TotalUsage)
	systemDelta := float64(raw.CPUStats.SystemUsage) - float64(raw.PreCPUStats.SystemUsage)

	if cpuDelta <= 0 || systemDelta <= 0 {
		return 0
	}

	onlineCPUs := float64(raw.CPUStats.OnlineCPUs)
	if onlineCPUs == 0 {
		// Older daemons omit OnlineCPUs; the per-CPU usage list length
		// is the documented fallback.
		onlineCPUs = float64(len(raw.CPUStats.CPUUsage.PercpuUsage))
	}
	if onlineCPUs == 0 {
		onlineCPUs = 1
	}

	return cpuDelta / systemDelta * onlineCPUs * 100.0
}
