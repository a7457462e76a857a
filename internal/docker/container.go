// container.go implements the container lifecycle operations of the
// daemon client: list, inspect, start, stop, restart, remove. Each
// operation is a stateless round-trip; callers refresh the resource
// cache afterwards rather than patching snapshots in place.
package docker

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	// types.Container is the summary struct returned by ContainerList.
	"github.com/docker/docker/api/types"

	// container provides ListOptions, StopOptions, RemoveOptions and the
	// inspect response type for Docker container operations.
	"github.com/docker/docker/api/types/container"

	// nat provides the port map types used in inspect responses.
	"github.com/docker/go-connections/nat"

	"github.com/shinji-kodama/dockman/internal/model"
)

// List queries the daemon for container summaries. When all is false,
// only running containers are returned, the interactive session's
// default view, matching `docker ps`.
//
// Results are sorted by name so the numbered menu is stable across
// refreshes that don't change membership.
func (c *Client) List(ctx context.Context, all bool) ([]model.ContainerSummary, error) {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	containers, err := c.inner.ContainerList(opCtx, container.ListOptions{All: all})
	if err != nil {
		return nil, err
	}

	result := make([]model.ContainerSummary, 0, len(containers))
	for _, ctr := range containers {
		result = append(result, summaryFromAPI(ctr))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Inspect returns the detail view for one container. The daemon's
// not-found error passes through for Classify to pick up, which is how
// list/action races surface.
func (c *Client) Inspect(ctx context.Context, id string) (model.ContainerDetail, error) {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	resp, err := c.inner.ContainerInspect(opCtx, id)
	if err != nil {
		return model.ContainerDetail{}, err
	}

	return detailFromAPI(resp), nil
}

// Start starts a stopped container. The daemon rejects starting an
// already-running container; that error reaches the user as-is.
func (c *Client) Start(ctx context.Context, id string) error {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	return c.inner.ContainerStart(opCtx, id, container.StartOptions{})
}

// Stop gracefully stops a running container. A nil StopOptions.Timeout
// uses the daemon default (10 seconds of SIGTERM grace before SIGKILL).
func (c *Client) Stop(ctx context.Context, id string) error {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	return c.inner.ContainerStop(opCtx, id, c.stopOptions())
}

// Restart stops and starts a container in one daemon operation, keeping
// its configuration and network identity.
func (c *Client) Restart(ctx context.Context, id string) error {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	return c.inner.ContainerRestart(opCtx, id, c.stopOptions())
}

// stopOptions builds the StopOptions for stop and restart calls,
// carrying the configured grace period when one is set.
func (c *Client) stopOptions() container.StopOptions {
	opts := container.StopOptions{}
	if c.stopTimeout > 0 {
		timeout := c.stopTimeout
		opts.Timeout = &timeout
	}
	return opts
}

// Remove deletes a container. Stopped containers remove cleanly; force
// is required to remove a running one.
func (c *Client) Remove(ctx context.Context, id string, force bool) error {
	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	return c.inner.ContainerRemove(opCtx, id, container.RemoveOptions{Force: force})
}

// summaryFromAPI converts a Docker API container summary to the domain
// model. Pure mapping, no side effects; this is the only place the rest
// of the application learns the Docker SDK's list shape.
func summaryFromAPI(ctr types.Container) model.ContainerSummary {
	// Docker returns names as a slice, each with a leading "/" artifact
	// of the API that means nothing to users.
	name := ""
	if len(ctr.Names) > 0 {
		name = strings.TrimPrefix(ctr.Names[0], "/")
	}

	// Unknown states are preserved verbatim: better to show a strange
	// status than to hide a container.
	status, _ := model.ParseContainerStatus(ctr.State)

	ports := make([]model.PortBinding, 0, len(ctr.Ports))
	for _, p := range ctr.Ports {
		ports = append(ports, model.PortBinding{
			ContainerPort: int(p.PrivatePort),
			HostPort:      int(p.PublicPort),
			Protocol:      p.Type,
		})
	}
	sort.Slice(ports, func(i, j int) bool {
		return ports[i].ContainerPort < ports[j].ContainerPort
	})

	return model.ContainerSummary{
		ID:         ctr.ID,
		Name:       name,
		Image:      ctr.Image,
		Status:     status,
		StatusText: ctr.Status,
		CreatedAt:  time.Unix(ctr.Created, 0),
		Ports:      ports,
		Labels:     ctr.Labels,
	}
}

// detailFromAPI converts a Docker API inspect response into the domain
// detail view, keeping only the fields the interactive detail table
// renders.
func detailFromAPI(resp container.InspectResponse) model.ContainerDetail {
	detail := model.ContainerDetail{
		ID:         resp.ID,
		Name:       strings.TrimPrefix(resp.Name, "/"),
		RestartCnt: resp.RestartCount,
	}

	if created, err := time.Parse(time.RFC3339Nano, resp.Created); err == nil {
		detail.CreatedAt = created
	}

	if resp.State != nil {
		status, _ := model.ParseContainerStatus(resp.State.Status)
		detail.Status = status
		if started, err := time.Parse(time.RFC3339Nano, resp.State.StartedAt); err == nil {
			detail.StartedAt = started
		}
	}

	if resp.Config != nil {
		detail.Image = resp.Config.Image
		detail.Command = strings.Join(resp.Config.Cmd, " ")
	}

	if resp.NetworkSettings != nil {
		detail.IPAddress = resp.NetworkSettings.IPAddress
		// Containers on user-defined networks report their address per
		// endpoint rather than in the legacy top-level field.
		if detail.IPAddress == "" {
			for _, endpoint := range resp.NetworkSettings.Networks {
				if endpoint != nil && endpoint.IPAddress != "" {
					detail.IPAddress = endpoint.IPAddress
					break
				}
			}
		}
		detail.Ports = portsFromMap(resp.NetworkSettings.Ports)
	}

	return detail
}

// portsFromMap flattens an inspect response port map into the domain
// binding slice, sorted by container port for stable display.
func portsFromMap(portMap nat.PortMap) []model.PortBinding {
	if len(portMap) == 0 {
		return nil
	}

	var ports []model.PortBinding
	for port, bindings := range portMap {
		if len(bindings) == 0 {
			ports = append(ports, model.PortBinding{
				ContainerPort: port.Int(),
				Protocol:      port.Proto(),
			})
			continue
		}
		for _, binding := range bindings {
			hostPort, _ := strconv.Atoi(binding.HostPort)
			ports = append(ports, model.PortBinding{
				ContainerPort: port.Int(),
				HostPort:      hostPort,
				Protocol:      port.Proto(),
			})
		}
	}

	sort.Slice(ports, func(i, j int) bool {
		if ports[i].ContainerPort != ports[j].ContainerPort {
			return ports[i].ContainerPort < ports[j].ContainerPort
		}
		return ports[i].HostPort < ports[j].HostPort
	})

	return ports
}
