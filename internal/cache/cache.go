// Package cache holds the in-memory snapshot of daemon-reported
// containers used by the interactive session.
//
// The cache exclusively owns the last-fetched snapshot. Refresh is
// explicit and caller-triggered (after every mutating action and on the
// manual refresh command), never background polling, so the UI never
// changes out from under the user. Staleness between refreshes is
// accepted; a snapshot claims nothing about real-time accuracy.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shinji-kodama/dockman/internal/docker"
	"github.com/shinji-kodama/dockman/internal/model"
)

// Cache is a point-in-time copy of the daemon's container list.
// Snapshots are replaced atomically by Refresh and never patched in
// place; readers borrow entries read-only.
//
// The mutex exists for the snapshot swap, not for concurrent mutators;
// the menu loop is single-threaded and only one action is in flight at
// a time.
type Cache struct {
	client docker.API

	// includeAll mirrors the session's view setting: when true,
	// stopped containers are part of the snapshot too.
	includeAll bool

	mu          sync.RWMutex
	containers  []model.ContainerSummary
	byID        map[string]model.ContainerSummary
	refreshedAt time.Time
}

// New creates an empty cache backed by the given daemon client.
// The first Refresh populates it.
func New(client docker.API, includeAll bool) *Cache {
	return &Cache{
		client:     client,
		includeAll: includeAll,
		byID:       map[string]model.ContainerSummary{},
	}
}

// Refresh fetches a fresh container list from the daemon and replaces
// the snapshot atomically: the new slice and index are built outside the
// lock, then swapped in. On error the previous snapshot is kept, so a
// transient daemon failure doesn't blank the screen.
func (c *Cache) Refresh(ctx context.Context) error {
	containers, err := c.client.List(ctx, c.includeAll)
	if err != nil {
		slog.Debug("cache refresh failed", "error", err)
		return err
	}

	byID := make(map[string]model.ContainerSummary, len(containers))
	for _, ctr := range containers {
		byID[ctr.ID] = ctr
	}

	c.mu.Lock()
	c.containers = containers
	c.byID = byID
	c.refreshedAt = time.Now()
	c.mu.Unlock()

	slog.Debug("cache refreshed", "containers", len(containers))
	return nil
}

// Get returns the cached summary for the given container ID.
// The boolean reports whether the ID is present in the snapshot.
func (c *Cache) Get(id string) (model.ContainerSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ctr, ok := c.byID[id]
	return ctr, ok
}

// Containers returns a copy of the snapshot slice. Copying keeps callers
// from holding references into a snapshot that a later Refresh replaces.
func (c *Cache) Containers() []model.ContainerSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.ContainerSummary, len(c.containers))
	copy(out, c.containers)
	return out
}

// At resolves a 1-based menu index into the snapshot, matching the
// numbered list the UI renders. Returns false for out-of-range indices.
func (c *Cache) At(index int) (model.ContainerSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if index < 1 || index > len(c.containers) {
		return model.ContainerSummary{}, false
	}
	return c.containers[index-1], true
}

// Len returns the number of containers in the snapshot.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.containers)
}

// RefreshedAt returns when the snapshot was last replaced.
// Zero before the first successful Refresh.
func (c *Cache) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.refreshedAt
}
