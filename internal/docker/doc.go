// Package docker is the daemon client for dockman: a thin, stateless
// transport adapter over the Docker Engine SDK.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - Container lifecycle operations: list, inspect, start, stop,
//     restart, remove
//   - Log streaming with multiplexed stream demuxing and clean
//     cancellation
//   - One-shot resource usage sampling and in-container command execution
//   - Classification of raw API errors into the model.ErrorKind taxonomy
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
// The API interface abstracts the client so the cache, dispatcher, and
// UI can be tested against the Mock without a running daemon.
package docker
