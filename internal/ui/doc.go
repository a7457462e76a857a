// Package ui implements the interactive menu session of dockman.
//
// The session is a single-threaded cooperative loop: render the cached
// container snapshot, block for one user selection, dispatch it, surface
// the ActionResult, and loop until an explicit quit or an interrupt.
// The only long suspensions are user input and daemon calls; an
// interrupt received while a log stream is being followed cancels just
// that stream and returns to the menu.
//
// Rendering uses text/tabwriter for alignment and github.com/fatih/color
// for status styling. Reader and writer are injected, so the whole
// session is testable against scripted input and a daemon mock.
package ui
