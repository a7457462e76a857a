// menu.go implements the interactive session loop: the main container
// list, the per-container action menu, and interrupt routing.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shinji-kodama/dockman/internal/cache"
	"github.com/shinji-kodama/dockman/internal/dispatch"
	"github.com/shinji-kodama/dockman/internal/docker"
	"github.com/shinji-kodama/dockman/internal/model"
)

// Options carries the session settings resolved by the CLI layer.
type Options struct {
	// LogTail is the line count fetched by a non-following logs action.
	LogTail int

	// ShowAll includes stopped containers in the list view.
	ShowAll bool
}

// menuAction pairs an action menu label with the request it produces.
type menuAction struct {
	label  string
	kind   model.ActionKind
	follow bool
}

// containerActions is the per-container action menu, in display order.
// The numbering the user types is the 1-based index into this slice.
var containerActions = []menuAction{
	{label: "Start", kind: model.ActionStart},
	{label: "Stop", kind: model.ActionStop},
	{label: "Restart", kind: model.ActionRestart},
	{label: "Remove", kind: model.ActionRemove},
	{label: "Show logs", kind: model.ActionViewLogs},
	{label: "Follow logs", kind: model.ActionViewLogs, follow: true},
	{label: "Show stats", kind: model.ActionShowStats},
	{label: "Execute command", kind: model.ActionExecCommand},
	{label: "Container info", kind: model.ActionShowDetail},
}

// Menu runs the interactive session: it renders the container list,
// reads selections, and hands actions to the dispatcher. The loop is
// single-threaded; the only concurrency is the interrupt watcher and
// the prompter's read goroutine.
type Menu struct {
	client     docker.API
	cache      *cache.Cache
	dispatcher *dispatch.Dispatcher
	prompter   *Prompter
	out        io.Writer

	// ctx is the session context, set by Run. The confirmation closure
	// and stream sub-contexts derive from it.
	ctx context.Context

	// streamCancel, when set, cancels the currently-followed log stream.
	// An interrupt calls it instead of ending the session, so Ctrl-C
	// during "Follow logs" returns to the menu.
	mu           sync.Mutex
	streamCancel context.CancelFunc
}

// New wires a session over the given daemon client. Input is read from
// in and all rendering goes to out; tests drive the session with
// scripted readers and buffers.
func New(client docker.API, opts Options, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		client:   client,
		cache:    cache.New(client, opts.ShowAll),
		prompter: NewPrompter(in, out),
		out:      out,
	}

	m.dispatcher = dispatch.New(client, m.cache, m.confirmAction, out)
	m.dispatcher.LogTail = opts.LogTail
	m.dispatcher.OnStats = func(target model.ContainerSummary, stats model.ContainerStats) {
		RenderStats(out, target, stats)
	}
	m.dispatcher.OnDetail = func(detail model.ContainerDetail) {
		RenderDetail(out, detail)
	}

	return m
}

// confirmAction is the dispatcher's confirmation hook for destructive
// actions.
func (m *Menu) confirmAction(req model.ActionRequest, target model.ContainerSummary) (bool, error) {
	return m.prompter.Confirm(m.ctx, "Really %s container %q?", req.Kind, target.Name)
}

// Run drives the session until the user quits, input is exhausted, or
// an interrupt arrives outside a followed stream. The initial list
// fetch must succeed; an unreachable daemon at startup is a fatal
// CLIError rather than an empty menu over a dead connection.
func (m *Menu) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.ctx = ctx
	defer m.prompter.Close()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	// Stop first so nothing sends on the channel anymore, then close it
	// so the watcher goroutine exits with the session.
	defer func() {
		signal.Stop(interrupts)
		close(interrupts)
	}()
	go m.watchInterrupts(interrupts, cancel)

	if err := m.cache.Refresh(ctx); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			"cannot reach the Docker daemon", err)
	}

	for {
		containers := m.cache.Containers()
		fmt.Fprintln(m.out)
		RenderContainerTable(m.out, containers, time.Now())
		fmt.Fprintln(m.out)

		prompt := "(r)efresh, (q)uit: "
		if len(containers) > 0 {
			prompt = fmt.Sprintf("[1-%d] select, (r)efresh, (q)uit: ", len(containers))
		}
		line, err := m.prompter.ReadLine(ctx, prompt)
		if quit, err := m.checkInput(err); quit {
			return err
		}

		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return nil
		case "r", "refresh", "":
			if err := m.cache.Refresh(ctx); err != nil {
				RenderResult(m.out, docker.FailureResult("refresh", err))
			}
		default:
			index, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintln(m.out, styleError.Sprintf("invalid selection %q", line))
				continue
			}
			target, ok := m.cache.At(index)
			if !ok {
				fmt.Fprintln(m.out, styleError.Sprintf("no container #%d", index))
				continue
			}
			if quit, err := m.containerMenu(ctx, target); quit {
				return err
			}
		}
	}
}

// containerMenu shows the action menu for one container and dispatches
// the chosen action. It returns to the caller's list loop after one
// action, or immediately on "back"; quit reports whether the whole
// session should end.
func (m *Menu) containerMenu(ctx context.Context, target model.ContainerSummary) (quit bool, _ error) {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, styleTitle.Sprintf("%s (%s)", target.Name, target.ShortID()))
	for i, action := range containerActions {
		fmt.Fprintf(m.out, "  %d) %s\n", i+1, action.label)
	}
	fmt.Fprintln(m.out, "  b) Back")

	line, err := m.prompter.ReadLine(ctx, "Action: ")
	if quit, err := m.checkInput(err); quit {
		return true, err
	}

	switch strings.ToLower(line) {
	case "b", "back", "":
		return false, nil
	case "q", "quit":
		return true, nil
	}

	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > len(containerActions) {
		fmt.Fprintln(m.out, styleError.Sprintf("invalid selection %q", line))
		return false, nil
	}
	action := containerActions[choice-1]

	req := model.ActionRequest{
		TargetID: target.ID,
		Kind:     action.kind,
		Follow:   action.follow,
	}

	if action.kind == model.ActionExecCommand {
		cmdline, err := m.prompter.ReadLine(ctx, "Command: ")
		if quit, err := m.checkInput(err); quit {
			return true, err
		}
		req.Command = strings.Fields(cmdline)
		if len(req.Command) == 0 {
			fmt.Fprintln(m.out, styleError.Sprint("no command given"))
			return false, nil
		}
	}

	result := m.dispatchRequest(ctx, req, action.follow)
	RenderResult(m.out, result)
	return false, nil
}

// dispatchRequest runs one request through the dispatcher. A followed
// log stream gets its own cancellable sub-context registered with the
// interrupt watcher, so Ctrl-C ends the stream but not the session.
func (m *Menu) dispatchRequest(ctx context.Context, req model.ActionRequest, streaming bool) model.ActionResult {
	if !streaming {
		return m.dispatcher.Dispatch(ctx, req)
	}

	streamCtx, cancelStream := context.WithCancel(ctx)
	defer cancelStream()

	m.setStreamCancel(cancelStream)
	defer m.setStreamCancel(nil)

	fmt.Fprintln(m.out, styleInfo.Sprint("following logs, Ctrl-C to stop"))
	return m.dispatcher.Dispatch(streamCtx, req)
}

// checkInput folds prompt errors into the session's exit decision:
// EOF and cancellation both end the session cleanly, anything else is
// surfaced.
func (m *Menu) checkInput(err error) (quit bool, _ error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return true, nil
	default:
		return true, model.WrapCLIError(model.ExitGeneralError, "failed to read input", err)
	}
}

// watchInterrupts routes SIGINT: while a followed stream is active the
// signal cancels only that stream; otherwise it cancels the session
// context, which Run treats as a clean quit. The loop ends when the
// session cancels or Run closes the channel.
func (m *Menu) watchInterrupts(interrupts <-chan os.Signal, cancelSession context.CancelFunc) {
	for range interrupts {
		if cancel := m.takeStreamCancel(); cancel != nil {
			cancel()
			continue
		}
		cancelSession()
		return
	}
}

func (m *Menu) setStreamCancel(cancel context.CancelFunc) {
	m.mu.Lock()
	m.streamCancel = cancel
	m.mu.Unlock()
}

// takeStreamCancel returns and clears the registered stream cancel
// function, so one interrupt cancels one stream.
func (m *Menu) takeStreamCancel() context.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	cancel := m.streamCancel
	m.streamCancel = nil
	return cancel
}
