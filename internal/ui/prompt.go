// prompt.go implements line-oriented user input for the session.
// Input is read on a dedicated goroutine feeding a channel, so a
// blocking read can still be abandoned when the session context is
// cancelled by an interrupt.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Prompter reads user selections and confirmations from an injected
// reader. Tests drive it with a strings.Reader of scripted input.
type Prompter struct {
	in  io.Reader
	out io.Writer

	start sync.Once
	stop  sync.Once
	lines chan string
	done  chan struct{}
}

// NewPrompter creates a Prompter reading from in and echoing prompts
// to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    in,
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
}

// ReadLine writes the prompt and blocks for one line of input, trimmed
// of surrounding whitespace. Returns io.EOF when input is exhausted or
// the prompter is closed, and the context error when the session is
// cancelled mid-read.
func (p *Prompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	// A closed prompter always reports EOF, even if the read goroutine
	// still holds an undelivered line.
	select {
	case <-p.done:
		return "", io.EOF
	default:
	}

	fmt.Fprint(p.out, prompt)

	p.start.Do(func() { go p.readLoop() })

	select {
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-p.done:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// readLoop pumps input lines into the channel until the reader is
// drained, then closes it so pending and future reads see EOF. Close
// unblocks a pending send so the goroutine never outlives the session.
func (p *Prompter) readLoop() {
	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		select {
		case p.lines <- strings.TrimSpace(scanner.Text()):
		case <-p.done:
			return
		}
	}
	close(p.lines)
}

// Close releases the read goroutine. Safe to call more than once;
// subsequent reads report EOF.
func (p *Prompter) Close() {
	p.stop.Do(func() { close(p.done) })
}

// Confirm asks a yes/no question and reports whether the user agreed.
// Only an explicit "y" or "yes" (case-insensitive) confirms; EOF counts
// as a decline, so a closed stdin can never wave a destructive action
// through.
func (p *Prompter) Confirm(ctx context.Context, format string, args ...any) (bool, error) {
	question := styleWarn.Sprintf(format, args...)
	answer, err := p.ReadLine(ctx, question+" [y/N]: ")
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
