// Package ui provides terminal feedback for long operations, used
// while workbooks are read and parsed.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const frameInterval = 100 * time.Millisecond

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on stderr while work runs. On a
// non-terminal stream it degrades to a single plain line.
type Spinner struct {
	message string
	out     io.Writer
	animate bool

	mu     sync.Mutex
	active bool
	done   chan struct{}
}

// NewSpinner creates a spinner for stderr.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stderr,
		animate: stderrIsTerminal() && os.Getenv("NO_COLOR") == "",
		done:    make(chan struct{}),
	}
}

// Start begins the animation. Without a terminal the message is
// printed once instead.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	if !s.animate {
		fmt.Fprintf(s.out, "%s...\n", s.message)
		return
	}

	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-s.done:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.active {
					fmt.Fprintf(s.out, "\r%s %s", frames[i], s.message)
					i = (i + 1) % len(frames)
				}
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and optionally prints a final line.
func (s *Spinner) Stop(finalMessage string) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	if s.animate {
		close(s.done)
		time.Sleep(frameInterval)
	}
	if finalMessage != "" {
		if s.animate {
			fmt.Fprintf(s.out, "\r\033[K%s\n", finalMessage)
		} else {
			fmt.Fprintf(s.out, "%s\n", finalMessage)
		}
	}
}

func stderrIsTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// ShowSpinner runs fn under a spinner and reports its outcome.
func ShowSpinner(message string, fn func() error) error {
	s := NewSpinner(message)
	s.Start()
	err := fn()
	if err != nil {
		s.Stop(fmt.Sprintf("✗ %s", err.Error()))
	} else {
		s.Stop("✓ Done")
	}
	return err
}
