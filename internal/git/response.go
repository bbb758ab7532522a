package git

import (
	"strings"
	"sync"
)

// Completed is one finished git invocation.
type Completed struct {
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

// Response records every command a client ran. Git writes progress and
// hints to stderr, so stderr on a successful command is kept but never
// counted as an error.
type Response struct {
	mu       sync.Mutex
	commands []Completed
}

func (r *Response) record(c Completed) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, c)
}

// Commands returns the recorded commands, oldest first.
func (r *Response) Commands() []Completed {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Completed(nil), r.commands...)
}

// LastMessage returns the stdout of the most recent command, falling back
// to its stderr when stdout is empty.
func (r *Response) LastMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.commands) == 0 {
		return ""
	}
	last := r.commands[len(r.commands)-1]
	if msg := strings.TrimSpace(last.Stdout); msg != "" {
		return msg
	}
	return strings.TrimSpace(last.Stderr)
}

// Errors returns the errors of failed commands in order.
func (r *Response) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, c := range r.commands {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return errs
}

// Successful reports whether no recorded command failed.
func (r *Response) Successful() bool {
	return len(r.Errors()) == 0
}

// Reset forgets all recorded commands.
func (r *Response) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = nil
}
