package voice

import (
	"os/exec"
	"strings"
	"sync"
)

// CommandRecognizer runs an external transcriber command once per
// capture. The command is expected to record from the microphone and
// print the finalized transcript to stdout, then exit.
type CommandRecognizer struct {
	name string
	args []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommandRecognizer parses a shell-less command line ("prog arg1
// arg2"). Returns nil when the line is empty, which callers treat as
// capability absent.
func NewCommandRecognizer(commandLine string) *CommandRecognizer {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	return &CommandRecognizer{name: fields[0], args: fields[1:]}
}

// Start launches the transcriber and delivers exactly one event when
// it exits: a final segment when output is non-empty, an error event
// when the command fails, or a natural end when nothing was heard.
func (r *CommandRecognizer) Start(onEvent func(Event)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return nil // capture already running
	}

	cmd := exec.Command(r.name, r.args...)
	r.cmd = cmd

	go func() {
		out, err := cmd.Output()
		r.mu.Lock()
		r.cmd = nil
		r.mu.Unlock()

		text := strings.TrimSpace(string(out))
		switch {
		case err != nil:
			onEvent(Event{Err: err})
		case text == "":
			onEvent(Event{End: true})
		default:
			onEvent(Event{Segments: []Segment{{Text: text, Final: true}}})
		}
	}()
	return nil
}

// Stop kills an in-flight transcriber process, if any.
func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	cmd := r.cmd
	r.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
