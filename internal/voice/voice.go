// Package voice adapts a speech-to-text capability into a small
// begin/end capture cycle that surfaces one finalized transcript per
// capture to a caller-supplied callback.
package voice

import (
	"strings"
	"sync"
)

// User-facing conditions recorded by the adapter.
const (
	CondUnsupported = "voice input is not available on this system"
	CondError       = "error listening, retry"
)

// Segment is one piece of recognized speech. Only segments marked
// Final are ever surfaced; interim segments are discarded.
type Segment struct {
	Text  string
	Final bool
}

// Event is one delivery from a Recognizer. Exactly one of the three
// outcomes applies: recognized segments, a capture error, or a natural
// end with nothing recognized.
type Event struct {
	Segments []Segment
	Err      error
	End      bool
}

// Recognizer is the injected speech capability. Start arms a single
// capture and reports outcomes through onEvent, possibly from another
// goroutine. Stop cancels an in-flight capture; it must be safe to
// call when no capture is running.
type Recognizer interface {
	Start(onEvent func(Event)) error
	Stop()
}

// Capture is the idle/listening state machine around a Recognizer.
// A nil recognizer means the capability is absent: Begin records the
// unsupported condition and never transitions to listening.
type Capture struct {
	rec Recognizer

	mu        sync.Mutex
	listening bool
	condition string
	onResult  func(string)
}

// NewCapture wraps a recognizer. rec may be nil (capability absent).
func NewCapture(rec Recognizer) *Capture {
	return &Capture{rec: rec}
}

// Available reports whether a recognizer is configured. Views use it
// to hide voice affordances entirely.
func (c *Capture) Available() bool {
	return c.rec != nil
}

// Capturing reports whether a capture cycle is in flight.
func (c *Capture) Capturing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Condition returns the last recorded condition, or "" when none.
func (c *Capture) Condition() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.condition
}

// Begin starts a capture cycle. onResult receives the whitespace-
// trimmed transcript of the single finalized utterance, at most once
// per cycle. Calling Begin while already listening is ignored.
func (c *Capture) Begin(onResult func(string)) {
	c.mu.Lock()
	if c.rec == nil {
		c.condition = CondUnsupported
		c.mu.Unlock()
		return
	}
	if c.listening {
		c.mu.Unlock()
		return
	}
	c.condition = ""
	c.listening = true
	c.onResult = onResult
	c.mu.Unlock()

	if err := c.rec.Start(c.handleEvent); err != nil {
		c.mu.Lock()
		c.condition = CondError
		c.listening = false
		c.onResult = nil
		c.mu.Unlock()
	}
}

// End cancels an in-flight capture. No-op when idle. The transition
// to idle is immediate; a late event from the recognizer is dropped.
func (c *Capture) End() {
	c.mu.Lock()
	if !c.listening {
		c.mu.Unlock()
		return
	}
	c.listening = false
	c.onResult = nil
	c.mu.Unlock()
	c.rec.Stop()
}

func (c *Capture) handleEvent(ev Event) {
	c.mu.Lock()
	if !c.listening {
		c.mu.Unlock()
		return
	}

	if ev.Err != nil {
		c.condition = CondError
		c.listening = false
		c.onResult = nil
		c.mu.Unlock()
		c.rec.Stop()
		return
	}
	if ev.End {
		c.listening = false
		c.onResult = nil
		c.mu.Unlock()
		return
	}

	var b strings.Builder
	for _, seg := range ev.Segments {
		if seg.Final {
			b.WriteString(seg.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		// Nothing finalized yet; stay listening.
		c.mu.Unlock()
		return
	}

	cb := c.onResult
	c.listening = false
	c.onResult = nil
	c.mu.Unlock()
	c.rec.Stop()
	if cb != nil {
		cb(text)
	}
}
