package voice

import (
	"errors"
	"testing"
)

// fakeRecognizer lets tests feed events into the adapter directly.
type fakeRecognizer struct {
	onEvent  func(Event)
	startErr error
	started  int
	stopped  int
}

func (f *fakeRecognizer) Start(onEvent func(Event)) error {
	f.started++
	if f.startErr != nil {
		return f.startErr
	}
	f.onEvent = onEvent
	return nil
}

func (f *fakeRecognizer) Stop() { f.stopped++ }

func (f *fakeRecognizer) emit(ev Event) {
	if f.onEvent != nil {
		f.onEvent(ev)
	}
}

func TestFinalSegmentsOnlySurfacedOnce(t *testing.T) {
	rec := &fakeRecognizer{}
	c := NewCapture(rec)

	var results []string
	c.Begin(func(s string) { results = append(results, s) })
	if !c.Capturing() {
		t.Fatalf("expected listening after Begin")
	}

	// Interim-only batch: discarded, still listening.
	rec.emit(Event{Segments: []Segment{{Text: "buy", Final: false}}})
	if len(results) != 0 {
		t.Fatalf("interim segment surfaced: %v", results)
	}
	if !c.Capturing() {
		t.Fatalf("expected still listening after interim batch")
	}

	// Mixed batch: only the final segment accumulates.
	rec.emit(Event{Segments: []Segment{
		{Text: "buy gro", Final: false},
		{Text: " buy groceries ", Final: true},
	}})
	if len(results) != 1 || results[0] != "buy groceries" {
		t.Fatalf("results = %v", results)
	}
	if c.Capturing() {
		t.Fatalf("expected idle after final result")
	}
	if c.Condition() != "" {
		t.Fatalf("unexpected condition %q", c.Condition())
	}

	// Late event after the cycle ended is dropped.
	rec.emit(Event{Segments: []Segment{{Text: "again", Final: true}}})
	if len(results) != 1 {
		t.Fatalf("late event surfaced: %v", results)
	}
}

func TestErrorRecordsConditionWithoutCallback(t *testing.T) {
	rec := &fakeRecognizer{}
	c := NewCapture(rec)

	called := false
	c.Begin(func(string) { called = true })
	rec.emit(Event{Err: errors.New("audio device busy")})

	if called {
		t.Fatalf("callback invoked on error")
	}
	if c.Condition() != CondError {
		t.Fatalf("Condition = %q", c.Condition())
	}
	if c.Capturing() {
		t.Fatalf("expected idle after error")
	}
}

func TestNaturalEndIsSilent(t *testing.T) {
	rec := &fakeRecognizer{}
	c := NewCapture(rec)

	called := false
	c.Begin(func(string) { called = true })
	rec.emit(Event{End: true})

	if called {
		t.Fatalf("callback invoked on natural end")
	}
	if c.Condition() != "" {
		t.Fatalf("Condition = %q", c.Condition())
	}
	if c.Capturing() {
		t.Fatalf("expected idle after natural end")
	}
}

func TestUnsupportedCapability(t *testing.T) {
	c := NewCapture(nil)
	if c.Available() {
		t.Fatalf("Available = true without recognizer")
	}

	called := false
	c.Begin(func(string) { called = true })
	if called {
		t.Fatalf("callback invoked without capability")
	}
	if c.Capturing() {
		t.Fatalf("transitioned to listening without capability")
	}
	if c.Condition() != CondUnsupported {
		t.Fatalf("Condition = %q", c.Condition())
	}
}

func TestBeginClearsPriorCondition(t *testing.T) {
	rec := &fakeRecognizer{}
	c := NewCapture(rec)

	c.Begin(func(string) {})
	rec.emit(Event{Err: errors.New("boom")})
	if c.Condition() != CondError {
		t.Fatalf("Condition = %q", c.Condition())
	}

	c.Begin(func(string) {})
	if c.Condition() != "" {
		t.Fatalf("Begin did not clear condition: %q", c.Condition())
	}
}

func TestReentrantBeginIgnored(t *testing.T) {
	rec := &fakeRecognizer{}
	c := NewCapture(rec)

	var first, second []string
	c.Begin(func(s string) { first = append(first, s) })
	c.Begin(func(s string) { second = append(second, s) })
	if rec.started != 1 {
		t.Fatalf("recognizer started %d times", rec.started)
	}

	rec.emit(Event{Segments: []Segment{{Text: "hello", Final: true}}})
	if len(first) != 1 || first[0] != "hello" {
		t.Fatalf("first = %v", first)
	}
	if len(second) != 0 {
		t.Fatalf("second Begin's callback ran: %v", second)
	}
}

func TestEndCancelsImmediately(t *testing.T) {
	rec := &fakeRecognizer{}
	c := NewCapture(rec)

	called := false
	c.Begin(func(string) { called = true })
	c.End()

	if c.Capturing() {
		t.Fatalf("expected idle after End")
	}
	if rec.stopped != 1 {
		t.Fatalf("recognizer stopped %d times", rec.stopped)
	}

	// A straggler event from the cancelled capture must be dropped.
	rec.emit(Event{Segments: []Segment{{Text: "late", Final: true}}})
	if called {
		t.Fatalf("callback invoked after End")
	}

	// End while idle is a no-op.
	c.End()
	if rec.stopped != 1 {
		t.Fatalf("idle End reached the recognizer")
	}
}

func TestStartFailureIsRecorded(t *testing.T) {
	rec := &fakeRecognizer{startErr: errors.New("no mic")}
	c := NewCapture(rec)

	c.Begin(func(string) {})
	if c.Capturing() {
		t.Fatalf("expected idle after failed Start")
	}
	if c.Condition() != CondError {
		t.Fatalf("Condition = %q", c.Condition())
	}
}
