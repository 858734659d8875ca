package trace

import (
	"io"
	"os"
	"sync"
)

// Stream writes each event as soon as it is emitted.
type Stream struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

func NewStream(w io.Writer, level Level, format Format) *Stream {
	return &Stream{w: w, level: level, format: format}
}

func (s *Stream) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !s.level.Allows(ev.Scope) {
		return
	}
	data := FormatEvent(ev, s.format)
	s.mu.Lock()
	defer s.mu.Unlock()
	// a failed trace write never fails the lint run
	_, _ = s.w.Write(data)
}

func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer unless it is stdout or stderr.
func (s *Stream) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if s.w == os.Stderr || s.w == os.Stdout {
		return nil
	}
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Stream) Level() Level { return s.level }

// Ring keeps the most recent events in memory.
type Ring struct {
	mu     sync.Mutex
	events []Event
	next   int
	full   bool
	level  Level
}

func NewRing(size int, level Level) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{events: make([]Event, size), level: level}
}

// Emit stores ev. At LevelError the ring still records passes so that a
// failure dump shows which file and pass were running.
func (r *Ring) Emit(ev *Event) {
	keep := r.level.Allows(ev.Scope)
	if r.level == LevelError {
		keep = ev.Scope <= ScopePass
	}
	if !keep && ev.Kind != KindHeartbeat {
		return
	}
	r.mu.Lock()
	r.events[r.next] = *ev
	r.next++
	if r.next == len(r.events) {
		r.next = 0
		r.full = true
	}
	r.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (r *Ring) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]Event(nil), r.events[:r.next]...)
	}
	out := make([]Event, 0, len(r.events))
	out = append(out, r.events[r.next:]...)
	return append(out, r.events[:r.next]...)
}

// Dump writes the stored events to w.
func (r *Ring) Dump(w io.Writer, format Format) error {
	for _, ev := range r.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Ring) Flush() error { return nil }
func (r *Ring) Close() error { return nil }
func (r *Ring) Level() Level { return r.level }
