package dirtest

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gauravscripts/empdir/wiretap"
)

// RecordingSink keeps every frame it receives. Safe for concurrent
// use.
type RecordingSink struct {
	mu     sync.Mutex
	frames []wiretap.Frame
}

func (s *RecordingSink) Tap(f wiretap.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
	return nil
}

// Frames returns a copy of the captured frames in arrival order.
func (s *RecordingSink) Frames() []wiretap.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]wiretap.Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// ByDirection returns the captured frames with the given direction.
func (s *RecordingSink) ByDirection(dir wiretap.Direction) []wiretap.Frame {
	var out []wiretap.Frame
	for _, f := range s.Frames() {
		if f.Direction == dir {
			out = append(out, f)
		}
	}
	return out
}

// Reset drops all captured frames.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = nil
}

// ErrSinkUnavailable is returned by FailingSink.
var ErrSinkUnavailable = errors.New("dirtest: sink unavailable")

// FailingSink rejects every frame.
type FailingSink struct {
	Calls atomic.Int64
}

func (s *FailingSink) Tap(wiretap.Frame) error {
	s.Calls.Add(1)
	return ErrSinkUnavailable
}

// PanickingSink panics on every frame.
type PanickingSink struct{}

func (PanickingSink) Tap(wiretap.Frame) error {
	panic("dirtest: sink panicked")
}
