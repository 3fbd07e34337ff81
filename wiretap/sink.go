package wiretap

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Direction tags which side of the transport a frame was captured on.
type Direction uint8

const (
	// OutgoingRequest is a request leaving the caller.
	OutgoingRequest Direction = iota
	// IncomingRequest is a request received by the service, captured
	// before the handler runs.
	IncomingRequest
	// OutgoingResponse is a reply written by the service.
	OutgoingResponse
)

func (d Direction) String() string {
	switch d {
	case OutgoingRequest:
		return "outgoing-request"
	case IncomingRequest:
		return "incoming-request"
	case OutgoingResponse:
		return "outgoing-response"
	default:
		return fmt.Sprintf("unknown(%d)", d)
	}
}

// Frame is one captured message.
type Frame struct {
	Direction Direction
	// Full gRPC method name, e.g. "/empdir.v1.EmployeeService/AddEmployee".
	Method string
	// Correlates the frames of one call across both sides.
	CallID string
	// Canonical serialized bytes. The tap owns this copy.
	Payload []byte
}

// Sink receives captured frames.
type Sink interface {
	Tap(Frame) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Frame) error

func (f SinkFunc) Tap(fr Frame) error { return f(fr) }

// LogSink writes one zerolog line per frame.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a sink logging to logger at info level.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "wiretap").Logger()}
}

func (s *LogSink) Tap(f Frame) error {
	s.logger.Info().
		Str("direction", f.Direction.String()).
		Str("method", f.Method).
		Str("call_id", f.CallID).
		Int("bytes", len(f.Payload)).
		Str("hex", Hex(f.Payload)).
		Msgf("grpc %s binary (hex)", f.Direction)
	return nil
}

type multiSink []Sink

// MultiSink fans every frame out to all sinks. A failing sink does
// not prevent the others from receiving the frame.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Tap(f Frame) error {
	var errs []error
	for _, s := range m {
		if err := s.Tap(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
