package wiretap

import (
	"encoding"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gauravscripts/empdir/metrics"
)

// Marshaler is the part of a transport codec the tap needs. Every
// grpc/encoding.Codec satisfies it.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

var errNoCodec = errors.New("wiretap: message has no binary encoder and no codec is configured")

// Encode returns the canonical bytes of msg: the message's own binary
// encoder when it has one, the transport codec otherwise. The result
// is always a fresh copy, independent of anything the transport reads.
func Encode(codec Marshaler, msg any) ([]byte, error) {
	if m, ok := msg.(encoding.BinaryMarshaler); ok {
		return m.MarshalBinary()
	}
	if codec == nil {
		return nil, errNoCodec
	}
	return codec.Marshal(msg)
}

// Tapper encodes intercepted messages and hands them to a sink.
type Tapper struct {
	sink   Sink
	codec  Marshaler
	logger zerolog.Logger
}

// NewTapper creates a Tapper. codec is the fallback encoder for
// messages without their own MarshalBinary.
func NewTapper(sink Sink, codec Marshaler, logger zerolog.Logger) *Tapper {
	return &Tapper{
		sink:   sink,
		codec:  codec,
		logger: logger.With().Str("component", "wiretap").Logger(),
	}
}

// Tap captures msg. It never fails and never panics; every problem is
// logged as a warning and the capture is skipped.
func (t *Tapper) Tap(dir Direction, method, callID string, msg any) {
	stage := "encode"
	defer func() {
		if r := recover(); r != nil {
			t.warn(dir, method, stage, fmt.Errorf("panic: %v", r))
		}
	}()

	payload, err := Encode(t.codec, msg)
	if err != nil {
		t.warn(dir, method, stage, err)
		return
	}

	stage = "sink"
	if err := t.sink.Tap(Frame{
		Direction: dir,
		Method:    method,
		CallID:    callID,
		Payload:   payload,
	}); err != nil {
		t.warn(dir, method, stage, err)
		return
	}
	metrics.RecordWiretapFrame(dir.String())
}

func (t *Tapper) warn(dir Direction, method, stage string, err error) {
	metrics.RecordWiretapFailure(dir.String(), stage)
	t.logger.Warn().
		Err(err).
		Str("direction", dir.String()).
		Str("method", method).
		Str("stage", stage).
		Msg("failed to capture grpc message bytes")
}
