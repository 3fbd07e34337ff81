package dirgrpc

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/gauravscripts/empdir/wiretap"
)

// CallIDHeader is the metadata key correlating the frames one call
// produces on the client and on the server.
const CallIDHeader = "x-call-id"

// NewTapper creates a wiretap.Tapper that falls back to the transport
// codec for messages without their own binary encoder.
func NewTapper(sink wiretap.Sink, logger zerolog.Logger) *wiretap.Tapper {
	return wiretap.NewTapper(sink, CramberryCodec{}, logger)
}

// ServerOptions returns the options installing the server-side tap on
// every unary and streaming method.
func ServerOptions(t *wiretap.Tapper) []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(UnaryServerInterceptor(t)),
		grpc.ChainStreamInterceptor(StreamServerInterceptor(t)),
	}
}

// DialOptions returns the options installing the client-side tap.
func DialOptions(t *wiretap.Tapper) []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithChainUnaryInterceptor(UnaryClientInterceptor(t)),
		grpc.WithChainStreamInterceptor(StreamClientInterceptor(t)),
	}
}

// --- Client side ---

// UnaryClientInterceptor captures every request as an outgoing-request
// frame, then forwards it unchanged.
func UnaryClientInterceptor(t *wiretap.Tapper) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx, callID := outgoingCallID(ctx)
		t.Tap(wiretap.OutgoingRequest, method, callID, req)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor captures every message the client sends on
// a stream.
func StreamClientInterceptor(t *wiretap.Tapper) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		ctx, callID := outgoingCallID(ctx)
		cs, err := streamer(ctx, desc, cc, method, opts...)
		if err != nil {
			return nil, err
		}
		return &tappedClientStream{ClientStream: cs, tap: t, method: method, callID: callID}, nil
	}
}

type tappedClientStream struct {
	grpc.ClientStream
	tap    *wiretap.Tapper
	method string
	callID string
}

func (s *tappedClientStream) SendMsg(m any) error {
	s.tap.Tap(wiretap.OutgoingRequest, s.method, s.callID, m)
	return s.ClientStream.SendMsg(m)
}

// --- Server side ---

// UnaryServerInterceptor captures the decoded request before the
// handler runs and the reply after it succeeds. Failed calls produce
// no response frame.
func UnaryServerInterceptor(t *wiretap.Tapper) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		callID := incomingCallID(ctx)
		t.Tap(wiretap.IncomingRequest, info.FullMethod, callID, req)
		resp, err := handler(ctx, req)
		if err != nil {
			return nil, err
		}
		t.Tap(wiretap.OutgoingResponse, info.FullMethod, callID, resp)
		return resp, nil
	}
}

// StreamServerInterceptor captures each message after it is received
// and each reply before it is sent.
func StreamServerInterceptor(t *wiretap.Tapper) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return handler(srv, &tappedServerStream{
			ServerStream: ss,
			tap:          t,
			method:       info.FullMethod,
			callID:       incomingCallID(ss.Context()),
		})
	}
}

type tappedServerStream struct {
	grpc.ServerStream
	tap    *wiretap.Tapper
	method string
	callID string
}

func (s *tappedServerStream) RecvMsg(m any) error {
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return err
	}
	s.tap.Tap(wiretap.IncomingRequest, s.method, s.callID, m)
	return nil
}

func (s *tappedServerStream) SendMsg(m any) error {
	s.tap.Tap(wiretap.OutgoingResponse, s.method, s.callID, m)
	return s.ServerStream.SendMsg(m)
}

// --- Call correlation ---

// outgoingCallID returns the call id already attached to ctx, or
// attaches a new one.
func outgoingCallID(ctx context.Context) (context.Context, string) {
	if md, ok := metadata.FromOutgoingContext(ctx); ok {
		if v := md.Get(CallIDHeader); len(v) > 0 && v[0] != "" {
			return ctx, v[0]
		}
	}
	id := uuid.NewString()
	return metadata.AppendToOutgoingContext(ctx, CallIDHeader, id), id
}

// incomingCallID reads the caller's call id. Callers without the tap
// get a server-generated one so the request and response frames still
// pair up.
func incomingCallID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(CallIDHeader); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}
	return uuid.NewString()
}
