package dirgrpc

import (
	"context"
	"errors"
	"net"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/types"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Compile-time interface checks.
var (
	_ EmployeeServiceServer = (*GRPCServer)(nil)
	_ HelloServiceServer    = (*GRPCServer)(nil)
)

// GRPCServer exposes a directory as a gRPC service. Records are
// serialized directly via their cramberry wire form; no conversion
// layer sits between the transport and the directory.
type GRPCServer struct {
	dir     empdir.Directory
	greeter empdir.Greeter
}

// NewGRPCServer creates a gRPC server over dir. greeter may be nil, in
// which case the Hello service is not registered.
func NewGRPCServer(dir empdir.Directory, greeter empdir.Greeter) *GRPCServer {
	return &GRPCServer{dir: dir, greeter: greeter}
}

// Register adds the directory services to a gRPC server.
func (s *GRPCServer) Register(gs grpc.ServiceRegistrar) {
	RegisterEmployeeServiceServer(gs, s)
	if s.greeter != nil {
		RegisterHelloServiceServer(gs, s)
	}
}

// Serve starts a gRPC server on the given listener and blocks until it
// stops.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs.Serve(lis)
}

// Directory returns the directory the service calls into.
func (s *GRPCServer) Directory() empdir.Directory {
	return s.dir
}

// --- Employee RPCs ---

func (s *GRPCServer) GetEmployee(ctx context.Context, req *GetEmployeeRequest) (*types.Employee, error) {
	e, err := s.dir.GetEmployee(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &e, nil
}

func (s *GRPCServer) AddEmployee(ctx context.Context, req *types.Employee) (*types.Employee, error) {
	e, err := s.dir.AddEmployee(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &e, nil
}

func (s *GRPCServer) GetAllEmployees(ctx context.Context, _ *Empty) (*types.EmployeeList, error) {
	list, err := s.dir.ListEmployees(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &types.EmployeeList{Employees: list}, nil
}

// --- Hello RPC ---

func (s *GRPCServer) SayHello(ctx context.Context, req *HelloRequest) (*HelloResponse, error) {
	if s.greeter == nil {
		return nil, status.Error(codes.Unimplemented, "hello service not configured")
	}
	msg, err := s.greeter.SayHello(ctx, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	return &HelloResponse{Message: msg}, nil
}

// toStatus translates directory errors into gRPC status errors.
// BadRequest carries its field as an errdetails.BadRequest detail so
// the client can rebuild it.
func toStatus(err error) error {
	if nf, ok := empdir.IsNotFound(err); ok {
		return status.Error(codes.NotFound, nf.Error())
	}
	if br, ok := empdir.IsBadRequest(err); ok {
		st := status.New(codes.InvalidArgument, br.Reason)
		if br.Field != "" {
			detailed, derr := st.WithDetails(&errdetails.BadRequest{
				FieldViolations: []*errdetails.BadRequest_FieldViolation{
					{Field: br.Field, Description: br.Reason},
				},
			})
			if derr == nil {
				st = detailed
			}
		}
		return st.Err()
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, err.Error())
}

// fromStatus is the client-side inverse of toStatus. id is the record
// the call addressed, if any.
func fromStatus(err error, id int32) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return empdir.NewNotFoundError(id)
	case codes.InvalidArgument:
		for _, d := range st.Details() {
			if br, ok := d.(*errdetails.BadRequest); ok && len(br.GetFieldViolations()) > 0 {
				v := br.GetFieldViolations()[0]
				return empdir.NewBadRequestError(v.GetField(), v.GetDescription())
			}
		}
		return empdir.NewBadRequestError("", st.Message())
	default:
		return err
	}
}
