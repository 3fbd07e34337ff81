package dirgrpc

import (
	"context"
	"fmt"

	"github.com/gauravscripts/empdir/types"

	"google.golang.org/grpc"
)

const (
	employeeServiceName = "empdir.v1.EmployeeService"
	helloServiceName    = "empdir.v1.HelloService"
)

// EmployeeServiceServer is the server-side interface for the employee
// gRPC service.
type EmployeeServiceServer interface {
	GetEmployee(context.Context, *GetEmployeeRequest) (*types.Employee, error)
	AddEmployee(context.Context, *types.Employee) (*types.Employee, error)
	GetAllEmployees(context.Context, *Empty) (*types.EmployeeList, error)
}

// HelloServiceServer is the server-side interface for the greeting
// service.
type HelloServiceServer interface {
	SayHello(context.Context, *HelloRequest) (*HelloResponse, error)
}

// RegisterEmployeeServiceServer registers srv on a gRPC server.
func RegisterEmployeeServiceServer(s grpc.ServiceRegistrar, srv EmployeeServiceServer) {
	s.RegisterService(&employeeServiceDesc, srv)
}

// RegisterHelloServiceServer registers srv on a gRPC server.
func RegisterHelloServiceServer(s grpc.ServiceRegistrar, srv HelloServiceServer) {
	s.RegisterService(&helloServiceDesc, srv)
}

// --- Handler functions ---

// Each handler routes through the server's unary interceptor chain
// when one is installed, so the wiretap sees the decoded request
// before the directory does.

func handlerGetEmployee(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(GetEmployeeRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).GetEmployee(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(employeeServiceName, "GetEmployee")}
	return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
		return srv.(EmployeeServiceServer).GetEmployee(ctx, req.(*GetEmployeeRequest))
	})
}

func handlerAddEmployee(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(types.Employee)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).AddEmployee(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(employeeServiceName, "AddEmployee")}
	return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
		return srv.(EmployeeServiceServer).AddEmployee(ctx, req.(*types.Employee))
	})
}

func handlerGetAllEmployees(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(Empty)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeServiceServer).GetAllEmployees(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(employeeServiceName, "GetAllEmployees")}
	return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
		return srv.(EmployeeServiceServer).GetAllEmployees(ctx, req.(*Empty))
	})
}

func handlerSayHello(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(HelloRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(HelloServiceServer).SayHello(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(helloServiceName, "SayHello")}
	return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
		return srv.(HelloServiceServer).SayHello(ctx, req.(*HelloRequest))
	})
}

// fullMethod builds the full gRPC method path.
func fullMethod(service, method string) string {
	return fmt.Sprintf("/%s/%s", service, method)
}

// employeeServiceDesc is the manual gRPC service descriptor for the
// directory.
var employeeServiceDesc = grpc.ServiceDesc{
	ServiceName: employeeServiceName,
	HandlerType: (*EmployeeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetEmployee", Handler: handlerGetEmployee},
		{MethodName: "AddEmployee", Handler: handlerAddEmployee},
		{MethodName: "GetAllEmployees", Handler: handlerGetAllEmployees},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "empdir/v1/employee.cram",
}

var helloServiceDesc = grpc.ServiceDesc{
	ServiceName: helloServiceName,
	HandlerType: (*HelloServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SayHello", Handler: handlerSayHello},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "empdir/v1/hello.cram",
}
