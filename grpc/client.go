package dirgrpc

import (
	"context"
	"fmt"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/types"

	"google.golang.org/grpc"
)

// Compile-time interface checks.
var (
	_ empdir.Connection = (*Client)(nil)
	_ empdir.Greeter    = (*Client)(nil)
)

// Client implements empdir.Connection for a remote directory over
// gRPC using cramberry serialization. No protobuf types or conversion
// layer required.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote directory. Interceptors are installed by
// the caller, usually through [DialOptions].
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("empdir client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

// --- Directory ---

func (c *Client) GetEmployee(ctx context.Context, id int32) (types.Employee, error) {
	req := &GetEmployeeRequest{ID: id}
	resp := new(types.Employee)
	if err := c.cc.Invoke(ctx, fullMethod(employeeServiceName, "GetEmployee"), req, resp); err != nil {
		return types.Employee{}, fromStatus(err, id)
	}
	return *resp, nil
}

func (c *Client) AddEmployee(ctx context.Context, e types.Employee) (types.Employee, error) {
	resp := new(types.Employee)
	if err := c.cc.Invoke(ctx, fullMethod(employeeServiceName, "AddEmployee"), &e, resp); err != nil {
		return types.Employee{}, fromStatus(err, 0)
	}
	return *resp, nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	req := &Empty{}
	resp := new(types.EmployeeList)
	if err := c.cc.Invoke(ctx, fullMethod(employeeServiceName, "GetAllEmployees"), req, resp); err != nil {
		return nil, fromStatus(err, 0)
	}
	return resp.Employees, nil
}

// --- Greeter ---

func (c *Client) SayHello(ctx context.Context, name string) (string, error) {
	req := &HelloRequest{Name: name}
	resp := new(HelloResponse)
	if err := c.cc.Invoke(ctx, fullMethod(helloServiceName, "SayHello"), req, resp); err != nil {
		return "", fromStatus(err, 0)
	}
	return resp.Message, nil
}
