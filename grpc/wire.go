package dirgrpc

// Transport-specific wrapper types for RPC methods whose directory
// signatures don't map to a single request/response record. These are
// used only at gRPC serialization boundaries.

// GetEmployeeRequest carries the id for EmployeeService.GetEmployee.
type GetEmployeeRequest struct {
	ID int32 `cramberry:"1"`
}

// Empty is the request of EmployeeService.GetAllEmployees.
type Empty struct{}

// HelloRequest is the request of HelloService.SayHello.
type HelloRequest struct {
	Name string `cramberry:"1"`
}

// HelloResponse is the reply of HelloService.SayHello.
type HelloResponse struct {
	Message string `cramberry:"1"`
}
