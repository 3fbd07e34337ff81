// Package dirtest provides test utilities for code built on the
// employee directory, including a configurable mock directory,
// capturing wiretap sinks, a test harness, and a compliance suite
// every empdir.Connection must pass.
package dirtest

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/types"
)

// Compile-time checks that MockDirectory satisfies the contract.
var (
	_ empdir.Connection = (*MockDirectory)(nil)
	_ empdir.Greeter    = (*MockDirectory)(nil)
)

// MockDirectory is a configurable directory for transport testing.
// All methods are configurable via function fields. Unconfigured
// methods return sensible defaults: GetEmployee reports NotFound,
// AddEmployee echoes the candidate with ID 1, ListEmployees is empty.
type MockDirectory struct {
	GetEmployeeFn   func(context.Context, int32) (types.Employee, error)
	AddEmployeeFn   func(context.Context, types.Employee) (types.Employee, error)
	ListEmployeesFn func(context.Context) ([]types.Employee, error)
	SayHelloFn      func(context.Context, string) (string, error)

	// Call counters (atomic for concurrent access).
	GetEmployeeCalls   atomic.Int64
	AddEmployeeCalls   atomic.Int64
	ListEmployeesCalls atomic.Int64
	SayHelloCalls      atomic.Int64
	Closed             atomic.Bool
}

func (m *MockDirectory) GetEmployee(ctx context.Context, id int32) (types.Employee, error) {
	m.GetEmployeeCalls.Add(1)
	if m.GetEmployeeFn != nil {
		return m.GetEmployeeFn(ctx, id)
	}
	return types.Employee{}, empdir.NewNotFoundError(id)
}

func (m *MockDirectory) AddEmployee(ctx context.Context, e types.Employee) (types.Employee, error) {
	m.AddEmployeeCalls.Add(1)
	if m.AddEmployeeFn != nil {
		return m.AddEmployeeFn(ctx, e)
	}
	e.ID = 1
	return e, nil
}

func (m *MockDirectory) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	m.ListEmployeesCalls.Add(1)
	if m.ListEmployeesFn != nil {
		return m.ListEmployeesFn(ctx)
	}
	return []types.Employee{}, nil
}

func (m *MockDirectory) SayHello(ctx context.Context, name string) (string, error) {
	m.SayHelloCalls.Add(1)
	if m.SayHelloFn != nil {
		return m.SayHelloFn(ctx, name)
	}
	return fmt.Sprintf("Hello, %s!", name), nil
}

func (m *MockDirectory) Close() error {
	m.Closed.Store(true)
	return nil
}
