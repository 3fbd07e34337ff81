// Package types defines the canonical records of the employee
// directory.
//
// These are plain Go structs, independent of any wire encoding. The
// binary form (cramberry) is produced by the records' own
// MarshalBinary methods; the JSON form lives in package wirejson.
package types

import "math"

// Department is an organisational unit an employee belongs to. It has
// no lifecycle of its own and is embedded by value in Employee.
type Department struct {
	ID   int32  `cramberry:"1"`
	Name string `cramberry:"2"`
}

// Employee is the single record type of the directory.
type Employee struct {
	// Assigned by the store on creation. Immutable afterwards.
	ID   int32
	Name string
	// Defaults to 0 when absent.
	Salary float64
	// Order is preserved.
	Departments []Department
	// Keys are unique; iteration order carries no meaning.
	AddressMap map[string]string
	IsActive   bool
	// Set once at creation. Nil when unknown.
	JoinDate *Timestamp
}

// Clone returns a deep copy of e. Records handed out by the store are
// always clones, so callers can never alias stored state.
func (e Employee) Clone() Employee {
	out := e
	if e.Departments != nil {
		out.Departments = make([]Department, len(e.Departments))
		copy(out.Departments, e.Departments)
	}
	if e.AddressMap != nil {
		out.AddressMap = make(map[string]string, len(e.AddressMap))
		for k, v := range e.AddressMap {
			out.AddressMap[k] = v
		}
	}
	if e.JoinDate != nil {
		jd := *e.JoinDate
		out.JoinDate = &jd
	}
	return out
}

// Equal reports whether e and o hold the same domain values. A nil
// and an empty Departments slice (or AddressMap) are equal, matching
// the defaults every transport fills in.
func (e Employee) Equal(o Employee) bool {
	if e.ID != o.ID || e.Name != o.Name || !sameSalary(e.Salary, o.Salary) || e.IsActive != o.IsActive {
		return false
	}
	if len(e.Departments) != len(o.Departments) {
		return false
	}
	for i := range e.Departments {
		if e.Departments[i] != o.Departments[i] {
			return false
		}
	}
	if len(e.AddressMap) != len(o.AddressMap) {
		return false
	}
	for k, v := range e.AddressMap {
		if ov, ok := o.AddressMap[k]; !ok || ov != v {
			return false
		}
	}
	switch {
	case e.JoinDate == nil && o.JoinDate == nil:
		return true
	case e.JoinDate == nil || o.JoinDate == nil:
		return false
	default:
		return *e.JoinDate == *o.JoinDate
	}
}

// sameSalary treats every NaN as equal to every other NaN.
func sameSalary(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// EmployeeList is the response of the list operation on the binary
// transport.
type EmployeeList struct {
	Employees []Employee
}
