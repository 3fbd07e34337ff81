package types

import (
	"fmt"
	"math"
	"sort"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// employeeWire is the binary layout of an Employee. The address map is
// written as key-sorted entries and the salary as its IEEE-754 bit
// pattern, so equal records always encode to identical bytes.
type employeeWire struct {
	ID          int32          `cramberry:"1"`
	Name        string         `cramberry:"2"`
	SalaryBits  uint64         `cramberry:"3"`
	Departments []Department   `cramberry:"4"`
	Address     []addressEntry `cramberry:"5"`
	IsActive    bool           `cramberry:"6"`
	JoinDate    *Timestamp     `cramberry:"7"`
}

type addressEntry struct {
	Key   string `cramberry:"1"`
	Value string `cramberry:"2"`
}

type employeeListWire struct {
	Employees []employeeWire `cramberry:"1"`
}

func toWire(e Employee) employeeWire {
	w := employeeWire{
		ID:          e.ID,
		Name:        e.Name,
		SalaryBits:  math.Float64bits(e.Salary),
		Departments: e.Departments,
		IsActive:    e.IsActive,
		JoinDate:    e.JoinDate,
	}
	if len(e.AddressMap) > 0 {
		keys := make([]string, 0, len(e.AddressMap))
		for k := range e.AddressMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		w.Address = make([]addressEntry, len(keys))
		for i, k := range keys {
			w.Address[i] = addressEntry{Key: k, Value: e.AddressMap[k]}
		}
	}
	return w
}

func fromWire(w employeeWire) Employee {
	e := Employee{
		ID:          w.ID,
		Name:        w.Name,
		Salary:      math.Float64frombits(w.SalaryBits),
		Departments: w.Departments,
		IsActive:    w.IsActive,
		JoinDate:    w.JoinDate,
	}
	if len(w.Address) > 0 {
		e.AddressMap = make(map[string]string, len(w.Address))
		for _, entry := range w.Address {
			// Last entry wins on duplicate keys.
			e.AddressMap[entry.Key] = entry.Value
		}
	}
	return e
}

// MarshalBinary encodes e in its canonical binary form.
func (e Employee) MarshalBinary() ([]byte, error) {
	data, err := cramberry.Marshal(toWire(e))
	if err != nil {
		return nil, fmt.Errorf("marshal employee: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes the canonical binary form into e.
func (e *Employee) UnmarshalBinary(data []byte) error {
	var w employeeWire
	if err := cramberry.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("unmarshal employee: %w", err)
	}
	*e = fromWire(w)
	return nil
}

// MarshalBinary encodes l in its canonical binary form.
func (l EmployeeList) MarshalBinary() ([]byte, error) {
	w := employeeListWire{}
	if len(l.Employees) > 0 {
		w.Employees = make([]employeeWire, len(l.Employees))
		for i, e := range l.Employees {
			w.Employees[i] = toWire(e)
		}
	}
	data, err := cramberry.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("marshal employee list: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes the canonical binary form into l.
func (l *EmployeeList) UnmarshalBinary(data []byte) error {
	var w employeeListWire
	if err := cramberry.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("unmarshal employee list: %w", err)
	}
	l.Employees = make([]Employee, len(w.Employees))
	for i, ew := range w.Employees {
		l.Employees[i] = fromWire(ew)
	}
	return nil
}
