// Package wirejson is the bridge between directory records and their
// JSON form on the HTTP transport.
//
// Encoding always writes every domain key with an explicit default,
// so clients never see a missing field. Decoding is lenient the other
// way round: unknown keys are ignored and absent keys (or null) take
// their defaults. Only malformed JSON and values of the wrong type
// are rejected, as *empdir.BadRequestError.
package wirejson

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/types"
)

// TimeLayout is the joinDate format. Always UTC.
const TimeLayout = time.RFC3339Nano

type departmentJSON struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type employeeJSON struct {
	ID          int32             `json:"id"`
	Name        string            `json:"name"`
	Salary      salaryJSON        `json:"salary"`
	Departments []departmentJSON  `json:"departments"`
	AddressMap  map[string]string `json:"addressMap"`
	IsActive    bool              `json:"isActive"`
	JoinDate    *string           `json:"joinDate,omitempty"`
}

// Exact key sets. encoding/json folds key case on its own, so anything
// not spelled exactly like this is dropped before decoding.
var (
	employeeKeys   = []string{"id", "name", "salary", "departments", "addressMap", "isActive", "joinDate"}
	departmentKeys = []string{"id", "name"}
)

// UnmarshalJSON decodes an employee object, ignoring keys that differ
// from the known ones, including by case only.
func (e *employeeJSON) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	exact := keepKeys(raw, employeeKeys)
	if deps, ok := exact["departments"]; ok {
		exact["departments"] = exactDepartments(deps)
	}
	filtered, err := json.Marshal(exact)
	if err != nil {
		return err
	}
	type plain employeeJSON
	return json.Unmarshal(filtered, (*plain)(e))
}

// exactDepartments drops inexact keys from each department object.
// Anything that is not an array of objects is returned untouched so
// the decoder reports the type mismatch.
func exactDepartments(data json.RawMessage) json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return data
	}
	for i, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		out, err := json.Marshal(keepKeys(obj, departmentKeys))
		if err != nil {
			return data
		}
		items[i] = out
	}
	out, err := json.Marshal(items)
	if err != nil {
		return data
	}
	return out
}

func keepKeys(raw map[string]json.RawMessage, keys []string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			out[k] = v
		}
	}
	return out
}

// salaryJSON is a float64 whose non-finite values travel as the
// strings "NaN", "Infinity" and "-Infinity".
type salaryJSON float64

func (s salaryJSON) MarshalJSON() ([]byte, error) {
	f := float64(s)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(f)
}

func (s *salaryJSON) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		switch str {
		case "NaN":
			*s = salaryJSON(math.NaN())
		case "Infinity":
			*s = salaryJSON(math.Inf(1))
		case "-Infinity":
			*s = salaryJSON(math.Inf(-1))
		default:
			return &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(float64(0))}
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = salaryJSON(f)
	return nil
}

func toJSON(e types.Employee) employeeJSON {
	out := employeeJSON{
		ID:          e.ID,
		Name:        e.Name,
		Salary:      salaryJSON(e.Salary),
		Departments: make([]departmentJSON, len(e.Departments)),
		AddressMap:  make(map[string]string, len(e.AddressMap)),
		IsActive:    e.IsActive,
	}
	for i, d := range e.Departments {
		out.Departments[i] = departmentJSON{ID: d.ID, Name: d.Name}
	}
	for k, v := range e.AddressMap {
		out.AddressMap[k] = v
	}
	if e.JoinDate != nil {
		s := e.JoinDate.ToTime().Format(TimeLayout)
		out.JoinDate = &s
	}
	return out
}

func fromJSON(in employeeJSON) (types.Employee, error) {
	e := types.Employee{
		ID:          in.ID,
		Name:        in.Name,
		Salary:      float64(in.Salary),
		Departments: make([]types.Department, len(in.Departments)),
		AddressMap:  make(map[string]string, len(in.AddressMap)),
		IsActive:    in.IsActive,
	}
	for i, d := range in.Departments {
		e.Departments[i] = types.Department{ID: d.ID, Name: d.Name}
	}
	for k, v := range in.AddressMap {
		e.AddressMap[k] = v
	}
	if in.JoinDate != nil {
		t, err := time.Parse(TimeLayout, *in.JoinDate)
		if err != nil {
			return types.Employee{}, empdir.NewBadRequestError("joinDate", fmt.Sprintf("expected RFC 3339 timestamp, got %q", *in.JoinDate))
		}
		e.JoinDate = types.NewTimestamp(t)
	}
	return e, nil
}

// MarshalEmployee renders e as a JSON object.
func MarshalEmployee(e types.Employee) ([]byte, error) {
	data, err := json.Marshal(toJSON(e))
	if err != nil {
		return nil, fmt.Errorf("wirejson: marshal employee %d: %w", e.ID, err)
	}
	return data, nil
}

// MarshalEmployees renders list as a JSON array. A nil list renders
// as [].
func MarshalEmployees(list []types.Employee) ([]byte, error) {
	out := make([]employeeJSON, len(list))
	for i, e := range list {
		out[i] = toJSON(e)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("wirejson: marshal employees: %w", err)
	}
	return data, nil
}

// UnmarshalEmployee decodes a JSON object into a record.
func UnmarshalEmployee(data []byte) (types.Employee, error) {
	var in employeeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return types.Employee{}, decodeError(err)
	}
	return fromJSON(in)
}

// UnmarshalEmployees decodes a JSON array of records.
func UnmarshalEmployees(data []byte) ([]types.Employee, error) {
	var in []employeeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, decodeError(err)
	}
	out := make([]types.Employee, len(in))
	for i, ej := range in {
		e, err := fromJSON(ej)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// decodeError maps encoding/json failures onto BadRequest. Type
// mismatches name the offending field path, e.g. "departments.id".
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		want := "value"
		if typeErr.Type != nil {
			want = jsonKind(typeErr.Type.Kind().String())
		}
		return empdir.NewBadRequestError(typeErr.Field, fmt.Sprintf("expected %s, got %s", want, typeErr.Value))
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return empdir.NewBadRequestError("", fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, syntaxErr))
	}
	return empdir.NewBadRequestError("", fmt.Sprintf("malformed JSON: %v", err))
}

func jsonKind(goKind string) string {
	switch goKind {
	case "int32", "int", "int64":
		return "integer"
	case "float64":
		return "number"
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "slice":
		return "array"
	case "map", "struct":
		return "object"
	case "ptr":
		return "string"
	default:
		return goKind
	}
}
