package dirtest

import (
	"context"
	"testing"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/types"
)

// Harness wraps a directory with assertions that fail the test on
// unexpected errors.
type Harness struct {
	t   *testing.T
	dir empdir.Directory
}

// NewHarness creates a test harness over dir.
func NewHarness(t *testing.T, dir empdir.Directory) *Harness {
	t.Helper()
	return &Harness{t: t, dir: dir}
}

// Directory returns the wrapped directory for direct access.
func (h *Harness) Directory() empdir.Directory {
	return h.dir
}

// Add stores e and returns the stored record.
func (h *Harness) Add(e types.Employee) types.Employee {
	h.t.Helper()
	stored, err := h.dir.AddEmployee(context.Background(), e)
	if err != nil {
		h.t.Fatalf("AddEmployee(%q) failed: %v", e.Name, err)
	}
	return stored
}

// Get returns the record stored under id.
func (h *Harness) Get(id int32) types.Employee {
	h.t.Helper()
	e, err := h.dir.GetEmployee(context.Background(), id)
	if err != nil {
		h.t.Fatalf("GetEmployee(%d) failed: %v", id, err)
	}
	return e
}

// List returns every stored record.
func (h *Harness) List() []types.Employee {
	h.t.Helper()
	list, err := h.dir.ListEmployees(context.Background())
	if err != nil {
		h.t.Fatalf("ListEmployees failed: %v", err)
	}
	return list
}

// MustNotFind asserts that id is unknown to the directory.
func (h *Harness) MustNotFind(id int32) {
	h.t.Helper()
	_, err := h.dir.GetEmployee(context.Background(), id)
	nf, ok := empdir.IsNotFound(err)
	if !ok {
		h.t.Fatalf("GetEmployee(%d): expected NotFoundError, got %v", id, err)
	}
	if nf.ID != id {
		h.t.Fatalf("NotFoundError carries id %d, want %d", nf.ID, id)
	}
}

// MustEqual asserts that got and want hold the same domain values.
func (h *Harness) MustEqual(got, want types.Employee) {
	h.t.Helper()
	if !got.Equal(want) {
		h.t.Fatalf("records differ:\n got  %+v\n want %+v", got, want)
	}
}

// --- Helper Factories ---

// MakeEmployee builds an active candidate record with one address
// entry and the given departments.
func MakeEmployee(name string, depts ...types.Department) types.Employee {
	return types.Employee{
		Name:        name,
		Salary:      50000,
		Departments: depts,
		AddressMap:  map[string]string{"city": "Pune"},
		IsActive:    true,
	}
}
