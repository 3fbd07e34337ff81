package dirtest

import (
	"context"
	"sync"
	"testing"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/types"
)

// RunComplianceSuite runs the directory contract against connections
// produced by factory.
//
// The factory must return a connection to a fresh, empty directory
// for each subtest. The suite closes it when the subtest ends.
func RunComplianceSuite(t *testing.T, factory func(t *testing.T) empdir.Connection) {
	t.Helper()

	open := func(t *testing.T) *Harness {
		t.Helper()
		conn := factory(t)
		t.Cleanup(func() { _ = conn.Close() })
		return NewHarness(t, conn)
	}

	t.Run("empty_directory_lists_nothing", func(t *testing.T) {
		h := open(t)
		if list := h.List(); len(list) != 0 {
			t.Fatalf("expected empty list, got %d records", len(list))
		}
	})

	t.Run("ids_start_at_one_and_increase", func(t *testing.T) {
		h := open(t)
		for want := int32(1); want <= 3; want++ {
			got := h.Add(MakeEmployee("e"))
			if got.ID != want {
				t.Fatalf("expected id %d, got %d", want, got.ID)
			}
		}
	})

	t.Run("candidate_id_is_ignored", func(t *testing.T) {
		h := open(t)
		e := MakeEmployee("x")
		e.ID = 42
		if got := h.Add(e); got.ID != 1 {
			t.Fatalf("expected assigned id 1, got %d", got.ID)
		}
		h.MustNotFind(42)
	})

	t.Run("add_then_get", func(t *testing.T) {
		h := open(t)
		candidate := MakeEmployee("Asha", types.Department{ID: 3, Name: "Finance"}, types.Department{ID: 1, Name: "Engineering"})
		stored := h.Add(candidate)
		if stored.JoinDate == nil {
			t.Fatal("expected a join date on the stored record")
		}

		want := candidate.Clone()
		want.ID = stored.ID
		want.JoinDate = stored.JoinDate
		h.MustEqual(stored, want)
		h.MustEqual(h.Get(stored.ID), want)
	})

	t.Run("empty_candidate_gets_defaults", func(t *testing.T) {
		h := open(t)
		stored := h.Add(types.Employee{})
		got := h.Get(stored.ID)
		if got.Name != "" || got.Salary != 0 || got.IsActive || len(got.Departments) != 0 || len(got.AddressMap) != 0 {
			t.Fatalf("expected default fields, got %+v", got)
		}
	})

	t.Run("unknown_id_is_not_found", func(t *testing.T) {
		h := open(t)
		h.Add(MakeEmployee("only"))
		h.MustNotFind(999)
	})

	t.Run("get_is_idempotent", func(t *testing.T) {
		h := open(t)
		stored := h.Add(MakeEmployee("same"))
		first := h.Get(stored.ID)
		second := h.Get(stored.ID)
		h.MustEqual(first, second)
	})

	t.Run("list_in_insertion_order", func(t *testing.T) {
		h := open(t)
		names := []string{"a", "b", "c", "d"}
		for _, n := range names {
			h.Add(MakeEmployee(n))
		}
		list := h.List()
		if len(list) != len(names) {
			t.Fatalf("expected %d records, got %d", len(names), len(list))
		}
		for i, e := range list {
			if e.Name != names[i] || e.ID != int32(i+1) {
				t.Fatalf("position %d: got id=%d name=%q", i, e.ID, e.Name)
			}
		}
	})

	t.Run("returned_records_are_copies", func(t *testing.T) {
		h := open(t)
		stored := h.Add(MakeEmployee("copy", types.Department{ID: 1, Name: "Engineering"}))
		stored.Departments[0].Name = "mutated"
		stored.AddressMap["city"] = "mutated"

		got := h.Get(stored.ID)
		if got.Departments[0].Name != "Engineering" || got.AddressMap["city"] != "Pune" {
			t.Fatalf("caller mutation leaked into the directory: %+v", got)
		}
	})

	t.Run("concurrent_adds_get_unique_ids", func(t *testing.T) {
		h := open(t)
		const n = 25

		ids := make(chan int32, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				e, err := h.Directory().AddEmployee(context.Background(), MakeEmployee("c"))
				if err != nil {
					t.Errorf("concurrent AddEmployee failed: %v", err)
					return
				}
				ids <- e.ID
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int32]bool, n)
		for id := range ids {
			if seen[id] {
				t.Fatalf("id %d assigned twice", id)
			}
			seen[id] = true
		}
		for id := int32(1); id <= n; id++ {
			if !seen[id] {
				t.Fatalf("id %d missing: ids must be gap-free", id)
			}
		}
		if len(h.List()) != n {
			t.Fatalf("expected %d records listed", n)
		}
	})
}
