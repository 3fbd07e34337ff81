package store

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/types"
)

var fixedTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	return New(WithClock(func() time.Time { return fixedTime }))
}

func gaurav() types.Employee {
	return types.Employee{
		Name:        "Gaurav",
		Salary:      95000.0,
		Departments: []types.Department{{ID: 1, Name: "Engineering"}},
		AddressMap:  map[string]string{"city": "Bangalore", "country": "India"},
		IsActive:    true,
	}
}

func TestAdd_AssignsSequentialIDs(t *testing.T) {
	s := newTestStore()

	for want := int32(1); want <= 5; want++ {
		got := s.Add(types.Employee{Name: "e"})
		if got.ID != want {
			t.Fatalf("expected id %d, got %d", want, got.ID)
		}
	}
	if s.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", s.Len())
	}
}

func TestAdd_IgnoresCandidateID(t *testing.T) {
	s := newTestStore()
	candidate := gaurav()
	candidate.ID = 42

	got := s.Add(candidate)
	if got.ID != 1 {
		t.Fatalf("expected id 1, got %d", got.ID)
	}
	if _, err := s.Get(42); err == nil {
		t.Fatal("record must not be stored under the candidate id")
	}
}

func TestAdd_StampsJoinDate(t *testing.T) {
	s := newTestStore()

	got := s.Add(gaurav())
	if got.JoinDate == nil {
		t.Fatal("expected join date to be stamped")
	}
	if !got.JoinDate.ToTime().Equal(fixedTime) {
		t.Fatalf("expected join date %v, got %v", fixedTime, got.JoinDate.ToTime())
	}

	explicit := gaurav()
	explicit.JoinDate = types.NewTimestamp(time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC))
	got = s.Add(explicit)
	if *got.JoinDate != *explicit.JoinDate {
		t.Fatalf("expected supplied join date to be kept, got %v", got.JoinDate.ToTime())
	}
}

func TestAdd_CopiesCandidate(t *testing.T) {
	s := newTestStore()
	candidate := gaurav()
	stored := s.Add(candidate)

	candidate.Departments[0].Name = "Mutated"
	candidate.AddressMap["city"] = "Mutated"
	stored.AddressMap["country"] = "Mutated"

	got, err := s.Get(stored.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Departments[0].Name != "Engineering" || got.AddressMap["city"] != "Bangalore" || got.AddressMap["country"] != "India" {
		t.Fatalf("stored record was aliased: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore()
	s.Add(gaurav())

	_, err := s.Get(999)
	nf, ok := empdir.IsNotFound(err)
	if !ok {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.ID != 999 {
		t.Fatalf("expected id 999 in error, got %d", nf.ID)
	}
}

func TestGet_Idempotent(t *testing.T) {
	s := newTestStore()
	added := s.Add(gaurav())

	first, err := s.Get(added.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := s.Get(added.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		a, _ := first.MarshalBinary()
		b, _ := again.MarshalBinary()
		if string(a) != string(b) {
			t.Fatalf("repeated Get returned different bytes")
		}
	}
}

func TestList_SnapshotInInsertionOrder(t *testing.T) {
	s := newTestStore()
	s.Add(types.Employee{Name: "a"})
	s.Add(types.Employee{Name: "b"})

	list := s.List()
	if len(list) != 2 || list[0].Name != "a" || list[1].Name != "b" {
		t.Fatalf("unexpected list: %+v", list)
	}

	list[0].Name = "mutated"
	s.Add(types.Employee{Name: "c"})

	if len(list) != 2 {
		t.Fatal("snapshot grew after Add")
	}
	again := s.List()
	if again[0].Name != "a" {
		t.Fatal("List returned a live view")
	}
	if len(again) != 3 {
		t.Fatalf("expected 3 records, got %d", len(again))
	}
}

func TestConcurrentAdds_UniqueIDs(t *testing.T) {
	s := newTestStore()
	const workers, perWorker = 16, 50

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids []int32
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				rec := s.Add(types.Employee{Name: "worker"})
				mu.Lock()
				ids = append(ids, rec.ID)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		if id != int32(i+1) {
			t.Fatalf("expected ids 1..%d without gaps or repeats, got %d at %d", len(ids), id, i)
		}
	}
}

// TestConcurrentReaders_NeverSeePartialRecords checks that any id a
// reader observes through List is immediately readable through Get.
func TestConcurrentReaders_NeverSeePartialRecords(t *testing.T) {
	s := newTestStore()
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.Add(gaurav())
		}
		close(done)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				for _, rec := range s.List() {
					got, err := s.Get(rec.ID)
					if err != nil {
						t.Errorf("listed id %d not readable: %v", rec.ID, err)
						return
					}
					if got.Name != "Gaurav" || len(got.Departments) != 1 {
						t.Errorf("partial record for id %d: %+v", rec.ID, got)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}
