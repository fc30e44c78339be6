package storage

import "testing"

func TestSparseStoreCRUD(t *testing.T) {
	store := NewSparse[float64]()
	store.Set(10, 1.5)
	store.Set(2, 2.5)
	store.Set(10, 3.5)

	if store.Len() != 2 {
		t.Fatalf("expected 2 values, got %d", store.Len())
	}
	if got, ok := store.Get(10); !ok || *got != 3.5 {
		t.Fatalf("unexpected get result: %v, ok=%v", got, ok)
	}
	if _, ok := store.Get(11); ok {
		t.Fatalf("expected miss for unset index")
	}

	var order []uint32
	store.Iterate(func(idx uint32, _ *float64) bool {
		order = append(order, idx)
		return true
	})
	if len(order) != 2 || order[0] != 10 || order[1] != 2 {
		t.Fatalf("expected insertion order [10 2], got %v", order)
	}

	if !store.Remove(10) || store.Remove(10) {
		t.Fatalf("remove should succeed once")
	}
	if store.Has(10) || store.Len() != 1 {
		t.Fatalf("unexpected state after remove")
	}

	store.Clear()
	if store.Len() != 0 {
		t.Fatalf("expected empty store after clear")
	}
}

func TestSparseStoreRemoveKeepsOrderAcrossCompaction(t *testing.T) {
	store := NewSparse[int]()
	for i := uint32(0); i < 100; i++ {
		store.Set(i, int(i))
	}
	for i := uint32(0); i < 100; i++ {
		if i%4 != 0 {
			if !store.Remove(i) {
				t.Fatalf("remove %d failed", i)
			}
		}
	}
	if store.Len() != 25 {
		t.Fatalf("expected 25 values, got %d", store.Len())
	}
	if store.holes > store.Len() || len(store.entries) > 2*store.Len() {
		t.Fatalf("holes were not compacted: holes=%d entries=%d", store.holes, len(store.entries))
	}

	store.Set(1, 1000)
	want := uint32(0)
	count := 0
	store.Iterate(func(idx uint32, v *int) bool {
		if count < 25 {
			if idx != want || *v != int(idx) {
				t.Fatalf("expected %d in position %d, got %d=%d", want, count, idx, *v)
			}
			want += 4
		} else if idx != 1 || *v != 1000 {
			t.Fatalf("expected reinserted index last, got %d=%d", idx, *v)
		}
		count++
		return true
	})
	if count != 26 {
		t.Fatalf("expected 26 visited values, got %d", count)
	}
	for i := uint32(0); i < 100; i += 4 {
		if got, ok := store.Get(i); !ok || *got != int(i) {
			t.Fatalf("lookup of %d after compaction: %v %v", i, got, ok)
		}
	}
}

func TestNewSelectsBackend(t *testing.T) {
	if _, ok := New[int](KindDense).(*Dense[int]); !ok {
		t.Fatalf("expected dense backend")
	}
	if _, ok := New[int](KindSparse).(*Sparse[int]); !ok {
		t.Fatalf("expected sparse backend")
	}
	if KindSparse.String() != "sparse" {
		t.Fatalf("unexpected kind name %q", KindSparse.String())
	}
}
