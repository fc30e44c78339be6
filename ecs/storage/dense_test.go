package storage

import "testing"

func TestDenseStoreCRUD(t *testing.T) {
	store := NewDense[int]()

	store.Set(3, 42)
	if !store.Has(3) {
		t.Fatalf("expected Has to be true")
	}
	if store.Has(2) || store.Has(100) {
		t.Fatalf("unexpected Has for unset index")
	}
	if got, ok := store.Get(3); !ok || *got != 42 {
		t.Fatalf("unexpected get result: %v, ok=%v", got, ok)
	}

	called := false
	store.Iterate(func(idx uint32, v *int) bool {
		called = true
		if idx != 3 {
			t.Fatalf("unexpected index: %d", idx)
		}
		if *v != 42 {
			t.Fatalf("unexpected value: %d", *v)
		}
		return true
	})
	if !called {
		t.Fatalf("expected iterate to visit index")
	}

	if !store.Remove(3) {
		t.Fatalf("remove failed")
	}
	if store.Remove(3) {
		t.Fatalf("second remove should report false")
	}
	if store.Has(3) {
		t.Fatalf("value should be removed")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestDenseStoreOverwriteKeepsCount(t *testing.T) {
	store := NewDense[string]()
	store.Set(1, "a")
	store.Set(1, "b")
	if store.Len() != 1 {
		t.Fatalf("expected 1 value after overwrite, got %d", store.Len())
	}
	got, _ := store.Get(1)
	if *got != "b" {
		t.Fatalf("expected last write to win, got %q", *got)
	}
}

func TestDenseStorePointerMutation(t *testing.T) {
	type position struct{ X, Y int }
	store := NewDense[position]()
	store.Set(5, position{X: 1})
	p, _ := store.Get(5)
	p.Y = 9
	got, _ := store.Get(5)
	if got.Y != 9 {
		t.Fatalf("expected in-place mutation, got %+v", *got)
	}
}

func TestDenseStoreIterateOrderAndStop(t *testing.T) {
	store := NewDense[int]()
	for _, idx := range []uint32{7, 2, 4} {
		store.Set(idx, int(idx)*10)
	}
	var seen []uint32
	store.Iterate(func(idx uint32, _ *int) bool {
		seen = append(seen, idx)
		return len(seen) < 2
	})
	if len(seen) != 2 || seen[0] != 2 || seen[1] != 4 {
		t.Fatalf("unexpected iteration: %v", seen)
	}

	store.Clear()
	if store.Len() != 0 || store.Has(7) {
		t.Fatalf("expected clear to empty the store")
	}
}
