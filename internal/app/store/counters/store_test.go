package counters_test

import (
	"sync"
	"testing"

	"github.com/dalemusser/recoveryhub/internal/app/store/counters"
	"github.com/dalemusser/recoveryhub/internal/testutil"
)

func TestStore_NextStartsAtOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := counters.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for want := int64(1); want <= 3; want++ {
		got, err := store.Next(ctx, counters.DRC)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}

	// Sequences are independent.
	got, err := store.Next(ctx, counters.RTOM)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if got != 1 {
		t.Errorf("first rtom_id = %d, want 1", got)
	}
}

func TestStore_NextConcurrentUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := counters.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.Next(ctx, counters.Task)
			if err != nil {
				t.Errorf("Next failed: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("got %d distinct ids, want %d", len(seen), n)
	}

	cur, err := store.Current(ctx, counters.Task)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if cur != n {
		t.Errorf("Current() = %d, want %d", cur, n)
	}
}

func TestStore_NextEmptyName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := counters.New(db).Next(ctx, ""); err == nil {
		t.Error("expected error for empty name")
	}
}
