package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type snapshot struct {
	Date  string
	Games int
}

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[snapshot](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (snapshot, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return snapshot{Date: "2026-10-18", Games: 7}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "board:2026-10-18", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v.Games != 7 {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore[snapshot](10 * time.Second)
	now := time.Date(2026, 10, 18, 19, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var calls atomic.Int32
	loader := func(context.Context) (snapshot, error) {
		calls.Add(1)
		return snapshot{Games: int(calls.Load())}, nil
	}

	first, _ := store.GetOrLoad(context.Background(), "k", loader)
	second, _ := store.GetOrLoad(context.Background(), "k", loader)
	if first != second {
		t.Fatalf("expected cached value inside ttl: %+v vs %+v", first, second)
	}

	now = now.Add(11 * time.Second)
	third, _ := store.GetOrLoad(context.Background(), "k", loader)
	if third.Games != 2 {
		t.Fatalf("expected reload after ttl, got %+v", third)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[snapshot](time.Minute)
	boom := errors.New("upstream down")
	fail := true
	loader := func(context.Context) (snapshot, error) {
		if fail {
			return snapshot{}, boom
		}
		return snapshot{Games: 1}, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	fail = false
	got, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Games != 1 {
		t.Fatalf("unexpected value: %+v", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
