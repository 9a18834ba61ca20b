package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "standings|2025/2026", "table")
	if v, ok := store.Get(ctx, "standings|2025/2026"); !ok || v != "table" {
		t.Fatalf("expected cached value, got %v ok=%v", v, ok)
	}

	store.Delete(ctx, "standings|2025/2026")
	if _, ok := store.Get(ctx, "standings|2025/2026"); ok {
		t.Fatal("expected value deleted")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)

	store.Set(ctx, "key", "value")
	time.Sleep(20 * time.Millisecond)

	if _, ok := store.Get(ctx, "key"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "standings|2025/2026", "a")
	store.Set(ctx, "standings|2024/2025", "b")
	store.Set(ctx, "teams|all", "c")

	store.DeletePrefix(ctx, "standings|")

	if _, ok := store.Get(ctx, "standings|2025/2026"); ok {
		t.Fatal("expected standings entries dropped")
	}
	if _, ok := store.Get(ctx, "standings|2024/2025"); ok {
		t.Fatal("expected standings entries dropped")
	}
	if _, ok := store.Get(ctx, "teams|all"); !ok {
		t.Fatal("expected unrelated entry kept")
	}
}

func TestStore_GetOrLoad_LoadsOncePerKey(t *testing.T) {
	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				t.Errorf("get or load: %v", err)
				return
			}
			if got, _ := v.(string); got != "value" {
				t.Errorf("unexpected value %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected one load for concurrent callers, got %d", got)
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	store := NewStore(time.Minute)
	loadErr := errors.New("backend down")
	var loads int

	loader := func(context.Context) (any, error) {
		loads++
		if loads == 1 {
			return nil, loadErr
		}
		return "value", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "key", loader); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "key", loader)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if v != "value" {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestStore_GetOrLoad_EmptyKeyBypassesCache(t *testing.T) {
	store := NewStore(time.Minute)
	var loads int

	loader := func(context.Context) (any, error) {
		loads++
		return loads, nil
	}

	for i := 1; i <= 2; i++ {
		v, err := store.GetOrLoad(context.Background(), "", loader)
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if v != i {
			t.Fatalf("expected fresh load %d, got %v", i, v)
		}
	}
}
