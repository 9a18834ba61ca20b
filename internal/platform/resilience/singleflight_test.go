package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var loads atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("standings|2025/2026", func() (any, error) {
				loads.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "table", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
				return
			}
			if got, _ := v.(string); got != "table" {
				t.Errorf("unexpected value %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected one load, got %d", got)
	}
}

func TestSingleFlight_SharesError(t *testing.T) {
	var g SingleFlight
	loadErr := errors.New("load failed")

	_, err, shared := g.Do("key", func() (any, error) {
		return nil, loadErr
	})
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if shared {
		t.Fatal("single caller must not report a shared result")
	}
}

func TestSingleFlight_KeyReusableAfterCompletion(t *testing.T) {
	var g SingleFlight
	var loads int

	for i := 0; i < 2; i++ {
		if _, err, _ := g.Do("key", func() (any, error) {
			loads++
			return nil, nil
		}); err != nil {
			t.Fatalf("do: %v", err)
		}
	}
	if loads != 2 {
		t.Fatalf("expected sequential calls to run separately, got %d", loads)
	}
}
