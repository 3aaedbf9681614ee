package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestMemoKey(t *testing.T) {
	inputs := map[string]int{"a": 1, "b": 2}

	k1, err := MemoKey("overview", 2024, inputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, _ := MemoKey("overview", 2024, map[string]int{"b": 2, "a": 1})
	if k1 != k2 {
		t.Errorf("expected equal keys for equal inputs, got %s and %s", k1, k2)
	}
	if !strings.HasPrefix(k1, "aggregation:overview:") {
		t.Errorf("unexpected key format: %s", k1)
	}

	tests := []struct {
		name   string
		op     string
		year   int
		inputs any
	}{
		{name: "different op", op: "time_series", year: 2024, inputs: inputs},
		{name: "different year", op: "overview", year: 2025, inputs: inputs},
		{name: "different inputs", op: "overview", year: 2024, inputs: map[string]int{"a": 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := MemoKey(tt.op, tt.year, tt.inputs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if k == k1 {
				t.Errorf("expected key to differ from %s", k1)
			}
		})
	}
}

func TestRemember(t *testing.T) {
	ctx := context.Background()

	t.Run("second call is served from cache", func(t *testing.T) {
		cache := newMemoryCache()
		memo := NewMemoizer(cache)
		var computed int32
		compute := func() ([]string, error) {
			atomic.AddInt32(&computed, 1)
			return []string{"rent", "food"}, nil
		}

		for i := 0; i < 2; i++ {
			got, err := remember(ctx, memo, "op", 2024, []int{1, 2}, compute)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 2 || got[0] != "rent" {
				t.Errorf("unexpected result: %v", got)
			}
		}
		if computed != 1 {
			t.Errorf("expected 1 computation, got %d", computed)
		}
		if cache.hits != 1 {
			t.Errorf("expected 1 cache hit, got %d", cache.hits)
		}
	})

	t.Run("cache read failure recomputes", func(t *testing.T) {
		cache := newMemoryCache()
		cache.getErr = errors.New("connection refused")
		memo := NewMemoizer(cache)

		got, err := remember(ctx, memo, "op", 2024, 1, func() (int, error) { return 42, nil })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
	})

	t.Run("cache write failure still returns result", func(t *testing.T) {
		cache := newMemoryCache()
		cache.setErr = errors.New("read only replica")
		memo := NewMemoizer(cache)

		got, err := remember(ctx, memo, "op", 2024, 1, func() (int, error) { return 7, nil })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 7 {
			t.Errorf("expected 7, got %d", got)
		}
	})

	t.Run("undecodable cached payload recomputes", func(t *testing.T) {
		cache := newMemoryCache()
		memo := NewMemoizer(cache)
		key, _ := MemoKey("op", 2024, 1)
		cache.items[key] = []byte("not json")

		got, err := remember(ctx, memo, "op", 2024, 1, func() (int, error) { return 3, nil })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 3 {
			t.Errorf("expected 3, got %d", got)
		}
	})

	t.Run("compute error is returned and not cached", func(t *testing.T) {
		cache := newMemoryCache()
		memo := NewMemoizer(cache)
		wantErr := errors.New("boom")

		_, err := remember(ctx, memo, "op", 2024, 1, func() (int, error) { return 0, wantErr })
		if !errors.Is(err, wantErr) {
			t.Errorf("expected %v, got %v", wantErr, err)
		}
		if len(cache.items) != 0 {
			t.Errorf("expected empty cache, got %d items", len(cache.items))
		}
	})

	t.Run("nil cache computes every time", func(t *testing.T) {
		memo := NewMemoizer(nil)
		var computed int32
		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = remember(ctx, memo, "op", 2024, 1, func() (int, error) {
					atomic.AddInt32(&computed, 1)
					return 1, nil
				})
			}()
		}
		wg.Wait()
		if computed < 1 || computed > 3 {
			t.Errorf("unexpected computation count %d", computed)
		}
	})
}
