package dashboard

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"

	"github.com/budget-tracker/insights/internal/application/adapter"
)

const memoKeyPrefix = "aggregation"

// Memoizer caches engine outputs keyed on a hash of their inputs. The engine is pure,
// so equal inputs always produce equal outputs and a cached value never goes stale.
type Memoizer struct {
	cache adapter.ResultCache
	group singleflight.Group
}

// NewMemoizer creates a new Memoizer. A nil cache disables storage but still collapses
// concurrent identical computations.
func NewMemoizer(cache adapter.ResultCache) *Memoizer {
	return &Memoizer{
		cache: cache,
	}
}

// MemoKey derives the cache key for an operation from the canonical JSON encoding of
// its inputs.
func MemoKey(op string, year int, inputs any) (string, error) {
	payload, err := json.Marshal(inputs)
	if err != nil {
		return "", fmt.Errorf("failed to encode memo inputs: %w", err)
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	fmt.Fprintf(h, "%s|%d|", op, year)
	h.Write(payload)

	return fmt.Sprintf("%s:%s:%s", memoKeyPrefix, op, hex.EncodeToString(h.Sum(nil))), nil
}

// remember returns the cached result for (op, year, inputs) or computes and stores it.
// Cache failures are logged and never fail the call.
func remember[T any](ctx context.Context, m *Memoizer, op string, year int, inputs any, compute func() (T, error)) (T, error) {
	var zero T

	key, err := MemoKey(op, year, inputs)
	if err != nil {
		slog.WarnContext(ctx, "Memo key unavailable, computing without cache", "op", op, "error", err)
		return compute()
	}

	if m.cache != nil {
		if payload, err := m.cache.Get(ctx, key); err == nil {
			var cached T
			err := json.Unmarshal(payload, &cached)
			if err == nil {
				return cached, nil
			}
			slog.WarnContext(ctx, "Discarding undecodable cached result", "op", op, "key", key, "error", err)
		} else if !errors.Is(err, adapter.ErrCacheMiss) {
			slog.WarnContext(ctx, "Result cache read failed", "op", op, "key", key, "error", err)
		}
	}

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		result, err := compute()
		if err != nil {
			return nil, err
		}

		if m.cache != nil {
			if payload, err := json.Marshal(result); err != nil {
				slog.WarnContext(ctx, "Failed to encode result for cache", "op", op, "error", err)
			} else if err := m.cache.Set(ctx, key, payload); err != nil {
				slog.WarnContext(ctx, "Result cache write failed", "op", op, "key", key, "error", err)
			}
		}
		return result, nil
	})
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}
