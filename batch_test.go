package adminctl

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOut(t *testing.T) {
	ctx := context.Background()

	t.Run(
		"collects successes and failures", func(t *testing.T) {
			result := fanOut(
				ctx, []string{"a", "b", "c"}, 2, func(ctx context.Context, id string) error {
					if id == "b" {
						return errors.New("nope")
					}
					return nil
				},
			)
			assert.ElementsMatch(t, []string{"a", "c"}, result.Succeeded)
			require.Len(t, result.Failed, 1)
			assert.Equal(t, "b", result.Failed[0].ID)
			assert.True(t, result.Partial())
			assert.False(t, result.AllFailed())
		},
	)

	t.Run(
		"bounds concurrency", func(t *testing.T) {
			var inFlight, maxInFlight atomic.Int64
			ids := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
			result := fanOut(
				ctx, ids, 3, func(ctx context.Context, id string) error {
					n := inFlight.Add(1)
					defer inFlight.Add(-1)
					for {
						m := maxInFlight.Load()
						if n <= m || maxInFlight.CompareAndSwap(m, n) {
							break
						}
					}
					time.Sleep(5 * time.Millisecond)
					return nil
				},
			)
			assert.Len(t, result.Succeeded, len(ids))
			assert.LessOrEqual(t, maxInFlight.Load(), int64(3))
		},
	)

	t.Run(
		"canceled context fails remaining ids", func(t *testing.T) {
			canceled, cancel := context.WithCancel(context.Background())
			cancel()

			var calls atomic.Int64
			result := fanOut(
				canceled, []string{"a", "b"}, 2, func(ctx context.Context, id string) error {
					calls.Add(1)
					return nil
				},
			)
			assert.Empty(t, result.Succeeded)
			assert.Len(t, result.Failed, 2)
			assert.Equal(t, int64(0), calls.Load())
			assert.True(t, result.AllFailed())
		},
	)

	t.Run(
		"empty id set", func(t *testing.T) {
			result := fanOut(
				ctx, nil, 4, func(ctx context.Context, id string) error {
					t.Fatal("must not be called")
					return nil
				},
			)
			assert.Empty(t, result.Succeeded)
			assert.Empty(t, result.Failed)
			assert.False(t, result.AllFailed())
			assert.False(t, result.Partial())
		},
	)
}
