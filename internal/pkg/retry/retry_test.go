package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func fastPolicy(attempts uint) Policy {
	return Policy{MaxAttempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestDo(t *testing.T) {
	t.Run("returns first success", func(t *testing.T) {
		calls := 0
		got, err := Do(context.Background(), fastPolicy(3), func(context.Context) (int, error) {
			calls++
			if calls < 2 {
				return 0, errTransient
			}
			return 42, nil
		}, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops after max attempts", func(t *testing.T) {
		calls := 0
		var notified []uint
		_, err := Do(context.Background(), fastPolicy(3), func(context.Context) (int, error) {
			calls++
			return 0, errTransient
		}, nil, func(attempt uint, err error, _ time.Duration) {
			notified = append(notified, attempt)
		})

		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []uint{1, 2}, notified)
	})

	t.Run("non-retryable errors return immediately", func(t *testing.T) {
		permanent := errors.New("bad input")
		calls := 0
		_, err := Do(context.Background(), fastPolicy(5), func(context.Context) (int, error) {
			calls++
			return 0, permanent
		}, func(err error) bool { return errors.Is(err, errTransient) }, nil)

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts still runs once", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), Policy{}, func(context.Context) (int, error) {
			calls++
			return 0, errTransient
		}, nil, nil)

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := Do(ctx, fastPolicy(10), func(context.Context) (int, error) {
			calls++
			cancel()
			return 0, errTransient
		}, nil, nil)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
