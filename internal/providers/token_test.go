package providers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingRefresh(calls *int32, tok string, lifetime time.Duration, err error) RefreshFunc {
	return func(ctx context.Context) (string, time.Duration, error) {
		atomic.AddInt32(calls, 1)
		if err != nil {
			return "", 0, err
		}
		return tok, lifetime, nil
	}
}

func TestTokenCache_SecondCallHitsCache(t *testing.T) {
	var calls int32
	c := NewTokenCache()

	tok, err := c.Token(context.Background(), countingRefresh(&calls, "abc", 1799*time.Second, nil))
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
	assert.EqualValues(t, 1, calls)

	tok, err = c.Token(context.Background(), countingRefresh(&calls, "def", 1799*time.Second, nil))
	require.NoError(t, err)
	assert.Equal(t, "abc", tok, "cached token must be reused")
	assert.EqualValues(t, 1, calls, "refresh must not run while the slot is fresh")
}

func TestTokenCache_ExpiryTriggersExactlyOneRefresh(t *testing.T) {
	var calls int32
	now := time.Now()
	c := NewTokenCache()
	c.now = func() time.Time { return now }

	_, err := c.Token(context.Background(), countingRefresh(&calls, "abc", 200*time.Second, nil))
	require.NoError(t, err)

	// Effective lifetime is 200s - 100s safety margin.
	now = now.Add(101 * time.Second)

	tok, err := c.Token(context.Background(), countingRefresh(&calls, "def", 200*time.Second, nil))
	require.NoError(t, err)
	assert.Equal(t, "def", tok, "expired slot must be replaced")
	assert.EqualValues(t, 2, calls)
}

func TestTokenCache_SafetyMarginAppliesBeforeDeclaredExpiry(t *testing.T) {
	var calls int32
	now := time.Now()
	c := NewTokenCache()
	c.now = func() time.Time { return now }

	_, err := c.Token(context.Background(), countingRefresh(&calls, "abc", 1799*time.Second, nil))
	require.NoError(t, err)

	// Still inside the declared lifetime but past lifetime - margin.
	now = now.Add(1750 * time.Second)

	_, err = c.Token(context.Background(), countingRefresh(&calls, "def", 1799*time.Second, nil))
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls)
}

func TestTokenCache_FailedRefreshLeavesSlotEmpty(t *testing.T) {
	var calls int32
	c := NewTokenCache()

	_, err := c.Token(context.Background(), countingRefresh(&calls, "", 0, errors.New("identity endpoint down")))
	require.Error(t, err)
	assert.EqualValues(t, 1, calls)

	// The next call retries the exchange rather than serving a stale slot.
	tok, err := c.Token(context.Background(), countingRefresh(&calls, "abc", 1799*time.Second, nil))
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
	assert.EqualValues(t, 2, calls)
}

func TestTokenCache_ConcurrentCallersShareOneRefresh(t *testing.T) {
	var calls int32
	c := NewTokenCache()
	slow := func(ctx context.Context) (string, time.Duration, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return "abc", 1799 * time.Second, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := c.Token(context.Background(), slow)
			assert.NoError(t, err)
			assert.Equal(t, "abc", tok)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls, "burst against an empty slot must trigger a single exchange")
}
