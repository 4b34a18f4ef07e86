package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BucketStore {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewBucketStore(ctx, time.Minute, time.Hour)
}

func TestAllow(t *testing.T) {
	t.Run("burst then blocked", func(t *testing.T) {
		s := newTestStore(t)
		s.SetBucketGroup("g", &BucketConf{Burst: 2, Increment: 1, Period: time.Second})
		now := time.Now()

		assert.True(t, s.Allow("g", "1.2.3.4", now))
		assert.True(t, s.Allow("g", "1.2.3.4", now))
		assert.False(t, s.Allow("g", "1.2.3.4", now))
	})

	t.Run("tokens refill per period", func(t *testing.T) {
		s := newTestStore(t)
		s.SetBucketGroup("g", &BucketConf{Burst: 2, Increment: 1, Period: time.Second})
		now := time.Now()

		assert.True(t, s.Allow("g", "1.2.3.4", now))
		assert.True(t, s.Allow("g", "1.2.3.4", now))
		assert.False(t, s.Allow("g", "1.2.3.4", now))

		assert.True(t, s.Allow("g", "1.2.3.4", now.Add(time.Second)))
		assert.False(t, s.Allow("g", "1.2.3.4", now.Add(time.Second)))
	})

	t.Run("refill caps at burst", func(t *testing.T) {
		s := newTestStore(t)
		s.SetBucketGroup("g", &BucketConf{Burst: 2, Increment: 1, Period: time.Second})
		now := time.Now()

		assert.True(t, s.Allow("g", "1.2.3.4", now))
		later := now.Add(time.Hour)
		assert.True(t, s.Allow("g", "1.2.3.4", later))
		assert.True(t, s.Allow("g", "1.2.3.4", later))
		assert.False(t, s.Allow("g", "1.2.3.4", later))
	})

	t.Run("keys do not share buckets", func(t *testing.T) {
		s := newTestStore(t)
		s.SetBucketGroup("g", &BucketConf{Burst: 1, Increment: 1, Period: time.Minute})
		now := time.Now()

		assert.True(t, s.Allow("g", "1.2.3.4", now))
		assert.False(t, s.Allow("g", "1.2.3.4", now))
		assert.True(t, s.Allow("g", "5.6.7.8", now))
	})

	t.Run("unknown group blocks", func(t *testing.T) {
		s := newTestStore(t)
		assert.False(t, s.Allow("nope", "1.2.3.4", time.Now()))
	})
}

func TestCleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewBucketStore(ctx, time.Minute, time.Minute)
	s.SetBucketGroup("g", &BucketConf{Burst: 1, Increment: 1, Period: time.Hour})
	now := time.Now()

	require.True(t, s.Allow("g", "1.2.3.4", now))
	require.False(t, s.Allow("g", "1.2.3.4", now))

	// Idle past the expiry window: the bucket is dropped and starts fresh.
	s.Cleanup(now.Add(2 * time.Minute))
	g, ok := s.GetBucketGroup("g")
	require.True(t, ok)
	_, found := g.GetBucket("1.2.3.4")
	assert.False(t, found)

	assert.True(t, s.Allow("g", "1.2.3.4", now.Add(2*time.Minute)))
}
