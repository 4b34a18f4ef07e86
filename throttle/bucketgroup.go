package throttle

import (
	"sync"
	"time"
)

// BucketGroup holds one bucket per caller key (client IP) under a shared conf.
type BucketGroup struct {
	conf    *BucketConf
	buckets *sync.Map // key -> *Bucket
}

func (g *BucketGroup) GetBucket(key string) (*Bucket, bool) {
	v, ok := g.buckets.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Bucket), true
}

func (g *BucketGroup) SetBucket(key string, tokens int, now time.Time) {
	g.buckets.Store(key, &Bucket{
		tokens:      tokens,
		lastCheck:   now,
		parentGroup: g,
	})
}

// cleanup drops buckets idle longer than olderThan. A dropped bucket simply
// starts fresh (full burst) on its next request.
func (g *BucketGroup) cleanup(now time.Time, olderThan time.Duration) {
	g.buckets.Range(func(key, v any) bool {
		if now.Sub(v.(*Bucket).idleSince()) > olderThan {
			g.buckets.Delete(key)
		}
		return true
	})
}
