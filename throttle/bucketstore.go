package throttle

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/invoicepress/invoicepress/svc"
)

// BucketStore is the app-wide registry of throttle groups. It runs as a
// service whose only job is periodic cleanup of idle buckets.
type BucketStore struct {
	Ctx              context.Context    // Service Context
	cancel           context.CancelFunc // Service Context CancelFunc
	state            int                // internal service state
	done             chan error         // Shutdown Error Channel
	cleanupCycle     time.Duration
	cleanupOlderThan time.Duration
	groups           map[string]*BucketGroup
}

func (s *BucketStore) Name() string {
	return "ThrottleBucketStore"
}

func NewBucketStore(parentCtx context.Context, cleanupCycle time.Duration, cleanupOlderThan time.Duration) *BucketStore {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &BucketStore{
		Ctx:              svcCtx,
		cancel:           svcCancel,
		state:            svc.StateREADY,
		done:             make(chan error, 1),
		cleanupCycle:     cleanupCycle,
		cleanupOlderThan: cleanupOlderThan,
		groups:           make(map[string]*BucketGroup),
	}
}

// SetBucketGroup registers a group. Register all groups before StartServices;
// the groups map is not guarded for concurrent writes.
func (s *BucketStore) SetBucketGroup(id string, conf *BucketConf) {
	s.groups[id] = &BucketGroup{
		conf:    conf,
		buckets: &sync.Map{},
	}
}

func (s *BucketStore) GetBucketGroup(id string) (*BucketGroup, bool) {
	g, ok := s.groups[id]
	return g, ok
}

// Allow consumes one token for the caller key in the given group.
// An unknown groupID always blocks.
func (s *BucketStore) Allow(groupID string, key string, now time.Time) bool {
	g, ok := s.GetBucketGroup(groupID)
	if !ok {
		return false
	}
	b, ok := g.GetBucket(key)
	if ok {
		return b.Allow(now)
	}
	// consume 1 token from the fresh bucket
	g.SetBucket(key, g.conf.Burst-1, now)
	return true
}

func (s *BucketStore) Start() error {
	if s.state == svc.StateRUNNING {
		return fmt.Errorf("already started")
	}
	if s.state != svc.StateREADY {
		return fmt.Errorf("cannot start. not ready")
	}
	s.state = svc.StateRUNNING
	log.Printf("[INFO][Throttle] cleanup service started cycle=%v exp=%v", s.cleanupCycle, s.cleanupOlderThan)
	go s.run()
	return nil
}

func (s *BucketStore) Stop() {
	if s.state != svc.StateRUNNING {
		log.Println("[ERROR][Throttle] cannot stop. not running")
		return
	}
	s.cancel()
	s.state = svc.StateSTOPPED
	log.Println("[INFO][Throttle] service stopped")
}

func (s *BucketStore) Done() <-chan error {
	return s.done
}

func (s *BucketStore) run() {
	ticker := time.NewTicker(s.cleanupCycle)
	defer ticker.Stop()
	for {
		select {
		case <-s.Ctx.Done():
			log.Println("[INFO][Throttle] stopping cleanup service")
			s.done <- nil
			return
		case now := <-ticker.C:
			s.Cleanup(now)
		}
	}
}

func (s *BucketStore) Cleanup(now time.Time) {
	for _, g := range s.groups {
		g.cleanup(now, s.cleanupOlderThan)
	}
}
