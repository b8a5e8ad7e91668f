package report

import (
	"sync"
	"time"

	"salespoint/models"

	"github.com/google/uuid"
)

// draft is an AI-parsed entry waiting for the operator to confirm it
type draft struct {
	Team      models.Team
	UserID    string
	Entry     models.CheckpointEntry
	CreatedAt time.Time
}

type draftStore struct {
	mu     sync.Mutex
	drafts map[string]*draft
	now    func() time.Time
}

func newDraftStore() *draftStore {
	return &draftStore{
		drafts: make(map[string]*draft),
		now:    time.Now,
	}
}

// put stores d and returns the id its buttons carry
func (ds *draftStore) put(d *draft) string {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	id := uuid.NewString()
	d.CreatedAt = ds.now()
	ds.drafts[id] = d
	return id
}

// take removes and returns the draft, or nil when it expired or never existed
func (ds *draftStore) take(id string) *draft {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	d, ok := ds.drafts[id]
	if !ok {
		return nil
	}
	delete(ds.drafts, id)
	return d
}

// peek returns the draft without removing it
func (ds *draftStore) peek(id string) *draft {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.drafts[id]
}

// cleanup removes drafts older than ttl and returns how many were dropped
func (ds *draftStore) cleanup(now time.Time, ttl time.Duration) int {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	removed := 0
	for id, d := range ds.drafts {
		if now.Sub(d.CreatedAt) > ttl {
			delete(ds.drafts, id)
			removed++
		}
	}
	return removed
}
