package sessions

import (
	"fmt"
	"sync"
	"time"

	internal_errors "github.com/homerisk/homerisk/internal/errors"
)

// tracker counts active sessions by id. Expired entries are swept lazily
// on each add, there is no background timer. A stolen cookie is still
// valid until its expiry: there is no revocation list, the tracker only
// enforces the capacity bound.
type tracker struct {
	mu      sync.Mutex
	expires map[string]time.Time // session id -> expiresAt
	limit   int                  // 0 = unlimited
}

func newTracker(limit int) *tracker {
	return &tracker{
		expires: make(map[string]time.Time),
		limit:   limit,
	}
}

func (t *tracker) add(id string, expiresAt time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sweepLocked()

	if t.limit > 0 && len(t.expires) >= t.limit {
		return internal_errors.Capacity(fmt.Sprintf("Active session limit of %d reached, try again later", t.limit))
	}

	t.expires[id] = expiresAt
	return nil
}

func (t *tracker) release(id string) {
	t.mu.Lock()
	delete(t.expires, id)
	t.mu.Unlock()
}

func (t *tracker) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sweepLocked()
	return len(t.expires)
}

func (t *tracker) sweepLocked() {
	now := time.Now()
	for id, exp := range t.expires {
		if now.After(exp) {
			delete(t.expires, id)
		}
	}
}
