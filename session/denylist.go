package session

import (
	"sync"
	"time"
)

// denylist tracks revoked token IDs until their natural expiry. It is the
// one piece of shared, concurrently read-and-written state in the session
// layer, so it carries its own mutex. Expired entries are swept lazily on
// writes.
type denylist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // token ID -> token expiry
}

func newDenylist() *denylist {
	return &denylist{revoked: make(map[string]time.Time)}
}

// add marks a token ID revoked until the given expiry. Adding the same ID
// twice is harmless, which makes Revoke idempotent.
func (d *denylist) add(id string, expiresAt, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweepLocked(now)
	d.revoked[id] = expiresAt
}

// contains reports whether the token ID is currently revoked.
func (d *denylist) contains(id string, now time.Time) bool {
	d.mu.RLock()
	expiresAt, ok := d.revoked[id]
	d.mu.RUnlock()
	// An entry past its expiry no longer matters; the token itself is
	// already rejected as expired.
	return ok && now.Before(expiresAt)
}

// sweepLocked drops entries for tokens that have expired on their own.
func (d *denylist) sweepLocked(now time.Time) {
	for id, expiresAt := range d.revoked {
		if !now.Before(expiresAt) {
			delete(d.revoked, id)
		}
	}
}

// size returns the number of live entries. Used by tests and metrics.
func (d *denylist) size() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.revoked)
}
