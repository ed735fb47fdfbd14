package quota

import "sync"

// tenantLocks serializes enforcement per tenant. Entries are reference
// counted and removed once the last holder releases, so the map does not
// grow with the number of tenants ever seen.
type tenantLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newTenantLocks() *tenantLocks {
	return &tenantLocks{
		locks: make(map[string]*lockEntry),
	}
}

// Lock acquires the lock for the given tenant and returns the release
// function. Concurrent calls for different tenants do not block each other.
func (t *tenantLocks) Lock(tenantID string) func() {
	t.mu.Lock()
	entry, ok := t.locks[tenantID]
	if !ok {
		entry = &lockEntry{}
		t.locks[tenantID] = entry
	}
	entry.refs++
	t.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		t.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(t.locks, tenantID)
		}
		t.mu.Unlock()
	}
}
