package catalog

import (
	"sync"
	"time"

	"github.com/decohogar/backend/internal/domain"
)

// snapshot is one consistent read of the catalog tables.
type snapshot struct {
	products         []domain.Product
	templates        []domain.DesignTemplate
	templateProducts []domain.TemplateProduct
}

// snapshotCache holds the latest catalog snapshot behind a TTL, so one chat
// turn's three reads hit the database at most once and concurrent turns share
// the result.
type snapshotCache struct {
	mutex      sync.RWMutex
	current    *snapshot
	expiration time.Time
	ttl        time.Duration
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{ttl: ttl}
}

func (c *snapshotCache) get() (*snapshot, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.current == nil || time.Now().After(c.expiration) {
		return nil, false
	}
	return c.current, true
}

func (c *snapshotCache) set(s *snapshot) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.current = s
	c.expiration = time.Now().Add(c.ttl)
}

func (c *snapshotCache) clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.current = nil
	c.expiration = time.Time{}
}
