// Package sitecache keeps resolved site configuration in memory so the
// control interface does not hit storage on every request.
package sitecache

import (
	"context"
	"sync"
	"time"

	"github.com/fr0stylo/nbgate/internal/app/ports"
	"github.com/fr0stylo/nbgate/internal/metrics"
	"github.com/fr0stylo/nbgate/internal/netbilling"
)

// DefaultTTL bounds how long a resolved site is served from memory.
const DefaultTTL = 5 * time.Minute

const (
	dimensionSite   = "site"
	dimensionEntity = "entity"
	dimensionRemote = "remote"
)

type entry struct {
	site    netbilling.SiteConfig
	expires time.Time
}

// Cache is a read-through SiteConfigStore. Only found sites are cached.
type Cache struct {
	next ports.SiteConfigStore
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// New wraps next with a TTL cache. A non-positive ttl uses DefaultTTL.
func New(next ports.SiteConfigStore, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

var _ ports.SiteConfigStore = (*Cache)(nil)

// Key returns the cache key of a lookup, e.g. netbilling.site.<tag>.
func Key(dimension, id string) string {
	return "netbilling." + dimension + "." + id
}

func (c *Cache) ByTag(ctx context.Context, siteTag string) (netbilling.SiteConfig, bool, error) {
	return c.resolve(ctx, dimensionSite, siteTag, c.next.ByTag)
}

func (c *Cache) ByEntity(ctx context.Context, entityID string) (netbilling.SiteConfig, bool, error) {
	return c.resolve(ctx, dimensionEntity, entityID, c.next.ByEntity)
}

func (c *Cache) ByRemoteID(ctx context.Context, remoteID string) (netbilling.SiteConfig, bool, error) {
	return c.resolve(ctx, dimensionRemote, remoteID, c.next.ByRemoteID)
}

// Invalidate drops every cached entry for the site tag.
func (c *Cache) Invalidate(siteTag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if e.site.SiteTag == siteTag {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

type lookupFunc func(ctx context.Context, id string) (netbilling.SiteConfig, bool, error)

func (c *Cache) resolve(ctx context.Context, dimension, id string, lookup lookupFunc) (netbilling.SiteConfig, bool, error) {
	key := Key(dimension, id)
	now := c.now()

	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && now.After(e.expires) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	metrics.ObserveSiteCache(dimension, ok)
	if ok {
		return e.site, true, nil
	}

	site, found, err := lookup(ctx, id)
	if err != nil || !found {
		return site, found, err
	}

	c.mu.Lock()
	c.entries[key] = entry{site: site, expires: now.Add(c.ttl)}
	c.mu.Unlock()
	return site, true, nil
}
