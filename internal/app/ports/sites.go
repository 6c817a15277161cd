package ports

import (
	"context"
	"errors"

	"github.com/fr0stylo/nbgate/internal/netbilling"
)

var (
	// ErrDuplicateSiteTag is returned when a site tag is already taken.
	ErrDuplicateSiteTag = errors.New("site tag already in use")
	// ErrSiteNotFound is returned by admin operations on an unknown site.
	ErrSiteNotFound = errors.New("site not found")
)

// Site is a stored site configuration plus the entity that owns it.
type Site struct {
	EntityID string
	netbilling.SiteConfig
}

// SiteConfigStore resolves site configuration by each of its lookup keys.
// A missing site is (zero, false, nil); errors are reserved for storage failures.
type SiteConfigStore interface {
	ByTag(ctx context.Context, siteTag string) (netbilling.SiteConfig, bool, error)
	ByEntity(ctx context.Context, entityID string) (netbilling.SiteConfig, bool, error)
	ByRemoteID(ctx context.Context, remoteID string) (netbilling.SiteConfig, bool, error)
}

// SiteAdminStore manages stored sites.
type SiteAdminStore interface {
	CreateSite(ctx context.Context, site Site) error
	ListSites(ctx context.Context) ([]Site, error)
	DeleteSite(ctx context.Context, siteTag string) error
}
