package sqlite

import (
	"context"
	"database/sql"

	"github.com/fr0stylo/nbgate/internal/db/queries"
)

type storeDatabase interface {
	CreateSite(ctx context.Context, params queries.CreateSiteParams) (queries.Site, error)
	GetSiteByTag(ctx context.Context, siteTag string) (queries.Site, error)
	GetSiteByEntityID(ctx context.Context, entityID sql.NullString) (queries.Site, error)
	GetSiteByRemoteMemberID(ctx context.Context, remoteID string) (queries.Site, error)
	ListSites(ctx context.Context) ([]queries.Site, error)
	DeleteSite(ctx context.Context, siteTag string) (int64, error)

	GetMember(ctx context.Context, params queries.GetMemberParams) (queries.Member, error)
	UpsertSiteMembers(ctx context.Context, siteTag string, members []queries.UpsertMemberParams) error
	ReplaceSiteMembers(ctx context.Context, siteTag string, members []queries.UpsertMemberParams) error
	DeleteSiteMembers(ctx context.Context, siteTag string, usernames []string) (int64, error)

	UpsertRemoteMembers(ctx context.Context, rows []queries.UpsertRemoteMemberParams) error
}
