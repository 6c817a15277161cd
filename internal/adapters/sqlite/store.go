package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/fr0stylo/nbgate/internal/app/ports"
	"github.com/fr0stylo/nbgate/internal/db/queries"
	"github.com/fr0stylo/nbgate/internal/netbilling"
)

// Store implements the site and member ports on top of the sqlite database.
type Store struct {
	db storeDatabase
}

// NewStore wraps an open database.
func NewStore(database storeDatabase) *Store {
	return &Store{db: database}
}

var (
	_ ports.SiteConfigStore   = (*Store)(nil)
	_ ports.SiteAdminStore    = (*Store)(nil)
	_ ports.MemberStore       = (*Store)(nil)
	_ ports.RemoteMemberStore = (*Store)(nil)
)

// ByTag resolves a site by its tag.
func (s *Store) ByTag(ctx context.Context, siteTag string) (netbilling.SiteConfig, bool, error) {
	return lookupSite(s.db.GetSiteByTag(ctx, siteTag))
}

// ByEntity resolves a site by the entity that owns it.
func (s *Store) ByEntity(ctx context.Context, entityID string) (netbilling.SiteConfig, bool, error) {
	if strings.TrimSpace(entityID) == "" {
		return netbilling.SiteConfig{}, false, nil
	}
	return lookupSite(s.db.GetSiteByEntityID(ctx, sql.NullString{String: entityID, Valid: true}))
}

// ByRemoteID resolves a site from a NETbilling member id seen in reports.
func (s *Store) ByRemoteID(ctx context.Context, remoteID string) (netbilling.SiteConfig, bool, error) {
	return lookupSite(s.db.GetSiteByRemoteMemberID(ctx, remoteID))
}

// CreateSite validates and stores a new site.
func (s *Store) CreateSite(ctx context.Context, site ports.Site) error {
	if err := site.Validate(); err != nil {
		return err
	}
	if _, found, err := s.ByTag(ctx, site.SiteTag); err != nil {
		return err
	} else if found {
		return fmt.Errorf("%w: %s", ports.ErrDuplicateSiteTag, site.SiteTag)
	}

	entityID := sql.NullString{}
	if strings.TrimSpace(site.EntityID) != "" {
		entityID = sql.NullString{String: strings.TrimSpace(site.EntityID), Valid: true}
	}
	_, err := s.db.CreateSite(ctx, queries.CreateSiteParams{
		EntityID:         entityID,
		AccountID:        site.AccountID,
		SiteTag:          site.SiteTag,
		AccessKeyword:    site.AccessKeyword,
		RetrievalKeyword: site.RetrievalKeyword,
		IntegrityKey:     site.IntegrityKey,
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ports.ErrDuplicateSiteTag, site.SiteTag)
	}
	return err
}

// ListSites returns every stored site ordered by tag.
func (s *Store) ListSites(ctx context.Context) ([]ports.Site, error) {
	rows, err := s.db.ListSites(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ports.Site, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.Site{EntityID: row.EntityID.String, SiteConfig: toSiteConfig(row)})
	}
	return out, nil
}

// DeleteSite removes a site and, by cascade, its members.
func (s *Store) DeleteSite(ctx context.Context, siteTag string) error {
	n, err := s.db.DeleteSite(ctx, siteTag)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ports.ErrSiteNotFound, siteTag)
	}
	return nil
}

// UpsertMembers adds or replaces the given logins.
func (s *Store) UpsertMembers(ctx context.Context, siteTag string, members []ports.MemberCredential) error {
	return s.db.UpsertSiteMembers(ctx, siteTag, toMemberParams(members))
}

// ReplaceMembers swaps the site's whole member set.
func (s *Store) ReplaceMembers(ctx context.Context, siteTag string, members []ports.MemberCredential) error {
	return s.db.ReplaceSiteMembers(ctx, siteTag, toMemberParams(members))
}

// DeleteMembers removes the named logins and returns how many existed.
func (s *Store) DeleteMembers(ctx context.Context, siteTag string, usernames []string) (int, error) {
	n, err := s.db.DeleteSiteMembers(ctx, siteTag, usernames)
	return int(n), err
}

// ExistingMembers reports, per username, whether a login is stored.
func (s *Store) ExistingMembers(ctx context.Context, siteTag string, usernames []string) (map[string]bool, error) {
	out := make(map[string]bool, len(usernames))
	for _, username := range usernames {
		_, err := s.db.GetMember(ctx, queries.GetMemberParams{SiteTag: siteTag, Username: username})
		switch {
		case err == nil:
			out[username] = true
		case errors.Is(err, sql.ErrNoRows):
			out[username] = false
		default:
			return nil, err
		}
	}
	return out, nil
}

// RecordRemoteMembers stores member report rows for remote id resolution.
func (s *Store) RecordRemoteMembers(ctx context.Context, members []ports.RemoteMember) error {
	if len(members) == 0 {
		return nil
	}
	rows := make([]queries.UpsertRemoteMemberParams, 0, len(members))
	for _, m := range members {
		syncedAt := m.SyncedAt
		if syncedAt.IsZero() {
			syncedAt = time.Now()
		}
		rows = append(rows, queries.UpsertRemoteMemberParams{
			RemoteID: m.RemoteID,
			SiteTag:  m.SiteTag,
			Username: m.Username,
			Status:   m.Status,
			SyncedAt: syncedAt.UTC().Format(time.RFC3339),
		})
	}
	return s.db.UpsertRemoteMembers(ctx, rows)
}

func lookupSite(row queries.Site, err error) (netbilling.SiteConfig, bool, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return netbilling.SiteConfig{}, false, nil
	}
	if err != nil {
		return netbilling.SiteConfig{}, false, err
	}
	return toSiteConfig(row), true, nil
}

func toSiteConfig(row queries.Site) netbilling.SiteConfig {
	return netbilling.SiteConfig{
		AccountID:        row.AccountID,
		SiteTag:          row.SiteTag,
		AccessKeyword:    row.AccessKeyword,
		RetrievalKeyword: row.RetrievalKeyword,
		IntegrityKey:     row.IntegrityKey,
	}
}

func toMemberParams(members []ports.MemberCredential) []queries.UpsertMemberParams {
	out := make([]queries.UpsertMemberParams, 0, len(members))
	for _, m := range members {
		out = append(out, queries.UpsertMemberParams{
			Username:       m.Username,
			PasswordHash:   m.PasswordHash,
			PasswordSource: m.Source,
		})
	}
	return out
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
