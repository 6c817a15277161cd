package queries

import (
	"context"
	"database/sql"
)

const createSite = `-- name: CreateSite :one
INSERT INTO sites (entity_id, account_id, site_tag, access_keyword, retrieval_keyword, integrity_key)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, entity_id, account_id, site_tag, access_keyword, retrieval_keyword, integrity_key, created_at, updated_at
`

type CreateSiteParams struct {
	EntityID         sql.NullString
	AccountID        string
	SiteTag          string
	AccessKeyword    string
	RetrievalKeyword string
	IntegrityKey     string
}

func (q *Queries) CreateSite(ctx context.Context, arg CreateSiteParams) (Site, error) {
	row := q.db.QueryRowContext(ctx, createSite,
		arg.EntityID,
		arg.AccountID,
		arg.SiteTag,
		arg.AccessKeyword,
		arg.RetrievalKeyword,
		arg.IntegrityKey,
	)
	return scanSite(row)
}

const getSiteByTag = `-- name: GetSiteByTag :one
SELECT id, entity_id, account_id, site_tag, access_keyword, retrieval_keyword, integrity_key, created_at, updated_at
FROM sites
WHERE site_tag = ?
`

func (q *Queries) GetSiteByTag(ctx context.Context, siteTag string) (Site, error) {
	return scanSite(q.db.QueryRowContext(ctx, getSiteByTag, siteTag))
}

const getSiteByEntityID = `-- name: GetSiteByEntityID :one
SELECT id, entity_id, account_id, site_tag, access_keyword, retrieval_keyword, integrity_key, created_at, updated_at
FROM sites
WHERE entity_id = ?
`

func (q *Queries) GetSiteByEntityID(ctx context.Context, entityID sql.NullString) (Site, error) {
	return scanSite(q.db.QueryRowContext(ctx, getSiteByEntityID, entityID))
}

const getSiteByRemoteMemberID = `-- name: GetSiteByRemoteMemberID :one
SELECT s.id, s.entity_id, s.account_id, s.site_tag, s.access_keyword, s.retrieval_keyword, s.integrity_key, s.created_at, s.updated_at
FROM remote_members rm
JOIN sites s ON s.site_tag = rm.site_tag
WHERE rm.remote_id = ?
ORDER BY CASE rm.status WHEN 'active' THEN 0 ELSE 1 END, rm.synced_at DESC, s.id
LIMIT 1
`

func (q *Queries) GetSiteByRemoteMemberID(ctx context.Context, remoteID string) (Site, error) {
	return scanSite(q.db.QueryRowContext(ctx, getSiteByRemoteMemberID, remoteID))
}

const listSites = `-- name: ListSites :many
SELECT id, entity_id, account_id, site_tag, access_keyword, retrieval_keyword, integrity_key, created_at, updated_at
FROM sites
ORDER BY site_tag
`

func (q *Queries) ListSites(ctx context.Context) ([]Site, error) {
	rows, err := q.db.QueryContext(ctx, listSites)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Site
	for rows.Next() {
		i, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateSiteKeys = `-- name: UpdateSiteKeys :execrows
UPDATE sites
SET access_keyword = ?, retrieval_keyword = ?, integrity_key = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
WHERE site_tag = ?
`

type UpdateSiteKeysParams struct {
	AccessKeyword    string
	RetrievalKeyword string
	IntegrityKey     string
	SiteTag          string
}

func (q *Queries) UpdateSiteKeys(ctx context.Context, arg UpdateSiteKeysParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateSiteKeys,
		arg.AccessKeyword,
		arg.RetrievalKeyword,
		arg.IntegrityKey,
		arg.SiteTag,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteSite = `-- name: DeleteSite :execrows
DELETE FROM sites
WHERE site_tag = ?
`

func (q *Queries) DeleteSite(ctx context.Context, siteTag string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteSite, siteTag)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSite(row rowScanner) (Site, error) {
	var i Site
	err := row.Scan(
		&i.ID,
		&i.EntityID,
		&i.AccountID,
		&i.SiteTag,
		&i.AccessKeyword,
		&i.RetrievalKeyword,
		&i.IntegrityKey,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
