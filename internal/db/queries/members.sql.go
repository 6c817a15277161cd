package queries

import (
	"context"
)

const upsertMember = `-- name: UpsertMember :exec
INSERT INTO members (site_tag, username, password_hash, password_source)
VALUES (?, ?, ?, ?)
ON CONFLICT (site_tag, username) DO UPDATE SET
    password_hash = excluded.password_hash,
    password_source = excluded.password_source,
    updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
`

type UpsertMemberParams struct {
	SiteTag        string
	Username       string
	PasswordHash   string
	PasswordSource string
}

func (q *Queries) UpsertMember(ctx context.Context, arg UpsertMemberParams) error {
	_, err := q.db.ExecContext(ctx, upsertMember,
		arg.SiteTag,
		arg.Username,
		arg.PasswordHash,
		arg.PasswordSource,
	)
	return err
}

const getMember = `-- name: GetMember :one
SELECT site_tag, username, password_hash, password_source, created_at, updated_at
FROM members
WHERE site_tag = ? AND username = ?
`

type GetMemberParams struct {
	SiteTag  string
	Username string
}

func (q *Queries) GetMember(ctx context.Context, arg GetMemberParams) (Member, error) {
	row := q.db.QueryRowContext(ctx, getMember, arg.SiteTag, arg.Username)
	var i Member
	err := row.Scan(
		&i.SiteTag,
		&i.Username,
		&i.PasswordHash,
		&i.PasswordSource,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listMembersBySite = `-- name: ListMembersBySite :many
SELECT site_tag, username, password_hash, password_source, created_at, updated_at
FROM members
WHERE site_tag = ?
ORDER BY username
`

func (q *Queries) ListMembersBySite(ctx context.Context, siteTag string) ([]Member, error) {
	rows, err := q.db.QueryContext(ctx, listMembersBySite, siteTag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Member
	for rows.Next() {
		var i Member
		if err := rows.Scan(
			&i.SiteTag,
			&i.Username,
			&i.PasswordHash,
			&i.PasswordSource,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
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

const deleteMember = `-- name: DeleteMember :execrows
DELETE FROM members
WHERE site_tag = ? AND username = ?
`

type DeleteMemberParams struct {
	SiteTag  string
	Username string
}

func (q *Queries) DeleteMember(ctx context.Context, arg DeleteMemberParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMember, arg.SiteTag, arg.Username)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteMembersBySite = `-- name: DeleteMembersBySite :exec
DELETE FROM members
WHERE site_tag = ?
`

func (q *Queries) DeleteMembersBySite(ctx context.Context, siteTag string) error {
	_, err := q.db.ExecContext(ctx, deleteMembersBySite, siteTag)
	return err
}
