package queries

import (
	"context"
)

const upsertRemoteMember = `-- name: UpsertRemoteMember :exec
INSERT INTO remote_members (remote_id, site_tag, username, status, synced_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (remote_id, site_tag) DO UPDATE SET
    username = excluded.username,
    status = excluded.status,
    synced_at = excluded.synced_at
`

type UpsertRemoteMemberParams struct {
	RemoteID string
	SiteTag  string
	Username string
	Status   string
	SyncedAt string
}

func (q *Queries) UpsertRemoteMember(ctx context.Context, arg UpsertRemoteMemberParams) error {
	_, err := q.db.ExecContext(ctx, upsertRemoteMember,
		arg.RemoteID,
		arg.SiteTag,
		arg.Username,
		arg.Status,
		arg.SyncedAt,
	)
	return err
}

const listRemoteMembersBySite = `-- name: ListRemoteMembersBySite :many
SELECT remote_id, site_tag, username, status, synced_at
FROM remote_members
WHERE site_tag = ?
ORDER BY remote_id
`

func (q *Queries) ListRemoteMembersBySite(ctx context.Context, siteTag string) ([]RemoteMember, error) {
	rows, err := q.db.QueryContext(ctx, listRemoteMembersBySite, siteTag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RemoteMember
	for rows.Next() {
		var i RemoteMember
		if err := rows.Scan(
			&i.RemoteID,
			&i.SiteTag,
			&i.Username,
			&i.Status,
			&i.SyncedAt,
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
