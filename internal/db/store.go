package db

import (
	"context"
	"database/sql"

	"github.com/fr0stylo/nbgate/internal/db/queries"
)

// WithTx runs fn within a transaction. Queries issued through the supplied
// handle are traced and timed like any other.
func (c *Database) WithTx(ctx context.Context, fn func(*queries.Queries) error) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(queries.New(newInstrumentedDBTX(tx, c.tracker))); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return rollbackErr
		}
		return err
	}
	return tx.Commit()
}

// ReplaceSiteMembers swaps the whole member set of a site atomically.
func (c *Database) ReplaceSiteMembers(ctx context.Context, siteTag string, members []queries.UpsertMemberParams) error {
	return c.WithTx(ctx, func(q *queries.Queries) error {
		if err := q.DeleteMembersBySite(ctx, siteTag); err != nil {
			return err
		}
		for _, member := range members {
			member.SiteTag = siteTag
			if err := q.UpsertMember(ctx, member); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertSiteMembers adds or replaces the given members in one transaction.
func (c *Database) UpsertSiteMembers(ctx context.Context, siteTag string, members []queries.UpsertMemberParams) error {
	return c.WithTx(ctx, func(q *queries.Queries) error {
		for _, member := range members {
			member.SiteTag = siteTag
			if err := q.UpsertMember(ctx, member); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteSiteMembers removes the named members and returns how many existed.
func (c *Database) DeleteSiteMembers(ctx context.Context, siteTag string, usernames []string) (int64, error) {
	var deleted int64
	err := c.WithTx(ctx, func(q *queries.Queries) error {
		for _, username := range usernames {
			n, err := q.DeleteMember(ctx, queries.DeleteMemberParams{SiteTag: siteTag, Username: username})
			if err != nil {
				return err
			}
			deleted += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// UpsertRemoteMembers records a batch of report rows in one transaction.
func (c *Database) UpsertRemoteMembers(ctx context.Context, rows []queries.UpsertRemoteMemberParams) error {
	return c.WithTx(ctx, func(q *queries.Queries) error {
		for _, row := range rows {
			if err := q.UpsertRemoteMember(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
}
