package queries

import (
	"database/sql"
)

type Member struct {
	SiteTag        string
	Username       string
	PasswordHash   string
	PasswordSource string
	CreatedAt      string
	UpdatedAt      string
}

type RemoteMember struct {
	RemoteID string
	SiteTag  string
	Username string
	Status   string
	SyncedAt string
}

type Site struct {
	ID               int64
	EntityID         sql.NullString
	AccountID        string
	SiteTag          string
	AccessKeyword    string
	RetrievalKeyword string
	IntegrityKey     string
	CreatedAt        string
	UpdatedAt        string
}
