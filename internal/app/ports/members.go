package ports

import (
	"context"
	"time"
)

// MemberCredential is one stored login for a site.
type MemberCredential struct {
	Username     string
	PasswordHash string
	// Source is the password field the hash came from (p, w, m or n).
	Source string
}

// MemberStore persists per-site logins.
type MemberStore interface {
	UpsertMembers(ctx context.Context, siteTag string, members []MemberCredential) error
	ReplaceMembers(ctx context.Context, siteTag string, members []MemberCredential) error
	DeleteMembers(ctx context.Context, siteTag string, usernames []string) (int, error)
	ExistingMembers(ctx context.Context, siteTag string, usernames []string) (map[string]bool, error)
}

// RemoteMember is a member row learned from a NETbilling member report.
type RemoteMember struct {
	RemoteID string
	SiteTag  string
	Username string
	Status   string
	SyncedAt time.Time
}

// RemoteMemberStore records which sites a remote member id belongs to.
type RemoteMemberStore interface {
	RecordRemoteMembers(ctx context.Context, members []RemoteMember) error
}
