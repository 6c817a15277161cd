package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fr0stylo/nbgate/internal/app/ports"
	"github.com/fr0stylo/nbgate/internal/netbilling"
	"github.com/fr0stylo/nbgate/internal/observability"
)

const msgStoreUnavailable = "membership store unavailable"

// PasswordHasher hashes a plaintext password for storage.
type PasswordHasher func(password string) (string, error)

// BcryptHasher hashes with bcrypt at the default cost.
func BcryptHasher(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// MembershipService applies control interface commands to the member store
// and hands each applied change off as a queue item.
type MembershipService struct {
	members ports.MemberStore
	events  ports.EventPublisher
	hash    PasswordHasher
	log     *slog.Logger
}

// NewMembershipService constructs the membership backend. events may be nil.
func NewMembershipService(members ports.MemberStore, events ports.EventPublisher, log *slog.Logger) *MembershipService {
	if log == nil {
		log = slog.Default()
	}
	return &MembershipService{members: members, events: events, hash: BcryptHasher, log: log}
}

// WithHasher replaces the password hasher.
func (s *MembershipService) WithHasher(hash PasswordHasher) *MembershipService {
	if hash != nil {
		s.hash = hash
	}
	return s
}

var _ netbilling.MemberCommandHandler = (*MembershipService)(nil)

// HandleMemberCommand implements netbilling.MemberCommandHandler. Store
// failures are reported as unfulfilled results, never as partial success.
func (s *MembershipService) HandleMemberCommand(ctx context.Context, cmd netbilling.MemberCommand) (netbilling.MemberCommandResult, error) {
	ctx = observability.WithSiteTag(ctx, cmd.Site.SiteTag)
	ctx, span := observability.StartMemberCommandSpan(ctx, string(cmd.Verb), len(cmd.Usernames))
	defer span.End()

	usernames := uniqueUsernames(cmd.Usernames)
	var (
		result netbilling.MemberCommandResult
		err    error
	)
	switch cmd.Verb {
	case netbilling.VerbAppend:
		result, err = s.write(ctx, cmd, usernames, s.members.UpsertMembers, "added")
	case netbilling.VerbUpdate:
		result, err = s.write(ctx, cmd, usernames, s.members.ReplaceMembers, "updated")
	case netbilling.VerbDelete:
		result, err = s.delete(ctx, cmd, usernames)
	case netbilling.VerbCheck:
		result, err = s.check(ctx, cmd, usernames)
	default:
		return netbilling.MemberCommandResult{Message: fmt.Sprintf("unsupported command %q", cmd.Verb)}, nil
	}
	if err != nil {
		span.RecordError(err)
		s.log.ErrorContext(ctx, "Membership store failed", "verb", string(cmd.Verb), "error", err)
		return netbilling.MemberCommandResult{Message: msgStoreUnavailable}, nil
	}
	return result, nil
}

type writeFunc func(ctx context.Context, siteTag string, members []ports.MemberCredential) error

func (s *MembershipService) write(ctx context.Context, cmd netbilling.MemberCommand, usernames []string, store writeFunc, action string) (netbilling.MemberCommandResult, error) {
	creds := make([]ports.MemberCredential, 0, len(usernames))
	for _, username := range usernames {
		password := cmd.Users[username]
		if cmd.HashRequested {
			hashed, err := s.hash(password)
			if err != nil {
				return netbilling.MemberCommandResult{}, fmt.Errorf("hash password: %w", err)
			}
			password = hashed
		}
		creds = append(creds, ports.MemberCredential{Username: username, PasswordHash: password, Source: cmd.PasswordSource})
	}
	if err := store(ctx, cmd.Site.SiteTag, creds); err != nil {
		return netbilling.MemberCommandResult{}, err
	}
	s.handOff(ctx, cmd, usernames)
	return fulfilled(fmt.Sprintf("OK: %d user(s) %s", len(creds), action)), nil
}

func (s *MembershipService) delete(ctx context.Context, cmd netbilling.MemberCommand, usernames []string) (netbilling.MemberCommandResult, error) {
	deleted, err := s.members.DeleteMembers(ctx, cmd.Site.SiteTag, usernames)
	if err != nil {
		return netbilling.MemberCommandResult{}, err
	}
	s.handOff(ctx, cmd, usernames)
	return fulfilled(fmt.Sprintf("OK: %d user(s) deleted", deleted)), nil
}

func (s *MembershipService) check(ctx context.Context, cmd netbilling.MemberCommand, usernames []string) (netbilling.MemberCommandResult, error) {
	existing, err := s.members.ExistingMembers(ctx, cmd.Site.SiteTag, usernames)
	if err != nil {
		return netbilling.MemberCommandResult{}, err
	}
	var b strings.Builder
	for _, username := range usernames {
		flag := "0"
		if existing[username] {
			flag = "1"
		}
		fmt.Fprintf(&b, "%s: %s\n", username, flag)
	}
	return fulfilled(b.String()), nil
}

// handOff publishes the queue item of an applied change. The change is
// already committed, so a publish failure is only logged.
func (s *MembershipService) handOff(ctx context.Context, cmd netbilling.MemberCommand, usernames []string) {
	if s.events == nil {
		return
	}
	item := ports.QueueItem{
		SiteTag:   cmd.Site.SiteTag,
		AccountID: cmd.Site.AccountID,
		Usernames: usernames,
		Hash:      cmd.HashRequested,
		Method:    string(cmd.Verb),
	}
	if err := s.events.PublishQueueItem(ctx, item); err != nil {
		s.log.WarnContext(ctx, "Failed to hand off membership change", "verb", item.Method, "users", len(usernames), "error", err)
	}
}

func fulfilled(message string) netbilling.MemberCommandResult {
	return netbilling.MemberCommandResult{Fulfilled: true, Message: message}
}

func uniqueUsernames(usernames []string) []string {
	seen := make(map[string]struct{}, len(usernames))
	out := make([]string, 0, len(usernames))
	for _, username := range usernames {
		if _, ok := seen[username]; ok {
			continue
		}
		seen[username] = struct{}{}
		out = append(out, username)
	}
	return out
}
