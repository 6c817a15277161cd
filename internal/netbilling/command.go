package netbilling

import (
	"context"
	"fmt"
	"strings"
)

// Verb is the dispatch branch of an nbmember.cgi command.
type Verb string

const (
	VerbAppend Verb = "append"
	VerbDelete Verb = "delete"
	VerbUpdate Verb = "update"
	VerbCheck  Verb = "check"
	VerbTest   Verb = "test"
)

// allowedCommands mirrors nbmember.cgi; list_all_users is deliberately absent.
var allowedCommands = map[string]map[string]struct{}{
	"POST": {
		"append_user":      {},
		"append_users":     {},
		"delete_user":      {},
		"delete_users":     {},
		"update_all_users": {},
		"check_user":       {},
		"check_users":      {},
	},
	"GET": {
		"test": {},
	},
}

// CommandBase returns the part of cmd before the first underscore.
func CommandBase(cmd string) string {
	base, _, _ := strings.Cut(cmd, "_")
	return base
}

// ParseCommand validates cmd for the HTTP method and returns its verb.
func ParseCommand(method, cmd string) (Verb, error) {
	allowed, ok := allowedCommands[strings.ToUpper(method)]
	if !ok {
		return "", fmt.Errorf("%w: method %s", ErrInvalidCommand, method)
	}
	if _, ok := allowed[cmd]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
	}
	return Verb(CommandBase(cmd)), nil
}

// RequiresPasswords reports whether the verb carries a password per user.
func (v Verb) RequiresPasswords() bool {
	return v == VerbAppend || v == VerbUpdate
}

// Password sources in order of preference.
const (
	PasswordUnixCrypt   = "p"
	PasswordApacheMD5   = "w"
	PasswordMD5Crypt    = "m"
	PasswordPlaintext   = "n"
	usernameParam       = "u"
	phpArraySuffix      = "[]"
	phpArraySuffixQuery = "%5B%5D"
)

var passwordSources = []string{PasswordUnixCrypt, PasswordApacheMD5, PasswordMD5Crypt, PasswordPlaintext}

// MemberCommand is one validated membership change or query for a site.
type MemberCommand struct {
	Verb Verb
	Site SiteConfig
	// Usernames lists the users in request order.
	Usernames []string
	// Users maps username to password for append and update.
	Users map[string]string
	// PasswordSource is the body parameter the passwords came from.
	PasswordSource string
	// HashRequested is set for plaintext passwords that must be hashed before storage.
	HashRequested bool
}

// MemberCommandResult is the outcome reported by the membership backend.
type MemberCommandResult struct {
	Fulfilled bool
	Message   string
}

// MemberCommandHandler applies member commands to the membership backend.
type MemberCommandHandler interface {
	HandleMemberCommand(ctx context.Context, cmd MemberCommand) (MemberCommandResult, error)
}

// MemberCommandHandlerFunc adapts a function to MemberCommandHandler.
type MemberCommandHandlerFunc func(ctx context.Context, cmd MemberCommand) (MemberCommandResult, error)

func (f MemberCommandHandlerFunc) HandleMemberCommand(ctx context.Context, cmd MemberCommand) (MemberCommandResult, error) {
	return f(ctx, cmd)
}

// BuildMemberCommand turns a decoded POST body into a command for verb.
func BuildMemberCommand(verb Verb, site SiteConfig, body *Values) (MemberCommand, error) {
	cmd := MemberCommand{Verb: verb, Site: site}

	usernames := []string{}
	if u, ok := param(body, usernameParam); ok {
		usernames = u.Strings()
	}
	cmd.Usernames = usernames

	var passwords []string
	for _, source := range passwordSources {
		if pws, ok := param(body, source); ok {
			passwords = pws.Strings()
			cmd.PasswordSource = source
			cmd.HashRequested = source == PasswordPlaintext
			break
		}
	}

	if !verb.RequiresPasswords() {
		return cmd, nil
	}
	if len(usernames) != len(passwords) {
		return MemberCommand{}, ErrParamMismatch
	}
	cmd.Users = make(map[string]string, len(usernames))
	for i, name := range usernames {
		cmd.Users[name] = passwords[i]
	}
	return cmd, nil
}

// param looks a field up by its plain name or its PHP array spelling.
func param(body *Values, name string) (Value, bool) {
	for _, key := range []string{name, name + phpArraySuffix, name + phpArraySuffixQuery} {
		if v, ok := body.Get(key); ok {
			return v, true
		}
	}
	return Value{}, false
}
