package netbilling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// EmulationVersion is the nbmember.cgi version reported by the test command.
const EmulationVersion = "2.3"

const (
	contentTypeText   = "text/plain; charset=utf-8"
	testLabelWidth    = 30
	msgInvalidCommand = "Invalid command."
	msgInvalidRequest = "ERROR: Invalid request."
	msgCountMismatch  = "ERROR: Username/password count mismatch"
	msgNotHandled     = "ERROR: Action not handled. "
)

// SiteResolver looks a site up by tag.
type SiteResolver interface {
	ByTag(ctx context.Context, siteTag string) (SiteConfig, bool, error)
}

// Request is one call to the emulated control interface.
type Request struct {
	Method  string
	Command string
	Body    string
	SiteTag string
	Keyword string
}

// Response is the plain-text HTTP answer to a Request.
type Response struct {
	Status      int
	ContentType string
	Body        string
}

type protocolState int

const (
	stateAwaitingCommand protocolState = iota
	stateCommandValidated
	stateDispatched
	stateResponded
)

func (s protocolState) String() string {
	switch s {
	case stateAwaitingCommand:
		return "awaiting_command"
	case stateCommandValidated:
		return "command_validated"
	case stateDispatched:
		return "dispatched"
	default:
		return "responded"
	}
}

// Protocol emulates the nbmember.cgi control interface.
type Protocol struct {
	sites   SiteResolver
	handler MemberCommandHandler
	log     *slog.Logger
	now     func() time.Time
}

// ProtocolOption customises a Protocol.
type ProtocolOption func(*Protocol)

// WithClock overrides the clock used by the test command.
func WithClock(now func() time.Time) ProtocolOption {
	return func(p *Protocol) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the protocol logger.
func WithLogger(log *slog.Logger) ProtocolOption {
	return func(p *Protocol) {
		if log != nil {
			p.log = log
		}
	}
}

// NewProtocol wires the control interface to its site lookup and membership backend.
func NewProtocol(sites SiteResolver, handler MemberCommandHandler, opts ...ProtocolOption) *Protocol {
	p := &Protocol{
		sites:   sites,
		handler: handler,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle runs one request to completion. It never returns a partial dispatch:
// every failure before the handler call is answered without invoking it.
func (p *Protocol) Handle(ctx context.Context, req Request) Response {
	state := stateAwaitingCommand
	log := p.log.With("cmd", req.Command, "site_tag", req.SiteTag, "method", req.Method)

	verb, err := ParseCommand(req.Method, req.Command)
	if err != nil {
		log.InfoContext(ctx, "Rejected control command", "state", state.String(), "error", err)
		return textResponse(http.StatusBadRequest, msgInvalidCommand)
	}

	site, err := p.authorize(ctx, req.SiteTag, req.Keyword)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			log.WarnContext(ctx, "Rejected control request", "state", state.String(), "error", err)
			return textResponse(http.StatusForbidden, msgInvalidRequest)
		}
		log.ErrorContext(ctx, "Site resolution failed", "state", state.String(), "error", err)
		return textResponse(http.StatusInternalServerError, msgInvalidRequest)
	}
	state = stateCommandValidated

	if verb == VerbTest {
		state = stateResponded
		log.DebugContext(ctx, "Control interface test", "state", state.String())
		return textResponse(http.StatusOK, p.testOutput())
	}

	cmd, err := BuildMemberCommand(verb, site, Decode(req.Body))
	if err != nil {
		log.InfoContext(ctx, "Rejected member command", "state", state.String(), "error", err)
		return textResponse(http.StatusBadRequest, msgCountMismatch)
	}

	state = stateDispatched
	result, err := p.handler.HandleMemberCommand(ctx, cmd)
	state = stateResponded
	if err != nil {
		log.ErrorContext(ctx, "Member command failed", "state", state.String(), "verb", string(verb), "error", err)
		return textResponse(http.StatusInternalServerError, msgNotHandled)
	}
	if !result.Fulfilled {
		log.WarnContext(ctx, "Member command not fulfilled", "state", state.String(), "verb", string(verb), "message", result.Message)
		return textResponse(http.StatusInternalServerError, msgNotHandled+result.Message)
	}
	log.InfoContext(ctx, "Member command fulfilled", "state", state.String(), "verb", string(verb), "users", len(cmd.Usernames))
	return textResponse(http.StatusOK, result.Message)
}

func (p *Protocol) authorize(ctx context.Context, siteTag, keyword string) (SiteConfig, error) {
	if strings.TrimSpace(siteTag) == "" {
		return SiteConfig{}, fmt.Errorf("%w: empty site tag", ErrForbidden)
	}
	site, ok, err := p.sites.ByTag(ctx, siteTag)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("resolve site %q: %w", siteTag, err)
	}
	if !ok {
		return SiteConfig{}, fmt.Errorf("%w: unknown site", ErrForbidden)
	}
	if site.AccessKeyword == "" || site.AccessKeyword != keyword {
		return SiteConfig{}, fmt.Errorf("%w: keyword mismatch", ErrForbidden)
	}
	return site, nil
}

func (p *Protocol) testOutput() string {
	lines := []string{
		"  OK: Control interface is live",
		"",
		fmt.Sprintf("%-*s: %s", testLabelWidth, "  Version", EmulationVersion),
		fmt.Sprintf("%-*s: %s", testLabelWidth, "  Local date and time", p.now().Format(time.RFC1123Z)),
	}
	return strings.Join(lines, "\n") + "\n"
}

func textResponse(status int, body string) Response {
	return Response{Status: status, ContentType: contentTypeText, Body: body}
}
