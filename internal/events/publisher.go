// Package events hands membership and payment events to a CloudEvents sink.
package events

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	ceevent "github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fr0stylo/nbgate/internal/app/ports"
	"github.com/fr0stylo/nbgate/internal/metrics"
)

const (
	TypeMembershipQueued = "com.nbgate.membership.queued.v1"
	TypePaymentVerified  = "com.nbgate.payment.verified.v1"

	DefaultSource  = "nbgate"
	defaultTimeout = 10 * time.Second

	SignatureHeader = "X-Webhook-Signature"
	contentTypeCE   = "application/cloudevents+json"
)

// Config points the publisher at its sink. An empty Sink disables publishing.
type Config struct {
	Sink    string
	Source  string
	Secret  string
	Timeout time.Duration
}

// Publisher posts structured-mode CloudEvents to the sink. Bodies are signed
// with HMAC-SHA256 when a secret is configured.
type Publisher struct {
	sink   string
	source string
	secret string
	http   *http.Client
	log    *slog.Logger
	now    func() time.Time
}

// NewPublisher builds a publisher.
func NewPublisher(cfg Config, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	source := strings.TrimSpace(cfg.Source)
	if source == "" {
		source = DefaultSource
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Publisher{
		sink:   strings.TrimSpace(cfg.Sink),
		source: source,
		secret: strings.TrimSpace(cfg.Secret),
		http:   &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)},
		log:    log,
		now:    time.Now,
	}
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Enabled reports whether a sink is configured.
func (p *Publisher) Enabled() bool {
	return p.sink != ""
}

type queueItemData struct {
	SiteTag   string   `json:"site_tag"`
	AccountID string   `json:"account_id"`
	Users     []string `json:"users"`
	Hash      bool     `json:"hash"`
	Method    string   `json:"method"`
}

type paymentVerifiedData struct {
	SiteTag       string `json:"site_tag"`
	AccountID     string `json:"account_id"`
	TransactionID string `json:"transaction_id"`
	StatusCode    string `json:"status_code"`
	Amount        string `json:"amount,omitempty"`
}

// PublishQueueItem emits a membership change hand-off.
func (p *Publisher) PublishQueueItem(ctx context.Context, item ports.QueueItem) error {
	users := item.Usernames
	if users == nil {
		users = []string{}
	}
	return p.publish(ctx, TypeMembershipQueued, item.SiteTag, time.Time{}, queueItemData{
		SiteTag:   item.SiteTag,
		AccountID: item.AccountID,
		Users:     users,
		Hash:      item.Hash,
		Method:    item.Method,
	})
}

// PublishPaymentVerified emits a verified hosted payment return.
func (p *Publisher) PublishPaymentVerified(ctx context.Context, event ports.PaymentVerified) error {
	return p.publish(ctx, TypePaymentVerified, event.TransactionID, event.VerifiedAt, paymentVerifiedData{
		SiteTag:       event.SiteTag,
		AccountID:     event.AccountID,
		TransactionID: event.TransactionID,
		StatusCode:    event.StatusCode,
		Amount:        event.Amount,
	})
}

// Build assembles and validates a CloudEvent without sending it.
func (p *Publisher) Build(eventType, subject string, at time.Time, data any) (ceevent.Event, error) {
	if at.IsZero() {
		at = p.now()
	}
	e := ceevent.New()
	e.SetID(uuid.NewString())
	e.SetSource(p.source)
	e.SetType(eventType)
	e.SetTime(at.UTC())
	if subject != "" {
		e.SetSubject(subject)
	}
	if err := e.SetData(ceevent.ApplicationJSON, data); err != nil {
		return ceevent.Event{}, fmt.Errorf("encode event data: %w", err)
	}
	if err := e.Validate(); err != nil {
		return ceevent.Event{}, fmt.Errorf("invalid event: %w", err)
	}
	return e, nil
}

func (p *Publisher) publish(ctx context.Context, eventType, subject string, at time.Time, data any) error {
	if !p.Enabled() {
		p.log.DebugContext(ctx, "No event sink configured, dropping event", "type", eventType)
		return nil
	}
	e, err := p.Build(eventType, subject, at, data)
	if err != nil {
		metrics.ObserveEvent(eventType, err)
		return err
	}
	body, err := json.Marshal(e)
	if err != nil {
		metrics.ObserveEvent(eventType, err)
		return fmt.Errorf("marshal event: %w", err)
	}
	err = p.post(ctx, body)
	metrics.ObserveEvent(eventType, err)
	if err != nil {
		return err
	}
	p.log.DebugContext(ctx, "Event published", "type", eventType, "id", e.ID())
	return nil
}

func (p *Publisher) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.sink, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeCE)
	if p.secret != "" {
		req.Header.Set(SignatureHeader, Sign(body, p.secret))
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("send event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("event sink rejected: status=%s body=%s", resp.Status, strings.TrimSpace(string(payload)))
	}
	return nil
}

// Sign returns the hex HMAC-SHA256 of body.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
