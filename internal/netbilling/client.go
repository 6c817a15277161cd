package netbilling

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fr0stylo/nbgate/internal/metrics"
)

const (
	// DefaultBaseURL is the NETbilling gateway host.
	DefaultBaseURL = "https://secure.netbilling.com"
	// DefaultUserAgent identifies this integration to NETbilling.
	DefaultUserAgent = "nbgate/Version:2016.Jun.23"
	// DefaultTimeout bounds every outbound call.
	DefaultTimeout = 30 * time.Second

	memberUpdatePath      = "/gw/native/mupdate1.1"
	memberReportPath      = "/gw/reports/member1.5"
	transactionReportPath = "/gw/reports/transaction1.5"
	formContentType       = "application/x-www-form-urlencoded"
)

// ClientConfig configures the outbound NETbilling client.
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client calls the NETbilling member update and reporting endpoints. It does
// not retry; callers own retry policy.
type Client struct {
	http *resty.Client
	log  *slog.Logger
	now  func() time.Time
}

// NewClient builds a client with an explicit timeout and the fixed User-Agent.
func NewClient(cfg ClientConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	httpClient := resty.New().
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent)

	return &Client{http: httpClient, log: log, now: time.Now}
}

// MemberUpdate issues a member update command (GET by default, which only
// queries) and returns the decoded response fields.
func (c *Client) MemberUpdate(ctx context.Context, site SiteConfig, member MemberIdentifier, command string, extra *Values) (*Values, error) {
	params := MemberUpdateParams(site, member, command, extra)
	body, err := c.post(ctx, "member_update", memberUpdatePath, params)
	if err != nil {
		return nil, err
	}
	return Decode(strings.TrimSpace(body)), nil
}

// Report queries the member or transaction reporting endpoint. When sites is
// non-empty the report covers all of them under site's account.
func (c *Client) Report(ctx context.Context, kind ReportKind, site SiteConfig, sites []SiteConfig, window ReportWindow) (map[string]Record, error) {
	path := memberReportPath
	if kind == TransactionReport {
		path = transactionReportPath
	}
	params := ReportingParams(kind, site, sites, window, c.now())
	body, err := c.post(ctx, kind.String()+"_report", path, params)
	if err != nil {
		return nil, err
	}
	return ParseReport(body, kind)
}

func (c *Client) post(ctx context.Context, endpoint, path string, params *Values) (string, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", formContentType).
		SetBody(EncodeForm(params)).
		Post(path)
	if err != nil {
		metrics.ObserveOutbound(endpoint, "transport_error", time.Since(start))
		c.log.ErrorContext(ctx, "NETbilling request failed", "endpoint", endpoint, "error", err)
		return "", fmt.Errorf("netbilling %s: %w", endpoint, err)
	}

	body := resp.String()
	if err := classifyResponse(resp.StatusCode(), resp.Header(), body, c.now()); err != nil {
		metrics.ObserveOutbound(endpoint, "remote_error", time.Since(start))
		c.log.ErrorContext(ctx, "NETbilling returned an error", "endpoint", endpoint, "status", resp.StatusCode(), "error", err)
		return "", err
	}
	metrics.ObserveOutbound(endpoint, "ok", time.Since(start))
	return body, nil
}

// classifyResponse maps NETbilling's error conventions to typed errors. A
// text/plain body or a Retry-After header means failure.
func classifyResponse(status int, header http.Header, body string, now time.Time) error {
	retryAfter := strings.TrimSpace(header.Get("Retry-After"))
	if retryAfter != "" {
		return &RateLimitedError{
			RetryAfter: parseRetryAfter(retryAfter, now),
			Message:    strings.TrimSpace(body),
		}
	}
	if isPlainText(header.Get("Content-Type")) {
		code, message := splitRemoteError(body)
		return &RemoteError{Code: code, Message: message}
	}
	if status >= http.StatusBadRequest {
		return &RemoteError{Code: strconv.Itoa(status), Message: http.StatusText(status)}
	}
	return nil
}

func isPlainText(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/plain"
}

func splitRemoteError(body string) (string, string) {
	body = strings.TrimSpace(body)
	idx := strings.IndexFunc(body, unicode.IsSpace)
	if idx < 0 {
		return body, ""
	}
	return body[:idx], strings.TrimSpace(body[idx:])
}

func parseRetryAfter(value string, now time.Time) time.Duration {
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
