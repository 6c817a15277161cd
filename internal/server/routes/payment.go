package routes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/nbgate/internal/app/ports"
	"github.com/fr0stylo/nbgate/internal/metrics"
	"github.com/fr0stylo/nbgate/internal/netbilling"
	"github.com/fr0stylo/nbgate/internal/renderer"
)

const (
	returnPath        = "/netbilling/return"
	msgAccessDenied   = "Access denied."
	msgUnknownSite    = "Unknown site."
	msgServiceFailure = "Service unavailable."
)

// PaymentConfig carries the public addresses the hosted payment flow needs.
type PaymentConfig struct {
	// PublicURL is this gateway's externally reachable base URL.
	PublicURL string
	// HostedURL overrides the hosted payment page endpoint.
	HostedURL string
}

// PaymentRoutes serves the hosted payment buy link and return.
type PaymentRoutes struct {
	sites  netbilling.SiteResolver
	events ports.EventPublisher
	cfg    PaymentConfig
	log    *slog.Logger
	now    func() time.Time
}

// NewPaymentRoutes constructs hosted payment routes.
func NewPaymentRoutes(sites netbilling.SiteResolver, events ports.EventPublisher, cfg PaymentConfig, log *slog.Logger) *PaymentRoutes {
	if log == nil {
		log = slog.Default()
	}
	return &PaymentRoutes{sites: sites, events: events, cfg: cfg, log: log, now: time.Now}
}

// RegisterRoutes registers hosted payment routes.
func (p *PaymentRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET(returnPath, p.handleReturn)
	s.GET("/netbilling/buy/:site_tag", p.handleBuy)
}

func (p *PaymentRoutes) handleReturn(c echo.Context) error {
	ctx := c.Request().Context()
	query := netbilling.Decode(c.Request().URL.RawQuery)

	account := firstValue(query, netbilling.FieldAccountAndSitetag)
	site, err := p.resolve(ctx, netbilling.SiteTagFromAccount(account))
	if err != nil {
		if errors.Is(err, netbilling.ErrAccessDenied) {
			metrics.ObservePaymentReturn("rejected")
			return c.String(http.StatusForbidden, msgAccessDenied)
		}
		metrics.ObservePaymentReturn("error")
		p.log.ErrorContext(ctx, "Payment return site lookup failed", "error", err)
		return c.String(http.StatusInternalServerError, msgServiceFailure)
	}

	if err := netbilling.VerifyPaymentReturn(query, site); err != nil {
		metrics.ObservePaymentReturn("rejected")
		p.log.WarnContext(ctx, "Payment return failed verification", "site_tag", site.SiteTag)
		return c.String(http.StatusForbidden, msgAccessDenied)
	}
	metrics.ObservePaymentReturn("verified")

	receipt := renderer.Receipt{
		TransactionID: firstValue(query, netbilling.FieldTransactionID),
		StatusCode:    firstValue(query, netbilling.FieldStatusCode),
		Amount:        firstValue(query, "Ecom_Cost_Total"),
		Description:   firstValue(query, "Ecom_Receipt_Description"),
		SiteTag:       site.SiteTag,
	}
	p.log.InfoContext(ctx, "Payment return verified", "site_tag", site.SiteTag, "transaction_id", receipt.TransactionID)

	if p.events != nil {
		if err := p.events.PublishPaymentVerified(ctx, ports.PaymentVerified{
			SiteTag:       site.SiteTag,
			AccountID:     site.AccountID,
			TransactionID: receipt.TransactionID,
			StatusCode:    receipt.StatusCode,
			Amount:        receipt.Amount,
			VerifiedAt:    p.now(),
		}); err != nil {
			p.log.WarnContext(ctx, "Failed to publish payment event", "transaction_id", receipt.TransactionID, "error", err)
		}
	}

	return c.Render(http.StatusOK, "", renderer.ReceiptPage(receipt))
}

func (p *PaymentRoutes) handleBuy(c echo.Context) error {
	ctx := c.Request().Context()
	site, found, err := p.sites.ByTag(ctx, c.Param("site_tag"))
	if err != nil {
		p.log.ErrorContext(ctx, "Buy link site lookup failed", "error", err)
		return c.String(http.StatusInternalServerError, msgServiceFailure)
	}
	if !found {
		return c.String(http.StatusNotFound, msgUnknownSite)
	}

	link, err := netbilling.HostedPaymentURL(p.cfg.HostedURL, site, netbilling.Purchase{
		Amount:      c.QueryParam("amount"),
		Description: c.QueryParam("description"),
		ReturnURL:   strings.TrimRight(p.cfg.PublicURL, "/") + returnPath,
	})
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.Redirect(http.StatusSeeOther, link)
}

func (p *PaymentRoutes) resolve(ctx context.Context, siteTag string) (netbilling.SiteConfig, error) {
	if siteTag == "" {
		return netbilling.SiteConfig{}, netbilling.ErrAccessDenied
	}
	site, found, err := p.sites.ByTag(ctx, siteTag)
	if err != nil {
		return netbilling.SiteConfig{}, err
	}
	if !found || site.IntegrityKey == "" {
		return netbilling.SiteConfig{}, netbilling.ErrAccessDenied
	}
	return site, nil
}

func firstValue(query *netbilling.Values, key string) string {
	v, ok := query.Get(key)
	if !ok {
		return ""
	}
	return v.String()
}
