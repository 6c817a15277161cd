package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fr0stylo/nbgate/internal/app/ports"
	portmocks "github.com/fr0stylo/nbgate/internal/app/ports/mocks"
	"github.com/fr0stylo/nbgate/internal/netbilling"
	"github.com/fr0stylo/nbgate/internal/renderer"
)

var shopSite = netbilling.SiteConfig{
	AccountID:        "123456789012",
	SiteTag:          "shop",
	AccessKeyword:    "kw",
	RetrievalKeyword: "rk",
	IntegrityKey:     "ik",
}

type siteFake struct {
	sites map[string]netbilling.SiteConfig
	err   error
}

func (f siteFake) ByTag(_ context.Context, tag string) (netbilling.SiteConfig, bool, error) {
	if f.err != nil {
		return netbilling.SiteConfig{}, false, f.err
	}
	site, ok := f.sites[tag]
	return site, ok, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = &renderer.Renderer{}
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMemberRouteDispatchesPostedCommand(t *testing.T) {
	t.Parallel()

	var got netbilling.MemberCommand
	handler := netbilling.MemberCommandHandlerFunc(func(_ context.Context, cmd netbilling.MemberCommand) (netbilling.MemberCommandResult, error) {
		got = cmd
		return netbilling.MemberCommandResult{Fulfilled: true, Message: "OK: 1 user(s) added"}, nil
	})
	e := newTestEcho()
	NewMemberRoutes(netbilling.NewProtocol(siteFake{sites: map[string]netbilling.SiteConfig{"shop": shopSite}}, handler), "").RegisterRoutes(e)

	rec := serve(e, http.MethodPost, "/nbmember/shop?cmd=append_users&keyword=kw", "u=alice&p=secret")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK: 1 user(s) added", rec.Body.String())
	require.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/plain"))
	require.Equal(t, []string{"alice"}, got.Usernames)
}

func TestMemberRouteRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	var calls int
	handler := netbilling.MemberCommandHandlerFunc(func(context.Context, netbilling.MemberCommand) (netbilling.MemberCommandResult, error) {
		calls++
		return netbilling.MemberCommandResult{Fulfilled: true}, nil
	})
	e := newTestEcho()
	NewMemberRoutes(netbilling.NewProtocol(siteFake{sites: map[string]netbilling.SiteConfig{"shop": shopSite}}, handler), "").RegisterRoutes(e)

	body := "u=bob&p=" + strings.Repeat("x", maxCommandBody)
	rec := serve(e, http.MethodPost, "/nbmember/shop?cmd=append_user&keyword=kw", body)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, "ERROR: Invalid request.", rec.Body.String())
	require.Zero(t, calls)

	body = "u=bob&p=" + strings.Repeat("x", maxCommandBody-len("u=bob&p="))
	rec = serve(e, http.MethodPost, "/nbmember/shop?cmd=append_user&keyword=kw", body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, calls)
}

func TestMemberRouteTestCommandOverGet(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	protocol := netbilling.NewProtocol(siteFake{sites: map[string]netbilling.SiteConfig{"shop": shopSite}}, nil)
	NewMemberRoutes(protocol, "/custom/").RegisterRoutes(e)

	rec := serve(e, http.MethodGet, "/custom/shop?cmd=test&keyword=kw", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "OK: Control interface is live")

	rec = serve(e, http.MethodGet, "/custom/shop?cmd=test&keyword=wrong", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func signedReturnQuery(site netbilling.SiteConfig, status string) string {
	vs := netbilling.NewValues()
	vs.SetString(netbilling.FieldAccountAndSitetag, site.AccountAndSitetag())
	vs.SetString(netbilling.FieldTransactionID, "114000000001")
	vs.SetString(netbilling.FieldStatusCode, status)
	vs.SetString("Ecom_Cost_Total", "9.95")
	vs.SetString(netbilling.FieldHashFields, "Ecom_Cost_Total")
	vs.SetString(netbilling.FieldProofOfPurchase, netbilling.ProofOfPurchase(vs, site.IntegrityKey))
	return netbilling.EncodeForm(vs)
}

func TestPaymentReturnRendersReceiptAndPublishes(t *testing.T) {
	t.Parallel()

	events := portmocks.NewMockEventPublisher(t)
	events.EXPECT().PublishPaymentVerified(mock.Anything, mock.MatchedBy(func(ev ports.PaymentVerified) bool {
		return ev.SiteTag == "shop" && ev.TransactionID == "114000000001" && ev.Amount == "9.95"
	})).Return(errors.New("sink down"))

	e := newTestEcho()
	payments := NewPaymentRoutes(siteFake{sites: map[string]netbilling.SiteConfig{"shop": shopSite}}, events, PaymentConfig{}, nil)
	payments.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }
	payments.RegisterRoutes(e)

	rec := serve(e, http.MethodGet, "/netbilling/return?"+signedReturnQuery(shopSite, "1"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "114000000001")
	require.Contains(t, rec.Body.String(), "Payment received")
}

func TestPaymentReturnRejectsTamperedQuery(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	NewPaymentRoutes(siteFake{sites: map[string]netbilling.SiteConfig{"shop": shopSite}}, portmocks.NewMockEventPublisher(t), PaymentConfig{}, nil).RegisterRoutes(e)

	query := strings.Replace(signedReturnQuery(shopSite, "1"), "9.95", "0.01", 1)
	rec := serve(e, http.MethodGet, "/netbilling/return?"+query, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Access denied.", rec.Body.String())

	other := shopSite
	other.SiteTag = "ghost"
	rec = serve(e, http.MethodGet, "/netbilling/return?"+signedReturnQuery(other, "1"), "")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPaymentReturnStoreFailureIsServerError(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	NewPaymentRoutes(siteFake{err: errors.New("database is locked")}, nil, PaymentConfig{}, nil).RegisterRoutes(e)

	rec := serve(e, http.MethodGet, "/netbilling/return?"+signedReturnQuery(shopSite, "1"), "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "locked")
}

func TestBuyRedirectsToHostedPaymentPage(t *testing.T) {
	t.Parallel()

	e := newTestEcho()
	NewPaymentRoutes(siteFake{sites: map[string]netbilling.SiteConfig{"shop": shopSite}}, nil, PaymentConfig{
		PublicURL: "https://gate.example.com/",
		HostedURL: "https://pay.example.com/join",
	}, nil).RegisterRoutes(e)

	rec := serve(e, http.MethodGet, "/netbilling/buy/shop?amount=9.95&description=Gold", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	require.Equal(t, "pay.example.com", location.Host)
	q := location.Query()
	require.Equal(t, "123456789012:shop", q.Get(netbilling.FieldAccountAndSitetag))
	require.Equal(t, "https://gate.example.com/netbilling/return", q.Get("Ecom_Ezic_Fulfillment_ReturnURL"))

	for _, amount := range []string{"free", "NaN", "Inf", "-1", "0"} {
		rec = serve(e, http.MethodGet, "/netbilling/buy/shop?amount="+amount, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, amount)
	}
	rec = serve(e, http.MethodGet, "/netbilling/buy/ghost?amount=1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

type pingFake struct{ err error }

func (p pingFake) Ping(context.Context) error { return p.err }

func TestHealthAndMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "nbgate_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	e := newTestEcho()
	NewHealthRoutes(pingFake{}, reg).RegisterRoutes(e)
	require.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/healthz", "").Code)

	rec := serve(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "nbgate_test_total 1")

	down := newTestEcho()
	NewHealthRoutes(pingFake{err: errors.New("closed")}, reg).RegisterRoutes(down)
	require.Equal(t, http.StatusServiceUnavailable, serve(down, http.MethodGet, "/healthz", "").Code)
}
