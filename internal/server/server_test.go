package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fr0stylo/nbgate/internal/server/routes"
)

func TestServerAssignsRequestIDAndRecoversPanics(t *testing.T) {
	t.Parallel()

	srv := New(slog.New(slog.NewTextHandler(io.Discard, nil)), "nbgate-test")
	srv.RegisterRouter(routes.NewHealthRoutes(nil, prometheus.NewRegistry()))
	srv.Handler().GET("/boom", func(echo.Context) error { panic("boom") })

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("expected request id header")
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected recovered 500, got %d", rec.Code)
	}
}
