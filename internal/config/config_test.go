package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsForLocalDevelopment(t *testing.T) {
	t.Setenv("NBGATE_ENV", "dev")
	t.Setenv("NBGATE_PUBLIC_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.PublicURL != "http://localhost:8080" {
		t.Fatalf("expected local public URL fallback, got %q", cfg.Server.PublicURL)
	}
	if cfg.Server.MemberPath != "/nbmember" {
		t.Fatalf("expected default member path, got %q", cfg.Server.MemberPath)
	}
	if cfg.Netbilling.Timeout != 30*time.Second {
		t.Fatalf("expected default timeout 30s, got %s", cfg.Netbilling.Timeout)
	}
	if cfg.SiteCache.TTL != 5*time.Minute {
		t.Fatalf("expected default cache TTL 5m, got %s", cfg.SiteCache.TTL)
	}
}

func TestLoadRequiresPublicURLOutsideLocal(t *testing.T) {
	t.Setenv("NBGATE_ENV", "production")
	t.Setenv("NBGATE_PUBLIC_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing public URL in production")
	}
}

func TestLoadForToolAllowsMissingPublicURLOutsideLocal(t *testing.T) {
	t.Setenv("NBGATE_ENV", "production")
	t.Setenv("NBGATE_PUBLIC_URL", "")

	cfg, err := LoadForTool()
	if err != nil {
		t.Fatalf("expected no error for tool config load, got %v", err)
	}
	if cfg.Server.PublicURL != "" {
		t.Fatalf("expected empty public URL for tool load, got %q", cfg.Server.PublicURL)
	}
}

func TestLoadClampsNetbillingTimeout(t *testing.T) {
	t.Setenv("NBGATE_ENV", "dev")

	for raw, want := range map[string]time.Duration{
		"2":   10 * time.Second,
		"15":  15 * time.Second,
		"120": 30 * time.Second,
	} {
		t.Setenv("NETBILLING_TIMEOUT_SECONDS", raw)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.Netbilling.Timeout != want {
			t.Fatalf("timeout %s: got %s want %s", raw, cfg.Netbilling.Timeout, want)
		}
	}
}

func TestLoadParsesOTLPHeadersAndMetricsConsole(t *testing.T) {
	t.Setenv("NBGATE_ENV", "dev")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "authorization=Bearer common,x-org=abc")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_HEADERS", "x-trace=trace-only")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_HEADERS", "x-metric=metric-only")
	t.Setenv("NBGATE_OTEL_METRICS_CONSOLE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Observability.Enabled {
		t.Fatal("expected observability enabled when console metrics is true")
	}
	if cfg.Observability.OTLPTraceHeaders["authorization"] != "Bearer common" {
		t.Fatalf("expected common header to be in trace headers, got %#v", cfg.Observability.OTLPTraceHeaders)
	}
	if cfg.Observability.OTLPTraceHeaders["x-trace"] != "trace-only" {
		t.Fatalf("expected trace-specific header, got %#v", cfg.Observability.OTLPTraceHeaders)
	}
	if cfg.Observability.OTLPMetricHeaders["x-metric"] != "metric-only" {
		t.Fatalf("expected metric-specific header, got %#v", cfg.Observability.OTLPMetricHeaders)
	}
	if _, ok := cfg.Observability.OTLPMetricHeaders["x-trace"]; ok {
		t.Fatalf("trace header leaked into metric headers: %#v", cfg.Observability.OTLPMetricHeaders)
	}
}
