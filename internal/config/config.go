package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultPort            = 8080
	defaultDBPath          = "data/nbgate"
	defaultMemberPath      = "/nbmember"
	defaultNetbillingURL   = "https://secure.netbilling.com"
	defaultHostedURL       = "https://secure.netbilling.com/gw/native/join2.2b"
	defaultUserAgent       = "nbgate/Version:2016.Jun.23"
	defaultTimeoutSeconds  = 30
	minTimeoutSeconds      = 10
	maxTimeoutSeconds      = 30
	defaultCacheTTLSeconds = 300
	defaultServiceName     = "nbgate"
)

type Config struct {
	Environment   string
	Server        ServerConfig
	Database      DatabaseConfig
	Logging       LoggingConfig
	Netbilling    NetbillingConfig
	SiteCache     SiteCacheConfig
	Events        EventsConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port       int
	MemberPath string
	PublicURL  string
}

type DatabaseConfig struct {
	Path      string
	LogTiming bool
}

type LoggingConfig struct {
	Level  string
	Format string
}

type NetbillingConfig struct {
	BaseURL   string
	HostedURL string
	Timeout   time.Duration
	UserAgent string
}

type SiteCacheConfig struct {
	TTL time.Duration
}

type EventsConfig struct {
	Sink   string
	Source string
	Secret string
}

type ObservabilityConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

func Load() (Config, error) {
	return load(true)
}

// LoadForTool loads config for CLI tools, which do not serve HTTP and need no public URL.
func LoadForTool() (Config, error) {
	return load(false)
}

func load(server bool) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("nbgate_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("nbgate_port", defaultPort)
	v.SetDefault("nbgate_db_path", defaultDBPath)
	v.SetDefault("nbgate_db_timing", false)
	v.SetDefault("nbgate_log_level", "info")
	v.SetDefault("nbgate_log_format", "json")
	v.SetDefault("nbgate_member_path", defaultMemberPath)
	v.SetDefault("nbgate_public_url", "")
	v.SetDefault("netbilling_base_url", defaultNetbillingURL)
	v.SetDefault("netbilling_hosted_url", defaultHostedURL)
	v.SetDefault("netbilling_timeout_seconds", defaultTimeoutSeconds)
	v.SetDefault("netbilling_user_agent", defaultUserAgent)
	v.SetDefault("nbgate_site_cache_ttl_seconds", defaultCacheTTLSeconds)
	v.SetDefault("nbgate_events_sink", "")
	v.SetDefault("nbgate_events_source", defaultServiceName)
	v.SetDefault("nbgate_events_secret", "")
	v.SetDefault("nbgate_otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_traces_headers", "")
	v.SetDefault("otel_exporter_otlp_metrics_headers", "")
	v.SetDefault("otel_service_name", defaultServiceName)
	v.SetDefault("nbgate_version", "dev")
	v.SetDefault("otel_service_version", "")
	v.SetDefault("nbgate_otel_sampling_ratio", 1.0)
	v.SetDefault("nbgate_otel_metrics_console", false)

	env := resolveEnvironment(v)
	port := v.GetInt("nbgate_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid NBGATE_PORT: %d", port)
	}

	samplingRatio := v.GetFloat64("nbgate_otel_sampling_ratio")
	if samplingRatio < 0 {
		samplingRatio = 0
	}
	if samplingRatio > 1 {
		samplingRatio = 1
	}

	timeoutSeconds := v.GetInt("netbilling_timeout_seconds")
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}
	if timeoutSeconds < minTimeoutSeconds {
		timeoutSeconds = minTimeoutSeconds
	}
	if timeoutSeconds > maxTimeoutSeconds {
		timeoutSeconds = maxTimeoutSeconds
	}

	cacheTTL := v.GetInt("nbgate_site_cache_ttl_seconds")
	if cacheTTL < 0 {
		cacheTTL = 0
	}

	serviceName := strings.TrimSpace(v.GetString("otel_service_name"))
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	serviceVersion := strings.TrimSpace(v.GetString("nbgate_version"))
	if serviceVersion == "" {
		serviceVersion = strings.TrimSpace(v.GetString("otel_service_version"))
	}
	if serviceVersion == "" {
		serviceVersion = "dev"
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint"))
	otlpCommonHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_headers"))
	otlpTraceHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_traces_headers"))
	otlpMetricHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_metrics_headers"))
	metricsConsole := v.GetBool("nbgate_otel_metrics_console")
	otelEnabled := v.GetBool("nbgate_otel_enabled") || otlpEndpoint != "" || metricsConsole

	cfg := Config{
		Environment: env,
		Server: ServerConfig{
			Port:       port,
			MemberPath: strings.TrimSpace(v.GetString("nbgate_member_path")),
			PublicURL:  strings.TrimRight(strings.TrimSpace(v.GetString("nbgate_public_url")), "/"),
		},
		Database: DatabaseConfig{
			Path:      strings.TrimSpace(v.GetString("nbgate_db_path")),
			LogTiming: v.GetBool("nbgate_db_timing"),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("nbgate_log_level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("nbgate_log_format"))),
		},
		Netbilling: NetbillingConfig{
			BaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString("netbilling_base_url")), "/"),
			HostedURL: strings.TrimSpace(v.GetString("netbilling_hosted_url")),
			Timeout:   time.Duration(timeoutSeconds) * time.Second,
			UserAgent: strings.TrimSpace(v.GetString("netbilling_user_agent")),
		},
		SiteCache: SiteCacheConfig{
			TTL: time.Duration(cacheTTL) * time.Second,
		},
		Events: EventsConfig{
			Sink:   strings.TrimSpace(v.GetString("nbgate_events_sink")),
			Source: strings.TrimSpace(v.GetString("nbgate_events_source")),
			Secret: strings.TrimSpace(v.GetString("nbgate_events_secret")),
		},
		Observability: ObservabilityConfig{
			Enabled:           otelEnabled,
			OTLPEndpoint:      otlpEndpoint,
			OTLPTraceHeaders:  mergeHeaderMaps(otlpCommonHeaders, otlpTraceHeaders),
			OTLPMetricHeaders: mergeHeaderMaps(otlpCommonHeaders, otlpMetricHeaders),
			ServiceName:       serviceName,
			ServiceVer:        serviceVersion,
			SamplingRatio:     samplingRatio,
			MetricsConsole:    metricsConsole,
		},
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDBPath
	}
	if cfg.Server.MemberPath == "" {
		cfg.Server.MemberPath = defaultMemberPath
	}
	if cfg.Netbilling.UserAgent == "" {
		cfg.Netbilling.UserAgent = defaultUserAgent
	}
	if server && cfg.Server.PublicURL == "" {
		if !cfg.IsLocalDevelopment() {
			return Config{}, fmt.Errorf("NBGATE_PUBLIC_URL is required outside local/dev environments")
		}
		cfg.Server.PublicURL = fmt.Sprintf("http://localhost:%d", port)
	}

	return cfg, nil
}

func parseOTLPHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeHeaderMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"nbgate_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
