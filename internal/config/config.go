// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Sources       SourcesConfig       `yaml:"sources"`
	Aggregator    AggregatorConfig    `yaml:"aggregator"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings. The featured deal
// store is disabled when Host is empty.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// Enabled reports whether a database is configured.
func (d *DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// SourcesConfig holds per-source adapter settings.
type SourcesConfig struct {
	Ebay       EbayConfig        `yaml:"ebay"`
	Slickdeals CuratedConfig     `yaml:"slickdeals"`
	Dealnews   CuratedConfig     `yaml:"dealnews"`
	Craigslist ClassifiedsConfig `yaml:"craigslist"`
}

// SourceSettings are the settings every source shares.
type SourceSettings struct {
	// Enabled defaults to true when omitted.
	Enabled    *bool             `yaml:"enabled"`
	RateLimit  domain.RateLimit  `yaml:"rate_limit"`
	Priority   int               `yaml:"priority"`
	Categories []domain.Category `yaml:"categories"`
}

// IsEnabled reports whether the source should be registered.
func (s *SourceSettings) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Domain converts the settings into the domain source description.
func (s *SourceSettings) Domain(name domain.Source, apiKey string, interval time.Duration) domain.SourceConfig {
	return domain.SourceConfig{
		Name:          name,
		Enabled:       s.IsEnabled(),
		APIKey:        apiKey,
		RateLimit:     s.RateLimit,
		Categories:    s.Categories,
		FetchInterval: interval,
		Priority:      s.Priority,
	}
}

// EbayConfig defines eBay Browse API settings.
type EbayConfig struct {
	SourceSettings `yaml:",inline"`

	AppID           string                     `yaml:"app_id"`
	CertID          string                     `yaml:"cert_id"`
	TokenURL        string                     `yaml:"token_url"`
	BrowseURL       string                     `yaml:"browse_url"`
	Marketplace     string                     `yaml:"marketplace"`
	PageSize        int                        `yaml:"page_size"`
	MaxPages        int                        `yaml:"max_pages"`
	CategoryQueries map[domain.Category]string `yaml:"category_queries"`
}

// HasCredentials reports whether both OAuth credentials are set.
func (e *EbayConfig) HasCredentials() bool {
	return e.AppID != "" && e.CertID != ""
}

// CuratedConfig defines a curated deal feed.
type CuratedConfig struct {
	SourceSettings `yaml:",inline"`

	FeedURL string `yaml:"feed_url"`
	// SearchURL is a template containing {query}. Searches filter the main
	// feed when it is empty.
	SearchURL string `yaml:"search_url"`
}

// ClassifiedsConfig defines the per-city classifieds feeds.
type ClassifiedsConfig struct {
	SourceSettings `yaml:",inline"`

	// URLTemplate contains {city}, {category} and optionally {query}.
	URLTemplate   string                     `yaml:"url_template"`
	Cities        []string                   `yaml:"cities"`
	TopCities     int                        `yaml:"top_cities"`
	CategoryCodes map[domain.Category]string `yaml:"category_codes"`
}

// AggregatorConfig defines fan-out, retry and cache behavior.
type AggregatorConfig struct {
	DefaultSources []domain.Source `yaml:"default_sources"`
	RequestTimeout time.Duration   `yaml:"request_timeout"`
	MaxRetries     int             `yaml:"max_retries"`
	BackoffBase    time.Duration   `yaml:"backoff_base"`
	ListingTTL     time.Duration   `yaml:"listing_ttl"`
	SearchTTL      time.Duration   `yaml:"search_ttl"`
	HotTTL         time.Duration   `yaml:"hot_ttl"`
	SweepInterval  time.Duration   `yaml:"sweep_interval"`
	HotThreshold   int             `yaml:"hot_threshold"`
	UserAgent      string          `yaml:"user_agent"`
}

// ScheduleConfig defines background job intervals.
type ScheduleConfig struct {
	HotDealsInterval time.Duration `yaml:"hot_deals_interval"`
	HotDealsLimit    int           `yaml:"hot_deals_limit"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
	// Username overrides the name alerts are posted under.
	Username string `yaml:"username"`
	// AlertThreshold is the minimum overall score that triggers an alert.
	AlertThreshold int `yaml:"alert_threshold"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TelemetryConfig defines OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Endpoint       string        `yaml:"endpoint"`
	Insecure       bool          `yaml:"insecure"`
	SampleRatio    float64       `yaml:"sample_ratio"`
	ServiceName    string        `yaml:"service_name"`
	MetricsEnabled bool          `yaml:"metrics_enabled"`
	LogsEnabled    bool          `yaml:"logs_enabled"`
	ExportInterval time.Duration `yaml:"export_interval"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file next to the config, or in the
// working directory, is loaded first; variables already set win.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env"); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse expands environment variables in data, decodes it, applies
// defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(paths ...string) error {
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true

		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyEbayDefaults(&cfg.Sources.Ebay)
	applyCuratedDefaults(&cfg.Sources.Slickdeals, domain.RateLimit{RequestsPerMinute: 30, RequestsPerDay: 1000},
		"https://slickdeals.net/newsearch.php?mode=frontpage&searcharea=deals&searchin=first&rss=1",
		"https://slickdeals.net/newsearch.php?q={query}&searcharea=deals&searchin=first&rss=1")
	applyCuratedDefaults(&cfg.Sources.Dealnews, domain.RateLimit{RequestsPerMinute: 30, RequestsPerDay: 1000},
		"https://www.dealnews.com/?rss=1", "")
	applyClassifiedsDefaults(&cfg.Sources.Craigslist)
	applyAggregatorDefaults(&cfg.Aggregator)
	applyScheduleDefaults(&cfg.Schedule)
	applyNotificationDefaults(&cfg.Notifications)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyRateLimitDefaults(r *domain.RateLimit, def domain.RateLimit) {
	if r.RequestsPerMinute == 0 {
		r.RequestsPerMinute = def.RequestsPerMinute
	}
	if r.RequestsPerDay == 0 {
		r.RequestsPerDay = def.RequestsPerDay
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.TokenURL == "" {
		e.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
	}
	if e.BrowseURL == "" {
		e.BrowseURL = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	}
	if e.Marketplace == "" {
		e.Marketplace = "EBAY_US"
	}
	if e.PageSize == 0 {
		e.PageSize = 50
	}
	if e.MaxPages == 0 {
		e.MaxPages = 3
	}
	applyRateLimitDefaults(&e.RateLimit, domain.RateLimit{RequestsPerMinute: 100, RequestsPerDay: 5000})
}

func applyCuratedDefaults(c *CuratedConfig, limit domain.RateLimit, feedURL, searchURL string) {
	if c.FeedURL == "" {
		c.FeedURL = feedURL
		if c.SearchURL == "" {
			c.SearchURL = searchURL
		}
	}
	applyRateLimitDefaults(&c.RateLimit, limit)
}

func applyClassifiedsDefaults(c *ClassifiedsConfig) {
	if c.URLTemplate == "" {
		c.URLTemplate = "https://{city}.craigslist.org/search/{category}?format=rss"
	}
	if len(c.Cities) == 0 {
		c.Cities = []string{"sfbay", "newyork", "losangeles", "chicago", "seattle"}
	}
	if c.TopCities == 0 {
		c.TopCities = 3
	}
	applyRateLimitDefaults(&c.RateLimit, domain.RateLimit{RequestsPerMinute: 20, RequestsPerDay: 500})
}

func applyAggregatorDefaults(a *AggregatorConfig) {
	if len(a.DefaultSources) == 0 {
		a.DefaultSources = []domain.Source{
			domain.SourceSlickdeals,
			domain.SourceDealnews,
			domain.SourceCraigslist,
		}
	}
	if a.RequestTimeout == 0 {
		a.RequestTimeout = 15 * time.Second
	}
	if a.MaxRetries == 0 {
		a.MaxRetries = 3
	}
	if a.BackoffBase == 0 {
		a.BackoffBase = time.Second
	}
	if a.ListingTTL == 0 {
		a.ListingTTL = 5 * time.Minute
	}
	if a.SearchTTL == 0 {
		a.SearchTTL = 3 * time.Minute
	}
	if a.HotTTL == 0 {
		a.HotTTL = 5 * time.Minute
	}
	if a.SweepInterval == 0 {
		a.SweepInterval = 60 * time.Second
	}
	if a.HotThreshold == 0 {
		a.HotThreshold = 75
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.HotDealsInterval == 0 {
		s.HotDealsInterval = 15 * time.Minute
	}
	if s.HotDealsLimit == 0 {
		s.HotDealsLimit = 20
	}
}

func applyNotificationDefaults(n *NotificationsConfig) {
	if n.Discord.AlertThreshold == 0 {
		n.Discord.AlertThreshold = 85
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "deal-aggregator"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.ExportInterval == 0 {
		t.ExportInterval = 60 * time.Second
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	if cfg.Database.Enabled() {
		if cfg.Database.Name == "" {
			errs = append(errs, errors.New("database.name is required when database.host is set"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, errors.New("database.user is required when database.host is set"))
		}
	}

	errs = append(errs, validateSources(&cfg.Sources)...)
	errs = append(errs, validateAggregator(&cfg.Aggregator)...)

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, errors.New("notifications.discord.webhook_url is required when discord is enabled"))
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint is required when telemetry is enabled"))
	}
	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be between 0 and 1 (got %g)", cfg.Telemetry.SampleRatio))
	}

	return errors.Join(errs...)
}

func validateSources(s *SourcesConfig) []error {
	var errs []error

	if (s.Ebay.AppID == "") != (s.Ebay.CertID == "") {
		errs = append(errs, errors.New("sources.ebay.app_id and sources.ebay.cert_id must be set together"))
	}

	for name, c := range map[string]*CuratedConfig{"slickdeals": &s.Slickdeals, "dealnews": &s.Dealnews} {
		if c.IsEnabled() && c.FeedURL == "" {
			errs = append(errs, fmt.Errorf("sources.%s.feed_url is required", name))
		}
		if c.SearchURL != "" && !strings.Contains(c.SearchURL, "{query}") {
			errs = append(errs, fmt.Errorf("sources.%s.search_url must contain {query}", name))
		}
	}

	if c := &s.Craigslist; c.IsEnabled() {
		if !strings.Contains(c.URLTemplate, "{city}") || !strings.Contains(c.URLTemplate, "{category}") {
			errs = append(errs, errors.New("sources.craigslist.url_template must contain {city} and {category}"))
		}
		if c.TopCities < 0 {
			errs = append(errs, errors.New("sources.craigslist.top_cities must not be negative"))
		}
	}

	for name, rl := range map[string]domain.RateLimit{
		"ebay":       s.Ebay.RateLimit,
		"slickdeals": s.Slickdeals.RateLimit,
		"dealnews":   s.Dealnews.RateLimit,
		"craigslist": s.Craigslist.RateLimit,
	} {
		if rl.RequestsPerMinute < 0 || rl.RequestsPerDay < 0 {
			errs = append(errs, fmt.Errorf("sources.%s.rate_limit must not be negative", name))
		}
	}

	return errs
}

func validateAggregator(a *AggregatorConfig) []error {
	var errs []error

	for _, src := range a.DefaultSources {
		if !src.Valid() {
			errs = append(errs, fmt.Errorf("aggregator.default_sources: unknown source %q", src))
		}
	}
	if a.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("aggregator.max_retries must be at least 1 (got %d)", a.MaxRetries))
	}
	if a.HotThreshold < 0 || a.HotThreshold > 100 {
		errs = append(errs, fmt.Errorf("aggregator.hot_threshold must be between 0 and 100 (got %d)", a.HotThreshold))
	}

	return errs
}
