package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pacewatch/pacewatch/pkg/types"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultGrowthThresholdPct  = 15.0
	DefaultDeclineThresholdPct = 10.0
	DefaultSteepDropPct        = -30.0
	DefaultEscalationThreshold = 3
	DefaultStaleTicketDays     = 5
	DefaultInterval            = 24 * time.Hour
	DefaultArtifactDir         = "reports"

	DefaultConnectTimeout = 5 * time.Second
	DefaultRequestTimeout = 30 * time.Second
	DefaultRetryBaseDelay = 2 * time.Second
	DefaultMaxAttempts    = 3
	DefaultRatePerSec     = 4.0
)

// Config is the top-level configuration for the pipeline.
// Fields map 1:1 to pacewatch.example.yaml.
type Config struct {
	Run       RunConfig        `yaml:"run"`
	Customers []CustomerConfig `yaml:"customers"`
	Primary   PrimaryConfig    `yaml:"primary"`
	Fallback  FallbackConfig   `yaml:"fallback"`
	Tracker   TrackerConfig    `yaml:"tracker"`
	HTTP      HTTPConfig       `yaml:"http"`
	Notify    NotifyConfig     `yaml:"notify"`
}

// RunConfig holds classification thresholds and run-level settings.
type RunConfig struct {
	// GrowthThresholdPct classifies a customer as growing at or above this
	// percent change. Positive.
	GrowthThresholdPct float64 `yaml:"growth_threshold_pct"`

	// DeclineThresholdPct classifies a customer as declining at or below the
	// negated value. Configured as a positive magnitude.
	DeclineThresholdPct float64 `yaml:"decline_threshold_pct"`

	// SteepDropPct flags a pace report for the watch list at or below this
	// percent change. Negative, and typically well below -DeclineThresholdPct.
	SteepDropPct float64 `yaml:"steep_drop_pct"`

	// EscalationThreshold is the trailing-7-day escalation count at which a
	// customer is added to the watch list.
	EscalationThreshold int `yaml:"escalation_threshold"`

	// StaleTicketDays is the minimum business-day age of an open ticket
	// before it is flagged.
	StaleTicketDays int `yaml:"stale_ticket_days"`

	// Interval controls how often daemon mode re-runs the pipeline.
	Interval time.Duration `yaml:"interval"`

	// ArtifactDir is where rendered reports are persisted before delivery.
	ArtifactDir string `yaml:"artifact_dir"`
}

// CustomerConfig describes one customer under watch.
type CustomerConfig struct {
	// Name is the unique internal identifier.
	Name string `yaml:"name"`

	// QueryKey is the external key the revenue sources filter by.
	QueryKey string `yaml:"query_key"`

	// DisplayName is the name shown in the report. Defaults to Name.
	DisplayName string `yaml:"display_name"`
}

// Refs converts the configured customer list into immutable domain refs,
// preserving order.
func (c *Config) Refs() []types.CustomerRef {
	refs := make([]types.CustomerRef, 0, len(c.Customers))
	for _, cc := range c.Customers {
		refs = append(refs, types.CustomerRef{
			Name:        cc.Name,
			QueryKey:    cc.QueryKey,
			DisplayName: cc.DisplayName,
		})
	}
	return refs
}

// PrimaryConfig describes the primary revenue warehouse.
type PrimaryConfig struct {
	// Endpoint is the base URL of the warehouse API. Empty disables the
	// primary source: the resolver runs fallback-only.
	Endpoint string `yaml:"endpoint"`

	// Site selects the warehouse site to sign in to.
	Site string `yaml:"site"`

	// Username is the sign-in name (safe to store in config).
	Username string `yaml:"username"`

	// SecretEnv is the name of the environment variable holding the sign-in
	// secret.
	SecretEnv string `yaml:"secret_env"`
}

// Secret returns the sign-in secret resolved from the environment.
func (p PrimaryConfig) Secret() string {
	if p.SecretEnv == "" {
		return ""
	}
	return os.Getenv(p.SecretEnv)
}

// Credentialed reports whether a usable primary credential is configured.
func (p PrimaryConfig) Credentialed() bool {
	return p.Endpoint != "" && p.Secret() != ""
}

// FallbackConfig describes the natural-language fallback source.
type FallbackConfig struct {
	// Endpoint is the URL of the assistant query API.
	Endpoint string `yaml:"endpoint"`

	// KeyEnv is the name of the environment variable holding the API key.
	KeyEnv string `yaml:"key_env"`
}

// Key returns the API key resolved from the environment.
func (f FallbackConfig) Key() string {
	if f.KeyEnv == "" {
		return ""
	}
	return os.Getenv(f.KeyEnv)
}

// TrackerConfig describes the escalation and ticket record providers.
type TrackerConfig struct {
	// EscalationsEndpoint returns recent escalation records as JSON.
	EscalationsEndpoint string `yaml:"escalations_endpoint"`

	// TicketsEndpoint returns open and recently closed tickets as JSON.
	TicketsEndpoint string `yaml:"tickets_endpoint"`

	// TokenEnv is the name of the environment variable holding the bearer
	// token sent to both endpoints.
	TokenEnv string `yaml:"token_env"`
}

// Token returns the tracker bearer token resolved from the environment.
func (t TrackerConfig) Token() string {
	if t.TokenEnv == "" {
		return ""
	}
	return os.Getenv(t.TokenEnv)
}

// HTTPConfig holds the retry client settings shared by all outbound calls.
type HTTPConfig struct {
	// ConnectTimeout bounds connection establishment per attempt.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	// RequestTimeout bounds the whole request per attempt, independently of
	// ConnectTimeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// RetryBaseDelay is the wait before the second attempt; it doubles for
	// each further attempt.
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`

	// MaxAttempts is the total number of attempts per request.
	MaxAttempts int `yaml:"max_attempts"`

	// RatePerSec caps outbound request rate across all sources.
	RatePerSec float64 `yaml:"rate_per_sec"`
}

// NotifyConfig holds webhook delivery targets.
type NotifyConfig struct {
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: slack | teams | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable holding the webhook URL.
	URLEnv string `yaml:"url_env"`

	// Channel is an optional channel identifier included in the payload for
	// targets that support it.
	Channel string `yaml:"channel"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Run: RunConfig{
			GrowthThresholdPct:  DefaultGrowthThresholdPct,
			DeclineThresholdPct: DefaultDeclineThresholdPct,
			SteepDropPct:        DefaultSteepDropPct,
			EscalationThreshold: DefaultEscalationThreshold,
			StaleTicketDays:     DefaultStaleTicketDays,
			Interval:            DefaultInterval,
			ArtifactDir:         DefaultArtifactDir,
		},
		HTTP: HTTPConfig{
			ConnectTimeout: DefaultConnectTimeout,
			RequestTimeout: DefaultRequestTimeout,
			RetryBaseDelay: DefaultRetryBaseDelay,
			MaxAttempts:    DefaultMaxAttempts,
			RatePerSec:     DefaultRatePerSec,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if len(cfg.Customers) == 0 {
		return fmt.Errorf("at least one customer is required")
	}
	seen := make(map[string]bool, len(cfg.Customers))
	for i, c := range cfg.Customers {
		if c.Name == "" {
			return fmt.Errorf("customers[%d]: name is required", i)
		}
		if c.QueryKey == "" {
			return fmt.Errorf("customers[%d] %q: query_key is required", i, c.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("customers[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true
	}

	if cfg.Fallback.Endpoint == "" {
		return fmt.Errorf("fallback.endpoint is required")
	}
	if cfg.Primary.Endpoint != "" && cfg.Primary.SecretEnv == "" {
		return fmt.Errorf("primary.secret_env is required when primary.endpoint is set")
	}

	if cfg.Run.GrowthThresholdPct <= 0 {
		return fmt.Errorf("run.growth_threshold_pct must be positive")
	}
	if cfg.Run.DeclineThresholdPct <= 0 {
		return fmt.Errorf("run.decline_threshold_pct must be positive")
	}
	if cfg.Run.SteepDropPct >= 0 {
		return fmt.Errorf("run.steep_drop_pct must be negative")
	}
	if cfg.Run.EscalationThreshold <= 0 {
		return fmt.Errorf("run.escalation_threshold must be positive")
	}
	if cfg.Run.StaleTicketDays <= 0 {
		return fmt.Errorf("run.stale_ticket_days must be positive")
	}
	if cfg.Run.Interval <= 0 {
		return fmt.Errorf("run.interval must be positive")
	}

	if cfg.HTTP.MaxAttempts < 1 {
		return fmt.Errorf("http.max_attempts must be at least 1")
	}
	if cfg.HTTP.RetryBaseDelay <= 0 {
		return fmt.Errorf("http.retry_base_delay must be positive")
	}
	if cfg.HTTP.RatePerSec <= 0 {
		return fmt.Errorf("http.rate_per_sec must be positive")
	}

	for i, wh := range cfg.Notify.Webhooks {
		switch wh.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("notify.webhooks[%d]: unknown type %q", i, wh.Type)
		}
		if wh.URLEnv == "" {
			return fmt.Errorf("notify.webhooks[%d]: url_env is required", i)
		}
	}
	return nil
}
