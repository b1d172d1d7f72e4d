package model

import "time"

// Config is the complete TrustBuddy configuration.
// Loaded from defaults, then ~/.trustbuddy/config.yaml, then TRUSTBUDDY_* env vars, then flags.
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Session     SessionConfig     `yaml:"session" mapstructure:"session"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Analysis    AnalysisConfig    `yaml:"analysis" mapstructure:"analysis"`
	Authority   AuthorityConfig   `yaml:"authority" mapstructure:"authority"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	AllowOrigins   []string      `yaml:"allow_origins" mapstructure:"allow_origins"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	RateLimit      RateLimit     `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// RateLimit is a token bucket per client
type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// SessionConfig controls quiz tally sessions
type SessionConfig struct {
	CookieName string        `yaml:"cookie_name" mapstructure:"cookie_name"`
	IdleTTL    time.Duration `yaml:"idle_ttl" mapstructure:"idle_ttl"`
	Secure     bool          `yaml:"secure" mapstructure:"secure"`
}

// CacheConfig controls the in-memory image verdict cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// AnalysisConfig controls evaluator behaviour
type AnalysisConfig struct {
	// SimulatedDelay is an artificial pause before returning results (0 disables)
	SimulatedDelay time.Duration `yaml:"simulated_delay" mapstructure:"simulated_delay"`
	// Seed pins the random source when non-zero
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
	// MaxPixels rejects uploads whose width*height exceeds it before decoding
	MaxPixels int `yaml:"max_pixels" mapstructure:"max_pixels"`
	// Timeout bounds the heuristic scoring of one image (0 disables)
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// AuthorityConfig classifies scanned domains into authority tiers
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	PathPatterns     []PathPattern     `yaml:"path_patterns,omitempty" mapstructure:"path_patterns"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"`
}

// PathPattern maps a URL path regexp to a tier name
type PathPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Tier    string `yaml:"tier" mapstructure:"tier"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowOrigins:   []string{"http://localhost:3000", "http://localhost:8501"},
			MaxUploadBytes: 10 << 20,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   60 * time.Second,
			RateLimit: RateLimit{
				RequestsPerSecond: 5,
				Burst:             10,
			},
		},
		Session: SessionConfig{
			CookieName: "tb_session",
			IdleTTL:    24 * time.Hour,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             30 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Analysis: AnalysisConfig{
			MaxPixels: 16_000_000,
			Timeout:   30 * time.Second,
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"who.int",
				"cdc.gov",
				"nih.gov",
				"fda.gov",
				"cisa.gov",
				"europa.eu",
				"nature.com",
				"cochranelibrary.com",
				"doi.org",
			},
			SecondaryDomains: []string{
				"snopes.com",
				"factcheck.org",
				"politifact.com",
				"reuters.com",
				"apnews.com",
				"bbc.co.uk",
				"mediabiasfactcheck.com",
				"wikipedia.org",
			},
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
