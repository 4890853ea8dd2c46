package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public base URL used in RSS links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:socials.db?_pragma=busy_timeout(5000)&_txlock=immediate,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		Enabled bool `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Run collect and analyze sweeps periodically in server mode"`
		Limit   int  `yaml:"limit" json:"limit" jsonschema:"default=25,description=Per-source collection limit for scheduled sweeps"`
		Batch   int  `yaml:"batch" json:"batch" jsonschema:"default=50,description=Analysis batch size for scheduled sweeps"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration (the interval comes from the poll_interval_minutes setting)"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for frustration classification"`

	Sources SourcesConfig `yaml:"sources" json:"sources" jsonschema:"description=Source adapters configuration"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration"`

	Notify NotifyConfig `yaml:"notify" json:"notify" jsonschema:"description=Lead notification webhook configuration"`
}

// LLMConfig holds LLM configuration for post classification
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.openai.com/v1,description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"description=Fallback model name when the llm_model setting is empty"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.1,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=300,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=3,minimum=1,description=Classification attempts before falling back to the safe default"`
	UseJSONMode bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
}

// SourcesConfig holds settings shared by source adapters and per-source endpoints
type SourcesConfig struct {
	UserAgent  string           `yaml:"user_agent" json:"user_agent" jsonschema:"default=Socials/1.0,description=User agent for source requests"`
	Timeout    time.Duration    `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=HTTP timeout per source request"`
	RateLimit  float64          `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=2,description=Maximum requests per second per source"`
	Apify      ApifyConfig      `yaml:"apify" json:"apify" jsonschema:"description=Apify actor settings"`
	Reddit     EndpointConfig   `yaml:"reddit" json:"reddit" jsonschema:"description=Reddit RSS settings"`
	HackerNews HackerNewsConfig `yaml:"hackernews" json:"hackernews" jsonschema:"description=Hacker News search settings"`
	DevTo      EndpointConfig   `yaml:"devto" json:"devto" jsonschema:"description=dev.to API settings"`
	Mastodon   struct {
		Scheme string `yaml:"scheme" json:"scheme" jsonschema:"default=https,enum=https,enum=http,description=Scheme used for instance URLs"`
	} `yaml:"mastodon" json:"mastodon" jsonschema:"description=Mastodon settings (instances come from the mastodon_instances setting)"`
}

// ApifyConfig holds Apify actor run settings
type ApifyConfig struct {
	Token        string        `yaml:"token" json:"token" jsonschema:"description=Apify API token (apify sources are skipped when empty)"`
	BaseURL      string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://api.apify.com/v2,description=Apify API base URL"`
	ActorTimeout time.Duration `yaml:"actor_timeout" json:"actor_timeout" jsonschema:"default=120s,description=Maximum time to wait for an actor run"`
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"default=5s,description=Actor run status poll interval"`
	DatasetLimit int           `yaml:"dataset_limit" json:"dataset_limit" jsonschema:"default=100,description=Maximum dataset items fetched per run"`
}

// HackerNewsConfig holds Algolia search settings
type HackerNewsConfig struct {
	URL        string `yaml:"url" json:"url" jsonschema:"description=Search endpoint override"`
	SearchType string `yaml:"search_type" json:"search_type" jsonschema:"default=story,enum=story,enum=comment,enum=all,description=Item kind to search"`
}

// EndpointConfig overrides a source base URL
type EndpointConfig struct {
	URL string `yaml:"url" json:"url" jsonschema:"description=Base URL override"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Extract article text for link-only posts"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Socials/1.0),description=User agent for extraction requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum text length to consider valid"`
}

// NotifyConfig holds webhook delivery settings
type NotifyConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Webhook delivery timeout"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration with environment expansion, applies defaults and validates it
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when no config file is given
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:socials.db?_pragma=busy_timeout(5000)&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Schedule.Limit == 0 {
		c.Schedule.Limit = 25
	}
	if c.Schedule.Batch == 0 {
		c.Schedule.Batch = 50
	}

	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = "https://api.openai.com/v1"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.1
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}
	if c.LLM.MaxAttempts == 0 {
		c.LLM.MaxAttempts = 3
	}

	if c.Sources.UserAgent == "" {
		c.Sources.UserAgent = "Socials/1.0"
	}
	if c.Sources.Timeout == 0 {
		c.Sources.Timeout = 15 * time.Second
	}
	if c.Sources.RateLimit == 0 {
		c.Sources.RateLimit = 2
	}
	if c.Sources.Apify.BaseURL == "" {
		c.Sources.Apify.BaseURL = "https://api.apify.com/v2"
	}
	if c.Sources.Apify.ActorTimeout == 0 {
		c.Sources.Apify.ActorTimeout = 120 * time.Second
	}
	if c.Sources.Apify.PollInterval == 0 {
		c.Sources.Apify.PollInterval = 5 * time.Second
	}
	if c.Sources.Apify.DatasetLimit == 0 {
		c.Sources.Apify.DatasetLimit = 100
	}
	if c.Sources.HackerNews.SearchType == "" {
		c.Sources.HackerNews.SearchType = "story"
	}
	if c.Sources.Mastodon.Scheme == "" {
		c.Sources.Mastodon.Scheme = "https"
	}

	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = "Mozilla/5.0 (compatible; Socials/1.0)"
	}
	if c.Extraction.MinTextLength == 0 {
		c.Extraction.MinTextLength = 100
	}

	if c.Notify.Timeout == 0 {
		c.Notify.Timeout = 10 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxAttempts < 1 {
		return fmt.Errorf("llm.max_attempts must be at least 1")
	}
	if cfg.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}

	if cfg.Sources.RateLimit < 0 {
		return fmt.Errorf("sources.rate_limit must be non-negative")
	}
	if cfg.Sources.Timeout < time.Second {
		return fmt.Errorf("sources.timeout must be at least 1 second")
	}
	if cfg.Sources.Apify.PollInterval > cfg.Sources.Apify.ActorTimeout {
		return fmt.Errorf("sources.apify.poll_interval must not exceed sources.apify.actor_timeout")
	}
	switch cfg.Sources.HackerNews.SearchType {
	case "story", "comment", "all":
	default:
		return fmt.Errorf("sources.hackernews.search_type must be story, comment or all, got %q", cfg.Sources.HackerNews.SearchType)
	}
	if s := cfg.Sources.Mastodon.Scheme; s != "https" && s != "http" {
		return fmt.Errorf("sources.mastodon.scheme must be http or https, got %q", s)
	}

	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return fmt.Errorf("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction min_text_length must be non-negative")
		}
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Schedule.Limit < 1 || cfg.Schedule.Batch < 1 {
		return fmt.Errorf("schedule.limit and schedule.batch must be positive")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// Secrets returns credentials that must never appear in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.LLM.APIKey, c.Sources.Apify.Token} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}
