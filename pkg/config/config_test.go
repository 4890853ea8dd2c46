package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s
  base_url: https://leads.example.com

llm:
  endpoint: http://localhost:11434/v1
  api_key: ${SOCIALS_TEST_KEY}
  model: llama3
  max_attempts: 5

sources:
  rate_limit: 0.5
  apify:
    token: apify-token
    actor_timeout: 60s
    poll_interval: 2s

schedule:
  enabled: true
  limit: 10
`
		t.Setenv("SOCIALS_TEST_KEY", "secret-key")
		configPath := filepath.Join(t.TempDir(), "test-config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://leads.example.com", cfg.Server.BaseURL)
		assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.Endpoint)
		assert.Equal(t, "secret-key", cfg.LLM.APIKey)
		assert.Equal(t, 5, cfg.LLM.MaxAttempts)
		assert.InDelta(t, 0.5, cfg.Sources.RateLimit, 1e-9)
		assert.Equal(t, "apify-token", cfg.Sources.Apify.Token)
		assert.Equal(t, 60*time.Second, cfg.Sources.Apify.ActorTimeout)
		assert.Equal(t, 2*time.Second, cfg.Sources.Apify.PollInterval)
		assert.True(t, cfg.Schedule.Enabled)
		assert.Equal(t, 10, cfg.Schedule.Limit)
		assert.Equal(t, 50, cfg.Schedule.Batch)
		assert.ElementsMatch(t, []string{"secret-key", "apify-token"}, cfg.Secrets())
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Parse([]byte("server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.Endpoint)
		assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-9)
		assert.Equal(t, 300, cfg.LLM.MaxTokens)
		assert.Equal(t, 3, cfg.LLM.MaxAttempts)
		assert.Equal(t, 15*time.Second, cfg.Sources.Timeout)
		assert.Equal(t, 120*time.Second, cfg.Sources.Apify.ActorTimeout)
		assert.Equal(t, 5*time.Second, cfg.Sources.Apify.PollInterval)
		assert.Equal(t, 100, cfg.Sources.Apify.DatasetLimit)
		assert.Equal(t, "https", cfg.Sources.Mastodon.Scheme)
		assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
		assert.Empty(t, cfg.Secrets())
	})

	t.Run("default matches empty file", func(t *testing.T) {
		cfg, err := Parse([]byte(""))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("server: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{name: "valid", modify: func(*Config) {}},
		{name: "temperature too high", modify: func(c *Config) { c.LLM.Temperature = 3 },
			errMsg: "llm.temperature"},
		{name: "negative attempts", modify: func(c *Config) { c.LLM.MaxAttempts = -1 },
			errMsg: "llm.max_attempts"},
		{name: "negative rate limit", modify: func(c *Config) { c.Sources.RateLimit = -1 },
			errMsg: "sources.rate_limit"},
		{name: "short source timeout", modify: func(c *Config) { c.Sources.Timeout = 10 * time.Millisecond },
			errMsg: "sources.timeout"},
		{name: "poll longer than actor timeout", modify: func(c *Config) { c.Sources.Apify.PollInterval = time.Hour },
			errMsg: "poll_interval"},
		{name: "bad mastodon scheme", modify: func(c *Config) { c.Sources.Mastodon.Scheme = "ftp" },
			errMsg: "sources.mastodon.scheme"},
		{name: "short extraction timeout", modify: func(c *Config) {
			c.Extraction.Enabled = true
			c.Extraction.Timeout = time.Millisecond
		}, errMsg: "extraction timeout"},
		{name: "short server timeout", modify: func(c *Config) { c.Server.Timeout = time.Millisecond },
			errMsg: "server timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := validate(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Getters(t *testing.T) {
	cfg := Default()
	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":8080", listen)
	assert.Equal(t, 30*time.Second, timeout)
	assert.Equal(t, cfg.LLM, cfg.GetLLMConfig())
}
