package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// setting keys
const (
	SettingSubreddits          = "subreddits"
	SettingServices            = "services"
	SettingConfidenceThreshold = "confidence_threshold"
	SettingLLMModel            = "llm_model"
	SettingPollInterval        = "poll_interval_minutes"
	SettingSentimentThreshold  = "sentiment_threshold"
	SettingKeywords            = "frustration_keywords"
	SettingMastodonInstances   = "mastodon_instances"
	SettingWebhookURL          = "n8n_webhook_url"
)

// DefaultSettings seeds missing keys on first read
var DefaultSettings = map[string]string{
	SettingSubreddits:          "freelance,webdev,forhire,smallbusiness,startups",
	SettingServices:            "web development,automation,design,consulting",
	SettingConfidenceThreshold: "0.8",
	SettingLLMModel:            "gpt-4o-mini",
	SettingPollInterval:        "10",
	SettingSentimentThreshold:  "-0.05",
	SettingKeywords: "frustrated,stuck,can't figure out,need help with,struggling,impossible," +
		"giving up,so hard,anyone know how,desperate",
	SettingMastodonInstances: "mastodon.social,fosstodon.org,techhub.social",
	SettingWebhookURL:        "",
}

// Setting represents a stored key-value setting
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Settings is the flat key-value settings snapshot read at the start of a sweep
type Settings map[string]string

// Keywords returns the frustration keyword list
func (s Settings) Keywords() []string { return SplitList(s[SettingKeywords]) }

// Subreddits returns subreddit names
func (s Settings) Subreddits() []string { return SplitList(s[SettingSubreddits]) }

// Services returns the services offered, as a comma separated string for prompts
func (s Settings) Services() string { return strings.Join(SplitList(s[SettingServices]), ", ") }

// MastodonInstances returns mastodon instance hosts
func (s Settings) MastodonInstances() []string { return SplitList(s[SettingMastodonInstances]) }

// Model returns the classification model name
func (s Settings) Model() string { return strings.TrimSpace(s[SettingLLMModel]) }

// WebhookURL returns the lead notification URL, empty if disabled
func (s Settings) WebhookURL() string { return strings.TrimSpace(s[SettingWebhookURL]) }

// ConfidenceThreshold returns the minimal classifier confidence for promotion
func (s Settings) ConfidenceThreshold() (float64, error) {
	v, err := s.float(SettingConfidenceThreshold)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("setting %s must be between 0 and 1, got %v", SettingConfidenceThreshold, v)
	}
	return v, nil
}

// SentimentThreshold returns the maximal sentiment score a post may have to reach the classifier
func (s Settings) SentimentThreshold() (float64, error) {
	v, err := s.float(SettingSentimentThreshold)
	if err != nil {
		return 0, err
	}
	if v < -1 || v > 1 {
		return 0, fmt.Errorf("setting %s must be between -1 and 1, got %v", SettingSentimentThreshold, v)
	}
	return v, nil
}

// PollInterval returns the scheduler interval
func (s Settings) PollInterval() (time.Duration, error) {
	raw := strings.TrimSpace(s[SettingPollInterval])
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("setting %s is not an integer: %q", SettingPollInterval, raw)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("setting %s must be positive, got %d", SettingPollInterval, minutes)
	}
	return time.Duration(minutes) * time.Minute, nil
}

func (s Settings) float(key string) (float64, error) {
	raw := strings.TrimSpace(s[key])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s is not a number: %q", key, raw)
	}
	// ParseFloat accepts NaN and Inf, both slip through range checks
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("setting %s is not a finite number: %q", key, raw)
	}
	return v, nil
}

// SplitList splits a comma separated value, trimming blanks and dropping empty entries
func SplitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
