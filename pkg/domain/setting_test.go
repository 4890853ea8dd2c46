package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Accessors(t *testing.T) {
	s := Settings{}
	for k, v := range DefaultSettings {
		s[k] = v
	}

	assert.Equal(t, []string{"freelance", "webdev", "forhire", "smallbusiness", "startups"}, s.Subreddits())
	assert.Len(t, s.Keywords(), 10)
	assert.Contains(t, s.Keywords(), "can't figure out")
	assert.Equal(t, "web development, automation, design, consulting", s.Services())
	assert.Equal(t, []string{"mastodon.social", "fosstodon.org", "techhub.social"}, s.MastodonInstances())
	assert.Equal(t, "gpt-4o-mini", s.Model())
	assert.Empty(t, s.WebhookURL())

	ct, err := s.ConfidenceThreshold()
	require.NoError(t, err)
	assert.InDelta(t, 0.8, ct, 1e-9)

	st, err := s.SentimentThreshold()
	require.NoError(t, err)
	assert.InDelta(t, -0.05, st, 1e-9)

	pi, err := s.PollInterval()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, pi)
}

func TestSettings_Malformed(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
		call func(Settings) error
		err  string
	}{
		{name: "confidence not a number", s: Settings{SettingConfidenceThreshold: "high"},
			call: func(s Settings) error { _, err := s.ConfidenceThreshold(); return err }, err: "not a number"},
		{name: "confidence out of range", s: Settings{SettingConfidenceThreshold: "1.5"},
			call: func(s Settings) error { _, err := s.ConfidenceThreshold(); return err }, err: "between 0 and 1"},
		{name: "confidence NaN", s: Settings{SettingConfidenceThreshold: "NaN"},
			call: func(s Settings) error { _, err := s.ConfidenceThreshold(); return err }, err: "not a finite number"},
		{name: "sentiment infinite", s: Settings{SettingSentimentThreshold: "-Inf"},
			call: func(s Settings) error { _, err := s.SentimentThreshold(); return err }, err: "not a finite number"},
		{name: "sentiment missing", s: Settings{},
			call: func(s Settings) error { _, err := s.SentimentThreshold(); return err }, err: "not a number"},
		{name: "poll interval zero", s: Settings{SettingPollInterval: "0"},
			call: func(s Settings) error { _, err := s.PollInterval(); return err }, err: "must be positive"},
		{name: "poll interval text", s: Settings{SettingPollInterval: "ten"},
			call: func(s Settings) error { _, err := s.PollInterval(); return err }, err: "not an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(tt.s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
	assert.Equal(t, []string{"a", "b c"}, SplitList(" a, ,b c ,"))
}

func TestRawPost_Text(t *testing.T) {
	assert.Equal(t, "title", RawPost{Title: "title"}.Text())
	assert.Equal(t, "body", RawPost{Content: "body"}.Text())
	assert.Equal(t, "title\nbody", RawPost{Title: "title", Content: "body"}.Text())
}

func TestLeadStatus_Valid(t *testing.T) {
	assert.True(t, LeadNew.Valid())
	assert.True(t, LeadDismissed.Valid())
	assert.False(t, LeadStatus("bogus").Valid())
}
