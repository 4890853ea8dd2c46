package feed

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clapiton/socials/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://leads.example.com/")
	generator.now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }

	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	leads := []domain.Lead{
		{
			ID:               1,
			Confidence:       0.93,
			Reason:           "Cannot get invoices out on time",
			SuggestedService: "automation",
			Platform:         domain.PlatformReddit,
			Author:           "ann",
			PostTitle:        "Invoicing is killing me",
			PostContent:      "Every month I lose days on invoices",
			PostURL:          "https://reddit.com/r/freelance/1",
			Status:           domain.LeadNew,
			CreatedAt:        created,
		},
		{
			ID:               2,
			Confidence:       0.81,
			Reason:           "Wants help",
			SuggestedService: "none",
			Platform:         domain.PlatformManual,
			Author:           "manual",
			PostContent:      "My site is down and the agency vanished, what do I do now with all of this broken checkout code",
			Status:           domain.LeadContacted,
			CreatedAt:        created.Add(time.Hour),
		},
	}

	t.Run("channel", func(t *testing.T) {
		rss, err := generator.GenerateRSS(leads, 0.8)
		require.NoError(t, err)
		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>Socials - Leads (Confidence ≥ 0.80)</title>`)
		assert.Contains(t, rss, `<link>https://leads.example.com/</link>`)
		assert.Contains(t, rss, `href="https://leads.example.com/rss/leads"`)
		assert.Contains(t, rss, `<lastBuildDate>Thu, 01 Feb 2024 00:00:00 +0000</lastBuildDate>`)
	})

	t.Run("items", func(t *testing.T) {
		rss, err := generator.GenerateRSS(leads, 0.8)
		require.NoError(t, err)

		var parsed RSS
		require.NoError(t, xml.Unmarshal([]byte(rss), &parsed))
		require.Len(t, parsed.Channel.Items, 2)

		first := parsed.Channel.Items[0]
		assert.Equal(t, "[0.93] Invoicing is killing me", first.Title)
		assert.Equal(t, "https://reddit.com/r/freelance/1", first.Link)
		assert.Equal(t, "socials-lead-1", first.GUID.Value)
		assert.False(t, first.GUID.IsPermaLink)
		assert.Contains(t, first.Description, "Suggested service: automation")
		assert.Contains(t, first.Description, "Every month I lose days")
		assert.Equal(t, []string{"reddit", "automation"}, first.Categories)
		assert.Equal(t, "Mon, 01 Jan 2024 12:00:00 +0000", first.PubDate)

		second := parsed.Channel.Items[1]
		assert.Equal(t, "https://leads.example.com/api/v1/leads/2", second.Link)
		assert.Contains(t, second.Title, "[0.81] My site is down")
		assert.Contains(t, second.Title, "...")
		assert.NotContains(t, second.Description, "Suggested service")
		assert.Contains(t, second.Description, "Status: contacted")
		assert.Equal(t, []string{"manual"}, second.Categories)
	})

	t.Run("empty", func(t *testing.T) {
		rss, err := generator.GenerateRSS(nil, 0.5)
		require.NoError(t, err)
		assert.NotContains(t, rss, "<item>")
	})
}
