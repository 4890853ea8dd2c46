// Package feed renders the lead queue as an RSS 2.0 feed.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/Clapiton/socials/pkg/domain"
)

// Generator creates RSS feeds from leads
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from leads, in the given order
func (g *Generator) GenerateRSS(leads []domain.Lead, minConfidence float64) (string, error) {
	rssItems := make([]*RSSItem, 0, len(leads))
	for _, lead := range leads {
		rssItems = append(rssItems, g.convertToRSSItem(lead))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         fmt.Sprintf("Socials - Leads (Confidence ≥ %.2f)", minConfidence),
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Frustrated posts classified with confidence ≥ %.2f", minConfidence),
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss/leads", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(lead domain.Lead) *RSSItem {
	desc := fmt.Sprintf("Confidence: %.2f - %s", lead.Confidence, lead.Reason)
	if lead.SuggestedService != "" && lead.SuggestedService != "none" {
		desc += "\nSuggested service: " + lead.SuggestedService
	}
	desc += fmt.Sprintf("\nStatus: %s", lead.Status)
	if lead.PostContent != "" {
		desc += "\n\n" + lead.PostContent
	}

	title := lead.PostTitle
	if title == "" {
		title = truncate(lead.PostContent, 80)
	}

	// posts imported by hand may have no url, link the lead itself then
	link := lead.PostURL
	if link == "" {
		link = fmt.Sprintf("%s/api/v1/leads/%d", g.baseURL, lead.ID)
	}

	categories := []string{lead.Platform}
	if lead.SuggestedService != "" && lead.SuggestedService != "none" {
		categories = append(categories, lead.SuggestedService)
	}

	return &RSSItem{
		Title:       fmt.Sprintf("[%.2f] %s", lead.Confidence, title),
		Link:        link,
		GUID:        GUID{Value: fmt.Sprintf("socials-lead-%d", lead.ID)},
		Description: desc,
		Author:      lead.Author,
		PubDate:     lead.CreatedAt.Format(time.RFC1123Z),
		Categories:  categories,
	}
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "..."
}
