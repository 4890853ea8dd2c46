package domain

import "time"

// Platform tags of supported sources
const (
	PlatformReddit     = "reddit"
	PlatformTwitter    = "twitter"
	PlatformFacebook   = "facebook"
	PlatformHackerNews = "hackernews"
	PlatformMastodon   = "mastodon"
	PlatformDevTo      = "devto"
	PlatformManual     = "manual"
)

// RawPost is one normalized item fetched from a source.
// (Platform, PostID) is unique across the store.
type RawPost struct {
	ID          int64     `json:"id"`
	Platform    string    `json:"platform"`
	PostID      string    `json:"post_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	URL         string    `json:"url"`
	Score       int       `json:"score"`
	Group       string    `json:"group"`
	CollectedAt time.Time `json:"collected_at"`
}

// Text returns title and content joined, used for keyword and sentiment checks
func (p RawPost) Text() string {
	switch {
	case p.Title == "":
		return p.Content
	case p.Content == "":
		return p.Title
	default:
		return p.Title + "\n" + p.Content
	}
}

// Classification is the verdict returned by the frustration classifier
type Classification struct {
	IsFrustrated     bool    `json:"is_frustrated"`
	Confidence       float64 `json:"confidence"`
	Reason           string  `json:"reason"`
	SuggestedService string  `json:"suggested_service"`
}

// AnalyzedPost is the terminal analysis record of exactly one RawPost.
// SentimentScore is nil when sentiment was not computed.
type AnalyzedPost struct {
	ID               int64     `json:"id"`
	RawPostID        int64     `json:"raw_post_id"`
	IsFrustrated     bool      `json:"is_frustrated"`
	Confidence       float64   `json:"confidence"`
	Reason           string    `json:"reason"`
	SuggestedService string    `json:"suggested_service"`
	SentimentScore   *float64  `json:"sentiment_score,omitempty"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
}

// AnalyzedPostWithRaw joins an analysis with the post it describes
type AnalyzedPostWithRaw struct {
	AnalyzedPost
	Post RawPost `json:"post"`
}

// LeadStatus is the outreach workflow state of a lead
type LeadStatus string

// lead workflow states
const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadReplied   LeadStatus = "replied"
	LeadConverted LeadStatus = "converted"
	LeadDismissed LeadStatus = "dismissed"
)

// Valid reports whether the status is a known workflow state
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadReplied, LeadConverted, LeadDismissed:
		return true
	}
	return false
}

// Lead is a denormalized, outreach-ready record, at most one per AnalyzedPost
type Lead struct {
	ID               int64      `json:"id"`
	AnalyzedPostID   int64      `json:"analyzed_post_id"`
	RawPostID        int64      `json:"raw_post_id"`
	Confidence       float64    `json:"confidence"`
	Reason           string     `json:"reason"`
	SuggestedService string     `json:"suggested_service"`
	SentimentScore   *float64   `json:"sentiment_score,omitempty"`
	Platform         string     `json:"platform"`
	Author           string     `json:"author"`
	PostTitle        string     `json:"post_title"`
	PostContent      string     `json:"post_content"`
	PostURL          string     `json:"post_url"`
	Status           LeadStatus `json:"status"`
	OutreachSubject  string     `json:"outreach_subject,omitempty"`
	OutreachBody     string     `json:"outreach_body,omitempty"`
	ContactEmail     string     `json:"contact_email,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewLead builds a lead in the "new" state from an analysis and its post
func NewLead(a AnalyzedPost, p RawPost) Lead {
	return Lead{
		AnalyzedPostID:   a.ID,
		RawPostID:        p.ID,
		Confidence:       a.Confidence,
		Reason:           a.Reason,
		SuggestedService: a.SuggestedService,
		SentimentScore:   a.SentimentScore,
		Platform:         p.Platform,
		Author:           p.Author,
		PostTitle:        p.Title,
		PostContent:      p.Content,
		PostURL:          p.URL,
		Status:           LeadNew,
	}
}

// Outreach is one logged contact attempt for an analyzed post
type Outreach struct {
	ID               int64     `json:"id"`
	AnalyzedPostID   int64     `json:"analyzed_post_id"`
	Channel          string    `json:"channel"`
	MessageSent      string    `json:"message_sent"`
	Status           string    `json:"status"`
	ResponseReceived string    `json:"response_received,omitempty"`
	SentAt           time.Time `json:"sent_at"`
}

// outreach states
const (
	OutreachDrafted = "drafted"
	OutreachSent    = "sent"
	OutreachReplied = "replied"
)

// PostFilter selects a page of raw posts
type PostFilter struct {
	Platform string
	Limit    int
	Offset   int
}

// LeadFilter selects a page of leads
type LeadFilter struct {
	Status        LeadStatus
	MinConfidence float64
	Limit         int
	Offset        int
}

// Stats is the dashboard summary of the store
type Stats struct {
	TotalPosts      int     `json:"total_posts"`
	TotalAnalyzed   int     `json:"total_analyzed"`
	TotalFrustrated int     `json:"total_frustrated"`
	TotalLeads      int     `json:"total_leads"`
	TotalOutreach   int     `json:"total_outreach"`
	ResponseRate    float64 `json:"response_rate"`
}
