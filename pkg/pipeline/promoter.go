package pipeline

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/Clapiton/socials/pkg/domain"
)

// Promoter turns confident frustrated analyses into leads, once per analysis
type Promoter struct {
	leads    LeadStore
	notifier Notifier
}

// NewPromoter makes a promoter. Notifier may be nil to skip notifications.
func NewPromoter(leads LeadStore, notifier Notifier) *Promoter {
	return &Promoter{leads: leads, notifier: notifier}
}

// MaybePromote creates a lead when the analysis is frustrated with confidence at
// or above threshold. Returns nil lead without error when the analysis does not
// qualify or its lead already exists. A new lead is announced to webhookURL
// in the background, delivery outcome never reaches the caller.
func (p *Promoter) MaybePromote(ctx context.Context, analyzed domain.AnalyzedPost, post domain.RawPost,
	threshold float64, webhookURL string) (*domain.Lead, error) {
	if !analyzed.IsFrustrated || analyzed.Confidence < threshold {
		return nil, nil
	}
	if analyzed.ID == 0 {
		return nil, fmt.Errorf("promote post %d: analysis is not stored", post.ID)
	}

	lead, err := p.leads.CreateLead(ctx, domain.NewLead(analyzed, post))
	if err != nil {
		return nil, fmt.Errorf("create lead for analysis %d: %w", analyzed.ID, err)
	}
	if lead == nil {
		lgr.Printf("[DEBUG] lead for analysis %d already exists", analyzed.ID)
		return nil, nil
	}

	lgr.Printf("[INFO] new lead %d from %s post %d, confidence %.2f", lead.ID, post.Platform, post.ID, lead.Confidence)
	if p.notifier != nil && webhookURL != "" {
		p.notifier.Notify(webhookURL, lead.ID)
	}
	return lead, nil
}
