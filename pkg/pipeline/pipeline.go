// Package pipeline runs stored posts through the sentiment pre-filter and the
// frustration classifier, records one analysis per post and promotes leads.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/repository"
)

//go:generate moq -out mocks/post_store.go -pkg mocks -skip-ensure -fmt goimports . PostStore
//go:generate moq -out mocks/analysis_store.go -pkg mocks -skip-ensure -fmt goimports . AnalysisStore
//go:generate moq -out mocks/lead_store.go -pkg mocks -skip-ensure -fmt goimports . LeadStore
//go:generate moq -out mocks/settings_store.go -pkg mocks -skip-ensure -fmt goimports . SettingsStore
//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// ErrNoClassifier is returned when a sweep is started without a classifier
var ErrNoClassifier = errors.New("classifier is not configured")

// PostStore provides posts which have no analysis yet
type PostStore interface {
	GetUnanalyzedPosts(ctx context.Context, limit int) ([]domain.RawPost, error)
}

// AnalysisStore records analyses
type AnalysisStore interface {
	CreateAnalysis(ctx context.Context, a *domain.AnalyzedPost) error
}

// LeadStore records leads, nil result means the lead already exists
type LeadStore interface {
	CreateLead(ctx context.Context, lead domain.Lead) (*domain.Lead, error)
}

// SettingsStore provides the settings snapshot
type SettingsStore interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
}

// Classifier decides whether a post is a frustrated request for help
type Classifier interface {
	Classify(ctx context.Context, content, services, model string) domain.Classification
}

// Scorer gives a sentiment score in [-1, 1]
type Scorer interface {
	Score(text string) float64
}

// Notifier announces new leads without blocking
type Notifier interface {
	Notify(url string, leadID int64)
}

// Progress receives per-post progress of a running analysis
type Progress interface {
	SetTotal(taskType string, total int, message string)
	Update(taskType string, current int, message string)
}

// Params contains the dependencies of the pipeline
type Params struct {
	Posts      PostStore
	Analyses   AnalysisStore
	Settings   SettingsStore
	Scorer     Scorer
	Classifier Classifier
	Promoter   *Promoter
	Progress   Progress // optional
}

// Pipeline is the analysis driver
type Pipeline struct {
	Params
}

// New makes a pipeline. Classifier may be nil, Run fails in that case.
func New(params Params) *Pipeline {
	return &Pipeline{Params: params}
}

// runSettings is the part of settings a single sweep depends on
type runSettings struct {
	sentimentThreshold  float64
	confidenceThreshold float64
	services            string
	model               string
	webhookURL          string
}

// Run analyzes up to limit unanalyzed posts, most recently collected first.
// Errors of a single post are counted and never abort the batch, only missing
// classifier, bad settings or a failed batch read are returned.
func (p *Pipeline) Run(ctx context.Context, limit int) (domain.AnalysisStats, error) {
	var stats domain.AnalysisStats
	if p.Classifier == nil {
		return stats, ErrNoClassifier
	}

	rs, err := p.loadSettings(ctx)
	if err != nil {
		return stats, err
	}

	posts, err := p.Posts.GetUnanalyzedPosts(ctx, limit)
	if err != nil {
		return stats, fmt.Errorf("get unanalyzed posts: %w", err)
	}
	stats.Fetched = len(posts)
	if len(posts) == 0 {
		lgr.Printf("[INFO] no unanalyzed posts found")
		return stats, nil
	}

	lgr.Printf("[INFO] analyzing %d posts with model %s", len(posts), rs.model)
	p.setTotal(len(posts), fmt.Sprintf("Analyzing %d posts", len(posts)))

	for i, post := range posts {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("analysis interrupted: %w", err)
		}
		p.update(i, fmt.Sprintf("Analyzing post %d/%d", i+1, len(posts)))
		if err := p.process(ctx, post, rs, &stats); err != nil {
			lgr.Printf("[ERROR] failed to analyze post %d: %v", post.ID, err)
			stats.Errors++
		}
	}
	p.update(len(posts), fmt.Sprintf("Analyzed %d posts", len(posts)))

	lgr.Printf("[INFO] analysis complete, fetched: %d, sentiment passed: %d, sentiment skipped: %d, "+
		"frustrated: %d, not frustrated: %d, leads: %d, errors: %d",
		stats.Fetched, stats.SentimentPassed, stats.SentimentSkipped,
		stats.Frustrated, stats.NotFrustrated, stats.LeadsCreated, stats.Errors)
	return stats, nil
}

func (p *Pipeline) loadSettings(ctx context.Context) (runSettings, error) {
	settings, err := p.Settings.GetSettings(ctx)
	if err != nil {
		return runSettings{}, fmt.Errorf("get settings: %w", err)
	}
	sentiment, err := settings.SentimentThreshold()
	if err != nil {
		return runSettings{}, err
	}
	confidence, err := settings.ConfidenceThreshold()
	if err != nil {
		return runSettings{}, err
	}
	return runSettings{
		sentimentThreshold:  sentiment,
		confidenceThreshold: confidence,
		services:            settings.Services(),
		model:               settings.Model(),
		webhookURL:          settings.WebhookURL(),
	}, nil
}

func (p *Pipeline) process(ctx context.Context, post domain.RawPost, rs runSettings, stats *domain.AnalysisStats) error {
	text := post.Content
	if strings.TrimSpace(text) == "" {
		text = post.Title
	}
	if strings.TrimSpace(text) == "" {
		lgr.Printf("[DEBUG] skip empty post %d", post.ID)
		return nil
	}

	score := p.Scorer.Score(text)
	if score > rs.sentimentThreshold {
		analyzed := &domain.AnalyzedPost{
			RawPostID:        post.ID,
			IsFrustrated:     false,
			Confidence:       0,
			Reason:           fmt.Sprintf("filtered by sentiment (score: %.3f)", score),
			SuggestedService: "none",
			SentimentScore:   &score,
		}
		stored, err := p.record(ctx, analyzed)
		if err != nil || !stored {
			return err
		}
		stats.SentimentSkipped++
		return nil
	}
	stats.SentimentPassed++

	verdict := p.Classifier.Classify(ctx, text, rs.services, rs.model)
	analyzed := &domain.AnalyzedPost{
		RawPostID:        post.ID,
		IsFrustrated:     verdict.IsFrustrated,
		Confidence:       verdict.Confidence,
		Reason:           verdict.Reason,
		SuggestedService: verdict.SuggestedService,
		SentimentScore:   &score,
	}
	stored, err := p.record(ctx, analyzed)
	if err != nil || !stored {
		return err
	}

	if !verdict.IsFrustrated {
		stats.NotFrustrated++
		return nil
	}
	stats.Frustrated++
	lgr.Printf("[INFO] frustrated post %d, confidence %.2f, %s", post.ID, verdict.Confidence, head(verdict.Reason, 80))

	if p.Promoter == nil {
		return nil
	}
	lead, err := p.Promoter.MaybePromote(ctx, *analyzed, post, rs.confidenceThreshold, rs.webhookURL)
	if err != nil {
		return err
	}
	if lead != nil {
		stats.LeadsCreated++
	}
	return nil
}

// record stores the analysis. A concurrent sweep which got there first is not
// an error, stored is false in that case and the post needs nothing else.
func (p *Pipeline) record(ctx context.Context, a *domain.AnalyzedPost) (stored bool, err error) {
	err = p.Analyses.CreateAnalysis(ctx, a)
	if errors.Is(err, repository.ErrAlreadyAnalyzed) {
		lgr.Printf("[DEBUG] post %d already analyzed", a.RawPostID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("record analysis: %w", err)
	}
	return true, nil
}

func (p *Pipeline) setTotal(total int, msg string) {
	if p.Progress != nil {
		p.Progress.SetTotal(domain.TaskAnalyze, total, msg)
	}
}

func (p *Pipeline) update(current int, msg string) {
	if p.Progress != nil {
		p.Progress.Update(domain.TaskAnalyze, current, msg)
	}
}

func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
