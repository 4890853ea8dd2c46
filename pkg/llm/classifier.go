package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/Clapiton/socials/pkg/config"
	"github.com/Clapiton/socials/pkg/domain"
)

//go:generate moq -out mocks/chat_client.go -pkg mocks -skip-ensure -fmt goimports . ChatClient

// reason reported when every attempt failed
const failedReason = "classification failed"

// ChatClient is the part of the OpenAI client used by the classifier
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Classifier asks an LLM whether a post author is frustrated and needs help
type Classifier struct {
	client ChatClient
	config config.LLMConfig
	sleep  SleepFunc
}

// Option customizes a Classifier
type Option func(*Classifier)

// WithClient replaces the OpenAI client
func WithClient(client ChatClient) Option {
	return func(c *Classifier) { c.client = client }
}

// WithSleep replaces the backoff sleep, used by tests to skip real delays
func WithSleep(fn SleepFunc) Option {
	return func(c *Classifier) { c.sleep = fn }
}

// NewClassifier creates a new LLM classifier
func NewClassifier(cfg config.LLMConfig, opts ...Option) *Classifier {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	c := &Classifier{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		sleep:  sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SafeDefault is the verdict returned when the model could not be consulted
func SafeDefault() domain.Classification {
	return domain.Classification{IsFrustrated: false, Confidence: 0, Reason: failedReason, SuggestedService: "none"}
}

const systemPrompt = "You are a frustration detection assistant. Always respond with valid JSON only."

const userPromptTemplate = `You are an expert at detecting frustration and unmet needs in social media posts.

Analyze the following post and determine:
1. Is the author frustrated or struggling with a problem?
2. How confident are you (0.0 to 1.0)?
3. What is the core problem in one sentence?
4. Which of the available services could help them?

Rules:
- Only mark is_frustrated true when the author has a concrete problem someone could help with.
- Venting without an actionable need, jokes, and sarcasm are not frustration.
- If none of the services fit, use "none" for suggested_service.

Post:
"""
%s
"""

Available services the user offers: %s

Respond with ONLY valid JSON in this exact format:
{"is_frustrated": true, "confidence": 0.85, "reason": "one sentence", "suggested_service": "service name or none"}`

// Classify returns the verdict for one post. Transport failures and malformed answers are
// retried with a 2^attempt seconds backoff; when all attempts fail the safe default is returned.
func (c *Classifier) Classify(ctx context.Context, content, services, model string) domain.Classification {
	if model == "" {
		model = c.config.Model
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPromptTemplate, content, services)},
		},
	}
	if c.config.UseJSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	for attempt := 0; attempt < c.config.MaxAttempts; attempt++ {
		res, err := c.attempt(ctx, req)
		if err == nil {
			return res
		}
		lgr.Printf("[WARN] classification attempt %d/%d failed: %v", attempt+1, c.config.MaxAttempts, err)

		if attempt < c.config.MaxAttempts-1 {
			wait := time.Duration(1<<attempt) * time.Second
			lgr.Printf("[DEBUG] retrying classification in %v", wait)
			if err := c.sleep(ctx, wait); err != nil {
				lgr.Printf("[WARN] classification retry interrupted: %v", err)
				break
			}
		}
	}

	lgr.Printf("[ERROR] all classification attempts failed, returning safe default")
	return SafeDefault()
}

func (c *Classifier) attempt(ctx context.Context, req openai.ChatCompletionRequest) (domain.Classification, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.Classification{}, errors.New("no response from llm")
	}
	return parseResponse(resp.Choices[0].Message.Content)
}

// parseResponse decodes the model answer, tolerating markdown fences and surrounding prose
func parseResponse(text string) (domain.Classification, error) {
	text = stripFences(strings.TrimSpace(text))

	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return domain.Classification{}, fmt.Errorf("failed to parse json: %w", err)
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
			return domain.Classification{}, fmt.Errorf("failed to parse json: %w", err)
		}
	}
	if raw == nil {
		return domain.Classification{}, errors.New("failed to parse json: not an object")
	}

	res := domain.Classification{
		IsFrustrated:     toBool(raw["is_frustrated"]),
		Confidence:       clamp(toFloat(raw["confidence"])),
		Reason:           toString(raw["reason"], ""),
		SuggestedService: toString(raw["suggested_service"], "none"),
	}
	return res, nil
}

func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}

func toBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return strings.EqualFold(strings.TrimSpace(val), "yes")
		}
		return b
	}
	return false
}

func toFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if val {
			return 1
		}
	}
	return 0
}

func toString(v any, def string) string {
	switch val := v.(type) {
	case nil:
		return def
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
