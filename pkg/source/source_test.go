package source

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/source/mocks"
)

type fakeAdapter struct {
	posts []domain.RawPost
	err   error
}

func (f *fakeAdapter) Name() string     { return "fake" }
func (f *fakeAdapter) Platform() string { return "test" }
func (f *fakeAdapter) Fetch(context.Context, Request) ([]domain.RawPost, error) {
	return f.posts, f.err
}

// memorySink dedupes on platform+post id like the real store
func memorySink() *mocks.SinkMock {
	seen := map[string]bool{}
	var id int64
	return &mocks.SinkMock{
		InsertPostFunc: func(ctx context.Context, post domain.RawPost) (*domain.RawPost, error) {
			key := post.Platform + "/" + post.PostID
			if seen[key] {
				return nil, nil
			}
			seen[key] = true
			id++
			post.ID = id
			return &post, nil
		},
	}
}

func TestCollect(t *testing.T) {
	adapter := &fakeAdapter{posts: []domain.RawPost{
		{Platform: "test", PostID: "1", Title: "I am so frustrated with my CI", Content: "builds fail daily"},
		{Platform: "test", PostID: "2", Content: "Frustrated by invoices again"},
		{Platform: "test", PostID: "3", Title: "Nice weather", Content: "sunny all week"},
	}}
	sink := memorySink()

	stats := Collect(context.Background(), adapter, sink, Request{Keywords: []string{"frustrated"}})
	assert.Equal(t, domain.CollectionStats{Platform: "test", Source: "fake", Fetched: 3, Inserted: 2, Filtered: 1}, stats)
	require.Len(t, sink.InsertPostCalls(), 2)
	assert.Equal(t, "1", sink.InsertPostCalls()[0].Post.PostID)
	assert.Equal(t, "2", sink.InsertPostCalls()[1].Post.PostID)

	// second run over the same posts only finds duplicates
	stats = Collect(context.Background(), adapter, sink, Request{Keywords: []string{"frustrated"}})
	assert.Equal(t, 0, stats.Inserted)
	assert.Equal(t, 2, stats.Duplicates)
	assert.Equal(t, 1, stats.Filtered)
}

func TestCollect_NoKeywordsNoFilter(t *testing.T) {
	adapter := &fakeAdapter{posts: []domain.RawPost{
		{Platform: "test", PostID: "1", Content: "anything"},
		{Platform: "test", PostID: "2", Title: "  ", Content: " "},
	}}
	stats := Collect(context.Background(), adapter, memorySink(), Request{})
	assert.Equal(t, 2, stats.Fetched)
	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 1, stats.Filtered, "empty text is never stored")
}

func TestCollect_SinkErrors(t *testing.T) {
	adapter := &fakeAdapter{posts: []domain.RawPost{
		{Platform: "test", PostID: "1", Content: "one"},
		{Platform: "test", PostID: "2", Content: "two"},
	}}
	sink := &mocks.SinkMock{InsertPostFunc: func(ctx context.Context, post domain.RawPost) (*domain.RawPost, error) {
		if post.PostID == "1" {
			return nil, errors.New("disk full")
		}
		return &post, nil
	}}

	stats := Collect(context.Background(), adapter, sink, Request{})
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 1, stats.Inserted)
	assert.Empty(t, stats.Error)
}

func TestCollect_FetchFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantSkipped bool
		wantError   string
	}{
		{name: "not configured", err: fmt.Errorf("token empty: %w", ErrNotConfigured), wantSkipped: true, wantError: "token empty: source not configured"},
		{name: "status", err: &StatusError{URL: "http://x", Code: 503}, wantSkipped: true, wantError: "unexpected status 503 from http://x"},
		{name: "transport", err: errors.New("connection refused"), wantError: "connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := memorySink()
			stats := Collect(context.Background(), &fakeAdapter{err: tt.err}, sink, Request{})
			assert.Equal(t, tt.wantSkipped, stats.Skipped)
			assert.Equal(t, tt.wantError, stats.Error)
			assert.Zero(t, stats.Fetched)
			assert.Zero(t, stats.Inserted)
			assert.Empty(t, sink.InsertPostCalls())
		})
	}
}

func TestMatchesKeywords(t *testing.T) {
	tests := []struct {
		text     string
		keywords []string
		want     bool
	}{
		{"I'm SO Frustrated", []string{"frustrated"}, true},
		{"need help with taxes", []string{"frustrated", "Need Help"}, true},
		{"all good here", []string{"frustrated", "help"}, false},
		{"anything", nil, true},
		{"anything", []string{" ", ""}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesKeywords(tt.text, tt.keywords), "%q %v", tt.text, tt.keywords)
	}
}

func TestNormalizer_Map(t *testing.T) {
	norm := NewNormalizer(func() time.Time { return time.Unix(1700000000, 0) })
	rules := []FieldRule{
		{Path: "id", Field: FieldPostID},
		{Path: "text", Field: FieldContent},
		{Path: "full_text", Field: FieldContent},
		{Path: "author.userName", Field: FieldAuthor},
		{Path: "author.name", Field: FieldAuthor},
		{Path: "likeCount", Field: FieldScore},
		{Path: "missing.deep.path", Field: FieldURL},
	}

	t.Run("nested and first non-empty", func(t *testing.T) {
		item := map[string]any{
			"id":        "1790000000000000001",
			"text":      "",
			"full_text": "my laptop died again",
			"author":    map[string]any{"userName": "", "name": "Jane"},
			"likeCount": 12.0,
		}
		post := norm.Map(item, "twitter", rules)
		assert.Equal(t, domain.RawPost{
			Platform: "twitter", PostID: "1790000000000000001", Content: "my laptop died again", Author: "Jane", Score: 12,
		}, post)
	})

	t.Run("numbers coerced", func(t *testing.T) {
		var item map[string]any
		require.NoError(t, decodeJSON([]byte(`{"id": 1790000000000000001, "text": "x", "likeCount": "7"}`), &item))
		post := norm.Map(item, "twitter", rules)
		assert.Equal(t, "1790000000000000001", post.PostID)
		assert.Equal(t, 7, post.Score)
	})

	t.Run("truncated", func(t *testing.T) {
		long := make([]rune, 2500)
		for i := range long {
			long[i] = 'ж'
		}
		item := map[string]any{"title": string(long), "text": string(long)}
		post := norm.Map(item, "x", []FieldRule{{Path: "title", Field: FieldTitle}, {Path: "text", Field: FieldContent}})
		assert.Len(t, []rune(post.Title), 500)
		assert.Len(t, []rune(post.Content), 2000)
	})
}

func TestNormalizer_FallbackID(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	norm := NewNormalizer(func() time.Time { return clock })

	id1 := norm.FallbackID("facebook", "https://fb.com/p/1", "content", "title")
	id2 := norm.FallbackID("facebook", "https://fb.com/p/1", "other content", "other")
	assert.Equal(t, id1, id2, "url wins over content and title")
	assert.Regexp(t, `^facebook-[0-9a-f]{12}$`, id1)

	assert.NotEqual(t, id1, norm.FallbackID("twitter", "https://fb.com/p/1", "", ""), "platform prefix differs")
	assert.Equal(t, norm.FallbackID("manual", "", "same text", ""), norm.FallbackID("manual", "", "same text", "t"))
	assert.NotEqual(t, norm.FallbackID("manual", "", "text a", ""), norm.FallbackID("manual", "", "text b", ""))

	// time based branch is stable only while the clock is
	timeID := norm.FallbackID("manual", "", "", "")
	assert.Equal(t, timeID, norm.FallbackID("manual", "", "", ""))
	clock = clock.Add(time.Second)
	assert.NotEqual(t, timeID, norm.FallbackID("manual", "", "", ""))
}

func TestNormalizer_MapAssignsFallbackID(t *testing.T) {
	norm := NewNormalizer(nil)
	post := norm.Map(map[string]any{"url": "https://example.com/a", "text": "hello"}, "facebook",
		[]FieldRule{{Path: "postId", Field: FieldPostID}, {Path: "url", Field: FieldURL}, {Path: "text", Field: FieldContent}})
	assert.Equal(t, norm.FallbackID("facebook", "https://example.com/a", "", ""), post.PostID)
}
