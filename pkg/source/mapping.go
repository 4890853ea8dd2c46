package source

import (
	"crypto/md5" //nolint:gosec // used for short stable ids, not security
	"encoding/hex"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Clapiton/socials/pkg/domain"
)

// length caps applied to normalized posts
const (
	maxTitleLen   = 500
	maxContentLen = 2000
)

// Field names a RawPost field a source value can be mapped onto
type Field string

// mappable fields
const (
	FieldPostID  Field = "post_id"
	FieldTitle   Field = "title"
	FieldContent Field = "content"
	FieldAuthor  Field = "author"
	FieldURL     Field = "url"
	FieldScore   Field = "score"
	FieldGroup   Field = "group"
)

// FieldRule maps a dotted path in a decoded source item onto a post field.
// When several rules target the same field the first non-empty value wins.
type FieldRule struct {
	Path  string
	Field Field
}

// Normalizer turns decoded source items into posts
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer makes a normalizer, now is used only for the last-resort fallback id
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Map builds a post from item following rules. Missing paths leave fields empty,
// a missing post id is synthesized by FallbackID.
func (n *Normalizer) Map(item map[string]any, platform string, rules []FieldRule) domain.RawPost {
	post := domain.RawPost{Platform: platform}
	for _, rule := range rules {
		val := lookup(item, rule.Path)
		if val == nil {
			continue
		}
		switch rule.Field {
		case FieldScore:
			if post.Score == 0 {
				post.Score = toInt(val)
			}
		default:
			setIfEmpty(&post, rule.Field, toText(val))
		}
	}
	return n.Finish(post)
}

// Finish trims and truncates post fields and assigns a fallback id when needed
func (n *Normalizer) Finish(post domain.RawPost) domain.RawPost {
	post.Title = truncate(strings.TrimSpace(post.Title), maxTitleLen)
	post.Content = truncate(strings.TrimSpace(post.Content), maxContentLen)
	post.Author = strings.TrimSpace(post.Author)
	post.URL = strings.TrimSpace(post.URL)
	post.PostID = strings.TrimSpace(post.PostID)
	if post.PostID == "" {
		post.PostID = n.FallbackID(post.Platform, post.URL, post.Content, post.Title)
	}
	return post
}

// FallbackID derives a post id from the first non-empty of url, content and title,
// falling back to the current time. Same inputs give the same id.
func (n *Normalizer) FallbackID(platform, url, content, title string) string {
	var ident string
	switch {
	case url != "":
		ident = url
	case content != "":
		ident = content
	case title != "":
		ident = title
	default:
		ident = strconv.FormatInt(n.now().UnixNano(), 10)
	}
	sum := md5.Sum([]byte(ident)) //nolint:gosec // not a security boundary
	return platform + "-" + hex.EncodeToString(sum[:])[:12]
}

func setIfEmpty(post *domain.RawPost, field Field, val string) {
	if strings.TrimSpace(val) == "" {
		return
	}
	var dst *string
	switch field {
	case FieldPostID:
		dst = &post.PostID
	case FieldTitle:
		dst = &post.Title
	case FieldContent:
		dst = &post.Content
	case FieldAuthor:
		dst = &post.Author
	case FieldURL:
		dst = &post.URL
	case FieldGroup:
		dst = &post.Group
	default:
		return
	}
	if *dst == "" {
		*dst = val
	}
}

// lookup resolves a dotted path like "author.userName" in nested maps
func lookup(item map[string]any, path string) any {
	var cur any = item
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func toText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

func toInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return int(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}
	return 0
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
