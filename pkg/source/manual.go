package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/Clapiton/socials/pkg/domain"
)

// manual posts keep more text than fetched ones
const maxManualContentLen = 5000

// import errors
var (
	ErrEmptyText       = errors.New("empty text")
	ErrNoContentColumn = errors.New("csv must have a content, text, body or post column")
)

// header aliases, first match wins
var (
	contentAliases  = []string{"content", "text", "body", "post", "message"}
	titleAliases    = []string{"title", "subject", "headline"}
	authorAliases   = []string{"author", "user", "username", "name"}
	urlAliases      = []string{"url", "link", "href"}
	platformAliases = []string{"platform", "source", "network"}
	groupAliases    = []string{"subreddit", "source", "group", "channel", "community"}
)

// Importer stores pasted text or CSV rows as posts without any external source
type Importer struct {
	sink Sink
	norm *Normalizer
}

// NewImporter makes an importer writing into sink
func NewImporter(sink Sink, norm *Normalizer) *Importer {
	return &Importer{sink: sink, norm: norm}
}

// ImportText stores text as a single manual post. Author defaults to "manual",
// label becomes both the title and the group.
func (im *Importer) ImportText(ctx context.Context, text, author, label string) (domain.CollectionStats, error) {
	stats := domain.CollectionStats{Platform: domain.PlatformManual, Source: "manual"}
	text = strings.TrimSpace(text)
	if text == "" {
		return stats, ErrEmptyText
	}
	if author == "" {
		author = "manual"
	}
	title := label
	if title == "" {
		title = "Manual import"
	}

	stats.Fetched = 1
	im.store(ctx, &stats, domain.RawPost{
		Platform: domain.PlatformManual,
		Title:    truncate(title, maxTitleLen),
		Content:  truncate(text, maxManualContentLen),
		Author:   author,
		Group:    label,
	})
	if stats.Errors > 0 {
		return stats, errors.New(stats.Error)
	}
	return stats, nil
}

// ImportCSV stores one post per row. Columns are recognized by common header
// aliases, only a content column is required. Rows with empty content are skipped.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (domain.CollectionStats, error) {
	stats := domain.CollectionStats{Platform: domain.PlatformManual, Source: "csv"}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return stats, fmt.Errorf("could not parse csv headers: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := cols[h]; !ok {
			cols[h] = i
		}
	}
	contentCol := findColumn(cols, contentAliases)
	if contentCol < 0 {
		return stats, ErrNoContentColumn
	}
	titleCol, authorCol, urlCol := findColumn(cols, titleAliases), findColumn(cols, authorAliases), findColumn(cols, urlAliases)
	platformCol, groupCol := findColumn(cols, platformAliases), findColumn(cols, groupAliases)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if err != nil && !errors.As(err, &perr) {
			return stats, fmt.Errorf("read csv: %w", err)
		}
		if err != nil {
			lgr.Printf("[WARN] csv row error: %v", err)
			stats.Errors++
			continue
		}
		stats.Fetched++

		content := cell(row, contentCol)
		if content == "" {
			stats.Filtered++
			continue
		}
		platform := cell(row, platformCol)
		if platform == "" {
			platform = domain.PlatformManual
		}
		im.store(ctx, &stats, domain.RawPost{
			Platform: platform,
			Title:    truncate(cell(row, titleCol), maxTitleLen),
			Content:  truncate(content, maxManualContentLen),
			Author:   cell(row, authorCol),
			URL:      cell(row, urlCol),
			Group:    cell(row, groupCol),
		})
	}

	lgr.Printf("[INFO] csv import: %d rows, %d inserted, %d duplicates, %d errors",
		stats.Fetched, stats.Inserted, stats.Duplicates, stats.Errors)
	return stats, nil
}

func (im *Importer) store(ctx context.Context, stats *domain.CollectionStats, post domain.RawPost) {
	post.PostID = im.norm.FallbackID(post.Platform, post.URL, post.Content, post.Title)
	stored, err := im.sink.InsertPost(ctx, post)
	switch {
	case err != nil:
		lgr.Printf("[WARN] failed to import post: %v", err)
		stats.Errors++
		if stats.Error == "" {
			stats.Error = err.Error()
		}
	case stored == nil:
		stats.Duplicates++
	default:
		stats.Inserted++
	}
}

func findColumn(cols map[string]int, aliases []string) int {
	for _, a := range aliases {
		if i, ok := cols[a]; ok {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
