// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/tomtom215/quotient/internal/models"
)

// Format names an upstream response shape.
type Format string

const (
	// FormatQuotable is {_id, content, author, tags, length, dateAdded,
	// dateModified}, as an object or a one-element array.
	FormatQuotable Format = "quotable"

	// FormatZenQuotes is [{q, a}].
	FormatZenQuotes Format = "zenquotes"
)

// maxErrorBodySize limits how much of an error response is read
const maxErrorBodySize = 64 * 1024

// zenquotes answers rate-limited clients with a quote attributed to itself.
const zenQuotesSelfAuthor = "zenquotes.io"

// HTTPSourceConfig configures an HTTPSource.
type HTTPSourceConfig struct {
	Name      string
	URL       string
	Format    Format
	Timeout   time.Duration
	RateLimit float64 // requests per second; <= 0 disables pacing
	RateBurst int
	Client    *http.Client
}

// HTTPSource fetches quotes with GET requests.
type HTTPSource struct {
	name    string
	url     string
	decode  func([]byte) (models.Quote, error)
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPSource validates cfg and creates the source.
func NewHTTPSource(cfg HTTPSourceConfig) (*HTTPSource, error) {
	var decode func([]byte) (models.Quote, error)
	switch cfg.Format {
	case FormatQuotable:
		decode = decodeQuotable
	case FormatZenQuotes:
		decode = decodeZenQuotes
	default:
		return nil, fmt.Errorf("unknown format %q", cfg.Format)
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}
	name := cfg.Name
	if name == "" {
		name = string(cfg.Format)
	}

	return &HTTPSource{
		name:    name,
		url:     cfg.URL,
		decode:  decode,
		client:  client,
		limiter: limiter,
	}, nil
}

// Name implements Source.
func (s *HTTPSource) Name() string { return s.name }

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) (models.Quote, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return models.Quote{}, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return models.Quote{}, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.Quote{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return models.Quote{}, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.Quote{}, fmt.Errorf("read response: %w", err)
	}
	return s.decode(body)
}

// readBodyForError reads at most 64KB of an error response.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

type quotableQuote struct {
	ID           string   `json:"_id"`
	Content      string   `json:"content"`
	Author       string   `json:"author"`
	Tags         []string `json:"tags"`
	Length       int      `json:"length"`
	DateAdded    string   `json:"dateAdded"`
	DateModified string   `json:"dateModified"`
}

func decodeQuotable(body []byte) (models.Quote, error) {
	var raw quotableQuote
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var list []quotableQuote
		if err := json.Unmarshal(body, &list); err != nil {
			return models.Quote{}, fmt.Errorf("failed to decode response: %w", err)
		}
		if len(list) == 0 {
			return models.Quote{}, fmt.Errorf("empty quote list")
		}
		raw = list[0]
	} else if err := json.Unmarshal(body, &raw); err != nil {
		return models.Quote{}, fmt.Errorf("failed to decode response: %w", err)
	}

	q := models.Quote{
		ID:      raw.ID,
		Content: strings.TrimSpace(raw.Content),
		Author:  strings.TrimSpace(raw.Author),
		Tags:    raw.Tags,
		Length:  raw.Length,
	}
	if q.ID == "" {
		q.ID = contentID(q.Content, q.Author)
	}
	if q.Length <= 0 {
		q.Length = utf8.RuneCountInString(q.Content)
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	q.DateAdded = parseDate(raw.DateAdded)
	if raw.DateModified != "" {
		modified := parseDate(raw.DateModified)
		q.DateModified = &modified
	}
	return q, nil
}

type zenQuote struct {
	Q string `json:"q"`
	A string `json:"a"`
}

func decodeZenQuotes(body []byte) (models.Quote, error) {
	var list []zenQuote
	if err := json.Unmarshal(body, &list); err != nil {
		return models.Quote{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(list) == 0 {
		return models.Quote{}, fmt.Errorf("empty quote list")
	}
	z := list[0]
	if strings.EqualFold(strings.TrimSpace(z.A), zenQuotesSelfAuthor) {
		return models.Quote{}, fmt.Errorf("upstream refused: %s", z.Q)
	}

	content := strings.TrimSpace(z.Q)
	author := strings.TrimSpace(z.A)
	return models.Quote{
		ID:        contentID(content, author),
		Content:   content,
		Author:    author,
		Tags:      []string{},
		Length:    utf8.RuneCountInString(content),
		DateAdded: time.Now().UTC(),
	}, nil
}

// contentID derives a stable id so refetching a quote does not duplicate it.
func contentID(content, author string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(author+"\x00"+content)).String()
}

func parseDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
