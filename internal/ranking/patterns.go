// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package ranking

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/tomtom215/quotient/internal/models"
)

// Sentiment word lists. Matching is on whole lowercased words.
var (
	positiveWords = wordList(
		"love", "happy", "happiness", "joy", "hope", "success", "beautiful", "good",
		"great", "wonderful", "inspire", "peace", "kind", "kindness", "dream",
		"believe", "smile", "courage", "friend", "grateful", "light", "best",
		"strength", "free", "freedom", "laugh", "win",
	)
	negativeWords = wordList(
		"hate", "sad", "sadness", "fear", "fail", "failure", "pain", "death", "die",
		"dark", "darkness", "war", "anger", "lose", "loss", "wrong", "bad", "cry",
		"lonely", "worst", "evil", "suffer", "suffering", "regret", "alone",
	)
)

func wordList(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Sentiment classes.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Sentiment classifies content by counting positive and negative words.
// The majority wins; a tie is neutral.
func Sentiment(content string) string {
	pos, neg := 0, 0
	for _, w := range strings.FieldsFunc(strings.ToLower(content), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	}) {
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// DiscoverPatterns analyses one aspect of the catalog. Engagement is limited
// to r; sentiment and length describe every stored quote.
func (e *Engine) DiscoverPatterns(ctx context.Context, kind PatternKind, r TimeRange) (models.PatternResult, error) {
	result := models.PatternResult{Kind: string(kind), Range: r.String()}

	switch kind {
	case PatternEngagement:
		p := e.engagementPattern(r)
		result.Engagement = &p
	case PatternSentiment:
		p, err := e.sentimentPattern(ctx)
		if err != nil {
			return result, err
		}
		result.Sentiment = &p
	case PatternLength:
		p, err := e.lengthPattern(ctx)
		if err != nil {
			return result, err
		}
		result.Length = &p
	default:
		return result, fmt.Errorf("unknown pattern type %q", kind)
	}
	return result, nil
}

func (e *Engine) engagementPattern(r TimeRange) models.EngagementPattern {
	var p models.EngagementPattern
	for _, ev := range e.likedInWindow(r.Start(e.now())) {
		p.Hourly[ev.Timestamp.UTC().Hour()]++
		p.Total++
	}
	for hour, n := range p.Hourly {
		if n > p.PeakLikes {
			p.PeakHour, p.PeakLikes = hour, n
		}
	}
	return p
}

func (e *Engine) sentimentPattern(ctx context.Context) (models.SentimentPattern, error) {
	quotes, err := e.store.ListQuotes(ctx)
	if err != nil {
		return models.SentimentPattern{}, fmt.Errorf("list quotes: %w", err)
	}

	var p models.SentimentPattern
	for _, q := range quotes {
		switch Sentiment(q.Content) {
		case SentimentPositive:
			p.Positive++
		case SentimentNegative:
			p.Negative++
		default:
			p.Neutral++
		}
	}

	switch {
	case p.Positive > p.Negative && p.Positive > p.Neutral:
		p.Dominant = SentimentPositive
	case p.Negative > p.Positive && p.Negative > p.Neutral:
		p.Dominant = SentimentNegative
	default:
		p.Dominant = SentimentNeutral
	}
	return p, nil
}

func (e *Engine) lengthPattern(ctx context.Context) (models.LengthPattern, error) {
	quotes, counts, err := e.snapshot(ctx)
	if err != nil {
		return models.LengthPattern{}, err
	}

	var p models.LengthPattern
	total, likedTotal := 0, 0
	for _, q := range quotes {
		n := q.ContentLength()
		total += n
		p.Quotes++
		if counts[q.ID] > 0 {
			likedTotal += n
			p.LikedQuotes++
		}
	}
	if p.Quotes > 0 {
		p.AverageLength = float64(total) / float64(p.Quotes)
	}
	if p.LikedQuotes > 0 {
		p.OptimalLength = float64(likedTotal) / float64(p.LikedQuotes)
	}
	return p, nil
}
