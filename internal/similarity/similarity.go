// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package similarity scores how alike two quotes are.
//
// A score is the sum of three weighted signals and always lies in [0, 1]:
//
//	author match (case-insensitive)        0.3
//	tag overlap  |A∩B| / max(|A|,|B|,1)    0.2
//	word overlap |A∩B| / max(|A|,|B|,1)    0.5
//
// Words are the lowercased content tokens longer than two characters after
// punctuation is stripped. Tags are compared after CanonicalTag.
package similarity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/quotient/internal/cache"
	"github.com/tomtom215/quotient/internal/metrics"
	"github.com/tomtom215/quotient/internal/models"
)

// Signal weights. They sum to 1.
const (
	AuthorWeight = 0.3
	TagWeight    = 0.2
	WordWeight   = 0.5
)

const minWordLength = 3

type wordSet map[string]struct{}

// CanonicalTag lowercases and NFC-normalizes a tag so visually identical
// tags compare equal.
func CanonicalTag(tag string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(tag)))
}

// SameAuthor reports whether two author names match case-insensitively.
func SameAuthor(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SignificantWords returns the de-duplicated significant words of content.
func SignificantWords(content string) []string {
	set := significantWords(content)
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	return words
}

func significantWords(content string) wordSet {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(content))

	set := make(wordSet)
	for _, field := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(field) >= minWordLength {
			set[field] = struct{}{}
		}
	}
	return set
}

func tagSet(tags []string) wordSet {
	set := make(wordSet, len(tags))
	for _, t := range tags {
		if c := CanonicalTag(t); c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

// overlap is |a∩b| / max(|a|, |b|, 1).
func overlap(a, b wordSet) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	shared := 0
	for k := range a {
		if _, ok := b[k]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(a), len(b), 1))
}

func combine(a, b models.Quote, wordsA, wordsB wordSet) float64 {
	score := 0.0
	if SameAuthor(a.Author, b.Author) {
		score += AuthorWeight
	}
	score += overlap(tagSet(a.Tags), tagSet(b.Tags)) * TagWeight
	score += overlap(wordsA, wordsB) * WordWeight
	return min(max(score, 0), 1)
}

// Score computes the similarity of a and b without caching.
func Score(a, b models.Quote) float64 {
	return combine(a, b, significantWords(a.Content), significantWords(b.Content))
}

// Scorer memoizes significant-word sets per quote id. Quotes never change
// after creation, so an id always maps to the same set.
type Scorer struct {
	words *cache.LRU[string, wordSet]
}

// NewScorer returns a Scorer caching up to capacity word sets.
func NewScorer(capacity int) *Scorer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Scorer{words: cache.NewLRU[string, wordSet](capacity, 0)}
}

func (s *Scorer) wordsFor(q models.Quote) wordSet {
	set, hit := s.words.GetOrAdd(q.ID, func() wordSet {
		return significantWords(q.Content)
	})
	metrics.RecordSimilarityCache(hit)
	return set
}

// Score computes the similarity of a and b using cached word sets.
func (s *Scorer) Score(a, b models.Quote) float64 {
	return combine(a, b, s.wordsFor(a), s.wordsFor(b))
}

// Stats exposes the word cache hit and miss counters.
func (s *Scorer) Stats() (hits, misses int64, size int) {
	return s.words.Stats()
}
