// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package similarity

import (
	"math"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/tomtom215/quotient/internal/models"
)

const epsilon = 1e-9

func q(id, content, author string, tags ...string) models.Quote {
	return models.Quote{ID: id, Content: content, Author: author, Tags: tags}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b models.Quote
		want float64
	}{
		{
			name: "identical quotes",
			a:    q("1", "Simplicity is the ultimate sophistication", "Leonardo", "art"),
			b:    q("2", "Simplicity is the ultimate sophistication", "Leonardo", "art"),
			want: 1.0,
		},
		{
			name: "nothing in common",
			a:    q("1", "Simplicity wins", "Leonardo", "art"),
			b:    q("2", "Courage matters", "Seneca", "virtue"),
			want: 0,
		},
		{
			name: "author match is case-insensitive",
			a:    q("1", "alpha", "MAYA ANGELOU"),
			b:    q("2", "omega", "maya angelou"),
			want: AuthorWeight,
		},
		{
			name: "tag overlap divided by larger set",
			a:    q("1", "x", "A", "Life", "love"),
			b:    q("2", "y", "B", "life"),
			want: 0.5 * TagWeight,
		},
		{
			name: "tags compare after NFC normalization",
			a:    q("1", "x", "A", "caf\u00e9"),
			b:    q("2", "y", "B", "Cafe\u0301"),
			want: TagWeight,
		},
		{
			name: "punctuation is stripped before tokenizing",
			a:    q("1", "Hello, world!", "A"),
			b:    q("2", "hello world", "B"),
			want: WordWeight,
		},
		{
			name: "short words are ignored",
			a:    q("1", "to be or not to be", "A"),
			b:    q("2", "be it or not", "B"),
			want: WordWeight, // only "not" survives on both sides
		},
		{
			name: "only short words gives no word signal",
			a:    q("1", "an ox", "A"),
			b:    q("2", "an ox", "B"),
			want: 0,
		},
		{
			name: "repeated words count once",
			a:    q("1", "love love love life", "A"),
			b:    q("2", "love hate", "B"),
			want: 0.5 * WordWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Score(tt.a, tt.b); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignificantWords(t *testing.T) {
	t.Parallel()

	got := SignificantWords("It's the END of the world, as we know it!")
	slices.Sort(got)
	want := []string{"end", "its", "know", "the", "world"}
	if !slices.Equal(got, want) {
		t.Errorf("SignificantWords() = %v, want %v", got, want)
	}
}

func TestCanonicalTag(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  Wisdom ":           "wisdom",
		"CAF\u00c9":           "caf\u00e9",
		"":                    "",
		"Self-Help":           "self-help",
		"cafe\u0301":          "caf\u00e9",
		"A\u030angstr\u00f6m": "\u00e5ngstr\u00f6m",
	}
	for in, want := range tests {
		if got := CanonicalTag(in); got != want {
			t.Errorf("CanonicalTag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScorerMatchesScore(t *testing.T) {
	t.Parallel()

	s := NewScorer(2)
	a := q("a", "The journey of a thousand miles begins with one step", "Lao Tzu", "journey")
	b := q("b", "A journey is best measured in friends rather than miles", "Tim Cahill", "journey", "friendship")
	c := q("c", "Begin anywhere", "John Cage")

	for range 3 {
		if got, want := s.Score(a, b), Score(a, b); math.Abs(got-want) > epsilon {
			t.Fatalf("Scorer.Score() = %v, Score() = %v", got, want)
		}
	}
	// c evicts a from the two-entry cache; results stay identical.
	if got, want := s.Score(c, b), Score(c, b); math.Abs(got-want) > epsilon {
		t.Fatalf("Scorer.Score() after eviction = %v, want %v", got, want)
	}

	hits, misses, size := s.Stats()
	if misses != 3 {
		t.Errorf("misses = %d, want 3", misses)
	}
	if hits != 5 {
		t.Errorf("hits = %d, want 5", hits)
	}
	if size != 2 {
		t.Errorf("size = %d, want 2", size)
	}
}

func genQuote(id string) gopter.Gen {
	return gopter.CombineGens(
		gen.SliceOfN(6, gen.OneConstOf("love", "life", "time", "wisdom", "the", "of", "courage", "Hope!")),
		gen.OneConstOf("Seneca", "seneca", "Rumi", "Confucius"),
		gen.SliceOfN(3, gen.OneConstOf("Life", "life", "love", "faith", "hope")),
	).Map(func(vals []interface{}) models.Quote {
		words := vals[0].([]string)
		content := ""
		for _, w := range words {
			content += w + " "
		}
		return models.Quote{ID: id, Content: content, Author: vals[1].(string), Tags: vals[2].([]string)}
	})
}

func TestScoreProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("score is bounded to [0,1]", prop.ForAll(
		func(a, b models.Quote) bool {
			s := Score(a, b)
			return s >= 0 && s <= 1
		},
		genQuote("a"), genQuote("b"),
	))

	properties.Property("score is symmetric", prop.ForAll(
		func(a, b models.Quote) bool {
			return math.Abs(Score(a, b)-Score(b, a)) < epsilon
		},
		genQuote("a"), genQuote("b"),
	))

	properties.Property("a quote with content is fully similar to itself", prop.ForAll(
		func(a models.Quote) bool {
			if len(significantWords(a.Content)) == 0 || len(tagSet(a.Tags)) == 0 {
				return true
			}
			return math.Abs(Score(a, a)-1) < epsilon
		},
		genQuote("a"),
	))

	properties.Property("cached scorer agrees with Score", prop.ForAll(
		func(a, b models.Quote) bool {
			s := NewScorer(4)
			return math.Abs(s.Score(a, b)-Score(a, b)) < epsilon
		},
		genQuote("a"), genQuote("b"),
	))

	properties.TestingRun(t)
}
