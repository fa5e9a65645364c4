// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/ranking"
	"github.com/tomtom215/quotient/internal/recommend"
	"github.com/tomtom215/quotient/internal/similarity"
)

func quote(id, author string, tags ...string) models.Quote {
	return models.Quote{ID: id, Content: "content of " + id, Author: author, Tags: tags}
}

func profile(liked []models.Quote, authors, tags []string) *recommend.Profile {
	p := &recommend.Profile{
		UserID:          "u1",
		FavoriteAuthors: authors,
		FavoriteTags:    tags,
		Liked:           make(map[string]struct{}),
		LikedQuotes:     liked,
	}
	for _, q := range liked {
		p.Liked[q.ID] = struct{}{}
	}
	return p
}

func ids(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Quote.ID
	}
	return out
}

func TestCollaborative(t *testing.T) {
	t.Parallel()

	liked := quote("liked", "Rumi", "love")
	candidates := []models.Quote{
		liked,
		quote("a", "Seneca", "time"),
		quote("b", "rumi", "love", "life"),
		quote("c", "Plato", "LOVE", "Truth", "justice", "art"),
		quote("d", "RUMI"),
	}
	p := profile([]models.Quote{liked}, []string{"Rumi"}, []string{"love", "truth"})

	recs, err := NewCollaborative().Recommend(context.Background(), p, candidates, 10)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]float64{
		"b": 0.3 + 0.5*0.2, // author + 1/2 tags
		"d": 0.3,           // author, no tags
		"c": 0.5 * 0.2,     // 2/4 tags
		"a": 0,
	}
	if len(recs) != len(want) {
		t.Fatalf("got %v, want 4 recommendations without the liked quote", ids(recs))
	}
	order := []string{"b", "d", "c", "a"}
	for i, r := range recs {
		if r.Quote.ID != order[i] {
			t.Errorf("recs[%d] = %s, want %s", i, r.Quote.ID, order[i])
		}
		if math.Abs(r.Score-want[r.Quote.ID]) > 1e-9 {
			t.Errorf("score(%s) = %v, want %v", r.Quote.ID, r.Score, want[r.Quote.ID])
		}
		if r.Algorithm != "collaborative" {
			t.Errorf("algorithm = %q", r.Algorithm)
		}
	}

	top, _ := NewCollaborative().Recommend(context.Background(), p, candidates, 2)
	if len(top) != 2 || top[0].Quote.ID != "b" {
		t.Errorf("limit 2 = %v", ids(top))
	}
}

func TestContentBased(t *testing.T) {
	t.Parallel()

	liked := models.Quote{ID: "l1", Content: "The journey of a thousand miles", Author: "Lao Tzu", Tags: []string{"journey"}}
	near := models.Quote{ID: "n", Content: "Every journey begins with miles", Author: "Unknown", Tags: []string{"journey"}}
	far := models.Quote{ID: "f", Content: "Cats sleep everywhere", Author: "Someone"}
	fav := models.Quote{ID: "v", Content: "Nothing shared here", Author: "seneca"}

	scorer := similarity.NewScorer(16)
	p := profile([]models.Quote{liked}, []string{"Seneca"}, nil)

	recs, err := NewContentBased(scorer).Recommend(context.Background(), p, []models.Quote{liked, near, far, fav}, 10)
	if err != nil {
		t.Fatal(err)
	}
	// The favorite-author bonus (0.3) outweighs the near quote (0.4 * 0.6).
	if got := ids(recs); len(got) != 3 || got[0] != "v" || got[1] != "n" || got[2] != "f" {
		t.Fatalf("order = %v", got)
	}
	for _, r := range recs {
		var want float64
		switch r.Quote.ID {
		case "n":
			want = similarity.Score(near, liked) * 0.6
		case "f":
			want = similarity.Score(far, liked) * 0.6
		case "v":
			want = similarity.Score(fav, liked)*0.6 + 0.3
		}
		if math.Abs(r.Score-want) > 1e-9 {
			t.Errorf("score(%s) = %v, want %v", r.Quote.ID, r.Score, want)
		}
	}
}

func TestContentBasedWithoutLikes(t *testing.T) {
	t.Parallel()

	p := profile(nil, []string{"Seneca"}, nil)
	candidates := []models.Quote{quote("a", "Plato"), quote("b", "Seneca")}

	recs, err := NewContentBased(similarity.NewScorer(4)).Recommend(context.Background(), p, candidates, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0].Quote.ID != "b" || recs[0].Score != 0.3 || recs[1].Score != 0 {
		t.Errorf("recs = %+v", recs)
	}
}

type fakeTrending struct {
	quotes []models.TrendingQuote
	err    error
	gotR   ranking.TimeRange
}

func (f *fakeTrending) TrendingQuotes(_ context.Context, r ranking.TimeRange, limit int) ([]models.TrendingQuote, error) {
	f.gotR = r
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes[:min(limit, len(f.quotes))], nil
}

func TestTrending(t *testing.T) {
	t.Parallel()

	src := &fakeTrending{quotes: []models.TrendingQuote{
		{QuoteWithStats: models.QuoteWithStats{Quote: quote("t1", "A")}, WindowLikes: 5},
		{QuoteWithStats: models.QuoteWithStats{Quote: quote("t2", "B")}, WindowLikes: 2},
	}}
	recs, err := NewTrending(src).Recommend(context.Background(), profile(nil, nil, nil), nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if src.gotR != ranking.RangeDay {
		t.Errorf("range = %s, want 24h", src.gotR)
	}
	if len(recs) != 1 || recs[0].Quote.ID != "t1" || recs[0].Score != 0.8 || recs[0].Confidence != 0.9 {
		t.Errorf("recs = %+v", recs)
	}

	failing := &fakeTrending{err: errors.New("boom")}
	if _, err := NewTrending(failing).Recommend(context.Background(), nil, nil, 3); err == nil {
		t.Error("expected error from failing source")
	}
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewCollaborative().Recommend(ctx, profile(nil, nil, nil), []models.Quote{quote("a", "A")}, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
