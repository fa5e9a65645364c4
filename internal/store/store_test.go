// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/quotient/internal/config"
	"github.com/tomtom215/quotient/internal/models"
)

// backends returns a fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	badgerStore, err := OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() {
		if err := badgerStore.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": badgerStore,
	}
}

func testQuote(id, author string, tags ...string) models.Quote {
	content := "Quote " + id + " says something worth remembering"
	return models.Quote{
		ID:        id,
		Content:   content,
		Author:    author,
		Tags:      tags,
		Length:    len(content),
		DateAdded: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPutAndGetQuote(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			inserted, err := s.PutQuote(ctx, testQuote("q1", "Seneca", "wisdom", "time"))
			if err != nil || !inserted {
				t.Fatalf("PutQuote() = %v, %v; want true, nil", inserted, err)
			}

			// Quotes are immutable: a second put with the same id is ignored.
			dup := testQuote("q1", "Someone Else")
			inserted, err = s.PutQuote(ctx, dup)
			if err != nil || inserted {
				t.Fatalf("duplicate PutQuote() = %v, %v; want false, nil", inserted, err)
			}

			got, err := s.GetQuote(ctx, "q1")
			if err != nil {
				t.Fatalf("GetQuote() error = %v", err)
			}
			if got.Author != "Seneca" {
				t.Errorf("Author = %q, want Seneca", got.Author)
			}
			if len(got.Tags) != 2 || got.Tags[0] != "wisdom" {
				t.Errorf("Tags = %v, want [wisdom time]", got.Tags)
			}
			if !got.DateAdded.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
				t.Errorf("DateAdded = %v", got.DateAdded)
			}

			got.Tags[0] = "mutated"
			again, _ := s.GetQuote(ctx, "q1")
			if again.Tags[0] != "wisdom" {
				t.Error("mutating a returned quote changed the stored copy")
			}

			if _, err := s.GetQuote(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetQuote(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestPutQuoteRejectsInvalid(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			q := testQuote("bad", "")
			q.Content = ""
			if _, err := s.PutQuote(context.Background(), q); err == nil {
				t.Error("PutQuote() with empty content should fail")
			}
		})
	}
}

func TestListQuotesInsertionOrder(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			empty, err := s.ListQuotes(ctx)
			if err != nil {
				t.Fatalf("ListQuotes() error = %v", err)
			}
			if len(empty) != 0 {
				t.Fatalf("ListQuotes() on empty store = %d quotes", len(empty))
			}

			ids := []string{"zeta", "alpha", "mu", "beta"}
			for _, id := range ids {
				if _, err := s.PutQuote(ctx, testQuote(id, "Author")); err != nil {
					t.Fatalf("PutQuote(%s) error = %v", id, err)
				}
			}

			quotes, err := s.ListQuotes(ctx)
			if err != nil {
				t.Fatalf("ListQuotes() error = %v", err)
			}
			if len(quotes) != len(ids) {
				t.Fatalf("ListQuotes() returned %d quotes, want %d", len(quotes), len(ids))
			}
			for i, q := range quotes {
				if q.ID != ids[i] {
					t.Errorf("quotes[%d] = %s, want %s", i, q.ID, ids[i])
				}
			}

			count, err := s.CountQuotes(ctx)
			if err != nil || count != len(ids) {
				t.Errorf("CountQuotes() = %d, %v; want %d", count, err, len(ids))
			}
		})
	}
}

func TestLikeLifecycle(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			now := time.Now()

			added, err := s.AddLike(ctx, "q1", "alice", now)
			if err != nil || !added {
				t.Fatalf("AddLike() = %v, %v; want true, nil", added, err)
			}
			added, err = s.AddLike(ctx, "q1", "alice", now)
			if err != nil || added {
				t.Fatalf("repeat AddLike() = %v, %v; want false, nil", added, err)
			}
			if _, err := s.AddLike(ctx, "q1", "bob", now); err != nil {
				t.Fatalf("AddLike(bob) error = %v", err)
			}
			if _, err := s.AddLike(ctx, "q2", "alice", now); err != nil {
				t.Fatalf("AddLike(q2) error = %v", err)
			}

			if n, _ := s.LikeCount(ctx, "q1"); n != 2 {
				t.Errorf("LikeCount(q1) = %d, want 2", n)
			}
			if liked, _ := s.HasLiked(ctx, "q1", "alice"); !liked {
				t.Error("HasLiked(q1, alice) = false, want true")
			}
			if liked, _ := s.HasLiked(ctx, "q2", "bob"); liked {
				t.Error("HasLiked(q2, bob) = true, want false")
			}

			ids, err := s.LikedBy(ctx, "alice")
			if err != nil {
				t.Fatalf("LikedBy() error = %v", err)
			}
			if len(ids) != 2 || ids[0] != "q1" || ids[1] != "q2" {
				t.Errorf("LikedBy(alice) = %v, want [q1 q2]", ids)
			}

			removed, err := s.RemoveLike(ctx, "q1", "alice")
			if err != nil || !removed {
				t.Fatalf("RemoveLike() = %v, %v; want true, nil", removed, err)
			}
			removed, err = s.RemoveLike(ctx, "q1", "alice")
			if err != nil || removed {
				t.Fatalf("repeat RemoveLike() = %v, %v; want false, nil", removed, err)
			}

			if n, _ := s.LikeCount(ctx, "q1"); n != 1 {
				t.Errorf("LikeCount(q1) after unlike = %d, want 1", n)
			}
			ids, _ = s.LikedBy(ctx, "alice")
			if len(ids) != 1 || ids[0] != "q2" {
				t.Errorf("LikedBy(alice) after unlike = %v, want [q2]", ids)
			}

			counts, err := s.LikeCounts(ctx)
			if err != nil {
				t.Fatalf("LikeCounts() error = %v", err)
			}
			if counts["q1"] != 1 || counts["q2"] != 1 || len(counts) != 2 {
				t.Errorf("LikeCounts() = %v, want q1:1 q2:1", counts)
			}

			if _, err := s.RemoveLike(ctx, "q2", "alice"); err != nil {
				t.Fatalf("RemoveLike(q2) error = %v", err)
			}
			counts, _ = s.LikeCounts(ctx)
			if _, ok := counts["q2"]; ok {
				t.Errorf("LikeCounts() still lists q2 with zero likes: %v", counts)
			}
		})
	}
}

func TestIDsWithSeparators(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			// "a:b" liked by "c" must not collide with "a" liked by "b:c".
			if _, err := s.AddLike(ctx, "a:b", "c", time.Now()); err != nil {
				t.Fatal(err)
			}
			if liked, _ := s.HasLiked(ctx, "a", "b:c"); liked {
				t.Error("like keys collided across the separator")
			}
			counts, _ := s.LikeCounts(ctx)
			if counts["a:b"] != 1 {
				t.Errorf("LikeCounts() = %v, want a:b:1", counts)
			}
		})
	}
}

func TestConcurrentLikesCountOnce(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			const workers = 16
			var (
				wg    sync.WaitGroup
				added atomic.Int32
			)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					ok, err := s.AddLike(ctx, "hot", "same-user", time.Now())
					if err != nil {
						t.Errorf("AddLike() error = %v", err)
						return
					}
					if ok {
						added.Add(1)
					}
				}()
			}
			wg.Wait()

			if got := added.Load(); got != 1 {
				t.Errorf("%d concurrent AddLike calls reported insert, want 1", got)
			}
			if n, _ := s.LikeCount(ctx, "hot"); n != 1 {
				t.Errorf("LikeCount(hot) = %d, want 1", n)
			}
		})
	}
}

func TestConcurrentDistinctUsers(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			const users = 10
			var wg sync.WaitGroup
			for i := 0; i < users; i++ {
				wg.Add(1)
				go func(user string) {
					defer wg.Done()
					if _, err := s.AddLike(ctx, "shared", user, time.Now()); err != nil {
						t.Errorf("AddLike(%s) error = %v", user, err)
					}
				}(fmt.Sprintf("user-%d", i))
			}
			wg.Wait()

			if n, _ := s.LikeCount(ctx, "shared"); n != users {
				t.Errorf("LikeCount(shared) = %d, want %d", n, users)
			}
		})
	}
}

func TestNewSelectsBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend string
		wantErr bool
	}{
		{"", false},
		{"memory", false},
		{"badger", false},
		{"postgres", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			t.Parallel()
			s, err := New(config.StoreConfig{Backend: tt.backend, InMemory: true})
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
			}
			if s != nil {
				if err := s.Close(); err != nil {
					t.Errorf("Close() error = %v", err)
				}
			}
		})
	}
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadger(dir, false)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	if _, err := s.PutQuote(ctx, testQuote("kept", "Marcus Aurelius")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddLike(ctx, "kept", "alice", time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenBadger(dir, false)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	q, err := reopened.GetQuote(ctx, "kept")
	if err != nil || q.Author != "Marcus Aurelius" {
		t.Errorf("GetQuote() after reopen = %+v, %v", q, err)
	}
	if n, _ := reopened.LikeCount(ctx, "kept"); n != 1 {
		t.Errorf("LikeCount() after reopen = %d, want 1", n)
	}

	// A new quote after reopen must sort after the old one.
	if _, err := reopened.PutQuote(ctx, testQuote("later", "Epictetus")); err != nil {
		t.Fatal(err)
	}
	quotes, _ := reopened.ListQuotes(ctx)
	if len(quotes) != 2 || quotes[0].ID != "kept" || quotes[1].ID != "later" {
		t.Errorf("ListQuotes() after reopen = %v", quotes)
	}
}

func TestBadgerCollectGarbage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inMemory bool
	}{
		{"in memory", true},
		{"on disk", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := OpenBadger(t.TempDir(), tt.inMemory)
			if err != nil {
				t.Fatalf("OpenBadger() error = %v", err)
			}
			defer s.Close()

			var gc GarbageCollector = s
			if _, err := gc.CollectGarbage(context.Background()); err != nil {
				t.Errorf("CollectGarbage() error = %v", err)
			}
		})
	}
}
