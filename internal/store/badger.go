// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/quotient/internal/logging"
	"github.com/tomtom215/quotient/internal/models"
)

// Key prefixes for BadgerDB storage. Ids are query-escaped so ':' inside an
// id cannot collide with the separator.
const (
	quoteKeyPrefix     = "quote:"
	quoteSeqKeyPrefix  = "seq:"
	likeKeyPrefix      = "like:"
	userLikeKeyPrefix  = "user_like:"
	likeCountKeyPrefix = "like_count:"
	sequenceKey        = "meta:sequence"

	sequenceBandwidth = 128
	maxTxnRetries     = 32
)

// likeRecord is the value stored under a like key.
type likeRecord struct {
	LikedAt time.Time `json:"liked_at"`
	Seq     uint64    `json:"seq"`
}

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// OpenBadger opens a BadgerDB store. With inMemory the path is ignored and
// nothing is written to disk.
func OpenBadger(path string, inMemory bool) (*BadgerStore, error) {
	if inMemory {
		path = ""
	}
	opts := badger.DefaultOptions(path).
		WithInMemory(inMemory).
		WithLogger(newBadgerLogger())

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("lease sequence: %w", err)
	}

	return &BadgerStore{db: db, seq: seq}, nil
}

func escapeID(id string) string {
	return url.QueryEscape(id)
}

func quoteKey(id string) []byte {
	return []byte(quoteKeyPrefix + escapeID(id))
}

func quoteSeqKey(n uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", quoteSeqKeyPrefix, n))
}

func likeKey(quoteID, userID string) []byte {
	return []byte(likeKeyPrefix + escapeID(quoteID) + ":" + escapeID(userID))
}

func userLikePrefix(userID string) []byte {
	return []byte(userLikeKeyPrefix + escapeID(userID) + ":")
}

func userLikeKey(userID string, n uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", userLikePrefix(userID), n))
}

func likeCountKey(quoteID string) []byte {
	return []byte(likeCountKeyPrefix + escapeID(quoteID))
}

// update runs fn in a read-write transaction, retrying on write conflicts.
func (s *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("transaction retries exhausted: %w", err)
}

func (s *BadgerStore) PutQuote(ctx context.Context, q models.Quote) (bool, error) {
	if err := q.Validate(); err != nil {
		return false, err
	}

	data, err := json.Marshal(cloneQuote(q))
	if err != nil {
		return false, fmt.Errorf("marshal quote: %w", err)
	}
	n, err := s.seq.Next()
	if err != nil {
		return false, fmt.Errorf("next sequence: %w", err)
	}

	inserted := false
	err = s.update(ctx, func(txn *badger.Txn) error {
		inserted = false
		_, err := txn.Get(quoteKey(q.ID))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get quote: %w", err)
		}
		if err := txn.Set(quoteKey(q.ID), data); err != nil {
			return fmt.Errorf("set quote: %w", err)
		}
		if err := txn.Set(quoteSeqKey(n), []byte(q.ID)); err != nil {
			return fmt.Errorf("set quote order: %w", err)
		}
		inserted = true
		return nil
	})
	return inserted, err
}

func (s *BadgerStore) GetQuote(_ context.Context, id string) (models.Quote, error) {
	var q models.Quote
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(quoteKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get quote: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &q)
		})
	})
	if err != nil {
		return models.Quote{}, err
	}
	return cloneQuote(q), nil
}

func (s *BadgerStore) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	var quotes []models.Quote
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(quoteSeqKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			item, err := txn.Get(quoteKey(string(id)))
			if err != nil {
				return fmt.Errorf("get quote %s: %w", id, err)
			}
			var q models.Quote
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &q) }); err != nil {
				return err
			}
			quotes = append(quotes, cloneQuote(q))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	if quotes == nil {
		quotes = []models.Quote{}
	}
	return quotes, nil
}

func (s *BadgerStore) CountQuotes(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(quoteSeqKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func (s *BadgerStore) AddLike(ctx context.Context, quoteID, userID string, at time.Time) (bool, error) {
	n, err := s.seq.Next()
	if err != nil {
		return false, fmt.Errorf("next sequence: %w", err)
	}
	data, err := json.Marshal(likeRecord{LikedAt: at, Seq: n})
	if err != nil {
		return false, fmt.Errorf("marshal like: %w", err)
	}

	added := false
	err = s.update(ctx, func(txn *badger.Txn) error {
		added = false
		_, err := txn.Get(likeKey(quoteID, userID))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get like: %w", err)
		}

		if err := txn.Set(likeKey(quoteID, userID), data); err != nil {
			return fmt.Errorf("set like: %w", err)
		}
		if err := txn.Set(userLikeKey(userID, n), []byte(quoteID)); err != nil {
			return fmt.Errorf("set user like: %w", err)
		}
		if err := adjustCount(txn, quoteID, 1); err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

func (s *BadgerStore) RemoveLike(ctx context.Context, quoteID, userID string) (bool, error) {
	removed := false
	err := s.update(ctx, func(txn *badger.Txn) error {
		removed = false
		item, err := txn.Get(likeKey(quoteID, userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get like: %w", err)
		}

		var rec likeRecord
		if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &rec) }); err != nil {
			return fmt.Errorf("decode like: %w", err)
		}
		if err := txn.Delete(likeKey(quoteID, userID)); err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		if err := txn.Delete(userLikeKey(userID, rec.Seq)); err != nil {
			return fmt.Errorf("delete user like: %w", err)
		}
		if err := adjustCount(txn, quoteID, -1); err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// adjustCount applies delta to the like counter of quoteID, deleting it at zero.
func adjustCount(txn *badger.Txn, quoteID string, delta int64) error {
	key := likeCountKey(quoteID)
	current, err := readCount(txn, key)
	if err != nil {
		return err
	}
	next := int64(current) + delta
	if next <= 0 {
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete like count: %w", err)
		}
		return nil
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(next))
	if err := txn.Set(key, buf); err != nil {
		return fmt.Errorf("set like count: %w", err)
	}
	return nil
}

func readCount(txn *badger.Txn, key []byte) (uint64, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get like count: %w", err)
	}
	var n uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("like count for %s has %d bytes", key, len(val))
		}
		n = binary.BigEndian.Uint64(val)
		return nil
	})
	return n, err
}

func (s *BadgerStore) LikeCount(_ context.Context, quoteID string) (int, error) {
	var n uint64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		n, err = readCount(txn, likeCountKey(quoteID))
		return err
	})
	return int(n), err
}

func (s *BadgerStore) HasLiked(_ context.Context, quoteID, userID string) (bool, error) {
	liked := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(likeKey(quoteID, userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

func (s *BadgerStore) LikeCounts(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(likeCountKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			id, err := url.QueryUnescape(strings.TrimPrefix(string(item.Key()), likeCountKeyPrefix))
			if err != nil {
				return fmt.Errorf("decode like count key: %w", err)
			}
			n, err := readCount(txn, item.KeyCopy(nil))
			if err != nil {
				return err
			}
			counts[id] = int(n)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("like counts: %w", err)
	}
	return counts, nil
}

func (s *BadgerStore) LikedBy(_ context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := userLikePrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user likes: %w", err)
	}
	return ids, nil
}

// gcDiscardRatio is the share of stale data a value-log file needs before
// it is rewritten.
const gcDiscardRatio = 0.5

// CollectGarbage rewrites value-log files until badger reports nothing left
// to reclaim and returns how many files were rewritten. In-memory databases
// have no value log and return 0.
func (s *BadgerStore) CollectGarbage(ctx context.Context) (int, error) {
	rewritten := 0
	for ctx.Err() == nil {
		err := s.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case err == nil:
			rewritten++
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode), errors.Is(err, badger.ErrRejected):
			return rewritten, nil
		default:
			return rewritten, fmt.Errorf("value log gc: %w", err)
		}
	}
	return rewritten, ctx.Err()
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	return errors.Join(s.seq.Release(), s.db.Close())
}

// badgerLogger routes BadgerDB's internal logging through zerolog.
// Info and debug chatter is demoted to debug.
type badgerLogger struct {
	logger zerolog.Logger
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{logger: logging.WithComponent("badger")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(strings.TrimSpace(format), args...)
}
