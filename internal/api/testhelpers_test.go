// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/quotient/internal/activity"
	"github.com/tomtom215/quotient/internal/config"
	"github.com/tomtom215/quotient/internal/models"
	"github.com/tomtom215/quotient/internal/quote"
	"github.com/tomtom215/quotient/internal/ranking"
	"github.com/tomtom215/quotient/internal/recommend"
	"github.com/tomtom215/quotient/internal/recommend/algorithms"
	"github.com/tomtom215/quotient/internal/similarity"
	"github.com/tomtom215/quotient/internal/store"
	ws "github.com/tomtom215/quotient/internal/websocket"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testQuotes() []models.Quote {
	added := testNow.Add(-48 * time.Hour)
	return []models.Quote{
		{ID: "q1", Content: "The only way to do great work is to love what you do.", Author: "Steve Jobs", Tags: []string{"work", "passion"}, DateAdded: added},
		{ID: "q2", Content: "Life is what happens when you're busy making other plans.", Author: "John Lennon", Tags: []string{"life"}, DateAdded: added},
		{ID: "q3", Content: "Stay hungry, stay foolish.", Author: "Steve Jobs", Tags: []string{"wisdom", "work"}, DateAdded: added},
	}
}

// firstRandom always picks index 0 and never fetches or prioritizes.
type firstRandom struct{}

func (firstRandom) Float64() float64 { return 0.99 }
func (firstRandom) IntN(int) int     { return 0 }

// testConfig returns a config with permissive limits; tests override fields.
func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.API.DefaultPageSize = 20
	cfg.API.MaxPageSize = 50
	cfg.API.RequestTimeout = 5 * time.Second
	cfg.Security.CORSOrigins = []string{"*"}
	cfg.Security.RateLimitReqs = 1000
	cfg.Security.RateLimitWindow = time.Minute
	return cfg
}

// newTestService builds a quote service over a memory store seeded with
// testQuotes, a fixed clock and a real recommendation engine.
func newTestService(t *testing.T) *quote.Service {
	t.Helper()

	st := store.NewMemoryStore()
	log := activity.NewLog(nil)
	log.SetClock(func() time.Time { return testNow })
	engine := ranking.NewEngine(st, log)
	engine.SetClock(func() time.Time { return testNow })
	scorer := similarity.NewScorer(64)

	rec, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("recommend.NewEngine() error = %v", err)
	}
	rec.RegisterAlgorithm(algorithms.NewCollaborative())
	rec.RegisterAlgorithm(algorithms.NewContentBased(scorer))
	rec.RegisterAlgorithm(algorithms.NewTrending(engine))

	opts := quote.DefaultOptions()
	opts.FreshFetchProbability = 0
	opts.ShareBaseURL = "https://quotes.example/s"
	svc, err := quote.NewService(quote.Deps{
		Store:       st,
		Log:         log,
		Ranking:     engine,
		Scorer:      scorer,
		Recommender: rec,
		Random:      firstRandom{},
	}, opts)
	if err != nil {
		t.Fatalf("quote.NewService() error = %v", err)
	}
	svc.SetClock(func() time.Time { return testNow })
	rec.SetDataProvider(svc.RecommendData())

	if _, err := svc.Seed(context.Background(), testQuotes()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return svc
}

// newTestRouter returns the full chi handler over a fresh service.
func newTestRouter(t *testing.T, cfg *config.Config, hub *ws.Hub) http.Handler {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	handler := NewHandler(newTestService(t), hub, cfg)
	return NewRouter(handler, ChiMiddlewareConfigFromSecurity(cfg.Security)).SetupChi()
}

// envelope mirrors models.APIResponse with Data left raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

// expectSuccess asserts status and decodes data into dst (when non-nil).
func expectSuccess(t *testing.T, rec *httptest.ResponseRecorder, status int, dst interface{}) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "success" {
		t.Fatalf("envelope status = %q, want success", env.Status)
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("decode data: %v (data %s)", err, env.Data)
		}
	}
	return env
}

// expectError asserts status and error code.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != "error" || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
	return env
}
