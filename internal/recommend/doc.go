// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package recommend produces quote recommendations for a user.
//
// # Architecture
//
// The Engine builds a Profile for the requesting user (favorite authors and
// tags from preferences, plus every quote the user has liked) and hands it to
// a registered Strategy. Strategies live in the algorithms subpackage:
//
//   - collaborative: favorite-author and favorite-tag matches
//   - content_based: average similarity to the liked quotes
//   - trending: the 24h trending list at a fixed score
//
// The hybrid algorithm is composed by the engine itself: it asks the
// collaborative and content-based strategies for ceil(limit/2) results each,
// keeps the first occurrence of every quote, sorts by score (stable) and
// truncates to the limit.
//
// # Usage
//
//	engine, _ := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SetDataProvider(provider)
//	engine.RegisterAlgorithm(algorithms.NewCollaborative())
//	engine.RegisterAlgorithm(algorithms.NewContentBased(scorer))
//	engine.RegisterAlgorithm(algorithms.NewTrending(ranker))
//
//	recs, err := engine.Recommend(ctx, recommend.Request{UserID: "u1", Limit: 10})
//
// Latency is recorded per algorithm in the recommendation_duration_seconds
// histogram.
package recommend
