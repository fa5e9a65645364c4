// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

// Package logging is the zerolog-based logging layer for Quotient.
//
// A single global logger is configured once from main and shared by every
// package:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("http server listening")
//
// Request-scoped entries go through Ctx, which adds the request id,
// correlation id and acting user id carried on the context:
//
//	logging.Ctx(ctx).Info().Str("quote_id", id).Msg("quote liked")
//
// Libraries that only speak log/slog (suture via sutureslog, the Watermill
// broker) are handed NewSlogLogger so their output lands in the same stream.
//
// Always terminate chains with Msg or Send; an unterminated event is dropped.
package logging
