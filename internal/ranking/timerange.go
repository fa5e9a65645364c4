// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package ranking

import (
	"fmt"
	"strings"
	"time"
)

// TimeRange is a fixed analytics window ending now.
type TimeRange string

const (
	RangeHour  TimeRange = "1h"
	RangeDay   TimeRange = "24h"
	RangeWeek  TimeRange = "7d"
	RangeMonth TimeRange = "30d"
	RangeAll   TimeRange = "all"
)

// DefaultRange is used when a caller omits the range.
const DefaultRange = RangeDay

// ParseTimeRange parses a range name. An empty string means DefaultRange.
func ParseTimeRange(s string) (TimeRange, error) {
	switch r := TimeRange(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return DefaultRange, nil
	case RangeHour, RangeDay, RangeWeek, RangeMonth, RangeAll:
		return r, nil
	default:
		return "", fmt.Errorf("unknown time range %q (want 1h, 24h, 7d, 30d or all)", s)
	}
}

// Duration returns the window length. ok is false for RangeAll.
func (r TimeRange) Duration() (d time.Duration, ok bool) {
	switch r {
	case RangeHour:
		return time.Hour, true
	case RangeDay:
		return 24 * time.Hour, true
	case RangeWeek:
		return 7 * 24 * time.Hour, true
	case RangeMonth:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Start returns the beginning of the window ending at now, or the zero time
// for RangeAll.
func (r TimeRange) Start(now time.Time) time.Time {
	d, ok := r.Duration()
	if !ok {
		return time.Time{}
	}
	return now.Add(-d)
}

func (r TimeRange) String() string { return string(r) }

// PatternKind selects what DiscoverPatterns analyses.
type PatternKind string

const (
	PatternEngagement PatternKind = "engagement"
	PatternSentiment  PatternKind = "sentiment"
	PatternLength     PatternKind = "length"
)

// ParsePatternKind parses a pattern name. An empty string means engagement.
func ParsePatternKind(s string) (PatternKind, error) {
	switch k := PatternKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return PatternEngagement, nil
	case PatternEngagement, PatternSentiment, PatternLength:
		return k, nil
	default:
		return "", fmt.Errorf("unknown pattern type %q (want engagement, sentiment or length)", s)
	}
}
