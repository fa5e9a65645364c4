// Quotient - Quote Serving, Analytics and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quotient

package quote

import (
	"unicode/utf8"

	"github.com/tomtom215/quotient/internal/models"
)

// DefaultQuotes is the starter set loaded when quotes.seed_defaults is on.
func DefaultQuotes() []models.Quote {
	seed := []struct {
		id, content, author string
		tags                []string
	}{
		{"seed-001", "The only way to do great work is to love what you do.", "Steve Jobs", []string{"work", "inspirational"}},
		{"seed-002", "Life is what happens when you're busy making other plans.", "John Lennon", []string{"life"}},
		{"seed-003", "The future belongs to those who believe in the beauty of their dreams.", "Eleanor Roosevelt", []string{"inspirational", "future"}},
		{"seed-004", "It is during our darkest moments that we must focus to see the light.", "Aristotle", []string{"wisdom", "hope"}},
		{"seed-005", "Whoever is happy will make others happy too.", "Anne Frank", []string{"happiness"}},
		{"seed-006", "Do not go where the path may lead, go instead where there is no path and leave a trail.", "Ralph Waldo Emerson", []string{"inspirational", "courage"}},
		{"seed-007", "You will face many defeats in life, but never let yourself be defeated.", "Maya Angelou", []string{"life", "courage"}},
		{"seed-008", "In the end, it's not the years in your life that count. It's the life in your years.", "Abraham Lincoln", []string{"life", "wisdom"}},
		{"seed-009", "Simplicity is prerequisite for reliability.", "Edsger W. Dijkstra", []string{"technology"}},
		{"seed-010", "The obstacle is the way.", "Marcus Aurelius", []string{"wisdom", "stoicism"}},
		{"seed-011", "We suffer more often in imagination than in reality.", "Seneca", []string{"wisdom", "stoicism"}},
		{"seed-012", "Talk is cheap. Show me the code.", "Linus Torvalds", []string{"technology", "work"}},
	}

	out := make([]models.Quote, len(seed))
	for i, s := range seed {
		out[i] = models.Quote{
			ID:      s.id,
			Content: s.content,
			Author:  s.author,
			Tags:    s.tags,
			Length:  utf8.RuneCountInString(s.content),
		}
	}
	return out
}
