package ports

import (
	"context"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

// SuggestionsResult holds search-bar suggestions: username prefix matches and
// hashtags containing the query, ranked by frequency.
type SuggestionsResult struct {
	Users    []domain.Profile
	Hashtags []domain.HashtagCount
}

// SearchService covers hashtag trending and search suggestions.
type SearchService interface {
	// Trending returns the top 10 hashtags from tweets of the trailing 24h.
	Trending(ctx context.Context) ([]domain.HashtagCount, error)
	// Suggestions returns up to 5 users and 5 hashtags matching query.
	Suggestions(ctx context.Context, query string) (*SuggestionsResult, error)
}
