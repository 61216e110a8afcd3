package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sparrowapp/sparrow-api/internal/api/metrics"
	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

const (
	trendingWindow    = 24 * time.Hour
	trendingLimit     = 10
	suggestionLimit   = 5
	usernameSuggLimit = 5
)

// TrendingCache abstracts the cached trending list (Redis). Get returns
// (nil, nil) on a cache miss.
type TrendingCache interface {
	Get(ctx context.Context) ([]domain.HashtagCount, error)
	Set(ctx context.Context, trending []domain.HashtagCount) error
}

// SearchService computes trending hashtags and search-bar suggestions.
type SearchService struct {
	tweets ports.TweetRepository
	users  ports.UserRepository
	cache  TrendingCache
	log    zerolog.Logger
}

func NewSearchService(tweets ports.TweetRepository, users ports.UserRepository, cache TrendingCache, log zerolog.Logger) *SearchService {
	return &SearchService{tweets: tweets, users: users, cache: cache, log: log}
}

// Trending tallies hashtags over non-deleted tweets of the trailing 24 hours
// and returns the top 10 by descending count, ties broken by first-seen
// order. The result is served from cache when fresh.
func (s *SearchService) Trending(ctx context.Context) ([]domain.HashtagCount, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("trending cache read failed")
		} else if cached != nil {
			metrics.TrendingCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.TrendingCacheTotal.WithLabelValues("miss").Inc()
	}

	since := time.Now().UTC().Add(-trendingWindow)
	tweets, err := s.tweets.ListCreatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("trending: %w", err)
	}

	texts := make([]string, 0, len(tweets))
	for _, t := range tweets {
		texts = append(texts, t.Content)
	}
	trending := domain.TopHashtags(domain.TallyHashtags(texts), trendingLimit)

	if s.cache != nil {
		if err := s.cache.Set(ctx, trending); err != nil {
			s.log.Warn().Err(err).Msg("trending cache write failed")
		}
	}
	return trending, nil
}

// Suggestions returns up to 5 usernames matching query as a case-insensitive
// prefix (leading '@' stripped) and up to 5 hashtags containing the query,
// ranked by how often they appear in matching tweets.
func (s *SearchService) Suggestions(ctx context.Context, query string) (*ports.SuggestionsResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}

	matches, err := s.users.FindByUsernamePrefix(ctx, strings.TrimPrefix(trimmed, "@"), usernameSuggLimit)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	profiles := make([]domain.Profile, 0, len(matches))
	for _, u := range matches {
		profiles = append(profiles, u.Profile())
	}

	tweets, err := s.tweets.ListMatchingHashtag(ctx, strings.TrimPrefix(trimmed, "#"))
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	texts := make([]string, 0, len(tweets))
	for _, t := range tweets {
		texts = append(texts, t.Content)
	}

	lowered := strings.ToLower(trimmed)
	filtered := make([]domain.HashtagCount, 0)
	for _, hc := range domain.TallyHashtags(texts) {
		if strings.Contains(hc.Hashtag, lowered) {
			filtered = append(filtered, hc)
		}
	}
	hashtags := domain.TopHashtags(filtered, suggestionLimit)
	for i := range hashtags {
		hashtags[i].Hashtag = strings.TrimPrefix(hashtags[i].Hashtag, "#")
	}

	return &ports.SuggestionsResult{Users: profiles, Hashtags: hashtags}, nil
}
