package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

func seedContentTweet(t *testing.T, repo *stubTweetRepo, userID, content string, createdAt time.Time) {
	t.Helper()
	if _, err := repo.Create(context.Background(), &domain.Tweet{
		Content:   content,
		UserID:    userID,
		Likes:     []string{},
		Bookmarks: []string{},
		CreatedAt: createdAt,
	}); err != nil {
		t.Fatalf("seed tweet: %v", err)
	}
}

func TestSearchService_Trending_CountsAndWindow(t *testing.T) {
	users := newStubUserRepo()
	tweets := newStubTweetRepo()
	svc := NewSearchService(tweets, users, nil, zerolog.Nop())
	now := time.Now().UTC()

	seedContentTweet(t, tweets, "u1", "hello #World", now)
	seedContentTweet(t, tweets, "u2", "goodbye #world", now.Add(-time.Hour))
	seedContentTweet(t, tweets, "u3", "#go is fun", now)
	// Outside the 24h window, must not count.
	seedContentTweet(t, tweets, "u4", "#world #world", now.Add(-25*time.Hour))

	trending, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(trending) != 2 {
		t.Fatalf("expected 2 hashtags, got %+v", trending)
	}
	if trending[0].Hashtag != "#world" || trending[0].Count != 2 {
		t.Fatalf("expected #world x2 first, got %+v", trending[0])
	}
	if trending[1].Hashtag != "#go" || trending[1].Count != 1 {
		t.Fatalf("expected #go x1 second, got %+v", trending[1])
	}
}

func TestSearchService_Trending_TopTen(t *testing.T) {
	users := newStubUserRepo()
	tweets := newStubTweetRepo()
	svc := NewSearchService(tweets, users, nil, zerolog.Nop())
	now := time.Now().UTC()

	content := "#a #b #c #d #e #f #g #h #i #j #k #l"
	seedContentTweet(t, tweets, "u1", content, now)

	trending, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(trending) != 10 {
		t.Fatalf("expected top 10, got %d", len(trending))
	}
	// Equal counts keep first-seen order.
	if trending[0].Hashtag != "#a" || trending[9].Hashtag != "#j" {
		t.Fatalf("tie order wrong: %+v", trending)
	}
}

func TestSearchService_Trending_UsesCache(t *testing.T) {
	users := newStubUserRepo()
	tweets := newStubTweetRepo()
	cache := &stubTrendingCache{}
	svc := NewSearchService(tweets, users, cache, zerolog.Nop())

	seedContentTweet(t, tweets, "u1", "#fresh", time.Now().UTC())

	first, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache write, got %d", cache.sets)
	}

	// Second call must be served from cache even after new content lands.
	seedContentTweet(t, tweets, "u2", "#newer #newer #newer", time.Now().UTC())
	second, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected cache hit, got %d", cache.hits)
	}
	if len(second) != len(first) || second[0].Hashtag != first[0].Hashtag {
		t.Fatalf("cached result differs: %+v vs %+v", second, first)
	}
}

func TestSearchService_Suggestions_EmptyQuery(t *testing.T) {
	svc := NewSearchService(newStubTweetRepo(), newStubUserRepo(), nil, zerolog.Nop())

	if _, err := svc.Suggestions(context.Background(), "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSearchService_Suggestions_UsersAndHashtags(t *testing.T) {
	users := newStubUserRepo()
	tweets := newStubTweetRepo()
	svc := NewSearchService(tweets, users, nil, zerolog.Nop())

	seedUser(t, users, "golara")
	seedUser(t, users, "goran")
	seedUser(t, users, "alice")
	now := time.Now().UTC()
	seedContentTweet(t, tweets, "u1", "#golang rocks", now)
	seedContentTweet(t, tweets, "u2", "more #golang and #gopher", now)

	result, err := svc.Suggestions(context.Background(), "go")
	if err != nil {
		t.Fatalf("Suggestions: %v", err)
	}
	if len(result.Users) != 2 {
		t.Fatalf("expected 2 username matches, got %+v", result.Users)
	}
	if len(result.Hashtags) != 2 {
		t.Fatalf("expected 2 hashtags, got %+v", result.Hashtags)
	}
	// Ranked by frequency, leading '#' stripped for the search bar.
	if result.Hashtags[0].Hashtag != "golang" || result.Hashtags[0].Count != 2 {
		t.Fatalf("expected golang x2 first, got %+v", result.Hashtags[0])
	}
	if result.Hashtags[1].Hashtag != "gopher" {
		t.Fatalf("expected gopher second, got %+v", result.Hashtags[1])
	}
}

func TestSearchService_Suggestions_StripsPrefixes(t *testing.T) {
	users := newStubUserRepo()
	tweets := newStubTweetRepo()
	svc := NewSearchService(tweets, users, nil, zerolog.Nop())

	seedUser(t, users, "golara")
	seedContentTweet(t, tweets, "u1", "#golang", time.Now().UTC())

	byAt, err := svc.Suggestions(context.Background(), "@gol")
	if err != nil {
		t.Fatalf("Suggestions(@): %v", err)
	}
	if len(byAt.Users) != 1 || byAt.Users[0].Username != "golara" {
		t.Fatalf("'@' prefix not stripped: %+v", byAt.Users)
	}

	byHash, err := svc.Suggestions(context.Background(), "#golang")
	if err != nil {
		t.Fatalf("Suggestions(#): %v", err)
	}
	if len(byHash.Hashtags) != 1 || byHash.Hashtags[0].Hashtag != "golang" {
		t.Fatalf("'#' prefix not handled: %+v", byHash.Hashtags)
	}
}
