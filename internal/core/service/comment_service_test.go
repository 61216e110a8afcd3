package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

type commentFixture struct {
	users    *stubUserRepo
	tweets   *stubTweetRepo
	comments *stubCommentRepo
	svc      *CommentService
}

func newCommentFixture() *commentFixture {
	users := newStubUserRepo()
	tweets := newStubTweetRepo()
	comments := newStubCommentRepo()
	return &commentFixture{
		users:    users,
		tweets:   tweets,
		comments: comments,
		svc:      NewCommentService(comments, tweets, users, zerolog.Nop()),
	}
}

func (f *commentFixture) seed(t *testing.T) (*domain.User, *domain.Tweet) {
	t.Helper()
	user := seedUser(t, f.users, "alice")
	tweet, err := f.tweets.Create(context.Background(), &domain.Tweet{
		Content:   "post",
		UserID:    user.ID,
		Likes:     []string{},
		Bookmarks: []string{},
	})
	if err != nil {
		t.Fatalf("seed tweet: %v", err)
	}
	return user, tweet
}

func TestCommentService_Create_OnMissingTweet(t *testing.T) {
	f := newCommentFixture()
	user, _ := f.seed(t)

	_, err := f.svc.Create(context.Background(), ports.CreateCommentInput{
		Text:    "hello",
		TweetID: "missing",
		UserID:  user.ID,
	})
	if !errors.Is(err, domain.ErrTweetNotFound) {
		t.Fatalf("expected ErrTweetNotFound, got %v", err)
	}
}

func TestCommentService_Create_EmptyText(t *testing.T) {
	f := newCommentFixture()
	user, tweet := f.seed(t)

	_, err := f.svc.Create(context.Background(), ports.CreateCommentInput{
		TweetID: tweet.ID,
		UserID:  user.ID,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCommentService_Create_Reply(t *testing.T) {
	f := newCommentFixture()
	user, tweet := f.seed(t)

	parent, err := f.svc.Create(context.Background(), ports.CreateCommentInput{
		Text:    "top",
		TweetID: tweet.ID,
		UserID:  user.ID,
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}

	reply, err := f.svc.Create(context.Background(), ports.CreateCommentInput{
		Text:     "reply",
		TweetID:  tweet.ID,
		UserID:   user.ID,
		ParentID: &parent.ID,
	})
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if reply.ParentID == nil || *reply.ParentID != parent.ID {
		t.Fatalf("parent reference not set: %+v", reply)
	}
}

func TestCommentService_ListTopLevel_ExcludesReplies(t *testing.T) {
	f := newCommentFixture()
	user, tweet := f.seed(t)

	first, _ := f.svc.Create(context.Background(), ports.CreateCommentInput{Text: "first", TweetID: tweet.ID, UserID: user.ID})
	second, _ := f.svc.Create(context.Background(), ports.CreateCommentInput{Text: "second", TweetID: tweet.ID, UserID: user.ID})
	if _, err := f.svc.Create(context.Background(), ports.CreateCommentInput{
		Text: "nested", TweetID: tweet.ID, UserID: user.ID, ParentID: &first.ID,
	}); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	views, err := f.svc.ListTopLevel(context.Background(), tweet.ID, user.ID)
	if err != nil {
		t.Fatalf("ListTopLevel: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 top-level comments, got %d", len(views))
	}
	// Newest first.
	if views[0].Comment.ID != second.ID || views[1].Comment.ID != first.ID {
		t.Fatalf("wrong order: %+v", views)
	}
	if views[0].Author.Username != "alice" {
		t.Fatalf("author not joined: %+v", views[0].Author)
	}
}

func TestCommentService_ListReplies_OldestFirst(t *testing.T) {
	f := newCommentFixture()
	user, tweet := f.seed(t)

	parent, _ := f.svc.Create(context.Background(), ports.CreateCommentInput{Text: "top", TweetID: tweet.ID, UserID: user.ID})
	r1, _ := f.svc.Create(context.Background(), ports.CreateCommentInput{Text: "r1", TweetID: tweet.ID, UserID: user.ID, ParentID: &parent.ID})
	r2, _ := f.svc.Create(context.Background(), ports.CreateCommentInput{Text: "r2", TweetID: tweet.ID, UserID: user.ID, ParentID: &parent.ID})

	views, err := f.svc.ListReplies(context.Background(), parent.ID)
	if err != nil {
		t.Fatalf("ListReplies: %v", err)
	}
	if len(views) != 2 || views[0].Comment.ID != r1.ID || views[1].Comment.ID != r2.ID {
		t.Fatalf("expected chronological replies, got %+v", views)
	}
}

func TestCommentService_UpdateText_OwnerOnly(t *testing.T) {
	f := newCommentFixture()
	user, tweet := f.seed(t)
	other := seedUser(t, f.users, "bob")

	comment, _ := f.svc.Create(context.Background(), ports.CreateCommentInput{Text: "v1", TweetID: tweet.ID, UserID: user.ID})

	if _, err := f.svc.UpdateText(context.Background(), comment.ID, other.ID, "hijack"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := f.svc.UpdateText(context.Background(), comment.ID, user.ID, "v2")
	if err != nil {
		t.Fatalf("UpdateText: %v", err)
	}
	if updated.Text != "v2" {
		t.Fatalf("text not updated: %q", updated.Text)
	}
}

func TestCommentService_Delete_OwnerOnlyAndHides(t *testing.T) {
	f := newCommentFixture()
	user, tweet := f.seed(t)
	other := seedUser(t, f.users, "bob")

	comment, _ := f.svc.Create(context.Background(), ports.CreateCommentInput{Text: "bye", TweetID: tweet.ID, UserID: user.ID})

	if err := f.svc.Delete(context.Background(), comment.ID, other.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), comment.ID, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	views, err := f.svc.ListTopLevel(context.Background(), tweet.ID, user.ID)
	if err != nil {
		t.Fatalf("ListTopLevel: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("deleted comment still listed: %+v", views)
	}

	if _, err := f.svc.ToggleLike(context.Background(), comment.ID, user.ID); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound after delete, got %v", err)
	}
}

func TestCommentService_ToggleLike_Roundtrip(t *testing.T) {
	f := newCommentFixture()
	user, tweet := f.seed(t)

	comment, _ := f.svc.Create(context.Background(), ports.CreateCommentInput{Text: "like me", TweetID: tweet.ID, UserID: user.ID})

	res, err := f.svc.ToggleLike(context.Background(), comment.ID, user.ID)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !res.Active || res.Count != 1 {
		t.Fatalf("expected liked with count 1, got %+v", res)
	}

	res, err = f.svc.ToggleLike(context.Background(), comment.ID, user.ID)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if res.Active || res.Count != 0 {
		t.Fatalf("expected unliked with count 0, got %+v", res)
	}
}
