package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

const tweetsCollection = "tweets"

// TweetRepository implements ports.TweetRepository on MongoDB. All reads
// filter on is_deleted so soft-deleted tweets are invisible everywhere.
type TweetRepository struct {
	coll *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) *TweetRepository {
	return &TweetRepository{coll: db.Collection(tweetsCollection)}
}

type tweetDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Content   string             `bson:"content"`
	Image     string             `bson:"image,omitempty"`
	User      string             `bson:"user"`
	Likes     []string           `bson:"likes"`
	Bookmarks []string           `bson:"bookmarks"`
	Retweet   *string            `bson:"retweet,omitempty"`
	IsDeleted bool               `bson:"is_deleted"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *tweetDoc) toDomain() *domain.Tweet {
	return &domain.Tweet{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		Image:     d.Image,
		UserID:    d.User,
		Likes:     emptyIfNil(d.Likes),
		Bookmarks: emptyIfNil(d.Bookmarks),
		RetweetID: d.Retweet,
		IsDeleted: d.IsDeleted,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) (*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := tweetDoc{
		Content:   tweet.Content,
		Image:     tweet.Image,
		User:      tweet.UserID,
		Likes:     []string{},
		Bookmarks: []string{},
		Retweet:   tweet.RetweetID,
		CreatedAt: tweet.CreatedAt,
		UpdatedAt: tweet.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert tweet: %w", err)
	}

	created := *tweet
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.Likes = []string{}
	created.Bookmarks = []string{}
	return &created, nil
}

func (r *TweetRepository) FindByID(ctx context.Context, id string) (*domain.Tweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTweetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tweetDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTweetNotFound
		}
		return nil, fmt.Errorf("find tweet: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TweetRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Tweet, error) {
	oids := hexToObjectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Tweet{}, nil
	}
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": oids}, "is_deleted": false}, nil)
}

// List returns non-deleted tweets matching filter, newest first. The hashtag
// filter matches the literal token word-boundary-delimited and
// case-insensitively against the stored text.
func (r *TweetRepository) List(ctx context.Context, filter ports.FeedFilter) ([]*domain.Tweet, error) {
	query := bson.M{"is_deleted": false}
	if filter.UserID != "" {
		query["user"] = filter.UserID
	}
	if filter.Hashtag != "" {
		query["content"] = bson.M{
			"$regex":   `#` + regexp.QuoteMeta(filter.Hashtag) + `\b`,
			"$options": "i",
		}
	}
	if filter.BookmarkedBy != "" {
		query["bookmarks"] = filter.BookmarkedBy
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findMany(ctx, query, opts)
}

func (r *TweetRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*domain.Tweet, error) {
	query := bson.M{"is_deleted": false, "created_at": bson.M{"$gte": since}}
	return r.findMany(ctx, query, nil)
}

func (r *TweetRepository) ListMatchingHashtag(ctx context.Context, q string) ([]*domain.Tweet, error) {
	query := bson.M{
		"is_deleted": false,
		"content":    bson.M{"$regex": `#` + regexp.QuoteMeta(q), "$options": "i"},
	}
	return r.findMany(ctx, query, nil)
}

func (r *TweetRepository) Update(ctx context.Context, tweet *domain.Tweet) error {
	oid, err := primitive.ObjectIDFromHex(tweet.ID)
	if err != nil {
		return domain.ErrTweetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"content":    tweet.Content,
		"image":      tweet.Image,
		"updated_at": tweet.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "is_deleted": false}, update)
	if err != nil {
		return fmt.Errorf("update tweet: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTweetNotFound
	}
	return nil
}

func (r *TweetRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTweetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "is_deleted": false}, update)
	if err != nil {
		return fmt.Errorf("soft delete tweet: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTweetNotFound
	}
	return nil
}

func (r *TweetRepository) HasRetweet(ctx context.Context, userID, originalID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"user":       userID,
		"retweet":    originalID,
		"is_deleted": false,
	})
	if err != nil {
		return false, fmt.Errorf("count retweets: %w", err)
	}
	return n > 0, nil
}

// ToggleLike flips the user's membership in the like set. The add and remove
// paths are single guarded updates, so concurrent toggles from distinct users
// cannot lose writes the way a read-modify-write would.
func (r *TweetRepository) ToggleLike(ctx context.Context, tweetID, userID string) (bool, int, error) {
	return r.toggleSet(ctx, tweetID, userID, "likes")
}

// ToggleBookmark flips the user's membership in the bookmark set.
func (r *TweetRepository) ToggleBookmark(ctx context.Context, tweetID, userID string) (bool, int, error) {
	return r.toggleSet(ctx, tweetID, userID, "bookmarks")
}

func (r *TweetRepository) toggleSet(ctx context.Context, tweetID, userID, field string) (bool, int, error) {
	oid, err := primitive.ObjectIDFromHex(tweetID)
	if err != nil {
		return false, 0, domain.ErrTweetNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()

	// Add path: matches only when the user is not yet in the set.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "is_deleted": false, field: bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{field: userID}, "$set": bson.M{"updated_at": now}},
	)
	if err != nil {
		return false, 0, fmt.Errorf("toggle %s: %w", field, err)
	}
	added := res.ModifiedCount == 1

	if !added {
		// Remove path: the user was already a member (or the tweet is gone).
		res, err = r.coll.UpdateOne(ctx,
			bson.M{"_id": oid, "is_deleted": false},
			bson.M{"$pull": bson.M{field: userID}, "$set": bson.M{"updated_at": now}},
		)
		if err != nil {
			return false, 0, fmt.Errorf("toggle %s: %w", field, err)
		}
		if res.MatchedCount == 0 {
			return false, 0, domain.ErrTweetNotFound
		}
	}

	count, err := r.setSize(ctx, oid, field)
	if err != nil {
		return false, 0, err
	}
	return added, count, nil
}

func (r *TweetRepository) setSize(ctx context.Context, oid primitive.ObjectID, field string) (int, error) {
	opts := options.FindOne().SetProjection(bson.M{field: 1})
	var doc tweetDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		return 0, fmt.Errorf("read %s: %w", field, err)
	}
	if field == "bookmarks" {
		return len(doc.Bookmarks), nil
	}
	return len(doc.Likes), nil
}

func (r *TweetRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Tweet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.coll.Find(ctx, filter, opts)
	} else {
		cur, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("find tweets: %w", err)
	}
	defer cur.Close(ctx)

	var tweets []*domain.Tweet
	for cur.Next(ctx) {
		var doc tweetDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tweet: %w", err)
		}
		tweets = append(tweets, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}
	if tweets == nil {
		tweets = []*domain.Tweet{}
	}
	return tweets, nil
}
