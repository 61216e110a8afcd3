package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

const commentsCollection = "comments"

// CommentRepository implements ports.CommentRepository on MongoDB.
type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentsCollection)}
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Tweet     string             `bson:"tweet"`
	User      string             `bson:"user"`
	Parent    *string            `bson:"parent_comment,omitempty"`
	Likes     []string           `bson:"likes"`
	IsDeleted bool               `bson:"is_deleted"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		TweetID:   d.Tweet,
		UserID:    d.User,
		ParentID:  d.Parent,
		Likes:     emptyIfNil(d.Likes),
		IsDeleted: d.IsDeleted,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := commentDoc{
		Text:      comment.Text,
		Tweet:     comment.TweetID,
		User:      comment.UserID,
		Parent:    comment.ParentID,
		Likes:     []string{},
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *comment
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.Likes = []string{}
	return &created, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc commentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return doc.toDomain(), nil
}

// ListTopLevel returns non-deleted comments with no parent on the tweet,
// newest first.
func (r *CommentRepository) ListTopLevel(ctx context.Context, tweetID string) ([]*domain.Comment, error) {
	filter := bson.M{"tweet": tweetID, "parent_comment": nil, "is_deleted": false}
	return r.findMany(ctx, filter, -1)
}

// ListReplies returns non-deleted children of the parent, oldest first.
func (r *CommentRepository) ListReplies(ctx context.Context, parentID string) ([]*domain.Comment, error) {
	filter := bson.M{"parent_comment": parentID, "is_deleted": false}
	return r.findMany(ctx, filter, 1)
}

func (r *CommentRepository) UpdateText(ctx context.Context, id string, text string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"text": text, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "is_deleted": false}, update)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) SoftDelete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "is_deleted": false}, update)
	if err != nil {
		return fmt.Errorf("soft delete comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

// ToggleLike flips the user's membership in the like set with guarded atomic
// updates, mirroring the tweet repository.
func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID string) (bool, int, error) {
	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return false, 0, domain.ErrCommentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "is_deleted": false, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}, "$set": bson.M{"updated_at": now}},
	)
	if err != nil {
		return false, 0, fmt.Errorf("toggle comment like: %w", err)
	}
	added := res.ModifiedCount == 1

	if !added {
		res, err = r.coll.UpdateOne(ctx,
			bson.M{"_id": oid, "is_deleted": false},
			bson.M{"$pull": bson.M{"likes": userID}, "$set": bson.M{"updated_at": now}},
		)
		if err != nil {
			return false, 0, fmt.Errorf("toggle comment like: %w", err)
		}
		if res.MatchedCount == 0 {
			return false, 0, domain.ErrCommentNotFound
		}
	}

	opts := options.FindOne().SetProjection(bson.M{"likes": 1})
	var doc commentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		return false, 0, fmt.Errorf("read likes: %w", err)
	}
	return added, len(doc.Likes), nil
}

// CountByTweetIDs groups non-deleted comments by tweet id in one aggregation
// round-trip, so feed assembly never issues a count query per tweet.
func (r *CommentRepository) CountByTweetIDs(ctx context.Context, tweetIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(tweetIDs))
	if len(tweetIDs) == 0 {
		return counts, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tweet": bson.M{"$in": tweetIDs}, "is_deleted": false}}},
		{{Key: "$group", Value: bson.M{"_id": "$tweet", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			TweetID string `bson:"_id"`
			Count   int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode count: %w", err)
		}
		counts[row.TweetID] = row.Count
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

func (r *CommentRepository) findMany(ctx context.Context, filter bson.M, sortDir int) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: sortDir}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []*domain.Comment
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return comments, nil
}
