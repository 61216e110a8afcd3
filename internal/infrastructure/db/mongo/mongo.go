package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the indexes all repositories rely on. The username
// and email indexes are unique only among active users, matching the
// registration-time checks: deactivating an account releases its identifiers.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	activeOnly := bson.D{{Key: "is_active", Value: true}}
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().
			SetUnique(true).SetName(usernameUniqueIndex).SetPartialFilterExpression(activeOnly)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().
			SetUnique(true).SetName(emailUniqueIndex).SetPartialFilterExpression(activeOnly)},
	}
	if _, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	tweetIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "retweet", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "bookmarks", Value: 1}}},
	}
	if _, err := db.Collection(tweetsCollection).Indexes().CreateMany(ctx, tweetIndexes); err != nil {
		return fmt.Errorf("tweet indexes: %w", err)
	}

	commentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tweet", Value: 1}, {Key: "parent_comment", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection(commentsCollection).Indexes().CreateMany(ctx, commentIndexes); err != nil {
		return fmt.Errorf("comment indexes: %w", err)
	}
	return nil
}
