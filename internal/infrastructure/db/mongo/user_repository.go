package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
)

const usersCollection = "users"

// Names of the partial unique indexes created by EnsureIndexes. The server
// reports the violated index by name inside the duplicate-key error message.
const (
	usernameUniqueIndex = "username_active_unique"
	emailUniqueIndex    = "email_active_unique"
)

// UserRepository implements ports.UserRepository on MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// userDoc is the stored shape of a user. Cross-document references (follower
// and following ids) are kept as hex strings so set operations can compare
// them directly against the ids carried in requests.
type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	FullName       string             `bson:"full_name,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	Password       string             `bson:"password"`
	ProfilePicture string             `bson:"profile_picture,omitempty"`
	Bio            string             `bson:"bio"`
	Followers      []string           `bson:"followers"`
	Following      []string           `bson:"following"`
	Role           string             `bson:"role"`
	IsActive       bool               `bson:"is_active"`
	DateOfBirth    *time.Time         `bson:"date_of_birth,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID.Hex(),
		FullName:       d.FullName,
		Username:       d.Username,
		Email:          d.Email,
		PasswordHash:   d.Password,
		ProfilePicture: d.ProfilePicture,
		Bio:            d.Bio,
		Followers:      emptyIfNil(d.Followers),
		Following:      emptyIfNil(d.Following),
		Role:           d.Role,
		IsActive:       d.IsActive,
		DateOfBirth:    d.DateOfBirth,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		FullName:       user.FullName,
		Username:       user.Username,
		Email:          user.Email,
		Password:       user.PasswordHash,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
		Followers:      []string{},
		Following:      []string{},
		Role:           user.Role,
		IsActive:       user.IsActive,
		DateOfBirth:    user.DateOfBirth,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateIdentifierError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.Followers = []string{}
	created.Following = []string{}
	return &created, nil
}

// duplicateIdentifierError resolves which unique index a duplicate-key error
// violated so an email collision is not reported as a taken username.
func duplicateIdentifierError(err error) error {
	if strings.Contains(err.Error(), emailUniqueIndex) {
		return domain.ErrEmailTaken
	}
	return domain.ErrUsernameTaken
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	oids := hexToObjectIDs(ids)
	if len(oids) == 0 {
		return []*domain.User{}, nil
	}
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": oids}}, 0)
}

func (r *UserRepository) FindByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]*domain.User, error) {
	filter := bson.M{
		"username":  bson.M{"$regex": "^" + regexp.QuoteMeta(prefix), "$options": "i"},
		"is_active": true,
	}
	return r.findMany(ctx, filter, int64(limit))
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	return r.findMany(ctx, bson.M{}, 0)
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email, "is_active": true})
	if err != nil {
		return false, fmt.Errorf("count email: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) UsernameTaken(ctx context.Context, username string, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"username": username, "is_active": true}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("count username: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"full_name":       user.FullName,
		"username":        user.Username,
		"bio":             user.Bio,
		"profile_picture": user.ProfilePicture,
		"date_of_birth":   user.DateOfBirth,
		"updated_at":      user.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role string) error {
	return r.setField(ctx, id, "role", role)
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.setField(ctx, id, "is_active", active)
}

// AddFollow writes the edge to both endpoint documents with $addToSet. Each
// write is atomic on its own document; the pair is not transactional.
func (r *UserRepository) AddFollow(ctx context.Context, followerID, targetID string) error {
	return r.updateEdge(ctx, followerID, targetID, "$addToSet")
}

// RemoveFollow removes the edge from both endpoint documents with $pull.
func (r *UserRepository) RemoveFollow(ctx context.Context, followerID, targetID string) error {
	return r.updateEdge(ctx, followerID, targetID, "$pull")
}

func (r *UserRepository) updateEdge(ctx context.Context, followerID, targetID, op string) error {
	followerOID, err := primitive.ObjectIDFromHex(followerID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	targetOID, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": followerOID}, bson.M{
		op:     bson.M{"following": targetID},
		"$set": bson.M{"updated_at": now},
	})
	if err != nil {
		return fmt.Errorf("update following: %w", err)
	}
	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": targetOID}, bson.M{
		op:     bson.M{"followers": followerID},
		"$set": bson.M{"updated_at": now},
	})
	if err != nil {
		return fmt.Errorf("update followers: %w", err)
	}
	return nil
}

func (r *UserRepository) setField(ctx context.Context, id, field string, value any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{field: value, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) findMany(ctx context.Context, filter bson.M, limit int64) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func hexToObjectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
