package store

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jakirhossain80/stockly/auth"
)

const usersCollection = "users"

// UserStore implements auth.Users on top of the shared Mongo handle
type UserStore struct {
	client *Client
}

// NewUserStore creates a user store
func NewUserStore(client *Client) *UserStore {
	return &UserStore{client: client}
}

// EnsureIndexes creates the unique indexes the auth invariants rely on:
// email is globally unique, username is unique when present.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	coll, err := s.client.Collection(ctx, usersCollection)
	if err != nil {
		return err
	}

	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to create user indexes")
	}

	return nil
}

// FindByEmail finds one user by exact (already lowercased) email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindByUsername finds one user by verbatim username
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

// FindByID finds one user by its hex object id
func (s *UserStore) FindByID(ctx context.Context, id string) (*auth.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errNotFound()
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*auth.User, error) {
	coll, err := s.client.Collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	var user auth.User
	if err := coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errNotFound()
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to query users")
	}

	return &user, nil
}

// Create inserts a new user. A duplicate email, whether pre-existing or
// surfaced by a racing insert, becomes a conflict error.
func (s *UserStore) Create(ctx context.Context, user *auth.User) (*auth.User, error) {
	coll, err := s.client.Collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	if user.CreatedAt == nil {
		now := time.Now()
		user.CreatedAt = &now
	}

	res, err := coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.New("user already exists", errors.CategoryConflict).
				WithTextCode("USER_EXISTS").
				WithCode(errors.CodeConflict)
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to insert user")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return user, nil
}

// UpsertFederated atomically ensures a record exists for the email:
// role and createdAt are written only on first insert, display fields are
// refreshed on every call. A duplicate-key race against a concurrent
// upsert is benign; the retry reads the record the winner created.
func (s *UserStore) UpsertFederated(ctx context.Context, email, name, image string) (*auth.User, error) {
	coll, err := s.client.Collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	filter := bson.M{"email": email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"email":     email,
			"role":      auth.RoleUser,
			"createdAt": now,
		},
		"$set": bson.M{
			"name":      name,
			"image":     image,
			"updatedAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user auth.User
	err = coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// lost the upsert race; the record exists now
		err = coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to upsert federated user")
	}

	return &user, nil
}

func errNotFound() error {
	return errors.New("user not found", errors.CategoryNotFound).
		WithTextCode("USER_NOT_FOUND").
		WithCode(errors.CodeNotFound)
}

var _ auth.Users = (*UserStore)(nil)
