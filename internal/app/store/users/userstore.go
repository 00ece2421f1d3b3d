// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/inkwellhq/inkwell/internal/app/store/comments"
	"github.com/inkwellhq/inkwell/internal/app/store/follows"
	"github.com/inkwellhq/inkwell/internal/app/store/posts"
	"github.com/inkwellhq/inkwell/internal/app/system/normalize"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("a user with this username already exists")

	// ErrEmptyUsername rejects accounts without a usable username.
	ErrEmptyUsername = errors.New("username must not be empty")
)

type Store struct {
	c  *mongo.Collection
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users"), db: db}
}

// Create inserts a new user with a bcrypt password hash.
func (s *Store) Create(ctx context.Context, username, displayName, password string) (models.User, error) {
	username = normalize.Username(username)
	if username == "" {
		return models.User{}, ErrEmptyUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		DisplayName:  normalize.Name(displayName),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if u.DisplayName == "" {
		u.DisplayName = username
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByUsername loads a user by username (case-insensitive). Returns
// mongo.ErrNoDocuments when unknown.
func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	filter := bson.M{"username_ci": text.Fold(normalize.Username(username))}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ByIDs loads the given users in one query, keyed by ID. Missing IDs are
// simply absent from the map.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// VerifyPassword reports whether password matches the user's hash.
func VerifyPassword(u models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Delete removes a user and cascades: their posts (with those posts'
// comments), their comments on other posts, and every follow edge they
// appear in, in either direction.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := poststore.New(s.db).DeleteByAuthor(ctx, id); err != nil {
		return err
	}
	if err := commentstore.New(s.db).DeleteByAuthor(ctx, id); err != nil {
		return err
	}
	if err := followstore.New(s.db).DeleteForUser(ctx, id); err != nil {
		return err
	}
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
