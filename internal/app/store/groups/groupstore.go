// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/inkwellhq/inkwell/internal/app/system/normalize"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateSlug is returned when a group with this slug already exists.
	ErrDuplicateSlug = errors.New("a group with this slug already exists")

	// ErrEmptySlug rejects groups without a usable slug.
	ErrEmptySlug = errors.New("group slug must not be empty")
)

type Store struct {
	c *mongo.Collection

	// posts is needed so Delete can null group references in one step.
	posts *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("groups"),
		posts: db.Collection("posts"),
	}
}

// Create inserts a group after canonicalizing the slug.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	g.ID = primitive.NewObjectID()
	g.Slug = normalize.Slug(g.Slug)
	if g.Slug == "" {
		return models.Group{}, ErrEmptySlug
	}
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateSlug
		}
		return models.Group{}, err
	}
	return g, nil
}

// GetBySlug loads a group by its URL slug. Returns mongo.ErrNoDocuments
// when unknown.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"slug": normalize.Slug(slug)}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByID loads a group by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// List returns all groups ordered by title, for pickers and nav.
func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Delete removes a group. Posts filed under it are kept; their group
// reference is nulled first (one UpdateMany), so a post never points at
// a missing group and no half-updated state is observable.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.posts.UpdateMany(ctx,
		bson.M{"group_id": id},
		bson.M{"$unset": bson.M{"group_id": ""}}); err != nil {
		return err
	}
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
