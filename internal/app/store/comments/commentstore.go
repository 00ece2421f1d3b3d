// internal/app/store/comments/commentstore.go
package commentstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrEmptyText rejects comments whose text is empty or whitespace.
var ErrEmptyText = errors.New("comment text must not be empty")

type Store struct {
	c *mongo.Collection

	// posts is needed so Create can verify the post exists.
	posts *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("comments"),
		posts: db.Collection("posts"),
	}
}

// Create inserts a comment on an existing post. Returns
// mongo.ErrNoDocuments when the post is unknown. Comments are immutable
// once created; there is no update or delete surface.
func (s *Store) Create(ctx context.Context, postID, authorID primitive.ObjectID, text string) (models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return models.Comment{}, ErrEmptyText
	}

	n, err := s.posts.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		return models.Comment{}, err
	}
	if n == 0 {
		return models.Comment{}, mongo.ErrNoDocuments
	}

	c := models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// ByPost returns a post's comments in creation order (oldest first).
func (s *Store) ByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	cur, err := s.c.Find(ctx, bson.M{"post_id": postID},
		options.Find().SetSort(bson.D{
			{Key: "created_at", Value: 1},
			{Key: "_id", Value: 1},
		}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByAuthor removes all of a user's comments. Used by the user
// delete cascade.
func (s *Store) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"author_id": authorID})
	return err
}
