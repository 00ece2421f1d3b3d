// internal/app/store/follows/followstore.go

// Package followstore manages the directed follow graph.
//
// The edge is binary: present or absent. Both mutations are idempotent,
// so calling Follow twice is the same as calling it once, and Unfollow
// on a missing edge is a no-op. The unique (user_id, author_id) index is
// the authoritative guard against concurrent duplicate inserts; the
// in-code checks are conveniences, not the invariant.
package followstore

import (
	"context"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("follows")}
}

// Follow creates the edge userID → authorID. Self-follows and already
// existing edges are silent no-ops.
func (s *Store) Follow(ctx context.Context, userID, authorID primitive.ObjectID) error {
	if userID == authorID {
		return nil
	}

	f := models.Follow{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		AuthorID: authorID,
	}
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost the race with another Follow; the edge exists, which
			// is what the caller asked for.
			return nil
		}
		return err
	}
	return nil
}

// Unfollow deletes the edge userID → authorID; deleting an absent edge
// is not an error.
func (s *Store) Unfollow(ctx context.Context, userID, authorID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "author_id": authorID})
	return err
}

// Exists reports whether userID follows authorID.
func (s *Store) Exists(ctx context.Context, userID, authorID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "author_id": authorID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AuthorIDs returns the set of authors userID follows.
func (s *Store) AuthorIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var f models.Follow
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		ids = append(ids, f.AuthorID)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteForUser removes every edge touching userID, in either direction.
// Used by the user delete cascade.
func (s *Store) DeleteForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"$or": []bson.M{
		{"user_id": userID},
		{"author_id": userID},
	}})
	return err
}
