// internal/app/store/posts/poststore.go
package poststore

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

var (
	// ErrEmptyText rejects posts whose text is empty or whitespace.
	ErrEmptyText = errors.New("post text must not be empty")

	// ErrUnknownGroup rejects posts referencing a group that does not exist.
	ErrUnknownGroup = errors.New("post group does not exist")

	// ErrNotAuthor rejects edits by anyone but the post's author.
	ErrNotAuthor = errors.New("only the author may modify a post")
)

// feedSort is the one ordering every feed uses: newest first, _id
// descending as the tiebreak so the order is total.
var feedSort = bson.D{
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}

type Store struct {
	c      *mongo.Collection
	groups *mongo.Collection

	// comments is needed for the delete cascade.
	comments *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("posts"),
		groups:   db.Collection("groups"),
		comments: db.Collection("comments"),
	}
}

// Create inserts a new post. The author and creation time are fixed at
// this point and never change afterwards.
func (s *Store) Create(ctx context.Context, authorID primitive.ObjectID, text string, groupID *primitive.ObjectID, imagePath string) (models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return models.Post{}, ErrEmptyText
	}
	if err := s.checkGroup(ctx, groupID); err != nil {
		return models.Post{}, err
	}

	p := models.Post{
		ID:        primitive.NewObjectID(),
		Text:      text,
		AuthorID:  authorID,
		GroupID:   groupID,
		ImagePath: imagePath,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// GetByID loads one post. Returns mongo.ErrNoDocuments when unknown.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// Update edits a post's text, group, and (optionally) image.
//
// Only the author may edit: any other editor gets ErrNotAuthor. A nil
// imagePath keeps the current image; a pointer to "" removes it.
// author_id and created_at are never touched.
func (s *Store) Update(ctx context.Context, postID, editorID primitive.ObjectID, text string, groupID *primitive.ObjectID, imagePath *string) (models.Post, error) {
	p, err := s.GetByID(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}
	if p.AuthorID != editorID {
		return models.Post{}, ErrNotAuthor
	}
	if strings.TrimSpace(text) == "" {
		return models.Post{}, ErrEmptyText
	}
	if err := s.checkGroup(ctx, groupID); err != nil {
		return models.Post{}, err
	}

	set := bson.M{"text": text}
	unset := bson.M{}
	if groupID != nil {
		set["group_id"] = *groupID
	} else {
		unset["group_id"] = ""
	}
	if imagePath != nil {
		if *imagePath == "" {
			unset["image_path"] = ""
		} else {
			set["image_path"] = *imagePath
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if _, err := s.c.UpdateByID(ctx, postID, update); err != nil {
		return models.Post{}, err
	}
	return s.GetByID(ctx, postID)
}

// Delete removes a post and its comments.
func (s *Store) Delete(ctx context.Context, postID primitive.ObjectID) error {
	if _, err := s.comments.DeleteMany(ctx, bson.M{"post_id": postID}); err != nil {
		return err
	}
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}

// DeleteByAuthor removes all of an author's posts and their comments.
// Used by the user delete cascade.
func (s *Store) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	cur, err := s.c.Find(ctx, bson.M{"author_id": authorID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return err
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	if _, err := s.comments.DeleteMany(ctx, bson.M{"post_id": bson.M{"$in": ids}}); err != nil {
		return err
	}
	_, err = s.c.DeleteMany(ctx, bson.M{"author_id": authorID})
	return err
}

// All returns every post in feed order.
func (s *Store) All(ctx context.Context) ([]models.Post, error) {
	return s.find(ctx, bson.M{})
}

// ByGroup returns a group's posts in feed order.
func (s *Store) ByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"group_id": groupID})
}

// ByAuthor returns an author's posts in feed order.
func (s *Store) ByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	return s.find(ctx, bson.M{"author_id": authorID})
}

// ByAuthors returns posts by any of the given authors in feed order.
func (s *Store) ByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}})
}

// CountByAuthor returns an author's total post count.
func (s *Store) CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"author_id": authorID})
}

// ClearGroup nulls the group reference on every post filing under
// groupID. One UpdateMany, so no half-updated state is observable.
// Returns the number of posts touched.
func (s *Store) ClearGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"group_id": groupID},
		bson.M{"$unset": bson.M{"group_id": ""}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(feedSort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) checkGroup(ctx context.Context, groupID *primitive.ObjectID) error {
	if groupID == nil {
		return nil
	}
	n, err := s.groups.CountDocuments(ctx, bson.M{"_id": *groupID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUnknownGroup
	}
	return nil
}
