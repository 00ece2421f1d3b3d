package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/inkwellhq/inkwell/internal/app/system/normalize"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given username.
func (f *Fixtures) CreateUser(ctx context.Context, username string) models.User {
	f.t.Helper()

	username = normalize.Username(username)
	u := models.User{
		ID:          primitive.NewObjectID(),
		Username:    username,
		UsernameCI:  text.Fold(username),
		DisplayName: username,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateGroup creates a test group with the given title and slug.
func (f *Fixtures) CreateGroup(ctx context.Context, title, slug string) models.Group {
	f.t.Helper()

	g := models.Group{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Slug:        normalize.Slug(slug),
		Description: "Test group " + title,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// CreatePost creates a test post by the given author, optionally in a group.
func (f *Fixtures) CreatePost(ctx context.Context, authorID primitive.ObjectID, text string, groupID *primitive.ObjectID) models.Post {
	f.t.Helper()

	p := models.Post{
		ID:        primitive.NewObjectID(),
		Text:      text,
		AuthorID:  authorID,
		GroupID:   groupID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}

// CreateComment creates a test comment on the given post.
func (f *Fixtures) CreateComment(ctx context.Context, postID, authorID primitive.ObjectID, text string) models.Comment {
	f.t.Helper()

	c := models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("comments").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return c
}

// CreateFollow creates a follow edge from userID to authorID.
func (f *Fixtures) CreateFollow(ctx context.Context, userID, authorID primitive.ObjectID) models.Follow {
	f.t.Helper()

	fl := models.Follow{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		AuthorID: authorID,
	}
	if _, err := f.db.Collection("follows").InsertOne(ctx, fl); err != nil {
		f.t.Fatalf("failed to create test follow: %v", err)
	}
	return fl
}
