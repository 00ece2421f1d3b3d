// internal/app/system/feedview/feedview.go

// Package feedview computes the ordered, paginated post sequence for each
// of the four feed views: global, group, author (profile), and
// followed-authors. All views run the same fetch → paginate pipeline, so
// page size and relative post ordering are identical everywhere; two
// posts that appear in more than one view always appear in the same
// order.
//
// The resolver talks to storage through two small interfaces so the feed
// logic is independent of the Mongo query layer and testable against
// in-memory fakes.
package feedview

import (
	"context"

	"github.com/inkwellhq/inkwell/internal/app/system/paging"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostSource supplies posts already filtered and ordered newest-first
// (created_at descending, _id descending tiebreak). Filtering happens at
// the source, before pagination; filtering a fetched page would corrupt
// page boundaries.
type PostSource interface {
	All(ctx context.Context) ([]models.Post, error)
	ByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Post, error)
	ByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error)
	ByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) ([]models.Post, error)
}

// FollowSource answers follow-graph reads for profile flags and the
// followed-authors feed.
type FollowSource interface {
	Exists(ctx context.Context, userID, authorID primitive.ObjectID) (bool, error)
	AuthorIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// Resolver produces feed pages. Construct with New.
type Resolver struct {
	posts   PostSource
	follows FollowSource
}

func New(posts PostSource, follows FollowSource) *Resolver {
	return &Resolver{posts: posts, follows: follows}
}

// GlobalFeed returns the requested page of all posts.
func (rv *Resolver) GlobalFeed(ctx context.Context, pageNum int) (paging.Page[models.Post], error) {
	posts, err := rv.posts.All(ctx)
	if err != nil {
		return paging.Page[models.Post]{}, err
	}
	return paging.Paginate(posts, pageNum), nil
}

// GroupFeed returns the requested page of a group's posts. Resolving a
// slug to a group (and 404ing an unknown slug) is the caller's job.
func (rv *Resolver) GroupFeed(ctx context.Context, groupID primitive.ObjectID, pageNum int) (paging.Page[models.Post], error) {
	posts, err := rv.posts.ByGroup(ctx, groupID)
	if err != nil {
		return paging.Page[models.Post]{}, err
	}
	return paging.Paginate(posts, pageNum), nil
}

// ProfileResult is the author feed plus the display flags the profile
// page needs.
type ProfileResult struct {
	Page paging.Page[models.Post]

	// Total is the author's overall post count, independent of the page.
	Total int

	// IsSelf and IsFollowing are false for anonymous viewers.
	IsSelf      bool
	IsFollowing bool
}

// AuthorFeed returns the requested page of an author's posts together
// with the viewer's relationship to the author. viewer is nil for an
// anonymous request; an anonymous viewer is never self and never
// following.
func (rv *Resolver) AuthorFeed(ctx context.Context, viewer *primitive.ObjectID, authorID primitive.ObjectID, pageNum int) (ProfileResult, error) {
	posts, err := rv.posts.ByAuthor(ctx, authorID)
	if err != nil {
		return ProfileResult{}, err
	}

	res := ProfileResult{
		Page:  paging.Paginate(posts, pageNum),
		Total: len(posts),
	}

	if viewer == nil {
		return res, nil
	}
	if *viewer == authorID {
		res.IsSelf = true
		return res, nil
	}

	following, err := rv.follows.Exists(ctx, *viewer, authorID)
	if err != nil {
		return ProfileResult{}, err
	}
	res.IsFollowing = following
	return res, nil
}

// FollowingFeed returns the requested page of posts authored by the
// users the viewer follows. A viewer following nobody gets a valid empty
// page.
func (rv *Resolver) FollowingFeed(ctx context.Context, viewerID primitive.ObjectID, pageNum int) (paging.Page[models.Post], error) {
	authors, err := rv.follows.AuthorIDs(ctx, viewerID)
	if err != nil {
		return paging.Page[models.Post]{}, err
	}
	if len(authors) == 0 {
		return paging.Paginate([]models.Post{}, pageNum), nil
	}

	posts, err := rv.posts.ByAuthors(ctx, authors)
	if err != nil {
		return paging.Page[models.Post]{}, err
	}
	return paging.Paginate(posts, pageNum), nil
}
