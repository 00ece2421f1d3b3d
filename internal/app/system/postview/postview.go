// Package postview hydrates posts with the author and group data the
// templates need, using one batched lookup per collection instead of a
// query per post.
package postview

import (
	"context"
	"html/template"
	"time"

	"github.com/inkwellhq/inkwell/internal/app/system/htmlsanitize"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PostVM is the template-facing view of a post.
type PostVM struct {
	ID             string
	AuthorUsername string
	AuthorName     string
	HasGroup       bool
	GroupTitle     string
	GroupSlug      string
	TextHTML       template.HTML
	ImageURL       string
	CreatedAt      time.Time
}

type Hydrator struct {
	users       *mongo.Collection
	groups      *mongo.Collection
	mediaPrefix string
}

// New constructs a Hydrator. mediaPrefix is the URL prefix uploaded
// images are served under (e.g. "/media").
func New(db *mongo.Database, mediaPrefix string) *Hydrator {
	return &Hydrator{
		users:       db.Collection("users"),
		groups:      db.Collection("groups"),
		mediaPrefix: mediaPrefix,
	}
}

// VMs builds view models for a page of posts.
func (h *Hydrator) VMs(ctx context.Context, posts []models.Post) ([]PostVM, error) {
	userIDs := make([]primitive.ObjectID, 0, len(posts))
	groupIDs := make([]primitive.ObjectID, 0)
	seenUsers := map[primitive.ObjectID]bool{}
	seenGroups := map[primitive.ObjectID]bool{}
	for _, p := range posts {
		if !seenUsers[p.AuthorID] {
			seenUsers[p.AuthorID] = true
			userIDs = append(userIDs, p.AuthorID)
		}
		if p.GroupID != nil && !seenGroups[*p.GroupID] {
			seenGroups[*p.GroupID] = true
			groupIDs = append(groupIDs, *p.GroupID)
		}
	}

	users, err := h.loadUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	groups, err := h.loadGroups(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	vms := make([]PostVM, 0, len(posts))
	for _, p := range posts {
		vm := PostVM{
			ID:        p.ID.Hex(),
			TextHTML:  htmlsanitize.Text(p.Text),
			CreatedAt: p.CreatedAt,
		}
		if u, ok := users[p.AuthorID]; ok {
			vm.AuthorUsername = u.Username
			vm.AuthorName = u.DisplayName
		}
		if p.GroupID != nil {
			if g, ok := groups[*p.GroupID]; ok {
				vm.HasGroup = true
				vm.GroupTitle = g.Title
				vm.GroupSlug = g.Slug
			}
		}
		if p.ImagePath != "" {
			vm.ImageURL = h.mediaPrefix + "/" + p.ImagePath
		}
		vms = append(vms, vm)
	}
	return vms, nil
}

// VM builds the view model for a single post.
func (h *Hydrator) VM(ctx context.Context, p models.Post) (PostVM, error) {
	vms, err := h.VMs(ctx, []models.Post{p})
	if err != nil {
		return PostVM{}, err
	}
	return vms[0], nil
}

func (h *Hydrator) loadUsers(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := h.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
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

func (h *Hydrator) loadGroups(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Group, error) {
	out := make(map[primitive.ObjectID]models.Group, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := h.groups.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	for _, g := range groups {
		out[g.ID] = g
	}
	return out, nil
}
