// internal/app/features/posts/create.go
package posts

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	poststore "github.com/inkwellhq/inkwell/internal/app/store/posts"
	"github.com/inkwellhq/inkwell/internal/app/system/authz"
	"github.com/inkwellhq/inkwell/internal/app/system/timeouts"
	"github.com/inkwellhq/inkwell/internal/app/system/viewdata"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type postFormData struct {
	viewdata.BaseVM
	Error    string
	Text     string
	GroupID  string
	Groups   []models.Group
	Editing  bool
	PostID   string
	ImageURL string
}

// ServeCreate handles GET /create/.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	h.renderPostForm(ctx, w, r, postFormData{
		BaseVM: viewdata.NewBaseVM(r, "New post"),
	})
}

// HandleCreate handles POST /create/. On success the author lands on
// their own profile, where the new post is on top.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogServerError(w, r, "parse post form failed", err, "Unable to read the form.", "/create/")
		return
	}

	username, _, authorID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	text := r.FormValue("text")
	groupRaw := r.FormValue("group")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groupID, err := parseGroupChoice(groupRaw)
	if err != nil {
		h.renderPostForm(ctx, w, r, postFormData{
			BaseVM: viewdata.NewBaseVM(r, "New post"),
			Error:  "Pick a valid group.",
			Text:   text,
		})
		return
	}

	imagePath, err := h.saveUpload(r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save post image failed", err, "Unable to store the image.", "/create/")
		return
	}

	_, err = h.Posts.Create(ctx, authorID, text, groupID, imagePath)
	switch {
	case errors.Is(err, poststore.ErrEmptyText):
		h.renderPostForm(ctx, w, r, postFormData{
			BaseVM:  viewdata.NewBaseVM(r, "New post"),
			Error:   "Post text must not be empty.",
			GroupID: groupRaw,
		})
		return
	case errors.Is(err, poststore.ErrUnknownGroup):
		h.renderPostForm(ctx, w, r, postFormData{
			BaseVM: viewdata.NewBaseVM(r, "New post"),
			Error:  "Pick a valid group.",
			Text:   text,
		})
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create post failed", err, "Unable to publish the post.", "/create/")
		return
	}

	http.Redirect(w, r, "/profile/"+username+"/", http.StatusSeeOther)
}

// renderPostForm renders the shared create/edit form with the group picker
// populated.
func (h *Handler) renderPostForm(ctx context.Context, w http.ResponseWriter, r *http.Request, data postFormData) {
	groups, err := h.Groups.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list groups failed", err, "Unable to load the form.", "")
		return
	}
	data.Groups = groups
	templates.Render(w, r, "post_form", data)
}

// parseGroupChoice maps the group select value to an optional group ID.
// The empty choice means "no group".
func parseGroupChoice(raw string) (*primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
