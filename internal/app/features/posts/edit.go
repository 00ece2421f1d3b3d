// internal/app/features/posts/edit.go
package posts

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkwellhq/inkwell/internal/app/policy/postpolicy"
	poststore "github.com/inkwellhq/inkwell/internal/app/store/posts"
	"github.com/inkwellhq/inkwell/internal/app/system/authz"
	"github.com/inkwellhq/inkwell/internal/app/system/timeouts"
	"github.com/inkwellhq/inkwell/internal/app/system/viewdata"
)

// ServeEdit handles GET /posts/{id}/edit/. Anyone who is not the author
// is sent to the post detail instead of the form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, ok := h.lookupPost(ctx, w, r)
	if !ok {
		return
	}

	if !postpolicy.CanEdit(r, p) {
		http.Redirect(w, r, "/posts/"+p.ID.Hex()+"/", http.StatusSeeOther)
		return
	}

	data := postFormData{
		BaseVM:  viewdata.NewBaseVM(r, "Edit post"),
		Text:    p.Text,
		Editing: true,
		PostID:  p.ID.Hex(),
	}
	if p.GroupID != nil {
		data.GroupID = p.GroupID.Hex()
	}
	if p.ImagePath != "" {
		data.ImageURL = h.Images.URL(p.ImagePath)
	}
	h.renderPostForm(ctx, w, r, data)
}

// HandleEdit handles POST /posts/{id}/edit/.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogServerError(w, r, "parse edit form failed", err, "Unable to read the form.", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.lookupPost(ctx, w, r)
	if !ok {
		return
	}
	detailURL := "/posts/" + p.ID.Hex() + "/"

	if !postpolicy.CanEdit(r, p) {
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}
	_, _, viewerID, _ := authz.UserCtx(r)

	text := r.FormValue("text")
	groupRaw := r.FormValue("group")

	rerender := func(msg string) {
		h.renderPostForm(ctx, w, r, postFormData{
			BaseVM:  viewdata.NewBaseVM(r, "Edit post"),
			Error:   msg,
			Text:    text,
			GroupID: groupRaw,
			Editing: true,
			PostID:  p.ID.Hex(),
		})
	}

	groupID, err := parseGroupChoice(groupRaw)
	if err != nil {
		rerender("Pick a valid group.")
		return
	}

	// Only replace the stored image when a new file was uploaded.
	var imagePath *string
	uploaded, err := h.saveUpload(r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save post image failed", err, "Unable to store the image.", detailURL)
		return
	}
	if uploaded != "" {
		imagePath = &uploaded
	}

	_, err = h.Posts.Update(ctx, p.ID, viewerID, text, groupID, imagePath)
	switch {
	case errors.Is(err, poststore.ErrEmptyText):
		rerender("Post text must not be empty.")
		return
	case errors.Is(err, poststore.ErrUnknownGroup):
		rerender("Pick a valid group.")
		return
	case errors.Is(err, poststore.ErrNotAuthor):
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update post failed", err, "Unable to save the post.", detailURL)
		return
	}

	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}
