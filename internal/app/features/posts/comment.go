// internal/app/features/posts/comment.go
package posts

import (
	"context"
	"errors"
	"net/http"

	commentstore "github.com/inkwellhq/inkwell/internal/app/store/comments"
	"github.com/inkwellhq/inkwell/internal/app/system/authz"
	"github.com/inkwellhq/inkwell/internal/app/system/timeouts"
)

// HandleComment handles POST /posts/{id}/comment/. Success and an empty
// comment both land back on the detail page; an empty comment simply adds
// nothing.
func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, ok := h.lookupPost(ctx, w, r)
	if !ok {
		return
	}
	detailURL := "/posts/" + p.ID.Hex() + "/"

	_, _, viewerID, signedIn := authz.UserCtx(r)
	if !signedIn {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	_, err := h.Comments.Create(ctx, p.ID, viewerID, r.FormValue("text"))
	if err != nil && !errors.Is(err, commentstore.ErrEmptyText) {
		h.ErrLog.LogServerError(w, r, "create comment failed", err, "Unable to add the comment.", detailURL)
		return
	}

	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}
