// internal/app/policy/postpolicy/postpolicy.go
package postpolicy

import (
	"net/http"

	"github.com/inkwellhq/inkwell/internal/app/system/authz"
	"github.com/inkwellhq/inkwell/internal/domain/models"
)

// CanEdit reports whether the current request user may edit the post.
// Only the author can; there are no moderator roles.
func CanEdit(r *http.Request, p models.Post) bool {
	_, _, uid, ok := authz.UserCtx(r)
	return ok && uid == p.AuthorID
}

// CanComment reports whether the current request user may comment.
// Any signed-in user can.
func CanComment(r *http.Request) bool {
	_, _, _, ok := authz.UserCtx(r)
	return ok
}
