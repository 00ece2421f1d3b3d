// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"
	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
	"github.com/inkwellhq/inkwell/internal/app/system/auth"
)

// Routes mounts profile pages under the base path (typically "/profile").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.NotFound(uierrors.NotFound)

	r.Get("/{username}/", h.ServeProfile)
	r.Get("/{username}", h.ServeProfile)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/{username}/follow/", h.HandleFollow)
		pr.Post("/{username}/follow", h.HandleFollow)
		pr.Post("/{username}/unfollow/", h.HandleUnfollow)
		pr.Post("/{username}/unfollow", h.HandleUnfollow)
	})

	return r
}
