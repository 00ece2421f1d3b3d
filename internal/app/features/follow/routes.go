// internal/app/features/follow/routes.go
package follow

import (
	"github.com/go-chi/chi/v5"
	"github.com/inkwellhq/inkwell/internal/app/system/auth"
)

// Routes mounts the following feed under the base path (typically "/follow").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeFeed)
	})

	return r
}
