// internal/app/features/posts/routes.go
package posts

import (
	"github.com/go-chi/chi/v5"
	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
	"github.com/inkwellhq/inkwell/internal/app/system/auth"
)

// Routes mounts post detail, edit, and comment routes under the base path
// (typically "/posts").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.NotFound(uierrors.NotFound)

	r.Get("/{id}/", h.ServeDetail)
	r.Get("/{id}", h.ServeDetail)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/{id}/edit/", h.ServeEdit)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit/", h.HandleEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/comment/", h.HandleComment)
		pr.Post("/{id}/comment", h.HandleComment)
	})

	return r
}

// CreateRoutes mounts the new-post form under the base path (typically
// "/create").
func CreateRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeCreate)
		pr.Post("/", h.HandleCreate)
	})

	return r
}
