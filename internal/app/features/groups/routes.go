// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
)

// Routes mounts group pages under the base path (typically "/group").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.NotFound(uierrors.NotFound)
	r.Get("/{slug}/", h.ServeGroup)
	r.Get("/{slug}", h.ServeGroup)
	return r
}
