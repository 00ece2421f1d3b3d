// internal/app/features/groups/handler.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
	groupstore "github.com/inkwellhq/inkwell/internal/app/store/groups"
	"github.com/inkwellhq/inkwell/internal/app/system/feedview"
	"github.com/inkwellhq/inkwell/internal/app/system/paging"
	"github.com/inkwellhq/inkwell/internal/app/system/postview"
	"github.com/inkwellhq/inkwell/internal/app/system/timeouts"
	"github.com/inkwellhq/inkwell/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves group pages.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Groups   *groupstore.Store
	Resolver *feedview.Resolver
	Views    *postview.Hydrator
}

func NewHandler(groups *groupstore.Store, resolver *feedview.Resolver, views *postview.Hydrator, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		Groups:   groups,
		Resolver: resolver,
		Views:    views,
	}
}

type groupPageData struct {
	viewdata.BaseVM
	GroupTitle       string
	GroupDescription string
	Posts            []postview.PostVM
	Pager            viewdata.Pager
}

// ServeGroup handles GET /group/{slug}/.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	pageNum := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetBySlug(ctx, slug)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "No such group.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load group failed", err, "Unable to load the group.", "")
		return
	}

	page, err := h.Resolver.GroupFeed(ctx, g.ID, pageNum)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load group feed failed", err, "Unable to load the group.", "")
		return
	}

	vms, err := h.Views.VMs(ctx, page.Items)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hydrate group posts failed", err, "Unable to load the group.", "")
		return
	}

	data := groupPageData{
		BaseVM:           viewdata.NewBaseVM(r, g.Title),
		GroupTitle:       g.Title,
		GroupDescription: g.Description,
		Posts:            vms,
		Pager:            viewdata.Pager{Page: page, BasePath: "/group/" + g.Slug + "/"},
	}
	templates.Render(w, r, "group_feed", data)
}
