// internal/app/features/follow/handler.go
package follow

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
	"github.com/inkwellhq/inkwell/internal/app/system/authz"
	"github.com/inkwellhq/inkwell/internal/app/system/feedview"
	"github.com/inkwellhq/inkwell/internal/app/system/paging"
	"github.com/inkwellhq/inkwell/internal/app/system/postview"
	"github.com/inkwellhq/inkwell/internal/app/system/timeouts"
	"github.com/inkwellhq/inkwell/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler serves the followed-authors feed.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Resolver *feedview.Resolver
	Views    *postview.Hydrator
}

func NewHandler(resolver *feedview.Resolver, views *postview.Hydrator, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		Resolver: resolver,
		Views:    views,
	}
}

type followPageData struct {
	viewdata.BaseVM
	Posts []postview.PostVM
	Pager viewdata.Pager
}

// ServeFeed handles GET /follow/: posts from every author the signed-in
// user follows, newest first.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	pageNum := paging.ParsePage(r)

	_, _, viewerID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.Resolver.FollowingFeed(ctx, viewerID, pageNum)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load following feed failed", err, "Unable to load your feed.", "")
		return
	}

	vms, err := h.Views.VMs(ctx, page.Items)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hydrate following feed failed", err, "Unable to load your feed.", "")
		return
	}

	data := followPageData{
		BaseVM: viewdata.NewBaseVM(r, "Authors you follow"),
		Posts:  vms,
		Pager:  viewdata.Pager{Page: page, BasePath: "/follow/"},
	}
	templates.Render(w, r, "follow_feed", data)
}
