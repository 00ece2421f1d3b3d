// internal/app/features/feed/handler.go
package feed

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
	"github.com/inkwellhq/inkwell/internal/app/system/feedview"
	"github.com/inkwellhq/inkwell/internal/app/system/paging"
	"github.com/inkwellhq/inkwell/internal/app/system/postview"
	"github.com/inkwellhq/inkwell/internal/app/system/timeouts"
	"github.com/inkwellhq/inkwell/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler serves the global feed on the site root.
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

type feedPageData struct {
	viewdata.BaseVM
	Posts []postview.PostVM
	Pager viewdata.Pager
}

// ServeFeed handles GET /. The page-cache middleware in bootstrap sits in
// front of this handler, so anonymous reads are usually served from cache.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	pageNum := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.Resolver.GlobalFeed(ctx, pageNum)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load global feed failed", err, "Unable to load the feed.", "")
		return
	}

	vms, err := h.Views.VMs(ctx, page.Items)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hydrate feed posts failed", err, "Unable to load the feed.", "")
		return
	}

	data := feedPageData{
		BaseVM: viewdata.NewBaseVM(r, "Latest posts"),
		Posts:  vms,
		Pager:  viewdata.Pager{Page: page, BasePath: "/"},
	}
	templates.Render(w, r, "feed", data)
}
