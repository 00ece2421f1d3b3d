// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
	followstore "github.com/inkwellhq/inkwell/internal/app/store/follows"
	userstore "github.com/inkwellhq/inkwell/internal/app/store/users"
	"github.com/inkwellhq/inkwell/internal/app/system/authz"
	"github.com/inkwellhq/inkwell/internal/app/system/feedview"
	"github.com/inkwellhq/inkwell/internal/app/system/paging"
	"github.com/inkwellhq/inkwell/internal/app/system/postview"
	"github.com/inkwellhq/inkwell/internal/app/system/timeouts"
	"github.com/inkwellhq/inkwell/internal/app/system/viewdata"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves author profile pages and the follow/unfollow actions.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Users    *userstore.Store
	Follows  *followstore.Store
	Resolver *feedview.Resolver
	Views    *postview.Hydrator
}

func NewHandler(users *userstore.Store, follows *followstore.Store, resolver *feedview.Resolver, views *postview.Hydrator, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		Users:    users,
		Follows:  follows,
		Resolver: resolver,
		Views:    views,
	}
}

type profilePageData struct {
	viewdata.BaseVM
	ProfileUsername string
	ProfileName     string
	PostCount       int
	IsSelf          bool
	IsFollowing     bool
	Posts           []postview.PostVM
	Pager           viewdata.Pager
}

// ServeProfile handles GET /profile/{username}/.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	pageNum := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, ok := h.lookupUser(ctx, w, r)
	if !ok {
		return
	}

	res, err := h.Resolver.AuthorFeed(ctx, authz.ViewerID(r), u.ID, pageNum)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile feed failed", err, "Unable to load the profile.", "")
		return
	}

	vms, err := h.Views.VMs(ctx, res.Page.Items)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hydrate profile posts failed", err, "Unable to load the profile.", "")
		return
	}

	data := profilePageData{
		BaseVM:          viewdata.NewBaseVM(r, u.DisplayName),
		ProfileUsername: u.Username,
		ProfileName:     u.DisplayName,
		PostCount:       res.Total,
		IsSelf:          res.IsSelf,
		IsFollowing:     res.IsFollowing,
		Posts:           vms,
		Pager:           viewdata.Pager{Page: res.Page, BasePath: "/profile/" + u.Username + "/"},
	}
	templates.Render(w, r, "profile", data)
}

// HandleFollow handles POST /profile/{username}/follow/. Following
// yourself or someone you already follow changes nothing.
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, ok := h.lookupUser(ctx, w, r)
	if !ok {
		return
	}
	_, _, viewerID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	if err := h.Follows.Follow(ctx, viewerID, u.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "follow failed", err, "Unable to follow this author.", "")
		return
	}
	http.Redirect(w, r, "/profile/"+u.Username+"/", http.StatusSeeOther)
}

// HandleUnfollow handles POST /profile/{username}/unfollow/.
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, ok := h.lookupUser(ctx, w, r)
	if !ok {
		return
	}
	_, _, viewerID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "")
		return
	}

	if err := h.Follows.Unfollow(ctx, viewerID, u.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "unfollow failed", err, "Unable to unfollow this author.", "")
		return
	}
	http.Redirect(w, r, "/profile/"+u.Username+"/", http.StatusSeeOther)
}

// lookupUser resolves {username} and writes the 404 page itself when the
// user does not exist.
func (h *Handler) lookupUser(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.User, bool) {
	username := chi.URLParam(r, "username")

	u, err := h.Users.GetByUsername(ctx, username)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "No such author.")
		return models.User{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load user failed", err, "Unable to load the profile.", "")
		return models.User{}, false
	}
	return u, true
}
