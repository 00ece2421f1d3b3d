// internal/app/features/posts/handler.go
package posts

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
	commentstore "github.com/inkwellhq/inkwell/internal/app/store/comments"
	groupstore "github.com/inkwellhq/inkwell/internal/app/store/groups"
	poststore "github.com/inkwellhq/inkwell/internal/app/store/posts"
	userstore "github.com/inkwellhq/inkwell/internal/app/store/users"
	"github.com/inkwellhq/inkwell/internal/app/system/imagestore"
	"github.com/inkwellhq/inkwell/internal/app/system/postview"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxUploadBytes bounds post image uploads.
const maxUploadBytes = 10 << 20

// Handler serves post pages: detail, create, edit, and commenting.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Posts    *poststore.Store
	Comments *commentstore.Store
	Users    *userstore.Store
	Groups   *groupstore.Store
	Views    *postview.Hydrator
	Images   *imagestore.Store
}

func NewHandler(posts *poststore.Store, comments *commentstore.Store, users *userstore.Store, groups *groupstore.Store, views *postview.Hydrator, images *imagestore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		Posts:    posts,
		Comments: comments,
		Users:    users,
		Groups:   groups,
		Views:    views,
		Images:   images,
	}
}

// lookupPost resolves {id} and writes the 404 page itself when the post
// does not exist or the ID is malformed.
func (h *Handler) lookupPost(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Post, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "No such post.")
		return models.Post{}, false
	}

	p, err := h.Posts.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		uierrors.RenderNotFound(w, r, "No such post.")
		return models.Post{}, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load post failed", err, "Unable to load the post.", "")
		return models.Post{}, false
	}
	return p, true
}

// saveUpload stores the optional "image" form file and returns the stored
// filename, or "" when no file was submitted.
func (h *Handler) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return "", err
	}
	return h.Images.Save(header.Filename, data)
}
