// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
	userstore "github.com/inkwellhq/inkwell/internal/app/store/users"
	"github.com/inkwellhq/inkwell/internal/app/system/auth"
	"github.com/inkwellhq/inkwell/internal/app/system/timeouts"
	"github.com/inkwellhq/inkwell/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the login form and signs users in.
type Handler struct {
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
}

func NewHandler(users *userstore.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		ErrLog:     errLog,
		Users:      users,
		SessionMgr: sessionMgr,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Username  string
	ReturnURL string
}

// ServeLogin handles GET /login. Signed-in users are sent straight to
// their return URL.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := safeReturnURL(query.Get(r, "return"))

	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, ret, http.StatusSeeOther)
		return
	}

	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Log in"),
		ReturnURL: ret,
	}
	templates.Render(w, r, "login", data)
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogServerError(w, r, "parse login form failed", err, "Unable to read the form.", "/login")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	ret := safeReturnURL(r.FormValue("return"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.renderFormWithError(w, r, username, ret)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load user for login failed", err, "Unable to sign you in.", "/login")
		return
	}

	if !userstore.VerifyPassword(u, password) {
		h.renderFormWithError(w, r, username, ret)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "save login session failed", err, "Unable to sign you in.", "/login")
		return
	}

	h.Log.Info("user signed in", zap.String("username", u.Username))
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

// renderFormWithError re-renders the form with a message that does not
// reveal whether the username or the password was wrong.
func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, username, ret string) {
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Log in"),
		Error:     "Invalid username or password.",
		Username:  username,
		ReturnURL: ret,
	}
	templates.Render(w, r, "login", data)
}

// safeReturnURL only accepts local paths; anything else falls back to "/".
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/"
	}
	return raw
}
