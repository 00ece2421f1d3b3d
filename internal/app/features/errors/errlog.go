// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/inkwellhq/inkwell/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// ErrorLogger logs server-side failures and renders a friendly 500 page.
// Handlers call LogServerError instead of pairing a zap call with an
// http.Error, so the log line and the user response never drift apart.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger bound to the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs logMsg with the error and request path, then renders
// a 500 page showing userMsg. If backURL is empty, a safe back URL is
// resolved from the request.
func (el *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	el.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	if userMsg == "" {
		userMsg = "Something went wrong. Please try again."
	}
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Server error"),
		Message: userMsg,
		BackURL: backURL,
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_server", data)
}
