// internal/app/features/posts/detail.go
package posts

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/inkwellhq/inkwell/internal/app/policy/postpolicy"
	"github.com/inkwellhq/inkwell/internal/app/system/htmlsanitize"
	"github.com/inkwellhq/inkwell/internal/app/system/postview"
	"github.com/inkwellhq/inkwell/internal/app/system/timeouts"
	"github.com/inkwellhq/inkwell/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type commentVM struct {
	AuthorUsername string
	AuthorName     string
	TextHTML       template.HTML
	CreatedAt      time.Time
}

type detailPageData struct {
	viewdata.BaseVM
	Post            postview.PostVM
	AuthorPostCount int64
	IsAuthor        bool
	Comments        []commentVM
}

// ServeDetail handles GET /posts/{id}/.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, ok := h.lookupPost(ctx, w, r)
	if !ok {
		return
	}

	vm, err := h.Views.VM(ctx, p)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hydrate post failed", err, "Unable to load the post.", "")
		return
	}

	count, err := h.Posts.CountByAuthor(ctx, p.AuthorID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count author posts failed", err, "Unable to load the post.", "")
		return
	}

	comments, err := h.Comments.ByPost(ctx, p.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load comments failed", err, "Unable to load the post.", "")
		return
	}

	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := h.Users.ByIDs(ctx, authorIDs)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load comment authors failed", err, "Unable to load the post.", "")
		return
	}

	cvms := make([]commentVM, 0, len(comments))
	for _, c := range comments {
		cvm := commentVM{
			TextHTML:  htmlsanitize.Text(c.Text),
			CreatedAt: c.CreatedAt,
		}
		if a, ok := authors[c.AuthorID]; ok {
			cvm.AuthorUsername = a.Username
			cvm.AuthorName = a.DisplayName
		}
		cvms = append(cvms, cvm)
	}

	data := detailPageData{
		BaseVM:          viewdata.NewBaseVM(r, "Post by "+vm.AuthorName),
		Post:            vm,
		AuthorPostCount: count,
		IsAuthor:        postpolicy.CanEdit(r, p),
		Comments:        cvms,
	}
	templates.Render(w, r, "post_detail", data)
}
