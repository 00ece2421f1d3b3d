// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/inkwellhq/inkwell/internal/app/system/auth"
	"github.com/inkwellhq/inkwell/internal/app/system/paging"
	"github.com/inkwellhq/inkwell/internal/domain/models"
)

// DefaultSiteName is the site title shown in page chrome.
const DefaultSiteName = "Inkwell"

// BaseVM contains the fields every page template needs.
// Embed it in feature-specific view models:
//
//	type feedPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Username   string
	UserName   string // display name

	// Page context
	Title       string
	CurrentPath string
}

// Pager feeds the shared "pager" template: the page being shown plus the
// path prev/next links should point at.
type Pager struct {
	Page     paging.Page[models.Post]
	BasePath string
}

// NewBaseVM creates a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title string) BaseVM {
	vm := BaseVM{
		SiteName:    DefaultSiteName,
		Title:       title,
		CurrentPath: httpnav.CurrentPath(r),
	}

	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.Username = u.Username
		vm.UserName = u.Name
	}
	return vm
}
