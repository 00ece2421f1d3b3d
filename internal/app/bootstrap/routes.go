// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	errorsfeature "github.com/inkwellhq/inkwell/internal/app/features/errors"
	feedfeature "github.com/inkwellhq/inkwell/internal/app/features/feed"
	followfeature "github.com/inkwellhq/inkwell/internal/app/features/follow"
	groupsfeature "github.com/inkwellhq/inkwell/internal/app/features/groups"
	healthfeature "github.com/inkwellhq/inkwell/internal/app/features/health"
	loginfeature "github.com/inkwellhq/inkwell/internal/app/features/login"
	logoutfeature "github.com/inkwellhq/inkwell/internal/app/features/logout"
	postsfeature "github.com/inkwellhq/inkwell/internal/app/features/posts"
	profilefeature "github.com/inkwellhq/inkwell/internal/app/features/profile"
	commentstore "github.com/inkwellhq/inkwell/internal/app/store/comments"
	followstore "github.com/inkwellhq/inkwell/internal/app/store/follows"
	groupstore "github.com/inkwellhq/inkwell/internal/app/store/groups"
	poststore "github.com/inkwellhq/inkwell/internal/app/store/posts"
	userstore "github.com/inkwellhq/inkwell/internal/app/store/users"
	"github.com/inkwellhq/inkwell/internal/app/system/auth"
	"github.com/inkwellhq/inkwell/internal/app/system/feedview"
	"github.com/inkwellhq/inkwell/internal/app/system/imagestore"
	"github.com/inkwellhq/inkwell/internal/app/system/pagecache"
	"github.com/inkwellhq/inkwell/internal/app/system/postview"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Inkwell initializes the template engine, applies session middleware, and
// mounts feature routers: the global feed (behind the page cache), group
// and profile pages, post detail/create/edit, the following feed, and the
// login/logout/health endpoints.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. Renames and deleted accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	// Stores and the shared read-side plumbing.
	posts := poststore.New(db)
	follows := followstore.New(db)
	groups := groupstore.New(db)
	comments := commentstore.New(db)
	users := userstore.New(db)
	resolver := feedview.New(posts, follows)
	views := postview.New(db, appCfg.UploadURL)

	images, err := imagestore.New(appCfg.UploadDir, appCfg.UploadURL)
	if err != nil {
		logger.Error("image store init failed", zap.Error(err))
		return nil, err
	}

	// The feed cache serves repeated reads of the global feed; entries
	// expire on TTL, never on writes, so a fresh post can take up to one
	// TTL to show on the front page.
	feedCache := pagecache.New(appCfg.PageCacheTTL, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Every unknown path gets the friendly 404 page.
	r.NotFound(errorsfeature.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets and uploaded post images
	r.Handle("/static/*", fileserver.Handler("/static", "public"))
	r.Handle(appCfg.UploadURL+"/*", fileserver.Handler(appCfg.UploadURL, images.Root()))

	// Global feed, cached.
	feedHandler := feedfeature.NewHandler(resolver, views, errLog, logger)
	r.With(feedCache.Middleware).Get("/", feedHandler.ServeFeed)

	// Authentication
	loginHandler := loginfeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Group pages
	groupsHandler := groupsfeature.NewHandler(groups, resolver, views, errLog, logger)
	r.Mount("/group", groupsfeature.Routes(groupsHandler))

	// Author profiles and follow/unfollow
	profileHandler := profilefeature.NewHandler(users, follows, resolver, views, errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Post detail, create, edit, comments
	postsHandler := postsfeature.NewHandler(posts, comments, users, groups, views, images, errLog, logger)
	r.Mount("/posts", postsfeature.Routes(postsHandler, sessionMgr))
	r.Mount("/create", postsfeature.CreateRoutes(postsHandler, sessionMgr))

	// Followed-authors feed
	followHandler := followfeature.NewHandler(resolver, views, errLog, logger)
	r.Mount("/follow", followfeature.Routes(followHandler, sessionMgr))

	return r, nil
}
