// internal/app/features/profile/handler_test.go
package profile_test

import (
	"net/http"
	"testing"

	uierrors "github.com/inkwellhq/inkwell/internal/app/features/errors"
	"github.com/inkwellhq/inkwell/internal/app/features/profile"
	followstore "github.com/inkwellhq/inkwell/internal/app/store/follows"
	poststore "github.com/inkwellhq/inkwell/internal/app/store/posts"
	userstore "github.com/inkwellhq/inkwell/internal/app/store/users"
	"github.com/inkwellhq/inkwell/internal/app/system/feedview"
	"github.com/inkwellhq/inkwell/internal/app/system/postview"
	"github.com/inkwellhq/inkwell/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*profile.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.BootTemplates(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	users := userstore.New(db)
	follows := followstore.New(db)
	posts := poststore.New(db)
	resolver := feedview.New(posts, follows)
	views := postview.New(db, "/media")

	return profile.NewHandler(users, follows, resolver, views, errLog, logger), db
}

func TestHandleFollow(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	viewer := fx.CreateUser(ctx, "reader")
	author := fx.CreateUser(ctx, "writer")

	req := testutil.NewAuthenticatedRequest("POST", "/profile/writer/follow/", testutil.AsTestUser(viewer.ID, viewer.Username))
	req = testutil.WithChiURLParam(req, "username", "writer")
	rec := testutil.NewRecorder()

	handler.HandleFollow(rec, req)

	rec.AssertRedirect(t, "/profile/writer/")

	following, err := followstore.New(db).Exists(ctx, viewer.ID, author.ID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !following {
		t.Error("expected follow edge to exist after HandleFollow")
	}
}

func TestHandleFollow_SelfIsNoOp(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	viewer := fx.CreateUser(ctx, "reader")

	req := testutil.NewAuthenticatedRequest("POST", "/profile/reader/follow/", testutil.AsTestUser(viewer.ID, viewer.Username))
	req = testutil.WithChiURLParam(req, "username", "reader")
	rec := testutil.NewRecorder()

	handler.HandleFollow(rec, req)

	// Still redirects back to the profile, but no edge is created.
	rec.AssertRedirect(t, "/profile/reader/")

	following, err := followstore.New(db).Exists(ctx, viewer.ID, viewer.ID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if following {
		t.Error("self-follow should not create an edge")
	}
}

func TestHandleUnfollow(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	viewer := fx.CreateUser(ctx, "reader")
	author := fx.CreateUser(ctx, "writer")
	fx.CreateFollow(ctx, viewer.ID, author.ID)

	req := testutil.NewAuthenticatedRequest("POST", "/profile/writer/unfollow/", testutil.AsTestUser(viewer.ID, viewer.Username))
	req = testutil.WithChiURLParam(req, "username", "writer")
	rec := testutil.NewRecorder()

	handler.HandleUnfollow(rec, req)

	rec.AssertRedirect(t, "/profile/writer/")

	following, err := followstore.New(db).Exists(ctx, viewer.ID, author.ID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if following {
		t.Error("expected follow edge to be removed after HandleUnfollow")
	}
}

func TestHandleFollow_UnknownAuthor(t *testing.T) {
	handler, _ := newTestHandler(t)

	viewer := testutil.SignedInUser("reader")
	req := testutil.NewAuthenticatedRequest("POST", "/profile/ghost/follow/", viewer)
	req = testutil.WithChiURLParam(req, "username", "ghost")
	rec := testutil.NewRecorder()

	handler.HandleFollow(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "No such author.")
	if loc := rec.Header().Get("Location"); loc != "" {
		t.Errorf("unknown author should not redirect, got Location %q", loc)
	}
}

func TestServeProfile(t *testing.T) {
	handler, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)

	author := fx.CreateUser(ctx, "writer")
	fx.CreatePost(ctx, author.ID, "Тестовый пост о разном", nil)

	t.Run("anonymous viewer", func(t *testing.T) {
		req := testutil.NewRequest("GET", "/profile/writer/")
		req = testutil.WithChiURLParam(req, "username", "writer")
		rec := testutil.NewRecorder()

		handler.ServeProfile(rec, req)

		rec.AssertStatus(t, http.StatusOK)
		rec.AssertContains(t, "@writer")
		rec.AssertContains(t, "Тестовый пост о разном")
		rec.AssertContains(t, "1 post")
	})

	t.Run("follower sees unfollow action", func(t *testing.T) {
		viewer := fx.CreateUser(ctx, "reader")
		fx.CreateFollow(ctx, viewer.ID, author.ID)

		req := testutil.NewAuthenticatedRequest("GET", "/profile/writer/", testutil.AsTestUser(viewer.ID, viewer.Username))
		req = testutil.WithChiURLParam(req, "username", "writer")
		rec := testutil.NewRecorder()

		handler.ServeProfile(rec, req)

		rec.AssertStatus(t, http.StatusOK)
		rec.AssertContains(t, "/profile/writer/unfollow/")
	})
}

func TestServeProfile_UnknownUsername(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/profile/ghost/")
	req = testutil.WithChiURLParam(req, "username", "ghost")
	rec := testutil.NewRecorder()

	handler.ServeProfile(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "No such author.")
}
