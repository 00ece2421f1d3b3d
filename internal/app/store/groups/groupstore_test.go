package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/inkwellhq/inkwell/internal/app/store/groups"
	poststore "github.com/inkwellhq/inkwell/internal/app/store/posts"
	"github.com/inkwellhq/inkwell/internal/domain/models"
	"github.com/inkwellhq/inkwell/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_And_GetBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Group{
		Title:       "Daily Notes",
		Slug:        "  Daily Notes  ",
		Description: "Short notes on everything",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Slug != "daily-notes" {
		t.Errorf("slug: got %q, want %q", created.Slug, "daily-notes")
	}

	got, err := store.GetBySlug(ctx, "DAILY-NOTES")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got group %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestStore_Create_EmptySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Group{Title: "No Slug"}); !errors.Is(err, groupstore.ErrEmptySlug) {
		t.Errorf("expected ErrEmptySlug, got %v", err)
	}
}

func TestStore_Create_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Group{Title: "First", Slug: "notes"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Group{Title: "Second", Slug: "Notes"}); !errors.Is(err, groupstore.ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestStore_GetBySlug_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetBySlug(ctx, "missing"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_List_OrderedByTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, g := range []models.Group{
		{Title: "Zebra", Slug: "zebra"},
		{Title: "Apple", Slug: "apple"},
		{Title: "Mango", Slug: "mango"},
	} {
		if _, err := store.Create(ctx, g); err != nil {
			t.Fatalf("Create %q failed: %v", g.Title, err)
		}
	}

	groups, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"Apple", "Mango", "Zebra"}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(groups), len(want))
	}
	for i, title := range want {
		if groups[i].Title != title {
			t.Errorf("groups[%d]: got %q, want %q", i, groups[i].Title, title)
		}
	}
}

func TestStore_Delete_KeepsPosts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "author")
	g, err := store.Create(ctx, models.Group{Title: "Doomed", Slug: "doomed"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	post := fixtures.CreatePost(ctx, author.ID, "filed under doomed", &g.ID)

	if err := store.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, g.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected group to be gone, got %v", err)
	}

	// The post survives with its group reference cleared.
	kept, err := poststore.New(db).GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if kept.GroupID != nil {
		t.Errorf("expected group reference to be cleared, got %v", kept.GroupID)
	}
}
