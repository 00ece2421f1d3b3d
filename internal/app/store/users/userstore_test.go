package userstore_test

import (
	"errors"
	"testing"

	commentstore "github.com/inkwellhq/inkwell/internal/app/store/comments"
	followstore "github.com/inkwellhq/inkwell/internal/app/store/follows"
	poststore "github.com/inkwellhq/inkwell/internal/app/store/posts"
	userstore "github.com/inkwellhq/inkwell/internal/app/store/users"
	"github.com/inkwellhq/inkwell/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "  Leo  ", "Leo Tolstoy", "war-and-peace")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Username != "leo" {
		t.Errorf("username: got %q, want %q", created.Username, "leo")
	}
	if created.UsernameCI == "" {
		t.Error("expected UsernameCI to be set")
	}
	if created.DisplayName != "Leo Tolstoy" {
		t.Errorf("display name: got %q, want %q", created.DisplayName, "Leo Tolstoy")
	}
	if created.PasswordHash == "" || created.PasswordHash == "war-and-peace" {
		t.Error("expected password to be stored as a hash")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DefaultsDisplayName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "anna", "", "secret")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.DisplayName != "anna" {
		t.Errorf("display name: got %q, want username fallback", created.DisplayName)
	}
}

func TestStore_Create_EmptyUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "   ", "Nobody", "secret"); !errors.Is(err, userstore.ErrEmptyUsername) {
		t.Errorf("expected ErrEmptyUsername, got %v", err)
	}
}

func TestStore_Create_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "leo", "Leo", "secret"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same username in a different case collides on username_ci.
	if _, err := store.Create(ctx, "LEO", "Impostor", "secret"); !errors.Is(err, userstore.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestStore_GetByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "leo", "Leo", "secret")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByUsername(ctx, "LeO")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got user %s, want %s", got.ID.Hex(), created.ID.Hex())
	}

	if _, err := store.GetByUsername(ctx, "nobody"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for unknown username, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, "leo", "Leo", "correct-horse")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !userstore.VerifyPassword(u, "correct-horse") {
		t.Error("expected correct password to verify")
	}
	if userstore.VerifyPassword(u, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestStore_Delete_Cascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	victim, err := store.Create(ctx, "victim", "Victim", "secret")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other := fixtures.CreateUser(ctx, "other")

	// Victim's post with a comment from someone else, plus the victim's
	// comment on someone else's post, plus follow edges both ways.
	victimPost := fixtures.CreatePost(ctx, victim.ID, "mine", nil)
	fixtures.CreateComment(ctx, victimPost.ID, other.ID, "on victim's post")
	otherPost := fixtures.CreatePost(ctx, other.ID, "theirs", nil)
	fixtures.CreateComment(ctx, otherPost.ID, victim.ID, "by victim")
	fixtures.CreateFollow(ctx, victim.ID, other.ID)
	fixtures.CreateFollow(ctx, other.ID, victim.ID)

	if err := store.Delete(ctx, victim.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, victim.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected user to be gone, got %v", err)
	}

	if _, err := poststore.New(db).GetByID(ctx, victimPost.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected victim's post to be gone, got %v", err)
	}

	// Comments on the victim's post and by the victim are both gone.
	onVictim, err := commentstore.New(db).ByPost(ctx, victimPost.ID)
	if err != nil {
		t.Fatalf("ByPost failed: %v", err)
	}
	if len(onVictim) != 0 {
		t.Errorf("expected comments on deleted post to be gone, got %d", len(onVictim))
	}
	onOther, err := commentstore.New(db).ByPost(ctx, otherPost.ID)
	if err != nil {
		t.Fatalf("ByPost failed: %v", err)
	}
	if len(onOther) != 0 {
		t.Errorf("expected victim's comment to be gone, got %d", len(onOther))
	}

	// Follow edges in both directions are gone.
	fs := followstore.New(db)
	if exists, err := fs.Exists(ctx, victim.ID, other.ID); err != nil || exists {
		t.Errorf("expected outgoing follow to be gone (exists=%v, err=%v)", exists, err)
	}
	if exists, err := fs.Exists(ctx, other.ID, victim.ID); err != nil || exists {
		t.Errorf("expected incoming follow to be gone (exists=%v, err=%v)", exists, err)
	}
}
