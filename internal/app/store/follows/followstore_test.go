package followstore_test

import (
	"testing"

	followstore "github.com/inkwellhq/inkwell/internal/app/store/follows"
	"github.com/inkwellhq/inkwell/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Follow_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := followstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice")
	bob := fixtures.CreateUser(ctx, "bob")

	if err := store.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	// Repeating the follow is a no-op, not an error.
	if err := store.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("repeated Follow failed: %v", err)
	}

	n, err := db.Collection("follows").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d follow edges, want 1", n)
	}
}

func TestStore_Follow_SelfIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := followstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice")

	if err := store.Follow(ctx, alice.ID, alice.ID); err != nil {
		t.Fatalf("self Follow failed: %v", err)
	}
	exists, err := store.Exists(ctx, alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected no self-follow edge")
	}
}

func TestStore_Unfollow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := followstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice")
	bob := fixtures.CreateUser(ctx, "bob")
	fixtures.CreateFollow(ctx, alice.ID, bob.ID)

	if err := store.Unfollow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	exists, err := store.Exists(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected edge to be gone")
	}

	// Unfollowing again is harmless.
	if err := store.Unfollow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("repeated Unfollow failed: %v", err)
	}
}

func TestStore_AuthorIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := followstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice")
	bob := fixtures.CreateUser(ctx, "bob")
	carol := fixtures.CreateUser(ctx, "carol")
	fixtures.CreateFollow(ctx, alice.ID, bob.ID)
	fixtures.CreateFollow(ctx, alice.ID, carol.ID)
	fixtures.CreateFollow(ctx, bob.ID, carol.ID)

	ids, err := store.AuthorIDs(ctx, alice.ID)
	if err != nil {
		t.Fatalf("AuthorIDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d authors, want 2", len(ids))
	}
	want := map[primitive.ObjectID]bool{bob.ID: true, carol.ID: true}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected author %s", id.Hex())
		}
	}
}

func TestStore_DeleteForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := followstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "alice")
	bob := fixtures.CreateUser(ctx, "bob")
	carol := fixtures.CreateUser(ctx, "carol")
	fixtures.CreateFollow(ctx, alice.ID, bob.ID)
	fixtures.CreateFollow(ctx, carol.ID, alice.ID)
	fixtures.CreateFollow(ctx, bob.ID, carol.ID)

	if err := store.DeleteForUser(ctx, alice.ID); err != nil {
		t.Fatalf("DeleteForUser failed: %v", err)
	}

	if exists, _ := store.Exists(ctx, alice.ID, bob.ID); exists {
		t.Error("expected alice's outgoing edge to be gone")
	}
	if exists, _ := store.Exists(ctx, carol.ID, alice.ID); exists {
		t.Error("expected alice's incoming edge to be gone")
	}
	if exists, _ := store.Exists(ctx, bob.ID, carol.ID); !exists {
		t.Error("expected unrelated edge to survive")
	}
}
