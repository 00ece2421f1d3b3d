// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/inkwellhq/inkwell/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the current user's username, display name, Mongo
// ObjectID, and a found flag. If no user is present in context or the
// session ID is malformed, it returns "", "", NilObjectID, false — so
// ok=true always means a valid, authenticated user with a valid ID.
func UserCtx(r *http.Request) (username, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session; fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return user.Username, user.Name, userID, true
}

// ViewerID returns the current user's ID as a nullable pointer: nil for
// anonymous viewers. An anonymous viewer is never "self" and never
// "following" anyone; passing nil through keeps that decision in one
// place instead of comparing against a sentinel.
func ViewerID(r *http.Request) *primitive.ObjectID {
	_, _, id, ok := UserCtx(r)
	if !ok {
		return nil
	}
	return &id
}
