// internal/domain/models/group.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a category posts can be filed under.
//
// Groups are created administratively. Deleting a group does not delete
// its posts; their group reference is nulled instead (see poststore).
type Group struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"` // unique, URL-safe
	Description string             `bson:"description" json:"description"`
}
