// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a text entry by an author, optionally filed under a group and
// optionally carrying an uploaded image.
//
// AuthorID and CreatedAt are immutable after creation; only the author may
// change Text, GroupID, or ImagePath. Feeds list posts newest first with
// _id descending as the tiebreak, so ordering is total.
type Post struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Text     string              `bson:"text" json:"text"`
	AuthorID primitive.ObjectID  `bson:"author_id" json:"author_id"`
	GroupID  *primitive.ObjectID `bson:"group_id,omitempty" json:"group_id,omitempty"`

	// ImagePath is the stored asset path relative to the upload root,
	// empty when the post has no image.
	ImagePath string `bson:"image_path,omitempty" json:"image_path,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
