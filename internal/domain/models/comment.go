// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a reader's note on a post. Comments are immutable once
// created and are listed in creation order (oldest first).
type Comment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID   primitive.ObjectID `bson:"post_id" json:"post_id"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"author_id"`
	Text     string             `bson:"text" json:"text"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
