// internal/domain/models/follow.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow is a directed edge: UserID receives AuthorID's posts in their
// followed-authors feed. The pair is unique (enforced by index) and
// UserID != AuthorID always.
type Follow struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"author_id"`
}
