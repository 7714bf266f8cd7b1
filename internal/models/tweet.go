package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Likes keeps the count alongside the set of liking users.
// Invariant: Count always equals len(Users).
type Likes struct {
	Count int                  `bson:"count" json:"count"`
	Users []primitive.ObjectID `bson:"users" json:"users"`
}

// Comment is an appendable (user, text) pair on a tweet.
type Comment struct {
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	Comment string             `bson:"comment" json:"comment"`
}

// Tweet is a short message owned by exactly one user.
type Tweet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Text      string             `bson:"tweet" json:"tweet"`
	Images    []string           `bson:"images" json:"images"`
	Likes     Likes              `bson:"likes" json:"likes"`
	Comments  []Comment          `bson:"comments" json:"comments"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
