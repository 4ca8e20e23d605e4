package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

/** --------------------ENTITIES-------------------- */

// Post is a user post. Likes stores user ids as strings, one entry per user
// (toggle semantics). Comments holds references to comment documents in
// creation order.
type Post struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID   `bson:"userId" json:"userId"`
	Description string               `bson:"description" json:"description"`
	Image       string               `bson:"image,omitempty" json:"image,omitempty"`
	Likes       []string             `bson:"likes" json:"likes"`
	Comments    []primitive.ObjectID `bson:"comments" json:"comments"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`

	// User is the populated author. Filled in responses only.
	User *UserSummary `bson:"-" json:"user,omitempty"`
}

/** -------------------- DTOs -------------------- */

// Request
type CreatePostRequest struct {
	Description string `json:"description"`
	Image       string `json:"image"`
}

type FeedRequest struct {
	Search string `json:"search"`
}
