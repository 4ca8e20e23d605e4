package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

/** --------------------ENTITIES-------------------- */

// Reply is embedded in its comment, not separately owned.
type Reply struct {
	RID       primitive.ObjectID `bson:"rid" json:"rid"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	From      string             `bson:"from" json:"from"`
	ReplyAt   string             `bson:"replyAt,omitempty" json:"replyAt,omitempty"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_At"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_At"`
	Likes     []string           `bson:"likes" json:"likes"`

	User *UserSummary `bson:"-" json:"user,omitempty"`
}

// Comment is a top-level comment on a post with an embedded reply thread.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PostID    primitive.ObjectID `bson:"postId" json:"postId"`
	Comment   string             `bson:"comment" json:"comment"`
	From      string             `bson:"from" json:"from"`
	Replies   []Reply            `bson:"replies" json:"replies"`
	Likes     []string           `bson:"likes" json:"likes"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	User *UserSummary `bson:"-" json:"user,omitempty"`
}

/** -------------------- DTOs -------------------- */

// Request
type AddCommentRequest struct {
	Comment string `json:"comment"`
	From    string `json:"from"`
}

type AddReplyRequest struct {
	Comment string `json:"comment"`
	ReplyAt string `json:"replyAt"`
	From    string `json:"from"`
}
