package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

/** --------------------ENTITIES-------------------- */

const (
	RequestPending  = "Pending"
	RequestAccepted = "Accepted"
	RequestRejected = "Rejected"
)

// FriendRequest links a sender and a recipient. Deduplication is a
// query-then-insert check on both orderings of the pair, not a uniqueness
// constraint.
type FriendRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RequestTo     primitive.ObjectID `bson:"requestTo" json:"requestTo"`
	RequestFrom   primitive.ObjectID `bson:"requestFrom" json:"requestFrom"`
	RequestStatus string             `bson:"requestStatus" json:"requestStatus"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`

	// FromUser is the populated sender, filled when listing pending requests.
	FromUser *UserSummary `bson:"-" json:"requestFromUser,omitempty"`
}

/** -------------------- DTOs -------------------- */

// Request
type SendFriendRequestInput struct {
	RequestTo string `json:"requestTo" binding:"required"`
}

type AcceptFriendRequestInput struct {
	RID    string `json:"rid" binding:"required"`
	Status string `json:"status" binding:"required,oneof=Accepted Rejected"`
}
