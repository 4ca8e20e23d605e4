package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

/** --------------------ENTITIES-------------------- */

// User is a registered account. Friends holds directed edges: acceptance of
// a friend request appends to both users' lists independently.
type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	FirstName  string               `bson:"firstName" json:"firstName"`
	LastName   string               `bson:"lastName" json:"lastName"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Location   string               `bson:"location,omitempty" json:"location,omitempty"`
	ProfileURL string               `bson:"profileUrl,omitempty" json:"profileUrl,omitempty"`
	Profession string               `bson:"profession,omitempty" json:"profession,omitempty"`
	Friends    []primitive.ObjectID `bson:"friends" json:"-"`
	Views      []string             `bson:"views" json:"views"`
	Verified   bool                 `bson:"verified" json:"verified"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`

	// PopulatedFriends carries the resolved friend documents in responses,
	// standing in for the stored id references.
	PopulatedFriends []UserSummary `bson:"-" json:"friends"`
}

// UserSummary is the author projection attached to posts, comments and
// friend requests in responses.
type UserSummary struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	FirstName  string             `bson:"firstName" json:"firstName"`
	LastName   string             `bson:"lastName" json:"lastName"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	ProfileURL string             `bson:"profileUrl,omitempty" json:"profileUrl,omitempty"`
	Profession string             `bson:"profession,omitempty" json:"profession,omitempty"`
}

// Summary projects a full user down to its public fields.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Location:   u.Location,
		ProfileURL: u.ProfileURL,
		Profession: u.Profession,
	}
}

/** -------------------- DTOs -------------------- */

// Request
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Location   string `json:"location"`
	ProfileURL string `json:"profileUrl"`
	Profession string `json:"profession"`
}

type ChangePasswordRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type ProfileViewRequest struct {
	ID string `json:"id" binding:"required"`
}

// Response
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
