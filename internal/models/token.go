package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verification holds a hashed email-verification token. The raw token only
// ever travels inside the emailed link.
type Verification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Token     string             `bson:"token" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
}

// PasswordReset mirrors Verification for the password-reset flow.
type PasswordReset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Email     string             `bson:"email" json:"email"`
	Token     string             `bson:"token" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
}

/** -------------------- DTOs -------------------- */

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}
