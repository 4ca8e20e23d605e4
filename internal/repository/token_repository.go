package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"social-service/internal/models"
	"social-service/pkg/apperrors"
)

// TokenRepository persists email-verification and password-reset tokens.
type TokenRepository interface {
	CreateVerification(ctx context.Context, v *models.Verification) error
	FindVerification(ctx context.Context, userID primitive.ObjectID) (*models.Verification, error)
	DeleteVerification(ctx context.Context, userID primitive.ObjectID) error
	CreatePasswordReset(ctx context.Context, pr *models.PasswordReset) error
	FindPasswordReset(ctx context.Context, userID primitive.ObjectID) (*models.PasswordReset, error)
	FindPasswordResetByEmail(ctx context.Context, email string) (*models.PasswordReset, error)
	DeletePasswordReset(ctx context.Context, userID primitive.ObjectID) error
}

type tokenRepository struct {
	verifications *mongo.Collection
	resets        *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) TokenRepository {
	return &tokenRepository{
		verifications: db.Collection("verifications"),
		resets:        db.Collection("passwordresets"),
	}
}

func tokenNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFoundf("token not found")
	}
	return err
}

func (r *tokenRepository) CreateVerification(ctx context.Context, v *models.Verification) error {
	v.CreatedAt = time.Now().UTC()
	res, err := r.verifications.InsertOne(ctx, v)
	if err != nil {
		return err
	}
	v.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *tokenRepository) FindVerification(ctx context.Context, userID primitive.ObjectID) (*models.Verification, error) {
	var v models.Verification
	if err := r.verifications.FindOne(ctx, bson.M{"userId": userID}).Decode(&v); err != nil {
		return nil, tokenNotFound(err)
	}
	return &v, nil
}

func (r *tokenRepository) DeleteVerification(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.verifications.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}

func (r *tokenRepository) CreatePasswordReset(ctx context.Context, pr *models.PasswordReset) error {
	pr.CreatedAt = time.Now().UTC()
	res, err := r.resets.InsertOne(ctx, pr)
	if err != nil {
		return err
	}
	pr.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *tokenRepository) FindPasswordReset(ctx context.Context, userID primitive.ObjectID) (*models.PasswordReset, error) {
	var pr models.PasswordReset
	if err := r.resets.FindOne(ctx, bson.M{"userId": userID}).Decode(&pr); err != nil {
		return nil, tokenNotFound(err)
	}
	return &pr, nil
}

func (r *tokenRepository) FindPasswordResetByEmail(ctx context.Context, email string) (*models.PasswordReset, error) {
	var pr models.PasswordReset
	if err := r.resets.FindOne(ctx, bson.M{"email": email}).Decode(&pr); err != nil {
		return nil, tokenNotFound(err)
	}
	return &pr, nil
}

func (r *tokenRepository) DeletePasswordReset(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.resets.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
