package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"social-service/internal/models"
	"social-service/pkg/apperrors"
)

type FriendRequestRepository interface {
	Create(ctx context.Context, fr *models.FriendRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error)
	// FindBetween looks for a request sent from -> to, any status.
	FindBetween(ctx context.Context, from, to primitive.ObjectID) (*models.FriendRequest, error)
	FindPendingFor(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.FriendRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.FriendRequest, error)
}

type friendRequestRepository struct {
	coll *mongo.Collection
}

func NewFriendRequestRepository(db *mongo.Database) FriendRequestRepository {
	return &friendRequestRepository{coll: db.Collection("friendrequests")}
}

func requestNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFoundf("No Friend Request Found.")
	}
	return err
}

func (r *friendRequestRepository) Create(ctx context.Context, fr *models.FriendRequest) error {
	now := time.Now().UTC()
	fr.CreatedAt = now
	fr.UpdatedAt = now
	if fr.RequestStatus == "" {
		fr.RequestStatus = models.RequestPending
	}
	res, err := r.coll.InsertOne(ctx, fr)
	if err != nil {
		return err
	}
	fr.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *friendRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	var fr models.FriendRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&fr); err != nil {
		return nil, requestNotFound(err)
	}
	return &fr, nil
}

func (r *friendRequestRepository) FindBetween(ctx context.Context, from, to primitive.ObjectID) (*models.FriendRequest, error) {
	var fr models.FriendRequest
	filter := bson.M{"requestFrom": from, "requestTo": to}
	if err := r.coll.FindOne(ctx, filter).Decode(&fr); err != nil {
		return nil, requestNotFound(err)
	}
	return &fr, nil
}

func (r *friendRequestRepository) FindPendingFor(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.FriendRequest, error) {
	filter := bson.M{"requestTo": userID, "requestStatus": models.RequestPending}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var requests []models.FriendRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *friendRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.FriendRequest, error) {
	update := bson.M{"$set": bson.M{"requestStatus": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var fr models.FriendRequest
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&fr); err != nil {
		return nil, requestNotFound(err)
	}
	return &fr, nil
}
