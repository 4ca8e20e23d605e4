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

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error)
	// Find returns posts newest first. A non-empty search term filters by
	// case-insensitive substring match on the description.
	Find(ctx context.Context, search string) ([]models.Post, error)
	// ReplaceLikes persists a full replacement of the likes set. Concurrent
	// toggles can overwrite each other; the last write wins.
	ReplaceLikes(ctx context.Context, id primitive.ObjectID, likes []string) (*models.Post, error)
	// ToggleLikeAtomic is the store-native alternative: a single $addToSet
	// or $pull round trip.
	ToggleLikeAtomic(ctx context.Context, id primitive.ObjectID, userID string, add bool) (*models.Post, error)
	AppendComment(ctx context.Context, postID, commentID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type postRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) PostRepository {
	return &postRepository{coll: db.Collection("posts")}
}

func postNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFoundf("Post not found")
	}
	return err
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []primitive.ObjectID{}
	}
	res, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, postNotFound(err)
	}
	return &post, nil
}

func (r *postRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Find(ctx context.Context, search string) ([]models.Post, error) {
	filter := bson.M{}
	if search != "" {
		filter = bson.M{"description": bson.M{
			"$regex": primitive.Regex{Pattern: search, Options: "i"},
		}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ReplaceLikes(ctx context.Context, id primitive.ObjectID, likes []string) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"likes": likes, "updatedAt": time.Now().UTC()}}
	var post models.Post
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post); err != nil {
		return nil, postNotFound(err)
	}
	return &post, nil
}

func (r *postRepository) ToggleLikeAtomic(ctx context.Context, id primitive.ObjectID, userID string, add bool) (*models.Post, error) {
	var update bson.M
	if add {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	} else {
		update = bson.M{"$pull": bson.M{"likes": userID}}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post); err != nil {
		return nil, postNotFound(err)
	}
	return &post, nil
}

func (r *postRepository) AppendComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$push": bson.M{"comments": commentID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("Post not found")
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
