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

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	FindByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
	ReplaceLikes(ctx context.Context, id primitive.ObjectID, likes []string) (*models.Comment, error)
	// ReplaceReplyLikes rewrites a single matched reply's likes subfield via
	// a positional update.
	ReplaceReplyLikes(ctx context.Context, commentID, replyID primitive.ObjectID, likes []string) (*models.Comment, error)
	PushReply(ctx context.Context, commentID primitive.ObjectID, reply models.Reply) (*models.Comment, error)
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) error
}

type commentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{coll: db.Collection("comments")}
}

func commentNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFoundf("Comment not found")
	}
	return err
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	if comment.Replies == nil {
		comment.Replies = []models.Reply{}
	}
	res, err := r.coll.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	comment.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, commentNotFound(err)
	}
	return &comment, nil
}

func (r *commentRepository) FindByPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, err
	}
	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) ReplaceLikes(ctx context.Context, id primitive.ObjectID, likes []string) (*models.Comment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"likes": likes, "updatedAt": time.Now().UTC()}}
	var comment models.Comment
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&comment); err != nil {
		return nil, commentNotFound(err)
	}
	return &comment, nil
}

func (r *commentRepository) ReplaceReplyLikes(ctx context.Context, commentID, replyID primitive.ObjectID, likes []string) (*models.Comment, error) {
	filter := bson.M{"_id": commentID, "replies.rid": replyID}
	update := bson.M{"$set": bson.M{"replies.$.likes": likes}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, apperrors.NotFoundf("Reply not found")
	}
	return r.FindByID(ctx, commentID)
}

func (r *commentRepository) PushReply(ctx context.Context, commentID primitive.ObjectID, reply models.Reply) (*models.Comment, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": commentID}, bson.M{
		"$push": bson.M{"replies": reply},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, apperrors.NotFoundf("Comment not found")
	}
	return r.FindByID(ctx, commentID)
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"postId": postID})
	return err
}
