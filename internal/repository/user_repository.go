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

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	FindSuggested(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, req models.UpdateUserRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashed string) error
	SetVerified(ctx context.Context, id primitive.ObjectID) error
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	AddProfileView(ctx context.Context, id primitive.ObjectID, viewerID string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection("users")}
}

// userNotFound translates the driver's no-document error so callers stay
// store-agnostic.
func userNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NotFoundf("User Not Found")
	}
	return err
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	if user.Views == nil {
		user.Views = []string{}
	}
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, userNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, userNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindSuggested(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.User, error) {
	filter := bson.M{
		"_id":     bson.M{"$ne": userID},
		"friends": bson.M{"$nin": []primitive.ObjectID{userID}},
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, req models.UpdateUserRequest) (*models.User, error) {
	// Only fields the client actually sent are written; omitted ones keep
	// their stored values.
	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.FirstName != "" {
		set["firstName"] = req.FirstName
	}
	if req.LastName != "" {
		set["lastName"] = req.LastName
	}
	if req.Location != "" {
		set["location"] = req.Location
	}
	if req.ProfileURL != "" {
		set["profileUrl"] = req.ProfileURL
	}
	if req.Profession != "" {
		set["profession"] = req.Profession
	}
	update := bson.M{"$set": set}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user); err != nil {
		return nil, userNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashed string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password":  hashed,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("User Not Found")
	}
	return nil
}

func (r *userRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"verified":  true,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("User Not Found")
	}
	return nil
}

// AddFriend appends one directed edge. Acceptance of a request calls this
// once per direction; the two writes are independent.
func (r *userRepository) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"friends": friendID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("User Not Found")
	}
	return nil
}

// AddProfileView records a view. Views is a multiset, repeat viewers append
// again.
func (r *userRepository) AddProfileView(ctx context.Context, id primitive.ObjectID, viewerID string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"views": viewerID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("User Not Found")
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
