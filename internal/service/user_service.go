package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/pkg/apperrors"
)

const suggestedFriendsLimit = 15

// TokenIssuer re-issues identity tokens after profile updates.
type TokenIssuer interface {
	IssueToken(userID string) (string, error)
}

type UserService struct {
	users    repository.UserRepository
	issuer   TokenIssuer
	notifier Notifier
}

func NewUserService(users repository.UserRepository, issuer TokenIssuer, notifier Notifier) *UserService {
	return &UserService{
		users:    users,
		issuer:   issuer,
		notifier: notifier,
	}
}

// GetUser returns the profile with its friend references resolved.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	uid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFoundf("User Not Found")
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := s.populateFriends(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser writes the profile fields and hands back a fresh token.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.AuthResponse, error) {
	if req.FirstName == "" && req.LastName == "" && req.Location == "" && req.Profession == "" {
		return nil, apperrors.Validationf("Please provide all required fields")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFoundf("User Not Found")
	}

	user, err := s.users.UpdateProfile(ctx, uid, req)
	if err != nil {
		return nil, err
	}
	if err := s.populateFriends(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issuer.IssueToken(userID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{User: user, Token: token}, nil
}

// ProfileView appends the viewer to the target's views. Views is a
// multiset; repeat visits count again.
func (s *UserService) ProfileView(ctx context.Context, viewerID, targetID string) error {
	tid, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return apperrors.NotFoundf("User Not Found")
	}
	if err := s.users.AddProfileView(ctx, tid, viewerID); err != nil {
		return err
	}
	if err := s.notifier.PublishEvent(ctx, Event{
		Type:      EventProfileViewed,
		ActorID:   viewerID,
		SubjectID: targetID,
	}); err != nil {
		slog.Warn("profile view event publish failed", "targetID", targetID, "error", err)
	}
	return nil
}

// SuggestedFriends lists users who are neither the requester nor already
// friends with them.
func (s *UserService) SuggestedFriends(ctx context.Context, userID string) ([]models.UserSummary, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFoundf("User Not Found")
	}
	users, err := s.users.FindSuggested(ctx, uid, suggestedFriendsLimit)
	if err != nil {
		return nil, fmt.Errorf("find suggested friends: %w", err)
	}
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

func (s *UserService) populateFriends(ctx context.Context, user *models.User) error {
	summaries, err := summariesByID(ctx, s.users, user.Friends)
	if err != nil {
		return fmt.Errorf("populate friends: %w", err)
	}
	user.PopulatedFriends = make([]models.UserSummary, 0, len(user.Friends))
	for _, fid := range user.Friends {
		if summary, ok := summaries[fid.Hex()]; ok {
			user.PopulatedFriends = append(user.PopulatedFriends, summary)
		}
	}
	return nil
}
