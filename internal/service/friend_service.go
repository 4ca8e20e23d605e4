package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/pkg/apperrors"
)

const pendingRequestsLimit = 10

type FriendService struct {
	requests repository.FriendRequestRepository
	users    repository.UserRepository
	cache    FriendCache
	notifier Notifier
}

func NewFriendService(
	requests repository.FriendRequestRepository,
	users repository.UserRepository,
	cache FriendCache,
	notifier Notifier,
) *FriendService {
	return &FriendService{
		requests: requests,
		users:    users,
		cache:    cache,
		notifier: notifier,
	}
}

// SendRequest creates a pending request unless one already exists in either
// direction. The check is query-then-insert; two near-simultaneous requests
// for the same pair can still both land.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID string) error {
	from, err := primitive.ObjectIDFromHex(fromID)
	if err != nil {
		return apperrors.Validationf("invalid user id")
	}
	to, err := primitive.ObjectIDFromHex(toID)
	if err != nil {
		return apperrors.Validationf("invalid user id")
	}
	if from == to {
		return apperrors.Validationf("cannot send a friend request to yourself")
	}

	for _, pair := range [][2]primitive.ObjectID{{from, to}, {to, from}} {
		_, err := s.requests.FindBetween(ctx, pair[0], pair[1])
		if err == nil {
			return apperrors.Validationf("Friend Request already sent.")
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}

	if err := s.requests.Create(ctx, &models.FriendRequest{
		RequestFrom: from,
		RequestTo:   to,
	}); err != nil {
		return fmt.Errorf("create friend request: %w", err)
	}

	if err := s.notifier.PublishEvent(ctx, Event{
		Type:      EventFriendRequested,
		ActorID:   fromID,
		SubjectID: toID,
	}); err != nil {
		slog.Warn("friend request event publish failed", "toID", toID, "error", err)
	}
	return nil
}

// GetPending lists the newest pending requests addressed to the user, with
// senders resolved.
func (s *FriendService) GetPending(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFoundf("User Not Found")
	}
	requests, err := s.requests.FindPendingFor(ctx, uid, pendingRequestsLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].RequestFrom)
	}
	summaries, err := summariesByID(ctx, s.users, ids)
	if err != nil {
		return nil, fmt.Errorf("populate request senders: %w", err)
	}
	for i := range requests {
		if summary, ok := summaries[requests[i].RequestFrom.Hex()]; ok {
			requests[i].FromUser = &summary
		}
	}
	return requests, nil
}

// Respond accepts or rejects a request. Acceptance appends each user to the
// other's friend list as two independent writes; there is no transaction
// keeping the edges in sync.
func (s *FriendService) Respond(ctx context.Context, userID, requestID, status string) error {
	rid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return apperrors.NotFoundf("No Friend Request Found.")
	}
	if _, err := s.requests.FindByID(ctx, rid); err != nil {
		return err
	}

	fr, err := s.requests.UpdateStatus(ctx, rid, status)
	if err != nil {
		return err
	}
	if status != models.RequestAccepted {
		return nil
	}

	if err := s.users.AddFriend(ctx, fr.RequestTo, fr.RequestFrom); err != nil {
		return fmt.Errorf("append friend edge: %w", err)
	}
	if err := s.users.AddFriend(ctx, fr.RequestFrom, fr.RequestTo); err != nil {
		return fmt.Errorf("append reverse friend edge: %w", err)
	}

	// Feed circles for both sides are stale now.
	s.cache.Invalidate(ctx, fr.RequestTo.Hex())
	s.cache.Invalidate(ctx, fr.RequestFrom.Hex())

	if err := s.notifier.PublishEvent(ctx, Event{
		Type:      EventFriendAccepted,
		ActorID:   userID,
		SubjectID: fr.RequestFrom.Hex(),
	}); err != nil {
		slog.Warn("friend accepted event publish failed", "requestID", requestID, "error", err)
	}
	return nil
}
