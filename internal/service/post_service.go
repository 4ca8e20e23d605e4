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

type PostService struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	comments repository.CommentRepository
	cache    FriendCache
	notifier Notifier

	// atomicLikes switches the toggle from the read-modify-write default to
	// the store-native $addToSet/$pull path. Same external contract.
	atomicLikes bool
}

func NewPostService(
	posts repository.PostRepository,
	users repository.UserRepository,
	comments repository.CommentRepository,
	cache FriendCache,
	notifier Notifier,
) *PostService {
	return &PostService{
		posts:    posts,
		users:    users,
		comments: comments,
		cache:    cache,
		notifier: notifier,
	}
}

// UseAtomicLikes opts into single-round-trip like updates.
func (s *PostService) UseAtomicLikes() { s.atomicLikes = true }

func (s *PostService) CreatePost(ctx context.Context, userID string, req models.CreatePostRequest) (*models.Post, error) {
	if req.Description == "" {
		return nil, apperrors.Validationf("You must provide a description")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Validationf("invalid user id")
	}

	post := &models.Post{
		UserID:      uid,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// AssembleFeed builds the requester's feed: candidates newest first, circle
// posts surfaced ahead of the rest, search results restricted to the circle
// when it matched anything.
func (s *PostService) AssembleFeed(ctx context.Context, userID, search string) ([]models.Post, error) {
	circle, err := s.circleFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.Find(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	ranked := rankPosts(posts, circle, search != "")
	if err := s.populateAuthors(ctx, ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}

// circleFor resolves the requester's friend ids plus their own id,
// consulting the cache first.
func (s *PostService) circleFor(ctx context.Context, userID string) (map[string]bool, error) {
	if ids, ok := s.cache.Get(ctx, userID); ok {
		circle := make(map[string]bool, len(ids))
		for _, id := range ids {
			circle[id] = true
		}
		return circle, nil
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Validationf("invalid user id")
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(user.Friends)+1)
	for _, fid := range user.Friends {
		ids = append(ids, fid.Hex())
	}
	ids = append(ids, userID)
	s.cache.Set(ctx, userID, ids)

	circle := make(map[string]bool, len(ids))
	for _, id := range ids {
		circle[id] = true
	}
	return circle, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	pid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFoundf("Post not found")
	}
	post, err := s.posts.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	single := []models.Post{*post}
	if err := s.populateAuthors(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (s *PostService) GetUserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NotFoundf("User Not Found")
	}
	posts, err := s.posts.FindByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := s.populateAuthors(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleLike adds userID to the post's likes set if absent, removes it if
// present, and persists the result.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperrors.NotFoundf("Post not found")
	}

	post, err := s.posts.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	likes, added := toggleMembership(post.Likes, userID)

	var updated *models.Post
	if s.atomicLikes {
		updated, err = s.posts.ToggleLikeAtomic(ctx, pid, userID, added)
	} else {
		updated, err = s.posts.ReplaceLikes(ctx, pid, likes)
	}
	if err != nil {
		return nil, err
	}

	if added && post.UserID.Hex() != userID {
		if err := s.notifier.PublishEvent(ctx, Event{
			Type:      EventPostLiked,
			ActorID:   userID,
			SubjectID: post.UserID.Hex(),
		}); err != nil {
			slog.Warn("like event publish failed", "postID", postID, "error", err)
		}
	}
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	pid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFoundf("Post not found")
	}
	if err := s.posts.Delete(ctx, pid); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	// Comments referencing the post go with it.
	if err := s.comments.DeleteByPost(ctx, pid); err != nil {
		return fmt.Errorf("delete post comments: %w", err)
	}
	return nil
}

func (s *PostService) populateAuthors(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].UserID)
	}
	summaries, err := summariesByID(ctx, s.users, ids)
	if err != nil {
		return fmt.Errorf("populate post authors: %w", err)
	}
	for i := range posts {
		if summary, ok := summaries[posts[i].UserID.Hex()]; ok {
			posts[i].User = &summary
		}
	}
	return nil
}
