package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/pkg/apperrors"
)

type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	users    repository.UserRepository
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	users repository.UserRepository,
) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		users:    users,
	}
}

func (s *CommentService) GetComments(ctx context.Context, postID string) ([]models.Comment, error) {
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperrors.NotFoundf("Post not found")
	}
	comments, err := s.comments.FindByPost(ctx, pid)
	if err != nil {
		return nil, err
	}
	if err := s.populateAuthors(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment inserts the comment document, then appends its id to the post.
// The two writes are not wrapped in a transaction: a failure between them
// leaves the comment orphaned.
func (s *CommentService) AddComment(ctx context.Context, postID, userID string, req models.AddCommentRequest) (*models.Comment, error) {
	if req.Comment == "" {
		return nil, apperrors.Validationf("Comment is required.")
	}
	pid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, apperrors.NotFoundf("Post not found")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Validationf("invalid user id")
	}

	comment := &models.Comment{
		UserID:  uid,
		PostID:  pid,
		Comment: req.Comment,
		From:    req.From,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := s.posts.AppendComment(ctx, pid, comment.ID); err != nil {
		return nil, err
	}
	return comment, nil
}

// AddReply appends a reply record to the comment's embedded reply list.
func (s *CommentService) AddReply(ctx context.Context, commentID, userID string, req models.AddReplyRequest) (*models.Comment, error) {
	if req.Comment == "" {
		return nil, apperrors.Validationf("Comment is required.")
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, apperrors.NotFoundf("Comment not found")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Validationf("invalid user id")
	}

	now := time.Now().UTC()
	reply := models.Reply{
		RID:       primitive.NewObjectID(),
		UserID:    uid,
		From:      req.From,
		ReplyAt:   req.ReplyAt,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
		Likes:     []string{},
	}
	return s.comments.PushReply(ctx, cid, reply)
}

// ToggleCommentLike flips userID's membership in the comment's likes set,
// or in a single reply's likes set when replyID addresses one. A replyID
// that matches nothing is a hard NotFound, never a silent no-op.
func (s *CommentService) ToggleCommentLike(ctx context.Context, commentID, replyID, userID string) (*models.Comment, error) {
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, apperrors.NotFoundf("Comment not found")
	}

	comment, err := s.comments.FindByID(ctx, cid)
	if err != nil {
		return nil, err
	}

	// "false" is the client's absence marker for the reply segment.
	if replyID == "" || replyID == "false" {
		likes, _ := toggleMembership(comment.Likes, userID)
		return s.comments.ReplaceLikes(ctx, cid, likes)
	}

	rid, err := primitive.ObjectIDFromHex(replyID)
	if err != nil {
		return nil, apperrors.NotFoundf("Reply not found")
	}
	var reply *models.Reply
	for i := range comment.Replies {
		if comment.Replies[i].RID == rid {
			reply = &comment.Replies[i]
			break
		}
	}
	if reply == nil {
		return nil, apperrors.NotFoundf("Reply not found")
	}

	likes, _ := toggleMembership(reply.Likes, userID)
	return s.comments.ReplaceReplyLikes(ctx, cid, rid, likes)
}

func (s *CommentService) populateAuthors(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	var ids []primitive.ObjectID
	for i := range comments {
		ids = append(ids, comments[i].UserID)
		for j := range comments[i].Replies {
			ids = append(ids, comments[i].Replies[j].UserID)
		}
	}
	summaries, err := summariesByID(ctx, s.users, ids)
	if err != nil {
		return fmt.Errorf("populate comment authors: %w", err)
	}
	for i := range comments {
		if summary, ok := summaries[comments[i].UserID.Hex()]; ok {
			comments[i].User = &summary
		}
		for j := range comments[i].Replies {
			if summary, ok := summaries[comments[i].Replies[j].UserID.Hex()]; ok {
				comments[i].Replies[j].User = &summary
			}
		}
	}
	return nil
}
