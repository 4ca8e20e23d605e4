package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/models"
	"social-service/internal/service"
	"social-service/pkg/response"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.commentService.GetComments(c.Request.Context(), c.Param("postId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "successfully", comments)
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.AddCommentRequest
	_ = c.ShouldBindJSON(&req)

	comment, err := h.commentService.AddComment(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Comment added successfully", comment)
}

func (h *CommentHandler) AddReply(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.AddReplyRequest
	_ = c.ShouldBindJSON(&req)

	comment, err := h.commentService.AddReply(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Reply added successfully", comment)
}

// LikeComment toggles a like on the comment, or on one of its replies when
// the rid segment is present.
func (h *CommentHandler) LikeComment(c *gin.Context) {
	userID := c.GetString("user_id")

	comment, err := h.commentService.ToggleCommentLike(
		c.Request.Context(), c.Param("id"), c.Param("rid"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Comment liked/unliked successfully", comment)
}
