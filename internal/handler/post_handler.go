package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/models"
	"social-service/internal/service"
	"social-service/pkg/response"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.CreatePostRequest
	// An empty body is treated as a missing description, not a bind error.
	_ = c.ShouldBindJSON(&req)

	post, err := h.postService.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Post created successfully", post)
}

// Feed serves the ranked post list. The search term rides in the body to
// match the client contract.
func (h *PostHandler) Feed(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.FeedRequest
	_ = c.ShouldBindJSON(&req)

	posts, err := h.postService.AssembleFeed(c.Request.Context(), userID, req.Search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "successfully", posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "successfully", post)
}

func (h *PostHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.postService.GetUserPosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "successfully", posts)
}

func (h *PostHandler) LikePost(c *gin.Context) {
	userID := c.GetString("user_id")

	post, err := h.postService.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Post liked/unliked successfully", post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Deleted successfully", nil)
}
