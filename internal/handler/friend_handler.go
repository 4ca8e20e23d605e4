package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/models"
	"social-service/internal/service"
	"social-service/pkg/apperrors"
	"social-service/pkg/response"
)

type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.SendFriendRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Validationf("Provide Required Fields!"))
		return
	}

	if err := h.friendService.SendRequest(c.Request.Context(), userID, req.RequestTo); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Friend Request sent successfully", nil)
}

func (h *FriendHandler) GetPending(c *gin.Context) {
	userID := c.GetString("user_id")

	requests, err := h.friendService.GetPending(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "successfully", requests)
}

func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.AcceptFriendRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Validationf("Provide Required Fields!"))
		return
	}

	if err := h.friendService.Respond(c.Request.Context(), userID, req.RID, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Friend Request "+req.Status, nil)
}
