package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/models"
	"social-service/internal/service"
	"social-service/pkg/apperrors"
	"social-service/pkg/response"
)

type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

func (h *UserHandler) VerifyEmail(c *gin.Context) {
	userID := c.Param("userId")
	token := c.Param("token")

	message, err := h.authService.VerifyEmail(c.Request.Context(), userID, token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, message, nil)
}

func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Validationf("Please provide an email address"))
		return
	}

	message, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, message, nil)
}

func (h *UserHandler) ValidateResetLink(c *gin.Context) {
	userID := c.Param("userId")
	token := c.Param("token")

	if err := h.authService.ValidateResetLink(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Reset link is valid", gin.H{"id": userID})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Validationf("Provide Required Fields!"))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), req.UserID, req.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Password successfully changed", nil)
}

// GetUser answers for the path id, falling back to the authenticated user.
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		id = c.GetString("user_id")
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "successfully", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Validationf("Please provide all required fields"))
		return
	}

	res, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "User updated successfully", res)
}

func (h *UserHandler) ProfileView(c *gin.Context) {
	userID := c.GetString("user_id")

	var req models.ProfileViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Validationf("Provide Required Fields!"))
		return
	}

	if err := h.userService.ProfileView(c.Request.Context(), userID, req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Successfully", nil)
}

func (h *UserHandler) SuggestedFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	suggested, err := h.userService.SuggestedFriends(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "successfully", suggested)
}
