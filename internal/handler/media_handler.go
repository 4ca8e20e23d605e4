package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/adapters/storage"
	"social-service/pkg/apperrors"
	"social-service/pkg/response"
)

type MediaHandler struct {
	store *storage.MediaStore
}

func NewMediaHandler(store *storage.MediaStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Upload accepts a multipart file and returns its public URL.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperrors.Validationf("You must provide a file"))
		return
	}

	url, err := h.store.Upload(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Uploaded successfully", gin.H{"url": url})
}
