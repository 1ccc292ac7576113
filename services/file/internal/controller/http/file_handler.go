package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"snappoint/services/file/internal/entity"
	"snappoint/services/file/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FileHandler struct {
	fileUseCase usecase.FileUseCase
}

func NewFileHandler(fileUseCase usecase.FileUseCase) *FileHandler {
	return &FileHandler{
		fileUseCase: fileUseCase,
	}
}

var allowedMimePrefixes = []string{"image/", "video/"}

func allowedMimeType(contentType string) bool {
	for _, prefix := range allowedMimePrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// UploadFile godoc
// @Summary      Upload a media file
// @Description  Upload an image or video. Video uploads may carry a thumbnail image. The returned uuid is referenced by post media blocks.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Media file"
// @Param        thumbnail formData file false "Thumbnail image for video files"
// @Success      201  {object}  entity.File
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /files [post]
func (h *FileHandler) UploadFile(c *gin.Context) {
	userID := c.GetString("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedMimeType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image and video files are allowed"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer src.Close()

	var thumbnail io.Reader
	if thumbHeader, err := c.FormFile("thumbnail"); err == nil {
		thumbSrc, err := thumbHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process thumbnail"})
			return
		}
		defer thumbSrc.Close()
		thumbnail = thumbSrc
	}

	file, err := h.fileUseCase.UploadFile(userID, fileHeader.Filename, contentType, src, thumbnail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, file)
}

// GetFile godoc
// @Summary      Get file metadata
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        uuid path string true "File UUID"
// @Success      200  {object}  entity.File
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /files/{uuid} [get]
func (h *FileHandler) GetFile(c *gin.Context) {
	fileID := c.Param("uuid")
	if _, err := uuid.Parse(fileID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file uuid"})
		return
	}

	file, err := h.fileUseCase.GetFile(fileID)
	if err != nil {
		if errors.Is(err, entity.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, file)
}

// DeleteFile godoc
// @Summary      Delete a file
// @Description  Soft-delete a file. Existing post blocks keep their association; the file can no longer be referenced by new blocks.
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        uuid path string true "File UUID"
// @Success      204  "No Content"
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /files/{uuid} [delete]
func (h *FileHandler) DeleteFile(c *gin.Context) {
	userID := c.GetString("user_id")

	fileID := c.Param("uuid")
	if _, err := uuid.Parse(fileID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file uuid"})
		return
	}

	if err := h.fileUseCase.DeleteFile(fileID, userID); err != nil {
		switch {
		case errors.Is(err, entity.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
