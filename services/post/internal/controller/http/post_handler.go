package http

import (
	"errors"
	"net/http"

	"snappoint/pkg/logger"
	"snappoint/services/post/internal/entity"
	"snappoint/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type WriteBlockFileRequest struct {
	UUID string `json:"uuid" binding:"required,uuid"`
}

type WriteBlockRequest struct {
	UUID      string                  `json:"uuid" binding:"omitempty,uuid"`
	Type      string                  `json:"type" binding:"required,oneof=text media"`
	Content   string                  `json:"content"`
	Latitude  *float64                `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64                `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Files     []WriteBlockFileRequest `json:"files" binding:"omitempty,dive"`
}

type WritePostRequest struct {
	Title  string              `json:"title" binding:"required,max=255"`
	Blocks []WriteBlockRequest `json:"blocks" binding:"omitempty,dive"`
}

func toBlockInputs(reqs []WriteBlockRequest) []usecase.BlockInput {
	inputs := make([]usecase.BlockInput, len(reqs))
	for i, req := range reqs {
		files := make([]usecase.BlockFileInput, len(req.Files))
		for j, f := range req.Files {
			files[j] = usecase.BlockFileInput{UUID: f.UUID}
		}
		inputs[i] = usecase.BlockInput{
			UUID:      req.UUID,
			Type:      entity.BlockType(req.Type),
			Content:   req.Content,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			Files:     files,
		}
	}
	return inputs
}

// writeError maps domain errors to response statuses. The wrapped message
// names the block or file uuid that triggered the failure so clients can
// pinpoint the offending entry.
func (h *PostHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrPostNotFound), errors.Is(err, entity.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrIntegrity):
		h.logger.Error("Integrity violation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		h.logger.Error("Unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CreatePost godoc
// @Summary      Create a draft post
// @Description  Create a new draft post from an ordered list of content blocks. Media blocks reference previously uploaded files by uuid.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body WritePostRequest true "Post content"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req WritePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(userID, req.Title, toBlockInputs(req.Blocks))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// CreateAndPublishPost godoc
// @Summary      Create and publish a post
// @Description  Create a new post from an ordered list of content blocks and publish it in the same transaction.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body WritePostRequest true "Post content"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/publish [post]
func (h *PostHandler) CreateAndPublishPost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req WritePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreateAndPublishPost(userID, req.Title, toBlockInputs(req.Blocks))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      Save a post
// @Description  Replace the post's block list with the submitted ordered list. Blocks carrying a known uuid are updated, entries without a uuid are created, stored blocks missing from the list are deleted.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid path string true "Post UUID"
// @Param        request body WritePostRequest true "Post content"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{uuid} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	postID := c.Param("uuid")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post uuid"})
		return
	}

	var req WritePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.UpdatePost(postID, userID, req.Title, toBlockInputs(req.Blocks))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdateAndPublishPost godoc
// @Summary      Save and publish a post
// @Description  Save the submitted block list and publish the post in the same transaction. Publishing an already published post is a no-op.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid path string true "Post UUID"
// @Param        request body WritePostRequest true "Post content"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{uuid}/publish [put]
func (h *PostHandler) UpdateAndPublishPost(c *gin.Context) {
	userID := c.GetString("user_id")

	postID := c.Param("uuid")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post uuid"})
		return
	}

	var req WritePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.UpdateAndPublishPost(postID, userID, req.Title, toBlockInputs(req.Blocks))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// PublishPost godoc
// @Summary      Publish a post
// @Description  Transition a draft post to published without changing its content. Idempotent.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid path string true "Post UUID"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{uuid}/publish [post]
func (h *PostHandler) PublishPost(c *gin.Context) {
	userID := c.GetString("user_id")

	postID := c.Param("uuid")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post uuid"})
		return
	}

	post, err := h.postUseCase.PublishPost(postID, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetPost godoc
// @Summary      Get a post
// @Description  Return the assembled post: ordered blocks with resolved file URLs.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid path string true "Post UUID"
// @Success      200  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{uuid} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("uuid")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post uuid"})
		return
	}

	post, err := h.postUseCase.GetPost(postID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}
