package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"snappoint/pkg/logger"
	"snappoint/services/post/internal/entity"
	"snappoint/services/post/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(userID, title string, blocks []usecase.BlockInput) (*entity.Post, error) {
	args := m.Called(userID, title, blocks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) CreateAndPublishPost(userID, title string, blocks []usecase.BlockInput) (*entity.Post, error) {
	args := m.Called(userID, title, blocks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(postID, userID, title string, blocks []usecase.BlockInput) (*entity.Post, error) {
	args := m.Called(postID, userID, title, blocks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdateAndPublishPost(postID, userID, title string, blocks []usecase.BlockInput) (*entity.Post, error) {
	args := m.Called(postID, userID, title, blocks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) PublishPost(postID, userID string) (*entity.Post, error) {
	args := m.Called(postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(postID string) (*entity.Post, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

const (
	testUserID = "2b6ab0a5-6e13-4f6a-9f37-5f2a2f1f5f10"
	testPostID = "7d3c3c2a-94fd-4a7e-8d2e-1f4b6c8a9e01"
)

func setupRouter(handler *PostHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// Stand-in for the auth middleware.
	r.Use(func(c *gin.Context) {
		c.Set("user_id", testUserID)
		c.Next()
	})

	r.POST("/posts", handler.CreatePost)
	r.POST("/posts/publish", handler.CreateAndPublishPost)
	r.PUT("/posts/:uuid", handler.UpdatePost)
	r.PUT("/posts/:uuid/publish", handler.UpdateAndPublishPost)
	r.POST("/posts/:uuid/publish", handler.PublishPost)
	r.GET("/posts/:uuid", handler.GetPost)
	return r
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePost_Success(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("CreatePost", testUserID, "my trip", mock.Anything).Return(&entity.Post{
		ID:     testPostID,
		Title:  "my trip",
		Status: entity.StatusDraft,
	}, nil)

	w := performJSON(r, "POST", "/posts", gin.H{
		"title": "my trip",
		"blocks": []gin.H{
			{"type": "text", "content": "hello"},
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testPostID, resp.ID)
	assert.Equal(t, entity.StatusDraft, resp.Status)
	mockUC.AssertExpectations(t)
}

func TestCreatePost_EmptyBlocksAllowed(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("CreatePost", testUserID, "empty draft", mock.MatchedBy(func(blocks []usecase.BlockInput) bool {
		return len(blocks) == 0
	})).Return(&entity.Post{ID: testPostID, Title: "empty draft", Status: entity.StatusDraft}, nil)

	w := performJSON(r, "POST", "/posts", gin.H{"title": "empty draft", "blocks": []gin.H{}})

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUC.AssertExpectations(t)
}

func TestCreatePost_MissingTitle(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	w := performJSON(r, "POST", "/posts", gin.H{"blocks": []gin.H{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "CreatePost")
}

func TestCreatePost_InvalidBlockType(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	w := performJSON(r, "POST", "/posts", gin.H{
		"title":  "trip",
		"blocks": []gin.H{{"type": "gallery"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "CreatePost")
}

func TestCreateAndPublishPost_Success(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("CreateAndPublishPost", testUserID, "trip", mock.Anything).Return(&entity.Post{
		ID:     testPostID,
		Title:  "trip",
		Status: entity.StatusPublished,
	}, nil)

	w := performJSON(r, "POST", "/posts/publish", gin.H{
		"title":  "trip",
		"blocks": []gin.H{{"type": "text", "content": "hello"}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.StatusPublished, resp.Status)
}

func TestUpdatePost_Success(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("UpdatePost", testPostID, testUserID, "revised", mock.MatchedBy(func(blocks []usecase.BlockInput) bool {
		return len(blocks) == 1 && blocks[0].UUID == "" && blocks[0].Type == entity.BlockTypeText
	})).Return(&entity.Post{ID: testPostID, Title: "revised"}, nil)

	w := performJSON(r, "PUT", "/posts/"+testPostID, gin.H{
		"title":  "revised",
		"blocks": []gin.H{{"type": "text", "content": "world"}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}

func TestUpdatePost_InvalidUUID(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	w := performJSON(r, "PUT", "/posts/not-a-uuid", gin.H{"title": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "UpdatePost")
}

func TestUpdatePost_Forbidden(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("UpdatePost", testPostID, testUserID, "x", mock.Anything).Return(nil,
		fmt.Errorf("%w: post %s", entity.ErrForbidden, testPostID))

	w := performJSON(r, "PUT", "/posts/"+testPostID, gin.H{"title": "x"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdatePost_UnknownBlock(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("UpdatePost", testPostID, testUserID, "x", mock.Anything).Return(nil,
		fmt.Errorf("%w: unknown block uuid", entity.ErrValidation))

	w := performJSON(r, "PUT", "/posts/"+testPostID, gin.H{"title": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown block uuid")
}

func TestUpdatePost_FileNotFound(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("UpdatePost", testPostID, testUserID, "x", mock.Anything).Return(nil,
		fmt.Errorf("%w: file-1", entity.ErrFileNotFound))

	w := performJSON(r, "PUT", "/posts/"+testPostID, gin.H{"title": "x"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAndPublishPost_Success(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("UpdateAndPublishPost", testPostID, testUserID, "x", mock.Anything).Return(&entity.Post{
		ID:     testPostID,
		Status: entity.StatusPublished,
	}, nil)

	w := performJSON(r, "PUT", "/posts/"+testPostID+"/publish", gin.H{"title": "x"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublishPost_Success(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("PublishPost", testPostID, testUserID).Return(&entity.Post{
		ID:     testPostID,
		Status: entity.StatusPublished,
	}, nil)

	w := performJSON(r, "POST", "/posts/"+testPostID+"/publish", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.StatusPublished, resp.Status)
}

func TestGetPost_Success(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("GetPost", testPostID).Return(&entity.Post{
		ID:    testPostID,
		Title: "trip",
		Blocks: []entity.Block{
			{ID: "block-1", Type: entity.BlockTypeText, Content: "hello", Order: 0},
			{ID: "block-2", Type: entity.BlockTypeMedia, Order: 1, Files: []entity.FileRef{
				{FileID: "file-1", Role: entity.FileRolePrimary, URL: "https://cdn.example.com/file-1.jpg"},
			}},
		},
	}, nil)

	w := performJSON(r, "GET", "/posts/"+testPostID, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Blocks, 2)
	assert.Equal(t, "https://cdn.example.com/file-1.jpg", resp.Blocks[1].Files[0].URL)
}

func TestGetPost_NotFound(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("GetPost", testPostID).Return(nil,
		fmt.Errorf("%w: %s", entity.ErrPostNotFound, testPostID))

	w := performJSON(r, "GET", "/posts/"+testPostID, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPost_IntegrityError(t *testing.T) {
	mockUC := new(MockPostUseCase)
	handler := NewPostHandler(mockUC, logger.New())
	r := setupRouter(handler)

	mockUC.On("GetPost", testPostID).Return(nil,
		fmt.Errorf("%w: media block block-1 has no primary file", entity.ErrIntegrity))

	w := performJSON(r, "GET", "/posts/"+testPostID, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal details are not leaked to the client.
	assert.NotContains(t, w.Body.String(), "block-1")
}
