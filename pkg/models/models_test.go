package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
		Role:     RoleAuthor,
		IsActive: true,
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:       existingID,
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestPost_BeforeCreate(t *testing.T) {
	post := &Post{
		AuthorID: "author-123",
		Title:    "Test Post",
		Status:   StatusDraft,
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)
}

func TestBlock_BeforeCreate(t *testing.T) {
	block := &Block{
		PostID:  "post-123",
		Type:    BlockTypeText,
		Content: "hello",
	}

	err := block.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, block.ID)
}

func TestFile_BeforeCreate(t *testing.T) {
	file := &File{
		UploaderID: "user-123",
		URL:        "https://example.com/file.jpg",
		MimeType:   "image/jpeg",
	}

	err := file.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, file.ID)
}

func TestBlockFile_BeforeCreate(t *testing.T) {
	bf := &BlockFile{
		BlockID: "block-123",
		FileID:  "file-123",
		Role:    FileRolePrimary,
	}

	err := bf.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, bf.ID)
}
