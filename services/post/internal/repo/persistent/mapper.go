package persistent

import (
	"snappoint/services/post/internal/entity"
	"snappoint/services/post/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:        m.ID,
		AuthorID:  m.AuthorID,
		Title:     m.Title,
		Summary:   m.Summary,
		Status:    entity.PostStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:        e.ID,
		AuthorID:  e.AuthorID,
		Title:     e.Title,
		Summary:   e.Summary,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToBlockEntity(m *model.BlockModel) entity.Block {
	if m == nil {
		return entity.Block{}
	}

	return entity.Block{
		ID:        m.ID,
		PostID:    m.PostID,
		Type:      entity.BlockType(m.Type),
		Content:   m.Content,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Order:     m.Order,
	}
}

func ToBlockModel(e *entity.Block) *model.BlockModel {
	if e == nil {
		return nil
	}

	return &model.BlockModel{
		ID:        e.ID,
		PostID:    e.PostID,
		Type:      string(e.Type),
		Content:   e.Content,
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		Order:     e.Order,
	}
}

func ToFileEntity(m *model.FileModel) *entity.File {
	if m == nil {
		return nil
	}

	return &entity.File{
		ID:           m.ID,
		UploaderID:   m.UploaderID,
		URL:          m.URL,
		ThumbnailURL: m.ThumbnailURL,
		MimeType:     m.MimeType,
		CreatedAt:    m.CreatedAt,
	}
}
