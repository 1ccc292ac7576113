package persistent

import (
	"snappoint/services/file/internal/entity"
	"snappoint/services/file/internal/model"
)

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
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToFileModel(e *entity.File) *model.FileModel {
	if e == nil {
		return nil
	}

	return &model.FileModel{
		ID:           e.ID,
		UploaderID:   e.UploaderID,
		URL:          e.URL,
		ThumbnailURL: e.ThumbnailURL,
		MimeType:     e.MimeType,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
