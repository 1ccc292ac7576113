package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	UploaderID   string         `gorm:"type:uuid;not null;index" json:"uploader_id"`
	URL          string         `gorm:"type:varchar(500);not null" json:"url"`
	ThumbnailURL string         `gorm:"type:varchar(500)" json:"thumbnail_url"`
	MimeType     string         `gorm:"type:varchar(100);not null" json:"mime_type"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (FileModel) TableName() string {
	return "files"
}

func (f *FileModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
