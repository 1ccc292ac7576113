package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlockModel struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string         `gorm:"type:uuid;not null;index" json:"post_id"`
	Type      string         `gorm:"type:varchar(10);not null" json:"type"`
	Content   string         `gorm:"type:text" json:"content"`
	Latitude  *float64       `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude *float64       `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	Order     int            `gorm:"column:order;default:0;index" json:"order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BlockModel) TableName() string { return "blocks" }

func (b *BlockModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

type BlockFileModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	BlockID   string    `gorm:"type:uuid;not null;index" json:"block_id"`
	FileID    string    `gorm:"type:uuid;not null;index" json:"file_id"`
	Role      string    `gorm:"type:varchar(20);default:'primary'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (BlockFileModel) TableName() string { return "block_files" }

func (bf *BlockFileModel) BeforeCreate(tx *gorm.DB) error {
	if bf.ID == "" {
		bf.ID = uuid.New().String()
	}
	return nil
}
