package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlockFileRole string

const (
	FileRolePrimary   BlockFileRole = "primary"
	FileRoleThumbnail BlockFileRole = "thumbnail"
)

// BlockFile links a media block to an uploaded file. The file row is never
// owned by the block: deleting a block removes the association only.
type BlockFile struct {
	ID        string        `gorm:"type:uuid;primary_key" json:"id"`
	BlockID   string        `gorm:"type:uuid;not null;index:idx_block_files_block_file,priority:1" json:"block_id"`
	FileID    string        `gorm:"type:uuid;not null;index:idx_block_files_block_file,priority:2" json:"file_id"`
	Role      BlockFileRole `gorm:"type:varchar(20);default:'primary'" json:"role"`
	CreatedAt time.Time     `json:"created_at"`
}

func (bf *BlockFile) BeforeCreate(tx *gorm.DB) error {
	if bf.ID == "" {
		bf.ID = uuid.New().String()
	}
	return nil
}
