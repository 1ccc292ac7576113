package persistent

import (
	"errors"
	"fmt"

	"snappoint/services/file/internal/entity"
	"snappoint/services/file/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepository interface {
	Create(file *entity.File) error
	GetByID(id string) (*entity.File, error)
	Delete(id string) error
}

type fileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *entity.File) error {
	fileModel := ToFileModel(file)
	if fileModel.ID == "" {
		fileModel.ID = uuid.New().String()
	}
	if err := r.db.Create(fileModel).Error; err != nil {
		return err
	}
	*file = *ToFileEntity(fileModel)
	return nil
}

// GetByID skips soft-deleted rows, so a deleted file behaves as missing.
func (r *fileRepository) GetByID(id string) (*entity.File, error) {
	var fileModel model.FileModel
	if err := r.db.Where("id = ?", id).First(&fileModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", entity.ErrFileNotFound, id)
		}
		return nil, err
	}
	return ToFileEntity(&fileModel), nil
}

func (r *fileRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.FileModel{}).Error
}
