package usecase

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"snappoint/pkg/logger"
	"snappoint/services/file/internal/entity"
	"snappoint/services/file/internal/repo/persistent"

	"github.com/google/uuid"
)

// ObjectStorage is the subset of the S3 client the file service needs.
type ObjectStorage interface {
	UploadFile(key string, file io.Reader, contentType string) (string, error)
	DeleteFile(key string) error
}

type FileUseCase interface {
	UploadFile(uploaderID, filename, contentType string, file io.Reader, thumbnail io.Reader) (*entity.File, error)
	GetFile(fileID string) (*entity.File, error)
	DeleteFile(fileID, userID string) error
}

type fileUseCase struct {
	fileRepo persistent.FileRepository
	storage  ObjectStorage
	logger   *logger.Logger
}

func NewFileUseCase(
	fileRepo persistent.FileRepository,
	storage ObjectStorage,
	logger *logger.Logger,
) FileUseCase {
	return &fileUseCase{
		fileRepo: fileRepo,
		storage:  storage,
		logger:   logger,
	}
}

// UploadFile stores the media object (and an optional thumbnail for video
// files) and records the file row. Posts reference the row by uuid.
func (uc *fileUseCase) UploadFile(uploaderID, filename, contentType string, file io.Reader, thumbnail io.Reader) (*entity.File, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("media/%s/%s%s", uploaderID, uuid.New().String(), ext)

	url, err := uc.storage.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload file: %v", err)
		return nil, fmt.Errorf("failed to upload file")
	}

	var thumbnailURL string
	if thumbnail != nil && strings.HasPrefix(contentType, "video/") {
		thumbKey := fmt.Sprintf("media/%s/thumbnails/%s.jpg", uploaderID, uuid.New().String())
		thumbnailURL, err = uc.storage.UploadFile(thumbKey, thumbnail, "image/jpeg")
		if err != nil {
			uc.logger.Error("Failed to upload thumbnail: %v", err)
			return nil, fmt.Errorf("failed to upload thumbnail")
		}
	}

	fileEntity := &entity.File{
		UploaderID:   uploaderID,
		URL:          url,
		ThumbnailURL: thumbnailURL,
		MimeType:     contentType,
	}

	if err := uc.fileRepo.Create(fileEntity); err != nil {
		uc.logger.Error("Failed to create file record: %v", err)
		return nil, fmt.Errorf("failed to create file record")
	}

	return fileEntity, nil
}

func (uc *fileUseCase) GetFile(fileID string) (*entity.File, error) {
	return uc.fileRepo.GetByID(fileID)
}

// DeleteFile soft-deletes the file row. Existing block associations keep
// resolving against the stored URL snapshot; only new references to the
// file are rejected.
func (uc *fileUseCase) DeleteFile(fileID, userID string) error {
	file, err := uc.fileRepo.GetByID(fileID)
	if err != nil {
		return err
	}

	if file.UploaderID != userID {
		return fmt.Errorf("%w: file %s", entity.ErrForbidden, fileID)
	}

	// The S3 object is kept: published posts may still serve its URL.
	return uc.fileRepo.Delete(fileID)
}
