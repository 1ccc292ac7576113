package persistent

import (
	"errors"
	"fmt"

	"snappoint/services/post/internal/entity"
	"snappoint/services/post/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository is the transactional persistence boundary of the post
// service. Transaction yields a repository bound to one database
// transaction; every write inside the callback commits or rolls back as a
// unit.
type PostRepository interface {
	Transaction(fn func(PostRepository) error) error

	CreatePost(post *entity.Post) error
	GetPost(id string) (*entity.Post, error)
	// GetPostForUpdate loads the post row with a FOR UPDATE lock so that
	// concurrent saves to the same post serialize instead of interleaving
	// their reconciliation decisions.
	GetPostForUpdate(id string) (*entity.Post, error)
	UpdatePost(post *entity.Post) error

	GetBlocks(postID string) ([]entity.Block, error)
	CreateBlock(block *entity.Block) error
	UpdateBlock(block *entity.Block) error
	DeleteBlock(id string) error

	FindFile(id string) (*entity.File, error)
	AttachFile(blockID, fileID string, role entity.BlockFileRole) error
	DetachFiles(blockID string) error
	GetBlockFiles(blockID string) ([]entity.FileRef, error)

	GetAuthor(id string) (*entity.Author, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Transaction(fn func(PostRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&postRepository{db: tx})
	})
}

func (r *postRepository) CreatePost(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetPost(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", entity.ErrPostNotFound, id)
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetPostForUpdate(id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&postModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", entity.ErrPostNotFound, id)
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) UpdatePost(post *entity.Post) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":   post.Title,
		"summary": post.Summary,
		"status":  string(post.Status),
	}).Error
}

func (r *postRepository) GetBlocks(postID string) ([]entity.Block, error) {
	var blockModels []model.BlockModel
	err := r.db.Where("post_id = ?", postID).
		Order("blocks.order ASC").
		Find(&blockModels).Error
	if err != nil {
		return nil, err
	}

	blocks := make([]entity.Block, len(blockModels))
	for i := range blockModels {
		blocks[i] = ToBlockEntity(&blockModels[i])
	}
	return blocks, nil
}

func (r *postRepository) CreateBlock(block *entity.Block) error {
	blockModel := ToBlockModel(block)
	if err := r.db.Create(blockModel).Error; err != nil {
		return err
	}
	*block = ToBlockEntity(blockModel)
	return nil
}

func (r *postRepository) UpdateBlock(block *entity.Block) error {
	return r.db.Model(&model.BlockModel{}).Where("id = ?", block.ID).Updates(map[string]interface{}{
		"content":   block.Content,
		"latitude":  block.Latitude,
		"longitude": block.Longitude,
		"order":     block.Order,
	}).Error
}

func (r *postRepository) DeleteBlock(id string) error {
	return r.db.Delete(&model.BlockModel{}, "id = ?", id).Error
}

func (r *postRepository) FindFile(id string) (*entity.File, error) {
	var fileModel model.FileModel
	if err := r.db.Where("id = ?", id).First(&fileModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", entity.ErrFileNotFound, id)
		}
		return nil, err
	}
	return ToFileEntity(&fileModel), nil
}

func (r *postRepository) AttachFile(blockID, fileID string, role entity.BlockFileRole) error {
	blockFile := &model.BlockFileModel{
		BlockID: blockID,
		FileID:  fileID,
		Role:    string(role),
	}
	return r.db.Create(blockFile).Error
}

// DetachFiles removes the block's file associations. File rows are never
// touched from this path.
func (r *postRepository) DetachFiles(blockID string) error {
	return r.db.Where("block_id = ?", blockID).Delete(&model.BlockFileModel{}).Error
}

// GetBlockFiles resolves the block's associations against the file rows,
// soft-deleted ones included: the association plus the stored URL snapshot
// is a weak reference, so a file deleted after attach keeps serving its
// URL. Only FindFile guards against deleted files, and only for new
// references. Ordered by role so the primary file always comes first.
func (r *postRepository) GetBlockFiles(blockID string) ([]entity.FileRef, error) {
	var rows []struct {
		FileID       string
		Role         string
		URL          string
		ThumbnailURL string
		MimeType     string
	}
	err := r.db.Model(&model.BlockFileModel{}).
		Select("block_files.file_id, block_files.role, files.url, files.thumbnail_url, files.mime_type").
		Joins("INNER JOIN files ON files.id = block_files.file_id").
		Where("block_files.block_id = ?", blockID).
		Order("block_files.role ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	refs := make([]entity.FileRef, len(rows))
	for i, row := range rows {
		refs[i] = entity.FileRef{
			FileID:       row.FileID,
			Role:         entity.BlockFileRole(row.Role),
			URL:          row.URL,
			ThumbnailURL: row.ThumbnailURL,
			MimeType:     row.MimeType,
		}
	}
	return refs, nil
}

func (r *postRepository) GetAuthor(id string) (*entity.Author, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return &entity.Author{
		ID:       userModel.ID,
		Email:    userModel.Email,
		Username: userModel.Username,
	}, nil
}
