package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"snappoint/pkg/logger"
	"snappoint/pkg/queue"
	"snappoint/services/post/internal/entity"
	"snappoint/services/post/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

type PostUseCase interface {
	CreatePost(userID, title string, blocks []BlockInput) (*entity.Post, error)
	CreateAndPublishPost(userID, title string, blocks []BlockInput) (*entity.Post, error)
	UpdatePost(postID, userID, title string, blocks []BlockInput) (*entity.Post, error)
	UpdateAndPublishPost(postID, userID, title string, blocks []BlockInput) (*entity.Post, error)
	PublishPost(postID, userID string) (*entity.Post, error)
	GetPost(postID string) (*entity.Post, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *postUseCase) CreatePost(userID, title string, blocks []BlockInput) (*entity.Post, error) {
	return uc.writePost(userID, title, blocks, false)
}

func (uc *postUseCase) CreateAndPublishPost(userID, title string, blocks []BlockInput) (*entity.Post, error) {
	return uc.writePost(userID, title, blocks, true)
}

// writePost creates a new post and materializes its blocks inside one
// transaction. Nothing is visible outside the transaction until commit.
func (uc *postUseCase) writePost(userID, title string, blocks []BlockInput, publish bool) (*entity.Post, error) {
	if err := validateBlocks(blocks); err != nil {
		return nil, err
	}

	var result *entity.Post
	err := uc.postRepo.Transaction(func(tx persistent.PostRepository) error {
		post := &entity.Post{
			AuthorID: userID,
			Title:    title,
			Summary:  summarize(blocks),
			Status:   entity.StatusDraft,
		}
		if err := tx.CreatePost(post); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		plan, err := reconcileBlocks(nil, blocks)
		if err != nil {
			return err
		}
		if err := materializeBlocks(tx, post.ID, plan); err != nil {
			return err
		}

		if publish {
			post.Status = entity.StatusPublished
			if err := tx.UpdatePost(post); err != nil {
				return fmt.Errorf("failed to publish post: %w", err)
			}
		}

		result, err = assemblePost(tx, post.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if publish {
		uc.notifyPublished(result)
	}
	uc.cachePost(result)
	return result, nil
}

func (uc *postUseCase) UpdatePost(postID, userID, title string, blocks []BlockInput) (*entity.Post, error) {
	return uc.savePost(postID, userID, title, blocks, false)
}

func (uc *postUseCase) UpdateAndPublishPost(postID, userID, title string, blocks []BlockInput) (*entity.Post, error) {
	return uc.savePost(postID, userID, title, blocks, true)
}

// savePost reconciles the incoming block list against the stored blocks
// and applies the whole outcome in one transaction. The post row is locked
// for the duration so concurrent saves to the same post serialize.
func (uc *postUseCase) savePost(postID, userID, title string, blocks []BlockInput, publish bool) (*entity.Post, error) {
	if err := validateBlocks(blocks); err != nil {
		return nil, err
	}

	var result *entity.Post
	var becamePublished bool
	err := uc.postRepo.Transaction(func(tx persistent.PostRepository) error {
		post, err := tx.GetPostForUpdate(postID)
		if err != nil {
			return err
		}

		// Ownership is checked before any reconciliation work.
		if post.AuthorID != userID {
			return fmt.Errorf("%w: post %s", entity.ErrForbidden, postID)
		}

		existing, err := tx.GetBlocks(postID)
		if err != nil {
			return err
		}

		plan, err := reconcileBlocks(existing, blocks)
		if err != nil {
			return err
		}
		if err := materializeBlocks(tx, postID, plan); err != nil {
			return err
		}

		post.Title = title
		post.Summary = summarize(blocks)
		if publish && post.Status != entity.StatusPublished {
			post.Status = entity.StatusPublished
			becamePublished = true
		}
		if err := tx.UpdatePost(post); err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}

		result, err = assemblePost(tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if becamePublished {
		uc.notifyPublished(result)
	}
	uc.cachePost(result)
	return result, nil
}

// PublishPost flips a draft to published. Publishing an already published
// post is a no-op success; there is no transition back to draft.
func (uc *postUseCase) PublishPost(postID, userID string) (*entity.Post, error) {
	var result *entity.Post
	var becamePublished bool
	err := uc.postRepo.Transaction(func(tx persistent.PostRepository) error {
		post, err := tx.GetPostForUpdate(postID)
		if err != nil {
			return err
		}

		if post.AuthorID != userID {
			return fmt.Errorf("%w: post %s", entity.ErrForbidden, postID)
		}

		if post.Status != entity.StatusPublished {
			post.Status = entity.StatusPublished
			if err := tx.UpdatePost(post); err != nil {
				return fmt.Errorf("failed to publish post: %w", err)
			}
			becamePublished = true
		}

		result, err = assemblePost(tx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if becamePublished {
		uc.notifyPublished(result)
		uc.cachePost(result)
	}
	return result, nil
}

func (uc *postUseCase) GetPost(postID string) (*entity.Post, error) {
	if cached := uc.cachedPost(postID); cached != nil {
		return cached, nil
	}

	post, err := assemblePost(uc.postRepo, postID)
	if err != nil {
		return nil, err
	}

	uc.cachePost(post)
	return post, nil
}

func (uc *postUseCase) cachePost(post *entity.Post) {
	if uc.redisClient == nil || post == nil {
		return
	}

	data, err := json.Marshal(post)
	if err != nil {
		return
	}

	ctx := context.Background()
	key := fmt.Sprintf("post_view:%s", post.ID)
	if err := uc.redisClient.Set(ctx, key, data, 10*time.Minute).Err(); err != nil {
		uc.logger.Warn("Failed to cache post %s: %v", post.ID, err)
	}
}

func (uc *postUseCase) cachedPost(postID string) *entity.Post {
	if uc.redisClient == nil {
		return nil
	}

	ctx := context.Background()
	key := fmt.Sprintf("post_view:%s", postID)
	data, err := uc.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}

	var post entity.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil
	}
	return &post
}

func (uc *postUseCase) notifyPublished(post *entity.Post) {
	if uc.queueClient == nil || post == nil {
		return
	}

	event := map[string]interface{}{
		"type":      "post_published",
		"post_id":   post.ID,
		"author_id": post.AuthorID,
		"title":     post.Title,
	}

	if err := uc.queueClient.PublishPostEvent(event); err != nil {
		uc.logger.Error("Failed to publish post event for %s: %v", post.ID, err)
	}
}
