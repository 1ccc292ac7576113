package usecase

import (
	"fmt"

	"snappoint/services/post/internal/entity"
	"snappoint/services/post/internal/repo/persistent"
)

// materializeBlocks applies a reconciliation plan inside the caller's
// transaction: persists new blocks, updates surviving ones, soft-deletes
// removed ones, and keeps block_files associations in step. Any missing or
// soft-deleted file fails the whole operation.
func materializeBlocks(repo persistent.PostRepository, postID string, plan *blockPlan) error {
	for _, create := range plan.toCreate {
		block := entity.Block{
			PostID:    postID,
			Type:      create.input.Type,
			Content:   create.input.Content,
			Latitude:  create.input.Latitude,
			Longitude: create.input.Longitude,
			Order:     create.order,
		}
		if err := repo.CreateBlock(&block); err != nil {
			return fmt.Errorf("failed to create block: %w", err)
		}

		if block.Type == entity.BlockTypeMedia {
			if err := attachFiles(repo, block.ID, create.input.Files); err != nil {
				return err
			}
		}
	}

	for _, update := range plan.toUpdate {
		block := update.existing
		block.Content = update.input.Content
		block.Latitude = update.input.Latitude
		block.Longitude = update.input.Longitude
		block.Order = update.order
		if err := repo.UpdateBlock(&block); err != nil {
			return fmt.Errorf("failed to update block %s: %w", block.ID, err)
		}

		if block.Type == entity.BlockTypeMedia {
			changed, err := fileRefsChanged(repo, block.ID, update.input.Files)
			if err != nil {
				return err
			}
			if changed {
				// Replacing a file swaps the association rows; the old file
				// row itself stays untouched.
				if err := repo.DetachFiles(block.ID); err != nil {
					return fmt.Errorf("failed to detach files from block %s: %w", block.ID, err)
				}
				if err := attachFiles(repo, block.ID, update.input.Files); err != nil {
					return err
				}
			}
		}
	}

	for _, block := range plan.toDelete {
		if err := repo.DetachFiles(block.ID); err != nil {
			return fmt.Errorf("failed to detach files from block %s: %w", block.ID, err)
		}
		if err := repo.DeleteBlock(block.ID); err != nil {
			return fmt.Errorf("failed to delete block %s: %w", block.ID, err)
		}
	}

	return nil
}

// attachFiles resolves each referenced file and records the associations.
// The first file is the block's primary medium, an optional second one its
// thumbnail (video posters).
func attachFiles(repo persistent.PostRepository, blockID string, files []BlockFileInput) error {
	for i, fileInput := range files {
		file, err := repo.FindFile(fileInput.UUID)
		if err != nil {
			return err
		}

		role := entity.FileRolePrimary
		if i > 0 {
			role = entity.FileRoleThumbnail
		}

		if err := repo.AttachFile(blockID, file.ID, role); err != nil {
			return fmt.Errorf("failed to attach file %s to block %s: %w", file.ID, blockID, err)
		}
	}
	return nil
}

// fileRefsChanged compares the stored associations against the incoming
// references by role, so the answer does not depend on the order the
// repository returns rows in.
func fileRefsChanged(repo persistent.PostRepository, blockID string, files []BlockFileInput) (bool, error) {
	current, err := repo.GetBlockFiles(blockID)
	if err != nil {
		return false, err
	}

	if len(current) != len(files) {
		return true, nil
	}

	currentByRole := make(map[entity.BlockFileRole]string, len(current))
	for _, ref := range current {
		currentByRole[ref.Role] = ref.FileID
	}
	for i, fileInput := range files {
		role := entity.FileRolePrimary
		if i > 0 {
			role = entity.FileRoleThumbnail
		}
		if currentByRole[role] != fileInput.UUID {
			return true, nil
		}
	}
	return false, nil
}
