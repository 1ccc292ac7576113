package usecase

import (
	"fmt"
	"unicode/utf8"

	"snappoint/services/post/internal/entity"
	"snappoint/services/post/internal/repo/persistent"
)

const summaryMaxLen = 200

// assemblePost rebuilds the externally visible post: the post row, its
// author, and the surviving blocks in display order with resolved file
// metadata. Runs against either a live transaction (read-your-writes after
// a save) or the plain repository (GET path); the shape is identical.
func assemblePost(repo persistent.PostRepository, postID string) (*entity.Post, error) {
	post, err := repo.GetPost(postID)
	if err != nil {
		return nil, err
	}

	author, err := repo.GetAuthor(post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author of post %s: %w", postID, err)
	}
	post.AuthorEmail = author.Email
	post.AuthorUsername = author.Username

	blocks, err := repo.GetBlocks(postID)
	if err != nil {
		return nil, err
	}

	for i := range blocks {
		if blocks[i].Type != entity.BlockTypeMedia {
			continue
		}

		refs, err := repo.GetBlockFiles(blocks[i].ID)
		if err != nil {
			return nil, err
		}

		if !hasPrimaryFile(refs) {
			// Should be unreachable when the materializer is correct;
			// surfaced loudly instead of repaired.
			return nil, fmt.Errorf("%w: media block %s has no primary file", entity.ErrIntegrity, blocks[i].ID)
		}
		blocks[i].Files = refs
	}

	if blocks == nil {
		blocks = []entity.Block{}
	}
	post.Blocks = blocks
	return post, nil
}

func hasPrimaryFile(refs []entity.FileRef) bool {
	for _, ref := range refs {
		if ref.Role == entity.FileRolePrimary {
			return true
		}
	}
	return false
}

// summarize derives the post excerpt from the first text block.
func summarize(blocks []BlockInput) string {
	for _, input := range blocks {
		if input.Type != entity.BlockTypeText || input.Content == "" {
			continue
		}
		if utf8.RuneCountInString(input.Content) <= summaryMaxLen {
			return input.Content
		}
		runes := []rune(input.Content)
		return string(runes[:summaryMaxLen])
	}
	return ""
}
