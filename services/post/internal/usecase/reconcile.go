package usecase

import (
	"fmt"

	"snappoint/services/post/internal/entity"
)

// BlockFileInput references a previously uploaded file by its uuid.
type BlockFileInput struct {
	UUID string `json:"uuid"`
}

// BlockInput is one entry of the ordered block list a client submits. A
// missing UUID marks the entry as new; a present UUID must belong to the
// post being written.
type BlockInput struct {
	UUID      string           `json:"uuid,omitempty"`
	Type      entity.BlockType `json:"type"`
	Content   string           `json:"content"`
	Latitude  *float64         `json:"latitude,omitempty"`
	Longitude *float64         `json:"longitude,omitempty"`
	Files     []BlockFileInput `json:"files,omitempty"`
}

type blockCreate struct {
	input BlockInput
	order int
}

type blockUpdate struct {
	existing entity.Block
	input    BlockInput
	order    int
}

// blockPlan partitions a save request against the stored blocks: every
// incoming entry lands in toCreate or toUpdate, every stored block absent
// from the request lands in toDelete.
type blockPlan struct {
	toCreate []blockCreate
	toUpdate []blockUpdate
	toDelete []entity.Block
}

// reconcileBlocks diffs the incoming ordered block list against the blocks
// currently stored for the post. The position of each entry in the incoming
// sequence becomes its new order value (0-based, dense), so every save
// recomputes the full ordering of the surviving blocks.
//
// Pure function of its inputs: no I/O, no clock. File existence is not
// checked here; that is the materializer's concern.
func reconcileBlocks(existing []entity.Block, incoming []BlockInput) (*blockPlan, error) {
	existingByID := make(map[string]entity.Block, len(existing))
	for _, block := range existing {
		existingByID[block.ID] = block
	}

	plan := &blockPlan{}
	seen := make(map[string]bool, len(incoming))

	for i, input := range incoming {
		if input.UUID == "" {
			plan.toCreate = append(plan.toCreate, blockCreate{input: input, order: i})
			continue
		}

		if seen[input.UUID] {
			return nil, fmt.Errorf("%w: duplicate block uuid %s", entity.ErrValidation, input.UUID)
		}
		seen[input.UUID] = true

		block, ok := existingByID[input.UUID]
		if !ok {
			// A uuid that does not belong to this post is rejected rather
			// than silently re-created: it is either a stale client or an
			// identifier leaked from another post.
			return nil, fmt.Errorf("%w: unknown block uuid %s", entity.ErrValidation, input.UUID)
		}

		plan.toUpdate = append(plan.toUpdate, blockUpdate{existing: block, input: input, order: i})
	}

	for _, block := range existing {
		if !seen[block.ID] {
			plan.toDelete = append(plan.toDelete, block)
		}
	}

	return plan, nil
}

// validateBlocks checks the shape of the incoming list before any
// transaction is opened.
func validateBlocks(incoming []BlockInput) error {
	for i, input := range incoming {
		switch input.Type {
		case entity.BlockTypeText:
			if len(input.Files) > 0 {
				return fmt.Errorf("%w: text block at position %d must not attach files", entity.ErrValidation, i)
			}
		case entity.BlockTypeMedia:
			if len(input.Files) == 0 {
				return fmt.Errorf("%w: media block at position %d requires a file", entity.ErrValidation, i)
			}
			if len(input.Files) > 2 {
				return fmt.Errorf("%w: media block at position %d attaches too many files", entity.ErrValidation, i)
			}
		default:
			return fmt.Errorf("%w: unsupported block type %q at position %d", entity.ErrValidation, input.Type, i)
		}

		if (input.Latitude == nil) != (input.Longitude == nil) {
			return fmt.Errorf("%w: block at position %d must set both latitude and longitude or neither", entity.ErrValidation, i)
		}
	}

	return nil
}
