package usecase

import (
	"errors"
	"testing"

	"snappoint/services/post/internal/entity"

	"github.com/stretchr/testify/assert"
)

func textInput(uuid, content string) BlockInput {
	return BlockInput{UUID: uuid, Type: entity.BlockTypeText, Content: content}
}

func mediaInput(uuid, fileUUID string) BlockInput {
	return BlockInput{
		UUID:  uuid,
		Type:  entity.BlockTypeMedia,
		Files: []BlockFileInput{{UUID: fileUUID}},
	}
}

func TestReconcileBlocks_AllNew(t *testing.T) {
	incoming := []BlockInput{
		textInput("", "hello"),
		mediaInput("", "file-1"),
		textInput("", "world"),
	}

	plan, err := reconcileBlocks(nil, incoming)

	assert.NoError(t, err)
	assert.Len(t, plan.toCreate, 3)
	assert.Empty(t, plan.toUpdate)
	assert.Empty(t, plan.toDelete)

	for i, create := range plan.toCreate {
		assert.Equal(t, i, create.order)
	}
}

func TestReconcileBlocks_EmptyIncoming_DeletesAll(t *testing.T) {
	existing := []entity.Block{
		{ID: "block-1", Type: entity.BlockTypeText, Order: 0},
		{ID: "block-2", Type: entity.BlockTypeMedia, Order: 1},
	}

	plan, err := reconcileBlocks(existing, nil)

	assert.NoError(t, err)
	assert.Empty(t, plan.toCreate)
	assert.Empty(t, plan.toUpdate)
	assert.Len(t, plan.toDelete, 2)
}

func TestReconcileBlocks_ReorderDropAndAdd(t *testing.T) {
	// Stored: [TEXT block-1, MEDIA block-2]. Incoming: [MEDIA block-2, new TEXT].
	existing := []entity.Block{
		{ID: "block-1", Type: entity.BlockTypeText, Content: "hello", Order: 0},
		{ID: "block-2", Type: entity.BlockTypeMedia, Order: 1},
	}
	incoming := []BlockInput{
		mediaInput("block-2", "file-1"),
		textInput("", "world"),
	}

	plan, err := reconcileBlocks(existing, incoming)

	assert.NoError(t, err)

	assert.Len(t, plan.toUpdate, 1)
	assert.Equal(t, "block-2", plan.toUpdate[0].existing.ID)
	assert.Equal(t, 0, plan.toUpdate[0].order)

	assert.Len(t, plan.toCreate, 1)
	assert.Equal(t, "world", plan.toCreate[0].input.Content)
	assert.Equal(t, 1, plan.toCreate[0].order)

	assert.Len(t, plan.toDelete, 1)
	assert.Equal(t, "block-1", plan.toDelete[0].ID)
}

func TestReconcileBlocks_DuplicateUUID(t *testing.T) {
	existing := []entity.Block{
		{ID: "block-1", Type: entity.BlockTypeText, Order: 0},
	}
	incoming := []BlockInput{
		textInput("block-1", "a"),
		textInput("block-1", "b"),
	}

	_, err := reconcileBlocks(existing, incoming)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrValidation))
	assert.Contains(t, err.Error(), "block-1")
}

func TestReconcileBlocks_UnknownUUID(t *testing.T) {
	existing := []entity.Block{
		{ID: "block-1", Type: entity.BlockTypeText, Order: 0},
	}
	incoming := []BlockInput{
		textInput("block-from-another-post", "a"),
	}

	_, err := reconcileBlocks(existing, incoming)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrValidation))
	assert.Contains(t, err.Error(), "block-from-another-post")
}

func TestReconcileBlocks_PartitionIsComplete(t *testing.T) {
	existing := []entity.Block{
		{ID: "block-1", Order: 0, Type: entity.BlockTypeText},
		{ID: "block-2", Order: 1, Type: entity.BlockTypeText},
		{ID: "block-3", Order: 2, Type: entity.BlockTypeText},
	}
	incoming := []BlockInput{
		textInput("block-3", "keep"),
		textInput("", "new"),
		textInput("block-1", "keep too"),
	}

	plan, err := reconcileBlocks(existing, incoming)
	assert.NoError(t, err)

	// Every incoming entry is created or updated, every existing block is
	// updated or deleted, and no block appears twice.
	assert.Equal(t, len(incoming), len(plan.toCreate)+len(plan.toUpdate))
	assert.Equal(t, len(existing), len(plan.toUpdate)+len(plan.toDelete))

	seen := map[string]int{}
	for _, update := range plan.toUpdate {
		seen[update.existing.ID]++
	}
	for _, del := range plan.toDelete {
		seen[del.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "block %s appears in multiple partitions", id)
	}

	// Orders follow incoming positions.
	orders := map[string]int{}
	for _, update := range plan.toUpdate {
		orders[update.existing.ID] = update.order
	}
	assert.Equal(t, 0, orders["block-3"])
	assert.Equal(t, 2, orders["block-1"])
	assert.Equal(t, 1, plan.toCreate[0].order)
}

func TestReconcileBlocks_Deterministic(t *testing.T) {
	existing := []entity.Block{
		{ID: "block-1", Order: 0, Type: entity.BlockTypeText},
		{ID: "block-2", Order: 1, Type: entity.BlockTypeMedia},
	}
	incoming := []BlockInput{
		mediaInput("block-2", "file-1"),
		textInput("block-1", "x"),
	}

	first, err := reconcileBlocks(existing, incoming)
	assert.NoError(t, err)
	second, err := reconcileBlocks(existing, incoming)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidateBlocks_MediaWithoutFile(t *testing.T) {
	err := validateBlocks([]BlockInput{
		{Type: entity.BlockTypeMedia},
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrValidation))
}

func TestValidateBlocks_TextWithFile(t *testing.T) {
	err := validateBlocks([]BlockInput{
		{Type: entity.BlockTypeText, Files: []BlockFileInput{{UUID: "file-1"}}},
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrValidation))
}

func TestValidateBlocks_UnsupportedType(t *testing.T) {
	err := validateBlocks([]BlockInput{
		{Type: entity.BlockType("gallery")},
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrValidation))
}

func TestValidateBlocks_HalfGeolocation(t *testing.T) {
	lat := 37.5665
	err := validateBlocks([]BlockInput{
		{Type: entity.BlockTypeText, Latitude: &lat},
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrValidation))
}

func TestValidateBlocks_Valid(t *testing.T) {
	lat, lon := 37.5665, 126.9780
	err := validateBlocks([]BlockInput{
		{Type: entity.BlockTypeText, Content: "hello"},
		{Type: entity.BlockTypeMedia, Latitude: &lat, Longitude: &lon, Files: []BlockFileInput{{UUID: "file-1"}, {UUID: "file-2"}}},
	})

	assert.NoError(t, err)
}

func TestSummarize(t *testing.T) {
	blocks := []BlockInput{
		mediaInput("", "file-1"),
		textInput("", "first text block"),
		textInput("", "second text block"),
	}

	assert.Equal(t, "first text block", summarize(blocks))
}

func TestSummarize_Truncates(t *testing.T) {
	long := make([]rune, 0, 300)
	for i := 0; i < 300; i++ {
		long = append(long, 'a')
	}

	summary := summarize([]BlockInput{textInput("", string(long))})
	assert.Len(t, []rune(summary), summaryMaxLen)
}

func TestSummarize_NoTextBlocks(t *testing.T) {
	assert.Equal(t, "", summarize([]BlockInput{mediaInput("", "file-1")}))
}
