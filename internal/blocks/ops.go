package blocks

import (
	"fmt"

	"lessonforge/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Block mutation ops — pure functions over a block sequence.
// Unlike a re-parse, these preserve the IDs of untouched blocks.
// Every op returns a new slice; inputs are never mutated.
// ─────────────────────────────────────────────────────────────

// UpdateContent replaces the content of the block with the given ID.
// Order and IDs are untouched. Unknown IDs are a silent no-op so stale
// agent proposals cannot break the editing loop; callers that care
// check membership with domain.FindBlock.
func UpdateContent(blocks []domain.Block, blockID, newContent string) []domain.Block {
	out := make([]domain.Block, len(blocks))
	copy(out, blocks)
	if i := domain.FindBlock(out, blockID); i >= 0 {
		out[i].Content = newContent
	}
	return out
}

// Insert adds a new block after the block with ID afterID, or at the
// very start when afterID is empty. The whole result is reindexed to
// keep Order dense. explicitID, when non-empty, becomes the new block's
// ID (supporting pre-allocated IDs for chained adds); otherwise a fresh
// ID is generated.
//
// An unknown afterID is an error: there is no sane silent fallback for
// "insert after a block that does not exist".
func Insert(blocks []domain.Block, afterID string, blockType domain.BlockType, content string, level int, explicitID string) ([]domain.Block, domain.Block, error) {
	sorted := make([]domain.Block, len(blocks))
	copy(sorted, blocks)
	domain.SortBlocks(sorted)

	pos := 0
	if afterID != "" {
		i := domain.FindBlock(sorted, afterID)
		if i < 0 {
			return nil, domain.Block{}, fmt.Errorf("anchor block %s not found", afterID)
		}
		pos = i + 1
	}

	id := explicitID
	if id == "" {
		id = domain.NewBlockID()
	}
	nb := domain.Block{
		ID:      id,
		Type:    blockType,
		Content: content,
		Level:   level,
	}

	out := make([]domain.Block, 0, len(sorted)+1)
	out = append(out, sorted[:pos]...)
	out = append(out, nb)
	out = append(out, sorted[pos:]...)
	reindex(out)
	return out, out[pos], nil
}

// Delete removes the block with the given ID and reindexes the rest.
// Unknown IDs are a silent no-op.
func Delete(blocks []domain.Block, blockID string) []domain.Block {
	sorted := make([]domain.Block, len(blocks))
	copy(sorted, blocks)
	domain.SortBlocks(sorted)

	i := domain.FindBlock(sorted, blockID)
	if i < 0 {
		return sorted
	}
	out := append(sorted[:i], sorted[i+1:]...)
	reindex(out)
	return out
}

// reindex restores the dense {0..N-1} order invariant.
func reindex(blocks []domain.Block) {
	for i := range blocks {
		blocks[i].Order = i
	}
}
