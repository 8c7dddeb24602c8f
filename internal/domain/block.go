package domain

import "sort"

type BlockType string

const (
	BlockTypeHeading   BlockType = "heading"
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeListItem  BlockType = "list-item"
	BlockTypeCode      BlockType = "code"
)

// Block is the smallest addressable unit of a lesson document.
// IDs are stable across mutation ops; only a full re-parse
// assigns fresh ones.
type Block struct {
	ID      string    `json:"id"`
	Type    BlockType `json:"type"`
	Content string    `json:"content"`
	Order   int       `json:"order"`
	// Level is the heading depth (1-6) for headings and the
	// nesting depth (0 = top) for list items. Zero otherwise.
	Level int `json:"level,omitempty"`
	// Lang is the fence info string for code blocks.
	Lang string `json:"lang,omitempty"`
}

// ValidBlockType reports whether t is one of the four supported block types.
func ValidBlockType(t string) bool {
	switch BlockType(t) {
	case BlockTypeHeading, BlockTypeParagraph, BlockTypeListItem, BlockTypeCode:
		return true
	}
	return false
}

// SortBlocks sorts blocks by Order in place.
func SortBlocks(blocks []Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Order < blocks[j].Order
	})
}

// FindBlock returns the index of the block with the given ID, or -1.
func FindBlock(blocks []Block, id string) int {
	for i := range blocks {
		if blocks[i].ID == id {
			return i
		}
	}
	return -1
}
