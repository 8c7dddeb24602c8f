package markdown

import (
	"strings"

	"lessonforge/internal/domain"
)

// Render serializes blocks back to markdown. Blocks are sorted by Order
// first. The output is structurally equivalent to the input that
// produced the blocks (types, contents and levels round-trip); original
// inline formatting is not reconstructed.
func Render(blocks []domain.Block) string {
	sorted := make([]domain.Block, len(blocks))
	copy(sorted, blocks)
	domain.SortBlocks(sorted)

	var sb strings.Builder
	prevListItem := false
	for i, b := range sorted {
		if i > 0 {
			// Consecutive list items stay tight; everything else is
			// separated by a blank line.
			if prevListItem && b.Type == domain.BlockTypeListItem {
				sb.WriteByte('\n')
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(renderBlock(b))
		prevListItem = b.Type == domain.BlockTypeListItem
	}
	if sb.Len() == 0 {
		return ""
	}
	return sb.String() + "\n"
}

func renderBlock(b domain.Block) string {
	switch b.Type {
	case domain.BlockTypeHeading:
		level := b.Level
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + b.Content
	case domain.BlockTypeListItem:
		indent := strings.Repeat("  ", b.Level)
		return indent + "- " + b.Content
	case domain.BlockTypeCode:
		var sb strings.Builder
		sb.WriteString("```")
		sb.WriteString(b.Lang)
		sb.WriteByte('\n')
		if b.Content != "" {
			sb.WriteString(b.Content)
			sb.WriteByte('\n')
		}
		sb.WriteString("```")
		return sb.String()
	default:
		return b.Content
	}
}
