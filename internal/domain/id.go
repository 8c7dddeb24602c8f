package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Prefixed opaque IDs. Never reused; a deleted block's ID is gone for good.

func NewBlockID() string    { return "blk-" + shortUUID() }
func NewDocumentID() string { return "doc-" + shortUUID() }
func NewDiffID() string     { return "diff-" + shortUUID() }
func NewVersionID() string  { return "ver-" + shortUUID() }

func shortUUID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
