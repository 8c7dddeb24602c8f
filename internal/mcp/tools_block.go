package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"lessonforge/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerBlockTools() {
	// ── list_blocks ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List a document's blocks in order, optionally filtered by type. Call this before proposing any edit."),
		mcp.WithString("documentId", mcp.Description("Document ID (optional, defaults to active document)")),
		mcp.WithString("type", mcp.Description("Filter by block type: heading, paragraph, list-item, code (optional)")),
	), s.handleListBlocks)

	// ── read_block ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("read_block",
		mcp.WithDescription("Read a single block's full content. Required before proposing an update or delete against it."),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
	), s.handleReadBlock)

	// ── preview_diff ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("preview_diff",
		mcp.WithDescription("Show a line diff (and word diff for small edits) between a block's content and proposed new content"),
		mcp.WithString("blockId", mcp.Description("Block ID"), mcp.Required()),
		mcp.WithString("newContent", mcp.Description("Proposed content"), mcp.Required()),
	), s.handlePreviewDiff)

	// ── propose_update ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("propose_update",
		mcp.WithDescription("Queue an update to a block's content as a pending diff. The block must have been read first."),
		mcp.WithString("blockId", mcp.Description("Block ID to update"), mcp.Required()),
		mcp.WithString("newContent", mcp.Description("New content"), mcp.Required()),
		mcp.WithString("reason", mcp.Description("Why this edit improves the lesson"), mcp.Required()),
	), s.handleProposeUpdate)

	// ── propose_add ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("propose_add",
		mcp.WithDescription("Queue a new block as a pending diff, inserted after an anchor block (or at the start with __start__). Returns the pre-allocated ID of the block-to-be, usable as an anchor for chained adds."),
		mcp.WithString("afterBlockId", mcp.Description("Anchor block ID, or __start__ to insert before the first block"), mcp.Required()),
		mcp.WithString("type", mcp.Description("Block type: heading, paragraph, list-item, code"), mcp.Required()),
		mcp.WithString("content", mcp.Description("Block content"), mcp.Required()),
		mcp.WithNumber("level", mcp.Description("Heading level (1-6) or list nesting depth (optional)")),
		mcp.WithString("lang", mcp.Description("Code fence language (code blocks only, optional)")),
		mcp.WithString("reason", mcp.Description("Why this addition improves the lesson"), mcp.Required()),
	), s.handleProposeAdd)

	// ── propose_delete ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("propose_delete",
		mcp.WithDescription("Queue a block deletion as a pending diff. The block must have been read first."),
		mcp.WithString("blockId", mcp.Description("Block ID to delete"), mcp.Required()),
		mcp.WithString("reason", mcp.Description("Why this block should go"), mcp.Required()),
	), s.handleProposeDelete)
}

// ── Handlers ───────────────────────────────────────────────

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

type blockSummary struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Order   int    `json:"order"`
	Level   int    `json:"level,omitempty"`
	Lang    string `json:"lang,omitempty"`
	Preview string `json:"preview"` // first 200 chars of content
}

func summarizeBlock(b domain.Block) blockSummary {
	preview := b.Content
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return blockSummary{
		ID:      b.ID,
		Type:    string(b.Type),
		Order:   b.Order,
		Level:   b.Level,
		Lang:    b.Lang,
		Preview: preview,
	}
}

func (s *Server) handleListBlocks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveDocumentID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	d := s.docs.Manager().GetDocument(id)
	if d == nil {
		return nil, fmt.Errorf("document %s not found", id)
	}
	if id == s.docs.Manager().ActiveDocumentID() {
		s.docs.Guard().MarkDocumentRead()
	}

	filterType := req.GetString("type", "")
	var summaries []blockSummary
	for _, b := range d.Blocks {
		if filterType != "" && string(b.Type) != filterType {
			continue
		}
		summaries = append(summaries, summarizeBlock(b))
	}
	return jsonResult(summaries)
}

func (s *Server) handleReadBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID := req.GetString("blockId", "")
	if blockID == "" {
		return nil, fmt.Errorf("blockId is required")
	}
	d := s.docs.Manager().GetActiveDocument()
	if d == nil {
		return nil, fmt.Errorf("no active document (use set_active_document first)")
	}
	i := domain.FindBlock(d.Blocks, blockID)
	if i < 0 {
		return nil, fmt.Errorf("block %s not found in document %s", blockID, d.ID)
	}
	s.docs.Guard().MarkBlockRead(blockID)
	return jsonResult(d.Blocks[i])
}

func (s *Server) handlePreviewDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID := req.GetString("blockId", "")
	newContent := req.GetString("newContent", "")
	if blockID == "" {
		return nil, fmt.Errorf("blockId is required")
	}
	d := s.docs.Manager().GetActiveDocument()
	if d == nil {
		return nil, fmt.Errorf("no active document (use set_active_document first)")
	}
	i := domain.FindBlock(d.Blocks, blockID)
	if i < 0 {
		return nil, fmt.Errorf("block %s not found in document %s", blockID, d.ID)
	}

	res := s.diff.GenerateDiff(d.Blocks[i].Content, newContent)
	out := map[string]any{
		"display":   s.diff.FormatForDisplay(res),
		"additions": res.Additions,
		"deletions": res.Deletions,
		"unchanged": res.Unchanged,
	}
	// Word diff reads better for single-line tweaks.
	if res.Additions+res.Deletions <= 2 {
		out["wordDiff"] = s.diff.GenerateWordDiff(d.Blocks[i].Content, newContent)
	}
	return jsonResult(out)
}

func (s *Server) handleProposeUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID := req.GetString("blockId", "")
	newContent := req.GetString("newContent", "")
	reason := req.GetString("reason", "")
	if blockID == "" || reason == "" {
		return nil, fmt.Errorf("blockId and reason are required")
	}
	d := s.docs.Manager().GetActiveDocument()
	if d == nil {
		return nil, fmt.Errorf("no active document (use set_active_document first)")
	}
	if v := s.docs.Guard().CanEdit(blockID); !v.Allowed {
		return nil, fmt.Errorf("%s", v.Error)
	}

	oldContent := ""
	if i := domain.FindBlock(d.Blocks, blockID); i >= 0 {
		oldContent = d.Blocks[i].Content
	}
	diff, err := s.docs.ProposeDiff(ctx, d.ID, blockID, domain.DiffActionUpdate, oldContent, newContent, reason)
	if err != nil {
		return nil, err
	}
	return jsonResult(diff)
}

func (s *Server) handleProposeAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	afterBlockID := req.GetString("afterBlockId", "")
	blockType := req.GetString("type", "")
	content := req.GetString("content", "")
	reason := req.GetString("reason", "")
	if afterBlockID == "" || blockType == "" || reason == "" {
		return nil, fmt.Errorf("afterBlockId, type and reason are required")
	}
	if !domain.ValidBlockType(blockType) {
		return nil, fmt.Errorf("unknown block type %q", blockType)
	}
	d := s.docs.Manager().GetActiveDocument()
	if d == nil {
		return nil, fmt.Errorf("no active document (use set_active_document first)")
	}
	if v := s.docs.Guard().CanAdd(); !v.Allowed {
		return nil, fmt.Errorf("%s", v.Error)
	}

	payload, err := json.Marshal(domain.BlockPayload{
		Type:    blockType,
		Content: content,
		Level:   int(getFloat(req.GetArguments(), "level", 0)),
		Lang:    req.GetString("lang", ""),
	})
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	diff, err := s.docs.ProposeDiff(ctx, d.ID, afterBlockID, domain.DiffActionAdd, "", string(payload), reason)
	if err != nil {
		return nil, err
	}
	return jsonResult(diff)
}

func (s *Server) handleProposeDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID := req.GetString("blockId", "")
	reason := req.GetString("reason", "")
	if blockID == "" || reason == "" {
		return nil, fmt.Errorf("blockId and reason are required")
	}
	d := s.docs.Manager().GetActiveDocument()
	if d == nil {
		return nil, fmt.Errorf("no active document (use set_active_document first)")
	}
	if v := s.docs.Guard().CanDelete(blockID); !v.Allowed {
		return nil, fmt.Errorf("%s", v.Error)
	}

	oldContent := ""
	if i := domain.FindBlock(d.Blocks, blockID); i >= 0 {
		oldContent = d.Blocks[i].Content
	}
	diff, err := s.docs.ProposeDiff(ctx, d.ID, blockID, domain.DiffActionDelete, oldContent, "", reason)
	if err != nil {
		return nil, err
	}
	return jsonResult(diff)
}
