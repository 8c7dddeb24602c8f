package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPendingTools() {
	// ── list_pending ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_pending",
		mcp.WithDescription("List the pending (not yet applied) diffs queued for a document, in apply order"),
		mcp.WithString("documentId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleListPending)

	// ── apply_diff ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("apply_diff",
		mcp.WithDescription("Apply a single pending diff to its document"),
		mcp.WithString("diffId", mcp.Description("Pending diff ID"), mcp.Required()),
		mcp.WithString("documentId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleApplyDiff)

	// ── reject_diff ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("reject_diff",
		mcp.WithDescription("Discard a single pending diff without applying it"),
		mcp.WithString("diffId", mcp.Description("Pending diff ID"), mcp.Required()),
		mcp.WithString("documentId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleRejectDiff)

	// ── apply_all_diffs ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("apply_all_diffs",
		mcp.WithDescription("Apply every pending diff for a document, in queue order. All-or-nothing: a failing diff leaves the queue untouched."),
		mcp.WithString("documentId", mcp.Description("Document ID (optional, defaults to active document)")),
	), s.handleApplyAllDiffs)

	// ── reject_all_diffs (destructive) ─────────────────
	s.mcp.AddTool(mcp.NewTool("reject_all_diffs",
		mcp.WithDescription("🛑 DESTRUCTIVE: Discard every pending diff for a document."),
		mcp.WithString("documentId", mcp.Description("Document ID (optional, defaults to active document)")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRejectAllDiffs)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListPending(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveDocumentID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	return jsonResult(s.docs.Queue().List(id))
}

func (s *Server) handleApplyDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	diffID := req.GetString("diffId", "")
	if diffID == "" {
		return nil, fmt.Errorf("diffId is required")
	}
	docID, err := s.resolveDocumentID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	outcome, err := s.docs.ApplyDiff(ctx, docID, diffID)
	if err != nil {
		return nil, fmt.Errorf("apply diff: %w", err)
	}
	return jsonResult(map[string]any{
		"summary":         outcome.Summary,
		"appliedChanges":  outcome.AppliedChanges,
		"updatedMarkdown": outcome.UpdatedMarkdown,
	})
}

func (s *Server) handleRejectDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	diffID := req.GetString("diffId", "")
	if diffID == "" {
		return nil, fmt.Errorf("diffId is required")
	}
	docID, err := s.resolveDocumentID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	if !s.docs.RejectDiff(ctx, docID, diffID) {
		return nil, fmt.Errorf("pending diff %s not found", diffID)
	}
	return textResult(fmt.Sprintf("Diff %s rejected", diffID)), nil
}

func (s *Server) handleApplyAllDiffs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := s.resolveDocumentID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	outcome, err := s.docs.ApplyAllDiffs(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("apply all diffs: %w", err)
	}
	return jsonResult(map[string]any{
		"summary":         outcome.Summary,
		"appliedChanges":  outcome.AppliedChanges,
		"updatedMarkdown": outcome.UpdatedMarkdown,
	})
}

func (s *Server) handleRejectAllDiffs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docID, err := s.resolveDocumentID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	n := s.docs.RejectAllDiffs(ctx, docID)
	return textResult(fmt.Sprintf("Rejected %d pending diff(s)", n)), nil
}
