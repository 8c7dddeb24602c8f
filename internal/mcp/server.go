package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"lessonforge/internal/diff"
	"lessonforge/internal/service"
	"lessonforge/pkg/logger"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the lesson editor. It exposes tools,
// resources, and prompts so an AI agent can read documents, propose
// edits as pending diffs, and commit or discard them. Edits are gated
// by the read/write guard: the agent must list and read blocks before
// proposing changes against them.
type Server struct {
	mcp     *server.MCPServer
	emitter service.EventEmitter

	docs *service.DocumentService
	diff *diff.Service
}

// Deps holds all dependencies passed from the app entry to the MCP server.
type Deps struct {
	Emitter   service.EventEmitter
	Documents *service.DocumentService
	Diff      *diff.Service
}

// New creates and configures a new MCP server with all tools and resources.
func New(ctx context.Context, deps Deps) *Server {
	s := &Server{
		emitter: deps.Emitter,
		docs:    deps.Documents,
		diff:    deps.Diff,
	}

	s.mcp = server.NewMCPServer(
		"lessonforge-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerDocumentTools()
	s.registerBlockTools()
	s.registerPendingTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	logger.Sugar.Info("starting MCP stdio server")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// resolveDocumentID returns the documentId from tool args or falls back
// to the active document.
func (s *Server) resolveDocumentID(args map[string]any) (string, error) {
	if id, ok := args["documentId"].(string); ok && id != "" {
		return id, nil
	}
	if id := s.docs.Manager().ActiveDocumentID(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no documentId provided and no active document set (use set_active_document first)")
}
