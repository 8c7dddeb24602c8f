package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("draft_lesson",
		mcp.WithPromptDescription("Draft a structured STEAM lesson plan as a new document"),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Topic of the lesson"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("gradeLevel",
			mcp.ArgumentDescription("Target grade level"),
			mcp.RequiredArgument(),
		),
	), s.handleDraftLessonPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("review_lesson",
		mcp.WithPromptDescription("Review the active lesson and propose improvements as pending diffs"),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("What to focus on (e.g. clarity, pacing, assessments)"),
		),
	), s.handleReviewLessonPrompt)
}

func (s *Server) handleDraftLessonPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := req.Params.Arguments["topic"]
	gradeLevel := req.Params.Arguments["gradeLevel"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Draft a lesson plan on: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Draft a STEAM lesson plan about "%s" for grade level "%s". Follow these steps:

1. Use create_document to create a new lesson document with a markdown outline: a level-1 title heading, sections for Objectives, Materials, Warm-up, Main Activity, and Assessment (level-2 headings), and list items under each.
2. Use set_active_document, then list_blocks to see the block structure you created.
3. Flesh out thin sections with propose_add, anchoring new blocks after the right headings.
4. Apply your proposals with apply_all_diffs when the structure is complete.

Keep activities hands-on and age-appropriate.`, topic, gradeLevel),
				},
			},
		},
	}, nil
}

func (s *Server) handleReviewLessonPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := req.Params.Arguments["focus"]
	if focus == "" {
		focus = "clarity and pacing"
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Review the active lesson with focus on %s", focus),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Review the active lesson document with a focus on %s. Follow these steps:

1. Call list_blocks to see the document structure.
2. Call read_block on every block you intend to change — edits are refused otherwise.
3. Use preview_diff to check each rewrite before queueing it.
4. Queue your edits with propose_update / propose_add / propose_delete, each with a concrete reason the teacher will see.
5. Do NOT apply them: leave the pending diffs for the teacher to apply or reject individually.`, focus),
				},
			},
		},
	}, nil
}
