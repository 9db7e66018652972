package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/your-org/jobboard/internal/jobs"
)

func registerReviewJob(s *server.MCPServer, a *app) {
	reviewTool := mcp.NewTool("review_job",
		mcp.WithDescription("Apply an admin action to a job: approve, reject, ban, confirm_block or override"),
	)
	reviewTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"id":     map[string]interface{}{"type": "integer", "description": "Job id"},
			"action": map[string]interface{}{"type": "string", "description": "approve | reject | ban | confirm_block | override"},
		},
		Required: []string{"id", "action"},
	}
	s.AddTool(reviewTool, handleReviewJob(a))
}

func handleReviewJob(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		id, ok := idArg(args, "id")
		if !ok {
			return mcp.NewToolResultError("id must be a positive integer"), nil
		}
		action, err := jobs.ParseAction(stringArg(args, "action", ""))
		if err != nil {
			return toolError("review job", err), nil
		}

		job, err := a.svc.Review(ctx, id, action)
		if err != nil {
			return toolError("review job", err), nil
		}
		return jsonResult(job)
	}
}
