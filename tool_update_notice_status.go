package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/your-org/jobboard/internal/config"
	"github.com/your-org/jobboard/internal/notice"
)

func registerUpdateNoticeStatus(s *server.MCPServer, a *app) {
	noticeStatusTool := mcp.NewTool("update_notice_status",
		mcp.WithDescription("Update the frontmatter status of an admin notice file (default: confirmed)"),
	)
	noticeStatusTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"notice_path": map[string]interface{}{"type": "string", "description": "Path to the notice markdown file, absolute or relative to the board root"},
			"status":      map[string]interface{}{"type": "string", "description": "New status: open, confirmed, overridden or withdrawn (default: confirmed)"},
			"dry_run":     map[string]interface{}{"type": "boolean", "description": "If true, do not write the file"},
		},
		Required: []string{"notice_path"},
	}
	s.AddTool(noticeStatusTool, handleUpdateNoticeStatus(a))
}

func handleUpdateNoticeStatus(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		noticePath, _ := args["notice_path"].(string)
		if strings.TrimSpace(noticePath) == "" {
			return mcp.NewToolResultError("notice_path is required"), nil
		}
		status := stringArg(args, "status", notice.StatusConfirmed)
		if !notice.ValidStatus(status) {
			return mcp.NewToolResultError(fmt.Sprintf("unknown notice status %q", status)), nil
		}
		dryRun := boolArg(args, "dry_run", false)

		updatedPath, err := a.notices.UpdateStatus(config.ExpandHome(strings.TrimSpace(noticePath)), status, dryRun)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("update_notice_status failed: %v", err)), nil
		}
		if dryRun {
			return mcp.NewToolResultText(fmt.Sprintf("Dry run: would update status to %q in %s", status, updatedPath)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Updated status to %q in %s", status, updatedPath)), nil
	}
}
