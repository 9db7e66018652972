package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/your-org/jobboard/internal/jobs"
)

func registerRecruiterTools(s *server.MCPServer, a *app) {
	listTool := mcp.NewTool("list_recruiters",
		mcp.WithDescription("List recruiter accounts"),
	)
	listTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"pending_only": map[string]interface{}{"type": "boolean", "description": "If true, list only recruiters awaiting approval"},
		},
	}
	s.AddTool(listTool, handleListRecruiters(a))

	reviewTool := mcp.NewTool("review_recruiter",
		mcp.WithDescription("Approve or reject a recruiter account"),
	)
	reviewTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"id":     map[string]interface{}{"type": "integer", "description": "Recruiter id"},
			"action": map[string]interface{}{"type": "string", "description": "approve | reject"},
		},
		Required: []string{"id", "action"},
	}
	s.AddTool(reviewTool, handleReviewRecruiter(a))
}

func handleListRecruiters(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := arguments(request)
		list, err := a.svc.Recruiters(ctx, boolArg(args, "pending_only", false))
		if err != nil {
			return toolError("list recruiters", err), nil
		}
		return jsonResult(list)
	}
}

func handleReviewRecruiter(a *app) server.ToolHandlerFunc {
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
			return toolError("review recruiter", err), nil
		}
		if err := a.svc.ReviewRecruiter(ctx, id, action); err != nil {
			return toolError("review recruiter", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Recruiter %d: %s", id, action)), nil
	}
}

func registerReportTools(s *server.MCPServer, a *app) {
	fileTool := mcp.NewTool("file_report",
		mcp.WithDescription("Report a suspicious job listing for admin investigation"),
	)
	fileTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"job":      map[string]interface{}{"type": "string", "description": "Title of the reported job"},
			"reason":   map[string]interface{}{"type": "string", "description": "Why the listing looks suspicious"},
			"reporter": map[string]interface{}{"type": "string", "description": "Reporter email"},
		},
		Required: []string{"job", "reason", "reporter"},
	}
	s.AddTool(fileTool, handleFileReport(a))

	listTool := mcp.NewTool("list_reports",
		mcp.WithDescription("List user reports"),
	)
	listTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"status": map[string]interface{}{"type": "string", "description": "Filter by status (pending, reviewed, resolved)"},
		},
	}
	s.AddTool(listTool, handleListReports(a))

	statusTool := mcp.NewTool("update_report_status",
		mcp.WithDescription("Set the status of a user report"),
	)
	statusTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"id":     map[string]interface{}{"type": "integer", "description": "Report id"},
			"status": map[string]interface{}{"type": "string", "description": "pending | reviewed | resolved"},
		},
		Required: []string{"id", "status"},
	}
	s.AddTool(statusTool, handleUpdateReportStatus(a))
}

func handleFileReport(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		r, err := a.svc.FileReport(ctx, stringArg(args, "job", ""), stringArg(args, "reason", ""), stringArg(args, "reporter", ""))
		if err != nil {
			return toolError("file report", err), nil
		}
		return jsonResult(r)
	}
}

func handleListReports(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := arguments(request)
		var status jobs.ReportStatus
		if v := stringArg(args, "status", ""); v != "" {
			st, err := jobs.ParseReportStatus(v)
			if err != nil {
				return toolError("list reports", err), nil
			}
			status = st
		}
		list, err := a.svc.Reports(ctx, status)
		if err != nil {
			return toolError("list reports", err), nil
		}
		return jsonResult(list)
	}
}

func handleUpdateReportStatus(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		id, ok := idArg(args, "id")
		if !ok {
			return mcp.NewToolResultError("id must be a positive integer"), nil
		}
		status, err := jobs.ParseReportStatus(stringArg(args, "status", ""))
		if err != nil {
			return toolError("update report", err), nil
		}
		if err := a.svc.SetReportStatus(ctx, id, status); err != nil {
			return toolError("update report", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Report %d is now %s", id, status)), nil
	}
}
