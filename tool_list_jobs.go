package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/your-org/jobboard/internal/jobs"
)

func registerListJobs(s *server.MCPServer, a *app) {
	tool := mcp.NewTool("list_jobs",
		mcp.WithDescription("List jobs with their risk tier and flags, newest first. public=true lists approved jobs only"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"status":    map[string]interface{}{"type": "string", "description": "Filter by status (pending, review, blocked, approved, rejected, banned)"},
			"company":   map[string]interface{}{"type": "string", "description": "Filter by company"},
			"recruiter": map[string]interface{}{"type": "string", "description": "Filter by posting recruiter"},
			"public":    map[string]interface{}{"type": "boolean", "description": "If true, list only jobs visible to students"},
			"limit":     map[string]interface{}{"type": "integer", "description": "Max jobs to return (default: 50)"},
		},
	}
	s.AddTool(tool, handleListJobs(a))
}

func handleListJobs(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			args = map[string]interface{}{}
		}
		limit := intArg(args, "limit", 50)

		if boolArg(args, "public", false) {
			list, err := a.svc.Public(ctx, limit)
			if err != nil {
				return toolError("list jobs", err), nil
			}
			return jsonResult(list)
		}

		f := jobs.Filter{
			Company:   stringArg(args, "company", ""),
			Recruiter: stringArg(args, "recruiter", ""),
			Limit:     limit,
		}
		if v := stringArg(args, "status", ""); v != "" {
			status, err := jobs.ParseStatus(v)
			if err != nil {
				return toolError("list jobs", err), nil
			}
			f.Status = status
		}
		list, err := a.svc.List(ctx, f)
		if err != nil {
			return toolError("list jobs", err), nil
		}
		return jsonResult(list)
	}
}

func registerJobStats(s *server.MCPServer, a *app) {
	tool := mcp.NewTool("job_stats",
		mcp.WithDescription("Admin dashboard counts: jobs per status, flagged (high-risk) jobs, recruiters awaiting verification, reports and applications"),
	)
	s.AddTool(tool, handleJobStats(a))
}

func handleJobStats(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := a.svc.Stats(ctx)
		if err != nil {
			return toolError("count jobs", err), nil
		}
		return jsonResult(stats)
	}
}
