package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/your-org/jobboard/internal/jobs"
	"github.com/your-org/jobboard/internal/risk"
)

func registerRescanJobs(s *server.MCPServer, a *app) {
	rescanTool := mcp.NewTool("rescan_jobs",
		mcp.WithDescription("Re-scan stored job descriptions against the current indicator rules and record changed verdicts"),
	)
	rescanTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"status":  map[string]interface{}{"type": "string", "description": "Only process jobs with this status (default: pending)"},
			"limit":   map[string]interface{}{"type": "integer", "description": "Max jobs to process (default: 50)"},
			"dry_run": map[string]interface{}{"type": "boolean", "description": "If true, do not update the DB"},
		},
	}
	s.AddTool(rescanTool, handleRescanJobs(a))
}

func handleRescanJobs(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		status, err := jobs.ParseStatus(stringArg(args, "status", string(jobs.StatusPending)))
		if err != nil {
			return toolError("rescan jobs", err), nil
		}
		limit := intArg(args, "limit", 50)
		dryRun := boolArg(args, "dry_run", false)

		sum, err := a.svc.RescanBatch(ctx, status, limit, dryRun)
		if err != nil {
			return toolError("rescan jobs", err), nil
		}
		if sum.Processed == 0 {
			return mcp.NewToolResultText("No jobs found to rescan."), nil
		}

		var summary strings.Builder
		summary.WriteString(fmt.Sprintf("Rescanned %d jobs (status=%s, dry_run=%v).\n", sum.Processed, status, dryRun))
		summary.WriteString(fmt.Sprintf("Low: %d | Medium: %d | High: %d\n",
			sum.Tiers[risk.TierLow], sum.Tiers[risk.TierMedium], sum.Tiers[risk.TierHigh]))
		summary.WriteString(fmt.Sprintf("Changed verdicts: %d\n", sum.Changed))
		if sum.Failed > 0 {
			summary.WriteString(fmt.Sprintf("Failed: %d\n", sum.Failed))
		}
		return mcp.NewToolResultText(summary.String()), nil
	}
}
