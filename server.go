package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/your-org/jobboard/internal/jobs"
	"github.com/your-org/jobboard/internal/notice"
	"github.com/your-org/jobboard/internal/risk"
)

type app struct {
	svc     *jobs.Service
	notices *notice.Writer
	logger  *slog.Logger
}

func newMCPServer(a *app) *server.MCPServer {
	s := server.NewMCPServer("jobboard", "1.0.0")

	registerScanDescription(s, a)
	registerSubmitJob(s, a)
	registerEditJobDescription(s, a)
	registerRescanJobs(s, a)
	registerReviewJob(s, a)
	registerListJobs(s, a)
	registerJobStats(s, a)
	registerRecruiterTools(s, a)
	registerReportTools(s, a)
	registerApplicationTools(s, a)
	registerUpdateNoticeStatus(s, a)

	return s
}

type scanVerdict struct {
	risk.Result
	Decision jobs.Decision `json:"decision"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError turns a service error into a tool error; domain errors keep
// their message, anything else is prefixed with what failed.
func toolError(what string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, jobs.ErrInvalidInput),
		errors.Is(err, jobs.ErrInvalidTransition),
		errors.Is(err, jobs.ErrJobNotFound),
		errors.Is(err, jobs.ErrRecruiterNotFound),
		errors.Is(err, jobs.ErrReportNotFound),
		errors.Is(err, jobs.ErrNotAcceptingApplications),
		errors.Is(err, jobs.ErrDuplicateApplication):
		return mcp.NewToolResultError(err.Error())
	default:
		return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", what, err))
	}
}

func arguments(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	return args, ok
}

func stringArg(args map[string]interface{}, key, def string) string {
	if v, ok := args[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func intArg(args map[string]interface{}, key string, def int) int {
	if v, ok := args[key].(float64); ok && v > 0 {
		return int(v)
	}
	return def
}

func boolArg(args map[string]interface{}, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

func idArg(args map[string]interface{}, key string) (int64, bool) {
	v, ok := args[key].(float64)
	if !ok || v < 1 || v != float64(int64(v)) {
		return 0, false
	}
	return int64(v), true
}
