package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/your-org/jobboard/internal/jobs"
)

func registerApplicationTools(s *server.MCPServer, a *app) {
	applyTool := mcp.NewTool("apply_job",
		mcp.WithDescription("Apply to an approved job on behalf of a student"),
	)
	applyTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"job_id":     map[string]interface{}{"type": "integer", "description": "Job id"},
			"applicant":  map[string]interface{}{"type": "string", "description": "Student account id"},
			"name":       map[string]interface{}{"type": "string", "description": "Student name"},
			"email":      map[string]interface{}{"type": "string", "description": "Student email"},
			"resume_url": map[string]interface{}{"type": "string", "description": "Link to the resume"},
		},
		Required: []string{"job_id", "applicant"},
	}
	s.AddTool(applyTool, handleApplyJob(a))

	listTool := mcp.NewTool("list_applications",
		mcp.WithDescription("List the applications received for a job"),
	)
	listTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"job_id": map[string]interface{}{"type": "integer", "description": "Job id"},
		},
		Required: []string{"job_id"},
	}
	s.AddTool(listTool, handleListApplications(a))
}

func handleApplyJob(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		jobID, ok := idArg(args, "job_id")
		if !ok {
			return mcp.NewToolResultError("job_id must be a positive integer"), nil
		}

		application, err := a.svc.Apply(ctx, jobs.Application{
			JobID:     jobID,
			Applicant: stringArg(args, "applicant", ""),
			Name:      stringArg(args, "name", ""),
			Email:     stringArg(args, "email", ""),
			ResumeURL: stringArg(args, "resume_url", ""),
		})
		if err != nil {
			return toolError("apply", err), nil
		}
		return jsonResult(application)
	}
}

func handleListApplications(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		jobID, ok := idArg(args, "job_id")
		if !ok {
			return mcp.NewToolResultError("job_id must be a positive integer"), nil
		}
		list, err := a.svc.Applications(ctx, jobID)
		if err != nil {
			return toolError("list applications", err), nil
		}
		return jsonResult(list)
	}
}
