package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/your-org/jobboard/internal/jobs"
)

func registerScanDescription(s *server.MCPServer, a *app) {
	tool := mcp.NewTool("scan_description",
		mcp.WithDescription("Scan a job description for scam indicators and return the risk tier, matched indicators and workflow decision without storing anything"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"description": map[string]interface{}{"type": "string", "description": "The full job description"},
		},
		Required: []string{"description"},
	}
	s.AddTool(tool, handleScanDescription(a))
}

func handleScanDescription(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		// Empty descriptions are valid input for the scanner.
		description, _ := args["description"].(string)

		res, dec := a.svc.Scan(description)
		return jsonResult(scanVerdict{Result: res, Decision: dec})
	}
}

func registerSubmitJob(s *server.MCPServer, a *app) {
	tool := mcp.NewTool("submit_job",
		mcp.WithDescription("Submit a new job posting. The description is scanned and the job is queued for approval, sent to mandatory review or auto-blocked"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"title":            map[string]interface{}{"type": "string", "description": "The job title"},
			"description":      map[string]interface{}{"type": "string", "description": "The full job description"},
			"company":          map[string]interface{}{"type": "string", "description": "The name of the company"},
			"location":         map[string]interface{}{"type": "string", "description": "Job location"},
			"salary_min":       map[string]interface{}{"type": "string", "description": "Minimum salary"},
			"salary_max":       map[string]interface{}{"type": "string", "description": "Maximum salary"},
			"job_type":         map[string]interface{}{"type": "string", "description": "internship, full-time, part-time or contract"},
			"application_link": map[string]interface{}{"type": "string", "description": "Where candidates apply"},
			"recruiter":        map[string]interface{}{"type": "string", "description": "Posting recruiter account (email)"},
		},
		Required: []string{"title", "description", "company"},
	}
	s.AddTool(tool, handleSubmitJob(a))
}

type submission struct {
	Job      jobs.Job      `json:"job"`
	Decision jobs.Decision `json:"decision"`
}

func handleSubmitJob(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		job, dec, err := a.svc.Submit(ctx, jobs.JobInput{
			Title:           stringArg(args, "title", ""),
			Description:     stringArg(args, "description", ""),
			Company:         stringArg(args, "company", ""),
			Location:        stringArg(args, "location", ""),
			SalaryMin:       stringArg(args, "salary_min", ""),
			SalaryMax:       stringArg(args, "salary_max", ""),
			JobType:         stringArg(args, "job_type", ""),
			ApplicationLink: stringArg(args, "application_link", ""),
			Recruiter:       stringArg(args, "recruiter", ""),
		})
		if err != nil {
			return toolError("submit job", err), nil
		}
		return jsonResult(submission{Job: job, Decision: dec})
	}
}

func registerEditJobDescription(s *server.MCPServer, a *app) {
	tool := mcp.NewTool("edit_job_description",
		mcp.WithDescription("Replace a job's description; the job is re-scanned and its status reset by the new verdict"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"id":          map[string]interface{}{"type": "integer", "description": "Job id"},
			"description": map[string]interface{}{"type": "string", "description": "The new job description"},
		},
		Required: []string{"id", "description"},
	}
	s.AddTool(tool, handleEditJobDescription(a))
}

func handleEditJobDescription(a *app) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := arguments(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}
		id, ok := idArg(args, "id")
		if !ok {
			return mcp.NewToolResultError("id must be a positive integer"), nil
		}

		job, dec, err := a.svc.EditDescription(ctx, id, stringArg(args, "description", ""))
		if err != nil {
			return toolError("edit job", err), nil
		}
		return jsonResult(submission{Job: job, Decision: dec})
	}
}
