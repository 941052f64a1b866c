package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
	"github.com/jakedx6/helios9-mcp/internal/auth"
)

// StandupPrompt handles the standup-report prompt. Unlike the kickoff
// prompt it is data-backed: the current open work is embedded into the
// prompt text through the same client reads list_tasks uses.
type StandupPrompt struct {
	client *api.Client
	gate   *auth.Gate
}

// NewStandupPrompt creates a StandupPrompt with its dependencies.
func NewStandupPrompt(client *api.Client, gate *auth.Gate) *StandupPrompt {
	return &StandupPrompt{client: client, gate: gate}
}

// Definition returns the MCP prompt definition for registration.
func (p *StandupPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("standup-report",
		mcp.WithPromptDescription(
			"Summarize a project's current state as a short standup report: "+
				"what moved, what's in flight, what's blocked.",
		),
		mcp.WithArgument("project_id",
			mcp.ArgumentDescription("Project to report on"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the standup-report prompt request.
func (p *StandupPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectID := ""
	if args := req.Params.Arguments; args != nil {
		projectID = args["project_id"]
	}
	if projectID == "" {
		return nil, fmt.Errorf("project_id argument is required")
	}

	if _, err := p.gate.EnsureAuthenticated(ctx); err != nil {
		return nil, fmt.Errorf("not authenticated: %w", err)
	}

	project, err := p.client.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	tasks, err := p.client.ListTasks(ctx, api.TaskFilter{
		ProjectID:   projectID,
		ListOptions: api.ListOptions{Limit: 100},
	})
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s (%s)\n\nTasks:\n", project.Name, project.Status)
	for _, task := range tasks {
		fmt.Fprintf(&b, "- [%s/%s] %s\n", task.Status, task.Priority, task.Title)
	}
	if len(tasks) == 0 {
		b.WriteString("(no tasks)\n")
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Standup report for %s", project.Name),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					`Write a short standup report from this snapshot:

%s
Structure it as: Done recently / In progress / Up next / Risks.
Keep it under 150 words and flag anything that looks stalled.`,
					b.String(),
				)),
			},
		},
	}, nil
}
