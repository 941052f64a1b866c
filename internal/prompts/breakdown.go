package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// BreakdownPrompt handles the task-breakdown prompt: turn a piece of
// work into sized, ordered tasks under an initiative.
type BreakdownPrompt struct{}

// NewBreakdownPrompt creates a BreakdownPrompt.
func NewBreakdownPrompt() *BreakdownPrompt {
	return &BreakdownPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *BreakdownPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("task-breakdown",
		mcp.WithPromptDescription(
			"Break a feature or piece of work into concrete tasks, create "+
				"them under an initiative, and order them by dependency.",
		),
		mcp.WithArgument("project_id",
			mcp.ArgumentDescription("Project the work belongs to"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("work_description",
			mcp.ArgumentDescription("The feature or work to break down"),
		),
	)
}

// Handle processes the task-breakdown prompt request.
func (p *BreakdownPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectID := ""
	work := "(ask the user what to break down)"
	if args := req.Params.Arguments; args != nil {
		projectID = args["project_id"]
		if v, ok := args["work_description"]; ok && v != "" {
			work = v
		}
	}
	if projectID == "" {
		return nil, fmt.Errorf("project_id argument is required")
	}

	return &mcp.GetPromptResult{
		Description: "Break work into tasks",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					`Break this work down into tasks for project %s:

%s

Steps:
1. Call get_project_context to see what already exists — don't duplicate tasks.
2. Create an initiative for the work (create_initiative) unless one already fits.
3. Create 3-10 tasks (create_task), each small enough to finish in a day,
   linked to the initiative, with priority set by dependency order.
4. Show me the resulting list and ask if anything is missing.`,
					projectID, work,
				)),
			},
		},
	}, nil
}
