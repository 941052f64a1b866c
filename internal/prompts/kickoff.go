// Package prompts implements the MCP prompt endpoints of the gateway.
//
// Prompts are user-triggered workflows (like slash commands). They carry
// no business logic: any data they surface comes through the same remote
// client the tools use.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// KickoffPrompt handles the project-kickoff prompt: it walks the agent
// through creating a project with an initial set of tasks and documents.
type KickoffPrompt struct{}

// NewKickoffPrompt creates a KickoffPrompt.
func NewKickoffPrompt() *KickoffPrompt {
	return &KickoffPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *KickoffPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("project-kickoff",
		mcp.WithPromptDescription(
			"Kick off a new project: create it, capture the goal as a "+
				"document, and break the first milestone into tasks.",
		),
		mcp.WithArgument("project_name",
			mcp.ArgumentDescription("Name for the new project"),
		),
		mcp.WithArgument("goal",
			mcp.ArgumentDescription("What the project should achieve"),
		),
	)
}

// Handle processes the project-kickoff prompt request.
func (p *KickoffPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectName := "the new project"
	goal := "(ask the user)"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["project_name"]; ok && v != "" {
			projectName = v
		}
		if v, ok := args["goal"]; ok && v != "" {
			goal = v
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Kick off project: %s", projectName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					`Help me kick off a project called %q.

Goal: %s

Work through these steps, confirming with me between each:
1. Call create_project with the name and a one-paragraph description.
2. Capture the goal and constraints as a document (create_document, doc_type "spec").
3. Propose the first milestone and create it (create_milestone).
4. Break the milestone into 3-8 concrete tasks (create_task), each with a
   clear title and acceptance criteria in the description.
5. Finish with get_project_context so we both see the resulting plan.

Ask me clarifying questions before creating anything you are unsure about.`,
					projectName, goal,
				)),
			},
		},
	}, nil
}
