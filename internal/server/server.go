// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on them.
// No business logic lives here — only wiring.
package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jakedx6/helios9-mcp/internal/api"
	"github.com/jakedx6/helios9-mcp/internal/auth"
	"github.com/jakedx6/helios9-mcp/internal/config"
	"github.com/jakedx6/helios9-mcp/internal/gateway"
	"github.com/jakedx6/helios9-mcp/internal/prompts"
	"github.com/jakedx6/helios9-mcp/internal/resources"
	"github.com/jakedx6/helios9-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// Registration failures (duplicate tool names) are returned as errors so
// main can exit non-zero rather than serving a half-configured registry.
func New(cfg config.Config) (*server.MCPServer, error) {
	// --- Create shared dependencies ---

	client := api.NewClient(cfg.APIURL, cfg.APIKey,
		api.WithTimeout(cfg.Timeout),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	gate := auth.NewGate(cfg.APIKey, cfg.WorkspaceID, client)
	client.SetScopeSource(gate)

	registry := gateway.NewRegistry(gate)

	// --- Register tools ---
	//
	// Every tool goes through the registry; the MCP server only ever
	// sees the registry's Dispatch, never a raw handler.

	all := []gateway.Tool{
		// Projects
		tools.NewListProjectsTool(client),
		tools.NewGetProjectTool(client),
		tools.NewCreateProjectTool(client),
		tools.NewUpdateProjectTool(client),
		tools.NewDeleteProjectTool(client),
		tools.NewProjectContextTool(client),

		// Initiatives
		tools.NewListInitiativesTool(client),
		tools.NewGetInitiativeTool(client),
		tools.NewCreateInitiativeTool(client),
		tools.NewUpdateInitiativeTool(client),
		tools.NewLinkTaskTool(client),

		// Tasks
		tools.NewListTasksTool(client),
		tools.NewGetTaskTool(client),
		tools.NewCreateTaskTool(client),
		tools.NewUpdateTaskTool(client),
		tools.NewUpdateTaskStatusTool(client),
		tools.NewNextTaskTool(client),

		// Documents
		tools.NewListDocumentsTool(client),
		tools.NewGetDocumentTool(client),
		tools.NewCreateDocumentTool(client),
		tools.NewUpdateDocumentTool(client),
		tools.NewSearchDocumentsTool(client),

		// Milestones
		tools.NewListMilestonesTool(client),
		tools.NewGetMilestoneTool(client),
		tools.NewCreateMilestoneTool(client),
		tools.NewUpdateMilestoneTool(client),
		tools.NewCompleteMilestoneTool(client),

		// AI conversations
		tools.NewLogConversationTool(client),
		tools.NewListConversationsTool(client),
		tools.NewConversationContextTool(client),

		// Search & analytics
		tools.NewSearchProjectContentTool(client),
		tools.NewProjectAnalyticsTool(client),
	}
	for _, t := range all {
		if err := registry.Register(t); err != nil {
			return nil, fmt.Errorf("registering tools: %w", err)
		}
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"helios9",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	for _, descriptor := range registry.List() {
		s.AddTool(descriptor, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return registry.Dispatch(ctx, req)
		})
	}

	// --- Register prompts ---

	kickoff := prompts.NewKickoffPrompt()
	s.AddPrompt(kickoff.Definition(), kickoff.Handle)

	breakdown := prompts.NewBreakdownPrompt()
	s.AddPrompt(breakdown.Definition(), breakdown.Handle)

	standup := prompts.NewStandupPrompt(client, gate)
	s.AddPrompt(standup.Definition(), standup.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(client, gate)
	s.AddResource(resourceHandler.ProjectsResource(), resourceHandler.Handle)
	s.AddResourceTemplate(resourceHandler.ProjectResourceTemplate(), resourceHandler.Handle)
	s.AddResourceTemplate(resourceHandler.ProjectTasksResourceTemplate(), resourceHandler.Handle)
	s.AddResourceTemplate(resourceHandler.ProjectDocumentsResourceTemplate(), resourceHandler.Handle)

	return s, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to use the gateway effectively.
func serverInstructions() string {
	return `You have access to Helios9, a project management MCP server.

## What Helios9 is
Helios9 stores projects, initiatives, tasks, documents, milestones, and
AI conversation logs in a shared workspace. Every tool call is scoped to
the authenticated workspace — you never pass workspace or user ids.

## Session workflow
1. Start with list_projects, then get_project_context for the project
   you're working on.
2. Call get_conversation_context to recover what previous sessions
   discussed and decided.
3. As you work, keep task statuses current with update_task_status.
4. Before ending a session, call log_ai_conversation with a summary of
   goals, decisions, and outcomes so the next session can pick up.

## Organizing work
- Projects contain everything; create one per product or codebase.
- Initiatives group tasks toward a larger outcome. Use task-breakdown
  to turn a feature into an initiative with ordered tasks.
- Milestones are dated checkpoints; complete them with
  complete_milestone when reached.
- Documents hold specs, notes, and meeting minutes. Search them with
  search_documents before writing something that may already exist.

## Rules
- Never invent entity ids — always obtain them from a list or create call.
- Confirm with the user before delete_project; it cannot be undone.
- Errors come back as JSON with an "error" field. A "backend error
  (retryable)" message means a transient fault — retry once before
  reporting failure. "unauthorized" means the server credential is bad;
  tell the user to check their HELIOS9_API_KEY.`
}
