package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
)

// LogConversationTool handles log_ai_conversation: agents record a
// session summary against a project so later sessions can recover
// context without the user repeating themselves.
type LogConversationTool struct {
	client *api.Client
}

// NewLogConversationTool creates a LogConversationTool with the given client.
func NewLogConversationTool(c *api.Client) *LogConversationTool {
	return &LogConversationTool{client: c}
}

func (t *LogConversationTool) Definition() mcp.Tool {
	return mcp.NewTool("log_ai_conversation",
		mcp.WithDescription(
			"Record an AI session against a project: a summary of what was "+
				"discussed and decided, optionally with the raw message transcript.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project the session was about"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Summary of the session: goals, decisions, outcomes"),
			mcp.MinLength(10),
		),
		mcp.WithString("agent_name",
			mcp.Description("Which agent held the session"),
		),
		mcp.WithString("messages",
			mcp.Description("Raw transcript as a JSON array, if worth keeping"),
		),
	)
}

func (t *LogConversationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
		Summary   string `json:"summary"`
		AgentName string `json:"agent_name"`
		Messages  string `json:"messages"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	if _, err := t.client.GetProject(ctx, args.ProjectID); err != nil {
		return nil, err
	}

	conversation, err := t.client.LogConversation(ctx, api.CreateConversationInput{
		ProjectID: args.ProjectID,
		AgentName: args.AgentName,
		Summary:   args.Summary,
		Messages:  args.Messages,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"conversation": conversation}, nil
}

// ListConversationsTool handles list_ai_conversations.
type ListConversationsTool struct {
	client *api.Client
}

// NewListConversationsTool creates a ListConversationsTool with the given client.
func NewListConversationsTool(c *api.Client) *ListConversationsTool {
	return &ListConversationsTool{client: c}
}

func (t *ListConversationsTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("List logged AI sessions, newest first."),
		mcp.WithString("project_id",
			mcp.Description("Only sessions for this project"),
		),
		mcp.WithString("agent_name",
			mcp.Description("Only sessions held by this agent"),
		),
	}
	opts = append(opts, withListArgs()...)
	return mcp.NewTool("list_ai_conversations", opts...)
}

func (t *ListConversationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
		AgentName string `json:"agent_name"`
		listArgs
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	conversations, err := t.client.ListConversations(ctx, api.ConversationFilter{
		ProjectID:   args.ProjectID,
		AgentName:   args.AgentName,
		ListOptions: api.ListOptions{Limit: args.Limit, Offset: args.Offset},
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"conversations": conversations,
		"count":         len(conversations),
	}, nil
}

// ConversationContextTool handles get_conversation_context: recent
// session summaries for a project, for priming a fresh session.
type ConversationContextTool struct {
	client *api.Client
}

// NewConversationContextTool creates a ConversationContextTool with the given client.
func NewConversationContextTool(c *api.Client) *ConversationContextTool {
	return &ConversationContextTool{client: c}
}

func (t *ConversationContextTool) Definition() mcp.Tool {
	return mcp.NewTool("get_conversation_context",
		mcp.WithDescription(
			"Fetch the most recent AI session summaries for a project. "+
				"Call this at the start of a session to recover prior context.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("Project id"),
		),
		mcp.WithNumber("limit",
			mcp.Description("How many recent sessions to return"),
			mcp.DefaultNumber(5),
			mcp.Min(1),
			mcp.Max(25),
		),
	)
}

func (t *ConversationContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	var args struct {
		ProjectID string `json:"project_id"`
		Limit     int    `json:"limit"`
	}
	if err := decodeArgs(req, &args); err != nil {
		return nil, err
	}

	conversations, err := t.client.ListConversations(ctx, api.ConversationFilter{
		ProjectID:   args.ProjectID,
		ListOptions: api.ListOptions{Limit: args.Limit},
	})
	if err != nil {
		return nil, err
	}

	// Summaries only — transcripts stay behind get_ai_conversation-style
	// reads so this stays cheap to call every session.
	type sessionSummary struct {
		ID        string `json:"id"`
		AgentName string `json:"agent_name,omitempty"`
		Summary   string `json:"summary"`
		CreatedAt string `json:"created_at"`
	}
	summaries := make([]sessionSummary, 0, len(conversations))
	for _, c := range conversations {
		summaries = append(summaries, sessionSummary{
			ID:        c.ID,
			AgentName: c.AgentName,
			Summary:   c.Summary,
			CreatedAt: c.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return map[string]any{
		"project_id": args.ProjectID,
		"sessions":   summaries,
		"count":      len(summaries),
	}, nil
}
