package api

import (
	"context"
	"net/url"
)

// CreateConversationInput is the payload for LogConversation.
type CreateConversationInput struct {
	ProjectID string
	AgentName string
	Summary   string
	Messages  string
}

// ListConversations returns logged AI sessions for the caller's workspace.
func (c *Client) ListConversations(ctx context.Context, f ConversationFilter) ([]Conversation, error) {
	extra := url.Values{}
	if f.ProjectID != "" {
		extra.Set("project_id", "eq."+f.ProjectID)
	}
	if f.AgentName != "" {
		extra.Set("agent_name", "eq."+f.AgentName)
	}
	if f.OrderBy == "" {
		f.OrderBy = "created_at"
		f.Descending = true
	}
	return listRows[Conversation](ctx, c, "ai_conversations", extra, f.ListOptions)
}

// GetConversation fetches one logged session by id.
func (c *Client) GetConversation(ctx context.Context, id string) (Conversation, error) {
	return getOne[Conversation](ctx, c, "ai_conversations", id)
}

// LogConversation records an AI session against a project.
func (c *Client) LogConversation(ctx context.Context, in CreateConversationInput) (Conversation, error) {
	payload := map[string]any{
		"project_id": in.ProjectID,
		"summary":    in.Summary,
	}
	if in.AgentName != "" {
		payload["agent_name"] = in.AgentName
	}
	if in.Messages != "" {
		payload["messages"] = in.Messages
	}
	return createRow[Conversation](ctx, c, "ai_conversations", payload)
}
