// Package gateway is the single chokepoint every tool call passes
// through: registry lookup, schema validation, authentication, handler
// execution, and envelope wrapping, in that order. No handler is ever
// invoked by any other path.
package gateway

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/auth"
	"github.com/jakedx6/helios9-mcp/internal/schema"
)

// Tool is one registered operation: a descriptor plus its handler.
// Handlers return the raw result value (serialized by the envelope) or
// an error; they never swallow failures or shape envelopes themselves.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (any, error)
}

// UnknownToolError is the dispatch-time failure for a nonexistent tool.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// Registry maps tool names to their schema and handler. Built once at
// startup and immutable afterwards; reads need no locking.
type Registry struct {
	gate  *auth.Gate
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry gated by the given auth gate.
func NewRegistry(gate *auth.Gate) *Registry {
	return &Registry{
		gate:  gate,
		tools: map[string]Tool{},
	}
}

// Register adds a tool. A duplicate name is a startup-time programming
// error and is returned so the composition root can fail fast.
func (r *Registry) Register(t Tool) error {
	name := t.Definition().Name
	if name == "" {
		return fmt.Errorf("tool registered with empty name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("duplicate tool registration: %s", name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// List returns the descriptors in registration order. Always available,
// including before authentication succeeds.
func (r *Registry) List() []mcp.Tool {
	descriptors := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		descriptors = append(descriptors, r.tools[name].Definition())
	}
	return descriptors
}

// Dispatch runs the full pipeline for one tool call. It never returns a
// Go error: every failure — unknown tool, invalid arguments, missing
// credential, handler fault — becomes a normal response with the error
// envelope, so the transport never sees an exception.
func (r *Registry) Dispatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.Params.Name

	tool, ok := r.tools[name]
	if !ok {
		return errorEnvelope(name, &UnknownToolError{Name: name}), nil
	}

	normalized, err := schema.Validate(tool.Definition(), req.GetArguments())
	if err != nil {
		return errorEnvelope(name, err), nil
	}

	if _, err := r.gate.EnsureAuthenticated(ctx); err != nil {
		return errorEnvelope(name, err), nil
	}

	req.Params.Arguments = normalized
	result, err := tool.Handle(ctx, req)
	if err != nil {
		return errorEnvelope(name, err), nil
	}
	return successEnvelope(name, result), nil
}
