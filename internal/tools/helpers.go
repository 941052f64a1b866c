// Package tools implements the MCP tool handlers for the Helios9 gateway.
//
// Each tool is a struct that receives the data client via its constructor
// and exposes Definition() for registration plus Handle() for execution.
// Handlers run after the gateway has validated arguments and ensured
// authentication; they return a result value (enveloped by the gateway)
// or let classified errors propagate unchanged.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/schema"
)

// decodeArgs maps the normalized argument bag onto a typed struct.
func decodeArgs(req mcp.CallToolRequest, out any) error {
	return schema.Decode(req.GetArguments(), out)
}

// optional returns a pointer for update payloads: nil when the argument
// was absent, so "not provided" stays distinct from "set to empty".
func optional[T any](args map[string]any, key string, value T) *T {
	if _, present := args[key]; !present {
		return nil
	}
	return &value
}

// listArgs are the pagination knobs shared by every list tool.
type listArgs struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// withListArgs declares the shared pagination properties on a tool.
func withListArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return"),
			mcp.DefaultNumber(50),
			mcp.Min(1),
			mcp.Max(200),
		),
		mcp.WithNumber("offset",
			mcp.Description("Number of results to skip"),
			mcp.Min(0),
		),
	}
}
