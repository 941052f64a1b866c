package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jakedx6/helios9-mcp/internal/api"
	"github.com/jakedx6/helios9-mcp/internal/schema"
)

// errorBody is the fixed structure serialized into every error response.
type errorBody struct {
	Error     string `json:"error"`
	Tool      string `json:"tool"`
	Timestamp string `json:"timestamp"`
}

// successEnvelope serializes a handler result into the response shape.
// A result that cannot be marshaled is an internal error, enveloped like
// any other failure rather than escaping to the transport.
func successEnvelope(tool string, result any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errorEnvelope(tool, fmt.Errorf("serializing result: %w", err))
	}
	return mcp.NewToolResultText(string(data))
}

// errorEnvelope wraps any failure into the fixed isError response. The
// message is the classified, human-readable line; internal detail
// (backend payloads, wrapped causes) never crosses this boundary.
func errorEnvelope(tool string, err error) *mcp.CallToolResult {
	body := errorBody{
		Error:     publicMessage(err),
		Tool:      tool,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	data, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		// Unreachable for this struct shape; keep the envelope total anyway.
		data = []byte(fmt.Sprintf(`{"error":%q,"tool":%q}`, body.Error, tool))
	}
	return mcp.NewToolResultError(string(data))
}

// publicMessage classifies err into a single caller-facing line.
func publicMessage(err error) string {
	var unknownTool *UnknownToolError
	if errors.As(err, &unknownTool) {
		return unknownTool.Error()
	}

	var invalid *schema.ValidationError
	if errors.As(err, &invalid) {
		return invalid.Error()
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case api.KindNotFound:
			return apiErr.Message
		case api.KindUnauthorized:
			return "unauthorized: " + apiErr.Message
		case api.KindValidation:
			return "validation failed: " + apiErr.Message
		case api.KindRemoteFailure:
			return "backend error (retryable): " + apiErr.Message
		default:
			return "backend error: " + apiErr.Message
		}
	}

	return "internal error: " + err.Error()
}
