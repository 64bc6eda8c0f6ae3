// Package tools implements the MCP tool handlers for the requirements server.
//
// Each tool is one file: a struct carrying its dependencies (reqstore.Store,
// journal.Store), a Definition() returning the mcp.Tool schema, and a
// Handle() processing the call. Every handler returns a JSON envelope as the
// tool result text: {"success": true, "data": ...} on success and
// {"success": false, "error": "..."} on failure. Handlers never return a Go
// error for domain failures — those belong in the envelope so the client can
// inspect them.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonSuccess wraps data in the success envelope. A serialization failure
// degrades to a minimal error payload instead of propagating.
func jsonSuccess(data any) string {
	out, err := json.MarshalIndent(map[string]any{
		"success": true,
		"data":    data,
	}, "", "  ")
	if err != nil {
		return `{"success": false, "error": "Failed to serialize response"}`
	}
	return string(out)
}

// jsonError wraps a user-visible message in the error envelope.
func jsonError(message string) string {
	out, err := json.MarshalIndent(map[string]any{
		"success": false,
		"error":   message,
	}, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success": false, "error": %q}`, message)
	}
	return string(out)
}

// batchResult is one entry of a batch response. Exactly one of Data or Error
// is set, mirroring the top-level envelope shape.
type batchResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func batchOK(data any) batchResult   { return batchResult{Success: true, Data: data} }
func batchErr(err error) batchResult { return batchResult{Success: false, Error: err.Error()} }

// commonArgs extracts the parameters shared by every tool call.
func commonArgs(req mcp.CallToolRequest) (projectRoot, operationDescription string) {
	return req.GetString("project_root", ""), req.GetString("operation_description", "")
}

// stringList coerces an array argument of strings. present is false when the
// key is absent; a non-array or non-string element yields an error.
func stringList(req mcp.CallToolRequest, key string) (values []string, present bool, err error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false, fmt.Errorf("'%s' must be an array of strings", key)
	}
	values = make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false, fmt.Errorf("'%s' must be an array of strings", key)
		}
		values = append(values, s)
	}
	return values, true, nil
}

// withCommonParams prepends the project_root and operation_description
// parameters every tool shares.
func withCommonParams(opts ...mcp.ToolOption) []mcp.ToolOption {
	common := []mcp.ToolOption{
		mcp.WithString("project_root",
			mcp.Required(),
			mcp.Description("Absolute path of the project whose requirements are being accessed."),
		),
		mcp.WithString("operation_description",
			mcp.Required(),
			mcp.Description("Short human-readable description of why this operation is performed."),
		),
	}
	return append(common, opts...)
}

// result wraps an envelope string as an MCP text result.
func result(envelope string) *mcp.CallToolResult {
	return mcp.NewToolResultText(envelope)
}
