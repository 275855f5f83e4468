package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linearModel = `
feature_names: ["1", "x0", "x1", "x0_dot"]
xdot: x0_dot
right_coeff:
  - [0, 0, 0, 0]
  - [0, 0, 0, 0]
  - [0, 0, 0, 0]
  - [0, 2, -1, 0]
`

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

// ============================================================
// MCP handlers
// ============================================================

func TestHandleTokenize(t *testing.T) {
	s := New(nil)
	require.NotNil(t, s.MCP())
	res, err := s.handleTokenize(context.Background(), call(ToolTokenize, map[string]any{"feature": "x0x1x2_dot"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "x0\nx1\nx2_dot", text(t, res))

	res, err = s.handleTokenize(context.Background(), call(ToolTokenize, nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleReformat(t *testing.T) {
	s := New(nil)
	res, err := s.handleReformat(context.Background(), call(ToolReformat, map[string]any{"features": "x0x0x1, x0x1_dot"}))
	require.NoError(t, err)
	assert.Equal(t, "x0^2*x1\nx0*x1_dot", text(t, res))
}

func TestHandleExplicitize(t *testing.T) {
	s := New(nil)
	res, err := s.handleExplicitize(context.Background(), call(ToolExplicitize, map[string]any{"model": linearModel}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var rep Report
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rep))
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 4, rep.Summary.Total)
	assert.Equal(t, 1, rep.Summary.Succeeded)
	require.Len(t, rep.Models, 1)
	assert.Equal(t, "x0_dot = 2*x0 - x1", rep.Models[0].Equation)
	assert.Len(t, rep.Failures, 3)
}

func TestHandleExplicitize_BadDocument(t *testing.T) {
	s := New(nil)
	res, err := s.handleExplicitize(context.Background(), call(ToolExplicitize, map[string]any{"model": "xdot: x0_dot"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "feature_names")
}

// ============================================================
// JSON tool call
// ============================================================

func TestHandleToolCall(t *testing.T) {
	ctx := context.Background()

	resp := HandleToolCall(ctx, nil, ToolRequest{Tool: ToolTokenize, Params: map[string]interface{}{"feature": "x1x0_t"}})
	assert.Empty(t, resp.Error)
	assert.Equal(t, []string{"x1", "x0_t"}, resp.Result)

	resp = HandleToolCall(ctx, nil, ToolRequest{Tool: ToolReformat, Params: map[string]interface{}{"features": []interface{}{"x0x0", "1"}}})
	assert.Equal(t, []string{"x0^2", "1"}, resp.Result)

	resp = HandleToolCall(ctx, nil, ToolRequest{Tool: "integrate"})
	assert.Equal(t, "unknown tool: integrate", resp.Error)

	resp = HandleToolCall(ctx, nil, ToolRequest{Tool: ToolTokenize, Params: map[string]interface{}{"feature": 3.0}})
	assert.Equal(t, "param feature must be a string", resp.Error)
}

func TestHandleToolCall_ModelObject(t *testing.T) {
	var req ToolRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"tool": "explicitize_model",
		"params": {
			"model": {
				"feature_names": ["x0", "x0_dot"],
				"xdot": "x0_dot",
				"right_coeff": [[0, 0], [1.23456, 0]]
			},
			"sig_digits": 2
		}
	}`), &req))

	resp := HandleToolCall(context.Background(), nil, req)
	require.Empty(t, resp.Error)
	rep, ok := resp.Result.(*Report)
	require.True(t, ok)
	require.Len(t, rep.Models, 1)
	assert.Equal(t, "x0_dot = 1.2*x0", rep.Models[0].Equation)
	assert.Equal(t, "1 of 2 models obtained", resp.String)
}

func TestToolSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(ToolSpec()), &spec))
	names := []string{}
	for _, tool := range spec.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{ToolTokenize, ToolReformat, ToolExplicitize, ToolSpecName}, names)
}
