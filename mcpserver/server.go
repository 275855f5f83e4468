package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/njchilds90/explicitize/config"
)

const (
	serverName    = "explicitize"
	serverVersion = "1.0.0"
)

// Server wraps an MCP server with the conversion tools registered.
type Server struct {
	logger    *zap.Logger
	mcpServer *server.MCPServer
}

// New creates the MCP server. A nil logger disables logging.
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{logger: logger}
	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *server.MCPServer { return s.mcpServer }

func (s *Server) registerTools() {
	tokenizeTool := mcp.NewTool(ToolTokenize,
		mcp.WithDescription("Split a feature string such as x0x1x2_dot into variable tokens, one per line"),
		mcp.WithString("feature",
			mcp.Required(),
			mcp.Description("Feature string, e.g. x0x1_dot"),
		),
	)
	s.mcpServer.AddTool(tokenizeTool, s.handleTokenize)

	reformatTool := mcp.NewTool(ToolReformat,
		mcp.WithDescription("Rewrite comma separated features as products of powers, one per line"),
		mcp.WithString("features",
			mcp.Required(),
			mcp.Description("Comma separated features, e.g. x0x0x1,x1x0_dot"),
		),
	)
	s.mcpServer.AddTool(reformatTool, s.handleReformat)

	explicitizeTool := mcp.NewTool(ToolExplicitize,
		mcp.WithDescription("Solve every row of an implicit model document for its derivative symbol and return the explicit models as JSON"),
		mcp.WithString("model",
			mcp.Required(),
			mcp.Description("YAML or JSON document with feature_names, xdot, right_coeff and optional left_coeff"),
		),
		mcp.WithNumber("tolerance",
			mcp.Description("Coefficients at or below this magnitude are dropped (default 1e-6)"),
		),
		mcp.WithNumber("sig_digits",
			mcp.Description("Significant digits of final coefficients, 0 disables rounding (default 4)"),
		),
		mcp.WithString("target",
			mcp.Description("Preferred denominator monomial, written like a feature"),
		),
	)
	s.mcpServer.AddTool(explicitizeTool, s.handleExplicitize)
}

func (s *Server) handleTokenize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := request.GetString("feature", "")
	if f == "" {
		return mcp.NewToolResultError("feature parameter required"), nil
	}
	return mcp.NewToolResultText(strings.Join(Tokenize(f), "\n")), nil
}

func (s *Server) handleReformat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	features := splitList(request.GetString("features", ""))
	if len(features) == 0 {
		return mcp.NewToolResultError("features parameter required"), nil
	}
	return mcp.NewToolResultText(strings.Join(Reformat(features), "\n")), nil
}

func (s *Server) handleExplicitize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := request.GetString("model", "")
	if doc == "" {
		return mcp.NewToolResultError("model parameter required"), nil
	}
	cfg := config.Default()
	cfg.Tolerance = request.GetFloat("tolerance", cfg.Tolerance)
	cfg.SigDigits = int(request.GetFloat("sig_digits", float64(cfg.SigDigits)))
	cfg.Target = request.GetString("target", "")

	rep, err := Explicitize(ctx, s.logger, []byte(doc), cfg)
	if err != nil {
		s.logger.Warn("explicitize_model failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("failed to convert model: %v", err)), nil
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode report: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
