package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"asset-brain/services"
	"asset-brain/utils"
)

const Version = "1.0.0"

// Tools exposes portfolio questions and analytics to MCP clients.
type Tools struct {
	query     *services.QueryService
	analytics *services.AnalyticsService
	logger    *utils.Logger
}

func NewTools(query *services.QueryService, analytics *services.AnalyticsService, logger *utils.Logger) *Tools {
	return &Tools{query: query, analytics: analytics, logger: logger}
}

// NewServer registers every tool on a fresh MCP server.
func (t *Tools) NewServer(name string) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		Version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Answers plain-text questions about a real estate portfolio: "+
			"roof repairs, heating complaints, expiring leases, maintenance costs, lease types and recurring issues."),
	)

	s.AddTool(
		mcp.NewTool("ask_portfolio",
			mcp.WithDescription("Answer a plain-text question about properties, leases and maintenance history"),
			mcp.WithString("question", mcp.Required(), mcp.Description("The question, e.g. \"Which leases are expiring?\"")),
		),
		t.handleAsk,
	)
	s.AddTool(
		mcp.NewTool("portfolio_analytics",
			mcp.WithDescription("Portfolio totals: property count, monthly rent, active issues and spend by category"),
		),
		t.handleAnalytics,
	)
	return s
}

func (t *Tools) handleAsk(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question := req.GetString("question", "")
	resp, err := t.query.Answer(ctx, question)
	if err != nil {
		t.logger.Error("[mcp] ask_portfolio failed: %v", err)
		return mcp.NewToolResultError("the portfolio store is unavailable"), nil
	}
	return jsonResult(resp)
}

func (t *Tools) handleAnalytics(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := t.analytics.Generate(ctx)
	if err != nil {
		t.logger.Error("[mcp] portfolio_analytics failed: %v", err)
		return mcp.NewToolResultError("the portfolio store is unavailable"), nil
	}
	return jsonResult(report)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

// ServeStdio blocks serving s over stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
