// Package mcpserver exposes the energy-data search as an MCP tool so
// language-model hosts can call it over stdio or SSE.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mohammed-shakir/eia-search/internal/core/model"
)

const toolName = "search_energy_data"

var toolSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Natural-language description of the energy data wanted, e.g. 'residential electricity consumption in Texas'."
    },
    "facets": {
      "type": "object",
      "description": "Facet filters keyed by category, e.g. {\"stateid\": [\"TX\"]}. Values may be a string or a list of strings.",
      "additionalProperties": true
    },
    "frequency": {"type": "string", "description": "Reporting frequency such as monthly, annual or quarterly."},
    "start_period": {"type": "string", "description": "Inclusive start period, e.g. 2023-01."},
    "end_period": {"type": "string", "description": "Inclusive end period, e.g. 2023-12."},
    "sort_column": {"type": "string", "description": "Column to sort by; requires sort_direction."},
    "sort_direction": {"type": "string", "enum": ["asc", "desc"], "description": "Sort direction; requires sort_column."},
    "data_columns": {"type": "array", "items": {"type": "string"}, "description": "Data columns to request, e.g. [\"value\"]."},
    "length": {"type": "integer", "description": "Maximum number of rows to return."},
    "offset": {"type": "integer", "description": "Number of rows to skip."}
  },
  "required": ["query"]
}`)

// Searcher is implemented by the search service.
type Searcher interface {
	Search(ctx context.Context, q model.QueryParameters) string
}

type Server struct {
	logger *slog.Logger
	mcp    *server.MCPServer
}

func New(logger *slog.Logger, version string, s Searcher) *Server {
	m := server.NewMCPServer("eia-search", version)
	tool := mcp.NewToolWithRawSchema(toolName,
		"Search U.S. energy data from the EIA API and return the results as a Markdown table.",
		toolSchema)
	m.AddTool(tool, handler(logger, s))
	return &Server{logger: logger, mcp: m}
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (sv *Server) ServeStdio() error {
	return server.ServeStdio(sv.mcp)
}

// ServeSSE blocks serving the MCP protocol over SSE on addr.
func (sv *Server) ServeSSE(addr string) error {
	sse := server.NewSSEServer(sv.mcp)
	sv.logger.Info("mcp sse listen", "addr", addr)
	return sse.Start(addr)
}

func handler(logger *slog.Logger, s Searcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := queryFromArgs(req.Params.Arguments)
		if err != nil {
			return newToolResultError(err.Error()), nil
		}
		logger.InfoContext(ctx, "tool call", "tool", toolName, "query", q.Query)
		return mcp.NewToolResultText(s.Search(ctx, q)), nil
	}
}

// newToolResultError reports bad arguments as a tool-level error result
// rather than a protocol fault, so the host can surface it to the model.
func newToolResultError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
	}
}
