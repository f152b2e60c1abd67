package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/treemap/internal/history"
	"github.com/ziadkadry99/treemap/internal/pipeline"
	"github.com/ziadkadry99/treemap/internal/render"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes treemap layout tools.
type Server struct {
	runner  *pipeline.Runner
	opts    render.Options
	history *history.Store
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server that renders through runner with opts.
func NewServer(runner *pipeline.Runner, opts render.Options) *Server {
	s := &Server{
		runner: runner,
		opts:   opts,
	}

	s.mcp = server.NewMCPServer(
		"treemap",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listDatasetsTool, s.handleListDatasets)
	s.mcp.AddTool(getTreemapLayoutTool, s.handleGetTreemapLayout)
	s.mcp.AddTool(getLegendTool, s.handleGetLegend)
}

// SetHistory enables the render history tool.
func (s *Server) SetHistory(store *history.Store) {
	s.history = store
	s.mcp.AddTool(getRenderHistoryTool, s.handleGetRenderHistory)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
