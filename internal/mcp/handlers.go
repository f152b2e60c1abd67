package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/treemap/internal/dataset"
	"github.com/ziadkadry99/treemap/internal/history"
	"github.com/ziadkadry99/treemap/internal/pipeline"
	"github.com/ziadkadry99/treemap/internal/render"
)

// handleListDatasets lists the known dataset keys.
func (s *Server) handleListDatasets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, id := range dataset.IDs() {
		marker := ""
		if id == dataset.Default {
			marker = " (default)"
		}
		fmt.Fprintf(&sb, "%s%s: %s\n", id, marker, dataset.URL(id))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetTreemapLayout renders a dataset and returns its layout.
func (s *Server) handleGetTreemapLayout(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format, err := render.ParseFormat(request.GetString("format", "json"))
	if err != nil || format == render.FormatHTML {
		return mcp.NewToolResultError("format must be json or svg"), nil
	}

	res, errResult := s.run(ctx, request)
	if errResult != nil {
		return errResult, nil
	}

	var buf bytes.Buffer
	if err := res.Scene.Write(&buf, format); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering failed: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// handleGetLegend renders a dataset and returns only its legend.
func (s *Server) handleGetLegend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, errResult := s.run(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(formatLegend(res)), nil
}

// handleGetRenderHistory lists recorded renders.
func (s *Server) handleGetRenderHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.history.Query(ctx, history.QueryFilter{
		Dataset: request.GetString("data", ""),
		Limit:   limit,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("querying history failed: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No renders recorded yet."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d render(s):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s %s %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Dataset, e.Outcome)
		if e.Outcome == history.OutcomeRendered {
			fmt.Fprintf(&sb, " (%d leaves, %d categories)", e.Leaves, len(e.Categories))
		} else if e.Error != "" {
			fmt.Fprintf(&sb, ": %s", e.Error)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// run executes the pipeline for the request's data key. A failed fetch is
// reported as a tool error, not a protocol error.
func (s *Server) run(ctx context.Context, request mcp.CallToolRequest) (*pipeline.Result, *mcp.CallToolResult) {
	res := s.runner.Run(ctx, request.GetString("data", ""), s.opts)
	if res.State != pipeline.Rendered {
		return nil, mcp.NewToolResultError(fmt.Sprintf("could not load %s from %s: %v", res.Dataset, res.URL, res.Err))
	}
	return res, nil
}

// formatLegend renders the legend as plain text for agents.
func formatLegend(res *pipeline.Result) string {
	var sb strings.Builder
	lg := res.Scene.Legend
	fmt.Fprintf(&sb, "Legend for %s (%d categories, %d columns x %d rows):\n",
		res.Dataset, len(lg.Items), lg.Columns, lg.Rows)
	for _, it := range lg.Items {
		name := it.Category
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(&sb, "- %s %s [row %d, col %d]\n", it.Color, name, it.Row, it.Col)
	}
	return sb.String()
}
