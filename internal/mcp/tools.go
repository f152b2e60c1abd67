package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listDatasetsTool defines the list_datasets MCP tool.
var listDatasetsTool = mcp.NewTool("list_datasets",
	mcp.WithDescription("List the dataset keys that can be rendered and the URL each one is fetched from."),
)

// getTreemapLayoutTool defines the get_treemap_layout MCP tool.
var getTreemapLayoutTool = mcp.NewTool("get_treemap_layout",
	mcp.WithDescription("Fetch a dataset and return its computed treemap: one rectangle per leaf with name, category, value, colour and bounds."),
	mcp.WithString("data",
		mcp.Description("Dataset key (kickstarter, movies, videogames). Unknown keys fall back to kickstarter."),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default json)"),
		mcp.Enum("json", "svg"),
	),
)

// getLegendTool defines the get_legend MCP tool.
var getLegendTool = mcp.NewTool("get_legend",
	mcp.WithDescription("Fetch a dataset and return its category legend: each category in first-seen order with its colour and grid position."),
	mcp.WithString("data",
		mcp.Description("Dataset key (kickstarter, movies, videogames). Unknown keys fall back to kickstarter."),
	),
)

// getRenderHistoryTool defines the get_render_history MCP tool.
var getRenderHistoryTool = mcp.NewTool("get_render_history",
	mcp.WithDescription("List recent renders with their outcome, leaf count and error, newest first."),
	mcp.WithString("data",
		mcp.Description("Only show renders of this dataset key"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default 20)"),
	),
)
