package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listToolDef = mcp.NewTool("clip_list",
	mcp.WithDescription("List the most recent clipboard items, newest first, as one-line previews."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of items (default 10)")),
)

var searchToolDef = mcp.NewTool("clip_search",
	mcp.WithDescription("Find clipboard items whose content contains the query (case-insensitive), newest first."),
	mcp.WithString("query", mcp.Description("Substring to look for"), mcp.Required()),
)

var showToolDef = mcp.NewTool("clip_show",
	mcp.WithDescription("Return one clipboard item in full, including every transformation result."),
	mcp.WithString("id", mcp.Description("Item id as shown by clip_list or clip_search"), mcp.Required()),
)

var exportToolDef = mcp.NewTool("clip_export",
	mcp.WithDescription("Write the whole clipboard history to a JSONL file in the exports directory."),
	mcp.WithString("path", mcp.Description("Destination .jsonl file (default: exports/history-<timestamp>.jsonl)")),
)
