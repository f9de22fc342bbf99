package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerAddNotesTool(srv, svc)
	registerSplitTextTool(srv, svc)
	registerRecentTagsTool(srv, svc)
	registerListRecordTypesTool(srv, svc)
	registerGetRecordTool(srv, svc)
}

func registerAddNotesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_notes",
		mcp.WithDescription("Add one note per line of text. Tab separated values on a line fill the record type's fields in order."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Lines to add. Blank lines are ignored."),
		),
		mcp.WithString("split_marker",
			mcp.Description("Optional single character; every occurrence ends a line before the text is split into notes."),
		),
		mcp.WithString("tags",
			mcp.Description("Space separated tags attached to every note."),
		),
		mcp.WithString("category",
			mcp.Description("Destination category (deck). Defaults to the configured category."),
		),
		mcp.WithString("type",
			mcp.Description("Record type id such as basic or cloze. Defaults to the configured type."),
		),
		mcp.WithString("overflow",
			mcp.Description("What to do with more values than fields."),
			mcp.Enum("drop", "strict", "merge"),
		),
		mcp.WithBoolean("continue_on_error",
			mcp.Description("Keep adding after a line fails instead of stopping."),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Return the notes that would be created without adding them."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text            string `json:"text"`
			SplitMarker     string `json:"split_marker"`
			Tags            string `json:"tags"`
			Category        string `json:"category"`
			Type            string `json:"type"`
			Overflow        string `json:"overflow"`
			ContinueOnError *bool  `json:"continue_on_error"`
			DryRun          bool   `json:"dry_run"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		result, err := svc.AddNotes(ctx, AddNotesOptions{
			Text:            args.Text,
			Marker:          args.SplitMarker,
			Tags:            args.Tags,
			Category:        args.Category,
			Type:            args.Type,
			Overflow:        args.Overflow,
			ContinueOnError: args.ContinueOnError,
			DryRun:          args.DryRun,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	})
}

func registerSplitTextTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"split_text",
		mcp.WithDescription("Preview how a split marker breaks text into lines."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to split."),
		),
		mcp.WithString("marker",
			mcp.Required(),
			mcp.Description("Single character marker."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		marker := request.GetString("marker", "")

		out, lines, err := svc.SplitText(text, marker)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"text":  out,
			"lines": lines,
			"count": len(lines),
		})
	})
}

func registerRecentTagsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"recent_tags",
		mcp.WithDescription("Distinct tags from the most recently added notes, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of tags to return."),
			mcp.Min(5),
			mcp.Max(50),
		),
		mcp.WithNumber("depth",
			mcp.Description("Number of recent notes to examine."),
			mcp.Min(50),
			mcp.Max(1000),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 0)
		depth := request.GetInt("depth", 0)

		tags, err := svc.RecentTags(ctx, limit, depth)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tags":  tags,
			"count": len(tags),
		})
	})
}

func registerListRecordTypesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_record_types",
		mcp.WithDescription("List record types and their ordered fields."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		types, err := svc.RecordTypes(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"types": types,
			"count": len(types),
		})
	})
}

func registerGetRecordTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_record",
		mcp.WithDescription("Fetch a single note by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Record identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.RecordByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
