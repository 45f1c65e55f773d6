package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"stickpad/internal/domain"
	"stickpad/internal/ports"
)

// RegisterNoteTools adds the note tools to the MCP server, giving agents
// the same load/save surface the overlay uses. Writes go straight to the
// store; an open overlay picks them up through its file watcher.
func RegisterNoteTools(s *server.MCPServer, store ports.NoteStore) {
	s.AddTool(readNoteTool(), readNoteHandler(store))
	s.AddTool(writeNoteTool(), writeNoteHandler(store))
	s.AddTool(noteInfoTool(), noteInfoHandler(store))
}

// --- read_note ---

func readNoteTool() mcp.Tool {
	return mcp.NewTool("read_note",
		mcp.WithDescription("Read the sticky note. Returns the full note content; empty if no note exists yet."),
	)
}

func readNoteHandler(store ports.NoteStore) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := store.Load()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(content), nil
	}
}

// --- write_note ---

func writeNoteTool() mcp.Tool {
	return mcp.NewTool("write_note",
		mcp.WithDescription("Replace the sticky note with new content. The write fully replaces the previous note and is durable on success."),
		mcp.WithString("content",
			mcp.Description("The full new note content"),
			mcp.Required(),
		),
	)
}

func writeNoteHandler(store ports.NoteStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content := req.GetString("content", "")
		if err := store.Save(content); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("saved"), nil
	}
}

// --- note_info ---

func noteInfoTool() mcp.Tool {
	return mcp.NewTool("note_info",
		mcp.WithDescription("Get note metadata: derived title, size, and storage location."),
	)
}

func noteInfoHandler(store ports.NoteStore) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := store.Load()
		if err != nil {
			return toolError(err)
		}
		stats := domain.Summarize(content)
		title := domain.Title(content)
		if title == "" {
			title = "(empty)"
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"title: %s\nbytes: %d\nlines: %d\nstore: %s",
			title, stats.Bytes, stats.Lines, store.Path())), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
