package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "stickpad/internal/adapters/mcp"
	"stickpad/internal/adapters/notestore"
	"stickpad/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("stickpad-mcp: %v", err)
	}

	store, closeStore, err := notestore.Open(cfg)
	if err != nil {
		log.Fatalf("stickpad-mcp: %v", err)
	}
	defer closeStore()

	mcpServer := server.NewMCPServer(
		"stickpad-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterNoteTools(mcpServer, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("stickpad-mcp: %v", err)
	}
}
