// Helios9: Project Management MCP Server
//
// An MCP server that gives AI agents (Claude Code, Cursor, Codex, and
// any other MCP host) structured access to a Helios9 workspace:
// projects, initiatives, tasks, documents, milestones, and AI
// conversation logs.
//
// Usage:
//
//	helios9 serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jakedx6/helios9-mcp/internal/config"
	h9server "github.com/jakedx6/helios9-mcp/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("helios9 v%s\n", h9server.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	// Logs go to stderr — stdout is the MCP transport and must stay clean.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	s, err := h9server.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Graceful shutdown on interrupt.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutting down")
		os.Exit(0)
	}()

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Helios9 v%s — Project Management MCP Server

Usage:
  helios9 serve [flags]   Start the MCP server (stdio transport)

Flags:
  -api-key    Backend API key    (or %s)
  -api-url    Backend base URL   (or %s)
  -workspace  Workspace id for service keys (or %s)
  -timeout    Per-request backend timeout (default 15s)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "helios9": {
        "command": "helios9",
        "args": ["serve"],
        "env": {
          "HELIOS9_API_KEY": "h9s_...",
          "HELIOS9_API_URL": "https://api.helios9.app",
          "HELIOS9_WORKSPACE_ID": "your-workspace-id"
        }
      }
    }
  }
`, h9server.Version, config.EnvAPIKey, config.EnvAPIURL, config.EnvWorkspaceID)
}
