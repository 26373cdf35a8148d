package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/pixelfont-mcp/internal/config"
	"github.com/ironsheep/pixelfont-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pixelfont-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("pixelfont-mcp - MCP server for reading pixel font text")
			fmt.Println()
			fmt.Println("Usage: pixelfont-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PIXELFONT_MCP_LOG_LEVEL=debug          Log level (debug, info, warn, error)")
			fmt.Println("  PIXELFONT_MCP_FONT_DIRS=/a,/b          Directories of font JSON files to preload")
			fmt.Println("  PIXELFONT_MCP_MAX_SEARCH_AREA=4096      Pixel limit for font_find_* search rectangles")
			fmt.Println("  PIXELFONT_MCP_DEBUG_SCORES=1           Record candidate scores for font_debug_scores")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg := config.Load()

	// stdout is for MCP protocol
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Debug("starting", "version", Version, "built", BuildTime, "commit", GitCommit)

	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
