// Package mcp parses MCP command flags and runs the stdio server.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/threemachines/i-ching/internal/corpus/sqlite"
	"github.com/threemachines/i-ching/internal/platform/config"
	"github.com/threemachines/i-ching/internal/platform/otel"
	"github.com/threemachines/i-ching/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath string `env:"ICHING_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "corpus database path (empty for in-memory)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open corpus store: %w", err)
	}
	defer store.Close()

	return service.Run(ctx, store)
}
