// Package seed materializes the embedded corpus into a sqlite database file.
package seed

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/threemachines/i-ching/internal/corpus/sqlite"
	"github.com/threemachines/i-ching/internal/platform/config"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"ICHING_DB_PATH" envDefault:"iching.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "corpus database path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		return Config{}, fmt.Errorf("database path is required")
	}
	return cfg, nil
}

// Run opens the database, which applies migrations and seeds the corpus
// when the tables are empty.
func Run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open corpus store: %w", err)
	}
	defer store.Close()

	// A hit on hexagram 1 proves the seed landed.
	if _, err := store.Hexagram(ctx, 1); err != nil {
		return fmt.Errorf("verify seeded corpus: %w", err)
	}

	log.Printf("corpus ready at %s", cfg.DBPath)
	return nil
}
