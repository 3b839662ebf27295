// Package iching parses CLI flags and runs a cast or a notation lookup.
package iching

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/threemachines/i-ching/internal/corpus/sqlite"
	"github.com/threemachines/i-ching/internal/divination"
	"github.com/threemachines/i-ching/internal/platform/config"
	"github.com/threemachines/i-ching/internal/platform/otel"
	"github.com/threemachines/i-ching/internal/platform/random"
	"github.com/threemachines/i-ching/internal/render"
)

// Config holds CLI command configuration.
type Config struct {
	DBPath   string `env:"ICHING_DB_PATH"`
	Format   string `env:"ICHING_FORMAT" envDefault:"full"`
	Question string
	Seed     string

	// Notation is the optional positional argument: a reading reference in
	// any supported notation. Empty means cast a fresh reading.
	Notation string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "corpus database path (empty for in-memory)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: brief, full, json, numbers, or motd")
	fs.StringVar(&cfg.Question, "question", "", "question to record with the reading")
	fs.StringVar(&cfg.Seed, "seed", "", "seed for a deterministic cast (empty for OS randomness)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if rest := fs.Args(); len(rest) > 0 {
		if len(rest) > 1 {
			return Config{}, fmt.Errorf("expected at most one reading argument, got %d", len(rest))
		}
		cfg.Notation = rest[0]
	}
	return cfg, nil
}

// resolveReading casts a fresh reading or resolves the configured notation.
func resolveReading(cfg Config) (divination.Reading, error) {
	if cfg.Notation != "" {
		return divination.Parse(cfg.Notation)
	}

	seed := int64(0)
	if cfg.Seed != "" {
		parsed, err := strconv.ParseInt(cfg.Seed, 10, 64)
		if err != nil {
			return divination.Reading{}, fmt.Errorf("parse seed %q: %w", cfg.Seed, err)
		}
		seed = parsed
	} else {
		generated, err := random.NewSeed()
		if err != nil {
			return divination.Reading{}, err
		}
		seed = generated
	}
	return divination.Cast(divination.CastRequest{Seed: seed})
}

// Run resolves a reading and writes the rendered output.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	shutdown, err := otel.Setup(ctx, "iching")
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

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	reading, err := resolveReading(cfg)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open corpus store: %w", err)
	}
	defer store.Close()

	output, err := render.Render(ctx, store, reading, cfg.Question, format)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, strings.TrimRight(output, "\n"))
	return nil
}
