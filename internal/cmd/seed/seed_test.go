package seed

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/threemachines/i-ching/internal/corpus/sqlite"
)

func TestParseConfigRequiresPath(t *testing.T) {
	t.Setenv("ICHING_DB_PATH", "")

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error for empty db path")
	}
}

func TestRunSeedsDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iching.db")
	cfg := Config{DBPath: path}

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("reopen seeded db: %v", err)
	}
	defer store.Close()

	entry, err := store.Hexagram(context.Background(), 64)
	if err != nil {
		t.Fatalf("hexagram 64: %v", err)
	}
	if entry.Name == "" {
		t.Fatalf("hexagram 64 entry incomplete: %+v", entry)
	}
}
