package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/threemachines/i-ching/internal/corpus"
)

func TestOpenSeedsInMemoryStore(t *testing.T) {
	store, err := Open("")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for number := 1; number <= 64; number++ {
		entry, err := store.Hexagram(ctx, number)
		if err != nil {
			t.Fatalf("hexagram %d: %v", number, err)
		}
		if entry.Number != number {
			t.Fatalf("hexagram %d carries number %d", number, entry.Number)
		}
		if entry.Name == "" || entry.Judgment == "" {
			t.Fatalf("hexagram %d is missing text: %+v", number, entry)
		}
	}
}

func TestStoreLookups(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	entry, err := store.Hexagram(ctx, 32)
	if err != nil {
		t.Fatalf("hexagram 32: %v", err)
	}
	if entry.LowerTrigram != "wind" || entry.UpperTrigram != "thunder" {
		t.Fatalf("hexagram 32 trigrams = %q over %q", entry.UpperTrigram, entry.LowerTrigram)
	}

	trigram, err := store.Trigram(ctx, "heaven")
	if err != nil {
		t.Fatalf("trigram heaven: %v", err)
	}
	if trigram.Lines != "111" {
		t.Fatalf("heaven line pattern = %q, want 111", trigram.Lines)
	}

	if _, err := store.LineText(ctx, 1, 1); err != nil {
		t.Fatalf("hexagram 1 line 1: %v", err)
	}

	if _, err := store.Hexagram(ctx, 65); !errors.Is(err, corpus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for hexagram 65, got %v", err)
	}
	if _, err := store.LineText(ctx, 3, 1); !errors.Is(err, corpus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for uncollected line text, got %v", err)
	}
	if _, err := store.Trigram(ctx, "metal"); !errors.Is(err, corpus.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown trigram, got %v", err)
	}
}

func TestOpenIsIdempotentOnExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	if _, err := second.Hexagram(context.Background(), 1); err != nil {
		t.Fatalf("hexagram 1 after reopen: %v", err)
	}
}
