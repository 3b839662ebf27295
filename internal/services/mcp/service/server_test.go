package service

import (
	"context"
	"testing"

	"github.com/threemachines/i-ching/internal/corpus"
)

type corpusSource struct {
	data *corpus.Data
}

func (s corpusSource) Hexagram(_ context.Context, number int) (corpus.Hexagram, error) {
	return s.data.Hexagram(number)
}

func (s corpusSource) LineText(_ context.Context, number, position int) (string, error) {
	return s.data.LineText(number, position)
}

func (s corpusSource) Trigram(_ context.Context, name string) (corpus.Trigram, error) {
	return s.data.Trigram(name)
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestNewRegistersServer(t *testing.T) {
	data, err := corpus.Load()
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}

	server, err := New(corpusSource{data: data})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if server == nil {
		t.Fatal("expected a server")
	}
}
