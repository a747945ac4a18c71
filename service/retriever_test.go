package service

import (
	"context"
	"errors"
	"testing"

	"pdfrag/store"
	"pdfrag/types"
)

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int { return 3 }

type fakeStore struct {
	hits        []types.SearchHit
	searchErr   error
	collections map[string]int
	upserted    []types.Chunk
}

func (f *fakeStore) EnsureCollection(ctx context.Context, name string, vectorSize int) error {
	if f.collections == nil {
		f.collections = make(map[string]int)
	}
	f.collections[name] = vectorSize
	return nil
}

func (f *fakeStore) UpsertChunks(ctx context.Context, collection string, chunks []types.Chunk) error {
	f.upserted = append(f.upserted, chunks...)
	return nil
}

func (f *fakeStore) Search(ctx context.Context, collection string, queryVec []float32, limit int) ([]types.SearchHit, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.hits, nil
}

func TestSearchThresholdFiltersAndOrders(t *testing.T) {
	st := &fakeStore{hits: []types.SearchHit{
		{ID: "a", Score: 0.5},
		{ID: "b", Score: 0.29},
		{ID: "c", Score: 0.9},
	}}
	r := NewRetriever(st, &fakeEmbedder{})

	threshold := 0.3
	hits, err := r.Search(context.Background(), "docs", "price?", 5, &threshold)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(hits))
	}
	if hits[0].Score != 0.9 || hits[1].Score != 0.5 {
		t.Errorf("Expected scores [0.9 0.5], got [%v %v]", hits[0].Score, hits[1].Score)
	}
}

func TestSearchNoThresholdKeepsEverything(t *testing.T) {
	st := &fakeStore{hits: []types.SearchHit{
		{ID: "a", Score: 0.9},
		{ID: "b", Score: 0.01},
	}}
	r := NewRetriever(st, &fakeEmbedder{})

	hits, err := r.Search(context.Background(), "docs", "q?", 5, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("Expected 2 hits, got %d", len(hits))
	}
}

func TestSearchTruncatesToLimit(t *testing.T) {
	st := &fakeStore{hits: []types.SearchHit{
		{ID: "a", Score: 0.9},
		{ID: "b", Score: 0.8},
		{ID: "c", Score: 0.7},
	}}
	r := NewRetriever(st, &fakeEmbedder{})

	hits, err := r.Search(context.Background(), "docs", "q?", 2, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(hits))
	}
	if hits[0].ID != "a" || hits[1].ID != "b" {
		t.Errorf("Expected top two hits, got %v", hits)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	r := NewRetriever(&fakeStore{}, &fakeEmbedder{})

	threshold := 0.99
	hits, err := r.Search(context.Background(), "docs", "q?", 5, &threshold)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Expected no hits, got %d", len(hits))
	}
}

func TestSearchPropagatesCollectionNotFound(t *testing.T) {
	st := &fakeStore{searchErr: store.ErrCollectionNotFound}
	r := NewRetriever(st, &fakeEmbedder{})

	_, err := r.Search(context.Background(), "missing", "q?", 5, nil)
	if !errors.Is(err, store.ErrCollectionNotFound) {
		t.Errorf("Expected ErrCollectionNotFound, got %v", err)
	}
}

func TestSearchEmbedderFailureAbortsBeforeStore(t *testing.T) {
	embErr := errors.New("provider down")
	st := &fakeStore{hits: []types.SearchHit{{ID: "a", Score: 0.9}}}
	r := NewRetriever(st, &fakeEmbedder{err: embErr})

	_, err := r.Search(context.Background(), "docs", "q?", 5, nil)
	if !errors.Is(err, embErr) {
		t.Errorf("Expected embedder error, got %v", err)
	}
}
