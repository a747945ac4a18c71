package service

import (
	"context"
	"errors"
	"fmt"

	"pdfrag/model"
	"pdfrag/segment"
	"pdfrag/store"
)

// ErrNoChunks means the document produced no retrievable text at all.
var ErrNoChunks = errors.New("document produced no chunks")

type Ingestor struct {
	store    store.VectorStorer
	embedder model.EmbedderInterface
}

func NewIngestor(storer store.VectorStorer, embedder model.EmbedderInterface) *Ingestor {
	return &Ingestor{
		store:    storer,
		embedder: embedder,
	}
}

// Ingest segments the document, embeds every chunk and writes the batch
// into the collection, creating it first if needed. Returns the number of
// chunks written. Any embedding or store failure aborts the whole upload;
// there is no partial success.
func (s *Ingestor) Ingest(ctx context.Context, collection, filename string, pages []string) (int, error) {
	chunks := segment.Assemble(filename, pages)
	if len(chunks) == 0 {
		return 0, ErrNoChunks
	}
	fmt.Printf("[UPLOAD] %s: %d pages segmented into %d chunks\n", filename, len(pages), len(chunks))

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, err
	}
	for i := range chunks {
		chunks[i].Collection = collection
		chunks[i].Embedding = vectors[i]
	}

	if err := s.store.EnsureCollection(ctx, collection, s.embedder.Dimension()); err != nil {
		return 0, err
	}

	if err := s.store.UpsertChunks(ctx, collection, chunks); err != nil {
		return 0, err
	}

	fmt.Printf("[UPLOAD] %s: %d chunks stored in collection %q\n", filename, len(chunks), collection)
	return len(chunks), nil
}
