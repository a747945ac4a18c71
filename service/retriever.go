package service

import (
	"context"
	"log"
	"sort"

	"pdfrag/model"
	"pdfrag/store"
	"pdfrag/types"
)

type Retriever struct {
	store    store.VectorStorer
	embedder model.EmbedderInterface
}

func NewRetriever(storer store.VectorStorer, embedder model.EmbedderInterface) *Retriever {
	return &Retriever{
		store:    storer,
		embedder: embedder,
	}
}

// Search embeds the query, runs a similarity search against one collection
// and returns up to limit hits above the threshold, highest score first.
// An empty result is not an error. A collection that was never created is:
// the query path does not provision collections the way uploads do.
func (r *Retriever) Search(ctx context.Context, collection, query string, limit int, scoreThreshold *float64) ([]types.SearchHit, error) {
	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := r.store.Search(ctx, collection, queryVec, limit)
	if err != nil {
		return nil, err
	}

	hits = filterHits(hits, scoreThreshold)

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func filterHits(hits []types.SearchHit, scoreThreshold *float64) []types.SearchHit {
	if scoreThreshold == nil {
		return hits
	}
	result := make([]types.SearchHit, 0, len(hits))
	for _, hit := range hits {
		if hit.Score >= *scoreThreshold {
			result = append(result, hit)
		} else {
			log.Printf("[FILTER] Dropped hit with score=%.4f (below %.2f)", hit.Score, *scoreThreshold)
		}
	}
	return result
}
