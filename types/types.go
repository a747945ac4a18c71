package types

import (
	"github.com/google/uuid"
)

// Chunk is the atomic retrievable unit: one Q&A pair or one standalone
// paragraph taken from a single PDF page.
type Chunk struct {
	ID            uuid.UUID // присваивается при записи в хранилище
	Collection    string
	Filename      string
	PageNumber    int // 1-based page the chunk came from
	SequenceIndex int // 1-based position among all chunks of the upload
	ChunkTotal    int // total chunks produced for the whole upload
	Text          string
	Embedding     []float32
}

// SearchHit is one ranked result of a similarity search. Score is a
// similarity (higher = more relevant), not a distance.
type SearchHit struct {
	ID            string  `json:"id"`
	Score         float64 `json:"score"`
	Filename      string  `json:"filename"`
	PageNumber    int     `json:"page_number"`
	Text          string  `json:"text"`
	SequenceIndex int     `json:"sequence_index"`
}

type UploadResponse struct {
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	Collection string `json:"collection"`
}

type QueryResponse struct {
	Query        string      `json:"query"`
	Collection   string      `json:"collection"`
	Results      []SearchHit `json:"results"`
	TotalResults int         `json:"total_results"`
}
