package store

import (
	"context"
	"fmt"
	"log"

	"pdfrag/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool: pool,
	}, nil
}

func (p *PostgresStore) Init(ctx context.Context, vectorSize int) error {
	query := fmt.Sprintf(`
	CREATE EXTENSION IF NOT EXISTS vector;

	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		vector_size INT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS chunks (
		id UUID PRIMARY KEY,
		collection TEXT NOT NULL REFERENCES collections(name),
		filename TEXT NOT NULL,
		page_number INT NOT NULL,
		sequence_index INT NOT NULL,
		chunk_total INT NOT NULL,
		content TEXT NOT NULL,
		embedding vector(%d)
	);

	-- Индекс для быстрого поиска по вектору
	CREATE INDEX IF NOT EXISTS idx_chunks_embedding ON chunks USING ivfflat (embedding vector_cosine_ops)
	WITH (lists = 100);

	CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks(collection);
	`, vectorSize)

	_, err := p.pool.Exec(ctx, query)
	return err
}

// EnsureCollection creates the collection if it is absent and is a no-op
// otherwise. ON CONFLICT DO NOTHING keeps it safe under concurrent uploads
// racing on the same name.
func (p *PostgresStore) EnsureCollection(ctx context.Context, name string, vectorSize int) error {
	query := `INSERT INTO collections (name, vector_size) VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING`

	tag, err := p.pool.Exec(ctx, query, name, vectorSize)
	if err != nil {
		return &ProvisionError{Collection: name, Err: err}
	}
	if tag.RowsAffected() > 0 {
		log.Printf("[STORE] Created collection %q (vector size %d)", name, vectorSize)
	}
	return nil
}

// UpsertChunks writes the whole batch in one transaction: either every
// chunk is persisted or none is. Chunks without an id get a fresh one.
func (p *PostgresStore) UpsertChunks(ctx context.Context, collection string, chunks []types.Chunk) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return &WriteError{Collection: collection, Err: err}
	}
	defer tx.Rollback(ctx)

	query := `
	INSERT INTO chunks (id, collection, filename, page_number, sequence_index, chunk_total, content, embedding)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		filename = EXCLUDED.filename,
		page_number = EXCLUDED.page_number,
		sequence_index = EXCLUDED.sequence_index,
		chunk_total = EXCLUDED.chunk_total,
		content = EXCLUDED.content,
		embedding = EXCLUDED.embedding
	`

	for i := range chunks {
		id := chunks[i].ID
		if id == uuid.Nil {
			id = uuid.New()
		}

		_, err := tx.Exec(ctx, query,
			id,
			collection,
			chunks[i].Filename,
			chunks[i].PageNumber,
			chunks[i].SequenceIndex,
			chunks[i].ChunkTotal,
			chunks[i].Text,
			pgvector.NewVector(chunks[i].Embedding),
		)
		if err != nil {
			return &WriteError{Collection: collection, Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &WriteError{Collection: collection, Err: err}
	}

	log.Printf("[STORE] Upserted %d chunks into collection %q", len(chunks), collection)
	return nil
}

// Search returns the limit nearest chunks of one collection, highest
// similarity first. Score is 1 - cosine distance.
func (p *PostgresStore) Search(ctx context.Context, collection string, queryVec []float32, limit int) ([]types.SearchHit, error) {
	exists, err := p.collectionExists(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("collection %q: %w", collection, ErrCollectionNotFound)
	}

	query := `
		SELECT id, filename, page_number, sequence_index, content,
		       1-(embedding <=> $1) as score
		FROM chunks
		WHERE collection = $2 AND embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $3
	`
	rows, err := p.pool.Query(ctx, query, pgvector.NewVector(queryVec), collection, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // Обязательно закрываем rows для освобождения соединения

	var hits []types.SearchHit
	for rows.Next() {
		var hit types.SearchHit
		var id uuid.UUID
		if err := rows.Scan(
			&id,
			&hit.Filename,
			&hit.PageNumber,
			&hit.SequenceIndex,
			&hit.Text,
			&hit.Score); err != nil {
			return nil, err
		}
		hit.ID = id.String()

		log.Printf("[SEARCH] Found chunk: %s, page %d, score %.4f", hit.ID, hit.PageNumber, hit.Score)
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

func (p *PostgresStore) collectionExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := p.pool.QueryRow(ctx, "SELECT 1 FROM collections WHERE name = $1", name).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close закрывает пул подключений
func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
		log.Println("Postgres connection pool is closed")
	}
	return nil
}
