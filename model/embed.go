package model

import (
	"context"
	"fmt"
)

// EmbedderInterface определяет интерфейс для создания эмбеддингов
type EmbedderInterface interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// ProviderError reports a failure of the embedding provider: transport
// error, rate limit or a rejected input. It always aborts the enclosing
// upload or query operation.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
