package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"
)

const (
	defaultBaseURL    = "https://api.openai.com/v1"
	defaultModel      = "text-embedding-3-small"
	defaultDimension  = 1536
	maxTokensPerBatch = 8000
	maxTextsPerBatch  = 64
)

// OpenAIEmbedder реализует создание эмбеддингов через OpenAI-совместимый API
type OpenAIEmbedder struct {
	baseURL   string
	apiKey    string
	model     string
	dimension int
	client    *http.Client
	encoder   *tiktoken.Tiktoken
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func NewOpenAIEmbedder() *OpenAIEmbedder {
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	embModel := os.Getenv("EMBEDDING_MODEL")
	if embModel == "" {
		embModel = defaultModel
	}
	dimension := defaultDimension
	if v, err := strconv.Atoi(os.Getenv("EMBEDDING_DIM")); err == nil && v > 0 {
		dimension = v
	}

	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		log.Printf("[EMBEDDER] tiktoken unavailable, batches fall back to text count: %v", err)
	}

	log.Printf("[EMBEDDER] Using model %s (dimension: %d)", embModel, dimension)

	return &OpenAIEmbedder{
		baseURL:   baseURL,
		apiKey:    os.Getenv("OPENAI_API_KEY"),
		model:     embModel,
		dimension: dimension,
		client:    &http.Client{Timeout: 60 * time.Second},
		encoder:   enc,
	}
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// Embed создает эмбеддинг для одного текста
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts, splitting them into provider-sized batches
// and dispatching the batches concurrently. Any batch failure fails the
// whole call: the caller must never see a partially embedded document.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	batches := batchTexts(texts, e.countTokens, maxTokensPerBatch, maxTextsPerBatch)
	log.Printf("[EMBEDDER] Embedding %d texts in %d batch(es)", len(texts), len(batches))

	vectors := make([][]float32, len(texts))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, batch := range batches {
		wg.Add(1)
		go func(batch []int) {
			defer wg.Done()

			inputs := make([]string, len(batch))
			for i, idx := range batch {
				inputs[i] = texts[idx]
			}

			out, err := e.requestEmbeddings(ctx, inputs)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for i, idx := range batch {
				vectors[idx] = out[i]
			}
		}(batch)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

func (e *OpenAIEmbedder) requestEmbeddings(ctx context.Context, inputs []string) ([][]float32, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.model, Input: inputs})
	if err != nil {
		return nil, &ProviderError{Op: "marshal request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewBuffer(body))
	if err != nil {
		return nil, &ProviderError{Op: "create request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Op: "embeddings call", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			Op:  "embeddings call",
			Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &ProviderError{Op: "unmarshal response", Err: err}
	}
	if len(parsed.Data) != len(inputs) {
		return nil, &ProviderError{
			Op:  "embeddings call",
			Err: fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(parsed.Data)),
		}
	}

	vectors := make([][]float32, len(inputs))
	for _, item := range parsed.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, &ProviderError{
				Op:  "embeddings call",
				Err: fmt.Errorf("embedding index %d out of range", item.Index),
			}
		}
		vec := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vec[i] = float32(v)
		}
		vectors[item.Index] = vec
	}
	return vectors, nil
}

func (e *OpenAIEmbedder) countTokens(text string) int {
	if e.encoder == nil {
		return 1
	}
	return len(e.encoder.Encode(text, nil, nil))
}

// batchTexts groups text indices into batches that stay under both the
// token budget and the per-request text limit. A single oversized text
// still gets its own batch; the provider is the one to reject it.
func batchTexts(texts []string, countTokens func(string) int, maxTokens, maxTexts int) [][]int {
	var batches [][]int
	var current []int
	currentTokens := 0

	for i, text := range texts {
		tokens := countTokens(text)
		if len(current) > 0 && (currentTokens+tokens > maxTokens || len(current) >= maxTexts) {
			batches = append(batches, current)
			current = nil
			currentTokens = 0
		}
		current = append(current, i)
		currentTokens += tokens
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}
