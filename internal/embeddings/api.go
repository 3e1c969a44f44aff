package embeddings

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

const DefaultModel = "all-MiniLM-L6-v2"

// ApiOptions configures the HTTP embedding client.
type ApiOptions struct {
	URL   string
	Model string
	// Timeout bounds a single request. Zero disables it.
	Timeout time.Duration
	// BreakerFailures is the number of consecutive failures that opens the breaker.
	BreakerFailures uint32
	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration
	Logger         zerolog.Logger
}

// ApiEmbedder calls an external sentence-embedding service.
type ApiEmbedder struct {
	url     string
	model   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[][]float32]
}

func NewApi(url string) *ApiEmbedder {
	return NewApiWithOptions(ApiOptions{URL: url, Logger: zerolog.Nop()})
}

func NewApiWithOptions(opts ApiOptions) *ApiEmbedder {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerTimeout == 0 {
		opts.BreakerTimeout = 30 * time.Second
	}
	logger := opts.Logger
	failures := opts.BreakerFailures
	settings := gobreaker.Settings{
		Name:        "embeddings",
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("embedding circuit breaker state changed")
		},
	}
	return &ApiEmbedder{
		url:     opts.URL,
		model:   opts.Model,
		client:  &http.Client{Timeout: opts.Timeout},
		breaker: gobreaker.NewCircuitBreaker[[][]float32](settings),
	}
}

func (e *ApiEmbedder) ModelName() string { return e.model }

func (e *ApiEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	embeddings, err := e.breaker.Execute(func() ([][]float32, error) {
		return e.embedRequest(ctx, texts)
	})
	if err != nil {
		return nil, err
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: sent %d texts, got %d vectors", ErrEmptyResponse, len(texts), len(embeddings))
	}
	dim := len(embeddings[0])
	for _, v := range embeddings {
		if len(v) != dim {
			return nil, ErrDimensionMismatch
		}
	}
	return embeddings, nil
}

func (e *ApiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

type embedRequest struct {
	Sentences []string `json:"sentences"`
	Model     string   `json:"model,omitempty"`
}

func (e *ApiEmbedder) embedRequest(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(&embedRequest{Sentences: texts, Model: e.model})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	response, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = response.Body.Close() }()
	if response.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return nil, fmt.Errorf("embedding service returned %s: %s", response.Status, bytes.TrimSpace(msg))
	}
	var embeddings [][]float32
	if err := json.NewDecoder(response.Body).Decode(&embeddings); err != nil {
		return nil, fmt.Errorf("decode embeddings: %w", err)
	}
	return embeddings, nil
}
