// Package openai implements the ai.Provider interface for the
// OpenAI-compatible completions endpoint exposed by local inference
// servers (Ollama, llama.cpp server, LM Studio, …).
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/llmq-dev/llmq/pkg/ai"
	"github.com/llmq-dev/llmq/pkg/ai/sse"
)

const defaultBaseURL = "http://127.0.0.1:11434"

// Provider streams completions from an OpenAI-compatible server.
type Provider struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a Provider. Pass "" for baseURL to use the local Ollama
// default. The client has no timeout: a stalled server stalls the
// invocation unless the caller bounds the context.
func New(baseURL string) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

func (p *Provider) Name() string { return "openai" }

// ---------------------------------------------------------------------------
// Wire types
// ---------------------------------------------------------------------------

type wireRequest struct {
	Model     string `json:"model"`
	KeepAlive int    `json:"keep_alive"`
	Prompt    string `json:"prompt"`
	Stream    bool   `json:"stream"`
}

type chunkChoice struct {
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason"`
}

type streamChunk struct {
	Choices []chunkChoice `json:"choices"`
}

// ---------------------------------------------------------------------------
// Stream implementation
// ---------------------------------------------------------------------------

// Complete sends one prompt and streams the response. Events arrive on the
// returned channel in wire order; the wait function reports the terminal
// error after the channel closes.
func (p *Provider) Complete(ctx context.Context, req ai.CompletionRequest) (<-chan ai.Event, func() error) {
	events := make(chan ai.Event, 64)
	var finalErr error

	done := make(chan struct{})

	go func() {
		defer close(events)
		defer close(done)
		finalErr = p.stream(ctx, req, events)
	}()

	wait := func() error {
		<-done
		return finalErr
	}

	return events, wait
}

func (p *Provider) stream(ctx context.Context, req ai.CompletionRequest, events chan<- ai.Event) error {
	body, _ := json.Marshal(wireRequest{
		Model:     req.Model,
		KeepAlive: -1, // keep the model loaded between invocations
		Prompt:    req.Prompt,
		Stream:    true,
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/completions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	log.Debug().
		Str("request_id", requestID).
		Str("url", httpReq.URL.String()).
		Str("model", req.Model).
		Msg("sending completion request")

	resp, err := p.HTTPClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openai: HTTP %d: %s", resp.StatusCode, string(b))
	}

	reader := sse.NewReader(resp.Body)

	for {
		payload, err := reader.Next()
		if err == io.EOF {
			// Stream exhausted without a stop event: implicit success.
			return nil
		}
		if errors.Is(err, sse.ErrNoData) {
			log.Debug().Str("request_id", requestID).Str("line", payload).Msg("skipping line without data field")
			continue
		}
		if err != nil {
			return fmt.Errorf("openai: read stream: %w", err)
		}
		if payload == "[DONE]" {
			return nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			log.Debug().Str("request_id", requestID).Err(err).Msg("skipping unparseable event")
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		choice := chunk.Choices[0]
		select {
		case events <- ai.Event{Text: choice.Text, FinishReason: choice.FinishReason}:
		case <-ctx.Done():
			return ctx.Err()
		}

		if choice.FinishReason == ai.FinishReasonStop {
			return nil
		}
	}
}
