// Package ai defines the core types for streamed completions: events,
// requests, and the provider interface.
package ai

import "context"

// FinishReasonStop is the server-supplied signal for normal completion.
const FinishReasonStop = "stop"

// Event is one incremental unit of a streamed completion.
type Event struct {
	// Text is the fragment to append to output. May be empty.
	Text string

	// FinishReason is empty until the server reports why generation
	// stopped ("stop", "length", ...).
	FinishReason string
}

// CompletionRequest describes a single prompt exchange. One request maps
// to one connection; nothing is retained between requests.
type CompletionRequest struct {
	Model  string
	Prompt string
}

// Provider streams a completion for one request.
//
// Complete returns a channel of events in arrival order and a wait
// function that blocks until the stream is drained and reports the
// terminal error, if any. The channel is closed when the stream ends.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (<-chan Event, func() error)
}
