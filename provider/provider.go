// Package provider defines the vendor-agnostic client abstraction a
// Conversation talks to. Concrete adapters (OpenAI, Anthropic) live in
// sub-packages so the core stays decoupled from vendor SDKs; MockClient
// supports tests without network access.
package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/rgbkrk/chatlab/message"
)

// FunctionDefinition declaratively exposes a callable function to the
// model. Parameters is a JSON Schema object (minimal subset expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request carries the full ordered transcript plus the set of declared
// functions the model may call.
type Request struct {
	Messages  []message.Message    `json:"messages"`
	Functions []FunctionDefinition `json:"functions,omitempty"`
}

// Usage captures token accounting reported by a provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Reply is a terminal model response: either plain assistant text or a
// function call directive (never both populated at once by adapters).
type Reply struct {
	Text         string                `json:"text,omitempty"`
	FunctionCall *message.FunctionCall `json:"function_call,omitempty"`
	FinishReason string                `json:"finish_reason,omitempty"`
	Usage        *Usage                `json:"usage,omitempty"`
}

// IsFunctionCall reports whether the model asked for a function execution
// instead of answering in text.
func (r Reply) IsFunctionCall() bool { return r.FunctionCall != nil }

// Info describes a client implementation.
type Info struct {
	Name             string `json:"name"`
	Provider         string `json:"provider"`
	SupportsFunction bool   `json:"supports_functions"`
}

// Client is the minimal interface a Conversation needs to drive generation.
// Complete blocks until the provider produces a terminal reply or fails.
type Client interface {
	Complete(ctx context.Context, req Request) (Reply, error)

	// Info returns metadata about the client implementation.
	Info() Info
}

// MockClient is an in-memory Client that plays back scripted replies in
// order. Useful for tests and offline demos.
type MockClient struct {
	mu      sync.Mutex
	replies []Reply
	errs    []error
	// Requests records every request received, for assertions.
	Requests []Request
}

// NewMockClient constructs an empty MockClient; queue replies with
// EnqueueText, EnqueueFunctionCall or EnqueueError.
func NewMockClient() *MockClient { return &MockClient{} }

// EnqueueText scripts a plain assistant text reply.
func (m *MockClient) EnqueueText(text string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, Reply{Text: text, FinishReason: "stop"})
	m.errs = append(m.errs, nil)
	return m
}

// EnqueueFunctionCall scripts a function call directive.
func (m *MockClient) EnqueueFunctionCall(id, name, arguments string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, Reply{
		FunctionCall: &message.FunctionCall{ID: id, Name: name, Arguments: arguments},
		FinishReason: "function_call",
	})
	m.errs = append(m.errs, nil)
	return m
}

// EnqueueError scripts a failed provider call.
func (m *MockClient) EnqueueError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, Reply{})
	m.errs = append(m.errs, err)
	return m
}

// Complete implements Client by dequeuing the next scripted reply. Running
// past the script is an error so tests fail loudly instead of hanging on
// an unexpected extra round.
func (m *MockClient) Complete(ctx context.Context, req Request) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if len(m.replies) == 0 {
		return Reply{}, fmt.Errorf("mock client: no scripted reply for request %d", len(m.Requests))
	}
	reply, err := m.replies[0], m.errs[0]
	m.replies = m.replies[1:]
	m.errs = m.errs[1:]
	if err != nil {
		return Reply{}, err
	}
	return reply, nil
}

// Info implements Client.
func (m *MockClient) Info() Info {
	return Info{Name: "mock", Provider: "mock", SupportsFunction: true}
}
