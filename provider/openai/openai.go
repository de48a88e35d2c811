// Package openai implements provider.Client over the OpenAI Chat
// Completions API, including function/tool calling. It converts the
// transcript's role-tagged messages into the SDK's message format and
// normalizes tool call replies back into provider.Reply values.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/rgbkrk/chatlab/message"
	"github.com/rgbkrk/chatlab/provider"
)

// Options configure the OpenAI client adapter. Fields mirror a small subset
// of Chat Completion parameters; extend via functional options without
// breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Client wraps the OpenAI Chat Completions API behind provider.Client.
type Client struct {
	client *openai.Client
	opts   Options
}

// New creates a Client using the official SDK's default configuration
// (API key from the environment).
func New(optFns ...func(o *Options)) *Client {
	c := openai.NewClient()
	return NewFromClient(&c, optFns...)
}

// NewFromClient creates a Client from an existing SDK client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Client {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{client: client, opts: opts}
}

// Complete implements provider.Client with a single non-streaming
// completion call.
func (c *Client) Complete(ctx context.Context, req provider.Request) (provider.Reply, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req.Messages),
		Model:               c.opts.Model,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	}
	if len(req.Functions) > 0 {
		params.Tools = buildTools(req.Functions)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return provider.Reply{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return provider.Reply{}, fmt.Errorf("openai: no choices returned")
	}

	choice := resp.Choices[0]
	reply := provider.Reply{FinishReason: choice.FinishReason}
	if resp.Usage.TotalTokens > 0 {
		reply.Usage = &provider.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		}
	}
	if len(choice.Message.ToolCalls) > 0 {
		tc := choice.Message.ToolCalls[0]
		reply.FunctionCall = &message.FunctionCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		}
		return reply, nil
	}
	reply.Text = choice.Message.Content
	return reply, nil
}

// Info implements provider.Client.
func (c *Client) Info() provider.Info {
	return provider.Info{Name: c.opts.Model, Provider: "openai", SupportsFunction: true}
}

// buildMessages converts transcript messages into OpenAI chat messages.
// Function call directives become assistant tool call messages and their
// results tool messages keyed by call ID, preserving transcript order.
func buildMessages(msgs []message.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case message.RoleSystem, message.RoleNarration:
			out = append(out, openai.SystemMessage(m.Content))
		case message.RoleUser:
			out = append(out, openai.UserMessage(m.Content))
		case message.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		case message.RoleFunctionCall:
			if m.FunctionCall == nil {
				continue
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role: "assistant",
					ToolCalls: []openai.ChatCompletionMessageToolCallParam{{
						ID:   m.FunctionCall.ID,
						Type: "function",
						Function: openai.ChatCompletionMessageToolCallFunctionParam{
							Name:      m.FunctionCall.Name,
							Arguments: m.FunctionCall.Arguments,
						},
					}},
				},
			})
		case message.RoleFunctionResult:
			out = append(out, openai.ToolMessage(m.Content, m.CallID()))
		default:
			if m.Content != "" {
				out = append(out, openai.UserMessage(m.Content))
			}
		}
	}
	return out
}

// buildTools converts function declarations into OpenAI tool definitions.
func buildTools(fns []provider.FunctionDefinition) []openai.ChatCompletionToolParam {
	tools := make([]openai.ChatCompletionToolParam, len(fns))
	for i, fn := range fns {
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        fn.Name,
				Description: openai.String(fn.Description),
				Parameters:  fn.Parameters,
			},
		}
	}
	return tools
}
