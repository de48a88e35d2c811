// Package anthropic implements provider.Client over the Anthropic Messages
// API with tool_use / tool_result blocks.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/rgbkrk/chatlab/message"
	"github.com/rgbkrk/chatlab/provider"
)

// Options configure the Anthropic client adapter.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Client wraps the Anthropic Messages API behind provider.Client.
type Client struct {
	client *anthropic.Client
	opts   Options
}

// New creates a Client using the official SDK client. An empty APIKey
// defers to the SDK's environment lookup.
func New(optFns ...func(o *Options)) *Client {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	c := anthropic.NewClient(clientOpts...)
	return &Client{client: &c, opts: opts}
}

// NewFromClient creates a Client from an existing SDK client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Client {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

// Complete implements provider.Client with a single non-streaming call.
func (c *Client) Complete(ctx context.Context, req provider.Request) (provider.Reply, error) {
	params := anthropic.MessageNewParams{
		Model:       c.opts.Model,
		Messages:    buildMessages(req.Messages),
		MaxTokens:   c.opts.MaxTokens,
		Temperature: anthropic.Float(c.opts.Temperature),
	}
	if system := systemBlocks(req.Messages); len(system) > 0 {
		params.System = system
	}
	if len(req.Functions) > 0 {
		params.Tools = buildTools(req.Functions)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return provider.Reply{}, fmt.Errorf("anthropic api error: %w", err)
	}

	reply := provider.Reply{FinishReason: string(resp.StopReason)}
	if resp.Usage.InputTokens > 0 || resp.Usage.OutputTokens > 0 {
		reply.Usage = &provider.Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		}
	}
	var text string
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			text += block.AsText().Text
		case "tool_use":
			tu := block.AsToolUse()
			args := ""
			if tu.Input != nil {
				if b, err := json.Marshal(tu.Input); err == nil {
					args = string(b)
				}
			}
			reply.FunctionCall = &message.FunctionCall{ID: tu.ID, Name: tu.Name, Arguments: args}
			return reply, nil
		}
	}
	reply.Text = text
	return reply, nil
}

// Info implements provider.Client.
func (c *Client) Info() provider.Info {
	return provider.Info{Name: string(c.opts.Model), Provider: "anthropic", SupportsFunction: true}
}

// systemBlocks collects system and narration content; Anthropic takes
// system instructions out of band rather than as transcript messages.
func systemBlocks(msgs []message.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam
	for _, m := range msgs {
		if (m.Role == message.RoleSystem || m.Role == message.RoleNarration) && m.Content != "" {
			blocks = append(blocks, anthropic.TextBlockParam{Text: m.Content})
		}
	}
	return blocks
}

// buildMessages converts the transcript into Anthropic messages. Function
// call directives become assistant tool_use blocks; their results become
// user tool_result blocks, as the Messages API requires.
func buildMessages(msgs []message.Message) []anthropic.MessageParam {
	var out []anthropic.MessageParam
	for _, m := range msgs {
		switch m.Role {
		case message.RoleSystem, message.RoleNarration:
			continue
		case message.RoleUser:
			if m.Content != "" {
				out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
			}
		case message.RoleAssistant:
			if m.Content != "" {
				out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
			}
		case message.RoleFunctionCall:
			if m.FunctionCall == nil {
				continue
			}
			var input any
			if m.FunctionCall.Arguments != "" {
				if err := json.Unmarshal([]byte(m.FunctionCall.Arguments), &input); err != nil {
					input = m.FunctionCall.Arguments
				}
			}
			out = append(out, anthropic.NewAssistantMessage(
				anthropic.NewToolUseBlock(m.FunctionCall.ID, input, m.FunctionCall.Name),
			))
		case message.RoleFunctionResult:
			out = append(out, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(m.CallID(), m.Content, m.IsError),
			))
		default:
			if m.Content != "" {
				out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
			}
		}
	}
	return out
}

// buildTools converts function declarations into Anthropic tool params.
func buildTools(fns []provider.FunctionDefinition) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, len(fns))
	for i, fn := range fns {
		inputSchema := anthropic.ToolInputSchemaParam{Type: constant.Object("object")}
		if props, ok := fn.Parameters["properties"]; ok {
			inputSchema.Properties = props
		}
		if req, ok := fn.Parameters["required"]; ok {
			inputSchema.Required = toStringSlice(req)
		}
		tools[i] = anthropic.ToolUnionParamOfTool(inputSchema, fn.Name)
	}
	return tools
}

func toStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}
