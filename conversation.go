package chatlab

import (
	"context"
	"errors"
	"sync"

	"github.com/rgbkrk/chatlab/config"
	"github.com/rgbkrk/chatlab/display"
	"github.com/rgbkrk/chatlab/logging"
	"github.com/rgbkrk/chatlab/message"
	"github.com/rgbkrk/chatlab/provider"
	"github.com/rgbkrk/chatlab/registry"
)

// Renderer formats a single message for presentation. *display.Markdown
// satisfies it; rendering never mutates conversation state.
type Renderer interface {
	Render(msg message.Message) (string, error)
}

// Options configure a Conversation.
type Options struct {
	// Messages seed the transcript in order (typically a system message).
	Messages []message.Message

	// Client is the remote model client. Required before Submit.
	Client provider.Client

	// Registry resolves model-issued function calls. Nil disables
	// function calling; a directive arriving anyway is a
	// misconfiguration surfaced to the caller.
	Registry *registry.FunctionRegistry

	// MaxRounds bounds the resolution loop per Submit call.
	MaxRounds int

	// Renderer formats messages for Render. Defaults to a markdown
	// terminal renderer created lazily on first use.
	Renderer Renderer

	// Logger receives structured submit-loop events. Defaults to no-op.
	Logger logging.Logger
}

// Conversation owns an ordered, append-only transcript of messages and
// drives it against a remote model. Submit blocks until the model produces
// a plain text reply, resolving any function call directives along the way.
//
// Historical messages are never reordered or removed; failures leave the
// transcript intact up to the point of failure. A mutex serializes
// concurrent Submit calls, though the intended use is a single logical
// caller at a time.
type Conversation struct {
	mu        sync.Mutex
	messages  []message.Message
	client    provider.Client
	registry  *registry.FunctionRegistry
	renderer  Renderer
	logger    logging.Logger
	maxRounds int
}

// NewConversation creates a Conversation. It does not contact the remote
// model.
//
//	conv := chatlab.NewConversation(func(o *chatlab.Options) {
//	    o.Client = client
//	    o.Messages = []chatlab.Message{chatlab.System("You are terse.")}
//	})
func NewConversation(optFns ...func(o *Options)) *Conversation {
	opts := Options{
		MaxRounds: config.Default().MaxRounds,
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = config.Default().MaxRounds
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	msgs := make([]message.Message, len(opts.Messages))
	copy(msgs, opts.Messages)

	return &Conversation{
		messages:  msgs,
		client:    opts.Client,
		registry:  opts.Registry,
		renderer:  opts.Renderer,
		logger:    opts.Logger,
		maxRounds: opts.MaxRounds,
	}
}

// Submit appends text as a user message and drives the resolution loop
// until the model replies in plain text, returning that assistant message.
// Function call directives are resolved through the attached registry and
// their results fed back to the model.
func (c *Conversation) Submit(ctx context.Context, text string) (message.Message, error) {
	return c.SubmitMessages(ctx, message.User(text))
}

// SubmitMessages appends the given messages and runs the resolution loop.
// It allows submitting pre-tagged content (narration, a prepared assistant
// turn) instead of a plain user string.
func (c *Conversation) SubmitMessages(ctx context.Context, msgs ...message.Message) (message.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return message.Message{}, ErrNoClient
	}
	c.messages = append(c.messages, msgs...)
	return c.resolve(ctx)
}

// resolve runs the submit-time cycle: send the transcript, receive either
// a plain reply (terminal) or a function call directive (resolve and loop).
// Caller must hold c.mu.
func (c *Conversation) resolve(ctx context.Context) (message.Message, error) {
	var defs []provider.FunctionDefinition
	if c.registry != nil {
		defs = c.registry.Definitions()
	}

	for round := 1; round <= c.maxRounds; round++ {
		req := provider.Request{Messages: c.snapshot(), Functions: defs}

		reply, err := c.client.Complete(ctx, req)
		if err != nil {
			c.logger.Error("conversation.complete.error", "round", round, "error", err.Error())
			return message.Message{}, &RemoteError{Err: err}
		}

		if !reply.IsFunctionCall() {
			assistant := message.Assistant(reply.Text)
			c.messages = append(c.messages, assistant)
			c.logger.Debug("conversation.reply", "round", round, "length", len(assistant.Content))
			return assistant, nil
		}

		call := *reply.FunctionCall
		c.messages = append(c.messages, message.FunctionCallMessage(call))
		c.logger.Debug("conversation.function_call", "round", round, "function", call.Name, "call_id", call.ID)

		if c.registry == nil {
			return message.Message{}, ErrNoRegistry
		}

		result, err := c.registry.Resolve(ctx, call)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return message.Message{}, err
			}
			// Recoverable resolution failures go back to the model
			// in-band so it can self-correct.
			result = message.FunctionError(call.Name, err).WithCallID(call.ID)
		}
		c.messages = append(c.messages, result)
	}

	return message.Message{}, &RoundLimitError{Rounds: c.maxRounds}
}

// Append adds messages to the transcript without contacting the model.
func (c *Conversation) Append(msgs ...message.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msgs...)
}

// Messages returns a defensive copy of the transcript.
func (c *Conversation) Messages() []message.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Len returns the current transcript length.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Render formats every transcript message through the display adapter.
// Calling it twice without an intervening Submit yields identical output.
func (c *Conversation) Render() ([]string, error) {
	c.mu.Lock()
	msgs := c.snapshot()
	renderer := c.renderer
	c.mu.Unlock()

	if renderer == nil {
		md, err := display.NewMarkdown()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.renderer == nil {
			c.renderer = md
		}
		renderer = c.renderer
		c.mu.Unlock()
	}

	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		s, err := renderer.Render(m)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Conversation) snapshot() []message.Message {
	msgs := make([]message.Message, len(c.messages))
	copy(msgs, c.messages)
	return msgs
}
