// Package display renders transcript messages as formatted terminal text.
// Model replies are treated as markdown and rendered through glamour;
// function call directives and results are shown as fenced code so the
// round-trip stays readable in a notebook or terminal session.
package display

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/rgbkrk/chatlab/message"
)

// Options configure a Markdown renderer.
type Options struct {
	Width int
	Style string // glamour style name, e.g. "dark", "light", "notty"
}

// Markdown renders messages via a cached glamour terminal renderer. Safe
// for concurrent use; rendering has no side effects on the input.
type Markdown struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	opts     Options
}

// NewMarkdown creates a renderer with the given options (dark style at 100
// columns when unset).
func NewMarkdown(optFns ...func(o *Options)) (*Markdown, error) {
	opts := Options{Width: 100, Style: "dark"}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Width <= 0 {
		opts.Width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(opts.Style),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return nil, fmt.Errorf("display: renderer init: %w", err)
	}
	return &Markdown{renderer: r, opts: opts}, nil
}

// Render returns the formatted text for a single message.
func (m *Markdown) Render(msg message.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, err := m.renderer.Render(markdownFor(msg))
	if err != nil {
		return "", fmt.Errorf("display: render: %w", err)
	}
	return out, nil
}

// RenderAll renders a transcript message by message, preserving order.
func (m *Markdown) RenderAll(msgs []message.Message) ([]string, error) {
	out := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		s, err := m.Render(msg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// markdownFor converts a message into the markdown source handed to
// glamour. Assistant text passes through untouched so the model's own
// formatting survives; other roles get a label.
func markdownFor(msg message.Message) string {
	switch msg.Role {
	case message.RoleAssistant:
		return msg.Content
	case message.RoleFunctionCall:
		if msg.FunctionCall == nil {
			return ""
		}
		return fmt.Sprintf("𝑓 **%s**\n\n```json\n%s\n```", msg.FunctionCall.Name, msg.FunctionCall.Arguments)
	case message.RoleFunctionResult:
		label := "returned"
		if msg.IsError {
			label = "failed"
		}
		return fmt.Sprintf("𝑓 **%s** %s\n\n```json\n%s\n```", msg.Name, label, msg.Content)
	case message.RoleNarration:
		return fmt.Sprintf("*%s*", msg.Content)
	default:
		role := string(msg.Role)
		if role == "" {
			return msg.Content
		}
		role = strings.ToUpper(role[:1]) + role[1:]
		return fmt.Sprintf("**%s**: %s", role, msg.Content)
	}
}
