package message

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role tags a Message with its speaker / purpose within a transcript.
type Role string

// Canonical role names. Human and AI are constructor aliases, not roles of
// their own; they tag messages with RoleUser and RoleAssistant.
const (
	RoleSystem         Role = "system"
	RoleUser           Role = "user"
	RoleAssistant      Role = "assistant"
	RoleFunctionCall   Role = "function_call"
	RoleFunctionResult Role = "function_result"
	RoleNarration      Role = "narration"
)

// FunctionCall describes a model-issued request to execute a named function.
// Arguments is the serialized argument payload (JSON).
type FunctionCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
}

// Message is an immutable role-tagged unit of a conversation transcript.
// Content holds plain text for most roles. For RoleFunctionCall the payload
// lives in FunctionCall; for RoleFunctionResult, Name carries the
// originating function name and Content its serialized return value (or
// error payload), so a call and its result stay associated across the
// transcript.
type Message struct {
	ID           string        `json:"id"`
	Role         Role          `json:"role"`
	Content      string        `json:"content,omitempty"`
	Name         string        `json:"name,omitempty"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
	IsError      bool          `json:"is_error,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

// New creates a message with the given role and text content. The named
// constructors below are the ergonomic way to call this.
func New(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// System tags text as a system instruction.
func System(content string) Message { return New(RoleSystem, content) }

// User tags text as a user utterance.
func User(content string) Message { return New(RoleUser, content) }

// Assistant tags text as a model reply.
func Assistant(content string) Message { return New(RoleAssistant, content) }

// Human is a legacy alias for User.
func Human(content string) Message { return User(content) }

// AI is a legacy alias for Assistant.
func AI(content string) Message { return Assistant(content) }

// Narrate tags text as out-of-band narration shown to the reader but not
// attributed to either party.
func Narrate(content string) Message { return New(RoleNarration, content) }

// AssistantFunctionCall records a model-issued function call directive.
// Arguments is the serialized (JSON) argument payload as received from the
// provider.
func AssistantFunctionCall(name, arguments string) Message {
	m := New(RoleFunctionCall, "")
	m.Name = name
	m.FunctionCall = &FunctionCall{ID: m.ID, Name: name, Arguments: arguments}
	return m
}

// FunctionCallMessage records a directive that already carries a provider
// assigned call ID, preserving it for result correlation.
func FunctionCallMessage(call FunctionCall) Message {
	m := New(RoleFunctionCall, "")
	if call.ID == "" {
		call.ID = m.ID
	}
	m.Name = call.Name
	m.FunctionCall = &call
	return m
}

// FunctionResult records the outcome of a resolved function call. The value
// is serialized to JSON; values that cannot be marshaled fall back to their
// fmt representation so a result message is always produced.
func FunctionResult(name string, value any) Message {
	m := New(RoleFunctionResult, serialize(value))
	m.Name = name
	return m
}

// FunctionError records a failed function call resolution as an in-band
// result the model can react to.
func FunctionError(name string, err error) Message {
	m := New(RoleFunctionResult, serialize(map[string]any{"error": err.Error()}))
	m.Name = name
	m.IsError = true
	return m
}

// WithCallID returns a copy of the message carrying the given function call
// correlation ID. Used when pairing a result with its originating call.
func (m Message) WithCallID(id string) Message {
	m2 := m
	if m2.FunctionCall != nil {
		fc := *m2.FunctionCall
		fc.ID = id
		m2.FunctionCall = &fc
	} else if id != "" {
		m2.FunctionCall = &FunctionCall{ID: id, Name: m.Name}
	}
	return m2
}

// CallID returns the correlation ID linking a function_call or
// function_result message to its counterpart, or "" if none is attached.
func (m Message) CallID() string {
	if m.FunctionCall != nil {
		return m.FunctionCall.ID
	}
	return ""
}

// IsFunctionCall reports whether the message is a function call directive.
func (m Message) IsFunctionCall() bool {
	return m.Role == RoleFunctionCall && m.FunctionCall != nil
}

// Text returns a plain text rendering of the message content suitable for
// logs or fallback display.
func (m Message) Text() string {
	if m.IsFunctionCall() {
		return fmt.Sprintf("%s(%s)", m.FunctionCall.Name, m.FunctionCall.Arguments)
	}
	return m.Content
}

func serialize(value any) string {
	if value == nil {
		return "null"
	}
	if s, ok := value.(string); ok {
		return s
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}
