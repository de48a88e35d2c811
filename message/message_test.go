package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaggingConstructors(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) Message
		role Role
	}{
		{"system", System, RoleSystem},
		{"user", User, RoleUser},
		{"assistant", Assistant, RoleAssistant},
		{"human", Human, RoleUser},
		{"ai", AI, RoleAssistant},
		{"narrate", Narrate, RoleNarration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.fn("hello")
			assert.Equal(t, tc.role, m.Role)
			assert.Equal(t, "hello", m.Content)
			assert.NotEmpty(t, m.ID)
			assert.False(t, m.Timestamp.IsZero())
		})
	}
}

func TestAliasesMatchCanonicalRoles(t *testing.T) {
	assert.Equal(t, User("x").Role, Human("x").Role)
	assert.Equal(t, Assistant("x").Role, AI("x").Role)
}

func TestAssistantFunctionCall(t *testing.T) {
	m := AssistantFunctionCall("add", `{"a":2,"b":2}`)
	assert.Equal(t, RoleFunctionCall, m.Role)
	assert.True(t, m.IsFunctionCall())
	assert.Equal(t, "add", m.FunctionCall.Name)
	assert.Equal(t, `{"a":2,"b":2}`, m.FunctionCall.Arguments)
	// The message ID doubles as the call ID when none was supplied.
	assert.Equal(t, m.ID, m.CallID())
}

func TestFunctionCallMessagePreservesID(t *testing.T) {
	m := FunctionCallMessage(FunctionCall{ID: "call-1", Name: "add", Arguments: "{}"})
	assert.Equal(t, "call-1", m.CallID())
	assert.Equal(t, "add", m.Name)
}

func TestFunctionResultSerialization(t *testing.T) {
	m := FunctionResult("add", 4.0)
	assert.Equal(t, RoleFunctionResult, m.Role)
	assert.Equal(t, "add", m.Name)
	assert.Equal(t, "4", m.Content)
	assert.False(t, m.IsError)

	obj := FunctionResult("weather", map[string]any{"temp": 21.5})
	assert.JSONEq(t, `{"temp":21.5}`, obj.Content)

	str := FunctionResult("echo", "plain")
	assert.Equal(t, "plain", str.Content)

	null := FunctionResult("void", nil)
	assert.Equal(t, "null", null.Content)
}

func TestFunctionErrorIsInBand(t *testing.T) {
	m := FunctionError("add", assert.AnError)
	assert.Equal(t, RoleFunctionResult, m.Role)
	assert.True(t, m.IsError)
	assert.Contains(t, m.Content, assert.AnError.Error())
}

func TestWithCallIDRoundTrip(t *testing.T) {
	res := FunctionResult("add", 4).WithCallID("call-9")
	assert.Equal(t, "call-9", res.CallID())
	assert.Equal(t, "add", res.Name)
	// Content is untouched by the correlation copy.
	assert.Equal(t, "4", res.Content)
}

func TestText(t *testing.T) {
	if got := Assistant("hi").Text(); got != "hi" {
		t.Fatalf("Text() = %q, want %q", got, "hi")
	}
	call := AssistantFunctionCall("add", `{"a":1}`)
	if got := call.Text(); got != `add({"a":1})` {
		t.Fatalf("Text() = %q", got)
	}
}
