package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgbkrk/chatlab/message"
)

func TestMockClientPlaysBackInOrder(t *testing.T) {
	client := NewMockClient().
		EnqueueFunctionCall("call-1", "add", `{"a":1,"b":2}`).
		EnqueueText("done")

	reply, err := client.Complete(context.Background(), Request{})
	require.NoError(t, err)
	require.True(t, reply.IsFunctionCall())
	assert.Equal(t, "add", reply.FunctionCall.Name)

	reply, err = client.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.False(t, reply.IsFunctionCall())
	assert.Equal(t, "done", reply.Text)
	assert.Equal(t, "stop", reply.FinishReason)
}

func TestMockClientRecordsRequests(t *testing.T) {
	client := NewMockClient().EnqueueText("hi")
	req := Request{
		Messages:  []message.Message{message.User("hello")},
		Functions: []FunctionDefinition{{Name: "noop"}},
	}
	_, err := client.Complete(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, client.Requests, 1)
	assert.Equal(t, "hello", client.Requests[0].Messages[0].Content)
	assert.Equal(t, "noop", client.Requests[0].Functions[0].Name)
}

func TestMockClientScriptedError(t *testing.T) {
	boom := errors.New("boom")
	client := NewMockClient().EnqueueError(boom)
	_, err := client.Complete(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestMockClientFailsPastScript(t *testing.T) {
	client := NewMockClient()
	_, err := client.Complete(context.Background(), Request{})
	assert.Error(t, err)
}

func TestMockClientHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := NewMockClient().EnqueueText("never")
	_, err := client.Complete(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}
