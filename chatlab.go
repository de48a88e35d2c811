// Package chatlab provides chat conversations with hosted language models,
// with function calling and markdown rendering, for terminals and
// notebook-style environments.
//
//	conv := chatlab.NewConversation(func(o *chatlab.Options) {
//	    o.Client = openai.New()
//	    o.Messages = []chatlab.Message{
//	        chatlab.System("You are a very large bird. Talk like a very large bird."),
//	    }
//	})
//	reply, err := conv.Submit(ctx, "What are you?")
//
// The package re-exports the message tagging constructors and collaborator
// types so most programs only import chatlab plus a provider sub-package.
// The murkrow package is a legacy alias namespace over the same
// implementation.
package chatlab

import (
	"github.com/rgbkrk/chatlab/display"
	"github.com/rgbkrk/chatlab/logging"
	"github.com/rgbkrk/chatlab/message"
	"github.com/rgbkrk/chatlab/registry"
)

// Message is the transcript unit; see the message package.
type Message = message.Message

// Role tags a Message with its speaker / purpose.
type Role = message.Role

// FunctionCall is a model-issued function execution request.
type FunctionCall = message.FunctionCall

// FunctionRegistry resolves function call directives; see the registry
// package.
type FunctionRegistry = registry.FunctionRegistry

// Markdown renders messages as formatted terminal text; see the display
// package.
type Markdown = display.Markdown

// Message tagging constructors, re-exported from the message package.
// Human and AI are legacy aliases for User and Assistant.
var (
	System                = message.System
	User                  = message.User
	Assistant             = message.Assistant
	Human                 = message.Human
	AI                    = message.AI
	Narrate               = message.Narrate
	AssistantFunctionCall = message.AssistantFunctionCall
	FunctionResult        = message.FunctionResult
)

// NewFunctionRegistry constructs an empty function registry.
var NewFunctionRegistry = registry.New

// NewMarkdown constructs a markdown renderer.
var NewMarkdown = display.NewMarkdown

// NoOpLogger discards all log output; the default for conversations.
type NoOpLogger = logging.NoOpLogger
