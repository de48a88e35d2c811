// Package murkrow is the legacy namespace this project started under. It
// aliases the chatlab surface so existing imports keep compiling; new code
// should import chatlab directly.
package murkrow

import (
	"log/slog"
	"sync"

	"github.com/rgbkrk/chatlab"
)

// Message is an alias for chatlab.Message.
type Message = chatlab.Message

// Conversation is an alias for chatlab.Conversation.
type Conversation = chatlab.Conversation

// Options is an alias for chatlab.Options.
type Options = chatlab.Options

// FunctionRegistry is an alias for chatlab.FunctionRegistry.
type FunctionRegistry = chatlab.FunctionRegistry

// Markdown is an alias for chatlab.Markdown.
type Markdown = chatlab.Markdown

// Tagging constructors, aliased from chatlab.
var (
	System    = chatlab.System
	User      = chatlab.User
	Assistant = chatlab.Assistant
	Human     = chatlab.Human
	AI        = chatlab.AI
	Narrate   = chatlab.Narrate
)

// NewConversation is an alias for chatlab.NewConversation.
var NewConversation = chatlab.NewConversation

// NewFunctionRegistry is an alias for chatlab.NewFunctionRegistry.
var NewFunctionRegistry = chatlab.NewFunctionRegistry

var sessionWarnOnce sync.Once

// NewSession creates a Conversation under its old name. Behavior is
// identical to NewConversation; a deprecation notice is logged once per
// process.
//
// Deprecated: Use chatlab.NewConversation instead.
func NewSession(optFns ...func(o *Options)) *Conversation {
	sessionWarnOnce.Do(func() {
		slog.Warn("murkrow.NewSession is deprecated; use chatlab.NewConversation instead")
	})
	return chatlab.NewConversation(optFns...)
}
