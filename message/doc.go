// Package message defines the role-tagged Message value type that makes up
// a conversation transcript, together with the tagging constructors
// (System, User, Assistant, ...) used to build one.
//
// Messages are immutable after construction: a Conversation only appends
// them and reads them back, never rewrites them. The legacy Human/AI
// constructors are display aliases for User/Assistant and produce
// role-identical messages.
package message
