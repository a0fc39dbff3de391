package ai

import "context"

// Turn is one prior exchange in a conversation.
type Turn struct {
	Role    string
	Content string
}

// ChatGenerator produces free-form text from a system instruction and an
// ordered list of conversation turns. All chat-completions providers
// implement this interface.
type ChatGenerator interface {
	GenerateChat(ctx context.Context, systemPrompt string, turns []Turn) (string, error)
}
