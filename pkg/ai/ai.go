// Package ai wraps the LLM providers behind a single completion
// interface. Two backends exist: OpenAI-compatible chat completions and
// Anthropic messages. They differ only in prompt shaping and limits;
// selection is configuration at construction time.
package ai

import (
	"context"

	"github.com/curelink/disha/pkg/model"
)

// ChatMessage is one role-tagged entry of conversational history.
type ChatMessage struct {
	Role    model.Role
	Content string
}

// Reply is a completed LLM response. TokensUsed is zero when the
// provider does not report usage.
type Reply struct {
	Content    string
	TokensUsed int
}

// Client is the LLM collaborator: system prompt plus ordered history
// in, single reply out. Implementations do not retry.
type Client interface {
	Complete(ctx context.Context, systemPrompt string, history []ChatMessage) (Reply, error)
	CountTokens(text string) int
	MaxContextTokens() int
}
