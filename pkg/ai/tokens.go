package ai

// EstimateTokens is the cheap character-based token proxy (one token
// per four characters). Providers without a local tokenizer use it
// directly; it is also the fallback when a tokenizer fails.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// TrimHistory fits messages into a token budget. If everything fits the
// input is returned unchanged. Otherwise a leading system message is
// always retained, then messages are added newest-first while they
// still fit, stopping at the first overflow. The result is the most
// recent contiguous suffix of the conversation, not a semantically
// chosen subset; early exchanges can be dropped silently.
func TrimHistory(messages []ChatMessage, maxTokens int, count func(string) int) []ChatMessage {
	if count == nil {
		count = EstimateTokens
	}

	total := 0
	for _, message := range messages {
		total += count(message.Content)
	}
	if total <= maxTokens {
		return messages
	}

	var trimmed []ChatMessage
	current := 0

	rest := messages
	if len(messages) > 0 && messages[0].Role == "system" {
		trimmed = append(trimmed, messages[0])
		current += count(messages[0].Content)
		rest = messages[1:]
	}

	var suffix []ChatMessage
	for i := len(rest) - 1; i >= 0; i-- {
		tokens := count(rest[i].Content)
		if current+tokens > maxTokens {
			break
		}
		suffix = append([]ChatMessage{rest[i]}, suffix...)
		current += tokens
	}

	return append(trimmed, suffix...)
}
