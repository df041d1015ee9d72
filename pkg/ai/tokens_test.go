package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 25, EstimateTokens(strings.Repeat("a", 100)))
}

// tokenText builds a message whose estimated size is exactly n tokens.
func tokenText(n int) string {
	return strings.Repeat("a", n*4)
}

func TestTrimHistory_FitsUnchanged(t *testing.T) {
	messages := []ChatMessage{
		{Role: "user", Content: tokenText(10)},
		{Role: "assistant", Content: tokenText(10)},
	}

	got := TrimHistory(messages, 100, nil)
	assert.Equal(t, messages, got)
}

func TestTrimHistory_KeepsMostRecentSuffix(t *testing.T) {
	// Three 40-token messages under a 70-token budget: only the newest
	// fits, since adding the middle one would overflow.
	messages := []ChatMessage{
		{Role: "user", Content: tokenText(40)},
		{Role: "assistant", Content: tokenText(40)},
		{Role: "user", Content: tokenText(40)},
	}

	got := TrimHistory(messages, 70, nil)
	require.Len(t, got, 1)
	assert.Equal(t, messages[2], got[0])
}

func TestTrimHistory_TightBudgetKeepsLastTwo(t *testing.T) {
	messages := []ChatMessage{
		{Role: "user", Content: tokenText(40)},
		{Role: "assistant", Content: tokenText(30)},
		{Role: "user", Content: tokenText(30)},
	}

	got := TrimHistory(messages, 70, nil)
	require.Len(t, got, 2)
	assert.Equal(t, messages[1], got[0])
	assert.Equal(t, messages[2], got[1])
}

func TestTrimHistory_AlwaysPreservesMostRecent(t *testing.T) {
	messages := []ChatMessage{
		{Role: "user", Content: tokenText(100)},
		{Role: "user", Content: tokenText(5)},
	}

	got := TrimHistory(messages, 10, nil)
	require.Len(t, got, 1)
	assert.Equal(t, messages[1], got[0])
}

func TestTrimHistory_RetainsLeadingSystemMessage(t *testing.T) {
	messages := []ChatMessage{
		{Role: "system", Content: tokenText(20)},
		{Role: "user", Content: tokenText(40)},
		{Role: "assistant", Content: tokenText(40)},
		{Role: "user", Content: tokenText(40)},
	}

	got := TrimHistory(messages, 70, nil)
	require.NotEmpty(t, got)
	assert.Equal(t, ChatMessage{Role: "system", Content: tokenText(20)}, got[0])

	// Remaining budget after the system message is 50, enough for only
	// the final message.
	require.Len(t, got, 2)
	assert.Equal(t, messages[3], got[1])
}

func TestTrimHistory_NeverExceedsBudget(t *testing.T) {
	messages := []ChatMessage{
		{Role: "user", Content: tokenText(40)},
		{Role: "assistant", Content: tokenText(40)},
		{Role: "user", Content: tokenText(40)},
	}

	for _, budget := range []int{0, 39, 40, 70, 80, 119} {
		got := TrimHistory(messages, budget, nil)
		total := 0
		for _, message := range got {
			total += EstimateTokens(message.Content)
		}
		assert.LessOrEqual(t, total, budget, "budget %d", budget)
	}

	// Everything fits at exactly the total size.
	assert.Len(t, TrimHistory(messages, 120, nil), 3)
}

func TestTrimHistory_CustomCounter(t *testing.T) {
	// Per-word counter instead of the character estimate.
	count := func(text string) int {
		return len(strings.Fields(text))
	}
	messages := []ChatMessage{
		{Role: "user", Content: "one two three four"},
		{Role: "assistant", Content: "five six"},
	}

	got := TrimHistory(messages, 3, count)
	require.Len(t, got, 1)
	assert.Equal(t, messages[1], got[0])
}
