package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curelink/disha/pkg/ai"
	"github.com/curelink/disha/pkg/cache"
	"github.com/curelink/disha/pkg/db"
	"github.com/curelink/disha/pkg/helpers"
	"github.com/curelink/disha/pkg/memory"
	"github.com/curelink/disha/pkg/metrics"
	"github.com/curelink/disha/pkg/model"
)

type fakeLLM struct {
	reply      string
	err        error
	gotSystem  string
	gotHistory []ai.ChatMessage
	calls      int
}

func (f *fakeLLM) Complete(ctx context.Context, systemPrompt string, history []ai.ChatMessage) (ai.Reply, error) {
	f.calls++
	f.gotSystem = systemPrompt
	f.gotHistory = history
	if f.err != nil {
		return ai.Reply{}, f.err
	}
	return ai.Reply{Content: f.reply, TokensUsed: 42}, nil
}

func (f *fakeLLM) CountTokens(text string) int {
	return ai.EstimateTokens(text)
}

func (f *fakeLLM) MaxContextTokens() int {
	return 8000
}

type testEnv struct {
	service *Service
	store   *db.Store
	llm     *fakeLLM
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := log.New(os.Stderr)

	store, err := db.NewStore(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	users, err := cache.NewUserCache(logger)
	require.NoError(t, err)
	t.Cleanup(users.Close)

	llm := &fakeLLM{reply: "That sounds great!"}
	memories := memory.NewService(store, memory.Config{ImportanceThreshold: 0.7, MaxInContext: 5}, logger)
	collector := metrics.NewCollector(prometheus.NewRegistry())

	service := NewService(logger, store, memories, llm, users, collector, Config{MaxConversationHistory: 50})
	return &testEnv{service: service, store: store, llm: llm}
}

func TestInitializeChat_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.GetOrCreateUser(ctx, "u1")
	require.NoError(t, err)

	message, err := env.service.InitializeChat(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, message)
	assert.Equal(t, model.RoleAssistant, message.Role)
	assert.True(t, message.IsOnboarding)
	assert.Contains(t, message.Content, "Disha")

	// A second call must not add another message.
	again, err := env.service.InitializeChat(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, again)

	count, err := env.store.CountMessages(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestProcessUserMessage_UnknownUserAbortsBeforeWrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.ProcessUserMessage(ctx, "ghost", "hello")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	assert.Zero(t, env.llm.calls)
}

func TestProcessUserMessage_FullTurn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.GetOrCreateUser(ctx, "u1")
	require.NoError(t, err)

	content := "My name is Asha and I have diabetes and I'm taking metformin"
	reply, err := env.service.ProcessUserMessage(ctx, "u1", content)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAssistant, reply.Role)
	assert.Equal(t, "That sounds great!", reply.Content)
	assert.Equal(t, 42, reply.TokensUsed)
	assert.True(t, reply.IsOnboarding)

	// Both sides of the exchange persisted.
	count, err := env.store.CountMessages(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Profile picked up the name disclosure.
	user, err := env.store.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", helpers.Deref(user.Name))

	// The three extractor rules fired and were persisted.
	memories, err := env.store.TopMemories(ctx, "u1", 0, 10)
	require.NoError(t, err)
	assert.Len(t, memories, 3)

	// The history sent to the LLM ends with the inbound message.
	require.NotEmpty(t, env.llm.gotHistory)
	last := env.llm.gotHistory[len(env.llm.gotHistory)-1]
	assert.Equal(t, model.RoleUser, last.Role)
	assert.Equal(t, content, last.Content)
}

func TestProcessUserMessage_LLMFailureFallsBack(t *testing.T) {
	env := newTestEnv(t)
	env.llm.err = errors.New("quota exceeded")
	ctx := context.Background()

	_, err := env.store.GetOrCreateUser(ctx, "u1")
	require.NoError(t, err)

	reply, err := env.service.ProcessUserMessage(ctx, "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply.Content)

	// The fallback reply persists like a normal turn.
	count, err := env.store.CountMessages(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestProcessUserMessage_PromptCarriesMemoriesAndProtocol(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.GetOrCreateUser(ctx, "u1")
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, env.store.AddMemory(ctx, &model.Memory{
		ID:           uuid.New().String(),
		UserID:       "u1",
		Content:      "Was diagnosed with migraines last year",
		MemoryType:   model.MemoryTypeMedical,
		Importance:   0.9,
		CreatedAt:    now,
		LastAccessed: now,
	}))

	_, err = env.service.ProcessUserMessage(ctx, "u1", "I have a headache again")
	require.NoError(t, err)

	assert.Contains(t, env.llm.gotSystem, "You are Disha")
	assert.Contains(t, env.llm.gotSystem, "Was diagnosed with migraines last year")
	assert.Contains(t, env.llm.gotSystem, "Headache Management Protocol")

	// Selecting the memory for context recorded one access.
	memories, err := env.store.TopMemories(ctx, "u1", 0, 10)
	require.NoError(t, err)
	require.NotEmpty(t, memories)
	assert.Equal(t, 1, memories[0].AccessCount)
}

func TestOnboarding_FlipsExactlyAtThreshold(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.GetOrCreateUser(ctx, "u1")
	require.NoError(t, err)

	// Each turn persists two messages. The flag must stay down through
	// four messages and flip when the count reaches six.
	for turn := 1; turn <= 2; turn++ {
		_, err = env.service.ProcessUserMessage(ctx, "u1", "hello there")
		require.NoError(t, err)

		user, err := env.store.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, user.OnboardingCompleted, "turn %d", turn)
	}

	reply, err := env.service.ProcessUserMessage(ctx, "u1", "hello again")
	require.NoError(t, err)
	// The flipping turn itself is still tagged as onboarding.
	assert.True(t, reply.IsOnboarding)

	user, err := env.store.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, user.OnboardingCompleted)

	// Monotone: further turns never revert it, and are tagged steady.
	reply, err = env.service.ProcessUserMessage(ctx, "u1", "one more")
	require.NoError(t, err)
	assert.False(t, reply.IsOnboarding)

	user, err = env.store.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, user.OnboardingCompleted)
}
