// Package chat sequences one conversational turn: persist the inbound
// message, update the profile, assemble context, call the LLM, persist
// the reply and extract new memories.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/curelink/disha/pkg/ai"
	"github.com/curelink/disha/pkg/cache"
	"github.com/curelink/disha/pkg/memory"
	"github.com/curelink/disha/pkg/metrics"
	"github.com/curelink/disha/pkg/model"
	"github.com/curelink/disha/pkg/prompts"
	"github.com/curelink/disha/pkg/protocols"
)

// OnboardingMessageThreshold is the total persisted message count at
// which onboarding completes (three exchanges of user + assistant).
const OnboardingMessageThreshold = 6

// FallbackReply replaces the assistant message when the LLM provider
// fails. The turn still completes and persists normally.
const FallbackReply = "I apologize, but I'm having trouble responding right now. Please try again in a moment. If this persists, please contact support."

type Config struct {
	MaxConversationHistory int
}

type Service struct {
	storage   Storage
	memories  *memory.Service
	llm       ai.Client
	users     *cache.UserCache
	collector *metrics.Collector
	logger    *log.Logger
	config    Config
}

func NewService(
	logger *log.Logger,
	storage Storage,
	memories *memory.Service,
	llm ai.Client,
	users *cache.UserCache,
	collector *metrics.Collector,
	config Config,
) *Service {
	return &Service{
		storage:   storage,
		memories:  memories,
		llm:       llm,
		users:     users,
		collector: collector,
		logger:    logger,
		config:    config,
	}
}

// GetOrCreateUser resolves a user, lazily creating one on first
// contact. Reads go through the profile cache.
func (s *Service) GetOrCreateUser(ctx context.Context, userID string) (*model.User, error) {
	if user, ok := s.users.Get(userID); ok {
		return user, nil
	}
	user, err := s.storage.GetOrCreateUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.users.Set(user)
	return user, nil
}

// InitializeChat persists the fixed assistant onboarding greeting for a
// user with no prior messages. Idempotent: with existing messages it is
// a no-op and returns nil.
func (s *Service) InitializeChat(ctx context.Context, userID string) (*model.Message, error) {
	count, err := s.storage.CountMessages(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	message := &model.Message{
		ID:           uuid.New().String(),
		UserID:       userID,
		Role:         model.RoleAssistant,
		Content:      prompts.OnboardingMessage,
		IsOnboarding: true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.storage.AddMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// GetMessages returns one page of the user's conversation.
func (s *Service) GetMessages(ctx context.Context, userID string, page, perPage int) (*model.MessagePage, error) {
	return s.storage.MessagesPage(ctx, userID, page, perPage)
}

// ProcessUserMessage runs one full turn and returns the persisted
// assistant message. An unknown user aborts before any writes; an LLM
// failure degrades to the fallback reply and the turn still persists.
func (s *Service) ProcessUserMessage(ctx context.Context, userID string, content string) (*model.Message, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	isOnboarding := !user.OnboardingCompleted

	inbound := &model.Message{
		ID:           uuid.New().String(),
		UserID:       userID,
		Role:         model.RoleUser,
		Content:      content,
		IsOnboarding: isOnboarding,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.storage.AddMessage(ctx, inbound); err != nil {
		return nil, errors.Wrap(err, "failed to persist user message")
	}

	if memory.UpdateProfileFromMessage(user, content) {
		if err := s.storage.UpdateUserProfile(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to update user profile")
		}
		s.users.Set(user)
	}

	history, err := s.storage.RecentMessages(ctx, userID, s.config.MaxConversationHistory)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load conversation history")
	}

	memories, err := s.memories.RelevantMemories(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load memories")
	}

	protocolText := protocols.FindRelevantProtocol(content)

	systemPrompt, err := prompts.BuildHealthCoachSystemPrompt(
		prompts.NewHealthCoachSystemPrompt(user, memories, protocolText))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build system prompt")
	}

	chatHistory := lo.Map(history, func(message *model.Message, _ int) ai.ChatMessage {
		return ai.ChatMessage{Role: message.Role, Content: message.Content}
	})
	budget := s.llm.MaxContextTokens() - s.llm.CountTokens(systemPrompt)
	trimmed := ai.TrimHistory(chatHistory, budget, s.llm.CountTokens)

	reply, err := s.llm.Complete(ctx, systemPrompt, trimmed)
	if err != nil {
		s.logger.Error("LLM completion failed, using fallback reply", "user_id", userID, "error", err)
		s.collector.RecordLLMFailure()
		reply = ai.Reply{Content: FallbackReply}
	}

	outbound := &model.Message{
		ID:           uuid.New().String(),
		UserID:       userID,
		Role:         model.RoleAssistant,
		Content:      reply.Content,
		IsOnboarding: isOnboarding,
		TokensUsed:   reply.TokensUsed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.storage.AddMessage(ctx, outbound); err != nil {
		return nil, errors.Wrap(err, "failed to persist assistant message")
	}

	candidates := memory.ExtractMemories(content, reply.Content, user)
	if len(candidates) > 0 {
		if err := s.memories.RecordCandidates(ctx, userID, candidates); err != nil {
			return nil, errors.Wrap(err, "failed to persist memories")
		}
		s.collector.RecordMemoriesCreated(len(candidates))
	}

	if !user.OnboardingCompleted {
		count, err := s.storage.CountMessages(ctx, userID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count messages")
		}
		if count >= OnboardingMessageThreshold {
			if err := s.storage.CompleteOnboarding(ctx, userID); err != nil {
				return nil, errors.Wrap(err, "failed to complete onboarding")
			}
			user.OnboardingCompleted = true
			s.users.Set(user)
		}
	}

	s.collector.RecordTurn()
	return outbound, nil
}
