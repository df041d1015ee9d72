package memory

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/curelink/disha/pkg/model"
)

// Storage is the persistence surface the memory service needs.
type Storage interface {
	AddMemory(ctx context.Context, memory *model.Memory) error
	TopMemories(ctx context.Context, userID string, threshold float64, limit int) ([]*model.Memory, error)
	TouchMemories(ctx context.Context, ids []string) error
}

// Config bounds memory selection for prompt context.
type Config struct {
	ImportanceThreshold float64
	MaxInContext        int
}

// Service mediates memory persistence and selection.
type Service struct {
	storage Storage
	config  Config
	logger  *log.Logger
}

func NewService(storage Storage, config Config, logger *log.Logger) *Service {
	return &Service{
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// RelevantMemories returns the top memories for prompt context and
// records access telemetry on each returned memory. The read is
// deliberately non-idempotent: repeated reads inflate access counts.
// Telemetry failures are logged and swallowed so a bookkeeping hiccup
// never aborts a turn.
func (s *Service) RelevantMemories(ctx context.Context, userID string) ([]*model.Memory, error) {
	memories, err := s.storage.TopMemories(ctx, userID, s.config.ImportanceThreshold, s.config.MaxInContext)
	if err != nil {
		return nil, err
	}
	if len(memories) == 0 {
		return memories, nil
	}

	ids := make([]string, len(memories))
	for i, memory := range memories {
		ids[i] = memory.ID
	}
	if err := s.storage.TouchMemories(ctx, ids); err != nil {
		s.logger.Warn("Failed to record memory access telemetry", "user_id", userID, "error", err)
	}

	return memories, nil
}

// RecordCandidates persists extractor candidates as memories.
func (s *Service) RecordCandidates(ctx context.Context, userID string, candidates []Candidate) error {
	now := time.Now().UTC()
	for _, candidate := range candidates {
		memory := &model.Memory{
			ID:           uuid.New().String(),
			UserID:       userID,
			Content:      candidate.Content,
			MemoryType:   candidate.MemoryType,
			Importance:   candidate.Importance,
			CreatedAt:    now,
			LastAccessed: now,
		}
		if err := s.storage.AddMemory(ctx, memory); err != nil {
			return err
		}
	}
	return nil
}
