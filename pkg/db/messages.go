package db

import (
	"context"
	"time"

	"github.com/curelink/disha/pkg/model"
)

// MessageDB mirrors the messages table.
type MessageDB struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Role         string    `db:"role"`
	Content      string    `db:"content"`
	IsOnboarding bool      `db:"is_onboarding"`
	TokensUsed   int       `db:"tokens_used"`
	CreatedAt    time.Time `db:"created_at"`
}

func (m *MessageDB) ToModel() *model.Message {
	return &model.Message{
		ID:           m.ID,
		UserID:       m.UserID,
		Role:         model.Role(m.Role),
		Content:      m.Content,
		IsOnboarding: m.IsOnboarding,
		TokensUsed:   m.TokensUsed,
		CreatedAt:    m.CreatedAt,
	}
}

// AddMessage persists a message. Messages are immutable after this.
func (s *Store) AddMessage(ctx context.Context, message *model.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, user_id, role, content, is_onboarding, tokens_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, message.ID, message.UserID, message.Role.String(), message.Content,
		message.IsOnboarding, message.TokensUsed, message.CreatedAt)
	return err
}

// CountMessages returns the total number of persisted messages for a user.
func (s *Store) CountMessages(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM messages WHERE user_id = ?`, userID)
	return count, err
}

// RecentMessages returns up to limit of the user's most recent messages
// in chronological order.
func (s *Store) RecentMessages(ctx context.Context, userID string, limit int) ([]*model.Message, error) {
	var rows []MessageDB
	err := s.db.SelectContext(ctx, &rows, `
		SELECT * FROM messages
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}

	// Query is newest-first; reverse for replay order.
	messages := make([]*model.Message, len(rows))
	for i := range rows {
		messages[len(rows)-1-i] = rows[i].ToModel()
	}
	return messages, nil
}

// MessagesPage returns one page of the user's conversation. Pages are
// taken newest-first, then reversed so each page reads oldest-first.
func (s *Store) MessagesPage(ctx context.Context, userID string, page, perPage int) (*model.MessagePage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.CountMessages(ctx, userID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	var rows []MessageDB
	err = s.db.SelectContext(ctx, &rows, `
		SELECT * FROM messages
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, userID, perPage, offset)
	if err != nil {
		return nil, err
	}

	messages := make([]*model.Message, len(rows))
	for i := range rows {
		messages[len(rows)-1-i] = rows[i].ToModel()
	}

	return &model.MessagePage{
		Messages: messages,
		Total:    total,
		Page:     page,
		HasMore:  page*perPage < total,
	}, nil
}
