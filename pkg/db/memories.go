package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/curelink/disha/pkg/model"
)

// MemoryDB mirrors the memories table.
type MemoryDB struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Content      string    `db:"content"`
	MemoryType   string    `db:"memory_type"`
	Importance   float64   `db:"importance"`
	AccessCount  int       `db:"access_count"`
	CreatedAt    time.Time `db:"created_at"`
	LastAccessed time.Time `db:"last_accessed"`
}

func (m *MemoryDB) ToModel() *model.Memory {
	return &model.Memory{
		ID:           m.ID,
		UserID:       m.UserID,
		Content:      m.Content,
		MemoryType:   model.MemoryType(m.MemoryType),
		Importance:   m.Importance,
		AccessCount:  m.AccessCount,
		CreatedAt:    m.CreatedAt,
		LastAccessed: m.LastAccessed,
	}
}

// AddMemory persists a memory. Content is immutable after creation.
func (s *Store) AddMemory(ctx context.Context, memory *model.Memory) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO memories (id, user_id, content, memory_type, importance, access_count, created_at, last_accessed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, memory.ID, memory.UserID, memory.Content, memory.MemoryType.String(),
		memory.Importance, memory.AccessCount, memory.CreatedAt, memory.LastAccessed)
	return err
}

// TopMemories returns up to limit memories with importance at or above
// threshold, ordered by importance then recency of access.
func (s *Store) TopMemories(ctx context.Context, userID string, threshold float64, limit int) ([]*model.Memory, error) {
	var rows []MemoryDB
	err := s.db.SelectContext(ctx, &rows, `
		SELECT * FROM memories
		WHERE user_id = ? AND importance >= ?
		ORDER BY importance DESC, last_accessed DESC
		LIMIT ?
	`, userID, threshold, limit)
	if err != nil {
		return nil, err
	}

	memories := make([]*model.Memory, len(rows))
	for i := range rows {
		memories[i] = rows[i].ToModel()
	}
	return memories, nil
}

// TouchMemories increments each memory's access counter by one and
// refreshes its last_accessed timestamp.
func (s *Store) TouchMemories(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`
		UPDATE memories
		SET access_count = access_count + 1, last_accessed = ?
		WHERE id IN (?)
	`, time.Now().UTC(), ids)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	return err
}
