package chat

import (
	"context"

	"github.com/curelink/disha/pkg/model"
)

// Storage is the persistence surface the chat service depends on,
// implemented by the SQLite store.
type Storage interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetOrCreateUser(ctx context.Context, id string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, user *model.User) error
	CompleteOnboarding(ctx context.Context, userID string) error

	AddMessage(ctx context.Context, message *model.Message) error
	CountMessages(ctx context.Context, userID string) (int, error)
	RecentMessages(ctx context.Context, userID string, limit int) ([]*model.Message, error)
	MessagesPage(ctx context.Context, userID string, page, perPage int) (*model.MessagePage, error)
}
