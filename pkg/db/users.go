package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/curelink/disha/pkg/model"
)

// UserDB mirrors the users table. List fields are stored as JSON strings.
type UserDB struct {
	ID                  string    `db:"id"`
	Name                *string   `db:"name"`
	Phone               *string   `db:"phone"`
	Age                 *string   `db:"age"`
	Gender              *string   `db:"gender"`
	MedicalConditions   string    `db:"medical_conditions"`
	Medications         string    `db:"medications"`
	Allergies           string    `db:"allergies"`
	OnboardingCompleted bool      `db:"onboarding_completed"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func (u *UserDB) ToModel() *model.User {
	return &model.User{
		ID:                  u.ID,
		Name:                u.Name,
		Phone:               u.Phone,
		Age:                 u.Age,
		Gender:              u.Gender,
		MedicalConditions:   jsonStringList(u.MedicalConditions),
		Medications:         jsonStringList(u.Medications),
		Allergies:           jsonStringList(u.Allergies),
		OnboardingCompleted: u.OnboardingCompleted,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func jsonStringList(raw string) []string {
	list := make([]string, 0)
	if raw == "" {
		return list
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

func marshalStringList(list []string) string {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// GetUser fetches a user by id. Returns model.ErrUserNotFound when it
// does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user UserDB
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user.ToModel(), nil
}

// CreateUser inserts a fresh user row with empty profile fields.
func (s *Store) CreateUser(ctx context.Context, id string) (*model.User, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, medical_conditions, medications, allergies, onboarding_completed, created_at, updated_at)
		VALUES (?, '[]', '[]', '[]', 0, ?, ?)
	`, id, now, now)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// GetOrCreateUser returns the existing user or lazily creates one.
func (s *Store) GetOrCreateUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if errors.Is(err, model.ErrUserNotFound) {
		return s.CreateUser(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserProfile persists the user's mutable profile fields.
func (s *Store) UpdateUserProfile(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, phone = ?, age = ?, gender = ?,
		    medical_conditions = ?, medications = ?, allergies = ?,
		    updated_at = ?
		WHERE id = ?
	`,
		user.Name, user.Phone, user.Age, user.Gender,
		marshalStringList(user.MedicalConditions),
		marshalStringList(user.Medications),
		marshalStringList(user.Allergies),
		time.Now().UTC(), user.ID)
	return err
}

// CompleteOnboarding flips onboarding_completed. The flag is monotone:
// this only ever sets it, never clears it.
func (s *Store) CompleteOnboarding(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET onboarding_completed = 1, updated_at = ? WHERE id = ?
	`, time.Now().UTC(), userID)
	return err
}

// DeleteUser removes the user; messages and memories cascade.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}
