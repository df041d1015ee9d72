// Package model holds the shared domain types for the health-coach backend.
package model

import (
	"errors"
	"time"
)

// ErrUserNotFound is returned when a referenced user does not exist.
// Handlers translate it to a 404 before any turn state is written.
var ErrUserNotFound = errors.New("user not found")

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) String() string {
	return string(r)
}

// MemoryType classifies an extracted memory.
type MemoryType string

const (
	MemoryTypeFact        MemoryType = "fact"
	MemoryTypePreference  MemoryType = "preference"
	MemoryTypeMedical     MemoryType = "medical"
	MemoryTypeInteraction MemoryType = "interaction"
)

func (t MemoryType) String() string {
	return string(t)
}

// User is a coached user. Scalar profile fields are first-write-wins:
// once Name, Age or Gender is non-empty it is never overwritten.
type User struct {
	ID                  string    `json:"id"`
	Name                *string   `json:"name"`
	Phone               *string   `json:"phone"`
	Age                 *string   `json:"age"`
	Gender              *string   `json:"gender"`
	MedicalConditions   []string  `json:"medical_conditions"`
	Medications         []string  `json:"medications"`
	Allergies           []string  `json:"allergies"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Message is one side of an exchange. Immutable once created; ordering
// is by CreatedAt.
type Message struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Role         Role      `json:"role"`
	Content      string    `json:"content"`
	IsOnboarding bool      `json:"is_onboarding"`
	TokensUsed   int       `json:"tokens_used"`
	CreatedAt    time.Time `json:"created_at"`
}

// Memory is a persisted note extracted from conversation, used to
// personalize future prompts. Content is immutable; only the access
// telemetry (AccessCount, LastAccessed) changes after creation.
type Memory struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Content      string     `json:"content"`
	MemoryType   MemoryType `json:"memory_type"`
	Importance   float64    `json:"importance"`
	AccessCount  int        `json:"access_count"`
	CreatedAt    time.Time  `json:"created_at"`
	LastAccessed time.Time  `json:"last_accessed"`
}

// MessagePage is one page of a user's conversation, oldest first
// within the page.
type MessagePage struct {
	Messages []*Message `json:"messages"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	HasMore  bool       `json:"has_more"`
}
