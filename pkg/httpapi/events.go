package httpapi

import (
	"time"

	"github.com/curelink/disha/pkg/model"
)

// EventType tags every frame crossing the duplex channel.
type EventType string

const (
	EventTypeMessage         EventType = "message"
	EventTypeTypingIndicator EventType = "typing_indicator"
	EventTypeError           EventType = "error"
)

// InboundEvent is a client frame. Only message events are accepted;
// anything else is answered with an error event.
type InboundEvent struct {
	Type    EventType `json:"type"`
	Content string    `json:"content"`
}

// MessageEvent mirrors a persisted message to the client.
type MessageEvent struct {
	Type      EventType `json:"type"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ID        string    `json:"id"`
	CreatedAt string    `json:"created_at"`
}

func NewMessageEvent(message *model.Message) MessageEvent {
	return MessageEvent{
		Type:      EventTypeMessage,
		Role:      message.Role.String(),
		Content:   message.Content,
		ID:        message.ID,
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	}
}

// TypingIndicatorEvent signals that the coach is composing a reply.
type TypingIndicatorEvent struct {
	Type     EventType `json:"type"`
	IsTyping bool      `json:"is_typing"`
}

func NewTypingIndicatorEvent(isTyping bool) TypingIndicatorEvent {
	return TypingIndicatorEvent{Type: EventTypeTypingIndicator, IsTyping: isTyping}
}

// ErrorEvent reports a client-visible failure without closing the
// connection.
type ErrorEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventTypeError, Message: message}
}
