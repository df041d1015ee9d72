package httpapi

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/curelink/disha/pkg/metrics"
	"github.com/curelink/disha/pkg/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsConnection serializes writes to a single websocket. gorilla permits
// at most one concurrent writer per connection.
type wsConnection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConnection) send(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(payload)
}

// ConnectionManager tracks at most one live connection per user. A new
// connection for the same user replaces the old one.
type ConnectionManager struct {
	mu    sync.Mutex
	conns map[string]*wsConnection
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{conns: make(map[string]*wsConnection)}
}

func (m *ConnectionManager) connect(userID string, conn *websocket.Conn) *wsConnection {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.conns[userID]; ok {
		old.conn.Close()
	}
	wrapped := &wsConnection{conn: conn}
	m.conns[userID] = wrapped
	return wrapped
}

func (m *ConnectionManager) disconnect(userID string, conn *wsConnection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, ok := m.conns[userID]; ok && current == conn {
		delete(m.conns, userID)
	}
	conn.conn.Close()
}

// WSHandler drives the realtime chat loop over a websocket.
type WSHandler struct {
	service     ChatService
	manager     *ConnectionManager
	collector   *metrics.Collector
	logger      *log.Logger
	typingDelay time.Duration
}

func NewWSHandler(logger *log.Logger, service ChatService, collector *metrics.Collector, typingDelay time.Duration) *WSHandler {
	return &WSHandler{
		service:     service,
		manager:     NewConnectionManager(),
		collector:   collector,
		logger:      logger,
		typingDelay: typingDelay,
	}
}

func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	wrapped := h.manager.connect(userID, conn)
	h.collector.WSConnected()
	defer func() {
		h.manager.disconnect(userID, wrapped)
		h.collector.WSDisconnected()
	}()

	ctx := r.Context()

	// The onboarding message is persisted here but not pushed over the
	// socket; clients load history through the REST endpoint.
	if _, err := h.service.GetOrCreateUser(ctx, userID); err != nil {
		h.logger.Error("websocket user setup failed", "user_id", userID, "error", err)
		return
	}
	if _, err := h.service.InitializeChat(ctx, userID); err != nil {
		h.logger.Error("websocket chat init failed", "user_id", userID, "error", err)
		return
	}

	for {
		var event InboundEvent
		if err := conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket closed unexpectedly", "user_id", userID, "error", err)
			}
			return
		}
		h.handleEvent(ctx, userID, wrapped, event)
	}
}

func (h *WSHandler) handleEvent(ctx context.Context, userID string, conn *wsConnection, event InboundEvent) {
	switch event.Type {
	case EventTypeMessage:
		h.handleMessage(ctx, userID, conn, event.Content)
	default:
		conn.send(NewErrorEvent("Unsupported event type"))
	}
}

func (h *WSHandler) handleMessage(ctx context.Context, userID string, conn *wsConnection, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		conn.send(NewErrorEvent("Message cannot be empty"))
		return
	}
	if len(content) > MaxMessageLength {
		conn.send(NewErrorEvent("Message content exceeds maximum length"))
		return
	}

	// Echo receipt before the turn runs. The orchestrator persists the
	// inbound message itself, so the envelope is synthesized here.
	echo := MessageEvent{
		Type:      EventTypeMessage,
		Role:      model.RoleUser.String(),
		Content:   content,
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := conn.send(echo); err != nil {
		return
	}

	conn.send(NewTypingIndicatorEvent(true))
	time.Sleep(h.typingDelay)

	reply, err := h.service.ProcessUserMessage(ctx, userID, content)
	conn.send(NewTypingIndicatorEvent(false))
	if err != nil {
		h.logger.Error("websocket turn failed", "user_id", userID, "error", err)
		conn.send(NewErrorEvent("Sorry, I encountered an error processing your message"))
		return
	}

	conn.send(NewMessageEvent(reply))
}
