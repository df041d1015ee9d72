package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/curelink/disha/pkg/model"
)

// MaxMessageLength bounds a single user message; longer payloads are
// rejected before they reach the pipeline.
const MaxMessageLength = 4000

// ChatService is the slice of the chat layer the HTTP surface needs.
type ChatService interface {
	GetOrCreateUser(ctx context.Context, userID string) (*model.User, error)
	InitializeChat(ctx context.Context, userID string) (*model.Message, error)
	GetMessages(ctx context.Context, userID string, page, perPage int) (*model.MessagePage, error)
	ProcessUserMessage(ctx context.Context, userID, content string) (*model.Message, error)
}

type Handler struct {
	service         ChatService
	logger          *log.Logger
	messagesPerPage int
}

func NewHandler(logger *log.Logger, service ChatService, messagesPerPage int) *Handler {
	return &Handler{
		service:         service,
		logger:          logger,
		messagesPerPage: messagesPerPage,
	}
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type initializeResponse struct {
	Message        string         `json:"message"`
	InitialMessage *model.Message `json:"initial_message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	user, err := h.service.GetOrCreateUser(r.Context(), userID)
	if err != nil {
		h.internalError(w, "get user", err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) InitializeChat(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	// First contact may land here before any other endpoint has seen
	// the user, so create the row before writing the greeting.
	if _, err := h.service.GetOrCreateUser(r.Context(), userID); err != nil {
		h.internalError(w, "initialize chat", err)
		return
	}

	initial, err := h.service.InitializeChat(r.Context(), userID)
	if err != nil {
		h.internalError(w, "initialize chat", err)
		return
	}

	resp := initializeResponse{Message: "Chat already initialized"}
	if initial != nil {
		resp.Message = "Chat initialized"
		resp.InitialMessage = initial
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", h.messagesPerPage)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = h.messagesPerPage
	}

	result, err := h.service.GetMessages(r.Context(), userID, page, perPage)
	if err != nil {
		h.internalError(w, "get messages", err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if msg := validateContent(req.Content); msg != "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	reply, err := h.service.ProcessUserMessage(r.Context(), userID, req.Content)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "User not found"})
			return
		}
		h.internalError(w, "process message", err)
		return
	}
	h.writeJSON(w, http.StatusOK, reply)
}

func validateContent(content string) string {
	if strings.TrimSpace(content) == "" {
		return "Message content cannot be empty"
	}
	if len(content) > MaxMessageLength {
		return "Message content exceeds maximum length"
	}
	return ""
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("request failed", "op", op, "error", err)
	h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}
