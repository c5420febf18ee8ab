package transport

import (
	"errors"
	"net/http"

	"catalog-assistant/internal/domain"
	"catalog-assistant/internal/middleware"
	"catalog-assistant/internal/repository"
	"catalog-assistant/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateSessionRequest represents the session creation payload
type CreateSessionRequest struct {
	UserID    string `json:"userId" validate:"required,max=255"`
	SessionID string `json:"sessionId" validate:"max=255"`
}

// AddMessageRequest represents a single logged message
type AddMessageRequest struct {
	SessionID string `json:"sessionId" validate:"required,max=255"`
	Sender    string `json:"sender" validate:"required,oneof=user ai"`
	Message   string `json:"message" validate:"required"`
}

// ChatRequest represents one user turn of the assistant conversation
type ChatRequest struct {
	UserID    string `json:"userId" validate:"required,max=255"`
	Message   string `json:"message" validate:"required,max=4000"`
	SessionID string `json:"sessionId" validate:"max=255"`
}

type sessionResponse struct {
	Success bool                        `json:"success"`
	Session *domain.ConversationSession `json:"session"`
}

type messageResponse struct {
	Success bool            `json:"success"`
	Message *domain.Message `json:"message"`
}

type messagesResponse struct {
	Success  bool              `json:"success"`
	Messages []*domain.Message `json:"messages"`
}

type chatResponse struct {
	Success   bool              `json:"success"`
	SessionID string            `json:"sessionId"`
	Messages  []*domain.Message `json:"messages"`
}

// ChatHandler handles conversation logging and the assistant endpoint
type ChatHandler struct {
	chat   service.ChatService
	logger *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: logger,
	}
}

// RegisterRoutes registers all chat routes
func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", h.Chat)
		r.Post("/session", h.CreateSession)
		r.Post("/message", h.AddMessage)
		r.Get("/session/{sessionId}", h.Messages)
	})
}

// decode reports whether the body was valid and answers 400 otherwise.
func (h *ChatHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		h.logger.Debug("Request validation failed", zap.String("path", r.URL.Path), zap.Error(err))
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
		return false
	}
	return true
}

// CreateSession starts a conversation session
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !h.decode(w, r, &req) {
		return
	}

	session, err := h.chat.CreateSession(r.Context(), req.UserID, req.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionExists) {
			middleware.RespondWithMessage(w, http.StatusConflict, "Session already exists")
			return
		}

		h.logger.Error("Failed to create session", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, sessionResponse{Success: true, Session: session})
}

// AddMessage logs one message in a session
func (h *ChatHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var req AddMessageRequest
	if !h.decode(w, r, &req) {
		return
	}

	msg, err := h.chat.AddMessage(r.Context(), req.SessionID, req.Sender, req.Message)
	if err != nil {
		h.logger.Error("Failed to add message", zap.String("session_id", req.SessionID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, messageResponse{Success: true, Message: msg})
}

// Messages returns a session's messages oldest first
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	messages, err := h.chat.Messages(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to list messages", zap.String("session_id", sessionID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, messagesResponse{Success: true, Messages: messages})
}

// Chat records the user's message and the assistant's reply
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !h.decode(w, r, &req) {
		return
	}

	sessionID, messages, err := h.chat.Chat(r.Context(), req.UserID, req.Message, req.SessionID)
	if err != nil {
		h.logger.Error("Chat failed", zap.String("session_id", req.SessionID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, chatResponse{
		Success:   true,
		SessionID: sessionID,
		Messages:  messages,
	})
}
