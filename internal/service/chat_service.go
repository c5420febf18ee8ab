package service

import (
	"context"
	"errors"
	"fmt"

	"catalog-assistant/internal/domain"
	"catalog-assistant/internal/llm"
	"catalog-assistant/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidSender = errors.New("sender must be user or ai")
	ErrEmptyMessage  = errors.New("message must not be empty")
)

// SessionIDPrefix starts every generated session id.
const SessionIDPrefix = "sess-"

// ChatService logs conversations and relays user messages to the assistant.
type ChatService interface {
	// CreateSession starts a session. An empty sessionID is generated.
	CreateSession(ctx context.Context, userID, sessionID string) (*domain.ConversationSession, error)
	AddMessage(ctx context.Context, sessionID, sender, message string) (*domain.Message, error)
	Messages(ctx context.Context, sessionID string) ([]*domain.Message, error)
	// Chat records message, asks the assistant and records its reply. It
	// returns the session id used and the full conversation so far.
	Chat(ctx context.Context, userID, message, sessionID string) (string, []*domain.Message, error)
}

type chatService struct {
	conversationRepo repository.ConversationRepository
	assistant        llm.Client
	logger           *zap.Logger
}

// NewChatService creates a new instance of ChatService
func NewChatService(conversationRepo repository.ConversationRepository, assistant llm.Client, logger *zap.Logger) ChatService {
	return &chatService{
		conversationRepo: conversationRepo,
		assistant:        assistant,
		logger:           logger,
	}
}

func newSessionID() string {
	return SessionIDPrefix + uuid.NewString()
}

func (s *chatService) CreateSession(ctx context.Context, userID, sessionID string) (*domain.ConversationSession, error) {
	if sessionID == "" {
		sessionID = newSessionID()
	}

	session := &domain.ConversationSession{
		SessionID: sessionID,
		UserID:    userID,
	}
	if err := s.conversationRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *chatService) AddMessage(ctx context.Context, sessionID, sender, message string) (*domain.Message, error) {
	if sender != domain.SenderUser && sender != domain.SenderAI {
		return nil, ErrInvalidSender
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}

	msg := &domain.Message{
		SessionID: sessionID,
		Sender:    sender,
		Message:   message,
	}
	if err := s.conversationRepo.AddMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *chatService) Messages(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	return s.conversationRepo.ListMessages(ctx, sessionID)
}

func (s *chatService) Chat(ctx context.Context, userID, message, sessionID string) (string, []*domain.Message, error) {
	sessionID, err := s.ensureSession(ctx, userID, sessionID)
	if err != nil {
		return "", nil, err
	}

	if _, err := s.AddMessage(ctx, sessionID, domain.SenderUser, message); err != nil {
		return "", nil, err
	}

	reply, err := s.assistant.Ask(ctx, message)
	if err != nil {
		s.logger.Warn("Assistant unavailable, sending fallback reply",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		reply = llm.FallbackReply
	}

	if _, err := s.AddMessage(ctx, sessionID, domain.SenderAI, reply); err != nil {
		return "", nil, err
	}

	messages, err := s.Messages(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}

	return sessionID, messages, nil
}

// ensureSession returns a session id that exists in the store. A session id
// supplied by the client that is not known yet is created for userID.
func (s *chatService) ensureSession(ctx context.Context, userID, sessionID string) (string, error) {
	if sessionID != "" {
		_, err := s.conversationRepo.FindSession(ctx, sessionID)
		if err == nil {
			return sessionID, nil
		}
		if !errors.Is(err, repository.ErrSessionNotFound) {
			return "", fmt.Errorf("failed to look up session: %w", err)
		}
	}

	session, err := s.CreateSession(ctx, userID, sessionID)
	if errors.Is(err, repository.ErrSessionExists) {
		// Created concurrently by another request.
		return sessionID, nil
	}
	if err != nil {
		return "", err
	}
	return session.SessionID, nil
}
