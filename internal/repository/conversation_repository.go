package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-assistant/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

const uniqueViolation = "23505"

// ConversationRepository stores chat sessions and their messages.
type ConversationRepository interface {
	CreateSession(ctx context.Context, session *domain.ConversationSession) error
	FindSession(ctx context.Context, sessionID string) (*domain.ConversationSession, error)
	AddMessage(ctx context.Context, message *domain.Message) error
	// ListMessages returns a session's messages oldest first.
	ListMessages(ctx context.Context, sessionID string) ([]*domain.Message, error)
}

type conversationRepository struct {
	db *sql.DB
}

// NewConversationRepository creates a new instance of ConversationRepository
func NewConversationRepository(db *sql.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// CreateSession inserts the session and fills StartedAt from the database.
func (r *conversationRepository) CreateSession(ctx context.Context, session *domain.ConversationSession) error {
	query := `
		INSERT INTO conversation_sessions (session_id, user_id)
		VALUES ($1, $2)
		RETURNING started_at
	`

	err := r.db.QueryRowContext(ctx, query, session.SessionID, session.UserID).Scan(&session.StartedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrSessionExists
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *conversationRepository) FindSession(ctx context.Context, sessionID string) (*domain.ConversationSession, error) {
	query := `
		SELECT session_id, user_id, started_at, ended_at
		FROM conversation_sessions
		WHERE session_id = $1
	`

	session := &domain.ConversationSession{}
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&session.SessionID,
		&session.UserID,
		&session.StartedAt,
		&session.EndedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return session, nil
}

// AddMessage inserts the message and fills ID and Timestamp.
func (r *conversationRepository) AddMessage(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (session_id, sender, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, message.SessionID, message.Sender, message.Message).
		Scan(&message.ID, &message.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to add message: %w", err)
	}

	return nil
}

func (r *conversationRepository) ListMessages(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	query := `
		SELECT id, session_id, sender, message, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []*domain.Message{}
	for rows.Next() {
		m := &domain.Message{}
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Sender, &m.Message, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
