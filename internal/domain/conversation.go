package domain

import "time"

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ConversationSession groups the messages of one chat.
type ConversationSession struct {
	SessionID string     `json:"sessionId" db:"session_id"`
	UserID    string     `json:"userId" db:"user_id"`
	StartedAt time.Time  `json:"startedAt" db:"started_at"`
	EndedAt   *time.Time `json:"endedAt,omitempty" db:"ended_at"`
}

// Message is a single chat line written by the user or the assistant.
type Message struct {
	ID        int64     `json:"id" db:"id"`
	SessionID string    `json:"sessionId" db:"session_id"`
	Sender    string    `json:"sender" db:"sender"`
	Message   string    `json:"message" db:"message"`
	Timestamp time.Time `json:"timestamp" db:"created_at"`
}
